// Package footdata calls the external sports-data API. Responses are
// decoded at this boundary into the neutral records the sync pipeline
// consumes, and every raw payload is returned alongside for archiving.
package footdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/pitchsidehq/pitchside/internal/domain/providerpayload"
	"github.com/pitchsidehq/pitchside/internal/platform/logging"
	"github.com/pitchsidehq/pitchside/internal/platform/resilience"
	"github.com/pitchsidehq/pitchside/internal/usecase"
)

const (
	defaultBaseURL = "https://apiv3.apifootball.com"

	payloadSource = "footdata"
)

var apiKeyParamRegex = regexp.MustCompile(`APIkey=[^&\s"']+`)
var errFootDataTransient = crerr.New("footdata transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	now            func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		now:            time.Now,
	}
}

func (c *Client) FetchLeagues(ctx context.Context) ([]usecase.ExternalLeague, []providerpayload.Payload, error) {
	var records []leagueRecord
	raw, err := c.doJSON(ctx, "get_leagues", nil, &records)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch leagues: %w", err)
	}

	out := make([]usecase.ExternalLeague, 0, len(records))
	for _, record := range records {
		out = append(out, record.toExternal())
	}

	return out, []providerpayload.Payload{c.buildPayload("league", "all", raw)}, nil
}

func (c *Client) FetchTeams(ctx context.Context, leagueKey string) ([]usecase.ExternalTeam, []providerpayload.Payload, error) {
	leagueKey = strings.TrimSpace(leagueKey)
	if leagueKey == "" {
		return nil, nil, fmt.Errorf("league key is required")
	}

	var records []teamRecord
	raw, err := c.doJSON(ctx, "get_teams", map[string]string{"league_id": leagueKey}, &records)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch teams league=%s: %w", leagueKey, err)
	}

	out := make([]usecase.ExternalTeam, 0, len(records))
	for _, record := range records {
		out = append(out, record.toExternal())
	}

	return out, []providerpayload.Payload{c.buildPayload("team", leagueKey, raw)}, nil
}

// FetchPlayers returns the squad of one team. The provider nests
// players inside the team record, so this refetches the team by key.
func (c *Client) FetchPlayers(ctx context.Context, teamKey string) ([]usecase.ExternalPlayer, []providerpayload.Payload, error) {
	teamKey = strings.TrimSpace(teamKey)
	if teamKey == "" {
		return nil, nil, fmt.Errorf("team key is required")
	}

	var records []teamRecord
	raw, err := c.doJSON(ctx, "get_teams", map[string]string{"team_id": teamKey}, &records)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch players team=%s: %w", teamKey, err)
	}

	out := make([]usecase.ExternalPlayer, 0)
	for _, record := range records {
		if record.TeamKey != teamKey {
			continue
		}
		for _, item := range record.Players {
			out = append(out, item.toExternal())
		}
	}

	return out, []providerpayload.Payload{c.buildPayload("player", teamKey, raw)}, nil
}

func (c *Client) FetchMatches(ctx context.Context, leagueKey string) ([]usecase.ExternalMatch, []providerpayload.Payload, error) {
	leagueKey = strings.TrimSpace(leagueKey)
	if leagueKey == "" {
		return nil, nil, fmt.Errorf("league key is required")
	}

	// The provider requires a date window; a season is always inside
	// one year either side of now.
	from := c.now().AddDate(-1, 0, 0).Format("2006-01-02")
	to := c.now().AddDate(1, 0, 0).Format("2006-01-02")

	var records []matchRecord
	raw, err := c.doJSON(ctx, "get_events", map[string]string{
		"league_id": leagueKey,
		"from":      from,
		"to":        to,
	}, &records)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch matches league=%s: %w", leagueKey, err)
	}

	out := make([]usecase.ExternalMatch, 0, len(records))
	for _, record := range records {
		out = append(out, record.toExternal())
	}

	return out, []providerpayload.Payload{c.buildPayload("match", leagueKey, raw)}, nil
}

func (c *Client) buildPayload(entityType, entityKey string, raw []byte) providerpayload.Payload {
	payload := providerpayload.Payload{
		Source:     payloadSource,
		EntityType: entityType,
		EntityKey:  entityKey,
		Body:       raw,
		FetchedAt:  c.now(),
	}
	payload.HashBody()

	return payload
}

func (c *Client) doJSON(ctx context.Context, action string, query map[string]string, target any) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "footdata circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: circuit breaker %s", errFootDataTransient, c.breaker.State())
		}
	}

	values := url.Values{}
	values.Set("action", action)
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("APIkey", c.apiKey)

	fullURL := c.baseURL + "/?" + values.Encode()

	key := action + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isFootDataCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	// Errors come back as an object instead of the usual array.
	if apiErr := decodeAPIError(raw); apiErr != "" {
		return nil, fmt.Errorf("provider error: %s", apiErr)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}

	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errFootDataTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFootDataTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errFootDataTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "footdata request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

// IsTransient reports whether the error is the kind of provider failure
// worth retrying or surfacing as upstream-unavailable.
func IsTransient(err error) bool {
	return stderrors.Is(err, errFootDataTransient)
}

func isFootDataCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFootDataTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		code >= http.StatusInternalServerError
}

func decodeAPIError(raw []byte) string {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "{") {
		return ""
	}

	var envelope struct {
		Error   int    `json:"error"`
		Message string `json:"message"`
	}
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	if envelope.Error == 0 {
		return ""
	}
	if envelope.Message == "" {
		return fmt.Sprintf("code=%d", envelope.Error)
	}
	return envelope.Message
}

func sanitizeSensitiveText(value, key string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if key != "" {
		value = strings.ReplaceAll(value, key, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "APIkey=REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("APIkey") {
		query.Set("APIkey", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
