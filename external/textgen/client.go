// Package textgen calls the generative-text provider that writes match
// overviews, previews and predictions. The provider is a black box; the
// client sends a structured prompt and expects the insight fields back
// as JSON.
package textgen

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/pitchsidehq/pitchside/internal/domain/match"
	"github.com/pitchsidehq/pitchside/internal/platform/logging"
	"github.com/pitchsidehq/pitchside/internal/platform/resilience"
	"github.com/pitchsidehq/pitchside/internal/usecase"
)

const generatePath = "/v1/generate"

var errTextGenTransient = crerr.New("textgen transient failure")

type ClientConfig struct {
	BaseURL        string
	APIKey         string
	Model          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	apiKey         string
	model          string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     &fasthttp.Client{ReadTimeout: timeout, WriteTimeout: timeout},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:         strings.TrimSpace(cfg.APIKey),
		model:          strings.TrimSpace(cfg.Model),
		timeout:        timeout,
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type generateRequest struct {
	Model  string `json:"model,omitempty"`
	Prompt string `json:"prompt"`
	Format string `json:"format"`
}

type generateResponse struct {
	Overview           string `json:"overview"`
	TacticalAnalysis   string `json:"tactical_analysis"`
	Preview            string `json:"preview"`
	Prediction         string `json:"prediction"`
	PredictedScoreHome *int   `json:"predicted_score_home"`
	PredictedScoreAway *int   `json:"predicted_score_away"`
}

func (c *Client) GenerateMatchInsights(ctx context.Context, prompt usecase.MatchPrompt) (match.Insights, error) {
	if c.baseURL == "" {
		return match.Insights{}, crerr.New("textgen base url is not configured")
	}
	if strings.TrimSpace(prompt.HomeTeam) == "" || strings.TrimSpace(prompt.AwayTeam) == "" {
		return match.Insights{}, crerr.New("both team names are required")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "textgen circuit breaker rejected request", "state", c.breaker.State())
			return match.Insights{}, fmt.Errorf("%w: circuit breaker %s", errTextGenTransient, c.breaker.State())
		}
	}

	body, err := sonic.Marshal(generateRequest{
		Model:  c.model,
		Prompt: buildPrompt(prompt),
		Format: "json",
	})
	if err != nil {
		return match.Insights{}, crerr.Wrap(err, "marshal generate request")
	}

	raw, err := c.execute(ctx, body)
	if c.circuitEnabled {
		if err != nil && IsTransient(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return match.Insights{}, err
	}

	var decoded generateResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return match.Insights{}, fmt.Errorf("decode generate response: %w", err)
	}

	insights := match.Insights{
		Overview:           strings.TrimSpace(decoded.Overview),
		TacticalAnalysis:   strings.TrimSpace(decoded.TacticalAnalysis),
		Preview:            strings.TrimSpace(decoded.Preview),
		Prediction:         strings.TrimSpace(decoded.Prediction),
		PredictedScoreHome: decoded.PredictedScoreHome,
		PredictedScoreAway: decoded.PredictedScoreAway,
	}
	if insights.Empty() {
		return match.Insights{}, crerr.New("provider returned an empty insight block")
	}

	return insights, nil
}

func (c *Client) execute(ctx context.Context, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := c.send(body)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !IsTransient(err) {
			return nil, err
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

	c.logger.WarnContext(ctx, "textgen request failed", "error", lastErr)
	return nil, lastErr
}

func (c *Client) send(body []byte) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + generatePath)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.SetBodyRaw(body)

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errTextGenTransient, err)
	}

	status := resp.StatusCode()
	raw := append([]byte(nil), resp.Body()...)
	if status >= 200 && status < 300 {
		return raw, nil
	}
	if isRetryableStatus(status) {
		return nil, fmt.Errorf("%w: provider status=%d body=%s", errTextGenTransient, status, abbreviateBody(raw))
	}

	return nil, fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(raw))
}

// buildPrompt renders the request text from match facts. A finished
// match asks for a retrospective, anything else for a preview.
func buildPrompt(prompt usecase.MatchPrompt) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if prompt.Status == match.StatusFinished && prompt.HomeScore != nil && prompt.AwayScore != nil {
		fmt.Fprintf(buf, "Write a football match report for %s %d-%d %s",
			prompt.HomeTeam, *prompt.HomeScore, *prompt.AwayScore, prompt.AwayTeam)
	} else {
		fmt.Fprintf(buf, "Write a football match preview for %s vs %s", prompt.HomeTeam, prompt.AwayTeam)
	}
	if prompt.League != "" {
		fmt.Fprintf(buf, " in the %s", prompt.League)
	}
	if !prompt.KickoffAt.IsZero() {
		fmt.Fprintf(buf, " on %s", prompt.KickoffAt.Format("2 January 2006"))
	}
	buf.WriteString(". Respond as JSON with fields overview, tactical_analysis, preview, prediction, predicted_score_home, predicted_score_away.")

	return buf.String()
}

// IsTransient reports whether the failure is worth retrying.
func IsTransient(err error) bool {
	return stderrors.Is(err, errTextGenTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusRequestTimeout ||
		code == fasthttp.StatusTooManyRequests ||
		code >= fasthttp.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
