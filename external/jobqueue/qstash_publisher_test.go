package jobqueue

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchsidehq/pitchside/internal/platform/resilience"
)

func newTestPublisher(t *testing.T, handler http.HandlerFunc) *QStashPublisher {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewQStashPublisher(QStashPublisherConfig{
		BaseURL:          server.URL,
		Token:            "qstash-token",
		TargetBaseURL:    "https://api.pitchside.example",
		Retries:          3,
		InternalJobToken: "job-token",
		Timeout:          2 * time.Second,
		CircuitBreaker:   resilience.CircuitBreakerConfig{Enabled: false},
	}, nil)
}

func TestEnqueueSetsUpstashHeaders(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotHeaders http.Header
	var gotBody string
	publisher := newTestPublisher(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusCreated)
	})

	err := publisher.Enqueue(context.Background(), "/v1/internal/sync/all", map[string]string{"trigger": "cron"}, 30*time.Second, "sync-2026-08-30")
	require.NoError(t, err)

	assert.Equal(t, "/v2/publish/https://api.pitchside.example/v1/internal/sync/all", gotPath)
	assert.Equal(t, "Bearer qstash-token", gotHeaders.Get("Authorization"))
	assert.Equal(t, http.MethodPost, gotHeaders.Get("Upstash-Method"))
	assert.Equal(t, "3", gotHeaders.Get("Upstash-Retries"))
	assert.Equal(t, "30s", gotHeaders.Get("Upstash-Delay"))
	assert.Equal(t, "sync-2026-08-30", gotHeaders.Get("Upstash-Deduplication-Id"))
	assert.Equal(t, "job-token", gotHeaders.Get("Upstash-Forward-X-Internal-Job-Token"))
	assert.JSONEq(t, `{"trigger":"cron"}`, gotBody)
}

func TestEnqueueNilPayloadSendsEmptyObject(t *testing.T) {
	t.Parallel()

	var gotBody string
	publisher := newTestPublisher(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, publisher.Enqueue(context.Background(), "v1/internal/sync/leagues", nil, 0, ""))
	assert.JSONEq(t, `{}`, gotBody)
}

func TestEnqueueRejectsBlankPath(t *testing.T) {
	t.Parallel()

	publisher := newTestPublisher(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	err := publisher.Enqueue(context.Background(), "   ", nil, 0, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job path is required")
}

func TestEnqueueServerErrorIsTransient(t *testing.T) {
	t.Parallel()

	publisher := newTestPublisher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	err := publisher.Enqueue(context.Background(), "/v1/internal/sync/all", nil, 0, "")
	require.Error(t, err)
	assert.True(t, isQStashCircuitFailure(err))
	assert.Contains(t, err.Error(), "status=502")
}

func TestEnqueueClientErrorIsNotTransient(t *testing.T) {
	t.Parallel()

	publisher := newTestPublisher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	err := publisher.Enqueue(context.Background(), "/v1/internal/sync/all", nil, 0, "")
	require.Error(t, err)
	assert.False(t, isQStashCircuitFailure(err))
}

func TestEnqueueCircuitBreakerOpens(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       server.URL,
		Token:         "qstash-token",
		TargetBaseURL: "https://api.pitchside.example",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
		},
	}, nil)

	require.Error(t, publisher.Enqueue(context.Background(), "/v1/internal/sync/all", nil, 0, ""))

	err := publisher.Enqueue(context.Background(), "/v1/internal/sync/all", nil, 0, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temporarily unavailable")
	assert.Equal(t, int32(1), calls.Load())
}

func TestValidateHTTPBaseURL(t *testing.T) {
	t.Parallel()

	got, err := validateHTTPBaseURL(" https://qstash.upstash.io/ ")
	require.NoError(t, err)
	assert.Equal(t, "https://qstash.upstash.io", got)

	for _, raw := range []string{"", "ftp://queue.example", "https://"} {
		_, err := validateHTTPBaseURL(raw)
		assert.Error(t, err, raw)
	}
}

func TestBuildQStashCurlPreviewMasksSecrets(t *testing.T) {
	t.Parallel()

	preview := buildQStashCurlPreview("https://qstash.upstash.io/v2/publish/https://api.pitchside.example/v1/internal/sync/all",
		"/v1/internal/sync/all", "30s", 3, "dedupe-1", `{"trigger":"cron"}`, true)

	assert.Contains(t, preview, "Authorization: Bearer ***")
	assert.Contains(t, preview, "Upstash-Forward-X-Internal-Job-Token: ***")
	assert.Contains(t, preview, "Upstash-Delay: 30s")
	assert.False(t, strings.Contains(preview, "qstash-token"))
}
