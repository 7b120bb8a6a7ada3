package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/pitchsidehq/pitchside/internal/domain/favorite"
	"github.com/pitchsidehq/pitchside/internal/platform/pagination"
	"github.com/pitchsidehq/pitchside/internal/usecase"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	return body
}

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, "ok", map[string]string{"status": "healthy"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected application/json content type, got %q", got)
	}

	body := decodeEnvelope(t, rec)
	if success, _ := body["success"].(bool); !success {
		t.Fatalf("expected success=true, got %v", body["success"])
	}
	if got, _ := body["message"].(string); got != "ok" {
		t.Fatalf("expected message %q, got %v", "ok", body["message"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["meta"]; ok {
		t.Fatalf("did not expect meta key without pagination")
	}
	if _, ok := body["errors"]; ok {
		t.Fatalf("did not expect errors key in success response")
	}
}

func TestWritePage_IncludesMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	meta := pagination.Meta{Total: 25, Page: 2, Size: 10, TotalPages: 3, HasNext: true, HasPrev: true}
	writePage(context.Background(), rec, "teams retrieved", []string{"a", "b"}, meta)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	metaObj, ok := body["meta"].(map[string]any)
	if !ok {
		t.Fatalf("expected meta object in paginated response")
	}
	if got, _ := metaObj["total"].(float64); got != 25 {
		t.Fatalf("expected meta.total=25, got %v", metaObj["total"])
	}
	if got, _ := metaObj["totalPages"].(float64); got != 3 {
		t.Fatalf("expected meta.totalPages=3, got %v", metaObj["totalPages"])
	}
	if hasNext, _ := metaObj["hasNext"].(bool); !hasNext {
		t.Fatalf("expected meta.hasNext=true")
	}
}

func TestWriteError_InvalidInput(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected success=false")
	}
	errorsList, ok := body["errors"].([]any)
	if !ok || len(errorsList) != 1 {
		t.Fatalf("expected one error item, got %v", body["errors"])
	}
	item, _ := errorsList[0].(map[string]any)
	if got, _ := item["reason"].(string); got != "invalidInput" {
		t.Fatalf("expected reason invalidInput, got %v", item["reason"])
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", usecase.ErrInvalidInput, http.StatusBadRequest},
		{"missing data", usecase.ErrMissingRequiredData, http.StatusBadRequest},
		{"unauthorized", usecase.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", usecase.ErrForbidden, http.StatusForbidden},
		{"not found", usecase.ErrNotFound, http.StatusNotFound},
		{"conflict", usecase.ErrConflict, http.StatusConflict},
		{"duplicate favorite", favorite.ErrDuplicate, http.StatusConflict},
		{"upstream unavailable", usecase.ErrUpstreamUnavailable, http.StatusBadGateway},
		{"dependency unavailable", usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable},
		{"unknown", errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tc.err)

			if rec.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, rec.Code)
			}
		})
	}
}

func TestWriteError_MasksInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: connection refused on 10.0.0.8"))

	body := decodeEnvelope(t, rec)
	if got, _ := body["message"].(string); got != "internal server error" {
		t.Fatalf("expected masked message, got %q", got)
	}
	if rec.Body.String() == "" || rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 with body, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.8") {
		t.Fatalf("internal error details leaked into response body")
	}
}
