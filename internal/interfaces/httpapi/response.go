package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/pitchsidehq/pitchside/internal/domain/favorite"
	"github.com/pitchsidehq/pitchside/internal/platform/pagination"
	"github.com/pitchsidehq/pitchside/internal/usecase"
)

// responseEnvelope is the wire shape of every API response. Success
// responses carry data and, for paginated listings, meta; failures
// carry an errors block instead.
type responseEnvelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    any              `json:"data,omitempty"`
	Meta    *pagination.Meta `json:"meta,omitempty"`
	Errors  []errorItem      `json:"errors,omitempty"`
}

type errorItem struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, message string, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, responseEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func writePage(ctx context.Context, w http.ResponseWriter, message string, data any, meta pagination.Meta) {
	ctx, span := startSpan(ctx, "httpapi.writePage")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, responseEnvelope{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    &meta,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		// Internal details stay in logs, not on the wire.
		message = "internal server error"
	}

	writeJSON(ctx, w, mapped.HTTPStatus, responseEnvelope{
		Success: false,
		Message: message,
		Errors: []errorItem{
			{Reason: mapped.Reason, Message: message},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, responseEnvelope{
		Success: false,
		Message: msg,
		Errors: []errorItem{
			{Reason: "internalError", Message: msg},
		},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	ctx, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput"}
	case errors.Is(err, usecase.ErrMissingRequiredData):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "missingRequiredData"}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized"}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{HTTPStatus: http.StatusForbidden, Reason: "forbidden"}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound"}
	case errors.Is(err, usecase.ErrConflict), errors.Is(err, favorite.ErrDuplicate):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "conflict"}
	case errors.Is(err, usecase.ErrUpstreamUnavailable):
		return mappedError{HTTPStatus: http.StatusBadGateway, Reason: "upstreamUnavailable"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError"}
	}
}
