package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/pitchsidehq/pitchside/internal/domain/syncrun"
	"github.com/pitchsidehq/pitchside/internal/usecase"
)

type syncTeamsRequest struct {
	LeagueID string `json:"league_id" validate:"required"`
}

type syncPlayersRequest struct {
	TeamID string `json:"team_id" validate:"required"`
}

type syncMatchesRequest struct {
	LeagueID string `json:"league_id" validate:"required"`
}

type syncAllRequest struct {
	Trigger string `json:"trigger"`
}

type syncRunDTO struct {
	ID         string                `json:"id"`
	Trigger    string                `json:"trigger"`
	Status     string                `json:"status"`
	Stages     []syncrun.StageResult `json:"stages,omitempty"`
	Error      string                `json:"error,omitempty"`
	StartedAt  time.Time             `json:"startedAt"`
	FinishedAt *time.Time            `json:"finishedAt,omitempty"`
}

func toSyncRunDTO(ctx context.Context, run syncrun.SyncRun) syncRunDTO {
	_, span := startSpan(ctx, "httpapi.toSyncRunDTO")
	defer span.End()

	return syncRunDTO{
		ID:         run.ID,
		Trigger:    run.Trigger,
		Status:     run.Status,
		Stages:     run.Stages,
		Error:      run.Error,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
	}
}

func (h *Handler) decodeBody(r *http.Request, payload any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(r, payload)
}

func (h *Handler) SyncLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncLeagues")
	defer span.End()

	result, err := h.syncService.SyncLeaguesFromProvider(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "league sync failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "league sync completed", result)
}

func (h *Handler) SyncTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncTeams")
	defer span.End()

	var payload syncTeamsRequest
	if err := h.decodeBody(r, &payload); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.syncService.SyncTeamsFromProvider(ctx, payload.LeagueID)
	if err != nil {
		h.logger.ErrorContext(ctx, "team sync failed", "league_id", payload.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "team sync completed", result)
}

func (h *Handler) SyncPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncPlayers")
	defer span.End()

	var payload syncPlayersRequest
	if err := h.decodeBody(r, &payload); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.syncService.SyncPlayersFromProvider(ctx, payload.TeamID)
	if err != nil {
		h.logger.ErrorContext(ctx, "player sync failed", "team_id", payload.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "player sync completed", result)
}

func (h *Handler) SyncMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncMatches")
	defer span.End()

	var payload syncMatchesRequest
	if err := h.decodeBody(r, &payload); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.syncService.SyncMatchesFromProvider(ctx, payload.LeagueID)
	if err != nil {
		h.logger.ErrorContext(ctx, "match sync failed", "league_id", payload.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "match sync completed", result)
}

func (h *Handler) SyncAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncAll")
	defer span.End()

	var payload syncAllRequest
	if r.Body != nil && r.ContentLength != 0 {
		decoder := sonic.ConfigDefault.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&payload); err != nil && err != io.EOF {
			writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
			return
		}
	}

	run, err := h.syncService.SyncAll(ctx, payload.Trigger)
	if err != nil {
		h.logger.ErrorContext(ctx, "full sync failed", "trigger", payload.Trigger, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "sync run completed", toSyncRunDTO(ctx, run))
}

func (h *Handler) GetSyncRun(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSyncRun")
	defer span.End()

	run, err := h.syncService.GetRun(ctx, r.PathValue("runID"))
	if err != nil {
		h.logger.WarnContext(ctx, "get sync run failed", "run_id", r.PathValue("runID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "sync run retrieved", toSyncRunDTO(ctx, run))
}
