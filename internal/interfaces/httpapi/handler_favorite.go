package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pitchsidehq/pitchside/internal/domain/favorite"
	"github.com/pitchsidehq/pitchside/internal/usecase"
)

type favoriteDTO struct {
	TeamID    string    `json:"teamId"`
	CreatedAt time.Time `json:"createdAt"`
}

type addFavoriteRequest struct {
	TeamID string `json:"team_id" validate:"required"`
}

func toFavoriteDTO(item favorite.Favorite) favoriteDTO {
	return favoriteDTO{
		TeamID:    item.TeamID,
		CreatedAt: item.CreatedAt,
	}
}

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFavorites")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: no authenticated principal", usecase.ErrUnauthorized))
		return
	}

	items, err := h.favoriteService.List(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list favorites failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]favoriteDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toFavoriteDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, "favorites retrieved", out)
}

func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddFavorite")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: no authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var payload addFavoriteRequest
	if err := h.decodeBody(r, &payload); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.favoriteService.Add(ctx, principal.UserID, payload.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "add favorite failed", "user_id", principal.UserID, "team_id", payload.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, "favorite added", toFavoriteDTO(item))
}

func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveFavorite")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: no authenticated principal", usecase.ErrUnauthorized))
		return
	}

	teamID := r.PathValue("teamID")
	if err := h.favoriteService.Remove(ctx, principal.UserID, teamID); err != nil {
		h.logger.WarnContext(ctx, "remove favorite failed", "user_id", principal.UserID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "favorite removed", nil)
}
