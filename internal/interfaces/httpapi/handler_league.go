package httpapi

import (
	"context"
	"net/http"

	"github.com/pitchsidehq/pitchside/internal/domain/league"
)

type leagueDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	LogoURL string `json:"logoUrl,omitempty"`
}

func toLeagueDTO(ctx context.Context, item league.League) leagueDTO {
	_, span := startSpan(ctx, "httpapi.toLeagueDTO")
	defer span.End()

	return leagueDTO{
		ID:      item.ID,
		Name:    item.Name,
		Country: item.Country,
		LogoURL: item.LogoURL,
	}
}

func toLeagueDTOs(ctx context.Context, items []league.League) []leagueDTO {
	out := make([]leagueDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toLeagueDTO(ctx, item))
	}

	return out
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	items, err := h.leagueService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "leagues retrieved", toLeagueDTOs(ctx, items))
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	item, err := h.leagueService.Get(ctx, r.PathValue("leagueID"))
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", r.PathValue("leagueID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "league retrieved", toLeagueDTO(ctx, item))
}

func (h *Handler) GetLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueStandings")
	defer span.End()

	rows, err := h.standingsService.ByLeague(ctx, r.PathValue("leagueID"))
	if err != nil {
		h.logger.WarnContext(ctx, "league standings failed", "league_id", r.PathValue("leagueID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "standings retrieved", rows)
}
