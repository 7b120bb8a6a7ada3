package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pitchsidehq/pitchside/internal/domain/match"
	"github.com/pitchsidehq/pitchside/internal/usecase"
)

type matchDTO struct {
	ID           string    `json:"id"`
	LeagueID     string    `json:"leagueId"`
	HomeTeamID   string    `json:"homeTeamId"`
	AwayTeamID   string    `json:"awayTeamId"`
	HomeTeamName string    `json:"homeTeamName"`
	AwayTeamName string    `json:"awayTeamName"`
	KickoffAt    time.Time `json:"kickoffAt"`
	Venue        string    `json:"venue,omitempty"`
	Status       string    `json:"status"`
	HomeScore    *int      `json:"homeScore"`
	AwayScore    *int      `json:"awayScore"`
}

type matchInsightsDTO struct {
	Overview           string `json:"overview,omitempty"`
	TacticalAnalysis   string `json:"tacticalAnalysis,omitempty"`
	Preview            string `json:"preview,omitempty"`
	Prediction         string `json:"prediction,omitempty"`
	PredictedScoreHome *int   `json:"predictedScoreHome,omitempty"`
	PredictedScoreAway *int   `json:"predictedScoreAway,omitempty"`
}

type matchDetailsDTO struct {
	matchDTO
	Insights   *matchInsightsDTO `json:"insights,omitempty"`
	Statistics map[string]any    `json:"statistics,omitempty"`
}

func toMatchDTO(ctx context.Context, item match.Match) matchDTO {
	_, span := startSpan(ctx, "httpapi.toMatchDTO")
	defer span.End()

	return matchDTO{
		ID:           item.ID,
		LeagueID:     item.LeagueID,
		HomeTeamID:   item.HomeTeamID,
		AwayTeamID:   item.AwayTeamID,
		HomeTeamName: item.HomeTeamName,
		AwayTeamName: item.AwayTeamName,
		KickoffAt:    item.KickoffAt,
		Venue:        item.Venue,
		Status:       item.Status,
		HomeScore:    item.HomeScore,
		AwayScore:    item.AwayScore,
	}
}

func toMatchDetailsDTO(ctx context.Context, item match.Match) matchDetailsDTO {
	out := matchDetailsDTO{
		matchDTO:   toMatchDTO(ctx, item),
		Statistics: item.Statistics,
	}
	if !item.Insights.Empty() {
		out.Insights = &matchInsightsDTO{
			Overview:           item.Insights.Overview,
			TacticalAnalysis:   item.Insights.TacticalAnalysis,
			Preview:            item.Insights.Preview,
			Prediction:         item.Insights.Prediction,
			PredictedScoreHome: item.Insights.PredictedScoreHome,
			PredictedScoreAway: item.Insights.PredictedScoreAway,
		}
	}

	return out
}

func parseMatchFilter(r *http.Request) (match.Filter, error) {
	query := r.URL.Query()
	filter := match.Filter{
		Search:   strings.TrimSpace(query.Get("search")),
		LeagueID: strings.TrimSpace(query.Get("league_id")),
		Status:   strings.TrimSpace(query.Get("status")),
	}

	if raw := strings.TrimSpace(query.Get("date")); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return match.Filter{}, fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", usecase.ErrInvalidInput)
		}
		filter.Date = &day
	}

	return filter, nil
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	page, err := parsePage(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	filter, err := parseMatchFilter(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, meta, err := h.matchService.ListPage(ctx, filter, page)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toMatchDTO(ctx, item))
	}

	writePage(ctx, w, "matches retrieved", out, meta)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	item, err := h.matchService.GetDetails(ctx, r.PathValue("matchID"))
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", r.PathValue("matchID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "match retrieved", toMatchDetailsDTO(ctx, item))
}
