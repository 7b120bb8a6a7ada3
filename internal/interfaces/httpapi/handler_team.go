package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pitchsidehq/pitchside/internal/domain/player"
	"github.com/pitchsidehq/pitchside/internal/domain/team"
)

type teamDTO struct {
	ID              string     `json:"id"`
	LeagueID        string     `json:"leagueId"`
	Name            string     `json:"name"`
	Country         string     `json:"country,omitempty"`
	LogoURL         string     `json:"logoUrl,omitempty"`
	FoundedYear     int        `json:"foundedYear,omitempty"`
	StadiumName     string     `json:"stadiumName,omitempty"`
	StadiumCity     string     `json:"stadiumCity,omitempty"`
	StadiumCapacity int        `json:"stadiumCapacity,omitempty"`
	VenueAddress    string     `json:"venueAddress,omitempty"`
	Coach           string     `json:"coach,omitempty"`
	Description     string     `json:"description,omitempty"`
	ImageURLs       []string   `json:"imageUrls,omitempty"`
	LastSyncedAt    *time.Time `json:"lastSyncedAt,omitempty"`
}

type playerDTO struct {
	ID          string `json:"id"`
	TeamID      string `json:"teamId"`
	FullName    string `json:"fullName"`
	Position    string `json:"position,omitempty"`
	ThumbURL    string `json:"thumbUrl,omitempty"`
	Age         int    `json:"age,omitempty"`
	ShirtNumber int    `json:"shirtNumber,omitempty"`
}

func toTeamDTO(ctx context.Context, item team.Team) teamDTO {
	_, span := startSpan(ctx, "httpapi.toTeamDTO")
	defer span.End()

	return teamDTO{
		ID:              item.ID,
		LeagueID:        item.LeagueID,
		Name:            item.Name,
		Country:         item.Country,
		LogoURL:         item.LogoURL,
		FoundedYear:     item.FoundedYear,
		StadiumName:     item.StadiumName,
		StadiumCity:     item.StadiumCity,
		StadiumCapacity: item.StadiumCapacity,
		VenueAddress:    item.VenueAddress,
		Coach:           item.Coach,
		Description:     item.Description,
		ImageURLs:       item.ImageURLs,
		LastSyncedAt:    item.LastSyncedAt,
	}
}

func toTeamDTOs(ctx context.Context, items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toTeamDTO(ctx, item))
	}

	return out
}

func toPlayerDTO(ctx context.Context, item player.Player) playerDTO {
	_, span := startSpan(ctx, "httpapi.toPlayerDTO")
	defer span.End()

	return playerDTO{
		ID:          item.ID,
		TeamID:      item.TeamID,
		FullName:    item.FullName,
		Position:    string(item.Position),
		ThumbURL:    item.ThumbURL,
		Age:         item.Age,
		ShirtNumber: item.ShirtNumber,
	}
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	page, err := parsePage(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := r.URL.Query()
	filter := team.Filter{
		Search:   strings.TrimSpace(query.Get("search")),
		Country:  strings.TrimSpace(query.Get("country")),
		LeagueID: strings.TrimSpace(query.Get("league_id")),
	}

	items, meta, err := h.teamService.ListPage(ctx, filter, page)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writePage(ctx, w, "teams retrieved", toTeamDTOs(ctx, items), meta)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	item, err := h.teamService.Get(ctx, r.PathValue("teamID"))
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", r.PathValue("teamID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, "team retrieved", toTeamDTO(ctx, item))
}

func (h *Handler) ListTeamPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamPlayers")
	defer span.End()

	items, err := h.playerService.ListByTeam(ctx, r.PathValue("teamID"))
	if err != nil {
		h.logger.WarnContext(ctx, "list team players failed", "team_id", r.PathValue("teamID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toPlayerDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, "players retrieved", out)
}
