package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pitchsidehq/pitchside/internal/platform/logging"
	"github.com/pitchsidehq/pitchside/internal/platform/pagination"
	"github.com/pitchsidehq/pitchside/internal/usecase"
)

type Handler struct {
	leagueService    *usecase.LeagueService
	standingsService *usecase.StandingsService
	teamService      *usecase.TeamService
	playerService    *usecase.PlayerService
	matchService     *usecase.MatchService
	favoriteService  *usecase.FavoriteService
	syncService      *usecase.SyncService
	logger           *logging.Logger
	validate         *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	standingsService *usecase.StandingsService,
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	matchService *usecase.MatchService,
	favoriteService *usecase.FavoriteService,
	syncService *usecase.SyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:    leagueService,
		standingsService: standingsService,
		teamService:      teamService,
		playerService:    playerService,
		matchService:     matchService,
		favoriteService:  favoriteService,
		syncService:      syncService,
		logger:           logger,
		validate:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, "ok", map[string]string{"status": "healthy"})
}

func (h *Handler) validateRequest(r *http.Request, payload any) error {
	if err := h.validate.StructCtx(r.Context(), payload); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// parsePage reads page[number] and page[size] query parameters. Absent
// values stay zero; Normalize in the service layer applies defaults.
func parsePage(r *http.Request) (pagination.Page, error) {
	var page pagination.Page

	if raw := strings.TrimSpace(r.URL.Query().Get("page[number]")); raw != "" {
		number, err := strconv.Atoi(raw)
		if err != nil {
			return pagination.Page{}, fmt.Errorf("%w: page[number] must be an integer", usecase.ErrInvalidInput)
		}
		page.Number = number
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("page[size]")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return pagination.Page{}, fmt.Errorf("%w: page[size] must be an integer", usecase.ErrInvalidInput)
		}
		page.Size = size
	}

	return page, nil
}
