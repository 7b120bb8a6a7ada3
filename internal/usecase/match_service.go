package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchsidehq/pitchside/internal/domain/league"
	"github.com/pitchsidehq/pitchside/internal/domain/match"
	"github.com/pitchsidehq/pitchside/internal/platform/logging"
	"github.com/pitchsidehq/pitchside/internal/platform/pagination"
	"github.com/pitchsidehq/pitchside/internal/platform/resilience"
)

const (
	matchDefaultPageSize = 10
	matchMaxPageSize     = 100
)

type MatchService struct {
	matchRepo  match.Repository
	leagueRepo league.Repository
	textgen    MatchTextGenerator
	logger     *logging.Logger
	flight     resilience.SingleFlight
}

func NewMatchService(matchRepo match.Repository, leagueRepo league.Repository, textgen MatchTextGenerator, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		matchRepo:  matchRepo,
		leagueRepo: leagueRepo,
		textgen:    textgen,
		logger:     logger,
	}
}

func (s *MatchService) ListPage(ctx context.Context, filter match.Filter, page pagination.Page) ([]match.Match, pagination.Meta, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListPage")
	defer span.End()

	page, err := pagination.Normalize(page, matchDefaultPageSize, matchMaxPageSize)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	total, err := s.matchRepo.Count(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("count matches: %w", err)
	}

	items, err := s.matchRepo.ListPage(ctx, filter, page.Size, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list matches: %w", err)
	}

	return items, pagination.BuildMeta(page, total), nil
}

func (s *MatchService) ListAll(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListAll")
	defer span.End()

	items, err := s.matchRepo.ListPage(ctx, filter, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return items, nil
}

// GetDetails returns one match, generating its text block on the first
// view. Concurrent first views share one generation via single-flight,
// and a failed generation degrades to the stored match instead of
// failing the read.
func (s *MatchService) GetDetails(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetDetails")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	if s.textgen == nil || !item.Insights.Empty() {
		return item, nil
	}

	insights := s.enrich(ctx, item)
	item.Insights = insights

	return item, nil
}

// leagueName resolves the competition name for the prompt. A failed
// lookup leaves it blank rather than blocking the generation.
func (s *MatchService) leagueName(ctx context.Context, leagueID string) string {
	if s.leagueRepo == nil || leagueID == "" {
		return ""
	}

	lg, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		s.logger.WarnContext(ctx, "resolve league for match prompt failed", "league_id", leagueID, "error", err)
		return ""
	}
	if !exists {
		return ""
	}

	return lg.Name
}

func (s *MatchService) enrich(ctx context.Context, item match.Match) match.Insights {
	out, err, _ := s.flight.Do("insights:"+item.ID, func() (any, error) {
		// Another caller may have persisted while we waited on the
		// flight lock.
		current, exists, err := s.matchRepo.GetByID(ctx, item.ID)
		if err == nil && exists && !current.Insights.Empty() {
			return current.Insights, nil
		}

		prompt := MatchPrompt{
			HomeTeam:  item.HomeTeamName,
			AwayTeam:  item.AwayTeamName,
			League:    s.leagueName(ctx, item.LeagueID),
			KickoffAt: item.KickoffAt,
			Status:    item.Status,
			HomeScore: item.HomeScore,
			AwayScore: item.AwayScore,
		}

		insights, err := s.textgen.GenerateMatchInsights(ctx, prompt)
		if err != nil {
			return match.Insights{}, err
		}

		if err := s.matchRepo.UpdateInsights(ctx, item.ID, insights); err != nil {
			s.logger.WarnContext(ctx, "persist match insights failed", "match_id", item.ID, "error", err)
		}

		return insights, nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "generate match insights failed", "match_id", item.ID, "error", err)
		return match.Insights{}
	}

	insights, ok := out.(match.Insights)
	if !ok {
		return match.Insights{}
	}

	return insights
}
