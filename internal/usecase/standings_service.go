package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchsidehq/pitchside/internal/domain/league"
	"github.com/pitchsidehq/pitchside/internal/domain/match"
	"github.com/pitchsidehq/pitchside/internal/domain/standings"
	"github.com/pitchsidehq/pitchside/internal/platform/cache"
)

// matchLister is the slice of MatchService the standings computation
// needs: every match of a league, unwindowed.
type matchLister interface {
	ListAll(ctx context.Context, filter match.Filter) ([]match.Match, error)
}

type StandingsService struct {
	leagueRepo league.Repository
	matches    matchLister
	store      *cache.Store
}

func NewStandingsService(leagueRepo league.Repository, matches matchLister, store *cache.Store) *StandingsService {
	return &StandingsService{
		leagueRepo: leagueRepo,
		matches:    matches,
		store:      store,
	}
}

// ByLeague loads the league's matches and computes the table. Results
// are cached per league; a landed match sync drops the entry.
func (s *StandingsService) ByLeague(ctx context.Context, leagueID string) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ByLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	if s.store == nil {
		return s.compute(ctx, leagueID)
	}

	out, err := s.store.GetOrLoad(ctx, standingsCacheKey(leagueID), func(ctx context.Context) (any, error) {
		return s.compute(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}

	rows, ok := out.([]standings.Row)
	if !ok {
		return nil, fmt.Errorf("unexpected cached standings type %T", out)
	}

	return rows, nil
}

func (s *StandingsService) compute(ctx context.Context, leagueID string) ([]standings.Row, error) {
	items, err := s.matches.ListAll(ctx, match.Filter{LeagueID: leagueID})
	if err != nil {
		return nil, fmt.Errorf("list matches for standings: %w", err)
	}

	return standings.Compute(items), nil
}

func standingsCacheKey(leagueID string) string {
	return "standings:" + leagueID
}
