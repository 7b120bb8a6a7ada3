package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchsidehq/pitchside/internal/domain/league"
	"github.com/pitchsidehq/pitchside/internal/platform/cache"
)

type LeagueService struct {
	leagueRepo league.Repository
	store      *cache.Store
}

func NewLeagueService(leagueRepo league.Repository, store *cache.Store) *LeagueService {
	return &LeagueService{leagueRepo: leagueRepo, store: store}
}

const leagueListCacheKey = "leagues:all"

func (s *LeagueService) List(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.List")
	defer span.End()

	if s.store == nil {
		return s.list(ctx)
	}

	out, err := s.store.GetOrLoad(ctx, leagueListCacheKey, func(ctx context.Context) (any, error) {
		return s.list(ctx)
	})
	if err != nil {
		return nil, err
	}

	items, ok := out.([]league.League)
	if !ok {
		return nil, fmt.Errorf("unexpected cached league list type %T", out)
	}

	return items, nil
}

func (s *LeagueService) Get(ctx context.Context, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Get")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	return item, nil
}

func (s *LeagueService) list(ctx context.Context) ([]league.League, error) {
	items, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return items, nil
}
