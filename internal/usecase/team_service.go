package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchsidehq/pitchside/internal/domain/team"
	"github.com/pitchsidehq/pitchside/internal/platform/pagination"
)

const (
	teamDefaultPageSize = 10
	teamMaxPageSize     = 50
)

type TeamService struct {
	teamRepo team.Repository
}

func NewTeamService(teamRepo team.Repository) *TeamService {
	return &TeamService{teamRepo: teamRepo}
}

// ListPage returns one window of teams plus paging meta. The requested
// size is clamped to 50 and the meta's page math uses the clamped value.
func (s *TeamService) ListPage(ctx context.Context, filter team.Filter, page pagination.Page) ([]team.Team, pagination.Meta, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListPage")
	defer span.End()

	page, err := pagination.Normalize(page, teamDefaultPageSize, teamMaxPageSize)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	total, err := s.teamRepo.Count(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("count teams: %w", err)
	}

	items, err := s.teamRepo.ListPage(ctx, filter, page.Size, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list teams: %w", err)
	}

	return items, pagination.BuildMeta(page, total), nil
}

// ListAll returns every matching team with no page window.
func (s *TeamService) ListAll(ctx context.Context, filter team.Filter) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListAll")
	defer span.End()

	items, err := s.teamRepo.ListPage(ctx, filter, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return items, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return item, nil
}
