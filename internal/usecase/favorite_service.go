package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pitchsidehq/pitchside/internal/domain/favorite"
	"github.com/pitchsidehq/pitchside/internal/domain/team"
	"github.com/pitchsidehq/pitchside/internal/platform/id"
)

type FavoriteService struct {
	favoriteRepo favorite.Repository
	teamRepo     team.Repository
	ids          id.Generator
}

func NewFavoriteService(favoriteRepo favorite.Repository, teamRepo team.Repository, ids id.Generator) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		teamRepo:     teamRepo,
		ids:          ids,
	}
}

// Add favorites a team for a user. A doubled pair surfaces ErrConflict
// rather than a second row.
func (s *FavoriteService) Add(ctx context.Context, userID, teamID string) (favorite.Favorite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.Add")
	defer span.End()

	userID = strings.TrimSpace(userID)
	teamID = strings.TrimSpace(teamID)
	if userID == "" {
		return favorite.Favorite{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if teamID == "" {
		return favorite.Favorite{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return favorite.Favorite{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	item, err := s.favoriteRepo.Add(ctx, favorite.Favorite{
		ID:     s.ids.NewID(),
		UserID: userID,
		TeamID: teamID,
	})
	if err != nil {
		if errors.Is(err, favorite.ErrDuplicate) {
			return favorite.Favorite{}, fmt.Errorf("%w: team=%s is already a favorite", ErrConflict, teamID)
		}
		return favorite.Favorite{}, fmt.Errorf("add favorite: %w", err)
	}

	return item, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.Remove")
	defer span.End()

	userID = strings.TrimSpace(userID)
	teamID = strings.TrimSpace(teamID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	removed, err := s.favoriteRepo.Remove(ctx, userID, teamID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: favorite team=%s", ErrNotFound, teamID)
	}

	return nil
}

func (s *FavoriteService) List(ctx context.Context, userID string) ([]favorite.Favorite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.List")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	items, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	return items, nil
}
