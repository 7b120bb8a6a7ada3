package favorite

import "context"

// Repository describes favorite persistence needs from use cases. Add
// returns ErrDuplicate for an existing (user, team) pair.
type Repository interface {
	Add(ctx context.Context, item Favorite) (Favorite, error)
	Remove(ctx context.Context, userID, teamID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)
}
