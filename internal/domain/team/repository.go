package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListPage(ctx context.Context, filter Filter, limit, offset int) ([]Team, error)
	Count(ctx context.Context, filter Filter) (int, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	GetByExternalRef(ctx context.Context, externalRef string) (Team, bool, error)
	Upsert(ctx context.Context, item Team) (Team, error)
}
