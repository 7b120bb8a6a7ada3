package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	ListPage(ctx context.Context, filter Filter, limit, offset int) ([]Match, error)
	Count(ctx context.Context, filter Filter) (int, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Upsert(ctx context.Context, item Match) (Match, error)
	UpdateInsights(ctx context.Context, matchID string, insights Insights) error
}
