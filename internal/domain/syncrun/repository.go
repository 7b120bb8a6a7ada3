package syncrun

import "context"

type Repository interface {
	Save(ctx context.Context, run SyncRun) error
	GetByID(ctx context.Context, id string) (SyncRun, bool, error)
}
