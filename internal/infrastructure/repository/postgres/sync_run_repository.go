package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pitchsidehq/pitchside/internal/domain/syncrun"
	qb "github.com/pitchsidehq/pitchside/internal/platform/querybuilder"
)

type SyncRunRepository struct {
	db *sqlx.DB
}

func NewSyncRunRepository(db *sqlx.DB) *SyncRunRepository {
	return &SyncRunRepository{db: db}
}

// Save upserts on public_id so a run row can be written when the
// pipeline starts and finalized when it ends.
func (r *SyncRunRepository) Save(ctx context.Context, run syncrun.SyncRun) error {
	insertModel, err := syncRunToInsertModel(run)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("sync_runs", insertModel, `ON CONFLICT (public_id)
DO UPDATE SET
    status = EXCLUDED.status,
    stages = EXCLUDED.stages,
    error = EXCLUDED.error,
    finished_at = EXCLUDED.finished_at`)
	if err != nil {
		return fmt.Errorf("build upsert sync run query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert sync run: %w", err)
	}

	return nil
}

func (r *SyncRunRepository) GetByID(ctx context.Context, id string) (syncrun.SyncRun, bool, error) {
	query, args, err := qb.Select("*").From("sync_runs").
		Where(qb.Eq("public_id", id)).
		ToSQL()
	if err != nil {
		return syncrun.SyncRun{}, false, fmt.Errorf("build get sync run query: %w", err)
	}

	var row syncRunTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return syncrun.SyncRun{}, false, nil
		}
		return syncrun.SyncRun{}, false, fmt.Errorf("get sync run: %w", err)
	}

	run, err := syncRunFromRow(row)
	if err != nil {
		return syncrun.SyncRun{}, false, err
	}

	return run, true, nil
}
