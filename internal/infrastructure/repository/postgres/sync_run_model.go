package postgres

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/pitchsidehq/pitchside/internal/domain/syncrun"
)

type syncRunTableModel struct {
	ID         int64      `db:"id"`
	PublicID   string     `db:"public_id"`
	Trigger    string     `db:"trigger"`
	Status     string     `db:"status"`
	Stages     []byte     `db:"stages"`
	Error      string     `db:"error"`
	StartedAt  time.Time  `db:"started_at"`
	FinishedAt *time.Time `db:"finished_at"`
}

type syncRunInsertModel struct {
	PublicID   string     `db:"public_id"`
	Trigger    string     `db:"trigger"`
	Status     string     `db:"status"`
	Stages     []byte     `db:"stages"`
	Error      string     `db:"error"`
	StartedAt  time.Time  `db:"started_at"`
	FinishedAt *time.Time `db:"finished_at"`
}

func syncRunToInsertModel(run syncrun.SyncRun) (syncRunInsertModel, error) {
	var stages []byte
	if len(run.Stages) > 0 {
		raw, err := sonic.Marshal(run.Stages)
		if err != nil {
			return syncRunInsertModel{}, fmt.Errorf("marshal sync run stages: %w", err)
		}
		stages = raw
	}

	return syncRunInsertModel{
		PublicID:   run.ID,
		Trigger:    run.Trigger,
		Status:     run.Status,
		Stages:     stages,
		Error:      run.Error,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
	}, nil
}

func syncRunFromRow(row syncRunTableModel) (syncrun.SyncRun, error) {
	var stages []syncrun.StageResult
	if len(row.Stages) > 0 {
		if err := sonic.Unmarshal(row.Stages, &stages); err != nil {
			return syncrun.SyncRun{}, fmt.Errorf("unmarshal sync run stages: %w", err)
		}
	}

	return syncrun.SyncRun{
		ID:         row.PublicID,
		Trigger:    row.Trigger,
		Status:     row.Status,
		Stages:     stages,
		Error:      row.Error,
		StartedAt:  row.StartedAt,
		FinishedAt: row.FinishedAt,
	}, nil
}
