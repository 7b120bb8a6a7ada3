package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pitchsidehq/pitchside/internal/domain/providerpayload"
	qb "github.com/pitchsidehq/pitchside/internal/platform/querybuilder"
)

type providerPayloadInsertModel struct {
	Source     string    `db:"source"`
	EntityType string    `db:"entity_type"`
	EntityKey  string    `db:"entity_key"`
	Body       []byte    `db:"payload"`
	BodyHash   string    `db:"payload_hash"`
	FetchedAt  time.Time `db:"fetched_at"`
}

type ProviderPayloadRepository struct {
	db *sqlx.DB
}

func NewProviderPayloadRepository(db *sqlx.DB) *ProviderPayloadRepository {
	return &ProviderPayloadRepository{db: db}
}

// UpsertMany overwrites the stored snapshot per (source, entity_type,
// entity_key). The batch shares one transaction so a partial refetch
// does not leave half-replaced snapshots.
func (r *ProviderPayloadRepository) UpsertMany(ctx context.Context, items []providerpayload.Payload) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert provider payloads: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := providerPayloadInsertModel{
			Source:     item.Source,
			EntityType: item.EntityType,
			EntityKey:  item.EntityKey,
			Body:       item.Body,
			BodyHash:   item.BodyHash,
			FetchedAt:  item.FetchedAt,
		}

		query, args, err := qb.InsertModel("provider_payloads", insertModel, `ON CONFLICT (source, entity_type, entity_key)
DO UPDATE SET
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    fetched_at = EXCLUDED.fetched_at`)
		if err != nil {
			return fmt.Errorf("build upsert provider payload query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert provider payload: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert provider payloads: %w", err)
	}

	return nil
}
