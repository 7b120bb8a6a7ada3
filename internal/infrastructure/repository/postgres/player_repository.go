package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pitchsidehq/pitchside/internal/domain/player"
	qb "github.com/pitchsidehq/pitchside/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("shirt_number NULLS LAST", "full_name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by team query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by team: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("public_id", playerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}

	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) (player.Player, error) {
	insertModel := playerInsertModel{
		PublicID:    item.ID,
		TeamID:      item.TeamID,
		FullName:    item.FullName,
		Position:    nullableString(string(item.Position)),
		ThumbURL:    nullableString(item.ThumbURL),
		Age:         nullableInt64(int64(item.Age)),
		ShirtNumber: nullableInt64(int64(item.ShirtNumber)),
		ExternalRef: item.ExternalRef,
	}

	query, args, err := qb.InsertModel("players", insertModel, `ON CONFLICT (external_ref)
DO UPDATE SET
    team_public_id = EXCLUDED.team_public_id,
    full_name = EXCLUDED.full_name,
    position = EXCLUDED.position,
    thumb_url = EXCLUDED.thumb_url,
    age = EXCLUDED.age,
    shirt_number = EXCLUDED.shirt_number,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return player.Player{}, fmt.Errorf("build upsert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return player.Player{}, fmt.Errorf("upsert player: %w", err)
	}

	stored, found, err := r.getByExternalRef(ctx, item.ExternalRef)
	if err != nil {
		return player.Player{}, err
	}
	if !found {
		return player.Player{}, fmt.Errorf("upsert player: row not visible after write")
	}

	return stored, nil
}

func (r *PlayerRepository) getByExternalRef(ctx context.Context, externalRef string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("external_ref", externalRef),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player by external ref query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by external ref: %w", err)
	}

	return playerFromRow(row), true, nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:          row.PublicID,
		TeamID:      row.TeamID,
		FullName:    row.FullName,
		Position:    player.Position(row.Position.String),
		ThumbURL:    row.ThumbURL.String,
		Age:         int(nullInt64ToInt64(row.Age)),
		ShirtNumber: int(nullInt64ToInt64(row.ShirtNumber)),
		ExternalRef: row.ExternalRef,
	}
}
