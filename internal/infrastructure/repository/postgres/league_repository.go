package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pitchsidehq/pitchside/internal/domain/league"
	qb "github.com/pitchsidehq/pitchside/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	return r.getByColumn(ctx, "public_id", leagueID)
}

func (r *LeagueRepository) GetByExternalRef(ctx context.Context, externalRef string) (league.League, bool, error) {
	return r.getByColumn(ctx, "external_ref", externalRef)
}

func (r *LeagueRepository) getByColumn(ctx context.Context, column, value string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq(column, value),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by %s: %w", column, err)
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) Upsert(ctx context.Context, item league.League) (league.League, error) {
	insertModel := leagueInsertModel{
		PublicID:    item.ID,
		Name:        item.Name,
		Country:     item.Country,
		LogoURL:     item.LogoURL,
		ExternalRef: item.ExternalRef,
	}

	query, args, err := qb.InsertModel("leagues", insertModel, `ON CONFLICT (external_ref)
DO UPDATE SET
    name = EXCLUDED.name,
    country = EXCLUDED.country,
    logo_url = EXCLUDED.logo_url,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return league.League{}, fmt.Errorf("build upsert league query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return league.League{}, fmt.Errorf("upsert league: %w", err)
	}

	// The stored row keeps its original public id on conflict.
	stored, found, err := r.GetByExternalRef(ctx, item.ExternalRef)
	if err != nil {
		return league.League{}, err
	}
	if !found {
		return league.League{}, fmt.Errorf("upsert league: row not visible after write")
	}

	return stored, nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:          row.PublicID,
		Name:        row.Name,
		Country:     row.Country,
		LogoURL:     row.LogoURL,
		ExternalRef: row.ExternalRef,
	}
}
