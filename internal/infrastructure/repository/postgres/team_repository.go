package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pitchsidehq/pitchside/internal/domain/team"
	qb "github.com/pitchsidehq/pitchside/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func teamFilterConditions(filter team.Filter) []qb.Condition {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, qb.Or(
			qb.ILike("name", pattern),
			qb.ILike("stadium_name", pattern),
		))
	}
	if filter.Country != "" {
		conditions = append(conditions, qb.Eq("country", filter.Country))
	}
	if filter.LeagueID != "" {
		conditions = append(conditions, qb.Eq("league_public_id", filter.LeagueID))
	}

	return conditions
}

func (r *TeamRepository) ListPage(ctx context.Context, filter team.Filter, limit, offset int) ([]team.Team, error) {
	builder := qb.Select("*").From("teams").
		Where(teamFilterConditions(filter)...).
		OrderBy("name", "id")
	if limit > 0 {
		builder = builder.Limit(limit).Offset(offset)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) Count(ctx context.Context, filter team.Filter) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("teams").
		Where(teamFilterConditions(filter)...).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count teams query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count teams: %w", err)
	}

	return total, nil
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	return r.ListPage(ctx, team.Filter{LeagueID: leagueID}, 0, 0)
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return r.getByColumn(ctx, "public_id", teamID)
}

func (r *TeamRepository) GetByExternalRef(ctx context.Context, externalRef string) (team.Team, bool, error) {
	return r.getByColumn(ctx, "external_ref", externalRef)
}

func (r *TeamRepository) getByColumn(ctx context.Context, column, value string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(
			qb.Eq(column, value),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by %s: %w", column, err)
	}

	return teamFromRow(row), true, nil
}

// Upsert writes the synced fields keyed on external_ref. image_urls is
// owned by the upload endpoints and is deliberately left untouched.
func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) (team.Team, error) {
	insertModel := teamInsertModel{
		PublicID:        item.ID,
		LeagueID:        item.LeagueID,
		Name:            item.Name,
		Country:         nullableString(item.Country),
		LogoURL:         nullableString(item.LogoURL),
		FoundedYear:     nullableInt64(int64(item.FoundedYear)),
		StadiumName:     nullableString(item.StadiumName),
		StadiumCity:     nullableString(item.StadiumCity),
		StadiumCapacity: nullableInt64(int64(item.StadiumCapacity)),
		VenueAddress:    nullableString(item.VenueAddress),
		Coach:           nullableString(item.Coach),
		Description:     nullableString(item.Description),
		ExternalRef:     item.ExternalRef,
		LastSyncedAt:    item.LastSyncedAt,
	}

	query, args, err := qb.InsertModel("teams", insertModel, `ON CONFLICT (external_ref)
DO UPDATE SET
    league_public_id = EXCLUDED.league_public_id,
    name = EXCLUDED.name,
    country = EXCLUDED.country,
    logo_url = EXCLUDED.logo_url,
    founded_year = EXCLUDED.founded_year,
    stadium_name = EXCLUDED.stadium_name,
    stadium_city = EXCLUDED.stadium_city,
    stadium_capacity = EXCLUDED.stadium_capacity,
    venue_address = EXCLUDED.venue_address,
    coach = EXCLUDED.coach,
    description = EXCLUDED.description,
    last_synced_at = EXCLUDED.last_synced_at,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return team.Team{}, fmt.Errorf("build upsert team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return team.Team{}, fmt.Errorf("upsert team: %w", err)
	}

	stored, found, err := r.GetByExternalRef(ctx, item.ExternalRef)
	if err != nil {
		return team.Team{}, err
	}
	if !found {
		return team.Team{}, fmt.Errorf("upsert team: row not visible after write")
	}

	return stored, nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:              row.PublicID,
		LeagueID:        row.LeagueID,
		Name:            row.Name,
		Country:         row.Country.String,
		LogoURL:         row.LogoURL.String,
		FoundedYear:     int(nullInt64ToInt64(row.FoundedYear)),
		StadiumName:     row.StadiumName.String,
		StadiumCity:     row.StadiumCity.String,
		StadiumCapacity: int(nullInt64ToInt64(row.StadiumCapacity)),
		VenueAddress:    row.VenueAddress.String,
		Coach:           row.Coach.String,
		Description:     row.Description.String,
		ExternalRef:     row.ExternalRef,
		LastSyncedAt:    row.LastSyncedAt,
		ImageURLs:       []string(row.ImageURLs),
	}
}
