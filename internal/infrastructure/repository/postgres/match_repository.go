package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pitchsidehq/pitchside/internal/domain/match"
	qb "github.com/pitchsidehq/pitchside/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func matchFilterConditions(filter match.Filter) []qb.Condition {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, qb.Or(
			qb.ILike("home_team_name", pattern),
			qb.ILike("away_team_name", pattern),
			qb.ILike("venue", pattern),
			qb.ILike("status", pattern),
		))
	}
	if filter.LeagueID != "" {
		conditions = append(conditions, qb.Eq("league_public_id", filter.LeagueID))
	}
	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("status", filter.Status))
	}
	if filter.Date != nil {
		// A calendar day becomes the half-open range [start, next day).
		start := filter.Date.Truncate(24 * time.Hour)
		conditions = append(conditions,
			qb.Gte("kickoff_at", start),
			qb.Lt("kickoff_at", start.Add(24*time.Hour)),
		)
	}

	return conditions
}

func (r *MatchRepository) ListPage(ctx context.Context, filter match.Filter, limit, offset int) ([]match.Match, error) {
	builder := qb.Select("*").From("matches").
		Where(matchFilterConditions(filter)...).
		OrderBy("kickoff_at", "id")
	if limit > 0 {
		builder = builder.Limit(limit).Offset(offset)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		item, err := matchFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *MatchRepository) Count(ctx context.Context, filter match.Filter) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("matches").
		Where(matchFilterConditions(filter)...).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count matches query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}

	return total, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	return r.getByColumn(ctx, "public_id", matchID)
}

func (r *MatchRepository) getByColumn(ctx context.Context, column, value string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq(column, value),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by %s: %w", column, err)
	}

	item, err := matchFromRow(row)
	if err != nil {
		return match.Match{}, false, err
	}

	return item, true, nil
}

// Upsert writes the synced fields keyed on external_ref. insights is
// owned by the enrichment path and is deliberately left untouched so a
// resync does not wipe generated text.
func (r *MatchRepository) Upsert(ctx context.Context, item match.Match) (match.Match, error) {
	stats, err := marshalStatistics(item.Statistics)
	if err != nil {
		return match.Match{}, err
	}

	insertModel := matchInsertModel{
		PublicID:     item.ID,
		LeagueID:     item.LeagueID,
		HomeTeamID:   item.HomeTeamID,
		AwayTeamID:   item.AwayTeamID,
		HomeTeamName: item.HomeTeamName,
		AwayTeamName: item.AwayTeamName,
		KickoffAt:    item.KickoffAt,
		Venue:        nullableString(item.Venue),
		Status:       item.Status,
		HomeScore:    nullableIntPtr(item.HomeScore),
		AwayScore:    nullableIntPtr(item.AwayScore),
		ExternalRef:  item.ExternalRef,
		Statistics:   stats,
	}

	query, args, err := qb.InsertModel("matches", insertModel, `ON CONFLICT (external_ref)
DO UPDATE SET
    league_public_id = EXCLUDED.league_public_id,
    home_team_public_id = EXCLUDED.home_team_public_id,
    away_team_public_id = EXCLUDED.away_team_public_id,
    home_team_name = EXCLUDED.home_team_name,
    away_team_name = EXCLUDED.away_team_name,
    kickoff_at = EXCLUDED.kickoff_at,
    venue = EXCLUDED.venue,
    status = EXCLUDED.status,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    statistics = EXCLUDED.statistics,
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return match.Match{}, fmt.Errorf("build upsert match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return match.Match{}, fmt.Errorf("upsert match: %w", err)
	}

	stored, found, err := r.getByColumn(ctx, "external_ref", item.ExternalRef)
	if err != nil {
		return match.Match{}, err
	}
	if !found {
		return match.Match{}, fmt.Errorf("upsert match: row not visible after write")
	}

	return stored, nil
}

func (r *MatchRepository) UpdateInsights(ctx context.Context, matchID string, insights match.Insights) error {
	raw, err := marshalInsights(insights)
	if err != nil {
		return err
	}

	query, args, err := qb.Update("matches").
		Set("insights", raw).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match insights query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match insights: %w", err)
	}

	return nil
}

func matchFromRow(row matchTableModel) (match.Match, error) {
	insights, err := unmarshalInsights(row.Insights)
	if err != nil {
		return match.Match{}, err
	}

	stats, err := unmarshalStatistics(row.Statistics)
	if err != nil {
		return match.Match{}, err
	}

	return match.Match{
		ID:           row.PublicID,
		LeagueID:     row.LeagueID,
		HomeTeamID:   row.HomeTeamID,
		AwayTeamID:   row.AwayTeamID,
		HomeTeamName: row.HomeTeamName,
		AwayTeamName: row.AwayTeamName,
		KickoffAt:    row.KickoffAt,
		Venue:        row.Venue.String,
		Status:       row.Status,
		HomeScore:    nullInt64ToIntPtr(row.HomeScore),
		AwayScore:    nullInt64ToIntPtr(row.AwayScore),
		ExternalRef:  row.ExternalRef,
		Insights:     insights,
		Statistics:   stats,
	}, nil
}
