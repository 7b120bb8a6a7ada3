package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pitchsidehq/pitchside/internal/domain/favorite"
	qb "github.com/pitchsidehq/pitchside/internal/platform/querybuilder"
)

type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add inserts the pair and maps the (user, team) unique constraint to
// favorite.ErrDuplicate instead of upserting.
func (r *FavoriteRepository) Add(ctx context.Context, item favorite.Favorite) (favorite.Favorite, error) {
	insertModel := favoriteInsertModel{
		PublicID: item.ID,
		UserID:   item.UserID,
		TeamID:   item.TeamID,
	}

	query, args, err := qb.InsertModel("favorites", insertModel, "RETURNING created_at")
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("build insert favorite query: %w", err)
	}

	if err := r.db.GetContext(ctx, &item.CreatedAt, query, args...); err != nil {
		if isUniqueViolation(err) {
			return favorite.Favorite{}, favorite.ErrDuplicate
		}
		return favorite.Favorite{}, fmt.Errorf("insert favorite: %w", err)
	}

	return item, nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, teamID string) (bool, error) {
	query, args, err := qb.DeleteFrom("favorites").
		Where(
			qb.Eq("user_public_id", userID),
			qb.Eq("team_public_id", teamID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete favorite query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete favorite: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete favorite rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]favorite.Favorite, error) {
	query, args, err := qb.Select("*").From("favorites").
		Where(qb.Eq("user_public_id", userID)).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select favorites query: %w", err)
	}

	var rows []favoriteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select favorites: %w", err)
	}

	out := make([]favorite.Favorite, 0, len(rows))
	for _, row := range rows {
		out = append(out, favorite.Favorite{
			ID:        row.PublicID,
			UserID:    row.UserID,
			TeamID:    row.TeamID,
			CreatedAt: row.CreatedAt,
		})
	}

	return out, nil
}
