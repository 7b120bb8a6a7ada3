package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pitchsidehq/pitchside/internal/domain/user"
	qb "github.com/pitchsidehq/pitchside/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, bool, error) {
	return r.getByColumn(ctx, "public_id", id)
}

func (r *UserRepository) GetByAPIToken(ctx context.Context, token string) (user.User, bool, error) {
	return r.getByColumn(ctx, "api_token", token)
}

func (r *UserRepository) getByColumn(ctx context.Context, column, value string) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").
		Where(
			qb.Eq(column, value),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by %s: %w", column, err)
	}

	return user.User{
		ID:           row.PublicID,
		Email:        row.Email,
		FullName:     row.FullName,
		Role:         row.Role,
		PasswordHash: row.PasswordHash,
	}, true, nil
}
