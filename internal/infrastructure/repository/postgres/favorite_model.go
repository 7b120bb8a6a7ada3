package postgres

import "time"

type favoriteTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	UserID    string    `db:"user_public_id"`
	TeamID    string    `db:"team_public_id"`
	CreatedAt time.Time `db:"created_at"`
}

type favoriteInsertModel struct {
	PublicID string `db:"public_id"`
	UserID   string `db:"user_public_id"`
	TeamID   string `db:"team_public_id"`
}
