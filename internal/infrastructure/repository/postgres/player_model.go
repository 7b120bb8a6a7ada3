package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	TeamID      string         `db:"team_public_id"`
	FullName    string         `db:"full_name"`
	Position    sql.NullString `db:"position"`
	ThumbURL    sql.NullString `db:"thumb_url"`
	Age         sql.NullInt64  `db:"age"`
	ShirtNumber sql.NullInt64  `db:"shirt_number"`
	ExternalRef string         `db:"external_ref"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}

type playerInsertModel struct {
	PublicID    string         `db:"public_id"`
	TeamID      string         `db:"team_public_id"`
	FullName    string         `db:"full_name"`
	Position    sql.NullString `db:"position"`
	ThumbURL    sql.NullString `db:"thumb_url"`
	Age         sql.NullInt64  `db:"age"`
	ShirtNumber sql.NullInt64  `db:"shirt_number"`
	ExternalRef string         `db:"external_ref"`
}
