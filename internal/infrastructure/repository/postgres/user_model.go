package postgres

import "time"

type userTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	Email        string     `db:"email"`
	FullName     string     `db:"full_name"`
	Role         string     `db:"role"`
	PasswordHash string     `db:"password_hash"`
	APIToken     string     `db:"api_token"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}
