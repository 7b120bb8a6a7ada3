package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type teamTableModel struct {
	ID              int64          `db:"id"`
	PublicID        string         `db:"public_id"`
	LeagueID        string         `db:"league_public_id"`
	Name            string         `db:"name"`
	Country         sql.NullString `db:"country"`
	LogoURL         sql.NullString `db:"logo_url"`
	FoundedYear     sql.NullInt64  `db:"founded_year"`
	StadiumName     sql.NullString `db:"stadium_name"`
	StadiumCity     sql.NullString `db:"stadium_city"`
	StadiumCapacity sql.NullInt64  `db:"stadium_capacity"`
	VenueAddress    sql.NullString `db:"venue_address"`
	Coach           sql.NullString `db:"coach"`
	Description     sql.NullString `db:"description"`
	ExternalRef     string         `db:"external_ref"`
	LastSyncedAt    *time.Time     `db:"last_synced_at"`
	ImageURLs       pq.StringArray `db:"image_urls"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID        string         `db:"public_id"`
	LeagueID        string         `db:"league_public_id"`
	Name            string         `db:"name"`
	Country         sql.NullString `db:"country"`
	LogoURL         sql.NullString `db:"logo_url"`
	FoundedYear     sql.NullInt64  `db:"founded_year"`
	StadiumName     sql.NullString `db:"stadium_name"`
	StadiumCity     sql.NullString `db:"stadium_city"`
	StadiumCapacity sql.NullInt64  `db:"stadium_capacity"`
	VenueAddress    sql.NullString `db:"venue_address"`
	Coach           sql.NullString `db:"coach"`
	Description     sql.NullString `db:"description"`
	ExternalRef     string         `db:"external_ref"`
	LastSyncedAt    *time.Time     `db:"last_synced_at"`
}
