package team

import (
	"fmt"
	"time"
)

// Team is a club inside a league. Most fields come from the provider
// payload; ImageURLs is maintained by the image-upload endpoints and is
// never touched by synchronization.
type Team struct {
	ID              string
	LeagueID        string
	Name            string
	Country         string
	LogoURL         string
	FoundedYear     int
	StadiumName     string
	StadiumCity     string
	StadiumCapacity int
	VenueAddress    string
	Coach           string
	Description     string
	ExternalRef     string
	LastSyncedAt    *time.Time
	ImageURLs       []string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("team league id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.ExternalRef == "" {
		return fmt.Errorf("team external ref is required")
	}

	return nil
}

// Filter narrows team listings. Zero values mean "no constraint".
type Filter struct {
	Search   string
	Country  string
	LeagueID string
}
