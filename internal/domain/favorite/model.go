package favorite

import (
	"errors"
	"fmt"
	"time"
)

// ErrDuplicate is returned when a (user, team) pair already exists.
var ErrDuplicate = errors.New("team is already a favorite")

type Favorite struct {
	ID        string
	UserID    string
	TeamID    string
	CreatedAt time.Time
}

func (f Favorite) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("favorite id is required")
	}
	if f.UserID == "" {
		return fmt.Errorf("favorite user id is required")
	}
	if f.TeamID == "" {
		return fmt.Errorf("favorite team id is required")
	}

	return nil
}
