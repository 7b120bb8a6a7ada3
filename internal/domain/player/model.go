package player

import (
	"fmt"
	"strings"
)

type Position string

const (
	PositionGoalkeeper Position = "Goalkeeper"
	PositionDefender   Position = "Defender"
	PositionMidfielder Position = "Midfielder"
	PositionForward    Position = "Forward"
)

// NormalizePosition folds the provider's free-text position names into
// the four canonical values; unknown text is kept as-is.
func NormalizePosition(raw string) Position {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "goalkeeper", "goalkeepers", "keeper", "gk":
		return PositionGoalkeeper
	case "defender", "defenders", "def", "centre-back", "center-back", "full-back", "wing-back":
		return PositionDefender
	case "midfielder", "midfielders", "mid", "winger", "attacking midfielder", "defensive midfielder":
		return PositionMidfielder
	case "forward", "forwards", "fwd", "attacker", "striker":
		return PositionForward
	default:
		return Position(strings.TrimSpace(raw))
	}
}

type Player struct {
	ID          string
	TeamID      string
	FullName    string
	Position    Position
	ThumbURL    string
	Age         int
	ShirtNumber int
	ExternalRef string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if p.FullName == "" {
		return fmt.Errorf("player full name is required")
	}
	if p.ExternalRef == "" {
		return fmt.Errorf("player external ref is required")
	}

	return nil
}
