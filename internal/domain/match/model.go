package match

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusUpcoming = "upcoming"
	StatusLive     = "live"
	StatusFinished = "finished"
)

// NormalizeStatus folds the provider's status vocabulary into the three
// canonical values; unknown text is lower-cased and kept.
func NormalizeStatus(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", "ns", "scheduled", "not started", "upcoming", "tbd", "postponed":
		return StatusUpcoming
	case "live", "1h", "2h", "ht", "halftime", "in play", "et", "pen":
		return StatusLive
	case "ft", "aet", "pen.", "finished", "full-time", "match finished", "after extra time":
		return StatusFinished
	default:
		return value
	}
}

// Insights holds the generated text attached to a match on first detail
// view. All fields empty means generation has not run yet.
type Insights struct {
	Overview           string
	TacticalAnalysis   string
	Preview            string
	Prediction         string
	PredictedScoreHome *int
	PredictedScoreAway *int
}

func (i Insights) Empty() bool {
	return i.Overview == "" && i.TacticalAnalysis == "" && i.Preview == "" && i.Prediction == ""
}

type Match struct {
	ID           string
	LeagueID     string
	HomeTeamID   string
	AwayTeamID   string
	HomeTeamName string
	AwayTeamName string
	KickoffAt    time.Time
	Venue        string
	Status       string
	HomeScore    *int
	AwayScore    *int
	ExternalRef  string
	Insights     Insights
	Statistics   map[string]any
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.LeagueID == "" {
		return fmt.Errorf("match league id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match home and away team ids are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match cannot have the same team on both sides")
	}
	if m.KickoffAt.IsZero() {
		return fmt.Errorf("match kickoff time is required")
	}
	if m.ExternalRef == "" {
		return fmt.Errorf("match external ref is required")
	}

	return nil
}

// Finished reports whether the match contributes to standings: played
// to completion with both scores recorded.
func (m Match) Finished() bool {
	return m.Status == StatusFinished && m.HomeScore != nil && m.AwayScore != nil
}

// Filter narrows match listings. Date selects a single calendar day,
// expanded to [startOfDay, nextDay) against KickoffAt.
type Filter struct {
	Search   string
	LeagueID string
	Status   string
	Date     *time.Time
}
