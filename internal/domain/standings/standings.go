package standings

import (
	"sort"

	"github.com/pitchsidehq/pitchside/internal/domain/match"
)

// Row is one team's line in a league table.
type Row struct {
	Position     int    `json:"position"`
	TeamID       string `json:"teamId"`
	TeamName     string `json:"teamName"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	GoalDiff     int    `json:"goalDifference"`
	Points       int    `json:"points"`
}

// Compute aggregates finished matches into a ranked table. Teams are
// keyed by ID so two clubs sharing a display name stay separate rows;
// the name on each row is presentation only. Matches that are not
// finished, or are missing a score, contribute nothing.
//
// Ordering is points desc, then goal difference desc, then goals for
// desc, then team name asc so equal records rank deterministically.
func Compute(matches []match.Match) []Row {
	acc := make(map[string]*Row)

	row := func(teamID, teamName string) *Row {
		r, ok := acc[teamID]
		if !ok {
			r = &Row{TeamID: teamID, TeamName: teamName}
			acc[teamID] = r
		}

		return r
	}

	for _, m := range matches {
		if !m.Finished() {
			continue
		}

		home := row(m.HomeTeamID, m.HomeTeamName)
		away := row(m.AwayTeamID, m.AwayTeamName)

		hs, as := *m.HomeScore, *m.AwayScore

		home.Played++
		away.Played++
		home.GoalsFor += hs
		home.GoalsAgainst += as
		away.GoalsFor += as
		away.GoalsAgainst += hs

		switch {
		case hs > as:
			home.Wins++
			home.Points += 3
			away.Losses++
		case hs < as:
			away.Wins++
			away.Points += 3
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.Points++
			away.Points++
		}

		home.GoalDiff = home.GoalsFor - home.GoalsAgainst
		away.GoalDiff = away.GoalsFor - away.GoalsAgainst
	}

	rows := make([]Row, 0, len(acc))
	for _, r := range acc {
		rows = append(rows, *r)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		if a.TeamName != b.TeamName {
			return a.TeamName < b.TeamName
		}

		// Names can collide across clubs, so the ID settles the order.
		return a.TeamID < b.TeamID
	})

	for i := range rows {
		rows[i].Position = i + 1
	}

	return rows
}
