package standings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchsidehq/pitchside/internal/domain/match"
	"github.com/pitchsidehq/pitchside/internal/domain/standings"
)

func intPtr(v int) *int { return &v }

func finished(homeID, home string, awayID, away string, hs, as int) match.Match {
	return match.Match{
		HomeTeamID:   homeID,
		HomeTeamName: home,
		AwayTeamID:   awayID,
		AwayTeamName: away,
		Status:       match.StatusFinished,
		HomeScore:    intPtr(hs),
		AwayScore:    intPtr(as),
	}
}

func TestComputeTwoLegResult(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		finished("team-a", "A", "team-b", "B", 2, 1),
		finished("team-b", "B", "team-a", "A", 0, 0),
	}

	rows := standings.Compute(matches)
	require.Len(t, rows, 2)

	a := rows[0]
	assert.Equal(t, 1, a.Position)
	assert.Equal(t, "team-a", a.TeamID)
	assert.Equal(t, 2, a.Played)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 1, a.Draws)
	assert.Equal(t, 0, a.Losses)
	assert.Equal(t, 4, a.Points)
	assert.Equal(t, 2, a.GoalsFor)
	assert.Equal(t, 1, a.GoalsAgainst)
	assert.Equal(t, 1, a.GoalDiff)

	b := rows[1]
	assert.Equal(t, 2, b.Position)
	assert.Equal(t, "team-b", b.TeamID)
	assert.Equal(t, 2, b.Played)
	assert.Equal(t, 0, b.Wins)
	assert.Equal(t, 1, b.Draws)
	assert.Equal(t, 1, b.Losses)
	assert.Equal(t, 1, b.Points)
	assert.Equal(t, 1, b.GoalsFor)
	assert.Equal(t, 2, b.GoalsAgainst)
	assert.Equal(t, -1, b.GoalDiff)
}

func TestComputeIgnoresUnfinishedAndScorelessMatches(t *testing.T) {
	t.Parallel()

	upcoming := finished("team-a", "A", "team-b", "B", 0, 0)
	upcoming.Status = match.StatusUpcoming

	noScore := finished("team-a", "A", "team-b", "B", 3, 0)
	noScore.AwayScore = nil

	rows := standings.Compute([]match.Match{upcoming, noScore})
	assert.Empty(t, rows)
}

func TestComputeOrderIsInputIndependent(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		finished("team-a", "A", "team-b", "B", 2, 0),
		finished("team-c", "C", "team-a", "A", 1, 1),
		finished("team-b", "B", "team-c", "C", 0, 3),
	}

	forward := standings.Compute(matches)

	reversed := []match.Match{matches[2], matches[1], matches[0]}
	backward := standings.Compute(reversed)

	assert.Equal(t, forward, backward)
}

func TestComputeTieBreaks(t *testing.T) {
	t.Parallel()

	// C and D finish level on points; C wins the goal-difference
	// tie-break. A and B are fully level and fall back to name order.
	matches := []match.Match{
		finished("team-c", "C", "team-x", "X", 4, 0),
		finished("team-d", "D", "team-x", "X", 1, 0),
		finished("team-a", "A", "team-y", "Y", 2, 2),
		finished("team-b", "B", "team-z", "Z", 2, 2),
	}

	rows := standings.Compute(matches)
	require.Len(t, rows, 7)

	assert.Equal(t, "team-c", rows[0].TeamID)
	assert.Equal(t, "team-d", rows[1].TeamID)
	assert.Equal(t, "team-a", rows[2].TeamID)
	assert.Equal(t, "team-b", rows[3].TeamID)

	for i, row := range rows {
		assert.Equal(t, i+1, row.Position)
	}
}

func TestComputeTieBreaksSharedNameByTeamID(t *testing.T) {
	t.Parallel()

	// Two clubs named "United" with identical records still rank
	// deterministically, whichever order the matches arrive in.
	matches := []match.Match{
		finished("team-2", "United", "team-x", "X", 1, 0),
		finished("team-1", "United", "team-y", "Y", 1, 0),
	}

	rows := standings.Compute(matches)
	require.Len(t, rows, 4)
	assert.Equal(t, "team-1", rows[0].TeamID)
	assert.Equal(t, "team-2", rows[1].TeamID)

	reversed := []match.Match{matches[1], matches[0]}
	again := standings.Compute(reversed)
	require.Len(t, again, 4)
	assert.Equal(t, "team-1", again[0].TeamID)
	assert.Equal(t, "team-2", again[1].TeamID)
}

func TestComputeKeysByTeamID(t *testing.T) {
	t.Parallel()

	// Two distinct clubs named "United" must not merge into one row.
	matches := []match.Match{
		finished("team-1", "United", "team-2", "United", 1, 0),
	}

	rows := standings.Compute(matches)
	require.Len(t, rows, 2)
	assert.NotEqual(t, rows[0].TeamID, rows[1].TeamID)
	assert.Equal(t, 3, rows[0].Points)
	assert.Equal(t, 0, rows[1].Points)
}
