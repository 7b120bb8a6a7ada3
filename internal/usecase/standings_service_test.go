package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitchsidehq/pitchside/internal/domain/league"
	"github.com/pitchsidehq/pitchside/internal/domain/match"
	"github.com/pitchsidehq/pitchside/internal/domain/team"
	"github.com/pitchsidehq/pitchside/internal/platform/cache"
	"github.com/pitchsidehq/pitchside/internal/platform/logging"
)

func newStandingsServiceForTest(leagues *stubLeagueRepository, matches *stubMatchRepository, store *cache.Store) *StandingsService {
	return NewStandingsService(leagues, NewMatchService(matches, nil, nil, logging.NewNop()), store)
}

func TestStandingsService_ByLeague(t *testing.T) {
	t.Parallel()

	const leagueID = "league-1"
	leagues := newStubLeagueRepository()
	leagues.byID[leagueID] = league.League{ID: leagueID, Name: "PL", ExternalRef: "148"}

	two, one, zero := 2, 1, 0
	matches := newStubMatchRepository()
	matches.byID["m1"] = match.Match{
		ID: "m1", LeagueID: leagueID,
		HomeTeamID: "team-a", AwayTeamID: "team-b",
		HomeTeamName: "A", AwayTeamName: "B",
		Status: match.StatusFinished, HomeScore: &two, AwayScore: &one,
	}
	matches.byID["m2"] = match.Match{
		ID: "m2", LeagueID: leagueID,
		HomeTeamID: "team-b", AwayTeamID: "team-a",
		HomeTeamName: "B", AwayTeamName: "A",
		Status: match.StatusFinished, HomeScore: &zero, AwayScore: &zero,
	}
	matches.byID["m3"] = match.Match{
		ID: "m3", LeagueID: leagueID,
		HomeTeamID: "team-a", AwayTeamID: "team-b",
		HomeTeamName: "A", AwayTeamName: "B",
		Status: match.StatusUpcoming,
	}

	service := newStandingsServiceForTest(leagues, matches, nil)

	rows, err := service.ByLeague(context.Background(), leagueID)
	if err != nil {
		t.Fatalf("ByLeague error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].TeamID != "team-a" || rows[0].Points != 4 || rows[0].Position != 1 {
		t.Fatalf("unexpected leader row: %+v", rows[0])
	}
	if rows[1].TeamID != "team-b" || rows[1].Points != 1 || rows[1].Position != 2 {
		t.Fatalf("unexpected runner-up row: %+v", rows[1])
	}
}

func TestStandingsService_ByLeague_UnknownLeague(t *testing.T) {
	t.Parallel()

	service := newStandingsServiceForTest(newStubLeagueRepository(), newStubMatchRepository(), nil)

	_, err := service.ByLeague(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStandingsService_ByLeague_CachedTableDroppedBySync(t *testing.T) {
	t.Parallel()

	const leagueID = "league-1"
	leagues := newStubLeagueRepository()
	leagues.byID[leagueID] = league.League{ID: leagueID, Name: "PL", ExternalRef: "148"}
	teams := newStubTeamRepository()
	teams.add(team.Team{ID: "team-a", LeagueID: leagueID, Name: "A", ExternalRef: "home-key"})
	teams.add(team.Team{ID: "team-b", LeagueID: leagueID, Name: "B", ExternalRef: "away-key"})
	matches := newStubMatchRepository()

	store := cache.NewStore(time.Minute)
	service := newStandingsServiceForTest(leagues, matches, store)
	syncSvc := NewSyncService(
		&stubProvider{},
		leagues,
		teams,
		newStubPlayerRepository(),
		matches,
		&stubPayloadRepository{},
		newStubRunRepository(),
		store,
		&seqIDGenerator{},
		SyncConfig{Enabled: true, MaxWorkers: 2},
		logging.NewNop(),
	)

	ctx := context.Background()
	rows, err := service.ByLeague(ctx, leagueID)
	if err != nil {
		t.Fatalf("ByLeague error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected an empty table before any results, got %d rows", len(rows))
	}

	two, one := 2, 1
	result, err := syncSvc.BatchSyncMatches(ctx, []ExternalMatch{{
		Key:          "m-ext-1",
		HomeTeamKey:  "home-key",
		AwayTeamKey:  "away-key",
		HomeTeamName: "A",
		AwayTeamName: "B",
		KickoffAt:    time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC),
		Status:       "finished",
		HomeScore:    &two,
		AwayScore:    &one,
	}}, leagueID)
	if err != nil {
		t.Fatalf("BatchSyncMatches error: %v", err)
	}
	if result.Successful != 1 {
		t.Fatalf("expected 1 synced match, got %+v", result)
	}

	// The landed batch must drop the cached table, not wait for TTL.
	rows, err = service.ByLeague(ctx, leagueID)
	if err != nil {
		t.Fatalf("ByLeague error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("synced result must show up in the table, got %d rows", len(rows))
	}
	if rows[0].TeamID != "team-a" || rows[0].Points != 3 {
		t.Fatalf("unexpected leader row: %+v", rows[0])
	}
}
