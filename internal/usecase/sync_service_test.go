package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pitchsidehq/pitchside/internal/domain/league"
	"github.com/pitchsidehq/pitchside/internal/domain/syncrun"
	"github.com/pitchsidehq/pitchside/internal/domain/team"
	"github.com/pitchsidehq/pitchside/internal/platform/cache"
	"github.com/pitchsidehq/pitchside/internal/platform/logging"
)

func newSyncServiceForTest(provider FootballDataProvider, leagues *stubLeagueRepository, teams *stubTeamRepository, players *stubPlayerRepository, matches *stubMatchRepository, runs *stubRunRepository, payloads *stubPayloadRepository) *SyncService {
	return NewSyncService(
		provider,
		leagues,
		teams,
		players,
		matches,
		payloads,
		runs,
		nil,
		&seqIDGenerator{},
		SyncConfig{Enabled: true, MaxWorkers: 4},
		logging.NewNop(),
	)
}

func TestSyncService_SyncLeague_RequiresNameAndKey(t *testing.T) {
	t.Parallel()

	service := newSyncServiceForTest(&stubProvider{}, newStubLeagueRepository(), newStubTeamRepository(), newStubPlayerRepository(), newStubMatchRepository(), newStubRunRepository(), &stubPayloadRepository{})

	_, err := service.SyncLeague(context.Background(), ExternalLeague{Name: "Premier League"})
	if !errors.Is(err, ErrMissingRequiredData) {
		t.Fatalf("expected ErrMissingRequiredData, got %v", err)
	}

	_, err = service.SyncLeague(context.Background(), ExternalLeague{Key: "148"})
	if !errors.Is(err, ErrMissingRequiredData) {
		t.Fatalf("expected ErrMissingRequiredData, got %v", err)
	}
}

func TestSyncService_SyncLeague_UpsertKeepsIdentity(t *testing.T) {
	t.Parallel()

	leagues := newStubLeagueRepository()
	service := newSyncServiceForTest(&stubProvider{}, leagues, newStubTeamRepository(), newStubPlayerRepository(), newStubMatchRepository(), newStubRunRepository(), &stubPayloadRepository{})

	record := ExternalLeague{Key: "148", Name: "Premier League", Country: "England"}

	first, err := service.SyncLeague(context.Background(), record)
	if err != nil {
		t.Fatalf("first sync error: %v", err)
	}

	record.LogoURL = "https://cdn.example/pl.png"
	second, err := service.SyncLeague(context.Background(), record)
	if err != nil {
		t.Fatalf("second sync error: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("resync must keep the stored id: %s vs %s", first.ID, second.ID)
	}
	if second.LogoURL != record.LogoURL {
		t.Fatalf("resync must update fields in place, got %+v", second)
	}
	if len(leagues.byRef) != 1 {
		t.Fatalf("expected a single stored league, got %d", len(leagues.byRef))
	}
}

func TestSyncService_SyncMatch_TeamsNotFound(t *testing.T) {
	t.Parallel()

	leagues := newStubLeagueRepository()
	leagues.byID["league-1"] = league.League{ID: "league-1", Name: "PL", ExternalRef: "148"}
	teams := newStubTeamRepository()
	teams.add(team.Team{ID: "team-h", LeagueID: "league-1", Name: "Home", ExternalRef: "home-key"})

	service := newSyncServiceForTest(&stubProvider{}, leagues, teams, newStubPlayerRepository(), newStubMatchRepository(), newStubRunRepository(), &stubPayloadRepository{})

	_, err := service.SyncMatch(context.Background(), ExternalMatch{
		Key:         "m1",
		HomeTeamKey: "home-key",
		AwayTeamKey: "missing-key",
		KickoffAt:   time.Now(),
	}, "league-1")
	if !errors.Is(err, ErrMissingRequiredData) {
		t.Fatalf("expected ErrMissingRequiredData, got %v", err)
	}
	if !strings.Contains(err.Error(), reasonTeamsNotFound) {
		t.Fatalf("expected %q in error, got %v", reasonTeamsNotFound, err)
	}
}

func TestSyncService_SyncMatch_RejectsCrossLeagueTeams(t *testing.T) {
	t.Parallel()

	leagues := newStubLeagueRepository()
	leagues.byID["league-1"] = league.League{ID: "league-1", Name: "PL", ExternalRef: "148"}
	teams := newStubTeamRepository()
	teams.add(team.Team{ID: "team-h", LeagueID: "league-1", Name: "Home", ExternalRef: "home-key"})
	teams.add(team.Team{ID: "team-a", LeagueID: "league-2", Name: "Away", ExternalRef: "away-key"})

	service := newSyncServiceForTest(&stubProvider{}, leagues, teams, newStubPlayerRepository(), newStubMatchRepository(), newStubRunRepository(), &stubPayloadRepository{})

	_, err := service.SyncMatch(context.Background(), ExternalMatch{
		Key:         "m1",
		HomeTeamKey: "home-key",
		AwayTeamKey: "away-key",
		KickoffAt:   time.Now(),
	}, "league-1")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSyncService_BatchSyncTeams_IsolatesFailures(t *testing.T) {
	t.Parallel()

	leagues := newStubLeagueRepository()
	leagues.byID["league-1"] = league.League{ID: "league-1", Name: "PL", ExternalRef: "148"}
	teams := newStubTeamRepository()

	service := newSyncServiceForTest(&stubProvider{}, leagues, teams, newStubPlayerRepository(), newStubMatchRepository(), newStubRunRepository(), &stubPayloadRepository{})

	records := []ExternalTeam{
		{Key: "t1", Name: "Arsenal"},
		{Key: "t2"}, // malformed: no name
		{Key: "t3", Name: "Chelsea"},
		{Key: "t4", Name: "Liverpool"},
	}

	result, err := service.BatchSyncTeams(context.Background(), records, "league-1")
	if err != nil {
		t.Fatalf("batch error: %v", err)
	}

	if result.Successful != 3 || result.Failed != 1 {
		t.Fatalf("expected 3/1, got %d/%d", result.Successful, result.Failed)
	}
	if len(result.Details) != 4 {
		t.Fatalf("expected 4 detail rows, got %d", len(result.Details))
	}
	for _, item := range result.Details {
		if item.Ref == "t2" {
			if item.Success || item.Reason == "" {
				t.Fatalf("malformed record must be reported failed with a reason: %+v", item)
			}
		} else if !item.Success {
			t.Fatalf("sibling record must not be affected: %+v", item)
		}
	}
	if len(teams.byRef) != 3 {
		t.Fatalf("expected 3 persisted teams, got %d", len(teams.byRef))
	}
}

func TestSyncService_BatchSync_DetailsAreDeterministic(t *testing.T) {
	t.Parallel()

	leagues := newStubLeagueRepository()
	service := newSyncServiceForTest(&stubProvider{}, leagues, newStubTeamRepository(), newStubPlayerRepository(), newStubMatchRepository(), newStubRunRepository(), &stubPayloadRepository{})

	records := make([]ExternalLeague, 0, 20)
	for i := 0; i < 20; i++ {
		records = append(records, ExternalLeague{
			Key:  fmt.Sprintf("league-%02d", i),
			Name: fmt.Sprintf("League %02d", i),
		})
	}

	first, err := service.BatchSyncLeagues(context.Background(), records)
	if err != nil {
		t.Fatalf("batch error: %v", err)
	}
	second, err := service.BatchSyncLeagues(context.Background(), records)
	if err != nil {
		t.Fatalf("batch error: %v", err)
	}

	for i := range first.Details {
		if first.Details[i].Ref != second.Details[i].Ref {
			t.Fatalf("detail order must not depend on completion order: %v vs %v", first.Details[i], second.Details[i])
		}
	}
}

func TestSyncService_BatchSyncLeagues_DropsCachedCatalogue(t *testing.T) {
	t.Parallel()

	store := cache.NewStore(time.Minute)
	ctx := context.Background()
	store.Set(ctx, leagueListCacheKey, []league.League{})

	service := NewSyncService(
		&stubProvider{},
		newStubLeagueRepository(),
		newStubTeamRepository(),
		newStubPlayerRepository(),
		newStubMatchRepository(),
		&stubPayloadRepository{},
		newStubRunRepository(),
		store,
		&seqIDGenerator{},
		SyncConfig{Enabled: true, MaxWorkers: 2},
		logging.NewNop(),
	)

	// A batch with no successful record must leave the cache alone.
	if _, err := service.BatchSyncLeagues(ctx, []ExternalLeague{{Name: "No Key"}}); err != nil {
		t.Fatalf("batch error: %v", err)
	}
	if _, ok := store.Get(ctx, leagueListCacheKey); !ok {
		t.Fatalf("a failed batch must not drop the cached catalogue")
	}

	if _, err := service.BatchSyncLeagues(ctx, []ExternalLeague{{Key: "148", Name: "Premier League"}}); err != nil {
		t.Fatalf("batch error: %v", err)
	}
	if _, ok := store.Get(ctx, leagueListCacheKey); ok {
		t.Fatalf("a landed league batch must drop the cached catalogue")
	}
}

func TestSyncService_Disabled(t *testing.T) {
	t.Parallel()

	service := NewSyncService(
		&stubProvider{},
		newStubLeagueRepository(),
		newStubTeamRepository(),
		newStubPlayerRepository(),
		newStubMatchRepository(),
		&stubPayloadRepository{},
		newStubRunRepository(),
		nil,
		&seqIDGenerator{},
		SyncConfig{Enabled: false},
		logging.NewNop(),
	)

	_, err := service.BatchSyncLeagues(context.Background(), nil)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestSyncService_SyncAll_Pipeline(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		leagues: []ExternalLeague{{Key: "148", Name: "Premier League"}},
		teams: map[string][]ExternalTeam{
			"148": {
				{Key: "home-key", Name: "Arsenal"},
				{Key: "away-key", Name: "Chelsea"},
			},
		},
		players: map[string][]ExternalPlayer{
			"home-key": {{Key: "p1", FullName: "Bukayo Saka", Position: "Forward"}},
		},
		matches: map[string][]ExternalMatch{
			"148": {
				{
					Key:         "m1",
					HomeTeamKey: "home-key",
					AwayTeamKey: "away-key",
					KickoffAt:   time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC),
					Status:      "finished",
				},
				{
					Key:         "m2",
					HomeTeamKey: "home-key",
					AwayTeamKey: "unknown-key",
					KickoffAt:   time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC),
				},
			},
		},
	}

	leagues := newStubLeagueRepository()
	teams := newStubTeamRepository()
	players := newStubPlayerRepository()
	matches := newStubMatchRepository()
	runs := newStubRunRepository()
	payloads := &stubPayloadRepository{}

	service := newSyncServiceForTest(provider, leagues, teams, players, matches, runs, payloads)

	run, err := service.SyncAll(context.Background(), "test")
	if err != nil {
		t.Fatalf("SyncAll error: %v", err)
	}

	if run.Status != syncrun.StatusPartial {
		t.Fatalf("one unresolved match should make the run partial, got %s", run.Status)
	}
	if run.FinishedAt == nil {
		t.Fatalf("run must be stamped finished")
	}

	byStage := map[string]syncrun.StageResult{}
	for _, stage := range run.Stages {
		byStage[stage.Stage] = stage
	}
	if s := byStage["leagues"]; s.Successful != 1 || s.Failed != 0 {
		t.Fatalf("unexpected leagues stage: %+v", s)
	}
	if s := byStage["teams"]; s.Successful != 2 || s.Failed != 0 {
		t.Fatalf("unexpected teams stage: %+v", s)
	}
	if s := byStage["players"]; s.Successful != 1 || s.Failed != 0 {
		t.Fatalf("unexpected players stage: %+v", s)
	}
	if s := byStage["matches"]; s.Successful != 1 || s.Failed != 1 {
		t.Fatalf("unexpected matches stage: %+v", s)
	}

	if len(payloads.items) == 0 {
		t.Fatalf("raw provider payloads should be archived")
	}

	stored, err := service.GetRun(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("GetRun error: %v", err)
	}
	if stored.Status != run.Status {
		t.Fatalf("stored run status mismatch: %s vs %s", stored.Status, run.Status)
	}
}

func TestSyncService_SyncAll_ProviderDown(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{leaguesErr: fmt.Errorf("connect: refused")}
	runs := newStubRunRepository()
	service := newSyncServiceForTest(provider, newStubLeagueRepository(), newStubTeamRepository(), newStubPlayerRepository(), newStubMatchRepository(), runs, &stubPayloadRepository{})

	run, err := service.SyncAll(context.Background(), "test")
	if err != nil {
		t.Fatalf("SyncAll must record provider failure on the run, got %v", err)
	}
	if run.Status != syncrun.StatusFailed {
		t.Fatalf("expected failed run, got %s", run.Status)
	}
	if run.Error == "" {
		t.Fatalf("run error must name the failing fetch")
	}
}
