package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/pitchsidehq/pitchside/internal/domain/league"
	"github.com/pitchsidehq/pitchside/internal/domain/match"
	"github.com/pitchsidehq/pitchside/internal/domain/player"
	"github.com/pitchsidehq/pitchside/internal/domain/providerpayload"
	"github.com/pitchsidehq/pitchside/internal/domain/syncrun"
	"github.com/pitchsidehq/pitchside/internal/domain/team"
	"github.com/pitchsidehq/pitchside/internal/platform/cache"
	"github.com/pitchsidehq/pitchside/internal/platform/id"
	"github.com/pitchsidehq/pitchside/internal/platform/logging"
)

const (
	defaultSyncWorkers = 8
	maxSyncWorkers     = 32

	reasonTeamsNotFound = "Teams not found"
)

type SyncConfig struct {
	Enabled    bool
	MaxWorkers int
}

// BatchItemResult is the per-record outcome of a batch sync call.
type BatchItemResult struct {
	Ref     string `json:"ref"`
	Name    string `json:"name,omitempty"`
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

type BatchResult struct {
	Successful int               `json:"successful"`
	Failed     int               `json:"failed"`
	Details    []BatchItemResult `json:"details"`
}

type SyncService struct {
	provider    FootballDataProvider
	leagueRepo  league.Repository
	teamRepo    team.Repository
	playerRepo  player.Repository
	matchRepo   match.Repository
	payloadRepo providerpayload.Repository
	runRepo     syncrun.Repository
	store       *cache.Store
	ids         id.Generator
	cfg         SyncConfig
	logger      *logging.Logger
	now         func() time.Time
}

func NewSyncService(
	provider FootballDataProvider,
	leagueRepo league.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	payloadRepo providerpayload.Repository,
	runRepo syncrun.Repository,
	store *cache.Store,
	ids id.Generator,
	cfg SyncConfig,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SyncService{
		provider:    provider,
		leagueRepo:  leagueRepo,
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		matchRepo:   matchRepo,
		payloadRepo: payloadRepo,
		runRepo:     runRepo,
		store:       store,
		ids:         ids,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// SyncLeague upserts one provider league record keyed on its external
// reference. Repeating the call with unchanged input leaves the row in
// place.
func (s *SyncService) SyncLeague(ctx context.Context, record ExternalLeague) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncLeague")
	defer span.End()

	name := strings.TrimSpace(record.Name)
	key := strings.TrimSpace(record.Key)
	if name == "" || key == "" {
		return league.League{}, fmt.Errorf("%w: league name and key are required", ErrMissingRequiredData)
	}

	item := league.League{
		ID:          s.ids.NewID(),
		Name:        name,
		Country:     strings.TrimSpace(record.Country),
		LogoURL:     strings.TrimSpace(record.LogoURL),
		ExternalRef: key,
	}

	stored, err := s.leagueRepo.Upsert(ctx, item)
	if err != nil {
		return league.League{}, fmt.Errorf("sync league %s: %w", key, err)
	}

	return stored, nil
}

func (s *SyncService) SyncTeam(ctx context.Context, record ExternalTeam, leagueID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncTeam")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return team.Team{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(record.Name)
	key := strings.TrimSpace(record.Key)
	if name == "" || key == "" {
		return team.Team{}, fmt.Errorf("%w: team name and key are required", ErrMissingRequiredData)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	syncedAt := s.now()
	item := team.Team{
		ID:              s.ids.NewID(),
		LeagueID:        leagueID,
		Name:            name,
		Country:         strings.TrimSpace(record.Country),
		LogoURL:         strings.TrimSpace(record.LogoURL),
		FoundedYear:     record.FoundedYear,
		StadiumName:     strings.TrimSpace(record.StadiumName),
		StadiumCity:     strings.TrimSpace(record.StadiumCity),
		StadiumCapacity: record.StadiumCapacity,
		VenueAddress:    strings.TrimSpace(record.VenueAddress),
		Coach:           strings.TrimSpace(record.Coach),
		Description:     strings.TrimSpace(record.Description),
		ExternalRef:     key,
		LastSyncedAt:    &syncedAt,
	}

	stored, err := s.teamRepo.Upsert(ctx, item)
	if err != nil {
		return team.Team{}, fmt.Errorf("sync team %s: %w", key, err)
	}

	return stored, nil
}

func (s *SyncService) SyncPlayer(ctx context.Context, record ExternalPlayer, teamID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncPlayer")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return player.Player{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(record.FullName)
	key := strings.TrimSpace(record.Key)
	if name == "" || key == "" {
		return player.Player{}, fmt.Errorf("%w: player name and key are required", ErrMissingRequiredData)
	}

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	item := player.Player{
		ID:          s.ids.NewID(),
		TeamID:      teamID,
		FullName:    name,
		Position:    player.NormalizePosition(record.Position),
		ThumbURL:    strings.TrimSpace(record.ThumbURL),
		Age:         record.Age,
		ShirtNumber: record.ShirtNumber,
		ExternalRef: key,
	}

	stored, err := s.playerRepo.Upsert(ctx, item)
	if err != nil {
		return player.Player{}, fmt.Errorf("sync player %s: %w", key, err)
	}

	return stored, nil
}

// SyncMatch resolves home and away teams by their provider keys before
// upserting. Both lookups run concurrently; an unresolved side fails the
// record with "Teams not found" instead of inventing a placeholder row.
func (s *SyncService) SyncMatch(ctx context.Context, record ExternalMatch, leagueID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncMatch")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return match.Match{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	key := strings.TrimSpace(record.Key)
	homeKey := strings.TrimSpace(record.HomeTeamKey)
	awayKey := strings.TrimSpace(record.AwayTeamKey)
	if key == "" || homeKey == "" || awayKey == "" {
		return match.Match{}, fmt.Errorf("%w: match key and team keys are required", ErrMissingRequiredData)
	}
	if record.KickoffAt.IsZero() {
		return match.Match{}, fmt.Errorf("%w: match kickoff time is required", ErrMissingRequiredData)
	}

	var (
		home, away     team.Team
		homeOK, awayOK bool
		homeErr        error
		awayErr        error
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		home, homeOK, homeErr = s.teamRepo.GetByExternalRef(ctx, homeKey)
	})
	wg.Go(func() {
		away, awayOK, awayErr = s.teamRepo.GetByExternalRef(ctx, awayKey)
	})
	wg.Wait()

	if homeErr != nil {
		return match.Match{}, fmt.Errorf("resolve home team %s: %w", homeKey, homeErr)
	}
	if awayErr != nil {
		return match.Match{}, fmt.Errorf("resolve away team %s: %w", awayKey, awayErr)
	}
	if !homeOK || !awayOK {
		return match.Match{}, fmt.Errorf("%w: %s", ErrMissingRequiredData, reasonTeamsNotFound)
	}
	if home.LeagueID != leagueID || away.LeagueID != leagueID {
		return match.Match{}, fmt.Errorf("%w: match teams do not belong to league %s", ErrInvalidInput, leagueID)
	}

	item := match.Match{
		ID:           s.ids.NewID(),
		LeagueID:     leagueID,
		HomeTeamID:   home.ID,
		AwayTeamID:   away.ID,
		HomeTeamName: home.Name,
		AwayTeamName: away.Name,
		KickoffAt:    record.KickoffAt,
		Venue:        strings.TrimSpace(record.Venue),
		Status:       match.NormalizeStatus(record.Status),
		HomeScore:    record.HomeScore,
		AwayScore:    record.AwayScore,
		ExternalRef:  key,
		Statistics:   record.Statistics,
	}

	stored, err := s.matchRepo.Upsert(ctx, item)
	if err != nil {
		return match.Match{}, fmt.Errorf("sync match %s: %w", key, err)
	}

	return stored, nil
}

func (s *SyncService) BatchSyncLeagues(ctx context.Context, records []ExternalLeague) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.BatchSyncLeagues")
	defer span.End()

	result, err := s.runBatch(ctx, len(records), func(i int) BatchItemResult {
		record := records[i]
		item := BatchItemResult{Ref: record.Key, Name: record.Name}
		if _, err := s.SyncLeague(ctx, record); err != nil {
			item.Reason = err.Error()
			return item
		}
		item.Success = true
		return item
	})
	if err == nil && result.Successful > 0 {
		s.dropCacheEntry(ctx, leagueListCacheKey)
	}

	return result, err
}

func (s *SyncService) BatchSyncTeams(ctx context.Context, records []ExternalTeam, leagueID string) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.BatchSyncTeams")
	defer span.End()

	return s.runBatch(ctx, len(records), func(i int) BatchItemResult {
		record := records[i]
		item := BatchItemResult{Ref: record.Key, Name: record.Name}
		if _, err := s.SyncTeam(ctx, record, leagueID); err != nil {
			item.Reason = err.Error()
			return item
		}
		item.Success = true
		return item
	})
}

func (s *SyncService) BatchSyncPlayers(ctx context.Context, records []ExternalPlayer, teamID string) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.BatchSyncPlayers")
	defer span.End()

	return s.runBatch(ctx, len(records), func(i int) BatchItemResult {
		record := records[i]
		item := BatchItemResult{Ref: record.Key, Name: record.FullName}
		if _, err := s.SyncPlayer(ctx, record, teamID); err != nil {
			item.Reason = err.Error()
			return item
		}
		item.Success = true
		return item
	})
}

func (s *SyncService) BatchSyncMatches(ctx context.Context, records []ExternalMatch, leagueID string) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.BatchSyncMatches")
	defer span.End()

	result, err := s.runBatch(ctx, len(records), func(i int) BatchItemResult {
		record := records[i]
		item := BatchItemResult{
			Ref:  record.Key,
			Name: strings.TrimSpace(record.HomeTeamName + " vs " + record.AwayTeamName),
		}
		if _, err := s.SyncMatch(ctx, record, leagueID); err != nil {
			item.Reason = err.Error()
			return item
		}
		item.Success = true
		return item
	})
	if err == nil && result.Successful > 0 {
		s.dropCacheEntry(ctx, standingsCacheKey(leagueID))
	}

	return result, err
}

// dropCacheEntry keeps cached reads in step with landed sync batches.
// League upserts reshape the catalogue list and match upserts reshape
// the league table, whichever path triggered the batch.
func (s *SyncService) dropCacheEntry(ctx context.Context, key string) {
	if s.store == nil {
		return
	}
	s.store.Delete(ctx, key)
}

// SyncLeaguesFromProvider pulls the provider league catalogue and
// upserts every record. Provider failures surface as upstream errors;
// per-record failures land in the batch details.
func (s *SyncService) SyncLeaguesFromProvider(ctx context.Context) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncLeaguesFromProvider")
	defer span.End()

	if err := s.ready(); err != nil {
		return BatchResult{}, err
	}

	records, payloads, err := s.provider.FetchLeagues(ctx)
	if err != nil {
		return BatchResult{}, fmt.Errorf("%w: fetch leagues: %v", ErrUpstreamUnavailable, err)
	}
	s.archivePayloads(ctx, payloads)

	return s.BatchSyncLeagues(ctx, records)
}

func (s *SyncService) SyncTeamsFromProvider(ctx context.Context, leagueID string) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncTeamsFromProvider")
	defer span.End()

	if err := s.ready(); err != nil {
		return BatchResult{}, err
	}

	lg, err := s.requireLeague(ctx, leagueID)
	if err != nil {
		return BatchResult{}, err
	}

	records, payloads, err := s.provider.FetchTeams(ctx, lg.ExternalRef)
	if err != nil {
		return BatchResult{}, fmt.Errorf("%w: fetch teams league=%s: %v", ErrUpstreamUnavailable, lg.ID, err)
	}
	s.archivePayloads(ctx, payloads)

	return s.BatchSyncTeams(ctx, records, lg.ID)
}

func (s *SyncService) SyncPlayersFromProvider(ctx context.Context, teamID string) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncPlayersFromProvider")
	defer span.End()

	if err := s.ready(); err != nil {
		return BatchResult{}, err
	}

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return BatchResult{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return BatchResult{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return BatchResult{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	records, payloads, err := s.provider.FetchPlayers(ctx, t.ExternalRef)
	if err != nil {
		return BatchResult{}, fmt.Errorf("%w: fetch players team=%s: %v", ErrUpstreamUnavailable, t.ID, err)
	}
	s.archivePayloads(ctx, payloads)

	return s.BatchSyncPlayers(ctx, records, t.ID)
}

func (s *SyncService) SyncMatchesFromProvider(ctx context.Context, leagueID string) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncMatchesFromProvider")
	defer span.End()

	if err := s.ready(); err != nil {
		return BatchResult{}, err
	}

	lg, err := s.requireLeague(ctx, leagueID)
	if err != nil {
		return BatchResult{}, err
	}

	records, payloads, err := s.provider.FetchMatches(ctx, lg.ExternalRef)
	if err != nil {
		return BatchResult{}, fmt.Errorf("%w: fetch matches league=%s: %v", ErrUpstreamUnavailable, lg.ID, err)
	}
	s.archivePayloads(ctx, payloads)

	return s.BatchSyncMatches(ctx, records, lg.ID)
}

func (s *SyncService) requireLeague(ctx context.Context, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	lg, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	return lg, nil
}

// runBatch fans the records out over a bounded worker pool. Records are
// fully independent; one failure never aborts or rolls back siblings.
// Details come back sorted by ref so the result is stable regardless of
// completion order.
func (s *SyncService) runBatch(ctx context.Context, size int, run func(i int) BatchItemResult) (BatchResult, error) {
	if err := s.ready(); err != nil {
		return BatchResult{}, err
	}
	if size == 0 {
		return BatchResult{Details: []BatchItemResult{}}, nil
	}

	workerCount := normalizeSyncWorkerCount(s.cfg.MaxWorkers, size)
	results := make(chan BatchItemResult, size)

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i := 0; i < size; i++ {
		i := i
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			item := run(i)
			if item.Success {
				successCount.Add(1)
			} else {
				failedCount.Add(1)
			}
			results <- item
		}); err != nil {
			workers.Done()
			return BatchResult{}, fmt.Errorf("submit record to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	result := BatchResult{Details: make([]BatchItemResult, 0, size)}
	for item := range results {
		result.Details = append(result.Details, item)
	}
	sort.SliceStable(result.Details, func(i, j int) bool {
		return result.Details[i].Ref < result.Details[j].Ref
	})

	result.Successful = int(successCount.Load())
	result.Failed = int(failedCount.Load())

	return result, nil
}

// SyncAll runs the full provider pipeline: leagues, then per league its
// teams and matches, then per team its players. Stage counts are
// recorded on a sync run row that can be looked up afterwards.
func (s *SyncService) SyncAll(ctx context.Context, trigger string) (syncrun.SyncRun, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncAll")
	defer span.End()

	if err := s.ready(); err != nil {
		return syncrun.SyncRun{}, err
	}
	if trigger = strings.TrimSpace(trigger); trigger == "" {
		trigger = "manual"
	}

	run := syncrun.SyncRun{
		ID:        s.ids.NewID(),
		Trigger:   trigger,
		Status:    syncrun.StatusRunning,
		StartedAt: s.now(),
	}
	if err := s.runRepo.Save(ctx, run); err != nil {
		return syncrun.SyncRun{}, fmt.Errorf("save sync run: %w", err)
	}

	s.logger.InfoContext(ctx, "full sync started", "run_id", run.ID, "trigger", trigger)

	run = s.executePipeline(ctx, run)
	run.Finish(s.now())

	if err := s.runRepo.Save(ctx, run); err != nil {
		return syncrun.SyncRun{}, fmt.Errorf("finalize sync run: %w", err)
	}

	s.logger.InfoContext(ctx, "full sync finished",
		"run_id", run.ID,
		"status", run.Status,
		"stages", len(run.Stages),
	)

	return run, nil
}

func (s *SyncService) executePipeline(ctx context.Context, run syncrun.SyncRun) syncrun.SyncRun {
	leagueRecords, payloads, err := s.provider.FetchLeagues(ctx)
	if err != nil {
		run.Error = fmt.Sprintf("fetch leagues: %v", err)
		return run
	}
	s.archivePayloads(ctx, payloads)

	leagueBatch, err := s.BatchSyncLeagues(ctx, leagueRecords)
	if err != nil {
		run.Error = fmt.Sprintf("batch sync leagues: %v", err)
		return run
	}
	run.Stages = append(run.Stages, stageFromBatch("leagues", leagueBatch))

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		run.Error = fmt.Sprintf("list leagues: %v", err)
		return run
	}

	teamStage := syncrun.StageResult{Stage: "teams"}
	matchStage := syncrun.StageResult{Stage: "matches"}
	playerStage := syncrun.StageResult{Stage: "players"}

	for _, lg := range leagues {
		teamRecords, payloads, err := s.provider.FetchTeams(ctx, lg.ExternalRef)
		if err != nil {
			run.Error = fmt.Sprintf("fetch teams league=%s: %v", lg.ID, err)
			break
		}
		s.archivePayloads(ctx, payloads)

		teamBatch, err := s.BatchSyncTeams(ctx, teamRecords, lg.ID)
		if err != nil {
			run.Error = fmt.Sprintf("batch sync teams league=%s: %v", lg.ID, err)
			break
		}
		mergeStage(&teamStage, teamBatch)

		teams, err := s.teamRepo.ListByLeague(ctx, lg.ID)
		if err != nil {
			run.Error = fmt.Sprintf("list teams league=%s: %v", lg.ID, err)
			break
		}
		for _, t := range teams {
			playerRecords, payloads, err := s.provider.FetchPlayers(ctx, t.ExternalRef)
			if err != nil {
				run.Error = fmt.Sprintf("fetch players team=%s: %v", t.ID, err)
				break
			}
			s.archivePayloads(ctx, payloads)

			playerBatch, err := s.BatchSyncPlayers(ctx, playerRecords, t.ID)
			if err != nil {
				run.Error = fmt.Sprintf("batch sync players team=%s: %v", t.ID, err)
				break
			}
			mergeStage(&playerStage, playerBatch)
		}
		if run.Error != "" {
			break
		}

		// Matches last so team resolution sees this cycle's teams.
		matchRecords, payloads, err := s.provider.FetchMatches(ctx, lg.ExternalRef)
		if err != nil {
			run.Error = fmt.Sprintf("fetch matches league=%s: %v", lg.ID, err)
			break
		}
		s.archivePayloads(ctx, payloads)

		matchBatch, err := s.BatchSyncMatches(ctx, matchRecords, lg.ID)
		if err != nil {
			run.Error = fmt.Sprintf("batch sync matches league=%s: %v", lg.ID, err)
			break
		}
		mergeStage(&matchStage, matchBatch)
	}

	run.Stages = append(run.Stages, teamStage, playerStage, matchStage)

	return run
}

func (s *SyncService) GetRun(ctx context.Context, runID string) (syncrun.SyncRun, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.GetRun")
	defer span.End()

	runID = strings.TrimSpace(runID)
	if runID == "" {
		return syncrun.SyncRun{}, fmt.Errorf("%w: run id is required", ErrInvalidInput)
	}

	run, found, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return syncrun.SyncRun{}, fmt.Errorf("get sync run: %w", err)
	}
	if !found {
		return syncrun.SyncRun{}, fmt.Errorf("%w: sync run=%s", ErrNotFound, runID)
	}

	return run, nil
}

// archivePayloads stores raw provider snapshots best-effort; a failed
// archive write never fails the sync itself.
func (s *SyncService) archivePayloads(ctx context.Context, payloads []providerpayload.Payload) {
	if s.payloadRepo == nil || len(payloads) == 0 {
		return
	}
	if err := s.payloadRepo.UpsertMany(ctx, payloads); err != nil {
		s.logger.WarnContext(ctx, "archive provider payloads failed", "count", len(payloads), "error", err)
	}
}

func (s *SyncService) ready() error {
	if !s.cfg.Enabled {
		return fmt.Errorf("%w: provider sync is disabled (FOOTDATA_ENABLED=false)", ErrDependencyUnavailable)
	}
	if s.provider == nil || s.leagueRepo == nil || s.teamRepo == nil || s.playerRepo == nil || s.matchRepo == nil {
		return fmt.Errorf("%w: provider sync is not fully configured", ErrDependencyUnavailable)
	}

	return nil
}

func stageFromBatch(stage string, batch BatchResult) syncrun.StageResult {
	out := syncrun.StageResult{Stage: stage}
	mergeStage(&out, batch)

	return out
}

func mergeStage(stage *syncrun.StageResult, batch BatchResult) {
	stage.Successful += batch.Successful
	stage.Failed += batch.Failed
	for _, item := range batch.Details {
		if item.Success {
			continue
		}
		stage.Details = append(stage.Details, syncrun.ItemResult{
			Ref:     item.Ref,
			Name:    item.Name,
			Success: false,
			Reason:  item.Reason,
		})
	}
}

func normalizeSyncWorkerCount(requested, taskCount int) int {
	count := requested
	if count <= 0 {
		count = defaultSyncWorkers
	}
	if count > maxSyncWorkers {
		count = maxSyncWorkers
	}
	if taskCount > 0 && count > taskCount {
		count = taskCount
	}

	return count
}
