// Package app assembles the configured application: database, repositories,
// external clients, services, HTTP router and the sync scheduler.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/robfig/cron/v3"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/pitchsidehq/pitchside/external/footdata"
	"github.com/pitchsidehq/pitchside/external/jobqueue"
	"github.com/pitchsidehq/pitchside/external/textgen"
	"github.com/pitchsidehq/pitchside/internal/config"
	"github.com/pitchsidehq/pitchside/internal/infrastructure/repository/postgres"
	"github.com/pitchsidehq/pitchside/internal/interfaces/httpapi"
	"github.com/pitchsidehq/pitchside/internal/platform/cache"
	idgen "github.com/pitchsidehq/pitchside/internal/platform/id"
	"github.com/pitchsidehq/pitchside/internal/platform/logging"
	"github.com/pitchsidehq/pitchside/internal/platform/resilience"
	"github.com/pitchsidehq/pitchside/internal/usecase"
)

// App owns every long-lived component so main can start and stop them
// as one unit.
type App struct {
	Server    *http.Server
	scheduler *cron.Cron
	db        *sqlx.DB
	logger    *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	leagueRepo := postgres.NewLeagueRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)
	userRepo := postgres.NewUserRepository(db)
	payloadRepo := postgres.NewProviderPayloadRepository(db)
	runRepo := postgres.NewSyncRunRepository(db)

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	var provider usecase.FootballDataProvider
	if cfg.FootDataEnabled {
		provider = footdata.NewClient(footdata.ClientConfig{
			BaseURL:    cfg.FootDataBaseURL,
			APIKey:     cfg.FootDataAPIKey,
			Timeout:    cfg.FootDataTimeout,
			MaxRetries: cfg.FootDataMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.FootDataCircuitEnabled,
				FailureThreshold: cfg.FootDataCircuitFailureCount,
				OpenTimeout:      cfg.FootDataCircuitOpenTimeout,
			},
		})
	}

	var generator usecase.MatchTextGenerator
	if cfg.TextGenEnabled {
		generator = textgen.NewClient(textgen.ClientConfig{
			BaseURL:    cfg.TextGenBaseURL,
			APIKey:     cfg.TextGenAPIKey,
			Model:      cfg.TextGenModel,
			Timeout:    cfg.TextGenTimeout,
			MaxRetries: cfg.TextGenMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.TextGenCircuitEnabled,
				FailureThreshold: cfg.TextGenCircuitFailureCount,
				OpenTimeout:      cfg.TextGenCircuitOpenTimeout,
			},
		})
	}

	ids := idgen.NewUUIDGenerator()

	leagueSvc := usecase.NewLeagueService(leagueRepo, store)
	teamSvc := usecase.NewTeamService(teamRepo)
	playerSvc := usecase.NewPlayerService(playerRepo, teamRepo)
	matchSvc := usecase.NewMatchService(matchRepo, leagueRepo, generator, logger)
	standingsSvc := usecase.NewStandingsService(leagueRepo, matchSvc, store)
	favoriteSvc := usecase.NewFavoriteService(favoriteRepo, teamRepo, ids)
	authSvc := usecase.NewAuthService(userRepo)
	syncSvc := usecase.NewSyncService(
		provider,
		leagueRepo,
		teamRepo,
		playerRepo,
		matchRepo,
		payloadRepo,
		runRepo,
		store,
		ids,
		usecase.SyncConfig{Enabled: cfg.FootDataEnabled, MaxWorkers: cfg.SyncMaxWorkers},
		logger,
	)

	handler := httpapi.NewHandler(leagueSvc, standingsSvc, teamSvc, playerSvc, matchSvc, favoriteSvc, syncSvc, logger)
	router := httpapi.NewRouter(handler, authSvc, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	application := &App{
		Server: server,
		db:     db,
		logger: logger,
	}

	if cfg.SyncCronEnabled {
		scheduler, err := newSyncScheduler(cfg, logger, syncSvc)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		application.scheduler = scheduler
	}

	return application, nil
}

// Start launches background components. The HTTP server itself is
// started by the caller so listen errors stay on the main goroutine.
func (a *App) Start() {
	if a.scheduler != nil {
		a.scheduler.Start()
	}
}

func (a *App) Close(ctx context.Context) error {
	if a.scheduler != nil {
		stopCtx := a.scheduler.Stop()
		select {
		case <-stopCtx.Done():
		case <-ctx.Done():
		}
	}

	if err := a.Server.Shutdown(ctx); err != nil {
		_ = a.db.Close()
		return err
	}

	return a.db.Close()
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

func newSyncScheduler(cfg config.Config, logger *logging.Logger, syncSvc *usecase.SyncService) (*cron.Cron, error) {
	var publisher *jobqueue.QStashPublisher
	if cfg.QStashEnabled {
		publisher = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
			},
		}, logger)
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(cfg.SyncCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		runScheduledSync(ctx, logger, publisher, syncSvc)
	})
	if err != nil {
		return nil, fmt.Errorf("register sync cron %q: %w", cfg.SyncCronSpec, err)
	}

	return scheduler, nil
}

// runScheduledSync either hands the run to QStash so it arrives back
// through the internal HTTP endpoint, or performs it in-process when no
// queue is configured.
func runScheduledSync(ctx context.Context, logger *logging.Logger, publisher *jobqueue.QStashPublisher, syncSvc *usecase.SyncService) {
	if publisher != nil {
		dedupID := "sync-all-" + time.Now().UTC().Format("2006-01-02T15")
		payload := map[string]string{"trigger": "cron"}
		if err := publisher.Enqueue(ctx, "/v1/internal/sync/all", payload, 0, dedupID); err != nil {
			logger.ErrorContext(ctx, "enqueue scheduled sync failed", "error", err)
		}
		return
	}

	run, err := syncSvc.SyncAll(ctx, "cron")
	if err != nil {
		logger.ErrorContext(ctx, "scheduled sync failed", "error", err)
		return
	}
	logger.InfoContext(ctx, "scheduled sync finished", "run_id", run.ID, "status", run.Status)
}
