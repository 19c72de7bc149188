package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/matchday/masterdata/internal/adapter/postgres"
	competitionrepo "github.com/matchday/masterdata/internal/adapter/postgres/competition"
	countryrepo "github.com/matchday/masterdata/internal/adapter/postgres/country"
	dataversionrepo "github.com/matchday/masterdata/internal/adapter/postgres/dataversion"
	teamrepo "github.com/matchday/masterdata/internal/adapter/postgres/team"
	teamseasonrepo "github.com/matchday/masterdata/internal/adapter/postgres/teamseason"
	"github.com/matchday/masterdata/internal/config"
	"github.com/matchday/masterdata/internal/load"
	competitionsvc "github.com/matchday/masterdata/internal/service/competition"
	teamseasonsvc "github.com/matchday/masterdata/internal/service/teamseason"
	"github.com/matchday/masterdata/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires the repositories, services, and HTTP handlers, starts
// the optional team-load scheduler, and serves until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	countries := countryrepo.New(pool)
	teams := teamrepo.New(pool)
	competitions := competitionrepo.New(pool)
	teamSeasons := teamseasonrepo.New(pool)
	versions := dataversionrepo.New(pool)
	txm := postgres.NewTxManager(pool)

	gate := load.NewVersionGate(versions, txm, logger)
	loadSvc := load.NewService(logger, load.Config{
		ChunkSize:        cfg.Batch.ChunkSize,
		CountrySkipLimit: cfg.Batch.CountrySkipLimit,
		TeamSkipLimit:    cfg.Batch.TeamSkipLimit,
	}, countries, teams, gate, txm)

	competitionSvc := competitionsvc.NewService(logger, competitions, countries, txm)
	teamSeasonSvc := teamseasonsvc.NewService(logger, teamSeasons, teams, competitions, txm)

	router := rest.NewRouter(rest.Handlers{
		Health:      rest.NewHealthHandler(pool, BuildVersion()),
		Batch:       rest.NewBatchHandler(loadSvc, cfg.Batch.BaseDir, logger),
		Competition: rest.NewCompetitionHandler(competitionSvc, logger),
		TeamSeason:  rest.NewTeamSeasonHandler(teamSeasonSvc, logger),
		Catalog:     rest.NewCatalogHandler(countries, teams, logger),
	}, logger)

	var scheduler *load.Scheduler
	if cfg.Scheduler.Enabled {
		scheduler = load.NewScheduler(logger, load.SchedulerConfig{
			Enabled:     true,
			Interval:    cfg.Scheduler.Interval,
			DataVersion: cfg.Scheduler.DataVersion,
			InputPath:   filepath.Join(cfg.Batch.BaseDir, cfg.Scheduler.FileName),
			CountryCode: cfg.Scheduler.CountryCode,
		}, loadSvc)
		if err := scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		defer scheduler.Stop()
	}

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
