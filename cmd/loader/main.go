// Command loader runs one master-data load from the command line, without
// the HTTP server. It is intended for backfills and operational one-offs.
//
// Flags:
//
//	--entity        country or team (required)
//	--file          input file name, resolved under the batch base directory
//	--country-code  country tag for team loads
//	--version       data version to gate the run (default: stamp a fresh one)
//	--dry-run       read and validate the file without writing to DB
//
// Exit codes: 0 = success (including already-applied versions), 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/matchday/masterdata/internal/adapter/postgres"
	countryrepo "github.com/matchday/masterdata/internal/adapter/postgres/country"
	dataversionrepo "github.com/matchday/masterdata/internal/adapter/postgres/dataversion"
	teamrepo "github.com/matchday/masterdata/internal/adapter/postgres/team"
	"github.com/matchday/masterdata/internal/app"
	"github.com/matchday/masterdata/internal/config"
	"github.com/matchday/masterdata/internal/domain"
	"github.com/matchday/masterdata/internal/load"
)

// Compile-time interface assertions.
var (
	_ load.CountryStore = (*countryrepo.Repo)(nil)
	_ load.TeamUpserter = (*teamrepo.Repo)(nil)
	_ load.VersionStore = (*dataversionrepo.Repo)(nil)
)

func main() {
	entityFlag := flag.String("entity", "", "entity to load: country or team")
	fileFlag := flag.String("file", "", "input file name under the batch base directory")
	countryCodeFlag := flag.String("country-code", "", "country tag for team loads")
	versionFlag := flag.String("version", "", "data version to gate the run")
	dryRunFlag := flag.Bool("dry-run", false, "read and validate the file without writing to DB")
	flag.Parse()

	if *entityFlag != "country" && *entityFlag != "team" {
		log.Fatalf("--entity must be country or team, got %q", *entityFlag)
	}
	if *fileFlag == "" {
		log.Fatal("--file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	var (
		countries load.CountryStore = countryrepo.New(pool)
		teams     load.TeamUpserter = teamrepo.New(pool)
		versions  load.VersionStore = dataversionrepo.New(pool)
	)
	if *dryRunFlag {
		logger.Info("dry run, nothing will be written")
		countries = &dryRunCountryStore{inner: countries}
		teams = dryRunTeamStore{}
		versions = newMemVersionStore()
	}

	gate := load.NewVersionGate(versions, txm, logger)
	svc := load.NewService(logger, load.Config{
		ChunkSize:        cfg.Batch.ChunkSize,
		CountrySkipLimit: cfg.Batch.CountrySkipLimit,
		TeamSkipLimit:    cfg.Batch.TeamSkipLimit,
	}, countries, teams, gate, txm)

	req := load.RunRequest{
		InputPath:   filepath.Join(cfg.Batch.BaseDir, *fileFlag),
		CountryCode: *countryCodeFlag,
		Version:     *versionFlag,
	}

	var report *load.RunReport
	if *entityFlag == "country" {
		report, err = svc.RunCountryLoad(ctx, req)
	} else {
		report, err = svc.RunTeamLoad(ctx, req)
	}
	if err != nil {
		logger.Error("load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("load finished",
		slog.String("entity", report.Entity),
		slog.String("version", report.Version),
		slog.String("outcome", string(report.Outcome)),
		slog.String("status", string(report.Result.Status)),
		slog.Int("read", report.Result.ReadCount),
		slog.Int("written", report.Result.WriteCount),
		slog.Int("filtered", report.Result.FilterCount),
		slog.Int("skipped", report.Result.SkipCount),
	)
}

// dryRunCountryStore resolves codes through the real repository but drops
// writes, so team-load dry runs still validate country references.
type dryRunCountryStore struct {
	inner load.CountryStore
}

func (s *dryRunCountryStore) Upsert(_ context.Context, _ *domain.Country) error {
	return nil
}

func (s *dryRunCountryStore) FindIDByCode(ctx context.Context, code string) (int64, bool, error) {
	return s.inner.FindIDByCode(ctx, code)
}

// dryRunTeamStore drops all team writes.
type dryRunTeamStore struct{}

func (dryRunTeamStore) Upsert(_ context.Context, _ *domain.Team) error {
	return nil
}

// memVersionStore keeps version markers and counters in memory so a dry run
// never records its version as applied.
type memVersionStore struct {
	mu       sync.Mutex
	markers  map[string]bool
	counters map[string]int64
}

func newMemVersionStore() *memVersionStore {
	return &memVersionStore{
		markers:  make(map[string]bool),
		counters: make(map[string]int64),
	}
}

func (s *memVersionStore) IsApplied(_ context.Context, entity, version string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markers[entity+"/"+version], nil
}

func (s *memVersionStore) EnsureMarker(_ context.Context, entity, version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := entity + "/" + version
	if _, ok := s.markers[key]; !ok {
		s.markers[key] = false
	}
	return nil
}

func (s *memVersionStore) MarkApplied(_ context.Context, entity, version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers[entity+"/"+version] = true
	return nil
}

func (s *memVersionStore) IncrementCounter(_ context.Context, entity string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[entity]++
	return s.counters[entity], nil
}
