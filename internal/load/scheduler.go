package load

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerConfig describes the periodic team load: the fixed data version
// it keeps retrying until applied, the file it loads, and the cadence.
type SchedulerConfig struct {
	Enabled     bool
	Interval    time.Duration
	DataVersion string
	InputPath   string
	CountryCode string
}

// Scheduler periodically retries the team load for one fixed data version.
// Every tick goes through the version gate, so once the version is applied
// each subsequent tick is a cheap no-op. A failed run leaves the version
// marker incomplete and the next tick tries again.
type Scheduler struct {
	log  *slog.Logger
	cfg  SchedulerConfig
	svc  *Service
	cron *cron.Cron
}

// NewScheduler creates a scheduler; Start arms it.
func NewScheduler(log *slog.Logger, cfg SchedulerConfig, svc *Service) *Scheduler {
	return &Scheduler{
		log:  log,
		cfg:  cfg,
		svc:  svc,
		cron: cron.New(),
	}
}

// Start registers the periodic trigger and starts the cron runner.
func (s *Scheduler) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", s.cfg.Interval)
	_, err := s.cron.AddFunc(spec, func() {
		s.tick(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule team load: %w", err)
	}

	s.cron.Start()
	s.log.Info("team load scheduler started",
		slog.Duration("interval", s.cfg.Interval),
		slog.String("data_version", s.cfg.DataVersion),
	)
	return nil
}

// Stop halts the cron runner and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("team load scheduler stopped")
}

func (s *Scheduler) tick(ctx context.Context) {
	report, err := s.svc.RunTeamLoad(ctx, RunRequest{
		InputPath:   s.cfg.InputPath,
		CountryCode: s.cfg.CountryCode,
		Version:     s.cfg.DataVersion,
	})
	if err != nil {
		// A concurrent API-triggered run holds the single-flight slot;
		// just wait for the next tick.
		if errors.Is(err, ErrAlreadyRunning) {
			s.log.Info("scheduled team load deferred, another run in flight")
			return
		}
		s.log.Error("scheduled team load failed",
			slog.String("data_version", s.cfg.DataVersion),
			slog.String("error", err.Error()),
		)
		return
	}

	if report.Outcome == OutcomeApplied {
		s.log.Info("scheduled team load applied",
			slog.String("run_id", report.RunID),
			slog.String("data_version", report.Version),
			slog.Int("written", report.Result.WriteCount),
		)
	}
}
