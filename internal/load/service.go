// Package load assembles the master-data pipelines: entity-specific
// processors and writers plugged into the batch engine, the idempotent
// version gate in front of them, and the periodic scheduler behind it.
package load

import (
	"context"
	"log/slog"

	"github.com/matchday/masterdata/internal/batch"
	"github.com/matchday/masterdata/internal/domain"
)

// Config tunes the load pipelines. Team loads get a larger skip budget
// because team files are bigger and dirtier than the country reference file.
type Config struct {
	ChunkSize        int
	CountrySkipLimit int
	TeamSkipLimit    int
}

// CountryStore is the country persistence surface the load service needs:
// the country pipeline writes through it and the team pipeline resolves
// country codes through it.
type CountryStore interface {
	CountryUpserter
	CountryResolver
}

// Service launches the master-data load pipelines behind the version gate.
type Service struct {
	log       *slog.Logger
	cfg       Config
	countries CountryStore
	teams     TeamUpserter
	gate      *VersionGate
	txr       batch.TxRunner
}

// NewService wires the load service.
func NewService(
	log *slog.Logger,
	cfg Config,
	countries CountryStore,
	teams TeamUpserter,
	gate *VersionGate,
	txr batch.TxRunner,
) *Service {
	return &Service{
		log:       log,
		cfg:       cfg,
		countries: countries,
		teams:     teams,
		gate:      gate,
		txr:       txr,
	}
}

// RunRequest parameterizes one load run.
type RunRequest struct {
	// InputPath is the absolute path of the delimited input file.
	InputPath string
	// CountryCode tags team runs with the country the file belongs to.
	CountryCode string
	// Version gates the run. Empty means "stamp a fresh counter version",
	// which is what API triggers do; the scheduler passes a fixed version.
	Version string
}

// RunReport is the outward summary of one load run.
type RunReport struct {
	RunID     string
	Entity    string
	Version   string
	Outcome   Outcome
	InputPath string
	ErrorPath string
	Result    batch.StepResult
}

// RunCountryLoad runs the country pipeline for req behind the version gate.
func (s *Service) RunCountryLoad(ctx context.Context, req RunRequest) (*RunReport, error) {
	return s.run(ctx, domain.EntityCountry, req, func(runCtx context.Context, identity RunIdentity, listener batch.SkipListener) (batch.StepResult, error) {
		step := NewCountryStep(s.log, identity.InputPath, s.countries, s.txr, batch.StepConfig{
			ChunkSize: s.cfg.ChunkSize,
			SkipLimit: s.cfg.CountrySkipLimit,
			Listener:  listener,
		})
		return step.Execute(runCtx)
	})
}

// RunTeamLoad runs the team pipeline for req behind the version gate.
func (s *Service) RunTeamLoad(ctx context.Context, req RunRequest) (*RunReport, error) {
	lookup := NewCountryLookup(s.countries)
	return s.run(ctx, domain.EntityTeam, req, func(runCtx context.Context, identity RunIdentity, listener batch.SkipListener) (batch.StepResult, error) {
		step := NewTeamStep(s.log, identity.InputPath, s.teams, lookup, s.txr, batch.StepConfig{
			ChunkSize: s.cfg.ChunkSize,
			SkipLimit: s.cfg.TeamSkipLimit,
			Listener:  listener,
		})
		return step.Execute(runCtx)
	})
}

func (s *Service) run(
	ctx context.Context,
	entity string,
	req RunRequest,
	execute func(ctx context.Context, identity RunIdentity, listener batch.SkipListener) (batch.StepResult, error),
) (*RunReport, error) {
	version := req.Version
	if version == "" {
		v, err := s.gate.NextVersion(ctx, entity)
		if err != nil {
			return nil, err
		}
		version = v
	}

	identity := NewRunIdentity(entity, version, req.CountryCode, req.InputPath)

	s.log.Info("launching load",
		slog.String("entity", entity),
		slog.String("run_id", identity.ID.String()),
		slog.String("version", version),
		slog.String("input", identity.InputPath),
	)

	report := &RunReport{
		RunID:     identity.ID.String(),
		Entity:    entity,
		Version:   version,
		InputPath: identity.InputPath,
		ErrorPath: identity.ErrorPath,
	}

	listener := newErrorFileListener(
		batch.NewLogSkipListener(s.log, entity),
		s.log,
		identity.ErrorPath,
	)
	defer listener.Close()

	outcome, err := s.gate.Run(ctx, entity, version, func(runCtx context.Context) error {
		res, execErr := execute(runCtx, identity, listener)
		report.Result = res
		return execErr
	})
	if err != nil {
		return report, err
	}

	report.Outcome = outcome
	return report, nil
}
