package load

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/matchday/masterdata/internal/batch"
)

// Outcome classifies how the gate disposed of a run request.
type Outcome string

const (
	// OutcomeApplied means the pipeline ran and the version marker committed.
	OutcomeApplied Outcome = "APPLIED"
	// OutcomeAlreadyApplied means the marker was already completed; the
	// pipeline did not run. A deliberate no-op, not an error.
	OutcomeAlreadyApplied Outcome = "ALREADY_APPLIED"
)

// ErrAlreadyRunning rejects a trigger for an entity whose load is in flight.
var ErrAlreadyRunning = errors.New("a load for this entity is already running")

// VersionStore is the persistence surface the gate needs.
type VersionStore interface {
	IsApplied(ctx context.Context, entity, version string) (bool, error)
	EnsureMarker(ctx context.Context, entity, version string) error
	MarkApplied(ctx context.Context, entity, version string) error
	IncrementCounter(ctx context.Context, entity string) (int64, error)
}

// VersionGate makes load application idempotent per (entity, version).
//
// Check, run, and mark are three separate transactions on purpose: the
// marker is created incomplete before the pipeline starts and flipped to
// completed only after the pipeline reports success. A crash or abort in
// between leaves the marker incomplete, so the version stays eligible for
// retry. The gate is also the single-flight point: at most one run per
// entity is in flight in this process.
type VersionGate struct {
	versions VersionStore
	txr      batch.TxRunner
	log      *slog.Logger

	mu      sync.Mutex
	running map[string]bool
}

// NewVersionGate creates a gate over the version store.
func NewVersionGate(versions VersionStore, txr batch.TxRunner, log *slog.Logger) *VersionGate {
	return &VersionGate{
		versions: versions,
		txr:      txr,
		log:      log,
		running:  make(map[string]bool),
	}
}

// Run executes fn for (entity, version) unless that version is already
// applied or another run for the entity is in flight. On success the marker
// commits in its own transaction; on failure it is left incomplete.
func (g *VersionGate) Run(ctx context.Context, entity, version string, fn func(ctx context.Context) error) (Outcome, error) {
	if !g.acquire(entity) {
		return "", fmt.Errorf("entity %s: %w", entity, ErrAlreadyRunning)
	}
	defer g.release(entity)

	applied, err := g.versions.IsApplied(ctx, entity, version)
	if err != nil {
		return "", fmt.Errorf("check version %s/%s: %w", entity, version, err)
	}
	if applied {
		g.log.Info("data version already applied, skipping load",
			slog.String("entity", entity),
			slog.String("version", version),
		)
		return OutcomeAlreadyApplied, nil
	}

	if err := g.versions.EnsureMarker(ctx, entity, version); err != nil {
		return "", fmt.Errorf("ensure version marker %s/%s: %w", entity, version, err)
	}

	if err := fn(ctx); err != nil {
		// Marker stays incomplete so the version remains retryable.
		return "", err
	}

	err = g.txr.RunInTx(ctx, func(txCtx context.Context) error {
		return g.versions.MarkApplied(txCtx, entity, version)
	})
	if err != nil {
		return "", fmt.Errorf("mark version applied %s/%s: %w", entity, version, err)
	}

	g.log.Info("data version applied",
		slog.String("entity", entity),
		slog.String("version", version),
	)
	return OutcomeApplied, nil
}

// NextVersion stamps a fresh counter-based version for an API-triggered run.
func (g *VersionGate) NextVersion(ctx context.Context, entity string) (string, error) {
	n, err := g.versions.IncrementCounter(ctx, entity)
	if err != nil {
		return "", fmt.Errorf("increment version counter for %s: %w", entity, err)
	}
	return strconv.FormatInt(n, 10), nil
}

func (g *VersionGate) acquire(entity string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running[entity] {
		return false
	}
	g.running[entity] = true
	return true
}

func (g *VersionGate) release(entity string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.running, entity)
}
