// Package dataversion implements the version-marker and run-counter
// repository. Markers gate re-application of a named data version;
// the counter stamps API-triggered runs with a fresh incremental version.
package dataversion

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/matchday/masterdata/internal/adapter/postgres"
	"github.com/matchday/masterdata/internal/domain"
)

// Repo provides data-version persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new data-version repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getMarkerSQL = `
SELECT entity_name, version, completed, last_updated
FROM data_version
WHERE entity_name = $1 AND version = $2`

// Marker rows are created incomplete on the first gate check and are never
// deleted; only MarkApplied flips completed.
const ensureMarkerSQL = `
INSERT INTO data_version (entity_name, version, completed, last_updated)
VALUES ($1, $2, false, now())
ON CONFLICT (entity_name, version) DO NOTHING`

const markAppliedSQL = `
UPDATE data_version
SET completed = true, last_updated = now()
WHERE entity_name = $1 AND version = $2`

// Single atomic upsert; no read-then-write dance, safe under concurrent
// triggers.
const incrementCounterSQL = `
INSERT INTO version_counter (entity_name, version_count, last_updated)
VALUES ($1, 1, now())
ON CONFLICT (entity_name) DO UPDATE SET
    version_count = version_counter.version_count + 1,
    last_updated  = now()
RETURNING version_count`

// GetMarker returns the marker for (entity, version), or domain.ErrNotFound
// when no gate check has ever recorded one.
func (r *Repo) GetMarker(ctx context.Context, entity, version string) (*domain.VersionMarker, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var m domain.VersionMarker
	err := q.QueryRow(ctx, getMarkerSQL, entity, version).
		Scan(&m.EntityName, &m.Version, &m.Completed, &m.LastUpdated)
	if err != nil {
		return nil, postgres.MapError(err, "data_version", entity+"/"+version)
	}
	return &m, nil
}

// IsApplied reports whether (entity, version) has completed. A missing
// marker is simply "not applied".
func (r *Repo) IsApplied(ctx context.Context, entity, version string) (bool, error) {
	m, err := r.GetMarker(ctx, entity, version)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return m.Completed, nil
}

// EnsureMarker creates an incomplete marker row if none exists yet.
func (r *Repo) EnsureMarker(ctx context.Context, entity, version string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, ensureMarkerSQL, entity, version); err != nil {
		return postgres.MapError(err, "data_version", entity+"/"+version)
	}
	return nil
}

// MarkApplied durably records (entity, version) as completed. It must run in
// its own transaction, after the pipeline has reported success; the gate is
// responsible for that ordering.
func (r *Repo) MarkApplied(ctx context.Context, entity, version string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, markAppliedSQL, entity, version)
	if err != nil {
		return postgres.MapError(err, "data_version", entity+"/"+version)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("data_version %s/%s: mark applied: %w", entity, version, domain.ErrNotFound)
	}
	return nil
}

// IncrementCounter atomically bumps and returns the per-entity run counter.
func (r *Repo) IncrementCounter(ctx context.Context, entity string) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int64
	err := q.QueryRow(ctx, incrementCounterSQL, entity).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("version_counter %s: increment returned no row", entity)
		}
		return 0, postgres.MapError(err, "version_counter", entity)
	}
	return count, nil
}
