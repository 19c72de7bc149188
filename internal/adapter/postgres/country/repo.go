// Package country implements the Country repository using PostgreSQL.
// Country is reference data: written only by the country load pipeline,
// read by everything that resolves a country code to its surrogate id.
package country

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/matchday/masterdata/internal/adapter/postgres"
	"github.com/matchday/masterdata/internal/domain"
)

// Repo provides country persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new country repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// The upsert key is the natural code, never the surrogate id. created_at is
// only set on insert; conflicting rows keep their original creation time.
const upsertSQL = `
INSERT INTO country (code, name, created_at, updated_at, updated_by)
VALUES ($1, $2, now(), now(), $3)
ON CONFLICT (code) DO UPDATE SET
    name       = EXCLUDED.name,
    updated_at = now(),
    updated_by = EXCLUDED.updated_by`

const findIDByCodeSQL = `
SELECT country_id FROM country WHERE code = $1`

const getByCodeSQL = `
SELECT country_id, code, name, created_at, updated_at, updated_by
FROM country
WHERE code = $1`

const getByNameSQL = `
SELECT country_id, code, name, created_at, updated_at, updated_by
FROM country
WHERE name = $1`

// Upsert inserts the country or, when a row with the same code exists,
// refreshes its non-key columns and audit attribution. Repeated application
// of the same input therefore converges.
func (r *Repo) Upsert(ctx context.Context, c *domain.Country) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, upsertSQL, c.Code, c.Name, c.UpdatedBy); err != nil {
		return postgres.MapError(err, "country", c.Code)
	}
	return nil
}

// FindIDByCode resolves a country code to its surrogate id. Absence is a
// normal outcome reported by the boolean, not an error. Callers are
// expected to normalize the code first.
func (r *Repo) FindIDByCode(ctx context.Context, code string) (int64, bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err := q.QueryRow(ctx, findIDByCodeSQL, code).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, postgres.MapError(err, "country", code)
	}
	return id, true, nil
}

// GetByCode returns a country by its natural key.
// Returns domain.ErrNotFound when no such code exists.
func (r *Repo) GetByCode(ctx context.Context, code string) (*domain.Country, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var c domain.Country
	err := q.QueryRow(ctx, getByCodeSQL, code).
		Scan(&c.ID, &c.Code, &c.Name, &c.CreatedAt, &c.UpdatedAt, &c.UpdatedBy)
	if err != nil {
		return nil, postgres.MapError(err, "country", code)
	}
	return &c, nil
}

// GetByName returns a country by its display name.
// Returns domain.ErrNotFound when no such country exists.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Country, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var c domain.Country
	err := q.QueryRow(ctx, getByNameSQL, name).
		Scan(&c.ID, &c.Code, &c.Name, &c.CreatedAt, &c.UpdatedAt, &c.UpdatedBy)
	if err != nil {
		return nil, postgres.MapError(err, "country", name)
	}
	return &c, nil
}

// ListFilter narrows List results. Zero value lists everything.
type ListFilter struct {
	// Search matches name via ILIKE '%...%'.
	Search string
	Limit  int
}

// List returns countries ordered by code.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, filter ListFilter) ([]*domain.Country, error) {
	builder := sq.Select("country_id", "code", "name", "created_at", "updated_at", "updated_by").
		From("country").
		OrderBy("code").
		PlaceholderFormat(sq.Dollar)

	if filter.Search != "" {
		builder = builder.Where(sq.ILike{"name": "%" + filter.Search + "%"})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list countries query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	countries := make([]*domain.Country, 0)
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.CreatedAt, &c.UpdatedAt, &c.UpdatedBy); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		countries = append(countries, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate countries: %w", err)
	}

	return countries, nil
}
