// Package competition implements the Competition repository using PostgreSQL.
// Competitions are created through the ad-hoc API path, not the batch
// pipeline; name is the unique natural key.
package competition

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/matchday/masterdata/internal/adapter/postgres"
	"github.com/matchday/masterdata/internal/domain"
)

// Repo provides competition persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new competition repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO competition (name, country_id, created_at, updated_at, updated_by)
VALUES ($1, $2, now(), now(), $3)
RETURNING competition_id, created_at, updated_at`

const getByNameSQL = `
SELECT competition_id, name, country_id, created_at, updated_at, updated_by
FROM competition
WHERE name = $1`

// Create inserts a new competition. Returns domain.ErrAlreadyExists when the
// name is taken and domain.ErrConflict when the country reference is invalid.
func (r *Repo) Create(ctx context.Context, c *domain.Competition) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	err := q.QueryRow(ctx, createSQL, c.Name, c.CountryID, c.UpdatedBy).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "competition", c.Name)
	}
	return nil
}

// GetByName returns a competition by its natural key.
// Returns domain.ErrNotFound when no such competition exists.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Competition, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var c domain.Competition
	err := q.QueryRow(ctx, getByNameSQL, name).
		Scan(&c.ID, &c.Name, &c.CountryID, &c.CreatedAt, &c.UpdatedAt, &c.UpdatedBy)
	if err != nil {
		return nil, postgres.MapError(err, "competition", name)
	}
	return &c, nil
}

// Search returns competitions whose name matches the query (ILIKE),
// optionally narrowed to one country, ordered by name.
func (r *Repo) Search(ctx context.Context, query string, countryID int64, limit int) ([]*domain.Competition, error) {
	builder := sq.Select("competition_id", "name", "country_id", "created_at", "updated_at", "updated_by").
		From("competition").
		OrderBy("name").
		PlaceholderFormat(sq.Dollar)

	if query != "" {
		builder = builder.Where(sq.ILike{"name": "%" + query + "%"})
	}
	if countryID > 0 {
		builder = builder.Where(sq.Eq{"country_id": countryID})
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search competitions query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search competitions: %w", err)
	}
	defer rows.Close()

	competitions := make([]*domain.Competition, 0)
	for rows.Next() {
		var c domain.Competition
		if err := rows.Scan(&c.ID, &c.Name, &c.CountryID, &c.CreatedAt, &c.UpdatedAt, &c.UpdatedBy); err != nil {
			return nil, fmt.Errorf("scan competition: %w", err)
		}
		competitions = append(competitions, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate competitions: %w", err)
	}

	return competitions, nil
}
