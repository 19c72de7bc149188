// Package team implements the Team repository using PostgreSQL.
package team

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/matchday/masterdata/internal/adapter/postgres"
	"github.com/matchday/masterdata/internal/domain"
)

// Repo provides team persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new team repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Upsert key is the team name. A team moving stadiums or changing type in a
// refreshed file overwrites the stored row; created_at survives.
const upsertSQL = `
INSERT INTO team
    (name, team_type, stadium_name, established_year, nickname, stadium_capacity,
     country_id, created_at, updated_at, updated_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now(), $8)
ON CONFLICT (name) DO UPDATE SET
    team_type        = EXCLUDED.team_type,
    stadium_name     = EXCLUDED.stadium_name,
    established_year = EXCLUDED.established_year,
    nickname         = EXCLUDED.nickname,
    stadium_capacity = EXCLUDED.stadium_capacity,
    country_id       = EXCLUDED.country_id,
    updated_at       = now(),
    updated_by       = EXCLUDED.updated_by`

const getByNameSQL = `
SELECT team_id, name, team_type, stadium_name, established_year, nickname,
       stadium_capacity, country_id, created_at, updated_at, updated_by
FROM team
WHERE name = $1`

// Upsert inserts the team or refreshes all non-key columns of the existing
// row with the same name.
func (r *Repo) Upsert(ctx context.Context, t *domain.Team) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, upsertSQL,
		t.Name, t.TeamType, t.StadiumName, t.EstablishedYear, t.Nickname,
		t.StadiumCapacity, t.CountryID, t.UpdatedBy,
	)
	if err != nil {
		return postgres.MapError(err, "team", t.Name)
	}
	return nil
}

// GetByName returns a team by its natural key.
// Returns domain.ErrNotFound when no such team exists.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Team, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var t domain.Team
	err := q.QueryRow(ctx, getByNameSQL, name).Scan(
		&t.ID, &t.Name, &t.TeamType, &t.StadiumName, &t.EstablishedYear,
		&t.Nickname, &t.StadiumCapacity, &t.CountryID,
		&t.CreatedAt, &t.UpdatedAt, &t.UpdatedBy,
	)
	if err != nil {
		return nil, postgres.MapError(err, "team", name)
	}
	return &t, nil
}

// ListFilter narrows List results. Zero value lists everything.
type ListFilter struct {
	// CountryCode restricts to teams of one country (joined on the
	// country table's natural key).
	CountryCode string
	// TeamType restricts to CLUB or NATIONAL.
	TeamType string
	Limit    int
}

// List returns teams ordered by name, optionally filtered by country code
// and team type. Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, filter ListFilter) ([]*domain.Team, error) {
	builder := sq.Select(
		"t.team_id", "t.name", "t.team_type", "t.stadium_name", "t.established_year",
		"t.nickname", "t.stadium_capacity", "t.country_id",
		"t.created_at", "t.updated_at", "t.updated_by").
		From("team t").
		OrderBy("t.name").
		PlaceholderFormat(sq.Dollar)

	if filter.CountryCode != "" {
		builder = builder.
			Join("country c ON c.country_id = t.country_id").
			Where(sq.Eq{"c.code": filter.CountryCode})
	}
	if filter.TeamType != "" {
		builder = builder.Where(sq.Eq{"t.team_type": filter.TeamType})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*domain.Team, 0)
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(
			&t.ID, &t.Name, &t.TeamType, &t.StadiumName, &t.EstablishedYear,
			&t.Nickname, &t.StadiumCapacity, &t.CountryID,
			&t.CreatedAt, &t.UpdatedAt, &t.UpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}

	return teams, nil
}
