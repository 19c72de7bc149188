// Package teamseason implements persistence for team to competition
// season associations.
package teamseason

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/matchday/masterdata/internal/adapter/postgres"
	"github.com/matchday/masterdata/internal/domain"
)

// Repo provides team-competition-season persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new team season repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO team_competition_season
	(team_id, competition_id, season_start_year, season_end_year, created_at, updated_at, updated_by)
VALUES ($1, $2, $3, $4, now(), now(), $5)
RETURNING team_season_id, created_at, updated_at`

const listByCompetitionSQL = `
SELECT ts.team_season_id, ts.team_id, ts.competition_id,
	ts.season_start_year, ts.season_end_year,
	ts.created_at, ts.updated_at, ts.updated_by
FROM team_competition_season ts
JOIN team t ON t.team_id = ts.team_id
WHERE ts.competition_id = $1 AND ts.season_start_year = $2
ORDER BY t.name`

// Create inserts a season association. Returns domain.ErrAlreadyExists when
// the team already has an entry for the competition and season, and
// domain.ErrConflict when the team or competition reference is invalid.
func (r *Repo) Create(ctx context.Context, ts *domain.TeamCompetitionSeason) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	err := q.QueryRow(ctx, createSQL,
		ts.TeamID, ts.CompetitionID, ts.SeasonStartYear, ts.SeasonEndYear, ts.UpdatedBy).
		Scan(&ts.ID, &ts.CreatedAt, &ts.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "team season", fmt.Sprintf("team %d", ts.TeamID))
	}
	return nil
}

// ListByCompetition returns all season associations for a competition and
// season start year, ordered by team name.
func (r *Repo) ListByCompetition(ctx context.Context, competitionID int64, seasonStartYear int) ([]*domain.TeamCompetitionSeason, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByCompetitionSQL, competitionID, seasonStartYear)
	if err != nil {
		return nil, fmt.Errorf("list team seasons: %w", err)
	}
	defer rows.Close()

	seasons := make([]*domain.TeamCompetitionSeason, 0)
	for rows.Next() {
		var ts domain.TeamCompetitionSeason
		if err := rows.Scan(&ts.ID, &ts.TeamID, &ts.CompetitionID,
			&ts.SeasonStartYear, &ts.SeasonEndYear,
			&ts.CreatedAt, &ts.UpdatedAt, &ts.UpdatedBy); err != nil {
			return nil, fmt.Errorf("scan team season: %w", err)
		}
		seasons = append(seasons, &ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team seasons: %w", err)
	}

	return seasons, nil
}
