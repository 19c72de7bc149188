package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchday/masterdata/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedCountry creates a country with a unique code and returns it filled.
func SeedCountry(t *testing.T, pool *pgxpool.Pool) domain.Country {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	country := domain.Country{
		// Codes are 3 chars; build one from the hex suffix.
		Code:      "Z" + suffix[:2],
		Name:      "Country " + suffix,
		CreatedAt: now,
		UpdatedAt: now,
		UpdatedBy: "TEST",
	}
	country.Code = domain.NormalizeCode(country.Code)

	err := pool.QueryRow(ctx,
		`INSERT INTO country (code, name, created_at, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING country_id`,
		country.Code, country.Name, country.CreatedAt, country.UpdatedAt, country.UpdatedBy,
	).Scan(&country.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedCountry insert country: %v", err)
	}

	return country
}

// SeedTeam creates a team in the given country and returns it filled.
func SeedTeam(t *testing.T, pool *pgxpool.Pool, countryID int64) domain.Team {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	team := domain.Team{
		Name:            "Team " + suffix,
		TeamType:        domain.TeamTypeClub,
		CountryID:       countryID,
		StadiumName:     "Stadium " + suffix,
		EstablishedYear: 1900,
		Nickname:        "Nick " + suffix,
		StadiumCapacity: 40000,
		CreatedAt:       now,
		UpdatedAt:       now,
		UpdatedBy:       "TEST",
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO team (name, team_type, country_id, stadium_name, established_year,
			nickname, stadium_capacity, created_at, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING team_id`,
		team.Name, team.TeamType, team.CountryID, team.StadiumName, team.EstablishedYear,
		team.Nickname, team.StadiumCapacity, team.CreatedAt, team.UpdatedAt, team.UpdatedBy,
	).Scan(&team.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedTeam insert team: %v", err)
	}

	return team
}

// SeedCompetition creates a competition in the given country and returns it filled.
func SeedCompetition(t *testing.T, pool *pgxpool.Pool, countryID int64) domain.Competition {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	competition := domain.Competition{
		Name:      "Competition " + suffix,
		CountryID: countryID,
		CreatedAt: now,
		UpdatedAt: now,
		UpdatedBy: "TEST",
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO competition (name, country_id, created_at, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING competition_id`,
		competition.Name, competition.CountryID, competition.CreatedAt, competition.UpdatedAt, competition.UpdatedBy,
	).Scan(&competition.ID)
	if err != nil {
		t.Fatalf("testhelper: SeedCompetition insert competition: %v", err)
	}

	return competition
}
