package teamseason_test

import (
	"context"
	"errors"
	"testing"

	"github.com/matchday/masterdata/internal/adapter/postgres/teamseason"
	"github.com/matchday/masterdata/internal/adapter/postgres/testhelper"
	"github.com/matchday/masterdata/internal/domain"
)

func TestCreate_AndListByCompetition(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := teamseason.New(pool)
	ctx := context.Background()

	c := testhelper.SeedCountry(t, pool)
	teamA := testhelper.SeedTeam(t, pool, c.ID)
	teamB := testhelper.SeedTeam(t, pool, c.ID)
	comp := testhelper.SeedCompetition(t, pool, c.ID)

	for _, teamID := range []int64{teamA.ID, teamB.ID} {
		ts := &domain.TeamCompetitionSeason{
			TeamID:          teamID,
			CompetitionID:   comp.ID,
			SeasonStartYear: 2024,
			SeasonEndYear:   2025,
			UpdatedBy:       "TEST",
		}
		if err := repo.Create(ctx, ts); err != nil {
			t.Fatalf("Create for team %d: %v", teamID, err)
		}
		if ts.ID == 0 {
			t.Fatal("Create did not populate the id")
		}
	}

	seasons, err := repo.ListByCompetition(ctx, comp.ID, 2024)
	if err != nil {
		t.Fatalf("ListByCompetition: %v", err)
	}
	if len(seasons) != 2 {
		t.Fatalf("expected 2 associations, got %d", len(seasons))
	}

	// Nothing registered for another season start year.
	none, err := repo.ListByCompetition(ctx, comp.ID, 2023)
	if err != nil {
		t.Fatalf("ListByCompetition other season: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no associations for 2023, got %d", len(none))
	}
}

func TestCreate_DuplicateSeason(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := teamseason.New(pool)
	ctx := context.Background()

	c := testhelper.SeedCountry(t, pool)
	team := testhelper.SeedTeam(t, pool, c.ID)
	comp := testhelper.SeedCompetition(t, pool, c.ID)

	ts := domain.TeamCompetitionSeason{
		TeamID:          team.ID,
		CompetitionID:   comp.ID,
		SeasonStartYear: 2024,
		SeasonEndYear:   2025,
		UpdatedBy:       "TEST",
	}
	first := ts
	if err := repo.Create(ctx, &first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	second := ts
	err := repo.Create(ctx, &second)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreate_UnknownTeam(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := teamseason.New(pool)
	ctx := context.Background()

	c := testhelper.SeedCountry(t, pool)
	comp := testhelper.SeedCompetition(t, pool, c.ID)

	err := repo.Create(ctx, &domain.TeamCompetitionSeason{
		TeamID:          -1,
		CompetitionID:   comp.ID,
		SeasonStartYear: 2024,
		SeasonEndYear:   2025,
		UpdatedBy:       "TEST",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict for invalid team reference, got %v", err)
	}
}
