package competition_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/matchday/masterdata/internal/adapter/postgres/competition"
	"github.com/matchday/masterdata/internal/adapter/postgres/testhelper"
	"github.com/matchday/masterdata/internal/domain"
)

func uniqueName(prefix string) string {
	return prefix + " " + uuid.New().String()[:8]
}

func TestCreate_AndGetByName(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := competition.New(pool)
	ctx := context.Background()

	c := testhelper.SeedCountry(t, pool)
	name := uniqueName("League")

	created := &domain.Competition{Name: name, CountryID: c.ID, UpdatedBy: "COMPETITION_API_USER"}
	if err := repo.Create(ctx, created); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("Create did not populate the id")
	}

	got, err := repo.GetByName(ctx, name)
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if got.ID != created.ID || got.CountryID != c.ID {
		t.Errorf("unexpected competition: %+v", got)
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := competition.New(pool)
	ctx := context.Background()

	c := testhelper.SeedCountry(t, pool)
	name := uniqueName("Cup")

	if err := repo.Create(ctx, &domain.Competition{Name: name, CountryID: c.ID, UpdatedBy: "TEST"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := repo.Create(ctx, &domain.Competition{Name: name, CountryID: c.ID, UpdatedBy: "TEST"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreate_UnknownCountry(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := competition.New(pool)

	err := repo.Create(context.Background(), &domain.Competition{
		Name:      uniqueName("Orphan League"),
		CountryID: -1,
		UpdatedBy: "TEST",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict for invalid country reference, got %v", err)
	}
}

func TestSearch_ByQueryAndCountry(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := competition.New(pool)
	ctx := context.Background()

	c := testhelper.SeedCountry(t, pool)
	seeded := testhelper.SeedCompetition(t, pool, c.ID)

	found, err := repo.Search(ctx, seeded.Name, c.ID, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 competition, got %d", len(found))
	}
	if found[0].ID != seeded.ID {
		t.Errorf("expected competition %d, got %d", seeded.ID, found[0].ID)
	}

	none, err := repo.Search(ctx, uniqueName("no such"), c.ID, 10)
	if err != nil {
		t.Fatalf("Search miss: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no results, got %d", len(none))
	}
}
