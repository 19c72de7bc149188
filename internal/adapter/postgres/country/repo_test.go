package country_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/matchday/masterdata/internal/adapter/postgres/country"
	"github.com/matchday/masterdata/internal/adapter/postgres/testhelper"
	"github.com/matchday/masterdata/internal/domain"
)

func uniqueCode() string {
	// Longer than real codes on purpose; the table does not constrain
	// length and shorter suffixes collide across tests.
	return domain.NormalizeCode("Q" + uuid.New().String()[:8])
}

func TestUpsert_InsertThenUpdate(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := country.New(pool)
	ctx := context.Background()

	code := uniqueCode()
	first := &domain.Country{Code: code, Name: "First Name", UpdatedBy: "COUNTRY_LOAD_JOB"}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}

	inserted, err := repo.GetByCode(ctx, code)
	if err != nil {
		t.Fatalf("GetByCode after insert: %v", err)
	}

	second := &domain.Country{Code: code, Name: "Renamed", UpdatedBy: "COUNTRY_LOAD_JOB"}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}

	updated, err := repo.GetByCode(ctx, code)
	if err != nil {
		t.Fatalf("GetByCode after update: %v", err)
	}

	if updated.ID != inserted.ID {
		t.Errorf("upsert changed surrogate id: %d -> %d", inserted.ID, updated.ID)
	}
	if updated.Name != "Renamed" {
		t.Errorf("expected name Renamed, got %q", updated.Name)
	}
	if !updated.CreatedAt.Equal(inserted.CreatedAt) {
		t.Errorf("upsert must not touch created_at: %v -> %v", inserted.CreatedAt, updated.CreatedAt)
	}
}

func TestFindIDByCode(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := country.New(pool)
	ctx := context.Background()

	id, found, err := repo.FindIDByCode(ctx, uniqueCode())
	if err != nil {
		t.Fatalf("FindIDByCode miss: %v", err)
	}
	if found || id != 0 {
		t.Fatalf("expected miss, got id=%d found=%v", id, found)
	}

	seeded := testhelper.SeedCountry(t, pool)

	id, found, err = repo.FindIDByCode(ctx, seeded.Code)
	if err != nil {
		t.Fatalf("FindIDByCode hit: %v", err)
	}
	if !found || id != seeded.ID {
		t.Fatalf("expected id=%d found=true, got id=%d found=%v", seeded.ID, id, found)
	}
}

func TestGetByName_NotFound(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := country.New(pool)

	_, err := repo.GetByName(context.Background(), "No Such Country "+uuid.New().String())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_SearchFilter(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := country.New(pool)
	ctx := context.Background()

	seeded := testhelper.SeedCountry(t, pool)

	// The seeded name carries a unique suffix, so the search hits one row.
	found, err := repo.List(ctx, country.ListFilter{Search: seeded.Name})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 country, got %d", len(found))
	}
	if found[0].Code != seeded.Code {
		t.Errorf("expected code %q, got %q", seeded.Code, found[0].Code)
	}
}
