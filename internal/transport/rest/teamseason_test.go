package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matchday/masterdata/internal/domain"
	"github.com/matchday/masterdata/internal/service/teamseason"
)

type teamSeasonServiceMock struct {
	BatchCreateFunc func(ctx context.Context, input teamseason.BatchCreateInput) (*teamseason.BatchResult, error)
	ListFunc        func(ctx context.Context, competitionName string, seasonStartYear int) ([]*domain.TeamCompetitionSeason, error)
}

func (m *teamSeasonServiceMock) BatchCreate(ctx context.Context, input teamseason.BatchCreateInput) (*teamseason.BatchResult, error) {
	return m.BatchCreateFunc(ctx, input)
}

func (m *teamSeasonServiceMock) ListByCompetition(ctx context.Context, competitionName string, seasonStartYear int) ([]*domain.TeamCompetitionSeason, error) {
	return m.ListFunc(ctx, competitionName, seasonStartYear)
}

func TestTeamSeasonBatchCreate_ReportsSkips(t *testing.T) {
	t.Parallel()

	svc := &teamSeasonServiceMock{
		BatchCreateFunc: func(_ context.Context, input teamseason.BatchCreateInput) (*teamseason.BatchResult, error) {
			return &teamseason.BatchResult{
				CompetitionName: input.CompetitionName,
				Created:         2,
				Skipped: []teamseason.SkippedTeam{
					{Name: "Ghost FC", Reason: "team not found"},
				},
			}, nil
		},
	}
	h := NewTeamSeasonHandler(svc, testLogger())

	body := `{"competitionName":"Premier League","teamNames":["Arsenal","Chelsea","Ghost FC"],"seasonStartYear":2024,"seasonEndYear":2025}`
	req := httptest.NewRequest(http.MethodPost, "/api/team-seasons/batch", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.BatchCreate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp batchCreateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Created != 2 {
		t.Errorf("expected 2 created, got %d", resp.Created)
	}
	if len(resp.Skipped) != 1 || resp.Skipped[0].Name != "Ghost FC" {
		t.Errorf("unexpected skipped list: %+v", resp.Skipped)
	}
}

func TestTeamSeasonBatchCreate_ValidationError(t *testing.T) {
	t.Parallel()

	svc := &teamSeasonServiceMock{
		BatchCreateFunc: func(_ context.Context, _ teamseason.BatchCreateInput) (*teamseason.BatchResult, error) {
			return nil, domain.NewValidationError("competitionName", "unknown competition")
		},
	}
	h := NewTeamSeasonHandler(svc, testLogger())

	body := `{"competitionName":"Nowhere League","teamNames":["Arsenal"],"seasonStartYear":2024,"seasonEndYear":2025}`
	req := httptest.NewRequest(http.MethodPost, "/api/team-seasons/batch", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.BatchCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestTeamSeasonList_RequiresCompetitionName(t *testing.T) {
	t.Parallel()

	h := NewTeamSeasonHandler(&teamSeasonServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/team-seasons", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestTeamSeasonList_OK(t *testing.T) {
	t.Parallel()

	var gotName string
	var gotYear int
	svc := &teamSeasonServiceMock{
		ListFunc: func(_ context.Context, competitionName string, seasonStartYear int) ([]*domain.TeamCompetitionSeason, error) {
			gotName = competitionName
			gotYear = seasonStartYear
			return []*domain.TeamCompetitionSeason{
				{ID: 1, TeamID: 10, CompetitionID: 3, SeasonStartYear: 2024, SeasonEndYear: 2025},
			}, nil
		},
	}
	h := NewTeamSeasonHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/team-seasons?competitionName=Premier+League&seasonStartYear=2024", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if gotName != "Premier League" || gotYear != 2024 {
		t.Errorf("unexpected query passthrough: %q %d", gotName, gotYear)
	}

	var resp []teamSeasonResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].TeamID != 10 {
		t.Errorf("unexpected response: %+v", resp)
	}
}
