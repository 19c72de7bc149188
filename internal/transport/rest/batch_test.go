package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matchday/masterdata/internal/batch"
	"github.com/matchday/masterdata/internal/load"
)

type loadServiceMock struct {
	CountryFunc func(ctx context.Context, req load.RunRequest) (*load.RunReport, error)
	TeamFunc    func(ctx context.Context, req load.RunRequest) (*load.RunReport, error)
}

func (m *loadServiceMock) RunCountryLoad(ctx context.Context, req load.RunRequest) (*load.RunReport, error) {
	return m.CountryFunc(ctx, req)
}

func (m *loadServiceMock) RunTeamLoad(ctx context.Context, req load.RunRequest) (*load.RunReport, error) {
	return m.TeamFunc(ctx, req)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func appliedReport(entity string) *load.RunReport {
	return &load.RunReport{
		RunID:   "run-1",
		Entity:  entity,
		Version: "7",
		Outcome: load.OutcomeApplied,
		Result: batch.StepResult{
			Status:     batch.StatusCompleted,
			ReadCount:  3,
			WriteCount: 3,
		},
	}
}

func TestLoadCountries_OK(t *testing.T) {
	t.Parallel()

	var gotReq load.RunRequest
	svc := &loadServiceMock{
		CountryFunc: func(_ context.Context, req load.RunRequest) (*load.RunReport, error) {
			gotReq = req
			return appliedReport("country"), nil
		},
	}
	h := NewBatchHandler(svc, "/data", testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/batch/countries/load?fileName=countries.csv&version=7", nil)
	rec := httptest.NewRecorder()

	h.LoadCountries(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotReq.InputPath != "/data/countries.csv" {
		t.Errorf("expected resolved path /data/countries.csv, got %q", gotReq.InputPath)
	}
	if gotReq.Version != "7" {
		t.Errorf("expected version 7, got %q", gotReq.Version)
	}

	var resp runResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Outcome != string(load.OutcomeApplied) {
		t.Errorf("expected outcome APPLIED, got %q", resp.Outcome)
	}
	if resp.Written != 3 {
		t.Errorf("expected 3 written, got %d", resp.Written)
	}
}

func TestLoadCountries_MissingFileName(t *testing.T) {
	t.Parallel()

	h := NewBatchHandler(&loadServiceMock{}, "/data", testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/batch/countries/load", nil)
	rec := httptest.NewRecorder()

	h.LoadCountries(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestLoadCountries_PathEscapeRejected(t *testing.T) {
	t.Parallel()

	h := NewBatchHandler(&loadServiceMock{}, "/data", testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/batch/countries/load?fileName=..%2Fetc%2Fpasswd", nil)
	rec := httptest.NewRecorder()

	h.LoadCountries(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestLoadTeams_MissingCountryCode(t *testing.T) {
	t.Parallel()

	h := NewBatchHandler(&loadServiceMock{}, "/data", testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/batch/teams/load?fileName=teams.csv", nil)
	rec := httptest.NewRecorder()

	h.LoadTeams(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestLoadTeams_AlreadyRunning(t *testing.T) {
	t.Parallel()

	svc := &loadServiceMock{
		TeamFunc: func(_ context.Context, _ load.RunRequest) (*load.RunReport, error) {
			return nil, load.ErrAlreadyRunning
		},
	}
	h := NewBatchHandler(svc, "/data", testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/batch/teams/load?fileName=teams.csv&countryCode=ENG", nil)
	rec := httptest.NewRecorder()

	h.LoadTeams(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestLoadTeams_SourceMissing(t *testing.T) {
	t.Parallel()

	svc := &loadServiceMock{
		TeamFunc: func(_ context.Context, _ load.RunRequest) (*load.RunReport, error) {
			return &load.RunReport{}, batch.ErrSourceUnavailable
		},
	}
	h := NewBatchHandler(svc, "/data", testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/batch/teams/load?fileName=missing.csv&countryCode=ENG", nil)
	rec := httptest.NewRecorder()

	h.LoadTeams(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestLoadTeams_SkipLimitExceededReportsCounters(t *testing.T) {
	t.Parallel()

	svc := &loadServiceMock{
		TeamFunc: func(_ context.Context, _ load.RunRequest) (*load.RunReport, error) {
			report := &load.RunReport{
				RunID:   "run-2",
				Entity:  "team",
				Version: "4",
				Result: batch.StepResult{
					Status:    batch.StatusAborted,
					ReadCount: 50,
					SkipCount: 11,
				},
			}
			return report, &batch.SkipLimitExceededError{Limit: 10, Skipped: 11}
		},
	}
	h := NewBatchHandler(svc, "/data", testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/batch/teams/load?fileName=teams.csv&countryCode=ENG", nil)
	rec := httptest.NewRecorder()

	h.LoadTeams(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}

	var resp runResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != string(batch.StatusAborted) {
		t.Errorf("expected ABORTED status, got %q", resp.Status)
	}
	if resp.Skipped != 11 {
		t.Errorf("expected 11 skipped, got %d", resp.Skipped)
	}
}

func TestLoadCountries_InternalError(t *testing.T) {
	t.Parallel()

	svc := &loadServiceMock{
		CountryFunc: func(_ context.Context, _ load.RunRequest) (*load.RunReport, error) {
			return nil, errors.New("db down")
		},
	}
	h := NewBatchHandler(svc, "/data", testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/batch/countries/load?fileName=countries.csv", nil)
	rec := httptest.NewRecorder()

	h.LoadCountries(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
