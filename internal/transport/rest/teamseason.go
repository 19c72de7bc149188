package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/matchday/masterdata/internal/domain"
	"github.com/matchday/masterdata/internal/service/teamseason"
)

// teamSeasonService defines the minimal interface needed by TeamSeasonHandler.
type teamSeasonService interface {
	BatchCreate(ctx context.Context, input teamseason.BatchCreateInput) (*teamseason.BatchResult, error)
	ListByCompetition(ctx context.Context, competitionName string, seasonStartYear int) ([]*domain.TeamCompetitionSeason, error)
}

// TeamSeasonHandler serves team-season association REST endpoints.
type TeamSeasonHandler struct {
	svc teamSeasonService
	log *slog.Logger
}

// NewTeamSeasonHandler creates a TeamSeasonHandler.
func NewTeamSeasonHandler(svc teamSeasonService, logger *slog.Logger) *TeamSeasonHandler {
	return &TeamSeasonHandler{svc: svc, log: logger.With("handler", "teamseason")}
}

type batchCreateRequest struct {
	CompetitionName string   `json:"competitionName"`
	TeamNames       []string `json:"teamNames"`
	SeasonStartYear int      `json:"seasonStartYear"`
	SeasonEndYear   int      `json:"seasonEndYear"`
	UpdatedBy       string   `json:"updatedBy,omitempty"`
}

type batchCreateResponse struct {
	CompetitionName string            `json:"competitionName"`
	Created         int               `json:"created"`
	Skipped         []skippedTeamResp `json:"skipped"`
}

type skippedTeamResp struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type teamSeasonResponse struct {
	ID              int64 `json:"id"`
	TeamID          int64 `json:"teamId"`
	CompetitionID   int64 `json:"competitionId"`
	SeasonStartYear int   `json:"seasonStartYear"`
	SeasonEndYear   int   `json:"seasonEndYear"`
}

// BatchCreate handles POST /api/team-seasons/batch. Per-team failures are
// reported in the response, not as an error status.
func (h *TeamSeasonHandler) BatchCreate(w http.ResponseWriter, r *http.Request) {
	var req batchCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.BatchCreate(r.Context(), teamseason.BatchCreateInput{
		CompetitionName: req.CompetitionName,
		TeamNames:       req.TeamNames,
		SeasonStartYear: req.SeasonStartYear,
		SeasonEndYear:   req.SeasonEndYear,
		UpdatedBy:       req.UpdatedBy,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := batchCreateResponse{
		CompetitionName: result.CompetitionName,
		Created:         result.Created,
		Skipped:         make([]skippedTeamResp, 0, len(result.Skipped)),
	}
	for _, s := range result.Skipped {
		resp.Skipped = append(resp.Skipped, skippedTeamResp{Name: s.Name, Reason: s.Reason})
	}
	writeJSON(w, http.StatusOK, resp)
}

// List handles GET /api/team-seasons?competitionName=Premier+League&seasonStartYear=2024.
func (h *TeamSeasonHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	competitionName := q.Get("competitionName")
	if competitionName == "" {
		writeError(w, http.StatusBadRequest, "competitionName query parameter is required")
		return
	}

	year := 0
	if v := q.Get("seasonStartYear"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "seasonStartYear must be an integer")
			return
		}
		year = parsed
	}

	seasons, err := h.svc.ListByCompetition(r.Context(), competitionName, year)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]teamSeasonResponse, 0, len(seasons))
	for _, s := range seasons {
		out = append(out, teamSeasonResponse{
			ID:              s.ID,
			TeamID:          s.TeamID,
			CompetitionID:   s.CompetitionID,
			SeasonStartYear: s.SeasonStartYear,
			SeasonEndYear:   s.SeasonEndYear,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TeamSeasonHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
