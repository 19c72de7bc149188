package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/matchday/masterdata/internal/domain"
	"github.com/matchday/masterdata/internal/service/competition"
)

// competitionService defines the minimal interface needed by CompetitionHandler.
type competitionService interface {
	CreateCompetition(ctx context.Context, input competition.CreateCompetitionInput) (*domain.Competition, error)
	SearchCompetitions(ctx context.Context, input competition.SearchCompetitionsInput) ([]*domain.Competition, error)
}

// CompetitionHandler serves competition REST endpoints.
type CompetitionHandler struct {
	svc competitionService
	log *slog.Logger
}

// NewCompetitionHandler creates a CompetitionHandler.
func NewCompetitionHandler(svc competitionService, logger *slog.Logger) *CompetitionHandler {
	return &CompetitionHandler{svc: svc, log: logger.With("handler", "competition")}
}

type createCompetitionRequest struct {
	Name        string `json:"name"`
	CountryName string `json:"countryName"`
}

type competitionResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CountryID int64  `json:"countryId"`
}

// Create handles POST /api/competitions.
func (h *CompetitionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCompetitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateCompetition(r.Context(), competition.CreateCompetitionInput{
		Name:        req.Name,
		CountryName: req.CountryName,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCompetitionResponse(created))
}

// Search handles GET /api/competitions?query=league&countryName=England&limit=20.
func (h *CompetitionHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if v := q.Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	found, err := h.svc.SearchCompetitions(r.Context(), competition.SearchCompetitionsInput{
		Query:       q.Get("query"),
		CountryName: q.Get("countryName"),
		Limit:       limit,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]competitionResponse, 0, len(found))
	for _, c := range found {
		out = append(out, toCompetitionResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *CompetitionHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "competition already exists")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toCompetitionResponse(c *domain.Competition) competitionResponse {
	return competitionResponse{ID: c.ID, Name: c.Name, CountryID: c.CountryID}
}
