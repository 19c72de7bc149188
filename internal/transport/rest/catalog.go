package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	countryrepo "github.com/matchday/masterdata/internal/adapter/postgres/country"
	teamrepo "github.com/matchday/masterdata/internal/adapter/postgres/team"
	"github.com/matchday/masterdata/internal/domain"
)

// countryLister and teamLister define the read surfaces CatalogHandler needs.
type countryLister interface {
	List(ctx context.Context, filter countryrepo.ListFilter) ([]*domain.Country, error)
}

type teamLister interface {
	List(ctx context.Context, filter teamrepo.ListFilter) ([]*domain.Team, error)
}

// CatalogHandler serves read-only listings of the loaded master data.
type CatalogHandler struct {
	countries countryLister
	teams     teamLister
	log       *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(countries countryLister, teams teamLister, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		countries: countries,
		teams:     teams,
		log:       logger.With("handler", "catalog"),
	}
}

type countryResponse struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type teamResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	TeamType        string `json:"teamType"`
	StadiumName     string `json:"stadiumName,omitempty"`
	EstablishedYear int    `json:"establishedYear,omitempty"`
	Nickname        string `json:"nickname,omitempty"`
	StadiumCapacity int    `json:"stadiumCapacity,omitempty"`
	CountryID       int64  `json:"countryId"`
}

// Countries handles GET /api/countries?search=fr&limit=50.
func (h *CatalogHandler) Countries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	found, err := h.countries.List(r.Context(), countryrepo.ListFilter{
		Search: q.Get("search"),
		Limit:  queryInt(q.Get("limit")),
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "list countries", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]countryResponse, 0, len(found))
	for _, c := range found {
		out = append(out, countryResponse{ID: c.ID, Code: c.Code, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

// Teams handles GET /api/teams?countryCode=ENG&teamType=CLUB&limit=50.
func (h *CatalogHandler) Teams(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	found, err := h.teams.List(r.Context(), teamrepo.ListFilter{
		CountryCode: q.Get("countryCode"),
		TeamType:    q.Get("teamType"),
		Limit:       queryInt(q.Get("limit")),
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "list teams", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]teamResponse, 0, len(found))
	for _, t := range found {
		out = append(out, teamResponse{
			ID:              t.ID,
			Name:            t.Name,
			TeamType:        t.TeamType,
			StadiumName:     t.StadiumName,
			EstablishedYear: t.EstablishedYear,
			Nickname:        t.Nickname,
			StadiumCapacity: t.StadiumCapacity,
			CountryID:       t.CountryID,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func queryInt(v string) int {
	if v == "" {
		return 0
	}
	n, _ := strconv.Atoi(v)
	return n
}
