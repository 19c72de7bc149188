package rest

import (
	"log/slog"
	"net/http"

	"github.com/matchday/masterdata/internal/transport/middleware"
)

// Handlers bundles the REST handlers wired into the router.
type Handlers struct {
	Health      *HealthHandler
	Batch       *BatchHandler
	Competition *CompetitionHandler
	TeamSeason  *TeamSeasonHandler
	Catalog     *CatalogHandler
}

// NewRouter builds the HTTP routing table and wraps it with the standard
// middleware chain (request ID, logging, panic recovery).
func NewRouter(h Handlers, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	mux.HandleFunc("POST /api/batch/countries/load", h.Batch.LoadCountries)
	mux.HandleFunc("POST /api/batch/teams/load", h.Batch.LoadTeams)

	mux.HandleFunc("POST /api/competitions", h.Competition.Create)
	mux.HandleFunc("GET /api/competitions", h.Competition.Search)

	mux.HandleFunc("POST /api/team-seasons/batch", h.TeamSeason.BatchCreate)
	mux.HandleFunc("GET /api/team-seasons", h.TeamSeason.List)

	mux.HandleFunc("GET /api/countries", h.Catalog.Countries)
	mux.HandleFunc("GET /api/teams", h.Catalog.Teams)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
	)
	return chain(mux)
}
