package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/matchday/masterdata/internal/batch"
	"github.com/matchday/masterdata/internal/load"
)

// loadService defines the minimal interface needed by BatchHandler.
type loadService interface {
	RunCountryLoad(ctx context.Context, req load.RunRequest) (*load.RunReport, error)
	RunTeamLoad(ctx context.Context, req load.RunRequest) (*load.RunReport, error)
}

// BatchHandler serves the load-trigger REST endpoints. Input files are
// resolved against a fixed base directory; clients pass file names, never
// paths.
type BatchHandler struct {
	svc     loadService
	baseDir string
	log     *slog.Logger
}

// NewBatchHandler creates a BatchHandler.
func NewBatchHandler(svc loadService, baseDir string, logger *slog.Logger) *BatchHandler {
	return &BatchHandler{svc: svc, baseDir: baseDir, log: logger.With("handler", "batch")}
}

type runResponse struct {
	RunID     string `json:"runId"`
	Entity    string `json:"entity"`
	Version   string `json:"version"`
	Outcome   string `json:"outcome"`
	InputFile string `json:"inputFile"`
	ErrorFile string `json:"errorFile"`
	Status    string `json:"status"`
	Read      int    `json:"read"`
	Written   int    `json:"written"`
	Filtered  int    `json:"filtered"`
	Skipped   int    `json:"skipped"`
}

// LoadCountries handles POST /api/batch/countries/load?fileName=countries.csv[&version=3].
// Without an explicit version a fresh counter version is stamped, so every
// trigger re-applies the file.
func (h *BatchHandler) LoadCountries(w http.ResponseWriter, r *http.Request) {
	path, ok := h.resolveFile(w, r)
	if !ok {
		return
	}

	report, err := h.svc.RunCountryLoad(r.Context(), load.RunRequest{
		InputPath: path,
		Version:   r.URL.Query().Get("version"),
	})
	h.respondRun(w, r, report, err)
}

// LoadTeams handles POST /api/batch/teams/load?fileName=teams.csv&countryCode=ENG[&version=3].
func (h *BatchHandler) LoadTeams(w http.ResponseWriter, r *http.Request) {
	path, ok := h.resolveFile(w, r)
	if !ok {
		return
	}

	countryCode := r.URL.Query().Get("countryCode")
	if countryCode == "" {
		writeError(w, http.StatusBadRequest, "countryCode query parameter is required")
		return
	}

	report, err := h.svc.RunTeamLoad(r.Context(), load.RunRequest{
		InputPath:   path,
		CountryCode: countryCode,
		Version:     r.URL.Query().Get("version"),
	})
	h.respondRun(w, r, report, err)
}

// resolveFile turns the fileName query parameter into an absolute path under
// the base directory. Names that would escape it are rejected.
func (h *BatchHandler) resolveFile(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := r.URL.Query().Get("fileName")
	if name == "" {
		writeError(w, http.StatusBadRequest, "fileName query parameter is required")
		return "", false
	}

	path := filepath.Join(h.baseDir, name)
	if !strings.HasPrefix(path, h.baseDir+string(filepath.Separator)) {
		writeError(w, http.StatusBadRequest, "fileName must not leave the data directory")
		return "", false
	}
	return path, true
}

func (h *BatchHandler) respondRun(w http.ResponseWriter, r *http.Request, report *load.RunReport, err error) {
	if err != nil {
		var skipErr *batch.SkipLimitExceededError
		switch {
		case errors.Is(err, load.ErrAlreadyRunning):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, batch.ErrSourceUnavailable):
			writeError(w, http.StatusNotFound, "input file not found or unreadable")
		case errors.As(err, &skipErr):
			// The run aborted but committed chunks stay; report the counters.
			writeJSON(w, http.StatusUnprocessableEntity, toRunResponse(report))
		default:
			h.log.ErrorContext(r.Context(), "load failed", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toRunResponse(report))
}

func toRunResponse(report *load.RunReport) runResponse {
	return runResponse{
		RunID:     report.RunID,
		Entity:    report.Entity,
		Version:   report.Version,
		Outcome:   string(report.Outcome),
		InputFile: report.InputPath,
		ErrorFile: report.ErrorPath,
		Status:    string(report.Result.Status),
		Read:      report.Result.ReadCount,
		Written:   report.Result.WriteCount,
		Filtered:  report.Result.FilterCount,
		Skipped:   report.Result.SkipCount,
	}
}
