package load

import (
	"context"
	"log/slog"
	"strings"

	"github.com/matchday/masterdata/internal/batch"
	"github.com/matchday/masterdata/internal/domain"
)

// Audit attribution stamped on every row written by the country load.
const countryAuditUser = "COUNTRY_LOAD_JOB"

// Positional column ordering of the country input file.
var countryColumns = []string{"countryId", "countryName"}

// CountryUpserter persists countries keyed on their natural code.
type CountryUpserter interface {
	Upsert(ctx context.Context, c *domain.Country) error
}

// CountryProcessor validates a raw country record and converts it to a
// persist-ready Country. Name must be non-blank; the code must be three
// characters or the literal sentinel "999". Both failures are skippable
// validation errors.
type CountryProcessor struct{}

func (CountryProcessor) Process(_ context.Context, rec batch.RawRecord) (*domain.Country, error) {
	name := strings.TrimSpace(rec.Get("countryName"))
	if name == "" {
		return nil, domain.NewValidationError("countryName", "country name is missing")
	}

	code := domain.NormalizeCode(rec.Get("countryId"))
	if !domain.ValidCountryCode(code) {
		return nil, domain.NewValidationError("countryId",
			"country code is invalid or missing (must be 3 chars or '999'): "+code)
	}

	return &domain.Country{
		Code:      code,
		Name:      name,
		UpdatedBy: countryAuditUser,
	}, nil
}

type countryWriter struct {
	countries CountryUpserter
}

func (w countryWriter) Write(ctx context.Context, c *domain.Country) error {
	return w.countries.Upsert(ctx, c)
}

// NewCountryStep assembles the country load pipeline for one input file.
// Steps are single-use; build a fresh one per run.
func NewCountryStep(
	log *slog.Logger,
	inputPath string,
	countries CountryUpserter,
	txr batch.TxRunner,
	cfg batch.StepConfig,
) *batch.Step[domain.Country] {
	return batch.NewStep[domain.Country](
		"countryLoadStep",
		log,
		batch.NewFileReader(inputPath, countryColumns),
		CountryProcessor{},
		countryWriter{countries: countries},
		txr,
		cfg,
	)
}
