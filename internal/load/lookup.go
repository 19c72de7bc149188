package load

import (
	"context"

	"github.com/matchday/masterdata/internal/domain"
)

// CountryResolver finds the surrogate id for a normalized country code.
// Absence is reported by the boolean, not an error.
type CountryResolver interface {
	FindIDByCode(ctx context.Context, code string) (int64, bool, error)
}

// CountryLookup resolves external country codes to internal surrogate ids.
// The lookup is a pure read and safe to run outside the chunk transaction.
type CountryLookup struct {
	countries CountryResolver
}

// NewCountryLookup creates a lookup backed by the country repository.
func NewCountryLookup(countries CountryResolver) *CountryLookup {
	return &CountryLookup{countries: countries}
}

// Resolve normalizes the code and returns its surrogate id. A blank or
// unknown code resolves to (0, false, nil); only infrastructure failures
// produce an error.
func (l *CountryLookup) Resolve(ctx context.Context, code string) (int64, bool, error) {
	code = domain.NormalizeCode(code)
	if code == "" {
		return 0, false, nil
	}
	return l.countries.FindIDByCode(ctx, code)
}
