package competition

import (
	"strings"

	"github.com/matchday/masterdata/internal/domain"
)

// CreateCompetitionInput holds the parameters for creating a competition.
type CreateCompetitionInput struct {
	Name        string
	CountryName string
}

// Validate checks all fields and collects all errors.
func (i CreateCompetitionInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}

	if strings.TrimSpace(i.CountryName) == "" {
		errs = append(errs, domain.FieldError{Field: "countryName", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SearchCompetitionsInput holds the parameters for searching competitions.
type SearchCompetitionsInput struct {
	Query       string
	CountryName string
	Limit       int
}
