package teamseason

import (
	"strings"

	"github.com/matchday/masterdata/internal/domain"
)

// BatchCreateInput holds the parameters for associating a set of teams with
// one competition season.
type BatchCreateInput struct {
	CompetitionName string
	TeamNames       []string
	SeasonStartYear int
	SeasonEndYear   int
	UpdatedBy       string
}

// Validate checks all fields and collects all errors.
func (i BatchCreateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.CompetitionName) == "" {
		errs = append(errs, domain.FieldError{Field: "competitionName", Message: "required"})
	}
	if len(i.TeamNames) == 0 {
		errs = append(errs, domain.FieldError{Field: "teamNames", Message: "at least one team required"})
	}
	if i.SeasonStartYear < 1800 {
		errs = append(errs, domain.FieldError{Field: "seasonStartYear", Message: "must be a plausible year"})
	}
	if i.SeasonEndYear < i.SeasonStartYear {
		errs = append(errs, domain.FieldError{Field: "seasonEndYear", Message: "must not precede seasonStartYear"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
