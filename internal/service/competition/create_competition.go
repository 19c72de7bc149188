package competition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/matchday/masterdata/internal/domain"
)

// CreateCompetition creates a competition bound to an existing country,
// resolved by the country's display name.
//
// An unknown country is a validation failure (the caller named something
// that does not exist), a taken competition name surfaces as
// domain.ErrAlreadyExists.
func (s *Service) CreateCompetition(ctx context.Context, input CreateCompetitionInput) (*domain.Competition, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	countryName := strings.TrimSpace(input.CountryName)

	country, err := s.countries.GetByName(ctx, countryName)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewValidationError("countryName",
			"country '"+countryName+"' not found; competition must be associated with an existing country")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup country: %w", err)
	}

	comp := &domain.Competition{
		Name:      name,
		CountryID: country.ID,
		UpdatedBy: auditUser,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.competitions.Create(txCtx, comp)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "competition created",
		slog.Int64("competition_id", comp.ID),
		slog.String("name", name),
		slog.String("country", countryName),
	)

	return comp, nil
}

// SearchCompetitions returns competitions matching the query, optionally
// narrowed to one country by name.
func (s *Service) SearchCompetitions(ctx context.Context, input SearchCompetitionsInput) ([]*domain.Competition, error) {
	var countryID int64
	if countryName := strings.TrimSpace(input.CountryName); countryName != "" {
		country, err := s.countries.GetByName(ctx, countryName)
		if errors.Is(err, domain.ErrNotFound) {
			return []*domain.Competition{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("lookup country: %w", err)
		}
		countryID = country.ID
	}

	return s.competitions.Search(ctx, strings.TrimSpace(input.Query), countryID, input.Limit)
}
