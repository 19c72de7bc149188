// Package competition implements ad-hoc competition management. Unlike the
// batch-loaded master data, competitions are created one at a time through
// the API and are validated against already-loaded countries.
package competition

import (
	"context"
	"log/slog"

	"github.com/matchday/masterdata/internal/domain"
)

type competitionRepo interface {
	Create(ctx context.Context, c *domain.Competition) error
	GetByName(ctx context.Context, name string) (*domain.Competition, error)
	Search(ctx context.Context, query string, countryID int64, limit int) ([]*domain.Competition, error)
}

type countryRepo interface {
	GetByName(ctx context.Context, name string) (*domain.Country, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Audit attribution for API-created competitions. A placeholder until
// requests carry an authenticated principal.
const auditUser = "COMPETITION_API_USER"

// Service provides competition operations.
type Service struct {
	competitions competitionRepo
	countries    countryRepo
	tx           txManager
	log          *slog.Logger
}

// NewService creates a new Competition service.
func NewService(
	log *slog.Logger,
	competitions competitionRepo,
	countries countryRepo,
	tx txManager,
) *Service {
	return &Service{
		competitions: competitions,
		countries:    countries,
		tx:           tx,
		log:          log.With("service", "competition"),
	}
}
