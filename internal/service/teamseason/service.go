// Package teamseason implements batch creation of team to competition
// season associations: one competition, one season, many teams by name.
package teamseason

import (
	"context"
	"log/slog"

	"github.com/matchday/masterdata/internal/domain"
)

type seasonRepo interface {
	Create(ctx context.Context, ts *domain.TeamCompetitionSeason) error
	ListByCompetition(ctx context.Context, competitionID int64, seasonStartYear int) ([]*domain.TeamCompetitionSeason, error)
}

type teamRepo interface {
	GetByName(ctx context.Context, name string) (*domain.Team, error)
}

type competitionRepo interface {
	GetByName(ctx context.Context, name string) (*domain.Competition, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Default audit attribution when the request does not name one.
const defaultAuditUser = "TEAMSEASON_API_USER"

// Service provides team season association operations.
type Service struct {
	seasons      seasonRepo
	teams        teamRepo
	competitions competitionRepo
	tx           txManager
	log          *slog.Logger
}

// NewService creates a new TeamSeason service.
func NewService(
	log *slog.Logger,
	seasons seasonRepo,
	teams teamRepo,
	competitions competitionRepo,
	tx txManager,
) *Service {
	return &Service{
		seasons:      seasons,
		teams:        teams,
		competitions: competitions,
		tx:           tx,
		log:          log.With("service", "teamseason"),
	}
}
