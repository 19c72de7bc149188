package teamseason

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/matchday/masterdata/internal/domain"
)

// BatchResult summarizes one batch association request. Skipped lists the
// team names that were not associated, each with the reason.
type BatchResult struct {
	CompetitionName string
	Created         int
	Skipped         []SkippedTeam
}

// SkippedTeam names a team that did not get an association and why.
type SkippedTeam struct {
	Name   string
	Reason string
}

// BatchCreate associates each named team with the competition for the given
// season. The competition is resolved once; each team gets its own
// transaction, so an unknown or already-associated team skips without
// discarding the rest of the batch. Mirrors the skip semantics of the file
// loads: partial success is reported, not rolled back.
func (s *Service) BatchCreate(ctx context.Context, input BatchCreateInput) (*BatchResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	competitionName := strings.TrimSpace(input.CompetitionName)
	competition, err := s.competitions.GetByName(ctx, competitionName)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewValidationError("competitionName",
			"competition '"+competitionName+"' not found")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup competition: %w", err)
	}

	updatedBy := strings.TrimSpace(input.UpdatedBy)
	if updatedBy == "" {
		updatedBy = defaultAuditUser
	}

	result := &BatchResult{CompetitionName: competition.Name}

	for _, rawName := range input.TeamNames {
		teamName := strings.TrimSpace(rawName)
		if teamName == "" {
			continue
		}

		team, err := s.teams.GetByName(ctx, teamName)
		if errors.Is(err, domain.ErrNotFound) {
			result.Skipped = append(result.Skipped, SkippedTeam{Name: teamName, Reason: "team not found"})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("lookup team %s: %w", teamName, err)
		}

		season := &domain.TeamCompetitionSeason{
			TeamID:          team.ID,
			CompetitionID:   competition.ID,
			SeasonStartYear: input.SeasonStartYear,
			SeasonEndYear:   input.SeasonEndYear,
			UpdatedBy:       updatedBy,
		}

		err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			return s.seasons.Create(txCtx, season)
		})
		if errors.Is(err, domain.ErrAlreadyExists) {
			result.Skipped = append(result.Skipped, SkippedTeam{Name: teamName, Reason: "already associated for this season"})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create season for team %s: %w", teamName, err)
		}
		result.Created++
	}

	s.log.InfoContext(ctx, "team season batch processed",
		slog.String("competition", competition.Name),
		slog.Int("created", result.Created),
		slog.Int("skipped", len(result.Skipped)),
	)

	return result, nil
}

// ListByCompetition returns the season associations for a competition name
// and season start year.
func (s *Service) ListByCompetition(ctx context.Context, competitionName string, seasonStartYear int) ([]*domain.TeamCompetitionSeason, error) {
	competition, err := s.competitions.GetByName(ctx, strings.TrimSpace(competitionName))
	if err != nil {
		return nil, err
	}
	return s.seasons.ListByCompetition(ctx, competition.ID, seasonStartYear)
}
