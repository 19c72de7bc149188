package load

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/matchday/masterdata/internal/batch"
	"github.com/matchday/masterdata/internal/domain"
)

// Audit attribution stamped on every row written by the team load.
const teamAuditUser = "TEAM_LOAD_JOB"

// Positional column ordering of the team input file.
var teamColumns = []string{
	"name", "teamType", "stadiumName", "establishedYear",
	"nickname", "stadiumCapacity", "countryCode",
}

// TeamUpserter persists teams keyed on their natural name.
type TeamUpserter interface {
	Upsert(ctx context.Context, t *domain.Team) error
}

// TeamProcessor validates a raw team record, resolves its country reference,
// and converts it to a persist-ready Team.
//
// Blank mandatory fields (name, teamType, countryCode) raise a skippable
// validation error. Unparseable numeric fields and an unresolvable country
// code filter the record silently: no output, no error, no skip budget
// spent. Only lookup infrastructure failures abort the run.
type TeamProcessor struct {
	lookup *CountryLookup
	log    *slog.Logger
}

// NewTeamProcessor creates a processor resolving countries through lookup.
func NewTeamProcessor(lookup *CountryLookup, log *slog.Logger) *TeamProcessor {
	return &TeamProcessor{lookup: lookup, log: log}
}

func (p *TeamProcessor) Process(ctx context.Context, rec batch.RawRecord) (*domain.Team, error) {
	name := strings.TrimSpace(rec.Get("name"))
	if name == "" {
		return nil, domain.NewValidationError("name", "team name is missing")
	}
	teamType := strings.TrimSpace(rec.Get("teamType"))
	if teamType == "" {
		return nil, domain.NewValidationError("teamType",
			"team type is missing for team ["+name+"]")
	}
	countryCode := strings.TrimSpace(rec.Get("countryCode"))
	if countryCode == "" {
		return nil, domain.NewValidationError("countryCode",
			"country code is missing for team ["+name+"]")
	}

	establishedYear, err := strconv.Atoi(strings.TrimSpace(rec.Get("establishedYear")))
	if err != nil {
		p.log.Warn("filtering record: invalid establishedYear",
			slog.String("team", name),
			slog.String("value", rec.Get("establishedYear")),
		)
		return nil, nil
	}
	stadiumCapacity, err := strconv.Atoi(strings.TrimSpace(rec.Get("stadiumCapacity")))
	if err != nil {
		p.log.Warn("filtering record: invalid stadiumCapacity",
			slog.String("team", name),
			slog.String("value", rec.Get("stadiumCapacity")),
		)
		return nil, nil
	}

	countryID, ok, err := p.lookup.Resolve(ctx, countryCode)
	if err != nil {
		return nil, err
	}
	if !ok {
		p.log.Warn("filtering record: country code not found",
			slog.String("team", name),
			slog.String("country_code", countryCode),
		)
		return nil, nil
	}

	return &domain.Team{
		Name:            name,
		TeamType:        teamType,
		StadiumName:     strings.TrimSpace(rec.Get("stadiumName")),
		EstablishedYear: establishedYear,
		Nickname:        strings.TrimSpace(rec.Get("nickname")),
		StadiumCapacity: stadiumCapacity,
		CountryID:       countryID,
		UpdatedBy:       teamAuditUser,
	}, nil
}

type teamWriter struct {
	teams TeamUpserter
}

func (w teamWriter) Write(ctx context.Context, t *domain.Team) error {
	return w.teams.Upsert(ctx, t)
}

// NewTeamStep assembles the team load pipeline for one input file.
// Steps are single-use; build a fresh one per run.
func NewTeamStep(
	log *slog.Logger,
	inputPath string,
	teams TeamUpserter,
	lookup *CountryLookup,
	txr batch.TxRunner,
	cfg batch.StepConfig,
) *batch.Step[domain.Team] {
	return batch.NewStep[domain.Team](
		"teamLoadStep",
		log,
		batch.NewFileReader(inputPath, teamColumns),
		NewTeamProcessor(lookup, log),
		teamWriter{teams: teams},
		txr,
		cfg,
	)
}
