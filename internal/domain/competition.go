package domain

import "time"

// Competition is created through the ad-hoc API path, not the batch pipeline.
// Name is unique.
type Competition struct {
	ID        int64
	Name      string
	CountryID int64
	CreatedAt time.Time
	UpdatedAt time.Time
	UpdatedBy string
}

// TeamCompetitionSeason associates a team with a competition for one season.
type TeamCompetitionSeason struct {
	ID              int64
	TeamID          int64
	CompetitionID   int64
	SeasonStartYear int
	SeasonEndYear   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	UpdatedBy       string
}
