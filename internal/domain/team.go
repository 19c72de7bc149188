package domain

import "time"

// Team types as they appear in the input files.
const (
	TeamTypeClub     = "CLUB"
	TeamTypeNational = "NATIONAL"
)

// Team is the target entity of the team load. Name is the natural upsert key.
// CountryID is the resolved surrogate id of the owning country; by the time
// a Team exists as a value, resolution has already succeeded.
type Team struct {
	ID              int64
	Name            string
	TeamType        string
	StadiumName     string
	EstablishedYear int
	Nickname        string
	StadiumCapacity int
	CountryID       int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	UpdatedBy       string
}
