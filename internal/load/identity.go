package load

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RunIdentity identifies one launch of a load pipeline. The fresh ID and
// timestamp make every launch distinct even when the entity, version, and
// paths repeat; whether the run actually applies anything is the gate's
// decision, not the identity's.
type RunIdentity struct {
	ID          uuid.UUID
	Entity      string
	Version     string
	CountryCode string
	InputPath   string
	ErrorPath   string
	StartedAt   time.Time
}

// NewRunIdentity stamps a fresh identity for a load run.
func NewRunIdentity(entity, version, countryCode, inputPath string) RunIdentity {
	return RunIdentity{
		ID:          uuid.New(),
		Entity:      entity,
		Version:     version,
		CountryCode: countryCode,
		InputPath:   inputPath,
		ErrorPath:   ErrorPath(inputPath),
		StartedAt:   time.Now().UTC(),
	}
}

// ErrorPath derives the rejected-records file path from the input path:
// "teams.csv" becomes "teams.error.csv".
func ErrorPath(inputPath string) string {
	if strings.HasSuffix(inputPath, ".csv") {
		return strings.TrimSuffix(inputPath, ".csv") + ".error.csv"
	}
	return inputPath + ".error.csv"
}
