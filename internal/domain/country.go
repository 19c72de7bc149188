// Package domain holds the core master-data entities and the sentinel errors
// shared by every layer. No layer above may depend on adapter types.
package domain

import (
	"strings"
	"time"
)

// Country is a reference-data row. Code is the natural key used for upserts
// and foreign-key resolution; ID is the internal surrogate and never leaves
// the persistence layer as an identity.
type Country struct {
	ID        int64
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	UpdatedBy string
}

// NormalizeCode prepares a country code for lookup and storage:
// whitespace trimmed, upper-cased. It does not validate.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCountryCode reports whether a code satisfies the load rule:
// exactly three characters, or the literal sentinel "999".
func ValidCountryCode(code string) bool {
	return len(code) == 3 || code == "999"
}
