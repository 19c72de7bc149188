package domain

import "time"

// Entity names tracked by the version gate and the run counter.
const (
	EntityCountry = "COUNTRY"
	EntityTeam    = "TEAM"
)

// VersionMarker records whether a named data version has been fully applied
// for an entity. Presence with Completed=true means the load must not run
// again for that version; absence or Completed=false means eligible.
// Markers are only ever written by the version gate and never deleted.
type VersionMarker struct {
	EntityName  string
	Version     string
	Completed   bool
	LastUpdated time.Time
}

// VersionCounter is the per-entity incrementing counter stamped onto
// API-triggered runs. It is orthogonal to VersionMarker: the counter makes
// every triggered run a distinct version, the marker gates re-application
// of one specific version.
type VersionCounter struct {
	EntityName  string
	Count       int64
	LastUpdated time.Time
}
