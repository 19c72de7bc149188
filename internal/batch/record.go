// Package batch implements the chunked, fault-tolerant load engine:
// a delimited-file reader, a transactional chunk orchestrator with a
// bounded skip policy, and skip listener dispatch. Entity-specific
// processors and writers are plugged in by the load package.
package batch

// RawRecord is a single parsed input line: an ordered mapping of column
// name to raw string field. Records are ephemeral: produced by the reader,
// consumed by a processor, never persisted.
type RawRecord struct {
	// Line is the 1-based line number in the source file, header included.
	Line    int
	Columns []string
	Values  []string
}

// Get returns the field value for a column name, or "" when the column
// is unknown.
func (r RawRecord) Get(column string) string {
	for i, c := range r.Columns {
		if c == column && i < len(r.Values) {
			return r.Values[i]
		}
	}
	return ""
}
