package batch

import (
	"errors"
	"fmt"

	"github.com/matchday/masterdata/internal/domain"
)

// ErrSourceUnavailable marks a file that cannot be opened at all. It is a
// run-level failure: it aborts before the first chunk and never passes
// through the skip policy.
var ErrSourceUnavailable = errors.New("source unavailable")

// RecordError is a per-line read failure: wrong column count or malformed
// delimited syntax. Unlike ErrSourceUnavailable it is skippable.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// SkipLimitExceededError aborts a run once the skip budget is spent.
// Chunks committed before the abort remain applied.
type SkipLimitExceededError struct {
	Limit   int
	Skipped int
}

func (e *SkipLimitExceededError) Error() string {
	return fmt.Sprintf("skip limit exceeded: %d skips over limit %d", e.Skipped, e.Limit)
}

// DefaultSkippable is the standard skippable-failure classifier: per-record
// read failures, validation failures, and persistence conflicts count against
// the skip budget; everything else aborts the run.
func DefaultSkippable(err error) bool {
	var recErr *RecordError
	if errors.As(err, &recErr) {
		return true
	}
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrAlreadyExists) ||
		errors.Is(err, domain.ErrConflict)
}
