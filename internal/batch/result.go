package batch

import "time"

// Status is the lifecycle state of a step run.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusRunning    Status = "RUNNING"
	StatusCompleted  Status = "COMPLETED"
	StatusAborted    Status = "ABORTED"
)

// StepResult summarizes one step execution.
//
// ReadCount counts records successfully parsed from the source.
// FilterCount counts records the processor dropped silently (no output,
// no error); these never touch the skip budget. SkipCount counts
// budget-consuming skips across read, process, and write phases.
type StepResult struct {
	Status          Status
	ReadCount       int
	WriteCount      int
	FilterCount     int
	SkipCount       int
	ChunksCommitted int
	Duration        time.Duration
}
