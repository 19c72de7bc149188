package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// TxRunner executes a function inside one database transaction. The chunk
// orchestrator uses it to give every chunk (and, when isolating a bad
// record, every item) its own transaction boundary.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Processor converts a raw record into its persist-ready form.
//
// Three outcomes are possible: (item, nil) passes the record on.
// (nil, err) fails it: skippable errors consume skip budget, anything
// else aborts the run. (nil, nil) filters it: the record is dropped
// silently and the skip budget is untouched.
type Processor[O any] interface {
	Process(ctx context.Context, rec RawRecord) (*O, error)
}

// ItemWriter persists one validated record. Implementations must upsert on
// the natural key so that re-applying the same file converges.
type ItemWriter[O any] interface {
	Write(ctx context.Context, item *O) error
}

// StepConfig tunes a step. Zero values fall back to defaults.
type StepConfig struct {
	// ChunkSize is the number of records buffered per transaction (default 10).
	ChunkSize int
	// SkipLimit is the run-wide skip budget (default 10). The run aborts on
	// the skip that would exceed it.
	SkipLimit int
	// Skippable classifies failures; nil falls back to DefaultSkippable.
	Skippable func(error) bool
	// Listener observes skips; nil falls back to NopSkipListener.
	Listener SkipListener
}

const (
	defaultChunkSize = 10
	defaultSkipLimit = 10
)

// Step is the chunk orchestrator. It pulls records from the reader, runs
// each through the processor, and writes survivors chunk by chunk, one
// transaction per chunk, in strict file order. Per-record failures are
// contained by the skip policy; only source-level failures and a spent
// skip budget escape to the caller.
type Step[O any] struct {
	name      string
	log       *slog.Logger
	reader    *FileReader
	processor Processor[O]
	writer    ItemWriter[O]
	txr       TxRunner

	chunkSize int
	skipLimit int
	skippable func(error) bool
	listener  SkipListener

	state Status
}

// NewStep wires a step from its parts. This is the explicit, ordered
// construction point; there is no registration or scanning involved.
func NewStep[O any](
	name string,
	log *slog.Logger,
	reader *FileReader,
	processor Processor[O],
	writer ItemWriter[O],
	txr TxRunner,
	cfg StepConfig,
) *Step[O] {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.SkipLimit <= 0 {
		cfg.SkipLimit = defaultSkipLimit
	}
	if cfg.Skippable == nil {
		cfg.Skippable = DefaultSkippable
	}
	if cfg.Listener == nil {
		cfg.Listener = NopSkipListener{}
	}

	return &Step[O]{
		name:      name,
		log:       log,
		reader:    reader,
		processor: processor,
		writer:    writer,
		txr:       txr,
		chunkSize: cfg.ChunkSize,
		skipLimit: cfg.SkipLimit,
		skippable: cfg.Skippable,
		listener:  cfg.Listener,
		state:     StatusNotStarted,
	}
}

// State returns the current lifecycle state of the step.
func (s *Step[O]) State() Status { return s.state }

// Execute runs the step to completion. On ABORTED, chunks committed before
// the failure remain applied; callers relying on all-or-nothing semantics
// must re-run the file, which is safe given upserting writers.
func (s *Step[O]) Execute(ctx context.Context) (StepResult, error) {
	start := time.Now()
	res := StepResult{Status: StatusRunning}
	s.state = StatusRunning

	if err := s.reader.Open(); err != nil {
		return s.abort(res, start, err)
	}
	defer s.reader.Close()

	s.log.Info("step started",
		slog.String("step", s.name),
		slog.Int("chunk_size", s.chunkSize),
		slog.Int("skip_limit", s.skipLimit),
	)

	eof := false
	for !eof {
		if err := ctx.Err(); err != nil {
			return s.abort(res, start, fmt.Errorf("step %s: %w", s.name, err))
		}

		raws, done, err := s.fillChunk(&res)
		if err != nil {
			return s.abort(res, start, err)
		}
		eof = done
		if len(raws) == 0 {
			break
		}

		items, err := s.processChunk(ctx, raws, &res)
		if err != nil {
			return s.abort(res, start, err)
		}

		if err := s.writeChunk(ctx, items, &res); err != nil {
			return s.abort(res, start, err)
		}
	}

	res.Status = StatusCompleted
	res.Duration = time.Since(start)
	s.state = StatusCompleted

	s.log.Info("step completed",
		slog.String("step", s.name),
		slog.Int("read", res.ReadCount),
		slog.Int("written", res.WriteCount),
		slog.Int("filtered", res.FilterCount),
		slog.Int("skipped", res.SkipCount),
		slog.Int("chunks", res.ChunksCommitted),
		slog.Duration("duration", res.Duration),
	)

	return res, nil
}

// fillChunk buffers up to chunkSize raw records. Per-line read failures
// route through the skip policy; the boolean reports source exhaustion.
func (s *Step[O]) fillChunk(res *StepResult) ([]RawRecord, bool, error) {
	raws := make([]RawRecord, 0, s.chunkSize)
	for len(raws) < s.chunkSize {
		rec, err := s.reader.Read()
		if errors.Is(err, io.EOF) {
			return raws, true, nil
		}
		if err != nil {
			if !s.skippable(err) {
				return nil, false, fmt.Errorf("step %s: read: %w", s.name, err)
			}
			if limitErr := s.recordSkip(res); limitErr != nil {
				return nil, false, limitErr
			}
			s.listener.OnSkipInRead(err)
			continue
		}
		res.ReadCount++
		raws = append(raws, rec)
	}
	return raws, false, nil
}

// processChunk transforms buffered records. Lookups performed by processors
// are pure reads, so transformation happens before the chunk transaction
// opens; skips here roll back nothing because nothing has been written.
func (s *Step[O]) processChunk(ctx context.Context, raws []RawRecord, res *StepResult) ([]*O, error) {
	items := make([]*O, 0, len(raws))
	for _, raw := range raws {
		out, err := s.processor.Process(ctx, raw)
		if err != nil {
			if !s.skippable(err) {
				return nil, fmt.Errorf("step %s: process line %d: %w", s.name, raw.Line, err)
			}
			if limitErr := s.recordSkip(res); limitErr != nil {
				return nil, limitErr
			}
			s.listener.OnSkipInProcess(raw, err)
			continue
		}
		if out == nil {
			res.FilterCount++
			continue
		}
		items = append(items, out)
	}
	return items, nil
}

// writeChunk commits the chunk in one transaction. When that transaction
// fails with a skippable error it degrades to one transaction per item, so
// only the offending records are rolled back and counted against the skip
// budget while the rest of the chunk still commits.
func (s *Step[O]) writeChunk(ctx context.Context, items []*O, res *StepResult) error {
	if len(items) == 0 {
		return nil
	}

	err := s.txr.RunInTx(ctx, func(txCtx context.Context) error {
		for _, item := range items {
			if err := s.writer.Write(txCtx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		res.WriteCount += len(items)
		res.ChunksCommitted++
		return nil
	}
	if !s.skippable(err) {
		return fmt.Errorf("step %s: write chunk: %w", s.name, err)
	}

	s.log.Warn("chunk write failed, isolating records",
		slog.String("step", s.name),
		slog.Int("items", len(items)),
		slog.String("error", err.Error()),
	)

	for _, item := range items {
		itemErr := s.txr.RunInTx(ctx, func(txCtx context.Context) error {
			return s.writer.Write(txCtx, item)
		})
		if itemErr == nil {
			res.WriteCount++
			continue
		}
		if !s.skippable(itemErr) {
			return fmt.Errorf("step %s: write item: %w", s.name, itemErr)
		}
		if limitErr := s.recordSkip(res); limitErr != nil {
			return limitErr
		}
		s.listener.OnSkipInWrite(item, itemErr)
	}
	res.ChunksCommitted++
	return nil
}

// recordSkip spends one unit of skip budget. The skip that would exceed the
// limit aborts the run instead.
func (s *Step[O]) recordSkip(res *StepResult) error {
	res.SkipCount++
	if res.SkipCount > s.skipLimit {
		return &SkipLimitExceededError{Limit: s.skipLimit, Skipped: res.SkipCount}
	}
	return nil
}

func (s *Step[O]) abort(res StepResult, start time.Time, err error) (StepResult, error) {
	res.Status = StatusAborted
	res.Duration = time.Since(start)
	s.state = StatusAborted

	s.log.Error("step aborted",
		slog.String("step", s.name),
		slog.Int("read", res.ReadCount),
		slog.Int("written", res.WriteCount),
		slog.Int("skipped", res.SkipCount),
		slog.String("error", err.Error()),
	)

	return res, err
}
