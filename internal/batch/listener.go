package batch

import "log/slog"

// SkipListener observes every budget-consuming skip. Listeners are
// diagnostic only: they must not affect control flow and are invoked after
// the skip has already been accounted for.
type SkipListener interface {
	OnSkipInRead(err error)
	OnSkipInProcess(rec RawRecord, err error)
	OnSkipInWrite(item any, err error)
}

// NopSkipListener discards all notifications.
type NopSkipListener struct{}

func (NopSkipListener) OnSkipInRead(error)               {}
func (NopSkipListener) OnSkipInProcess(RawRecord, error) {}
func (NopSkipListener) OnSkipInWrite(any, error)         {}

// LogSkipListener reports skips through slog, one entry per skip.
type LogSkipListener struct {
	log  *slog.Logger
	step string
}

// NewLogSkipListener creates a listener that tags entries with the step name.
func NewLogSkipListener(log *slog.Logger, step string) *LogSkipListener {
	return &LogSkipListener{log: log, step: step}
}

func (l *LogSkipListener) OnSkipInRead(err error) {
	l.log.Warn("record skipped in read",
		slog.String("step", l.step),
		slog.String("error", err.Error()),
	)
}

func (l *LogSkipListener) OnSkipInProcess(rec RawRecord, err error) {
	l.log.Warn("record skipped in process",
		slog.String("step", l.step),
		slog.Int("line", rec.Line),
		slog.Any("values", rec.Values),
		slog.String("error", err.Error()),
	)
}

func (l *LogSkipListener) OnSkipInWrite(item any, err error) {
	l.log.Error("record skipped in write",
		slog.String("step", l.step),
		slog.Any("item", item),
		slog.String("error", err.Error()),
	)
}
