package load

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"github.com/matchday/masterdata/internal/batch"
)

// errorFileListener appends skipped records to the run's .error.csv file so
// rejected rows can be fixed up and re-submitted. It wraps another listener
// (normally the logging one) and never fails the run: a broken error file
// is reported and ignored.
type errorFileListener struct {
	inner batch.SkipListener
	log   *slog.Logger
	path  string

	file *os.File
	w    *csv.Writer
}

func newErrorFileListener(inner batch.SkipListener, log *slog.Logger, path string) *errorFileListener {
	return &errorFileListener{inner: inner, log: log, path: path}
}

func (l *errorFileListener) OnSkipInRead(err error) {
	l.inner.OnSkipInRead(err)
	l.append([]string{"", err.Error()})
}

func (l *errorFileListener) OnSkipInProcess(rec batch.RawRecord, err error) {
	l.inner.OnSkipInProcess(rec, err)
	l.append(append(append([]string{}, rec.Values...), err.Error()))
}

func (l *errorFileListener) OnSkipInWrite(item any, err error) {
	l.inner.OnSkipInWrite(item, err)
	l.append([]string{fmt.Sprintf("%+v", item), err.Error()})
}

// Close flushes and closes the error file. A run with zero skips never
// creates the file at all.
func (l *errorFileListener) Close() {
	if l.file == nil {
		return
	}
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		l.log.Warn("flushing error file", slog.String("path", l.path), slog.String("error", err.Error()))
	}
	if err := l.file.Close(); err != nil {
		l.log.Warn("closing error file", slog.String("path", l.path), slog.String("error", err.Error()))
	}
	l.file = nil
	l.w = nil
}

func (l *errorFileListener) append(fields []string) {
	if l.file == nil {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			l.log.Warn("cannot open error file, skipped records will only be logged",
				slog.String("path", l.path),
				slog.String("error", err.Error()),
			)
			return
		}
		l.file = f
		l.w = csv.NewWriter(f)
	}
	if err := l.w.Write(fields); err != nil {
		l.log.Warn("writing error file record",
			slog.String("path", l.path),
			slog.String("error", err.Error()),
		)
	}
}
