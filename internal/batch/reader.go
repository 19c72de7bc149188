package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// FileReader produces RawRecords from a delimited text file with a fixed,
// positional column ordering. Exactly one leading header line is skipped.
// The sequence is lazy, finite, and restartable only from the top (call
// Close and Open again).
type FileReader struct {
	path    string
	columns []string

	file *os.File
	csv  *csv.Reader
	line int
}

// NewFileReader creates a reader for path with the given column ordering.
func NewFileReader(path string, columns []string) *FileReader {
	return &FileReader{path: path, columns: columns}
}

// Open opens the underlying file and consumes the header line.
// A path that cannot be opened is a run-level failure wrapping
// ErrSourceUnavailable, never a per-record one.
func (r *FileReader) Open() error {
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrSourceUnavailable, r.path, err)
	}

	cr := csv.NewReader(f)
	// Column count is enforced by Read so a short or long line surfaces as a
	// skippable RecordError instead of failing the whole file.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	r.file = f
	r.csv = cr
	r.line = 0

	// Header line is always skipped. An empty file is fine: the first Read
	// reports io.EOF.
	if _, err := cr.Read(); err != nil && !errors.Is(err, io.EOF) {
		_ = f.Close()
		r.file = nil
		return fmt.Errorf("%w: read header of %s: %v", ErrSourceUnavailable, r.path, err)
	}
	r.line = 1

	return nil
}

// Read returns the next record. io.EOF signals a clean end of input.
// Malformed lines (bad quoting, wrong column count) return a *RecordError,
// which routes through the skip policy.
func (r *FileReader) Read() (RawRecord, error) {
	if r.csv == nil {
		return RawRecord{}, fmt.Errorf("%w: reader not open", ErrSourceUnavailable)
	}

	values, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return RawRecord{}, io.EOF
	}
	r.line++
	if err != nil {
		return RawRecord{}, &RecordError{Line: r.line, Err: err}
	}
	if len(values) != len(r.columns) {
		return RawRecord{}, &RecordError{
			Line: r.line,
			Err:  fmt.Errorf("expected %d columns, got %d", len(r.columns), len(values)),
		}
	}

	return RawRecord{Line: r.line, Columns: r.columns, Values: values}, nil
}

// Close releases the underlying file. Safe to call when Open failed.
func (r *FileReader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	r.csv = nil
	return err
}
