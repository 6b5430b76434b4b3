// Package report renders search results as plain text, JSON lines, or an
// aligned table. Emitters receive matches as they are found and flush any
// buffered output on Close.
package report

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrUnknownFormat indicates a format outside text/json/table.
var ErrUnknownFormat = errors.New("unknown report format")

// Entry is one match located in cluster positions.
type Entry struct {
	// File the match was found in ("-" for stdin).
	File string
	// Pattern is the name of the pattern that matched.
	Pattern string
	// Start and End are the half-open cluster range of the match.
	Start int
	End   int
	// Text is the cluster-aligned matched text.
	Text string
}

// Summary closes a run.
type Summary struct {
	// RunID identifies the run in logs and JSON output.
	RunID string
	// Files is the number of files scanned.
	Files int
	// Matches is the total number of matches emitted.
	Matches int
	// Elapsed is the wall-clock duration of the scan.
	Elapsed time.Duration
}

// Emitter renders a stream of matches.
type Emitter interface {
	// Match renders one located match.
	Match(e Entry) error
	// Count renders a per-file match count (count mode).
	Count(file string, n int) error
	// Close flushes buffered output and renders the summary where the
	// format has a place for it.
	Close(s Summary) error
}

// New returns the emitter for format, writing to w. Color applies to the
// text format only.
func New(format string, w io.Writer, color bool) (Emitter, error) {
	switch format {
	case "text":
		return &textEmitter{w: w, color: color}, nil
	case "json":
		return &jsonEmitter{w: w}, nil
	case "table":
		return newTableEmitter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
