package report

import (
	"fmt"
	"io"
)

// ANSI sequences for match highlighting, mirroring grep's defaults.
const (
	ansiMatch = "\x1b[01;31m"
	ansiReset = "\x1b[0m"
)

// textEmitter writes grep-like lines: file:[start,end): text.
type textEmitter struct {
	w     io.Writer
	color bool
}

func (t *textEmitter) Match(e Entry) error {
	text := e.Text
	if t.color {
		text = ansiMatch + text + ansiReset
	}
	if e.Pattern != "" {
		_, err := fmt.Fprintf(t.w, "%s:[%d,%d):%s: %s\n", e.File, e.Start, e.End, e.Pattern, text)
		return err
	}
	_, err := fmt.Fprintf(t.w, "%s:[%d,%d): %s\n", e.File, e.Start, e.End, text)
	return err
}

func (t *textEmitter) Count(file string, n int) error {
	_, err := fmt.Fprintf(t.w, "%s: %d\n", file, n)
	return err
}

// Close is a no-op for text output; grep-like streams carry no trailer.
func (t *textEmitter) Close(Summary) error {
	return nil
}
