package report

import (
	"fmt"
	"io"

	"github.com/tidwall/sjson"
)

// jsonEmitter writes one JSON object per line and a closing summary object.
type jsonEmitter struct {
	w io.Writer
}

func (j *jsonEmitter) Match(e Entry) error {
	line := []byte(`{"type":"match"}`)
	var err error
	for _, f := range []struct {
		path  string
		value any
	}{
		{"file", e.File},
		{"pattern", e.Pattern},
		{"start", e.Start},
		{"end", e.End},
		{"text", e.Text},
	} {
		line, err = sjson.SetBytes(line, f.path, f.value)
		if err != nil {
			return fmt.Errorf("encoding match: %w", err)
		}
	}
	return j.writeLine(line)
}

func (j *jsonEmitter) Count(file string, n int) error {
	line := []byte(`{"type":"count"}`)
	var err error
	if line, err = sjson.SetBytes(line, "file", file); err != nil {
		return fmt.Errorf("encoding count: %w", err)
	}
	if line, err = sjson.SetBytes(line, "count", n); err != nil {
		return fmt.Errorf("encoding count: %w", err)
	}
	return j.writeLine(line)
}

func (j *jsonEmitter) Close(s Summary) error {
	line := []byte(`{"type":"summary"}`)
	var err error
	for _, f := range []struct {
		path  string
		value any
	}{
		{"run_id", s.RunID},
		{"files", s.Files},
		{"matches", s.Matches},
		{"elapsed_ms", s.Elapsed.Milliseconds()},
	} {
		line, err = sjson.SetBytes(line, f.path, f.value)
		if err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
	}
	return j.writeLine(line)
}

func (j *jsonEmitter) writeLine(line []byte) error {
	if _, err := j.w.Write(line); err != nil {
		return err
	}
	_, err := j.w.Write([]byte("\n"))
	return err
}
