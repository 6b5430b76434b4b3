package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tidwall/gjson"
)

func TestNewUnknownFormat(t *testing.T) {
	if _, err := New("yaml", &strings.Builder{}, false); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("New = %v, want ErrUnknownFormat", err)
	}
}

func TestTextEmitter(t *testing.T) {
	var sb strings.Builder
	e, err := New("text", &sb, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := e.Match(Entry{File: "notes.txt", Start: 3, End: 5, Text: "𝆔♪"}); err != nil {
		t.Fatalf("Match: %v", err)
	}
	if err := e.Close(Summary{Matches: 1, Files: 1}); err != nil {
		t.Fatalf("Close: %v", err)
	}

	want := "notes.txt:[3,5): 𝆔♪\n"
	if sb.String() != want {
		t.Errorf("output = %q, want %q", sb.String(), want)
	}
}

func TestTextEmitterPatternAndColor(t *testing.T) {
	var sb strings.Builder
	e, _ := New("text", &sb, true)

	if err := e.Match(Entry{File: "a.txt", Pattern: "pipes", Start: 0, End: 1, Text: "|"}); err != nil {
		t.Fatalf("Match: %v", err)
	}

	out := sb.String()
	if !strings.Contains(out, ":pipes:") {
		t.Errorf("output missing pattern name: %q", out)
	}
	if !strings.Contains(out, ansiMatch) || !strings.Contains(out, ansiReset) {
		t.Errorf("output missing color codes: %q", out)
	}
}

func TestTextEmitterCount(t *testing.T) {
	var sb strings.Builder
	e, _ := New("text", &sb, false)

	e.Count("a.txt", 3)
	e.Count("b.txt", 0)

	want := "a.txt: 3\nb.txt: 0\n"
	if sb.String() != want {
		t.Errorf("output = %q, want %q", sb.String(), want)
	}
}

func TestJSONEmitter(t *testing.T) {
	var sb strings.Builder
	e, _ := New("json", &sb, false)

	if err := e.Match(Entry{File: "x.txt", Pattern: "p", Start: 1, End: 2, Text: `quote " and 🇫🇷`}); err != nil {
		t.Fatalf("Match: %v", err)
	}
	if err := e.Count("x.txt", 7); err != nil {
		t.Fatalf("Count: %v", err)
	}
	if err := e.Close(Summary{RunID: "run-1", Files: 1, Matches: 7, Elapsed: 1500 * time.Microsecond}); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), sb.String())
	}

	match := lines[0]
	if !gjson.Valid(match) {
		t.Fatalf("match line is not valid JSON: %q", match)
	}
	if gjson.Get(match, "type").String() != "match" {
		t.Errorf("type = %q", gjson.Get(match, "type").String())
	}
	if gjson.Get(match, "text").String() != `quote " and 🇫🇷` {
		t.Errorf("text = %q", gjson.Get(match, "text").String())
	}
	if gjson.Get(match, "start").Int() != 1 || gjson.Get(match, "end").Int() != 2 {
		t.Errorf("range = [%v,%v)", gjson.Get(match, "start"), gjson.Get(match, "end"))
	}

	count := lines[1]
	if gjson.Get(count, "count").Int() != 7 {
		t.Errorf("count line = %q", count)
	}

	summary := lines[2]
	if gjson.Get(summary, "run_id").String() != "run-1" {
		t.Errorf("summary run_id = %q", gjson.Get(summary, "run_id").String())
	}
	if gjson.Get(summary, "elapsed_ms").Int() != 1 {
		t.Errorf("summary elapsed_ms = %v", gjson.Get(summary, "elapsed_ms"))
	}
}

func TestTableEmitter(t *testing.T) {
	var sb strings.Builder
	e, _ := New("table", &sb, false)

	e.Match(Entry{File: "a.txt", Pattern: "pipes", Start: 0, End: 1, Text: "|"})
	e.Match(Entry{File: "b.txt", Pattern: "pipes", Start: 4, End: 5, Text: "|"})
	if err := e.Close(Summary{Files: 2, Matches: 2}); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out := sb.String()
	for _, part := range []string{"FILE", "PATTERN", "CLUSTERS", "TEXT", "a.txt", "b.txt", "[4,5)"} {
		if !strings.Contains(out, part) {
			t.Errorf("table output missing %q:\n%s", part, out)
		}
	}
}

func TestTableEmitterCounts(t *testing.T) {
	var sb strings.Builder
	e, _ := New("table", &sb, false)

	e.Count("a.txt", 9)
	if err := e.Close(Summary{Files: 1, Matches: 9}); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out := sb.String()
	for _, part := range []string{"MATCHES", "a.txt", "9", "TOTAL"} {
		if !strings.Contains(out, part) {
			t.Errorf("count table missing %q:\n%s", part, out)
		}
	}
}

func TestWriteClusterTable(t *testing.T) {
	var sb strings.Builder
	WriteClusterTable(&sb, []Cluster{
		{Index: 0, ByteOff: 0, ByteLen: 1, Text: "n", CodePoints: "U+006E", Width: 1},
		{Index: 1, ByteOff: 1, ByteLen: 2, Text: "é", CodePoints: "U+00E9", Width: 1},
	})

	out := sb.String()
	for _, part := range []string{"INDEX", "BYTES", "CODE POINTS", "[1,3)", "U+00E9", "CLUSTERS", "2"} {
		if !strings.Contains(out, part) {
			t.Errorf("cluster table missing %q:\n%s", part, out)
		}
	}
}
