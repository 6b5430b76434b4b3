// Package scope implements the model and terminal view for the gview
// cluster inspector. The Inspector holds the segmented text, a cluster
// cursor, and pattern highlight spans; the view draws it onto any
// Surface (tcell.Screen in production, a memory grid in tests).
package scope

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/grapheme"
)

// Row describes one grapheme cluster of the inspected text.
type Row struct {
	Index      int    // cluster index
	ByteOff    int    // byte offset of the first byte
	ByteLen    int    // length in bytes
	Text       string // the cluster itself
	CodePoints string // "U+0065 U+0301"
	Width      int    // monospace column width
	NFC        string // NFC form of the cluster
	NFD        string // NFD form of the cluster
}

// Span is a highlighted cluster range [Start, End) with a palette slot.
type Span struct {
	Start int
	End   int
	Color int
}

// Inspector is the gview model: text, rows, cursor, and highlights.
type Inspector struct {
	src     *grapheme.String
	rows    []Row
	cursor  int
	offset  int // leftmost visible cluster in the strip
	pattern string
	spans   []Span
}

// NewInspector segments text and builds the per-cluster rows.
func NewInspector(text string) *Inspector {
	src := grapheme.New(text)
	rows := make([]Row, 0, src.Len())

	it := src.Iter()
	for it.Next() {
		c := it.Cluster()
		rows = append(rows, Row{
			Index:      it.Index(),
			ByteOff:    it.ByteOffset(),
			ByteLen:    c.ByteLen(),
			Text:       c.Text(),
			CodePoints: CodePoints(c.Text()),
			Width:      uniseg.StringWidth(c.Text()),
			NFC:        norm.NFC.String(c.Text()),
			NFD:        norm.NFD.String(c.Text()),
		})
	}

	return &Inspector{src: src, rows: rows}
}

// CodePoints formats text as space-separated U+XXXX notation.
func CodePoints(text string) string {
	var b strings.Builder
	for i, r := range text {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "U+%04X", r)
	}
	return b.String()
}

// Source returns the inspected string.
func (m *Inspector) Source() *grapheme.String { return m.src }

// Len returns the cluster count.
func (m *Inspector) Len() int { return len(m.rows) }

// Row returns the row at cluster index i.
func (m *Inspector) Row(i int) (Row, bool) {
	if i < 0 || i >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[i], true
}

// Cursor returns the cluster index under the cursor.
func (m *Inspector) Cursor() int { return m.cursor }

// CursorRow returns the row under the cursor.
func (m *Inspector) CursorRow() (Row, bool) { return m.Row(m.cursor) }

// MoveCursor moves the cursor by delta clusters, clamping to the text.
func (m *Inspector) MoveCursor(delta int) {
	m.MoveTo(m.cursor + delta)
}

// MoveTo moves the cursor to cluster index i, clamping to the text.
func (m *Inspector) MoveTo(i int) {
	if i < 0 {
		i = 0
	}
	if max := len(m.rows) - 1; i > max {
		i = max
	}
	if i < 0 {
		i = 0
	}
	m.cursor = i
}

// ensureVisible scrolls the strip so the cursor cluster fits within
// width columns of the leftmost visible cluster.
func (m *Inspector) ensureVisible(width int) {
	if width <= 0 || len(m.rows) == 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	for m.offset < m.cursor {
		x := 0
		for i := m.offset; i <= m.cursor; i++ {
			x += cellWidth(m.rows[i])
		}
		if x <= width {
			return
		}
		m.offset++
	}
}

// Pattern returns the active highlight pattern, or "".
func (m *Inspector) Pattern() string { return m.pattern }

// Spans returns the active highlight spans.
func (m *Inspector) Spans() []Span { return m.spans }

// Highlight compiles pattern, finds all matches in the text, and records
// their cluster spans. Each match cycles to the next palette slot. It
// returns the match count.
func (m *Inspector) Highlight(pattern string) (int, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, fmt.Errorf("pattern %q: %w", pattern, err)
	}

	var spans []Span
	it := m.src.FindAll(re)
	for it.Next() {
		mt := it.Match()
		spans = append(spans, Span{
			Start: mt.Start,
			End:   mt.End,
			Color: len(spans) % PaletteSize,
		})
	}

	m.pattern = pattern
	m.spans = spans
	return len(spans), nil
}

// ClearHighlights removes the pattern and all spans.
func (m *Inspector) ClearHighlights() {
	m.pattern = ""
	m.spans = nil
}

// SpanAt returns the highlight span covering cluster index i.
// Empty spans count as covering their start index.
func (m *Inspector) SpanAt(i int) (Span, bool) {
	for _, sp := range m.spans {
		if i >= sp.Start && i < sp.End {
			return sp, true
		}
		if sp.Start == sp.End && i == sp.Start {
			return sp, true
		}
	}
	return Span{}, false
}

// NextMatch moves the cursor to the first span starting after it.
// Returns false if there is none.
func (m *Inspector) NextMatch() bool {
	for _, sp := range m.spans {
		if sp.Start > m.cursor {
			m.MoveTo(sp.Start)
			return true
		}
	}
	return false
}

// PrevMatch moves the cursor to the last span starting before it.
// Returns false if there is none.
func (m *Inspector) PrevMatch() bool {
	for i := len(m.spans) - 1; i >= 0; i-- {
		if m.spans[i].Start < m.cursor {
			m.MoveTo(m.spans[i].Start)
			return true
		}
	}
	return false
}
