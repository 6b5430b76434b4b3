package scope

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/grapheme"
)

// Surface is the drawing target for the view. tcell.Screen satisfies it;
// tests use an in-memory grid.
type Surface interface {
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	Size() (width, height int)
}

// Screen rows used by Draw. The strip scrolls horizontally; everything
// else is fixed.
const (
	rowTitle   = 0
	rowStrip   = 2
	rowCaret   = 3
	rowDetails = 5
)

const footerHelp = "←/→ move   home/end jump   / pattern   n/N match   esc clear   q quit"

// View draws an Inspector onto a Surface. The caller clears the surface
// before each frame.
type View struct {
	palette []tcell.Color
}

// NewView creates a view with the standard highlight palette.
func NewView() *View {
	return &View{palette: Palette(PaletteSize)}
}

// Draw renders the full frame: title, cluster strip, cursor caret,
// detail panel, and footer.
func (v *View) Draw(s Surface, m *Inspector) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	dim := tcell.StyleDefault.Dim(true)
	bold := tcell.StyleDefault.Bold(true)

	title := fmt.Sprintf("gview  %d clusters, %d bytes", m.Len(), m.Source().ByteLen())
	if m.Pattern() != "" {
		title += fmt.Sprintf("   /%s  %d matches", m.Pattern(), len(m.Spans()))
	}
	drawText(s, 1, rowTitle, w-1, bold, title)

	v.drawStrip(s, m, w)
	v.drawDetails(s, m, w, h)

	if h-1 > rowDetails {
		drawText(s, 1, h-1, w-1, dim, footerHelp)
	}
}

// drawStrip renders the scrolling cluster row and the caret under the
// cursor.
func (v *View) drawStrip(s Surface, m *Inspector, w int) {
	m.ensureVisible(w - 2)

	x := 1
	for i := m.offset; i < m.Len(); i++ {
		row := m.rows[i]
		cw := cellWidth(row)
		if x+cw > w-1 {
			break
		}

		style := tcell.StyleDefault
		if sp, ok := m.SpanAt(i); ok {
			style = spanStyle(v.palette, sp.Color)
		}
		if i == m.cursor {
			style = style.Reverse(true).Bold(true)
		}

		if row.Width < 1 {
			// Control or zero-width cluster: show a placeholder.
			s.SetContent(x, rowStrip, '·', nil, style.Dim(true))
		} else {
			rs := []rune(row.Text)
			s.SetContent(x, rowStrip, rs[0], rs[1:], style)
		}

		if i == m.cursor {
			for cx := 0; cx < cw; cx++ {
				s.SetContent(x+cx, rowCaret, '^', nil, tcell.StyleDefault)
			}
		}
		x += cw
	}
}

// drawDetails renders the per-cluster panel for the cursor row.
func (v *View) drawDetails(s Surface, m *Inspector, w, h int) {
	dim := tcell.StyleDefault.Dim(true)

	row, ok := m.CursorRow()
	if !ok {
		drawText(s, 1, rowDetails, w-1, dim, "empty text")
		return
	}

	lines := []struct {
		label string
		value string
	}{
		{"index", fmt.Sprintf("%d of %d", row.Index, m.Len())},
		{"bytes", fmt.Sprintf("[%d, %d)", row.ByteOff, row.ByteOff+row.ByteLen)},
		{"text", row.Text},
		{"code points", row.CodePoints},
		{"width", fmt.Sprintf("%d", row.Width)},
		{"nfc", CodePoints(row.NFC)},
		{"nfd", CodePoints(row.NFD)},
	}

	for i, ln := range lines {
		y := rowDetails + i
		if y >= h-1 {
			break
		}
		drawText(s, 1, y, 14, dim, ln.label)
		drawText(s, 15, y, w-1, tcell.StyleDefault, ln.value)
	}
}

// DrawStatus writes a one-line message on the bottom row, replacing the
// footer. gview uses it for the pattern prompt and errors.
func DrawStatus(s Surface, text string) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	for x := 0; x < w; x++ {
		s.SetContent(x, h-1, ' ', nil, tcell.StyleDefault)
	}
	drawText(s, 1, h-1, w-1, tcell.StyleDefault, text)
}

// drawText places text cluster by cluster starting at (x, y), stopping
// at column limit. Combining runes ride along as tcell combc, so what
// holds for the library holds for its own display. Returns the next x.
func drawText(s Surface, x, y, limit int, style tcell.Style, text string) int {
	it := grapheme.New(text).Iter()
	for it.Next() {
		c := it.Cluster()
		cw := uniseg.StringWidth(c.Text())
		if cw < 1 {
			cw = 1
		}
		if x+cw > limit {
			break
		}
		rs := []rune(c.Text())
		s.SetContent(x, y, rs[0], rs[1:], style)
		x += cw
	}
	return x
}

func cellWidth(r Row) int {
	if r.Width < 1 {
		return 1
	}
	return r.Width
}
