package scope

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// PaletteSize is the number of distinct highlight colors. Spans cycle
// through it, so adjacent matches render in different colors.
const PaletteSize = 6

// Palette returns n highlight colors with evenly stepped hues.
func Palette(n int) []tcell.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]tcell.Color, n)
	for i := range colors {
		h := float64(i) * 360.0 / float64(n)
		r, g, b := colorful.Hsv(h, 0.62, 0.93).RGB255()
		colors[i] = tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return colors
}

// spanStyle returns the style for a highlight span: palette background,
// black foreground so the cluster text stays readable on every hue.
func spanStyle(palette []tcell.Color, slot int) tcell.Style {
	if len(palette) == 0 {
		return tcell.StyleDefault.Reverse(true)
	}
	return tcell.StyleDefault.
		Background(palette[slot%len(palette)]).
		Foreground(tcell.ColorBlack)
}
