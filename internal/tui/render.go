package tui

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/iburimskiy/dotpager/internal/indicator"
)

// glyphs from largest to smallest scale tier.
type glyphs [4]string

var (
	unicodeGlyphs = glyphs{"●", "•", "∙", "·"}
	asciiGlyphs   = glyphs{"O", "o", ".", "."}
)

// pickGlyphs falls back to ASCII when the terminal counts the round
// glyphs as double width.
func pickGlyphs() glyphs {
	for _, g := range unicodeGlyphs {
		if runewidth.StringWidth(g) != 1 {
			return asciiGlyphs
		}
	}
	return unicodeGlyphs
}

// glyph maps a scale onto the nearest falloff tier; an empty string means
// the dot is not drawn.
func (g glyphs) glyph(scale float64) string {
	switch {
	case scale >= 0.83:
		return g[0]
	case scale >= 0.495:
		return g[1]
	case scale >= 0.245:
		return g[2]
	case scale >= 0.08:
		return g[3]
	default:
		return ""
	}
}

// renderRow lays dots out on a single line of width cells. Where dots
// share a cell the larger one wins.
func renderRow(dots []indicator.Dot, width int, g glyphs) string {
	if width <= 0 {
		return ""
	}
	type cell struct {
		scale float64
		text  string
	}
	cells := make([]cell, width)
	for _, d := range dots {
		text := g.glyph(d.Scale)
		if text == "" {
			continue
		}
		col := min(max(int(math.Floor(d.Center.X)), 0), width-1)
		if cells[col].text != "" && cells[col].scale >= d.Scale {
			continue
		}
		cells[col] = cell{scale: d.Scale, text: tint(d.Tint).Render(text)}
	}

	var b strings.Builder
	for _, c := range cells {
		if c.text == "" {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(c.text)
	}
	return b.String()
}

func tint(c color.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c == nil {
		return s
	}
	if cf, ok := colorful.MakeColor(c); ok {
		s = s.Foreground(lipgloss.Color(cf.Hex()))
	}
	return s
}
