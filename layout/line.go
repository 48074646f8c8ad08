package layout

import (
	"iter"
	"math"

	"github.com/gogpu/glyphbrush/font"
)

// Line is a maximal sequence of words fitting within the wrap width, or
// terminated early by a hard break.
type Line struct {
	Glyphs      []WordGlyph // X already shifted by cumulative caret within the line
	MaxVMetrics font.VMetrics
	Width       float64
	HardBreak   bool
}

// Overflow is a diagnostic-only report (spec's LayoutOverflow): a word
// alone on its line still exceeds widthBound.
type Overflow struct {
	WordWidth  float64
	BoundWidth float64
}

// Lines greedily packs words into lines bounded by widthBound (may be
// +Inf for unbounded/single-line layouts). A word that alone exceeds
// widthBound is placed on its own line and reported via overflow rather
// than dropped, per spec.
func Lines(words iter.Seq[Word], widthBound float64) (lines []Line, overflow []Overflow) {
	var cur Line
	var caret float64
	haveAny := false

	flushLine := func(hard bool) {
		if !haveAny {
			return
		}
		cur.HardBreak = hard
		cur.Width = caret
		lines = append(lines, cur)
		cur = Line{}
		caret = 0
		haveAny = false
	}

	for w := range words {
		fits := !haveAny || caret+w.LayoutWidthNoTrail <= widthBound
		if !fits {
			flushLine(false)
		}
		if !haveAny && w.LayoutWidthNoTrail > widthBound && !math.IsInf(widthBound, 1) {
			overflow = append(overflow, Overflow{WordWidth: w.LayoutWidthNoTrail, BoundWidth: widthBound})
		}

		for _, g := range w.Glyphs {
			shifted := g
			shifted.X += caret
			cur.Glyphs = append(cur.Glyphs, shifted)
		}
		if w.MaxVMetrics.Height() > cur.MaxVMetrics.Height() {
			cur.MaxVMetrics = w.MaxVMetrics
		}
		caret += w.LayoutWidth
		haveAny = true

		if w.HardBreak {
			flushLine(true)
		}
	}
	flushLine(true)

	return lines, overflow
}

// Assemble computes final screen-space glyph positions from packed
// lines, applying vertical alignment over the paragraph height and
// horizontal alignment per line, per spec.md's assembly algorithm.
func Assemble(lines []Line, geom SectionGeometry, hAlign HAlign, vAlign VAlign) []SectionGlyph {
	if len(lines) == 0 {
		return nil
	}

	var height float64
	for i, l := range lines {
		height += l.MaxVMetrics.Ascent + l.MaxVMetrics.Descent
		if i < len(lines)-1 {
			height += l.MaxVMetrics.LineGap
		}
	}

	var y0 float64
	switch vAlign {
	case VAlignCenter:
		y0 = geom.ScreenPosition.Y - height/2
	case VAlignBottom:
		y0 = geom.ScreenPosition.Y - height
	default:
		y0 = geom.ScreenPosition.Y
	}

	var glyphs []SectionGlyph
	baseline := y0

	for _, l := range lines {
		baseline += l.MaxVMetrics.Ascent

		var x0 float64
		switch hAlign {
		case HAlignCenter:
			x0 = geom.ScreenPosition.X - l.Width/2
		case HAlignRight:
			x0 = geom.ScreenPosition.X - l.Width
		default:
			x0 = geom.ScreenPosition.X
		}

		for _, g := range l.Glyphs {
			if g.Control {
				continue
			}
			glyphs = append(glyphs, SectionGlyph{
				Glyph:        g.Glyph,
				Position:     Pt(x0+g.X, baseline),
				FontID:       g.FontID,
				SectionIndex: g.SectionIndex,
				ByteIndex:    g.ByteIndex,
			})
		}

		baseline += l.MaxVMetrics.Descent + l.MaxVMetrics.LineGap
	}

	return glyphs
}
