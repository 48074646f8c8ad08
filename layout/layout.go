package layout

import (
	"math"

	"github.com/gogpu/glyphbrush/font"
	"github.com/gogpu/glyphbrush/linebreak"
)

// Layout is the closed variant set parameterizing the line assembler:
// Wrap or SingleLine, each carrying its own line-breaker and alignment.
// There is no open inheritance hierarchy — callers pick one of the two
// concrete types below.
type Layout interface {
	// Alignment returns the horizontal/vertical alignment this layout
	// applies.
	Alignment() (HAlign, VAlign)

	// Calculate runs the full character -> word -> line pipeline over
	// section's text and returns the final positioned glyphs, plus any
	// diagnostic overflow reports.
	Calculate(fonts *font.Map, section Section) ([]SectionGlyph, []Overflow)

	// RecalculateGlyphs implements the geometry-only fast path: given a
	// previous glyph set computed for oldGeom, return glyphs translated
	// to newGeom without rerunning the pipeline. Valid only when
	// oldGeom and newGeom differ solely in ScreenPosition.
	RecalculateGlyphs(previous []SectionGlyph, oldGeom, newGeom SectionGeometry) []SectionGlyph
}

// Wrap lays text out across multiple lines, breaking at widths given by
// the section's Bounds.X.
type Wrap struct {
	LineBreaker linebreak.Breaker
	HAlign      HAlign
	VAlign      VAlign
}

// Alignment implements Layout.
func (w Wrap) Alignment() (HAlign, VAlign) { return w.HAlign, w.VAlign }

// Calculate implements Layout.
func (w Wrap) Calculate(fonts *font.Map, section Section) ([]SectionGlyph, []Overflow) {
	chars := Characters(section.Text, w.LineBreaker, fonts)
	words := Words(chars, fonts)
	lines, overflow := Lines(words, section.Geometry.Bounds.X)
	return Assemble(lines, section.Geometry, w.HAlign, w.VAlign), overflow
}

// RecalculateGlyphs implements Layout.
func (w Wrap) RecalculateGlyphs(previous []SectionGlyph, oldGeom, newGeom SectionGeometry) []SectionGlyph {
	return translateGlyphs(previous, oldGeom, newGeom)
}

// SingleLine lays text out without wrapping, ignoring any width bound
// the section's geometry specifies. Hard breaks such as '\n' still
// start a new line.
type SingleLine struct {
	LineBreaker linebreak.Breaker
	HAlign      HAlign
	VAlign      VAlign
}

// Alignment implements Layout.
func (s SingleLine) Alignment() (HAlign, VAlign) { return s.HAlign, s.VAlign }

// Calculate implements Layout.
func (s SingleLine) Calculate(fonts *font.Map, section Section) ([]SectionGlyph, []Overflow) {
	chars := Characters(section.Text, s.LineBreaker, fonts)
	words := Words(chars, fonts)
	lines, overflow := Lines(words, math.Inf(1))
	return Assemble(lines, section.Geometry, s.HAlign, s.VAlign), overflow
}

// RecalculateGlyphs implements Layout.
func (s SingleLine) RecalculateGlyphs(previous []SectionGlyph, oldGeom, newGeom SectionGeometry) []SectionGlyph {
	return translateGlyphs(previous, oldGeom, newGeom)
}

// translateGlyphs shifts every glyph in previous by the delta between
// oldGeom and newGeom's ScreenPosition — the cheap path used when only
// geometry changed (spec's recalculate_glyphs optimization).
func translateGlyphs(previous []SectionGlyph, oldGeom, newGeom SectionGeometry) []SectionGlyph {
	delta := newGeom.ScreenPosition.Sub(oldGeom.ScreenPosition)
	out := make([]SectionGlyph, len(previous))
	for i, g := range previous {
		out[i] = g
		out[i].Position = g.Position.Add(delta)
	}
	return out
}
