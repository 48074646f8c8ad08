// Package font defines the abstract Font capability (component A) that
// the layout pipeline depends on: resolving a FontID to glyph metrics,
// advances and kerning, without caring how the font bytes were parsed or
// rasterized.
package font

// ID identifies a font within a FontMap. Dense, non-negative, assigned
// by FontMap.Add in insertion order.
type ID int

// PxScale is a pixel scale. Most callers want a uniform scale, where
// X == Y; Uniform constructs exactly that.
type PxScale struct {
	X, Y float64
}

// Uniform returns a PxScale with X and Y set to the same value.
func Uniform(px float64) PxScale { return PxScale{X: px, Y: px} }

// GlyphID is a font-internal glyph index. It is only meaningful paired
// with the Font that produced it.
type GlyphID uint16

// Glyph is an unscaled, unpositioned glyph reference: a codepoint
// resolved to a GlyphID within a specific Font.
type Glyph struct {
	FontID ID
	GID    GlyphID
	Rune   rune
}

// ScaledGlyph is a Glyph fixed to a PxScale, the unit the layout pipeline
// positions and the atlas rasterizes.
type ScaledGlyph struct {
	Glyph
	Scale PxScale
}

// VMetrics carries the vertical metrics of a face at a given scale,
// shared by every glyph placed with that face+scale pair.
type VMetrics struct {
	Ascent  float64
	Descent float64 // positive, measured below the baseline
	LineGap float64
}

// Height returns Ascent + Descent + LineGap, the recommended distance
// between consecutive baselines.
func (m VMetrics) Height() float64 { return m.Ascent + m.Descent + m.LineGap }

// Font resolves codepoints to glyphs and exposes the per-glyph metrics
// the word and line builders need. The layout pipeline never mutates a
// Font and calls it from a single goroutine; the concrete
// implementations in this package are not safe for concurrent use.
type Font interface {
	// Glyph resolves a codepoint to a Glyph. Fonts without coverage for
	// r should return the notdef glyph (GID 0) rather than an error;
	// the word iterator treats GID 0 like any other glyph.
	Glyph(r rune) Glyph

	// Scaled fixes a Glyph to scale, returning the value the layout
	// pipeline carries from here on.
	Scaled(g Glyph, scale PxScale) ScaledGlyph

	// HAdvance returns the horizontal advance of a scaled glyph.
	HAdvance(g ScaledGlyph) float64

	// Kern returns the kerning adjustment to add to the caret between
	// prev and next, both already scaled identically. Zero if the font
	// has no kerning table or the pair is not listed.
	Kern(prev, next ScaledGlyph) float64

	// VMetrics returns the vertical metrics of the font at scale.
	VMetrics(scale PxScale) VMetrics

	// Rasterize renders a scaled glyph's coverage bitmap. ok is false
	// for glyphs with no ink (space, notdef with an empty outline),
	// the condition the vertex generator and atlas both treat as
	// "no quad to emit".
	Rasterize(g ScaledGlyph) (Bitmap, bool)
}

// Map resolves a FontID to a Font. Every FontID referenced by a queued
// section must resolve through Map; Lookup reports the failure
// explicitly rather than panicking so the caller can drop the offending
// section and keep the frame.
type Map struct {
	fonts []Font
}

// NewMap returns an empty Map.
func NewMap() *Map { return &Map{} }

// Add appends f to the map and returns the ID it was assigned.
func (m *Map) Add(f Font) ID {
	id := ID(len(m.fonts))
	m.fonts = append(m.fonts, f)
	return id
}

// Lookup resolves id to a Font. ok is false when id is out of range,
// the condition the brush reports as an InvalidFontIDError.
func (m *Map) Lookup(id ID) (f Font, ok bool) {
	if id < 0 || int(id) >= len(m.fonts) {
		return nil, false
	}
	return m.fonts[id], true
}

// Len returns the number of fonts registered in the map.
func (m *Map) Len() int { return len(m.fonts) }
