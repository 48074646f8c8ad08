package font

import (
	"bytes"
	"fmt"

	gofont "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/math/fixed"
)

// GoTextFont is a concrete Font backed by github.com/go-text/typesetting,
// mirroring the teacher's GoTextShaper. It resolves advances and metrics
// from real OpenType tables via the same library used for HarfBuzz-level
// shaping elsewhere in the ecosystem, trading a heavier parse for
// higher-fidelity metrics than SfntFont.
type GoTextFont struct {
	id   ID
	face *gofont.Face
	upem float64
}

// NewGoTextFont parses font bytes with go-text/typesetting. Returns an
// error when the bytes cannot be parsed, the condition the brush
// surfaces as ErrInvalidFont.
//
// The engine is single-threaded, so holding one Face (not safe for
// concurrent use, unlike the Font it embeds) is fine here.
func NewGoTextFont(data []byte, id ID) (*GoTextFont, error) {
	face, err := gofont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font: failed to parse font: %w", err)
	}
	upem := float64(face.Upem())
	if upem == 0 {
		upem = 1000
	}
	return &GoTextFont{id: id, face: face, upem: upem}, nil
}

// unitScale converts font design units to device pixels at scale.
func (f *GoTextFont) unitScale(scale PxScale) float64 {
	return scale.Y / f.upem
}

// Glyph implements Font.
func (f *GoTextFont) Glyph(r rune) Glyph {
	gid, ok := f.face.NominalGlyph(r)
	if !ok {
		gid = 0
	}
	return Glyph{FontID: f.id, GID: GlyphID(gid), Rune: r} //nolint:gosec // glyph ids in sfnt fonts are uint16
}

// Scaled implements Font.
func (f *GoTextFont) Scaled(g Glyph, scale PxScale) ScaledGlyph {
	return ScaledGlyph{Glyph: g, Scale: scale}
}

// HAdvance implements Font.
func (f *GoTextFont) HAdvance(g ScaledGlyph) float64 {
	adv := f.face.HorizontalAdvance(gofont.GID(g.GID))
	return float64(adv) * f.unitScale(g.Scale)
}

// Kern implements Font.
//
// go-text/typesetting exposes kerning through GPOS pair positioning
// rather than a standalone kern-table lookup; HarfBuzz shaping (not
// this capability) is the intended path for GPOS-driven kerning.
// GoTextFont reports zero kerning and relies on HAdvance alone,
// matching fonts with no legacy "kern" table.
func (f *GoTextFont) Kern(prev, next ScaledGlyph) float64 {
	return 0
}

// VMetrics implements Font.
func (f *GoTextFont) VMetrics(scale PxScale) VMetrics {
	extents, ok := f.face.FontHExtents()
	if !ok {
		return VMetrics{}
	}
	us := f.unitScale(scale)
	return VMetrics{
		Ascent:  float64(extents.Ascender) * us,
		Descent: -float64(extents.Descender) * us,
		LineGap: float64(extents.LineGap) * us,
	}
}

// Rasterize implements Font.
//
// Face.GlyphData returns a GlyphOutline whose segments are in font
// design units, Y up. They are scaled to device pixels here, then
// handed to the same scan-converter SfntFont uses.
func (f *GoTextFont) Rasterize(g ScaledGlyph) (Bitmap, bool) {
	data := f.face.GlyphData(gofont.GID(g.GID))
	outline, ok := data.(gofont.GlyphOutline)
	if !ok || len(outline.Segments) == 0 {
		return Bitmap{}, false
	}

	us := f.unitScale(g.Scale)
	toFixed := func(p gofont.SegmentPoint) fixed.Point26_6 {
		return fixed.Point26_6{
			X: fixed.Int26_6(float64(p.X) * us * 64),
			Y: fixed.Int26_6(float64(p.Y) * us * 64),
		}
	}

	segs := make([]pathSegment, len(outline.Segments))
	var bounds fixed.Rectangle26_6
	first := true
	growBounds := func(p fixed.Point26_6) {
		if first {
			bounds.Min, bounds.Max, first = p, p, false
			return
		}
		if p.X < bounds.Min.X {
			bounds.Min.X = p.X
		}
		if p.Y < bounds.Min.Y {
			bounds.Min.Y = p.Y
		}
		if p.X > bounds.Max.X {
			bounds.Max.X = p.X
		}
		if p.Y > bounds.Max.Y {
			bounds.Max.Y = p.Y
		}
	}

	for i, s := range outline.Segments {
		var op segmentOp
		argCount := 1
		switch s.Op {
		case ot.SegmentOpLineTo:
			op = opLineTo
		case ot.SegmentOpQuadTo:
			op = opQuadTo
			argCount = 2
		case ot.SegmentOpCubeTo:
			op = opCubeTo
			argCount = 3
		default:
			op = opMoveTo
		}
		var args [3]fixed.Point26_6
		for j := 0; j < argCount; j++ {
			p := toFixed(s.Args[j])
			args[j] = p
			growBounds(p)
		}
		segs[i] = pathSegment{op: op, args: args}
	}

	return rasterizeOutline(segs, bounds)
}
