package font

import (
	"fmt"

	ximgfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// SfntFont is a concrete Font backed by golang.org/x/image/font/{sfnt,opentype},
// the direct-parsing path mirroring the teacher's ximageParser/ximageParsedFont.
// It favors the font's own hinted metrics and kerning table over HarfBuzz
// shaping, and is the cheaper of the two concrete backends to construct.
type SfntFont struct {
	id   ID
	face *opentype.Font
	buf  sfnt.Buffer
}

// NewSfntFont parses font bytes via golang.org/x/image/font/opentype and
// wraps the result as a Font. Returns an error when the bytes are not a
// valid TTF/OTF/TTC, the condition the brush surfaces as ErrInvalidFont.
func NewSfntFont(data []byte, id ID) (*SfntFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: failed to parse font: %w", err)
	}
	return &SfntFont{id: id, face: f}, nil
}

// Glyph implements Font.
func (f *SfntFont) Glyph(r rune) Glyph {
	idx, err := f.face.GlyphIndex(&f.buf, r)
	if err != nil {
		idx = 0
	}
	return Glyph{FontID: f.id, GID: GlyphID(idx), Rune: r}
}

// Scaled implements Font.
func (f *SfntFont) Scaled(g Glyph, scale PxScale) ScaledGlyph {
	return ScaledGlyph{Glyph: g, Scale: scale}
}

// HAdvance implements Font.
func (f *SfntFont) HAdvance(g ScaledGlyph) float64 {
	adv, err := f.face.GlyphAdvance(&f.buf, sfnt.GlyphIndex(g.GID), ppem(g.Scale), ximgfont.HintingFull)
	if err != nil {
		return 0
	}
	return fixedToFloat(adv)
}

// Kern implements Font.
//
// sfnt.Font.Kern takes a single ppem, taken here from prev's scale. The
// word iterator kerns consecutive glyphs of a word even across a run
// boundary, so when the two runs differ in scale the result is the
// kerning at prev's scale, looked up in this font's table.
func (f *SfntFont) Kern(prev, next ScaledGlyph) float64 {
	k, err := f.face.Kern(&f.buf, sfnt.GlyphIndex(prev.GID), sfnt.GlyphIndex(next.GID), ppem(prev.Scale), ximgfont.HintingFull)
	if err != nil {
		return 0
	}
	return fixedToFloat(k)
}

// VMetrics implements Font.
func (f *SfntFont) VMetrics(scale PxScale) VMetrics {
	m, err := f.face.Metrics(&f.buf, ppem(scale), ximgfont.HintingFull)
	if err != nil {
		return VMetrics{}
	}
	ascent := fixedToFloat(m.Ascent)
	descent := fixedToFloat(m.Descent)
	lineGap := fixedToFloat(m.Height) - ascent - descent
	return VMetrics{Ascent: ascent, Descent: descent, LineGap: lineGap}
}

// Rasterize implements Font.
//
// sfnt.LoadGlyph yields segments in device pixels with Y pointing down;
// the shared scan-converter expects the font's Y-up convention, so
// every point is mirrored about the baseline and the glyph's bounds
// grown from the mirrored outline.
func (f *SfntFont) Rasterize(g ScaledGlyph) (Bitmap, bool) {
	p := ppem(g.Scale)
	segments, err := f.face.LoadGlyph(&f.buf, sfnt.GlyphIndex(g.GID), p, nil)
	if err != nil || len(segments) == 0 {
		return Bitmap{}, false
	}

	flip := func(pt fixed.Point26_6) fixed.Point26_6 {
		return fixed.Point26_6{X: pt.X, Y: -pt.Y}
	}

	segs := make([]pathSegment, len(segments))
	var bounds fixed.Rectangle26_6
	first := true
	growBounds := func(pt fixed.Point26_6) {
		if first {
			bounds.Min, bounds.Max, first = pt, pt, false
			return
		}
		if pt.X < bounds.Min.X {
			bounds.Min.X = pt.X
		}
		if pt.Y < bounds.Min.Y {
			bounds.Min.Y = pt.Y
		}
		if pt.X > bounds.Max.X {
			bounds.Max.X = pt.X
		}
		if pt.Y > bounds.Max.Y {
			bounds.Max.Y = pt.Y
		}
	}

	for i, s := range segments {
		var op segmentOp
		argCount := 1
		switch s.Op {
		case sfnt.SegmentOpLineTo:
			op = opLineTo
		case sfnt.SegmentOpQuadTo:
			op = opQuadTo
			argCount = 2
		case sfnt.SegmentOpCubeTo:
			op = opCubeTo
			argCount = 3
		default:
			op = opMoveTo
		}
		var args [3]fixed.Point26_6
		for j := 0; j < argCount; j++ {
			pt := flip(s.Args[j])
			args[j] = pt
			growBounds(pt)
		}
		segs[i] = pathSegment{op: op, args: args}
	}

	return rasterizeOutline(segs, bounds)
}

func ppem(scale PxScale) fixed.Int26_6 {
	return fixed.Int26_6(scale.Y * 64)
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
