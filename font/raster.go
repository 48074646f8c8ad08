package font

import (
	"image"

	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Bitmap is a rasterized glyph: an 8-bit coverage mask plus the offset
// from the glyph's pen origin (the caret position, on the baseline) to
// the mask's top-left corner, in screen pixels with Y increasing
// downward. A Bitmap with Width or Height zero carries no ink (e.g. a
// space) and Rasterize reports ok=false for it.
type Bitmap struct {
	Width, Height int
	BearingX      float64
	BearingY      float64
	Pixels        []byte // row-major, Stride == Width
}

// segmentOp mirrors the handful of path operations every outline format
// this package consumes (sfnt.Segments, go-text's font.Segment) reduces
// to, letting both concrete Font backends share one scan-converter.
type segmentOp uint8

const (
	opMoveTo segmentOp = iota
	opLineTo
	opQuadTo
	opCubeTo
)

type pathSegment struct {
	op   segmentOp
	args [3]fixed.Point26_6
}

// rasterizeOutline scan-converts path segments already translated into
// device pixel space (26.6 fixed point, Y-up like PostScript/TrueType)
// into an 8-bit coverage Bitmap sized to bounds, using the same
// vector.Rasterizer pipeline golang.org/x/image/font/sfnt's own glyph
// renderer uses. bounds.Min/Max.Y follow the font's Y-up convention;
// the output Bitmap flips to the engine's screen Y-down convention.
func rasterizeOutline(segs []pathSegment, bounds fixed.Rectangle26_6) (Bitmap, bool) {
	width := (bounds.Max.X - bounds.Min.X).Ceil()
	height := (bounds.Max.Y - bounds.Min.Y).Ceil()
	if width <= 0 || height <= 0 || len(segs) == 0 {
		return Bitmap{}, false
	}

	r := vector.NewRasterizer(width, height)
	// toLocal maps a font-space point (Y-up) to rasterizer space
	// (Y-down, origin at the bitmap's top-left).
	toLocal := func(p fixed.Point26_6) (float32, float32) {
		x := float32(p.X-bounds.Min.X) / 64
		y := float32(bounds.Max.Y-p.Y) / 64
		return x, y
	}

	for _, s := range segs {
		switch s.op {
		case opMoveTo:
			x, y := toLocal(s.args[0])
			r.MoveTo(x, y)
		case opLineTo:
			x, y := toLocal(s.args[0])
			r.LineTo(x, y)
		case opQuadTo:
			x0, y0 := toLocal(s.args[0])
			x1, y1 := toLocal(s.args[1])
			r.QuadTo(x0, y0, x1, y1)
		case opCubeTo:
			x0, y0 := toLocal(s.args[0])
			x1, y1 := toLocal(s.args[1])
			x2, y2 := toLocal(s.args[2])
			r.CubeTo(x0, y0, x1, y1, x2, y2)
		}
	}

	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

	return Bitmap{
		Width:    width,
		Height:   height,
		BearingX: float64(bounds.Min.X) / 64,
		BearingY: -float64(bounds.Max.Y) / 64,
		Pixels:   dst.Pix,
	}, true
}
