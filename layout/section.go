package layout

import (
	"math"

	"github.com/gogpu/glyphbrush/font"
)

// Extra carries render attributes that are opaque to layout: layout
// never inspects it, only the vertex generator does. This is the
// default extras type; callers needing more fields can define their
// own and thread it alongside Section by convention (e.g. a parallel
// slice indexed the same as Text).
type Extra struct {
	Color        RGBA
	OutlineColor RGBA
	Z            float32
}

// DefaultExtra is the zero-value-safe default: opaque black text, no
// outline, z = 0.
func DefaultExtra() Extra {
	return Extra{Color: Black, OutlineColor: Transparent, Z: 0}
}

// SectionText is one contiguous run sharing a font, scale and extras.
type SectionText struct {
	Text   string
	Scale  font.PxScale
	FontID font.ID
	Extra  Extra
}

// SectionGeometry positions a section on screen. Bounds components of
// +Inf mean unbounded in that axis.
type SectionGeometry struct {
	ScreenPosition Point
	Bounds         Point // Bounds.X = width bound, Bounds.Y = height bound
}

// UnboundedBounds is the Bounds value meaning "no wrap/clip limit".
func UnboundedBounds() Point {
	return Point{X: math.Inf(1), Y: math.Inf(1)}
}

// Section is a styled text block: geometry, a layout strategy, and an
// ordered list of styled runs. Equality is value-wise; fingerprint.Of
// (see package fingerprint) derives stable hashes for cache lookups.
type Section struct {
	Geometry SectionGeometry
	Layout   Layout
	Text     []SectionText
}

// BoundsRect returns the axis-aligned rectangle spanning ScreenPosition
// extended by Bounds along the alignment direction. The vertex
// generator drops each glyph whose box lies wholly outside it; a
// section is not skipped as a whole.
func (s Section) BoundsRect() Rect {
	hAlign, vAlign := s.Layout.Alignment()
	x0, x1 := hBoundsRect(s.Geometry, hAlign)
	y0, y1 := vBoundsRect(s.Geometry, vAlign)
	return Rect{MinX: x0, MinY: y0, MaxX: x1, MaxY: y1}
}

func hBoundsRect(g SectionGeometry, align HAlign) (min, max float64) {
	x := g.ScreenPosition.X
	w := g.Bounds.X
	switch align {
	case HAlignCenter:
		return x - w/2, x + w/2
	case HAlignRight:
		return x - w, x
	default: // HAlignLeft
		return x, x + w
	}
}

func vBoundsRect(g SectionGeometry, align VAlign) (min, max float64) {
	y := g.ScreenPosition.Y
	h := g.Bounds.Y
	switch align {
	case VAlignCenter:
		return y - h/2, y + h/2
	case VAlignBottom:
		return y - h, y
	default: // VAlignTop
		return y, y + h
	}
}

// Rect is an axis-aligned screen-space rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Disjoint reports whether r shares no area with the rectangle defined
// by (minX, minY)-(maxX, maxY); used by the vertex generator to scissor
// glyphs entirely outside a section's bounds.
func (r Rect) Disjoint(minX, minY, maxX, maxY float64) bool {
	return maxX < r.MinX || minX > r.MaxX || maxY < r.MinY || minY > r.MaxY
}

// Glyph is an unscaled glyph reference resolved from a codepoint.
type Glyph = font.Glyph

// ScaledGlyph is a Glyph fixed to a PxScale.
type ScaledGlyph = font.ScaledGlyph

// SectionGlyph (PositionedGlyph) is a ScaledGlyph placed on screen,
// tagged with its source location for hit-testing and cache
// invalidation.
type SectionGlyph struct {
	Glyph        ScaledGlyph
	Position     Point
	FontID       font.ID
	SectionIndex int
	ByteIndex    int
}
