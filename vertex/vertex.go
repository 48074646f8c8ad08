// Package vertex converts a positioned glyph, its atlas residency, and
// its section's render extras into a GPU quad instance (component J).
// Instances are designed for instanced rendering: one draw call, one
// vertex buffer of Instance values, a fixed unit-quad mesh expanded by
// the vertex shader using LeftTop/RightBottom per spec.md §6.
package vertex

import (
	"github.com/gogpu/glyphbrush/atlas"
	"github.com/gogpu/glyphbrush/layout"
)

// Instance is one quad instance: a glyph's screen-space bounding box,
// its UV rect within the atlas texture, and the section's color extras.
// Floats are little-endian 32-bit per spec.md §6; UVs are normalized
// [0, 1] f32 here (implementer's choice allows u16 instead, but f32
// keeps the fast color-only update path a pure field overwrite with no
// repacking).
type Instance struct {
	LeftTop        [3]float32 // x, y, z
	RightBottom    [2]float32 // x, y
	TexLeftTop     [2]float32 // u, v
	TexRightBottom [2]float32 // u, v
	Color          [4]float32
	OutlineColor   [4]float32
}

// Generate builds one quad instance for a glyph already resident in the
// atlas at rect. ok is false when the glyph carries no ink (width or
// height zero) or its screen-space box lies entirely outside
// boundsRect — the scissoring spec.md §4.J specifies, so glyphs outside
// the section's bounds emit no quad.
func Generate(
	pos layout.Point,
	bearingX, bearingY float64,
	width, height int,
	rect atlas.Rect,
	atlasSize int,
	extra layout.Extra,
	boundsRect layout.Rect,
) (Instance, bool) {
	if width == 0 || height == 0 {
		return Instance{}, false
	}

	minX := pos.X + bearingX
	minY := pos.Y + bearingY
	maxX := minX + float64(width)
	maxY := minY + float64(height)

	if boundsRect.Disjoint(minX, minY, maxX, maxY) {
		return Instance{}, false
	}

	size := float32(atlasSize)
	if size == 0 {
		size = 1
	}

	return Instance{
		LeftTop:        [3]float32{float32(minX), float32(minY), extra.Z},
		RightBottom:    [2]float32{float32(maxX), float32(maxY)},
		TexLeftTop:     [2]float32{float32(rect.X) / size, float32(rect.Y) / size},
		TexRightBottom: [2]float32{float32(rect.X+rect.W) / size, float32(rect.Y+rect.H) / size},
		Color:          colorArray(extra.Color),
		OutlineColor:   colorArray(extra.OutlineColor),
	}, true
}

// UpdateColor overwrites only the color and z fields of an existing
// instance, preserving its position and UVs — the fast path
// spec.md §4.J calls for on a Color/Alpha-only diff, avoiding a full
// atlas lookup and box recomputation.
func UpdateColor(inst *Instance, extra layout.Extra) {
	inst.Color = colorArray(extra.Color)
	inst.OutlineColor = colorArray(extra.OutlineColor)
	inst.LeftTop[2] = extra.Z
}

func colorArray(c layout.RGBA) [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}
