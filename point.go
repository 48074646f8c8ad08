package glyphbrush

import "github.com/gogpu/glyphbrush/layout"

// Point represents a 2D position or displacement in screen pixels.
// It is used for SectionGeometry.ScreenPosition/Bounds and for every
// positioned glyph origin.
type Point = layout.Point

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return layout.Pt(x, y)
}
