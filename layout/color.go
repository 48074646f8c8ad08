package layout

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]. It is the color representation
// carried by Extra into every emitted vertex.
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// RGBA4 creates a color from RGBA components.
func RGBA4(r, g, b, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Transparent = RGBA4(0, 0, 0, 0)
)
