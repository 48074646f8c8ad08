package layout

import "github.com/gogpu/glyphbrush/font"

// mockFont gives every glyph a fixed advance and zero kerning unless a
// pair is registered, enough to exercise the character/word/line
// pipeline deterministically without a real font file.
type mockFont struct {
	advance  float64
	kerns    map[[2]font.GlyphID]float64
	vmetrics font.VMetrics
}

func newMockFont(advance float64) *mockFont {
	return &mockFont{
		advance:  advance,
		kerns:    map[[2]font.GlyphID]float64{},
		vmetrics: font.VMetrics{Ascent: 12, Descent: 4, LineGap: 2},
	}
}

func (m *mockFont) Glyph(r rune) font.Glyph {
	return font.Glyph{GID: font.GlyphID(r), Rune: r}
}

func (m *mockFont) Scaled(g font.Glyph, scale font.PxScale) font.ScaledGlyph {
	return font.ScaledGlyph{Glyph: g, Scale: scale}
}

func (m *mockFont) HAdvance(g font.ScaledGlyph) float64 {
	return m.advance
}

func (m *mockFont) Kern(prev, next font.ScaledGlyph) float64 {
	return m.kerns[[2]font.GlyphID{prev.GID, next.GID}]
}

func (m *mockFont) VMetrics(scale font.PxScale) font.VMetrics {
	return m.vmetrics
}

func (m *mockFont) Rasterize(g font.ScaledGlyph) (font.Bitmap, bool) {
	if g.Rune == ' ' || g.Rune == 0 {
		return font.Bitmap{}, false
	}
	pixels := make([]byte, 8*8)
	for i := range pixels {
		pixels[i] = 255
	}
	return font.Bitmap{Width: 8, Height: 8, Pixels: pixels}, true
}

func newMockMap(advance float64) (*font.Map, font.ID) {
	m := font.NewMap()
	id := m.Add(newMockFont(advance))
	return m, id
}
