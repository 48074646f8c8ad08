package font

import "testing"

type mockFont struct {
	advances map[GlyphID]float64
	kerns    map[[2]GlyphID]float64
	vmetrics VMetrics
}

func (m *mockFont) Glyph(r rune) Glyph {
	return Glyph{GID: GlyphID(r)}
}

func (m *mockFont) Scaled(g Glyph, scale PxScale) ScaledGlyph {
	return ScaledGlyph{Glyph: g, Scale: scale}
}

func (m *mockFont) HAdvance(g ScaledGlyph) float64 {
	return m.advances[g.GID]
}

func (m *mockFont) Kern(prev, next ScaledGlyph) float64 {
	return m.kerns[[2]GlyphID{prev.GID, next.GID}]
}

func (m *mockFont) VMetrics(scale PxScale) VMetrics {
	return m.vmetrics
}

func (m *mockFont) Rasterize(g ScaledGlyph) (Bitmap, bool) {
	return Bitmap{}, false
}

func TestMapLookup(t *testing.T) {
	m := NewMap()
	f := &mockFont{}
	id := m.Add(f)

	got, ok := m.Lookup(id)
	if !ok || got != f {
		t.Fatalf("Lookup(%d) = (%v, %v), want (%v, true)", id, got, ok, f)
	}

	if _, ok := m.Lookup(id + 1); ok {
		t.Errorf("Lookup(%d) ok = true, want false", id+1)
	}
	if _, ok := m.Lookup(-1); ok {
		t.Errorf("Lookup(-1) ok = true, want false")
	}
}

func TestUniformScale(t *testing.T) {
	s := Uniform(24)
	if s.X != 24 || s.Y != 24 {
		t.Errorf("Uniform(24) = %+v, want X=Y=24", s)
	}
}

func TestVMetricsHeight(t *testing.T) {
	m := VMetrics{Ascent: 18, Descent: 4, LineGap: 2}
	if got, want := m.Height(), 24.0; got != want {
		t.Errorf("Height() = %v, want %v", got, want)
	}
}

func TestMapLen(t *testing.T) {
	m := NewMap()
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
	m.Add(&mockFont{})
	m.Add(&mockFont{})
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}
