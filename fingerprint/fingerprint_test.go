package fingerprint

import (
	"math"
	"testing"

	"github.com/gogpu/glyphbrush/font"
	"github.com/gogpu/glyphbrush/layout"
	"github.com/gogpu/glyphbrush/linebreak"
)

func section(x, y float64, color layout.RGBA) layout.Section {
	return layout.Section{
		Geometry: layout.SectionGeometry{
			ScreenPosition: layout.Pt(x, y),
			Bounds:         layout.UnboundedBounds(),
		},
		Layout: layout.SingleLine{LineBreaker: linebreak.Simple{}},
		Text: []layout.SectionText{
			{Text: "hi", Scale: font.Uniform(16), Extra: layout.Extra{Color: color}},
		},
	}
}

func TestOfDeterministic(t *testing.T) {
	s := section(1, 2, layout.Red)
	a, b := Of(s), Of(s)
	if a != b {
		t.Errorf("Of(s) not deterministic: %+v != %+v", a, b)
	}
}

func TestOfNegativeZeroCollapses(t *testing.T) {
	s1 := section(0, 0, layout.Black)
	s2 := section(math.Copysign(0, -1), math.Copysign(0, -1), layout.Black)
	if Of(s1) != Of(s2) {
		t.Errorf("-0.0 and +0.0 produced different fingerprints")
	}
}

func TestOfNaNCanonical(t *testing.T) {
	s1 := section(math.NaN(), 0, layout.Black)
	s2 := section(math.Float64frombits(0x7ff8000000000001), 0, layout.Black)
	if Of(s1) != Of(s2) {
		t.Errorf("two distinct NaN payloads produced different fingerprints")
	}
}

func TestClassifyUnchanged(t *testing.T) {
	s := section(10, 10, layout.Red)
	fp := Of(s)
	diff := Classify(fp, Of(s), s.Geometry)
	if diff.Kind != DiffUnchanged {
		t.Errorf("Kind = %v, want DiffUnchanged", diff.Kind)
	}
}

func TestClassifyGeometry(t *testing.T) {
	old := section(10, 10, layout.Red)
	next := section(20, 10, layout.Red)
	diff := Classify(Of(old), Of(next), old.Geometry)
	if diff.Kind != DiffGeometry {
		t.Fatalf("Kind = %v, want DiffGeometry", diff.Kind)
	}
	if diff.OldGeometry != old.Geometry {
		t.Errorf("OldGeometry = %+v, want %+v", diff.OldGeometry, old.Geometry)
	}
}

func TestClassifyColor(t *testing.T) {
	old := section(10, 10, layout.Red)
	next := section(10, 10, layout.RGBA4(0, 0, 1, 1))
	diff := Classify(Of(old), Of(next), old.Geometry)
	if diff.Kind != DiffColor {
		t.Errorf("Kind = %v, want DiffColor", diff.Kind)
	}
}

func TestClassifyAlphaPreferredOverColor(t *testing.T) {
	old := section(10, 10, layout.RGBA4(1, 0, 0, 1))
	next := section(10, 10, layout.RGBA4(1, 0, 0, 0.5))
	diff := Classify(Of(old), Of(next), old.Geometry)
	if diff.Kind != DiffAlpha {
		t.Errorf("Kind = %v, want DiffAlpha", diff.Kind)
	}
}

func TestClassifyUnknownOnTextChange(t *testing.T) {
	old := section(10, 10, layout.Red)
	next := old
	next.Text = []layout.SectionText{{Text: "bye", Scale: font.Uniform(16)}}
	diff := Classify(Of(old), Of(next), old.Geometry)
	if diff.Kind != DiffUnknown {
		t.Errorf("Kind = %v, want DiffUnknown", diff.Kind)
	}
}

func TestClassifyGeometryOnGeometryAndColorTogether(t *testing.T) {
	old := section(10, 10, layout.Red)
	next := section(20, 10, layout.RGBA4(0, 0, 1, 1))
	diff := Classify(Of(old), Of(next), old.Geometry)
	if diff.Kind != DiffGeometry {
		t.Errorf("Kind = %v, want DiffGeometry", diff.Kind)
	}
}
