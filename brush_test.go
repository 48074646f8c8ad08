package glyphbrush

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/gogpu/glyphbrush/atlas"
	"github.com/gogpu/glyphbrush/font"
	"github.com/gogpu/glyphbrush/layout"
	"github.com/gogpu/glyphbrush/linebreak"
)

// fakeFont is a deterministic Font with per-rune advances, explicit
// kern pairs, and square bitmaps whose size tracks the configured ink
// dimension, enough to drive the full brush end to end.
type fakeFont struct {
	advances map[rune]float64
	kerns    map[[2]rune]float64
	inkSize  int
}

func newFakeFont(inkSize int) *fakeFont {
	return &fakeFont{
		advances: map[rune]float64{},
		kerns:    map[[2]rune]float64{},
		inkSize:  inkSize,
	}
}

func (f *fakeFont) advance(r rune) float64 {
	if a, ok := f.advances[r]; ok {
		return a
	}
	return 10
}

func (f *fakeFont) Glyph(r rune) font.Glyph {
	return font.Glyph{GID: font.GlyphID(r), Rune: r}
}

func (f *fakeFont) Scaled(g font.Glyph, scale font.PxScale) font.ScaledGlyph {
	return font.ScaledGlyph{Glyph: g, Scale: scale}
}

func (f *fakeFont) HAdvance(g font.ScaledGlyph) float64 { return f.advance(g.Rune) }

func (f *fakeFont) Kern(prev, next font.ScaledGlyph) float64 {
	return f.kerns[[2]rune{prev.Rune, next.Rune}]
}

func (f *fakeFont) VMetrics(scale font.PxScale) font.VMetrics {
	return font.VMetrics{Ascent: 12, Descent: 4, LineGap: 2}
}

func (f *fakeFont) Rasterize(g font.ScaledGlyph) (font.Bitmap, bool) {
	if g.Rune == ' ' || g.Rune == '\n' {
		return font.Bitmap{}, false
	}
	px := make([]byte, f.inkSize*f.inkSize)
	for i := range px {
		px[i] = 0xff
	}
	return font.Bitmap{
		Width:    f.inkSize,
		Height:   f.inkSize,
		BearingX: 1,
		BearingY: -9,
		Pixels:   px,
	}, true
}

func newTestBrush(opts ...BrushOption) (*Brush, *fakeFont, font.ID) {
	fonts := font.NewMap()
	f := newFakeFont(8)
	id := fonts.Add(f)
	return New(fonts, opts...), f, id
}

func singleLine(id font.ID, text string, x, y float64, color RGBA) Section {
	return Section{
		Geometry: SectionGeometry{ScreenPosition: Pt(x, y), Bounds: layout.UnboundedBounds()},
		Layout:   layout.SingleLine{LineBreaker: linebreak.Simple{}},
		Text: []SectionText{
			{Text: text, Scale: font.Uniform(16), FontID: id, Extra: layout.Extra{Color: color}},
		},
	}
}

func TestProcessQueuedEmptySection(t *testing.T) {
	b, _, id := newTestBrush()
	b.Queue(singleLine(id, "", 0, 0, Red))

	res, err := b.ProcessQueued(Identity4())
	if err != nil {
		t.Fatalf("ProcessQueued() error = %v", err)
	}
	if len(res.Vertices) != 0 || len(res.AtlasUpdates) != 0 {
		t.Errorf("empty section produced %d vertices and %d uploads, want 0/0",
			len(res.Vertices), len(res.AtlasUpdates))
	}
}

func TestProcessQueuedSingleChar(t *testing.T) {
	b, _, id := newTestBrush()
	b.Queue(singleLine(id, "A", 100, 100, Red))

	res, err := b.ProcessQueued(Identity4())
	if err != nil {
		t.Fatalf("ProcessQueued() error = %v", err)
	}
	if len(res.Vertices) != 1 {
		t.Fatalf("got %d vertices, want 1", len(res.Vertices))
	}

	// Baseline is screen.y + ascent; the quad's top-left is the pen
	// position plus the glyph's bearings.
	v := res.Vertices[0]
	if v.LeftTop[0] != 101 || v.LeftTop[1] != 103 {
		t.Errorf("LeftTop = (%v, %v), want (101, 103)", v.LeftTop[0], v.LeftTop[1])
	}
	if v.TexLeftTop == v.TexRightBottom {
		t.Error("UV rect is empty")
	}
}

func TestProcessQueuedKerning(t *testing.T) {
	b, f, id := newTestBrush()
	f.advances['W'] = 14
	f.kerns[[2]rune{'W', 'a'}] = -3

	b.Queue(Section{
		Geometry: SectionGeometry{ScreenPosition: Pt(0, 0), Bounds: layout.UnboundedBounds()},
		Layout:   layout.SingleLine{LineBreaker: linebreak.Simple{}},
		Text: []SectionText{
			{Text: "Wa", Scale: font.Uniform(20), FontID: id, Extra: layout.Extra{Color: Red}},
			{Text: "Ve", Scale: font.Uniform(20), FontID: id, Extra: layout.Extra{Color: Red}},
		},
	})

	res, err := b.ProcessQueued(Identity4())
	if err != nil {
		t.Fatalf("ProcessQueued() error = %v", err)
	}
	if len(res.Vertices) != 4 {
		t.Fatalf("got %d vertices, want 4", len(res.Vertices))
	}

	// x-advance from 'W' to 'a' is h_advance('W') + kern('W','a').
	gotAdvance := float64(res.Vertices[1].LeftTop[0] - res.Vertices[0].LeftTop[0])
	if math.Abs(gotAdvance-(14-3)) > 1e-4 {
		t.Errorf("W->a advance = %v, want 11", gotAdvance)
	}
}

func TestProcessQueuedWrap(t *testing.T) {
	b, f, id := newTestBrush()
	// "foo " is 70 wide (f, o, o at 20 + space at 10); "bar baz" words
	// are 10 per glyph. At bound 70 the first line holds only "foo",
	// the second "bar baz".
	f.advances['f'] = 20
	f.advances['o'] = 20

	b.Queue(Section{
		Geometry: SectionGeometry{ScreenPosition: Pt(0, 0), Bounds: Pt(70, math.Inf(1))},
		Layout:   layout.Wrap{LineBreaker: linebreak.Simple{}},
		Text: []SectionText{
			{Text: "foo bar baz", Scale: font.Uniform(16), FontID: id, Extra: layout.Extra{Color: Red}},
		},
	})

	res, err := b.ProcessQueued(Identity4())
	if err != nil {
		t.Fatalf("ProcessQueued() error = %v", err)
	}
	// 9 inked glyphs; the two spaces emit nothing.
	if len(res.Vertices) != 9 {
		t.Fatalf("got %d vertices, want 9", len(res.Vertices))
	}

	// "bar" starts back at x=0 on the second line.
	bar := res.Vertices[3]
	if bar.LeftTop[0] != 1 {
		t.Errorf("second line x = %v, want 1 (bearing only)", bar.LeftTop[0])
	}

	// The vertical advance between baselines is ascent + descent +
	// line_gap = 12 + 4 + 2 = 18 (Descent is positive here).
	foo := res.Vertices[0]
	if got := bar.LeftTop[1] - foo.LeftTop[1]; got != 18 {
		t.Errorf("baseline advance = %v, want 18", got)
	}
}

func TestProcessQueuedColorOnlyDiff(t *testing.T) {
	b, _, id := newTestBrush()

	b.Queue(singleLine(id, "hi", 10, 10, Red))
	first, err := b.ProcessQueued(Identity4())
	if err != nil {
		t.Fatalf("frame 1 error = %v", err)
	}
	if len(first.AtlasUpdates) == 0 {
		t.Fatal("frame 1 produced no atlas uploads")
	}

	b.Queue(singleLine(id, "hi", 10, 10, RGBA4(0, 0, 1, 1)))
	second, err := b.ProcessQueued(Identity4())
	if err != nil {
		t.Fatalf("frame 2 error = %v", err)
	}

	if len(second.AtlasUpdates) != 0 {
		t.Errorf("frame 2 produced %d uploads, want 0", len(second.AtlasUpdates))
	}
	if len(second.Vertices) != len(first.Vertices) {
		t.Fatalf("vertex count changed: %d -> %d", len(first.Vertices), len(second.Vertices))
	}
	for i := range first.Vertices {
		if second.Vertices[i].LeftTop != first.Vertices[i].LeftTop ||
			second.Vertices[i].TexLeftTop != first.Vertices[i].TexLeftTop {
			t.Errorf("vertex %d position/UVs changed on a color-only diff", i)
		}
		if second.Vertices[i].Color == first.Vertices[i].Color {
			t.Errorf("vertex %d color unchanged", i)
		}
	}
}

func TestProcessQueuedIdenticalFramesByteIdentical(t *testing.T) {
	b, _, id := newTestBrush()

	b.Queue(singleLine(id, "cache me", 10, 10, Red))
	first, err := b.ProcessQueued(Identity4())
	if err != nil {
		t.Fatalf("frame 1 error = %v", err)
	}

	b.Queue(singleLine(id, "cache me", 10, 10, Red))
	second, err := b.ProcessQueued(Identity4())
	if err != nil {
		t.Fatalf("frame 2 error = %v", err)
	}

	if !reflect.DeepEqual(first.Vertices, second.Vertices) {
		t.Error("identical frames produced different vertex arrays")
	}
	if len(second.AtlasUpdates) != 0 {
		t.Errorf("frame 2 produced %d uploads, want 0", len(second.AtlasUpdates))
	}
}

func TestProcessQueuedAtlasTooSmallAndResize(t *testing.T) {
	fonts := font.NewMap()
	f := newFakeFont(40)
	id := fonts.Add(f)
	b := New(fonts, WithAtlasConfig(atlas.Config{
		InitialSize:    64,
		MaxSize:        64,
		Padding:        1,
		ScaleTolerance: 1.5,
	}))

	// Two distinct 40x40 glyphs cannot share a 64x64 atlas with 1px
	// padding.
	b.Queue(singleLine(id, "ab", 0, 0, Red))

	_, err := b.ProcessQueued(Identity4())
	var tooSmall *AtlasTooSmallError
	if !errors.As(err, &tooSmall) {
		t.Fatalf("ProcessQueued() error = %v, want *AtlasTooSmallError", err)
	}
	if tooSmall.SuggestedWidth != 128 {
		t.Errorf("SuggestedWidth = %d, want 128", tooSmall.SuggestedWidth)
	}

	if err := b.ResizeAtlas(tooSmall.SuggestedWidth); err != nil {
		t.Fatalf("ResizeAtlas() error = %v", err)
	}

	// The queue survived the failed frame; a plain retry succeeds.
	res, err := b.ProcessQueued(Identity4())
	if err != nil {
		t.Fatalf("retry error = %v", err)
	}
	if len(res.Vertices) != 2 {
		t.Errorf("got %d vertices after recovery, want 2", len(res.Vertices))
	}
}

func TestProcessQueuedInvalidFontIDDropsSection(t *testing.T) {
	b, _, id := newTestBrush()
	b.Queue(singleLine(id, "good", 0, 0, Red))
	b.Queue(singleLine(id+42, "bad", 0, 0, Red))

	res, err := b.ProcessQueued(Identity4())
	if err != nil {
		t.Fatalf("ProcessQueued() error = %v", err)
	}
	if len(res.InvalidFonts) != 1 || res.InvalidFonts[0].FontID != int(id+42) {
		t.Fatalf("InvalidFonts = %+v, want one entry for id %d", res.InvalidFonts, id+42)
	}
	if len(res.Vertices) != 4 {
		t.Errorf("got %d vertices, want 4 from the surviving section", len(res.Vertices))
	}
}

func TestAddFontRejectsGarbage(t *testing.T) {
	b, _, _ := newTestBrush()
	if _, err := b.AddFont([]byte("not a font")); !errors.Is(err, ErrInvalidFont) {
		t.Errorf("AddFont() error = %v, want ErrInvalidFont", err)
	}
}

func TestQueueDefaultsLayout(t *testing.T) {
	b, _, id := newTestBrush()
	b.Queue(Section{
		Geometry: SectionGeometry{ScreenPosition: Pt(0, 0), Bounds: layout.UnboundedBounds()},
		Text:     []SectionText{{Text: "x", Scale: font.Uniform(16), FontID: id}},
	})

	res, err := b.ProcessQueued(Identity4())
	if err != nil {
		t.Fatalf("ProcessQueued() error = %v", err)
	}
	if len(res.Vertices) != 1 {
		t.Errorf("got %d vertices, want 1", len(res.Vertices))
	}
}

func TestDiagnosticsReceivesOverflow(t *testing.T) {
	var got []error
	b, f, id := newTestBrush(WithDiagnostics(func(err error) { got = append(got, err) }))
	f.advances['w'] = 30

	b.Queue(Section{
		Geometry: SectionGeometry{ScreenPosition: Pt(0, 0), Bounds: Pt(20, math.Inf(1))},
		Layout:   layout.Wrap{LineBreaker: linebreak.Simple{}},
		Text:     []SectionText{{Text: "www", Scale: font.Uniform(16), FontID: id, Extra: layout.Extra{Color: Red}}},
	})

	if _, err := b.ProcessQueued(Identity4()); err != nil {
		t.Fatalf("ProcessQueued() error = %v", err)
	}

	var overflow *LayoutOverflowError
	found := false
	for _, err := range got {
		if errors.As(err, &overflow) {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want a *LayoutOverflowError", got)
	}
}

func TestDiagnosticsReceivesRTL(t *testing.T) {
	var got []error
	b, _, id := newTestBrush(WithDiagnostics(func(err error) { got = append(got, err) }))

	b.Queue(singleLine(id, "שלום", 0, 0, Red))

	var rtl *RTLTextError
	found := false
	for _, err := range got {
		if errors.As(err, &rtl) {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want an *RTLTextError", got)
	}
}

func TestStatsReportClassification(t *testing.T) {
	b, _, id := newTestBrush()

	b.Queue(singleLine(id, "hi", 0, 0, Red))
	if _, err := b.ProcessQueued(Identity4()); err != nil {
		t.Fatalf("frame 1 error = %v", err)
	}
	if s := b.Stats(); s.Last.New != 1 || s.Frame != 1 || s.CacheEntries != 1 {
		t.Errorf("Stats() after frame 1 = %+v", s)
	}

	b.Queue(singleLine(id, "hi", 0, 0, Red))
	if _, err := b.ProcessQueued(Identity4()); err != nil {
		t.Fatalf("frame 2 error = %v", err)
	}
	if s := b.Stats(); s.Last.Unchanged != 1 {
		t.Errorf("Stats() after frame 2 = %+v, want Unchanged=1", s)
	}
}
