package glyphbrush

import (
	"errors"
	"log/slog"

	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/glyphbrush/atlas"
	"github.com/gogpu/glyphbrush/drawcache"
	"github.com/gogpu/glyphbrush/font"
	"github.com/gogpu/glyphbrush/layout"
	"github.com/gogpu/glyphbrush/linebreak"
	"github.com/gogpu/glyphbrush/vertex"
)

// Section re-exports layout.Section for callers that only import the
// root package.
type Section = layout.Section

// SectionText re-exports layout.SectionText.
type SectionText = layout.SectionText

// SectionGeometry re-exports layout.SectionGeometry.
type SectionGeometry = layout.SectionGeometry

// DiagnosticsFunc receives diagnostic-only conditions the brush never
// fails on: *LayoutOverflowError for words wider than their wrap bound
// and *RTLTextError for right-to-left runs. When no sink is configured,
// layout overflows route to the package logger at warn level and runs
// are not checked for right-to-left text.
type DiagnosticsFunc func(err error)

// FontParser turns raw font bytes into a Font, letting callers pick a
// parsing backend per brush.
type FontParser func(data []byte, id font.ID) (font.Font, error)

// BrushOption configures New.
type BrushOption func(*brushConfig)

type brushConfig struct {
	atlas  atlas.Config
	cache  drawcache.Config
	diag   DiagnosticsFunc
	parser FontParser
}

func defaultBrushConfig() brushConfig {
	return brushConfig{
		atlas: atlas.DefaultConfig(),
		cache: drawcache.DefaultConfig(),
		parser: func(data []byte, id font.ID) (font.Font, error) {
			return font.NewSfntFont(data, id)
		},
	}
}

// WithAtlasConfig overrides the glyph atlas configuration (initial and
// maximum size, padding, row scale tolerance).
func WithAtlasConfig(cfg atlas.Config) BrushOption {
	return func(c *brushConfig) { c.atlas = cfg }
}

// WithKeepThreshold sets how many frames a section may go un-queued
// before its cache entry is dropped. The default is 4.
func WithKeepThreshold(frames uint64) BrushOption {
	return func(c *brushConfig) { c.cache.KeepThreshold = frames }
}

// WithDiagnostics installs a sink for diagnostic-only conditions.
func WithDiagnostics(fn DiagnosticsFunc) BrushOption {
	return func(c *brushConfig) { c.diag = fn }
}

// WithGoTextFonts makes AddFont parse font bytes with
// go-text/typesetting instead of the default
// golang.org/x/image/font/opentype backend.
func WithGoTextFonts() BrushOption {
	return func(c *brushConfig) {
		c.parser = func(data []byte, id font.ID) (font.Font, error) {
			return font.NewGoTextFont(data, id)
		}
	}
}

// Brush is the per-frame orchestrator: it owns the glyph atlas and the
// draw cache, queues sections, and turns a frame's queue into a vertex
// array plus an atlas upload plan. All methods must be called from a
// single goroutine; the engine is single-threaded cooperative by
// design.
type Brush struct {
	cfg     brushConfig
	fonts   *font.Map
	atlas   *atlas.Atlas
	cache   *drawcache.Cache
	pending []layout.Section
	last    drawcache.Stats
}

// New creates a Brush resolving FontIDs through fonts. The map may be
// pre-populated, extended later via AddFont, or both.
func New(fonts *font.Map, opts ...BrushOption) *Brush {
	cfg := defaultBrushConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Brush{
		cfg:   cfg,
		fonts: fonts,
		atlas: atlas.New(cfg.atlas),
		cache: drawcache.New(fonts, cfg.cache),
	}
}

// AddFont parses data with the configured font backend and registers
// the result, returning its assigned ID. Returns ErrInvalidFont when
// the bytes cannot be parsed; the brush never retries.
func (b *Brush) AddFont(data []byte) (font.ID, error) {
	id := font.ID(b.fonts.Len())
	f, err := b.cfg.parser(data, id)
	if err != nil {
		Logger().Warn("font rejected", "id", id, "err", err)
		return 0, ErrInvalidFont
	}
	added := b.fonts.Add(f)
	Logger().Info("font added", "id", added)
	return added, nil
}

// Queue records section for the next ProcessQueued call. Sections
// render in queue order; a nil Layout defaults to a left/top wrapping
// layout with the UAX #14 line-breaker.
func (b *Brush) Queue(section Section) {
	if section.Layout == nil {
		section.Layout = layout.Wrap{LineBreaker: linebreak.Uniseg{}}
	}
	if b.cfg.diag != nil {
		for i, run := range section.Text {
			if containsRTL(run.Text) {
				b.cfg.diag(&RTLTextError{Run: i})
			}
		}
	}
	b.pending = append(b.pending, section)
}

// ProcessResult is a successfully processed frame: the vertex array to
// (re)upload as an instance buffer, the atlas rectangles that need a
// texture upload, and the transform to bind as the frame's projection
// uniform. Vertices are in screen pixels; the transform is handed back
// rather than baked in so an unchanged frame stays byte-identical
// regardless of camera movement.
type ProcessResult struct {
	Vertices     []vertex.Instance
	AtlasUpdates []atlas.Update
	Transform    Transform4x4

	// InvalidFonts has one entry for every run, in a section dropped
	// from this frame, that referenced a FontID absent from the brush's
	// map. The rest of the frame still processed.
	InvalidFonts []InvalidFontIDError
}

// ProcessQueued processes every section queued since the last
// successful call and returns the frame's vertices and atlas upload
// plan.
//
// A non-nil error is always an *AtlasTooSmallError: call
// ResizeAtlas(Suggested) and call ProcessQueued again — the queue and
// the draw cache are preserved across the failed attempt. Sections
// referencing unknown FontIDs do not fail the frame; they are dropped
// and reported in ProcessResult.InvalidFonts.
func (b *Brush) ProcessQueued(transform Transform4x4) (ProcessResult, error) {
	b.cache.ClearQueue()
	for _, s := range b.pending {
		b.cache.Queue(s)
	}

	verts, stats, missing, overflow, err := b.cache.Process(b.atlas)
	b.last = stats
	if err != nil {
		var ts *atlas.TooSmallError
		if !errors.As(err, &ts) {
			return ProcessResult{}, err
		}
		Logger().Debug("atlas overflow", "size", b.atlas.Size(), "suggested", ts.Required)
		return ProcessResult{}, &AtlasTooSmallError{
			SuggestedWidth:  ts.Required,
			SuggestedHeight: ts.Required,
		}
	}
	b.cache.FinishFrame()

	result := ProcessResult{
		Vertices:     verts,
		AtlasUpdates: b.atlas.TakeUpdates(),
		Transform:    transform,
	}
	for _, m := range missing {
		result.InvalidFonts = append(result.InvalidFonts, InvalidFontIDError{FontID: int(m.FontID)})
		Logger().Warn("section dropped: unknown font id", "slot", m.Slot, "font_id", m.FontID)
	}
	for _, o := range overflow {
		b.diagnose(&LayoutOverflowError{
			SectionIndex: o.Slot,
			WordWidth:    o.WordWidth,
			BoundWidth:   o.BoundWidth,
		})
	}

	b.pending = b.pending[:0]
	return result, nil
}

// ResizeAtlas grows the glyph atlas to size x size pixels, typically
// the Suggested value from an AtlasTooSmallError. All residency is
// discarded; the next ProcessQueued re-ensures every needed glyph from
// the draw cache's retained bitmaps. An explicit resize may exceed the
// configured maximum — the caller outranks the config here.
func (b *Brush) ResizeAtlas(size int) error {
	b.atlas.SetMaxSize(size)
	if err := b.atlas.Resize(size); err != nil {
		return err
	}
	Logger().Info("atlas resized", "size", size)
	return nil
}

// Stats reports the brush's cache behavior for the most recent frame,
// plus current cache and atlas occupancy.
type Stats struct {
	Frame        uint64
	CacheEntries int
	AtlasSize    int
	Last         drawcache.Stats
}

// Stats returns frame and cache counters for the most recent
// ProcessQueued call.
func (b *Brush) Stats() Stats {
	return Stats{
		Frame:        b.cache.CurrentFrame(),
		CacheEntries: b.cache.Len(),
		AtlasSize:    b.atlas.Size(),
		Last:         b.last,
	}
}

func (b *Brush) diagnose(err error) {
	if b.cfg.diag != nil {
		b.cfg.diag(err)
		return
	}
	Logger().Warn("layout diagnostic", slog.Any("err", err))
}

// containsRTL reports whether text contains any right-to-left run.
// Layout places glyphs in logical order; bidi reordering is out of
// scope, so RTL input renders mirrored and is worth flagging to a
// configured diagnostics sink. The check runs only when a sink is
// installed since it costs a full bidi resolution per run.
func containsRTL(text string) bool {
	if text == "" {
		return false
	}
	var p bidi.Paragraph
	if _, err := p.SetString(text); err != nil {
		return false
	}
	return !p.IsLeftToRight()
}
