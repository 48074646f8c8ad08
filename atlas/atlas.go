// Package atlas packs rasterized glyphs into a single bounded GPU
// texture (component H): a shelf/row packer places glyphs, and a
// frame-scoped LRU evicts slots untouched by the current frame when
// space runs out. It mirrors the teacher's text/msdf.AtlasManager
// (github.com/gogpu/gg), trading MSDF's multi-atlas grid packing for
// the single-atlas, frame-granular eviction spec.md §4.H specifies.
package atlas

import (
	"fmt"
	"math"

	"github.com/gogpu/glyphbrush/font"
)

// Rect is a pixel rectangle within the atlas texture, origin top-left.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r covers no area (the rect Ensure returns for
// an inkless glyph, e.g. a space).
func (r Rect) Empty() bool { return r.W == 0 || r.H == 0 }

// Key identifies one atlas-resident glyph. ScaleBucket quantizes
// PxScale.Y to 1/256 pixel so near-identical scales share a slot.
// Subpixel is reserved at 0: subpixel positioning across frames is a
// non-goal (spec.md §1).
type Key struct {
	FontID      font.ID
	GlyphID     font.GlyphID
	ScaleBucket uint32
	Subpixel    uint8
}

// KeyFor derives the atlas key for a scaled glyph, per spec.md §3's
// invariant that atlas residency is a function of
// (FontId, GlyphId, subpixel-key, PxScale).
func KeyFor(g font.ScaledGlyph) Key {
	return Key{
		FontID:      g.FontID,
		GlyphID:     g.GID,
		ScaleBucket: uint32(math.Round(g.Scale.Y * 256)), //nolint:gosec // scale is bounded well below 2^32/256
	}
}

// Slot records where a glyph lives in the atlas and when it was last
// referenced, the unit of frame-scoped LRU eviction.
type Slot struct {
	Rect          Rect
	LastUsedFrame uint64
}

// Update is one rectangle of the atlas texture that needs a GPU upload:
// a newly rasterized glyph's pixels at the rect they were placed into.
// Pixels is single-channel 8-bit coverage, row-major, stride == Rect.W.
type Update struct {
	Rect   Rect
	Pixels []byte
}

// Config configures a new Atlas.
type Config struct {
	// InitialSize is the starting width/height in pixels (square).
	InitialSize int
	// MaxSize bounds how large Resize will grow the atlas.
	MaxSize int
	// Padding surrounds every placed glyph, avoiding bleed between
	// neighbors when the GPU samples with linear filtering.
	Padding int
	// ScaleTolerance bounds how much taller than a glyph a shelf row
	// may be for the glyph to still be placed on it, trading some
	// wasted row height for fewer rows.
	ScaleTolerance float64
}

// DefaultConfig returns the atlas defaults from spec.md §4.H: 512x512
// initial, 2048x2048 max, 1px padding, 1.5x scale tolerance.
func DefaultConfig() Config {
	return Config{
		InitialSize:    512,
		MaxSize:        2048,
		Padding:        1,
		ScaleTolerance: 1.5,
	}
}

// Atlas is a single bounded GPU texture of rasterized glyphs, owned
// exclusively by its caller (spec.md §5: "the brush never mutates the
// texture object itself; it emits a plan"). Atlas is not safe for
// concurrent use — the engine runs single-threaded per spec.md §5.
type Atlas struct {
	cfg        Config
	size       int
	generation uint64
	packer     *rowPacker
	slots      map[Key]Slot
	rowOf      map[Key]int
	pending    []Update
}

// New creates an Atlas at cfg.InitialSize.
func New(cfg Config) *Atlas {
	a := &Atlas{cfg: cfg}
	a.reset(cfg.InitialSize)
	return a
}

func (a *Atlas) reset(size int) {
	a.size = size
	a.generation++
	a.packer = newRowPacker(size, size, a.cfg.Padding, a.cfg.ScaleTolerance)
	a.slots = make(map[Key]Slot)
	a.rowOf = make(map[Key]int)
	a.pending = nil
}

// Size returns the current atlas width/height in pixels.
func (a *Atlas) Size() int { return a.size }

// Generation increments every time Resize discards atlas residency.
// Callers that cache UV rects derived from Lookup/Ensure must discard
// those caches when Generation changes.
func (a *Atlas) Generation() uint64 { return a.generation }

// SetMaxSize raises the configured maximum size. Resize refuses sizes
// past the maximum, while TooSmallError suggestions are not capped by
// it; SetMaxSize is the explicit caller-override path Brush.ResizeAtlas
// uses when accepting a suggestion larger than the configured cap.
func (a *Atlas) SetMaxSize(n int) {
	if n > a.cfg.MaxSize {
		a.cfg.MaxSize = n
	}
}

// Resize grows the atlas to newSize, discarding every resident slot —
// the caller is expected to have preserved whatever glyph data it needs
// to re-ensure (the draw cache re-derives it from cached SectionGlyphs
// on the next ProcessQueued, per spec.md §7's AtlasTooSmall recovery).
func (a *Atlas) Resize(newSize int) error {
	if newSize <= a.size {
		return fmt.Errorf("atlas: Resize(%d) must grow past current size %d", newSize, a.size)
	}
	if newSize > a.cfg.MaxSize {
		return fmt.Errorf("atlas: Resize(%d) exceeds configured max %d", newSize, a.cfg.MaxSize)
	}
	a.reset(newSize)
	return nil
}

// Lookup reports the resident slot for key without affecting its
// frame-scoped LRU timestamp, used by the vertex fast path to compare a
// glyph's current UV rect against what a vertex already carries.
func (a *Atlas) Lookup(key Key) (Slot, bool) {
	s, ok := a.slots[key]
	return s, ok
}

// Ensure implements spec.md §4.H's ensure() algorithm: if key is
// already resident, stamp it used this frame and return its rect
// without calling rasterize. Otherwise rasterize is called once to
// produce the glyph's coverage bitmap, which is placed into a freshly
// packed rect; on overflow, evict every slot not used in currentFrame
// and retry once; if that still fails, return a *TooSmallError naming
// the next size to try.
//
// rasterize returning ok == false (no ink — a space, or an empty
// outline) resolves to an empty Rect without consuming atlas space.
func (a *Atlas) Ensure(key Key, currentFrame uint64, rasterize func() (font.Bitmap, bool)) (Rect, error) {
	if s, ok := a.slots[key]; ok {
		s.LastUsedFrame = currentFrame
		a.slots[key] = s
		return s.Rect, nil
	}

	bmp, ok := rasterize()
	if !ok || bmp.Width == 0 || bmp.Height == 0 {
		a.slots[key] = Slot{LastUsedFrame: currentFrame}
		return Rect{}, nil
	}

	if rect, ok := a.tryPlace(key, bmp, currentFrame); ok {
		return rect, nil
	}

	a.evictStale(currentFrame)

	if rect, ok := a.tryPlace(key, bmp, currentFrame); ok {
		return rect, nil
	}

	return Rect{}, &TooSmallError{Required: nextPow2(a.size * 2)}
}

func (a *Atlas) tryPlace(key Key, bmp font.Bitmap, currentFrame uint64) (Rect, bool) {
	x, y, rowIdx, ok := a.packer.place(bmp.Width, bmp.Height)
	if !ok {
		return Rect{}, false
	}
	rect := Rect{X: x, Y: y, W: bmp.Width, H: bmp.Height}
	a.slots[key] = Slot{Rect: rect, LastUsedFrame: currentFrame}
	a.rowOf[key] = rowIdx
	a.pending = append(a.pending, Update{Rect: rect, Pixels: bmp.Pixels})
	return rect, true
}

// evictStale drops every slot not referenced in currentFrame and
// releases its row, the frame-granular LRU spec.md §4.H calls for:
// eviction never touches a glyph used in the current frame.
func (a *Atlas) evictStale(currentFrame uint64) {
	for k, s := range a.slots {
		if s.LastUsedFrame >= currentFrame {
			continue
		}
		delete(a.slots, k)
		if rowIdx, ok := a.rowOf[k]; ok {
			a.packer.release(rowIdx)
			delete(a.rowOf, k)
		}
	}
}

// TakeUpdates drains and returns the GPU upload plan accumulated since
// the last call: rectangles newly rasterized into the atlas this frame.
// Part of the scoped-acquisition guarantee in spec.md §5 — the plan is
// only produced by a successful Ensure, never left half-applied.
func (a *Atlas) TakeUpdates() []Update {
	updates := a.pending
	a.pending = nil
	return updates
}
