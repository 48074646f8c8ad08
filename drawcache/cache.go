// Package drawcache implements the per-section memoization cache
// (component I): it classifies how a queued section differs from what
// was queued for the same slot last frame and does the least work that
// classification allows, from a pure vertex-color overwrite up to a
// full layout relayout. It mirrors the teacher's text.Cache
// (github.com/gogpu/gg), trading its generic tick-based soft-limit
// eviction for the frame-stamped keep-threshold eviction spec.md §4.I
// specifies, since cache entries here must survive exactly as long as
// their section keeps being queued, not as long as they stay "popular".
package drawcache

import (
	"github.com/gogpu/glyphbrush/atlas"
	"github.com/gogpu/glyphbrush/fingerprint"
	"github.com/gogpu/glyphbrush/font"
	"github.com/gogpu/glyphbrush/layout"
	"github.com/gogpu/glyphbrush/vertex"
)

// Config configures a new Cache.
type Config struct {
	// KeepThreshold is how many frames a slot may go un-queued before
	// its cache entry is dropped.
	KeepThreshold uint64
}

// DefaultConfig returns the cache defaults from spec.md §4.I: a
// 4-frame keep threshold.
func DefaultConfig() Config {
	return Config{KeepThreshold: 4}
}

// CacheEntry is everything the cache remembers about one queued slot.
// Glyphs, Bitmaps, Vertices and Emit are parallel slices sharing one
// index space; Bitmaps is computed once, from the full layout pass,
// and survives geometry-only relayouts untouched since a translate
// never changes which glyphs exist.
type CacheEntry struct {
	Fingerprint fingerprint.Section
	Geometry    layout.SectionGeometry
	BoundsRect  layout.Rect

	Glyphs   []layout.SectionGlyph
	Bitmaps  []font.Bitmap
	Vertices []vertex.Instance
	Emit     []bool // Emit[i] is false for inkless glyphs and scissored-out glyphs

	// LastFrameUsed is the frame this slot was last queued in, the
	// input to keep-threshold eviction.
	LastFrameUsed uint64
	// LastFrameRendered is the last frame this slot's vertices were
	// handed to the caller; stamped by FinishFrame.
	LastFrameRendered uint64
}

type queuedSlot struct {
	slot    int
	section layout.Section
}

// MissingFont reports a queued section that referenced a FontID absent
// from the cache's font.Map. The section is dropped from the frame;
// queuing continues for the rest of the frame.
type MissingFont struct {
	Slot   int
	FontID font.ID
}

// Overflow reports a diagnostic-only layout overflow: a word alone on
// its line still exceeded the section's wrap bound.
type Overflow struct {
	Slot       int
	WordWidth  float64
	BoundWidth float64
}

// Stats counts how queued slots were classified in the most recent
// Process call, the source of Brush.Stats().
type Stats struct {
	New         int
	Unchanged   int
	Geometry    int
	Color       int
	Alpha       int
	Unknown     int
	Evicted     int
	AtlasMisses int
}

// Cache is the per-section memoization cache. It is not safe for
// concurrent use.
type Cache struct {
	fonts         *font.Map
	cfg           Config
	currentFrame  uint64
	finishedFrame uint64
	atlasGen      uint64
	entries       map[int]*CacheEntry
	queue         []queuedSlot
	nextSlot      int
}

// New creates a Cache resolving FontIDs through fonts.
func New(fonts *font.Map, cfg Config) *Cache {
	return &Cache{
		fonts:   fonts,
		cfg:     cfg,
		entries: make(map[int]*CacheEntry),
	}
}

// ClearQueue discards whatever was queued this frame and advances the
// frame counter. The caller must queue sections in the same order each
// frame: a slot is identified by its position in the queue sequence
// since the last ClearQueue, not by content.
func (c *Cache) ClearQueue() {
	c.currentFrame++
	c.queue = c.queue[:0]
	c.nextSlot = 0
}

// Queue records section for the next Process call, returning the slot
// it was assigned.
func (c *Cache) Queue(section layout.Section) int {
	slot := c.nextSlot
	c.nextSlot++
	c.queue = append(c.queue, queuedSlot{slot: slot, section: section})
	return slot
}

// CurrentFrame returns the frame counter ClearQueue advances.
func (c *Cache) CurrentFrame() uint64 { return c.currentFrame }

// Len returns the number of live cache entries.
func (c *Cache) Len() int { return len(c.entries) }

// Process runs every queued section through the draw cache's change
// classification and emits the combined vertex buffer for the frame,
// per spec.md §4.I. atl is consulted, and mutated via Ensure, for
// every glyph that needs atlas residency.
//
// A non-nil error is always an *atlas.TooSmallError: the atlas could
// not fit the frame even after evicting everything not used this
// frame. The queue is left intact so the caller can resize the atlas
// and call Process again; entries updated before the failure simply
// rebuild on the retry, since a resize bumps the atlas generation.
func (c *Cache) Process(atl *atlas.Atlas) ([]vertex.Instance, Stats, []MissingFont, []Overflow, error) {
	var stats Stats
	var missing []MissingFont
	var overflow []Overflow
	var out []vertex.Instance

	stats.Evicted = c.evictStale()

	atlasChanged := atl.Generation() != c.atlasGen
	c.atlasGen = atl.Generation()

	for _, q := range c.queue {
		if bad := c.invalidFonts(q.section); len(bad) > 0 {
			for _, id := range bad {
				missing = append(missing, MissingFont{Slot: q.slot, FontID: id})
			}
			continue
		}

		entry, existed := c.entries[q.slot]
		fp := fingerprint.Of(q.section)

		var diff fingerprint.Diff
		if !existed {
			diff = fingerprint.Diff{Kind: fingerprint.DiffNew}
		} else {
			diff = fingerprint.Classify(entry.Fingerprint, fp, entry.Geometry)
		}
		kind := diff.Kind
		if kind == fingerprint.DiffGeometry && diff.OldGeometry.Bounds != q.section.Geometry.Bounds {
			// RecalculateGlyphs only translates, which holds for a
			// ScreenPosition move alone; new bounds can rewrap the text.
			kind = fingerprint.DiffUnknown
		}
		switch kind {
		case fingerprint.DiffNew, fingerprint.DiffUnknown:
			glyphs, secOverflow := q.section.Layout.Calculate(c.fonts, q.section)
			for _, o := range secOverflow {
				overflow = append(overflow, Overflow{Slot: q.slot, WordWidth: o.WordWidth, BoundWidth: o.BoundWidth})
			}
			entry = &CacheEntry{Glyphs: glyphs}
			entry.BoundsRect = q.section.BoundsRect()
			misses, err := c.rebuildVertices(atl, entry, q.section)
			if err != nil {
				return nil, stats, missing, overflow, err
			}
			stats.AtlasMisses += misses
			c.entries[q.slot] = entry

		case fingerprint.DiffGeometry:
			entry.Glyphs = q.section.Layout.RecalculateGlyphs(entry.Glyphs, diff.OldGeometry, q.section.Geometry)
			entry.BoundsRect = q.section.BoundsRect()
			misses, err := c.rebuildVertices(atl, entry, q.section)
			if err != nil {
				return nil, stats, missing, overflow, err
			}
			stats.AtlasMisses += misses

		case fingerprint.DiffColor, fingerprint.DiffAlpha:
			moved := atlasChanged
			if !moved {
				var err error
				moved, err = c.touchAtlas(atl, entry)
				if err != nil {
					return nil, stats, missing, overflow, err
				}
			}
			if moved {
				// A glyph this entry references was re-placed at a new
				// rect (or the whole atlas was rebuilt); the cached UVs
				// are stale, so the color fast path is off the table
				// for this frame.
				entry.BoundsRect = q.section.BoundsRect()
				misses, err := c.rebuildVertices(atl, entry, q.section)
				if err != nil {
					return nil, stats, missing, overflow, err
				}
				stats.AtlasMisses += misses
			} else {
				c.recolor(entry, q.section)
			}

		default: // DiffUnchanged
			moved := atlasChanged
			if !moved {
				var err error
				moved, err = c.touchAtlas(atl, entry)
				if err != nil {
					return nil, stats, missing, overflow, err
				}
			}
			if moved {
				entry.BoundsRect = q.section.BoundsRect()
				misses, err := c.rebuildVertices(atl, entry, q.section)
				if err != nil {
					return nil, stats, missing, overflow, err
				}
				stats.AtlasMisses += misses
			}
		}

		bumpStat(&stats, diff.Kind)
		c.commit(entry, q, fp, &out)
	}

	return out, stats, missing, overflow, nil
}

// commit records the queued section's final state on its entry and
// appends the entry's emitted vertices to the frame buffer.
func (c *Cache) commit(entry *CacheEntry, q queuedSlot, fp fingerprint.Section, out *[]vertex.Instance) {
	entry.Fingerprint = fp
	entry.Geometry = q.section.Geometry
	entry.LastFrameUsed = c.currentFrame

	for i, emit := range entry.Emit {
		if emit {
			*out = append(*out, entry.Vertices[i])
		}
	}
}

func bumpStat(stats *Stats, kind fingerprint.DiffKind) {
	switch kind {
	case fingerprint.DiffNew:
		stats.New++
	case fingerprint.DiffUnchanged:
		stats.Unchanged++
	case fingerprint.DiffGeometry:
		stats.Geometry++
	case fingerprint.DiffColor:
		stats.Color++
	case fingerprint.DiffAlpha:
		stats.Alpha++
	default:
		stats.Unknown++
	}
}

// FinishFrame stamps LastFrameRendered on every entry queued this
// frame, the end-of-frame bookkeeping spec.md §4.I step 4 names.
// Calling it twice without an intervening ClearQueue is caller misuse
// and panics.
func (c *Cache) FinishFrame() {
	if c.finishedFrame == c.currentFrame && c.currentFrame > 0 {
		panic("drawcache: FinishFrame called twice in one frame")
	}
	c.finishedFrame = c.currentFrame
	for _, q := range c.queue {
		if e, ok := c.entries[q.slot]; ok {
			e.LastFrameRendered = c.currentFrame
		}
	}
}

// invalidFonts returns every FontID referenced by section that fails
// to resolve through the cache's font.Map.
func (c *Cache) invalidFonts(section layout.Section) []font.ID {
	var bad []font.ID
	for _, run := range section.Text {
		if _, ok := c.fonts.Lookup(run.FontID); !ok {
			bad = append(bad, run.FontID)
		}
	}
	return bad
}

// recolor rewrites entry.Vertices in place from section's current
// per-run Extra, the fast path spec.md §4.J reserves for Color/Alpha
// diffs: no atlas lookup, no box recomputation.
func (c *Cache) recolor(entry *CacheEntry, section layout.Section) {
	for i, g := range entry.Glyphs {
		if !entry.Emit[i] {
			continue
		}
		if g.SectionIndex >= len(section.Text) {
			continue
		}
		vertex.UpdateColor(&entry.Vertices[i], section.Text[g.SectionIndex].Extra)
	}
}

// touchAtlas re-stamps every glyph the entry actually renders as used
// this frame, without calling into the font: if the shared atlas
// evicted one of these glyphs under pressure from other sections, the
// cached Bitmap is replayed instead of re-rasterizing. moved reports
// whether any glyph had to be re-placed at all — its new rect may
// differ from the one the entry's vertices were generated against, so
// those vertices must be regenerated before emission.
func (c *Cache) touchAtlas(atl *atlas.Atlas, entry *CacheEntry) (moved bool, err error) {
	for i, g := range entry.Glyphs {
		if !entry.Emit[i] {
			continue
		}
		bmp := entry.Bitmaps[i]
		key := atlas.KeyFor(g.Glyph)
		replayed := false
		_, err := atl.Ensure(key, c.currentFrame, func() (font.Bitmap, bool) {
			replayed = true
			return bmp, true
		})
		if err != nil {
			return moved, err
		}
		if replayed {
			moved = true
		}
	}
	return moved, nil
}

// rebuildVertices regenerates entry.Vertices/Emit from entry.Glyphs,
// computing entry.Bitmaps the first time (a brand-new or just
// relaid-out glyph list) and reusing it on every subsequent geometry
// translation or atlas-generation change. It returns how many glyphs
// required a fresh atlas placement this call; a non-nil error is an
// *atlas.TooSmallError and aborts the frame.
func (c *Cache) rebuildVertices(atl *atlas.Atlas, entry *CacheEntry, section layout.Section) (int, error) {
	n := len(entry.Glyphs)

	if len(entry.Bitmaps) != n {
		entry.Bitmaps = make([]font.Bitmap, n)
		for i, g := range entry.Glyphs {
			f, ok := c.fonts.Lookup(g.Glyph.FontID)
			if !ok {
				continue
			}
			if bmp, ok := f.Rasterize(g.Glyph); ok {
				entry.Bitmaps[i] = bmp
			}
		}
	}

	entry.Vertices = make([]vertex.Instance, n)
	entry.Emit = make([]bool, n)
	misses := 0

	for i, g := range entry.Glyphs {
		bmp := entry.Bitmaps[i]
		if bmp.Width == 0 || bmp.Height == 0 {
			continue
		}

		key := atlas.KeyFor(g.Glyph)
		rasterized := false
		rect, err := atl.Ensure(key, c.currentFrame, func() (font.Bitmap, bool) {
			rasterized = true
			return bmp, true
		})
		if err != nil {
			return misses, err
		}
		if rasterized {
			misses++
		}
		if rect.Empty() {
			continue
		}

		var extra layout.Extra
		if g.SectionIndex < len(section.Text) {
			extra = section.Text[g.SectionIndex].Extra
		}

		inst, ok := vertex.Generate(g.Position, bmp.BearingX, bmp.BearingY, bmp.Width, bmp.Height, rect, atl.Size(), extra, entry.BoundsRect)
		if ok {
			entry.Vertices[i] = inst
			entry.Emit[i] = true
		}
	}

	return misses, nil
}

// evictStale drops every cache entry not queued within KeepThreshold
// frames, per spec.md §4.I, and reports how many were dropped.
func (c *Cache) evictStale() int {
	evicted := 0
	for slot, e := range c.entries {
		if c.currentFrame-e.LastFrameUsed > c.cfg.KeepThreshold {
			delete(c.entries, slot)
			evicted++
		}
	}
	return evicted
}
