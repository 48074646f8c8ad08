// Package glyphbrush provides a GPU-oriented text layout and draw-caching
// engine.
//
// # Overview
//
// Given a FontMap, a set of styled text Sections and a target screen
// geometry, Brush produces — on each frame — a stable stream of textured
// quads ready for instanced rendering. The heavy lifting is:
//
//   - layout: turning styled text runs into positioned glyphs, honoring
//     per-glyph font selection, kerning, word/line breaking, alignment
//     and bounded wrapping (see package layout);
//   - draw caching: memoizing per-section work across frames and
//     classifying the minimal recomputation a changed section needs
//     (see package drawcache and Brush.ProcessQueued);
//   - atlas packing: packing rasterized glyphs into a bounded GPU texture
//     with frame-scoped LRU eviction (see package atlas);
//   - vertex generation: converting positioned glyphs and atlas UVs into
//     a per-frame instance buffer, reusing as much of the previous
//     frame's buffer as possible (see package vertex).
//
// Windowing, GL/Vulkan/Metal bindings and command-buffer submission are
// explicitly out of scope: Brush only emits a slice of vertex.Instance
// plus an atlas update plan. Font file parsing, glyph rasterization and
// Unicode segmentation are provided by the abstract font.Font capability
// and the linebreak.LineBreaker capability, both of which ship concrete
// implementations backed by go-text/typesetting and rivo/uniseg.
//
// # Quick start
//
//	fonts := font.NewMap()
//	id := fonts.Add(myFont)
//
//	brush := glyphbrush.New(fonts)
//	brush.Queue(glyphbrush.Section{
//		Geometry: glyphbrush.SectionGeometry{
//			ScreenPosition: glyphbrush.Pt(100, 100),
//			Bounds:         layout.UnboundedBounds(),
//		},
//		Text: []glyphbrush.SectionText{{Text: "Hello", Scale: font.Uniform(24), FontID: id}},
//	})
//	result, err := brush.ProcessQueued(glyphbrush.Identity4())
package glyphbrush
