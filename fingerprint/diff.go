package fingerprint

import "github.com/gogpu/glyphbrush/layout"

// DiffKind classifies how a newly queued section differs from the
// cached entry for the same slot, driving how much of the layout
// pipeline the draw cache re-runs (spec.md §4.G).
type DiffKind uint8

const (
	// DiffNew means there is no prior cache entry: run the full
	// pipeline.
	DiffNew DiffKind = iota
	// DiffUnchanged means the whole-section hash matches: reuse cached
	// glyphs and vertices verbatim.
	DiffUnchanged
	// DiffGeometry means ScreenPosition/Bounds changed while layout,
	// text and alpha stayed the same. These hashes do not see the
	// non-alpha color channels apart from Whole, so a color change made
	// together with a move also classifies as DiffGeometry. When only
	// ScreenPosition moved, Layout.RecalculateGlyphs can translate
	// cached glyphs instead of relaying out.
	DiffGeometry
	// DiffColor means only the non-alpha color channels changed: reuse
	// positioned glyphs, re-emit vertex color fields only.
	DiffColor
	// DiffAlpha means only alpha channels changed, preferred over
	// DiffColor when both apply: same fast path as DiffColor.
	DiffAlpha
	// DiffUnknown means anything else changed (text, font, scale,
	// layout, or geometry together with alpha): run the full pipeline.
	DiffUnknown
)

// String returns the kind's name, used in diagnostics and cache
// statistics.
func (k DiffKind) String() string {
	switch k {
	case DiffNew:
		return "New"
	case DiffUnchanged:
		return "Unchanged"
	case DiffGeometry:
		return "Geometry"
	case DiffColor:
		return "Color"
	case DiffAlpha:
		return "Alpha"
	default:
		return "Unknown"
	}
}

// Diff is the result of comparing a queued section's hashes against the
// hashes recorded the last time it was processed.
type Diff struct {
	Kind        DiffKind
	OldGeometry layout.SectionGeometry // valid only when Kind == DiffGeometry
}

// Classify implements the decision table in spec.md §4.G. oldGeometry
// is the geometry the cache entry was last positioned with, threaded
// through so DiffGeometry carries what RecalculateGlyphs needs.
func Classify(old, next Section, oldGeometry layout.SectionGeometry) Diff {
	if old.Whole == next.Whole {
		return Diff{Kind: DiffUnchanged}
	}

	geometrySame := old.Geometry == next.Geometry
	textSame := old.TextNoColor == next.TextNoColor

	if !geometrySame && textSame && old.AlphaOnly == next.AlphaOnly {
		return Diff{Kind: DiffGeometry, OldGeometry: oldGeometry}
	}

	if geometrySame && textSame {
		if old.AlphaOnly != next.AlphaOnly {
			return Diff{Kind: DiffAlpha}
		}
		return Diff{Kind: DiffColor}
	}

	return Diff{Kind: DiffUnknown}
}
