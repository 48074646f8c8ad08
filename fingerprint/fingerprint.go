// Package fingerprint derives the stable 64-bit section hashes the
// draw cache uses as lookup keys and as the inputs to change
// classification (component G, spec.md §4.G).
package fingerprint

import (
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/gogpu/glyphbrush/layout"
)

// Hash is a stable 64-bit hash, either a whole-section cache key or one
// of the three change-detection projections below.
type Hash uint64

// Section holds the four hashes the draw cache compares across frames
// to classify the minimal recomputation a changed section needs.
type Section struct {
	// Whole hashes every field of the section; equal Whole hashes mean
	// the section is byte-for-byte unchanged.
	Whole Hash
	// Geometry hashes {ScreenPosition, Bounds, Layout}.
	Geometry Hash
	// TextNoColor hashes {Layout, and each SectionText with color and
	// alpha stripped from Extra}.
	TextNoColor Hash
	// AlphaOnly hashes every run's alpha channel (text color and
	// outline color), nothing else.
	AlphaOnly Hash
}

// Of derives the four stable hashes for s. Float fields are hashed as
// their IEEE-754 bit pattern, normalized so -0.0 == +0.0 and every NaN
// hashes to one canonical value — without this, trivially equal
// sections could miss the cache.
func Of(s layout.Section) Section {
	return Section{
		Whole:       hashWhole(s),
		Geometry:    hashGeometry(s),
		TextNoColor: hashTextNoColor(s),
		AlphaOnly:   hashAlphaOnly(s),
	}
}

func hashWhole(s layout.Section) Hash {
	h := xxhash.New()
	writeGeometry(h, s.Geometry)
	writeLayout(h, s.Layout)
	for _, run := range s.Text {
		writeRun(h, run, true, true)
	}
	return Hash(h.Sum64())
}

func hashGeometry(s layout.Section) Hash {
	h := xxhash.New()
	writeGeometry(h, s.Geometry)
	writeLayout(h, s.Layout)
	return Hash(h.Sum64())
}

func hashTextNoColor(s layout.Section) Hash {
	h := xxhash.New()
	writeLayout(h, s.Layout)
	for _, run := range s.Text {
		writeRun(h, run, false, false)
	}
	return Hash(h.Sum64())
}

func hashAlphaOnly(s layout.Section) Hash {
	h := xxhash.New()
	for _, run := range s.Text {
		writeFloat64(h, run.Extra.Color.A)
		writeFloat64(h, run.Extra.OutlineColor.A)
	}
	return Hash(h.Sum64())
}

func writeGeometry(h *xxhash.Digest, g layout.SectionGeometry) {
	writeFloat64(h, g.ScreenPosition.X)
	writeFloat64(h, g.ScreenPosition.Y)
	writeFloat64(h, g.Bounds.X)
	writeFloat64(h, g.Bounds.Y)
}

// writeLayout hashes the layout variant by its concrete type (Wrap vs
// SingleLine), its line-breaker's dynamic type, and its alignment —
// Layout.Calculate's behavior depends on exactly these, nothing else.
func writeLayout(h *xxhash.Digest, l layout.Layout) {
	hAlign, vAlign := l.Alignment()
	switch v := l.(type) {
	case layout.Wrap:
		writeString(h, "wrap:"+fmt.Sprintf("%T", v.LineBreaker))
	case layout.SingleLine:
		writeString(h, "single:"+fmt.Sprintf("%T", v.LineBreaker))
	default:
		writeString(h, fmt.Sprintf("%T", v))
	}
	_, _ = h.Write([]byte{byte(hAlign), byte(vAlign)})
}

func writeRun(h *xxhash.Digest, run layout.SectionText, includeColor, includeAlpha bool) {
	writeString(h, run.Text)
	writeFloat64(h, run.Scale.X)
	writeFloat64(h, run.Scale.Y)
	_, _ = h.Write(u64Bytes(uint64(run.FontID))) //nolint:gosec // FontID is non-negative by construction
	writeFloat64(h, run.Extra.Z)
	if includeColor {
		writeFloat64(h, run.Extra.Color.R)
		writeFloat64(h, run.Extra.Color.G)
		writeFloat64(h, run.Extra.Color.B)
		writeFloat64(h, run.Extra.OutlineColor.R)
		writeFloat64(h, run.Extra.OutlineColor.G)
		writeFloat64(h, run.Extra.OutlineColor.B)
	}
	if includeAlpha {
		writeFloat64(h, run.Extra.Color.A)
		writeFloat64(h, run.Extra.OutlineColor.A)
	}
}

func writeString(h *xxhash.Digest, s string) {
	_, _ = h.Write([]byte(s))
	_, _ = h.Write([]byte{0}) // separator so "ab","c" != "a","bc"
}

// canonicalNaNBits is the bit pattern every NaN hashes to, collapsing
// the many possible NaN payloads to one value.
const canonicalNaNBits = 0x7ff8000000000000

func writeFloat64(h *xxhash.Digest, f float64) {
	if math.IsNaN(f) {
		_, _ = h.Write(u64Bytes(canonicalNaNBits))
		return
	}
	if f == 0 {
		f = 0 // collapse -0.0 to +0.0
	}
	_, _ = h.Write(u64Bytes(math.Float64bits(f)))
}

func u64Bytes(v uint64) []byte {
	return []byte{
		byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
		byte(v >> 32), byte(v >> 40), byte(v >> 48), byte(v >> 56),
	}
}
