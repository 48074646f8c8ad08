package layout

import (
	"iter"

	"github.com/gogpu/glyphbrush/font"
	"github.com/gogpu/glyphbrush/linebreak"
)

// WordGlyph is a glyph positioned within its word's local coordinate
// space (caret starts at 0); Lines translates these into screen space.
type WordGlyph struct {
	Glyph        font.ScaledGlyph
	X            float64
	ByteIndex    int
	SectionIndex int
	FontID       font.ID
	Control      bool
}

// Word is a maximal run of characters terminated by a line-break
// opportunity — the atomic unit the line packer wraps on.
type Word struct {
	Glyphs             []WordGlyph
	LayoutWidth        float64
	LayoutWidthNoTrail float64
	MaxVMetrics        font.VMetrics
	HardBreak          bool
}

// Words groups a Character sequence into Words, accumulating kerned
// advance widths and the maximum vertical metrics among the word's
// fonts.
func Words(chars iter.Seq[Character], fonts *font.Map) iter.Seq[Word] {
	return func(yield func(Word) bool) {
		var cur Word
		var caretNoTrail float64
		var prev *font.ScaledGlyph
		haveAny := false

		flush := func(hard bool) bool {
			if !haveAny {
				return true
			}
			cur.LayoutWidthNoTrail = caretNoTrail
			cur.HardBreak = hard
			ok := yield(cur)
			cur = Word{}
			caretNoTrail = 0
			prev = nil
			haveAny = false
			return ok
		}

		var caret float64

		for c := range chars {
			f, ok := fonts.Lookup(c.FontID)
			if !ok {
				continue
			}
			scaled := f.Scaled(c.Glyph, c.Scale)

			vm := f.VMetrics(c.Scale)
			if vm.Height() > cur.MaxVMetrics.Height() {
				cur.MaxVMetrics = vm
			}

			if !c.Control {
				if prev != nil {
					caret += f.Kern(*prev, scaled)
				}
				cur.Glyphs = append(cur.Glyphs, WordGlyph{
					Glyph:        scaled,
					X:            caret,
					ByteIndex:    c.ByteIndex,
					SectionIndex: c.SectionIndex,
					FontID:       c.FontID,
					Control:      false,
				})
				caret += f.HAdvance(scaled)
				prevCopy := scaled
				prev = &prevCopy
			} else {
				cur.Glyphs = append(cur.Glyphs, WordGlyph{
					Glyph:        scaled,
					X:            caret,
					ByteIndex:    c.ByteIndex,
					SectionIndex: c.SectionIndex,
					FontID:       c.FontID,
					Control:      true,
				})
			}

			cur.LayoutWidth = caret
			if !c.Whitespace {
				caretNoTrail = caret
			}
			haveAny = true

			if c.LineBreak != nil {
				hard := c.LineBreak.Kind == linebreak.Hard
				if !flush(hard) {
					return
				}
				caret = 0
			}
		}

		flush(true)
	}
}
