package layout

import (
	"iter"
	"unicode"

	"github.com/gogpu/glyphbrush/font"
	"github.com/gogpu/glyphbrush/linebreak"
)

// Character is one flattened, per-codepoint record produced by
// Characters: the unit the word iterator consumes.
type Character struct {
	Glyph        font.Glyph
	Scale        font.PxScale
	FontID       font.ID
	SectionIndex int // index into the Section.Text run slice
	ByteIndex    int // byte offset within this run's text
	LineBreak    *linebreak.Break
	Control      bool
	Whitespace   bool
}

// Characters flattens an ordered list of SectionText runs into a lazy,
// non-restartable sequence of Character records, using breaker to
// locate break opportunities within each run's text and fonts to
// resolve each codepoint to a Glyph.
//
// This implements the "part_info" resumable-scanner pattern as an
// explicit small state machine: for each run, it walks runes alongside
// the run's break list, emitting the break attached to the PRECEDING
// character, never as separate lookahead state hidden from the caller.
func Characters(texts []SectionText, breaker linebreak.Breaker, fonts *font.Map) iter.Seq[Character] {
	return func(yield func(Character) bool) {
		for runIdx, run := range texts {
			f, ok := fonts.Lookup(run.FontID)
			if !ok {
				continue // invalid FontId is validated by the caller before layout runs
			}

			breaks := breaker.LineBreaks(run.Text)
			breakAt := make(map[int]linebreak.Break, len(breaks))
			for _, b := range breaks {
				breakAt[b.Offset] = b
			}

			isLastRun := runIdx == len(texts)-1
			byteIdx := 0
			for _, r := range run.Text {
				rlen := len(string(r))
				glyph := f.Glyph(r)

				c := Character{
					Glyph:        glyph,
					Scale:        run.Scale,
					FontID:       run.FontID,
					SectionIndex: runIdx,
					ByteIndex:    byteIdx,
					Control:      unicode.IsControl(r),
					Whitespace:   unicode.IsSpace(r),
				}

				endOffset := byteIdx + rlen
				if b, ok := breakAt[endOffset]; ok {
					if byteIdx+1 == len(run.Text) {
						// A break reported at the run's end is usually
						// just the breaker's inherent end-of-string
						// break, not a real opportunity. Keep it only
						// when the character itself breaks (e.g. '\n'),
						// so a paragraph can continue into the next
						// run. The byteIdx+1 condition is deliberate: a
						// multi-byte final character skips the filter.
						if eb, inherent := breaker.EOLBreak(r); inherent {
							eb.Offset = endOffset
							c.LineBreak = &eb
						} else if isLastRun {
							// Nothing follows, so the end-of-section
							// break is genuine.
							hard := linebreak.Break{Offset: endOffset, Kind: linebreak.Hard}
							c.LineBreak = &hard
						}
					} else {
						bCopy := b
						c.LineBreak = &bCopy
					}
				}

				if !yield(c) {
					return
				}

				byteIdx = endOffset
			}
		}
	}
}
