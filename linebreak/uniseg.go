package linebreak

import "github.com/rivo/uniseg"

// Uniseg is a Breaker backed by github.com/rivo/uniseg, implementing
// UAX #14 line breaking. It supersedes the teacher's hand-rolled
// BreakClass heuristic (text/wrap.go) with the same library referenced
// across the wider example pack for Unicode segmentation.
//
// Uniseg is stateless and safe for concurrent use.
type Uniseg struct{}

// LineBreaks implements Breaker. It walks uniseg's line-break state
// machine, which already reports a mandatory break at the end of the
// string, satisfying the implicit-Hard-break-at-len(text) requirement.
func (Uniseg) LineBreaks(text string) []Break {
	if text == "" {
		return []Break{{Offset: 0, Kind: Hard}}
	}

	var breaks []Break
	state := -1
	remaining := text
	offset := 0

	for len(remaining) > 0 {
		segment, rest, mustBreak, newState := uniseg.FirstLineSegmentInString(remaining, state)
		state = newState
		offset += len(segment)

		kind := Soft
		if mustBreak {
			kind = Hard
		}
		breaks = append(breaks, Break{Offset: offset, Kind: kind})

		remaining = rest
	}

	if len(breaks) == 0 || breaks[len(breaks)-1].Offset != len(text) {
		breaks = append(breaks, Break{Offset: len(text), Kind: Hard})
	} else if breaks[len(breaks)-1].Kind != Hard {
		breaks[len(breaks)-1].Kind = Hard
	}

	return breaks
}

// EOLBreak implements Breaker.
func (u Uniseg) EOLBreak(c rune) (Break, bool) { return probeEOL(u, c) }
