// Package linebreak defines the line-breaker capability (component B):
// a lazy sequence of soft/hard break offsets over a text slice, the
// contract the character iterator consumes to decide where words and
// lines may end.
package linebreak

// Kind classifies a break opportunity.
type Kind uint8

const (
	// Soft is an optional break — a wrap point a line may end at.
	Soft Kind = iota
	// Hard is a mandatory break — a paragraph boundary (e.g. "\n").
	Hard
)

// Break is one line-break opportunity. Offset is the byte index
// immediately AFTER the break opportunity, matching the source's
// offset convention so callers can slice text[:offset] for "up to and
// including this break".
type Break struct {
	Offset int
	Kind   Kind
}

// Breaker produces line-break opportunities over text. Implementations
// MUST include an implicit Hard break at len(text), even when the text
// does not end in an explicit break character: the character iterator
// relies on this to terminate the final word/line.
type Breaker interface {
	// LineBreaks returns every break opportunity in text, in order of
	// increasing Offset.
	LineBreaks(text string) []Break

	// EOLBreak reports whether a break opportunity inherently follows
	// c when more text comes after it. The character iterator uses it
	// to filter the implicit end-of-string break at a run boundary: a
	// run ending in '\n' really breaks there, while a run ending in a
	// letter continues its paragraph into the next run.
	EOLBreak(c rune) (Break, bool)
}

// probeEOL implements EOLBreak by running the breaker over c followed
// by a space and looking for an opportunity between the two — the
// break, if any, that would exist after c were the text to continue.
func probeEOL(b Breaker, c rune) (Break, bool) {
	s := string(c)
	for _, br := range b.LineBreaks(s + " ") {
		if br.Offset == len(s) {
			return br, true
		}
	}
	return Break{}, false
}
