package glyphbrush

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Brush operations.
var (
	// ErrInvalidFont is returned by AddFont when the supplied bytes could
	// not be parsed as a font. The core never retries; the caller must
	// supply different bytes.
	ErrInvalidFont = errors.New("glyphbrush: invalid font data")
)

// InvalidFontIDError reports a queued section that references a FontID
// unknown to the brush's FontMap. ProcessQueued does not return it: it
// lists it in ProcessResult.InvalidFonts, drops the offending section
// from the frame, and still processes the rest of the frame.
type InvalidFontIDError struct {
	FontID int
}

func (e *InvalidFontIDError) Error() string {
	return fmt.Sprintf("glyphbrush: invalid font id %d", e.FontID)
}

// AtlasTooSmallError signals that the glyph atlas cannot fit every glyph
// required by the current frame even after LRU eviction. The caller is
// expected to call Brush.ResizeAtlas(Suggested) and retry the frame; the
// draw cache state is preserved across the failed attempt.
type AtlasTooSmallError struct {
	SuggestedWidth  int
	SuggestedHeight int
}

func (e *AtlasTooSmallError) Error() string {
	return fmt.Sprintf("glyphbrush: atlas too small, suggest %dx%d", e.SuggestedWidth, e.SuggestedHeight)
}

// LayoutOverflowError is a diagnostic-only condition: a word's width
// exceeds the section's wrap bound and was placed clipped rather than
// dropped. It is never returned as an error from Brush operations —
// it is reported through DiagnosticsFunc when configured.
type LayoutOverflowError struct {
	SectionIndex int
	WordWidth    float64
	BoundWidth   float64
}

func (e *LayoutOverflowError) Error() string {
	return fmt.Sprintf("glyphbrush: layout overflow in section %d: word width %.2f exceeds bound %.2f",
		e.SectionIndex, e.WordWidth, e.BoundWidth)
}

// RTLTextError is a diagnostic-only condition: a queued run contains
// right-to-left text, which layout places in logical order (bidi
// reordering is out of scope), so the rendered order will look
// mirrored. Reported through DiagnosticsFunc when configured.
type RTLTextError struct {
	Run int
}

func (e *RTLTextError) Error() string {
	return fmt.Sprintf("glyphbrush: run %d contains right-to-left text; bidi reordering is not supported", e.Run)
}
