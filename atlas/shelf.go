package atlas

// row is one shelf: a horizontal strip of fixed height filled
// left-to-right. occupants counts live glyphs in the row so release can
// tell when a row becomes fully empty and safe to reuse from X=0.
type row struct {
	y, height, x int
	occupants    int
}

// rowPacker implements the shelf/row packer spec.md §4.H describes: a
// new glyph seeks the first row whose remaining width suffices and
// whose height is >= the glyph height and <= glyph height *
// scaleTolerance; otherwise a new row opens at the current Y-fill.
// It mirrors the teacher's ShelfAllocator (text/msdf/shelf.go), adding
// the height-tolerance ceiling and per-row occupancy tracking the
// frame-scoped LRU eviction in atlas.go needs.
type rowPacker struct {
	width, height  int
	padding        int
	scaleTolerance float64
	rows           []row
}

func newRowPacker(width, height, padding int, scaleTolerance float64) *rowPacker {
	return &rowPacker{width: width, height: height, padding: padding, scaleTolerance: scaleTolerance}
}

// place finds space for a w x h glyph, returning its top-left origin
// and the row index so the caller can release it later. ok is false
// when neither an existing row nor a new one has room.
func (p *rowPacker) place(w, h int) (x, y, rowIdx int, ok bool) {
	paddedW := w + p.padding
	for i := range p.rows {
		r := &p.rows[i]
		if r.x+paddedW > p.width {
			continue
		}
		if h > r.height {
			continue
		}
		if float64(r.height) > float64(h)*p.scaleTolerance {
			continue
		}
		x, y = r.x, r.y
		r.x += paddedW
		r.occupants++
		return x, y, i, true
	}

	newY := 0
	if len(p.rows) > 0 {
		last := p.rows[len(p.rows)-1]
		newY = last.y + last.height + p.padding
	}
	paddedH := h + p.padding
	if newY+paddedH > p.height {
		return 0, 0, 0, false
	}
	p.rows = append(p.rows, row{y: newY, height: h, x: paddedW, occupants: 1})
	return 0, newY, len(p.rows) - 1, true
}

// release decrements a row's occupant count. When it reaches zero the
// row's X-fill resets to 0, making the freed width reusable without a
// full-atlas repack — the "reset packer rows that become fully empty"
// step of spec.md §4.H's ensure() algorithm.
func (p *rowPacker) release(rowIdx int) {
	if rowIdx < 0 || rowIdx >= len(p.rows) {
		return
	}
	r := &p.rows[rowIdx]
	if r.occupants > 0 {
		r.occupants--
	}
	if r.occupants == 0 {
		r.x = 0
	}
}
