package document

import "github.com/riordanpawley/translate-ai/internal/domain"

// Range is a live selection range. Its rectangle follows scrolling. It
// reports a zero rect once the document re-wraps or while the range is
// scrolled fully out of view.
type Range struct {
	doc    *Model
	start  Pos
	end    Pos
	layout uint64
}

// Detached reports whether the document has been re-laid out since the
// range was taken
func (r *Range) Detached() bool {
	return r.doc == nil || r.layout != r.doc.layout
}

// BoundingRect returns the union of the line boxes the range covers, in
// viewport cells. A range partly in view keeps its off-screen rows.
func (r *Range) BoundingRect() domain.Rect {
	if r.Detached() {
		return domain.Rect{}
	}

	d := r.doc
	top := r.start.Line - d.vp.YOffset
	rows := r.end.Line - r.start.Line + 1
	if top+rows <= 0 || top >= d.height {
		return domain.Rect{}
	}

	if rows == 1 {
		left := d.cellX(r.start.Line, r.start.Col)
		right := d.cellX(r.end.Line, r.end.Col)
		return domain.Rect{
			Left:   float64(left),
			Top:    float64(top),
			Width:  float64(right - left),
			Height: 1,
		}
	}

	right := d.cellX(r.end.Line, r.end.Col)
	for li := r.start.Line; li < r.end.Line; li++ {
		right = max(right, d.cellX(li, len(d.lines[li].text)))
	}
	return domain.Rect{
		Top:    float64(top),
		Width:  float64(right),
		Height: float64(rows),
	}
}
