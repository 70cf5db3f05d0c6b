package panel

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Place draws fg over bg with its top-left cell at (x, y). Rows of fg that
// fall outside bg are dropped; bg rows shorter than x are padded.
func Place(bg, fg string, x, y int) string {
	if fg == "" {
		return bg
	}
	x = max(x, 0)

	rows := strings.Split(bg, "\n")
	for i, fl := range strings.Split(fg, "\n") {
		row := y + i
		if row < 0 || row >= len(rows) {
			continue
		}
		b := rows[row]
		if w := ansi.StringWidth(b); w < x {
			b += strings.Repeat(" ", x-w)
		}
		left := ansi.Truncate(b, x, "")
		right := ansi.TruncateLeft(b, x+ansi.StringWidth(fl), "")
		rows[row] = left + fl + right
	}
	return strings.Join(rows, "\n")
}

// Origin returns the top-left cell for a box of size w×h centred on
// anchor x and hanging below anchor y, kept inside the viewport.
func Origin(anchorX, anchorY float64, w, h, vw, vh, margin int) (int, int) {
	x := int(anchorX) - w/2
	x = max(margin, min(x, vw-w-margin))
	if x < 0 {
		x = 0
	}

	y := int(anchorY)
	if y+h > vh {
		y = vh - h
	}
	y = max(y, 0)
	return x, y
}
