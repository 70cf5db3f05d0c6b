// Package position computes where the trigger and the result panel sit
// relative to a selection.
//
// The anchor is the horizontal centre of the selection, a fixed gap below
// its bottom edge, clamped so a panel of PanelWidth x PanelHeight stays
// inside the viewport. Nothing is cached: callers re-query the live range
// on every scroll or resize so the anchor follows the text.
package position

import (
	"math"

	"github.com/riordanpawley/translate-ai/internal/domain"
)

// Defaults, in viewport units
const (
	DefaultMargin      = 20
	DefaultPanelWidth  = 320
	DefaultPanelHeight = 0
	DefaultGap         = 20
)

// Range is a live handle to selected content that can be re-measured
type Range interface {
	// BoundingRect returns the current rectangle of the range, or a zero
	// rect when the range is detached from layout
	BoundingRect() domain.Rect
}

// Tracker computes clamped anchor points
type Tracker struct {
	Margin      float64
	PanelWidth  float64
	PanelHeight float64 // 0 disables bottom clamping
	Gap         float64
}

// New returns a tracker with the default geometry
func New() Tracker {
	return Tracker{
		Margin:      DefaultMargin,
		PanelWidth:  DefaultPanelWidth,
		PanelHeight: DefaultPanelHeight,
		Gap:         DefaultGap,
	}
}

// ComputeAnchor returns the anchor point for rect within vp.
// ok is false when rect has zero area; the caller must not show anything.
func (t Tracker) ComputeAnchor(rect domain.Rect, vp domain.Viewport) (domain.Point, bool) {
	if rect.IsZero() {
		return domain.Point{}, false
	}

	x := rect.Left + rect.Width/2
	y := rect.Bottom() + t.Gap

	return domain.Point{
		X: t.clampX(x, vp.Width),
		Y: t.clampY(y, vp.Height),
	}, true
}

// Track re-measures r and computes its anchor. A nil range has no anchor.
func (t Tracker) Track(r Range, vp domain.Viewport) (domain.Point, bool) {
	if r == nil {
		return domain.Point{}, false
	}
	return t.ComputeAnchor(r.BoundingRect(), vp)
}

func (t Tracker) clampX(x, width float64) float64 {
	upper := width - t.PanelWidth
	if upper < t.Margin {
		return t.Margin
	}
	return math.Max(t.Margin, math.Min(upper, x))
}

func (t Tracker) clampY(y, height float64) float64 {
	y = math.Max(t.Margin, y)
	if t.PanelHeight <= 0 {
		return y
	}
	// Only pull the panel up when the viewport can hold it below the margin
	if lower := height - t.PanelHeight; lower >= t.Margin {
		y = math.Min(lower, y)
	}
	return y
}
