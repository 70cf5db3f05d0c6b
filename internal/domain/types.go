// Package domain contains core types shared by the overlay and the relay.
package domain

import "strings"

// Rect is a rectangle in viewport coordinates.
// The unit is whatever the host surface uses (CSS pixels, terminal cells).
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Bottom returns the y coordinate of the lower edge
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// IsZero reports whether the rectangle has no area in either direction.
// A range detached from layout reports a zero rect.
func (r Rect) IsZero() bool {
	return r.Width == 0 && r.Height == 0
}

// Point is a position in viewport coordinates
type Point struct {
	X float64
	Y float64
}

// Viewport is the size of the visible surface
type Viewport struct {
	Width  float64
	Height float64
}

// Selection is a transient snapshot of the user's text selection
type Selection struct {
	Text       string
	AnchorRect Rect
}

// NewSelection trims text and returns nil when nothing is left
func NewSelection(text string, rect Rect) *Selection {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return &Selection{Text: text, AnchorRect: rect}
}

// Phase is the lifecycle phase of an overlay session
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTriggerVisible
	PhasePanelLoading
	PhasePanelResult
	PhasePanelError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTriggerVisible:
		return "trigger"
	case PhasePanelLoading:
		return "loading"
	case PhasePanelResult:
		return "result"
	case PhasePanelError:
		return "error"
	default:
		return "unknown"
	}
}

// PanelOpen reports whether the phase is one of the panel sub-phases
func (p Phase) PanelOpen() bool {
	return p == PhasePanelLoading || p == PhasePanelResult || p == PhasePanelError
}
