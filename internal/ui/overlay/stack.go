package overlay

import tea "github.com/charmbracelet/bubbletea"

// Stack holds the open modals. Only the top one receives input.
type Stack struct {
	overlays []Overlay
}

// NewStack creates an empty stack
func NewStack() *Stack {
	return &Stack{}
}

// Push opens o on top and returns its Init command. An overlay with the
// same title already open is closed first, so repeated async opens (a key
// load finishing twice) never stack duplicates. A nil overlay is ignored.
func (s *Stack) Push(o Overlay) tea.Cmd {
	if o == nil {
		return nil
	}
	s.remove(o.Title())
	s.overlays = append(s.overlays, o)
	return o.Init()
}

// Pop closes and returns the top overlay, or nil
func (s *Stack) Pop() Overlay {
	top := s.Current()
	if top != nil {
		s.overlays = s.overlays[:len(s.overlays)-1]
	}
	return top
}

// Current returns the top overlay, or nil
func (s *Stack) Current() Overlay {
	if len(s.overlays) == 0 {
		return nil
	}
	return s.overlays[len(s.overlays)-1]
}

// Len returns the number of open overlays
func (s *Stack) Len() int {
	return len(s.overlays)
}

// IsEmpty reports whether nothing is open
func (s *Stack) IsEmpty() bool {
	return len(s.overlays) == 0
}

// Clear closes everything
func (s *Stack) Clear() {
	s.overlays = nil
}

// Update routes msg to the top overlay. CloseOverlayMsg pops it instead.
func (s *Stack) Update(msg tea.Msg) tea.Cmd {
	top := s.Current()
	if top == nil {
		return nil
	}
	if _, ok := msg.(CloseOverlayMsg); ok {
		s.Pop()
		return nil
	}

	next, cmd := top.Update(msg)
	if o, ok := next.(Overlay); ok {
		s.overlays[len(s.overlays)-1] = o
	}
	return cmd
}

func (s *Stack) remove(title string) {
	kept := s.overlays[:0]
	for _, o := range s.overlays {
		if o.Title() != title {
			kept = append(kept, o)
		}
	}
	s.overlays = kept
}
