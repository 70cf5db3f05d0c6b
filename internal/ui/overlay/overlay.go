// Package overlay holds the modal components drawn over the page: the
// language menu, the API key form, confirmation and help.
package overlay

import tea "github.com/charmbracelet/bubbletea"

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}

// SelectionMsg is sent when an overlay produces a value
type SelectionMsg struct {
	Key   string
	Value any
}

// Selection keys
const (
	KeyLanguage    = "language"
	KeyAPIKey      = "api_key"
	KeyClearAPIKey = "api_key_clear"
)

// Frame renders o inside the overlay border with its title on top
func Frame(o Overlay, s *Styles) string {
	body := o.View()
	if title := o.Title(); title != "" {
		body = s.Title.Render(title) + "\n" + body
	}
	w, h := o.Size()
	style := s.Overlay
	if w > 0 {
		style = style.Width(w)
	}
	if h > 0 {
		style = style.Height(h)
	}
	return style.Render(body)
}
