package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InvalidKeyMessage is shown when the submitted key is blank
const InvalidKeyMessage = "Please enter a valid API key"

// APIKeyOverlay edits the stored provider key. Enter emits
// SelectionMsg{Key: KeyAPIKey, Value: key}; ctrl+x asks for the key
// to be cleared.
type APIKeyOverlay struct {
	input  textinput.Model
	masked string
	reveal bool
	err    string
	styles *Styles
}

// NewAPIKeyOverlay opens the form. masked is the current key as shown to
// the user, or empty when none is stored.
func NewAPIKeyOverlay(masked string) *APIKeyOverlay {
	ti := textinput.New()
	ti.Placeholder = "Paste your Gemini API key..."
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 256
	ti.Width = 48
	ti.Focus()

	return &APIKeyOverlay{
		input:  ti,
		masked: masked,
		styles: New(),
	}
}

// Init initializes the overlay
func (a *APIKeyOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (a *APIKeyOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return a, func() tea.Msg { return CloseOverlayMsg{} }

		case "enter":
			value := strings.TrimSpace(a.input.Value())
			if value == "" {
				a.err = InvalidKeyMessage
				return a, nil
			}
			return a, func() tea.Msg {
				return SelectionMsg{Key: KeyAPIKey, Value: value}
			}

		case "ctrl+x":
			if a.masked == "" {
				return a, nil
			}
			return a, func() tea.Msg {
				return SelectionMsg{Key: KeyClearAPIKey}
			}

		case "ctrl+r":
			a.reveal = !a.reveal
			if a.reveal {
				a.input.EchoMode = textinput.EchoNormal
			} else {
				a.input.EchoMode = textinput.EchoPassword
			}
			return a, nil
		}
		a.err = ""
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// Value returns the raw input
func (a *APIKeyOverlay) Value() string {
	return a.input.Value()
}

// Err returns the current validation error
func (a *APIKeyOverlay) Err() string {
	return a.err
}

// View renders the form
func (a *APIKeyOverlay) View() string {
	var b strings.Builder

	if a.masked != "" {
		b.WriteString(a.styles.Muted.Render("Current: " + a.masked))
	} else {
		b.WriteString(a.styles.Muted.Render("No key stored"))
	}
	b.WriteString("\n\n")
	b.WriteString(a.input.View())

	if a.err != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.Error.Render(a.err))
	}

	hints := []string{
		a.styles.MenuKey.Render("Enter") + " save",
		a.styles.MenuKey.Render("^R") + " show",
	}
	if a.masked != "" {
		hints = append(hints, a.styles.MenuKey.Render("^X")+" clear")
	}
	hints = append(hints, a.styles.MenuKey.Render("Esc")+" cancel")
	b.WriteString("\n")
	b.WriteString(a.styles.Footer.Render(strings.Join(hints, " • ")))

	return b.String()
}

// Title returns the overlay title
func (a *APIKeyOverlay) Title() string {
	return "Gemini API Key"
}

// Size returns the overlay dimensions
func (a *APIKeyOverlay) Size() (width, height int) {
	return 60, 9
}
