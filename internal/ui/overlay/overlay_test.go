package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestOverlayInterface(t *testing.T) {
	var _ Overlay = mockOverlay{}
	var _ Overlay = (*LanguageMenu)(nil)
	var _ Overlay = (*APIKeyOverlay)(nil)
	var _ Overlay = (*ConfirmDialog)(nil)
	var _ Overlay = (*HelpOverlay)(nil)
}

func TestFrame_IncludesTitleAndBody(t *testing.T) {
	o := mockOverlay{title: "Language", width: 30, height: 5}

	out := Frame(o, New())

	assert.Contains(t, out, "Language")
	assert.Equal(t, 2, strings.Count(out, "Language"), "title and body both render")
}

func TestFrame_UsesOverlaySize(t *testing.T) {
	o := mockOverlay{title: "Sized", width: 30, height: 5}

	out := Frame(o, New())

	// border adds one cell on each side
	assert.Equal(t, 32, lipgloss.Width(out))
}

func TestFrame_NoTitle(t *testing.T) {
	o := mockOverlay{width: 0, height: 0}

	out := Frame(o, New())

	assert.NotEmpty(t, out)
}

func TestMockOverlayMessages(t *testing.T) {
	o := mockOverlay{title: "Test", value: "v"}

	_, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, SelectionMsg{Key: "test", Value: "v"}, cmd())

	_, cmd = o.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, CloseOverlayMsg{}, cmd())
}
