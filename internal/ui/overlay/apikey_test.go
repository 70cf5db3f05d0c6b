package overlay

import (
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeInto(o *APIKeyOverlay, s string) {
	o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestAPIKeyOverlay_SubmitTrimmed(t *testing.T) {
	o := NewAPIKeyOverlay("")
	typeInto(o, "  AIza-secret  ")

	_, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.Equal(t, SelectionMsg{Key: KeyAPIKey, Value: "AIza-secret"}, cmd())
}

func TestAPIKeyOverlay_BlankRejected(t *testing.T) {
	o := NewAPIKeyOverlay("")
	typeInto(o, "   ")

	_, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, InvalidKeyMessage, o.Err())
	assert.Contains(t, o.View(), InvalidKeyMessage)
}

func TestAPIKeyOverlay_TypingClearsError(t *testing.T) {
	o := NewAPIKeyOverlay("")
	o.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotEmpty(t, o.Err())

	typeInto(o, "a")

	assert.Empty(t, o.Err())
	assert.Equal(t, "a", o.Value())
}

func TestAPIKeyOverlay_Clear(t *testing.T) {
	o := NewAPIKeyOverlay("AIza••••1234")

	_, cmd := o.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	require.NotNil(t, cmd)

	assert.Equal(t, SelectionMsg{Key: KeyClearAPIKey}, cmd())
}

func TestAPIKeyOverlay_ClearWithoutKeyIgnored(t *testing.T) {
	o := NewAPIKeyOverlay("")

	_, cmd := o.Update(tea.KeyMsg{Type: tea.KeyCtrlX})

	assert.Nil(t, cmd)
}

func TestAPIKeyOverlay_RevealToggle(t *testing.T) {
	o := NewAPIKeyOverlay("")

	o.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, textinput.EchoNormal, o.input.EchoMode)

	o.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, textinput.EchoPassword, o.input.EchoMode)
}

func TestAPIKeyOverlay_Esc(t *testing.T) {
	o := NewAPIKeyOverlay("")

	_, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	assert.Equal(t, CloseOverlayMsg{}, cmd())
}

func TestAPIKeyOverlay_ViewShowsMaskedKey(t *testing.T) {
	o := NewAPIKeyOverlay("AIza••••1234")

	view := o.View()

	assert.Contains(t, view, "Current: AIza••••1234")
	assert.Contains(t, view, "clear")
}
