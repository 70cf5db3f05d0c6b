package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/translate-ai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLanguageMenu_StartsOnCurrent(t *testing.T) {
	m := NewLanguageMenu("French")

	assert.Equal(t, "French", m.Selected().Code)
}

func TestLanguageMenu_UnknownCurrentStartsAtTop(t *testing.T) {
	m := NewLanguageMenu("Klingon")

	assert.Equal(t, domain.Languages[0].Code, m.Selected().Code)
}

func TestLanguageMenu_Navigation(t *testing.T) {
	m := NewLanguageMenu("English")

	m.Update(keyMsg("j"))
	assert.Equal(t, domain.Languages[1].Code, m.Selected().Code)

	m.Update(keyMsg("k"))
	m.Update(keyMsg("k"))
	assert.Equal(t, domain.Languages[len(domain.Languages)-1].Code, m.Selected().Code, "wraps to bottom")

	m.Update(keyMsg("g"))
	assert.Equal(t, domain.Languages[0].Code, m.Selected().Code)

	m.Update(keyMsg("G"))
	assert.Equal(t, domain.Languages[len(domain.Languages)-1].Code, m.Selected().Code)
}

func TestLanguageMenu_EnterEmitsSelection(t *testing.T) {
	m := NewLanguageMenu("English")
	m.Update(keyMsg("down"))

	_, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)

	assert.Equal(t, SelectionMsg{Key: KeyLanguage, Value: domain.Languages[1].Code}, cmd())
}

func TestLanguageMenu_DigitPicksDirectly(t *testing.T) {
	m := NewLanguageMenu("English")

	_, cmd := m.Update(keyMsg("3"))
	require.NotNil(t, cmd)

	assert.Equal(t, SelectionMsg{Key: KeyLanguage, Value: domain.Languages[2].Code}, cmd())
}

func TestLanguageMenu_EscCloses(t *testing.T) {
	m := NewLanguageMenu("English")

	_, cmd := m.Update(keyMsg("esc"))
	require.NotNil(t, cmd)

	assert.Equal(t, CloseOverlayMsg{}, cmd())
}

func TestLanguageMenu_View(t *testing.T) {
	m := NewLanguageMenu("Japanese")

	view := m.View()

	assert.Contains(t, view, "日本語 (Japanese) ✓")
	assert.Contains(t, view, "English")
	assert.Contains(t, view, "›")
}

func TestLanguageMenu_Size(t *testing.T) {
	m := NewLanguageMenu("English")

	w, h := m.Size()

	assert.Greater(t, w, 0)
	assert.Greater(t, h, len(domain.Languages))
	assert.Equal(t, "Language", m.Title())
}
