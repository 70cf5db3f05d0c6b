package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/translate-ai/internal/domain"
	"github.com/riordanpawley/translate-ai/internal/services/page"
	"github.com/riordanpawley/translate-ai/internal/services/storage"
	"github.com/riordanpawley/translate-ai/internal/types"
	"github.com/riordanpawley/translate-ai/internal/ui/document"
	"github.com/riordanpawley/translate-ai/internal/ui/overlay"
	"github.com/riordanpawley/translate-ai/internal/ui/panel"
)

// handleKey processes keyboard input based on current mode
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+l":
		return m, tea.ClearScreen
	}

	switch m.mode() {
	case types.ModeSelect:
		return m.handleSelectMode(msg)
	case types.ModeTrigger:
		return m.handleTriggerMode(msg)
	case types.ModePanel:
		return m.handlePanelMode(msg)
	default:
		return m.handleReadMode(msg)
	}
}

// handleReadMode handles keys shared by every mode without an open panel
func (m Model) handleReadMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		return m, m.overlayStack.Push(m.helpOverlay())
	case "K":
		return m, m.loadKeyCmd()
	case "v":
		m.doc.StartSelect()
		return m, nil
	case "S":
		return m.summarizePage()
	case "esc":
		if m.doc.HasSelection() {
			m.doc.ClearSelection()
			return m, m.debounce()
		}
		return m, nil
	}
	return m, m.docEvent(m.doc.Update(msg))
}

func (m Model) handleSelectMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var ev document.Event
	switch msg.String() {
	case "esc":
		m.doc.ClearSelection()
		return m, m.debounce()
	case "enter":
		m.doc.Finish()
		return m, m.debounce()
	case "h", "left":
		ev = m.doc.Move(0, -1)
	case "l", "right":
		ev = m.doc.Move(0, 1)
	case "j", "down":
		ev = m.doc.Move(1, 0)
	case "k", "up":
		ev = m.doc.Move(-1, 0)
	case "w":
		ev = m.doc.WordForward()
	case "b":
		ev = m.doc.WordBackward()
	case "0", "home":
		ev = m.doc.LineStart()
	case "$", "end":
		ev = m.doc.LineEnd()
	case "t":
		if m.session.Phase() == domain.PhaseTriggerVisible {
			m.doc.Finish()
			return m.activate("")
		}
	}
	return m, m.docEvent(ev)
}

func (m Model) handleTriggerMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "t", "enter":
		return m.activate("")
	case "L":
		return m, m.overlayStack.Push(overlay.NewLanguageMenu(m.session.Language()))
	case "esc":
		m.session.Dismiss()
		m.doc.ClearSelection()
		return m, nil
	}
	return m.handleReadMode(msg)
}

func (m Model) handlePanelMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.session.Dismiss()
		m.doc.ClearSelection()
		return m, nil
	case "L":
		m.session.ToggleLanguageMenu()
		return m, m.overlayStack.Push(overlay.NewLanguageMenu(m.session.Language()))
	case "c", "y":
		text, ok := m.session.Copy()
		if !ok {
			return m, nil
		}
		return m, m.copyCmd(text)
	case "?":
		return m, m.overlayStack.Push(m.helpOverlay())
	case "K":
		return m, m.loadKeyCmd()
	}
	// scrolling keeps working under the panel
	return m, m.docEvent(m.doc.Update(msg))
}

// handleMouse routes mouse input. A left click on the trigger activates it.
// Under an open panel only the wheel reaches the page.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.overlayStack.IsEmpty() {
		return m, nil
	}
	if m.session.Phase().PanelOpen() && !tea.MouseEvent(msg).IsWheel() {
		return m, nil
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.onTrigger(msg.X, msg.Y) {
		return m.activate("")
	}
	return m, m.docEvent(m.doc.HandleMouse(msg))
}

func (m Model) onTrigger(x, y int) bool {
	if m.session.Phase() != domain.PhaseTriggerVisible {
		return false
	}
	tx, ty, tw := m.triggerBox()
	return y == ty && x >= tx && x < tx+tw
}

func (m Model) activate(lang string) (tea.Model, tea.Cmd) {
	d, ok := m.session.Activate(lang)
	if !ok {
		return m, nil
	}
	m.doc.Finish()
	return m, m.send(d)
}

func (m Model) summarizePage() (tea.Model, tea.Cmd) {
	text := page.Truncate(m.doc.Text(), m.cfg.Summary.MaxChars)
	d, ok := m.session.SummarizePage(text)
	if !ok {
		return m, nil
	}
	m.doc.ClearSelection()
	return m, m.send(d)
}

// handleSelection processes values emitted by overlays
func (m Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	switch msg.Key {
	case overlay.KeyLanguage:
		m.overlayStack.Pop()
		lang, _ := msg.Value.(string)
		if m.session.Phase().PanelOpen() {
			d, ok := m.session.PickLanguage(lang)
			if !ok {
				return m, nil
			}
			return m, m.send(d)
		}
		return m.activate(lang)

	case overlay.KeyAPIKey:
		m.overlayStack.Pop()
		key, _ := msg.Value.(string)
		return m, m.saveKeyCmd(key)

	case overlay.KeyClearAPIKey:
		m.overlayStack.Pop()
		res, ok := msg.Value.(overlay.ConfirmResult)
		if !ok {
			return m, m.overlayStack.Push(overlay.NewConfirmDialog(
				"Clear API key", "Remove the stored Gemini API key?", overlay.KeyClearAPIKey))
		}
		if !res.Confirmed {
			return m, nil
		}
		return m, m.clearKeyCmd()
	}

	m.overlayStack.Pop()
	return m, nil
}

func (m Model) copyCmd(text string) tea.Cmd {
	write := m.clipboard
	return func() tea.Msg {
		return copiedMsg{err: write(text)}
	}
}

func (m Model) loadKeyCmd() tea.Cmd {
	keys := m.keys
	return func() tea.Msg {
		if keys == nil {
			return keyLoadedMsg{}
		}
		key, err := keys.APIKey(context.Background())
		if err != nil {
			return keyLoadedMsg{}
		}
		return keyLoadedMsg{masked: storage.Mask(key)}
	}
}

func (m Model) saveKeyCmd(key string) tea.Cmd {
	keys := m.keys
	return func() tea.Msg {
		if keys == nil {
			return keySavedMsg{err: errors.New("no key store configured")}
		}
		return keySavedMsg{err: keys.SetAPIKey(context.Background(), key)}
	}
}

func (m Model) clearKeyCmd() tea.Cmd {
	keys := m.keys
	return func() tea.Msg {
		if keys == nil {
			return keySavedMsg{cleared: true, err: errors.New("no key store configured")}
		}
		return keySavedMsg{cleared: true, err: keys.ClearAPIKey(context.Background())}
	}
}

// helpOverlay sizes the help screen to the terminal
func (m Model) helpOverlay() *overlay.HelpOverlay {
	h := overlay.NewHelpOverlay()
	h.SetHeight(min(m.height-10, 18))
	return h
}

// triggerBox returns the trigger's row, first column and width
func (m Model) triggerBox() (x, y, w int) {
	v := m.session.View()
	w = lipgloss.Width(m.panel.Trigger(v.Language))
	x, y = panel.Origin(v.Position.X, v.Position.Y, w, 1, m.width, m.pageHeight(), 0)
	return x, y, w
}
