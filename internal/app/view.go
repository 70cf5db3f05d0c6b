package app

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/translate-ai/internal/domain"
	"github.com/riordanpawley/translate-ai/internal/types"
	"github.com/riordanpawley/translate-ai/internal/ui/overlay"
	"github.com/riordanpawley/translate-ai/internal/ui/panel"
	"github.com/riordanpawley/translate-ai/internal/ui/statusbar"
	"github.com/riordanpawley/translate-ai/internal/ui/toast"
)

// View renders the current state as a string
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	view := m.doc.View()

	v := m.session.View()
	switch {
	case v.Phase == domain.PhaseTriggerVisible:
		x, y, _ := m.triggerBox()
		view = panel.Place(view, m.panel.Trigger(v.Language), x, y)

	case v.Phase.PanelOpen():
		menu := ""
		if lm, ok := m.overlayStack.Current().(*overlay.LanguageMenu); ok && v.MenuOpen {
			menu = lm.View()
		}
		box := m.panel.Panel(v, m.spinner.View(), menu)
		pw, ph := lipgloss.Width(box), lipgloss.Height(box)
		x, y := panel.Origin(v.Position.X, v.Position.Y, pw, ph, m.width, m.pageHeight(), m.cfg.Overlay.Margin)
		view = panel.Place(view, box, x, y)
	}

	sb := statusbar.New(m.mode(), m.width, m.styles).
		WithPhase(v.Phase).
		WithPage(m.page.Title, v.Language).
		WithOnline(m.isOnline)
	view = lipgloss.JoinVertical(lipgloss.Left, view, sb.Render())

	// The language menu of an open panel is drawn inside the panel;
	// every other overlay is a centred modal.
	if current := m.overlayStack.Current(); current != nil && !(v.MenuOpen && m.mode() == types.ModeMenu) {
		box := overlay.Frame(current, overlay.New())
		x := (m.width - lipgloss.Width(box)) / 2
		y := (m.height - lipgloss.Height(box)) / 2
		view = panel.Place(view, box, x, y)
	}

	if t := toast.New(m.styles).Render(m.toasts, m.width, m.clock.Now()); t != "" {
		x := m.width - lipgloss.Width(t) - 1
		y := m.pageHeight() - lipgloss.Height(t)
		view = panel.Place(view, t, x, y)
	}

	return view
}
