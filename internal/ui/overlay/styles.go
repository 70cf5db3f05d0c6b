package overlay

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/translate-ai/internal/ui/styles"
)

// Styles are shared by every modal
type Styles struct {
	Overlay lipgloss.Style
	Title   lipgloss.Style
	Footer  lipgloss.Style

	// Menu rows; Current marks the value in effect, Active the cursor
	MenuItem        lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemCurrent lipgloss.Style
	MenuKey         lipgloss.Style
	MenuHeader      lipgloss.Style

	Error lipgloss.Style
	Muted lipgloss.Style
}

// New builds the modal styles from the shared palette
func New() *Styles {
	text := lipgloss.NewStyle().Foreground(styles.Text)

	return &Styles{
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(styles.Lavender).
			Background(styles.Base).
			Padding(1, 2),
		Title:  text.Bold(true).MarginBottom(1),
		Footer: lipgloss.NewStyle().Foreground(styles.Subtext0).MarginTop(1),

		MenuItem:        text,
		MenuItemActive:  lipgloss.NewStyle().Foreground(styles.Blue).Bold(true),
		MenuItemCurrent: lipgloss.NewStyle().Foreground(styles.Green),
		MenuKey:         lipgloss.NewStyle().Foreground(styles.Yellow).Bold(true),
		MenuHeader:      lipgloss.NewStyle().Foreground(styles.Mauve).Bold(true),

		Error: lipgloss.NewStyle().Foreground(styles.Red),
		Muted: lipgloss.NewStyle().Foreground(styles.Overlay1),
	}
}
