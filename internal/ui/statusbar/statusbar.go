package statusbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/translate-ai/internal/domain"
	"github.com/riordanpawley/translate-ai/internal/types"
	"github.com/riordanpawley/translate-ai/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode     types.Mode
	phase    domain.Phase
	width    int
	styles   *styles.Styles
	title    string
	language string
	online   bool
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
		online: true,
	}
}

// WithPhase tints the mode badge for the overlay phase
func (sb StatusBar) WithPhase(p domain.Phase) StatusBar {
	sb.phase = p
	return sb
}

// WithPage sets the page title and target language shown on the right
func (sb StatusBar) WithPage(title, language string) StatusBar {
	sb.title = title
	sb.language = language
	return sb
}

// WithOnline sets the connectivity indicator
func (sb StatusBar) WithOnline(online bool) StatusBar {
	sb.online = online
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.ModeBadge(sb.phase).Render(sb.mode.String())

	hints := GetHints(sb.mode)
	left := modeBadge
	if hints != "" {
		separator := sb.styles.StatusHint.Render(" │ ")
		left = lipgloss.JoinHorizontal(lipgloss.Left, modeBadge, separator, sb.styles.StatusHint.Render(hints))
	}

	right := sb.info()
	inner := sb.width - sb.styles.StatusBar.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	content := left
	if gap > 0 && right != "" {
		content = left + strings.Repeat(" ", gap) + right
	}

	return sb.styles.StatusBar.Width(sb.width).Render(content)
}

func (sb StatusBar) info() string {
	var parts []string
	if sb.title != "" {
		parts = append(parts, sb.styles.StatusInfo.Render(sb.title))
	}
	if sb.language != "" {
		parts = append(parts, sb.styles.StatusInfo.Render("→ "+sb.language))
	}
	if sb.online {
		parts = append(parts, sb.styles.StatusOnline.Render("● online"))
	} else {
		parts = append(parts, sb.styles.StatusOffline.Render("● offline"))
	}
	return strings.Join(parts, sb.styles.StatusHint.Render("  "))
}
