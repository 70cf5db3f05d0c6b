package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/translate-ai/internal/domain"
)

// Styles holds all the UI styles
type Styles struct {
	// Page
	Page      lipgloss.Style
	PageTitle lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	// Trigger
	Trigger lipgloss.Style

	// Panel
	Panel          lipgloss.Style
	PanelHeader    lipgloss.Style
	LanguageButton lipgloss.Style
	PanelBody      lipgloss.Style
	PanelLoading   lipgloss.Style
	PanelError     lipgloss.Style
	PanelFooter    lipgloss.Style
	CopyAck        lipgloss.Style

	// Status bar
	StatusBar     lipgloss.Style
	StatusMode    lipgloss.Style
	StatusHint    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusOnline  lipgloss.Style
	StatusOffline lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Page: lipgloss.NewStyle().
			Foreground(Text),

		PageTitle: lipgloss.NewStyle().
			Foreground(Lavender).
			Bold(true),

		Selection: lipgloss.NewStyle().
			Foreground(Base).
			Background(Sapphire),

		Cursor: lipgloss.NewStyle().
			Foreground(Base).
			Background(Rosewater),

		Trigger: lipgloss.NewStyle().
			Foreground(Base).
			Background(Mauve).
			Bold(true).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(0, 1),

		PanelHeader: lipgloss.NewStyle().
			Foreground(Subtext1).
			Bold(true),

		LanguageButton: lipgloss.NewStyle().
			Foreground(Base).
			Background(Blue).
			Padding(0, 1),

		PanelBody: lipgloss.NewStyle().
			Foreground(Text),

		PanelLoading: lipgloss.NewStyle().
			Foreground(Blue).
			Italic(true),

		PanelError: lipgloss.NewStyle().
			Foreground(Red),

		PanelFooter: lipgloss.NewStyle().
			Foreground(Overlay1),

		CopyAck: lipgloss.NewStyle().
			Foreground(Green).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		StatusOnline: lipgloss.NewStyle().
			Foreground(Green),

		StatusOffline: lipgloss.NewStyle().
			Foreground(Red).
			Bold(true),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),
	}
}

// PanelBorder returns the panel style with its border tinted for the phase
func (s *Styles) PanelBorder(phase domain.Phase) lipgloss.Style {
	color, ok := PhaseColors[phase]
	if !ok {
		color = Surface2
	}
	return s.Panel.BorderForeground(color)
}

// ModeBadge returns the status bar badge style for a phase
func (s *Styles) ModeBadge(phase domain.Phase) lipgloss.Style {
	if color, ok := PhaseColors[phase]; ok && phase != domain.PhaseIdle {
		return s.StatusMode.Background(color)
	}
	return s.StatusMode
}
