package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/translate-ai/internal/domain"
)

// Catppuccin Macchiato, the subset the reader draws with
var (
	Base     = lipgloss.Color("#24273a")
	Surface0 = lipgloss.Color("#363a4f")
	Surface2 = lipgloss.Color("#5b6078")
	Overlay0 = lipgloss.Color("#6e738d")
	Overlay1 = lipgloss.Color("#8087a2")
	Subtext0 = lipgloss.Color("#a5adcb")
	Subtext1 = lipgloss.Color("#b8c0e0")
	Text     = lipgloss.Color("#cad3f5")

	Rosewater = lipgloss.Color("#f4dbd6")
	Mauve     = lipgloss.Color("#c6a0f6")
	Red       = lipgloss.Color("#ed8796")
	Yellow    = lipgloss.Color("#eed49f")
	Green     = lipgloss.Color("#a6da95")
	Sapphire  = lipgloss.Color("#7dc4e4")
	Blue      = lipgloss.Color("#8aadf4")
	Lavender  = lipgloss.Color("#b7bdf8")
)

// PhaseColors maps overlay phases to their accent colour
var PhaseColors = map[domain.Phase]lipgloss.Color{
	domain.PhaseIdle:           Overlay0,
	domain.PhaseTriggerVisible: Mauve,
	domain.PhasePanelLoading:   Blue,
	domain.PhasePanelResult:    Green,
	domain.PhasePanelError:     Red,
}
