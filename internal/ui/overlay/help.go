package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	helpWidth  = 50
	helpHeight = 20
)

// KeyBinding is one line of the help screen
type KeyBinding struct {
	Key         string
	Description string
}

// KeyCategory groups bindings under a heading
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// HelpSections is the reader's key reference
var HelpSections = []KeyCategory{
	{
		Name: "Reading",
		Bindings: []KeyBinding{
			{"j/k", "Scroll line by line"},
			{"Ctrl+d/u", "Scroll half a page"},
			{"g/G", "Jump to top/bottom"},
		},
	},
	{
		Name: "Selecting",
		Bindings: []KeyBinding{
			{"drag", "Select with the mouse"},
			{"v", "Start a keyboard selection"},
			{"h/j/k/l", "Extend the selection"},
			{"w/b", "Extend by word"},
			{"Enter", "Finish the selection"},
		},
	},
	{
		Name: "Translating",
		Bindings: []KeyBinding{
			{"t", "Translate the selection"},
			{"S", "Summarize the whole page"},
			{"L", "Pick the target language"},
			{"c", "Copy the result"},
			{"Esc", "Close the panel"},
		},
	},
	{
		Name: "Other",
		Bindings: []KeyBinding{
			{"K", "Set the API key"},
			{"?", "Help (this screen)"},
			{"q", "Quit"},
		},
	},
}

// HelpOverlay shows HelpSections in a scrollable viewport
type HelpOverlay struct {
	styles *Styles
	vp     viewport.Model
}

// NewHelpOverlay creates the help screen
func NewHelpOverlay() *HelpOverlay {
	h := &HelpOverlay{styles: New()}
	h.vp = viewport.New(helpWidth-4, helpHeight-2)
	h.vp.SetContent(h.render())
	return h
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch key.String() {
	case "esc", "q", "?":
		return h, func() tea.Msg { return CloseOverlayMsg{} }
	case "j", "down":
		h.vp.SetYOffset(h.vp.YOffset + 1)
	case "k", "up":
		h.vp.SetYOffset(h.vp.YOffset - 1)
	case "g", "home":
		h.vp.GotoTop()
	case "G", "end":
		h.vp.GotoBottom()
	}
	return h, nil
}

// SetHeight resizes the visible part of the help text
func (h *HelpOverlay) SetHeight(lines int) {
	h.vp.Height = max(lines, 1)
}

func (h *HelpOverlay) scrollable() bool {
	return h.vp.TotalLineCount() > h.vp.Height
}

// View renders the visible bindings and, when they overflow, a scroll hint
func (h *HelpOverlay) View() string {
	view := h.vp.View()
	if h.scrollable() {
		view += "\n" + h.styles.Footer.Render(
			"["+h.styles.MenuKey.Render("j/k")+" to scroll, "+h.styles.MenuKey.Render("g/G")+" to jump]")
	}
	return view
}

func (h *HelpOverlay) render() string {
	var b strings.Builder
	for i, cat := range HelpSections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(h.styles.MenuHeader.Render(cat.Name + ":"))
		b.WriteString("\n")
		for _, kb := range cat.Bindings {
			b.WriteString("  " + h.styles.MenuKey.Render(fmt.Sprintf("%-9s", kb.Key)) + h.styles.MenuItem.Render(kb.Description) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	return helpWidth, h.vp.Height + 4
}
