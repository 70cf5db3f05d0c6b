package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmDialog asks a yes/no question on behalf of an action
type ConfirmDialog struct {
	title   string
	message string
	action  string
	yes     bool
	styles  *Styles
}

// ConfirmResult is the Value of the SelectionMsg a dialog emits
type ConfirmResult struct {
	Confirmed bool
}

// NewConfirmDialog creates a dialog that answers with
// SelectionMsg{Key: action, Value: ConfirmResult{...}}. No is the default.
func NewConfirmDialog(title, message, action string) *ConfirmDialog {
	return &ConfirmDialog{
		title:   title,
		message: message,
		action:  action,
		styles:  New(),
	}
}

// Init initializes the dialog
func (c *ConfirmDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (c *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key.String() {
	case "y", "Y":
		return c, c.answer(true)
	case "n", "N", "esc":
		return c, c.answer(false)
	case "enter":
		return c, c.answer(c.yes)
	case "left", "h", "right", "l", "tab":
		c.yes = !c.yes
	}
	return c, nil
}

func (c *ConfirmDialog) answer(yes bool) tea.Cmd {
	action := c.action
	return func() tea.Msg {
		return SelectionMsg{Key: action, Value: ConfirmResult{Confirmed: yes}}
	}
}

// View renders the dialog
func (c *ConfirmDialog) View() string {
	var b strings.Builder

	if c.message != "" {
		b.WriteString(c.styles.MenuItem.Render(c.message))
		b.WriteString("\n\n")
	}

	yes, no := c.styles.MenuItem, c.styles.MenuItemActive
	if c.yes {
		yes, no = no, yes
	}
	b.WriteString(yes.Render("[Y] Yes") + "    " + no.Render("[N] No"))
	b.WriteString("\n")
	b.WriteString(c.styles.Footer.Render("Tab: switch • Enter: confirm • Esc: cancel"))

	return b.String()
}

// Title returns the dialog title
func (c *ConfirmDialog) Title() string {
	return c.title
}

// Size returns the dialog dimensions
func (c *ConfirmDialog) Size() (width, height int) {
	return 50, strings.Count(c.message, "\n") + 7
}
