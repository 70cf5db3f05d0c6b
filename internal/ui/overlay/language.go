package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/translate-ai/internal/domain"
)

// LanguageMenu lets the user pick a target language.
// Enter emits SelectionMsg{Key: KeyLanguage, Value: code}.
type LanguageMenu struct {
	languages []domain.Language
	current   string
	cursor    int
	styles    *Styles
}

// NewLanguageMenu opens the menu with the cursor on current
func NewLanguageMenu(current string) *LanguageMenu {
	return &LanguageMenu{
		languages: domain.Languages,
		current:   current,
		cursor:    domain.LanguageIndex(current),
		styles:    New(),
	}
}

// Init initializes the overlay
func (l *LanguageMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (l *LanguageMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	switch key.String() {
	case "esc", "q":
		return l, func() tea.Msg { return CloseOverlayMsg{} }

	case "j", "down", "tab":
		l.cursor = (l.cursor + 1) % len(l.languages)

	case "k", "up", "shift+tab":
		l.cursor = (l.cursor - 1 + len(l.languages)) % len(l.languages)

	case "g", "home":
		l.cursor = 0

	case "G", "end":
		l.cursor = len(l.languages) - 1

	case "enter", " ":
		return l, l.choose()

	default:
		// 1-9 pick directly
		if s := key.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(l.languages) {
				l.cursor = i
				return l, l.choose()
			}
		}
	}

	return l, nil
}

func (l *LanguageMenu) choose() tea.Cmd {
	code := l.languages[l.cursor].Code
	return func() tea.Msg {
		return SelectionMsg{Key: KeyLanguage, Value: code}
	}
}

// Selected returns the language under the cursor
func (l *LanguageMenu) Selected() domain.Language {
	return l.languages[l.cursor]
}

// View renders the menu
func (l *LanguageMenu) View() string {
	var b strings.Builder
	for i, lang := range l.languages {
		if i > 0 {
			b.WriteString("\n")
		}

		key := " "
		if i < 9 {
			key = fmt.Sprintf("%d", i+1)
		}

		label := lang.Label
		if lang.Label != lang.Code {
			label += " (" + lang.Code + ")"
		}

		style := l.styles.MenuItem
		prefix := "  "
		switch {
		case i == l.cursor:
			style = l.styles.MenuItemActive
			prefix = "› "
		case lang.Code == l.current:
			style = l.styles.MenuItemCurrent
		}
		if lang.Code == l.current {
			label += " ✓"
		}

		b.WriteString(prefix + l.styles.MenuKey.Render(key) + " " + style.Render(label))
	}
	return b.String()
}

// Title returns the overlay title
func (l *LanguageMenu) Title() string {
	return "Language"
}

// Size returns the overlay dimensions
func (l *LanguageMenu) Size() (width, height int) {
	return 34, len(l.languages) + 4
}
