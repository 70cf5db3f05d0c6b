// Package panel renders the trigger affordance and the floating result
// panel from a session snapshot.
package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/riordanpawley/translate-ai/internal/core/session"
	"github.com/riordanpawley/translate-ai/internal/domain"
	"github.com/riordanpawley/translate-ai/internal/ui/notice"
	"github.com/riordanpawley/translate-ai/internal/ui/styles"
)

const (
	// TriggerIcon prefixes the trigger label
	TriggerIcon = "文A"
	// CopiedLabel replaces the copy hint while the acknowledgement shows
	CopiedLabel = "✓ Copied"
	ellipsis    = "…"
)

// TriggerTitle is the label of the trigger affordance
func TriggerTitle(language string) string {
	return "Translate to " + language
}

// Renderer draws the overlay pieces at a fixed panel size
type Renderer struct {
	styles *styles.Styles
	width  int
	height int
}

// New creates a renderer. width and height bound the panel box including
// its border.
func New(s *styles.Styles, width, height int) *Renderer {
	return &Renderer{
		styles: s,
		width:  max(width, 24),
		height: max(height, 6),
	}
}

// Size returns the panel box size
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Trigger renders the trigger badge
func (r *Renderer) Trigger(language string) string {
	return r.styles.Trigger.Render(TriggerIcon + " " + TriggerTitle(language))
}

// Panel renders the panel for v. spinner is the current spinner frame;
// menu, when non-empty and the menu is open, replaces the body.
func (r *Renderer) Panel(v session.View, spinner, menu string) string {
	box := r.styles.PanelBorder(v.Phase)
	inner := r.width - box.GetHorizontalFrameSize()
	bodyRows := r.height - box.GetVerticalFrameSize() - 2

	header := r.header(v, inner)

	var body []string
	switch {
	case v.MenuOpen && menu != "":
		body = strings.Split(menu, "\n")
	case v.Phase == domain.PhasePanelLoading:
		body = []string{r.styles.PanelLoading.Render(strings.TrimSpace(spinner + " " + v.LoadingLabel))}
	case v.Phase == domain.PhasePanelError:
		body = wrapped(notice.Humanize(v.Error), inner, r.styles.PanelError)
	default:
		body = wrapped(v.Result, inner, r.styles.PanelBody)
	}
	body = clip(body, bodyRows)
	for len(body) < bodyRows {
		body = append(body, "")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		strings.Join(body, "\n"),
		r.footer(v),
	)
	return box.Width(r.width - box.GetHorizontalBorderSize()).Render(content)
}

func (r *Renderer) header(v session.View, inner int) string {
	title := "Translation"
	if v.Action == domain.ActionSummarize {
		title = "Summary"
	}
	left := r.styles.PanelHeader.Render(title)
	right := r.styles.LanguageButton.Render(v.Language + " ▾")

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", gap) + right
}

func (r *Renderer) footer(v session.View) string {
	var hints []string
	if v.Phase == domain.PhasePanelResult {
		if v.Copied {
			hints = append(hints, r.styles.CopyAck.Render(CopiedLabel))
		} else {
			hints = append(hints, "c copy")
		}
	}
	if v.MenuOpen {
		hints = append(hints, "enter pick", "esc back")
	} else {
		hints = append(hints, "L language", "esc close")
	}
	return r.styles.PanelFooter.Render(strings.Join(hints, " · "))
}

func wrapped(text string, width int, style lipgloss.Style) []string {
	if text == "" {
		return nil
	}
	out := strings.Split(wordwrap.String(text, width), "\n")
	for i, l := range out {
		out[i] = style.Render(truncate.StringWithTail(l, uint(width), ellipsis))
	}
	return out
}

// clip keeps at most n lines, marking the cut with an ellipsis line
func clip(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(lines) <= n {
		return lines
	}
	out := append([]string(nil), lines[:n-1]...)
	return append(out, ellipsis)
}
