// Package toast renders transient notifications over the page.
package toast

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/translate-ai/internal/types"
	"github.com/riordanpawley/translate-ai/internal/ui/notice"
	"github.com/riordanpawley/translate-ai/internal/ui/styles"
)

// MaxWidth caps the width of a single toast
const MaxWidth = 48

// Renderer handles rendering of toast notifications
type Renderer struct {
	styles *styles.Styles
}

// New creates a new Renderer with the given styles
func New(styles *styles.Styles) *Renderer {
	return &Renderer{styles: styles}
}

// Render stacks the toasts still live at now, right aligned.
// Error toasts carry humanized provider messages.
// Returns empty string if nothing is live.
func (r *Renderer) Render(toasts []types.Toast, width int, now time.Time) string {
	live := types.Live(toasts, now)
	if len(live) == 0 {
		return ""
	}

	toastWidth := min(width/2, MaxWidth)

	rendered := make([]string, 0, len(live))
	for _, t := range live {
		msg := t.Message
		if t.Level == types.ToastError {
			msg = notice.Humanize(msg)
		}
		rendered = append(rendered, r.styleForLevel(t.Level).Width(toastWidth).Render(msg))
	}

	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

func (r *Renderer) styleForLevel(level types.ToastLevel) lipgloss.Style {
	switch level {
	case types.ToastSuccess:
		return r.styles.ToastSuccess
	case types.ToastWarning:
		return r.styles.ToastWarning
	case types.ToastError:
		return r.styles.ToastError
	default:
		return r.styles.ToastInfo
	}
}
