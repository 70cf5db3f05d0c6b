package statusbar

import "github.com/riordanpawley/translate-ai/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeRead:
		return "j/k: scroll  v: select  S: summarize page  ?: help  q: quit"
	case types.ModeSelect:
		return "h/j/k/l: extend  w/b: word  Enter: done  Esc: cancel"
	case types.ModeTrigger:
		return "t/Enter: translate  Esc: dismiss"
	case types.ModePanel:
		return "c: copy  L: language  Esc: close"
	case types.ModeMenu:
		return "j/k: move  Enter: pick  Esc: back"
	default:
		return ""
	}
}
