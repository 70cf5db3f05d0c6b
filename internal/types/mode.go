// Package types contains shared types used across the application.
package types

// Mode is the reader's current input mode
type Mode int

const (
	ModeRead Mode = iota
	ModeSelect
	ModeTrigger
	ModePanel
	ModeMenu
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "READ"
	case ModeSelect:
		return "SELECT"
	case ModeTrigger:
		return "TRIGGER"
	case ModePanel:
		return "PANEL"
	case ModeMenu:
		return "MENU"
	default:
		return "UNKNOWN"
	}
}
