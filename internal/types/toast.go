package types

import "time"

// Toast represents a notification message
type Toast struct {
	Level   ToastLevel
	Message string
	Expires time.Time
}

// ToastLevel indicates the severity of a toast
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// NewToast creates a toast that expires ttl after now
func NewToast(level ToastLevel, msg string, now time.Time, ttl time.Duration) Toast {
	return Toast{Level: level, Message: msg, Expires: now.Add(ttl)}
}

// Expired reports whether the toast should no longer be shown
func (t Toast) Expired(now time.Time) bool {
	return !now.Before(t.Expires)
}

// Live returns the toasts that have not expired
func Live(toasts []Toast, now time.Time) []Toast {
	out := toasts[:0:0]
	for _, t := range toasts {
		if !t.Expired(now) {
			out = append(out, t)
		}
	}
	return out
}
