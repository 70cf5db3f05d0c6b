package app

import "github.com/riordanpawley/translate-ai/internal/domain"

// debounceMsg fires after the selection settles. Only the latest
// generation is acted on.
type debounceMsg struct {
	gen int
}

// relayReplyMsg carries the channel's answer for dispatch seq
type relayReplyMsg struct {
	seq   uint64
	reply domain.RelayReply
	err   error
}

type copiedMsg struct {
	err error
}

type copyAckMsg struct{}

type keyLoadedMsg struct {
	masked string
}

type keySavedMsg struct {
	cleared bool
	err     error
}

type toastExpiredMsg struct{}
