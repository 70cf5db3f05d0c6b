// Package channel carries overlay messages to the relay and brings back
// exactly one response per message.
//
// Three transports are provided: Local runs the relay in-process behind a
// goroutine-served port, HTTP posts to a relay server, and WebSocket keeps
// a long-lived port open to one.
package channel

import (
	"context"

	"github.com/riordanpawley/translate-ai/internal/domain"
)

// Channel sends a message and waits for its response
type Channel interface {
	Send(ctx context.Context, msg domain.Message) (domain.Response, error)
}

// Handler is the receiving end of a channel
type Handler interface {
	Handle(ctx context.Context, req domain.RelayRequest) domain.RelayReply
}

// Serve runs msg through h and encodes the reply for the wire
func Serve(ctx context.Context, h Handler, msg domain.Message) domain.Response {
	reply := h.Handle(ctx, msg.ToRequest())
	return domain.ResponseFor(msg.Action, reply)
}

// Frame is one WebSocket port frame. Requests carry Message, responses
// carry Response; ID pairs them.
type Frame struct {
	ID       string           `json:"id"`
	Message  *domain.Message  `json:"message,omitempty"`
	Response *domain.Response `json:"response,omitempty"`
}
