package channel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/riordanpawley/translate-ai/internal/domain"
)

// PortPath is the relay server endpoint for WebSocket ports
const PortPath = "/v1/port"

// WebSocket is a long-lived port to a relay server. Responses are matched
// to requests by frame ID, so concurrent sends are allowed.
type WebSocket struct {
	conn   *websocket.Conn
	wmu    sync.Mutex
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]chan domain.Response
	closed  bool
	done    chan struct{}
}

// DialWebSocket opens a port at url (ws:// or wss://, including PortPath)
func DialWebSocket(ctx context.Context, url string, logger *slog.Logger) (*WebSocket, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing relay port: %w", err)
	}

	ws := &WebSocket{
		conn:    conn,
		logger:  logger,
		pending: make(map[string]chan domain.Response),
		done:    make(chan struct{}),
	}
	go ws.readLoop()
	return ws, nil
}

func (w *WebSocket) readLoop() {
	defer w.shutdown()

	for {
		var frame Frame
		if err := w.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				w.logger.Warn("relay port read failed", "error", err)
			}
			return
		}
		if frame.Response == nil {
			continue
		}

		w.mu.Lock()
		ch, ok := w.pending[frame.ID]
		delete(w.pending, frame.ID)
		w.mu.Unlock()

		if ok {
			ch <- *frame.Response
		}
	}
}

func (w *WebSocket) shutdown() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	close(w.done)
	w.pending = nil
}

// Send writes msg as a frame and waits for the matching response.
// A closed port fails with domain.ErrContextInvalidated.
func (w *WebSocket) Send(ctx context.Context, msg domain.Message) (domain.Response, error) {
	id := uuid.NewString()
	ch := make(chan domain.Response, 1)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return domain.Response{}, domain.ErrContextInvalidated
	}
	w.pending[id] = ch
	w.mu.Unlock()

	w.wmu.Lock()
	err := w.conn.WriteJSON(Frame{ID: id, Message: &msg})
	w.wmu.Unlock()
	if err != nil {
		w.forget(id)
		return domain.Response{}, fmt.Errorf("writing to relay port: %w", err)
	}

	select {
	case resp := <-ch:
		return resp, nil
	case <-w.done:
		return domain.Response{}, domain.ErrContextInvalidated
	case <-ctx.Done():
		w.forget(id)
		return domain.Response{}, ctx.Err()
	}
}

func (w *WebSocket) forget(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		delete(w.pending, id)
	}
}

// Close closes the port
func (w *WebSocket) Close() error {
	w.wmu.Lock()
	_ = w.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	w.wmu.Unlock()
	err := w.conn.Close()
	<-w.done
	return err
}
