package server

import (
	"encoding/json"
	"net/http"
	"path"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/riordanpawley/translate-ai/internal/domain"
	"github.com/riordanpawley/translate-ai/internal/services/channel"
)

const maxMessageBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var msg domain.Message
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageBytes)).Decode(&msg); err != nil {
		writeJSON(w, http.StatusBadRequest, domain.Response{Error: "invalid message format"})
		return
	}
	if !msg.Action.Valid() {
		writeJSON(w, http.StatusBadRequest, domain.Response{Error: "unknown action: " + string(msg.Action)})
		return
	}

	writeJSON(w, http.StatusOK, channel.Serve(r.Context(), s.handler, msg))
}

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(r.Header.Get("Origin"), s.cfg.AllowedOrigins)
		},
	}
}

// originAllowed accepts requests without an Origin (non-browser clients)
// and origins matching one of the glob patterns
func originAllowed(origin string, patterns []string) bool {
	if origin == "" {
		return true
	}
	for _, p := range patterns {
		if p == "*" {
			return true
		}
		if ok, _ := path.Match(p, origin); ok {
			return true
		}
	}
	return false
}

// handlePort serves a long-lived port. Each request frame is answered by
// exactly one response frame with the same ID; frames are handled
// concurrently.
func (s *Server) handlePort(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.metrics.PortsCurrent.Inc()
	defer s.metrics.PortsCurrent.Dec()

	var (
		wmu sync.Mutex
		wg  sync.WaitGroup
	)
	send := func(f channel.Frame) {
		wmu.Lock()
		defer wmu.Unlock()
		if err := conn.WriteJSON(f); err != nil {
			s.logger.Warn("websocket write failed", "error", err)
		}
	}

	ctx := r.Context()
	for {
		var frame channel.Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", "error", err)
			}
			break
		}
		if frame.Message == nil {
			send(channel.Frame{ID: frame.ID, Response: &domain.Response{Error: "invalid message format"}})
			continue
		}

		wg.Add(1)
		go func(f channel.Frame) {
			defer wg.Done()
			resp := channel.Serve(ctx, s.handler, *f.Message)
			send(channel.Frame{ID: f.ID, Response: &resp})
		}(frame)
	}
	wg.Wait()
}
