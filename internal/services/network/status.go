// Package network tracks whether the generative API is reachable so the
// status bar can warn before a request is sent.
package network

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultCheckURL is probed when no URL is configured
const DefaultCheckURL = "https://generativelanguage.googleapis.com"

const probeTimeout = 5 * time.Second

// StatusChecker monitors provider reachability
type StatusChecker struct {
	mu        sync.RWMutex
	isOnline  bool
	lastCheck time.Time
	url       string
	client    *http.Client
	logger    *slog.Logger
}

// StatusMsg is sent when the reachability changes
type StatusMsg struct {
	Online bool
}

// NewStatusChecker creates a checker for url
func NewStatusChecker(url string, logger *slog.Logger) *StatusChecker {
	if url == "" {
		url = DefaultCheckURL
	}
	return &StatusChecker{
		isOnline: true, // Optimistically assume online
		url:      url,
		logger:   logger,
		client: &http.Client{
			Timeout: probeTimeout,
			Transport: &http.Transport{
				DisableKeepAlives: true,
			},
		},
	}
}

// Check probes the provider with a HEAD request.
// Any HTTP answer below 500 counts as reachable; the API answers 404 on
// its root.
func (s *StatusChecker) Check(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.url, nil)
	if err != nil {
		s.setOnline(false)
		return false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Debug("provider unreachable", "url", s.url, "error", err)
		s.setOnline(false)
		return false
	}
	defer resp.Body.Close()

	online := resp.StatusCode < 500
	s.setOnline(online)
	return online
}

// IsOnline returns the cached status
func (s *StatusChecker) IsOnline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isOnline
}

// LastCheck returns the time of the last check
func (s *StatusChecker) LastCheck() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastCheck
}

func (s *StatusChecker) setOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOnline = online
	s.lastCheck = time.Now()
}

// CheckCmd probes once
func (s *StatusChecker) CheckCmd() tea.Cmd {
	return s.probe
}

// TickCmd probes again after interval
func (s *StatusChecker) TickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return s.probe() })
}

func (s *StatusChecker) probe() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	return StatusMsg{Online: s.Check(ctx)}
}
