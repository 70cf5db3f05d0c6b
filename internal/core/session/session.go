// Package session implements the selection-triggered overlay state machine.
//
// A Session is owned by the page reader. Every transition is a method call;
// methods that start a relay request return a Dispatch which the caller
// sends over the channel. Replies carry the dispatch sequence number back
// and are dropped unless they answer the most recent dispatch.
//
//	Idle ──selection──▶ TriggerVisible ──activate──▶ PanelLoading
//	  ▲                      │                         │      ▲
//	  │◀──empty/no anchor────┘                reply/error  pick language
//	  │                                                ▼      │
//	  └────────────dismiss──────────────────── PanelResult / PanelError
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riordanpawley/translate-ai/internal/core/position"
	"github.com/riordanpawley/translate-ai/internal/domain"
)

// User-facing messages for channel-level failures
const (
	InvalidatedMessage = "Extension updated. Please refresh the page."
	NoResponseMessage  = "Error: No response from extension."
)

// DefaultCopyAck is how long the copy acknowledgement stays visible
const DefaultCopyAck = 2 * time.Second

// Options configures a Session
type Options struct {
	Tracker         position.Tracker
	DefaultLanguage string
	CopyAck         time.Duration
	Clock           clockwork.Clock
}

// Dispatch is a relay request tagged with the sequence number that a
// matching reply must carry
type Dispatch struct {
	Seq     uint64
	Request domain.RelayRequest
}

// View is a read-only snapshot for renderers
type View struct {
	Phase        domain.Phase
	Position     domain.Point
	Action       domain.Action
	Language     string
	Result       string
	Error        string
	LoadingLabel string
	MenuOpen     bool
	Copied       bool
}

// Session holds the overlay state for one page
type Session struct {
	tracker  position.Tracker
	clock    clockwork.Clock
	copyAck  time.Duration
	language string

	phase    domain.Phase
	position domain.Point
	rng      position.Range
	source   string
	action   domain.Action
	result   string
	errText  string
	menuOpen bool

	copiedUntil time.Time
	seq         uint64
}

// New creates an idle session
func New(opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.CopyAck <= 0 {
		opts.CopyAck = DefaultCopyAck
	}
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = "Italian"
	}
	if opts.Tracker == (position.Tracker{}) {
		opts.Tracker = position.New()
	}

	return &Session{
		tracker:  opts.Tracker,
		clock:    opts.Clock,
		copyAck:  opts.CopyAck,
		language: opts.DefaultLanguage,
		action:   domain.ActionTranslate,
	}
}

// Reset returns the session to Idle and releases the retained range.
// The target language survives.
func (s *Session) Reset() {
	s.toIdle()
	s.source = ""
	s.result = ""
	s.errText = ""
	s.copiedUntil = time.Time{}
	s.seq++
}

// Phase returns the current phase
func (s *Session) Phase() domain.Phase {
	return s.phase
}

// Language returns the current target language
func (s *Session) Language() string {
	return s.language
}

// SelectionChanged handles a debounced selection change. r is the live range
// of sel and may be nil when sel is nil. Ignored while a panel is open.
func (s *Session) SelectionChanged(sel *domain.Selection, r position.Range, vp domain.Viewport) {
	if s.phase.PanelOpen() {
		return
	}

	if sel == nil {
		s.toIdle()
		return
	}

	if r == nil {
		r = staticRange(sel.AnchorRect)
	}
	p, ok := s.tracker.Track(r, vp)
	if !ok {
		s.toIdle()
		return
	}

	s.rng = r
	s.source = sel.Text
	s.position = p
	s.phase = domain.PhaseTriggerVisible
}

// Reposition re-measures the retained range after a scroll or resize
func (s *Session) Reposition(vp domain.Viewport) {
	if s.rng == nil {
		return
	}

	p, ok := s.tracker.Track(s.rng, vp)
	switch {
	case s.phase == domain.PhaseTriggerVisible && !ok:
		s.toIdle()
	case ok:
		s.position = p
	}
}

// Activate opens the panel from the trigger and starts a translation.
// An empty lang keeps the current target language.
func (s *Session) Activate(lang string) (Dispatch, bool) {
	if s.phase != domain.PhaseTriggerVisible {
		return Dispatch{}, false
	}
	if lang != "" {
		s.language = lang
	}
	s.action = domain.ActionTranslate
	return s.dispatch(), true
}

// SummarizePage opens the panel at the top-left margin with a summary of
// text. It is refused while a panel is already open.
func (s *Session) SummarizePage(text string) (Dispatch, bool) {
	text = strings.TrimSpace(text)
	if text == "" || s.phase.PanelOpen() {
		return Dispatch{}, false
	}

	s.rng = nil
	s.source = text
	s.position = domain.Point{X: s.tracker.Margin, Y: s.tracker.Margin}
	s.action = domain.ActionSummarize
	return s.dispatch(), true
}

// ToggleLanguageMenu shows or hides the language menu in panel phases
func (s *Session) ToggleLanguageMenu() {
	if s.phase.PanelOpen() {
		s.menuOpen = !s.menuOpen
	}
}

// PickLanguage re-runs the current action over the same source text in a
// new language. The new dispatch supersedes any request still in flight.
func (s *Session) PickLanguage(lang string) (Dispatch, bool) {
	if !s.phase.PanelOpen() || lang == "" {
		return Dispatch{}, false
	}
	s.language = lang
	return s.dispatch(), true
}

// ApplyReply resolves a dispatch. Replies for anything other than the
// latest dispatch are dropped and ApplyReply returns false.
func (s *Session) ApplyReply(seq uint64, reply domain.RelayReply) bool {
	if !s.accepts(seq) {
		return false
	}

	switch {
	case !reply.Ok():
		s.fail(reply.ErrorMessage)
	case reply.Text == "":
		s.fail(NoResponseMessage)
	default:
		s.result = reply.Text
		s.errText = ""
		s.phase = domain.PhasePanelResult
	}
	return true
}

// ApplyChannelError resolves a dispatch whose transport failed
func (s *Session) ApplyChannelError(seq uint64, err error) bool {
	if !s.accepts(seq) {
		return false
	}

	if errors.Is(err, domain.ErrContextInvalidated) || strings.Contains(err.Error(), "context invalidated") {
		s.fail(InvalidatedMessage)
	} else {
		s.fail("Communication error: " + err.Error())
	}
	return true
}

// Copy returns the result text to put on the clipboard. Only valid with a
// result showing.
func (s *Session) Copy() (string, bool) {
	if s.phase != domain.PhasePanelResult {
		return "", false
	}
	return s.result, true
}

// MarkCopied starts the acknowledgement window once the clipboard write
// succeeded
func (s *Session) MarkCopied() bool {
	if s.phase != domain.PhasePanelResult {
		return false
	}
	s.copiedUntil = s.clock.Now().Add(s.copyAck)
	return true
}

// Copied reports whether the copy acknowledgement is still showing
func (s *Session) Copied() bool {
	return s.phase == domain.PhasePanelResult && s.clock.Now().Before(s.copiedUntil)
}

// CopyAck returns the acknowledgement duration
func (s *Session) CopyAck() time.Duration {
	return s.copyAck
}

// Dismiss closes whatever is showing and releases the range
func (s *Session) Dismiss() bool {
	if s.phase == domain.PhaseIdle {
		return false
	}
	s.toIdle()
	return true
}

// View returns a snapshot of the session for rendering
func (s *Session) View() View {
	v := View{
		Phase:    s.phase,
		Position: s.position,
		Action:   s.action,
		Language: s.language,
		MenuOpen: s.menuOpen,
		Copied:   s.Copied(),
	}
	switch s.phase {
	case domain.PhasePanelLoading:
		v.LoadingLabel = fmt.Sprintf("%s to %s...", s.action.Verb(), s.language)
	case domain.PhasePanelResult:
		v.Result = s.result
	case domain.PhasePanelError:
		v.Error = s.errText
	}
	return v
}

func (s *Session) dispatch() Dispatch {
	s.seq++
	s.phase = domain.PhasePanelLoading
	s.menuOpen = false
	s.result = ""
	s.errText = ""
	s.copiedUntil = time.Time{}

	return Dispatch{
		Seq: s.seq,
		Request: domain.RelayRequest{
			Action:         s.action,
			Text:           s.source,
			TargetLanguage: s.language,
		},
	}
}

func (s *Session) accepts(seq uint64) bool {
	return seq == s.seq && s.phase == domain.PhasePanelLoading
}

func (s *Session) fail(msg string) {
	s.errText = msg
	s.result = ""
	s.phase = domain.PhasePanelError
}

func (s *Session) toIdle() {
	s.phase = domain.PhaseIdle
	s.rng = nil
	s.menuOpen = false
}

// staticRange is used when the caller has a rect but no live range
type staticRange domain.Rect

func (r staticRange) BoundingRect() domain.Rect {
	return domain.Rect(r)
}
