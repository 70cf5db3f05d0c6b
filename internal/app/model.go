// Package app implements the Bubble Tea model of the page reader.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	"github.com/riordanpawley/translate-ai/internal/config"
	"github.com/riordanpawley/translate-ai/internal/core/position"
	"github.com/riordanpawley/translate-ai/internal/core/session"
	"github.com/riordanpawley/translate-ai/internal/domain"
	"github.com/riordanpawley/translate-ai/internal/services/channel"
	"github.com/riordanpawley/translate-ai/internal/services/network"
	"github.com/riordanpawley/translate-ai/internal/services/page"
	"github.com/riordanpawley/translate-ai/internal/types"
	"github.com/riordanpawley/translate-ai/internal/ui/document"
	"github.com/riordanpawley/translate-ai/internal/ui/overlay"
	"github.com/riordanpawley/translate-ai/internal/ui/panel"
	"github.com/riordanpawley/translate-ai/internal/ui/styles"
)

const (
	toastTTL      = 3 * time.Second
	errorToastTTL = 5 * time.Second
)

// KeyStore reads and writes the provider API key
type KeyStore interface {
	APIKey(ctx context.Context) (string, error)
	SetAPIKey(ctx context.Context, key string) error
	ClearAPIKey(ctx context.Context) error
}

// Deps are the services the reader talks to
type Deps struct {
	Channel channel.Channel
	Keys    KeyStore
	// Network is optional; without it the reader assumes it is online
	Network *network.StatusChecker
	// Clipboard defaults to the system clipboard
	Clipboard func(string) error
	Clock     clockwork.Clock
	Logger    *slog.Logger
}

// Model is the main application state
type Model struct {
	cfg  *config.Config
	page *page.Page

	// Overlay state machine and the page it floats over
	session *session.Session
	doc     *document.Model

	// UI state
	overlayStack *overlay.Stack
	panel        *panel.Renderer
	styles       *styles.Styles
	spinner      spinner.Model
	toasts       []types.Toast
	debounceGen  int
	isOnline     bool

	// Terminal size
	width  int
	height int

	channel   channel.Channel
	keys      KeyStore
	network   *network.StatusChecker
	clipboard func(string) error
	clock     clockwork.Clock
	logger    *slog.Logger
}

// New creates the reader for pg
func New(cfg *config.Config, pg *page.Page, deps Deps) Model {
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.WriteAll
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	st := styles.New()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	sess := session.New(session.Options{
		Tracker: position.Tracker{
			Margin:      float64(cfg.Overlay.Margin),
			PanelWidth:  float64(cfg.Overlay.PanelWidth),
			PanelHeight: float64(cfg.Overlay.PanelHeight),
			Gap:         float64(cfg.Overlay.AnchorGap),
		},
		DefaultLanguage: cfg.Overlay.DefaultLanguage,
		CopyAck:         time.Duration(cfg.Overlay.CopyAckMs) * time.Millisecond,
		Clock:           deps.Clock,
	})

	return Model{
		cfg:          cfg,
		page:         pg,
		session:      sess,
		doc:          document.New(pg.Text, st),
		overlayStack: overlay.NewStack(),
		panel:        panel.New(st, cfg.Overlay.PanelWidth, cfg.Overlay.PanelHeight),
		styles:       st,
		spinner:      s,
		isOnline:     true,
		channel:      deps.Channel,
		keys:         deps.Keys,
		network:      deps.Network,
		clipboard:    deps.Clipboard,
		clock:        deps.Clock,
		logger:       deps.Logger,
	}
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.page.Title != "" {
		cmds = append(cmds, tea.SetWindowTitle(m.page.Title))
	}
	if m.network != nil {
		cmds = append(cmds, m.network.CheckCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.doc.SetSize(m.width, m.pageHeight())
		m.session.Reposition(m.doc.Viewport())
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.overlayStack.IsEmpty() {
			return m, m.overlayStack.Update(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case overlay.CloseOverlayMsg:
		m.overlayStack.Pop()
		if m.session.View().MenuOpen {
			m.session.ToggleLanguageMenu()
		}
		return m, nil

	case overlay.SelectionMsg:
		return m.handleSelection(msg)

	case debounceMsg:
		if msg.gen != m.debounceGen {
			return m, nil
		}
		m.applySelection()
		return m, nil

	case relayReplyMsg:
		var accepted bool
		if msg.err != nil {
			accepted = m.session.ApplyChannelError(msg.seq, msg.err)
		} else {
			accepted = m.session.ApplyReply(msg.seq, msg.reply)
		}
		if !accepted {
			m.logger.Debug("dropped stale reply", "seq", msg.seq)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.logger.Error("copy failed", "error", msg.err)
			return m, m.addToast(types.ToastError, "Copy failed: "+msg.err.Error())
		}
		if !m.session.MarkCopied() {
			return m, nil
		}
		return m, tea.Tick(m.session.CopyAck(), func(time.Time) tea.Msg { return copyAckMsg{} })

	case copyAckMsg:
		// redraw only; Copied() reads the clock
		return m, nil

	case keyLoadedMsg:
		return m, m.overlayStack.Push(overlay.NewAPIKeyOverlay(msg.masked))

	case keySavedMsg:
		if msg.err != nil {
			return m, m.addToast(types.ToastError, msg.err.Error())
		}
		if msg.cleared {
			return m, m.addToast(types.ToastInfo, "API key cleared")
		}
		return m, m.addToast(types.ToastSuccess, "API key saved")

	case toastExpiredMsg:
		m.toasts = types.Live(m.toasts, m.clock.Now())
		return m, nil

	case network.StatusMsg:
		if m.isOnline != msg.Online {
			m.logger.Info("network status changed", "online", msg.Online)
		}
		m.isOnline = msg.Online
		if m.network == nil {
			return m, nil
		}
		return m, m.network.TickCmd(time.Duration(m.cfg.Network.CheckInterval) * time.Second)
	}

	return m, nil
}

// pageHeight is the terminal height minus the status bar
func (m Model) pageHeight() int {
	return max(m.height-1, 0)
}

// mode derives the input mode from the session and the document
func (m Model) mode() types.Mode {
	if _, ok := m.overlayStack.Current().(*overlay.LanguageMenu); ok {
		return types.ModeMenu
	}
	p := m.session.Phase()
	if p.PanelOpen() {
		return types.ModePanel
	}
	if m.doc.Selecting() {
		return types.ModeSelect
	}
	switch {
	case p == domain.PhaseTriggerVisible:
		return types.ModeTrigger
	default:
		return types.ModeRead
	}
}

// docEvent turns a document event into session work
func (m *Model) docEvent(ev document.Event) tea.Cmd {
	switch ev {
	case document.EventScrolled:
		m.session.Reposition(m.doc.Viewport())
	case document.EventSelection:
		return m.debounce()
	}
	return nil
}

// debounce schedules a selection check; only the newest one fires
func (m *Model) debounce() tea.Cmd {
	m.debounceGen++
	gen := m.debounceGen
	d := time.Duration(m.cfg.Overlay.DebounceMs) * time.Millisecond
	return tea.Tick(d, func(time.Time) tea.Msg { return debounceMsg{gen: gen} })
}

func (m *Model) applySelection() {
	sel, r := m.doc.Selection()
	if sel == nil {
		m.session.SelectionChanged(nil, nil, m.doc.Viewport())
		return
	}
	m.session.SelectionChanged(sel, r, m.doc.Viewport())
}

// send runs a dispatch through the channel off the event loop
func (m Model) send(d session.Dispatch) tea.Cmd {
	ch := m.channel
	return func() tea.Msg {
		resp, err := ch.Send(context.Background(), domain.MessageFor(d.Request))
		if err != nil {
			return relayReplyMsg{seq: d.Seq, err: err}
		}
		return relayReplyMsg{seq: d.Seq, reply: resp.Reply()}
	}
}

func (m *Model) addToast(level types.ToastLevel, msg string) tea.Cmd {
	ttl := toastTTL
	if level == types.ToastError {
		ttl = errorToastTTL
	}
	m.toasts = append(m.toasts, types.NewToast(level, msg, m.clock.Now(), ttl))
	return tea.Tick(ttl, func(time.Time) tea.Msg { return toastExpiredMsg{} })
}
