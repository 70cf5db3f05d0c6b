package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/manifoldco/promptui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/schollz/progressbar/v3"

	"github.com/riordanpawley/translate-ai/internal/app"
	"github.com/riordanpawley/translate-ai/internal/config"
	"github.com/riordanpawley/translate-ai/internal/domain"
	"github.com/riordanpawley/translate-ai/internal/mcp"
	"github.com/riordanpawley/translate-ai/internal/metrics"
	"github.com/riordanpawley/translate-ai/internal/server"
	"github.com/riordanpawley/translate-ai/internal/services/channel"
	"github.com/riordanpawley/translate-ai/internal/services/gemini"
	"github.com/riordanpawley/translate-ai/internal/services/network"
	"github.com/riordanpawley/translate-ai/internal/services/page"
	"github.com/riordanpawley/translate-ai/internal/services/relay"
	"github.com/riordanpawley/translate-ai/internal/services/storage"
	"github.com/riordanpawley/translate-ai/internal/ui/notice"
	"github.com/riordanpawley/translate-ai/internal/ui/overlay"
)

// Dependencies holds all the services needed for CLI commands
type Dependencies struct {
	Config      *config.Config
	Store       *storage.Store
	Credentials *storage.Credentials
	Gemini      *gemini.Client
	Relay       *relay.Relay
	Pages       *page.Loader
	Registry    *prometheus.Registry
	Logger      *slog.Logger
	Out         io.Writer
}

// NewDependencies opens the credential store and builds the relay
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store: %w", err)
	}
	return newDependencies(cfg, store, logger), nil
}

func newDependencies(cfg *config.Config, store *storage.Store, logger *slog.Logger) *Dependencies {
	reg := metrics.NewRegistry()
	creds := storage.NewCredentials(store)
	client := gemini.NewClient(cfg.Provider.BaseURL, nil, logger)
	resolver := gemini.NewResolver(client, cfg.Provider.PreferredModels, cfg.Provider.FallbackModel, logger)

	return &Dependencies{
		Config:      cfg,
		Store:       store,
		Credentials: creds,
		Gemini:      client,
		Relay:       relay.New(creds, resolver, client, metrics.NewRelayMetrics(reg), logger),
		Pages:       page.NewLoader(nil, logger),
		Registry:    reg,
		Logger:      logger,
		Out:         os.Stdout,
	}
}

// Close releases the settings store
func (d *Dependencies) Close() error {
	return d.Store.Close()
}

// Channel opens the transport selected by relay.mode. The returned func
// closes it.
func (d *Dependencies) Channel(ctx context.Context) (channel.Channel, func() error, error) {
	cfg := d.Config.Relay
	switch cfg.Mode {
	case config.RelayHTTP:
		timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
		return channel.NewHTTP(cfg.URL, timeout), func() error { return nil }, nil

	case config.RelayWebSocket:
		ws, err := channel.DialWebSocket(ctx, portURL(cfg.URL), d.Logger)
		if err != nil {
			return nil, nil, err
		}
		return ws, ws.Close, nil

	default:
		l := channel.NewLocal(d.Relay, d.Logger)
		return l, l.Close, nil
	}
}

// portURL turns a relay base URL into its WebSocket port address
func portURL(base string) string {
	base = strings.TrimRight(base, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + channel.PortPath
}

// ReaderCommand opens source in the interactive reader. An empty source
// reads the page from stdin.
func ReaderCommand(ctx context.Context, deps *Dependencies, source string) error {
	pg, piped, err := loadPage(ctx, deps, source)
	if err != nil {
		return err
	}

	ch, closeCh, err := deps.Channel(ctx)
	if err != nil {
		return fmt.Errorf("failed to open relay channel: %w", err)
	}
	defer closeCh()

	deps.Logger.Info("opening reader", "source", pg.Source, "relay", deps.Config.Relay.Mode)

	model := app.New(deps.Config, pg, app.Deps{
		Channel: ch,
		Keys:    deps.Credentials,
		Network: network.NewStatusChecker(deps.Config.Network.CheckURL, deps.Logger),
		Logger:  deps.Logger,
	})

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}
	if piped {
		opts = append(opts, tea.WithInputTTY())
	}

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running reader: %w", err)
	}
	return nil
}

func loadPage(ctx context.Context, deps *Dependencies, source string) (*page.Page, bool, error) {
	if source != "" && source != "-" {
		pg, err := deps.Pages.Load(ctx, source)
		return pg, false, err
	}

	if info, err := os.Stdin.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
		return nil, false, errors.New("no page given (pass a file, a URL, or pipe text on stdin)")
	}
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, false, &domain.PageError{Source: "stdin", Op: "read", Err: err}
	}
	pg := page.Parse(raw, page.FormatText)
	pg.Source = "stdin"
	return pg, true, nil
}

// TranslateCommand translates text once and prints the result
func TranslateCommand(ctx context.Context, deps *Dependencies, text, lang string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("nothing to translate")
	}
	target := deps.Config.Overlay.DefaultLanguage
	if lang != "" {
		l, ok := domain.LookupLanguage(lang)
		if !ok {
			return fmt.Errorf("unknown language %q (try one of: %s)", lang, languageCodes())
		}
		target = l.Code
	}

	return send(ctx, deps, domain.Message{
		Action:         domain.ActionTranslate,
		Text:           text,
		TargetLanguage: target,
	}, "Translating to "+target)
}

// SummarizeCommand loads a page and prints its summary
func SummarizeCommand(ctx context.Context, deps *Dependencies, source, lang string) error {
	pg, _, err := loadPage(ctx, deps, source)
	if err != nil {
		return err
	}
	text := strings.TrimSpace(page.Truncate(pg.Text, deps.Config.Summary.MaxChars))
	if text == "" {
		return fmt.Errorf("page %s has no text to summarize", pg.Source)
	}

	target := deps.Config.Overlay.DefaultLanguage
	if l, ok := domain.LookupLanguage(lang); ok {
		target = l.Code
	}

	return send(ctx, deps, domain.Message{
		Action:         domain.ActionSummarize,
		Text:           text,
		TargetLanguage: target,
	}, "Summarizing "+pg.Title)
}

// send runs msg through the configured channel with a spinner on stderr
func send(ctx context.Context, deps *Dependencies, msg domain.Message, label string) error {
	ch, closeCh, err := deps.Channel(ctx)
	if err != nil {
		return fmt.Errorf("failed to open relay channel: %w", err)
	}
	defer closeCh()

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	type result struct {
		resp domain.Response
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := ch.Send(ctx, msg)
		done <- result{resp, err}
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	var res result
wait:
	for {
		select {
		case res = <-done:
			break wait
		case <-ticker.C:
			_ = bar.Add(1)
		}
	}
	_ = bar.Finish()

	if res.err != nil {
		return fmt.Errorf("relay failed: %w", res.err)
	}
	reply := res.resp.Reply()
	if !reply.Ok() {
		return errors.New(notice.Humanize(reply.ErrorMessage))
	}
	if reply.Text == "" {
		return domain.ErrEmptyResult
	}

	fmt.Fprintln(deps.Out, reply.Text)
	return nil
}

// KeySetCommand stores the provider API key, prompting when key is empty
func KeySetCommand(ctx context.Context, deps *Dependencies, key string) error {
	if key == "" {
		prompt := promptui.Prompt{
			Label: "Gemini API key",
			Mask:  '•',
			Validate: func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New(overlay.InvalidKeyMessage)
				}
				return nil
			},
		}
		var err error
		key, err = prompt.Run()
		if err != nil {
			return fmt.Errorf("key prompt: %w", err)
		}
	}

	if err := deps.Credentials.SetAPIKey(ctx, key); err != nil {
		return err
	}
	deps.Logger.Info("api key saved")
	fmt.Fprintln(deps.Out, "✓ API key saved")
	return nil
}

// KeyShowCommand prints the stored key, masked
func KeyShowCommand(ctx context.Context, deps *Dependencies) error {
	key, err := deps.Credentials.APIKey(ctx)
	if errors.Is(err, domain.ErrMissingCredential) {
		fmt.Fprintln(deps.Out, "No API key stored")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Out, storage.Mask(key))
	return nil
}

// KeyClearCommand removes the stored key after confirmation
func KeyClearCommand(ctx context.Context, deps *Dependencies, yes bool) error {
	if !yes {
		prompt := promptui.Prompt{
			Label:     "Remove the stored Gemini API key",
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			if errors.Is(err, promptui.ErrAbort) {
				fmt.Fprintln(deps.Out, "Kept the API key")
				return nil
			}
			return fmt.Errorf("confirm prompt: %w", err)
		}
	}

	if err := deps.Credentials.ClearAPIKey(ctx); err != nil {
		return err
	}
	fmt.Fprintln(deps.Out, "✓ API key cleared")
	return nil
}

// ModelsCommand lists the provider's models and marks the one the relay
// would use
func ModelsCommand(ctx context.Context, deps *Dependencies) error {
	key, err := deps.Credentials.APIKey(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrMissingCredential) {
			return errors.New(relay.MissingKeyMessage)
		}
		return err
	}

	models, err := deps.Gemini.ListModels(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}
	chosen, ok := gemini.Pick(models, deps.Config.Provider.PreferredModels)
	if !ok {
		chosen = deps.Config.Provider.FallbackModel
	}

	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tMODEL\tGENERATES")
	for _, m := range models {
		mark := ""
		if strings.TrimPrefix(m.Name, "models/") == chosen {
			mark = "*"
		}
		gen := "no"
		if m.SupportsGeneration {
			gen = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", mark, m.Name, gen)
	}
	w.Flush()

	if !ok {
		fmt.Fprintf(deps.Out, "\nNo listed model fits; the relay falls back to %s\n", chosen)
	}
	return nil
}

// ServeCommand runs the relay server until interrupted
func ServeCommand(ctx context.Context, deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := deps.Config.Server
	srv := server.New(server.Config{
		Addr:           cfg.Addr,
		AllowedOrigins: cfg.AllowedOrigins,
		RatePerMinute:  cfg.RatePerMinute,
	}, deps.Relay, deps.Registry, deps.Logger)

	l, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}
	deps.Logger.Info("relay server listening", "addr", l.Addr().String())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(l) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	deps.Logger.Info("shutting down relay server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// MCPCommand serves the relay as MCP tools on stdio
func MCPCommand(deps *Dependencies) error {
	deps.Logger.Info("mcp server starting on stdio")
	return mcp.NewServer(deps.Relay, deps.Pages, deps.Config.Summary.MaxChars, Version).Serve()
}

func languageCodes() string {
	codes := make([]string, len(domain.Languages))
	for i, l := range domain.Languages {
		codes[i] = l.Code
	}
	return strings.Join(codes, ", ")
}
