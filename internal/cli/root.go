// Package cli wires the translate-ai commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/riordanpawley/translate-ai/internal/config"
	"github.com/riordanpawley/translate-ai/internal/logging"
)

// Version is set via ldflags at build time
var Version = "dev"

type options struct {
	configPath string
	logLevel   string
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "translate-ai [page]",
		Short: "Read a page in the terminal and translate what you select",
		Long: `translate-ai opens a file, a URL or piped text in a terminal reader.
Select text with the mouse (or v and the movement keys) and a trigger
appears; activate it to translate the selection with Gemini. S summarizes
the whole page.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, closeFn, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer closeFn()
			return ReaderCommand(cmd.Context(), deps, firstArg(args))
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath(), "config file path")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newTranslateCommand(opts),
		newSummarizeCommand(opts),
		newKeyCommand(opts),
		newModelsCommand(opts),
		newRelayCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

// setup loads config and builds dependencies. toFile sends logs to the
// configured log file instead of stderr.
func (o *options) setup(toFile bool) (*Dependencies, func(), error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	var w io.Writer = os.Stderr
	var logFile *os.File
	if toFile {
		logFile, err = logging.OpenFile(cfg.Log.File)
		if err != nil {
			return nil, nil, err
		}
		w = logFile
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, w)
	slog.SetDefault(logger)

	deps, err := NewDependencies(cfg, logger)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, nil, err
	}

	return deps, func() {
		if err := deps.Close(); err != nil {
			logger.Warn("failed to close settings store", "error", err)
		}
		if logFile != nil {
			logFile.Close()
		}
	}, nil
}

func newTranslateCommand(opts *options) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "translate <text>",
		Short: "Translate text once and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, closeFn, err := opts.setup(false)
			if err != nil {
				return err
			}
			defer closeFn()
			return TranslateCommand(cmd.Context(), deps, args[0], lang)
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "target language (default from config)")
	return cmd
}

func newSummarizeCommand(opts *options) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "summarize [page]",
		Short: "Summarize a file, a URL or piped text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, closeFn, err := opts.setup(false)
			if err != nil {
				return err
			}
			defer closeFn()
			return SummarizeCommand(cmd.Context(), deps, firstArg(args), lang)
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "language carried with the request")
	return cmd
}

func newKeyCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the Gemini API key",
	}

	set := &cobra.Command{
		Use:   "set [key]",
		Short: "Store the API key (prompts when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, closeFn, err := opts.setup(false)
			if err != nil {
				return err
			}
			defer closeFn()
			return KeySetCommand(cmd.Context(), deps, firstArg(args))
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the stored API key, masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, closeFn, err := opts.setup(false)
			if err != nil {
				return err
			}
			defer closeFn()
			return KeyShowCommand(cmd.Context(), deps)
		},
	}

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, closeFn, err := opts.setup(false)
			if err != nil {
				return err
			}
			defer closeFn()
			return KeyClearCommand(cmd.Context(), deps, yes)
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")

	cmd.AddCommand(set, show, clearCmd)
	return cmd
}

func newModelsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List provider models and the one the relay picks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, closeFn, err := opts.setup(false)
			if err != nil {
				return err
			}
			defer closeFn()
			return ModelsCommand(cmd.Context(), deps)
		},
	}
}

func newRelayCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Run the relay for remote readers, extensions and agents",
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the relay over HTTP and WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, closeFn, err := opts.setup(false)
			if err != nil {
				return err
			}
			defer closeFn()
			return ServeCommand(cmd.Context(), deps)
		},
	}

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the relay as MCP tools on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol, so logs go to the file
			deps, closeFn, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer closeFn()
			return MCPCommand(deps)
		},
	}

	cmd.AddCommand(serve, mcpCmd)
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of translate-ai",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "translate-ai %s\n", Version)
		},
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
