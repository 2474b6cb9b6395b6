// Package main implements richedit, a terminal rich-text editor with
// regex search, highlight and replace over HTML documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"richedit/internal/commands"
	"richedit/internal/config"
	"richedit/internal/discovery"
	"richedit/internal/document"
	"richedit/internal/domain"
	"richedit/internal/eventbus"
	"richedit/internal/fileops"
	"richedit/internal/search"
	"richedit/internal/ui"
	"richedit/internal/watch"
)

var version = "dev"

// Global flags
var (
	debugMode  bool
	configPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "richedit [files or directories...]",
		Short: "Terminal rich-text editor with regex search and replace",
		Long: `richedit edits HTML documents in the terminal.

Search terms are case-insensitive patterns; the current match is wrapped in
a highlight span that is stripped again before every search, replace and
save. Each file opens in its own tab.`,
		Example: `  # Start with an empty document
  richedit

  # Open two files in tabs
  richedit notes.html draft.txt

  # Open every .html, .htm and .txt file below a directory
  richedit ./docs

  # Replace every match from a script
  richedit replace notes.html 'colou?r' shade --all --write`,
		Version:      version,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(args)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default "+config.DefaultPath()+")")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage richedit configuration",
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), config.NewConfigService(configPath).Path())
			return nil
		},
	}

	var force bool
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := config.NewConfigService(configPath)
			if _, err := os.Stat(svc.Path()); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", svc.Path())
			}
			if err := svc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", svc.Path())
			return nil
		},
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configPathCmd, configInitCmd)

	var stripWrite bool
	stripCmd := &cobra.Command{
		Use:   "strip FILE",
		Short: "Remove leftover search highlights from a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			nav := search.NewNavigator(navigatorOptions(cfg))
			doc, err := fileops.Open(args[0])
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), doc.Path, nav.Strip(doc.Content), stripWrite)
		},
	}
	stripCmd.Flags().BoolVarP(&stripWrite, "write", "w", false, "Rewrite the file instead of printing")

	var (
		replaceAll   bool
		replaceLit   bool
		replaceWrite bool
	)
	replaceCmd := &cobra.Command{
		Use:   "replace FILE TERM REPLACEMENT",
		Short: "Replace the first (or every) match in a document",
		Long: `Replace the first match of TERM in FILE, or every match with --all.

TERM is a case-insensitive pattern unless --literal is given. REPLACEMENT
may use $1..$9, $& and $$ in pattern mode.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			opts := navigatorOptions(cfg)
			if replaceLit {
				opts.PatternMode = search.PatternLiteral
			}
			nav := search.NewNavigator(opts)

			doc, err := fileops.Open(args[0])
			if err != nil {
				return err
			}
			mode := domain.ReplaceFirst
			if replaceAll {
				mode = domain.ReplaceAll
			}
			res, err := nav.Replace(mode, args[1], args[2], doc.Content)
			if err != nil {
				return errors.New(search.Notice(err))
			}
			if res.Replaced == 0 {
				return errors.New(search.Notice(search.ErrNoMatchFound))
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d replaced\n", res.Replaced)
			return emit(cmd.OutOrStdout(), doc.Path, res.Content, replaceWrite)
		},
	}
	replaceCmd.Flags().BoolVarP(&replaceAll, "all", "a", false, "Replace every match")
	replaceCmd.Flags().BoolVarP(&replaceLit, "literal", "l", false, "Treat TERM and REPLACEMENT literally")
	replaceCmd.Flags().BoolVarP(&replaceWrite, "write", "w", false, "Rewrite the file instead of printing")

	rootCmd.AddCommand(configCmd, stripCmd, replaceCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// emit prints content or writes it back to path
func emit(out io.Writer, path, content string, write bool) error {
	if write {
		return fileops.Save(path, content, domain.FormatHTML)
	}
	_, err := io.WriteString(out, content)
	return err
}

// loadConfig falls back to defaults when the file cannot be used
func loadConfig() *config.Config {
	cfg, err := config.NewConfigService(configPath).Load()
	if err != nil {
		log.Warn("Error loading config, using defaults", "err", err)
		return config.DefaultConfig()
	}
	return cfg
}

func navigatorOptions(cfg *config.Config) search.Options {
	opts := search.DefaultOptions()
	if cfg.Search.PatternMode == config.PatternLiteral {
		opts.PatternMode = search.PatternLiteral
	}
	if cfg.Search.HighlightMode == config.HighlightMatch {
		opts.HighlightMode = search.HighlightMatchLength
	}
	opts.HighlightClass = cfg.Search.HighlightClass
	opts.SkipMarkup = cfg.Search.SkipMarkup
	opts.MatchTimeout = cfg.Search.MatchTimeout()
	return opts
}

// setupLogging sends the logger to richedit.log next to the config file
func setupLogging(svc config.ConfigService) (io.Closer, error) {
	logPath := filepath.Join(filepath.Dir(svc.Path()), "richedit.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, err
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(logFile)
	log.SetReportTimestamp(true)
	if debugMode {
		log.SetLevel(log.DebugLevel)
	}
	return logFile, nil
}

func runEditor(files []string) error {
	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(configPath, bus)
	if logFile, err := setupLogging(configSvc); err != nil {
		// Keep stderr quiet while the TUI owns the terminal
		log.SetOutput(io.Discard)
	} else {
		defer logFile.Close()
	}

	cfg, err := configSvc.Load()
	if err != nil {
		log.Error("Error loading config", "err", err)
		cfg = config.DefaultConfig()
	}

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	ws := document.NewWorkspace(cfg.DefaultFilename)
	nav := search.NewNavigator(navigatorOptions(cfg))
	cmdCtx := commands.NewCommandContext(ws, nav, bus)
	if wd, err := os.Getwd(); err == nil {
		cmdCtx.SaveDir = wd
	}

	if cfg.Files.Watch {
		watcher, err := watch.New(bus, watch.DefaultDebounce)
		if err != nil {
			log.Warn("File watching disabled", "err", err)
		} else {
			defer watcher.Close()
			cmdCtx.Watcher = watcher
		}
	}

	// Directory arguments open every document below them
	files, err = discovery.NewScanner(bus, discovery.DefaultMaxDepth).Expand(ctx, files)
	if err != nil {
		return err
	}

	executor := commands.NewExecutor(cmdCtx)
	for _, f := range files {
		if out, err := executor.Dispatch(commands.Action{Kind: commands.Open, Path: f}); err != nil {
			return errors.New(out.Notice)
		}
	}
	if len(ws.List()) > 1 {
		// Start on the first file like the command line lists them
		_ = ws.Switch(ws.List()[0].ID())
	}

	// Create UI model
	uiModel := ui.NewModel(bus, cfg, executor)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	forward := func(e eventbus.DomainEvent) { p.Send(ui.EventMsg{Event: e}) }
	for _, t := range []eventbus.EventType{
		eventbus.EventFileChanged,
		eventbus.EventError,
		eventbus.EventConfigSaved,
	} {
		unsubscribe := bus.Subscribe(t, forward)
		defer unsubscribe()
	}

	// Run the UI
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
