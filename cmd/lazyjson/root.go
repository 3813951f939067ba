package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazyjson/internal/app"
	"github.com/rebeliceyang/lazyjson/internal/config"
	"github.com/rebeliceyang/lazyjson/internal/formatter"
	"github.com/rebeliceyang/lazyjson/internal/interaction"
	applog "github.com/rebeliceyang/lazyjson/internal/log"
	"github.com/rebeliceyang/lazyjson/internal/settings"
	"github.com/rebeliceyang/lazyjson/internal/theme"
	"github.com/rebeliceyang/lazyjson/internal/tree"
	"github.com/rebeliceyang/lazyjson/internal/watch"
)

// ErrNotTerminal is returned when the interactive viewer has no terminal
var ErrNotTerminal = errors.New("lazyjson needs a terminal; use 'lazyjson render' to write HTML instead")

type envKey struct{}

// env is the per-invocation wiring shared by every command
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	store  settings.Store
	themes *theme.Service
	closer io.Closer
}

func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Warn("failed to close settings store", "error", err)
		}
	}
	if e.closer != nil {
		_ = e.closer.Close()
	}
}

// formatter builds a formatter from the render settings
func (e *env) formatter(clipboard interaction.Clipboard) *formatter.Formatter {
	b := tree.NewBuilder(e.cfg.Render.Lazy, e.cfg.Render.MaxDepth)
	b.MaxRecursion = e.cfg.Render.MaxRecursion
	return formatter.New(formatter.Options{
		Builder:   b,
		Themes:    e.themes,
		Clipboard: clipboard,
		Logger:    e.logger,
	})
}

func envFrom(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey{}).(*env); ok {
		return e
	}
	return nil
}

var configFile string

func newRootCmd() *cobra.Command {
	var watchFile bool

	rootCmd := &cobra.Command{
		Use:   "lazyjson [file|-]",
		Short: "Browse JSON as a collapsible tree",
		Long: `lazyjson renders a JSON object or array as a collapsible tree with a
breadcrumb bar tracking the path of the entry in view.

Reads the named file, or standard input when the file is "-" or missing.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			interactive := cmd == cmd.Root()
			e, err := newEnv(cmd, interactive)
			if err != nil {
				return err
			}
			ctx := context.WithValue(cmd.Context(), envKey{}, e)
			ctx = applog.WithLogger(ctx, e.logger)
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if e := envFrom(cmd.Context()); e != nil {
				e.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd, args, watchFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Path to the configuration file to load")
	flags.Bool("lazy", false, "Defer building subtrees deeper than --max-depth")
	flags.Int("max-depth", tree.DefaultMaxDepth, "Depth past which lazy mode defers subtrees")
	flags.String("log-level", "info", "Log level: trace, debug, info, warn or error")
	flags.String("log-file", "", "Write logs to this file")
	flags.String("settings", string(settings.BackendSQLite), "Settings backend: sqlite, file or memory")
	rootCmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "Reload when the file changes on disk")

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newThemeCmd())
	rootCmd.AddCommand(newExportCmd())
	return rootCmd
}

// newEnv loads configuration and opens the logger and settings store.
// Interactive sessions keep stderr free for the terminal UI.
func newEnv(cmd *cobra.Command, interactive bool) (*env, error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	opts := applog.Options{Level: cfg.Log.Level, File: cfg.Log.File}
	if !interactive {
		opts.Stderr = cmd.ErrOrStderr()
	}
	logger, closer, err := applog.New(opts)
	if err != nil {
		return nil, err
	}

	store := openStore(cfg, logger)
	return &env{
		cfg:    cfg,
		logger: logger,
		store:  store,
		themes: theme.NewService(store, nil, logger),
		closer: closer,
	}, nil
}

// openStore opens the configured settings backend. Failures degrade to an
// in-memory store so the theme setting simply is not persisted.
func openStore(cfg *config.Config, logger *slog.Logger) settings.Store {
	backend := settings.Backend(strings.ToLower(cfg.Settings.Backend))
	path := cfg.Settings.Path
	if path == "" && backend != settings.BackendMemory {
		dir, err := config.GetConfigPath()
		if err != nil {
			logger.Warn("no config directory for settings", "error", err)
			return settings.NewMemoryStore()
		}
		path = settings.DefaultPath(backend, dir)
	}

	store, err := settings.Open(backend, path)
	if err != nil {
		logger.Warn("failed to open settings store", "backend", string(backend), "path", path, "error", err)
		return settings.NewMemoryStore()
	}
	return store
}

// readInput reads the named file, or in when the name is empty or "-"
func readInput(args []string, in io.Reader) (string, app.Source, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", app.Source{}, fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), app.Source{Name: "stdin"}, nil
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return "", app.Source{}, fmt.Errorf("failed to resolve %s: %w", args[0], err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", app.Source{}, fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), app.Source{Name: filepath.Base(path), Path: path}, nil
}

// rejection turns a rejected formatting result into an error
func rejection(src app.Source, res formatter.Result) error {
	return fmt.Errorf("%s: %s", src.Name, res.Note)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runViewer(cmd *cobra.Command, args []string, watchFile bool) error {
	if !isTerminal(os.Stdout) {
		return ErrNotTerminal
	}
	e := envFrom(cmd.Context())

	raw, src, err := readInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	fm := e.formatter(interaction.SystemClipboard{})
	page, res := fm.Format(cmd.Context(), raw)
	if !res.Formatted {
		return rejection(src, res)
	}
	e.logger.Info("document formatted", "source", src.Name, "length", *res.RawLength)

	var w *watch.Watcher
	if watchFile && src.Path != "" {
		w, err = watch.New(src.Path, watch.WithOnError(func(err error) {
			e.logger.Warn("watch error", "path", src.Path, "error", err)
		}))
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", src.Path, err)
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("failed to watch %s: %w", src.Path, err)
		}
		defer w.Stop()
	}

	model := app.New(app.Options{
		Config:    e.cfg,
		Formatter: fm,
		Themes:    e.themes,
		Page:      page,
		Source:    src,
		Watcher:   w,
		Logger:    e.logger,
	})

	var opts []tea.ProgramOption
	if e.cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if e.cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	if src.Path == "" {
		// Standard input carried the document; keys come from the terminal.
		opts = append(opts, tea.WithInputTTY())
	}

	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
