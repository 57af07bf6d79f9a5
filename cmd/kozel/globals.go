package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/kozelassist/internal/config"
	"github.com/lox/kozelassist/internal/display"
	"github.com/lox/kozelassist/internal/engine"
)

// Globals are flags shared by every command. Set values override the
// configuration file.
type Globals struct {
	Config   string `short:"c" default:"${config_file}" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" help:"Log level (debug|info|warn|error), overrides config"`
	StateDir string `help:"Directory for persisted state, overrides config"`
	Memory   bool   `help:"Keep state in memory only"`
	NoColor  bool   `help:"Disable coloured output"`
}

func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Logging.Level = g.LogLevel
	}
	if g.StateDir != "" {
		cfg.Storage.Backend = "file"
		cfg.Storage.Dir = g.StateDir
	}
	if g.Memory {
		cfg.Storage.Backend = "memory"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setup loads config and builds the logger. The returned closer releases
// a log file when one is configured.
func (g *Globals) setup() (*config.Config, *log.Logger, func(), error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	var (
		out     io.Writer = os.Stderr
		closeFn           = func() {}
	)
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	logger := log.New(out)
	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	logger.SetLevel(level)
	return cfg, logger, closeFn, nil
}

func (g *Globals) printer() *display.Printer {
	return display.NewPrinter(os.Stdout, g.NoColor)
}

// openEngine builds the engine from config and loads persisted state
func openEngine(ctx context.Context, cfg *config.Config, logger *log.Logger) (*engine.Engine, error) {
	opts, err := engine.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	opts.Logger = logger
	e := engine.New(opts)
	if err := e.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return e, nil
}

// flushTimeout bounds the final save of engine state
const flushTimeout = 5 * time.Second

// flushEngine saves engine state even when ctx was cancelled by a signal,
// so an interrupted command keeps what it recorded.
func flushEngine(ctx context.Context, e *engine.Engine) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
	defer cancel()
	return e.Flush(ctx)
}

// setupSignalHandler creates a context that is cancelled on interrupt signals
func setupSignalHandler(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down gracefully", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
