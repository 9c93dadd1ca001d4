// Package setup resolves configuration and builds the collaborators shared
// by factboard commands: logger, collection client and event publisher.
package setup

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papercomputeco/factboard/pkg/config"
	"github.com/papercomputeco/factboard/pkg/eventstream"
	"github.com/papercomputeco/factboard/pkg/eventstream/kafka"
	"github.com/papercomputeco/factboard/pkg/eventstream/nop"
	"github.com/papercomputeco/factboard/pkg/eventstream/worker"
	"github.com/papercomputeco/factboard/pkg/facts"
	"github.com/papercomputeco/factboard/pkg/logger"
)

// Persistent flag names registered on the root command.
const (
	FlagDebug     = "debug"
	FlagConfigDir = "config-dir"
	FlagLogFile   = "log-file"
)

// AddPersistentFlags registers the flags every factboard command inherits.
func AddPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolP(FlagDebug, "d", false, "Enable debug logging")
	cmd.PersistentFlags().String(FlagConfigDir, "", "Override path to .factboard/ config directory")
	cmd.PersistentFlags().String(FlagLogFile, "", "Also write JSON logs to this file")
}

// Settings resolves the effective configuration for cmd.
// Precedence: flags > FACTBOARD_* env > config.toml > defaults.
func Settings(cmd *cobra.Command, flagKeys ...string) (*config.Config, error) {
	configDir, _ := cmd.Flags().GetString(FlagConfigDir)

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}
	config.BindRegisteredFlags(v, cmd, config.Flags, flagKeys)

	return config.FromViper(v), nil
}

// Logger builds the command logger. Records go to stderr, colorized when it
// is a terminal, and to --log-file as JSON when set. The returned close
// function releases the log file.
func Logger(cmd *cobra.Command) (*slog.Logger, func() error, error) {
	debug, _ := cmd.Flags().GetBool(FlagDebug)

	console := logger.New(
		logger.WithDebug(debug),
		logger.WithPretty(IsTerminal(os.Stderr)),
		logger.WithWriter(cmd.ErrOrStderr()),
	)

	file, closeFile, err := FileLogger(cmd)
	if err != nil {
		return nil, nil, err
	}
	if file == nil {
		return console, closeFile, nil
	}

	return logger.Multi(console, file), closeFile, nil
}

// FileLogger builds a JSON logger writing to --log-file. It returns a nil
// logger when the flag is unset.
func FileLogger(cmd *cobra.Command) (*slog.Logger, func() error, error) {
	debug, _ := cmd.Flags().GetBool(FlagDebug)
	logFile, _ := cmd.Flags().GetString(FlagLogFile)

	if logFile == "" {
		return nil, func() error { return nil }, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	return logger.New(
		logger.WithDebug(debug),
		logger.WithJSON(true),
		logger.WithWriter(f),
	), f.Close, nil
}

// Client builds the collection client for cfg.
func Client(cfg *config.Config, log *slog.Logger) (*facts.Client, error) {
	return facts.NewClient(facts.Config{
		BaseURL: cfg.Target.URL,
		Timeout: time.Duration(cfg.Target.Timeout),
		Logger:  log,
	})
}

// Publisher builds the event publisher selected by cfg.Events.Provider.
// Broker-backed publishers are wrapped in a worker pool; Close drains it.
func Publisher(cfg *config.Config, log *slog.Logger) (eventstream.Publisher, error) {
	switch cfg.Events.Provider {
	case "", config.EventsProviderNop:
		return nop.NewPublisher(), nil

	case config.EventsProviderKafka:
		p, err := kafka.NewPublisher(kafka.Config{
			Brokers: cfg.Events.Brokers,
			Topic:   cfg.Events.Topic,
		})
		if err != nil {
			return nil, fmt.Errorf("creating kafka publisher: %w", err)
		}
		log.Info("publishing fact events to kafka",
			"brokers", cfg.Events.Brokers,
			"topic", p.Topic(),
		)

		pool, err := worker.NewPool(worker.Config{
			Publisher: p,
			Logger:    log,
		})
		if err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("creating event worker pool: %w", err)
		}
		return pool, nil

	default:
		return nil, fmt.Errorf("unknown events provider: %q", cfg.Events.Provider)
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// TerminalWidth returns the width of w, or 0 when it is not a terminal.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // fd fits in int
	if err != nil {
		return 0
	}
	return width
}
