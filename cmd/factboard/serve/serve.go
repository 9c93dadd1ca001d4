// Package servecmder provides the serve command that runs the widget server.
package servecmder

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/factboard/cmd/factboard/setup"
	"github.com/papercomputeco/factboard/pkg/config"
	"github.com/papercomputeco/factboard/widget"
)

type serveCommander struct {
	flags  serveFlags
	cfg    *config.Config
	logger *slog.Logger
}

// serveFlags only hold flag values for cobra; the resolved settings come
// from viper.
type serveFlags struct {
	target         string
	timeout        time.Duration
	listen         string
	title          string
	eventsProvider string
	eventsBrokers  string
	eventsTopic    string
	mcp            bool
}

var serveFlagKeys = []string{
	config.FlagTarget,
	config.FlagTimeout,
	config.FlagListen,
	config.FlagTitle,
	config.FlagEventsProvider,
	config.FlagEventsBrokers,
	config.FlagEventsTopic,
	config.FlagMCP,
}

const serveLongDesc string = `Run the factboard widget server.

The server renders the facts board as an HTML page backed by the remote facts
collection:
  GET  /                 Page with the submission form and the facts list
  GET  /facts/fragment   Only the rendered facts list
  POST /facts/submit     Submit the form field "text" as a new fact
  GET  /ping             Health check
  /mcp                   MCP tools list_facts and add_fact (when enabled)

Examples:
  factboard serve
  factboard serve --target http://localhost:3000 --listen :9000
  factboard serve --events-provider kafka --events-brokers localhost:9092`

const serveShortDesc string = "Run the widget server"

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.cfg, err = setup.Settings(cmd, serveFlagKeys...)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, closeLog, err := setup.Logger(cmd)
			if err != nil {
				return err
			}
			defer closeLog()
			cmder.logger = log

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return cmder.run(ctx)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagTarget, &cmder.flags.target)
	config.AddDurationFlag(cmd, config.Flags, config.FlagTimeout, &cmder.flags.timeout)
	config.AddStringFlag(cmd, config.Flags, config.FlagListen, &cmder.flags.listen)
	config.AddStringFlag(cmd, config.Flags, config.FlagTitle, &cmder.flags.title)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsProvider, &cmder.flags.eventsProvider)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsBrokers, &cmder.flags.eventsBrokers)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsTopic, &cmder.flags.eventsTopic)
	config.AddBoolFlag(cmd, config.Flags, config.FlagMCP, &cmder.flags.mcp)

	return cmd
}

func (c *serveCommander) run(ctx context.Context) error {
	client, err := setup.Client(c.cfg, c.logger)
	if err != nil {
		return err
	}

	publisher, err := setup.Publisher(c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	server, err := widget.NewServer(widget.Config{
		ListenAddr: c.cfg.Widget.Listen,
		Title:      c.cfg.Widget.Title,
		Target:     client.Endpoint(),
		Publisher:  publisher,
		MCP:        c.cfg.MCP.Enabled,
	}, client, c.logger)
	if err != nil {
		return fmt.Errorf("creating widget server: %w", err)
	}

	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", c.cfg.Widget.Listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", c.cfg.Widget.Listen, err)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.RunWithListener(ln); err != nil {
			errChan <- fmt.Errorf("widget server error: %w", err)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		c.logger.Info("shutting down widget server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return server.ShutdownWithContext(shutdownCtx)
	}
}
