// Package addcmder provides the add command that submits a fact.
package addcmder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/factboard/cmd/factboard/setup"
	"github.com/papercomputeco/factboard/pkg/board"
	"github.com/papercomputeco/factboard/pkg/cliui"
	"github.com/papercomputeco/factboard/pkg/config"
	"github.com/papercomputeco/factboard/pkg/render"
)

type addCommander struct {
	target         string
	timeout        time.Duration
	eventsProvider string
	eventsBrokers  string
	eventsTopic    string

	cfg    *config.Config
	out    io.Writer
	errOut io.Writer
	logger *slog.Logger
}

var addFlagKeys = []string{
	config.FlagTarget,
	config.FlagTimeout,
	config.FlagEventsProvider,
	config.FlagEventsBrokers,
	config.FlagEventsTopic,
}

const addLongDesc string = `Submit a fact to the collection, then print the refreshed collection.

The text is sent verbatim; an empty string is a valid fact.

Examples:
  factboard add "abyss is real"
  factboard add "" --target http://localhost:3000`

const addShortDesc string = "Submit a fact"

func NewAddCmd() *cobra.Command {
	cmder := &addCommander{}

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: addShortDesc,
		Long:  addLongDesc,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.cfg, err = setup.Settings(cmd, addFlagKeys...)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log, closeLog, err := setup.Logger(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			cmder.logger = log
			cmder.out = cmd.OutOrStdout()
			cmder.errOut = cmd.ErrOrStderr()
			return cmder.run(cmd.Context(), args[0])
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagTarget, &cmder.target)
	config.AddDurationFlag(cmd, config.Flags, config.FlagTimeout, &cmder.timeout)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsProvider, &cmder.eventsProvider)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsBrokers, &cmder.eventsBrokers)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsTopic, &cmder.eventsTopic)

	return cmd
}

func (c *addCommander) run(ctx context.Context, text string) error {
	client, err := setup.Client(c.cfg, c.logger)
	if err != nil {
		return err
	}

	publisher, err := setup.Publisher(c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	display := board.NewBuffer()
	b, err := board.New(client, display, board.NewField(text),
		board.WithName("cli"),
		board.WithTarget(client.Endpoint()),
		board.WithRenderer(render.NewTerminal(setup.TerminalWidth(c.out))),
		board.WithPublisher(publisher),
		board.WithLogger(c.logger),
	)
	if err != nil {
		return err
	}

	if err := cliui.Step(c.errOut, "Submitting fact", func() error {
		return b.Submit(ctx)
	}); err != nil {
		return err
	}

	fmt.Fprintln(c.out, display.String())
	return nil
}
