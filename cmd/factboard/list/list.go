// Package listcmder provides the list command that prints the facts
// collection.
package listcmder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/factboard/cmd/factboard/setup"
	"github.com/papercomputeco/factboard/pkg/board"
	"github.com/papercomputeco/factboard/pkg/config"
	"github.com/papercomputeco/factboard/pkg/render"
)

type listCommander struct {
	target  string
	timeout time.Duration
	html    bool

	cfg    *config.Config
	out    io.Writer
	logger *slog.Logger
}

var listFlagKeys = []string{
	config.FlagTarget,
	config.FlagTimeout,
}

const listLongDesc string = `Fetch the facts collection and print it.

Facts are printed one per line in the order the collection returns them.
With --html the markup of the widget's facts list is printed instead.

Examples:
  factboard list
  factboard list --html
  factboard list --target http://localhost:3000`

const listShortDesc string = "Print the facts collection"

func NewListCmd() *cobra.Command {
	cmder := &listCommander{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.cfg, err = setup.Settings(cmd, listFlagKeys...)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, closeLog, err := setup.Logger(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			cmder.logger = log
			cmder.out = cmd.OutOrStdout()
			return cmder.run(cmd.Context())
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagTarget, &cmder.target)
	config.AddDurationFlag(cmd, config.Flags, config.FlagTimeout, &cmder.timeout)
	cmd.Flags().BoolVar(&cmder.html, "html", false, "Print the HTML facts list instead of text")

	return cmd
}

func (c *listCommander) run(ctx context.Context) error {
	client, err := setup.Client(c.cfg, c.logger)
	if err != nil {
		return err
	}

	var renderer board.Renderer = render.NewTerminal(setup.TerminalWidth(c.out))
	if c.html {
		renderer = render.NewHTML()
	}

	display := board.NewBuffer()
	b, err := board.New(client, display, board.NewField(""),
		board.WithName("cli"),
		board.WithTarget(client.Endpoint()),
		board.WithRenderer(renderer),
		board.WithLogger(c.logger),
	)
	if err != nil {
		return err
	}

	if err := b.Start(ctx); err != nil {
		return err
	}

	fmt.Fprintln(c.out, display.String())
	return nil
}
