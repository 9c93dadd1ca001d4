// Package tuicmder provides the tui command: an interactive terminal board.
package tuicmder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/factboard/cmd/factboard/setup"
	"github.com/papercomputeco/factboard/pkg/board"
	"github.com/papercomputeco/factboard/pkg/config"
	"github.com/papercomputeco/factboard/pkg/dotdir"
	"github.com/papercomputeco/factboard/pkg/logger"
	"github.com/papercomputeco/factboard/pkg/render"
)

type tuiCommander struct {
	target         string
	timeout        time.Duration
	eventsProvider string
	eventsBrokers  string
	eventsTopic    string

	configDir string
	cfg       *config.Config
	logger    *slog.Logger
}

var tuiFlagKeys = []string{
	config.FlagTarget,
	config.FlagTimeout,
	config.FlagEventsProvider,
	config.FlagEventsBrokers,
	config.FlagEventsTopic,
}

const tuiLongDesc string = `Open an interactive terminal board.

The board lists the facts collection and submits the text typed into its
input. Text that could not be submitted is kept as a draft in the
.factboard/ directory and restored the next time the board opens.

Keys:
  enter    submit the typed fact
  ctrl+r   reload the facts
  pgup/dn  scroll the facts
  esc      quit`

const tuiShortDesc string = "Open an interactive terminal board"

func NewTUICmd() *cobra.Command {
	cmder := &tuiCommander{}

	cmd := &cobra.Command{
		Use:   "tui",
		Short: tuiShortDesc,
		Long:  tuiLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.configDir, _ = cmd.Flags().GetString(setup.FlagConfigDir)
			cmder.cfg, err = setup.Settings(cmd, tuiFlagKeys...)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The alternate screen owns the terminal, so only --log-file
			// receives records while the board is open.
			log, closeLog, err := setup.FileLogger(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			cmder.logger = log
			if cmder.logger == nil {
				cmder.logger = logger.Nop()
			}

			return cmder.run(cmd.Context())
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagTarget, &cmder.target)
	config.AddDurationFlag(cmd, config.Flags, config.FlagTimeout, &cmder.timeout)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsProvider, &cmder.eventsProvider)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsBrokers, &cmder.eventsBrokers)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsTopic, &cmder.eventsTopic)

	return cmd
}

func (c *tuiCommander) run(ctx context.Context) error {
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
	field := board.NewField("")
	b, err := board.New(client, display, field,
		board.WithName("tui"),
		board.WithTarget(client.Endpoint()),
		board.WithRenderer(render.NewTerminal(0)),
		board.WithPublisher(publisher),
		board.WithLogger(c.logger),
	)
	if err != nil {
		return err
	}

	ddm := dotdir.NewManager()
	draft, err := ddm.LoadDraft(c.configDir)
	if err != nil {
		c.logger.Warn("ignoring unreadable draft", "error", err)
		draft = nil
	}
	if draft != nil && draft.Target != client.Endpoint() {
		draft = nil
	}

	model := newBoardModel(ctx, b, display, field, draft)

	program := bubbletea.NewProgram(model,
		bubbletea.WithContext(ctx),
		bubbletea.WithAltScreen(),
	)

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("running board: %w", err)
	}

	m, ok := final.(boardModel)
	if !ok {
		return nil
	}
	return c.saveDraft(ddm, m, client.Endpoint())
}

// saveDraft keeps unsubmitted text for the next session, or clears the
// previous draft when the input was left empty.
func (c *tuiCommander) saveDraft(ddm *dotdir.Manager, m boardModel, target string) error {
	text := m.input.Value()
	if text == "" {
		return ddm.ClearDraft(c.configDir)
	}

	draft := &dotdir.Draft{
		Text:    text,
		Target:  target,
		SavedAt: time.Now().UTC(),
	}
	if m.err != nil {
		draft.Error = m.err.Error()
	}
	if err := ddm.SaveDraft(draft, c.configDir); err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}

	return nil
}
