// Package factboardcmder builds the root factboard command: it registers the
// persistent flags shared by every subcommand and attaches the list, add,
// tui, serve, config, init and version commands.
package factboardcmder

import (
	"github.com/spf13/cobra"

	addcmder "github.com/papercomputeco/factboard/cmd/factboard/add"
	configcmder "github.com/papercomputeco/factboard/cmd/factboard/config"
	initcmder "github.com/papercomputeco/factboard/cmd/factboard/init"
	listcmder "github.com/papercomputeco/factboard/cmd/factboard/list"
	servecmder "github.com/papercomputeco/factboard/cmd/factboard/serve"
	"github.com/papercomputeco/factboard/cmd/factboard/setup"
	tuicmder "github.com/papercomputeco/factboard/cmd/factboard/tui"
	versioncmder "github.com/papercomputeco/factboard/cmd/version"
)

const factboardLongDesc string = `factboard shows and grows a shared board of facts.

Facts live in a remote collection reached over HTTP. factboard lists them,
submits new ones and serves a small HTML widget for the same board:
  factboard list          Print the facts
  factboard add <text>    Submit a fact and print the refreshed list
  factboard tui           Open an interactive terminal board
  factboard serve         Run the widget server`

const factboardShortDesc string = "factboard - a board of facts"

func NewFactboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "factboard",
		Short:        factboardShortDesc,
		Long:         factboardLongDesc,
		SilenceUsage: true,
	}

	// Global flags
	setup.AddPersistentFlags(cmd)

	// Add subcommands
	cmd.AddCommand(listcmder.NewListCmd())
	cmd.AddCommand(addcmder.NewAddCmd())
	cmd.AddCommand(tuicmder.NewTUICmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
