// Package configcmder provides the config command for managing persistent
// factboard configuration stored in the .factboard/ directory.
package configcmder

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/factboard/cmd/factboard/setup"
	"github.com/papercomputeco/factboard/pkg/cliui"
	"github.com/papercomputeco/factboard/pkg/config"
)

const configLongDesc string = `Manage persistent factboard configuration.

Configuration is stored as config.toml in the .factboard/ directory and
provides default values for command flags. FACTBOARD_* environment variables
override the file, and CLI flags always take precedence over both.

Keys use dotted notation matching the TOML section structure:
  target.url, target.timeout,
  widget.listen, widget.title,
  events.provider, events.brokers, events.topic,
  mcp.enabled

Use subcommands to get, set, or list configuration values:
  factboard config set <key> <value>    Set a configuration value
  factboard config get <key>            Get a configuration value
  factboard config list                 List all configuration values

Examples:
  factboard config set target.url http://localhost:3000
  factboard config set events.brokers kafka-1:9092,kafka-2:9092
  factboard config get target.url
  factboard config list`

const configShortDesc string = "Manage persistent factboard configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func validateKey(key string) error {
	if !config.IsValidConfigKey(key) {
		return fmt.Errorf("unknown config key: %q\n\nValid keys: %s",
			key, strings.Join(config.ValidConfigKeys(), ", "))
	}
	return nil
}

func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.ValidConfigKeys(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func configDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString(setup.FlagConfigDir)
	return dir
}

func printTarget(out io.Writer, cfger *config.Configer) {
	target := cfger.GetTarget()
	if target != "" {
		fmt.Fprintf(out, "\n  %s %s\n\n",
			cliui.KeyStyle.Render("Config file:"),
			cliui.DimStyle.Render(target),
		)
		return
	}
	fmt.Fprintf(out, "\n  %s\n\n", cliui.DimStyle.Render("No config file found. Using defaults."))
}
