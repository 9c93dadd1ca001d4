package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/papercomputeco/factboard/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the FACTBOARD_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (FACTBOARD_TARGET_URL, FACTBOARD_WIDGET_LISTEN, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("FACTBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// FromViper resolves the effective Config from v.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Version: v.GetInt("version"),
		Target: TargetConfig{
			URL:     v.GetString("target.url"),
			Timeout: Duration(v.GetDuration("target.timeout")),
		},
		Widget: WidgetConfig{
			Listen: v.GetString("widget.listen"),
			Title:  v.GetString("widget.title"),
		},
		Events: EventsConfig{
			Provider: v.GetString("events.provider"),
			Brokers:  brokers(v.Get("events.brokers")),
			Topic:    v.GetString("events.topic"),
		},
		MCP: MCPConfig{
			Enabled: v.GetBool("mcp.enabled"),
		},
	}
}

// brokers accepts a TOML array or a comma-separated string from the
// environment.
func brokers(raw any) []string {
	switch b := raw.(type) {
	case string:
		return SplitList(b)
	case []string:
		return b
	case []any:
		out := make([]string, 0, len(b))
		for _, item := range b {
			out = append(out, SplitList(fmt.Sprint(item))...)
		}
		return out
	default:
		return nil
	}
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Target
	v.SetDefault("target.url", d.Target.URL)
	v.SetDefault("target.timeout", time.Duration(d.Target.Timeout))

	// Widget
	v.SetDefault("widget.listen", d.Widget.Listen)
	v.SetDefault("widget.title", d.Widget.Title)

	// Events
	v.SetDefault("events.provider", d.Events.Provider)
	v.SetDefault("events.brokers", d.Events.Brokers)
	v.SetDefault("events.topic", d.Events.Topic)

	// MCP
	v.SetDefault("mcp.enabled", d.MCP.Enabled)
}
