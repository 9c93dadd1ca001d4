package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config represents the persistent factboard configuration stored as
// config.toml in the .factboard/ directory. The TOML layout uses sections
// for logical grouping.
type Config struct {
	Version int          `toml:"version"`
	Target  TargetConfig `toml:"target"`
	Widget  WidgetConfig `toml:"widget"`
	Events  EventsConfig `toml:"events"`
	MCP     MCPConfig    `toml:"mcp"`
}

// TargetConfig locates the remote facts collection.
type TargetConfig struct {
	// URL is the backend base URL; /facts is appended.
	URL     string   `toml:"url,omitempty"`
	Timeout Duration `toml:"timeout,omitempty"`
}

// WidgetConfig holds widget server settings.
type WidgetConfig struct {
	Listen string `toml:"listen,omitempty"`
	Title  string `toml:"title,omitempty"`
}

// EventsConfig selects where fact submitted events go.
type EventsConfig struct {
	Provider string   `toml:"provider,omitempty"`
	Brokers  []string `toml:"brokers,omitempty"`
	Topic    string   `toml:"topic,omitempty"`
}

// MCPConfig toggles the /mcp endpoint of the widget server.
type MCPConfig struct {
	Enabled bool `toml:"enabled"`
}

// Duration is a time.Duration stored as a string ("15s") in TOML.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"target.url": {
		get: func(c *Config) string { return c.Target.URL },
		set: func(c *Config, v string) error { c.Target.URL = v; return nil },
	},
	"target.timeout": {
		get: func(c *Config) string {
			if c.Target.Timeout == 0 {
				return ""
			}
			return c.Target.Timeout.String()
		},
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid value for target.timeout: %w", err)
			}
			if d < 0 {
				return fmt.Errorf("invalid value for target.timeout: %s is negative", v)
			}
			c.Target.Timeout = Duration(d)
			return nil
		},
	},
	"widget.listen": {
		get: func(c *Config) string { return c.Widget.Listen },
		set: func(c *Config, v string) error { c.Widget.Listen = v; return nil },
	},
	"widget.title": {
		get: func(c *Config) string { return c.Widget.Title },
		set: func(c *Config, v string) error { c.Widget.Title = v; return nil },
	},
	"events.provider": {
		get: func(c *Config) string { return c.Events.Provider },
		set: func(c *Config, v string) error {
			switch v {
			case EventsProviderNop, EventsProviderKafka:
				c.Events.Provider = v
				return nil
			default:
				return fmt.Errorf("invalid value for events.provider: %q (available: %s, %s)", v, EventsProviderNop, EventsProviderKafka)
			}
		},
	},
	"events.brokers": {
		get: func(c *Config) string { return strings.Join(c.Events.Brokers, ",") },
		set: func(c *Config, v string) error { c.Events.Brokers = SplitList(v); return nil },
	},
	"events.topic": {
		get: func(c *Config) string { return c.Events.Topic },
		set: func(c *Config, v string) error { c.Events.Topic = v; return nil },
	},
	"mcp.enabled": {
		get: func(c *Config) string { return strconv.FormatBool(c.MCP.Enabled) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for mcp.enabled: %w", err)
			}
			c.MCP.Enabled = b
			return nil
		},
	},
}

// SplitList splits a comma-separated value, dropping blanks.
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
