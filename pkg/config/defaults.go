package config

import "time"

const (
	defaultTargetURL     = "https://the-abyss-backend.up.railway.app"
	defaultTargetTimeout = 15 * time.Second

	defaultWidgetListen = ":8080"
	defaultWidgetTitle  = "The Abyss"

	defaultEventsProvider = EventsProviderNop
	defaultEventsTopic    = "factboard.facts"
)

// Events providers.
const (
	EventsProviderNop   = "nop"
	EventsProviderKafka = "kafka"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Target: TargetConfig{
			URL:     defaultTargetURL,
			Timeout: Duration(defaultTargetTimeout),
		},
		Widget: WidgetConfig{
			Listen: defaultWidgetListen,
			Title:  defaultWidgetTitle,
		},
		Events: EventsConfig{
			Provider: defaultEventsProvider,
			Topic:    defaultEventsTopic,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
	}
}
