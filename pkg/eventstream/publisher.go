// Package eventstream defines the events factboard emits and the publisher
// contract backends implement.
package eventstream

import "context"

// Publisher publishes fact events to an event stream backend.
type Publisher interface {
	PublishFactSubmitted(ctx context.Context, event *FactSubmittedEvent) error
	Close() error
}
