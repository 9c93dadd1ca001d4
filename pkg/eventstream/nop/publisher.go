// Package nop provides the publisher used when event streaming is disabled.
package nop

import (
	"context"

	"github.com/papercomputeco/factboard/pkg/eventstream"
)

// Publisher validates events and otherwise discards them.
type Publisher struct{}

// NewPublisher creates a new no-op publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// PublishFactSubmitted rejects nil events and drops the rest.
func (p *Publisher) PublishFactSubmitted(_ context.Context, event *eventstream.FactSubmittedEvent) error {
	if event == nil {
		return eventstream.ErrNilEvent
	}
	return nil
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}
