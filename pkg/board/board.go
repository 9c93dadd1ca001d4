// Package board implements the fact board: the loop between a display
// surface, an input surface and the remote facts collection.
//
// A Board never caches facts. Every render replaces the display from a fresh
// fetch, and a submission is followed by a full reload rather than a local
// append.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/papercomputeco/factboard/pkg/eventstream"
	"github.com/papercomputeco/factboard/pkg/eventstream/nop"
	"github.com/papercomputeco/factboard/pkg/fact"
	"github.com/papercomputeco/factboard/pkg/logger"
	"github.com/papercomputeco/factboard/pkg/render"
	"github.com/papercomputeco/factboard/pkg/utils"
)

// Collection is the remote facts collection. *facts.Client implements it.
type Collection interface {
	List(ctx context.Context) ([]fact.Fact, error)
	Create(ctx context.Context, text string) error
}

// Renderer turns facts into display content.
type Renderer interface {
	Render(facts []fact.Fact) string
}

// Board wires a collection to one display and one input.
type Board struct {
	name       string
	target     string
	collection Collection
	display    Display
	input      Input
	renderer   Renderer
	publisher  eventstream.Publisher
	logger     *slog.Logger
	now        func() time.Time

	// mu orders display replacement. issued counts started loads and
	// rendered is the sequence number of the load currently on display.
	mu       sync.Mutex
	issued   uint64
	rendered uint64
}

// Option configures a Board.
type Option func(*Board)

// WithName labels the board in logs and events.
func WithName(name string) Option {
	return func(b *Board) {
		b.name = name
	}
}

// WithTarget records the collection URL in emitted events.
func WithTarget(target string) Option {
	return func(b *Board) {
		b.target = target
	}
}

// WithRenderer replaces the default HTML block renderer.
func WithRenderer(r Renderer) Option {
	return func(b *Board) {
		if r != nil {
			b.renderer = r
		}
	}
}

// WithPublisher emits a fact submitted event after each accepted submission.
func WithPublisher(p eventstream.Publisher) Option {
	return func(b *Board) {
		if p != nil {
			b.publisher = p
		}
	}
}

// WithLogger sets the board logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

// New creates a board over the given collaborators. All three are required.
func New(collection Collection, display Display, input Input, opts ...Option) (*Board, error) {
	if collection == nil {
		return nil, errors.New("collection is required")
	}
	if display == nil {
		return nil, errors.New("display is required")
	}
	if input == nil {
		return nil, errors.New("input is required")
	}

	b := &Board{
		name:       "board",
		collection: collection,
		display:    display,
		input:      input,
		renderer:   render.NewHTML(),
		publisher:  nop.NewPublisher(),
		logger:     logger.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("board", b.name)

	return b, nil
}

// Start performs the initial load.
func (b *Board) Start(ctx context.Context) error {
	return b.Load(ctx)
}

// Load fetches the collection and replaces the display with one rendered
// block per fact. On failure the display keeps its previous content.
func (b *Board) Load(ctx context.Context) error {
	_, err := b.LoadFacts(ctx)
	return err
}

// LoadFacts is Load that also returns the fetched facts.
//
// When loads overlap, a result that arrives after a later-issued load has
// already been rendered is not rendered; its facts are still returned.
func (b *Board) LoadFacts(ctx context.Context) ([]fact.Fact, error) {
	b.mu.Lock()
	b.issued++
	seq := b.issued
	b.mu.Unlock()

	list, err := b.collection.List(ctx)
	if err != nil {
		b.logger.Warn("failed to load facts", "error", err)
		return nil, fmt.Errorf("loading facts: %w", err)
	}

	content := b.renderer.Render(list)

	b.mu.Lock()
	defer b.mu.Unlock()

	if seq < b.rendered {
		b.logger.Debug("discarding stale load",
			"seq", seq,
			"rendered", b.rendered,
		)
		return list, nil
	}

	b.rendered = seq
	b.display.Replace(content)

	b.logger.Debug("rendered facts", "count", len(list), "seq", seq)
	return list, nil
}

// Submit sends the input value as a new fact, clears the input and reloads.
//
// Empty text is submitted like any other. If the collection rejects the fact
// or cannot be reached, the input keeps its value, no reload happens and the
// error is returned.
func (b *Board) Submit(ctx context.Context) error {
	_, err := b.SubmitFacts(ctx)
	return err
}

// SubmitFacts is Submit that also returns the facts of the reload.
func (b *Board) SubmitFacts(ctx context.Context) ([]fact.Fact, error) {
	text := b.input.Value()

	if err := b.collection.Create(ctx, text); err != nil {
		b.logger.Warn("failed to submit fact",
			"text", utils.Truncate(text, 64),
			"error", err,
		)
		return nil, fmt.Errorf("submitting fact: %w", err)
	}

	b.input.Clear()
	b.publish(ctx, text)

	b.logger.Info("fact submitted", "text", utils.Truncate(text, 64))

	return b.LoadFacts(ctx)
}

func (b *Board) publish(ctx context.Context, text string) {
	event := eventstream.NewFactSubmitted(
		eventstream.EventSource{Board: b.name, Target: b.target},
		fact.New(text),
		b.now(),
	)
	if err := b.publisher.PublishFactSubmitted(ctx, event); err != nil {
		b.logger.Warn("failed to publish fact event",
			"event_id", event.EventID,
			"error", err,
		)
	}
}
