// Package worker provides an asynchronous worker pool that publishes fact
// events through another eventstream.Publisher.
//
// The pool decouples event delivery from the submit path so that a slow or
// unavailable broker never delays the reload that follows a submission.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/papercomputeco/factboard/pkg/eventstream"
	"github.com/papercomputeco/factboard/pkg/logger"
)

var (
	defaultNumWorkers     uint = 2
	defaultJobQueueSize   uint = 256
	defaultPublishTimeout      = 10 * time.Second
)

var (
	// ErrQueueFull is returned when an event was dropped because every queue
	// slot was taken.
	ErrQueueFull = errors.New("event queue full, event dropped")

	// ErrClosed is returned for events published after Close.
	ErrClosed = errors.New("event pool closed")
)

// Config is the configuration options for the worker pool.
type Config struct {
	// Publisher delivers each queued event.
	Publisher eventstream.Publisher

	// NumWorkers is the number of background workers in the pool.
	NumWorkers uint

	// QueueSize is the capacity of the buffered job channel (defaults to 256).
	QueueSize uint

	// PublishTimeout bounds a single delivery (defaults to 10s).
	PublishTimeout time.Duration

	// Logger defaults to a no-op logger.
	Logger *slog.Logger
}

// Pool publishes events asynchronously via a worker pool.
type Pool struct {
	publisher eventstream.Publisher
	timeout   time.Duration
	queue     chan *eventstream.FactSubmittedEvent
	wg        sync.WaitGroup
	logger    *slog.Logger

	// mu guards closed against concurrent sends on queue.
	mu     sync.RWMutex
	closed bool
}

// NewPool creates a new Pool and starts its worker goroutines.
func NewPool(c Config) (*Pool, error) {
	if c.Publisher == nil {
		return nil, errors.New("publisher is required")
	}

	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}

	if c.QueueSize == 0 {
		c.QueueSize = defaultJobQueueSize
	}

	if c.PublishTimeout <= 0 {
		c.PublishTimeout = defaultPublishTimeout
	}

	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	log := c.Logger
	if log == nil {
		log = logger.Nop()
	}

	wp := &Pool{
		publisher: c.Publisher,
		timeout:   c.PublishTimeout,
		queue:     make(chan *eventstream.FactSubmittedEvent, c.QueueSize),
		logger:    log,
	}

	wp.wg.Add(int(c.NumWorkers))
	for i := range c.NumWorkers {
		go wp.worker(i)
	}

	return wp, nil
}

// PublishFactSubmitted queues event for delivery. It never blocks: when the
// queue is full the event is dropped and ErrQueueFull returned.
func (p *Pool) PublishFactSubmitted(_ context.Context, event *eventstream.FactSubmittedEvent) error {
	if event == nil {
		return eventstream.ErrNilEvent
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}

	select {
	case p.queue <- event:
		p.logger.Debug("event queued", "event_id", event.EventID)
		return nil
	default:
		p.logger.Error("event not queued, queue full, event dropped", "event_id", event.EventID)
		return ErrQueueFull
	}
}

// Close stops accepting events, waits for queued events to be delivered and
// then closes the wrapped publisher.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	return p.publisher.Close()
}

// worker is the inner worker thread that continuously pulls events off the queue
func (p *Pool) worker(id uint) {
	defer p.wg.Done()
	p.logger.Debug("event worker started", "worker_id", id)

	for event := range p.queue {
		p.deliver(event)
	}

	p.logger.Debug("event worker stopped", "worker_id", id)
}

func (p *Pool) deliver(event *eventstream.FactSubmittedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.publisher.PublishFactSubmitted(ctx, event); err != nil {
		p.logger.Warn("failed to publish fact event",
			"event_id", event.EventID,
			"error", err,
		)
		return
	}

	p.logger.Debug("published fact event", "event_id", event.EventID)
}
