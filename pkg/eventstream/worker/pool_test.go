package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/factboard/pkg/eventstream"
	"github.com/papercomputeco/factboard/pkg/fact"
)

// fakePublisher records delivered events. When gate is set each delivery
// waits for it to close.
type fakePublisher struct {
	mu     sync.Mutex
	events []*eventstream.FactSubmittedEvent
	closed bool
	err    error
	gate   chan struct{}
}

func (f *fakePublisher) PublishFactSubmitted(ctx context.Context, event *eventstream.FactSubmittedEvent) error {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return f.err
}

func (f *fakePublisher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakePublisher) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Fact.Text)
	}
	return out
}

func newEvent(text string) *eventstream.FactSubmittedEvent {
	return eventstream.NewFactSubmitted(eventstream.EventSource{Board: "test"}, fact.New(text), time.Now())
}

var _ = Describe("Worker Pool", func() {
	var (
		inner *fakePublisher
		ctx   context.Context
	)

	BeforeEach(func() {
		inner = &fakePublisher{}
		ctx = context.Background()
	})

	It("requires a publisher", func() {
		_, err := NewPool(Config{})
		Expect(err).To(MatchError("publisher is required"))
	})

	It("delivers every queued event before Close returns", func() {
		wp, err := NewPool(Config{Publisher: inner})
		Expect(err).NotTo(HaveOccurred())

		for _, text := range []string{"a", "b", "c"} {
			Expect(wp.PublishFactSubmitted(ctx, newEvent(text))).To(Succeed())
		}

		Expect(wp.Close()).To(Succeed())
		Expect(inner.texts()).To(ConsistOf("a", "b", "c"))
		Expect(inner.closed).To(BeTrue())
	})

	It("preserves order with a single worker", func() {
		wp, err := NewPool(Config{Publisher: inner, NumWorkers: 1})
		Expect(err).NotTo(HaveOccurred())

		for _, text := range []string{"a", "b", "c"} {
			Expect(wp.PublishFactSubmitted(ctx, newEvent(text))).To(Succeed())
		}

		Expect(wp.Close()).To(Succeed())
		Expect(inner.texts()).To(Equal([]string{"a", "b", "c"}))
	})

	It("drops events when the queue is full", func() {
		inner.gate = make(chan struct{})
		wp, err := NewPool(Config{Publisher: inner, NumWorkers: 1, QueueSize: 1})
		Expect(err).NotTo(HaveOccurred())

		// The worker holds the first event at the gate, the second fills
		// the queue.
		Expect(wp.PublishFactSubmitted(ctx, newEvent("held"))).To(Succeed())
		Eventually(func() int { return len(wp.queue) }).Should(BeZero())
		Expect(wp.PublishFactSubmitted(ctx, newEvent("queued"))).To(Succeed())

		Expect(wp.PublishFactSubmitted(ctx, newEvent("dropped"))).To(MatchError(ErrQueueFull))

		close(inner.gate)
		Expect(wp.Close()).To(Succeed())
		Expect(inner.texts()).To(Equal([]string{"held", "queued"}))
	})

	It("keeps working when a delivery fails", func() {
		inner.err = errors.New("broker down")
		wp, err := NewPool(Config{Publisher: inner, NumWorkers: 1})
		Expect(err).NotTo(HaveOccurred())

		Expect(wp.PublishFactSubmitted(ctx, newEvent("a"))).To(Succeed())
		Expect(wp.PublishFactSubmitted(ctx, newEvent("b"))).To(Succeed())
		Expect(wp.Close()).To(Succeed())
		Expect(inner.texts()).To(Equal([]string{"a", "b"}))
	})

	It("rejects nil events and events after Close", func() {
		wp, err := NewPool(Config{Publisher: inner})
		Expect(err).NotTo(HaveOccurred())

		Expect(wp.PublishFactSubmitted(ctx, nil)).To(MatchError(eventstream.ErrNilEvent))

		Expect(wp.Close()).To(Succeed())
		Expect(wp.Close()).To(Succeed())
		Expect(wp.PublishFactSubmitted(ctx, newEvent("late"))).To(MatchError(ErrClosed))
	})
})
