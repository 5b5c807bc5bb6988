// Package eventbus delivers stored events from the command side to projection
// handlers inside the process.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aitlahcen/comptes/pkg/eventstore"
)

// Handler consumes one stored event. Returning an error stops the publish for
// the remaining handlers of that event; delivery is at-least-once, so handlers
// must be idempotent.
type Handler func(ctx context.Context, e eventstore.StoredEvent) error

// Bus is the contract between the repository (publisher) and projections
// (subscribers). Events for one aggregate are delivered in append order.
type Bus interface {
	Publish(ctx context.Context, events []eventstore.StoredEvent) error
	Subscribe(eventType string, h Handler)
}

// InProcessBus is a synchronous Bus: Publish invokes subscribers inline, so
// per-aggregate ordering follows directly from the repository's append order.
type InProcessBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

// NewInProcessBus returns an empty bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	return &InProcessBus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Publish implements Bus. The first handler error is returned; earlier events
// in the batch stay delivered, since appended events are facts either way.
func (b *InProcessBus) Publish(ctx context.Context, events []eventstore.StoredEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, e := range events {
		b.logger.Debug("publishing event",
			"event_type", e.Type,
			"aggregate_id", e.AggregateID,
			"version", e.Version,
		)
		for _, h := range b.handlers[e.Type] {
			if err := h(ctx, e); err != nil {
				b.logger.Error("event handler failed",
					"event_type", e.Type,
					"aggregate_id", e.AggregateID,
					"version", e.Version,
					"error", err,
				)
				return err
			}
		}
	}
	return nil
}

// Subscribe implements Bus.
func (b *InProcessBus) Subscribe(eventType string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}
