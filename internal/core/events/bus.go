package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type Event interface {
	EventType() string
	EventID() string
	OccurredAt() time.Time
}

type Handler func(ctx context.Context, event Event) error

// Bus is a minimal in-process publish/subscribe dispatcher. Mutating services
// publish compliance events on it; the audit recorder subscribes.
type Bus struct {
	handlers map[string][]Handler
	logger   *slog.Logger
	mu       sync.RWMutex
}

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.logger.Debug("event handler registered",
		"event_type", eventType,
		"total_handlers", len(b.handlers[eventType]))
}

// Publish dispatches asynchronously; handler failures are logged and dropped.
func (b *Bus) Publish(ctx context.Context, event Event) {
	for _, handler := range b.snapshot(event.EventType()) {
		go func(h Handler) {
			if err := h(ctx, event); err != nil {
				b.logger.Error("event handler failed",
					"event_type", event.EventType(),
					"event_id", event.EventID(),
					"error", err)
			}
		}(handler)
	}
}

// PublishSync runs every handler before returning, so side effects such as
// audit entries land together with the mutation that caused them.
func (b *Bus) PublishSync(ctx context.Context, event Event) error {
	for _, handler := range b.snapshot(event.EventType()) {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("event handler failed",
				"event_type", event.EventType(),
				"event_id", event.EventID(),
				"error", err)
			return fmt.Errorf("handler failed for event %s: %w", event.EventType(), err)
		}
	}
	return nil
}

func (b *Bus) snapshot(eventType string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.handlers[eventType]
}
