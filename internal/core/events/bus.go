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
	Payload() interface{}
}

// BaseEvent carries the envelope shared by every event type.
type BaseEvent struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
func (e BaseEvent) Payload() interface{}  { return e.Data }

type Handler func(ctx context.Context, event Event) error

// Publisher is what services depend on; *EventBus satisfies it.
type Publisher interface {
	PublishSync(ctx context.Context, event Event) error
}

type subscription struct {
	handler Handler
	async   bool
}

// EventBus dispatches events in process. Inline subscribers run on the
// publishing goroutine; async subscribers run in the background and are
// tracked so Drain can wait for them on shutdown.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]subscription
	inflight sync.WaitGroup
	logger   *slog.Logger
}

func NewEventBus(logger *slog.Logger) *EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventBus{
		handlers: make(map[string][]subscription),
		logger:   logger,
	}
}

func (eb *EventBus) Subscribe(eventType string, handler Handler) {
	eb.SubscribeAll([]string{eventType}, handler)
}

// SubscribeAll registers one inline handler for several event types.
func (eb *EventBus) SubscribeAll(eventTypes []string, handler Handler) {
	eb.register(eventTypes, subscription{handler: handler})
}

// SubscribeAsync registers a background handler. Its failures are logged and
// never reach the publisher.
func (eb *EventBus) SubscribeAsync(eventTypes []string, handler Handler) {
	eb.register(eventTypes, subscription{handler: handler, async: true})
}

func (eb *EventBus) register(eventTypes []string, sub subscription) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for _, eventType := range eventTypes {
		eb.handlers[eventType] = append(eb.handlers[eventType], sub)
	}
	eb.logger.Info("event handler registered", "event_types", eventTypes, "async", sub.async)
}

// PublishSync hands the event to the async subscribers, then runs the inline
// ones in registration order and stops at the first error.
func (eb *EventBus) PublishSync(ctx context.Context, event Event) error {
	inline, background := eb.subscribers(event)

	if len(background) > 0 {
		// background handlers outlive the request that published the event
		detached := context.WithoutCancel(ctx)
		eb.inflight.Add(len(background))
		for _, handler := range background {
			go func(h Handler) {
				defer eb.inflight.Done()
				if err := h(detached, event); err != nil {
					eb.logFailure(event, err)
				}
			}(handler)
		}
	}

	for i, handler := range inline {
		if err := handler(ctx, event); err != nil {
			eb.logFailure(event, err)
			return fmt.Errorf("subscriber %d of %s: %w", i, event.EventType(), err)
		}
	}
	return nil
}

// Drain blocks until async deliveries finish or ctx is done.
func (eb *EventBus) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		eb.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (eb *EventBus) subscribers(event Event) (inline, background []Handler) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	registered := eb.handlers[event.EventType()]
	if len(registered) == 0 {
		eb.logger.Debug("no handlers for event type", "event_type", event.EventType())
		return nil, nil
	}

	for _, sub := range registered {
		if sub.async {
			background = append(background, sub.handler)
		} else {
			inline = append(inline, sub.handler)
		}
	}

	eb.logger.Debug("publishing event",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"inline", len(inline),
		"async", len(background))
	return inline, background
}

func (eb *EventBus) logFailure(event Event, err error) {
	eb.logger.Error("event handler failed",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"error", err)
}
