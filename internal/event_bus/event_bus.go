package event_bus

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type EventType string

// Event is the generic envelope used by the bus.
type Event struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      any
}

func NewEvent(ctx context.Context, eventType EventType, data any) Event {
	return Event{
		ctx:       ctx,
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Context returns the context the event was published with.
func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// EventT is a typed envelope used by typed handlers.
type EventT[T any] struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      T
}

func (e EventT[T]) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

type handler func(Event) error

type subscription struct {
	id uint64
	h  handler
}

// EventBus dispatches synchronously: Publish returns after every handler ran,
// in subscription order.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[EventType]map[uint64]handler
	nextID      uint64
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[EventType]map[uint64]handler),
	}
}

// Subscribe registers h for eventType and returns a function removing it.
func (eb *EventBus) Subscribe(eventType EventType, h func(Event) error) (unsubscribe func()) {
	eb.mu.Lock()
	eb.nextID++
	id := eb.nextID
	if eb.subscribers[eventType] == nil {
		eb.subscribers[eventType] = make(map[uint64]handler)
	}
	eb.subscribers[eventType][id] = h
	eb.mu.Unlock()

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()
		if handlers := eb.subscribers[eventType]; handlers != nil {
			delete(handlers, id)
			if len(handlers) == 0 {
				delete(eb.subscribers, eventType)
			}
		}
	}
}

// SubscribeTyped registers a handler that only sees payloads of type T.
// It is a free function because methods cannot take type parameters.
func SubscribeTyped[T any](eb *EventBus, eventType EventType, h func(EventT[T]) error) (unsubscribe func()) {
	wrapper := func(e Event) error {
		payload, ok := e.Data.(T)
		if !ok {
			log.Debugf("EventBus: type mismatch for event %s: expected %T, got %T", eventType, *new(T), e.Data)
			return nil
		}
		return h(EventT[T]{
			ctx:       e.ctx,
			Type:      e.Type,
			Timestamp: e.Timestamp,
			Data:      payload,
		})
	}
	return eb.Subscribe(eventType, wrapper)
}

// Publish runs every handler of e.Type. Handler errors and panics are
// collected and returned together; the remaining handlers still run unless
// the event context is cancelled.
func (eb *EventBus) Publish(e Event) error {
	if err := e.Context().Err(); err != nil {
		return fmt.Errorf("event %s: context cancelled before publish: %w", e.Type, err)
	}

	eb.mu.RLock()
	subs := make([]subscription, 0, len(eb.subscribers[e.Type]))
	for id, h := range eb.subscribers[e.Type] {
		subs = append(subs, subscription{id, h})
	}
	eb.mu.RUnlock()
	sort.Slice(subs, func(i, j int) bool { return subs[i].id < subs[j].id })

	var errs []error
	for _, sub := range subs {
		if err := e.Context().Err(); err != nil {
			errs = append(errs, fmt.Errorf("context cancelled during event processing: %w", err))
			break
		}
		if err := eb.invoke(sub, e); err != nil {
			log.Errorf("EventBus: handler error (ID %d) for event %s: %v", sub.id, e.Type, err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("event %s: %d handler(s) failed: %w", e.Type, len(errs), errors.Join(errs...))
	}
	return nil
}

func (eb *EventBus) invoke(sub subscription, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic (ID %d) for event %s: %v", sub.id, e.Type, r)
		}
	}()
	return sub.h(e)
}
