package events

import (
	"context"
	"sync"

	"streamgate/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeUserCreated    EventType = "user_created"
	EventTypeStreamCreated  EventType = "stream_created"
	EventTypeStreamUpdated  EventType = "stream_updated"
	EventTypeMessageCreated EventType = "message_created"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// UserCreatedEvent fires when a wallet address connects for the first time
type UserCreatedEvent struct {
	User *models.User
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// StreamCreatedEvent fires after a new payment stream is persisted
type StreamCreatedEvent struct {
	Stream *models.Stream
}

func (e StreamCreatedEvent) Type() EventType {
	return EventTypeStreamCreated
}

// StreamUpdatedEvent fires after a stream mutation (pause/resume/progress)
type StreamUpdatedEvent struct {
	Stream *models.Stream
}

func (e StreamUpdatedEvent) Type() EventType {
	return EventTypeStreamUpdated
}

// MessageCreatedEvent fires after a chat message is persisted. The payload
// carries the author's profile so subscribers can fan it out without another
// lookup.
type MessageCreatedEvent struct {
	Message *models.MessageWithUser
}

func (e MessageCreatedEvent) Type() EventType {
	return EventTypeMessageCreated
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Publish emits an event with a background context. It satisfies the
// service layer's EventPublisher interface.
func (b *Bus) Publish(event Event) {
	b.Emit(context.Background(), event)
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	// Call handlers asynchronously to avoid blocking
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}
