package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"streamgate/models"

	"github.com/stretchr/testify/assert"
)

func TestBus_SubscribeAndEmit(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(1)

	var mu sync.Mutex
	var received Event

	bus.Subscribe(EventTypeUserCreated, func(ctx context.Context, event Event) {
		mu.Lock()
		received = event
		mu.Unlock()
		wg.Done()
	})

	user := &models.User{ID: "user-1", Address: "0xabc"}
	bus.Emit(context.Background(), UserCreatedEvent{User: user})

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	created, ok := received.(UserCreatedEvent)
	assert.True(t, ok)
	assert.Equal(t, user, created.User)
}

func TestBus_MultipleHandlers(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	calls := 0

	handler := func(ctx context.Context, event Event) {
		mu.Lock()
		calls++
		mu.Unlock()
		wg.Done()
	}

	bus.Subscribe(EventTypeMessageCreated, handler)
	bus.Subscribe(EventTypeMessageCreated, handler)

	bus.Emit(context.Background(), MessageCreatedEvent{
		Message: &models.MessageWithUser{Message: models.Message{ID: "msg-1"}},
	})

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, calls)
}

func TestBus_OnlyMatchingTypeDispatched(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(1)

	streamCalls := make(chan EventType, 2)

	bus.Subscribe(EventTypeStreamCreated, func(ctx context.Context, event Event) {
		streamCalls <- event.Type()
		wg.Done()
	})
	bus.Subscribe(EventTypeUserCreated, func(ctx context.Context, event Event) {
		streamCalls <- event.Type()
	})

	bus.Emit(context.Background(), StreamCreatedEvent{Stream: &models.Stream{ID: "stream-1"}})

	wg.Wait()

	assert.Equal(t, EventTypeStreamCreated, <-streamCalls)
	select {
	case unexpected := <-streamCalls:
		t.Fatalf("unexpected dispatch: %s", unexpected)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(1)

	bus.Subscribe(EventTypeStreamUpdated, func(ctx context.Context, event Event) {
		panic("handler failure")
	})
	bus.Subscribe(EventTypeStreamUpdated, func(ctx context.Context, event Event) {
		wg.Done()
	})

	bus.Emit(context.Background(), StreamUpdatedEvent{Stream: &models.Stream{ID: "stream-1"}})

	// Completes only if the second handler still ran.
	wg.Wait()
}

func TestBus_PublishUsesBackgroundContext(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(1)

	bus.Subscribe(EventTypeUserCreated, func(ctx context.Context, event Event) {
		assert.NoError(t, ctx.Err())
		wg.Done()
	})

	bus.Publish(UserCreatedEvent{User: &models.User{ID: "user-1"}})

	wg.Wait()
}
