package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_PublishReachesAllSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var first, second bool
	d.Subscribe(EventUserLoggedIn, func(context.Context, Event) error {
		first = true
		return errors.New("handler failure")
	})
	d.Subscribe(EventUserLoggedIn, func(context.Context, Event) error {
		second = true
		return nil
	})

	err := d.Publish(context.Background(), Event{
		ID:        "evt-1",
		Type:      EventUserLoggedIn,
		UserID:    7,
		Timestamp: time.Now(),
	})
	assert.NoError(t, err)
	assert.True(t, first, "first handler invoked despite returning error")
	assert.True(t, second, "second handler invoked despite earlier failure")
}

func TestDispatcher_PublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventTokensSwept}))
}

func TestDispatcher_SubscriberScopedByType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var called bool
	d.Subscribe(EventUserLoggedOut, func(context.Context, Event) error {
		called = true
		return nil
	})

	_ = d.Publish(context.Background(), Event{Type: EventUserLoggedIn})
	assert.False(t, called)
}
