package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_LocalDelivery(t *testing.T) {
	bus := New(nil)
	defer func() { _ = bus.Close() }()

	received := make(chan Event, 1)
	require.NoError(t, bus.Subscribe(COLLECTION_CHANNEL, func(event Event) error {
		received <- event
		return nil
	}))

	bus.GameAdded(context.Background(), "Super Metroid")

	select {
	case event := <-received:
		assert.Equal(t, GAME_ADDED, event.Type)
		assert.Equal(t, COLLECTION_CHANNEL, event.Channel)
		assert.Equal(t, "Super Metroid", event.Data["title"])
		assert.NotEmpty(t, event.ID)
		assert.False(t, event.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestEventBus_PublishWithoutSubscribers(t *testing.T) {
	bus := New(nil)
	defer func() { _ = bus.Close() }()

	assert.NoError(t, bus.Publish(context.Background(), COLLECTION_CHANNEL, Event{Type: COLLECTION_UPDATED}))
}

func TestEventBus_ImplementsNotifier(t *testing.T) {
	var notifier Notifier = New(nil)
	notifier.CollectionUpdated(context.Background())
	notifier.GameRemoved(context.Background(), "Ecco the Dolphin")
}
