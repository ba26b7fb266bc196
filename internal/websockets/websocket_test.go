package websockets

import (
	"context"
	"testing"
	"time"

	"collectgames/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(m *Manager, id string, buffer int) *Client {
	return &Client{ID: id, Manager: m, send: make(chan Message, buffer)}
}

func waitForClients(t *testing.T, m *Manager, count int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return m.hub.clientCount() == count
	}, time.Second, 5*time.Millisecond)
}

func TestManager_BroadcastsCollectionEvents(t *testing.T) {
	bus := events.New(nil)
	manager, err := New(bus)
	require.NoError(t, err)
	defer manager.Close()

	client := newTestClient(manager, "client-1", 4)
	manager.hub.register <- client
	waitForClients(t, manager, 1)

	bus.GameAdded(context.Background(), "Castlevania: Symphony of the Night")

	select {
	case message := <-client.send:
		assert.Equal(t, string(events.GAME_ADDED), message.Type)
		assert.Equal(t, "collection", message.Channel)
		assert.Equal(t, "added", message.Action)
		assert.Equal(t, "Castlevania: Symphony of the Night", message.Data["title"])
	case <-time.After(time.Second):
		t.Fatal("message was not broadcast")
	}
}

func TestManager_DropsSlowClients(t *testing.T) {
	manager, err := New(events.New(nil))
	require.NoError(t, err)
	defer manager.Close()

	slow := newTestClient(manager, "slow", 0)
	manager.hub.register <- slow
	waitForClients(t, manager, 1)

	manager.BroadcastMessage(Message{ID: "m1", Type: string(events.COLLECTION_UPDATED)})
	waitForClients(t, manager, 0)

	_, open := <-slow.send
	assert.False(t, open)
}

func TestManager_UnregisterIsIdempotent(t *testing.T) {
	manager, err := New(events.New(nil))
	require.NoError(t, err)
	defer manager.Close()

	client := newTestClient(manager, "client-2", 1)
	manager.hub.register <- client
	waitForClients(t, manager, 1)

	manager.hub.unregister <- client
	manager.hub.unregister <- client
	waitForClients(t, manager, 0)
}

func TestClient_RoutePingRepliesPong(t *testing.T) {
	manager, err := New(events.New(nil))
	require.NoError(t, err)
	defer manager.Close()

	client := newTestClient(manager, "client-3", 1)
	client.routeMessage(Message{Type: MESSAGE_TYPE_PING})

	reply := <-client.send
	assert.Equal(t, MESSAGE_TYPE_PONG, reply.Type)
}
