package websockets

import (
	"sync"
)

type Hub struct {
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	clients    map[string]*Client
	mutex      sync.RWMutex
}

func newHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, SEND_CHANNEL_SIZE),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string]*Client),
	}
}

func (h *Hub) run(m *Manager) {
	for {
		select {
		case client := <-h.register:
			m.registerClient(client)

		case client := <-h.unregister:
			m.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message, m)

		case <-h.done:
			return
		}
	}
}

func (h *Hub) stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// join registers a client unless the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) clientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (m *Manager) registerClient(client *Client) {
	m.hub.mutex.Lock()
	m.hub.clients[client.ID] = client
	m.hub.mutex.Unlock()

	m.log.Function("registerClient").Info("Client registered", "clientID", client.ID)
}

func (m *Manager) unregisterClient(client *Client) {
	m.hub.mutex.Lock()
	_, exists := m.hub.clients[client.ID]
	delete(m.hub.clients, client.ID)
	m.hub.mutex.Unlock()

	if exists {
		client.closeSend()
		m.log.Function("unregisterClient").Info("Client unregistered", "clientID", client.ID)
	}
}

// broadcastMessage never blocks the hub: a client whose buffer is full misses
// the message and is dropped.
func (h *Hub) broadcastMessage(message Message, m *Manager) {
	log := m.log.Function("broadcastMessage")

	h.mutex.RLock()
	var slow []*Client
	sentCount := 0
	for _, client := range h.clients {
		select {
		case client.send <- message:
			sentCount++
		default:
			slow = append(slow, client)
		}
	}
	totalClients := len(h.clients)
	h.mutex.RUnlock()

	for _, client := range slow {
		log.Warn("Client too slow, disconnecting", "clientID", client.ID)
		m.unregisterClient(client)
	}

	log.Debug(
		"Broadcast complete",
		"messageID", message.ID,
		"type", message.Type,
		"sentTo", sentCount,
		"totalClients", totalClients,
	)
}
