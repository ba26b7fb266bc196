package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

type Channel string

func (c Channel) String() string {
	return string(c)
}

const (
	COLLECTION_CHANNEL Channel = "collection"
)

type MessageType string

const (
	PING               MessageType = "ping"
	PONG               MessageType = "pong"
	ERROR              MessageType = "error"
	COLLECTION_UPDATED MessageType = "collection_updated"
	GAME_ADDED         MessageType = "game_added"
	GAME_REMOVED       MessageType = "game_removed"
)

type Event struct {
	ID        string         `json:"id"`
	Type      MessageType    `json:"type"`
	Channel   Channel        `json:"channel"`
	Action    string         `json:"action,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type EventHandler func(event Event) error

// Notifier announces collection changes. Implementations never fail the
// caller: delivery problems are logged.
type Notifier interface {
	CollectionUpdated(ctx context.Context)
	GameAdded(ctx context.Context, title string)
	GameRemoved(ctx context.Context, title string)
}

// EventBus fans events out to subscribed handlers. With a valkey client the
// events travel through pub/sub so every instance sees them; without one they
// are delivered in-process.
type EventBus struct {
	client    valkey.Client
	logger    logger.Logger
	handlers  map[Channel][]EventHandler
	listening map[Channel]bool
	mutex     sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
}

func New(client valkey.Client) *EventBus {
	ctx, cancel := context.WithCancel(context.Background())

	return &EventBus{
		client:    client,
		logger:    logger.New("EventBus"),
		handlers:  make(map[Channel][]EventHandler),
		listening: make(map[Channel]bool),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (eb *EventBus) Publish(ctx context.Context, channel Channel, event Event) error {
	log := eb.logger.TraceFromContext(ctx).Function("Publish")

	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if event.Channel == "" {
		event.Channel = channel
	}

	if eb.client == nil {
		eb.notifyLocalHandlers(channel, event)
		return nil
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "eventID", event.ID)
	}

	publishCtx, cancel := context.WithTimeout(eb.ctx, 5*time.Second)
	defer cancel()

	err = eb.client.Do(publishCtx, eb.client.B().Publish().Channel(channel.String()).Message(string(eventData)).Build()).
		Error()
	if err != nil {
		return log.Err(
			"failed to publish event to valkey",
			err,
			"channel", channel,
			"eventID", event.ID,
		)
	}

	log.Debug("Event published", "channel", channel, "eventID", event.ID, "eventType", event.Type)
	return nil
}

func (eb *EventBus) Subscribe(channel Channel, handler EventHandler) error {
	log := eb.logger.Function("Subscribe")

	eb.mutex.Lock()
	eb.handlers[channel] = append(eb.handlers[channel], handler)
	startListener := eb.client != nil && !eb.listening[channel]
	if startListener {
		eb.listening[channel] = true
	}
	eb.mutex.Unlock()

	log.Info("Handler subscribed to channel", "channel", channel)

	if startListener {
		go eb.listenToChannel(channel)
	}

	return nil
}

func (eb *EventBus) notifyLocalHandlers(channel Channel, event Event) {
	log := eb.logger.Function("notifyLocalHandlers")

	eb.mutex.RLock()
	handlers := append([]EventHandler(nil), eb.handlers[channel]...)
	eb.mutex.RUnlock()

	for i, handler := range handlers {
		go func(h EventHandler, handlerIndex int) {
			if err := h(event); err != nil {
				log.Er(
					"handler failed",
					err,
					"channel", channel,
					"eventID", event.ID,
					"handlerIndex", handlerIndex,
				)
			}
		}(handler, i)
	}
}

func (eb *EventBus) listenToChannel(channel Channel) {
	log := eb.logger.Function("listenToChannel")

	log.Info("Starting to listen to channel", "channel", channel)

	err := eb.client.Receive(
		eb.ctx,
		eb.client.B().Subscribe().Channel(channel.String()).Build(),
		func(msg valkey.PubSubMessage) {
			var event Event
			if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
				log.Er("failed to unmarshal event", err, "channel", channel, "message", msg.Message)
				return
			}

			eb.notifyLocalHandlers(channel, event)
		},
	)
	if err != nil && eb.ctx.Err() == nil {
		log.Er("failed to listen to channel", err, "channel", channel)
	}
}

func (eb *EventBus) Close() error {
	eb.cancel()
	eb.logger.Function("Close").Info("EventBus closed")
	return nil
}

func (eb *EventBus) CollectionUpdated(ctx context.Context) {
	eb.publishCollectionEvent(ctx, COLLECTION_UPDATED, "updated", nil)
}

func (eb *EventBus) GameAdded(ctx context.Context, title string) {
	eb.publishCollectionEvent(ctx, GAME_ADDED, "added", map[string]any{"title": title})
}

func (eb *EventBus) GameRemoved(ctx context.Context, title string) {
	eb.publishCollectionEvent(ctx, GAME_REMOVED, "removed", map[string]any{"title": title})
}

func (eb *EventBus) publishCollectionEvent(
	ctx context.Context,
	eventType MessageType,
	action string,
	data map[string]any,
) {
	err := eb.Publish(ctx, COLLECTION_CHANNEL, Event{
		Type:   eventType,
		Action: action,
		Data:   data,
	})
	if err != nil {
		eb.logger.TraceFromContext(ctx).
			Function("publishCollectionEvent").
			Warn("failed to publish collection event", "type", eventType, "error", err)
	}
}
