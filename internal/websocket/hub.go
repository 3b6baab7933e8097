package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/lensfolio/printshop-backend/internal/app/service"
	"github.com/lensfolio/printshop-backend/pkg/logger"
)

const (
	// Per-client inbound message budget.
	maxMessagesPerSecond = 10

	sendBufferSize = 64
)

// ClientMessage lets a subscriber narrow the event types it receives.
// An empty Events list means everything.
type ClientMessage struct {
	Type   string   `json:"type"` // subscribe
	Events []string `json:"events"`
}

// Client is one catalog event subscriber.
type Client struct {
	Hub  *Hub
	Conn *Conn
	Send chan []byte

	mu     sync.RWMutex
	filter map[string]bool

	MessageCount  int
	LastResetTime time.Time
	RateMu        sync.Mutex
}

func NewClient(hub *Hub, conn *Conn) *Client {
	return &Client{
		Hub:  hub,
		Conn: conn,
		Send: make(chan []byte, sendBufferSize),
	}
}

func (c *Client) wants(eventType string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.filter) == 0 || c.filter[eventType]
}

type broadcastMessage struct {
	eventType string
	payload   []byte
}

// Hub fans catalog change events out to every connected subscriber. It
// implements service.EventPublisher.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastMessage
	done       chan struct{}

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan *broadcastMessage, 1024),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("Catalog subscriber registered", map[string]interface{}{
				"subscribers": total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("Catalog subscriber unregistered", map[string]interface{}{
				"subscribers": total,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				if !client.wants(message.eventType) {
					continue
				}
				select {
				case client.Send <- message.payload:
				default:
					// slow consumer, drop it
					go h.Unregister(client)
					logger.Warn("Subscriber send buffer full, disconnecting", nil)
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Publish queues an event for every subscriber. A full queue drops the
// event; catalog writes never block on subscribers.
func (h *Hub) Publish(event service.CatalogEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal catalog event", err, nil)
		return
	}

	select {
	case h.broadcast <- &broadcastMessage{eventType: event.Type, payload: data}:
	default:
		logger.Warn("Broadcast channel full, event dropped", map[string]interface{}{
			"event_type": event.Type,
		})
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// SubscriberCount reports connected clients.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleClientMessage applies a subscribe request, rate limited per client.
func (h *Hub) HandleClientMessage(client *Client, message []byte) {
	client.RateMu.Lock()
	now := time.Now()
	if now.Sub(client.LastResetTime) >= time.Second {
		client.MessageCount = 0
		client.LastResetTime = now
	}
	client.MessageCount++
	count := client.MessageCount
	client.RateMu.Unlock()

	if count > maxMessagesPerSecond {
		logger.Warn("Rate limit exceeded", map[string]interface{}{
			"count": count,
		})
		return
	}

	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		logger.Warn("Failed to parse client message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if msg.Type != "subscribe" {
		return
	}

	filter := make(map[string]bool, len(msg.Events))
	for _, e := range msg.Events {
		filter[e] = true
	}
	client.mu.Lock()
	client.filter = filter
	client.mu.Unlock()

	logger.Debug("Subscriber filter updated", map[string]interface{}{
		"events": msg.Events,
	})
}
