package chat

import (
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

// Event is the outbound websocket envelope.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Client is one live websocket connection. A client has no identity until it
// joins a channel; multiple clients may share one identity (multi-device).
type Client struct {
	conn *websocket.Conn
	send chan Event
	once sync.Once
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan Event, 64),
	}
}

// Emit queues an event for the connection; slow consumers drop events rather
// than blocking the hub.
func (c *Client) Emit(event string, data interface{}) {
	select {
	case c.send <- Event{Event: event, Data: data}:
	default:
		log.Warn().Str("event", event).Msg("Dropping event for slow websocket client")
	}
}

// WritePump serializes all writes for the connection. Run in its own goroutine.
func (c *Client) WritePump() {
	for ev := range c.send {
		if err := c.conn.WriteJSON(ev); err != nil {
			return
		}
	}
}

// Close stops the write pump exactly once.
func (c *Client) Close() {
	c.once.Do(func() { close(c.send) })
}

// Hub is the owned connection registry: identity (email) -> set of clients.
// Join/Leave/Broadcast are its whole interface; all mutation goes through the
// mutex so the routing table is safe under Fiber's per-connection goroutines.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{channels: make(map[string]map[*Client]struct{})}
}

// Join binds a client to the channel keyed by email.
func (h *Hub) Join(email string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.channels[email]; !ok {
		h.channels[email] = make(map[*Client]struct{})
	}
	h.channels[email][c] = struct{}{}
}

// Leave drops a client from its channel; the channel ceases to exist with its
// last connection. There is no persisted presence state.
func (h *Hub) Leave(email string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.channels[email]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.channels, email)
		}
	}
}

// Broadcast emits an event to every connection joined as email. A missing
// channel is the expected offline case, not an error.
func (h *Hub) Broadcast(email, event string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.channels[email] {
		c.Emit(event, data)
	}
}

// Online reports whether the identity has at least one live connection.
func (h *Hub) Online(email string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[email]) > 0
}
