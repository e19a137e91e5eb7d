// server/internal/socket/hub.go
package socket

import (
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// writeWait bounds a single write to a client.
	writeWait = 10 * time.Second
	// sendBuffer is how many messages may queue for one client before it
	// is treated as stalled and dropped.
	sendBuffer = 32
)

// Conn is the part of *websocket.Conn the hub uses.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type client struct {
	conn Conn
	city string
	// send is closed by the hub when the client is removed.
	send chan []byte
}

// Hub tracks every connected WebSocket client. Broadcasts only queue
// messages; each client has its own writer goroutine, so a slow reader
// never holds up the caller or other clients.
type Hub struct {
	// clients is keyed by the user's email.
	clients map[string]*client
	mu      sync.Mutex
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*client),
		log:     log,
	}
}

func normalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// Register adds a client and starts its writer. city may be empty for
// clients that only want global events. A second connection for the same
// user replaces the first.
func (h *Hub) Register(userID, city string, conn Conn) {
	c := &client{conn: conn, city: normalizeCity(city), send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if old, ok := h.clients[userID]; ok {
		h.removeLocked(userID, old)
	}
	h.clients[userID] = c
	h.mu.Unlock()

	go h.writePump(userID, c)
	h.log.Info("websocket client registered", zap.String("user", userID), zap.String("city", city))
}

// Unregister removes userID if it is still bound to conn.
func (h *Hub) Unregister(userID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[userID]; ok && c.conn == conn {
		h.removeLocked(userID, c)
		h.log.Info("websocket client unregistered", zap.String("user", userID))
	}
}

// removeLocked must be called with h.mu held.
func (h *Hub) removeLocked(userID string, c *client) {
	delete(h.clients, userID)
	close(c.send)
}

// BroadcastCity sends message to every client subscribed to city.
func (h *Hub) BroadcastCity(city string, message []byte) {
	target := normalizeCity(city)
	h.broadcast(message, func(c *client) bool { return c.city == target })
}

// Broadcast sends message to every connected client.
func (h *Hub) Broadcast(message []byte) {
	h.broadcast(message, func(*client) bool { return true })
}

func (h *Hub) broadcast(message []byte, match func(*client) bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, c := range h.clients {
		if !match(c) {
			continue
		}
		select {
		case c.send <- message:
		default:
			h.log.Warn("websocket client too slow, dropping", zap.String("user", userID))
			h.removeLocked(userID, c)
			// Unblocks a writer stuck on the dead peer.
			c.conn.Close()
		}
	}
}

func (h *Hub) writePump(userID string, c *client) {
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.log.Warn("websocket write failed", zap.String("user", userID), zap.Error(err))
			h.mu.Lock()
			if h.clients[userID] == c {
				h.removeLocked(userID, c)
			}
			h.mu.Unlock()
			// Ends the handler's read loop, which then unregisters.
			c.conn.Close()
			return
		}
	}
}
