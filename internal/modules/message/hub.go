package message

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// client serializes writes: gorilla connections allow one concurrent writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Hub keeps at most one live connection per user; a new one replaces the old.
type Hub struct {
	connections map[int64]*client
	mutex       sync.RWMutex
	gauge       ConnectionGauge
}

func NewHub(gauge ConnectionGauge) *Hub {
	return &Hub{
		connections: make(map[int64]*client),
		gauge:       gauge,
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) *client {
	cl := &client{conn: conn}

	h.mutex.Lock()
	old, exists := h.connections[userID]
	h.connections[userID] = cl
	h.mutex.Unlock()

	if exists && old != nil {
		_ = old.conn.Close()
	} else {
		h.delta(1)
	}
	return cl
}

// Unregister drops cl if it is still the user's current connection.
func (h *Hub) Unregister(userID int64, cl *client) {
	h.mutex.Lock()
	current, exists := h.connections[userID]
	removed := exists && current == cl
	if removed {
		delete(h.connections, userID)
	}
	h.mutex.Unlock()

	_ = cl.conn.Close()
	if removed {
		h.delta(-1)
	}
}

func (h *Hub) SendToUser(userID int64, event interface{}) bool {
	h.mutex.RLock()
	cl, exists := h.connections[userID]
	h.mutex.RUnlock()

	if !exists || cl == nil {
		return false
	}

	if err := cl.writeJSON(event); err != nil {
		h.Unregister(userID, cl)
		return false
	}
	return true
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.connections[userID]
	return exists
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

// Close drops every connection; used on shutdown.
func (h *Hub) Close() {
	h.mutex.Lock()
	n := len(h.connections)
	for userID, cl := range h.connections {
		if cl != nil {
			_ = cl.conn.Close()
		}
		delete(h.connections, userID)
	}
	h.mutex.Unlock()

	h.delta(-float64(n))
}

func (h *Hub) delta(d float64) {
	if h.gauge != nil && d != 0 {
		h.gauge.LiveConnectionDelta(d)
	}
}
