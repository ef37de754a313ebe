// Package realtime provides the websocket broadcast hub used to push
// newly created tweets to subscribed clients. Delivery is best effort:
// there is no acknowledgment, retry or ordering guarantee.
package realtime

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait is the deadline for a single websocket write.
	writeWait = 10 * time.Second

	// pongWait is how long a client may stay silent before it is dropped.
	pongWait = 60 * time.Second

	// pingPeriod is the interval between keepalive pings. Must be less
	// than pongWait.
	pingPeriod = 54 * time.Second

	// sendBufferSize is the per-client outbound queue. A client that
	// falls this far behind is disconnected.
	sendBufferSize = 16

	// broadcastBufferSize bounds the hub's inbound queue; publishes
	// beyond it are dropped rather than blocking the publisher.
	broadcastBufferSize = 256
)

// envelope is the wire format for broadcast messages.
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub fans broadcast messages out to every connected client. All client
// bookkeeping happens on the Run goroutine, so no locks are needed.
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	clients    map[*client]struct{}
	done       chan struct{}
}

// NewHub creates a Hub. Call Run on its own goroutine before serving
// websocket connections.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, broadcastBufferSize),
		clients:    make(map[*client]struct{}),
		done:       make(chan struct{}),
	}
}

// Run processes register/unregister/broadcast events until Close is
// called.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow client: drop it rather than block the hub
					delete(h.clients, c)
					close(c.send)
				}
			}
		case <-h.done:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		}
	}
}

// Close stops the Run loop and disconnects all clients.
func (h *Hub) Close() {
	close(h.done)
}

// Publish broadcasts an event to all connected clients. It never
// blocks; when the hub's queue is full the message is dropped.
func (h *Hub) Publish(event string, payload any) {
	msg, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		slog.Warn("realtime publish skipped", "event", event, "error", err)
		return
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		slog.Warn("realtime broadcast queue full, dropping message", "event", event)
	}
}

// client is a single websocket subscriber.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// writePump forwards queued messages to the websocket connection and
// keeps it alive with pings. It runs on its own goroutine per client.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames (subscribers only listen) and
// unregisters the client when the connection drops.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
