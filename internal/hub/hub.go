// Package hub fans per-turn reply events out to WebSocket clients
// subscribed by session.
package hub

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ErrBufferFull is returned when a connection's send buffer is full.
var ErrBufferFull = errors.New("connection send buffer full")

// Connection represents a single WebSocket subscriber.
type Connection struct {
	ID        string
	SessionID string
	Conn      *websocket.Conn
	Send      chan []byte
	mu        sync.Mutex
}

// WriteMessage writes to the socket with proper locking.
func (c *Connection) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// Close closes the underlying socket.
func (c *Connection) Close() error {
	return c.Conn.Close()
}

// sessionEvent carries one event to all subscribers of a session.
type sessionEvent struct {
	sessionID string
	data      []byte
}

// Hub manages subscriber connections keyed by session.
type Hub struct {
	connections map[string]*Connection
	sessions    map[string]map[string]bool

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan sessionEvent

	mu sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*Connection),
		sessions:    make(map[string]map[string]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		broadcast:   make(chan sessionEvent, 256),
	}
}

// Run processes registration and broadcast events until the hub's
// channels stop being fed. Start it once from main.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.connections[conn.ID] = conn
			if conn.SessionID != "" {
				if h.sessions[conn.SessionID] == nil {
					h.sessions[conn.SessionID] = make(map[string]bool)
				}
				h.sessions[conn.SessionID][conn.ID] = true
			}
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.connections[conn.ID]; ok {
				delete(h.connections, conn.ID)
				if conn.SessionID != "" && h.sessions[conn.SessionID] != nil {
					delete(h.sessions[conn.SessionID], conn.ID)
					if len(h.sessions[conn.SessionID]) == 0 {
						delete(h.sessions, conn.SessionID)
					}
				}
				close(conn.Send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.RLock()
			for connID := range h.sessions[event.sessionID] {
				conn, ok := h.connections[connID]
				if !ok {
					continue
				}
				select {
				case conn.Send <- event.data:
				default:
					log.Printf("WARN: connection %s buffer full, dropping", connID)
					go h.Unregister(conn)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// NewConnection wraps a socket as a subscriber for the session.
func (h *Hub) NewConnection(ws *websocket.Conn, sessionID string) *Connection {
	return &Connection{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Conn:      ws,
		Send:      make(chan []byte, 64),
	}
}

// Register adds a connection to the hub.
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection from the hub.
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// PublishReply sends a reply event to every subscriber of the session.
// Implements the orchestrator's Publisher contract; marshal failures
// are logged, never surfaced into the turn.
func (h *Hub) PublishReply(sessionID string, event map[string]interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ERROR: failed to marshal reply event: %v", err)
		return
	}
	h.broadcast <- sessionEvent{sessionID: sessionID, data: data}
}

// ConnectionCount reports the number of active subscribers.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}
