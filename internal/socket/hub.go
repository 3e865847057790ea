// server/internal/socket/hub.go
package socket

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub manages all connected WebSocket clients. Pharmacy portals
// register under their pharmacy id, dashboard users under their email.
type Hub struct {
	// clients maps a client id to its connection.
	clients map[string]*websocket.Conn
	// mu guards clients against concurrent handler goroutines.
	mu sync.RWMutex
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Register adds a client connection to the Hub.
func (h *Hub) Register(clientID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[clientID] = conn
	log.Printf("WebSocket client registered: %s", clientID)
}

// Unregister removes a client from the Hub.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[clientID]; ok {
		delete(h.clients, clientID)
		log.Printf("WebSocket client unregistered: %s", clientID)
	}
}

// Send delivers a message to one specific client. An offline client is
// not an error; the message is simply dropped.
func (h *Hub) Send(clientID string, message []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.clients[clientID]
	if !ok {
		log.Printf("WebSocket client not found, could not send message: %s", clientID)
		return nil
	}

	return conn.WriteMessage(websocket.TextMessage, message)
}

// Broadcast delivers a message to every connected client.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for clientID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket broadcast to %s failed: %v", clientID, err)
		}
	}
}
