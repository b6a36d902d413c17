// websocket/hub.go
package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gofiber/websocket/v2"
)

type MessageType string

const (
	MessageTypeStatusUpdated MessageType = "STATUS_UPDATED"
	MessageTypeCheckinAdded  MessageType = "CHECKIN_ADDED"
	MessageTypeError         MessageType = "ERROR"
)

type WebSocketMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Client is one connected dashboard browser tab.
type Client struct {
	ID   uuid.UUID
	Conn *websocket.Conn
	Hub  *Hub
	Send chan WebSocketMessage
}

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan WebSocketMessage
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan WebSocketMessage),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.broadcastToAll(message)
		}
	}
}

// BroadcastStatusUpdate pushes a status change to every connected dashboard
// so open tabs converge without polling.
func (h *Hub) BroadcastStatusUpdate(recordIDs []string, status string) {
	h.broadcast <- WebSocketMessage{
		Type: MessageTypeStatusUpdated,
		Payload: map[string]interface{}{
			"record_ids": recordIDs,
			"status":     status,
		},
		Timestamp: time.Now(),
	}
}

// BroadcastCheckin announces a new driver check-in to the monitoring tab.
func (h *Hub) BroadcastCheckin(payload interface{}) {
	h.broadcast <- WebSocketMessage{
		Type:      MessageTypeCheckinAdded,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// broadcastToAll sends a message to all connected clients
func (h *Hub) broadcastToAll(message WebSocketMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(h.clients, client)
		}
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
