// websocket/handler.go
package websocket

import (
	"time"

	"rebar-shipment-backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WsHandler manages WebSocket requests and connections
type WsHandler struct {
	hub *Hub
}

// NewWsHandler creates a new WebSocket handler instance
func NewWsHandler(hub *Hub) *WsHandler {
	return &WsHandler{hub: hub}
}

// HandleWebSocket handles incoming WebSocket upgrade requests. Dashboard
// connections are read-only: clients receive events, they never send
// commands over the socket.
func (h *WsHandler) HandleWebSocket(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			ID:   uuid.New(),
			Conn: conn,
			Hub:  h.hub,
			Send: make(chan WebSocketMessage, 16),
		}
		h.hub.register <- client

		config.Logger.Info("Dashboard client connected",
			zap.String("client_id", client.ID.String()),
			zap.Int("clients", h.hub.GetClientCount()),
		)

		go client.writePump()
		client.readPump()
	})(c)
}

// writePump drains the send channel onto the wire.
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.Send:
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames and unregisters on disconnect.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
