// server/internal/api/handlers/websocket_handler.go
package handlers

import (
	"log"
	"net/http"
	"time"

	"pharma-alert-api-server/internal/auth"
	"pharma-alert-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Maximum wait for a control message from the client.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub *socket.Hub
}

// ServeWs upgrades the connection and registers the client with the
// Hub. Pharmacy accounts register under their pharmacy id so the
// transport can address them directly; everyone else registers under
// their email for the dashboard feed.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}

	claims, err := auth.ParseJWT(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	clientID := claims.Email
	if claims.PharmacyID != "" {
		clientID = claims.PharmacyID
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	h.Hub.Register(clientID, conn)

	defer func() {
		h.Hub.Unregister(clientID)
		conn.Close()
	}()

	// Heartbeat: reset the read deadline whenever the client pings.
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Unexpected close error: %v", err)
			}
			break
		}
	}
}
