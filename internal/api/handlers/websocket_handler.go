package handlers

import (
	"net/http"
	"time"

	"relief-coordination-api/internal/auth"
	"relief-coordination-api/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Maximum time to wait for a client ping before the connection is dropped.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub    *socket.Hub
	Tokens *auth.TokenManager
	Log    *zap.Logger
}

// ServeWs upgrades the connection and subscribes the caller to the optional
// ?city= feed. Browsers cannot set headers on the upgrade, so the token
// travels in the query string.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}
	claims, err := h.Tokens.Parse(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	userID := claims.Email

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.Warn("failed to upgrade connection", zap.Error(err))
		return
	}

	h.Hub.Register(userID, c.Query("city"), conn)
	defer func() {
		// Closing first releases a hub writer blocked on this conn.
		conn.Close()
		h.Hub.Unregister(userID, conn)
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	// Replacing the default ping handler means the pong must be sent here.
	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(time.Second))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Log.Warn("unexpected websocket close", zap.String("user", userID), zap.Error(err))
			}
			return
		}
	}
}
