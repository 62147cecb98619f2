// internal/socket/handler.go
package socket

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to a user ID.
type Authenticator func(token string) (string, error)

// Handler handles WebSocket connections
type Handler struct {
	Hub          *Hub
	authenticate Authenticator
	upgrader     websocket.Upgrader
}

// NewHandler creates a WebSocket handler. An empty allowedOrigins accepts
// every origin.
func NewHandler(hub *Hub, authenticate Authenticator, allowedOrigins []string) *Handler {
	return &Handler{
		Hub:          hub,
		authenticate: authenticate,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		for _, o := range allowed {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}

// HandleWebSocket upgrades the request. The token comes from the query
// string because browsers cannot set headers on WebSocket requests.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}

	userID, err := h.authenticate(tokenString)
	if err != nil || userID == "" {
		h.Hub.log.Debug("websocket token rejected", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Hub.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(h.Hub, userID, conn)
	if !h.Hub.Register(client) {
		conn.Close()
		return
	}

	// Personal room for direct events
	h.Hub.JoinRoom(client, UserRoom(userID))

	go client.WritePump()
	go client.ReadPump()
}

func NewClient(hub *Hub, userID string, conn *websocket.Conn) *Client {
	return &Client{
		ID:       uuid.New().String(),
		UserID:   userID,
		Conn:     conn,
		Hub:      hub,
		Send:     make(chan []byte, 256),
		Rooms:    make(map[string]bool),
		lastPing: time.Now(),
	}
}
