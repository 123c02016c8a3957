package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"comics-service/internal/auth"
	"comics-service/internal/observability"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ChatFeedHandler upgrades public chat feed connections. The feed mirrors
// the public room, so no token is required to listen.
type ChatFeedHandler struct {
	hub *Hub
}

// NewChatFeedHandler constructs a ChatFeedHandler.
func NewChatFeedHandler(hub *Hub) *ChatFeedHandler {
	return &ChatFeedHandler{hub: hub}
}

// Handle upgrades the connection and registers the feed client.
func (h *ChatFeedHandler) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("comics-service/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	info := ConnInfo{
		ConnID:      newConnID(),
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		TraceID:     span.SpanContext().TraceID().String(),
		ConnectedAt: time.Now(),
	}
	h.hub.AddFeedClient(conn, info)
	observability.IncWSActive("chat")
	publishWSEvent(ctx, "chat", "ws_connect", info, "")

	go func() {
		var closeReason string
		defer func() {
			h.hub.RemoveFeedClient(conn)
			observability.DecWSActive("chat")
			publishWSEvent(ctx, "chat", "ws_disconnect", info, closeReason)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				closeReason = err.Error()
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					publishWSEvent(ctx, "chat", "ws_error", info, closeReason)
				}
				return
			}
		}
	}()
}

// InboxFeedHandler upgrades direct-message feed connections. A valid token
// identifies the recipient; there is no user_id parameter to spoof here.
type InboxFeedHandler struct {
	hub       *Hub
	jwtSecret []byte
}

// NewInboxFeedHandler constructs an InboxFeedHandler.
func NewInboxFeedHandler(hub *Hub, jwtSecret []byte) *InboxFeedHandler {
	return &InboxFeedHandler{hub: hub, jwtSecret: jwtSecret}
}

// Handle authenticates the caller, upgrades the connection and registers
// the client in the caller's inbox room.
func (h *InboxFeedHandler) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("comics-service/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	token := c.GetHeader("X-Auth-Token")
	if token == "" {
		token = c.Query("token")
	}
	claims, err := auth.ParseToken(h.jwtSecret, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	info := ConnInfo{
		ConnID:      newConnID(),
		UserID:      userID,
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		TraceID:     span.SpanContext().TraceID().String(),
		ConnectedAt: time.Now(),
	}
	h.hub.AddInboxClient(userID, conn, info)
	observability.IncWSActive("inbox")
	publishWSEvent(ctx, "inbox", "ws_connect", info, "")

	go func() {
		var closeReason string
		defer func() {
			h.hub.RemoveInboxClient(userID, conn)
			observability.DecWSActive("inbox")
			publishWSEvent(ctx, "inbox", "ws_disconnect", info, closeReason)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				closeReason = err.Error()
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					publishWSEvent(ctx, "inbox", "ws_error", info, closeReason)
				}
				return
			}
		}
	}()
}
