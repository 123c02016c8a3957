package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"comics-service/internal/models"
)

// Hub maintains the live connections: one public chat feed shared by every
// subscriber, plus one inbox room per user for direct message delivery.
type Hub struct {
	feedConns map[*websocket.Conn]ConnInfo
	inboxes   map[int]map[*websocket.Conn]ConnInfo
	mu        sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		feedConns: make(map[*websocket.Conn]ConnInfo),
		inboxes:   make(map[int]map[*websocket.Conn]ConnInfo),
	}
}

// AddFeedClient subscribes a connection to the public chat feed.
func (h *Hub) AddFeedClient(conn *websocket.Conn, info ConnInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.feedConns[conn] = info
}

// RemoveFeedClient drops a public chat feed connection.
func (h *Hub) RemoveFeedClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.feedConns, conn)
}

// BroadcastChatMessage sends a room message to every feed subscriber.
func (h *Hub) BroadcastChatMessage(msg models.ChatMessage) {
	h.mu.RLock()
	conns := make(map[*websocket.Conn]ConnInfo, len(h.feedConns))
	for conn, info := range h.feedConns {
		conns[conn] = info
	}
	h.mu.RUnlock()

	event := models.ChatEvent{Type: "message", Message: &msg}
	payload, _ := json.Marshal(event)
	for conn, info := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("websocket write error: %v", err)
			conn.Close()
			h.RemoveFeedClient(conn)
			publishWSEvent(context.Background(), "chat", "ws_error", info, err.Error())
		}
	}
}

// AddInboxClient registers a connection to a user's inbox room.
func (h *Hub) AddInboxClient(userID int, conn *websocket.Conn, info ConnInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.inboxes[userID]; !ok {
		h.inboxes[userID] = make(map[*websocket.Conn]ConnInfo)
	}
	h.inboxes[userID][conn] = info
}

// RemoveInboxClient removes an inbox connection.
func (h *Hub) RemoveInboxClient(userID int, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.inboxes[userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.inboxes, userID)
		}
	}
}

// DeliverDirectMessage pushes a direct message to the recipient's inbox room.
func (h *Hub) DeliverDirectMessage(receiverID int, msg models.DirectMessage) {
	h.mu.RLock()
	room := h.inboxes[receiverID]
	conns := make(map[*websocket.Conn]ConnInfo, len(room))
	for conn, info := range room {
		conns[conn] = info
	}
	h.mu.RUnlock()

	event := models.MessageEvent{Type: "message", Message: &msg}
	payload, _ := json.Marshal(event)
	for conn, info := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("websocket write error: %v", err)
			conn.Close()
			h.RemoveInboxClient(receiverID, conn)
			publishWSEvent(context.Background(), "inbox", "ws_error", info, err.Error())
		}
	}
}
