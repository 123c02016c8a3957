package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"comics-service/internal/models"
	"comics-service/internal/repositories"
	"comics-service/internal/telemetry"
	"comics-service/internal/ws"
)

// ChatHandler manages the public chat room endpoints.
type ChatHandler struct {
	chatRepo repositories.ChatRepository
	userRepo repositories.UserRepository
	hub      *ws.Hub
	audit    *telemetry.AuditEmitter
}

// NewChatHandler builds a ChatHandler.
func NewChatHandler(chatRepo repositories.ChatRepository, userRepo repositories.UserRepository, hub *ws.Hub, audit *telemetry.AuditEmitter) *ChatHandler {
	return &ChatHandler{
		chatRepo: chatRepo,
		userRepo: userRepo,
		hub:      hub,
		audit:    audit,
	}
}

// ListRecent returns the latest 100 room messages, oldest first.
func (h *ChatHandler) ListRecent(c *gin.Context) {
	msgs, err := h.chatRepo.ListRecent(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// Send appends a message to the room and broadcasts it to feed subscribers.
func (h *ChatHandler) Send(c *gin.Context) {
	var req struct {
		UserID  int    `json:"user_id"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "malformed request body"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if req.UserID == 0 || message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and message required"})
		return
	}

	msg, err := h.chatRepo.CreateMessage(c.Request.Context(), req.UserID, message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store message"})
		return
	}

	if h.hub != nil {
		// Feed subscribers get the author's profile alongside the message.
		if user, err := h.userRepo.GetUserByID(c.Request.Context(), req.UserID); err == nil {
			msg.Username = user.Username
			msg.DisplayName = user.DisplayName
			msg.AvatarURL = user.AvatarURL
		}
		h.hub.BroadcastChatMessage(msg)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Message sent",
		"message_id": msg.ID,
		"created_at": msg.CreatedAt,
	})
}
