package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"comics-service/internal/models"
	"comics-service/internal/repositories"
	"comics-service/internal/telemetry"
	"comics-service/internal/ws"
)

// MessageHandler manages direct messaging endpoints.
type MessageHandler struct {
	messageRepo repositories.MessageRepository
	hub         *ws.Hub
	audit       *telemetry.AuditEmitter
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(messageRepo repositories.MessageRepository, hub *ws.Hub, audit *telemetry.AuditEmitter) *MessageHandler {
	return &MessageHandler{
		messageRepo: messageRepo,
		hub:         hub,
		audit:       audit,
	}
}

// Get returns either a thread (user_id + other_user_id) or the inbox
// summaries (user_id only). Fetching a thread marks everything the
// counterpart sent to user_id as read.
func (h *MessageHandler) Get(c *gin.Context) {
	userIDStr := c.Query("user_id")
	if userIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
		return
	}
	userID, err := strconv.Atoi(userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	if otherStr := c.Query("other_user_id"); otherStr != "" {
		otherUserID, err := strconv.Atoi(otherStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid other_user_id"})
			return
		}

		msgs, err := h.messageRepo.ListThread(c.Request.Context(), userID, otherUserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
			return
		}
		if err := h.messageRepo.MarkThreadRead(c.Request.Context(), userID, otherUserID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark messages read"})
			return
		}
		if msgs == nil {
			msgs = []models.DirectMessage{}
		}
		c.JSON(http.StatusOK, gin.H{"messages": msgs})
		return
	}

	conversations, err := h.messageRepo.ListInbox(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load conversations"})
		return
	}
	if conversations == nil {
		conversations = []models.Conversation{}
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// Send stores a direct message and delivers it to the recipient's live feed.
func (h *MessageHandler) Send(c *gin.Context) {
	var req struct {
		SenderID   int    `json:"sender_id"`
		ReceiverID int    `json:"receiver_id"`
		Content    string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "malformed request body"})
		return
	}

	content := strings.TrimSpace(req.Content)
	if req.SenderID == 0 || req.ReceiverID == 0 || content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sender_id, receiver_id and content required"})
		return
	}

	msg, err := h.messageRepo.CreateMessage(c.Request.Context(), req.SenderID, req.ReceiverID, content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store message"})
		return
	}

	if h.hub != nil {
		h.hub.DeliverDirectMessage(req.ReceiverID, msg)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Message sent",
		"message_id": msg.ID,
		"created_at": msg.CreatedAt,
	})
}
