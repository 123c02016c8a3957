package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"comics-service/internal/models"
	"comics-service/internal/repositories"
	"comics-service/internal/telemetry"
)

// InteractionHandler manages likes, comments and ratings.
type InteractionHandler struct {
	interactionRepo repositories.InteractionRepository
	audit           *telemetry.AuditEmitter
}

// NewInteractionHandler builds an InteractionHandler.
func NewInteractionHandler(interactionRepo repositories.InteractionRepository, audit *telemetry.AuditEmitter) *InteractionHandler {
	return &InteractionHandler{interactionRepo: interactionRepo, audit: audit}
}

// Get serves ?action=comments&comic_id=N.
func (h *InteractionHandler) Get(c *gin.Context) {
	comicIDStr := c.Query("comic_id")
	if c.Query("action") != "comments" || comicIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	comicID, err := strconv.Atoi(comicIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comic_id"})
		return
	}

	comments, err := h.interactionRepo.ListComments(c.Request.Context(), comicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comments"})
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Post dispatches like, comment and rate actions. The user/comic pair is
// required before any action-specific schema is considered.
func (h *InteractionHandler) Post(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read request body"})
		return
	}

	var envelope struct {
		Action  string `json:"action"`
		UserID  int    `json:"user_id"`
		ComicID int    `json:"comic_id"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "malformed request body"})
		return
	}

	if envelope.UserID == 0 || envelope.ComicID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and comic_id required"})
		return
	}

	switch envelope.Action {
	case "like":
		h.like(c, envelope.UserID, envelope.ComicID)
	case "comment":
		h.comment(c, envelope.UserID, envelope.ComicID, body)
	case "rate":
		h.rate(c, envelope.UserID, envelope.ComicID, body)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
	}
}

func (h *InteractionHandler) like(c *gin.Context, userID, comicID int) {
	if err := h.interactionRepo.AddLike(c.Request.Context(), userID, comicID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store like"})
		return
	}

	likesCount, err := h.interactionRepo.CountLikes(c.Request.Context(), comicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count likes"})
		return
	}

	emitAudit(c, h.audit, "INFO", "comic liked")
	c.JSON(http.StatusOK, gin.H{"message": "Liked", "likes_count": likesCount})
}

func (h *InteractionHandler) comment(c *gin.Context, userID, comicID int, body []byte) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "malformed request body"})
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content required"})
		return
	}

	comment, err := h.interactionRepo.AddComment(c.Request.Context(), userID, comicID, content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store comment"})
		return
	}

	emitAudit(c, h.audit, "INFO", "comic commented")
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Comment added",
		"comment_id": comment.ID,
		"created_at": comment.CreatedAt,
	})
}

func (h *InteractionHandler) rate(c *gin.Context, userID, comicID int, body []byte) {
	var req struct {
		Rating int `json:"rating"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "malformed request body"})
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}

	if err := h.interactionRepo.UpsertRating(c.Request.Context(), userID, comicID, req.Rating); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store rating"})
		return
	}

	avgRating, err := h.interactionRepo.AverageRating(c.Request.Context(), comicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute average rating"})
		return
	}

	emitAudit(c, h.audit, "INFO", "comic rated")
	c.JSON(http.StatusOK, gin.H{"message": "Rated", "avg_rating": avgRating})
}

// Delete dispatches the unlike action.
func (h *InteractionHandler) Delete(c *gin.Context) {
	var req struct {
		Action  string `json:"action"`
		UserID  int    `json:"user_id"`
		ComicID int    `json:"comic_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "malformed request body"})
		return
	}

	if req.Action != "unlike" || req.UserID == 0 || req.ComicID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// Removing an absent like is not an error.
	if err := h.interactionRepo.RemoveLike(c.Request.Context(), req.UserID, req.ComicID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove like"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unliked"})
}
