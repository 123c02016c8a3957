package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"comics-service/internal/models"
	"comics-service/internal/repositories"
	"comics-service/internal/telemetry"
)

// ComicHandler manages comic CRUD endpoints.
type ComicHandler struct {
	comicRepo repositories.ComicRepository
	audit     *telemetry.AuditEmitter
}

// NewComicHandler builds a ComicHandler.
func NewComicHandler(comicRepo repositories.ComicRepository, audit *telemetry.AuditEmitter) *ComicHandler {
	return &ComicHandler{comicRepo: comicRepo, audit: audit}
}

// Get returns one comic (?id) with pages and counters, or a newest-first
// listing, optionally filtered to a single author (?user_id).
func (h *ComicHandler) Get(c *gin.Context) {
	if idStr := c.Query("id"); idStr != "" {
		comicID, err := strconv.Atoi(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comic id"})
			return
		}

		comic, err := h.comicRepo.GetComic(c.Request.Context(), comicID)
		if err != nil {
			if errors.Is(err, repositories.ErrComicNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Comic not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comic"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"comic": comic})
		return
	}

	userID := 0
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		parsed, err := strconv.Atoi(userIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		userID = parsed
	}

	comics, err := h.comicRepo.ListComics(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comics"})
		return
	}
	if comics == nil {
		comics = []models.Comic{}
	}
	c.JSON(http.StatusOK, gin.H{"comics": comics})
}

// Create publishes a comic together with its pages.
func (h *ComicHandler) Create(c *gin.Context) {
	var req struct {
		UserID      int                   `json:"user_id"`
		Title       string                `json:"title"`
		Description string                `json:"description"`
		Genre       string                `json:"genre"`
		CoverURL    string                `json:"cover_url"`
		Pages       []models.NewComicPage `json:"pages"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "malformed request body"})
		return
	}

	title := strings.TrimSpace(req.Title)
	if req.UserID == 0 || title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and title required"})
		return
	}

	comicID, err := h.comicRepo.CreateComic(c.Request.Context(), models.NewComic{
		UserID:      req.UserID,
		Title:       title,
		Description: req.Description,
		Genre:       req.Genre,
		CoverURL:    req.CoverURL,
		Pages:       req.Pages,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comic"})
		return
	}

	emitAudit(c, h.audit, "INFO", "comic published: "+title)
	c.JSON(http.StatusCreated, gin.H{"comic_id": comicID, "message": "Comic created"})
}
