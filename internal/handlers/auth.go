package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"comics-service/internal/auth"
	"comics-service/internal/repositories"
	"comics-service/internal/telemetry"
)

// AuthHandler manages registration and login.
type AuthHandler struct {
	userRepo  repositories.UserRepository
	audit     *telemetry.AuditEmitter
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(userRepo repositories.UserRepository, audit *telemetry.AuditEmitter, jwtSecret []byte, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userRepo:  userRepo,
		audit:     audit,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Handle dispatches POST /auth on the action field. Each operation binds
// its own request schema from the raw body.
func (h *AuthHandler) Handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read request body"})
		return
	}

	var envelope struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "malformed request body"})
		return
	}

	switch envelope.Action {
	case "register":
		h.register(c, body)
	case "login":
		h.login(c, body)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
	}
}

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

func (h *AuthHandler) register(c *gin.Context, body []byte) {
	var req registerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "malformed request body"})
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username, email and password required"})
		return
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = username
	}

	taken, err := h.userRepo.IdentityTaken(c.Request.Context(), username, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check identity"})
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user, err := h.userRepo.CreateUser(c.Request.Context(), username, email, hash, displayName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	token, err := auth.SignToken(h.jwtSecret, user.ID, user.Username, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	emitAudit(c, h.audit, "INFO", "user registered: "+user.Username)
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) login(c *gin.Context, body []byte) {
	var req loginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "malformed request body"})
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
		return
	}

	user, err := h.userRepo.GetUserByUsername(c.Request.Context(), username)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	// Unknown user and wrong password are indistinguishable to the caller.
	if errors.Is(err, repositories.ErrUserNotFound) || !auth.CheckPassword(user.PasswordHash, req.Password) {
		emitAudit(c, h.audit, "WARN", "failed login attempt: "+username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.SignToken(h.jwtSecret, user.ID, user.Username, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	emitAudit(c, h.audit, "INFO", "user logged in: "+user.Username)
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}
