package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"comics-service/internal/telemetry"
)

const requestIDContextKey = "request_id"

func requestIDFromContext(c *gin.Context) string {
	if val, ok := c.Get(requestIDContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id
		}
	}

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(requestIDContextKey, requestID)
	return requestID
}

func auditUserID(c *gin.Context) *string {
	if val, ok := c.Get("userID"); ok {
		if userID, ok := val.(int); ok && userID != 0 {
			value := strconv.Itoa(userID)
			return &value
		}
	}

	if header := c.GetHeader("X-User-Id"); header != "" {
		return &header
	}

	return nil
}

func emitAudit(c *gin.Context, emitter *telemetry.AuditEmitter, level, text string) {
	if emitter == nil {
		return
	}
	emitter.Emit(c.Request.Context(), level, text, requestIDFromContext(c), auditUserID(c))
}
