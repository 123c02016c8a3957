package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"comics-service/internal/auth"
)

func setupIdentityRouter(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity(secret))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt("userID")})
	})
	return r
}

func TestIdentitySetsUserIDFromToken(t *testing.T) {
	secret := []byte("test-secret")
	router := setupIdentityRouter(secret)

	token, err := auth.SignToken(secret, 9, "alice", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-Auth-Token", token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"user_id":9}`, rec.Body.String())
}

func TestIdentityAcceptsBearerHeader(t *testing.T) {
	secret := []byte("test-secret")
	router := setupIdentityRouter(secret)

	token, err := auth.SignToken(secret, 4, "bob", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"user_id":4}`, rec.Body.String())
}

func TestIdentityIgnoresInvalidToken(t *testing.T) {
	router := setupIdentityRouter([]byte("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-Auth-Token", "not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"user_id":0}`, rec.Body.String())
}
