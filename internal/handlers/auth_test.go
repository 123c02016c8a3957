package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"comics-service/internal/auth"
	"comics-service/internal/mocks"
	"comics-service/internal/models"
	"comics-service/internal/repositories"
)

var testSecret = []byte("test-secret")

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth", handler.Handle)
	return r
}

func TestAuthInvalidAction(t *testing.T) {
	handler := NewAuthHandler(new(mocks.UserRepositoryMock), nil, testSecret, time.Hour)
	router := setupAuthRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewBufferString(`{"action":"refresh"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid action"}`, rec.Body.String())
}

func TestRegisterMissingFields(t *testing.T) {
	handler := NewAuthHandler(new(mocks.UserRepositoryMock), nil, testSecret, time.Hour)
	router := setupAuthRouter(handler)

	body := bytes.NewBufferString(`{"action":"register","username":"  ","email":"a@b.c","password":"pw"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Username, email and password required"}`, rec.Body.String())
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, nil, testSecret, time.Hour)
	router := setupAuthRouter(handler)

	userRepo.On("IdentityTaken", mock.Anything, "alice", "alice@example.com").Return(true, nil).Once()

	body := bytes.NewBufferString(`{"action":"register","username":"alice","email":"alice@example.com","password":"pw"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Username or email already exists"}`, rec.Body.String())
	userRepo.AssertExpectations(t)
}

func TestRegisterSuccessDefaultsDisplayName(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, nil, testSecret, time.Hour)
	router := setupAuthRouter(handler)

	userRepo.On("IdentityTaken", mock.Anything, "alice", "alice@example.com").Return(false, nil).Once()
	userRepo.On("CreateUser", mock.Anything, "alice", "alice@example.com", mock.AnythingOfType("string"), "alice").
		Return(models.User{ID: 7, Username: "alice", Email: "alice@example.com", DisplayName: "alice", PasswordHash: "hash"}, nil).Once()

	body := bytes.NewBufferString(`{"action":"register","username":"alice","email":"alice@example.com","password":"pw"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, float64(7), resp.User["id"])
	assert.NotContains(t, resp.User, "password_hash")
	assert.NotEmpty(t, resp.Token)

	claims, err := auth.ParseToken(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	userRepo.AssertExpectations(t)
}

func TestLoginUnknownUser(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, nil, testSecret, time.Hour)
	router := setupAuthRouter(handler)

	userRepo.On("GetUserByUsername", mock.Anything, "ghost").Return(models.User{}, repositories.ErrUserNotFound).Once()

	body := bytes.NewBufferString(`{"action":"login","username":"ghost","password":"pw"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())
	userRepo.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct")
	require.NoError(t, err)

	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, nil, testSecret, time.Hour)
	router := setupAuthRouter(handler)

	userRepo.On("GetUserByUsername", mock.Anything, "alice").
		Return(models.User{ID: 7, Username: "alice", PasswordHash: hash}, nil).Once()

	body := bytes.NewBufferString(`{"action":"login","username":"alice","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())
	userRepo.AssertExpectations(t)
}

func TestLoginSuccess(t *testing.T) {
	hash, err := auth.HashPassword("correct")
	require.NoError(t, err)

	userRepo := new(mocks.UserRepositoryMock)
	handler := NewAuthHandler(userRepo, nil, testSecret, time.Hour)
	router := setupAuthRouter(handler)

	userRepo.On("GetUserByUsername", mock.Anything, "alice").
		Return(models.User{ID: 7, Username: "alice", PasswordHash: hash}, nil).Once()

	body := bytes.NewBufferString(`{"action":"login","username":"alice","password":"correct"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotContains(t, resp.User, "password_hash")
	assert.NotEmpty(t, resp.Token)
	userRepo.AssertExpectations(t)
}

func TestLoginMissingFields(t *testing.T) {
	handler := NewAuthHandler(new(mocks.UserRepositoryMock), nil, testSecret, time.Hour)
	router := setupAuthRouter(handler)

	body := bytes.NewBufferString(`{"action":"login","username":"alice"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Username and password required"}`, rec.Body.String())
}
