package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"comics-service/internal/mocks"
	"comics-service/internal/models"
	"comics-service/internal/repositories"
)

func setupComicRouter(handler *ComicHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/comics", handler.Get)
	r.POST("/comics", handler.Create)
	return r
}

func TestGetComicSuccess(t *testing.T) {
	comicRepo := new(mocks.ComicRepositoryMock)
	handler := NewComicHandler(comicRepo, nil)
	router := setupComicRouter(handler)

	comicRepo.On("GetComic", mock.Anything, 5).Return(models.ComicDetail{
		Comic:         models.Comic{ID: 5, UserID: 1, Title: "Moon Run", AvgRating: 4.5, LikesCount: 2},
		CommentsCount: 1,
		Pages:         []models.ComicPage{{ID: 10, ComicID: 5, PageNumber: 1, ImageURL: "https://img/1.png"}},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/comics?id=5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Comic models.ComicDetail `json:"comic"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Moon Run", resp.Comic.Title)
	assert.Equal(t, 4.5, resp.Comic.AvgRating)
	require.Len(t, resp.Comic.Pages, 1)
	assert.Equal(t, 1, resp.Comic.Pages[0].PageNumber)
	comicRepo.AssertExpectations(t)
}

func TestGetComicNotFound(t *testing.T) {
	comicRepo := new(mocks.ComicRepositoryMock)
	handler := NewComicHandler(comicRepo, nil)
	router := setupComicRouter(handler)

	comicRepo.On("GetComic", mock.Anything, 99).Return(models.ComicDetail{}, repositories.ErrComicNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/comics?id=99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Comic not found"}`, rec.Body.String())
	comicRepo.AssertExpectations(t)
}

func TestGetComicInvalidID(t *testing.T) {
	handler := NewComicHandler(new(mocks.ComicRepositoryMock), nil)
	router := setupComicRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/comics?id=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListComicsAll(t *testing.T) {
	comicRepo := new(mocks.ComicRepositoryMock)
	handler := NewComicHandler(comicRepo, nil)
	router := setupComicRouter(handler)

	comicRepo.On("ListComics", mock.Anything, 0).Return([]models.Comic{
		{ID: 2, Title: "Second"},
		{ID: 1, Title: "First"},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/comics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Comics []models.Comic `json:"comics"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Comics, 2)
	assert.Equal(t, 2, resp.Comics[0].ID)
	comicRepo.AssertExpectations(t)
}

func TestListComicsByAuthor(t *testing.T) {
	comicRepo := new(mocks.ComicRepositoryMock)
	handler := NewComicHandler(comicRepo, nil)
	router := setupComicRouter(handler)

	comicRepo.On("ListComics", mock.Anything, 3).Return([]models.Comic{{ID: 4, UserID: 3}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/comics?user_id=3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	comicRepo.AssertExpectations(t)
}

func TestListComicsEmpty(t *testing.T) {
	comicRepo := new(mocks.ComicRepositoryMock)
	handler := NewComicHandler(comicRepo, nil)
	router := setupComicRouter(handler)

	comicRepo.On("ListComics", mock.Anything, 0).Return(([]models.Comic)(nil), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/comics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"comics":[]}`, rec.Body.String())
	comicRepo.AssertExpectations(t)
}

func TestCreateComicMissingTitle(t *testing.T) {
	handler := NewComicHandler(new(mocks.ComicRepositoryMock), nil)
	router := setupComicRouter(handler)

	body := bytes.NewBufferString(`{"user_id":1,"title":"  "}`)
	req := httptest.NewRequest(http.MethodPost, "/comics", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"user_id and title required"}`, rec.Body.String())
}

func TestCreateComicSuccess(t *testing.T) {
	comicRepo := new(mocks.ComicRepositoryMock)
	handler := NewComicHandler(comicRepo, nil)
	router := setupComicRouter(handler)

	comicRepo.On("CreateComic", mock.Anything, models.NewComic{
		UserID: 1,
		Title:  "Moon Run",
		Genre:  "sci-fi",
		Pages: []models.NewComicPage{
			{PageNumber: 1, ImageURL: "https://img/1.png", Caption: "launch"},
			{PageNumber: 2, ImageURL: "https://img/2.png"},
		},
	}).Return(5, nil).Once()

	body := bytes.NewBufferString(`{
		"user_id": 1,
		"title": "Moon Run",
		"genre": "sci-fi",
		"pages": [
			{"page_number": 1, "image_url": "https://img/1.png", "caption": "launch"},
			{"page_number": 2, "image_url": "https://img/2.png"}
		]
	}`)
	req := httptest.NewRequest(http.MethodPost, "/comics", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Comic created", resp["message"])
	assert.Equal(t, float64(5), resp["comic_id"])
	comicRepo.AssertExpectations(t)
}

func TestCreateComicRepoError(t *testing.T) {
	comicRepo := new(mocks.ComicRepositoryMock)
	handler := NewComicHandler(comicRepo, nil)
	router := setupComicRouter(handler)

	comicRepo.On("CreateComic", mock.Anything, mock.AnythingOfType("models.NewComic")).
		Return(0, assert.AnError).Once()

	body := bytes.NewBufferString(`{"user_id":1,"title":"Moon Run"}`)
	req := httptest.NewRequest(http.MethodPost, "/comics", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	comicRepo.AssertExpectations(t)
}
