package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"comics-service/internal/models"
	"comics-service/internal/repositories"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) CreateUser(ctx context.Context, username, email, passwordHash, displayName string) (models.User, error) {
	args := m.Called(ctx, username, email, passwordHash, displayName)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByID(ctx context.Context, userID int) (models.User, error) {
	args := m.Called(ctx, userID)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	args := m.Called(ctx, username)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) IdentityTaken(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

type ChatRepositoryMock struct {
	mock.Mock
}

func (m *ChatRepositoryMock) ListRecent(ctx context.Context) ([]models.ChatMessage, error) {
	args := m.Called(ctx)
	var msgs []models.ChatMessage
	if val := args.Get(0); val != nil {
		msgs = val.([]models.ChatMessage)
	}
	return msgs, args.Error(1)
}

func (m *ChatRepositoryMock) CreateMessage(ctx context.Context, userID int, message string) (models.ChatMessage, error) {
	args := m.Called(ctx, userID, message)
	var msg models.ChatMessage
	if val := args.Get(0); val != nil {
		msg = val.(models.ChatMessage)
	}
	return msg, args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) ListThread(ctx context.Context, userID, otherUserID int) ([]models.DirectMessage, error) {
	args := m.Called(ctx, userID, otherUserID)
	var msgs []models.DirectMessage
	if val := args.Get(0); val != nil {
		msgs = val.([]models.DirectMessage)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) MarkThreadRead(ctx context.Context, userID, otherUserID int) error {
	args := m.Called(ctx, userID, otherUserID)
	return args.Error(0)
}

func (m *MessageRepositoryMock) ListInbox(ctx context.Context, userID int) ([]models.Conversation, error) {
	args := m.Called(ctx, userID)
	var conversations []models.Conversation
	if val := args.Get(0); val != nil {
		conversations = val.([]models.Conversation)
	}
	return conversations, args.Error(1)
}

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, senderID, receiverID int, content string) (models.DirectMessage, error) {
	args := m.Called(ctx, senderID, receiverID, content)
	var msg models.DirectMessage
	if val := args.Get(0); val != nil {
		msg = val.(models.DirectMessage)
	}
	return msg, args.Error(1)
}

type ComicRepositoryMock struct {
	mock.Mock
}

func (m *ComicRepositoryMock) GetComic(ctx context.Context, comicID int) (models.ComicDetail, error) {
	args := m.Called(ctx, comicID)
	var comic models.ComicDetail
	if val := args.Get(0); val != nil {
		comic = val.(models.ComicDetail)
	}
	return comic, args.Error(1)
}

func (m *ComicRepositoryMock) ListComics(ctx context.Context, userID int) ([]models.Comic, error) {
	args := m.Called(ctx, userID)
	var comics []models.Comic
	if val := args.Get(0); val != nil {
		comics = val.([]models.Comic)
	}
	return comics, args.Error(1)
}

func (m *ComicRepositoryMock) CreateComic(ctx context.Context, comic models.NewComic) (int, error) {
	args := m.Called(ctx, comic)
	return args.Int(0), args.Error(1)
}

type InteractionRepositoryMock struct {
	mock.Mock
}

func (m *InteractionRepositoryMock) ListComments(ctx context.Context, comicID int) ([]models.Comment, error) {
	args := m.Called(ctx, comicID)
	var comments []models.Comment
	if val := args.Get(0); val != nil {
		comments = val.([]models.Comment)
	}
	return comments, args.Error(1)
}

func (m *InteractionRepositoryMock) AddLike(ctx context.Context, userID, comicID int) error {
	args := m.Called(ctx, userID, comicID)
	return args.Error(0)
}

func (m *InteractionRepositoryMock) RemoveLike(ctx context.Context, userID, comicID int) error {
	args := m.Called(ctx, userID, comicID)
	return args.Error(0)
}

func (m *InteractionRepositoryMock) CountLikes(ctx context.Context, comicID int) (int, error) {
	args := m.Called(ctx, comicID)
	return args.Int(0), args.Error(1)
}

func (m *InteractionRepositoryMock) AddComment(ctx context.Context, userID, comicID int, content string) (models.Comment, error) {
	args := m.Called(ctx, userID, comicID, content)
	var comment models.Comment
	if val := args.Get(0); val != nil {
		comment = val.(models.Comment)
	}
	return comment, args.Error(1)
}

func (m *InteractionRepositoryMock) UpsertRating(ctx context.Context, userID, comicID, rating int) error {
	args := m.Called(ctx, userID, comicID, rating)
	return args.Error(0)
}

func (m *InteractionRepositoryMock) AverageRating(ctx context.Context, comicID int) (float64, error) {
	args := m.Called(ctx, comicID)
	var avg float64
	if val := args.Get(0); val != nil {
		avg = val.(float64)
	}
	return avg, args.Error(1)
}

var _ repositories.UserRepository = (*UserRepositoryMock)(nil)
var _ repositories.ChatRepository = (*ChatRepositoryMock)(nil)
var _ repositories.MessageRepository = (*MessageRepositoryMock)(nil)
var _ repositories.ComicRepository = (*ComicRepositoryMock)(nil)
var _ repositories.InteractionRepository = (*InteractionRepositoryMock)(nil)
