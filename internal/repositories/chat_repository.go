package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"comics-service/internal/models"
)

// ChatRepository abstracts public chat room persistence.
type ChatRepository interface {
	ListRecent(ctx context.Context) ([]models.ChatMessage, error)
	CreateMessage(ctx context.Context, userID int, message string) (models.ChatMessage, error)
}

// ChatRepo is a sqlx implementation of ChatRepository.
type ChatRepo struct {
	db *sqlx.DB
}

// NewChatRepo constructs a ChatRepo.
func NewChatRepo(db *sqlx.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

// ListRecent returns the latest 100 room messages in chronological order.
// The window is selected newest-first and reversed so older history falls
// off while the result still reads oldest-to-newest.
func (r *ChatRepo) ListRecent(ctx context.Context) ([]models.ChatMessage, error) {
	query := `SELECT cm.id, cm.user_id, cm.message, cm.created_at,
            u.username, u.display_name, u.avatar_url
        FROM chat_messages cm
        JOIN users u ON cm.user_id = u.id
        ORDER BY cm.created_at DESC
        LIMIT 100`
	var msgs []models.ChatMessage
	if err := r.db.SelectContext(ctx, &msgs, query); err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// CreateMessage appends a message to the room.
func (r *ChatRepo) CreateMessage(ctx context.Context, userID int, message string) (models.ChatMessage, error) {
	var msg models.ChatMessage
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO chat_messages (user_id, message) VALUES ($1, $2) RETURNING id, user_id, message, created_at`,
		userID, message).Scan(&msg.ID, &msg.UserID, &msg.Message, &msg.CreatedAt)
	return msg, err
}
