package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"comics-service/internal/models"
)

// MessageRepository abstracts direct message persistence.
type MessageRepository interface {
	ListThread(ctx context.Context, userID, otherUserID int) ([]models.DirectMessage, error)
	MarkThreadRead(ctx context.Context, userID, otherUserID int) error
	ListInbox(ctx context.Context, userID int) ([]models.Conversation, error)
	CreateMessage(ctx context.Context, senderID, receiverID int, content string) (models.DirectMessage, error)
}

// MessageRepo is a sqlx implementation of MessageRepository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs a MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// ListThread returns every message between the two users, oldest first,
// annotated with both parties' profile fields.
func (r *MessageRepo) ListThread(ctx context.Context, userID, otherUserID int) ([]models.DirectMessage, error) {
	query := `SELECT m.id, m.sender_id, m.receiver_id, m.content, m.is_read, m.created_at,
            su.username AS sender_username, su.display_name AS sender_display_name, su.avatar_url AS sender_avatar,
            ru.username AS receiver_username, ru.display_name AS receiver_display_name, ru.avatar_url AS receiver_avatar
        FROM messages m
        JOIN users su ON su.id = m.sender_id
        JOIN users ru ON ru.id = m.receiver_id
        WHERE (m.sender_id=$1 AND m.receiver_id=$2) OR (m.sender_id=$2 AND m.receiver_id=$1)
        ORDER BY m.created_at ASC`
	var msgs []models.DirectMessage
	err := r.db.SelectContext(ctx, &msgs, query, userID, otherUserID)
	return msgs, err
}

// MarkThreadRead flags everything the counterpart sent to the user as read.
// Safe to repeat.
func (r *MessageRepo) MarkThreadRead(ctx context.Context, userID, otherUserID int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE messages SET is_read = TRUE WHERE receiver_id=$1 AND sender_id=$2 AND is_read = FALSE`,
		userID, otherUserID)
	return err
}

// ListInbox returns one row per conversation partner with the latest
// message and the unread count. DISTINCT ON keys the result by partner id,
// so the rows come back ordered by partner identity with recency only
// breaking ties within a partner.
func (r *MessageRepo) ListInbox(ctx context.Context, userID int) ([]models.Conversation, error) {
	query := `SELECT DISTINCT ON (partner.id)
            partner.id AS other_user_id,
            partner.username AS other_username,
            partner.display_name AS other_display_name,
            partner.avatar_url AS other_avatar,
            m.content AS last_message,
            m.created_at AS last_message_time,
            (SELECT COUNT(*) FROM messages um
                WHERE um.sender_id = partner.id AND um.receiver_id = $1 AND um.is_read = FALSE) AS unread_count
        FROM messages m
        JOIN users partner ON partner.id = CASE WHEN m.sender_id = $1 THEN m.receiver_id ELSE m.sender_id END
        WHERE m.sender_id = $1 OR m.receiver_id = $1
        ORDER BY partner.id, m.created_at DESC`
	var conversations []models.Conversation
	err := r.db.SelectContext(ctx, &conversations, query, userID)
	return conversations, err
}

// CreateMessage stores a direct message.
func (r *MessageRepo) CreateMessage(ctx context.Context, senderID, receiverID int, content string) (models.DirectMessage, error) {
	var msg models.DirectMessage
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO messages (sender_id, receiver_id, content) VALUES ($1, $2, $3) RETURNING id, sender_id, receiver_id, content, is_read, created_at`,
		senderID, receiverID, content).
		Scan(&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Content, &msg.IsRead, &msg.CreatedAt)
	return msg, err
}
