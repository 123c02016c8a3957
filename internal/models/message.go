package models

import "time"

// DirectMessage is a 1:1 message annotated with both parties' profile info.
type DirectMessage struct {
	ID                  int       `db:"id" json:"id"`
	SenderID            int       `db:"sender_id" json:"sender_id"`
	ReceiverID          int       `db:"receiver_id" json:"receiver_id"`
	Content             string    `db:"content" json:"content"`
	IsRead              bool      `db:"is_read" json:"is_read"`
	SenderUsername      string    `db:"sender_username" json:"sender_username"`
	SenderDisplayName   string    `db:"sender_display_name" json:"sender_display_name"`
	SenderAvatar        string    `db:"sender_avatar" json:"sender_avatar"`
	ReceiverUsername    string    `db:"receiver_username" json:"receiver_username"`
	ReceiverDisplayName string    `db:"receiver_display_name" json:"receiver_display_name"`
	ReceiverAvatar      string    `db:"receiver_avatar" json:"receiver_avatar"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}

// Conversation summarizes one inbox row: the latest exchange with a partner
// and how many of their messages are still unread.
type Conversation struct {
	OtherUserID      int       `db:"other_user_id" json:"other_user_id"`
	OtherUsername    string    `db:"other_username" json:"other_username"`
	OtherDisplayName string    `db:"other_display_name" json:"other_display_name"`
	OtherAvatar      string    `db:"other_avatar" json:"other_avatar"`
	LastMessage      string    `db:"last_message" json:"last_message"`
	LastMessageTime  time.Time `db:"last_message_time" json:"last_message_time"`
	UnreadCount      int       `db:"unread_count" json:"unread_count"`
}

// MessageEvent is delivered on a recipient's direct-message websocket feed.
type MessageEvent struct {
	Type    string         `json:"type"`
	Message *DirectMessage `json:"message,omitempty"`
}
