package models

import "time"

// ChatMessage is one entry in the public chat room, joined with the author's
// public profile fields.
type ChatMessage struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	Message     string    `db:"message" json:"message"`
	Username    string    `db:"username" json:"username"`
	DisplayName string    `db:"display_name" json:"display_name"`
	AvatarURL   string    `db:"avatar_url" json:"avatar_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ChatEvent is broadcasted through the public chat websocket feed.
type ChatEvent struct {
	Type    string       `json:"type"`
	Message *ChatMessage `json:"message,omitempty"`
}
