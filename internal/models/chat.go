package models

import (
	"time"

	"github.com/google/uuid"
)

type MessageSender string

const (
	SenderUser MessageSender = "user"
	SenderBot  MessageSender = "bot"
)

type ChatSession struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

type ChatMessage struct {
	ID        uuid.UUID     `db:"id"`
	SessionID uuid.UUID     `db:"session_id"`
	Sender    MessageSender `db:"sender"`
	Message   string        `db:"message"`
	Metadata  string        `db:"metadata"` // JSON: query category, context sources
	CreatedAt time.Time     `db:"created_at"`
}
