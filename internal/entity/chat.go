package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/linguabridge/constants"
)

// Chat is the conversation one user has about one document.
type Chat struct {
	ID         uuid.UUID `json:"id"`
	DocumentID uuid.UUID `json:"document_id"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type Message struct {
	ID        uuid.UUID             `json:"id"`
	ChatID    uuid.UUID             `json:"chat_id"`
	Role      constants.MessageRole `json:"role"`
	Content   string                `json:"content"`
	Position  int                   `json:"position"`
	CreatedAt time.Time             `json:"created_at"`
}

// Feedback is a user comment, optionally about a document. Rating 0 means unrated.
type Feedback struct {
	ID         uuid.UUID  `json:"id"`
	UserID     string     `json:"user_id"`
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
	Text       string     `json:"feedback_text"`
	Type       string     `json:"feedback_type"`
	Rating     int        `json:"rating,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
