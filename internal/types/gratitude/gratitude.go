package gratitude

import (
	"time"

	"github.com/google/uuid"
)

type Entry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	Tags      []string  `json:"tags" db:"tags"`
	IsPublic  bool      `json:"is_public" db:"is_public"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateEntryRequest struct {
	Content  string   `json:"content" validate:"required"`
	IsPublic bool     `json:"is_public"`
	Tags     []string `json:"tags,omitempty"`
}

type UpdateEntryRequest struct {
	Content  *string  `json:"content,omitempty"`
	IsPublic *bool    `json:"is_public,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}
