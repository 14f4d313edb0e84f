package board

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      *uuid.UUID `json:"-" db:"user_id"`
	Content     string     `json:"content" db:"content"`
	IsAnonymous bool       `json:"is_anonymous" db:"is_anonymous"`
	AmenCount   int        `json:"amen_count" db:"amen_count"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`

	// AuthorName is empty for anonymous posts.
	AuthorName string `json:"author_name,omitempty"`
	// AmenedByMe is only set for authenticated callers.
	AmenedByMe bool `json:"amened_by_me"`
}

type CreatePostRequest struct {
	Content     string `json:"content" validate:"required"`
	IsAnonymous bool   `json:"is_anonymous"`
}

type AmenResponse struct {
	AmenCount int `json:"amen_count"`
}
