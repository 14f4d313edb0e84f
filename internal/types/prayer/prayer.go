package prayer

import (
	"time"

	"github.com/google/uuid"
)

type Prayer struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	Title        string     `json:"title" db:"title"`
	Content      string     `json:"content" db:"content"`
	IsAnswered   bool       `json:"is_answered" db:"is_answered"`
	IsPublic     bool       `json:"is_public" db:"is_public"`
	AnsweredDate *time.Time `json:"answered_date" db:"answered_date"`
	StartDate    time.Time  `json:"start_date" db:"start_date"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

type CreatePrayerRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	IsPublic bool   `json:"is_public"`
}

// UpdatePrayerRequest carries a partial update; nil fields are untouched.
type UpdatePrayerRequest struct {
	Title        *string    `json:"title,omitempty"`
	Content      *string    `json:"content,omitempty"`
	IsAnswered   *bool      `json:"is_answered,omitempty"`
	IsPublic     *bool      `json:"is_public,omitempty"`
	AnsweredDate *time.Time `json:"answered_date,omitempty"`
}
