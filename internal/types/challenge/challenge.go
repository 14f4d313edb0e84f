package challenge

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryBibleReading Category = "bible-reading"
	CategoryPrayer       Category = "prayer"
	CategoryGratitude    Category = "gratitude"
	CategoryMemorization Category = "memorization"
	CategoryWorship      Category = "worship"
	CategoryService      Category = "service"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Challenge struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Description  string     `json:"description" db:"description"`
	Category     Category   `json:"category" db:"category"`
	Difficulty   Difficulty `json:"difficulty" db:"difficulty"`
	DurationDays int        `json:"duration_days" db:"duration_days"`
	StartDate    time.Time  `json:"start_date" db:"start_date"`
	EndDate      time.Time  `json:"end_date" db:"end_date"`
	IsPublic     bool       `json:"is_public" db:"is_public"`
	CreatorID    *uuid.UUID `json:"creator_id" db:"creator_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

type Task struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ChallengeID uuid.UUID `json:"challenge_id" db:"challenge_id"`
	Day         int       `json:"day" db:"day"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// UserChallenge is one user's enrollment in one challenge. Progress is
// always recomputed from user_task_completions, never incremented.
type UserChallenge struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	ChallengeID uuid.UUID  `json:"challenge_id" db:"challenge_id"`
	Progress    int        `json:"progress" db:"progress"`
	StartDate   time.Time  `json:"start_date" db:"start_date"`
	LastCheckIn *time.Time `json:"last_check_in" db:"last_check_in"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type TaskCompletion struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	TaskID      uuid.UUID `json:"task_id" db:"task_id"`
	CompletedAt time.Time `json:"completed_at" db:"completed_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateTaskRequest struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
}

type CreateChallengeRequest struct {
	Title        string              `json:"title" validate:"required"`
	Description  string              `json:"description" validate:"required"`
	Category     string              `json:"category" validate:"required"`
	Difficulty   string              `json:"difficulty" validate:"required"`
	DurationDays int                 `json:"duration_days" validate:"required,min=1"`
	StartDate    string              `json:"start_date" validate:"required"`
	EndDate      string              `json:"end_date" validate:"required"`
	IsPublic     bool                `json:"is_public"`
	Tasks        []CreateTaskRequest `json:"tasks,omitempty"`
}

type CompleteTaskRequest struct {
	TaskDay int `json:"taskDay" validate:"required,min=1"`
}

type CompleteTaskResult struct {
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
}

// TaskView is a task row projected for the detail screen.
type TaskView struct {
	Day         int       `json:"day"`
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsToday     bool      `json:"is_today"`
	Completed   bool      `json:"completed"`
}

type CompletedDay struct {
	Day  int       `json:"day"`
	Date time.Time `json:"date"`
}

type DetailResponse struct {
	Challenge
	Participants   int            `json:"participants"`
	Joined         bool           `json:"joined"`
	CurrentDay     *int           `json:"current_day,omitempty"`
	Progress       *int           `json:"progress,omitempty"`
	TodayCompleted bool           `json:"today_completed"`
	Tasks          []TaskView     `json:"tasks"`
	CompletedDays  []CompletedDay `json:"completed_days"`
}

type ListItem struct {
	Challenge
	Participants int `json:"participants"`
}

// UserChallengeItem merges an enrollment with its challenge for the
// "my challenges" and "completed" screens.
type UserChallengeItem struct {
	Challenge
	Progress    int        `json:"progress"`
	DaysLeft    int        `json:"days_left"`
	CurrentDay  int        `json:"current_day"`
	Joined      bool       `json:"joined"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	LastCheckIn *time.Time `json:"last_check_in,omitempty"`
	EnrolledAt  time.Time  `json:"enrolled_at"`
}
