package services

import "errors"

// Business-rule errors surfaced by the services. Handlers map these onto
// HTTP statuses with errors.Is; anything else is a store error and becomes
// a 500.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrTaskNotFound      = errors.New("task not found for that day")
	ErrNotJoined         = errors.New("user has not joined this challenge")
	ErrAlreadyJoined     = errors.New("already joined this challenge")
	ErrAlreadyCompleted  = errors.New("task already completed")
	ErrPrayerNotFound    = errors.New("prayer not found")
	ErrEntryNotFound     = errors.New("gratitude entry not found")
	ErrPostNotFound      = errors.New("post not found")
	ErrNotifNotFound     = errors.New("notification not found")
	ErrAlreadyAmened     = errors.New("already said amen to this post")
)
