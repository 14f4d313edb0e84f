// Package progress holds the challenge progress arithmetic shared by the
// challenge service and its read projections.
package progress

import (
	"math"
	"time"
)

// Percent converts a completed-task count into an integer percentage of the
// challenge duration. Standard rounding, clamped to 100 so a stray extra
// completion row can never push an enrollment past full.
func Percent(completedCount, durationDays int) int {
	if durationDays <= 0 {
		return 0
	}
	if completedCount <= 0 {
		return 0
	}
	p := int(math.Round(float64(completedCount*100) / float64(durationDays)))
	if p > 100 {
		return 100
	}
	return p
}

// CurrentDay returns which day of the challenge "now" falls on, counted from
// startDate and clamped to [1, totalDays].
func CurrentDay(startDate, now time.Time, totalDays int) int {
	diff := now.Sub(startDate)
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 1 {
		days = 1
	}
	if days > totalDays {
		days = totalDays
	}
	return days
}

// DaysLeft returns the number of days until endDate, never negative.
func DaysLeft(endDate, now time.Time) int {
	diff := endDate.Sub(now)
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// SameDay reports whether two timestamps fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
