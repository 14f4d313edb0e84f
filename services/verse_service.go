package services

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dailyGraceAPI/internal/types/verse"
)

type VerseService struct {
	db *pgxpool.Pool
}

func NewVerseService(db *pgxpool.Pool) *VerseService {
	return &VerseService{db: db}
}

var fallbackVerse = verse.Verse{
	Reference: "Lamentations 3:22-23",
	Text:      "The steadfast love of the Lord never ceases; his mercies never come to an end; they are new every morning; great is your faithfulness.",
}

// GetDailyVerse picks the verse assigned to today's day of year. When no
// verse is seeded for the day (or the lookup fails) it degrades to a
// built-in verse rather than failing the home screen.
func (s *VerseService) GetDailyVerse(ctx context.Context) *verse.Verse {
	dayOfYear := time.Now().YearDay()

	var v verse.Verse
	err := s.db.QueryRow(ctx, `
		SELECT id, reference, text, day_of_year
		FROM daily_verses
		WHERE day_of_year = $1
	`, dayOfYear).Scan(&v.ID, &v.Reference, &v.Text, &v.DayOfYear)
	if err != nil {
		if err != pgx.ErrNoRows {
			log.Printf("GetDailyVerse: lookup failed: %v", err)
		}
		fb := fallbackVerse
		fb.DayOfYear = dayOfYear
		return &fb
	}

	return &v
}
