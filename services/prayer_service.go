package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dailyGraceAPI/internal/types/prayer"
)

type PrayerService struct {
	db *pgxpool.Pool
}

func NewPrayerService(db *pgxpool.Pool) *PrayerService {
	return &PrayerService{db: db}
}

const prayerColumns = `id, user_id, title, content, is_answered, is_public,
	answered_date, start_date, created_at, updated_at`

func scanPrayer(row pgx.Row) (*prayer.Prayer, error) {
	var p prayer.Prayer
	err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Content, &p.IsAnswered, &p.IsPublic,
		&p.AnsweredDate, &p.StartDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPrayers lists the caller's prayer requests, newest first.
func (s *PrayerService) GetPrayers(ctx context.Context, clerkID string) ([]*prayer.Prayer, error) {
	userID, err := s.userID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+prayerColumns+`
		FROM prayers
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prayers: %w", err)
	}
	defer rows.Close()

	prayers := []*prayer.Prayer{}
	for rows.Next() {
		p, err := scanPrayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prayer: %w", err)
		}
		prayers = append(prayers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prayers: %w", err)
	}

	return prayers, nil
}

func (s *PrayerService) CreatePrayer(ctx context.Context, clerkID string, req *prayer.CreatePrayerRequest) (*prayer.Prayer, error) {
	userID, err := s.userID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p, err := scanPrayer(s.db.QueryRow(ctx, `
		INSERT INTO prayers (user_id, title, content, is_answered, is_public,
		                     start_date, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, $4, $5, $5, $5)
		RETURNING `+prayerColumns+`
	`, userID, req.Title, req.Content, req.IsPublic, now))
	if err != nil {
		return nil, fmt.Errorf("failed to create prayer: %w", err)
	}

	return p, nil
}

// GetPrayer returns one of the caller's prayers; other users' prayers are
// indistinguishable from missing ones.
func (s *PrayerService) GetPrayer(ctx context.Context, clerkID string, prayerID uuid.UUID) (*prayer.Prayer, error) {
	userID, err := s.userID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	p, err := scanPrayer(s.db.QueryRow(ctx, `
		SELECT `+prayerColumns+`
		FROM prayers
		WHERE id = $1 AND user_id = $2
	`, prayerID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPrayerNotFound
		}
		return nil, fmt.Errorf("failed to get prayer: %w", err)
	}

	return p, nil
}

func (s *PrayerService) UpdatePrayer(ctx context.Context, clerkID string, prayerID uuid.UUID, req *prayer.UpdatePrayerRequest) (*prayer.Prayer, error) {
	userID, err := s.userID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	p, err := scanPrayer(s.db.QueryRow(ctx, `
		UPDATE prayers
		SET title = COALESCE($1, title),
		    content = COALESCE($2, content),
		    is_answered = COALESCE($3, is_answered),
		    is_public = COALESCE($4, is_public),
		    answered_date = CASE WHEN $5::timestamptz IS NOT NULL THEN $5 ELSE answered_date END,
		    updated_at = $6
		WHERE id = $7 AND user_id = $8
		RETURNING `+prayerColumns+`
	`, req.Title, req.Content, req.IsAnswered, req.IsPublic, req.AnsweredDate,
		time.Now(), prayerID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPrayerNotFound
		}
		return nil, fmt.Errorf("failed to update prayer: %w", err)
	}

	return p, nil
}

func (s *PrayerService) DeletePrayer(ctx context.Context, clerkID string, prayerID uuid.UUID) error {
	userID, err := s.userID(ctx, clerkID)
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, `
		DELETE FROM prayers WHERE id = $1 AND user_id = $2
	`, prayerID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete prayer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPrayerNotFound
	}

	return nil
}

func (s *PrayerService) userID(ctx context.Context, clerkID string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return uuid.Nil, ErrUserNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return userID, nil
}
