package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dailyGraceAPI/internal/types/gratitude"
)

type GratitudeService struct {
	db *pgxpool.Pool
}

func NewGratitudeService(db *pgxpool.Pool) *GratitudeService {
	return &GratitudeService{db: db}
}

const entryColumns = `id, user_id, content, tags, is_public, created_at, updated_at`

func scanEntry(row pgx.Row) (*gratitude.Entry, error) {
	var e gratitude.Entry
	err := row.Scan(&e.ID, &e.UserID, &e.Content, &e.Tags, &e.IsPublic, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return &e, nil
}

// GetEntries lists the caller's gratitude journal, newest first.
func (s *GratitudeService) GetEntries(ctx context.Context, clerkID string) ([]*gratitude.Entry, error) {
	userID, err := s.userID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+entryColumns+`
		FROM gratitude_journals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list gratitude entries: %w", err)
	}
	defer rows.Close()

	entries := []*gratitude.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gratitude entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read gratitude entries: %w", err)
	}

	return entries, nil
}

func (s *GratitudeService) CreateEntry(ctx context.Context, clerkID string, req *gratitude.CreateEntryRequest) (*gratitude.Entry, error) {
	userID, err := s.userID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	e, err := scanEntry(s.db.QueryRow(ctx, `
		INSERT INTO gratitude_journals (user_id, content, tags, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING `+entryColumns+`
	`, userID, req.Content, tags, req.IsPublic, now))
	if err != nil {
		return nil, fmt.Errorf("failed to create gratitude entry: %w", err)
	}

	return e, nil
}

func (s *GratitudeService) GetEntry(ctx context.Context, clerkID string, entryID uuid.UUID) (*gratitude.Entry, error) {
	userID, err := s.userID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	e, err := scanEntry(s.db.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM gratitude_journals
		WHERE id = $1 AND user_id = $2
	`, entryID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get gratitude entry: %w", err)
	}

	return e, nil
}

func (s *GratitudeService) UpdateEntry(ctx context.Context, clerkID string, entryID uuid.UUID, req *gratitude.UpdateEntryRequest) (*gratitude.Entry, error) {
	userID, err := s.userID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	e, err := scanEntry(s.db.QueryRow(ctx, `
		UPDATE gratitude_journals
		SET content = COALESCE($1, content),
		    is_public = COALESCE($2, is_public),
		    tags = CASE WHEN $3::text[] IS NOT NULL THEN $3 ELSE tags END,
		    updated_at = $4
		WHERE id = $5 AND user_id = $6
		RETURNING `+entryColumns+`
	`, req.Content, req.IsPublic, req.Tags, time.Now(), entryID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to update gratitude entry: %w", err)
	}

	return e, nil
}

func (s *GratitudeService) DeleteEntry(ctx context.Context, clerkID string, entryID uuid.UUID) error {
	userID, err := s.userID(ctx, clerkID)
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, `
		DELETE FROM gratitude_journals WHERE id = $1 AND user_id = $2
	`, entryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete gratitude entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func (s *GratitudeService) userID(ctx context.Context, clerkID string) (uuid.UUID, error) {
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
