package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dailyGraceAPI/internal/types/board"
	"dailyGraceAPI/internal/types/notification"
)

type BoardService struct {
	db            *pgxpool.Pool
	notifications *NotificationService
}

func NewBoardService(db *pgxpool.Pool, notifications *NotificationService) *BoardService {
	return &BoardService{db: db, notifications: notifications}
}

// GetPublicPosts lists board posts newest first. clerkID may be empty; it
// only affects the amened_by_me flag.
func (s *BoardService) GetPublicPosts(ctx context.Context, clerkID string) ([]*board.Post, error) {
	var callerID *uuid.UUID
	if clerkID != "" {
		var id uuid.UUID
		err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&id)
		if err == nil {
			callerID = &id
		} else if err != pgx.ErrNoRows {
			log.Printf("GetPublicPosts: caller lookup failed: %v", err)
		}
	}

	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.user_id, p.content, p.is_anonymous, p.amen_count, p.created_at,
		       COALESCE(u.username, ''),
		       EXISTS (
		           SELECT 1 FROM board_amens a
		           WHERE a.post_id = p.id AND a.user_id = COALESCE($1, '00000000-0000-0000-0000-000000000000'::uuid)
		       )
		FROM board_posts p
		LEFT JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
		LIMIT 100
	`, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list board posts: %w", err)
	}
	defer rows.Close()

	posts := []*board.Post{}
	for rows.Next() {
		var p board.Post
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Content, &p.IsAnonymous, &p.AmenCount,
			&p.CreatedAt, &p.AuthorName, &p.AmenedByMe,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan board post: %w", err)
		}
		if p.IsAnonymous {
			p.AuthorName = ""
		}
		posts = append(posts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read board posts: %w", err)
	}

	return posts, nil
}

func (s *BoardService) CreatePost(ctx context.Context, clerkID string, req *board.CreatePostRequest) (*board.Post, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	var p board.Post
	err = s.db.QueryRow(ctx, `
		INSERT INTO board_posts (user_id, content, is_anonymous, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, content, is_anonymous, amen_count, created_at
	`, userID, req.Content, req.IsAnonymous, time.Now()).Scan(
		&p.ID, &p.UserID, &p.Content, &p.IsAnonymous, &p.AmenCount, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create board post: %w", err)
	}

	return &p, nil
}

// Amen records one "amen" per user per post and bumps the post counter in
// the same transaction. The post author gets a best-effort notification.
func (s *BoardService) Amen(ctx context.Context, clerkID string, postID uuid.UUID) (*board.AmenResponse, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	var authorID *uuid.UUID
	err = tx.QueryRow(ctx, `SELECT user_id FROM board_posts WHERE id = $1 FOR UPDATE`, postID).Scan(&authorID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO board_amens (user_id, post_id, created_at)
		VALUES ($1, $2, $3)
	`, userID, postID, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyAmened
		}
		return nil, fmt.Errorf("failed to insert amen: %w", err)
	}

	var amenCount int
	err = tx.QueryRow(ctx, `
		UPDATE board_posts SET amen_count = amen_count + 1
		WHERE id = $1
		RETURNING amen_count
	`, postID).Scan(&amenCount)
	if err != nil {
		return nil, fmt.Errorf("failed to update amen count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit amen: %w", err)
	}

	if authorID != nil && *authorID != userID && s.notifications != nil {
		if err := s.notifications.Create(ctx, *authorID, notification.NotificationAmen,
			"Amen", "Someone said amen to your post",
			map[string]any{"post_id": postID.String()},
		); err != nil {
			log.Printf("Amen: notification failed: %v", err)
		}
	}

	return &board.AmenResponse{AmenCount: amenCount}, nil
}
