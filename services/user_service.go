package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dailyGraceAPI/internal/types/user"
)

type UserService struct {
	db *pgxpool.Pool
}

func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

const userColumns = `id, clerk_id, email, username, first_name, last_name,
	image_url, denomination, onboarded, created_at, updated_at`

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.ClerkID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
		&u.ImageURL, &u.Denomination, &u.Onboarded, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a user synced from the Clerk webhook. A replayed
// user.created event for an existing clerk id updates the profile instead.
func (s *UserService) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `
		INSERT INTO users (clerk_id, email, username, first_name, last_name, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (clerk_id) DO UPDATE SET
			email = EXCLUDED.email,
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			image_url = EXCLUDED.image_url,
			updated_at = NOW()
		RETURNING `+userColumns+`
	`, req.ClerkID, req.Email, req.Username, req.FirstName, req.LastName, req.ImageURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

func (s *UserService) UpdateUser(ctx context.Context, clerkID string, req *user.UpdateUserRequest) (*user.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `
		UPDATE users
		SET email = COALESCE($1, email),
		    username = COALESCE($2, username),
		    first_name = COALESCE($3, first_name),
		    last_name = COALESCE($4, last_name),
		    image_url = COALESCE($5, image_url),
		    updated_at = NOW()
		WHERE clerk_id = $6
		RETURNING `+userColumns+`
	`, req.Email, req.Username, req.FirstName, req.LastName, req.ImageURL, clerkID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return u, nil
}

// DeleteUser removes the synced profile. Owned rows (prayers, gratitude,
// enrollments, completions) cascade with it; board posts stay, anonymized
// by the SET NULL on their author column.
func (s *UserService) DeleteUser(ctx context.Context, clerkID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE clerk_id = $1`, clerkID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (s *UserService) GetProfile(ctx context.Context, clerkID string) (*user.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE clerk_id = $1
	`, clerkID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// CompleteOnboarding stores the display name and denomination picked on the
// first-run screen and marks the profile onboarded.
func (s *UserService) CompleteOnboarding(ctx context.Context, clerkID string, req *user.OnboardingRequest) (*user.User, error) {
	var denomination *string
	if req.Denomination != "" {
		denomination = &req.Denomination
	}

	u, err := scanUser(s.db.QueryRow(ctx, `
		UPDATE users
		SET username = $1, denomination = $2, onboarded = TRUE, updated_at = NOW()
		WHERE clerk_id = $3
		RETURNING `+userColumns+`
	`, req.Username, denomination, clerkID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to complete onboarding: %w", err)
	}

	return u, nil
}

func (s *UserService) GetDenominations(ctx context.Context) ([]*user.Denomination, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, sort_order FROM denominations ORDER BY sort_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list denominations: %w", err)
	}
	defer rows.Close()

	denominations := []*user.Denomination{}
	for rows.Next() {
		var d user.Denomination
		if err := rows.Scan(&d.ID, &d.Name, &d.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan denomination: %w", err)
		}
		denominations = append(denominations, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read denominations: %w", err)
	}

	return denominations, nil
}
