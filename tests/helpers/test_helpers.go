package helpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SetupTestDB creates a test database connection. Tests that need a database
// are skipped when no test database is configured.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL or DATABASE_URL not set, skipping database test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	return pool
}

// CleanupTestDB removes data created by test users and closes the pool.
func CleanupTestDB(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()
	statements := []string{
		"DELETE FROM user_task_completions WHERE user_id IN (SELECT id FROM users WHERE clerk_id LIKE 'user_test%')",
		"DELETE FROM user_challenges WHERE user_id IN (SELECT id FROM users WHERE clerk_id LIKE 'user_test%')",
		"DELETE FROM board_amens WHERE user_id IN (SELECT id FROM users WHERE clerk_id LIKE 'user_test%')",
		"DELETE FROM board_posts WHERE user_id IN (SELECT id FROM users WHERE clerk_id LIKE 'user_test%')",
		"DELETE FROM notifications WHERE user_id IN (SELECT id FROM users WHERE clerk_id LIKE 'user_test%')",
		"DELETE FROM prayers WHERE user_id IN (SELECT id FROM users WHERE clerk_id LIKE 'user_test%')",
		"DELETE FROM gratitude_journals WHERE user_id IN (SELECT id FROM users WHERE clerk_id LIKE 'user_test%')",
		"DELETE FROM challenges WHERE title LIKE 'Test Challenge%'",
		"DELETE FROM users WHERE clerk_id LIKE 'user_test%'",
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			t.Logf("Warning: failed to cleanup test data: %v", err)
		}
	}
	pool.Close()
}

// SeedTestUser inserts a user directly, the way the Clerk webhook would.
func SeedTestUser(t *testing.T, pool *pgxpool.Pool, clerkID string) uuid.UUID {
	ctx := context.Background()

	var id uuid.UUID
	err := pool.QueryRow(ctx,
		`INSERT INTO users (clerk_id, email, username, onboarded)
		 VALUES ($1, $2, $3, TRUE)
		 ON CONFLICT (clerk_id) DO UPDATE SET updated_at = NOW()
		 RETURNING id`,
		clerkID, clerkID+"@example.com", clerkID).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to seed test user: %v", err)
	}

	return id
}

// SeedTestChallenge inserts a challenge with one task per day.
func SeedTestChallenge(t *testing.T, pool *pgxpool.Pool, durationDays int) uuid.UUID {
	ctx := context.Background()

	start := time.Now().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, durationDays-1)

	var challengeID uuid.UUID
	err := pool.QueryRow(ctx,
		`INSERT INTO challenges (title, description, category, difficulty, duration_days, start_date, end_date, is_public)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		 RETURNING id`,
		fmt.Sprintf("Test Challenge %d-Day", durationDays),
		"Seeded by the integration suite", "prayer", "easy",
		durationDays, start, end).Scan(&challengeID)
	if err != nil {
		t.Fatalf("Failed to seed test challenge: %v", err)
	}

	for day := 1; day <= durationDays; day++ {
		_, err := pool.Exec(ctx,
			`INSERT INTO challenge_tasks (challenge_id, day, title, description, date)
			 VALUES ($1, $2, $3, $4, $5)`,
			challengeID, day,
			fmt.Sprintf("Day %d", day), fmt.Sprintf("Task for day %d", day),
			start.AddDate(0, 0, day-1))
		if err != nil {
			t.Fatalf("Failed to seed challenge task: %v", err)
		}
	}

	return challengeID
}

// GenerateMockClerkJWT generates a mock JWT token for testing.
func GenerateMockClerkJWT(clerkID string) (string, error) {
	secretKey := []byte("test-secret-key-for-testing-only")

	claims := jwt.MapClaims{
		"sub": clerkID,
		"iss": "https://clerk.test",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour * 24).Unix(),
		"azp": "test-app-id",
		"sid": "sess_test123",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// MockClerkWebhookPayload creates a mock webhook payload.
func MockClerkWebhookPayload(eventType string, clerkID string) []byte {
	payload := ""

	switch eventType {
	case "user.created":
		payload = fmt.Sprintf(`{
			"data": {
				"id": "%s",
				"first_name": "Test",
				"last_name": "User",
				"email_addresses": [{
					"id": "email_123",
					"email_address": "test.user@example.com"
				}],
				"username": "testuser",
				"image_url": "https://example.com/image.jpg"
			},
			"object": "event",
			"type": "%s"
		}`, clerkID, eventType)

	case "user.updated":
		payload = fmt.Sprintf(`{
			"data": {
				"id": "%s",
				"first_name": "Updated",
				"last_name": "User",
				"email_addresses": [{
					"id": "email_123",
					"email_address": "test.user@example.com"
				}],
				"username": "updateduser",
				"image_url": "https://example.com/new-image.jpg"
			},
			"object": "event",
			"type": "%s"
		}`, clerkID, eventType)

	case "user.deleted":
		payload = fmt.Sprintf(`{
			"data": {
				"id": "%s",
				"deleted": true
			},
			"object": "event",
			"type": "%s"
		}`, clerkID, eventType)
	}

	return []byte(payload)
}
