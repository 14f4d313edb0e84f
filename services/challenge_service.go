package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"dailyGraceAPI/internal/progress"
	"dailyGraceAPI/internal/types/challenge"
)

type ChallengeService struct {
	db *pgxpool.Pool
}

func NewChallengeService(db *pgxpool.Pool) *ChallengeService {
	return &ChallengeService{db: db}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx so lookups can
// run inside or outside a transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *ChallengeService) resolveUserID(ctx context.Context, q rowQuerier, clerkID string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := q.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return uuid.Nil, ErrUserNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return userID, nil
}

// CompleteTask records that the caller finished the given day of a challenge,
// then recomputes the enrollment's progress from the completion log. The
// whole workflow runs in one transaction with the enrollment row locked, so
// concurrent check-ins cannot leave progress inconsistent.
func (s *ChallengeService) CompleteTask(ctx context.Context, clerkID string, challengeID uuid.UUID, taskDay int) (*challenge.CompleteTaskResult, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	userID, err := s.resolveUserID(ctx, tx, clerkID)
	if err != nil {
		return nil, err
	}

	var taskID uuid.UUID
	err = tx.QueryRow(ctx, `
		SELECT id FROM challenge_tasks
		WHERE challenge_id = $1 AND day = $2
	`, challengeID, taskDay).Scan(&taskID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_task_completions
			WHERE user_id = $1 AND task_id = $2
		)
	`, userID, taskID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing completion: %w", err)
	}
	if exists {
		return nil, ErrAlreadyCompleted
	}

	now := time.Now()
	_, err = tx.Exec(ctx, `
		INSERT INTO user_task_completions (user_id, task_id, completed_at, created_at)
		VALUES ($1, $2, $3, $3)
	`, userID, taskID, now)
	if err != nil {
		// The unique constraint backs the pre-check under concurrency.
		if isUniqueViolation(err) {
			return nil, ErrAlreadyCompleted
		}
		return nil, fmt.Errorf("failed to insert completion: %w", err)
	}

	var enrollment challenge.UserChallenge
	err = tx.QueryRow(ctx, `
		SELECT id, completed FROM user_challenges
		WHERE user_id = $1 AND challenge_id = $2
		FOR UPDATE
	`, userID, challengeID).Scan(&enrollment.ID, &enrollment.Completed)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotJoined
		}
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}

	var durationDays int
	err = tx.QueryRow(ctx, `SELECT duration_days FROM challenges WHERE id = $1`, challengeID).Scan(&durationDays)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	// Full recount from the completion log rather than an increment. This is
	// what keeps progress correct after backfills or replays.
	var completedCount int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM user_task_completions utc
		JOIN challenge_tasks ct ON ct.id = utc.task_id
		WHERE utc.user_id = $1 AND ct.challenge_id = $2
	`, userID, challengeID).Scan(&completedCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count completions: %w", err)
	}

	pct := progress.Percent(completedCount, durationDays)
	completedNow := pct >= 100

	if completedNow && !enrollment.Completed {
		_, err = tx.Exec(ctx, `
			UPDATE user_challenges
			SET progress = $1, last_check_in = $2, updated_at = $2,
			    completed = TRUE, completed_at = $2
			WHERE id = $3
		`, pct, now, enrollment.ID)
	} else {
		// Never re-stamp completed_at once set.
		_, err = tx.Exec(ctx, `
			UPDATE user_challenges
			SET progress = $1, last_check_in = $2, updated_at = $2
			WHERE id = $3
		`, pct, now, enrollment.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update enrollment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit completion: %w", err)
	}

	return &challenge.CompleteTaskResult{
		Progress:  pct,
		Completed: completedNow || enrollment.Completed,
	}, nil
}

// JoinChallenge enrolls the caller with zero progress. One enrollment per
// user per challenge, backed by a unique constraint.
func (s *ChallengeService) JoinChallenge(ctx context.Context, clerkID string, challengeID uuid.UUID) (*challenge.UserChallenge, error) {
	userID, err := s.resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	var exists bool
	err = s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_challenges
			WHERE user_id = $1 AND challenge_id = $2
		)
	`, userID, challengeID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check participation: %w", err)
	}
	if exists {
		return nil, ErrAlreadyJoined
	}

	err = s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM challenges WHERE id = $1)`, challengeID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check challenge: %w", err)
	}
	if !exists {
		return nil, ErrChallengeNotFound
	}

	now := time.Now()
	var enrollment challenge.UserChallenge
	err = s.db.QueryRow(ctx, `
		INSERT INTO user_challenges (user_id, challenge_id, progress, start_date, created_at, updated_at)
		VALUES ($1, $2, 0, $3, $3, $3)
		RETURNING id, user_id, challenge_id, progress, start_date, last_check_in,
		          completed, completed_at, created_at, updated_at
	`, userID, challengeID, now).Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.ChallengeID,
		&enrollment.Progress,
		&enrollment.StartDate,
		&enrollment.LastCheckIn,
		&enrollment.Completed,
		&enrollment.CompletedAt,
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyJoined
		}
		return nil, fmt.Errorf("failed to join challenge: %w", err)
	}

	return &enrollment, nil
}

// GetChallengeDetail builds the challenge screen projection. clerkID may be
// empty for anonymous callers; enrollment-dependent fields stay unset then.
// Secondary lookups degrade to zero values instead of failing the request.
func (s *ChallengeService) GetChallengeDetail(ctx context.Context, clerkID string, challengeID uuid.UUID) (*challenge.DetailResponse, error) {
	var ch challenge.Challenge
	err := s.db.QueryRow(ctx, `
		SELECT id, title, description, category, difficulty, duration_days,
		       start_date, end_date, is_public, creator_id, created_at
		FROM challenges WHERE id = $1
	`, challengeID).Scan(
		&ch.ID, &ch.Title, &ch.Description, &ch.Category, &ch.Difficulty,
		&ch.DurationDays, &ch.StartDate, &ch.EndDate, &ch.IsPublic,
		&ch.CreatorID, &ch.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	detail := &challenge.DetailResponse{
		Challenge:     ch,
		Tasks:         []challenge.TaskView{},
		CompletedDays: []challenge.CompletedDay{},
	}

	if err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM user_challenges WHERE challenge_id = $1
	`, challengeID).Scan(&detail.Participants); err != nil {
		log.Printf("GetChallengeDetail: participant count failed: %v", err)
		detail.Participants = 0
	}

	var userID uuid.UUID
	var enrollment *challenge.UserChallenge
	if clerkID != "" {
		userID, err = s.resolveUserID(ctx, s.db, clerkID)
		if err == nil {
			var uc challenge.UserChallenge
			err := s.db.QueryRow(ctx, `
				SELECT id, progress, completed, completed_at, start_date, last_check_in
				FROM user_challenges
				WHERE user_id = $1 AND challenge_id = $2
			`, userID, challengeID).Scan(
				&uc.ID, &uc.Progress, &uc.Completed, &uc.CompletedAt,
				&uc.StartDate, &uc.LastCheckIn,
			)
			if err == nil {
				enrollment = &uc
			} else if err != pgx.ErrNoRows {
				log.Printf("GetChallengeDetail: enrollment lookup failed: %v", err)
			}
		} else if !errors.Is(err, ErrUserNotFound) {
			log.Printf("GetChallengeDetail: user lookup failed: %v", err)
		}
	}

	completedByDay := make(map[int]time.Time)
	if enrollment != nil {
		rows, err := s.db.Query(ctx, `
			SELECT ct.day, utc.completed_at
			FROM user_task_completions utc
			JOIN challenge_tasks ct ON ct.id = utc.task_id
			WHERE utc.user_id = $1 AND ct.challenge_id = $2
			ORDER BY utc.completed_at DESC
		`, userID, challengeID)
		if err != nil {
			log.Printf("GetChallengeDetail: completions lookup failed: %v", err)
		} else {
			defer rows.Close()
			for rows.Next() {
				var cd challenge.CompletedDay
				if err := rows.Scan(&cd.Day, &cd.Date); err != nil {
					log.Printf("GetChallengeDetail: completion scan failed: %v", err)
					continue
				}
				detail.CompletedDays = append(detail.CompletedDays, cd)
				completedByDay[cd.Day] = cd.Date
			}
			if err := rows.Err(); err != nil {
				log.Printf("GetChallengeDetail: completions iteration failed: %v", err)
			}
		}
	}

	now := time.Now()
	taskRows, err := s.db.Query(ctx, `
		SELECT day, title, description, date
		FROM challenge_tasks
		WHERE challenge_id = $1
		ORDER BY day ASC
	`, challengeID)
	if err != nil {
		log.Printf("GetChallengeDetail: tasks lookup failed: %v", err)
	} else {
		defer taskRows.Close()
		for taskRows.Next() {
			var (
				tv   challenge.TaskView
				desc *string
			)
			if err := taskRows.Scan(&tv.Day, &tv.Title, &desc, &tv.Date); err != nil {
				log.Printf("GetChallengeDetail: task scan failed: %v", err)
				continue
			}
			if desc != nil {
				tv.Description = *desc
			}
			tv.IsToday = progress.SameDay(tv.Date, now)
			_, tv.Completed = completedByDay[tv.Day]
			if tv.IsToday && tv.Completed {
				detail.TodayCompleted = true
			}
			detail.Tasks = append(detail.Tasks, tv)
		}
		if err := taskRows.Err(); err != nil {
			log.Printf("GetChallengeDetail: tasks iteration failed: %v", err)
		}
	}

	if enrollment != nil {
		detail.Joined = true
		currentDay := progress.CurrentDay(ch.StartDate, now, ch.DurationDays)
		detail.CurrentDay = &currentDay
		p := enrollment.Progress
		detail.Progress = &p
	}

	return detail, nil
}

// GetPublicChallenges lists public challenges newest first with participant
// counts.
func (s *ChallengeService) GetPublicChallenges(ctx context.Context) ([]*challenge.ListItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT c.id, c.title, c.description, c.category, c.difficulty,
		       c.duration_days, c.start_date, c.end_date, c.is_public,
		       c.creator_id, c.created_at,
		       COUNT(uc.id) AS participants
		FROM challenges c
		LEFT JOIN user_challenges uc ON uc.challenge_id = c.id
		WHERE c.is_public = TRUE
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	defer rows.Close()

	items := []*challenge.ListItem{}
	for rows.Next() {
		var item challenge.ListItem
		err := rows.Scan(
			&item.ID, &item.Title, &item.Description, &item.Category,
			&item.Difficulty, &item.DurationDays, &item.StartDate,
			&item.EndDate, &item.IsPublic, &item.CreatorID, &item.CreatedAt,
			&item.Participants,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read challenges: %w", err)
	}

	return items, nil
}

// GetUserChallenges lists the caller's enrollments merged with challenge data.
func (s *ChallengeService) GetUserChallenges(ctx context.Context, clerkID string) ([]*challenge.UserChallengeItem, error) {
	return s.listEnrollments(ctx, clerkID, false)
}

// GetCompletedChallenges lists the caller's completed enrollments.
func (s *ChallengeService) GetCompletedChallenges(ctx context.Context, clerkID string) ([]*challenge.UserChallengeItem, error) {
	return s.listEnrollments(ctx, clerkID, true)
}

func (s *ChallengeService) listEnrollments(ctx context.Context, clerkID string, completedOnly bool) ([]*challenge.UserChallengeItem, error) {
	userID, err := s.resolveUserID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT c.id, c.title, c.description, c.category, c.difficulty,
		       c.duration_days, c.start_date, c.end_date, c.is_public,
		       c.creator_id, c.created_at,
		       uc.progress, uc.start_date, uc.last_check_in,
		       uc.completed, uc.completed_at, uc.created_at
		FROM user_challenges uc
		JOIN challenges c ON c.id = uc.challenge_id
		WHERE uc.user_id = $1
	`
	if completedOnly {
		query += ` AND uc.completed = TRUE`
	}
	query += ` ORDER BY uc.created_at DESC`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	now := time.Now()
	items := []*challenge.UserChallengeItem{}
	for rows.Next() {
		var (
			item          challenge.UserChallengeItem
			enrolledStart time.Time
		)
		err := rows.Scan(
			&item.ID, &item.Title, &item.Description, &item.Category,
			&item.Difficulty, &item.DurationDays, &item.StartDate,
			&item.EndDate, &item.IsPublic, &item.CreatorID, &item.CreatedAt,
			&item.Progress, &enrolledStart, &item.LastCheckIn,
			&item.Completed, &item.CompletedAt, &item.EnrolledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		item.Joined = true
		item.DaysLeft = progress.DaysLeft(item.EndDate, now)
		// Current day counts from the user's own start, which may lag the
		// challenge start for late joiners.
		item.CurrentDay = progress.CurrentDay(enrolledStart, now, item.DurationDays)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read enrollments: %w", err)
	}

	return items, nil
}

// CreateChallenge inserts the challenge, its per-day tasks, and enrolls the
// creator as the first participant, all in one transaction. Days without a
// supplied task get a generated one so every challenge always has exactly
// duration_days task rows.
func (s *ChallengeService) CreateChallenge(ctx context.Context, clerkID string, req *challenge.CreateChallengeRequest) (*challenge.Challenge, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	userID, err := s.resolveUserID(ctx, tx, clerkID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var ch challenge.Challenge
	err = tx.QueryRow(ctx, `
		INSERT INTO challenges (title, description, category, difficulty,
		                        duration_days, start_date, end_date, is_public,
		                        creator_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, title, description, category, difficulty, duration_days,
		          start_date, end_date, is_public, creator_id, created_at
	`, req.Title, req.Description, req.Category, req.Difficulty,
		req.DurationDays, startDate, endDate, req.IsPublic, userID, now,
	).Scan(
		&ch.ID, &ch.Title, &ch.Description, &ch.Category, &ch.Difficulty,
		&ch.DurationDays, &ch.StartDate, &ch.EndDate, &ch.IsPublic,
		&ch.CreatorID, &ch.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert challenge: %w", err)
	}

	supplied := make(map[int]challenge.CreateTaskRequest, len(req.Tasks))
	for _, t := range req.Tasks {
		if t.Day >= 1 && t.Day <= req.DurationDays {
			supplied[t.Day] = t
		}
	}

	for day := 1; day <= req.DurationDays; day++ {
		title := fmt.Sprintf("Day %d", day)
		var description *string
		date := startDate.AddDate(0, 0, day-1)

		if t, ok := supplied[day]; ok {
			title = t.Title
			if t.Description != "" {
				description = &t.Description
			}
			if d, err := parseDate(t.Date); err == nil {
				date = d
			}
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO challenge_tasks (challenge_id, day, title, description, date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, ch.ID, day, title, description, date, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert task for day %d: %w", day, err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_challenges (user_id, challenge_id, progress, start_date, created_at, updated_at)
		VALUES ($1, $2, 0, $3, $3, $3)
	`, userID, ch.ID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to enroll creator: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit challenge: %w", err)
	}

	return &ch, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
