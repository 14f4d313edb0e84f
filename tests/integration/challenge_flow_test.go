package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyGraceAPI/services"
	"dailyGraceAPI/tests/helpers"
)

func TestJoinAndCompleteFullChallenge(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	challengeService := services.NewChallengeService(pool)
	ctx := context.Background()

	clerkID := "user_test_flow_" + time.Now().Format("20060102150405")
	helpers.SeedTestUser(t, pool, clerkID)
	challengeID := helpers.SeedTestChallenge(t, pool, 21)

	// Join
	enrollment, err := challengeService.JoinChallenge(ctx, clerkID, challengeID)
	require.NoError(t, err)
	assert.Equal(t, 0, enrollment.Progress)
	assert.False(t, enrollment.Completed)
	assert.Nil(t, enrollment.CompletedAt)

	// Joining twice is rejected and leaves a single enrollment row
	_, err = challengeService.JoinChallenge(ctx, clerkID, challengeID)
	assert.ErrorIs(t, err, services.ErrAlreadyJoined)

	var enrollmentCount int
	err = pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM user_challenges uc
		JOIN users u ON u.id = uc.user_id
		WHERE u.clerk_id = $1 AND uc.challenge_id = $2
	`, clerkID, challengeID).Scan(&enrollmentCount)
	require.NoError(t, err)
	assert.Equal(t, 1, enrollmentCount)

	// Day 1 of 21 rounds to 5 percent
	result, err := challengeService.CompleteTask(ctx, clerkID, challengeID, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Progress)
	assert.False(t, result.Completed)

	// Same day twice is rejected
	_, err = challengeService.CompleteTask(ctx, clerkID, challengeID, 1)
	assert.ErrorIs(t, err, services.ErrAlreadyCompleted)

	// Work through the remaining days
	for day := 2; day <= 21; day++ {
		result, err = challengeService.CompleteTask(ctx, clerkID, challengeID, day)
		require.NoError(t, err, "day %d", day)

		if day == 11 {
			assert.Equal(t, 52, result.Progress)
		}
		if day < 21 {
			assert.False(t, result.Completed, "day %d", day)
			assert.Less(t, result.Progress, 100, "day %d", day)
		}
	}

	assert.Equal(t, 100, result.Progress)
	assert.True(t, result.Completed)

	// The enrollment row carries the completion stamp
	var completed bool
	var completedAt *time.Time
	err = pool.QueryRow(ctx, `
		SELECT uc.completed, uc.completed_at
		FROM user_challenges uc
		JOIN users u ON u.id = uc.user_id
		WHERE u.clerk_id = $1 AND uc.challenge_id = $2
	`, clerkID, challengeID).Scan(&completed, &completedAt)
	require.NoError(t, err)
	assert.True(t, completed)
	require.NotNil(t, completedAt)

	// It shows up in the completed list
	completedList, err := challengeService.GetCompletedChallenges(ctx, clerkID)
	require.NoError(t, err)
	require.Len(t, completedList, 1)
	assert.Equal(t, challengeID, completedList[0].Challenge.ID)

	// The full enrollment list carries the completed flag
	allList, err := challengeService.GetUserChallenges(ctx, clerkID)
	require.NoError(t, err)
	require.Len(t, allList, 1)
	assert.True(t, allList[0].Completed)
	assert.Equal(t, 100, allList[0].Progress)
	assert.NotNil(t, allList[0].CompletedAt)
}

func TestCompletionIsSticky(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	challengeService := services.NewChallengeService(pool)
	ctx := context.Background()

	clerkID := "user_test_sticky_" + time.Now().Format("20060102150405")
	helpers.SeedTestUser(t, pool, clerkID)

	// With 201 days, day 200 already rounds to 100 percent, so the final
	// day's check-in lands on an enrollment that is completed.
	challengeID := helpers.SeedTestChallenge(t, pool, 201)

	_, err := challengeService.JoinChallenge(ctx, clerkID, challengeID)
	require.NoError(t, err)

	for day := 1; day <= 200; day++ {
		r, err := challengeService.CompleteTask(ctx, clerkID, challengeID, day)
		require.NoError(t, err, "day %d", day)
		if day == 200 {
			assert.Equal(t, 100, r.Progress)
			assert.True(t, r.Completed)
		}
	}

	fetchStamp := func() (bool, *time.Time) {
		var completed bool
		var completedAt *time.Time
		err := pool.QueryRow(ctx, `
			SELECT uc.completed, uc.completed_at
			FROM user_challenges uc
			JOIN users u ON u.id = uc.user_id
			WHERE u.clerk_id = $1 AND uc.challenge_id = $2
		`, clerkID, challengeID).Scan(&completed, &completedAt)
		require.NoError(t, err)
		return completed, completedAt
	}

	completed, stampBefore := fetchStamp()
	require.True(t, completed)
	require.NotNil(t, stampBefore)

	// One more check-in after the flag flipped: it must succeed without
	// touching the completion state.
	r, err := challengeService.CompleteTask(ctx, clerkID, challengeID, 201)
	require.NoError(t, err)
	assert.Equal(t, 100, r.Progress)
	assert.True(t, r.Completed)

	completed, stampAfter := fetchStamp()
	assert.True(t, completed, "completed must never revert")
	require.NotNil(t, stampAfter)
	assert.True(t, stampAfter.Equal(*stampBefore), "completed_at re-stamped: %v != %v", stampAfter, stampBefore)
}

func TestCompleteSingleDayChallenge(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	challengeService := services.NewChallengeService(pool)
	ctx := context.Background()

	clerkID := "user_test_single_" + time.Now().Format("20060102150405")
	helpers.SeedTestUser(t, pool, clerkID)
	challengeID := helpers.SeedTestChallenge(t, pool, 1)

	_, err := challengeService.JoinChallenge(ctx, clerkID, challengeID)
	require.NoError(t, err)

	result, err := challengeService.CompleteTask(ctx, clerkID, challengeID, 1)
	require.NoError(t, err)
	assert.Equal(t, 100, result.Progress)
	assert.True(t, result.Completed)
}

func TestCompleteTaskWithoutJoining(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	challengeService := services.NewChallengeService(pool)
	ctx := context.Background()

	clerkID := "user_test_nojoin_" + time.Now().Format("20060102150405")
	helpers.SeedTestUser(t, pool, clerkID)
	challengeID := helpers.SeedTestChallenge(t, pool, 7)

	_, err := challengeService.CompleteTask(ctx, clerkID, challengeID, 1)
	assert.ErrorIs(t, err, services.ErrNotJoined)

	// Nothing gets persisted when the enrollment check fails
	var count int
	err = pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM user_task_completions utc
		JOIN users u ON u.id = utc.user_id
		WHERE u.clerk_id = $1
	`, clerkID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCompleteTaskUnknownDay(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	challengeService := services.NewChallengeService(pool)
	ctx := context.Background()

	clerkID := "user_test_day_" + time.Now().Format("20060102150405")
	helpers.SeedTestUser(t, pool, clerkID)
	challengeID := helpers.SeedTestChallenge(t, pool, 7)

	_, err := challengeService.JoinChallenge(ctx, clerkID, challengeID)
	require.NoError(t, err)

	_, err = challengeService.CompleteTask(ctx, clerkID, challengeID, 8)
	assert.ErrorIs(t, err, services.ErrTaskNotFound)
}

func TestChallengeDetailReflectsEnrollment(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	challengeService := services.NewChallengeService(pool)
	ctx := context.Background()

	clerkID := "user_test_detail_" + time.Now().Format("20060102150405")
	helpers.SeedTestUser(t, pool, clerkID)
	challengeID := helpers.SeedTestChallenge(t, pool, 7)

	// Anonymous view carries no enrollment data
	detail, err := challengeService.GetChallengeDetail(ctx, "", challengeID)
	require.NoError(t, err)
	assert.False(t, detail.Joined)
	assert.Nil(t, detail.Progress)
	assert.Nil(t, detail.CurrentDay)
	assert.Len(t, detail.Tasks, 7)

	_, err = challengeService.JoinChallenge(ctx, clerkID, challengeID)
	require.NoError(t, err)

	_, err = challengeService.CompleteTask(ctx, clerkID, challengeID, 1)
	require.NoError(t, err)

	detail, err = challengeService.GetChallengeDetail(ctx, clerkID, challengeID)
	require.NoError(t, err)
	assert.True(t, detail.Joined)
	assert.Equal(t, 1, detail.Participants)
	require.NotNil(t, detail.Progress)
	assert.Equal(t, 14, *detail.Progress)
	require.NotNil(t, detail.CurrentDay)
	require.Len(t, detail.CompletedDays, 1)
	assert.Equal(t, 1, detail.CompletedDays[0].Day)
	assert.True(t, detail.Tasks[0].Completed)
	assert.False(t, detail.Tasks[1].Completed)
}
