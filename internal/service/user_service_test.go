package service

import (
	"context"
	"testing"
	"time"

	"github.com/jestephe2/rootedwellness-workout-app/internal/domain"
	"github.com/jestephe2/rootedwellness-workout-app/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T, remote gateway.Gateway) (UserService, ProgressService, *memUserRepo, *memWorkoutLogRepo) {
	t.Helper()
	ctx := context.Background()
	catalog, _, err := newTestCatalog(ctx)
	require.NoError(t, err)

	userRepo := newMemUserRepo()
	logRepo := &memWorkoutLogRepo{}
	progress := NewProgressService(newMemCursorRepo(), newMemReflectionRepo(), catalog, testProgramConfig())
	ledger := NewLedgerService(logRepo, remote)
	return NewUserService(userRepo, remote, ledger, progress), progress, userRepo, logRepo
}

func TestInitNewUser(t *testing.T) {
	svc, _, userRepo, _ := newTestUserService(t, &fakeGateway{})

	result, err := svc.Init(context.Background(), "Ana@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, gateway.StatusNewUser, result.Status)
	assert.True(t, result.NeedsOnboarding())
	assert.Empty(t, userRepo.users)
}

func TestInitExistingUserWarmsCacheAndLogs(t *testing.T) {
	remote := &fakeGateway{
		initFn: func(ctx context.Context, email string) (*gateway.InitResponse, error) {
			return &gateway.InitResponse{
				Status: gateway.StatusExistingUser,
				Email:  email,
				User: &domain.User{
					FirstName:         "Ana",
					PrimaryGoal:       "strength",
					TargetDaysPerWeek: "4",
				},
				RecentLogs: []domain.WorkoutLogEntry{
					{ExerciseName: "Back Squat", Weight: 65, Timestamp: time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)},
					{ExerciseName: "Back Squat", Weight: 60, Timestamp: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
				},
			}, nil
		},
	}
	svc, progress, userRepo, _ := newTestUserService(t, remote)
	ctx := context.Background()

	result, err := svc.Init(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, gateway.StatusExistingUser, result.Status)
	assert.False(t, result.NeedsOnboarding())

	require.NotNil(t, result.User)
	assert.Equal(t, "ana@example.com", result.User.Email)
	assert.Contains(t, userRepo.users, "ana@example.com")
	assert.Len(t, result.RecentLogs, 2)

	// The cursor picks up the stored target days.
	cursor, err := progress.Get(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, 4, cursor.DaysPerWeek)
}

func TestInitFallsBackToGetLogsWebhook(t *testing.T) {
	remote := &fakeGateway{
		initFn: func(ctx context.Context, email string) (*gateway.InitResponse, error) {
			// Backend version that omits logs from the init response.
			return &gateway.InitResponse{Status: gateway.StatusExistingUser, Email: email}, nil
		},
		getLogsFn: func(ctx context.Context, email string, limit int) (*gateway.GetLogsResponse, error) {
			return &gateway.GetLogsResponse{
				Status: gateway.StatusOK,
				Logs: []domain.WorkoutLogEntry{
					{ExerciseName: "Bench Press", Weight: 40, Timestamp: time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)},
				},
			}, nil
		},
	}
	svc, _, _, logRepo := newTestUserService(t, remote)

	result, err := svc.Init(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.Len(t, result.RecentLogs, 1)
	assert.Equal(t, "Bench Press", result.RecentLogs[0].ExerciseName)
	assert.Len(t, logRepo.entries, 1)
}

func TestInitBackendDown(t *testing.T) {
	remote := &fakeGateway{
		initFn: func(ctx context.Context, email string) (*gateway.InitResponse, error) {
			return nil, &gateway.NetworkError{URL: "http://init", Err: context.DeadlineExceeded}
		},
	}
	svc, _, _, _ := newTestUserService(t, remote)

	_, err := svc.Init(context.Background(), "ana@example.com")
	assert.ErrorIs(t, err, ErrUserBackendDown)
}

func TestOnboardBuildsProfileWhenBackendOnlyAcks(t *testing.T) {
	svc, progress, userRepo, _ := newTestUserService(t, &fakeGateway{})
	ctx := context.Background()

	user, err := svc.Onboard(ctx, gateway.OnboardRequest{
		Email:             "Ana@Example.com",
		FirstName:         "Ana",
		PrimaryGoal:       "strength",
		TargetDaysPerWeek: "2",
		BiggestObstacle:   "time",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Contains(t, userRepo.users, "ana@example.com")

	cursor, err := progress.Get(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, cursor.DaysPerWeek)
}

func TestOnboardKeepsDefaultWhenTargetNotSure(t *testing.T) {
	svc, progress, _, _ := newTestUserService(t, &fakeGateway{})
	ctx := context.Background()

	_, err := svc.Onboard(ctx, gateway.OnboardRequest{
		Email:             "ana@example.com",
		FirstName:         "Ana",
		PrimaryGoal:       "strength",
		TargetDaysPerWeek: domain.TargetDaysNotSure,
	})
	require.NoError(t, err)

	cursor, err := progress.Get(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, cursor.DaysPerWeek)
}

func TestOnboardRejected(t *testing.T) {
	remote := &fakeGateway{
		onboardFn: func(ctx context.Context, req gateway.OnboardRequest) (*gateway.OnboardResponse, error) {
			return &gateway.OnboardResponse{Status: gateway.StatusError, Message: "email already registered"}, nil
		},
	}
	svc, _, userRepo, _ := newTestUserService(t, remote)

	_, err := svc.Onboard(context.Background(), gateway.OnboardRequest{
		Email:             "ana@example.com",
		FirstName:         "Ana",
		PrimaryGoal:       "strength",
		TargetDaysPerWeek: "3",
	})
	assert.ErrorIs(t, err, ErrOnboardingRejected)
	assert.ErrorContains(t, err, "email already registered")
	assert.Empty(t, userRepo.users)
}

func TestProfileNotFound(t *testing.T) {
	svc, _, _, _ := newTestUserService(t, &fakeGateway{})

	_, err := svc.Profile(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserProfileNotFound)
}
