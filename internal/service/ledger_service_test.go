package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jestephe2/rootedwellness-workout-app/internal/domain"
	"github.com/jestephe2/rootedwellness-workout-app/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSyncsOnRemoteSuccess(t *testing.T) {
	logRepo := &memWorkoutLogRepo{}
	svc := NewLedgerService(logRepo, &fakeGateway{})

	entry, err := svc.Record(context.Background(), domain.WorkoutLogEntry{
		Email:        "ana@example.com",
		Week:         1,
		Day:          1,
		ExerciseName: "Back Squat",
		SetNumber:    1,
		Weight:       60,
	})
	require.NoError(t, err)
	assert.True(t, entry.Synced)
	assert.NotEmpty(t, entry.LogID)
	require.Len(t, logRepo.entries, 1)
	assert.True(t, logRepo.entries[0].Synced)
}

func TestRecordKeepsLocalEntryWhenRemoteFails(t *testing.T) {
	logRepo := &memWorkoutLogRepo{}
	remote := &fakeGateway{
		logWeightFn: func(ctx context.Context, req gateway.LogWeightRequest) (*gateway.LogWeightResponse, error) {
			return nil, &gateway.NetworkError{URL: "http://remote", Err: errors.New("dial timeout")}
		},
	}
	svc := NewLedgerService(logRepo, remote)

	entry, err := svc.Record(context.Background(), domain.WorkoutLogEntry{
		Email:        "ana@example.com",
		Week:         1,
		Day:          1,
		ExerciseName: "Back Squat",
		SetNumber:    1,
		Weight:       60,
	})
	assert.ErrorIs(t, err, ErrRemoteWriteFailed)

	// The local append is never rolled back.
	require.NotNil(t, entry)
	assert.False(t, entry.Synced)
	require.Len(t, logRepo.entries, 1)
	assert.Equal(t, 60.0, logRepo.entries[0].Weight)
}

func TestRecordRejectsInvalidEntries(t *testing.T) {
	svc := NewLedgerService(&memWorkoutLogRepo{}, &fakeGateway{})
	ctx := context.Background()

	_, err := svc.Record(ctx, domain.WorkoutLogEntry{Email: "ana@example.com", Weight: 10})
	assert.ErrorIs(t, err, ErrInvalidLogEntry)

	_, err = svc.Record(ctx, domain.WorkoutLogEntry{Email: "ana@example.com", ExerciseName: "Back Squat", Weight: -5})
	assert.ErrorIs(t, err, ErrInvalidLogEntry)
}

func TestMostRecentWeightPrefersLatestTimestamp(t *testing.T) {
	logRepo := &memWorkoutLogRepo{}
	svc := NewLedgerService(logRepo, &fakeGateway{})
	ctx := context.Background()

	earlier := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	later := earlier.Add(48 * time.Hour)
	for _, e := range []domain.WorkoutLogEntry{
		{LogID: "a", Email: "ana@example.com", ExerciseName: "Back Squat", Weight: 60, Timestamp: earlier},
		{LogID: "b", Email: "ana@example.com", ExerciseName: "Back Squat", Weight: 65, Timestamp: later},
		{LogID: "c", Email: "ana@example.com", ExerciseName: "Bench Press", Weight: 40, Timestamp: later},
	} {
		entry := e
		require.NoError(t, logRepo.Append(ctx, &entry))
	}

	weight, ok, err := svc.MostRecentWeight(ctx, "ana@example.com", "Back Squat")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 65.0, weight)

	_, ok, err = svc.MostRecentWeight(ctx, "ana@example.com", "Deadlift")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMostRecentWeightTieBreaksByInsertionOrder(t *testing.T) {
	logRepo := &memWorkoutLogRepo{}
	svc := NewLedgerService(logRepo, &fakeGateway{})
	ctx := context.Background()

	// Same timestamp: the entry appended last wins.
	ts := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for _, weight := range []float64{60, 62.5, 57.5} {
		entry := domain.WorkoutLogEntry{
			Email:        "ana@example.com",
			ExerciseName: "Back Squat",
			Weight:       weight,
			Timestamp:    ts,
		}
		require.NoError(t, logRepo.Append(ctx, &entry))
	}

	weight, ok, err := svc.MostRecentWeight(ctx, "ana@example.com", "Back Squat")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 57.5, weight)
}

func TestSetsLoggedCountDistinctSlots(t *testing.T) {
	logRepo := &memWorkoutLogRepo{}
	svc := NewLedgerService(logRepo, &fakeGateway{})
	ctx := context.Background()

	day := domain.ProgramDay{
		Day:   1,
		Title: "Lower A",
		Exercises: []domain.Exercise{
			{Name: "Back Squat", Sets: 4, Reps: domain.NumericReps(8)},
			{Name: "Leg Curl", Sets: 3, Reps: domain.NumericReps(12)},
		},
	}

	entries := []domain.WorkoutLogEntry{
		{Email: "ana@example.com", Week: 1, Day: 1, ExerciseName: "Back Squat", SetNumber: 1, Weight: 60},
		{Email: "ana@example.com", Week: 1, Day: 1, ExerciseName: "Back Squat", SetNumber: 1, Weight: 62.5}, // corrected, same slot
		{Email: "ana@example.com", Week: 1, Day: 1, ExerciseName: "Back Squat", SetNumber: 2, Weight: 62.5},
		{Email: "ana@example.com", Week: 1, Day: 1, ExerciseName: "Leg Curl", Weight: 30},      // no set number, counts as set 1
		{Email: "ana@example.com", Week: 1, Day: 2, ExerciseName: "Back Squat", SetNumber: 1, Weight: 60}, // other day
		{Email: "ana@example.com", Week: 1, Day: 1, ExerciseName: "Deadlift", SetNumber: 1, Weight: 80},   // not in the day
	}
	for i := range entries {
		require.NoError(t, logRepo.Append(ctx, &entries[i]))
	}

	count, err := svc.SetsLoggedCount(ctx, "ana@example.com", day, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 7, day.TotalSets())
}

func TestImportRemoteSeedsEmptyLedgerOnly(t *testing.T) {
	logRepo := &memWorkoutLogRepo{}
	svc := NewLedgerService(logRepo, &fakeGateway{})
	ctx := context.Background()

	// Remote history arrives newest first.
	remoteLogs := []domain.WorkoutLogEntry{
		{ExerciseName: "Back Squat", Weight: 65, Timestamp: time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)},
		{ExerciseName: "Back Squat", Weight: 60, Timestamp: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, svc.ImportRemote(ctx, "ana@example.com", remoteLogs))

	logs, err := svc.RecentLogs(ctx, "ana@example.com", 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	// Newest first after import, with insertion order matching logging order.
	assert.Equal(t, 65.0, logs[0].Weight)
	assert.True(t, logs[0].Synced)

	// A second import must not duplicate local history.
	require.NoError(t, svc.ImportRemote(ctx, "ana@example.com", remoteLogs))
	logs, err = svc.RecentLogs(ctx, "ana@example.com", 0)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}
