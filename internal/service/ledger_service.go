package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jestephe2/rootedwellness-workout-app/internal/domain"
	"github.com/jestephe2/rootedwellness-workout-app/internal/gateway"
	"github.com/jestephe2/rootedwellness-workout-app/internal/repository"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	// ErrRemoteWriteFailed reports that the entry is in the local ledger
	// but the remote log store did not take it. The save is preserved;
	// only the "saved" confirmation is withheld.
	ErrRemoteWriteFailed = errors.New("weight saved locally but not synced to the remote log store")

	ErrInvalidLogEntry = errors.New("invalid log entry")
)

// LedgerService owns the append-only weight ledger: optimistic local
// appends with a remote write behind them, and the most-recent-weight
// derivation used to prefill inputs.
type LedgerService interface {
	// Record appends the entry locally, then attempts the remote write.
	// The local append is never rolled back: on remote failure the saved
	// entry is returned together with ErrRemoteWriteFailed.
	Record(ctx context.Context, entry domain.WorkoutLogEntry) (*domain.WorkoutLogEntry, error)

	// MostRecentWeight returns the weight of the entry with the latest
	// timestamp for the exercise; ties are broken by insertion order,
	// last appended wins. ok is false when the exercise has no entries.
	MostRecentWeight(ctx context.Context, email, exerciseName string) (weight float64, ok bool, err error)

	// SetsLoggedCount counts (exercise, set) pairs with a recorded
	// weight for one program day. Display only; advancement never gates
	// on it.
	SetsLoggedCount(ctx context.Context, email string, day domain.ProgramDay, week, dayNumber int) (int, error)

	// RecentLogs returns the user's entries, newest first.
	RecentLogs(ctx context.Context, email string, limit int) ([]domain.WorkoutLogEntry, error)

	// ImportRemote seeds an empty local ledger from remote history
	// (init-user flow). A non-empty ledger is left untouched.
	ImportRemote(ctx context.Context, email string, logs []domain.WorkoutLogEntry) error
}

// ledgerService implements the LedgerService interface.
type ledgerService struct {
	logRepo repository.WorkoutLogRepository
	remote  gateway.Gateway
}

// NewLedgerService creates a new instance of ledgerService.
func NewLedgerService(logRepo repository.WorkoutLogRepository, remote gateway.Gateway) LedgerService {
	return &ledgerService{
		logRepo: logRepo,
		remote:  remote,
	}
}

func (s *ledgerService) Record(ctx context.Context, entry domain.WorkoutLogEntry) (*domain.WorkoutLogEntry, error) {
	if entry.Email == "" || entry.ExerciseName == "" {
		return nil, fmt.Errorf("%w: email and exercise name are required", ErrInvalidLogEntry)
	}
	if entry.Weight < 0 {
		return nil, fmt.Errorf("%w: weight cannot be negative", ErrInvalidLogEntry)
	}

	entry.LogID = uuid.NewString()
	entry.Timestamp = time.Now().UTC()
	entry.Synced = false

	// Local append first. The local ledger stays authoritative for
	// "last weight used" even when the remote write below fails.
	if err := s.logRepo.Append(ctx, &entry); err != nil {
		return nil, err
	}

	resp, err := s.remote.LogWeight(ctx, gateway.LogWeightRequest{
		Email:        entry.Email,
		Week:         entry.Week,
		Day:          entry.Day,
		ExerciseName: entry.ExerciseName,
		Weight:       entry.Weight,
	})
	if err != nil {
		log.Printf("WARN: Remote log-weight write failed for %s/%s: %v", entry.Email, entry.ExerciseName, err)
		return &entry, fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
	}
	if resp.Status != gateway.StatusOK {
		log.Printf("WARN: Remote log-weight write rejected for %s/%s: %s", entry.Email, entry.ExerciseName, resp.Message)
		return &entry, fmt.Errorf("%w: %s", ErrRemoteWriteFailed, resp.Message)
	}

	if err := s.logRepo.MarkSynced(ctx, entry.LogID); err != nil {
		log.Printf("WARN: Failed to mark log entry %s synced: %v", entry.LogID, err)
	} else {
		entry.Synced = true
	}
	return &entry, nil
}

func (s *ledgerService) MostRecentWeight(ctx context.Context, email, exerciseName string) (float64, bool, error) {
	entries, err := s.logRepo.ListByEmail(ctx, email, 0)
	if err != nil {
		return 0, false, err
	}

	var best *domain.WorkoutLogEntry
	for i := range entries {
		entry := &entries[i]
		if entry.ExerciseName != exerciseName {
			continue
		}
		if best == nil || moreRecent(entry, best) {
			best = entry
		}
	}
	if best == nil {
		return 0, false, nil
	}
	return best.Weight, true, nil
}

// moreRecent orders ledger entries by timestamp, falling back to
// insertion order so that equal or missing timestamps resolve to the
// entry appended last.
func moreRecent(a, b *domain.WorkoutLogEntry) bool {
	if a.Timestamp.Equal(b.Timestamp) {
		return a.Seq > b.Seq
	}
	return a.Timestamp.After(b.Timestamp)
}

func (s *ledgerService) SetsLoggedCount(ctx context.Context, email string, day domain.ProgramDay, week, dayNumber int) (int, error) {
	entries, err := s.logRepo.ListByEmail(ctx, email, 0)
	if err != nil {
		return 0, err
	}

	inDay := make(map[string]bool, len(day.Exercises))
	for _, exercise := range day.Exercises {
		inDay[exercise.Name] = true
	}

	type slot struct {
		exercise string
		set      int
	}
	logged := make(map[slot]bool)
	for _, entry := range entries {
		if entry.Week != week || entry.Day != dayNumber || !inDay[entry.ExerciseName] {
			continue
		}
		set := entry.SetNumber
		if set < 1 {
			set = 1
		}
		logged[slot{exercise: entry.ExerciseName, set: set}] = true
	}
	return len(logged), nil
}

func (s *ledgerService) RecentLogs(ctx context.Context, email string, limit int) ([]domain.WorkoutLogEntry, error) {
	return s.logRepo.ListByEmail(ctx, email, limit)
}

func (s *ledgerService) ImportRemote(ctx context.Context, email string, logs []domain.WorkoutLogEntry) error {
	if len(logs) == 0 {
		return nil
	}
	existing, err := s.logRepo.ListByEmail(ctx, email, 1)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		// Local history exists; it stays authoritative over the remote
		// cache.
		return nil
	}

	// Remote history is newest first; append oldest first so insertion
	// order matches the original logging order.
	for i := len(logs) - 1; i >= 0; i-- {
		entry := logs[i]
		entry.Email = email
		if entry.LogID == "" {
			entry.LogID = uuid.NewString()
		}
		entry.Synced = true
		if err := s.logRepo.Append(ctx, &entry); err != nil {
			return err
		}
	}
	return nil
}
