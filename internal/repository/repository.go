package repository

import (
	"context"
	"time"

	"github.com/jestephe2/rootedwellness-workout-app/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ProgramRepository persists the published program-library override.
// Absence of an override means the built-in default library is active.
type ProgramRepository interface {
	// LoadOverride returns the published library and its publish
	// timestamp, or ErrNotFound when no override exists.
	LoadOverride(ctx context.Context) (*domain.ProgramLibrary, time.Time, error)
	// SaveOverride replaces the published library wholesale.
	SaveOverride(ctx context.Context, library *domain.ProgramLibrary, publishedAt time.Time) error
	// DeleteOverride removes the published library. Deleting a missing
	// override is not an error.
	DeleteOverride(ctx context.Context) error
}

// CursorRepository persists per-user progress cursors.
type CursorRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.ProgressCursor, error)
	Save(ctx context.Context, cursor *domain.ProgressCursor) error
}

// WorkoutLogRepository persists the append-only weight ledger.
type WorkoutLogRepository interface {
	// Append stores a new entry, assigning its insertion sequence.
	Append(ctx context.Context, entry *domain.WorkoutLogEntry) error
	// ListByEmail returns entries for a user, newest first, capped at
	// limit (0 = no cap).
	ListByEmail(ctx context.Context, email string, limit int) ([]domain.WorkoutLogEntry, error)
	// MarkSynced flags an entry whose remote write succeeded.
	MarkSynced(ctx context.Context, logID string) error
}

// SessionRepository persists admin sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.AdminSession) error
	GetByToken(ctx context.Context, token string) (*domain.AdminSession, error)
	DeleteByToken(ctx context.Context, token string) error
}

// UserRepository caches member profiles locally.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
}

// ReflectionRepository persists the most recent post-workout reflection
// per user.
type ReflectionRepository interface {
	SaveLatest(ctx context.Context, reflection *domain.Reflection) error
	GetLatest(ctx context.Context, email string) (*domain.Reflection, error)
}
