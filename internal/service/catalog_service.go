package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jestephe2/rootedwellness-workout-app/internal/config"
	"github.com/jestephe2/rootedwellness-workout-app/internal/domain"
	"github.com/jestephe2/rootedwellness-workout-app/internal/repository"
	"github.com/jestephe2/rootedwellness-workout-app/internal/storage"
)

// --- Error Definitions ---
var (
	ErrNoSnapshotStorage = errors.New("snapshot storage is not configured")
)

// Object keys for the S3 snapshot archive.
const (
	snapshotLatestKey     = "program-library/latest.json"
	snapshotKeyTimeFormat = "program-library/2006-01-02T15-04-05Z.json"
)

// CatalogService owns the active program library: the published override
// when one exists, the built-in default otherwise. Lookups never return
// errors; absence is a boolean so navigation can render an empty state.
type CatalogService interface {
	GetVariation(id string) (domain.ProgramVariation, bool)
	GetWeek(variationID string, week int) (domain.ProgramWeek, bool)
	GetDay(variationID string, week, day int) (domain.ProgramDay, bool)
	ListDaysForWeek(variationID string, week int) []domain.ProgramDay

	// ActiveLibrary returns the current snapshot and, when an override is
	// published, its publish timestamp.
	ActiveLibrary() (domain.ProgramLibrary, *time.Time)

	// Publish validates and persists a new library as the active one.
	Publish(ctx context.Context, library *domain.ProgramLibrary) error
	// RevertToDefault deletes the override; reads fall back to the
	// built-in catalog.
	RevertToDefault(ctx context.Context) error
	// ImportJSON parses and validates a library document without
	// applying it. All-or-nothing: a ValidationError leaves nothing
	// changed.
	ImportJSON(text string) (*domain.ProgramLibrary, error)
	// ExportJSON renders the active library in the import format.
	ExportJSON() ([]byte, error)
	// ExportDownloadURL presigns a download of the latest archived
	// snapshot.
	ExportDownloadURL(ctx context.Context) (string, error)

	// Subscribe registers a callback invoked after every library swap.
	// Subscribers re-read the library in full; they never diff.
	Subscribe(fn func())
	// Reload re-reads the persisted override, for reacting to an
	// external change (another instance publishing).
	Reload(ctx context.Context) error
}

// catalogService implements the CatalogService interface.
type catalogService struct {
	programRepo repository.ProgramRepository
	snapshots   storage.SnapshotStorage // may be nil; archive is best effort
	cfg         config.ProgramConfig

	mu          sync.RWMutex
	active      *domain.ProgramLibrary
	publishedAt time.Time
	overridden  bool

	subMu       sync.Mutex
	subscribers []func()
}

// NewCatalogService creates a catalog and primes it from the persisted
// override, falling back to the built-in default library.
func NewCatalogService(ctx context.Context, programRepo repository.ProgramRepository, snapshots storage.SnapshotStorage, cfg config.ProgramConfig) (CatalogService, error) {
	s := &catalogService{
		programRepo: programRepo,
		snapshots:   snapshots,
		cfg:         cfg,
		active:      DefaultLibrary(),
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *catalogService) GetVariation(id string) (domain.ProgramVariation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active.Variation(id)
}

func (s *catalogService) GetWeek(variationID string, week int) (domain.ProgramWeek, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active.Week(variationID, week)
}

func (s *catalogService) GetDay(variationID string, week, day int) (domain.ProgramDay, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active.Day(variationID, week, day)
}

func (s *catalogService) ListDaysForWeek(variationID string, week int) []domain.ProgramDay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	programWeek, ok := s.active.Week(variationID, week)
	if !ok {
		return []domain.ProgramDay{}
	}
	return programWeek.Days
}

func (s *catalogService) ActiveLibrary() (domain.ProgramLibrary, *time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.overridden {
		return *s.active, nil
	}
	publishedAt := s.publishedAt
	return *s.active, &publishedAt
}

// Publish validates, persists, and atomically swaps in the new library.
func (s *catalogService) Publish(ctx context.Context, library *domain.ProgramLibrary) error {
	if err := validateLibrary(library, s.cfg); err != nil {
		return err
	}

	publishedAt := time.Now().UTC()
	if err := s.programRepo.SaveOverride(ctx, library, publishedAt); err != nil {
		return err
	}

	s.mu.Lock()
	s.active = library
	s.publishedAt = publishedAt
	s.overridden = true
	s.mu.Unlock()

	s.archiveSnapshot(ctx, library, publishedAt)
	s.notify()
	return nil
}

// RevertToDefault deletes the override and swaps the built-in library
// back in. In-flight cursors keep their position and re-resolve day and
// exercise data against the default catalog on next read.
func (s *catalogService) RevertToDefault(ctx context.Context) error {
	if err := s.programRepo.DeleteOverride(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.active = DefaultLibrary()
	s.publishedAt = time.Time{}
	s.overridden = false
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *catalogService) ImportJSON(text string) (*domain.ProgramLibrary, error) {
	var library domain.ProgramLibrary
	if err := json.Unmarshal([]byte(text), &library); err != nil {
		return nil, &ValidationError{Rule: RuleVariationCount, Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if err := validateLibrary(&library, s.cfg); err != nil {
		return nil, err
	}
	return &library, nil
}

func (s *catalogService) ExportJSON() ([]byte, error) {
	s.mu.RLock()
	library := *s.active
	s.mu.RUnlock()
	return json.MarshalIndent(library, "", "  ")
}

func (s *catalogService) ExportDownloadURL(ctx context.Context) (string, error) {
	if s.snapshots == nil {
		return "", ErrNoSnapshotStorage
	}
	return s.snapshots.GeneratePresignedDownloadURL(ctx, snapshotLatestKey, storage.DefaultPresignedURLExpiry)
}

func (s *catalogService) Subscribe(fn func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Reload re-reads the persisted override and replaces (never merges) the
// in-memory snapshot.
func (s *catalogService) Reload(ctx context.Context) error {
	library, publishedAt, err := s.programRepo.LoadOverride(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.mu.Lock()
			s.active = DefaultLibrary()
			s.publishedAt = time.Time{}
			s.overridden = false
			s.mu.Unlock()
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.active = library
	s.publishedAt = publishedAt
	s.overridden = true
	s.mu.Unlock()
	return nil
}

// archiveSnapshot uploads the published document to the snapshot store.
// Failures are logged, not propagated: the publish already succeeded.
func (s *catalogService) archiveSnapshot(ctx context.Context, library *domain.ProgramLibrary, publishedAt time.Time) {
	if s.snapshots == nil {
		return
	}
	data, err := json.MarshalIndent(library, "", "  ")
	if err != nil {
		log.Printf("WARN: Failed to encode library snapshot: %v", err)
		return
	}
	if err := s.snapshots.PutSnapshot(ctx, snapshotLatestKey, data); err != nil {
		log.Printf("WARN: Failed to archive latest library snapshot: %v", err)
	}
	timestampKey := publishedAt.Format(snapshotKeyTimeFormat)
	if err := s.snapshots.PutSnapshot(ctx, timestampKey, data); err != nil {
		log.Printf("WARN: Failed to archive library snapshot '%s': %v", timestampKey, err)
	}
}

func (s *catalogService) notify() {
	s.subMu.Lock()
	subscribers := append([]func(){}, s.subscribers...)
	s.subMu.Unlock()
	for _, fn := range subscribers {
		fn()
	}
}
