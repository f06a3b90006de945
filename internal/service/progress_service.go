package service

import (
	"context"
	"errors"

	"github.com/jestephe2/rootedwellness-workout-app/internal/config"
	"github.com/jestephe2/rootedwellness-workout-app/internal/domain"
	"github.com/jestephe2/rootedwellness-workout-app/internal/repository"
)

// --- Error Definitions ---
var (
	// ErrProgramComplete signals that advancing past the last day of the
	// last week is held rather than wrapped: the cursor stays put and the
	// caller decides to restart or not.
	ErrProgramComplete = errors.New("program complete: cursor held at the last day")

	ErrWorkoutAlreadyStarted = errors.New("workout is already started")
	ErrWorkoutNotInProgress  = errors.New("workout is not in progress")
	ErrWorkoutNotCompleted   = errors.New("workout is not completed")
	ErrSelectionLocked       = errors.New("cannot navigate while a workout is in progress")
	ErrWeekOutOfRange        = errors.New("week is out of range")
	ErrDayOutOfRange         = errors.New("day is out of range")
	ErrDaysPerWeekNotAllowed = errors.New("days per week value is not allowed")
	ErrUnknownVariation      = errors.New("unknown program variation")
	ErrUnknownPhase          = errors.New("unknown cycle phase")
)

// ShrinkConfirmation is returned when lowering days-per-week would
// strand the cursor past the new bound. Nothing is applied until the
// caller repeats the request with confirmation; FallbackDay is where the
// cursor will land when they do.
type ShrinkConfirmation struct {
	RequestedDays int `json:"requestedDays"`
	FallbackDay   int `json:"fallbackDay"`
}

// ProgressService drives a user's position through the program: the
// per-day workout state machine, advancement, direct navigation, and the
// days-per-week setting with its two-step shrink confirmation.
type ProgressService interface {
	// Get returns the user's cursor, creating the default one on first
	// sight.
	Get(ctx context.Context, email string) (*domain.ProgressCursor, error)

	Start(ctx context.Context, email string) (*domain.ProgressCursor, error)
	Complete(ctx context.Context, email string) (*domain.ProgressCursor, error)
	// Advance moves to the next day (or the next week's first day). At
	// the end of the program it returns ErrProgramComplete and leaves
	// the cursor unchanged.
	Advance(ctx context.Context, email string) (*domain.ProgressCursor, error)
	// Restart resets to week 1, day 1 after a completed program.
	Restart(ctx context.Context, email string) (*domain.ProgressCursor, error)

	SelectWeek(ctx context.Context, email string, week int) (*domain.ProgressCursor, error)
	SelectDay(ctx context.Context, email string, day int) (*domain.ProgressCursor, error)
	SelectVariation(ctx context.Context, email, variationID string) (*domain.ProgressCursor, error)
	SetPhase(ctx context.Context, email string, phase domain.CyclePhase) (*domain.ProgressCursor, error)

	// SetDaysPerWeek applies the new setting, unless it would strand the
	// cursor (day > n): then it returns a ShrinkConfirmation and changes
	// nothing until called again with confirmed=true.
	SetDaysPerWeek(ctx context.Context, email string, days int, confirmed bool) (*domain.ProgressCursor, *ShrinkConfirmation, error)

	// SubmitReflection stores the post-workout check-in. Allowed only
	// after the day was completed; it never affects progression.
	SubmitReflection(ctx context.Context, email string, moods []string, note string) (*domain.Reflection, error)
	LatestReflection(ctx context.Context, email string) (*domain.Reflection, error)
}

// progressService implements the ProgressService interface.
type progressService struct {
	cursorRepo     repository.CursorRepository
	reflectionRepo repository.ReflectionRepository
	catalog        CatalogService
	cfg            config.ProgramConfig
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(cursorRepo repository.CursorRepository, reflectionRepo repository.ReflectionRepository, catalog CatalogService, cfg config.ProgramConfig) ProgressService {
	return &progressService{
		cursorRepo:     cursorRepo,
		reflectionRepo: reflectionRepo,
		catalog:        catalog,
		cfg:            cfg,
	}
}

func (s *progressService) Get(ctx context.Context, email string) (*domain.ProgressCursor, error) {
	cursor, err := s.cursorRepo.GetByEmail(ctx, email)
	if err == nil {
		return cursor, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// First sight of this user: start them at the beginning of the
	// default variation.
	cursor = &domain.ProgressCursor{
		Email:       email,
		VariationID: s.cfg.DefaultVariation,
		Week:        1,
		Day:         1,
		DaysPerWeek: s.cfg.DefaultDaysPerWeek,
		Phase:       domain.PhaseFollicular,
		State:       domain.WorkoutNotStarted,
	}
	if err := s.cursorRepo.Save(ctx, cursor); err != nil {
		return nil, err
	}
	return cursor, nil
}

func (s *progressService) Start(ctx context.Context, email string) (*domain.ProgressCursor, error) {
	cursor, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if cursor.State != domain.WorkoutNotStarted {
		return nil, ErrWorkoutAlreadyStarted
	}
	cursor.State = domain.WorkoutInProgress
	if err := s.cursorRepo.Save(ctx, cursor); err != nil {
		return nil, err
	}
	return cursor, nil
}

func (s *progressService) Complete(ctx context.Context, email string) (*domain.ProgressCursor, error) {
	cursor, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if cursor.State != domain.WorkoutInProgress {
		return nil, ErrWorkoutNotInProgress
	}
	cursor.State = domain.WorkoutCompleted
	if err := s.cursorRepo.Save(ctx, cursor); err != nil {
		return nil, err
	}
	return cursor, nil
}

func (s *progressService) Advance(ctx context.Context, email string) (*domain.ProgressCursor, error) {
	cursor, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if cursor.State != domain.WorkoutCompleted {
		return nil, ErrWorkoutNotCompleted
	}

	if cursor.Day < cursor.DaysPerWeek {
		cursor.Day++
	} else if cursor.Week < s.cfg.Weeks {
		cursor.Week++
		cursor.Day = 1
	} else {
		// Hold at the last day so the UI can present the completed-the-
		// whole-program milestone; the day-attempt state still resets so
		// the caller can stay or restart.
		cursor.State = domain.WorkoutNotStarted
		if err := s.cursorRepo.Save(ctx, cursor); err != nil {
			return nil, err
		}
		return cursor, ErrProgramComplete
	}

	cursor.State = domain.WorkoutNotStarted
	if err := s.cursorRepo.Save(ctx, cursor); err != nil {
		return nil, err
	}
	return cursor, nil
}

func (s *progressService) Restart(ctx context.Context, email string) (*domain.ProgressCursor, error) {
	cursor, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	cursor.Week = 1
	cursor.Day = 1
	cursor.State = domain.WorkoutNotStarted
	if err := s.cursorRepo.Save(ctx, cursor); err != nil {
		return nil, err
	}
	return cursor, nil
}

func (s *progressService) SelectWeek(ctx context.Context, email string, week int) (*domain.ProgressCursor, error) {
	cursor, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if cursor.State != domain.WorkoutNotStarted {
		return nil, ErrSelectionLocked
	}
	if week < 1 || week > s.cfg.Weeks {
		return nil, ErrWeekOutOfRange
	}
	cursor.Week = week
	if err := s.cursorRepo.Save(ctx, cursor); err != nil {
		return nil, err
	}
	return cursor, nil
}

func (s *progressService) SelectDay(ctx context.Context, email string, day int) (*domain.ProgressCursor, error) {
	cursor, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if cursor.State != domain.WorkoutNotStarted {
		return nil, ErrSelectionLocked
	}
	if day < 1 || day > cursor.DaysPerWeek {
		return nil, ErrDayOutOfRange
	}
	cursor.Day = day
	if err := s.cursorRepo.Save(ctx, cursor); err != nil {
		return nil, err
	}
	return cursor, nil
}

func (s *progressService) SelectVariation(ctx context.Context, email, variationID string) (*domain.ProgressCursor, error) {
	cursor, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if cursor.State != domain.WorkoutNotStarted {
		return nil, ErrSelectionLocked
	}
	if _, ok := s.catalog.GetVariation(variationID); !ok {
		return nil, ErrUnknownVariation
	}
	cursor.VariationID = variationID
	if err := s.cursorRepo.Save(ctx, cursor); err != nil {
		return nil, err
	}
	return cursor, nil
}

func (s *progressService) SetPhase(ctx context.Context, email string, phase domain.CyclePhase) (*domain.ProgressCursor, error) {
	cursor, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if !domain.ValidPhase(phase) {
		return nil, ErrUnknownPhase
	}
	// Advisory only: the phase label never touches week/day/state.
	cursor.Phase = phase
	if err := s.cursorRepo.Save(ctx, cursor); err != nil {
		return nil, err
	}
	return cursor, nil
}

func (s *progressService) SetDaysPerWeek(ctx context.Context, email string, days int, confirmed bool) (*domain.ProgressCursor, *ShrinkConfirmation, error) {
	cursor, err := s.Get(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if !s.cfg.DaysPerWeekAllowed(days) {
		return nil, nil, ErrDaysPerWeekNotAllowed
	}

	if days < cursor.Day && !confirmed {
		// Shrinking would strand the cursor beyond the new bound. Do not
		// apply silently; tell the caller where the cursor would land.
		return cursor, &ShrinkConfirmation{RequestedDays: days, FallbackDay: days}, nil
	}

	if days < cursor.Day {
		cursor.Day = days
	}
	cursor.DaysPerWeek = days
	if err := s.cursorRepo.Save(ctx, cursor); err != nil {
		return nil, nil, err
	}
	return cursor, nil, nil
}

func (s *progressService) SubmitReflection(ctx context.Context, email string, moods []string, note string) (*domain.Reflection, error) {
	cursor, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if cursor.State != domain.WorkoutCompleted {
		return nil, ErrWorkoutNotCompleted
	}

	reflection := &domain.Reflection{
		Email: email,
		Week:  cursor.Week,
		Day:   cursor.Day,
		Moods: moods,
		Note:  note,
	}
	if err := s.reflectionRepo.SaveLatest(ctx, reflection); err != nil {
		return nil, err
	}
	return reflection, nil
}

func (s *progressService) LatestReflection(ctx context.Context, email string) (*domain.Reflection, error) {
	return s.reflectionRepo.GetLatest(ctx, email)
}
