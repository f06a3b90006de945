package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jestephe2/rootedwellness-workout-app/internal/domain"
	"github.com/jestephe2/rootedwellness-workout-app/internal/gateway"
	"github.com/jestephe2/rootedwellness-workout-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrEmailRequired       = errors.New("email is required")
	ErrOnboardingRejected  = errors.New("onboarding was rejected by the user store")
	ErrUserBackendDown     = errors.New("unable to reach the user store")
	ErrUserProfileNotFound = errors.New("user profile not found")
)

// InitResult is the outcome of the email-entry flow.
type InitResult struct {
	Status     string                   `json:"status"` // existing_user | new_user
	User       *domain.User             `json:"user,omitempty"`
	RecentLogs []domain.WorkoutLogEntry `json:"recent_logs,omitempty"`
}

// NeedsOnboarding reports whether the user still has to complete
// onboarding.
func (r InitResult) NeedsOnboarding() bool {
	return r.Status == gateway.StatusNewUser
}

// UserService fronts the remote user store: email init, onboarding, and
// the local profile cache.
type UserService interface {
	// Init resolves an email against the user store. Existing users get
	// their profile cached, their log history warmed, and their cursor
	// ensured; new users are signalled to onboard.
	Init(ctx context.Context, email string) (*InitResult, error)

	// Onboard registers a new user with the remote store and seeds their
	// local cursor from the chosen target days per week.
	Onboard(ctx context.Context, req gateway.OnboardRequest) (*domain.User, error)

	// Profile returns the locally cached profile.
	Profile(ctx context.Context, email string) (*domain.User, error)
}

// userService implements the UserService interface.
type userService struct {
	userRepo repository.UserRepository
	remote   gateway.Gateway
	ledger   LedgerService
	progress ProgressService
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, remote gateway.Gateway, ledger LedgerService, progress ProgressService) UserService {
	return &userService{
		userRepo: userRepo,
		remote:   remote,
		ledger:   ledger,
		progress: progress,
	}
}

func (s *userService) Init(ctx context.Context, email string) (*InitResult, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	resp, err := s.remote.InitUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserBackendDown, err)
	}

	result := &InitResult{Status: resp.Status}
	if resp.Status != gateway.StatusExistingUser {
		return result, nil
	}

	if resp.User != nil {
		user := *resp.User
		user.Email = email
		if err := s.userRepo.Upsert(ctx, &user); err != nil {
			log.Printf("WARN: Failed to cache profile for %s: %v", email, err)
		}
		result.User = &user
	}

	// Warm the local ledger from remote history; reads degrade to an
	// empty view if this fails. Some backend versions omit the logs from
	// the init response, so fall back to the get-logs webhook.
	history := resp.RecentLogs
	if len(history) == 0 {
		if logsResp, err := s.remote.GetLogs(ctx, email, 100); err != nil {
			log.Printf("WARN: Failed to fetch remote logs for %s: %v", email, err)
		} else if logsResp.Status == gateway.StatusOK {
			history = logsResp.Logs
		}
	}
	if err := s.ledger.ImportRemote(ctx, email, history); err != nil {
		log.Printf("WARN: Failed to import remote logs for %s: %v", email, err)
	}
	if logs, err := s.ledger.RecentLogs(ctx, email, 100); err == nil {
		result.RecentLogs = logs
	}

	if _, err := s.ensureCursor(ctx, email, result.User); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *userService) Onboard(ctx context.Context, req gateway.OnboardRequest) (*domain.User, error) {
	req.Email = normalizeEmail(req.Email)
	if req.Email == "" {
		return nil, ErrEmailRequired
	}

	resp, err := s.remote.OnboardUser(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserBackendDown, err)
	}
	if resp.Status != gateway.StatusOK {
		if resp.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrOnboardingRejected, resp.Message)
		}
		return nil, ErrOnboardingRejected
	}

	user := resp.User
	if user == nil {
		// Some backends only echo status; build the profile from the
		// request so the cache stays coherent.
		user = &domain.User{
			Email:             req.Email,
			FirstName:         req.FirstName,
			PrimaryGoal:       req.PrimaryGoal,
			TargetDaysPerWeek: req.TargetDaysPerWeek,
			BiggestObstacle:   req.BiggestObstacle,
		}
	}
	user.Email = req.Email

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}
	if _, err := s.ensureCursor(ctx, req.Email, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Profile(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserProfileNotFound
		}
		return nil, err
	}
	return user, nil
}

// ensureCursor makes sure the user has a progress cursor, seeding its
// days-per-week from the onboarding target when that is a number the
// configuration allows ("not_sure" keeps the default).
func (s *userService) ensureCursor(ctx context.Context, email string, user *domain.User) (*domain.ProgressCursor, error) {
	cursor, err := s.progress.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return cursor, nil
	}
	target, ok := user.TargetDays()
	if !ok || target == cursor.DaysPerWeek {
		return cursor, nil
	}
	updated, _, err := s.progress.SetDaysPerWeek(ctx, email, target, false)
	if err != nil {
		if errors.Is(err, ErrDaysPerWeekNotAllowed) {
			log.Printf("WARN: Onboarding target days %d not in allowed range; keeping %d", target, cursor.DaysPerWeek)
			return cursor, nil
		}
		return nil, err
	}
	if updated != nil {
		return updated, nil
	}
	return cursor, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
