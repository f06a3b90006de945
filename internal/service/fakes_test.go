package service

import (
	"context"
	"sort"
	"time"

	"github.com/jestephe2/rootedwellness-workout-app/internal/config"
	"github.com/jestephe2/rootedwellness-workout-app/internal/domain"
	"github.com/jestephe2/rootedwellness-workout-app/internal/gateway"
	"github.com/jestephe2/rootedwellness-workout-app/internal/repository"
)

// In-memory repository fakes shared by the service tests.

func testProgramConfig() config.ProgramConfig {
	return config.ProgramConfig{
		Weeks:              6,
		VariationCount:     2,
		AllowedDaysPerWeek: []int{2, 3, 4},
		DefaultDaysPerWeek: 3,
		DefaultVariation:   "three-day",
	}
}

type memProgramRepo struct {
	library     *domain.ProgramLibrary
	publishedAt time.Time
}

func (r *memProgramRepo) LoadOverride(ctx context.Context) (*domain.ProgramLibrary, time.Time, error) {
	if r.library == nil {
		return nil, time.Time{}, repository.ErrNotFound
	}
	return r.library, r.publishedAt, nil
}

func (r *memProgramRepo) SaveOverride(ctx context.Context, library *domain.ProgramLibrary, publishedAt time.Time) error {
	r.library = library
	r.publishedAt = publishedAt
	return nil
}

func (r *memProgramRepo) DeleteOverride(ctx context.Context) error {
	r.library = nil
	r.publishedAt = time.Time{}
	return nil
}

type memCursorRepo struct {
	cursors map[string]domain.ProgressCursor
}

func newMemCursorRepo() *memCursorRepo {
	return &memCursorRepo{cursors: make(map[string]domain.ProgressCursor)}
}

func (r *memCursorRepo) GetByEmail(ctx context.Context, email string) (*domain.ProgressCursor, error) {
	cursor, ok := r.cursors[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := cursor
	return &copied, nil
}

func (r *memCursorRepo) Save(ctx context.Context, cursor *domain.ProgressCursor) error {
	cursor.UpdatedAt = time.Now().UTC()
	r.cursors[cursor.Email] = *cursor
	return nil
}

type memWorkoutLogRepo struct {
	entries []domain.WorkoutLogEntry
	nextSeq int64
}

func (r *memWorkoutLogRepo) Append(ctx context.Context, entry *domain.WorkoutLogEntry) error {
	r.nextSeq++
	entry.Seq = r.nextSeq
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memWorkoutLogRepo) ListByEmail(ctx context.Context, email string, limit int) ([]domain.WorkoutLogEntry, error) {
	var out []domain.WorkoutLogEntry
	for _, entry := range r.entries {
		if entry.Email == email {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq > out[j].Seq })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memWorkoutLogRepo) MarkSynced(ctx context.Context, logID string) error {
	for i := range r.entries {
		if r.entries[i].LogID == logID {
			r.entries[i].Synced = true
			return nil
		}
	}
	return repository.ErrNotFound
}

type memSessionRepo struct {
	sessions map[string]domain.AdminSession
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]domain.AdminSession)}
}

func (r *memSessionRepo) Create(ctx context.Context, session *domain.AdminSession) error {
	r.sessions[session.Token] = *session
	return nil
}

func (r *memSessionRepo) GetByToken(ctx context.Context, token string) (*domain.AdminSession, error) {
	session, ok := r.sessions[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := session
	return &copied, nil
}

func (r *memSessionRepo) DeleteByToken(ctx context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}

type memUserRepo struct {
	users map[string]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]domain.User)}
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := user
	return &copied, nil
}

func (r *memUserRepo) Upsert(ctx context.Context, user *domain.User) error {
	r.users[user.Email] = *user
	return nil
}

type memReflectionRepo struct {
	latest map[string]domain.Reflection
}

func newMemReflectionRepo() *memReflectionRepo {
	return &memReflectionRepo{latest: make(map[string]domain.Reflection)}
}

func (r *memReflectionRepo) SaveLatest(ctx context.Context, reflection *domain.Reflection) error {
	r.latest[reflection.Email] = *reflection
	return nil
}

func (r *memReflectionRepo) GetLatest(ctx context.Context, email string) (*domain.Reflection, error) {
	reflection, ok := r.latest[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := reflection
	return &copied, nil
}

// fakeGateway lets each test script the remote backend per call.
type fakeGateway struct {
	initFn      func(ctx context.Context, email string) (*gateway.InitResponse, error)
	onboardFn   func(ctx context.Context, req gateway.OnboardRequest) (*gateway.OnboardResponse, error)
	logWeightFn func(ctx context.Context, req gateway.LogWeightRequest) (*gateway.LogWeightResponse, error)
	getLogsFn   func(ctx context.Context, email string, limit int) (*gateway.GetLogsResponse, error)
	adminAuthFn func(ctx context.Context, password string) (*gateway.AdminAuthResponse, error)
}

func (g *fakeGateway) InitUser(ctx context.Context, email string) (*gateway.InitResponse, error) {
	if g.initFn == nil {
		return &gateway.InitResponse{Status: gateway.StatusNewUser, Email: email}, nil
	}
	return g.initFn(ctx, email)
}

func (g *fakeGateway) OnboardUser(ctx context.Context, req gateway.OnboardRequest) (*gateway.OnboardResponse, error) {
	if g.onboardFn == nil {
		return &gateway.OnboardResponse{Status: gateway.StatusOK}, nil
	}
	return g.onboardFn(ctx, req)
}

func (g *fakeGateway) LogWeight(ctx context.Context, req gateway.LogWeightRequest) (*gateway.LogWeightResponse, error) {
	if g.logWeightFn == nil {
		return &gateway.LogWeightResponse{Status: gateway.StatusOK}, nil
	}
	return g.logWeightFn(ctx, req)
}

func (g *fakeGateway) GetLogs(ctx context.Context, email string, limit int) (*gateway.GetLogsResponse, error) {
	if g.getLogsFn == nil {
		return &gateway.GetLogsResponse{Status: gateway.StatusOK}, nil
	}
	return g.getLogsFn(ctx, email, limit)
}

func (g *fakeGateway) AdminAuth(ctx context.Context, password string) (*gateway.AdminAuthResponse, error) {
	if g.adminAuthFn == nil {
		return &gateway.AdminAuthResponse{Status: gateway.StatusOK}, nil
	}
	return g.adminAuthFn(ctx, password)
}

// newTestCatalog builds a catalog over an empty override store, so the
// built-in default library is active.
func newTestCatalog(ctx context.Context) (CatalogService, *memProgramRepo, error) {
	repo := &memProgramRepo{}
	catalog, err := NewCatalogService(ctx, repo, nil, testProgramConfig())
	return catalog, repo, err
}
