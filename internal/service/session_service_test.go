package service

import (
	"context"
	"testing"
	"time"

	"github.com/jestephe2/rootedwellness-workout-app/internal/config"
	"github.com/jestephe2/rootedwellness-workout-app/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Expiration: time.Hour}
}

func TestLoginCreatesSession(t *testing.T) {
	sessionRepo := newMemSessionRepo()
	svc := NewSessionService(sessionRepo, &fakeGateway{}, testJWTConfig())
	ctx := context.Background()

	session, err := svc.Login(ctx, "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	current, err := svc.Current(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, current.ID)
}

func TestLoginRejectedPassword(t *testing.T) {
	remote := &fakeGateway{
		adminAuthFn: func(ctx context.Context, password string) (*gateway.AdminAuthResponse, error) {
			return nil, &gateway.ServerError{URL: "http://auth", Status: 401, Body: "nope"}
		},
	}
	svc := NewSessionService(newMemSessionRepo(), remote, testJWTConfig())

	_, err := svc.Login(context.Background(), "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestLoginBackendDown(t *testing.T) {
	remote := &fakeGateway{
		adminAuthFn: func(ctx context.Context, password string) (*gateway.AdminAuthResponse, error) {
			return nil, &gateway.NetworkError{URL: "http://auth", Err: context.DeadlineExceeded}
		},
	}
	svc := NewSessionService(newMemSessionRepo(), remote, testJWTConfig())

	_, err := svc.Login(context.Background(), "hunter2")
	assert.ErrorIs(t, err, ErrAuthBackendDown)
}

func TestLoginUsesBackendExpiry(t *testing.T) {
	backendExpiry := time.Now().Add(30 * time.Minute).UTC().Truncate(time.Second)
	remote := &fakeGateway{
		adminAuthFn: func(ctx context.Context, password string) (*gateway.AdminAuthResponse, error) {
			return &gateway.AdminAuthResponse{
				Status:    gateway.StatusOK,
				ExpiresAt: backendExpiry.Format(time.RFC3339),
			}, nil
		},
	}
	svc := NewSessionService(newMemSessionRepo(), remote, testJWTConfig())

	session, err := svc.Login(context.Background(), "hunter2")
	require.NoError(t, err)
	assert.Equal(t, backendExpiry, session.ExpiresAt)
}

func TestCurrentClearsExpiredSessionLazily(t *testing.T) {
	sessionRepo := newMemSessionRepo()
	svc := NewSessionService(sessionRepo, &fakeGateway{}, testJWTConfig())
	ctx := context.Background()

	session, err := svc.Login(ctx, "hunter2")
	require.NoError(t, err)

	// Expire the stored record in place. It stays in storage until read.
	stored := sessionRepo.sessions[session.Token]
	stored.ExpiresAt = time.Now().Add(-time.Minute)
	sessionRepo.sessions[session.Token] = stored
	require.Len(t, sessionRepo.sessions, 1)

	_, err = svc.Current(ctx, session.Token)
	assert.ErrorIs(t, err, ErrSessionAbsent)
	assert.Empty(t, sessionRepo.sessions, "the read must clear the expired record")
}

func TestCurrentRejectsForgedToken(t *testing.T) {
	svc := NewSessionService(newMemSessionRepo(), &fakeGateway{}, testJWTConfig())

	_, err := svc.Current(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrSessionAbsent)

	// Token signed under a different secret.
	other := NewSessionService(newMemSessionRepo(), &fakeGateway{}, config.JWTConfig{Secret: "other-secret", Expiration: time.Hour})
	session, err := other.Login(context.Background(), "hunter2")
	require.NoError(t, err)

	_, err = svc.Current(context.Background(), session.Token)
	assert.ErrorIs(t, err, ErrSessionAbsent)
}

func TestLogoutDeletesSession(t *testing.T) {
	sessionRepo := newMemSessionRepo()
	svc := NewSessionService(sessionRepo, &fakeGateway{}, testJWTConfig())
	ctx := context.Background()

	session, err := svc.Login(ctx, "hunter2")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))
	_, err = svc.Current(ctx, session.Token)
	assert.ErrorIs(t, err, ErrSessionAbsent)
}
