package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jestephe2/rootedwellness-workout-app/internal/config"
	"github.com/jestephe2/rootedwellness-workout-app/internal/domain"
	"github.com/jestephe2/rootedwellness-workout-app/internal/gateway"
	"github.com/jestephe2/rootedwellness-workout-app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid admin password")
	ErrAuthBackendDown      = errors.New("unable to reach the authentication backend")
	ErrSessionAbsent        = errors.New("no valid admin session")
	ErrTokenGeneration      = errors.New("failed to generate session token")
)

// SessionService is the admin session gate. The password check is fully
// delegated to the remote auth backend; this service only mints and
// tracks the resulting session. Expiration is lazy: an expired record is
// cleared the first time it is read.
type SessionService interface {
	Login(ctx context.Context, password string) (*domain.AdminSession, error)
	// Current resolves a token to its live session. An absent or expired
	// session returns ErrSessionAbsent (and clears the stored record).
	Current(ctx context.Context, token string) (*domain.AdminSession, error)
	// Logout clears the session unconditionally.
	Logout(ctx context.Context, token string) error
}

// sessionService implements the SessionService interface.
type sessionService struct {
	sessionRepo repository.SessionRepository
	remote      gateway.Gateway
	jwtSecret   string
	fallbackTTL time.Duration
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(sessionRepo repository.SessionRepository, remote gateway.Gateway, cfg config.JWTConfig) SessionService {
	if cfg.Secret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	ttl := cfg.Expiration
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &sessionService{
		sessionRepo: sessionRepo,
		remote:      remote,
		jwtSecret:   cfg.Secret,
		fallbackTTL: ttl,
	}
}

// sessionClaims defines the structure of the session JWT payload.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (s *sessionService) Login(ctx context.Context, password string) (*domain.AdminSession, error) {
	resp, err := s.remote.AdminAuth(ctx, password)
	if err != nil {
		var serverErr *gateway.ServerError
		if errors.As(err, &serverErr) {
			// The backend answered; a 401/403 is a rejected password.
			return nil, ErrAuthenticationFailed
		}
		return nil, ErrAuthBackendDown
	}
	if resp.Status != gateway.StatusOK {
		return nil, ErrAuthenticationFailed
	}

	expiresAt := s.expiryFrom(resp.ExpiresAt)
	sessionID := uuid.NewString()

	token, err := s.generateToken(sessionID, expiresAt)
	if err != nil {
		return nil, ErrTokenGeneration
	}

	session := &domain.AdminSession{
		ID:        sessionID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Current(ctx context.Context, token string) (*domain.AdminSession, error) {
	if token == "" {
		return nil, ErrSessionAbsent
	}
	if err := s.verifyToken(token); err != nil {
		return nil, ErrSessionAbsent
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionAbsent
		}
		return nil, err
	}

	if session.Expired(time.Now().UTC()) {
		// Lazy expiration: the record stays in storage until the next
		// read notices it is stale.
		if err := s.sessionRepo.DeleteByToken(ctx, token); err != nil {
			log.Printf("WARN: Failed to clear expired admin session: %v", err)
		}
		return nil, ErrSessionAbsent
	}
	return session, nil
}

func (s *sessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteByToken(ctx, token)
}

// expiryFrom parses the backend-supplied expiry, falling back to the
// configured TTL when it is absent or malformed.
func (s *sessionService) expiryFrom(raw string) time.Time {
	if raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil && t.After(time.Now()) {
			return t.UTC()
		}
		log.Printf("WARN: Ignoring unusable expires_at from auth backend: %q", raw)
	}
	return time.Now().UTC().Add(s.fallbackTTL)
}

// generateToken mints the opaque session token as a signed JWT.
func (s *sessionService) generateToken(sessionID string, expiresAt time.Time) (string, error) {
	claims := &sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "rootedwellness",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// verifyToken checks the signature and shape of a presented token.
// Claims validation is skipped on purpose: the stored session record is
// the authority on expiry, so the lazy cleanup in Current always runs.
func (s *sessionService) verifyToken(tokenString string) error {
	claims := &sessionClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid || claims.SessionID == "" {
		return errors.New("invalid session token claims")
	}
	return nil
}
