// Package gateway wraps the webhook endpoints of the external
// workflow-automation backend. It is the only network-facing component:
// five stateless JSON POSTs, each normalized into a typed response or a
// typed error. No retries, no caching, no sessions held here.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jestephe2/rootedwellness-workout-app/internal/config"
	"github.com/jestephe2/rootedwellness-workout-app/internal/domain"
)

// NetworkError means the request never produced a response (DNS, dial,
// or transport failure). Write callers surface it as retryable.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError means the backend answered with a non-2xx status.
type ServerError struct {
	URL    string
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error calling %s: status %d: %s", e.URL, e.Status, e.Body)
}

// Statuses used across the webhook responses.
const (
	StatusOK           = "ok"
	StatusError        = "error"
	StatusExistingUser = "existing_user"
	StatusNewUser      = "new_user"
)

// InitResponse is the init-user webhook response.
type InitResponse struct {
	Status     string                   `json:"status"` // existing_user | new_user
	Email      string                   `json:"email"`
	User       *domain.User             `json:"user,omitempty"`
	RecentLogs []domain.WorkoutLogEntry `json:"recent_logs,omitempty"`
}

// OnboardRequest is the onboard-user webhook request body.
type OnboardRequest struct {
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	PrimaryGoal       string `json:"primary_goal"`
	TargetDaysPerWeek string `json:"target_days_per_week"`
	BiggestObstacle   string `json:"biggest_obstacle,omitempty"`
}

// OnboardResponse is the onboard-user webhook response.
type OnboardResponse struct {
	Status  string       `json:"status"` // ok | error
	User    *domain.User `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

// LogWeightRequest is the log-weight webhook request body.
type LogWeightRequest struct {
	Email        string  `json:"email"`
	Week         int     `json:"week"`
	Day          int     `json:"day"`
	ExerciseName string  `json:"exercise_name"`
	Weight       float64 `json:"weight"`
}

// LogWeightResponse is the log-weight webhook response.
type LogWeightResponse struct {
	Status  string `json:"status"` // ok | error
	Message string `json:"message,omitempty"`
}

// GetLogsResponse is the get-logs webhook response.
type GetLogsResponse struct {
	Status  string                   `json:"status"` // ok | error
	Logs    []domain.WorkoutLogEntry `json:"logs,omitempty"`
	Message string                   `json:"message,omitempty"`
}

// AdminAuthResponse is the admin-auth webhook response. ExpiresAt is an
// RFC 3339 timestamp when present.
type AdminAuthResponse struct {
	Status       string `json:"status"` // ok | error
	SessionToken string `json:"session_token,omitempty"`
	ExpiresAt    string `json:"expires_at,omitempty"`
	Message      string `json:"message,omitempty"`
}

// Gateway is the client for the remote automation backend.
type Gateway interface {
	InitUser(ctx context.Context, email string) (*InitResponse, error)
	OnboardUser(ctx context.Context, req OnboardRequest) (*OnboardResponse, error)
	LogWeight(ctx context.Context, req LogWeightRequest) (*LogWeightResponse, error)
	GetLogs(ctx context.Context, email string, limit int) (*GetLogsResponse, error)
	AdminAuth(ctx context.Context, password string) (*AdminAuthResponse, error)
}

// httpGateway implements Gateway over plain HTTP POSTs.
type httpGateway struct {
	cfg    config.RemoteConfig
	client *http.Client
}

// New creates a Gateway from the remote endpoint configuration.
func New(cfg config.RemoteConfig) Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &httpGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (g *httpGateway) InitUser(ctx context.Context, email string) (*InitResponse, error) {
	var resp InitResponse
	body := map[string]string{"email": email}
	if err := g.postJSON(ctx, g.cfg.InitURL, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *httpGateway) OnboardUser(ctx context.Context, req OnboardRequest) (*OnboardResponse, error) {
	var resp OnboardResponse
	if err := g.postJSON(ctx, g.cfg.OnboardURL, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *httpGateway) LogWeight(ctx context.Context, req LogWeightRequest) (*LogWeightResponse, error) {
	var resp LogWeightResponse
	if err := g.postJSON(ctx, g.cfg.LogWeightURL, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *httpGateway) GetLogs(ctx context.Context, email string, limit int) (*GetLogsResponse, error) {
	var resp GetLogsResponse
	body := map[string]any{"email": email, "limit": limit}
	if err := g.postJSON(ctx, g.cfg.GetLogsURL, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *httpGateway) AdminAuth(ctx context.Context, password string) (*AdminAuthResponse, error) {
	var resp AdminAuthResponse
	body := map[string]string{"password": password}
	if err := g.postJSON(ctx, g.cfg.AdminAuthURL, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// postJSON builds the JSON body, POSTs it, and decodes a 2xx response
// into out. Transport failures become *NetworkError, non-2xx responses
// become *ServerError.
func (g *httpGateway) postJSON(ctx context.Context, url string, body, out any) error {
	if url == "" {
		return &NetworkError{URL: url, Err: fmt.Errorf("endpoint not configured")}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request for %s: %w", url, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerError{URL: url, Status: resp.StatusCode, Body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}
