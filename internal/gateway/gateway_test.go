package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jestephe2/rootedwellness-workout-app/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitUserDecodesResponse(t *testing.T) {
	var captured map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"existing_user","email":"ana@example.com"}`))
	}))
	defer server.Close()

	g := New(config.RemoteConfig{InitURL: server.URL, Timeout: time.Second})
	resp, err := g.InitUser(context.Background(), "ana@example.com")
	require.NoError(t, err)

	assert.Equal(t, StatusExistingUser, resp.Status)
	assert.Equal(t, map[string]string{"email": "ana@example.com"}, captured)
}

func TestLogWeightServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow disabled", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	g := New(config.RemoteConfig{LogWeightURL: server.URL, Timeout: time.Second})
	_, err := g.LogWeight(context.Background(), LogWeightRequest{Email: "ana@example.com", ExerciseName: "Back Squat", Weight: 60})

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusServiceUnavailable, serverErr.Status)
	assert.Contains(t, serverErr.Body, "workflow disabled")
}

func TestAdminAuthNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	g := New(config.RemoteConfig{AdminAuthURL: server.URL, Timeout: time.Second})
	_, err := g.AdminAuth(context.Background(), "hunter2")

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestUnconfiguredEndpointIsNetworkError(t *testing.T) {
	g := New(config.RemoteConfig{Timeout: time.Second})
	_, err := g.GetLogs(context.Background(), "ana@example.com", 10)

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestGetLogsDecodesEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","logs":[{"exercise_name":"Back Squat","weight":60}]}`))
	}))
	defer server.Close()

	g := New(config.RemoteConfig{GetLogsURL: server.URL, Timeout: time.Second})
	resp, err := g.GetLogs(context.Background(), "ana@example.com", 10)
	require.NoError(t, err)

	assert.Equal(t, StatusOK, resp.Status)
	require.Len(t, resp.Logs, 1)
	assert.Equal(t, "Back Squat", resp.Logs[0].ExerciseName)
	assert.Equal(t, 60.0, resp.Logs[0].Weight)
}
