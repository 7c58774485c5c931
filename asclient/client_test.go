// Package asclient unit tests for client construction and request plumbing.
//
// Purpose:
//   These tests validate client option handling, authentication, request
//   headers and the reachability probe against mock servers.
package asclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient starts a mock API server and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL, opts...)
	require.NoError(t, err)
	return client
}

// fastRetry keeps retry delays out of test runtime.
func fastRetry(attempts int) Option {
	return WithRetry(RetryConfig{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     4 * time.Millisecond,
	})
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{"empty", ""},
		{"no scheme", "senaps.io/api/analysis"},
		{"bad scheme", "ftp://senaps.io/api/analysis"},
		{"missing host", "https:///api/analysis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.baseURL)
			assert.Error(t, err)
			assert.Nil(t, client)
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	client, err := New("https://senaps.io/api/analysis/")
	require.NoError(t, err)

	assert.Equal(t, "https://senaps.io/api/analysis", client.BaseURL())
	assert.Equal(t, "as-client-go/"+Version, client.userAgent)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	assert.Equal(t, DefaultRetryConfig(), client.retryCfg)
}

func TestClient_APIKeyQueryParam(t *testing.T) {
	var gotKey string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}), WithAPIKey("secret-key"))

	_, err := client.GetModel(context.Background(), "model-1")
	require.NoError(t, err)
	assert.Equal(t, "secret-key", gotKey)
}

func TestClient_BasicAuth(t *testing.T) {
	var user, pass string
	var ok bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok = r.BasicAuth()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}), WithBasicAuth("mac", "hunter2"))

	_, err := client.GetModel(context.Background(), "model-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "mac", user)
	assert.Equal(t, "hunter2", pass)
}

func TestClient_RequestHeaders(t *testing.T) {
	var userAgent, requestID string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		requestID = r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))

	_, err := client.GetModel(context.Background(), "model-1")
	require.NoError(t, err)

	assert.Equal(t, "as-client-go/"+Version, userAgent)
	assert.NotEmpty(t, requestID)
}

func TestClient_UserAgentOverride(t *testing.T) {
	var userAgent string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}), WithUserAgent("my-pipeline/1.0"))

	_, err := client.GetModel(context.Background(), "model-1")
	require.NoError(t, err)
	assert.Equal(t, "my-pipeline/1.0", userAgent)
}

func TestClient_Ping(t *testing.T) {
	var gotPath, gotLimit string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 0, "totalcount": 0, "_embedded": {"baseImages": []}}`))
	}))

	err := client.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/base-images", gotPath)
	assert.Equal(t, "1", gotLimit)
}

func TestClient_Ping_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // reachability failure, not a 404

	client, err := New(server.URL, fastRetry(1))
	require.NoError(t, err)

	err = client.Ping(context.Background())
	assert.Error(t, err)
}

func TestClient_BaseURLWithPathPrefix(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL + "/api/analysis")
	require.NoError(t, err)

	_, err = client.GetModel(context.Background(), "model-1")
	require.NoError(t, err)
	assert.Equal(t, "/api/analysis/models/model-1", gotPath)
}

func TestRedactURL(t *testing.T) {
	u, err := url.Parse("https://senaps.io/api/analysis/models?apikey=secret&limit=10")
	require.NoError(t, err)

	redacted := redactURL(u)
	assert.NotContains(t, redacted, "secret")
	assert.Contains(t, redacted, "apikey=REDACTED")
	assert.Contains(t, redacted, "limit=10")

	// URLs without an apikey pass through unchanged.
	u, err = url.Parse("https://senaps.io/api/analysis/models?limit=10")
	require.NoError(t, err)
	assert.Equal(t, u.String(), redactURL(u))
}

func TestClient_ResourceLabel(t *testing.T) {
	client, err := New("https://senaps.io/api/analysis")
	require.NoError(t, err)

	tests := []struct {
		rawURL string
		want   string
	}{
		{"https://senaps.io/api/analysis/models/model-1", "models"},
		{"https://senaps.io/api/analysis/base-images", "base-images"},
		{"https://senaps.io/api/analysis/workflows/wf-1/results", "workflows"},
		{"https://senaps.io/api/analysis", "unknown"},
	}

	for _, tt := range tests {
		u, err := url.Parse(tt.rawURL)
		require.NoError(t, err)
		assert.Equal(t, tt.want, client.resourceLabel(u))
	}
}
