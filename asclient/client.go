// Package asclient provides the Go client for the Analysis Services API.
//
// Purpose:
//
//	REST client for the Analysis Services API: base images, models, workflows,
//	jobs and documents. Handles authentication, request/response formatting,
//	pagination and error handling with retry logic.
//
// Dependencies:
//   - net/http: HTTP client
//   - go.uber.org/zap: Request logging
//   - github.com/google/uuid: Per-request correlation IDs
//   - go.opentelemetry.io/otel: Trace context propagation
package asclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Client provides access to the Analysis Services API.
//
// A Client is safe for concurrent use: it is immutable after construction.
type Client struct {
	baseURL    string
	basePath   string
	apiKey     string
	username   string
	password   string
	userAgent  string
	httpClient *http.Client
	retryCfg   RetryConfig
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. It replaces the default
// client entirely, including its timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithAPIKey authenticates requests with an API key, sent as the "apikey"
// query parameter on every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithBasicAuth authenticates requests with HTTP basic auth.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRetry sets the retry configuration.
func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) {
		c.retryCfg = cfg
	}
}

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a new Analysis Services API client.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		basePath:   strings.TrimRight(parsed.Path, "/"),
		userAgent:  "as-client-go/" + Version,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		retryCfg:   DefaultRetryConfig(),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the base URL of the API instance the client is connected to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping checks that the API is reachable and the client is authorised to use
// it. It issues a minimal listing request against a documented endpoint.
func (c *Client) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("limit", "1")

	req, err := c.newRequest(ctx, http.MethodGet, q, nil, "", baseImagesPath)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	drain(resp)

	return nil
}

// newRequest builds an API request for the given path segments, attaching
// authentication, the User-Agent, a correlation ID and trace context.
func (c *Client) newRequest(ctx context.Context, method string, query url.Values, body io.Reader, contentType string, segments ...string) (*http.Request, error) {
	u, err := url.JoinPath(c.baseURL, segments...)
	if err != nil {
		return nil, fmt.Errorf("build URL: %w", err)
	}

	if c.apiKey != "" {
		if query == nil {
			query = url.Values{}
		}
		query.Set("apikey", c.apiKey)
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return req, nil
}

// do executes a request and maps non-2xx responses to typed errors. On
// success the response body is left open for the caller to consume.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	requestID := req.Header.Get("X-Request-Id")
	logger := c.requestLogger(req.Context()).With(
		zap.String("method", req.Method),
		zap.String("url", redactURL(req.URL)),
		zap.String("request_id", requestID),
	)

	logger.Debug("sending request")
	started := time.Now()

	resp, err := c.doWithRetry(req, logger)
	elapsed := time.Since(started)

	resource := c.resourceLabel(req.URL)
	if err != nil {
		recordRequest(req.Method, resource, 0, elapsed)
		logger.Error("request failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return nil, fmt.Errorf("request failed: %w", err)
	}

	recordRequest(req.Method, resource, resp.StatusCode, elapsed)
	logger.Debug("request complete", zap.Int("status", resp.StatusCode), zap.Duration("elapsed", elapsed))

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, newResponseError(resp, requestID)
	}

	return resp, nil
}

// requestLogger enriches the client logger with trace identifiers when the
// context carries an active span.
func (c *Client) requestLogger(ctx context.Context) *zap.Logger {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return c.logger
	}

	sc := span.SpanContext()
	return c.logger.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

// getJSON issues a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, query url.Values, out interface{}, segments ...string) error {
	req, err := c.newRequest(ctx, http.MethodGet, query, nil, "", segments...)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}

	return decodeJSON(resp, out)
}

// sendJSON issues a request with a JSON body and decodes the JSON response
// into out. Pass a nil out to discard the response body.
func (c *Client) sendJSON(ctx context.Context, method string, query url.Values, in, out interface{}, segments ...string) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := c.newRequest(ctx, method, query, bytes.NewReader(body), "application/json", segments...)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}

	if out == nil {
		drain(resp)
		return nil
	}

	return decodeJSON(resp, out)
}

// resourceLabel derives the top-level resource name from a request URL, for
// use as a metric label.
func (c *Client) resourceLabel(u *url.URL) string {
	p := strings.TrimPrefix(u.Path, c.basePath)
	p = strings.Trim(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "unknown"
	}
	return p
}

// redactURL renders a URL for logging with the apikey parameter masked.
func redactURL(u *url.URL) string {
	q := u.Query()
	if q.Get("apikey") == "" {
		return u.String()
	}

	q.Set("apikey", "REDACTED")
	r := *u
	r.RawQuery = q.Encode()
	return r.String()
}

func decodeJSON(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// drain consumes and closes a response body so the underlying connection can
// be reused.
func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
