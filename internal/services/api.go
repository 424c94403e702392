// API service for making requests to the EventSpotLite API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotlite/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://127.0.0.1:8000/api/v1/"

// APIService performs JSON requests against the API base URL.
type APIService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// APIOption configures an [APIService].
type APIOption func(*APIService)

// WithRateLimit paces outgoing requests to rps per second. Zero or less disables pacing.
func WithRateLimit(rps float64) APIOption {
	return func(a *APIService) {
		if rps > 0 {
			a.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) APIOption {
	return func(a *APIService) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAPIService creates a new API service instance.
func NewAPIService(baseURL string, client *http.Client, opts ...APIOption) *APIService {
	if baseURL = shared.NormalizeBaseURL(baseURL); baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	a := &APIService{
		baseURL:    baseURL,
		httpClient: client,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BaseURL returns the normalised base URL.
func (a *APIService) BaseURL() string {
	return a.baseURL
}

// HTTPClient returns the underlying client.
func (a *APIService) HTTPClient() *http.Client {
	return a.httpClient
}

// Envelope is the JSON wrapper every endpoint responds with.
type Envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	Envelope   Envelope
}

// Status returns the envelope's statusCode, falling back to the HTTP status.
func (r *APIResponse) Status() int {
	if r.IsJSON && r.Envelope.StatusCode != 0 {
		return r.Envelope.StatusCode
	}
	return r.StatusCode
}

// Message returns the server-supplied message, or the raw body for non-JSON responses.
func (r *APIResponse) Message() string {
	if r.IsJSON {
		return r.Envelope.Message
	}
	return strings.TrimSpace(string(r.Body))
}

// Decode unmarshals the envelope's data field into v.
func (r *APIResponse) Decode(v any) error {
	if !r.IsJSON || len(r.Envelope.Data) == 0 {
		return fmt.Errorf("response has no data")
	}
	if err := json.Unmarshal(r.Envelope.Data, v); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}

// Get performs a GET request to the specified path.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.Do(ctx, a.httpClient, http.MethodGet, path, nil)
}

// Post performs a POST request with payload encoded as JSON.
func (a *APIService) Post(ctx context.Context, path string, payload any) (*APIResponse, error) {
	return a.Do(ctx, a.httpClient, http.MethodPost, path, payload)
}

// Do sends one request through client. path is relative to the base URL.
//
// Transport and body read failures are returned as an [APIError] of kind [shared.ErrNetwork];
// any HTTP status is a successful round trip for the caller to interpret.
func (a *APIService) Do(ctx context.Context, client *http.Client, method, path string, payload any) (*APIResponse, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+strings.TrimPrefix(path, "/"), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := shared.GenerateID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, networkError(fmt.Errorf("request not sent: %w", err))
		}
	}

	logger := a.logger.With("method", method, "path", path, "request_id", requestID)

	resp, err := client.Do(req)
	if err != nil {
		logger.Debug("request failed", "error", err)
		return nil, networkError(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(fmt.Errorf("failed to read response: %w", err))
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err == nil {
		apiResp.IsJSON = true
		apiResp.Envelope = env
	}

	logger.Debug("response", "status", resp.StatusCode, "api_status", apiResp.Status())
	return apiResp, nil
}
