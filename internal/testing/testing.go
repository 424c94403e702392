// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/spotlite/internal/models"
)

// SampleEvents returns a fresh copy of a small catalog covering every category and location.
func SampleEvents() models.EventCollection {
	return models.EventCollection{
		{ID: "e1", Name: "Jazz Night", Date: "2025-01-10", Time: "19:00", Location: "Chandigarh", Category: models.CategoryMusic, Images: []string{"https://img.example/jazz.png"}, Price: 499, Description: "Live jazz", OrganizerID: "o1"},
		{ID: "e2", Name: "Yoga Camp", Date: "2025-01-12", Time: "06:30", Location: "Mohali", Category: models.CategoryHealth, Price: 0, Description: "Morning yoga", OrganizerID: "o2"},
		{ID: "e3", Name: "Rock Fest", Date: "2025-02-01", Time: "17:00", Location: "Panchkula", Category: models.CategoryFestival, Images: []string{"https://img.example/rock.png"}, Price: 999.5, OrganizerID: "o1"},
		{ID: "e4", Name: "Go Workshop", Date: "2025-02-14", Time: "10:00", Location: "Chandigarh", Category: models.CategoryWorkshop, Price: 250, OrganizerID: "o3"},
		{ID: "e5", Name: "Comedy Hour", Date: "2025-03-03", Time: "20:00", Location: "Mohali", Category: models.CategoryEntertainment, Price: 300, OrganizerID: "o2"},
	}
}

// Envelope writes the API's JSON envelope with the given status on both the wire and the body.
func Envelope(w http.ResponseWriter, status int, data any, message string) {
	body := map[string]any{"statusCode": status, "message": message}
	if data != nil {
		body["data"] = data
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// APIServer is a fake EventSpotLite API for tests.
//
// Register accepts one account per email; Login accepts any registered account;
// GET /events/ answers with Events. Requests are recorded for inspection.
type APIServer struct {
	*httptest.Server

	mu       sync.Mutex
	Events   models.EventCollection
	Accounts map[string]models.Credentials
	Requests []*http.Request
	// FailEvents makes the events endpoint answer 500.
	FailEvents bool
}

// NewAPIServer starts a fake API mounted under /api/v1/. It is closed with t.Cleanup.
func NewAPIServer(t *testing.T) *APIServer {
	t.Helper()
	s := &APIServer{Events: SampleEvents(), Accounts: map[string]models.Credentials{}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/register", s.register)
	mux.HandleFunc("POST /api/v1/auth/login", s.login)
	mux.HandleFunc("GET /api/v1/events/", s.events)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.Requests = append(s.Requests, r.Clone(context.Background()))
		s.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the API root the clients should be configured with.
func (s *APIServer) BaseURL() string {
	return s.URL + "/api/v1/"
}

// LastRequest returns the most recent request, or nil.
func (s *APIServer) LastRequest() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Requests) == 0 {
		return nil
	}
	return s.Requests[len(s.Requests)-1]
}

func (s *APIServer) register(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		Envelope(w, http.StatusBadRequest, nil, "invalid body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Accounts[creds.Email]; ok {
		Envelope(w, http.StatusConflict, nil, "User with email already exists")
		return
	}
	s.Accounts[creds.Email] = creds
	Envelope(w, http.StatusCreated, nil, "User registered successfully")
}

func (s *APIServer) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		Envelope(w, http.StatusBadRequest, nil, "invalid body")
		return
	}

	s.mu.Lock()
	creds, ok := s.Accounts[body.Email]
	s.mu.Unlock()
	if !ok || creds.Password != body.Password {
		Envelope(w, http.StatusUnauthorized, nil, "Invalid credentials")
		return
	}

	Envelope(w, http.StatusOK, map[string]any{
		"user":         models.User{Email: creds.Email, Name: creds.Name, Contact: creds.Contact, Role: creds.Role},
		"accessToken":  "access-" + creds.Email,
		"refreshToken": "refresh-" + creds.Email,
	}, "Login successful")
}

func (s *APIServer) events(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailEvents {
		Envelope(w, http.StatusInternalServerError, nil, "database unavailable")
		return
	}
	Envelope(w, http.StatusOK, s.Events, "Events fetched")
}

// MockEventLister is a test double for services.EventLister
type MockEventLister struct {
	mu     sync.Mutex
	Events models.EventCollection
	Err    error
	Calls  int
}

func (m *MockEventLister) ListEvents(ctx context.Context) (models.EventCollection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Events.Clone(), nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
