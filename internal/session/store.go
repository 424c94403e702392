// Package session holds the logged-in user's tokens and profile.
//
// A [Store] is the single owner of session state. It is backed by a durable
// [Storage] so a session survives restarts, and it keeps the invariant that a
// session is either fully present (both tokens and the user) or fully absent.
// Token refresh and expiry are left to the API: a 401 from a downstream call is
// the caller's concern.
package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/desertthunder/spotlite/internal/models"
	"github.com/desertthunder/spotlite/internal/shared"
	"golang.org/x/oauth2"
)

// Storage keys. The token names match the cookies the web front-end used.
const (
	KeyAccessToken  = shared.AccessTokenCookie
	KeyRefreshToken = shared.RefreshTokenCookie
	KeyUser         = "user"
)

var allKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUser}

// Storage is durable string key/value storage.
//
// Save and Remove must apply all keys atomically.
type Storage interface {
	Load(keys ...string) (map[string]string, error)
	Save(values map[string]string) error
	Remove(keys ...string) error
}

// Store is the process-wide session holder.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	current *models.Session
}

// NewStore creates a Store over storage. Call [Store.Init] to load a persisted session.
func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Init loads the persisted session. A partially persisted session is cleared.
func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.storage.Load(allKeys...)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	sess := &models.Session{
		Tokens: models.Tokens{
			AccessToken:  values[KeyAccessToken],
			RefreshToken: values[KeyRefreshToken],
		},
	}
	if raw, ok := values[KeyUser]; ok {
		if err := json.Unmarshal([]byte(raw), &sess.User); err != nil {
			sess.User = models.User{}
		}
	}

	if !sess.Complete() {
		s.current = nil
		if len(values) > 0 {
			return s.clearLocked()
		}
		return nil
	}

	s.current = sess
	return nil
}

// SetSession replaces any prior session and persists it.
func (s *Store) SetSession(tokens models.Tokens, user models.User) error {
	if !tokens.Complete() {
		return fmt.Errorf("%w: access and refresh tokens are both required", shared.ErrInvalidSessionToken)
	}

	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.storage.Save(map[string]string{
		KeyAccessToken:  tokens.AccessToken,
		KeyRefreshToken: tokens.RefreshToken,
		KeyUser:         string(profile),
	})
	if err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.current = &models.Session{Tokens: tokens, User: user}
	return nil
}

// Session returns a copy of the current session.
func (s *Store) Session() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return models.Session{}, false
	}
	return *s.current, true
}

// AccessToken returns the access token, or false when logged out.
func (s *Store) AccessToken() (string, bool) {
	sess, ok := s.Session()
	return sess.AccessToken, ok
}

// RefreshToken returns the refresh token, or false when logged out.
func (s *Store) RefreshToken() (string, bool) {
	sess, ok := s.Session()
	return sess.RefreshToken, ok
}

// Authenticated reports whether a session is present.
func (s *Store) Authenticated() bool {
	_, ok := s.Session()
	return ok
}

// Clear removes the session from memory and durable storage.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

func (s *Store) clearLocked() error {
	if err := s.storage.Remove(allKeys...); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.current = nil
	return nil
}

// TokenSource returns an [oauth2.TokenSource] for the access token held at call time.
//
// When logged out the token is empty and requests carry an empty bearer value,
// which the API rejects.
func (s *Store) TokenSource() oauth2.TokenSource {
	access, _ := s.AccessToken()
	refresh, _ := s.RefreshToken()
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	})
}

// MemoryStorage is a map-backed [Storage], used in tests and as a fallback
// when no database is configured.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Load(keys ...string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := m.values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (m *MemoryStorage) Save(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *MemoryStorage) Remove(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}
