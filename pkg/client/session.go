package client

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"
	"time"
)

const (
	// CookieAuthToken holds the bearer token
	CookieAuthToken = "auth_token"
	// CookieUserRole holds the caller's role ("Admin" or "Customer")
	CookieUserRole = "user_role"
	// KeyUser holds the base64 encoded JSON profile
	KeyUser = "user"

	// CookieTTL is how long auth cookies stay readable
	CookieTTL = 24 * time.Hour

	cookiePrefix = "cookie:"
)

type cookie struct {
	Value   string    `json:"value"`
	Expires time.Time `json:"expires"`
}

// Session is the auth state persisted between runs: two expiring cookies plus a profile entry
type Session struct {
	mu      sync.Mutex
	storage Storage
	now     func() time.Time
}

// NewSession wraps storage. A nil storage gets an in-memory store.
func NewSession(storage Storage) *Session {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	return &Session{storage: storage, now: time.Now}
}

// WithClock replaces the clock used for cookie expiry
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	return s
}

// Storage exposes the underlying store, for the cart and other local-storage users
func (s *Session) Storage() Storage {
	return s.storage
}

// SetAuth stores the token and role cookies with a one day expiry
func (s *Session) SetAuth(token, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	expires := s.now().Add(CookieTTL)
	if err := s.setCookie(CookieAuthToken, token, expires); err != nil {
		return err
	}
	return s.setCookie(CookieUserRole, role, expires)
}

// Token returns the auth token, or "" when absent or expired
func (s *Session) Token() string {
	return s.cookie(CookieAuthToken)
}

// Role returns the role cookie, or "" when absent or expired
func (s *Session) Role() string {
	return s.cookie(CookieUserRole)
}

// IsAuthenticated reports whether a live token is stored
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// IsAdmin reports whether the stored role is Admin
func (s *Session) IsAdmin() bool {
	return s.Role() == "Admin"
}

// ClearAuth drops both cookies and the stored profile
func (s *Session) ClearAuth() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Join(
		s.storage.Delete(cookiePrefix+CookieAuthToken),
		s.storage.Delete(cookiePrefix+CookieUserRole),
		s.storage.Delete(KeyUser),
	)
}

// SetUser stores the profile as base64(JSON)
func (s *Session) SetUser(user *User) error {
	if user == nil {
		return s.storage.Delete(KeyUser)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.storage.Set(KeyUser, base64.StdEncoding.EncodeToString(data))
}

// User returns the stored profile. A missing or corrupt entry reads as absent.
func (s *Session) User() (*User, bool) {
	raw, ok := s.storage.Get(KeyUser)
	if !ok || raw == "" {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, false
	}
	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, false
	}
	return &user, true
}

func (s *Session) setCookie(name, value string, expires time.Time) error {
	data, err := json.Marshal(cookie{Value: value, Expires: expires})
	if err != nil {
		return err
	}
	return s.storage.Set(cookiePrefix+name, string(data))
}

func (s *Session) cookie(name string) string {
	raw, ok := s.storage.Get(cookiePrefix + name)
	if !ok {
		return ""
	}
	var c cookie
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return ""
	}
	if !c.Expires.After(s.now()) {
		return ""
	}
	return c.Value
}
