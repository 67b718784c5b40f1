package pdga

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Credential is an authenticated API session.
type Credential struct {
	Token       string    `json:"token"`
	SessionName string    `json:"session_name"`
	SessionID   string    `json:"sessid"`
	ExpiresAt   time.Time `json:"-"`
}

// Cookie returns the session cookie value, "name=id".
func (c *Credential) Cookie() string {
	return c.SessionName + "=" + c.SessionID
}

// Expired reports whether the credential must be renewed at now.
func (c *Credential) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// LoginFunc obtains a fresh credential.
type LoginFunc func(ctx context.Context) (*Credential, error)

// Session hands out a credential, logging in lazily and again once the
// credential expires. Concurrent callers share a single login.
type Session struct {
	login LoginFunc
	ttl   time.Duration
	now   func() time.Time

	mu    sync.Mutex
	cred  *Credential
	group singleflight.Group
}

// NewSession creates a session renewing credentials every ttl.
func NewSession(login LoginFunc, ttl time.Duration) *Session {
	return &Session{login: login, ttl: ttl, now: time.Now}
}

// Credential returns a valid credential, logging in if needed.
func (s *Session) Credential(ctx context.Context) (*Credential, error) {
	if c := s.current(); c != nil {
		return c, nil
	}

	v, err, _ := s.group.Do("login", func() (any, error) {
		if c := s.current(); c != nil {
			return c, nil
		}
		c, err := s.login(ctx)
		if err != nil {
			return nil, err
		}
		c.ExpiresAt = s.now().Add(s.ttl)

		s.mu.Lock()
		s.cred = c
		s.mu.Unlock()
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Credential), nil
}

// Invalidate drops c if it is still the current credential, forcing the next
// call to log in.
func (s *Session) Invalidate(c *Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == c {
		s.cred = nil
	}
}

func (s *Session) current() *Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred != nil && !s.cred.Expired(s.now()) {
		return s.cred
	}
	return nil
}
