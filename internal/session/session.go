// Package session carries the backend credentials as an immutable value
// threaded explicitly through calls, with an explicit subscriber mechanism
// for token replacement instead of an ambient singleton.
package session

import "sync"

// Session is an immutable snapshot of the backend credentials.
type Session struct {
	token string
}

// New builds a session around a bearer token.
func New(token string) Session {
	return Session{token: token}
}

// Token returns the bearer token, empty when unauthenticated.
func (s Session) Token() string {
	return s.token
}

// Valid reports whether the session carries a token.
func (s Session) Valid() bool {
	return s.token != ""
}

// Source owns the current session and notifies subscribers when it is
// replaced. Only the login/logout flow replaces it; everything else reads.
type Source struct {
	mu      sync.RWMutex
	current Session
	subs    []func(Session)
}

// NewSource creates a source holding an initial session.
func NewSource(initial Session) *Source {
	return &Source{current: initial}
}

// Current returns the session in effect.
func (s *Source) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace installs a new session and notifies subscribers.
func (s *Source) Replace(sess Session) {
	s.mu.Lock()
	s.current = sess
	subs := append(([]func(Session))(nil), s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(sess)
	}
}

// Subscribe registers a callback invoked on every replacement.
func (s *Source) Subscribe(fn func(Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
