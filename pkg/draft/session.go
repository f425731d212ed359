package draft

import (
	"sync"

	"github.com/google/uuid"
)

// AuthState is the explicit tri-state of the auth session. The store refuses
// to load until the session is resolved, rather than tolerating a nullable
// user sprinkled through the call sites.
type AuthState int

const (
	AuthUnresolved AuthState = iota
	AuthLoading
	AuthResolved
)

func (s AuthState) String() string {
	switch s {
	case AuthLoading:
		return "loading"
	case AuthResolved:
		return "resolved"
	default:
		return "unresolved"
	}
}

// Session carries the resolved user identity into the store and reconciler.
type Session struct {
	mu        sync.Mutex
	state     AuthState
	userID    uuid.UUID
	companyID uuid.UUID
}

func NewSession() *Session {
	return &Session{state: AuthUnresolved}
}

// BeginResolve marks the session as loading while the identity lookup runs.
func (s *Session) BeginResolve() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == AuthUnresolved {
		s.state = AuthLoading
	}
}

// Resolve records the authenticated identity.
func (s *Session) Resolve(userID, companyID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = AuthResolved
	s.userID = userID
	s.companyID = companyID
}

func (s *Session) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) UserID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *Session) CompanyID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.companyID
}

// ResolvedSession is a convenience for callers that already hold verified
// claims (the HTTP layer resolves identity in middleware).
func ResolvedSession(userID, companyID uuid.UUID) *Session {
	s := NewSession()
	s.Resolve(userID, companyID)
	return s
}
