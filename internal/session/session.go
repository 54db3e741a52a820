// Package session holds the process-wide authentication state consumed by
// commands: Unknown → Checking → Authenticated | Unauthenticated.
//
// Once startup reconciliation has run the state never returns to Checking.
// Every transition is delivered to subscribers synchronously, before the
// mutating call returns.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	apperrors "github.com/simply-app/simply-cli/internal/errors"
	"go.uber.org/zap"
)

// Status is the session's authentication status.
type Status int

const (
	StatusUnknown Status = iota
	StatusChecking
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusChecking:
		return "checking"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// ErrAlreadyInitialized is returned by a second call to Initialize.
var ErrAlreadyInitialized = errors.New("session already initialized")

// User is the summary of the authenticated user.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Level     string `json:"level,omitempty"`
	KYCStatus string `json:"kycStatus,omitempty"`
}

// Snapshot is an immutable view of the session.
type Snapshot struct {
	Status Status
	User   *User
}

// Listener receives every transition. Listeners must not mutate the session.
type Listener func(Snapshot)

// CredentialStore is the part of the secure store reconciliation needs.
type CredentialStore interface {
	AccessToken() (string, bool, error)
	Clear() error
}

// Validator confirms a stored access token, typically by fetching /auth/me.
type Validator func(ctx context.Context) (*User, error)

// Manager owns the session state.
type Manager struct {
	log *zap.Logger

	// transition serializes state changes together with their notifications,
	// so listeners observe transitions in order.
	transition sync.Mutex

	mu        sync.RWMutex
	status    Status
	user      *User
	listeners map[int]Listener
	nextID    int
}

// NewManager returns a session in StatusUnknown.
func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		log:       log,
		listeners: make(map[int]Listener),
	}
}

// Snapshot returns the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{Status: m.status, User: m.user}
}

// Status returns the current status.
func (m *Manager) Status() Status {
	return m.Snapshot().Status
}

// User returns the authenticated user, or nil.
func (m *Manager) User() *User {
	return m.Snapshot().User
}

// IsAuthenticated reports whether the session is Authenticated.
func (m *Manager) IsAuthenticated() bool {
	return m.Status() == StatusAuthenticated
}

// Subscribe registers l and returns a function that removes it.
func (m *Manager) Subscribe(l Listener) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// set applies a transition and notifies listeners. The caller holds
// m.transition. It reports whether anything changed.
func (m *Manager) set(status Status, user *User) bool {
	m.mu.Lock()
	if m.status == status && m.user == user {
		m.mu.Unlock()
		return false
	}
	prev := m.status
	m.status = status
	m.user = user
	snap := Snapshot{Status: status, User: user}
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.mu.Unlock()

	m.log.Debug("session transition",
		zap.Stringer("from", prev),
		zap.Stringer("to", status))

	for _, l := range listeners {
		l(snap)
	}
	return true
}

// Initialize runs startup reconciliation. With no stored access token the
// session becomes Unauthenticated. Otherwise it stays Checking until validate
// succeeds; an authentication failure clears the stored credentials, any
// other failure leaves them for the next run. Both failures end
// Unauthenticated and return the error.
func (m *Manager) Initialize(ctx context.Context, store CredentialStore, validate Validator) error {
	m.transition.Lock()
	if m.status != StatusUnknown {
		m.transition.Unlock()
		return ErrAlreadyInitialized
	}
	m.set(StatusChecking, nil)
	m.transition.Unlock()

	_, ok, err := store.AccessToken()
	if err != nil {
		m.MarkUnauthenticated()
		return fmt.Errorf("reading stored credentials: %w", err)
	}
	if !ok {
		m.MarkUnauthenticated()
		return nil
	}

	user, err := validate(ctx)
	if err == nil {
		m.MarkAuthenticated(user)
		return nil
	}

	if errors.Is(err, apperrors.ErrSessionExpired) || errors.Is(err, apperrors.ErrAuthenticationFailed) {
		if clearErr := store.Clear(); clearErr != nil {
			err = errors.Join(err, clearErr)
		}
	}
	m.MarkUnauthenticated()
	return fmt.Errorf("validating stored session: %w", err)
}

// MarkAuthenticated moves the session to Authenticated for user.
func (m *Manager) MarkAuthenticated(user *User) {
	m.transition.Lock()
	defer m.transition.Unlock()
	m.set(StatusAuthenticated, user)
}

// MarkUnauthenticated moves the session to Unauthenticated. It reports
// false when the session already was.
func (m *Manager) MarkUnauthenticated() bool {
	m.transition.Lock()
	defer m.transition.Unlock()
	return m.set(StatusUnauthenticated, nil)
}
