// Package securestore persists the access and refresh tokens in the OS
// keychain (macOS Keychain, Windows Credential Manager, Secret Service on
// Linux). It is the only place token material is written to disk.
//
// Entries use the layout:
//   - service "<namespace>.token",   account "auth_token"
//   - service "<namespace>.refresh", account "refresh_token"
package securestore

import (
	"errors"
	"fmt"
	"sync"

	apperrors "github.com/simply-app/simply-cli/internal/errors"
	"github.com/zalando/go-keyring"
)

const (
	accessAccount  = "auth_token"
	refreshAccount = "refresh_token"
)

// ErrEmptyToken is returned when SaveCredential receives a blank token.
var ErrEmptyToken = errors.New("credential tokens must not be empty")

// Store is the secure credential store contract.
// Absent tokens are reported as ok == false with a nil error. Any failure of
// the underlying keychain wraps errors.ErrStorageUnavailable.
type Store interface {
	SaveCredential(accessToken, refreshToken string) error
	AccessToken() (token string, ok bool, err error)
	RefreshToken() (token string, ok bool, err error)
	Clear() error
}

// KeyringStore implements Store on top of the OS keychain.
type KeyringStore struct {
	namespace string

	// mu keeps the two-entry credential consistent for readers.
	mu sync.RWMutex
}

// NewKeyringStore creates a store under the given keychain namespace.
func NewKeyringStore(namespace string) *KeyringStore {
	return &KeyringStore{namespace: namespace}
}

func (s *KeyringStore) accessService() string  { return s.namespace + ".token" }
func (s *KeyringStore) refreshService() string { return s.namespace + ".refresh" }

// SaveCredential overwrites both tokens. If the refresh token cannot be
// written the access token is removed again so no half-written credential
// remains.
func (s *KeyringStore) SaveCredential(accessToken, refreshToken string) error {
	if accessToken == "" || refreshToken == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := keyring.Set(s.accessService(), accessAccount, accessToken); err != nil {
		return unavailable("saving access token", err)
	}

	if err := keyring.Set(s.refreshService(), refreshAccount, refreshToken); err != nil {
		if rbErr := deleteEntry(s.accessService(), accessAccount); rbErr != nil {
			return unavailable("saving refresh token", errors.Join(err, rbErr))
		}
		return unavailable("saving refresh token", err)
	}

	return nil
}

// AccessToken returns the stored access token.
func (s *KeyringStore) AccessToken() (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return get(s.accessService(), accessAccount)
}

// RefreshToken returns the stored refresh token.
func (s *KeyringStore) RefreshToken() (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return get(s.refreshService(), refreshAccount)
}

// Clear removes both tokens. Clearing an empty store succeeds.
func (s *KeyringStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accessErr := deleteEntry(s.accessService(), accessAccount)
	refreshErr := deleteEntry(s.refreshService(), refreshAccount)
	if err := errors.Join(accessErr, refreshErr); err != nil {
		return unavailable("clearing credentials", err)
	}

	return nil
}

func get(service, account string) (string, bool, error) {
	token, err := keyring.Get(service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable("reading "+account, err)
	}
	if token == "" {
		return "", false, nil
	}

	return token, true, nil
}

func deleteEntry(service, account string) error {
	err := keyring.Delete(service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", apperrors.ErrStorageUnavailable, op, err)
}
