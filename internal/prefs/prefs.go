// Package prefs stores non-sensitive client flags (onboarding, UI
// preferences, biometric toggle, last login email) in a bbolt file.
// Token material never belongs here; see package securestore.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	dirPerm     = fs.FileMode(0o700)
	filePerm    = fs.FileMode(0o600)
	openTimeout = 5 * time.Second
)

// Keys under which flags are stored.
const (
	KeyOnboarded        = "@simply:onboarded"
	KeyPreferences      = "@simply:preferences"
	KeyLastLogin        = "@simply:last_login"
	KeyBiometricEnabled = "@simply:biometric"
)

var (
	appBucket = []byte("app")
	allKeys   = []string{KeyOnboarded, KeyPreferences, KeyLastLogin, KeyBiometricEnabled}
)

// ErrSensitiveKey is returned when a preferences blob names token material.
var ErrSensitiveKey = errors.New("preferences must not contain token material")

// Store is the non-sensitive key-value store.
type Store interface {
	SetOnboarded(done bool) error
	IsOnboarded() (bool, error)
	SetPreferences(p map[string]any) error
	Preferences() (map[string]any, error)
	SetBiometricEnabled(enabled bool) error
	IsBiometricEnabled() (bool, error)
	SetLastLogin(email string) error
	LastLogin() (string, error)
	ClearAll() error
}

// BoltStore implements Store on a bbolt database.
type BoltStore struct {
	db *bolt.DB
}

// Open opens the preferences database at path, creating it if needed.
func Open(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, fmt.Errorf("creating preferences directory: %w", err)
	}

	db, err := bolt.Open(path, filePerm, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening preferences db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(appBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing preferences db: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) put(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(appBucket).Put([]byte(key), value)
	})
}

func (s *BoltStore) get(key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(appBucket).Get([]byte(key)); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, err
}

func (s *BoltStore) putBool(key string, v bool) error {
	data, _ := json.Marshal(v)
	return s.put(key, data)
}

func (s *BoltStore) getBool(key string) (bool, error) {
	v, err := s.get(key)
	if err != nil {
		return false, err
	}
	return string(v) == "true", nil
}

// SetOnboarded records whether onboarding has been completed.
func (s *BoltStore) SetOnboarded(done bool) error {
	return s.putBool(KeyOnboarded, done)
}

// IsOnboarded reports the onboarding flag, false when unset.
func (s *BoltStore) IsOnboarded() (bool, error) {
	return s.getBool(KeyOnboarded)
}

// SetPreferences stores the preferences blob as JSON. Keys that mention
// tokens are rejected.
func (s *BoltStore) SetPreferences(p map[string]any) error {
	if containsTokenKey(p) {
		return ErrSensitiveKey
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}

	return s.put(KeyPreferences, data)
}

// Preferences returns the stored blob, or nil when none was saved.
func (s *BoltStore) Preferences() (map[string]any, error) {
	v, err := s.get(KeyPreferences)
	if err != nil || v == nil {
		return nil, err
	}

	var p map[string]any
	if err := json.Unmarshal(v, &p); err != nil {
		return nil, fmt.Errorf("decoding preferences: %w", err)
	}

	return p, nil
}

// SetBiometricEnabled records the biometric login toggle.
func (s *BoltStore) SetBiometricEnabled(enabled bool) error {
	return s.putBool(KeyBiometricEnabled, enabled)
}

// IsBiometricEnabled reports the biometric toggle, false when unset.
func (s *BoltStore) IsBiometricEnabled() (bool, error) {
	return s.getBool(KeyBiometricEnabled)
}

// SetLastLogin remembers the email used for the last successful login.
func (s *BoltStore) SetLastLogin(email string) error {
	return s.put(KeyLastLogin, []byte(email))
}

// LastLogin returns the last login email, or "" when unset.
func (s *BoltStore) LastLogin() (string, error) {
	v, err := s.get(KeyLastLogin)
	return string(v), err
}

// ClearAll removes every flag this store manages.
func (s *BoltStore) ClearAll() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(appBucket)
		for _, k := range allKeys {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
}

func containsTokenKey(m map[string]any) bool {
	for k, v := range m {
		if strings.Contains(strings.ToLower(k), "token") {
			return true
		}
		if nested, ok := v.(map[string]any); ok && containsTokenKey(nested) {
			return true
		}
	}
	return false
}
