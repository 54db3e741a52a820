package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/simply-app/simply-cli/internal/api"
	"github.com/simply-app/simply-cli/internal/session"
)

// MockStore is an in-memory securestore.Store
type MockStore struct {
	mu      sync.Mutex
	access  string
	refresh string
	saveErr error
	saves   int
}

func (m *MockStore) SaveCredential(accessToken, refreshToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.access, m.refresh = accessToken, refreshToken
	return nil
}

func (m *MockStore) AccessToken() (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, m.access != "", nil
}

func (m *MockStore) RefreshToken() (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh, m.refresh != "", nil
}

func (m *MockStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = "", ""
	return nil
}

// MockPrefs is an in-memory prefs.Store that keeps every written value
type MockPrefs struct {
	mu        sync.Mutex
	values    map[string]string
	cleared   bool
	biometric bool
	onboarded bool
}

func newMockPrefs() *MockPrefs {
	return &MockPrefs{values: map[string]string{}}
}

func (m *MockPrefs) set(key string, v interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = fmt.Sprint(v)
}

func (m *MockPrefs) SetOnboarded(done bool) error {
	m.onboarded = done
	m.set("onboarded", done)
	return nil
}

func (m *MockPrefs) IsOnboarded() (bool, error) { return m.onboarded, nil }

func (m *MockPrefs) SetPreferences(p map[string]any) error {
	b, _ := json.Marshal(p)
	m.set("preferences", string(b))
	return nil
}

func (m *MockPrefs) Preferences() (map[string]any, error) { return map[string]any{}, nil }

func (m *MockPrefs) SetBiometricEnabled(enabled bool) error {
	m.biometric = enabled
	m.set("biometric", enabled)
	return nil
}

func (m *MockPrefs) IsBiometricEnabled() (bool, error) { return m.biometric, nil }

func (m *MockPrefs) SetLastLogin(email string) error {
	m.set("last_login", email)
	return nil
}

func (m *MockPrefs) LastLogin() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values["last_login"], nil
}

func (m *MockPrefs) ClearAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = map[string]string{}
	m.cleared = true
	return nil
}

func (m *MockPrefs) snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

func writeData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": msg})
}

// testEnv wires services against a chi-routed fake backend
type testEnv struct {
	router  chi.Router
	server  *httptest.Server
	store   *MockStore
	prefs   *MockPrefs
	session *session.Manager
	client  *api.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		router:  chi.NewRouter(),
		store:   &MockStore{},
		prefs:   newMockPrefs(),
		session: session.NewManager(nil),
	}
	env.server = httptest.NewServer(env.router)
	t.Cleanup(env.server.Close)
	env.client = api.NewClient(env.server.URL, env.store, env.session)
	return env
}

func (e *testEnv) auth() *authService {
	return NewAuthService(e.client, e.prefs, e.session, nil).(*authService)
}
