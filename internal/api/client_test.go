package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	apperrors "github.com/simply-app/simply-cli/internal/errors"
	"github.com/simply-app/simply-cli/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockStore is an in-memory CredentialStore
type MockStore struct {
	mu      sync.Mutex
	access  string
	refresh string
	saveErr error
	saves   int
	clears  int
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
	m.clears++
	m.access, m.refresh = "", ""
	return nil
}

func (m *MockStore) tokens() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, m.refresh
}

// MockSession counts forced logouts
type MockSession struct {
	calls atomic.Int32
}

func (m *MockSession) MarkUnauthenticated() bool {
	return m.calls.Add(1) == 1
}

func writeEnvelope(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": status < 400, "data": data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": msg})
}

// fakeBackend serves /api/app with a protected /wallet/balance endpoint that
// only accepts the current access token, and a refresh endpoint that issues
// the next one.
type fakeBackend struct {
	server *httptest.Server

	mu           sync.Mutex
	validToken   string
	nextAccess   string
	nextRefresh  string
	rejectAll    bool
	refreshDelay time.Duration
	refreshFails bool

	refreshCalls   atomic.Int32
	balanceCalls   atomic.Int32
	refreshHeaders []http.Header
	refreshBodies  []map[string]string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{validToken: "access-1", nextAccess: "access-2", nextRefresh: "refresh-2"}

	r := chi.NewRouter()
	r.Route("/api/app", func(r chi.Router) {
		r.Post("/auth/refresh", fb.handleRefresh)
		r.Get("/wallet/balance", func(w http.ResponseWriter, req *http.Request) {
			fb.balanceCalls.Add(1)
			if !fb.authorized(req) {
				writeError(w, http.StatusUnauthorized, "token expired")
				return
			}
			writeEnvelope(w, http.StatusOK, map[string]interface{}{"balance": 1500.5, "currency": "ARS"})
		})
		r.Post("/transfers/send", func(w http.ResponseWriter, req *http.Request) {
			if !fb.authorized(req) {
				writeError(w, http.StatusUnauthorized, "token expired")
				return
			}
			var body map[string]interface{}
			_ = json.NewDecoder(req.Body).Decode(&body)
			writeEnvelope(w, http.StatusOK, body)
		})
	})

	fb.server = httptest.NewServer(r)
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) authorized(req *http.Request) bool {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return !fb.rejectAll && req.Header.Get("Authorization") == "Bearer "+fb.validToken
}

func (fb *fakeBackend) handleRefresh(w http.ResponseWriter, req *http.Request) {
	fb.refreshCalls.Add(1)

	var body map[string]string
	_ = json.NewDecoder(req.Body).Decode(&body)

	fb.mu.Lock()
	fb.refreshHeaders = append(fb.refreshHeaders, req.Header.Clone())
	fb.refreshBodies = append(fb.refreshBodies, body)
	delay, fails := fb.refreshDelay, fb.refreshFails
	fb.mu.Unlock()

	time.Sleep(delay)

	if fails {
		writeError(w, http.StatusUnauthorized, "refresh token revoked")
		return
	}

	fb.mu.Lock()
	fb.validToken = fb.nextAccess
	data := map[string]string{"token": fb.nextAccess}
	if fb.nextRefresh != "" {
		data["refreshToken"] = fb.nextRefresh
	}
	fb.mu.Unlock()

	writeEnvelope(w, http.StatusOK, data)
}

func (fb *fakeBackend) url() string {
	return fb.server.URL + "/api/app"
}

type balance struct {
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

func newTestClient(fb *fakeBackend, store *MockStore, sess *MockSession, opts ...Option) *Client {
	return NewClient(fb.url(), store, sess, opts...)
}

func TestRequest_AttachesBearerToken(t *testing.T) {
	fb := newFakeBackend(t)
	store := &MockStore{access: "access-1", refresh: "refresh-1"}
	c := newTestClient(fb, store, &MockSession{})

	var got balance
	require.NoError(t, c.Get(context.Background(), "/wallet/balance", &got))

	assert.Equal(t, 1500.5, got.Balance)
	assert.Equal(t, "ARS", got.Currency)
	assert.Zero(t, fb.refreshCalls.Load())
}

func TestRequest_NoTokenSendsNoAuthorization(t *testing.T) {
	var gotAuth atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		writeEnvelope(w, http.StatusOK, map[string]string{"sent": "ok"})
	}))
	defer server.Close()

	store := &MockStore{access: "access-1", refresh: "refresh-1"}
	require.NoError(t, store.Clear())

	c := NewClient(server.URL, store, nil)
	require.NoError(t, c.Post(context.Background(), "/auth/forgot-password", map[string]string{"email": "a@b.c"}, nil, Public()))

	assert.Equal(t, "", gotAuth.Load())
}

func TestRequest_RefreshesAndReplaysOnce(t *testing.T) {
	fb := newFakeBackend(t)
	fb.validToken = "access-2"
	store := &MockStore{access: "access-1", refresh: "refresh-1"}
	sess := &MockSession{}
	m := metrics.New()
	c := newTestClient(fb, store, sess, WithMetrics(m))

	var got balance
	require.NoError(t, c.Get(context.Background(), "/wallet/balance", &got))

	assert.Equal(t, 1500.5, got.Balance)
	assert.Equal(t, int32(1), fb.refreshCalls.Load())
	assert.Equal(t, int32(2), fb.balanceCalls.Load())

	access, refresh := store.tokens()
	assert.Equal(t, "access-2", access)
	assert.Equal(t, "refresh-2", refresh)
	assert.Zero(t, sess.calls.Load())

	require.Len(t, fb.refreshHeaders, 1)
	assert.Empty(t, fb.refreshHeaders[0].Get("Authorization"), "refresh token must never be a bearer credential")
	assert.Equal(t, "refresh-1", fb.refreshBodies[0]["refreshToken"])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Refreshes().WithLabelValues(metrics.RefreshSucceeded)))
}

func TestRequest_ReplaysSameBody(t *testing.T) {
	fb := newFakeBackend(t)
	fb.validToken = "access-2"
	store := &MockStore{access: "access-1", refresh: "refresh-1"}
	c := newTestClient(fb, store, &MockSession{})

	var echoed map[string]interface{}
	body := map[string]interface{}{"destinationCvu": "0000003100010000000001", "amount": 250.0}
	require.NoError(t, c.Post(context.Background(), "/transfers/send", body, &echoed))

	assert.Equal(t, body, echoed)
}

func TestRequest_KeepsRefreshTokenWhenNotRotated(t *testing.T) {
	fb := newFakeBackend(t)
	fb.validToken = "access-2"
	fb.nextRefresh = ""
	store := &MockStore{access: "access-1", refresh: "refresh-1"}
	c := newTestClient(fb, store, &MockSession{})

	require.NoError(t, c.Get(context.Background(), "/wallet/balance", nil))

	access, refresh := store.tokens()
	assert.Equal(t, "access-2", access)
	assert.Equal(t, "refresh-1", refresh)
}

func TestRequest_ConcurrentUnauthorizedShareOneRefresh(t *testing.T) {
	fb := newFakeBackend(t)
	fb.validToken = "access-2"
	fb.refreshDelay = 50 * time.Millisecond
	store := &MockStore{access: "access-1", refresh: "refresh-1"}
	sess := &MockSession{}
	c := newTestClient(fb, store, sess)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	results := make([]balance, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.Get(context.Background(), "/wallet/balance", &results[i])
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, 1500.5, results[i].Balance)
	}
	assert.Equal(t, int32(1), fb.refreshCalls.Load())
	assert.Equal(t, 1, store.saves)
	assert.Zero(t, sess.calls.Load())
}

func TestRequest_StaleTokenReplaysWithoutRefresh(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	var store *MockStore
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			t.Error("refresh should not be called")
		default:
			mu.Lock()
			calls++
			first := calls == 1
			mu.Unlock()
			if first {
				// Another request refreshed while this one was in flight.
				require.NoError(t, store.SaveCredential("access-2", "refresh-2"))
				writeError(w, http.StatusUnauthorized, "token expired")
				return
			}
			assert.Equal(t, "Bearer access-2", r.Header.Get("Authorization"))
			writeEnvelope(w, http.StatusOK, map[string]string{"ok": "yes"})
		}
	}))
	defer server.Close()

	store = &MockStore{access: "access-1", refresh: "refresh-1"}
	c := NewClient(server.URL, store, &MockSession{})

	require.NoError(t, c.Get(context.Background(), "/wallet/balance", nil))
	assert.Equal(t, 2, calls)
}

func TestRequest_SecondUnauthorizedForcesLogout(t *testing.T) {
	fb := newFakeBackend(t)
	fb.rejectAll = true
	store := &MockStore{access: "access-1", refresh: "refresh-1"}
	sess := &MockSession{}
	m := metrics.New()
	c := newTestClient(fb, store, sess, WithMetrics(m))

	err := c.Get(context.Background(), "/wallet/balance", nil)

	require.ErrorIs(t, err, apperrors.ErrSessionExpired)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsUnauthorized())

	assert.Equal(t, int32(1), fb.refreshCalls.Load(), "retried request must not refresh again")
	assert.Equal(t, int32(2), fb.balanceCalls.Load())
	access, refresh := store.tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
	assert.Equal(t, int32(1), sess.calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ForcedLogouts()))
}

func TestRequest_RefreshRejectedForcesLogout(t *testing.T) {
	fb := newFakeBackend(t)
	fb.refreshFails = true
	store := &MockStore{access: "stale", refresh: "revoked"}
	sess := &MockSession{}
	c := newTestClient(fb, store, sess)

	err := c.Get(context.Background(), "/wallet/balance", nil)

	require.ErrorIs(t, err, apperrors.ErrSessionExpired)
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed, "refresh rejection is an authentication failure")
	assert.Equal(t, int32(1), fb.balanceCalls.Load(), "no replay after failed refresh")
	access, refresh := store.tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
	assert.Equal(t, int32(1), sess.calls.Load())
}

func TestRequest_NoRefreshTokenForcesLogout(t *testing.T) {
	fb := newFakeBackend(t)
	store := &MockStore{access: "stale"}
	sess := &MockSession{}
	c := newTestClient(fb, store, sess)

	err := c.Get(context.Background(), "/wallet/balance", nil)

	require.ErrorIs(t, err, apperrors.ErrSessionExpired)
	assert.ErrorIs(t, err, ErrNoRefreshToken)
	assert.Zero(t, fb.refreshCalls.Load())
	assert.Equal(t, int32(1), sess.calls.Load())
	assert.Equal(t, 1, store.clears)
}

func TestRequest_ConcurrentFailuresLogOutOnce(t *testing.T) {
	fb := newFakeBackend(t)
	fb.refreshFails = true
	fb.refreshDelay = 30 * time.Millisecond
	store := &MockStore{access: "stale", refresh: "revoked"}
	sess := &MockSession{}
	m := metrics.New()
	c := newTestClient(fb, store, sess, WithMetrics(m))

	const n = 12
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.Get(context.Background(), "/wallet/balance", nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
	}
	assert.Equal(t, int32(1), sess.calls.Load())
	assert.Equal(t, 1, store.clears)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ForcedLogouts()))
}

func TestRequest_StorageFailureDuringRefresh(t *testing.T) {
	fb := newFakeBackend(t)
	fb.validToken = "access-2"
	store := &MockStore{access: "access-1", refresh: "refresh-1", saveErr: apperrors.ErrStorageUnavailable}
	sess := &MockSession{}
	c := newTestClient(fb, store, sess)

	err := c.Get(context.Background(), "/wallet/balance", nil)

	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	assert.Equal(t, int32(1), fb.balanceCalls.Load())
	assert.Equal(t, int32(1), sess.calls.Load())
}

func TestRequest_PublicUnauthorizedIsAuthenticationFailure(t *testing.T) {
	var refreshCalls atomic.Int32
	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusUnauthorized, "Credenciales inválidas")
	})
	r.Post("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		refreshCalls.Add(1)
	})
	server := httptest.NewServer(r)
	defer server.Close()

	sess := &MockSession{}
	c := NewClient(server.URL, &MockStore{}, sess)

	err := c.Post(context.Background(), "/auth/login", map[string]string{"email": "a@b.c", "password": "x"}, nil, Public())

	require.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)
	assert.NotErrorIs(t, err, apperrors.ErrSessionExpired)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Credenciales inválidas", apiErr.Message)
	assert.Zero(t, refreshCalls.Load())
	assert.Zero(t, sess.calls.Load())
}

func TestRequest_NonAuthFailuresPropagateUnchanged(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		body           string
		wantValidation bool
		wantMessage    string
	}{
		{"business rule", http.StatusBadRequest, `{"success":false,"error":"Saldo insuficiente"}`, true, "Saldo insuficiente"},
		{"message field", http.StatusUnprocessableEntity, `{"success":false,"message":"Monto inválido"}`, true, "Monto inválido"},
		{"forbidden", http.StatusForbidden, `{}`, true, "request failed with status 403"},
		{"not found", http.StatusNotFound, `not json`, true, "request failed with status 404"},
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, false, "boom"},
		{"unavailable", http.StatusServiceUnavailable, ``, false, "request failed with status 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			store := &MockStore{access: "access-1", refresh: "refresh-1"}
			sess := &MockSession{}
			c := NewClient(server.URL, store, sess)

			err := c.Post(context.Background(), "/transfers/send", map[string]int{"amount": 1}, nil)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantValidation, errors.Is(err, apperrors.ErrValidation))
			assert.NotErrorIs(t, err, apperrors.ErrSessionExpired)
			assert.Equal(t, int32(1), calls.Load(), "no retry for non-auth failures")
			assert.Zero(t, sess.calls.Load())
			access, _ := store.tokens()
			assert.Equal(t, "access-1", access)
		})
	}
}

func TestRequest_Timeout(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	sess := &MockSession{}
	c := NewClient(server.URL, &MockStore{access: "access-1", refresh: "refresh-1"}, sess, WithTimeout(50*time.Millisecond))

	err := c.Get(context.Background(), "/dashboard", nil)

	require.ErrorIs(t, err, apperrors.ErrTimeout)
	assert.NotErrorIs(t, err, apperrors.ErrSessionExpired)
	assert.Equal(t, int32(1), calls.Load())
	assert.Zero(t, sess.calls.Load())
}

func TestRequest_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	serverURL := server.URL
	server.Close()

	c := NewClient(serverURL, &MockStore{}, nil)
	err := c.Get(context.Background(), "/dashboard", nil)

	assert.ErrorIs(t, err, apperrors.ErrNetwork)
}

func TestRequest_MalformedEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing data", `{"success":true}`},
		{"null data", `{"success":true,"data":null}`},
		{"wrong shape", `{"success":true,"data":{"balance":"lots"}}`},
		{"not json", `<html></html>`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(server.URL, &MockStore{}, nil)
			var got balance
			err := c.Get(context.Background(), "/wallet/balance", &got)

			assert.ErrorIs(t, err, apperrors.ErrMalformedResponse)
		})
	}
}

func TestRequest_SuccessFalseIsValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"Límite diario excedido"}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, &MockStore{}, nil)
	err := c.Post(context.Background(), "/transfers/send", nil, nil)

	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "Límite diario excedido")
}

func TestRequest_QueryParameters(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		writeEnvelope(w, http.StatusOK, []string{})
	}))
	defer server.Close()

	c := NewClient(server.URL+"/", &MockStore{}, nil)
	var got []string
	require.NoError(t, c.Get(context.Background(), "/wallet/transactions", &got,
		WithQuery(url.Values{"page": {"2"}, "limit": {"20"}})))

	assert.Equal(t, "2", gotQuery.Get("page"))
	assert.Equal(t, "20", gotQuery.Get("limit"))
}

func TestRequest_CancelledWaiterDoesNotLogOut(t *testing.T) {
	fb := newFakeBackend(t)
	fb.validToken = "access-2"
	fb.refreshDelay = 200 * time.Millisecond
	store := &MockStore{access: "access-1", refresh: "refresh-1"}
	sess := &MockSession{}
	c := newTestClient(fb, store, sess)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Get(ctx, "/wallet/balance", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrSessionExpired)
	assert.Zero(t, sess.calls.Load())

	// The detached refresh still completes and persists the new credential.
	assert.Eventually(t, func() bool {
		access, _ := store.tokens()
		return access == "access-2"
	}, time.Second, 10*time.Millisecond)
}

func TestRequest_ClearDuringRefreshDiscardsNewCredential(t *testing.T) {
	tests := []struct {
		name  string
		clear func(c *Client, store *MockStore) error
	}{
		{"through the client", func(c *Client, _ *MockStore) error { return c.Clear() }},
		{"directly on the store", func(_ *Client, store *MockStore) error { return store.Clear() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBackend(t)
			fb.validToken = "access-2"
			fb.refreshDelay = 200 * time.Millisecond
			store := &MockStore{access: "access-1", refresh: "refresh-1"}
			m := metrics.New()
			c := newTestClient(fb, store, &MockSession{}, WithMetrics(m))

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			require.Error(t, c.Get(ctx, "/wallet/balance", nil))

			require.NoError(t, tt.clear(c, store))

			discarded := m.Refreshes().WithLabelValues(metrics.RefreshDiscarded)
			assert.Eventually(t, func() bool {
				return testutil.ToFloat64(discarded) == 1
			}, time.Second, 10*time.Millisecond)

			access, refresh := store.tokens()
			assert.Empty(t, access)
			assert.Empty(t, refresh)
			assert.Zero(t, testutil.ToFloat64(m.Refreshes().WithLabelValues(metrics.RefreshSucceeded)))
		})
	}
}

func TestRequest_LoginDuringRefreshKeepsNewCredential(t *testing.T) {
	fb := newFakeBackend(t)
	fb.nextAccess = "access-login"
	fb.refreshDelay = 150 * time.Millisecond
	store := &MockStore{access: "expired", refresh: "refresh-1"}
	sess := &MockSession{}
	c := newTestClient(fb, store, sess)

	done := make(chan error, 1)
	var got balance
	go func() { done <- c.Get(context.Background(), "/wallet/balance", &got) }()

	require.Eventually(t, func() bool { return fb.refreshCalls.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.SaveCredential("access-login", "refresh-login"))

	require.NoError(t, <-done)
	assert.Equal(t, 1500.5, got.Balance)

	access, refresh := store.tokens()
	assert.Equal(t, "access-login", access)
	assert.Equal(t, "refresh-login", refresh)
	assert.Zero(t, sess.calls.Load())
}

func TestWithHTTPClient_ZeroTimeoutFallsBackToDefault(t *testing.T) {
	fb := newFakeBackend(t)
	store := &MockStore{access: "expired", refresh: "refresh-1"}
	sess := &MockSession{}
	custom := &http.Client{}
	c := newTestClient(fb, store, sess, WithHTTPClient(custom))

	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	assert.Zero(t, custom.Timeout)

	require.NoError(t, c.Get(context.Background(), "/wallet/balance", nil))
	assert.EqualValues(t, 1, fb.refreshCalls.Load())
	assert.Zero(t, sess.calls.Load())
}

func TestAPIError_Message(t *testing.T) {
	err := &APIError{StatusCode: 400, Message: "Saldo insuficiente"}
	assert.Equal(t, "API error (status 400): Saldo insuficiente", err.Error())
	assert.False(t, err.IsUnauthorized())
	assert.True(t, (&APIError{StatusCode: 404}).IsNotFound())
	assert.True(t, strings.HasPrefix((&APIError{StatusCode: 500, Message: "x"}).Error(), "API error (status 500)"))
}
