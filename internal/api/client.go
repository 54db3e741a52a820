// Package api provides the HTTP client for communicating with the Simply API.
//
// Every request carries the stored access token as a bearer credential. A
// 401 on a protected endpoint triggers at most one refresh-and-replay cycle:
// concurrent failures share a single refresh exchange, and a failed refresh
// or a second 401 tears the session down exactly once.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/simply-app/simply-cli/internal/errors"
	"github.com/simply-app/simply-cli/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultTimeout bounds every outbound request
	DefaultTimeout = 30 * time.Second

	refreshPath = "/auth/refresh"
	refreshKey  = "refresh"
)

// CredentialStore is the secure store the client reads tokens from and the
// refresh step writes them to.
type CredentialStore interface {
	SaveCredential(accessToken, refreshToken string) error
	AccessToken() (string, bool, error)
	RefreshToken() (string, bool, error)
	Clear() error
}

// SessionSink receives forced logouts.
type SessionSink interface {
	MarkUnauthenticated() bool
}

// Client is an HTTP client for the Simply API
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      CredentialStore
	session    SessionSink
	log        *zap.Logger
	metrics    *metrics.Metrics

	refreshes singleflight.Group

	// credMu serializes credential writes. generation changes on every
	// save or clear made outside a refresh.
	credMu     sync.Mutex
	generation uint64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. A client without a
// timeout gets DefaultTimeout.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		clone := *h
		if clone.Timeout <= 0 {
			clone.Timeout = DefaultTimeout
		}
		c.httpClient = &clone
	}
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a new API client. session may be nil.
func NewClient(baseURL string, store CredentialStore, session SessionSink, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		store:   store,
		session: session,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// pendingRequest is everything needed to send a request, and to send it
// once more with a different access token.
type pendingRequest struct {
	method string
	path   string
	query  url.Values
	body   []byte
	public bool
}

// RequestOption customizes a single request.
type RequestOption func(*pendingRequest)

// WithQuery adds query parameters.
func WithQuery(q url.Values) RequestOption {
	return func(r *pendingRequest) { r.query = q }
}

// Public marks an endpoint that does not require a session, such as login.
// A 401 from a public endpoint is reported as an authentication failure and
// never triggers a refresh.
func Public() RequestOption {
	return func(r *pendingRequest) { r.public = true }
}

type response struct {
	status int
	body   []byte
}

// Request performs an HTTP request to the API. On success the envelope's
// data field is decoded into result when result is non-nil.
func (c *Client) Request(ctx context.Context, method, path string, body interface{}, result interface{}, opts ...RequestOption) error {
	req := &pendingRequest{method: method, path: path}
	for _, opt := range opts {
		opt(req)
	}

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		req.body = jsonBody
	}

	token, _, err := c.store.AccessToken()
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, req, token)
	if err != nil {
		return err
	}

	if resp.status == http.StatusUnauthorized && !req.public {
		return c.replayAfterUnauthorized(ctx, req, token, resp, result)
	}

	return decodeResponse(resp, req.public, result)
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, result interface{}, opts ...RequestOption) error {
	return c.Request(ctx, http.MethodGet, path, nil, result, opts...)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body interface{}, result interface{}, opts ...RequestOption) error {
	return c.Request(ctx, http.MethodPost, path, body, result, opts...)
}

// Put performs a PUT request
func (c *Client) Put(ctx context.Context, path string, body interface{}, result interface{}, opts ...RequestOption) error {
	return c.Request(ctx, http.MethodPut, path, body, result, opts...)
}

// Patch performs a PATCH request
func (c *Client) Patch(ctx context.Context, path string, body interface{}, result interface{}, opts ...RequestOption) error {
	return c.Request(ctx, http.MethodPatch, path, body, result, opts...)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string, result interface{}, opts ...RequestOption) error {
	return c.Request(ctx, http.MethodDelete, path, nil, result, opts...)
}

// replayAfterUnauthorized runs the refresh protocol for a request that got
// a 401 with usedToken and sends it exactly once more.
func (c *Client) replayAfterUnauthorized(ctx context.Context, req *pendingRequest, usedToken string, first *response, result interface{}) error {
	authErr := newAPIError(first, false)

	token, err := c.tokenForReplay(ctx, usedToken)
	if errors.Is(err, ErrCredentialReplaced) {
		token, err = c.replacementToken(usedToken)
	}
	if err != nil && ctx.Err() != nil {
		// The caller gave up waiting; the shared refresh decides the session.
		return fmt.Errorf("waiting for token refresh: %w", ctx.Err())
	}
	if err != nil {
		c.forceLogout(err)
		return fmt.Errorf("%w: %w", apperrors.ErrSessionExpired, errors.Join(authErr, err))
	}

	c.metrics.ObserveReplay()
	resp, err := c.send(ctx, req, token)
	if err != nil {
		return err
	}

	if resp.status == http.StatusUnauthorized {
		retryErr := newAPIError(resp, false)
		c.forceLogout(retryErr)
		return fmt.Errorf("%w: %w", apperrors.ErrSessionExpired, retryErr)
	}

	return decodeResponse(resp, false, result)
}

// tokenForReplay returns the access token the failed request should be
// replayed with, refreshing when no newer token is stored yet.
func (c *Client) tokenForReplay(ctx context.Context, usedToken string) (string, error) {
	if current, ok, err := c.store.AccessToken(); err != nil {
		return "", err
	} else if ok && current != usedToken {
		return current, nil
	}

	ch := c.refreshes.DoChan(refreshKey, func() (interface{}, error) {
		// The exchange outlives the caller that started it so that a
		// cancelled request cannot abandon a half-written credential.
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.httpClient.Timeout)
		defer cancel()
		return c.refresh(refreshCtx, usedToken)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// replacementToken returns the credential that superseded a discarded
// refresh. After a logout there is none.
func (c *Client) replacementToken(usedToken string) (string, error) {
	current, ok, err := c.store.AccessToken()
	if err != nil {
		return "", err
	}
	if !ok || current == usedToken {
		return "", ErrCredentialReplaced
	}
	return current, nil
}

// refresh exchanges the stored refresh token for a new credential and
// persists it. Called only from inside the singleflight group.
//
// The new credential is written only if nothing cleared or replaced the
// stored one while the exchange was in flight.
func (c *Client) refresh(ctx context.Context, usedToken string) (string, error) {
	c.credMu.Lock()
	startGen := c.generation
	c.credMu.Unlock()

	// A previous flight may have finished between our caller's check and
	// this flight starting.
	if current, ok, err := c.store.AccessToken(); err == nil && ok && current != usedToken {
		return current, nil
	}

	refreshToken, ok, err := c.store.RefreshToken()
	if err != nil {
		c.metrics.ObserveRefresh(metrics.RefreshStoreFail)
		return "", err
	}
	if !ok {
		c.metrics.ObserveRefresh(metrics.RefreshNoToken)
		return "", ErrNoRefreshToken
	}

	pair, err := c.exchange(ctx, refreshToken)
	if err != nil {
		c.metrics.ObserveRefresh(metrics.RefreshRejected)
		c.log.Info("token refresh rejected", zap.Error(err))
		return "", err
	}

	if pair.RefreshToken == "" {
		pair.RefreshToken = refreshToken
	}

	c.credMu.Lock()
	defer c.credMu.Unlock()

	current, ok, err := c.store.RefreshToken()
	if err != nil {
		c.metrics.ObserveRefresh(metrics.RefreshStoreFail)
		return "", err
	}
	if c.generation != startGen || !ok || current != refreshToken {
		c.metrics.ObserveRefresh(metrics.RefreshDiscarded)
		c.log.Info("discarding refreshed credential, stored credential changed during refresh")
		return "", ErrCredentialReplaced
	}
	if err := c.store.SaveCredential(pair.Token, pair.RefreshToken); err != nil {
		c.metrics.ObserveRefresh(metrics.RefreshStoreFail)
		return "", err
	}

	c.metrics.ObserveRefresh(metrics.RefreshSucceeded)
	c.log.Debug("access token refreshed")
	return pair.Token, nil
}

// exchange calls the refresh endpoint. The refresh token travels only in
// the body; the request carries no bearer header.
func (c *Client) exchange(ctx context.Context, refreshToken string) (*TokenPair, error) {
	body, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	resp, err := c.send(ctx, &pendingRequest{
		method: http.MethodPost,
		path:   refreshPath,
		body:   body,
		public: true,
	}, "")
	if err != nil {
		return nil, err
	}

	var pair TokenPair
	if err := decodeResponse(resp, true, &pair); err != nil {
		return nil, err
	}
	if pair.Token == "" {
		return nil, fmt.Errorf("%w: refresh response has no token", apperrors.ErrMalformedResponse)
	}
	return &pair, nil
}

// forceLogout clears the stored credential and ends the session. Only the
// first of several concurrent callers finds a credential to clear; the rest
// return without side effects.
func (c *Client) forceLogout(reason error) {
	c.credMu.Lock()
	defer c.credMu.Unlock()

	_, hasAccess, accessErr := c.store.AccessToken()
	_, hasRefresh, refreshErr := c.store.RefreshToken()
	if accessErr == nil && refreshErr == nil && !hasAccess && !hasRefresh {
		return
	}

	c.generation++
	if err := c.store.Clear(); err != nil {
		c.log.Error("failed to clear credentials during forced logout", zap.Error(err))
	}
	if c.session != nil {
		c.session.MarkUnauthenticated()
	}

	c.metrics.ObserveForcedLogout()
	c.log.Warn("session ended after authorization failure", zap.Error(reason))
}

// SaveCredential stores a credential obtained outside the refresh protocol,
// such as a login. A refresh in flight will not overwrite it.
func (c *Client) SaveCredential(accessToken, refreshToken string) error {
	c.credMu.Lock()
	defer c.credMu.Unlock()
	c.generation++
	return c.store.SaveCredential(accessToken, refreshToken)
}

// AccessToken returns the stored access token.
func (c *Client) AccessToken() (string, bool, error) {
	return c.store.AccessToken()
}

// RefreshToken returns the stored refresh token.
func (c *Client) RefreshToken() (string, bool, error) {
	return c.store.RefreshToken()
}

// Clear destroys the stored credential. A refresh in flight will not write
// its result back afterwards.
func (c *Client) Clear() error {
	c.credMu.Lock()
	defer c.credMu.Unlock()
	c.generation++
	return c.store.Clear()
}

// send performs one HTTP round trip.
func (c *Client) send(ctx context.Context, req *pendingRequest, token string) (*response, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var bodyReader io.Reader
	if req.body != nil {
		bodyReader = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.ObserveRequest(req.method, 0)
		c.log.Debug("request failed",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ObserveRequest(req.method, 0)
		return nil, transportError(err)
	}

	c.metrics.ObserveRequest(req.method, resp.StatusCode)
	c.log.Debug("request completed",
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)))

	return &response{status: resp.StatusCode, body: respBody}, nil
}

// transportError maps a failed round trip onto the error taxonomy.
func transportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", apperrors.ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("request canceled: %w", err)
	}
	return fmt.Errorf("%w: %w", apperrors.ErrNetwork, err)
}
