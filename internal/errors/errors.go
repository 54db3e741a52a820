// Package errors defines the sentinel errors shared across the Simply client.
package errors

import "errors"

// Authentication and session errors.
var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrSessionExpired       = errors.New("session expired, please log in again")
	ErrNotLoggedIn          = errors.New("not logged in. Please run 'simply login' first")
	ErrAlreadyLoggedIn      = errors.New("already logged in. Use 'simply logout' first to log out")
)

// Storage errors.
var (
	ErrStorageUnavailable = errors.New("secure storage unavailable")
)

// Transport and API errors.
var (
	ErrNetwork           = errors.New("network error")
	ErrTimeout           = errors.New("request timed out")
	ErrValidation        = errors.New("request rejected by server")
	ErrMalformedResponse = errors.New("unexpected API response")
)
