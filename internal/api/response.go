package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/simply-app/simply-cli/internal/errors"
	"github.com/tidwall/gjson"
)

// ErrNoRefreshToken means a refresh was needed but none is stored.
var ErrNoRefreshToken = errors.New("no refresh token stored")

// ErrCredentialReplaced is returned by a refresh whose result was discarded
// because the stored credential was cleared or replaced meanwhile.
var ErrCredentialReplaced = errors.New("stored credential changed during refresh")

// TokenPair is the credential returned by login and refresh.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// APIError represents an error returned by the API
type APIError struct {
	StatusCode int
	Message    string

	// public is set for errors from endpoints that need no session.
	public bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap places the error in the shared taxonomy: a 401 from a public
// endpoint is an authentication failure, other 4xx are validation errors.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized && e.public:
		return apperrors.ErrAuthenticationFailed
	case e.StatusCode == http.StatusUnauthorized:
		return nil
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return apperrors.ErrValidation
	default:
		return nil
	}
}

// IsUnauthorized checks if the error is an unauthorized error
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsNotFound checks if the error is a not found error
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// newAPIError builds an APIError from a response, preferring the backend's
// "error" field, then "message".
func newAPIError(resp *response, public bool) *APIError {
	msg := ""
	if gjson.ValidBytes(resp.body) {
		parsed := gjson.ParseBytes(resp.body)
		if v := parsed.Get("error"); v.Type == gjson.String && v.Str != "" {
			msg = v.Str
		} else if v := parsed.Get("message"); v.Type == gjson.String && v.Str != "" {
			msg = v.Str
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", resp.status)
	}

	return &APIError{StatusCode: resp.status, Message: msg, public: public}
}

// decodeResponse turns a response into either a decoded result or an error.
// Successful bodies are envelopes of the form
// {"success": true, "data": ..., "message": "..."}.
func decodeResponse(resp *response, public bool, result interface{}) error {
	if resp.status < 200 || resp.status >= 300 {
		return newAPIError(resp, public)
	}

	if len(resp.body) == 0 {
		if result != nil {
			return fmt.Errorf("%w: empty body", apperrors.ErrMalformedResponse)
		}
		return nil
	}

	if !gjson.ValidBytes(resp.body) {
		return fmt.Errorf("%w: body is not JSON", apperrors.ErrMalformedResponse)
	}

	envelope := gjson.ParseBytes(resp.body)
	if success := envelope.Get("success"); success.Exists() && !success.Bool() {
		return newAPIError(&response{status: http.StatusUnprocessableEntity, body: resp.body}, public)
	}

	if result == nil {
		return nil
	}

	data := envelope.Get("data")
	if !data.Exists() || data.Type == gjson.Null {
		return fmt.Errorf("%w: missing data", apperrors.ErrMalformedResponse)
	}

	if err := json.Unmarshal([]byte(data.Raw), result); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrMalformedResponse, err)
	}

	return nil
}
