// Package tokeninfo reads display-only claims from an access token without
// verifying its signature. Nothing here is used for authorization decisions;
// the backend remains the only judge of token validity.
package tokeninfo

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken is returned when the token is not a JWT.
var ErrOpaqueToken = errors.New("token is not a JWT")

// Info is the subset of claims shown to the user.
type Info struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token expiry has passed at now.
// Tokens without an exp claim never report expired.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Remaining returns the time left before expiry, or 0.
func (i Info) Remaining(now time.Time) time.Duration {
	if i.ExpiresAt.IsZero() || !now.Before(i.ExpiresAt) {
		return 0
	}
	return i.ExpiresAt.Sub(now)
}

// Inspect parses raw without verification and returns its claims.
func Inspect(raw string) (Info, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrOpaqueToken, err)
	}

	info := Info{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
