// Package iface defines service interfaces for the Simply CLI.
// These interfaces enable dependency injection and mocking for tests.
package iface

import (
	"context"

	"github.com/simply-app/simply-cli/internal/session"
)

// LoginInput holds the credentials for a password login
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput holds the data for creating an account
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	DNI       string `json:"dni"`
	Phone     string `json:"phone"`
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Login authenticates, persists the credential and marks the session
	Login(ctx context.Context, input *LoginInput) (*session.User, error)

	// BiometricLogin authenticates with a device-bound biometric token
	BiometricLogin(ctx context.Context, userID, biometricToken string) (*session.User, error)

	// Register creates an account. It does not log the user in.
	Register(ctx context.Context, input *RegisterInput) error

	// Logout notifies the backend and tears down the local session
	Logout(ctx context.Context) error

	// IsLoggedIn reports whether a credential is stored
	IsLoggedIn() bool

	// Me fetches the authenticated user
	Me(ctx context.Context) (*session.User, error)

	// EnsureAuthenticated runs startup reconciliation and fails unless the
	// session ends Authenticated
	EnsureAuthenticated(ctx context.Context) error

	// ForgotPassword requests a password reset email
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword sets a new password with a reset token
	ResetPassword(ctx context.Context, token, password string) error

	// VerifyEmail confirms an email address
	VerifyEmail(ctx context.Context, token string) error

	// AccessToken returns the stored access token, for display purposes
	AccessToken() (string, error)

	// LastLoginEmail returns the email of the previous successful login
	LastLoginEmail() string

	// ForgetDevice clears the remembered preferences
	ForgetDevice() error
}
