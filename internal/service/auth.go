package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/simply-app/simply-cli/internal/api"
	apperrors "github.com/simply-app/simply-cli/internal/errors"
	"github.com/simply-app/simply-cli/internal/prefs"
	"github.com/simply-app/simply-cli/internal/securestore"
	iface "github.com/simply-app/simply-cli/internal/service/interface"
	"github.com/simply-app/simply-cli/internal/session"
	"go.uber.org/zap"
)

// logoutTimeout bounds the best-effort backend logout call
const logoutTimeout = 5 * time.Second

// authResponse is the data of a login or biometric login
type authResponse struct {
	User         session.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

// authService implements iface.AuthService
type authService struct {
	client  *api.Client
	store   securestore.Store
	prefs   prefs.Store
	session *session.Manager
	log     *zap.Logger
}

// NewAuthService creates a new authentication service. Credentials are read
// and written through the client so that logout and login fence off any
// refresh still in flight.
func NewAuthService(client *api.Client, prefStore prefs.Store, sess *session.Manager, log *zap.Logger) iface.AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &authService{
		client:  client,
		store:   client,
		prefs:   prefStore,
		session: sess,
		log:     log,
	}
}

// Login authenticates with email and password
func (s *authService) Login(ctx context.Context, input *iface.LoginInput) (*session.User, error) {
	if s.IsLoggedIn() {
		return nil, apperrors.ErrAlreadyLoggedIn
	}

	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", apperrors.ErrValidation)
	}

	var resp authResponse
	body := iface.LoginInput{Email: email, Password: input.Password}
	if err := s.client.Post(ctx, "/auth/login", body, &resp, api.Public()); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	user, err := s.establish(&resp)
	if err != nil {
		return nil, err
	}

	if err := s.prefs.SetLastLogin(email); err != nil {
		s.log.Warn("failed to remember last login", zap.Error(err))
	}
	return user, nil
}

// BiometricLogin authenticates with a biometric token
func (s *authService) BiometricLogin(ctx context.Context, userID, biometricToken string) (*session.User, error) {
	if s.IsLoggedIn() {
		return nil, apperrors.ErrAlreadyLoggedIn
	}
	if userID == "" || biometricToken == "" {
		return nil, fmt.Errorf("%w: user id and biometric token are required", apperrors.ErrValidation)
	}

	var resp authResponse
	body := map[string]string{"userId": userID, "biometricToken": biometricToken}
	if err := s.client.Post(ctx, "/auth/biometric-login", body, &resp, api.Public()); err != nil {
		return nil, fmt.Errorf("biometric login failed: %w", err)
	}

	return s.establish(&resp)
}

// establish persists a freshly issued credential and only then marks the
// session authenticated.
func (s *authService) establish(resp *authResponse) (*session.User, error) {
	if resp.Token == "" || resp.RefreshToken == "" {
		return nil, fmt.Errorf("%w: login response has no credential", apperrors.ErrMalformedResponse)
	}

	if err := s.store.SaveCredential(resp.Token, resp.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to save credentials: %w", err)
	}

	user := resp.User
	s.session.MarkAuthenticated(&user)
	s.log.Info("logged in", zap.String("user_id", user.ID))
	return &user, nil
}

// Register creates an account
func (s *authService) Register(ctx context.Context, input *iface.RegisterInput) error {
	if input.Email == "" || input.Password == "" || input.FirstName == "" || input.LastName == "" {
		return fmt.Errorf("%w: email, password, first name and last name are required", apperrors.ErrValidation)
	}

	if err := s.client.Post(ctx, "/auth/register", input, nil, api.Public()); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return nil
}

// Logout tells the backend, then clears local state whatever it answered
func (s *authService) Logout(ctx context.Context) error {
	if !s.IsLoggedIn() {
		return apperrors.ErrNotLoggedIn
	}

	callCtx, cancel := context.WithTimeout(ctx, logoutTimeout)
	defer cancel()
	if err := s.client.Post(callCtx, "/auth/logout", nil, nil); err != nil {
		s.log.Debug("backend logout failed", zap.Error(err))
	}

	var errs error
	if err := s.store.Clear(); err != nil {
		errs = fmt.Errorf("failed to clear credentials: %w", err)
	}
	s.session.MarkUnauthenticated()
	return errs
}

// IsLoggedIn reports whether a credential is stored. It does not check
// that the credential is still accepted.
func (s *authService) IsLoggedIn() bool {
	_, hasAccess, err := s.store.AccessToken()
	if err != nil {
		return false
	}
	_, hasRefresh, err := s.store.RefreshToken()
	if err != nil {
		return false
	}
	return hasAccess || hasRefresh
}

// Me fetches the authenticated user
func (s *authService) Me(ctx context.Context) (*session.User, error) {
	var user session.User
	if err := s.client.Get(ctx, "/auth/me", &user); err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// EnsureAuthenticated reconciles the stored credential with the backend
func (s *authService) EnsureAuthenticated(ctx context.Context) error {
	err := s.session.Initialize(ctx, s.store, s.Me)
	if errors.Is(err, session.ErrAlreadyInitialized) {
		err = nil
	}

	if s.session.IsAuthenticated() {
		return nil
	}

	switch {
	case err == nil:
		return apperrors.ErrNotLoggedIn
	case errors.Is(err, apperrors.ErrSessionExpired), errors.Is(err, apperrors.ErrAuthenticationFailed):
		return fmt.Errorf("%w. Please run 'simply login' again", apperrors.ErrSessionExpired)
	default:
		return err
	}
}

// ForgotPassword requests a reset email
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	return s.client.Post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil, api.Public())
}

// ResetPassword sets a new password
func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return fmt.Errorf("%w: token and password are required", apperrors.ErrValidation)
	}
	return s.client.Post(ctx, "/auth/reset-password", map[string]string{"token": token, "password": password}, nil, api.Public())
}

// VerifyEmail confirms an email address
func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", apperrors.ErrValidation)
	}
	return s.client.Post(ctx, "/auth/verify-email", map[string]string{"token": token}, nil, api.Public())
}

// AccessToken returns the stored access token
func (s *authService) AccessToken() (string, error) {
	token, ok, err := s.store.AccessToken()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperrors.ErrNotLoggedIn
	}
	return token, nil
}

// LastLoginEmail returns the remembered email, or "" if none
func (s *authService) LastLoginEmail() string {
	email, err := s.prefs.LastLogin()
	if err != nil {
		s.log.Debug("failed to read last login", zap.Error(err))
		return ""
	}
	return email
}

// ForgetDevice wipes the non-sensitive preferences
func (s *authService) ForgetDevice() error {
	if err := s.prefs.ClearAll(); err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}
	return nil
}
