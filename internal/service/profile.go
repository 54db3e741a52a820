package service

import (
	"context"
	"fmt"

	"github.com/simply-app/simply-cli/internal/api"
	apperrors "github.com/simply-app/simply-cli/internal/errors"
	"github.com/simply-app/simply-cli/internal/prefs"
	iface "github.com/simply-app/simply-cli/internal/service/interface"
	"github.com/simply-app/simply-cli/internal/session"
)

// profileService implements iface.ProfileService
type profileService struct {
	client  *api.Client
	prefs   prefs.Store
	session *session.Manager
}

// NewProfileService creates a new profile service
func NewProfileService(client *api.Client, prefStore prefs.Store, sess *session.Manager) iface.ProfileService {
	return &profileService{client: client, prefs: prefStore, session: sess}
}

// Get returns the user's profile
func (s *profileService) Get(ctx context.Context) (*session.User, error) {
	var user session.User
	if err := s.client.Get(ctx, "/profile", &user); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &user, nil
}

// Update edits the profile and refreshes the session's user summary
func (s *profileService) Update(ctx context.Context, update *iface.ProfileUpdate) (*session.User, error) {
	var user session.User
	if err := s.client.Patch(ctx, "/profile", update, &user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if s.session.IsAuthenticated() {
		s.session.MarkAuthenticated(&user)
	}
	return &user, nil
}

// ChangePassword replaces the password
func (s *profileService) ChangePassword(ctx context.Context, current, next string) error {
	if current == "" || next == "" {
		return fmt.Errorf("%w: current and new password are required", apperrors.ErrValidation)
	}
	if current == next {
		return fmt.Errorf("%w: new password must differ from the current one", apperrors.ErrValidation)
	}

	body := map[string]string{"currentPassword": current, "newPassword": next}
	if err := s.client.Post(ctx, "/profile/change-password", body, nil); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}

// EnableBiometrics registers a biometric token and turns the local flag on
func (s *profileService) EnableBiometrics(ctx context.Context, biometricToken string) error {
	if biometricToken == "" {
		return fmt.Errorf("%w: biometric token is required", apperrors.ErrValidation)
	}
	if err := s.client.Post(ctx, "/profile/biometrics", map[string]string{"biometricToken": biometricToken}, nil); err != nil {
		return fmt.Errorf("failed to enable biometrics: %w", err)
	}
	return s.prefs.SetBiometricEnabled(true)
}

// DisableBiometrics removes the biometric registration
func (s *profileService) DisableBiometrics(ctx context.Context) error {
	if err := s.client.Delete(ctx, "/profile/biometrics", nil); err != nil {
		return fmt.Errorf("failed to disable biometrics: %w", err)
	}
	return s.prefs.SetBiometricEnabled(false)
}

// Level returns the rewards tier
func (s *profileService) Level(ctx context.Context) (*iface.Level, error) {
	var level iface.Level
	if err := s.client.Get(ctx, "/profile/level", &level); err != nil {
		return nil, fmt.Errorf("failed to fetch level: %w", err)
	}
	return &level, nil
}

// Rewards returns the points balance
func (s *profileService) Rewards(ctx context.Context) (*iface.Rewards, error) {
	var rewards iface.Rewards
	if err := s.client.Get(ctx, "/profile/rewards", &rewards); err != nil {
		return nil, fmt.Errorf("failed to fetch rewards: %w", err)
	}
	return &rewards, nil
}

// RedeemRewards spends points
func (s *profileService) RedeemRewards(ctx context.Context, points int) (*iface.Rewards, error) {
	if points <= 0 {
		return nil, fmt.Errorf("%w: points must be positive", apperrors.ErrValidation)
	}

	var rewards iface.Rewards
	if err := s.client.Post(ctx, "/profile/rewards/redeem", map[string]int{"points": points}, &rewards); err != nil {
		return nil, fmt.Errorf("failed to redeem rewards: %w", err)
	}
	return &rewards, nil
}
