package service

import (
	"context"
	"fmt"

	"github.com/simply-app/simply-cli/internal/api"
	apperrors "github.com/simply-app/simply-cli/internal/errors"
	"github.com/simply-app/simply-cli/internal/prefs"
	iface "github.com/simply-app/simply-cli/internal/service/interface"
)

// onboardingService implements iface.OnboardingService
type onboardingService struct {
	client *api.Client
	prefs  prefs.Store
}

// NewOnboardingService creates a new onboarding service
func NewOnboardingService(client *api.Client, prefStore prefs.Store) iface.OnboardingService {
	return &onboardingService{client: client, prefs: prefStore}
}

// Status reports the onboarding progress
func (s *onboardingService) Status(ctx context.Context) (*iface.OnboardingStatus, error) {
	var status iface.OnboardingStatus
	if err := s.client.Get(ctx, "/onboarding/status", &status); err != nil {
		return nil, fmt.Errorf("failed to fetch onboarding status: %w", err)
	}
	return &status, nil
}

// SubmitPersonalData sends the personal data step
func (s *onboardingService) SubmitPersonalData(ctx context.Context, data *iface.PersonalData) error {
	if data.FirstName == "" || data.LastName == "" || data.DNI == "" {
		return fmt.Errorf("%w: first name, last name and DNI are required", apperrors.ErrValidation)
	}
	if err := s.client.Post(ctx, "/onboarding/personal-data", data, nil); err != nil {
		return fmt.Errorf("failed to submit personal data: %w", err)
	}
	return nil
}

// SubmitAddress sends the address step
func (s *onboardingService) SubmitAddress(ctx context.Context, address *iface.Address) error {
	if address.Street == "" || address.City == "" {
		return fmt.Errorf("%w: street and city are required", apperrors.ErrValidation)
	}
	if err := s.client.Post(ctx, "/onboarding/address", address, nil); err != nil {
		return fmt.Errorf("failed to submit address: %w", err)
	}
	return nil
}

// StartKYC opens an identity verification session
func (s *onboardingService) StartKYC(ctx context.Context) (*iface.KYCSession, error) {
	var kyc iface.KYCSession
	if err := s.client.Post(ctx, "/onboarding/kyc/start", nil, &kyc); err != nil {
		return nil, fmt.Errorf("failed to start verification: %w", err)
	}
	if kyc.VerificationURL == "" {
		return nil, fmt.Errorf("%w: no verification URL", apperrors.ErrMalformedResponse)
	}
	return &kyc, nil
}

// KYCStatus returns the verification verdict
func (s *onboardingService) KYCStatus(ctx context.Context) (*iface.KYCStatus, error) {
	var status iface.KYCStatus
	if err := s.client.Get(ctx, "/onboarding/kyc/status", &status); err != nil {
		return nil, fmt.Errorf("failed to fetch verification status: %w", err)
	}
	return &status, nil
}

// Complete finishes onboarding and remembers it locally
func (s *onboardingService) Complete(ctx context.Context) error {
	if err := s.client.Post(ctx, "/onboarding/complete", nil, nil); err != nil {
		return fmt.Errorf("failed to complete onboarding: %w", err)
	}
	return s.prefs.SetOnboarded(true)
}
