package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/simply-app/simply-cli/internal/api"
	apperrors "github.com/simply-app/simply-cli/internal/errors"
	iface "github.com/simply-app/simply-cli/internal/service/interface"
)

// financingService implements iface.FinancingService
type financingService struct {
	client *api.Client
}

// NewFinancingService creates a new financing service
func NewFinancingService(client *api.Client) iface.FinancingService {
	return &financingService{client: client}
}

func validFinancingRequest(req *iface.FinancingRequest) error {
	if err := positiveAmount(req.Amount); err != nil {
		return err
	}
	if req.Installments <= 0 {
		return fmt.Errorf("%w: installments must be positive", apperrors.ErrValidation)
	}
	return nil
}

// Active lists open loans
func (s *financingService) Active(ctx context.Context) ([]iface.Financing, error) {
	var loans []iface.Financing
	if err := s.client.Get(ctx, "/financing/active", &loans); err != nil {
		return nil, fmt.Errorf("failed to fetch financing: %w", err)
	}
	return loans, nil
}

// History lists repaid loans
func (s *financingService) History(ctx context.Context, page, limit int) ([]iface.Financing, error) {
	var loans []iface.Financing
	if err := s.client.Get(ctx, "/financing/history", &loans, api.WithQuery(pageQuery(page, limit))); err != nil {
		return nil, fmt.Errorf("failed to fetch financing history: %w", err)
	}
	return loans, nil
}

// Eligibility reports the borrowing capacity
func (s *financingService) Eligibility(ctx context.Context) (*iface.Eligibility, error) {
	var eligibility iface.Eligibility
	if err := s.client.Get(ctx, "/financing/eligibility", &eligibility); err != nil {
		return nil, fmt.Errorf("failed to fetch eligibility: %w", err)
	}
	return &eligibility, nil
}

// Simulate projects a loan's cost
func (s *financingService) Simulate(ctx context.Context, req *iface.FinancingRequest) (*iface.FinancingSimulation, error) {
	if err := validFinancingRequest(req); err != nil {
		return nil, err
	}

	var sim iface.FinancingSimulation
	if err := s.client.Post(ctx, "/financing/simulate", req, &sim); err != nil {
		return nil, fmt.Errorf("failed to simulate financing: %w", err)
	}
	return &sim, nil
}

// Request takes a loan
func (s *financingService) Request(ctx context.Context, req *iface.FinancingRequest) (*iface.Financing, error) {
	if err := validFinancingRequest(req); err != nil {
		return nil, err
	}

	var loan iface.Financing
	if err := s.client.Post(ctx, "/financing/request", req, &loan); err != nil {
		return nil, fmt.Errorf("failed to request financing: %w", err)
	}
	return &loan, nil
}

// Get returns a loan by ID
func (s *financingService) Get(ctx context.Context, id string) (*iface.Financing, error) {
	var loan iface.Financing
	if err := s.client.Get(ctx, "/financing/"+url.PathEscape(id), &loan); err != nil {
		return nil, fmt.Errorf("failed to fetch financing: %w", err)
	}
	return &loan, nil
}

// Installments lists a loan's schedule
func (s *financingService) Installments(ctx context.Context, id string) ([]iface.Installment, error) {
	var installments []iface.Installment
	if err := s.client.Get(ctx, "/financing/"+url.PathEscape(id)+"/installments", &installments); err != nil {
		return nil, fmt.Errorf("failed to fetch installments: %w", err)
	}
	return installments, nil
}

// PayInstallment pays one installment
func (s *financingService) PayInstallment(ctx context.Context, financingID, installmentID string) error {
	path := fmt.Sprintf("/financing/%s/installments/%s/pay", url.PathEscape(financingID), url.PathEscape(installmentID))
	if err := s.client.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("failed to pay installment: %w", err)
	}
	return nil
}

// PayAll repays the remaining balance
func (s *financingService) PayAll(ctx context.Context, id string) error {
	if err := s.client.Post(ctx, "/financing/"+url.PathEscape(id)+"/pay-all", nil, nil); err != nil {
		return fmt.Errorf("failed to pay financing: %w", err)
	}
	return nil
}
