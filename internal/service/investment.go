package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/simply-app/simply-cli/internal/api"
	apperrors "github.com/simply-app/simply-cli/internal/errors"
	iface "github.com/simply-app/simply-cli/internal/service/interface"
)

// investmentService implements iface.InvestmentService
type investmentService struct {
	client *api.Client
}

// NewInvestmentService creates a new investment service
func NewInvestmentService(client *api.Client) iface.InvestmentService {
	return &investmentService{client: client}
}

func investmentPath(id string, parts ...string) string {
	p := "/investments/" + url.PathEscape(id)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

func positiveAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	return nil
}

// Active lists running investments
func (s *investmentService) Active(ctx context.Context) ([]iface.Investment, error) {
	var investments []iface.Investment
	if err := s.client.Get(ctx, "/investments/active", &investments); err != nil {
		return nil, fmt.Errorf("failed to fetch investments: %w", err)
	}
	return investments, nil
}

// History lists finished investments
func (s *investmentService) History(ctx context.Context, page, limit int) ([]iface.Investment, error) {
	var investments []iface.Investment
	if err := s.client.Get(ctx, "/investments/history", &investments, api.WithQuery(pageQuery(page, limit))); err != nil {
		return nil, fmt.Errorf("failed to fetch investment history: %w", err)
	}
	return investments, nil
}

// Get returns an investment by ID
func (s *investmentService) Get(ctx context.Context, id string) (*iface.Investment, error) {
	var investment iface.Investment
	if err := s.client.Get(ctx, investmentPath(id), &investment); err != nil {
		return nil, fmt.Errorf("failed to fetch investment: %w", err)
	}
	return &investment, nil
}

// Returns lists the accruals of an investment
func (s *investmentService) Returns(ctx context.Context, id string) ([]iface.InvestmentReturn, error) {
	var returns []iface.InvestmentReturn
	if err := s.client.Get(ctx, investmentPath(id, "returns"), &returns); err != nil {
		return nil, fmt.Errorf("failed to fetch returns: %w", err)
	}
	return returns, nil
}

// Simulate projects returns for an amount
func (s *investmentService) Simulate(ctx context.Context, amount float64) (*iface.InvestmentSimulation, error) {
	if err := positiveAmount(amount); err != nil {
		return nil, err
	}

	var sim iface.InvestmentSimulation
	if err := s.client.Post(ctx, "/investments/simulate", map[string]float64{"amount": amount}, &sim); err != nil {
		return nil, fmt.Errorf("failed to simulate investment: %w", err)
	}
	return &sim, nil
}

// Create invests an amount from the wallet
func (s *investmentService) Create(ctx context.Context, amount float64) (*iface.Investment, error) {
	if err := positiveAmount(amount); err != nil {
		return nil, err
	}

	var investment iface.Investment
	if err := s.client.Post(ctx, "/investments/create", map[string]float64{"amount": amount}, &investment); err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}
	return &investment, nil
}

// Redeem withdraws an amount back to the wallet
func (s *investmentService) Redeem(ctx context.Context, id string, amount float64) (*iface.Investment, error) {
	if err := positiveAmount(amount); err != nil {
		return nil, err
	}

	var investment iface.Investment
	if err := s.client.Post(ctx, investmentPath(id, "redeem"), map[string]float64{"amount": amount}, &investment); err != nil {
		return nil, fmt.Errorf("failed to redeem investment: %w", err)
	}
	return &investment, nil
}
