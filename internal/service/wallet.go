package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/simply-app/simply-cli/internal/api"
	apperrors "github.com/simply-app/simply-cli/internal/errors"
	iface "github.com/simply-app/simply-cli/internal/service/interface"
)

// walletService implements iface.WalletService
type walletService struct {
	client *api.Client
}

// NewWalletService creates a new wallet service
func NewWalletService(client *api.Client) iface.WalletService {
	return &walletService{client: client}
}

// Dashboard returns the home summary
func (s *walletService) Dashboard(ctx context.Context) (*iface.Dashboard, error) {
	var dashboard iface.Dashboard
	if err := s.client.Get(ctx, "/dashboard", &dashboard); err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard: %w", err)
	}
	return &dashboard, nil
}

// DashboardBalance returns the balance shown on the dashboard
func (s *walletService) DashboardBalance(ctx context.Context) (*iface.Balance, error) {
	var balance iface.Balance
	if err := s.client.Get(ctx, "/dashboard/balance", &balance); err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard balance: %w", err)
	}
	return &balance, nil
}

func (s *walletService) InvestmentSummary(ctx context.Context) (*iface.InvestmentSummary, error) {
	var summary iface.InvestmentSummary
	if err := s.client.Get(ctx, "/dashboard/investments", &summary); err != nil {
		return nil, fmt.Errorf("failed to fetch investment summary: %w", err)
	}
	return &summary, nil
}

func (s *walletService) FinancingSummary(ctx context.Context) (*iface.FinancingSummary, error) {
	var summary iface.FinancingSummary
	if err := s.client.Get(ctx, "/dashboard/financing", &summary); err != nil {
		return nil, fmt.Errorf("failed to fetch financing summary: %w", err)
	}
	return &summary, nil
}

// RecentTransactions returns the latest movements from the dashboard
func (s *walletService) RecentTransactions(ctx context.Context, limit int) ([]iface.Transaction, error) {
	var transactions []iface.Transaction
	if err := s.client.Get(ctx, "/dashboard/transactions", &transactions, api.WithQuery(pageQuery(0, limit))); err != nil {
		return nil, fmt.Errorf("failed to fetch recent transactions: %w", err)
	}
	return transactions, nil
}

// Balance returns the wallet balance
func (s *walletService) Balance(ctx context.Context) (*iface.Balance, error) {
	var balance iface.Balance
	if err := s.client.Get(ctx, "/wallet/balance", &balance); err != nil {
		return nil, fmt.Errorf("failed to fetch balance: %w", err)
	}
	return &balance, nil
}

// Account returns the CVU and alias
func (s *walletService) Account(ctx context.Context) (*iface.Account, error) {
	var account iface.Account
	if err := s.client.Get(ctx, "/wallet/account", &account); err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	return &account, nil
}

// UpdateAlias changes the wallet alias
func (s *walletService) UpdateAlias(ctx context.Context, alias string) (*iface.Account, error) {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return nil, fmt.Errorf("%w: alias is required", apperrors.ErrValidation)
	}

	var account iface.Account
	if err := s.client.Patch(ctx, "/wallet/alias", map[string]string{"alias": alias}, &account); err != nil {
		return nil, fmt.Errorf("failed to update alias: %w", err)
	}
	return &account, nil
}

// Transactions lists movements
func (s *walletService) Transactions(ctx context.Context, filter *iface.TransactionFilter) ([]iface.Transaction, error) {
	query := url.Values{}
	if filter != nil {
		if filter.Page > 0 {
			query.Set("page", strconv.Itoa(filter.Page))
		}
		if filter.Limit > 0 {
			query.Set("limit", strconv.Itoa(filter.Limit))
		}
		if filter.Type != "" {
			query.Set("type", filter.Type)
		}
		if filter.StartDate != "" {
			query.Set("startDate", filter.StartDate)
		}
		if filter.EndDate != "" {
			query.Set("endDate", filter.EndDate)
		}
	}

	var transactions []iface.Transaction
	if err := s.client.Get(ctx, "/wallet/transactions", &transactions, api.WithQuery(query)); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return transactions, nil
}

// Transaction returns a single movement
func (s *walletService) Transaction(ctx context.Context, id string) (*iface.Transaction, error) {
	var transaction iface.Transaction
	if err := s.client.Get(ctx, "/wallet/transactions/"+url.PathEscape(id), &transaction); err != nil {
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}
	return &transaction, nil
}
