package iface

import (
	"context"
	"time"
)

// Balance is the wallet's available money
type Balance struct {
	Balance   float64 `json:"balance"`
	Available float64 `json:"available,omitempty"`
	Currency  string  `json:"currency,omitempty"`
}

// Account holds the wallet's transfer coordinates
type Account struct {
	CVU    string `json:"cvu"`
	Alias  string `json:"alias"`
	Holder string `json:"holder,omitempty"`
	CUIT   string `json:"cuit,omitempty"`
}

// Transaction is a wallet movement
type Transaction struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TransactionFilter narrows a transaction listing. Zero fields are omitted.
type TransactionFilter struct {
	Page      int
	Limit     int
	Type      string
	StartDate string
	EndDate   string
}

// Dashboard is the home summary
type Dashboard struct {
	Balance            float64       `json:"balance"`
	TotalInvested      float64       `json:"totalInvested"`
	TotalReturns       float64       `json:"totalReturns"`
	AvailableFinancing float64       `json:"availableFinancing"`
	TotalDebt          float64       `json:"totalDebt"`
	RecentTransactions []Transaction `json:"recentTransactions,omitempty"`
}

// InvestmentSummary is the dashboard view of the user's investments
type InvestmentSummary struct {
	Investments        []Investment `json:"investments,omitempty"`
	TotalInvested      float64      `json:"totalInvested"`
	TotalReturns       float64      `json:"totalReturns"`
	AvailableFinancing float64      `json:"availableFinancing"`
}

// FinancingSummary is the dashboard view of the user's debt
type FinancingSummary struct {
	Active          []Financing  `json:"active,omitempty"`
	TotalDebt       float64      `json:"totalDebt"`
	NextInstallment *Installment `json:"nextInstallment,omitempty"`
}

// WalletService defines the interface for wallet operations
type WalletService interface {
	// Dashboard returns the home summary
	Dashboard(ctx context.Context) (*Dashboard, error)

	// DashboardBalance returns the balance shown on the dashboard
	DashboardBalance(ctx context.Context) (*Balance, error)

	// InvestmentSummary returns invested totals and active investments
	InvestmentSummary(ctx context.Context) (*InvestmentSummary, error)

	// FinancingSummary returns outstanding debt and the next installment
	FinancingSummary(ctx context.Context) (*FinancingSummary, error)

	// RecentTransactions returns the latest movements. limit <= 0 lets the
	// backend choose.
	RecentTransactions(ctx context.Context, limit int) ([]Transaction, error)

	// Balance returns the wallet balance
	Balance(ctx context.Context) (*Balance, error)

	// Account returns the CVU and alias
	Account(ctx context.Context) (*Account, error)

	// UpdateAlias changes the wallet alias
	UpdateAlias(ctx context.Context, alias string) (*Account, error)

	// Transactions lists movements
	Transactions(ctx context.Context, filter *TransactionFilter) ([]Transaction, error)

	// Transaction returns a single movement
	Transaction(ctx context.Context, id string) (*Transaction, error)
}
