package iface

import (
	"context"
	"time"
)

// Investment is a placement in the money-market fund
type Investment struct {
	ID                 string    `json:"id"`
	InitialAmount      float64   `json:"initialAmount"`
	CurrentAmount      float64   `json:"currentAmount"`
	TotalReturns       float64   `json:"totalReturns"`
	YearlyRate         float64   `json:"yearlyRate"`
	GuaranteeRetained  float64   `json:"guaranteeRetained"`
	AvailableFinancing float64   `json:"availableFinancing"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
}

// InvestmentReturn is one accrual
type InvestmentReturn struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// InvestmentSimulation projects the outcome of investing an amount
type InvestmentSimulation struct {
	Amount             float64 `json:"amount"`
	YearlyRate         float64 `json:"yearlyRate"`
	MonthlyReturn      float64 `json:"monthlyReturn"`
	YearlyReturn       float64 `json:"yearlyReturn"`
	AvailableFinancing float64 `json:"availableFinancing"`
}

// InvestmentService defines the interface for investment operations
type InvestmentService interface {
	Active(ctx context.Context) ([]Investment, error)
	History(ctx context.Context, page, limit int) ([]Investment, error)
	Get(ctx context.Context, id string) (*Investment, error)
	Returns(ctx context.Context, id string) ([]InvestmentReturn, error)
	Simulate(ctx context.Context, amount float64) (*InvestmentSimulation, error)
	Create(ctx context.Context, amount float64) (*Investment, error)
	Redeem(ctx context.Context, id string, amount float64) (*Investment, error)
}
