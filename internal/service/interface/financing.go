package iface

import "context"

// Financing is a loan backed by an investment
type Financing struct {
	ID                  string  `json:"id"`
	OriginalAmount      float64 `json:"originalAmount"`
	RemainingAmount     float64 `json:"remainingAmount"`
	PaidAmount          float64 `json:"paidAmount"`
	TotalInstallments   int     `json:"totalInstallments"`
	PaidInstallments    int     `json:"paidInstallments"`
	GuaranteeAmount     float64 `json:"guaranteeAmount"`
	RelatedInvestmentID string  `json:"relatedInvestmentId,omitempty"`
	Status              string  `json:"status"`
}

// Installment is one scheduled repayment
type Installment struct {
	ID      string  `json:"id"`
	Number  int     `json:"number"`
	Amount  float64 `json:"amount"`
	DueDate string  `json:"dueDate"`
	Status  string  `json:"status"`
}

// Eligibility reports how much the user can borrow
type Eligibility struct {
	Eligible        bool    `json:"eligible"`
	MaxAmount       float64 `json:"maxAmount"`
	MaxInstallments int     `json:"maxInstallments"`
	Reason          string  `json:"reason,omitempty"`
}

// FinancingRequest describes a loan
type FinancingRequest struct {
	Amount       float64 `json:"amount"`
	Installments int     `json:"installments"`
}

// FinancingSimulation projects a loan's cost
type FinancingSimulation struct {
	Amount            float64 `json:"amount"`
	Installments      int     `json:"installments"`
	InstallmentAmount float64 `json:"installmentAmount"`
	TotalAmount       float64 `json:"totalAmount"`
	Rate              float64 `json:"rate"`
}

// FinancingService defines the interface for financing operations
type FinancingService interface {
	Active(ctx context.Context) ([]Financing, error)
	History(ctx context.Context, page, limit int) ([]Financing, error)
	Eligibility(ctx context.Context) (*Eligibility, error)
	Simulate(ctx context.Context, req *FinancingRequest) (*FinancingSimulation, error)
	Request(ctx context.Context, req *FinancingRequest) (*Financing, error)
	Get(ctx context.Context, id string) (*Financing, error)
	Installments(ctx context.Context, id string) ([]Installment, error)
	PayInstallment(ctx context.Context, financingID, installmentID string) error
	PayAll(ctx context.Context, id string) error
}
