package iface

import "context"

// Card is a prepaid card
type Card struct {
	ID     string      `json:"id"`
	Type   string      `json:"type"`
	Number string      `json:"number"`
	Holder string      `json:"holder,omitempty"`
	Expiry string      `json:"expiry,omitempty"`
	Status string      `json:"status"`
	Level  string      `json:"level,omitempty"`
	Limits *CardLimits `json:"limits,omitempty"`
}

// CardLimits are spending caps
type CardLimits struct {
	Daily   float64 `json:"daily"`
	Monthly float64 `json:"monthly"`
}

// CardService defines the interface for card operations
type CardService interface {
	List(ctx context.Context) ([]Card, error)
	RequestVirtual(ctx context.Context) (*Card, error)
	RequestPhysical(ctx context.Context, deliveryAddress *Address) (*Card, error)
	Activate(ctx context.Context, id, lastFourDigits string) error
	Block(ctx context.Context, id, reason string) error
	Unblock(ctx context.Context, id string) error
	ChangePIN(ctx context.Context, id, newPIN string) error
	Limits(ctx context.Context, id string) (*CardLimits, error)
	UpdateLimits(ctx context.Context, id string, limits *CardLimits) (*CardLimits, error)
}
