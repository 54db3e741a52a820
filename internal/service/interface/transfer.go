package iface

import "context"

// TransferInput describes an outgoing transfer
type TransferInput struct {
	DestinationCVU string  `json:"destinationCvu"`
	Amount         float64 `json:"amount"`
	Description    string  `json:"description,omitempty"`
}

// TransferResult is the receipt of a transfer
type TransferResult struct {
	ID      string  `json:"id"`
	Status  string  `json:"status"`
	Amount  float64 `json:"amount"`
	Balance float64 `json:"balance,omitempty"`
}

// Destination is the account a CVU or alias resolves to
type Destination struct {
	Name  string `json:"name"`
	CVU   string `json:"cvu"`
	Alias string `json:"alias,omitempty"`
	Bank  string `json:"bank,omitempty"`
}

// Contact is a saved transfer destination
type Contact struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	CVU      string `json:"cvu"`
	Alias    string `json:"alias,omitempty"`
	Favorite bool   `json:"favorite,omitempty"`
}

// TransferLimits are the user's transfer caps
type TransferLimits struct {
	Daily         float64 `json:"daily"`
	Monthly       float64 `json:"monthly"`
	UsedToday     float64 `json:"usedToday"`
	UsedThisMonth float64 `json:"usedThisMonth"`
}

// TransferService defines the interface for transfer operations
type TransferService interface {
	Send(ctx context.Context, input *TransferInput) (*TransferResult, error)
	Validate(ctx context.Context, destination string) (*Destination, error)
	Contacts(ctx context.Context) ([]Contact, error)
	AddContact(ctx context.Context, contact *Contact) (*Contact, error)
	DeleteContact(ctx context.Context, id string) error
	Limits(ctx context.Context) (*TransferLimits, error)
}
