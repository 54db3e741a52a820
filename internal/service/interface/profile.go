package iface

import (
	"context"

	"github.com/simply-app/simply-cli/internal/session"
)

// ProfileUpdate holds editable profile fields. Empty fields are not sent.
type ProfileUpdate struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Level is the user's tier in the rewards program
type Level struct {
	Current  string  `json:"current"`
	Next     string  `json:"next,omitempty"`
	Progress float64 `json:"progress"`
}

// Rewards is the user's points balance
type Rewards struct {
	Points int `json:"points"`
}

// ProfileService defines the interface for profile operations
type ProfileService interface {
	Get(ctx context.Context) (*session.User, error)
	Update(ctx context.Context, update *ProfileUpdate) (*session.User, error)
	ChangePassword(ctx context.Context, current, next string) error
	EnableBiometrics(ctx context.Context, biometricToken string) error
	DisableBiometrics(ctx context.Context) error
	Level(ctx context.Context) (*Level, error)
	Rewards(ctx context.Context) (*Rewards, error)
	RedeemRewards(ctx context.Context, points int) (*Rewards, error)
}
