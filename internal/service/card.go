package service

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/simply-app/simply-cli/internal/api"
	apperrors "github.com/simply-app/simply-cli/internal/errors"
	iface "github.com/simply-app/simply-cli/internal/service/interface"
)

var (
	lastFourPattern = regexp.MustCompile(`^\d{4}$`)
	pinPattern      = regexp.MustCompile(`^\d{4,6}$`)
)

// cardService implements iface.CardService
type cardService struct {
	client *api.Client
}

// NewCardService creates a new card service
func NewCardService(client *api.Client) iface.CardService {
	return &cardService{client: client}
}

func cardPath(id, action string) string {
	return "/cards/" + url.PathEscape(id) + "/" + action
}

// List returns the user's cards
func (s *cardService) List(ctx context.Context) ([]iface.Card, error) {
	var cards []iface.Card
	if err := s.client.Get(ctx, "/cards", &cards); err != nil {
		return nil, fmt.Errorf("failed to fetch cards: %w", err)
	}
	return cards, nil
}

// RequestVirtual issues a virtual card
func (s *cardService) RequestVirtual(ctx context.Context) (*iface.Card, error) {
	var card iface.Card
	if err := s.client.Post(ctx, "/cards/request-virtual", nil, &card); err != nil {
		return nil, fmt.Errorf("failed to request virtual card: %w", err)
	}
	return &card, nil
}

// RequestPhysical orders a plastic card
func (s *cardService) RequestPhysical(ctx context.Context, deliveryAddress *iface.Address) (*iface.Card, error) {
	if deliveryAddress == nil || deliveryAddress.Street == "" || deliveryAddress.City == "" {
		return nil, fmt.Errorf("%w: delivery address is required", apperrors.ErrValidation)
	}

	var card iface.Card
	body := map[string]*iface.Address{"deliveryAddress": deliveryAddress}
	if err := s.client.Post(ctx, "/cards/request-physical", body, &card); err != nil {
		return nil, fmt.Errorf("failed to request physical card: %w", err)
	}
	return &card, nil
}

// Activate enables a delivered card
func (s *cardService) Activate(ctx context.Context, id, lastFourDigits string) error {
	if !lastFourPattern.MatchString(lastFourDigits) {
		return fmt.Errorf("%w: last four digits must be 4 digits", apperrors.ErrValidation)
	}
	if err := s.client.Post(ctx, cardPath(id, "activate"), map[string]string{"lastFourDigits": lastFourDigits}, nil); err != nil {
		return fmt.Errorf("failed to activate card: %w", err)
	}
	return nil
}

// Block freezes a card
func (s *cardService) Block(ctx context.Context, id, reason string) error {
	if err := s.client.Post(ctx, cardPath(id, "block"), map[string]string{"reason": reason}, nil); err != nil {
		return fmt.Errorf("failed to block card: %w", err)
	}
	return nil
}

// Unblock unfreezes a card
func (s *cardService) Unblock(ctx context.Context, id string) error {
	if err := s.client.Post(ctx, cardPath(id, "unblock"), nil, nil); err != nil {
		return fmt.Errorf("failed to unblock card: %w", err)
	}
	return nil
}

// ChangePIN sets a new PIN
func (s *cardService) ChangePIN(ctx context.Context, id, newPIN string) error {
	if !pinPattern.MatchString(newPIN) {
		return fmt.Errorf("%w: PIN must be 4 to 6 digits", apperrors.ErrValidation)
	}
	if err := s.client.Post(ctx, cardPath(id, "change-pin"), map[string]string{"newPin": newPIN}, nil); err != nil {
		return fmt.Errorf("failed to change PIN: %w", err)
	}
	return nil
}

// Limits returns a card's spending caps
func (s *cardService) Limits(ctx context.Context, id string) (*iface.CardLimits, error) {
	var limits iface.CardLimits
	if err := s.client.Get(ctx, cardPath(id, "limits"), &limits); err != nil {
		return nil, fmt.Errorf("failed to fetch card limits: %w", err)
	}
	return &limits, nil
}

// UpdateLimits changes a card's spending caps
func (s *cardService) UpdateLimits(ctx context.Context, id string, limits *iface.CardLimits) (*iface.CardLimits, error) {
	if limits.Daily < 0 || limits.Monthly < 0 || (limits.Monthly > 0 && limits.Daily > limits.Monthly) {
		return nil, fmt.Errorf("%w: invalid limits", apperrors.ErrValidation)
	}

	var updated iface.CardLimits
	if err := s.client.Patch(ctx, cardPath(id, "limits"), limits, &updated); err != nil {
		return nil, fmt.Errorf("failed to update card limits: %w", err)
	}
	return &updated, nil
}
