package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/simply-app/simply-cli/internal/api"
	apperrors "github.com/simply-app/simply-cli/internal/errors"
	iface "github.com/simply-app/simply-cli/internal/service/interface"
)

// transferService implements iface.TransferService
type transferService struct {
	client *api.Client
}

// NewTransferService creates a new transfer service
func NewTransferService(client *api.Client) iface.TransferService {
	return &transferService{client: client}
}

// Send transfers money to a CVU or alias
func (s *transferService) Send(ctx context.Context, input *iface.TransferInput) (*iface.TransferResult, error) {
	if strings.TrimSpace(input.DestinationCVU) == "" {
		return nil, fmt.Errorf("%w: destination is required", apperrors.ErrValidation)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	var result iface.TransferResult
	if err := s.client.Post(ctx, "/transfers/send", input, &result); err != nil {
		return nil, fmt.Errorf("transfer failed: %w", err)
	}
	return &result, nil
}

// Validate resolves a destination before sending
func (s *transferService) Validate(ctx context.Context, destination string) (*iface.Destination, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, fmt.Errorf("%w: destination is required", apperrors.ErrValidation)
	}

	var dest iface.Destination
	query := url.Values{"destination": {destination}}
	if err := s.client.Get(ctx, "/transfers/validate", &dest, api.WithQuery(query)); err != nil {
		return nil, fmt.Errorf("failed to validate destination: %w", err)
	}
	return &dest, nil
}

// Contacts returns saved destinations
func (s *transferService) Contacts(ctx context.Context) ([]iface.Contact, error) {
	var contacts []iface.Contact
	if err := s.client.Get(ctx, "/transfers/contacts", &contacts); err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	return contacts, nil
}

// AddContact saves a destination
func (s *transferService) AddContact(ctx context.Context, contact *iface.Contact) (*iface.Contact, error) {
	if contact.Name == "" || contact.CVU == "" {
		return nil, fmt.Errorf("%w: name and cvu are required", apperrors.ErrValidation)
	}

	body := map[string]string{"name": contact.Name, "cvu": contact.CVU, "alias": contact.Alias}
	var created iface.Contact
	if err := s.client.Post(ctx, "/transfers/contacts", body, &created); err != nil {
		return nil, fmt.Errorf("failed to add contact: %w", err)
	}
	return &created, nil
}

// DeleteContact removes a saved destination
func (s *transferService) DeleteContact(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/transfers/contacts/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}

// Limits returns the transfer caps
func (s *transferService) Limits(ctx context.Context) (*iface.TransferLimits, error) {
	var limits iface.TransferLimits
	if err := s.client.Get(ctx, "/transfers/limits", &limits); err != nil {
		return nil, fmt.Errorf("failed to fetch limits: %w", err)
	}
	return &limits, nil
}
