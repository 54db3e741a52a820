package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/simply-app/simply-cli/internal/api"
	apperrors "github.com/simply-app/simply-cli/internal/errors"
	iface "github.com/simply-app/simply-cli/internal/service/interface"
)

// notificationService implements iface.NotificationService
type notificationService struct {
	client *api.Client
}

// NewNotificationService creates a new notification service
func NewNotificationService(client *api.Client) iface.NotificationService {
	return &notificationService{client: client}
}

// List returns a page of notifications
func (s *notificationService) List(ctx context.Context, page, limit int) ([]iface.Notification, error) {
	var notifications []iface.Notification
	if err := s.client.Get(ctx, "/notifications", &notifications, api.WithQuery(pageQuery(page, limit))); err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return notifications, nil
}

// pageQuery encodes the paging parameters shared by list endpoints.
// Non-positive values are left out.
func pageQuery(page, limit int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return query
}

// MarkRead marks one notification as read
func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	if err := s.client.Patch(ctx, "/notifications/"+url.PathEscape(id)+"/read", nil, nil); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every notification as read
func (s *notificationService) MarkAllRead(ctx context.Context) error {
	if err := s.client.Post(ctx, "/notifications/read-all", nil, nil); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// Preferences returns the notification channel toggles
func (s *notificationService) Preferences(ctx context.Context) (map[string]bool, error) {
	var prefs map[string]bool
	if err := s.client.Get(ctx, "/notifications/preferences", &prefs); err != nil {
		return nil, fmt.Errorf("failed to fetch notification preferences: %w", err)
	}
	return prefs, nil
}

// UpdatePreferences changes notification channel toggles
func (s *notificationService) UpdatePreferences(ctx context.Context, prefs map[string]bool) (map[string]bool, error) {
	var updated map[string]bool
	if err := s.client.Patch(ctx, "/notifications/preferences", prefs, &updated); err != nil {
		return nil, fmt.Errorf("failed to update notification preferences: %w", err)
	}
	return updated, nil
}

// ActiveBanners returns the banners for a screen position
func (s *notificationService) ActiveBanners(ctx context.Context, position string) ([]iface.Banner, error) {
	var banners []iface.Banner
	if err := s.client.Get(ctx, "/marketing/banners/active/"+url.PathEscape(position), &banners); err != nil {
		return nil, fmt.Errorf("failed to fetch banners: %w", err)
	}
	return banners, nil
}

// RecordBannerClick reports that the user opened a banner
func (s *notificationService) RecordBannerClick(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: banner id is required", apperrors.ErrValidation)
	}
	if err := s.client.Post(ctx, "/marketing/banners/"+url.PathEscape(id)+"/click", nil, nil); err != nil {
		return fmt.Errorf("failed to record banner click: %w", err)
	}
	return nil
}
