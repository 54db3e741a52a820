package iface

import (
	"context"
	"time"
)

// Notification is an in-app message
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Banner is a marketing placement
type Banner struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl,omitempty"`
	Link     string `json:"link,omitempty"`
}

// NotificationService defines the interface for notification operations
type NotificationService interface {
	List(ctx context.Context, page, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Preferences(ctx context.Context) (map[string]bool, error)
	UpdatePreferences(ctx context.Context, prefs map[string]bool) (map[string]bool, error)
	ActiveBanners(ctx context.Context, position string) ([]Banner, error)
	RecordBannerClick(ctx context.Context, id string) error
}
