// Package di provides dependency injection for the Simply CLI.
// It contains the service container and factory functions.
package di

import (
	"errors"
	"fmt"
	"io"

	"github.com/simply-app/simply-cli/internal/api"
	"github.com/simply-app/simply-cli/internal/config"
	"github.com/simply-app/simply-cli/internal/kyc"
	"github.com/simply-app/simply-cli/internal/logger"
	"github.com/simply-app/simply-cli/internal/metrics"
	"github.com/simply-app/simply-cli/internal/prefs"
	"github.com/simply-app/simply-cli/internal/securestore"
	"github.com/simply-app/simply-cli/internal/service"
	iface "github.com/simply-app/simply-cli/internal/service/interface"
	"github.com/simply-app/simply-cli/internal/session"
	"go.uber.org/zap"
)

// Services groups the facades a Container hands out
type Services struct {
	Auth         iface.AuthService
	Onboarding   iface.OnboardingService
	Wallet       iface.WalletService
	Transfer     iface.TransferService
	Investment   iface.InvestmentService
	Financing    iface.FinancingService
	Card         iface.CardService
	Profile      iface.ProfileService
	Notification iface.NotificationService
}

// Container holds all service dependencies for the CLI.
// Services are accessed via interfaces to enable mocking in tests.
//
// A Container is the process's explicit context object: NewContainer
// builds the session and its stores, Dispose tears them down.
type Container struct {
	config   *config.Config
	logger   *logger.Logger
	prefs    *prefs.BoltStore
	metrics  *metrics.Metrics
	session  *session.Manager
	services Services
}

// NewContainer creates a new dependency container with default implementations
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New()
	if err := log.Init(cfg.LogLevel, cfg.IsProduction()); err != nil {
		return nil, err
	}

	prefStore, err := prefs.Open(cfg.PreferencesPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}

	m := metrics.New()
	sess := session.NewManager(log.Log.Named("session"))
	store := securestore.NewKeyringStore(cfg.KeyringService)

	client := api.NewClient(cfg.APIURL, store, sess,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(log.Log.Named("api")),
		api.WithMetrics(m),
	)

	return &Container{
		config:  cfg,
		logger:  log,
		prefs:   prefStore,
		metrics: m,
		session: sess,
		services: Services{
			Auth:         service.NewAuthService(client, prefStore, sess, log.Log.Named("auth")),
			Onboarding:   service.NewOnboardingService(client, prefStore),
			Wallet:       service.NewWalletService(client),
			Transfer:     service.NewTransferService(client),
			Investment:   service.NewInvestmentService(client),
			Financing:    service.NewFinancingService(client),
			Card:         service.NewCardService(client),
			Profile:      service.NewProfileService(client, prefStore, sess),
			Notification: service.NewNotificationService(client),
		},
	}, nil
}

// NewContainerWithServices creates a container with custom service implementations.
// This is useful for testing with mock services.
func NewContainerWithServices(services Services) *Container {
	return &Container{
		logger:   logger.New(),
		session:  session.NewManager(nil),
		services: services,
	}
}

// Dispose flushes metrics, closes the preferences database and syncs the
// logger. It is safe to call on a test container.
func (c *Container) Dispose() error {
	var errs []error

	if c.config != nil && c.config.MetricsFile != "" && c.metrics != nil {
		if err := c.metrics.WriteTextfile(c.config.MetricsFile); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	if c.prefs != nil {
		if err := c.prefs.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close preferences: %w", err))
		}
	}
	c.logger.Sync()

	return errors.Join(errs...)
}

// KYCFlow returns a verification flow that reports progress to out
func (c *Container) KYCFlow(out io.Writer) *kyc.Flow {
	opts := []kyc.Option{kyc.WithLogger(c.Logger().Named("kyc"))}
	if c.config != nil {
		opts = append(opts, kyc.WithPollInterval(c.config.KYCPollInterval), kyc.WithTimeout(c.config.KYCTimeout))
	}
	return kyc.NewFlow(c.services.Onboarding, out, opts...)
}

// SupportURL returns the help center address
func (c *Container) SupportURL() string {
	if c.config == nil {
		return ""
	}
	return c.config.SupportURL
}

// Logger returns the process logger
func (c *Container) Logger() *zap.Logger {
	return c.logger.Log
}

// Session returns the session state
func (c *Container) Session() *session.Manager {
	return c.session
}

// AuthService returns the authentication service
func (c *Container) AuthService() iface.AuthService {
	return c.services.Auth
}

// OnboardingService returns the onboarding service
func (c *Container) OnboardingService() iface.OnboardingService {
	return c.services.Onboarding
}

// WalletService returns the wallet service
func (c *Container) WalletService() iface.WalletService {
	return c.services.Wallet
}

// TransferService returns the transfer service
func (c *Container) TransferService() iface.TransferService {
	return c.services.Transfer
}

// InvestmentService returns the investment service
func (c *Container) InvestmentService() iface.InvestmentService {
	return c.services.Investment
}

// FinancingService returns the financing service
func (c *Container) FinancingService() iface.FinancingService {
	return c.services.Financing
}

// CardService returns the card service
func (c *Container) CardService() iface.CardService {
	return c.services.Card
}

// ProfileService returns the profile service
func (c *Container) ProfileService() iface.ProfileService {
	return c.services.Profile
}

// NotificationService returns the notification service
func (c *Container) NotificationService() iface.NotificationService {
	return c.services.Notification
}
