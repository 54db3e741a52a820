// Package kyc runs the identity verification flow: it opens the provider's
// verification page in the browser and polls the backend until a verdict.
package kyc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pkg/browser"
	iface "github.com/simply-app/simply-cli/internal/service/interface"
	"go.uber.org/zap"
)

const (
	DefaultPollInterval = 5 * time.Second
	DefaultTimeout      = 10 * time.Minute
)

var (
	// ErrTimedOut is returned when no verdict arrives before the timeout
	ErrTimedOut = errors.New("verification timed out")

	// ErrRejected is returned when the provider rejects the verification
	ErrRejected = errors.New("verification rejected")
)

// Flow drives a single verification
type Flow struct {
	onboarding   iface.OnboardingService
	out          io.Writer
	log          *zap.Logger
	openURL      func(string) error
	pollInterval time.Duration
	timeout      time.Duration
}

// Option configures a Flow
type Option func(*Flow)

// WithPollInterval sets how often the status is checked
func WithPollInterval(d time.Duration) Option {
	return func(f *Flow) { f.pollInterval = d }
}

// WithTimeout sets how long to wait for a verdict
func WithTimeout(d time.Duration) Option {
	return func(f *Flow) { f.timeout = d }
}

// WithBrowser replaces the function used to open the verification page
func WithBrowser(open func(string) error) Option {
	return func(f *Flow) { f.openURL = open }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(f *Flow) { f.log = l }
}

// NewFlow creates a verification flow that reports progress to out
func NewFlow(onboarding iface.OnboardingService, out io.Writer, opts ...Option) *Flow {
	f := &Flow{
		onboarding:   onboarding,
		out:          out,
		log:          zap.NewNop(),
		openURL:      browser.OpenURL,
		pollInterval: DefaultPollInterval,
		timeout:      DefaultTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run verifies the user's identity. An already approved user returns
// immediately; otherwise a new verification session is started.
func (f *Flow) Run(ctx context.Context) (*iface.KYCStatus, error) {
	status, err := f.onboarding.KYCStatus(ctx)
	if err != nil {
		return nil, err
	}
	if status.Status == iface.KYCApproved {
		fmt.Fprintln(f.out, "Identity already verified.")
		return status, nil
	}

	session, err := f.onboarding.StartKYC(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(f.out, "Opening browser for identity verification...")
	fmt.Fprintf(f.out, "If the browser doesn't open, please visit:\n%s\n\n", session.VerificationURL)

	if err := f.openURL(session.VerificationURL); err != nil {
		fmt.Fprintf(f.out, "Failed to open browser automatically: %v\n", err)
	}

	fmt.Fprintln(f.out, "Waiting for verification...")
	return f.wait(ctx)
}

// wait polls the status until a final verdict, the timeout or cancellation
func (f *Flow) wait(ctx context.Context) (*iface.KYCStatus, error) {
	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()
	deadline := time.After(f.timeout)

	for {
		select {
		case <-ticker.C:
			status, err := f.onboarding.KYCStatus(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to check verification status: %w", err)
			}
			f.log.Debug("kyc status", zap.String("status", status.Status))
			if !status.Done() {
				continue
			}
			if status.Status == iface.KYCRejected {
				if status.Reason != "" {
					return status, fmt.Errorf("%w: %s", ErrRejected, status.Reason)
				}
				return status, ErrRejected
			}
			return status, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline:
			return nil, ErrTimedOut
		}
	}
}
