package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/simply-app/simply-cli/internal/di"
	iface "github.com/simply-app/simply-cli/internal/service/interface"
	"github.com/simply-app/simply-cli/internal/session"
)

// MockAuthService is a mock implementation of iface.AuthService
type MockAuthService struct {
	LoginFunc               func(ctx context.Context, input *iface.LoginInput) (*session.User, error)
	LogoutFunc              func(ctx context.Context) error
	IsLoggedInFunc          func() bool
	EnsureAuthenticatedFunc func(ctx context.Context) error
	AccessTokenFunc         func() (string, error)
	LastLoginEmailFunc      func() string
	RegisterFunc            func(ctx context.Context, input *iface.RegisterInput) error
	ForgetDeviceFunc        func() error
}

func (m *MockAuthService) Login(ctx context.Context, input *iface.LoginInput) (*session.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, input)
	}
	return &session.User{ID: "u1", Email: input.Email}, nil
}

func (m *MockAuthService) BiometricLogin(ctx context.Context, userID, biometricToken string) (*session.User, error) {
	return &session.User{ID: userID}, nil
}

func (m *MockAuthService) Register(ctx context.Context, input *iface.RegisterInput) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	return nil
}

func (m *MockAuthService) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

func (m *MockAuthService) IsLoggedIn() bool {
	if m.IsLoggedInFunc != nil {
		return m.IsLoggedInFunc()
	}
	return true
}

func (m *MockAuthService) Me(ctx context.Context) (*session.User, error) {
	return &session.User{ID: "u1"}, nil
}

func (m *MockAuthService) EnsureAuthenticated(ctx context.Context) error {
	if m.EnsureAuthenticatedFunc != nil {
		return m.EnsureAuthenticatedFunc(ctx)
	}
	return nil
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error { return nil }

func (m *MockAuthService) ResetPassword(ctx context.Context, token, password string) error {
	return nil
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) error { return nil }

func (m *MockAuthService) AccessToken() (string, error) {
	if m.AccessTokenFunc != nil {
		return m.AccessTokenFunc()
	}
	return "test-token", nil
}

func (m *MockAuthService) LastLoginEmail() string {
	if m.LastLoginEmailFunc != nil {
		return m.LastLoginEmailFunc()
	}
	return ""
}

func (m *MockAuthService) ForgetDevice() error {
	if m.ForgetDeviceFunc != nil {
		return m.ForgetDeviceFunc()
	}
	return nil
}

// MockWalletService is a mock implementation of iface.WalletService
type MockWalletService struct {
	iface.WalletService

	DashboardFunc    func(ctx context.Context) (*iface.Dashboard, error)
	TransactionsFunc func(ctx context.Context, filter *iface.TransactionFilter) ([]iface.Transaction, error)
}

func (m *MockWalletService) Dashboard(ctx context.Context) (*iface.Dashboard, error) {
	return m.DashboardFunc(ctx)
}

func (m *MockWalletService) Transactions(ctx context.Context, filter *iface.TransactionFilter) ([]iface.Transaction, error) {
	return m.TransactionsFunc(ctx, filter)
}

// MockTransferService is a mock implementation of iface.TransferService
type MockTransferService struct {
	iface.TransferService

	ValidateFunc func(ctx context.Context, destination string) (*iface.Destination, error)
	SendFunc     func(ctx context.Context, input *iface.TransferInput) (*iface.TransferResult, error)
}

func (m *MockTransferService) Validate(ctx context.Context, destination string) (*iface.Destination, error) {
	return m.ValidateFunc(ctx, destination)
}

func (m *MockTransferService) Send(ctx context.Context, input *iface.TransferInput) (*iface.TransferResult, error) {
	return m.SendFunc(ctx, input)
}

// MockInvestmentService is a mock implementation of iface.InvestmentService
type MockInvestmentService struct {
	iface.InvestmentService

	ActiveFunc  func(ctx context.Context) ([]iface.Investment, error)
	HistoryFunc func(ctx context.Context, page, limit int) ([]iface.Investment, error)
}

func (m *MockInvestmentService) Active(ctx context.Context) ([]iface.Investment, error) {
	return m.ActiveFunc(ctx)
}

func (m *MockInvestmentService) History(ctx context.Context, page, limit int) ([]iface.Investment, error) {
	return m.HistoryFunc(ctx, page, limit)
}

// MockFinancingService is a mock implementation of iface.FinancingService
type MockFinancingService struct {
	iface.FinancingService

	RequestFunc func(ctx context.Context, req *iface.FinancingRequest) (*iface.Financing, error)
}

func (m *MockFinancingService) Request(ctx context.Context, req *iface.FinancingRequest) (*iface.Financing, error) {
	return m.RequestFunc(ctx, req)
}

// MockCardService is a mock implementation of iface.CardService
type MockCardService struct {
	iface.CardService

	BlockFunc func(ctx context.Context, id, reason string) error
}

func (m *MockCardService) Block(ctx context.Context, id, reason string) error {
	return m.BlockFunc(ctx, id, reason)
}

// MockOnboardingService is a mock implementation of iface.OnboardingService
type MockOnboardingService struct {
	iface.OnboardingService

	KYCStatusFunc func(ctx context.Context) (*iface.KYCStatus, error)
}

func (m *MockOnboardingService) KYCStatus(ctx context.Context) (*iface.KYCStatus, error) {
	return m.KYCStatusFunc(ctx)
}

// executeCommand runs the CLI with mocked services and returns its output
func executeCommand(t *testing.T, services di.Services, stdin string, args ...string) (string, *di.Container, error) {
	t.Helper()

	if services.Auth == nil {
		services.Auth = &MockAuthService{}
	}
	container := di.NewContainerWithServices(services)

	root := NewRootCommand()
	root.SetContainer(container)

	var out bytes.Buffer
	root.Command().SetOut(&out)
	root.Command().SetErr(&out)
	root.Command().SetIn(bytes.NewBufferString(stdin))
	root.Command().SetArgs(args)

	err := root.Command().Execute()
	return out.String(), container, err
}
