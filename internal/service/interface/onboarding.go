package iface

import "context"

// KYC verification states
const (
	KYCPending    = "pending"
	KYCInProgress = "in_progress"
	KYCApproved   = "approved"
	KYCRejected   = "rejected"
)

// OnboardingStatus reports which onboarding steps are done
type OnboardingStatus struct {
	PersonalData bool   `json:"personalData"`
	Address      bool   `json:"address"`
	KYC          string `json:"kycStatus"`
	Completed    bool   `json:"completed"`
}

// PersonalData is the first onboarding step
type PersonalData struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	DNI       string `json:"dni"`
	BirthDate string `json:"birthDate,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Address is the second onboarding step
type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

// KYCSession is an identity verification started with the provider
type KYCSession struct {
	SessionID       string `json:"sessionId"`
	VerificationURL string `json:"verificationUrl"`
}

// KYCStatus is the provider's verdict
type KYCStatus struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Done reports whether the verification reached a final state
func (s *KYCStatus) Done() bool {
	return s.Status == KYCApproved || s.Status == KYCRejected
}

// OnboardingService defines the interface for onboarding operations
type OnboardingService interface {
	Status(ctx context.Context) (*OnboardingStatus, error)
	SubmitPersonalData(ctx context.Context, data *PersonalData) error
	SubmitAddress(ctx context.Context, address *Address) error
	StartKYC(ctx context.Context) (*KYCSession, error)
	KYCStatus(ctx context.Context) (*KYCStatus, error)
	Complete(ctx context.Context) error
}
