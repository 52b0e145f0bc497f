package entity

import "time"

// Verification method labels reported to the UI so it can branch its
// messaging (bank transfers show a settlement-time notice).
const (
	VerificationMethodCard = "card_payment"
	VerificationMethodACH  = "ach_subscription"
)

// VerifiedSubscription is the display-ready subscription summary returned
// after a successful session verification.
type VerifiedSubscription struct {
	ID       string  `json:"id"`
	Status   string  `json:"status"`
	PlanName string  `json:"planName"`
	Amount   float64 `json:"amount"` // major currency units
	Currency string  `json:"currency"`
	Interval string  `json:"interval"`

	NextBillingDate time.Time `json:"nextBillingDate"`
	// NextBillingDateEstimated is set when the provider omitted the current
	// period end and the date is a one-month-from-now estimate.
	NextBillingDateEstimated bool `json:"nextBillingDateEstimated,omitempty"`
	CancelAtPeriodEnd        bool `json:"cancelAtPeriodEnd"`
}

// PaymentMethodSummary is the display-ready payment method attached to a
// verified session.
type PaymentMethodSummary struct {
	ID          string `json:"id"`
	Brand       string `json:"brand,omitempty"`
	Last4       string `json:"last4,omitempty"`
	BankName    string `json:"bankName,omitempty"`
	AccountType string `json:"accountType,omitempty"`
}

// VerificationResult is returned by GET /verify-session.
type VerificationResult struct {
	Success            bool                  `json:"success"`
	VerificationMethod string                `json:"verificationMethod"`
	PaymentMethodType  string                `json:"paymentMethodType"`
	PaymentMethod      *PaymentMethodSummary `json:"paymentMethod,omitempty"`
	Subscription       *VerifiedSubscription `json:"subscription,omitempty"`
	CustomerID         string                `json:"customerId,omitempty"`
}
