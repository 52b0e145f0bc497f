// Package gateway defines the provider-agnostic payment gateway contract the
// use cases depend on. The Stripe implementation lives under
// internal/infrastructure/gateway.
package gateway

import (
	"context"
	"time"
)

// PaymentMethodType classifies how a customer pays.
type PaymentMethodType string

const (
	PaymentMethodTypeCard         PaymentMethodType = "card"
	PaymentMethodTypeBankTransfer PaymentMethodType = "bank_transfer"
)

// SessionStatus is the overall lifecycle status of a hosted checkout session.
type SessionStatus string

const (
	SessionStatusOpen     SessionStatus = "open"
	SessionStatusComplete SessionStatus = "complete"
	SessionStatusExpired  SessionStatus = "expired"
)

// PaymentStatus is the settlement status of a checkout session. Bank-transfer
// sessions legitimately stay "unpaid" for days while ACH clears.
type PaymentStatus string

const (
	PaymentStatusPaid              PaymentStatus = "paid"
	PaymentStatusUnpaid            PaymentStatus = "unpaid"
	PaymentStatusNoPaymentRequired PaymentStatus = "no_payment_required"
)

// SubscriptionStatus mirrors the provider's subscription status vocabulary.
type SubscriptionStatus string

const (
	SubscriptionStatusActive            SubscriptionStatus = "active"
	SubscriptionStatusTrialing          SubscriptionStatus = "trialing"
	SubscriptionStatusPastDue           SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled          SubscriptionStatus = "canceled"
	SubscriptionStatusIncomplete        SubscriptionStatus = "incomplete"
	SubscriptionStatusIncompleteExpired SubscriptionStatus = "incomplete_expired"
	SubscriptionStatusUnpaid            SubscriptionStatus = "unpaid"
)

// CreateCheckoutSessionRequest carries everything needed to open a hosted
// checkout session.
type CreateCheckoutSessionRequest struct {
	PriceID       string
	CustomerID    string // takes precedence over CustomerEmail when set
	CustomerEmail string
	// OfferedMethods is the set of payment method types the hosted page offers.
	OfferedMethods []PaymentMethodType
	Metadata       map[string]string
	SuccessURL     string
	CancelURL      string
	IdempotencyKey string
}

// CheckoutSessionResult is the redirect handle for a freshly created session.
type CheckoutSessionResult struct {
	SessionID string
	URL       string
}

// SubscriptionDetail is the normalized view of a provider subscription.
type SubscriptionDetail struct {
	ID         string
	Status     SubscriptionStatus
	CustomerID string

	PriceID       string
	UnitAmount    int64 // minor units
	Currency      string
	Interval      string
	IntervalCount int64

	// CurrentPeriodEnd is the zero time when the provider omitted the field.
	CurrentPeriodEnd  time.Time
	CancelAtPeriodEnd bool
}

// CardDetail describes a stored card.
type CardDetail struct {
	Brand    string `json:"brand"`
	Last4    string `json:"last4"`
	ExpMonth int64  `json:"exp_month"`
	ExpYear  int64  `json:"exp_year"`
}

// BankAccountDetail describes a stored US bank account.
type BankAccountDetail struct {
	BankName      string `json:"bank_name"`
	Last4         string `json:"last4"`
	RoutingNumber string `json:"routing_number"`
	AccountType   string `json:"account_type"`
	HolderType    string `json:"holder_type"`
}

// PaymentMethodDetail is the normalized view of a stored payment method.
// Exactly one of Card and BankAccount is set, matching Type.
type PaymentMethodDetail struct {
	ID          string             `json:"id"`
	Type        PaymentMethodType  `json:"type"`
	CustomerID  string             `json:"-"`
	Card        *CardDetail        `json:"card,omitempty"`
	BankAccount *BankAccountDetail `json:"bank_account,omitempty"`
}

// CheckoutSessionDetail is the expanded view of a checkout session used by
// verification. PaymentMethod is the method detected from the session's
// payment intent, falling back to its setup intent (bank-transfer signups
// authorize through a setup intent because the first debit is deferred).
type CheckoutSessionDetail struct {
	ID            string
	Status        SessionStatus
	PaymentStatus PaymentStatus
	CustomerID    string
	CustomerEmail string
	Subscription  *SubscriptionDetail
	PaymentMethod *PaymentMethodDetail
}

// CustomerDetail is the slice of provider customer data the service needs.
type CustomerDetail struct {
	ID                     string
	Email                  string
	DefaultPaymentMethodID string
}

// PaymentGateway is implemented by payment provider clients. All calls are
// single-attempt; callers surface transient faults to the user.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req *CreateCheckoutSessionRequest) (*CheckoutSessionResult, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSessionDetail, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)

	GetCustomer(ctx context.Context, customerID string) (*CustomerDetail, error)
	ListPaymentMethods(ctx context.Context, customerID string) ([]*PaymentMethodDetail, error)
	GetPaymentMethod(ctx context.Context, paymentMethodID string) (*PaymentMethodDetail, error)
	SetDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error
	DetachPaymentMethod(ctx context.Context, paymentMethodID string) error
	CountActiveSubscriptions(ctx context.Context, customerID string) (int, error)

	// Ping verifies gateway credentials and connectivity.
	Ping(ctx context.Context) error
}
