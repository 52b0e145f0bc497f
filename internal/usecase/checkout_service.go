package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carebridge/billing-service/internal/domain/catalog"
	"github.com/carebridge/billing-service/internal/domain/entity"
	domainErrors "github.com/carebridge/billing-service/internal/domain/errors"
	"github.com/carebridge/billing-service/internal/domain/gateway"
	apperrors "github.com/carebridge/billing-service/pkg/errors"
)

// Payment method preferences accepted from the client.
const (
	PreferenceCard = "card"
	PreferenceACH  = "ach"
	PreferenceBoth = "both"
)

// CheckoutService builds hosted checkout sessions.
type CheckoutService struct {
	gateway   gateway.PaymentGateway
	catalog   *catalog.Catalog
	clientURL string
	logger    *zap.Logger
}

// NewCheckoutService creates a new checkout service instance
func NewCheckoutService(gw gateway.PaymentGateway, cat *catalog.Catalog, clientURL string, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		gateway:   gw,
		catalog:   cat,
		clientURL: clientURL,
		logger:    logger,
	}
}

// CreateCheckoutInput carries the checkout request after HTTP binding.
type CreateCheckoutInput struct {
	PriceID           string
	TierID            string
	BillingCycle      catalog.BillingCycle
	CustomerID        string
	CustomerEmail     string
	PaymentPreference string
	Metadata          map[string]string
}

// CreateCheckoutSession resolves the price, maps the payment preference onto
// offered method types, and opens a hosted session. No local state is kept;
// a failed attempt is simply retried by the user.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, in *CreateCheckoutInput) (*entity.CheckoutSession, error) {
	priceID, err := s.resolvePrice(in)
	if err != nil {
		return nil, err
	}

	offered, err := offeredMethods(in.PaymentPreference)
	if err != nil {
		return nil, err
	}

	if in.CustomerID != "" && !gateway.ValidCustomerID(in.CustomerID) {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "invalid customer id", nil)
	}

	req := &gateway.CreateCheckoutSessionRequest{
		PriceID:        priceID,
		CustomerID:     in.CustomerID,
		CustomerEmail:  in.CustomerEmail,
		OfferedMethods: offered,
		Metadata:       in.Metadata,
		SuccessURL:     s.clientURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:      s.clientURL + "/pricing",
		IdempotencyKey: uuid.NewString(),
	}

	result, err := s.gateway.CreateCheckoutSession(ctx, req)
	if err != nil {
		s.logger.Error("Failed to create checkout session",
			zap.String("price_id", priceID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Checkout session created",
		zap.String("session_id", result.SessionID),
		zap.String("price_id", priceID),
		zap.Int("offered_methods", len(offered)))

	return &entity.CheckoutSession{
		SessionID: result.SessionID,
		URL:       result.URL,
	}, nil
}

// resolvePrice accepts either a raw price reference or a tier id plus billing
// cycle resolved through the catalog.
func (s *CheckoutService) resolvePrice(in *CreateCheckoutInput) (string, error) {
	if in.PriceID != "" {
		if !gateway.ValidPriceID(in.PriceID) {
			return "", apperrors.NewAppError(apperrors.ErrInvalidArgument, "invalid price id", nil)
		}
		return in.PriceID, nil
	}

	tier, ok := s.catalog.ByID(in.TierID)
	if !ok {
		return "", fmt.Errorf("%w: %s", domainErrors.ErrUnknownTier, in.TierID)
	}

	cycle := in.BillingCycle
	if cycle == "" {
		cycle = catalog.CycleMonthly
	}
	if !cycle.Valid() {
		return "", apperrors.NewAppError(apperrors.ErrInvalidArgument, "invalid billing cycle", nil)
	}

	priceID := tier.PriceRef(cycle)
	if priceID == "" {
		return "", fmt.Errorf("%w: %s/%s", domainErrors.ErrNoPriceForCycle, tier.ID, cycle)
	}

	return priceID, nil
}

// offeredMethods maps the client preference onto the set of method types the
// hosted session offers. Empty preference means both.
func offeredMethods(preference string) ([]gateway.PaymentMethodType, error) {
	switch preference {
	case PreferenceCard:
		return []gateway.PaymentMethodType{gateway.PaymentMethodTypeCard}, nil
	case PreferenceACH:
		return []gateway.PaymentMethodType{gateway.PaymentMethodTypeBankTransfer}, nil
	case PreferenceBoth, "":
		return []gateway.PaymentMethodType{
			gateway.PaymentMethodTypeCard,
			gateway.PaymentMethodTypeBankTransfer,
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", domainErrors.ErrInvalidPaymentPreference, preference)
}
