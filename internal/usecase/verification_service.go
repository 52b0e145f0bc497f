package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/carebridge/billing-service/internal/domain/catalog"
	"github.com/carebridge/billing-service/internal/domain/entity"
	domainErrors "github.com/carebridge/billing-service/internal/domain/errors"
	"github.com/carebridge/billing-service/internal/domain/gateway"
	apperrors "github.com/carebridge/billing-service/pkg/errors"
)

// VerificationService checks completed checkout sessions and normalizes the
// result for the success page.
type VerificationService struct {
	gateway  gateway.PaymentGateway
	catalog  *catalog.Catalog
	logger   *zap.Logger
	criteria map[gateway.PaymentMethodType]methodCriteria
	now      func() time.Time
}

// methodCriteria is one verification strategy: how a session paid with this
// method proves the signup succeeded. Adding a payment method means adding
// one entry here, not threading new conditions through the flow.
type methodCriteria struct {
	label string // reported verification method
	check func(sess *gateway.CheckoutSessionDetail) error
}

// NewVerificationService creates a new verification service instance
func NewVerificationService(gw gateway.PaymentGateway, cat *catalog.Catalog, logger *zap.Logger) *VerificationService {
	return &VerificationService{
		gateway: gw,
		catalog: cat,
		logger:  logger,
		criteria: map[gateway.PaymentMethodType]methodCriteria{
			gateway.PaymentMethodTypeCard: {
				label: entity.VerificationMethodCard,
				check: cardCriteria,
			},
			gateway.PaymentMethodTypeBankTransfer: {
				label: entity.VerificationMethodACH,
				check: bankTransferCriteria,
			},
		},
		now: time.Now,
	}
}

// cardCriteria: a card session is verified only when its payment settled.
func cardCriteria(sess *gateway.CheckoutSessionDetail) error {
	if sess.PaymentStatus != gateway.PaymentStatusPaid {
		return domainErrors.ErrPaymentNotSettled
	}
	return nil
}

// bankTransferCriteria: ACH-funded subscriptions are created unpaid while the
// bank clearing runs, so the session's payment status is deliberately
// ignored; the subscription's own status decides.
func bankTransferCriteria(sess *gateway.CheckoutSessionDetail) error {
	switch sess.Subscription.Status {
	case gateway.SubscriptionStatusActive,
		gateway.SubscriptionStatusTrialing,
		gateway.SubscriptionStatusPastDue:
		return nil
	}
	return domainErrors.ErrSubscriptionNotActive
}

// VerifySession retrieves a completed checkout session, classifies the
// payment method used, applies the method's success criteria, and returns
// normalized subscription data for the UI.
func (s *VerificationService) VerifySession(ctx context.Context, sessionID string) (*entity.VerificationResult, error) {
	if !gateway.ValidSessionID(sessionID) {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "invalid session id", nil)
	}

	sess, err := s.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if sess.Status != gateway.SessionStatusComplete {
		return nil, domainErrors.ErrSessionNotComplete
	}
	if sess.Subscription == nil {
		return nil, domainErrors.ErrNoSubscription
	}
	if sess.PaymentMethod == nil {
		return nil, domainErrors.ErrUnknownPaymentMethod
	}

	criteria, ok := s.criteria[sess.PaymentMethod.Type]
	if !ok {
		return nil, domainErrors.ErrUnknownPaymentMethod
	}
	if err := criteria.check(sess); err != nil {
		s.logger.Info("Session verification failed",
			zap.String("session_id", sessionID),
			zap.String("payment_method_type", string(sess.PaymentMethod.Type)),
			zap.String("payment_status", string(sess.PaymentStatus)),
			zap.String("subscription_status", string(sess.Subscription.Status)),
			zap.Error(err))
		return nil, err
	}

	result := &entity.VerificationResult{
		Success:            true,
		VerificationMethod: criteria.label,
		PaymentMethodType:  string(sess.PaymentMethod.Type),
		PaymentMethod:      summarizePaymentMethod(sess.PaymentMethod),
		Subscription:       s.summarizeSubscription(sess.Subscription),
		CustomerID:         sess.CustomerID,
	}

	s.logger.Info("Session verified",
		zap.String("session_id", sessionID),
		zap.String("verification_method", criteria.label),
		zap.String("subscription_id", sess.Subscription.ID))

	return result, nil
}

func (s *VerificationService) summarizeSubscription(sub *gateway.SubscriptionDetail) *entity.VerifiedSubscription {
	planName := "Unknown Plan"
	if tier, ok := s.catalog.ByPriceID(sub.PriceID); ok {
		planName = tier.Name
	}

	amount, _ := decimal.NewFromInt(sub.UnitAmount).Div(decimal.NewFromInt(100)).Float64()

	out := &entity.VerifiedSubscription{
		ID:                sub.ID,
		Status:            string(sub.Status),
		PlanName:          planName,
		Amount:            amount,
		Currency:          sub.Currency,
		Interval:          sub.Interval,
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}

	if !sub.CurrentPeriodEnd.IsZero() {
		out.NextBillingDate = sub.CurrentPeriodEnd
	} else {
		// The provider occasionally omits the period end; estimate one month
		// out and flag it so the UI can qualify the date.
		out.NextBillingDate = s.now().AddDate(0, 1, 0)
		out.NextBillingDateEstimated = true
	}

	return out
}

func summarizePaymentMethod(pm *gateway.PaymentMethodDetail) *entity.PaymentMethodSummary {
	summary := &entity.PaymentMethodSummary{ID: pm.ID}
	if pm.Card != nil {
		summary.Brand = pm.Card.Brand
		summary.Last4 = pm.Card.Last4
	}
	if pm.BankAccount != nil {
		summary.BankName = pm.BankAccount.BankName
		summary.Last4 = pm.BankAccount.Last4
		summary.AccountType = pm.BankAccount.AccountType
	}
	return summary
}
