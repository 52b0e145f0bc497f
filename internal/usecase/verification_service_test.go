package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/carebridge/billing-service/internal/domain/catalog"
	"github.com/carebridge/billing-service/internal/domain/entity"
	domainErrors "github.com/carebridge/billing-service/internal/domain/errors"
	"github.com/carebridge/billing-service/internal/domain/gateway"
	apperrors "github.com/carebridge/billing-service/pkg/errors"
)

func newVerificationService(gw gateway.PaymentGateway) *VerificationService {
	return NewVerificationService(gw, catalog.New(), zap.NewNop())
}

func cardSession(paymentStatus gateway.PaymentStatus, subStatus gateway.SubscriptionStatus) *gateway.CheckoutSessionDetail {
	return &gateway.CheckoutSessionDetail{
		ID:            "cs_test_card",
		Status:        gateway.SessionStatusComplete,
		PaymentStatus: paymentStatus,
		CustomerID:    "cus_123",
		Subscription: &gateway.SubscriptionDetail{
			ID:               "sub_123",
			Status:           subStatus,
			PriceID:          "price_professional_monthly",
			UnitAmount:       14900,
			Currency:         "usd",
			Interval:         "month",
			CurrentPeriodEnd: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		},
		PaymentMethod: &gateway.PaymentMethodDetail{
			ID:   "pm_card",
			Type: gateway.PaymentMethodTypeCard,
			Card: &gateway.CardDetail{Brand: "visa", Last4: "4242"},
		},
	}
}

func bankSession(paymentStatus gateway.PaymentStatus, subStatus gateway.SubscriptionStatus) *gateway.CheckoutSessionDetail {
	sess := cardSession(paymentStatus, subStatus)
	sess.ID = "cs_test_bank"
	sess.PaymentMethod = &gateway.PaymentMethodDetail{
		ID:   "pm_bank",
		Type: gateway.PaymentMethodTypeBankTransfer,
		BankAccount: &gateway.BankAccountDetail{
			BankName:    "First Federal",
			Last4:       "6789",
			AccountType: "checking",
		},
	}
	return sess
}

func TestVerifySession_CardPaidActive(t *testing.T) {
	mockGW := new(MockPaymentGateway)
	svc := newVerificationService(mockGW)

	mockGW.On("GetCheckoutSession", mock.Anything, "cs_test_card").
		Return(cardSession(gateway.PaymentStatusPaid, gateway.SubscriptionStatusActive), nil)

	result, err := svc.VerifySession(context.Background(), "cs_test_card")

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, entity.VerificationMethodCard, result.VerificationMethod)
	assert.Equal(t, "card", result.PaymentMethodType)
	assert.Equal(t, "Professional", result.Subscription.PlanName)
	assert.Equal(t, 149.0, result.Subscription.Amount)
	assert.Equal(t, "4242", result.PaymentMethod.Last4)
	assert.Equal(t, "cus_123", result.CustomerID)
	assert.False(t, result.Subscription.NextBillingDateEstimated)
}

func TestVerifySession_CardUnpaidFailsEvenIfActive(t *testing.T) {
	mockGW := new(MockPaymentGateway)
	svc := newVerificationService(mockGW)

	mockGW.On("GetCheckoutSession", mock.Anything, "cs_test_card").
		Return(cardSession(gateway.PaymentStatusUnpaid, gateway.SubscriptionStatusActive), nil)

	_, err := svc.VerifySession(context.Background(), "cs_test_card")

	assert.ErrorIs(t, err, domainErrors.ErrPaymentNotSettled)
}

func TestVerifySession_BankUnpaidActiveSucceeds(t *testing.T) {
	mockGW := new(MockPaymentGateway)
	svc := newVerificationService(mockGW)

	// ACH sessions stay unpaid while the bank transfer clears.
	mockGW.On("GetCheckoutSession", mock.Anything, "cs_test_bank").
		Return(bankSession(gateway.PaymentStatusUnpaid, gateway.SubscriptionStatusActive), nil)

	result, err := svc.VerifySession(context.Background(), "cs_test_bank")

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, entity.VerificationMethodACH, result.VerificationMethod)
	assert.Equal(t, "bank_transfer", result.PaymentMethodType)
	assert.Equal(t, "First Federal", result.PaymentMethod.BankName)
}

func TestVerifySession_BankTrialingAndPastDueSucceed(t *testing.T) {
	for _, status := range []gateway.SubscriptionStatus{
		gateway.SubscriptionStatusTrialing,
		gateway.SubscriptionStatusPastDue,
	} {
		mockGW := new(MockPaymentGateway)
		svc := newVerificationService(mockGW)

		mockGW.On("GetCheckoutSession", mock.Anything, "cs_test_bank").
			Return(bankSession(gateway.PaymentStatusUnpaid, status), nil)

		result, err := svc.VerifySession(context.Background(), "cs_test_bank")
		assert.NoError(t, err, "status %s", status)
		assert.True(t, result.Success)
	}
}

func TestVerifySession_BankCanceledAndIncompleteFail(t *testing.T) {
	for _, status := range []gateway.SubscriptionStatus{
		gateway.SubscriptionStatusCanceled,
		gateway.SubscriptionStatusIncomplete,
	} {
		mockGW := new(MockPaymentGateway)
		svc := newVerificationService(mockGW)

		mockGW.On("GetCheckoutSession", mock.Anything, "cs_test_bank").
			Return(bankSession(gateway.PaymentStatusUnpaid, status), nil)

		_, err := svc.VerifySession(context.Background(), "cs_test_bank")
		assert.ErrorIs(t, err, domainErrors.ErrSubscriptionNotActive, "status %s", status)
	}
}

func TestVerifySession_IncompleteSession(t *testing.T) {
	mockGW := new(MockPaymentGateway)
	svc := newVerificationService(mockGW)

	sess := cardSession(gateway.PaymentStatusPaid, gateway.SubscriptionStatusActive)
	sess.Status = gateway.SessionStatusOpen

	mockGW.On("GetCheckoutSession", mock.Anything, "cs_test_card").Return(sess, nil)

	_, err := svc.VerifySession(context.Background(), "cs_test_card")
	assert.ErrorIs(t, err, domainErrors.ErrSessionNotComplete)
}

func TestVerifySession_NoSubscription(t *testing.T) {
	mockGW := new(MockPaymentGateway)
	svc := newVerificationService(mockGW)

	sess := cardSession(gateway.PaymentStatusPaid, gateway.SubscriptionStatusActive)
	sess.Subscription = nil

	mockGW.On("GetCheckoutSession", mock.Anything, "cs_test_card").Return(sess, nil)

	_, err := svc.VerifySession(context.Background(), "cs_test_card")
	assert.ErrorIs(t, err, domainErrors.ErrNoSubscription)
}

func TestVerifySession_UnclassifiedPaymentMethod(t *testing.T) {
	mockGW := new(MockPaymentGateway)
	svc := newVerificationService(mockGW)

	sess := cardSession(gateway.PaymentStatusPaid, gateway.SubscriptionStatusActive)
	sess.PaymentMethod = nil

	mockGW.On("GetCheckoutSession", mock.Anything, "cs_test_card").Return(sess, nil)

	_, err := svc.VerifySession(context.Background(), "cs_test_card")
	assert.ErrorIs(t, err, domainErrors.ErrUnknownPaymentMethod)
}

func TestVerifySession_MalformedID(t *testing.T) {
	mockGW := new(MockPaymentGateway)
	svc := newVerificationService(mockGW)

	_, err := svc.VerifySession(context.Background(), "not-a-session")

	var appErr *apperrors.AppError
	assert.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrInvalidArgument, appErr.Code())
	mockGW.AssertNotCalled(t, "GetCheckoutSession")
}

func TestVerifySession_EstimatedNextBillingDate(t *testing.T) {
	mockGW := new(MockPaymentGateway)
	svc := newVerificationService(mockGW)

	fixedNow := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixedNow }

	sess := cardSession(gateway.PaymentStatusPaid, gateway.SubscriptionStatusActive)
	sess.Subscription.CurrentPeriodEnd = time.Time{}
	sess.Subscription.PriceID = "price_unlisted"

	mockGW.On("GetCheckoutSession", mock.Anything, "cs_test_card").Return(sess, nil)

	result, err := svc.VerifySession(context.Background(), "cs_test_card")

	assert.NoError(t, err)
	assert.True(t, result.Subscription.NextBillingDateEstimated)
	assert.Equal(t, fixedNow.AddDate(0, 1, 0), result.Subscription.NextBillingDate)
	assert.Equal(t, "Unknown Plan", result.Subscription.PlanName)
}
