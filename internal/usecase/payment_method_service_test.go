package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domainErrors "github.com/carebridge/billing-service/internal/domain/errors"
	"github.com/carebridge/billing-service/internal/domain/gateway"
	apperrors "github.com/carebridge/billing-service/pkg/errors"
)

func cardMethod(id, customerID string) *gateway.PaymentMethodDetail {
	return &gateway.PaymentMethodDetail{
		ID:         id,
		Type:       gateway.PaymentMethodTypeCard,
		CustomerID: customerID,
		Card:       &gateway.CardDetail{Brand: "visa", Last4: "4242"},
	}
}

func bankMethod(id, customerID string) *gateway.PaymentMethodDetail {
	return &gateway.PaymentMethodDetail{
		ID:          id,
		Type:        gateway.PaymentMethodTypeBankTransfer,
		CustomerID:  customerID,
		BankAccount: &gateway.BankAccountDetail{BankName: "First Federal", Last4: "6789"},
	}
}

func TestPaymentMethodList_DefaultAnnotationAndCounts(t *testing.T) {
	mockGW := new(MockPaymentGateway)
	svc := NewPaymentMethodService(mockGW, zap.NewNop())

	mockGW.On("GetCustomer", mock.Anything, "cus_123").
		Return(&gateway.CustomerDetail{ID: "cus_123", DefaultPaymentMethodID: "pm_bank"}, nil)
	mockGW.On("ListPaymentMethods", mock.Anything, "cus_123").
		Return([]*gateway.PaymentMethodDetail{
			cardMethod("pm_card", "cus_123"),
			bankMethod("pm_bank", "cus_123"),
		}, nil)

	list, err := svc.List(context.Background(), "cus_123")

	assert.NoError(t, err)
	assert.Len(t, list.PaymentMethods, 2)
	assert.False(t, list.PaymentMethods[0].IsDefault)
	assert.True(t, list.PaymentMethods[1].IsDefault)
	assert.Equal(t, 1, list.Counts.Cards)
	assert.Equal(t, 1, list.Counts.BankAccounts)
	assert.Equal(t, 2, list.Counts.Total)
}

func TestPaymentMethodList_InvalidCustomerID(t *testing.T) {
	mockGW := new(MockPaymentGateway)
	svc := NewPaymentMethodService(mockGW, zap.NewNop())

	_, err := svc.List(context.Background(), "bogus")

	var appErr *apperrors.AppError
	assert.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrInvalidArgument, appErr.Code())
	mockGW.AssertNotCalled(t, "GetCustomer")
}

func TestSetDefault_Success(t *testing.T) {
	mockGW := new(MockPaymentGateway)
	svc := NewPaymentMethodService(mockGW, zap.NewNop())

	mockGW.On("GetCustomer", mock.Anything, "cus_123").
		Return(&gateway.CustomerDetail{ID: "cus_123"}, nil)
	mockGW.On("GetPaymentMethod", mock.Anything, "pm_card").
		Return(cardMethod("pm_card", "cus_123"), nil)
	mockGW.On("SetDefaultPaymentMethod", mock.Anything, "cus_123", "pm_card").
		Return(nil)

	err := svc.SetDefault(context.Background(), "cus_123", "pm_card")

	assert.NoError(t, err)
	mockGW.AssertExpectations(t)
}

func TestSetDefault_NotOwned(t *testing.T) {
	mockGW := new(MockPaymentGateway)
	svc := NewPaymentMethodService(mockGW, zap.NewNop())

	mockGW.On("GetCustomer", mock.Anything, "cus_123").
		Return(&gateway.CustomerDetail{ID: "cus_123"}, nil)
	mockGW.On("GetPaymentMethod", mock.Anything, "pm_other").
		Return(cardMethod("pm_other", "cus_999"), nil)

	err := svc.SetDefault(context.Background(), "cus_123", "pm_other")

	assert.ErrorIs(t, err, domainErrors.ErrPaymentMethodNotOwned)
	mockGW.AssertNotCalled(t, "SetDefaultPaymentMethod")
}

func TestRemove_SoleMethodWithActiveSubscriptionRejected(t *testing.T) {
	mockGW := new(MockPaymentGateway)
	svc := NewPaymentMethodService(mockGW, zap.NewNop())

	mockGW.On("GetCustomer", mock.Anything, "cus_123").
		Return(&gateway.CustomerDetail{ID: "cus_123"}, nil)
	mockGW.On("GetPaymentMethod", mock.Anything, "pm_card").
		Return(cardMethod("pm_card", "cus_123"), nil)
	mockGW.On("ListPaymentMethods", mock.Anything, "cus_123").
		Return([]*gateway.PaymentMethodDetail{cardMethod("pm_card", "cus_123")}, nil)
	mockGW.On("CountActiveSubscriptions", mock.Anything, "cus_123").
		Return(1, nil)

	err := svc.Remove(context.Background(), "cus_123", "pm_card")

	assert.ErrorIs(t, err, domainErrors.ErrLastPaymentMethod)
	mockGW.AssertNotCalled(t, "DetachPaymentMethod")
}

func TestRemove_SoleMethodWithoutSubscriptionsSucceeds(t *testing.T) {
	mockGW := new(MockPaymentGateway)
	svc := NewPaymentMethodService(mockGW, zap.NewNop())

	mockGW.On("GetCustomer", mock.Anything, "cus_123").
		Return(&gateway.CustomerDetail{ID: "cus_123"}, nil)
	mockGW.On("GetPaymentMethod", mock.Anything, "pm_card").
		Return(cardMethod("pm_card", "cus_123"), nil)
	mockGW.On("ListPaymentMethods", mock.Anything, "cus_123").
		Return([]*gateway.PaymentMethodDetail{cardMethod("pm_card", "cus_123")}, nil)
	mockGW.On("CountActiveSubscriptions", mock.Anything, "cus_123").
		Return(0, nil)
	mockGW.On("DetachPaymentMethod", mock.Anything, "pm_card").
		Return(nil)

	err := svc.Remove(context.Background(), "cus_123", "pm_card")

	assert.NoError(t, err)
	mockGW.AssertExpectations(t)
}

func TestRemove_MultipleMethodsSkipsSubscriptionCheck(t *testing.T) {
	mockGW := new(MockPaymentGateway)
	svc := NewPaymentMethodService(mockGW, zap.NewNop())

	mockGW.On("GetCustomer", mock.Anything, "cus_123").
		Return(&gateway.CustomerDetail{ID: "cus_123"}, nil)
	mockGW.On("GetPaymentMethod", mock.Anything, "pm_card").
		Return(cardMethod("pm_card", "cus_123"), nil)
	mockGW.On("ListPaymentMethods", mock.Anything, "cus_123").
		Return([]*gateway.PaymentMethodDetail{
			cardMethod("pm_card", "cus_123"),
			bankMethod("pm_bank", "cus_123"),
		}, nil)
	mockGW.On("DetachPaymentMethod", mock.Anything, "pm_card").
		Return(nil)

	err := svc.Remove(context.Background(), "cus_123", "pm_card")

	assert.NoError(t, err)
	mockGW.AssertNotCalled(t, "CountActiveSubscriptions")
}

func TestRemove_InvalidPaymentMethodID(t *testing.T) {
	mockGW := new(MockPaymentGateway)
	svc := NewPaymentMethodService(mockGW, zap.NewNop())

	err := svc.Remove(context.Background(), "cus_123", "card_123")

	var appErr *apperrors.AppError
	assert.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrInvalidArgument, appErr.Code())
	mockGW.AssertNotCalled(t, "GetCustomer")
}
