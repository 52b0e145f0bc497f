package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/carebridge/billing-service/internal/domain/entity"
	domainErrors "github.com/carebridge/billing-service/internal/domain/errors"
	"github.com/carebridge/billing-service/internal/domain/gateway"
	apperrors "github.com/carebridge/billing-service/pkg/errors"
)

// PaymentMethodService manages a customer's stored payment methods. All
// authority lives in the gateway; these are single-round-trip wrappers plus
// ownership and removal guards.
type PaymentMethodService struct {
	gateway gateway.PaymentGateway
	logger  *zap.Logger
}

// NewPaymentMethodService creates a new payment method service instance
func NewPaymentMethodService(gw gateway.PaymentGateway, logger *zap.Logger) *PaymentMethodService {
	return &PaymentMethodService{
		gateway: gw,
		logger:  logger,
	}
}

// List returns the customer's card and bank-account methods annotated with
// the default flag, plus per-type counts.
func (s *PaymentMethodService) List(ctx context.Context, customerID string) (*entity.PaymentMethodList, error) {
	if !gateway.ValidCustomerID(customerID) {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "invalid customer id", nil)
	}

	customer, err := s.gateway.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	methods, err := s.gateway.ListPaymentMethods(ctx, customerID)
	if err != nil {
		return nil, err
	}

	list := &entity.PaymentMethodList{
		CustomerID:     customerID,
		PaymentMethods: make([]*entity.StoredPaymentMethod, 0, len(methods)),
	}
	for _, m := range methods {
		list.PaymentMethods = append(list.PaymentMethods, &entity.StoredPaymentMethod{
			PaymentMethodDetail: m,
			IsDefault:           m.ID == customer.DefaultPaymentMethodID,
		})
		switch m.Type {
		case gateway.PaymentMethodTypeCard:
			list.Counts.Cards++
		case gateway.PaymentMethodTypeBankTransfer:
			list.Counts.BankAccounts++
		}
	}
	list.Counts.Total = len(methods)

	return list, nil
}

// SetDefault makes the payment method the customer's default after verifying
// both exist and the method belongs to that customer.
func (s *PaymentMethodService) SetDefault(ctx context.Context, customerID, paymentMethodID string) error {
	if err := s.checkOwnership(ctx, customerID, paymentMethodID); err != nil {
		return err
	}

	if err := s.gateway.SetDefaultPaymentMethod(ctx, customerID, paymentMethodID); err != nil {
		return err
	}

	s.logger.Info("Default payment method set",
		zap.String("customer_id", customerID),
		zap.String("payment_method_id", paymentMethodID))

	return nil
}

// Remove detaches the payment method, refusing when the customer has an
// active subscription and this is their only stored method of any type.
func (s *PaymentMethodService) Remove(ctx context.Context, customerID, paymentMethodID string) error {
	if err := s.checkOwnership(ctx, customerID, paymentMethodID); err != nil {
		return err
	}

	methods, err := s.gateway.ListPaymentMethods(ctx, customerID)
	if err != nil {
		return err
	}
	if len(methods) <= 1 {
		active, err := s.gateway.CountActiveSubscriptions(ctx, customerID)
		if err != nil {
			return err
		}
		if active > 0 {
			return domainErrors.ErrLastPaymentMethod
		}
	}

	if err := s.gateway.DetachPaymentMethod(ctx, paymentMethodID); err != nil {
		return err
	}

	s.logger.Info("Payment method removed",
		zap.String("customer_id", customerID),
		zap.String("payment_method_id", paymentMethodID))

	return nil
}

// checkOwnership validates both identifiers, confirms both entities exist,
// and confirms the method belongs to the customer.
func (s *PaymentMethodService) checkOwnership(ctx context.Context, customerID, paymentMethodID string) error {
	if !gateway.ValidCustomerID(customerID) {
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "invalid customer id", nil)
	}
	if !gateway.ValidPaymentMethodID(paymentMethodID) {
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "invalid payment method id", nil)
	}

	if _, err := s.gateway.GetCustomer(ctx, customerID); err != nil {
		return err
	}

	pm, err := s.gateway.GetPaymentMethod(ctx, paymentMethodID)
	if err != nil {
		return err
	}
	if pm.CustomerID != customerID {
		return domainErrors.ErrPaymentMethodNotOwned
	}

	return nil
}
