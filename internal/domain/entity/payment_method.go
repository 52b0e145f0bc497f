package entity

import "github.com/carebridge/billing-service/internal/domain/gateway"

// StoredPaymentMethod is a payment method annotated with the customer's
// default flag for the list endpoint.
type StoredPaymentMethod struct {
	*gateway.PaymentMethodDetail
	IsDefault bool `json:"is_default"`
}

// PaymentMethodCounts summarizes stored methods by type.
type PaymentMethodCounts struct {
	Cards        int `json:"cards"`
	BankAccounts int `json:"bank_accounts"`
	Total        int `json:"total"`
}

// PaymentMethodList is the response body for listing a customer's stored
// payment methods.
type PaymentMethodList struct {
	CustomerID     string                 `json:"customer_id"`
	PaymentMethods []*StoredPaymentMethod `json:"payment_methods"`
	Counts         PaymentMethodCounts    `json:"counts"`
}
