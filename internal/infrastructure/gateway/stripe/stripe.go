// Package stripe implements the payment gateway contract against the Stripe
// API using an injected client, so no package-level key is ever set.
package stripe

import (
	"context"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/carebridge/billing-service/internal/domain/gateway"
)

// Gateway implements gateway.PaymentGateway for Stripe.
type Gateway struct {
	api    *client.API
	logger *zap.Logger
}

// New creates a Stripe gateway from the resolved secret key. The client is
// constructed once here and shared; it must only run in a trusted execution
// context — the browser gets the publishable key, never this client.
func New(secretKey string, logger *zap.Logger) *Gateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &Gateway{
		api:    api,
		logger: logger,
	}
}

// CreateCheckoutSession opens a hosted checkout session in subscription mode.
func (g *Gateway) CreateCheckoutSession(ctx context.Context, req *gateway.CreateCheckoutSessionRequest) (*gateway.CheckoutSessionResult, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		PaymentMethodTypes: stripe.StringSlice(stripeMethodTypes(req.OfferedMethods)),
	}
	params.Context = ctx

	if req.IdempotencyKey != "" {
		params.IdempotencyKey = stripe.String(req.IdempotencyKey)
	}

	// Explicit customer reference takes precedence; otherwise the gateway
	// creates or matches a customer from the email.
	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	} else if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	if offersBankTransfer(req.OfferedMethods) {
		// ACH subscriptions start unpaid and settle after the multi-day bank
		// clearing, so the method is only collected when required, verified
		// automatically, and the debit mandate consent is collected up front.
		params.PaymentMethodCollection = stripe.String("if_required")
		params.PaymentMethodOptions = &stripe.CheckoutSessionPaymentMethodOptionsParams{
			USBankAccount: &stripe.CheckoutSessionPaymentMethodOptionsUSBankAccountParams{
				VerificationMethod: stripe.String("automatic"),
			},
		}
		params.ConsentCollection = &stripe.CheckoutSessionConsentCollectionParams{
			TermsOfService: stripe.String("required"),
		}
	}

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, translateError("CreateCheckoutSession", err)
	}

	g.logger.Info("Checkout session created",
		zap.String("session_id", sess.ID),
		zap.String("price_id", req.PriceID))

	return &gateway.CheckoutSessionResult{
		SessionID: sess.ID,
		URL:       sess.URL,
	}, nil
}

// GetCheckoutSession retrieves a session expanded with its subscription,
// customer, and both intents, normalized for verification.
func (g *Gateway) GetCheckoutSession(ctx context.Context, sessionID string) (*gateway.CheckoutSessionDetail, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("customer")
	params.AddExpand("subscription.items.data.price")
	params.AddExpand("payment_intent.payment_method")
	params.AddExpand("setup_intent.payment_method")

	sess, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, translateError("GetCheckoutSession", err)
	}

	return mapCheckoutSession(sess), nil
}

// CreatePortalSession opens a hosted billing management portal session.
func (g *Gateway) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	ps, err := g.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", translateError("CreatePortalSession", err)
	}

	g.logger.Info("Portal session created",
		zap.String("portal_session_id", ps.ID),
		zap.String("customer_id", customerID))

	return ps.URL, nil
}

// GetCustomer fetches the customer and their default payment method reference.
func (g *Gateway) GetCustomer(ctx context.Context, customerID string) (*gateway.CustomerDetail, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx

	cust, err := g.api.Customers.Get(customerID, params)
	if err != nil {
		return nil, translateError("GetCustomer", err)
	}

	return mapCustomer(cust), nil
}

// ListPaymentMethods fetches card and bank-account methods with two parallel
// typed list calls and concatenates the results, cards first.
func (g *Gateway) ListPaymentMethods(ctx context.Context, customerID string) ([]*gateway.PaymentMethodDetail, error) {
	var cards, banks []*gateway.PaymentMethodDetail

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		cards, err = g.listPaymentMethodsByType(egCtx, customerID, string(stripe.PaymentMethodTypeCard))
		return err
	})
	eg.Go(func() error {
		var err error
		banks, err = g.listPaymentMethodsByType(egCtx, customerID, string(stripe.PaymentMethodTypeUSBankAccount))
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return append(cards, banks...), nil
}

func (g *Gateway) listPaymentMethodsByType(ctx context.Context, customerID, pmType string) ([]*gateway.PaymentMethodDetail, error) {
	params := &stripe.PaymentMethodListParams{
		Customer: stripe.String(customerID),
		Type:     stripe.String(pmType),
	}
	params.Context = ctx

	var methods []*gateway.PaymentMethodDetail
	iter := g.api.PaymentMethods.List(params)
	for iter.Next() {
		methods = append(methods, mapPaymentMethod(iter.PaymentMethod()))
	}
	if err := iter.Err(); err != nil {
		return nil, translateError("ListPaymentMethods", err)
	}

	return methods, nil
}

// GetPaymentMethod fetches a single stored payment method.
func (g *Gateway) GetPaymentMethod(ctx context.Context, paymentMethodID string) (*gateway.PaymentMethodDetail, error) {
	params := &stripe.PaymentMethodParams{}
	params.Context = ctx

	pm, err := g.api.PaymentMethods.Get(paymentMethodID, params)
	if err != nil {
		return nil, translateError("GetPaymentMethod", err)
	}

	return mapPaymentMethod(pm), nil
}

// SetDefaultPaymentMethod updates the customer's invoice default.
func (g *Gateway) SetDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error {
	params := &stripe.CustomerParams{
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethodID),
		},
	}
	params.Context = ctx

	if _, err := g.api.Customers.Update(customerID, params); err != nil {
		return translateError("SetDefaultPaymentMethod", err)
	}

	g.logger.Info("Default payment method updated",
		zap.String("customer_id", customerID),
		zap.String("payment_method_id", paymentMethodID))

	return nil
}

// DetachPaymentMethod removes a stored payment method from its customer.
func (g *Gateway) DetachPaymentMethod(ctx context.Context, paymentMethodID string) error {
	params := &stripe.PaymentMethodDetachParams{}
	params.Context = ctx

	if _, err := g.api.PaymentMethods.Detach(paymentMethodID, params); err != nil {
		return translateError("DetachPaymentMethod", err)
	}

	g.logger.Info("Payment method detached",
		zap.String("payment_method_id", paymentMethodID))

	return nil
}

// CountActiveSubscriptions counts the customer's active subscriptions.
func (g *Gateway) CountActiveSubscriptions(ctx context.Context, customerID string) (int, error) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String(string(stripe.SubscriptionStatusActive)),
	}
	params.Context = ctx

	count := 0
	iter := g.api.Subscriptions.List(params)
	for iter.Next() {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, translateError("CountActiveSubscriptions", err)
	}

	return count, nil
}

// Ping retrieves the account balance to prove credentials and connectivity.
func (g *Gateway) Ping(ctx context.Context) error {
	params := &stripe.BalanceParams{}
	params.Context = ctx

	if _, err := g.api.Balance.Get(params); err != nil {
		return translateError("Ping", err)
	}
	return nil
}

var _ gateway.PaymentGateway = (*Gateway)(nil)
