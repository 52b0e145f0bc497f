package stripe

import (
	"time"

	"github.com/stripe/stripe-go/v79"

	"github.com/carebridge/billing-service/internal/domain/gateway"
)

// stripeMethodTypes converts the normalized method set into Stripe payment
// method type strings.
func stripeMethodTypes(methods []gateway.PaymentMethodType) []string {
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		switch m {
		case gateway.PaymentMethodTypeCard:
			out = append(out, string(stripe.PaymentMethodTypeCard))
		case gateway.PaymentMethodTypeBankTransfer:
			out = append(out, string(stripe.PaymentMethodTypeUSBankAccount))
		}
	}
	return out
}

func offersBankTransfer(methods []gateway.PaymentMethodType) bool {
	for _, m := range methods {
		if m == gateway.PaymentMethodTypeBankTransfer {
			return true
		}
	}
	return false
}

// mapCheckoutSession normalizes an expanded checkout session, including the
// payment-method classification used by verification.
func mapCheckoutSession(sess *stripe.CheckoutSession) *gateway.CheckoutSessionDetail {
	detail := &gateway.CheckoutSessionDetail{
		ID:            sess.ID,
		Status:        gateway.SessionStatus(sess.Status),
		PaymentStatus: gateway.PaymentStatus(sess.PaymentStatus),
		CustomerEmail: sess.CustomerEmail,
		PaymentMethod: detectPaymentMethod(sess),
	}

	if sess.Customer != nil {
		detail.CustomerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		detail.Subscription = mapSubscription(sess.Subscription)
	}

	return detail
}

// detectPaymentMethod classifies the method a session was completed with.
// The payment intent is checked first; bank-transfer subscriptions authorize
// through a setup intent instead, because the first debit is deferred until
// ACH clears.
func detectPaymentMethod(sess *stripe.CheckoutSession) *gateway.PaymentMethodDetail {
	if sess.PaymentIntent != nil && sess.PaymentIntent.PaymentMethod != nil {
		return mapPaymentMethod(sess.PaymentIntent.PaymentMethod)
	}
	if sess.SetupIntent != nil && sess.SetupIntent.PaymentMethod != nil {
		return mapPaymentMethod(sess.SetupIntent.PaymentMethod)
	}
	return nil
}

func mapSubscription(sub *stripe.Subscription) *gateway.SubscriptionDetail {
	detail := &gateway.SubscriptionDetail{
		ID:                sub.ID,
		Status:            gateway.SubscriptionStatus(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}

	if sub.Customer != nil {
		detail.CustomerID = sub.Customer.ID
	}
	if sub.CurrentPeriodEnd > 0 {
		detail.CurrentPeriodEnd = time.Unix(sub.CurrentPeriodEnd, 0).UTC()
	}

	if len(sub.Items.Data) > 0 {
		// One subscription per signup; the first item carries the price.
		if price := sub.Items.Data[0].Price; price != nil {
			detail.PriceID = price.ID
			detail.UnitAmount = price.UnitAmount
			detail.Currency = string(price.Currency)
			if price.Recurring != nil {
				detail.Interval = string(price.Recurring.Interval)
				detail.IntervalCount = price.Recurring.IntervalCount
			}
		}
	}

	return detail
}

func mapPaymentMethod(pm *stripe.PaymentMethod) *gateway.PaymentMethodDetail {
	detail := &gateway.PaymentMethodDetail{
		ID: pm.ID,
	}
	if pm.Customer != nil {
		detail.CustomerID = pm.Customer.ID
	}

	switch pm.Type {
	case stripe.PaymentMethodTypeCard:
		detail.Type = gateway.PaymentMethodTypeCard
		if pm.Card != nil {
			detail.Card = &gateway.CardDetail{
				Brand:    string(pm.Card.Brand),
				Last4:    pm.Card.Last4,
				ExpMonth: pm.Card.ExpMonth,
				ExpYear:  pm.Card.ExpYear,
			}
		}
	case stripe.PaymentMethodTypeUSBankAccount:
		detail.Type = gateway.PaymentMethodTypeBankTransfer
		if pm.USBankAccount != nil {
			detail.BankAccount = &gateway.BankAccountDetail{
				BankName:      pm.USBankAccount.BankName,
				Last4:         pm.USBankAccount.Last4,
				RoutingNumber: pm.USBankAccount.RoutingNumber,
				AccountType:   string(pm.USBankAccount.AccountType),
				HolderType:    string(pm.USBankAccount.AccountHolderType),
			}
		}
	default:
		detail.Type = gateway.PaymentMethodType(pm.Type)
	}

	return detail
}

func mapCustomer(cust *stripe.Customer) *gateway.CustomerDetail {
	detail := &gateway.CustomerDetail{
		ID:    cust.ID,
		Email: cust.Email,
	}
	if cust.InvoiceSettings != nil && cust.InvoiceSettings.DefaultPaymentMethod != nil {
		detail.DefaultPaymentMethodID = cust.InvoiceSettings.DefaultPaymentMethod.ID
	}
	return detail
}
