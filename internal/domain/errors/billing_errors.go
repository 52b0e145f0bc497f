package errors

import "errors"

var (
	// ErrUnknownTier indicates the requested pricing tier does not exist
	ErrUnknownTier = errors.New("unknown pricing tier")

	// ErrNoPriceForCycle indicates the tier has no price reference for the requested billing cycle
	ErrNoPriceForCycle = errors.New("tier has no price for the requested billing cycle")

	// ErrInvalidPaymentPreference indicates an unrecognized payment method preference
	ErrInvalidPaymentPreference = errors.New("invalid payment method preference")

	// ErrSessionNotComplete indicates the checkout session has not completed
	ErrSessionNotComplete = errors.New("checkout session is not complete")

	// ErrNoSubscription indicates the completed session has no subscription attached
	ErrNoSubscription = errors.New("no subscription attached to checkout session")

	// ErrPaymentNotSettled indicates a card session whose payment did not settle
	ErrPaymentNotSettled = errors.New("payment has not settled")

	// ErrSubscriptionNotActive indicates a bank-transfer subscription in a non-billable state
	ErrSubscriptionNotActive = errors.New("subscription is not in a billable state")

	// ErrUnknownPaymentMethod indicates the session's payment method could not be classified
	ErrUnknownPaymentMethod = errors.New("could not determine payment method for session")

	// ErrPaymentMethodNotOwned indicates the payment method belongs to a different customer
	ErrPaymentMethodNotOwned = errors.New("payment method does not belong to customer")

	// ErrLastPaymentMethod indicates removal would leave an active subscription with no way to bill
	ErrLastPaymentMethod = errors.New("cannot remove the only payment method while a subscription is active")
)
