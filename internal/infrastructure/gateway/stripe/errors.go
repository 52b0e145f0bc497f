package stripe

import (
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v79"

	apperrors "github.com/carebridge/billing-service/pkg/errors"
)

// translateError maps Stripe errors onto the application error taxonomy.
// Typed error codes are preferred; message matching is a fallback for older
// API responses and is kept here so the fragile part stays in one place.
func translateError(operation string, err error) error {
	var sErr *stripe.Error
	if !errors.As(err, &sErr) {
		return apperrors.NewAppError(apperrors.ErrUpstream, operation+": payment gateway request failed", err)
	}

	if sErr.Code == stripe.ErrorCodeResourceMissing || isNotFoundMessage(sErr.Msg) {
		return apperrors.NewAppError(apperrors.ErrNotFound, "requested resource not found", err)
	}

	switch sErr.Type {
	case stripe.ErrorTypeInvalidRequest:
		// Invalid-request messages are provider-validated and safe to pass
		// through; other categories get fixed user-safe messages.
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, sErr.Msg, err)
	case stripe.ErrorTypeCard:
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "payment was declined", err)
	default:
		return apperrors.NewAppError(apperrors.ErrUpstream, operation+": payment gateway error", err)
	}
}

// isNotFoundMessage detects the gateway's "No such ..." phrasing for missing
// or expired entities.
func isNotFoundMessage(msg string) bool {
	return strings.HasPrefix(strings.ToLower(msg), "no such ")
}
