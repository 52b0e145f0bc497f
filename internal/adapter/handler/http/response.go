package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/carebridge/billing-service/internal/domain/errors"
	apperrors "github.com/carebridge/billing-service/pkg/errors"
)

// sentinelStatus maps domain sentinel errors onto HTTP statuses. Ownership
// violations are forbidden; the rest are client-state errors.
var sentinelStatus = map[error]int{
	domainErrors.ErrUnknownTier:              http.StatusBadRequest,
	domainErrors.ErrNoPriceForCycle:          http.StatusBadRequest,
	domainErrors.ErrInvalidPaymentPreference: http.StatusBadRequest,
	domainErrors.ErrSessionNotComplete:       http.StatusBadRequest,
	domainErrors.ErrNoSubscription:           http.StatusBadRequest,
	domainErrors.ErrPaymentNotSettled:        http.StatusBadRequest,
	domainErrors.ErrSubscriptionNotActive:    http.StatusBadRequest,
	domainErrors.ErrUnknownPaymentMethod:     http.StatusBadRequest,
	domainErrors.ErrLastPaymentMethod:        http.StatusBadRequest,
	domainErrors.ErrPaymentMethodNotOwned:    http.StatusForbidden,
}

// respondError translates a service error into the structured error envelope.
// Every handler catches at its own boundary through this helper; nothing
// propagates to the framework's error handler except unmatched routes.
func respondError(c echo.Context, logger *zap.Logger, err error) error {
	for sentinel, status := range sentinelStatus {
		if apperrors.Is(err, sentinel) {
			return c.JSON(status, echo.Map{
				"success": false,
				"error":   sentinel.Error(),
				"details": err.Error(),
			})
		}
	}

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		status := apperrors.ToHTTPStatus(appErr.Code())
		if status >= http.StatusInternalServerError {
			apperrors.LogError(logger, err, "Request failed",
				zap.String("path", c.Request().URL.Path))
			return c.JSON(status, echo.Map{
				"success": false,
				"error":   "An internal error occurred",
			})
		}
		return c.JSON(status, echo.Map{
			"success": false,
			"error":   appErr.Message(),
		})
	}

	apperrors.LogError(logger, err, "Unhandled request error",
		zap.String("path", c.Request().URL.Path))
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"success": false,
		"error":   "An internal error occurred",
	})
}
