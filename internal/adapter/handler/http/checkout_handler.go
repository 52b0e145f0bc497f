package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/carebridge/billing-service/internal/domain/catalog"
	"github.com/carebridge/billing-service/internal/usecase"
)

type CheckoutHandler struct {
	checkout *usecase.CheckoutService
	logger   *zap.Logger
}

func NewCheckoutHandler(checkout *usecase.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger,
	}
}

type CreateCheckoutRequest struct {
	PriceID           string            `json:"priceId"`
	TierID            string            `json:"tierId"`
	BillingCycle      string            `json:"billingCycle"`
	CustomerID        string            `json:"customerId"`
	CustomerEmail     string            `json:"customerEmail" validate:"omitempty,email"`
	PaymentMethodType string            `json:"payment_method_type"`
	Metadata          map[string]string `json:"metadata"`
}

// CreateCheckout opens a hosted checkout session and returns its redirect URL.
func (h *CheckoutHandler) CreateCheckout(c echo.Context) error {
	var req CreateCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}
	if req.PriceID == "" && req.TierID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Either priceId or tierId is required",
		})
	}

	session, err := h.checkout.CreateCheckoutSession(c.Request().Context(), &usecase.CreateCheckoutInput{
		PriceID:           req.PriceID,
		TierID:            req.TierID,
		BillingCycle:      catalog.BillingCycle(req.BillingCycle),
		CustomerID:        req.CustomerID,
		CustomerEmail:     req.CustomerEmail,
		PaymentPreference: req.PaymentMethodType,
		Metadata:          req.Metadata,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, session)
}
