package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/carebridge/billing-service/internal/usecase"
)

type PaymentMethodHandler struct {
	paymentMethods *usecase.PaymentMethodService
	logger         *zap.Logger
}

func NewPaymentMethodHandler(pm *usecase.PaymentMethodService, logger *zap.Logger) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		paymentMethods: pm,
		logger:         logger,
	}
}

// List returns the customer's stored payment methods.
func (h *PaymentMethodHandler) List(c echo.Context) error {
	customerID := c.QueryParam("customer_id")
	if customerID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "customer_id query parameter is required",
		})
	}

	list, err := h.paymentMethods.List(c.Request().Context(), customerID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, list)
}

type SetDefaultRequest struct {
	CustomerID      string `json:"customer_id" validate:"required"`
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
}

// SetDefault makes a payment method the customer's default.
func (h *PaymentMethodHandler) SetDefault(c echo.Context) error {
	var req SetDefaultRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "customer_id and payment_method_id are required",
		})
	}

	if err := h.paymentMethods.SetDefault(c.Request().Context(), req.CustomerID, req.PaymentMethodID); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":           true,
		"customer_id":       req.CustomerID,
		"payment_method_id": req.PaymentMethodID,
	})
}

// Remove detaches a payment method from the customer.
func (h *PaymentMethodHandler) Remove(c echo.Context) error {
	customerID := c.QueryParam("customer_id")
	paymentMethodID := c.QueryParam("payment_method_id")
	if customerID == "" || paymentMethodID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "customer_id and payment_method_id query parameters are required",
		})
	}

	if err := h.paymentMethods.Remove(c.Request().Context(), customerID, paymentMethodID); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":           true,
		"payment_method_id": paymentMethodID,
	})
}
