package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/carebridge/billing-service/internal/domain/gateway"
	"github.com/carebridge/billing-service/internal/middleware/auth"
)

type PortalHandler struct {
	gateway   gateway.PaymentGateway
	clientURL string
	logger    *zap.Logger
}

func NewPortalHandler(gw gateway.PaymentGateway, clientURL string, logger *zap.Logger) *PortalHandler {
	return &PortalHandler{
		gateway:   gw,
		clientURL: clientURL,
		logger:    logger,
	}
}

type CreatePortalRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	ReturnURL  string `json:"return_url"`
}

// CreatePortalSession opens a hosted billing portal session for the customer.
func (h *PortalHandler) CreatePortalSession(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return err
	}

	var req CreatePortalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "customer_id is required",
		})
	}
	if !gateway.ValidCustomerID(req.CustomerID) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Invalid customer id",
		})
	}

	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = h.clientURL + "/account/billing"
	}

	url, err := h.gateway.CreatePortalSession(c.Request().Context(), req.CustomerID, returnURL)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	h.logger.Info("Portal session created",
		zap.String("customer_id", req.CustomerID),
		zap.String("user_id", user.UserID))

	return c.JSON(http.StatusOK, echo.Map{
		"portal_url": url,
	})
}
