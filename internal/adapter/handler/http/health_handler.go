package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/carebridge/billing-service/internal/domain/gateway"
)

type HealthHandler struct {
	gateway gateway.PaymentGateway
	service string
	logger  *zap.Logger
}

func NewHealthHandler(gw gateway.PaymentGateway, service string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		gateway: gw,
		service: service,
		logger:  logger,
	}
}

// Health is the liveness probe.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": h.service,
	})
}

// TestConnection verifies gateway credentials with a lightweight API call.
func (h *HealthHandler) TestConnection(c echo.Context) error {
	if err := h.gateway.Ping(c.Request().Context()); err != nil {
		h.logger.Error("Gateway connection check failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"success": false,
			"error":   "Payment gateway is unreachable",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"gateway": "connected",
	})
}
