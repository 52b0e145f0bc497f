package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/carebridge/billing-service/internal/usecase"
)

type VerifyHandler struct {
	verification *usecase.VerificationService
	logger       *zap.Logger
}

func NewVerifyHandler(verification *usecase.VerificationService, logger *zap.Logger) *VerifyHandler {
	return &VerifyHandler{
		verification: verification,
		logger:       logger,
	}
}

// VerifySession checks a completed checkout session for the success page.
func (h *VerifyHandler) VerifySession(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "session_id query parameter is required",
		})
	}

	result, err := h.verification.VerifySession(c.Request().Context(), sessionID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, result)
}
