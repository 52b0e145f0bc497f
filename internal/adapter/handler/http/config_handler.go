package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type ConfigHandler struct {
	publishableKey string
	environment    string
}

func NewConfigHandler(publishableKey, environment string) *ConfigHandler {
	return &ConfigHandler{
		publishableKey: publishableKey,
		environment:    environment,
	}
}

// GetConfig serves the public client configuration. Only the publishable key
// is exposed here; the secret key never leaves the server.
func (h *ConfigHandler) GetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"publishable_key": h.publishableKey,
		"environment":     h.environment,
	})
}
