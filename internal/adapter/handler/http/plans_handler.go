package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/carebridge/billing-service/internal/domain/catalog"
)

type PlansHandler struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

func NewPlansHandler(cat *catalog.Catalog, logger *zap.Logger) *PlansHandler {
	return &PlansHandler{
		catalog: cat,
		logger:  logger,
	}
}

// GetPlans returns the pricing catalog for the public pricing page.
func (h *PlansHandler) GetPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"plans": h.catalog.Tiers(),
		"count": len(h.catalog.Tiers()),
	})
}
