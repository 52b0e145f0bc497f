package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	domainErrors "github.com/carebridge/billing-service/internal/domain/errors"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, respondError(c, zap.NewNop(), err))
	return rec
}

func TestRespondError_OwnershipIsForbidden(t *testing.T) {
	rec := respond(t, domainErrors.ErrPaymentMethodNotOwned)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not belong")
}

func TestRespondError_StateSentinelsAreBadRequest(t *testing.T) {
	for _, sentinel := range []error{
		domainErrors.ErrUnknownTier,
		domainErrors.ErrSessionNotComplete,
		domainErrors.ErrLastPaymentMethod,
	} {
		rec := respond(t, sentinel)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%v", sentinel)
	}
}

func TestRespondError_WrappedSentinel(t *testing.T) {
	rec := respond(t, fmt.Errorf("%w: platinum", domainErrors.ErrUnknownTier))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "platinum")
}

func TestRespondError_UnknownErrorIsOpaque500(t *testing.T) {
	rec := respond(t, fmt.Errorf("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")
}
