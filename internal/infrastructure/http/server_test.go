package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/carebridge/billing-service/internal/config"
	"github.com/carebridge/billing-service/internal/domain/catalog"
	"github.com/carebridge/billing-service/internal/domain/gateway"
	"github.com/carebridge/billing-service/internal/infrastructure/database"
)

// noopGateway satisfies the gateway contract for routing tests that never
// reach a provider call.
type noopGateway struct {
	gateway.PaymentGateway
}

func newTestServer() *Server {
	cfg := &config.Config{
		Service: config.ServiceConfig{
			Name:        "billing-service",
			Environment: "test",
			ClientURL:   "https://app.carebridge.example",
		},
	}

	s := NewServer(cfg, zap.NewNop(), noopGateway{}, catalog.New(), &database.Repositories{}, Secrets{
		WebhookSecret: "whsec_test",
		JWTSecret:     "test-secret",
	})
	s.setupRoutes()
	return s
}

func TestServer_MethodNotAllowed(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPut, "/api/v1/checkout", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "This HTTP method is not supported on this route")
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestServer_RouteNotFound(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")
}

func TestServer_ProtectedRouteRequiresToken(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payment-methods", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_AUTH_HEADER")
}

func TestServer_PublicRoutesSkipAuthentication(t *testing.T) {
	s := newTestServer()

	for _, path := range []string{"/api/v1/plans", "/api/v1/config"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		s.echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestErrorHandler_TranslatesHTTPErrors(t *testing.T) {
	e := echo.New()
	handle := errorHandler(zap.NewNop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/v1/portal", nil), rec)

	handle(echo.NewHTTPError(http.StatusUnauthorized, "Authentication required"), c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authentication required")
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestErrorHandler_OpaqueInternalError(t *testing.T) {
	e := echo.New()
	handle := errorHandler(zap.NewNop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil), rec)

	handle(assert.AnError, c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "An internal error occurred")
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
