package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/carebridge/billing-service/internal/adapter/handler/http"
	"github.com/carebridge/billing-service/internal/config"
	"github.com/carebridge/billing-service/internal/domain/catalog"
	"github.com/carebridge/billing-service/internal/domain/gateway"
	"github.com/carebridge/billing-service/internal/infrastructure/database"
	"github.com/carebridge/billing-service/internal/middleware/auth"
	"github.com/carebridge/billing-service/internal/usecase"
	apperrors "github.com/carebridge/billing-service/pkg/errors"
	"github.com/carebridge/billing-service/pkg/logger"
)

// Secrets holds the resolved secret material the server needs at startup.
type Secrets struct {
	WebhookSecret string
	JWTSecret     string
}

type Server struct {
	config  *config.Config
	logger  *zap.Logger
	echo    *echo.Echo
	gateway gateway.PaymentGateway
	catalog *catalog.Catalog
	repos   *database.Repositories
	secrets Secrets
}

// requestValidator adapts validator/v10 to echo's Validator interface.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(cfg *config.Config, log *zap.Logger, gw gateway.PaymentGateway, cat *catalog.Catalog, repos *database.Repositories, secrets Secrets) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}
	e.HTTPErrorHandler = errorHandler(log)

	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config:  cfg,
		logger:  log,
		echo:    e,
		gateway: gw,
		catalog: cat,
		repos:   repos,
		secrets: secrets,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// errorHandler renders framework-level errors in the structured envelope.
// Unsupported verbs get a fixed explanatory 405; everything else is
// translated through the error code table.
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "An internal error occurred"

		if httpErr, ok := err.(*echo.HTTPError); ok {
			switch httpErr.Code {
			case http.StatusMethodNotAllowed:
				status = http.StatusMethodNotAllowed
				message = "This HTTP method is not supported on this route"
			case http.StatusNotFound:
				status = http.StatusNotFound
				message = "Route not found"
			default:
				var appErr *apperrors.AppError
				if apperrors.As(apperrors.FromHTTPError(httpErr), &appErr) {
					status = apperrors.ToHTTPStatus(appErr.Code())
					message = appErr.Message()
				}
			}
		} else {
			log.Error("Unhandled error reached HTTP layer",
				zap.String("path", c.Request().URL.Path),
				zap.Error(err))
		}

		_ = c.JSON(status, echo.Map{
			"success": false,
			"error":   message,
		})
	}
}

func (s *Server) setupRoutes() {
	checkoutService := usecase.NewCheckoutService(s.gateway, s.catalog, s.config.Service.ClientURL, s.logger)
	verificationService := usecase.NewVerificationService(s.gateway, s.catalog, s.logger)
	paymentMethodService := usecase.NewPaymentMethodService(s.gateway, s.logger)

	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, s.logger)
	verifyHandler := handlers.NewVerifyHandler(verificationService, s.logger)
	portalHandler := handlers.NewPortalHandler(s.gateway, s.config.Service.ClientURL, s.logger)
	paymentMethodHandler := handlers.NewPaymentMethodHandler(paymentMethodService, s.logger)
	plansHandler := handlers.NewPlansHandler(s.catalog, s.logger)
	configHandler := handlers.NewConfigHandler(s.config.Service.StripePublishableKey, s.config.Service.Environment)
	healthHandler := handlers.NewHealthHandler(s.gateway, s.config.Service.Name, s.logger)
	webhookHandler := handlers.NewWebhookHandler(s.logger, s.secrets.WebhookSecret, s.repos.Webhook)

	s.echo.GET("/health", healthHandler.Health)

	// The middleware guards the whole API group; pricing, client config, and
	// the checkout entry points stay public through the skip list.
	jwtConfig := auth.JWTConfig{
		Secret: s.secrets.JWTSecret,
		Logger: s.logger,
		SkipPaths: []string{
			"/api/v1/plans",
			"/api/v1/config",
			"/api/v1/checkout",
			"/api/v1/verify-session",
			"/api/v1/test-connection",
		},
	}

	v1 := s.echo.Group("/api/v1", auth.JWTMiddleware(jwtConfig))

	v1.GET("/plans", plansHandler.GetPlans)
	v1.GET("/config", configHandler.GetConfig)
	v1.POST("/checkout", checkoutHandler.CreateCheckout)
	v1.GET("/verify-session", verifyHandler.VerifySession)
	v1.GET("/test-connection", healthHandler.TestConnection)

	// Bearer-token routes.
	v1.POST("/portal", portalHandler.CreatePortalSession)
	v1.GET("/payment-methods", paymentMethodHandler.List)
	v1.POST("/payment-methods", paymentMethodHandler.SetDefault)
	v1.DELETE("/payment-methods", paymentMethodHandler.Remove)

	// Webhook route (outside API versioning)
	s.echo.POST("/webhook", webhookHandler.HandleWebhook)
}
