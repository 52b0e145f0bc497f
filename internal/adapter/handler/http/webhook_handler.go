package http

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	"github.com/carebridge/billing-service/internal/adapter/repository"
	"github.com/carebridge/billing-service/internal/domain/model"
)

type WebhookHandler struct {
	logger        *zap.Logger
	webhookSecret string
	webhookRepo   repository.WebhookRepository
}

func NewWebhookHandler(logger *zap.Logger, webhookSecret string, webhookRepo repository.WebhookRepository) *WebhookHandler {
	return &WebhookHandler{
		logger:        logger,
		webhookSecret: webhookSecret,
		webhookRepo:   webhookRepo,
	}
}

// HandleWebhook verifies the event signature, persists the event for audit,
// and acknowledges. Subscription state lives at the gateway, so processing
// here is record-and-log.
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("Error reading request body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error reading request body"})
	}

	sig := c.Request().Header.Get("Stripe-Signature")

	event, err := webhook.ConstructEventWithOptions(
		body,
		sig,
		h.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		h.logger.Error("Webhook signature verification failed",
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Webhook signature verification failed",
		})
	}

	h.logger.Info("Webhook event received",
		zap.String("type", string(event.Type)),
		zap.String("id", event.ID),
		zap.Time("created", time.Unix(event.Created, 0)),
	)

	// The gateway retries deliveries; an already-completed event is
	// acknowledged without reprocessing.
	if existing, err := h.webhookRepo.GetEvent(c.Request().Context(), event.ID); err == nil &&
		existing != nil && existing.Status == model.WebhookStatusCompleted {
		h.logger.Info("Duplicate webhook event acknowledged",
			zap.String("event_id", event.ID))
		return c.JSON(http.StatusOK, echo.Map{"received": true})
	}

	if err := h.webhookRepo.SaveEvent(c.Request().Context(), event.ID, string(event.Type), event.Data.Raw); err != nil {
		h.logger.Error("Failed to persist webhook event",
			zap.String("event_id", event.ID),
			zap.Error(err))
		// Still acknowledge; the gateway retries on non-2xx and the event
		// data is recoverable from the dashboard.
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			h.logger.Error("Error parsing checkout session", zap.Error(err))
			return h.failEvent(c, event.ID, err)
		}
		h.logger.Info("Checkout session completed",
			zap.String("session_id", session.ID),
			zap.String("customer_email", session.CustomerEmail),
			zap.String("payment_status", string(session.PaymentStatus)),
		)

	case stripe.EventTypeCustomerSubscriptionCreated,
		stripe.EventTypeCustomerSubscriptionUpdated,
		stripe.EventTypeCustomerSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			h.logger.Error("Error parsing subscription", zap.Error(err))
			return h.failEvent(c, event.ID, err)
		}
		h.logger.Info("Subscription lifecycle event",
			zap.String("event_type", string(event.Type)),
			zap.String("subscription_id", sub.ID),
			zap.String("status", string(sub.Status)),
		)

	case stripe.EventTypeInvoicePaymentSucceeded,
		stripe.EventTypeInvoicePaymentFailed:
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			h.logger.Error("Error parsing invoice", zap.Error(err))
			return h.failEvent(c, event.ID, err)
		}
		h.logger.Info("Invoice payment event",
			zap.String("event_type", string(event.Type)),
			zap.String("invoice_id", invoice.ID),
			zap.Int64("amount_due", invoice.AmountDue),
		)

	default:
		h.logger.Debug("Unhandled webhook event type",
			zap.String("type", string(event.Type)))
	}

	if err := h.webhookRepo.MarkProcessed(c.Request().Context(), event.ID); err != nil {
		h.logger.Warn("Failed to mark webhook event processed",
			zap.String("event_id", event.ID),
			zap.Error(err))
	}

	return c.JSON(http.StatusOK, echo.Map{"received": true})
}

func (h *WebhookHandler) failEvent(c echo.Context, eventID string, cause error) error {
	if err := h.webhookRepo.MarkFailed(c.Request().Context(), eventID, cause); err != nil {
		h.logger.Warn("Failed to mark webhook event failed",
			zap.String("event_id", eventID),
			zap.Error(err))
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error parsing webhook payload"})
}
