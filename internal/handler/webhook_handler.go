package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/gracex-storefront/internal/apperrors"
	"github.com/sefazor/gracex-storefront/internal/metrics"
	"github.com/sefazor/gracex-storefront/internal/service"
)

const webhookBodyLimit = 1024 * 1024 // 1 MiB

type WebhookHandler struct {
	webhookService *service.WebhookService
}

func NewWebhookHandler(webhookService *service.WebhookService) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
	}
}

// HandleStripeWebhook must see the body exactly as Stripe signed it, so it reads
// the raw request bytes and nothing upstream may decode them.
func (h *WebhookHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	start := time.Now()
	eventType := "unknown"
	status := fiber.StatusOK
	defer func() {
		metrics.WebhookRequestsTotal.WithLabelValues(eventType, strconv.Itoa(status)).Inc()
		metrics.WebhookDuration.WithLabelValues(eventType).Observe(time.Since(start).Seconds())
	}()

	payload := c.Request().Body()
	if len(payload) > webhookBodyLimit {
		status = fiber.StatusRequestEntityTooLarge
		return c.Status(status).SendString("Webhook payload too large")
	}

	event, err := h.webhookService.HandleEvent(payload, c.Get("Stripe-Signature"))
	if err != nil {
		status = apperrors.StatusOf(err)
		return sendError(c, err)
	}
	// Unsigned bodies must not mint new label values.
	if event.Verified {
		eventType = event.Type
	} else {
		eventType = metrics.UnverifiedEventType
	}

	return c.Status(fiber.StatusOK).Send(nil)
}
