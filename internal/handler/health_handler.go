package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/gracex-storefront/internal/models"
	"github.com/sefazor/gracex-storefront/internal/service"
)

type HealthHandler struct {
	tiers            *service.TierRegistry
	webhookVerifying bool
	adminActivation  bool
}

func NewHealthHandler(tiers *service.TierRegistry, webhookVerifying, adminActivation bool) *HealthHandler {
	return &HealthHandler{
		tiers:            tiers,
		webhookVerifying: webhookVerifying,
		adminActivation:  adminActivation,
	}
}

// Health reports the configured tiers and which optional features are on.
// Secrets are never echoed.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(models.HealthData{
		Tiers:             h.tiers.All(),
		WebhookVerifying:  h.webhookVerifying,
		AdminActivationOn: h.adminActivation,
	}, "ok"))
}
