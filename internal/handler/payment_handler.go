package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/gracex-storefront/internal/apperrors"
	"github.com/sefazor/gracex-storefront/internal/models"
	"github.com/sefazor/gracex-storefront/internal/service"
	"github.com/sefazor/gracex-storefront/pkg/utils"
)

type PaymentHandler struct {
	checkoutService *service.CheckoutService
	validator       *utils.Validator
}

func NewPaymentHandler(checkoutService *service.CheckoutService, validator *utils.Validator) *PaymentHandler {
	return &PaymentHandler{
		checkoutService: checkoutService,
		validator:       validator,
	}
}

func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	var req models.CreateCheckoutSessionRequest
	if err := parseBody(c, &req); err != nil {
		return sendError(c, err)
	}

	checkoutURL, err := h.checkoutService.CreateCheckoutSession(c.UserContext(), req.RawTier())
	if err != nil {
		return sendError(c, err)
	}

	return c.Redirect(checkoutURL, fiber.StatusSeeOther)
}

func (h *PaymentHandler) CreatePortalSession(c *fiber.Ctx) error {
	var req models.CreatePortalSessionRequest
	if err := parseBody(c, &req); err != nil {
		return sendError(c, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return sendError(c, apperrors.InvalidInput("Missing session_id"))
	}

	portalURL, err := h.checkoutService.CreatePortalSession(c.UserContext(), req.SessionID)
	if err != nil {
		return sendError(c, err)
	}

	return c.Redirect(portalURL, fiber.StatusSeeOther)
}
