package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/gracex-storefront/internal/models"
	"github.com/sefazor/gracex-storefront/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) ActivateKey(c *fiber.Ctx) error {
	var req models.ActivateKeyRequest
	if err := parseBody(c, &req); err != nil {
		return sendError(c, err)
	}

	redirectURL, err := h.adminService.Activate(req.AdminKey)
	if err != nil {
		return sendError(c, err)
	}

	return c.Redirect(redirectURL, fiber.StatusSeeOther)
}
