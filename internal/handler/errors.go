package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/gracex-storefront/internal/apperrors"
)

// sendError writes err as plain text with its mapped status. Upstream messages
// are passed through unchanged.
func sendError(c *fiber.Ctx, err error) error {
	return c.Status(apperrors.StatusOf(err)).SendString(err.Error())
}

// parseBody tolerates an empty body or an unsupported content type, so missing
// fields surface as the endpoint's own validation error.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	err := c.BodyParser(out)
	if errors.Is(err, fiber.ErrUnprocessableEntity) {
		return nil
	}
	if err != nil {
		return apperrors.InvalidInput("Invalid request body")
	}
	return nil
}
