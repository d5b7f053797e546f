package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/gracex-storefront/internal/metrics"
)

// Instrument counts requests by matched route pattern so ids in paths do not
// explode label cardinality.
func Instrument() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		metrics.HTTPRequestsTotal.
			WithLabelValues(c.Method(), route, strconv.Itoa(responseStatus(c, err))).
			Inc()
		return err
	}
}
