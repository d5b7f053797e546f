package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sefazor/gracex-storefront/internal/config"
	"github.com/sefazor/gracex-storefront/internal/handler"
	"github.com/sefazor/gracex-storefront/internal/middleware"
	"github.com/sefazor/gracex-storefront/internal/service"
	"github.com/sefazor/gracex-storefront/pkg/payment"
	"github.com/sefazor/gracex-storefront/pkg/utils"
)

type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Provider payment.Provider
}

type handlers struct {
	payment *handler.PaymentHandler
	webhook *handler.WebhookHandler
	admin   *handler.AdminHandler
	health  *handler.HealthHandler
}

// New wires services and handlers and returns a ready fiber app.
func New(deps Deps) (*fiber.App, error) {
	if deps.Config == nil || deps.Provider == nil {
		return nil, errors.New("server: config and provider are required")
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cfg := deps.Config

	tiers, err := service.NewTierRegistry(cfg.TierLookupKeys())
	if err != nil {
		return nil, fmt.Errorf("build tier registry: %w", err)
	}

	// Services
	checkoutService := service.NewCheckoutService(deps.Provider, tiers, cfg, log)
	webhookService := service.NewWebhookService(deps.Provider, cfg.WebhookSecret, log)
	adminService := service.NewAdminService(cfg, log)

	// Handlers
	h := handlers{
		payment: handler.NewPaymentHandler(checkoutService, utils.NewValidator()),
		webhook: handler.NewWebhookHandler(webhookService),
		admin:   handler.NewAdminHandler(adminService),
		health:  handler.NewHealthHandler(tiers, cfg.WebhookSecret != "", len(cfg.AdminKeys) > 0),
	}

	app := fiber.New(fiber.Config{
		AppName:               "gracex-storefront",
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		EnableIPValidation:    true,
		ErrorHandler:          errorHandler(log),
	})

	registerRoutes(app, cfg, log, h)
	return app, nil
}

// registerRoutes installs the pipeline in a fixed order:
//
//  1. recover, request id, access log, metrics. None of these touch the body.
//  2. POST /webhook. It reads the raw body for signature verification, so no
//     body-decoding middleware may be installed before it.
//  3. The form endpoints, which decode their own bodies and share a rate limit.
//  4. health, metrics and static files.
func registerRoutes(app *fiber.App, cfg *config.Config, log *zap.Logger, h handlers) {
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.Instrument())

	app.Post("/webhook", h.webhook.HandleStripeWebhook)

	formLimit := formLimiter(cfg.RateLimitMax)
	app.Post("/create-checkout-session", formLimit, h.payment.CreateCheckoutSession)
	app.Post("/create-portal-session", formLimit, h.payment.CreatePortalSession)
	app.Post("/activate-key", formLimit, h.admin.ActivateKey)

	app.Get("/healthz", h.health.Health)
	if cfg.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}
	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}
}

func formLimiter(max int) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		// c.IP() aliases the request buffer when read from the proxy header,
		// and the limiter keeps the key after the request ends.
		KeyGenerator: func(c *fiber.Ctx) string {
			return fiberutils.CopyString(c.IP())
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests")
		},
	})
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Internal Server Error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		} else {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}

		return c.Status(code).SendString(msg)
	}
}
