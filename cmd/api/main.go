package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/diegousa/website-backend/internal/config"
	"github.com/diegousa/website-backend/internal/handler"
	"github.com/diegousa/website-backend/internal/limiter"
	"github.com/diegousa/website-backend/internal/middleware"
	"github.com/diegousa/website-backend/internal/models"
	"github.com/diegousa/website-backend/internal/service"
	"github.com/diegousa/website-backend/pkg/email"
	"github.com/diegousa/website-backend/pkg/payment"
	"github.com/diegousa/website-backend/pkg/utils"
)

func main() {
	// Load .env; in production the environment comes from the host.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := config.Load()

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zlog.Sync()

	validator := utils.NewValidator()

	// Rate limiter: Redis-backed when configured, in-memory otherwise.
	var rl limiter.Limiter
	if cfg.RedisAddr != "" {
		rl = limiter.NewRedis(cfg.RedisAddr, cfg.RateLimit.Max, cfg.RateLimit.Window, zlog)
	} else {
		rl = limiter.NewMemory(cfg.RateLimit.Max, cfg.RateLimit.Window)
	}

	// Email notifications stay off unless Resend is configured.
	var mailer *email.EmailService
	if cfg.Email.ResendAPIKey != "" && cfg.Email.FromAddress != "" {
		mailer = email.NewEmailService(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.FromName, zlog)
	}
	sink := service.NewNotifySink(zlog, mailer, cfg.Email.LeadInbox)

	// Stripe service
	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)

	// Services
	deduper := service.NewEventDeduper(24 * time.Hour)
	paymentService := service.NewPaymentService(
		stripeService,
		models.DepositCatalog(),
		cfg.BaseURL,
		sink,
		deduper,
		validator,
		zlog,
	)
	contactService := service.NewContactService(sink, validator, zlog)

	// Handlers
	paymentHandler := handler.NewPaymentHandler(paymentService, cfg.Stripe.WebhookSecret, zlog)
	contactHandler := handler.NewContactHandler(contactService)
	staticHandler := handler.NewStaticHandler(cfg.PublicDir)

	// Router
	app := fiber.New(fiber.Config{
		BodyLimit: 120 * 1024,
	})

	app.Use(recover.New())
	app.Use(helmet.New(helmet.Config{
		ContentSecurityPolicy: "default-src 'self'; base-uri 'self'; object-src 'none'; " +
			"frame-ancestors 'none'; img-src 'self' data:; style-src 'self'; " +
			"script-src 'self'; form-action 'self'; upgrade-insecure-requests",
		ReferrerPolicy: "strict-origin-when-cross-origin",
	}))
	app.Use(logger.New())
	app.Use(middleware.RateLimit(rl))

	// Stripe webhook needs the raw body, so it is not under /api.
	app.Post("/webhook/stripe", paymentHandler.HandleStripeWebhook)

	api := app.Group("/api")
	api.Post("/create-checkout-session", paymentHandler.CreateCheckoutSession)
	api.Post("/contact", contactHandler.SubmitContact)
	api.Get("/deposits", paymentHandler.GetDeposits)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Static site last, catches everything else.
	app.Get("/*", staticHandler.Serve)

	zlog.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("base_url", cfg.BaseURL),
	)
	log.Fatal(app.Listen(":" + cfg.Port))
}
