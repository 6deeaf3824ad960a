package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/diegousa/website-backend/internal/models"
	"github.com/diegousa/website-backend/internal/service"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	webhookSecret  string
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService *service.PaymentService, webhookSecret string, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		webhookSecret:  webhookSecret,
		logger:         logger,
	}
}

func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	var req models.CreateCheckoutSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body."))
	}

	resp, err := h.paymentService.CreateCheckoutSession(req.PlanID, req.Email)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(verr.Message))
		}
		// Provider detail was already logged server-side.
		return c.Status(fiber.StatusInternalServerError).
			JSON(models.ErrorResponse("Unable to create checkout session."))
	}

	return c.JSON(resp)
}

// HandleStripeWebhook reads the raw body before any JSON parsing; the
// signature covers the exact bytes Stripe sent.
func (h *PaymentHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	if h.webhookSecret == "" {
		// Fail closed: without a secret nothing can be verified.
		return c.Status(fiber.StatusInternalServerError).SendString("Webhook secret missing.")
	}

	payload := c.Body()
	sigHeader := c.Get("Stripe-Signature")

	if err := h.paymentService.ProcessWebhook(payload, sigHeader); err != nil {
		if errors.Is(err, service.ErrSignature) {
			return c.Status(fiber.StatusBadRequest).SendString("Webhook Error: invalid signature.")
		}
		h.logger.Error("webhook processing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("Webhook processing failed.")
	}

	return c.JSON(models.ReceivedResponse())
}

func (h *PaymentHandler) GetDeposits(c *fiber.Ctx) error {
	return c.JSON(h.paymentService.Deposits())
}
