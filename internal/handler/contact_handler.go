package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/diegousa/website-backend/internal/models"
	"github.com/diegousa/website-backend/internal/service"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

func (h *ContactHandler) SubmitContact(c *fiber.Ctx) error {
	var req models.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body."))
	}

	if err := h.contactService.SubmitLead(req); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(verr.Message))
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(models.ErrorResponse("Unable to submit message."))
	}

	return c.JSON(models.OKResponse())
}
