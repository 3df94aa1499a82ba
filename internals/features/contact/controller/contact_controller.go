package controller

import (
	"vetmissions_backend/internals/features/contact/dto"
	"vetmissions_backend/internals/features/contact/service"
	helper "vetmissions_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type ContactController struct {
	Mailer service.Mailer
}

func NewContactController(mailer service.Mailer) *ContactController {
	return &ContactController{Mailer: mailer}
}

// ✉️ POST /api/contact
func (ctrl *ContactController) SendContact(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return invalid(c, []string{"invalid request body"})
	}
	req.Normalize()

	if err := helper.ValidateStruct(&req); err != nil {
		if ve, ok := helper.IsValidation(err); ok {
			return invalid(c, ve.Messages)
		}
		return helper.JsonServerError(c, err, "validate contact")
	}

	if err := ctrl.Mailer.Send(c.UserContext(), req); err != nil {
		log.Error().Err(err).Interface("request_id", c.Locals("reqid")).Msg("contact relay")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Email failed",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

func invalid(c *fiber.Ctx, messages []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Invalid contact request",
		"errors":  messages,
	})
}
