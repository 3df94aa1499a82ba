package route

import (
	"vetmissions_backend/internals/features/contact/controller"
	"vetmissions_backend/internals/features/contact/service"
	"vetmissions_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
)

func ContactRoutes(api fiber.Router, mailer service.Mailer) {
	contactCtrl := controller.NewContactController(mailer)

	api.Post("/contact", middlewares.ContactRateLimiter(), contactCtrl.SendContact) // ✉️ relay to inbox
}
