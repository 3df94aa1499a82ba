package details

import (
	contactRoute "vetmissions_backend/internals/features/contact/route"
	"vetmissions_backend/internals/features/contact/service"

	"github.com/gofiber/fiber/v2"
)

func ContactRoutes(api fiber.Router, mailer service.Mailer) {
	contactRoute.ContactRoutes(api, mailer)
}
