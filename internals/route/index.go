// file: internals/route/index.go
package routes

import (
	"time"

	"vetmissions_backend/internals/cache"
	"vetmissions_backend/internals/features/contact/service"
	routeDetails "vetmissions_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var startTime time.Time

// SetupRoutes mounts the health check, the content API and the contact form.
func SetupRoutes(app *fiber.App, db *gorm.DB, lc *cache.ListCache, mailer service.Mailer, env string) {
	startTime = time.Now()

	BaseRoutes(app, db, env)

	api := app.Group("/api")

	log.Info().Msg("mounting content routes")
	routeDetails.ContentRoutes(api, db, lc)

	log.Info().Msg("mounting contact route")
	routeDetails.ContactRoutes(api, mailer)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Route not found")
	})
}
