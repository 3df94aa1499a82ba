package middlewares

import (
	"time"

	"vetmissions_backend/internals/configs"
	"vetmissions_backend/internals/middlewares/logger"

	"github.com/gofiber/fiber/v2"
)

const requestTimeout = 5 * time.Second

func SetupMiddlewares(app *fiber.App, cfg *configs.Config) {
	app.Use(RecoveryMiddleware(cfg.Environment == "development"))
	app.Use(RequestContext(requestTimeout))
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware(cfg.CorsOrigins))
	app.Use("/api", GlobalRateLimiter())
}
