package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nlekkerman/roomie/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain for the whole app.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
