package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nlekkerman/roomie/internals/features/users/auth/controller"
	"github.com/nlekkerman/roomie/internals/middlewares"
)

// AuthPublicRoutes: register/login endpoints, rate-limited.
func AuthPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/google", middlewares.LoginRateLimiter(), ctrl.GoogleLogin)
}

// AuthPrivateRoutes: endpoints that need a valid token.
func AuthPrivateRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/logout", ctrl.Logout)
}
