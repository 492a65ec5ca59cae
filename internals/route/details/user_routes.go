package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoutes "github.com/nlekkerman/roomie/internals/features/users/auth/routes"
	userRoutes "github.com/nlekkerman/roomie/internals/features/users/user/routes"
)

func RegisterUserPublicRoutes(api fiber.Router, db *gorm.DB) {
	authRoutes.AuthPublicRoutes(api, db)
}

func RegisterUserPrivateRoutes(api fiber.Router, db *gorm.DB) {
	authRoutes.AuthPrivateRoutes(api, db)
	userRoutes.UserPrivateRoutes(api, db)
}
