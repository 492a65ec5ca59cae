package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nlekkerman/roomie/internals/features/users/user/controller"
)

// UserPrivateRoutes: the signed-in user's own account and profile.
func UserPrivateRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	users := api.Group("/users")
	users.Get("/me", ctrl.GetMe)
	users.Put("/me", ctrl.UpdateMe)
	users.Put("/me/profile", ctrl.UpdateMyProfile)
	users.Post("/me/picture", ctrl.UploadProfilePicture)
}
