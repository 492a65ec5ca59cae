package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nlekkerman/roomie/internals/features/properties/property/controller"
)

// PropertyPublicRoutes: anyone can browse listings.
func PropertyPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPropertyController(db)

	properties := api.Group("/properties")
	properties.Get("/", ctrl.GetProperties)
	properties.Get("/:id", ctrl.GetPropertyByID)
}

// PropertyOwnerRoutes: owner-only management.
func PropertyOwnerRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPropertyController(db)

	properties := api.Group("/properties")
	properties.Get("/", ctrl.GetMyProperties)
	properties.Post("/", ctrl.CreateProperty)
	properties.Put("/:id", ctrl.UpdateProperty)
	properties.Delete("/:id", ctrl.DeleteProperty)
	properties.Post("/:id/images", ctrl.UploadPropertyImages)
}
