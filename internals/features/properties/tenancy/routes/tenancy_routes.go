package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nlekkerman/roomie/internals/features/properties/tenancy/controller"
)

// TenancyPrivateRoutes: any signed-in user acting as a tenant.
func TenancyPrivateRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTenancyController(db)

	requests := api.Group("/tenancy-requests")
	requests.Post("/", ctrl.CreateTenancyRequest)
	requests.Get("/", ctrl.GetMyTenancyRequests)
}

// TenancyOwnerRoutes: the owner's side of the move-in flow.
func TenancyOwnerRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTenancyController(db)

	requests := api.Group("/tenancy-requests")
	requests.Get("/", ctrl.GetIncomingTenancyRequests)
	requests.Patch("/:id", ctrl.ResolveTenancyRequest)

	properties := api.Group("/properties")
	properties.Get("/:propertyId/tenants", ctrl.GetCurrentTenants)
	properties.Post("/:propertyId/move-out", ctrl.MoveOutTenant)
}
