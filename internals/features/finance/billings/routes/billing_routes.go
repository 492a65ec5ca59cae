package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nlekkerman/roomie/internals/features/finance/billings/controller"
)

// BillingTenantRoutes: a tenant reading their own shares.
func BillingTenantRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPropertyBillingController(db)

	api.Get("/tenant-billings", ctrl.GetMyTenantBillings)
}

// BillingOwnerRoutes: creating billings and steering the fan-out.
func BillingOwnerRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPropertyBillingController(db)

	billings := api.Group("/property-billings")
	billings.Post("/", ctrl.CreatePropertyBilling)
	billings.Get("/:id", ctrl.GetPropertyBillingByID)
	billings.Put("/:id", ctrl.UpdatePropertyBilling)
	billings.Delete("/:id", ctrl.DeletePropertyBilling)
	billings.Post("/:id/allocate", ctrl.AllocatePropertyBilling)

	api.Get("/properties/:propertyId/billings", ctrl.GetPropertyBillings)
}
