package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	propertyRoutes "github.com/nlekkerman/roomie/internals/features/properties/property/routes"
	tenancyRoutes "github.com/nlekkerman/roomie/internals/features/properties/tenancy/routes"
)

func RegisterPropertyPublicRoutes(api fiber.Router, db *gorm.DB) {
	propertyRoutes.PropertyPublicRoutes(api, db)
}

func RegisterPropertyPrivateRoutes(api fiber.Router, db *gorm.DB) {
	tenancyRoutes.TenancyPrivateRoutes(api, db)
}

func RegisterPropertyOwnerRoutes(api fiber.Router, db *gorm.DB) {
	propertyRoutes.PropertyOwnerRoutes(api, db)
	tenancyRoutes.TenancyOwnerRoutes(api, db)
}
