package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billingRoutes "github.com/nlekkerman/roomie/internals/features/finance/billings/routes"
	cashflowRoutes "github.com/nlekkerman/roomie/internals/features/finance/cashflow/routes"
)

func RegisterFinancePrivateRoutes(api fiber.Router, db *gorm.DB) {
	billingRoutes.BillingTenantRoutes(api, db)
	cashflowRoutes.CashFlowPrivateRoutes(api, db)
}

func RegisterFinanceOwnerRoutes(api fiber.Router, db *gorm.DB) {
	billingRoutes.BillingOwnerRoutes(api, db)
}
