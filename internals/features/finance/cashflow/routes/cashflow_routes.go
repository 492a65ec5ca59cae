package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nlekkerman/roomie/internals/features/finance/cashflow/controller"
)

// CashFlowPrivateRoutes: every signed-in user manages their own entries.
func CashFlowPrivateRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserCashFlowController(db)

	flows := api.Group("/cash-flows")
	flows.Get("/", ctrl.GetMyCashFlows)
	flows.Post("/", ctrl.CreateCashFlow)
	flows.Patch("/:id/pay", ctrl.MarkCashFlowPaid)
	flows.Patch("/:id/unpay", ctrl.MarkCashFlowPending)
	flows.Delete("/:id", ctrl.DeleteCashFlow)
}
