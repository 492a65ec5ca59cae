package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nlekkerman/roomie/internals/constants"
	"github.com/nlekkerman/roomie/internals/middlewares/auth"
	"github.com/nlekkerman/roomie/internals/route/details"
)

// SetupRoutes wires the three route tiers:
//
//	/api    — public (browse, register, login)
//	/api/u  — any signed-in user
//	/api/o  — property owners and house supervisors
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app)

	api := app.Group("/api")
	details.RegisterUserPublicRoutes(api, db)
	details.RegisterPropertyPublicRoutes(api, db)

	private := app.Group("/api/u", auth.AuthMiddleware(db))
	details.RegisterUserPrivateRoutes(private, db)
	details.RegisterPropertyPrivateRoutes(private, db)
	details.RegisterFinancePrivateRoutes(private, db)

	owner := app.Group("/api/o",
		auth.AuthMiddleware(db),
		auth.OnlyRoles(
			constants.RoleErrorSupervisor("property management"),
			constants.RolePropertyOwner,
			constants.RoleHouseSupervisor,
		),
	)
	details.RegisterPropertyOwnerRoutes(owner, db)
	details.RegisterFinanceOwnerRoutes(owner, db)
}
