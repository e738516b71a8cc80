// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stepup_backend/internals/constants"
	authMiddleware "stepup_backend/internals/middlewares/auth"
	routeDetails "stepup_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up USER group (JWT)...")
	user := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	// ===================== STAFF =====================
	log.Println("[INFO] Setting up STAFF group (JWT + role check)...")
	staff := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(
			constants.RoleErrorStaff("assessment administration"),
			constants.StaffRoles...,
		),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting assessment routes...")
	routeDetails.AssessmentPublicRoutes(public, db)
	routeDetails.AssessmentUserRoutes(user, db)
	routeDetails.AssessmentAdminRoutes(staff, db)

	log.Println("[INFO] Mounting home routes...")
	routeDetails.HomeUserRoutes(user, db)

	log.Println("[INFO] Mounting student routes...")
	routeDetails.StudentAdminRoutes(staff, db)
}
