// file: internals/route/details/home_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationController "stepup_backend/internals/features/home/notifications/controller"
	xpController "stepup_backend/internals/features/progress/xp/controller"
)

/* =========================================================
   USER — /api/u (notifications + XP ledger)
========================================================= */

func HomeUserRoutes(r fiber.Router, db *gorm.DB) {
	notifications := notificationController.NewNotificationController(db)
	xp := xpController.NewXPController(db)

	r.Get("/notifications", notifications.ListMine)
	r.Patch("/notifications/:id/read", notifications.MarkRead)

	r.Get("/xp-logs", xp.List)
}
