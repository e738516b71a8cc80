// file: internals/route/details/user_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "stepup_backend/internals/features/users/students/controller"
)

/* =========================================================
   STAFF — /api/a (student enrolment)
========================================================= */

func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	students := studentController.NewStudentController(db)

	r.Get("/students", students.List)
	r.Get("/students/:id", students.GetByID)
	r.Post("/students", students.Create)
	r.Patch("/students/:id", students.Patch)
}
