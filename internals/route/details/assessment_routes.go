// file: internals/route/details/assessment_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	analyticsController "stepup_backend/internals/features/assessments/analytics/controller"
	historyController "stepup_backend/internals/features/assessments/history/controller"
	levelController "stepup_backend/internals/features/assessments/levels/controller"
	placementController "stepup_backend/internals/features/assessments/placements/controller"
	promotionController "stepup_backend/internals/features/assessments/promotions/controller"
	"stepup_backend/internals/middlewares"
)

/* =========================================================
   PUBLIC — /api/public
   The age ladder is readable without a token.
========================================================= */

func AssessmentPublicRoutes(r fiber.Router, db *gorm.DB) {
	levels := levelController.NewAgeLevelController(db)

	r.Get("/assessment-levels", levels.List)
}

/* =========================================================
   USER — /api/u (any authenticated role)
========================================================= */

func AssessmentUserRoutes(r fiber.Router, db *gorm.DB) {
	placements := placementController.NewPlacementController(db)
	tests := promotionController.NewPromotionTestController(db)
	attempts := promotionController.NewPromotionAttemptController(db)
	analytics := analyticsController.NewAnalyticsController(db)
	history := historyController.NewHistoryController(db)

	r.Get("/student-placements", placements.List)
	r.Post("/student-placements", placements.Create) // staff gate lives in the service
	r.Get("/student-placements/:id", placements.GetByID)
	r.Get("/student-placements/:id/lesson-completions", placements.ListCompletions)
	r.Post("/student-placements/:id/lesson-completions",
		middlewares.SubmissionRateLimiter(), placements.RecordCompletion)

	r.Get("/promotion-tests", tests.List)
	r.Get("/promotion-tests/:id", tests.GetByID)
	r.Post("/promotion-tests/:id/attempts",
		middlewares.SubmissionRateLimiter(), attempts.Submit)
	r.Get("/promotion-attempts", attempts.List)

	r.Get("/assessment-grid", analytics.Grid)
	r.Get("/assessment-analytics", analytics.Summary)
	r.Get("/assessment-history", history.List)
}

/* =========================================================
   ADMIN — /api/a (teacher/admin/owner via role middleware)
========================================================= */

func AssessmentAdminRoutes(r fiber.Router, db *gorm.DB) {
	levels := levelController.NewAgeLevelController(db)
	lessons := levelController.NewLessonController(db)
	placements := placementController.NewPlacementController(db)
	tests := promotionController.NewPromotionTestController(db)
	attempts := promotionController.NewPromotionAttemptController(db)

	r.Post("/assessment-levels", levels.Create)
	r.Patch("/assessment-levels/:id", levels.Patch)
	r.Post("/assessment-levels/:id/lessons", lessons.Create)

	r.Post("/student-placements/:id/override", placements.Override)

	r.Get("/promotion-tests", tests.List)
	r.Post("/promotion-tests", tests.Create)
	r.Patch("/promotion-tests/:id", tests.Patch)
	r.Post("/promotion-attempts/:id/grade", attempts.Grade)
}
