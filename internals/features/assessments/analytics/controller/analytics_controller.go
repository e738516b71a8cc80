// file: internals/features/assessments/analytics/controller/analytics_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"stepup_backend/internals/features/assessments/analytics/service"
	helper "stepup_backend/internals/helpers"
	authHelper "stepup_backend/internals/helpers/auth"
)

type AnalyticsController struct {
	DB *gorm.DB

	analytics *service.AnalyticsService
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db, analytics: service.NewAnalyticsService(db)}
}

/* =========================================================
   GRID — GET /api/u/assessment-grid
   Staff-only cross-student matrix.
========================================================= */

func (ctl *AnalyticsController) Grid(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !rc.CanViewAllPlacements() {
		return helper.Error(c, fiber.StatusForbidden, "Staff access required")
	}

	centreID, scoped := rc.ScopeCentre(parseUUIDQuery(c, "centre_id"))
	if !scoped {
		return helper.Error(c, fiber.StatusBadRequest, "A centre_id is required")
	}

	rows, err := ctl.analytics.ComputeGrid(c.UserContext(), centreID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Assessment grid fetched successfully", rows)
}

/* =========================================================
   SUMMARY — GET /api/u/assessment-analytics
========================================================= */

func (ctl *AnalyticsController) Summary(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !rc.CanViewAllPlacements() {
		return helper.Error(c, fiber.StatusForbidden, "Staff access required")
	}

	centreID, scoped := rc.ScopeCentre(parseUUIDQuery(c, "centre_id"))
	if !scoped {
		return helper.Error(c, fiber.StatusBadRequest, "A centre_id is required")
	}

	summary, err := ctl.analytics.ComputeSummary(c.UserContext(), centreID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Assessment analytics fetched successfully", summary)
}

func parseUUIDQuery(c *fiber.Ctx, key string) uuid.UUID {
	raw := c.Query(key)
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
