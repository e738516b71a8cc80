// file: internals/features/assessments/history/controller/history_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"stepup_backend/internals/features/assessments/history/model"
	helper "stepup_backend/internals/helpers"
	authHelper "stepup_backend/internals/helpers/auth"
)

type HistoryController struct {
	DB *gorm.DB
}

func NewHistoryController(db *gorm.DB) *HistoryController {
	return &HistoryController{DB: db}
}

/* =========================================================
   LIST — GET /api/u/assessment-history
   Staff see the centre audit trail; learners and parents
   only their own family's entries.
========================================================= */

func (ctl *HistoryController) List(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.AssessmentHistoryModel{})
	if centreID, scoped := rc.ScopeCentre(uuid.Nil); scoped {
		q = q.Where("history_centre_id = ?", centreID)
	}

	if rc.CanViewAllPlacements() {
		if raw := c.Query("student_id"); raw != "" {
			studentID, err := uuid.Parse(raw)
			if err != nil {
				return helper.Error(c, fiber.StatusBadRequest, "Invalid student_id")
			}
			q = q.Where("history_student_id = ?", studentID)
		}
		if raw := c.Query("placement_id"); raw != "" {
			placementID, err := uuid.Parse(raw)
			if err != nil {
				return helper.Error(c, fiber.StatusBadRequest, "Invalid placement_id")
			}
			q = q.Where("history_placement_id = ?", placementID)
		}
	} else {
		q = q.Where(
			"history_student_id IN (?)",
			ctl.DB.Table("students").
				Select("student_id").
				Where("student_user_id = ? OR student_parent_user_id = ?", rc.UserID, rc.UserID),
		)
	}

	if changeType := c.Query("change_type"); changeType != "" {
		t := model.HistoryChangeType(changeType)
		if !t.Valid() {
			return helper.Error(c, fiber.StatusBadRequest, "Unknown change type")
		}
		q = q.Where("history_change_type = ?", t)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count history entries")
	}

	var rows []model.AssessmentHistoryModel
	if err := q.Order("history_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch history entries")
	}

	return helper.SuccessWithPagination(c, "Assessment history fetched successfully", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
