// file: internals/features/progress/xp/controller/xp_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"stepup_backend/internals/features/progress/xp/model"
	helper "stepup_backend/internals/helpers"
	authHelper "stepup_backend/internals/helpers/auth"
)

type XPController struct {
	DB *gorm.DB
}

func NewXPController(db *gorm.DB) *XPController {
	return &XPController{DB: db}
}

/* =========================================================
   LIST — GET /api/u/xp-logs?student_id=
   Learners and parents read their own ledger; staff any
   student in their centre. Responds with the running total
   alongside the page of log rows.
========================================================= */

func (ctl *XPController) List(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	studentID, err := uuid.Parse(c.Query("student_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "A valid student_id is required")
	}

	var student struct {
		StudentCentreID     uuid.UUID
		StudentUserID       uuid.UUID
		StudentParentUserID *uuid.UUID
	}
	if err := ctl.DB.WithContext(c.UserContext()).Table("students").
		Select("student_centre_id, student_user_id, student_parent_user_id").
		Where("student_id = ?", studentID).
		First(&student).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Student not found")
	}
	if !rc.SameTenant(student.StudentCentreID) {
		return helper.Error(c, fiber.StatusForbidden, "Student belongs to another centre")
	}
	if !rc.IsStaff() &&
		student.StudentUserID != rc.UserID &&
		(student.StudentParentUserID == nil || *student.StudentParentUserID != rc.UserID) {
		return helper.Error(c, fiber.StatusForbidden, "You may only view your own XP")
	}

	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctl.DB.WithContext(c.UserContext()).Model(&model.XPLogModel{}).
		Where("xp_log_student_id = ?", studentID).
		Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count XP logs")
	}

	var rows []model.XPLogModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("xp_log_student_id = ?", studentID).
		Order("xp_log_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch XP logs")
	}

	var runningTotal model.XPTotalModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&runningTotal, "xp_total_student_id = ?", studentID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch XP total")
		}
		runningTotal.XPTotalStudentID = studentID
	}

	return helper.SuccessWithPagination(c, "XP logs fetched successfully", fiber.Map{
		"total_points": runningTotal.XPTotalPoints,
		"logs":         rows,
	}, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
