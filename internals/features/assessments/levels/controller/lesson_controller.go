package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"stepup_backend/internals/features/assessments/levels/dto"
	"stepup_backend/internals/features/assessments/levels/model"
	helper "stepup_backend/internals/helpers"
	authHelper "stepup_backend/internals/helpers/auth"
)

type LessonController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewLessonController(db *gorm.DB) *LessonController {
	return &LessonController{DB: db, Validate: validator.New()}
}

// 🟢 POST /api/a/assessment-levels/:id/lessons (admin)
func (ctrl *LessonController) Create(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !rc.CanManageCatalog() {
		return helper.Error(c, fiber.StatusForbidden, "Only admins may manage the catalog")
	}

	levelID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid level id")
	}

	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	subject := model.AssessmentSubject(req.Subject)
	if !subject.Valid() {
		return helper.Error(c, fiber.StatusBadRequest, "Unknown subject")
	}

	var level model.AgeLevelModel
	if err := ctrl.DB.First(&level, "age_level_id = ?", levelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Assessment level not found")
		}
		log.Printf("[ERROR] load age level: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load assessment level")
	}

	// lesson_number is unique within (level, subject) and capped at 25.
	var clash int64
	if err := ctrl.DB.Model(&model.LessonModel{}).
		Where("lesson_age_level_id = ? AND lesson_subject = ? AND lesson_number = ?",
			levelID, subject, req.LessonNumber).
		Count(&clash).Error; err != nil {
		log.Printf("[ERROR] lesson clash check: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create lesson")
	}
	if clash > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "That lesson number already exists for this level and subject")
	}

	lesson := model.LessonModel{
		LessonAgeLevelID:       levelID,
		LessonSubject:          subject,
		LessonNumber:           req.LessonNumber,
		LessonTitle:            req.Title,
		LessonDifficultyScore:  req.DifficultyScore,
		LessonEstimatedMinutes: req.EstimatedMinutes,
	}
	if err := ctrl.DB.Create(&lesson).Error; err != nil {
		log.Printf("[ERROR] create lesson: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create lesson")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Lesson created", lesson)
}
