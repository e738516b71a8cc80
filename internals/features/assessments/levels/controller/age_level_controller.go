package controller

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"stepup_backend/internals/features/assessments/levels/dto"
	"stepup_backend/internals/features/assessments/levels/model"
	helper "stepup_backend/internals/helpers"
	authHelper "stepup_backend/internals/helpers/auth"
)

type AgeLevelController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAgeLevelController(db *gorm.DB) *AgeLevelController {
	return &AgeLevelController{DB: db, Validate: validator.New()}
}

// 🟢 GET /api/public/assessment-levels?age_year=&subject=
// Public catalog listing, ordered up the ladder.
func (ctrl *AgeLevelController) List(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.AgeLevelModel{}).
		Where("age_level_is_active = TRUE").
		Order("age_level_year ASC, age_level_month ASC")

	if yearStr := strings.TrimSpace(c.Query("age_year")); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "age_year must be a number")
		}
		q = q.Where("age_level_year = ?", year)
	}

	var levels []model.AgeLevelModel
	if err := q.Find(&levels).Error; err != nil {
		log.Printf("[ERROR] list age levels: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load assessment levels")
	}

	// Optional subject filter attaches that subject's lessons per level.
	subject := model.AssessmentSubject(strings.ToUpper(strings.TrimSpace(c.Query("subject"))))
	type levelWithLessons struct {
		dto.AgeLevelResponse
		Lessons []model.LessonModel `json:"lessons,omitempty"`
	}

	out := make([]levelWithLessons, 0, len(levels))
	for i := range levels {
		item := levelWithLessons{AgeLevelResponse: dto.ToAgeLevelResponse(&levels[i])}
		if subject != "" {
			if !subject.Valid() {
				return helper.Error(c, fiber.StatusBadRequest, "Unknown subject")
			}
			if err := ctrl.DB.
				Where("lesson_age_level_id = ? AND lesson_subject = ?", levels[i].AgeLevelID, subject).
				Order("lesson_number ASC").
				Find(&item.Lessons).Error; err != nil {
				log.Printf("[ERROR] list lessons: %v", err)
				return helper.Error(c, fiber.StatusInternalServerError, "Failed to load lessons")
			}
		}
		out = append(out, item)
	}

	return helper.Success(c, "Assessment levels loaded", out)
}

// 🟢 POST /api/a/assessment-levels (admin)
func (ctrl *AgeLevelController) Create(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !rc.CanManageCatalog() {
		return helper.Error(c, fiber.StatusForbidden, "Only admins may manage the catalog")
	}

	var req dto.CreateAgeLevelRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// (age_year, age_month) is unique among live rows.
	var clash int64
	if err := ctrl.DB.Model(&model.AgeLevelModel{}).
		Where("age_level_year = ? AND age_level_month = ?", req.AgeYear, req.AgeMonth).
		Count(&clash).Error; err != nil {
		log.Printf("[ERROR] age level clash check: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create assessment level")
	}
	if clash > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "An assessment level for that (year, month) already exists")
	}

	level := req.ToModel()
	if err := ctrl.DB.Create(level).Error; err != nil {
		log.Printf("[ERROR] create age level: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create assessment level")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Assessment level created", dto.ToAgeLevelResponse(level))
}

// 🟢 PATCH /api/a/assessment-levels/:id (admin) — label/activation changes only
func (ctrl *AgeLevelController) Patch(c *fiber.Ctx) error {
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

	var req dto.PatchAgeLevelRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var level model.AgeLevelModel
	if err := ctrl.DB.First(&level, "age_level_id = ?", levelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Assessment level not found")
		}
		log.Printf("[ERROR] load age level: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load assessment level")
	}

	updates := map[string]interface{}{}
	if req.DisplayLabel != nil {
		updates["age_level_display_label"] = strings.TrimSpace(*req.DisplayLabel)
	}
	if req.AustralianYear != nil {
		updates["age_level_australian_year"] = strings.TrimSpace(*req.AustralianYear)
	}
	if req.IsActive != nil {
		updates["age_level_is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctrl.DB.Model(&level).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] patch age level: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update assessment level")
	}

	return helper.Success(c, "Assessment level updated", dto.ToAgeLevelResponse(&level))
}
