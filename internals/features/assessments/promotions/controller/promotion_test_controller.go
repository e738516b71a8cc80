// file: internals/features/assessments/promotions/controller/promotion_test_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	levelmodel "stepup_backend/internals/features/assessments/levels/model"
	"stepup_backend/internals/features/assessments/promotions/dto"
	"stepup_backend/internals/features/assessments/promotions/model"
	helper "stepup_backend/internals/helpers"
	authHelper "stepup_backend/internals/helpers/auth"
)

type PromotionTestController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewPromotionTestController(db *gorm.DB) *PromotionTestController {
	return &PromotionTestController{DB: db, Validate: validator.New()}
}

/* =========================================================
   LIST — GET /api/u/promotion-tests
   The answer key only ships to graders.
========================================================= */

func (ctl *PromotionTestController) List(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.PromotionTestModel{})
	if centreID, scoped := rc.ScopeCentre(uuid.Nil); scoped {
		q = q.Where("promotion_test_centre_id = ?", centreID)
	}
	if subject := c.Query("subject"); subject != "" {
		s := levelmodel.AssessmentSubject(subject)
		if !s.Valid() {
			return helper.Error(c, fiber.StatusBadRequest, "Unknown subject")
		}
		q = q.Where("promotion_test_subject = ?", s)
	}
	if raw := c.Query("target_age_level_id"); raw != "" {
		levelID, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid target_age_level_id")
		}
		q = q.Where("promotion_test_target_age_level_id = ?", levelID)
	}
	if !rc.IsStaff() {
		q = q.Where("promotion_test_is_active = TRUE")
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count promotion tests")
	}

	var rows []model.PromotionTestModel
	if err := q.Order("promotion_test_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch promotion tests")
	}

	resp := make([]dto.PromotionTestResponse, 0, len(rows))
	for i := range rows {
		r, err := dto.ToPromotionTestResponse(&rows[i], rc.CanGrade())
		if err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Promotion test is misconfigured")
		}
		resp = append(resp, r)
	}

	return helper.SuccessWithPagination(c, "Promotion tests fetched successfully", resp,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* =========================================================
   DETAIL — GET /api/u/promotion-tests/:id
========================================================= */

func (ctl *PromotionTestController) GetByID(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	testID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid promotion test id")
	}

	var test model.PromotionTestModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&test, "promotion_test_id = ?", testID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Promotion test not found")
	}
	if !rc.SameTenant(test.PromotionTestCentreID) {
		return helper.Error(c, fiber.StatusForbidden, "Promotion test belongs to another centre")
	}
	if !rc.IsStaff() && !test.PromotionTestIsActive {
		return helper.Error(c, fiber.StatusNotFound, "Promotion test not found")
	}

	resp, err := dto.ToPromotionTestResponse(&test, rc.CanGrade())
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Promotion test is misconfigured")
	}
	return helper.Success(c, "Promotion test fetched successfully", resp)
}

/* =========================================================
   CREATE — POST /api/a/promotion-tests
========================================================= */

func (ctl *PromotionTestController) Create(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !rc.CanGrade() {
		return helper.Error(c, fiber.StatusForbidden, "Only staff may create promotion tests")
	}

	var req dto.CreatePromotionTestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if !levelmodel.AssessmentSubject(req.Subject).Valid() {
		return helper.Error(c, fiber.StatusBadRequest, "Unknown subject")
	}
	if req.ExcellenceScore <= req.PassingScore {
		return helper.Error(c, fiber.StatusBadRequest, "Excellence score must exceed the passing score")
	}

	var level levelmodel.AgeLevelModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&level, "age_level_id = ? AND age_level_is_active = TRUE", req.TargetAgeLevelID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Target age level not found or inactive")
	}

	test, err := req.ToModel(rc.CentreID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Questions could not be encoded")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(test).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create promotion test")
	}

	resp, err := dto.ToPromotionTestResponse(test, true)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Promotion test is misconfigured")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Promotion test created successfully", resp)
}

/* =========================================================
   PATCH — PATCH /api/a/promotion-tests/:id
========================================================= */

func (ctl *PromotionTestController) Patch(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !rc.CanGrade() {
		return helper.Error(c, fiber.StatusForbidden, "Only staff may update promotion tests")
	}
	testID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid promotion test id")
	}

	var req dto.PatchPromotionTestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var test model.PromotionTestModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&test, "promotion_test_id = ?", testID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Promotion test not found")
	}
	if !rc.SameTenant(test.PromotionTestCentreID) {
		return helper.Error(c, fiber.StatusForbidden, "Promotion test belongs to another centre")
	}

	if req.Title != nil {
		test.PromotionTestTitle = *req.Title
	}
	if req.IsActive != nil {
		test.PromotionTestIsActive = *req.IsActive
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(&test).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update promotion test")
	}

	resp, err := dto.ToPromotionTestResponse(&test, true)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Promotion test is misconfigured")
	}
	return helper.Success(c, "Promotion test updated successfully", resp)
}
