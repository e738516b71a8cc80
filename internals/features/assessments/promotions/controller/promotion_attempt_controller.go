// file: internals/features/assessments/promotions/controller/promotion_attempt_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"stepup_backend/internals/features/assessments/promotions/dto"
	"stepup_backend/internals/features/assessments/promotions/model"
	"stepup_backend/internals/features/assessments/promotions/service"
	notifsvc "stepup_backend/internals/features/home/notifications/service"
	helper "stepup_backend/internals/helpers"
	authHelper "stepup_backend/internals/helpers/auth"
)

type PromotionAttemptController struct {
	DB       *gorm.DB
	Validate *validator.Validate

	promotions *service.PromotionService
}

func NewPromotionAttemptController(db *gorm.DB) *PromotionAttemptController {
	return &PromotionAttemptController{
		DB:         db,
		Validate:   validator.New(),
		promotions: service.NewPromotionService(db),
	}
}

/* =========================================================
   SUBMIT — POST /api/u/promotion-tests/:id/attempts
========================================================= */

func (ctl *PromotionAttemptController) Submit(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	testID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid promotion test id")
	}

	var req dto.SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// A learner may only submit on behalf of their own student record.
	if !rc.IsStaff() {
		var owns int64
		if err := ctl.DB.Table("students").
			Where("student_id = ? AND student_user_id = ?", req.StudentID, rc.UserID).
			Count(&owns).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to verify student")
		}
		if owns == 0 {
			return helper.Error(c, fiber.StatusForbidden, "You may only submit your own attempts")
		}
	}

	out, err := ctl.promotions.SubmitAttempt(c.UserContext(), rc, &service.SubmitAttemptInput{
		PlacementID:     req.PlacementID,
		StudentID:       req.StudentID,
		PromotionTestID: testID,
		Answers:         req.Answers,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	notifsvc.Dispatch(ctl.DB, out.PostCommitEvents)

	attempt, err := dto.ToAttemptResponse(out.Attempt, rc.CanGrade())
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Attempt result could not be encoded")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Promotion attempt submitted successfully", fiber.Map{
		"attempt":     attempt,
		"placement":   out.Placement,
		"catalog_gap": out.CatalogGap,
	})
}

/* =========================================================
   MANUAL GRADE — POST /api/a/promotion-attempts/:id/grade
========================================================= */

func (ctl *PromotionAttemptController) Grade(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid attempt id")
	}

	var req dto.ManualGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	out, err := ctl.promotions.GradeManually(c.UserContext(), rc, &service.ManualGradeInput{
		AttemptID: attemptID,
		Score:     req.Score,
		Outcome:   model.AttemptOutcome(req.Outcome),
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	notifsvc.Dispatch(ctl.DB, out.PostCommitEvents)

	attempt, err := dto.ToAttemptResponse(out.Attempt, true)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Attempt result could not be encoded")
	}

	return helper.Success(c, "Promotion attempt graded successfully", fiber.Map{
		"attempt":     attempt,
		"placement":   out.Placement,
		"catalog_gap": out.CatalogGap,
	})
}

/* =========================================================
   LIST — GET /api/u/promotion-attempts
========================================================= */

func (ctl *PromotionAttemptController) List(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.PromotionAttemptModel{})
	if centreID, scoped := rc.ScopeCentre(uuid.Nil); scoped {
		q = q.Where("promotion_attempt_centre_id = ?", centreID)
	}

	if rc.IsStaff() {
		if raw := c.Query("student_id"); raw != "" {
			studentID, err := uuid.Parse(raw)
			if err != nil {
				return helper.Error(c, fiber.StatusBadRequest, "Invalid student_id")
			}
			q = q.Where("promotion_attempt_student_id = ?", studentID)
		}
		if raw := c.Query("placement_id"); raw != "" {
			placementID, err := uuid.Parse(raw)
			if err != nil {
				return helper.Error(c, fiber.StatusBadRequest, "Invalid placement_id")
			}
			q = q.Where("promotion_attempt_placement_id = ?", placementID)
		}
	} else {
		q = q.Where(
			"promotion_attempt_student_id IN (?)",
			ctl.DB.Table("students").
				Select("student_id").
				Where("student_user_id = ? OR student_parent_user_id = ?", rc.UserID, rc.UserID),
		)
	}
	if outcome := c.Query("outcome"); outcome != "" {
		o := model.AttemptOutcome(outcome)
		if !o.Valid() {
			return helper.Error(c, fiber.StatusBadRequest, "Unknown outcome")
		}
		q = q.Where("promotion_attempt_outcome = ?", o)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count attempts")
	}

	var rows []model.PromotionAttemptModel
	if err := q.Order("promotion_attempt_started_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch attempts")
	}

	resp := make([]dto.AttemptResponse, 0, len(rows))
	for i := range rows {
		r, err := dto.ToAttemptResponse(&rows[i], rc.CanGrade())
		if err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Attempt result could not be encoded")
		}
		resp = append(resp, r)
	}

	return helper.SuccessWithPagination(c, "Promotion attempts fetched successfully", resp,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
