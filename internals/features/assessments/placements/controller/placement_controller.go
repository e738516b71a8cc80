// file: internals/features/assessments/placements/controller/placement_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	levelmodel "stepup_backend/internals/features/assessments/levels/model"
	"stepup_backend/internals/features/assessments/placements/dto"
	"stepup_backend/internals/features/assessments/placements/model"
	"stepup_backend/internals/features/assessments/placements/service"
	notifsvc "stepup_backend/internals/features/home/notifications/service"
	helper "stepup_backend/internals/helpers"
	authHelper "stepup_backend/internals/helpers/auth"
)

type PlacementController struct {
	DB       *gorm.DB
	Validate *validator.Validate

	placements *service.PlacementService
	tracker    *service.CompletionTracker
}

func NewPlacementController(db *gorm.DB) *PlacementController {
	return &PlacementController{
		DB:         db,
		Validate:   validator.New(),
		placements: service.NewPlacementService(db),
		tracker:    service.NewCompletionTracker(db),
	}
}

/* =========================================================
   LIST — GET /api/u/student-placements
   Staff see every placement in their centre (filterable);
   students and parents only see their own family's rows.
========================================================= */

func (ctl *PlacementController) List(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.PlacementModel{})

	if centreID, scoped := rc.ScopeCentre(parseUUIDQuery(c, "centre_id")); scoped {
		q = q.Where("placement_centre_id = ?", centreID)
	}

	if rc.CanViewAllPlacements() {
		if sid := parseUUIDQuery(c, "student_id"); sid != uuid.Nil {
			q = q.Where("placement_student_id = ?", sid)
		}
	} else {
		// Learner/parent scope: the students table links placements to the
		// caller's user id (directly, or via parent_user_id).
		q = q.Where(
			"placement_student_id IN (?)",
			ctl.DB.Table("students").
				Select("student_id").
				Where("student_user_id = ? OR student_parent_user_id = ?", rc.UserID, rc.UserID),
		)
	}

	if subject := c.Query("subject"); subject != "" {
		s := levelmodel.AssessmentSubject(subject)
		if !s.Valid() {
			return helper.Error(c, fiber.StatusBadRequest, "Unknown subject")
		}
		q = q.Where("placement_subject = ?", s)
	}
	if status := c.Query("status"); status != "" {
		st := model.PlacementStatus(status)
		if !st.Valid() {
			return helper.Error(c, fiber.StatusBadRequest, "Unknown placement status")
		}
		q = q.Where("placement_status = ?", st)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count placements")
	}

	var rows []model.PlacementModel
	if err := q.Order("placement_placed_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch placements")
	}

	resp := make([]dto.PlacementResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.ToPlacementResponse(&rows[i]))
	}

	return helper.SuccessWithPagination(c, "Placements fetched successfully", resp,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* =========================================================
   DETAIL — GET /api/u/student-placements/:id
========================================================= */

func (ctl *PlacementController) GetByID(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	placementID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid placement id")
	}

	placement, err := ctl.loadVisiblePlacement(c, rc, placementID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Placement fetched successfully", dto.ToPlacementResponse(placement))
}

/* =========================================================
   CREATE — POST /api/a/student-placements
========================================================= */

func (ctl *PlacementController) Create(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreatePlacementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	placement, err := ctl.placements.CreateInitialPlacement(c.UserContext(), rc, &service.CreatePlacementInput{
		StudentID:  req.StudentID,
		Subject:    levelmodel.AssessmentSubject(req.Subject),
		AgeLevelID: req.AgeLevelID,
		Reason:     req.Reason,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Placement created successfully", dto.ToPlacementResponse(placement))
}

/* =========================================================
   OVERRIDE — POST /api/a/student-placements/:id/override
========================================================= */

func (ctl *PlacementController) Override(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	placementID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid placement id")
	}

	var req dto.OverridePlacementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	placement, err := ctl.placements.OverrideLevel(c.UserContext(), rc, &service.OverridePlacementInput{
		PlacementID: placementID,
		AgeLevelID:  req.AgeLevelID,
		Reason:      req.Reason,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Placement level overridden successfully", dto.ToPlacementResponse(placement))
}

/* =========================================================
   RECORD COMPLETION — POST /api/u/student-placements/:id/lesson-completions
========================================================= */

func (ctl *PlacementController) RecordCompletion(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	placementID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid placement id")
	}

	var req dto.RecordCompletionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	out, err := ctl.tracker.RecordCompletion(c.UserContext(), rc, &service.RecordCompletionInput{
		PlacementID: placementID,
		LessonID:    req.LessonID,
		Status:      model.CompletionStatus(req.Status),
		Score:       req.Score,
		Percentage:  req.Percentage,
		Feedback:    req.Feedback,
		SessionID:   req.SessionID,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	notifsvc.Dispatch(ctl.DB, out.PostCommitEvents)

	return helper.Success(c, "Lesson completion recorded successfully", fiber.Map{
		"completion":   out.Completion,
		"placement":    dto.ToPlacementResponse(out.Placement),
		"became_ready": out.BecameReady,
	})
}

/* =========================================================
   LIST COMPLETIONS — GET /api/u/student-placements/:id/lesson-completions
========================================================= */

func (ctl *PlacementController) ListCompletions(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	placementID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid placement id")
	}

	if _, err := ctl.loadVisiblePlacement(c, rc, placementID); err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.LessonCompletionModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Joins("JOIN assessment_lessons ON assessment_lessons.lesson_id = lesson_completions.lesson_completion_lesson_id").
		Where("lesson_completion_placement_id = ?", placementID).
		Order("assessment_lessons.lesson_number ASC").
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch lesson completions")
	}

	return helper.Success(c, "Lesson completions fetched successfully", rows)
}

/* =========================================================
   INTERNAL
========================================================= */

// loadVisiblePlacement fetches a placement and applies the read scope:
// staff are limited to their tenant, learners/parents to their own family.
func (ctl *PlacementController) loadVisiblePlacement(c *fiber.Ctx, rc authHelper.RequestContext, placementID uuid.UUID) (*model.PlacementModel, error) {
	var placement model.PlacementModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&placement, "placement_id = ?", placementID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Placement not found")
	}
	if !rc.SameTenant(placement.PlacementCentreID) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Placement belongs to another centre")
	}
	if !rc.CanViewAllPlacements() {
		var visible int64
		if err := ctl.DB.Table("students").
			Where("student_id = ? AND (student_user_id = ? OR student_parent_user_id = ?)",
				placement.PlacementStudentID, rc.UserID, rc.UserID).
			Count(&visible).Error; err != nil {
			return nil, err
		}
		if visible == 0 {
			return nil, fiber.NewError(fiber.StatusForbidden, "You may only view your own placements")
		}
	}
	return &placement, nil
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
