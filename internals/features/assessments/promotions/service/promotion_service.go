// file: internals/features/assessments/promotions/service/promotion_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	historymodel "stepup_backend/internals/features/assessments/history/model"
	levelmodel "stepup_backend/internals/features/assessments/levels/model"
	placementmodel "stepup_backend/internals/features/assessments/placements/model"
	"stepup_backend/internals/features/assessments/promotions/model"
	notifsvc "stepup_backend/internals/features/home/notifications/service"
	xpmodel "stepup_backend/internals/features/progress/xp/model"
	xpsvc "stepup_backend/internals/features/progress/xp/service"
	authHelper "stepup_backend/internals/helpers/auth"
)

/* =========================================================
   PROMOTION TRANSITION EXECUTOR
========================================================= */

type PromotionService struct {
	DB *gorm.DB
}

func NewPromotionService(db *gorm.DB) *PromotionService {
	return &PromotionService{DB: db}
}

type SubmitAttemptInput struct {
	PlacementID     uuid.UUID
	StudentID       uuid.UUID
	PromotionTestID uuid.UUID
	Answers         []model.AttemptAnswer
}

type SubmitAttemptResult struct {
	Attempt          *model.PromotionAttemptModel
	Placement        *placementmodel.PlacementModel
	CatalogGap       bool // computed target rung missing from the catalog
	PostCommitEvents []notifsvc.Event
}

// SubmitAttempt creates and (for auto-graded tests) grades a promotion
// attempt, then executes the placement transition. Attempt grading,
// placement advance, history append, and the XP award commit or roll back
// together. Notification events are returned for post-commit dispatch.
func (s *PromotionService) SubmitAttempt(ctx context.Context, rc authHelper.RequestContext, in *SubmitAttemptInput) (*SubmitAttemptResult, error) {
	if in == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Missing payload")
	}

	out := &SubmitAttemptResult{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var test model.PromotionTestModel
		if err := tx.First(&test, "promotion_test_id = ?", in.PromotionTestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "TestNotFound: promotion test does not exist")
			}
			return err
		}
		if !test.PromotionTestIsActive {
			return fiber.NewError(fiber.StatusBadRequest, "TestInactive: promotion test is not active")
		}

		// Lock the placement; two concurrent attempts for the same placement
		// serialize on this row.
		var placement placementmodel.PlacementModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&placement, "placement_id = ?", in.PlacementID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Placement not found")
			}
			return err
		}

		if placement.PlacementStudentID != in.StudentID {
			return fiber.NewError(fiber.StatusBadRequest, "PlacementMismatch: placement belongs to a different student")
		}
		if !rc.SameTenant(placement.PlacementCentreID) {
			return fiber.NewError(fiber.StatusForbidden, "TenantViolation: placement belongs to another centre")
		}
		if placement.PlacementStatus != placementmodel.PlacementActive &&
			placement.PlacementStatus != placementmodel.PlacementPromotionPending {
			return fiber.NewError(fiber.StatusBadRequest, "PlacementNotActive: placement cannot attempt promotion")
		}
		// Hard gate regardless of caller role: lessons must be exhausted
		// before a promotion test may be attempted.
		if !placement.PlacementReadyForPromotion {
			return fiber.NewError(fiber.StatusBadRequest, "NotReadyForPromotion: lesson threshold not reached")
		}
		if test.PromotionTestSubject != placement.PlacementSubject {
			return fiber.NewError(fiber.StatusBadRequest, "SubjectMismatch: test subject differs from placement subject")
		}

		answersJSON, err := json.Marshal(in.Answers)
		if err != nil {
			return err
		}

		now := time.Now()
		attempt := model.PromotionAttemptModel{
			PromotionAttemptCentreID:    placement.PlacementCentreID,
			PromotionAttemptStudentID:   in.StudentID,
			PromotionAttemptPlacementID: in.PlacementID,
			PromotionAttemptTestID:      in.PromotionTestID,
			PromotionAttemptAnswers:     datatypes.JSON(answersJSON),
			PromotionAttemptOutcome:     model.OutcomePending,
			PromotionAttemptStartedAt:   now,
			PromotionAttemptSubmittedAt: &now,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		if !test.PromotionTestIsAutoGraded {
			// Stays PENDING for staff manual grading.
			out.Attempt = &attempt
			out.Placement = &placement
			return nil
		}

		questions, err := test.DecodeQuestions()
		if err != nil {
			log.Printf("[ERROR] promotion test %s has malformed questions: %v", test.PromotionTestID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Promotion test is misconfigured")
		}

		graded := Grade(questions, in.Answers, test.PromotionTestTotalMarks)
		outcome := ClassifyOutcome(graded.PercentageScore, test.PromotionTestPassingScore, test.PromotionTestExcellenceScore)

		gradedJSON, err := json.Marshal(graded.GradedAnswers)
		if err != nil {
			return err
		}

		score := graded.Score
		pct := graded.PercentageScore
		attempt.PromotionAttemptScore = &score
		attempt.PromotionAttemptPercentageScore = &pct
		attempt.PromotionAttemptGradedAnswers = datatypes.JSON(gradedJSON)
		attempt.PromotionAttemptOutcome = outcome
		attempt.PromotionAttemptGradedAt = &now

		if MonthDelta(outcome) == 0 {
			// FAILED: grade the attempt, no level change.
			out.Attempt = &attempt
			out.Placement = &placement
			return tx.Save(&attempt).Error
		}

		var current levelmodel.AgeLevelModel
		if err := tx.First(&current, "age_level_id = ?", placement.PlacementCurrentAgeLevelID).Error; err != nil {
			return err
		}

		nextYear, nextMonth := AdvanceAgeMonths(current.AgeLevelYear, current.AgeLevelMonth, MonthDelta(outcome))

		var next levelmodel.AgeLevelModel
		err = tx.First(&next,
			"age_level_year = ? AND age_level_month = ? AND age_level_is_active = TRUE",
			nextYear, nextMonth).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Catalog gap: the computed rung does not exist. Keep the graded
			// attempt (promoted_to stays null), make no placement change, and
			// surface the configuration error instead of silently ignoring it.
			log.Printf("[ERROR] catalog gap: no active age level (%dy, %dm) for placement %s outcome %s",
				nextYear, nextMonth, placement.PlacementID, outcome)
			out.CatalogGap = true
			out.Attempt = &attempt
			out.Placement = &placement
			return tx.Save(&attempt).Error
		} else if err != nil {
			return err
		}

		nextID := next.AgeLevelID
		attempt.PromotionAttemptPromotedToAgeLevelID = &nextID
		if err := tx.Save(&attempt).Error; err != nil {
			return err
		}

		// Advance the placement and reset progress for the new rung.
		oldLevelID := placement.PlacementCurrentAgeLevelID
		placement.PlacementCurrentAgeLevelID = next.AgeLevelID
		placement.PlacementCurrentLessonNumber = 1
		placement.PlacementLessonsCompleted = 0
		placement.PlacementReadyForPromotion = false
		placement.PlacementStatus = placementmodel.PlacementActive
		placement.PlacementPlacedByID = rc.UserID
		placement.PlacementPlacedAt = now
		if err := tx.Save(&placement).Error; err != nil {
			return err
		}

		changeType := historymodel.ChangePromoted
		if outcome == model.OutcomeLevelSkipped {
			changeType = historymodel.ChangeLevelSkipped
		}
		hist := historymodel.AssessmentHistoryModel{
			HistoryCentreID:       placement.PlacementCentreID,
			HistoryStudentID:      placement.PlacementStudentID,
			HistoryPlacementID:    placement.PlacementID,
			HistoryFromAgeLevelID: &oldLevelID,
			HistoryToAgeLevelID:   next.AgeLevelID,
			HistoryChangeType:     changeType,
			HistoryTestScore:      &pct,
			HistoryChangedByID:    rc.UserID,
		}
		if err := tx.Create(&hist).Error; err != nil {
			return err
		}

		// XP award commits with the promotion or not at all.
		xpAmount := xpmodel.XPPromoted
		xpSource := xpmodel.XPSourceQuizCompletion
		if outcome == model.OutcomeLevelSkipped {
			xpAmount = xpmodel.XPLevelSkipped
			xpSource = xpmodel.XPSourceQuizPerfect
		}
		if err := xpsvc.Award(tx, placement.PlacementCentreID, placement.PlacementStudentID,
			xpAmount, xpSource, "promotion_attempt", attempt.PromotionAttemptID,
			fmt.Sprintf("%s promotion to %s", placement.PlacementSubject, next.AgeLevelDisplayLabel)); err != nil {
			return err
		}

		out.Attempt = &attempt
		out.Placement = &placement
		return nil
	})
	if err != nil {
		return nil, err
	}

	out.PostCommitEvents = s.outcomeEvents(out)
	return out, nil
}

// outcomeEvents builds the best-effort student notification for a graded
// attempt.
func (s *PromotionService) outcomeEvents(res *SubmitAttemptResult) []notifsvc.Event {
	if res.Attempt == nil || res.Attempt.PromotionAttemptOutcome == model.OutcomePending {
		return nil
	}

	var userID uuid.UUID
	if err := s.DB.Table("students").
		Select("student_user_id").
		Where("student_id = ?", res.Attempt.PromotionAttemptStudentID).
		Scan(&userID).Error; err != nil || userID == uuid.Nil {
		log.Printf("[WARN] could not resolve student user for outcome notification: %v", err)
		return nil
	}

	var title, desc string
	switch res.Attempt.PromotionAttemptOutcome {
	case model.OutcomeLevelSkipped:
		title = "Outstanding result! Level skipped"
		desc = "Your promotion test earned an excellence score and your placement advanced two months."
	case model.OutcomePromoted:
		title = "Promotion passed"
		desc = "You passed your promotion test and your placement advanced to the next level."
	default:
		title = "Promotion test result"
		desc = "Your promotion test did not reach the passing score this time. Keep practising!"
	}

	return []notifsvc.Event{{
		RecipientUserID: userID,
		CentreID:        res.Attempt.PromotionAttemptCentreID,
		Type:            notifsvc.EventTypePromotionOutcome,
		Title:           title,
		Description:     desc,
		Tags:            []string{"promotion", string(res.Attempt.PromotionAttemptOutcome)},
	}}
}

/* =========================================================
   MANUAL GRADING (non-auto-graded tests)
========================================================= */

type ManualGradeInput struct {
	AttemptID uuid.UUID
	Score     float64
	Outcome   model.AttemptOutcome
}

// GradeManually writes the grading fields of a PENDING attempt exactly once.
// BORDERLINE is only reachable here; it records a near-miss without a level
// change. PROMOTED/LEVEL_SKIPPED follow the same transition as auto-grading.
func (s *PromotionService) GradeManually(ctx context.Context, rc authHelper.RequestContext, in *ManualGradeInput) (*SubmitAttemptResult, error) {
	if !rc.CanGrade() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Grading capability required")
	}
	switch in.Outcome {
	case model.OutcomePromoted, model.OutcomeLevelSkipped, model.OutcomeFailed, model.OutcomeBorderline:
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "Unknown outcome")
	}

	out := &SubmitAttemptResult{}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var attempt model.PromotionAttemptModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&attempt, "promotion_attempt_id = ?", in.AttemptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Attempt not found")
			}
			return err
		}
		if !rc.SameTenant(attempt.PromotionAttemptCentreID) {
			return fiber.NewError(fiber.StatusForbidden, "TenantViolation: attempt belongs to another centre")
		}
		if attempt.PromotionAttemptOutcome != model.OutcomePending {
			return fiber.NewError(fiber.StatusBadRequest, "Attempt has already been graded")
		}

		var test model.PromotionTestModel
		if err := tx.First(&test, "promotion_test_id = ?", attempt.PromotionAttemptTestID).Error; err != nil {
			return err
		}

		var placement placementmodel.PlacementModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&placement, "placement_id = ?", attempt.PromotionAttemptPlacementID).Error; err != nil {
			return err
		}

		now := time.Now()
		score := in.Score
		pct := Percentage(score, test.PromotionTestTotalMarks)
		attempt.PromotionAttemptScore = &score
		attempt.PromotionAttemptPercentageScore = &pct
		attempt.PromotionAttemptOutcome = in.Outcome
		attempt.PromotionAttemptGradedAt = &now

		if MonthDelta(in.Outcome) == 0 {
			out.Attempt = &attempt
			out.Placement = &placement
			return tx.Save(&attempt).Error
		}

		var current levelmodel.AgeLevelModel
		if err := tx.First(&current, "age_level_id = ?", placement.PlacementCurrentAgeLevelID).Error; err != nil {
			return err
		}
		nextYear, nextMonth := AdvanceAgeMonths(current.AgeLevelYear, current.AgeLevelMonth, MonthDelta(in.Outcome))

		var next levelmodel.AgeLevelModel
		err := tx.First(&next,
			"age_level_year = ? AND age_level_month = ? AND age_level_is_active = TRUE",
			nextYear, nextMonth).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[ERROR] catalog gap: no active age level (%dy, %dm) for placement %s",
				nextYear, nextMonth, placement.PlacementID)
			out.CatalogGap = true
			out.Attempt = &attempt
			out.Placement = &placement
			return tx.Save(&attempt).Error
		} else if err != nil {
			return err
		}

		nextID := next.AgeLevelID
		attempt.PromotionAttemptPromotedToAgeLevelID = &nextID
		if err := tx.Save(&attempt).Error; err != nil {
			return err
		}

		oldLevelID := placement.PlacementCurrentAgeLevelID
		placement.PlacementCurrentAgeLevelID = next.AgeLevelID
		placement.PlacementCurrentLessonNumber = 1
		placement.PlacementLessonsCompleted = 0
		placement.PlacementReadyForPromotion = false
		placement.PlacementStatus = placementmodel.PlacementActive
		placement.PlacementPlacedByID = rc.UserID
		placement.PlacementPlacedAt = now
		if err := tx.Save(&placement).Error; err != nil {
			return err
		}

		changeType := historymodel.ChangePromoted
		if in.Outcome == model.OutcomeLevelSkipped {
			changeType = historymodel.ChangeLevelSkipped
		}
		if err := tx.Create(&historymodel.AssessmentHistoryModel{
			HistoryCentreID:       placement.PlacementCentreID,
			HistoryStudentID:      placement.PlacementStudentID,
			HistoryPlacementID:    placement.PlacementID,
			HistoryFromAgeLevelID: &oldLevelID,
			HistoryToAgeLevelID:   next.AgeLevelID,
			HistoryChangeType:     changeType,
			HistoryTestScore:      &pct,
			HistoryChangedByID:    rc.UserID,
		}).Error; err != nil {
			return err
		}

		xpAmount := xpmodel.XPPromoted
		xpSource := xpmodel.XPSourceQuizCompletion
		if in.Outcome == model.OutcomeLevelSkipped {
			xpAmount = xpmodel.XPLevelSkipped
			xpSource = xpmodel.XPSourceQuizPerfect
		}
		if err := xpsvc.Award(tx, placement.PlacementCentreID, placement.PlacementStudentID,
			xpAmount, xpSource, "promotion_attempt", attempt.PromotionAttemptID,
			fmt.Sprintf("%s promotion to %s", placement.PlacementSubject, next.AgeLevelDisplayLabel)); err != nil {
			return err
		}

		out.Attempt = &attempt
		out.Placement = &placement
		return nil
	})
	if err != nil {
		return nil, err
	}

	out.PostCommitEvents = s.outcomeEvents(out)
	return out, nil
}
