// file: internals/features/assessments/placements/service/completion_tracker.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	levelmodel "stepup_backend/internals/features/assessments/levels/model"
	"stepup_backend/internals/features/assessments/placements/model"
	notifsvc "stepup_backend/internals/features/home/notifications/service"
	authHelper "stepup_backend/internals/helpers/auth"
)

/* =========================================================
   LESSON COMPLETION TRACKER
========================================================= */

type CompletionTracker struct {
	DB *gorm.DB
}

func NewCompletionTracker(db *gorm.DB) *CompletionTracker {
	return &CompletionTracker{DB: db}
}

type RecordCompletionInput struct {
	PlacementID uuid.UUID
	LessonID    uuid.UUID
	Status      model.CompletionStatus
	Score       *float64
	Percentage  *float64
	Feedback    *string
	SessionID   *uuid.UUID
}

type RecordCompletionResult struct {
	Completion       *model.LessonCompletionModel
	Placement        *model.PlacementModel
	BecameReady      bool
	PostCommitEvents []notifsvc.Event
}

// RecordCompletion upserts the (student, placement, lesson) completion row,
// enforces the status transition table, and recomputes the placement's
// progress counters. Crossing the 25-lesson threshold flips
// ready_for_promotion exactly once and moves the placement to
// PROMOTION_PENDING. Everything runs in one transaction; notification
// events are returned for post-commit dispatch.
func (s *CompletionTracker) RecordCompletion(ctx context.Context, rc authHelper.RequestContext, in *RecordCompletionInput) (*RecordCompletionResult, error) {
	if in == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Missing payload")
	}
	if !in.Status.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Unknown completion status")
	}

	// Grading capability gate: a learner may drive their own work up to
	// SUBMITTED, never to MARKED/COMPLETED/NEEDS_REVISION.
	switch in.Status {
	case model.CompletionMarked, model.CompletionCompleted, model.CompletionNeedsRevision:
		if !rc.CanGrade() {
			return nil, fiber.NewError(fiber.StatusForbidden, "Grading capability required")
		}
	}

	out := &RecordCompletionResult{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the placement row; concurrent writes for the same placement
		// serialize here.
		var placement model.PlacementModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&placement, "placement_id = ?", in.PlacementID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Placement not found")
			}
			return err
		}

		if !rc.SameTenant(placement.PlacementCentreID) {
			return fiber.NewError(fiber.StatusForbidden, "Placement belongs to another centre")
		}
		if placement.PlacementStatus == model.PlacementArchived {
			return fiber.NewError(fiber.StatusBadRequest, "PlacementNotActive: placement is archived")
		}

		// A learner may only write their own placement.
		if !rc.IsStaff() {
			var owns int64
			if err := tx.Table("students").
				Where("student_id = ? AND student_user_id = ?", placement.PlacementStudentID, rc.UserID).
				Count(&owns).Error; err != nil {
				return err
			}
			if owns == 0 {
				return fiber.NewError(fiber.StatusForbidden, "You may only record your own lessons")
			}
		}

		var lesson levelmodel.LessonModel
		if err := tx.First(&lesson, "lesson_id = ?", in.LessonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
			}
			return err
		}

		if lesson.LessonSubject != placement.PlacementSubject {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("SubjectMismatch: lesson is %s, placement is %s", lesson.LessonSubject, placement.PlacementSubject))
		}
		if lesson.LessonAgeLevelID != placement.PlacementCurrentAgeLevelID {
			return fiber.NewError(fiber.StatusBadRequest,
				"LevelMismatch: lesson belongs to a different age level than the placement's current one")
		}

		// Load-or-start the completion row keyed by the uniqueness triple.
		now := time.Now()
		var completion model.LessonCompletionModel
		err := tx.Where(
			"lesson_completion_student_id = ? AND lesson_completion_placement_id = ? AND lesson_completion_lesson_id = ?",
			placement.PlacementStudentID, placement.PlacementID, in.LessonID,
		).First(&completion).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			completion = model.LessonCompletionModel{
				LessonCompletionCentreID:    placement.PlacementCentreID,
				LessonCompletionStudentID:   placement.PlacementStudentID,
				LessonCompletionPlacementID: placement.PlacementID,
				LessonCompletionLessonID:    in.LessonID,
				LessonCompletionStatus:      model.CompletionNotStarted,
			}
		case err != nil:
			return err
		}

		from := completion.LessonCompletionStatus
		if !model.CanTransition(from, in.Status) {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("InvalidTransition: %s → %s", from, in.Status))
		}

		wasCounted := from.Counted()
		completion.LessonCompletionStatus = in.Status
		if in.Score != nil {
			completion.LessonCompletionScore = in.Score
		}
		if in.Percentage != nil {
			completion.LessonCompletionPercentage = in.Percentage
		}
		if in.Feedback != nil {
			completion.LessonCompletionFeedback = in.Feedback
		}
		if in.SessionID != nil {
			completion.LessonCompletionSessionID = in.SessionID
		}
		if in.Status == model.CompletionInProgress && completion.LessonCompletionStartedAt == nil {
			completion.LessonCompletionStartedAt = &now
		}
		if in.Status.Counted() {
			completion.LessonCompletionCompletedAt = &now
			uid := rc.UserID
			completion.LessonCompletionGradedByID = &uid
			completion.LessonCompletionGradedAt = &now
		}

		if completion.LessonCompletionID == uuid.Nil {
			if err := tx.Create(&completion).Error; err != nil {
				return err
			}
		} else if err := tx.Save(&completion).Error; err != nil {
			return err
		}

		// Recompute progress when the counted set may have changed. Only rows
		// whose lesson belongs to the placement's current age level count:
		// completions from earlier rungs survive a promotion reset and must
		// not re-trigger readiness.
		if in.Status.Counted() && !wasCounted {
			var counted int64
			if err := tx.Model(&model.LessonCompletionModel{}).
				Joins("JOIN assessment_lessons ON assessment_lessons.lesson_id = lesson_completions.lesson_completion_lesson_id").
				Where("lesson_completion_placement_id = ? AND assessment_lessons.lesson_age_level_id = ? AND lesson_completion_status IN ?",
					placement.PlacementID,
					placement.PlacementCurrentAgeLevelID,
					[]model.CompletionStatus{model.CompletionMarked, model.CompletionCompleted}).
				Count(&counted).Error; err != nil {
				return err
			}

			prog := model.RecomputeProgress(int(counted), placement.PlacementReadyForPromotion)
			placement.PlacementLessonsCompleted = prog.LessonsCompleted
			placement.PlacementCurrentLessonNumber = prog.CurrentLessonNumber
			if prog.BecameReady {
				placement.PlacementReadyForPromotion = true
				placement.PlacementStatus = model.PlacementPromotionPending
				out.BecameReady = true
			}

			if err := tx.Save(&placement).Error; err != nil {
				return err
			}
		}

		out.Completion = &completion
		out.Placement = &placement
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit notifications (best-effort, dispatched by the caller).
	if in.Status == model.CompletionSubmitted && !rc.IsStaff() {
		out.PostCommitEvents = append(out.PostCommitEvents, notifsvc.Event{
			RecipientUserID: out.Placement.PlacementPlacedByID,
			CentreID:        out.Placement.PlacementCentreID,
			Type:            notifsvc.EventTypeLessonSubmitted,
			Title:           "Lesson submitted",
			Description:     fmt.Sprintf("A %s lesson was submitted for marking.", out.Placement.PlacementSubject),
			Tags:            []string{"lesson", "submitted"},
		})
	}
	if out.BecameReady {
		out.PostCommitEvents = append(out.PostCommitEvents, notifsvc.Event{
			RecipientUserID: out.Placement.PlacementPlacedByID,
			CentreID:        out.Placement.PlacementCentreID,
			Type:            notifsvc.EventTypePromotionReady,
			Title:           "Student ready for promotion",
			Description:     fmt.Sprintf("All %d %s lessons are complete; a promotion test can now be attempted.", levelmodel.LessonsPerLevel, out.Placement.PlacementSubject),
			Tags:            []string{"promotion", "ready"},
		})
		log.Printf("[SERVICE] placement %s reached promotion readiness", out.Placement.PlacementID)
	}

	return out, nil
}
