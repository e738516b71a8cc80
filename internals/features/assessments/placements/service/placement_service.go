// file: internals/features/assessments/placements/service/placement_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	historymodel "stepup_backend/internals/features/assessments/history/model"
	levelmodel "stepup_backend/internals/features/assessments/levels/model"
	"stepup_backend/internals/features/assessments/placements/model"
	authHelper "stepup_backend/internals/helpers/auth"
)

type PlacementService struct {
	DB *gorm.DB
}

func NewPlacementService(db *gorm.DB) *PlacementService {
	return &PlacementService{DB: db}
}

type CreatePlacementInput struct {
	StudentID  uuid.UUID
	Subject    levelmodel.AssessmentSubject
	AgeLevelID uuid.UUID
	Reason     *string
}

// CreateInitialPlacement places a student on a subject ladder. The "one
// active placement per (student, subject)" rule is enforced here, not by a
// unique index, because archived rows share the pair.
func (s *PlacementService) CreateInitialPlacement(ctx context.Context, rc authHelper.RequestContext, in *CreatePlacementInput) (*model.PlacementModel, error) {
	if !rc.IsStaff() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Only staff may place students")
	}
	if !in.Subject.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Unknown subject")
	}

	var placement *model.PlacementModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var level levelmodel.AgeLevelModel
		if err := tx.First(&level, "age_level_id = ? AND age_level_is_active = TRUE", in.AgeLevelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Age level not found or inactive")
			}
			return err
		}

		var student struct {
			StudentCentreID uuid.UUID
		}
		if err := tx.Table("students").
			Select("student_centre_id").
			Where("student_id = ?", in.StudentID).
			First(&student).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Student not found")
			}
			return err
		}
		if !rc.SameTenant(student.StudentCentreID) {
			return fiber.NewError(fiber.StatusForbidden, "Student belongs to another centre")
		}

		// Application invariant: exactly one non-archived placement per
		// (student, subject).
		var existing int64
		if err := tx.Model(&model.PlacementModel{}).
			Where("placement_student_id = ? AND placement_subject = ? AND placement_status <> ?",
				in.StudentID, in.Subject, model.PlacementArchived).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Student already has an active placement for this subject")
		}

		now := time.Now()
		p := model.PlacementModel{
			PlacementCentreID:            student.StudentCentreID,
			PlacementStudentID:           in.StudentID,
			PlacementSubject:             in.Subject,
			PlacementCurrentAgeLevelID:   in.AgeLevelID,
			PlacementInitialAgeLevelID:   in.AgeLevelID,
			PlacementCurrentLessonNumber: 1,
			PlacementStatus:              model.PlacementActive,
			PlacementPlacedByID:          rc.UserID,
			PlacementPlacedAt:            now,
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}

		hist := historymodel.AssessmentHistoryModel{
			HistoryCentreID:     p.PlacementCentreID,
			HistoryStudentID:    p.PlacementStudentID,
			HistoryPlacementID:  p.PlacementID,
			HistoryToAgeLevelID: in.AgeLevelID,
			HistoryChangeType:   historymodel.ChangeInitialPlacement,
			HistoryReason:       in.Reason,
			HistoryChangedByID:  rc.UserID,
		}
		if err := tx.Create(&hist).Error; err != nil {
			return err
		}

		placement = &p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[SERVICE] initial placement created placement=%s student=%s subject=%s",
		placement.PlacementID, placement.PlacementStudentID, placement.PlacementSubject)
	return placement, nil
}

type OverridePlacementInput struct {
	PlacementID uuid.UUID
	AgeLevelID  uuid.UUID
	Reason      string
}

// OverrideLevel moves a placement to an arbitrary active rung and resets its
// progress. Moving down the ladder is recorded as REGRESSED, anything else
// as MANUAL_OVERRIDE.
func (s *PlacementService) OverrideLevel(ctx context.Context, rc authHelper.RequestContext, in *OverridePlacementInput) (*model.PlacementModel, error) {
	if !rc.CanManageCatalog() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Only admins may override placements")
	}
	if in.Reason == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "A reason is required for manual overrides")
	}

	var placement *model.PlacementModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.PlacementModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "placement_id = ?", in.PlacementID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Placement not found")
			}
			return err
		}
		if !rc.SameTenant(p.PlacementCentreID) {
			return fiber.NewError(fiber.StatusForbidden, "Placement belongs to another centre")
		}
		if p.PlacementStatus == model.PlacementArchived {
			return fiber.NewError(fiber.StatusBadRequest, "PlacementNotActive: placement is archived")
		}

		var fromLevel, toLevel levelmodel.AgeLevelModel
		if err := tx.First(&fromLevel, "age_level_id = ?", p.PlacementCurrentAgeLevelID).Error; err != nil {
			return err
		}
		if err := tx.First(&toLevel, "age_level_id = ? AND age_level_is_active = TRUE", in.AgeLevelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Target age level not found or inactive")
			}
			return err
		}

		changeType := historymodel.ChangeManualOverride
		if toLevel.OrderKey() < fromLevel.OrderKey() {
			changeType = historymodel.ChangeRegressed
		}

		oldLevelID := p.PlacementCurrentAgeLevelID
		now := time.Now()
		p.PlacementCurrentAgeLevelID = in.AgeLevelID
		p.PlacementCurrentLessonNumber = 1
		p.PlacementLessonsCompleted = 0
		p.PlacementReadyForPromotion = false
		p.PlacementStatus = model.PlacementActive
		p.PlacementPlacedByID = rc.UserID
		p.PlacementPlacedAt = now
		if err := tx.Save(&p).Error; err != nil {
			return err
		}

		reason := in.Reason
		hist := historymodel.AssessmentHistoryModel{
			HistoryCentreID:       p.PlacementCentreID,
			HistoryStudentID:      p.PlacementStudentID,
			HistoryPlacementID:    p.PlacementID,
			HistoryFromAgeLevelID: &oldLevelID,
			HistoryToAgeLevelID:   in.AgeLevelID,
			HistoryChangeType:     changeType,
			HistoryReason:         &reason,
			HistoryChangedByID:    rc.UserID,
		}
		if err := tx.Create(&hist).Error; err != nil {
			return err
		}

		placement = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placement, nil
}
