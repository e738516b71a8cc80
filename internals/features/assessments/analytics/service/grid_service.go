// file: internals/features/assessments/analytics/service/grid_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	levelmodel "stepup_backend/internals/features/assessments/levels/model"
	placementmodel "stepup_backend/internals/features/assessments/placements/model"
)

/* =========================================================
   ASSESSMENT GRID (staff-only matrix)
   One row per student, one cell per subject.
========================================================= */

type GridCell struct {
	PlacementID       uuid.UUID                      `json:"placement_id"`
	AgeLevelLabel     string                         `json:"age_level_label"`
	LessonsCompleted  int                            `json:"lessons_completed"`
	ReadyForPromotion bool                           `json:"ready_for_promotion"`
	Status            placementmodel.PlacementStatus `json:"status"`
	Band              AgeBand                        `json:"band"`
}

type GridRow struct {
	StudentID   uuid.UUID                                  `json:"student_id"`
	StudentName string                                     `json:"student_name"`
	Cells       map[levelmodel.AssessmentSubject]*GridCell `json:"cells"`
}

type gridScanRow struct {
	PlacementID        uuid.UUID
	StudentID          uuid.UUID
	StudentFullName    string
	StudentDateOfBirth *time.Time
	Subject            levelmodel.AssessmentSubject
	LessonsCompleted   int
	ReadyForPromotion  bool
	Status             placementmodel.PlacementStatus
	AgeLevelYear       int
	AgeLevelMonth      int
	DisplayLabel       string
}

// ComputeGrid builds the cross-student / cross-subject placement matrix for
// one centre.
func (s *AnalyticsService) ComputeGrid(ctx context.Context, centreID uuid.UUID) ([]GridRow, error) {
	q := s.DB.WithContext(ctx).
		Table("student_age_assessments").
		Select(`student_age_assessments.placement_id,
			students.student_id,
			students.student_full_name,
			students.student_date_of_birth,
			student_age_assessments.placement_subject AS subject,
			student_age_assessments.placement_lessons_completed AS lessons_completed,
			student_age_assessments.placement_ready_for_promotion AS ready_for_promotion,
			student_age_assessments.placement_status AS status,
			assessment_age_levels.age_level_year,
			assessment_age_levels.age_level_month,
			assessment_age_levels.age_level_display_label AS display_label`).
		Joins("JOIN students ON students.student_id = student_age_assessments.placement_student_id").
		Joins("JOIN assessment_age_levels ON assessment_age_levels.age_level_id = student_age_assessments.placement_current_age_level_id").
		Where("student_age_assessments.placement_status <> ?", placementmodel.PlacementArchived).
		Where("student_age_assessments.placement_deleted_at IS NULL").
		Order("students.student_full_name ASC")
	if centreID != uuid.Nil {
		q = q.Where("student_age_assessments.placement_centre_id = ?", centreID)
	}

	var raw []gridScanRow
	if err := q.Scan(&raw).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	byStudent := make(map[uuid.UUID]*GridRow)
	order := make([]uuid.UUID, 0)

	for _, r := range raw {
		row, ok := byStudent[r.StudentID]
		if !ok {
			row = &GridRow{
				StudentID:   r.StudentID,
				StudentName: r.StudentFullName,
				Cells:       make(map[levelmodel.AssessmentSubject]*GridCell),
			}
			byStudent[r.StudentID] = row
			order = append(order, r.StudentID)
		}

		band := BandUnknown
		if r.StudentDateOfBirth != nil {
			calibrated := float64(r.AgeLevelYear) + float64(r.AgeLevelMonth)/12.0
			band = ClassifyGap(AgeGap(calibrated, *r.StudentDateOfBirth, now))
		}

		row.Cells[r.Subject] = &GridCell{
			PlacementID:       r.PlacementID,
			AgeLevelLabel:     r.DisplayLabel,
			LessonsCompleted:  r.LessonsCompleted,
			ReadyForPromotion: r.ReadyForPromotion,
			Status:            r.Status,
			Band:              band,
		}
	}

	rows := make([]GridRow, 0, len(order))
	for _, id := range order {
		rows = append(rows, *byStudent[id])
	}
	return rows, nil
}
