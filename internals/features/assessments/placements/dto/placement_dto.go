package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	levelmodel "stepup_backend/internals/features/assessments/levels/model"
	m "stepup_backend/internals/features/assessments/placements/model"
)

/* =========================================================
   CREATE — INITIAL PLACEMENT
========================================================= */

type CreatePlacementRequest struct {
	StudentID  uuid.UUID `json:"placement_student_id" validate:"required"`
	Subject    string    `json:"placement_subject" validate:"required"`
	AgeLevelID uuid.UUID `json:"placement_age_level_id" validate:"required"`
	Reason     *string   `json:"placement_reason" validate:"omitempty,max=500"`
}

func (r *CreatePlacementRequest) Normalize() {
	r.Subject = strings.ToUpper(strings.TrimSpace(r.Subject))
	if r.Reason != nil {
		v := strings.TrimSpace(*r.Reason)
		if v == "" {
			r.Reason = nil
		} else {
			r.Reason = &v
		}
	}
}

/* =========================================================
   RECORD — LESSON COMPLETION
========================================================= */

type RecordCompletionRequest struct {
	LessonID   uuid.UUID  `json:"lesson_id" validate:"required"`
	Status     string     `json:"status" validate:"required"`
	Score      *float64   `json:"score" validate:"omitempty,min=0"`
	Percentage *float64   `json:"percentage_score" validate:"omitempty,min=0,max=100"`
	Feedback   *string    `json:"feedback" validate:"omitempty,max=2000"`
	SessionID  *uuid.UUID `json:"session_id"`
}

func (r *RecordCompletionRequest) Normalize() {
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
	if r.Feedback != nil {
		v := strings.TrimSpace(*r.Feedback)
		if v == "" {
			r.Feedback = nil
		} else {
			r.Feedback = &v
		}
	}
}

/* =========================================================
   OVERRIDE — MANUAL LEVEL CHANGE
========================================================= */

type OverridePlacementRequest struct {
	AgeLevelID uuid.UUID `json:"age_level_id" validate:"required"`
	Reason     string    `json:"reason" validate:"required,min=3,max=500"`
}

/* =========================================================
   RESPONSES
========================================================= */

type PlacementResponse struct {
	PlacementID         uuid.UUID                    `json:"placement_id"`
	StudentID           uuid.UUID                    `json:"placement_student_id"`
	Subject             levelmodel.AssessmentSubject `json:"placement_subject"`
	CurrentAgeLevelID   uuid.UUID                    `json:"placement_current_age_level_id"`
	InitialAgeLevelID   uuid.UUID                    `json:"placement_initial_age_level_id"`
	CurrentLessonNumber int                          `json:"placement_current_lesson_number"`
	LessonsCompleted    int                          `json:"placement_lessons_completed"`
	ReadyForPromotion   bool                         `json:"placement_ready_for_promotion"`
	Status              m.PlacementStatus            `json:"placement_status"`
	PlacedAt            time.Time                    `json:"placement_placed_at"`
}

func ToPlacementResponse(p *m.PlacementModel) PlacementResponse {
	return PlacementResponse{
		PlacementID:         p.PlacementID,
		StudentID:           p.PlacementStudentID,
		Subject:             p.PlacementSubject,
		CurrentAgeLevelID:   p.PlacementCurrentAgeLevelID,
		InitialAgeLevelID:   p.PlacementInitialAgeLevelID,
		CurrentLessonNumber: p.PlacementCurrentLessonNumber,
		LessonsCompleted:    p.PlacementLessonsCompleted,
		ReadyForPromotion:   p.PlacementReadyForPromotion,
		Status:              p.PlacementStatus,
		PlacedAt:            p.PlacementPlacedAt,
	}
}
