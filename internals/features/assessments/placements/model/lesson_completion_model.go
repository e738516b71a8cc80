package model

import (
	"time"

	"github.com/google/uuid"
)

/* =========================================================
   LESSON COMPLETION STATUS (state machine)

   NOT_STARTED → IN_PROGRESS → SUBMITTED → {MARKED | COMPLETED | NEEDS_REVISION}
   NEEDS_REVISION → {IN_PROGRESS | SUBMITTED}
   IN_PROGRESS → IN_PROGRESS   (draft re-save)
========================================================= */

type CompletionStatus string

const (
	CompletionNotStarted    CompletionStatus = "NOT_STARTED"
	CompletionInProgress    CompletionStatus = "IN_PROGRESS"
	CompletionSubmitted     CompletionStatus = "SUBMITTED"
	CompletionNeedsRevision CompletionStatus = "NEEDS_REVISION"
	CompletionMarked        CompletionStatus = "MARKED"
	CompletionCompleted     CompletionStatus = "COMPLETED"
)

func (s CompletionStatus) Valid() bool {
	switch s {
	case CompletionNotStarted, CompletionInProgress, CompletionSubmitted,
		CompletionNeedsRevision, CompletionMarked, CompletionCompleted:
		return true
	}
	return false
}

// Counted reports whether the status contributes to lessons_completed.
func (s CompletionStatus) Counted() bool {
	return s == CompletionMarked || s == CompletionCompleted
}

// Terminal reports whether no further transition is allowed.
func (s CompletionStatus) Terminal() bool {
	return s == CompletionMarked || s == CompletionCompleted
}

// allowedTransitions is the central transition table. Absent key = no
// transitions out of that state.
var allowedTransitions = map[CompletionStatus][]CompletionStatus{
	CompletionNotStarted:    {CompletionInProgress},
	CompletionInProgress:    {CompletionInProgress, CompletionSubmitted},
	CompletionSubmitted:     {CompletionMarked, CompletionCompleted, CompletionNeedsRevision},
	CompletionNeedsRevision: {CompletionInProgress, CompletionSubmitted},
}

// CanTransition checks the table above.
func CanTransition(from, to CompletionStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

/* =========================================================
   LESSON COMPLETION
   Unique upsert key: (student_id, placement_id, lesson_id)
========================================================= */

type LessonCompletionModel struct {
	LessonCompletionID          uuid.UUID        `gorm:"column:lesson_completion_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"lesson_completion_id"`
	LessonCompletionCentreID    uuid.UUID        `gorm:"column:lesson_completion_centre_id;type:uuid;not null" json:"lesson_completion_centre_id"`
	LessonCompletionStudentID   uuid.UUID        `gorm:"column:lesson_completion_student_id;type:uuid;not null;uniqueIndex:uq_completion_triple" json:"lesson_completion_student_id"`
	LessonCompletionPlacementID uuid.UUID        `gorm:"column:lesson_completion_placement_id;type:uuid;not null;uniqueIndex:uq_completion_triple" json:"lesson_completion_placement_id"`
	LessonCompletionLessonID    uuid.UUID        `gorm:"column:lesson_completion_lesson_id;type:uuid;not null;uniqueIndex:uq_completion_triple" json:"lesson_completion_lesson_id"`
	LessonCompletionStatus      CompletionStatus `gorm:"column:lesson_completion_status;type:varchar(20);not null;default:'NOT_STARTED'" json:"lesson_completion_status"`
	LessonCompletionScore       *float64         `gorm:"column:lesson_completion_score" json:"lesson_completion_score,omitempty"`
	LessonCompletionPercentage  *float64         `gorm:"column:lesson_completion_percentage" json:"lesson_completion_percentage,omitempty"`
	LessonCompletionFeedback    *string          `gorm:"column:lesson_completion_feedback;type:text" json:"lesson_completion_feedback,omitempty"`
	LessonCompletionStartedAt   *time.Time       `gorm:"column:lesson_completion_started_at" json:"lesson_completion_started_at,omitempty"`
	LessonCompletionCompletedAt *time.Time       `gorm:"column:lesson_completion_completed_at" json:"lesson_completion_completed_at,omitempty"`
	LessonCompletionGradedByID  *uuid.UUID       `gorm:"column:lesson_completion_graded_by_id;type:uuid" json:"lesson_completion_graded_by_id,omitempty"`
	LessonCompletionGradedAt    *time.Time       `gorm:"column:lesson_completion_graded_at" json:"lesson_completion_graded_at,omitempty"`
	LessonCompletionSessionID   *uuid.UUID       `gorm:"column:lesson_completion_session_id;type:uuid" json:"lesson_completion_session_id,omitempty"`
	LessonCompletionCreatedAt   time.Time        `gorm:"column:lesson_completion_created_at;not null;autoCreateTime" json:"lesson_completion_created_at"`
	LessonCompletionUpdatedAt   time.Time        `gorm:"column:lesson_completion_updated_at;not null;autoUpdateTime" json:"lesson_completion_updated_at"`
}

func (LessonCompletionModel) TableName() string {
	return "lesson_completions"
}
