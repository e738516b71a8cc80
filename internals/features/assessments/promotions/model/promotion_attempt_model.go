package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

/* =========================================================
   PROMOTION ATTEMPT
   Immutable once graded; grading fields written exactly once.
========================================================= */

type AttemptOutcome string

const (
	OutcomePending      AttemptOutcome = "PENDING"
	OutcomePromoted     AttemptOutcome = "PROMOTED"
	OutcomeLevelSkipped AttemptOutcome = "LEVEL_SKIPPED"
	OutcomeFailed       AttemptOutcome = "FAILED"
	OutcomeBorderline   AttemptOutcome = "BORDERLINE"
)

func (o AttemptOutcome) Valid() bool {
	switch o {
	case OutcomePending, OutcomePromoted, OutcomeLevelSkipped, OutcomeFailed, OutcomeBorderline:
		return true
	}
	return false
}

// AttemptAnswer is one submitted answer, stored in the answers JSONB list.
type AttemptAnswer struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// GradedAnswer is the per-question grading result kept for result display.
// CorrectAnswer must be stripped before the payload reaches a learner.
type GradedAnswer struct {
	QuestionID    string  `json:"question_id"`
	Answer        string  `json:"answer"`
	IsCorrect     bool    `json:"is_correct"`
	MarksAwarded  float64 `json:"marks_awarded"`
	CorrectAnswer *string `json:"correct_answer,omitempty"`
}

type PromotionAttemptModel struct {
	PromotionAttemptID                   uuid.UUID      `gorm:"column:promotion_attempt_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"promotion_attempt_id"`
	PromotionAttemptCentreID             uuid.UUID      `gorm:"column:promotion_attempt_centre_id;type:uuid;not null" json:"promotion_attempt_centre_id"`
	PromotionAttemptStudentID            uuid.UUID      `gorm:"column:promotion_attempt_student_id;type:uuid;not null;index" json:"promotion_attempt_student_id"`
	PromotionAttemptPlacementID          uuid.UUID      `gorm:"column:promotion_attempt_placement_id;type:uuid;not null;index" json:"promotion_attempt_placement_id"`
	PromotionAttemptTestID               uuid.UUID      `gorm:"column:promotion_attempt_test_id;type:uuid;not null" json:"promotion_attempt_test_id"`
	PromotionAttemptAnswers              datatypes.JSON `gorm:"column:promotion_attempt_answers;type:jsonb" json:"promotion_attempt_answers"`
	PromotionAttemptOutcome              AttemptOutcome `gorm:"column:promotion_attempt_outcome;type:varchar(20);not null;default:'PENDING'" json:"promotion_attempt_outcome"`
	PromotionAttemptScore                *float64       `gorm:"column:promotion_attempt_score" json:"promotion_attempt_score,omitempty"`
	PromotionAttemptPercentageScore      *float64       `gorm:"column:promotion_attempt_percentage_score" json:"promotion_attempt_percentage_score,omitempty"`
	PromotionAttemptGradedAnswers        datatypes.JSON `gorm:"column:promotion_attempt_graded_answers;type:jsonb" json:"promotion_attempt_graded_answers,omitempty"`
	PromotionAttemptPromotedToAgeLevelID *uuid.UUID     `gorm:"column:promotion_attempt_promoted_to_age_level_id;type:uuid" json:"promotion_attempt_promoted_to_age_level_id,omitempty"`
	PromotionAttemptStartedAt            time.Time      `gorm:"column:promotion_attempt_started_at;not null" json:"promotion_attempt_started_at"`
	PromotionAttemptSubmittedAt          *time.Time     `gorm:"column:promotion_attempt_submitted_at" json:"promotion_attempt_submitted_at,omitempty"`
	PromotionAttemptGradedAt             *time.Time     `gorm:"column:promotion_attempt_graded_at" json:"promotion_attempt_graded_at,omitempty"`
	PromotionAttemptCreatedAt            time.Time      `gorm:"column:promotion_attempt_created_at;not null;autoCreateTime" json:"promotion_attempt_created_at"`
	PromotionAttemptUpdatedAt            time.Time      `gorm:"column:promotion_attempt_updated_at;not null;autoUpdateTime" json:"promotion_attempt_updated_at"`
}

func (PromotionAttemptModel) TableName() string {
	return "promotion_attempts"
}

// DecodeAnswers unmarshals the answers JSONB list.
func (m *PromotionAttemptModel) DecodeAnswers() ([]AttemptAnswer, error) {
	var out []AttemptAnswer
	if len(m.PromotionAttemptAnswers) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(m.PromotionAttemptAnswers, &out); err != nil {
		return nil, err
	}
	return out, nil
}
