package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	levelmodel "stepup_backend/internals/features/assessments/levels/model"
)

/* =========================================================
   PROMOTION TEST
   questions live in a JSONB column; total_marks is denormalized
   so grading does not re-sum on every attempt.
========================================================= */

type TestQuestion struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"` // multiple_choice | short_answer | ...
	Text          string  `json:"text"`
	CorrectAnswer *string `json:"correct_answer,omitempty"`
	Marks         float64 `json:"marks,omitempty"`
	Points        float64 `json:"points,omitempty"` // legacy alias for marks
}

// EffectiveMarks resolves the marks for a question: marks → points → 1.
func (q TestQuestion) EffectiveMarks() float64 {
	if q.Marks > 0 {
		return q.Marks
	}
	if q.Points > 0 {
		return q.Points
	}
	return 1
}

type PromotionTestModel struct {
	PromotionTestID               uuid.UUID                    `gorm:"column:promotion_test_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"promotion_test_id"`
	PromotionTestCentreID         uuid.UUID                    `gorm:"column:promotion_test_centre_id;type:uuid;not null" json:"promotion_test_centre_id"`
	PromotionTestTargetAgeLevelID uuid.UUID                    `gorm:"column:promotion_test_target_age_level_id;type:uuid;not null" json:"promotion_test_target_age_level_id"`
	PromotionTestSubject          levelmodel.AssessmentSubject `gorm:"column:promotion_test_subject;type:varchar(20);not null" json:"promotion_test_subject"`
	PromotionTestTitle            string                       `gorm:"column:promotion_test_title;type:varchar(180);not null" json:"promotion_test_title"`
	PromotionTestQuestions        datatypes.JSON               `gorm:"column:promotion_test_questions;type:jsonb;not null" json:"promotion_test_questions"`
	PromotionTestTotalMarks       float64                      `gorm:"column:promotion_test_total_marks;not null" json:"promotion_test_total_marks"`
	PromotionTestPassingScore     float64                      `gorm:"column:promotion_test_passing_score;not null" json:"promotion_test_passing_score"`       // pct
	PromotionTestExcellenceScore  float64                      `gorm:"column:promotion_test_excellence_score;not null" json:"promotion_test_excellence_score"` // pct, > passing
	PromotionTestIsActive         bool                         `gorm:"column:promotion_test_is_active;not null;default:true" json:"promotion_test_is_active"`
	PromotionTestIsAutoGraded     bool                         `gorm:"column:promotion_test_is_auto_graded;not null;default:true" json:"promotion_test_is_auto_graded"`
	PromotionTestCreatedAt        time.Time                    `gorm:"column:promotion_test_created_at;not null;autoCreateTime" json:"promotion_test_created_at"`
	PromotionTestUpdatedAt        time.Time                    `gorm:"column:promotion_test_updated_at;not null;autoUpdateTime" json:"promotion_test_updated_at"`
	PromotionTestDeletedAt        gorm.DeletedAt               `gorm:"column:promotion_test_deleted_at;index" json:"promotion_test_deleted_at,omitempty"`
}

func (PromotionTestModel) TableName() string {
	return "promotion_tests"
}

// DecodeQuestions unmarshals the JSONB question list.
func (m *PromotionTestModel) DecodeQuestions() ([]TestQuestion, error) {
	var qs []TestQuestion
	if len(m.PromotionTestQuestions) == 0 {
		return qs, nil
	}
	if err := json.Unmarshal(m.PromotionTestQuestions, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}
