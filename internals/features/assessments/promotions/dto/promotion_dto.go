package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	levelmodel "stepup_backend/internals/features/assessments/levels/model"
	m "stepup_backend/internals/features/assessments/promotions/model"
)

/* =========================================================
   CREATE — PROMOTION TEST
========================================================= */

type CreatePromotionTestRequest struct {
	TargetAgeLevelID uuid.UUID        `json:"promotion_test_target_age_level_id" validate:"required"`
	Subject          string           `json:"promotion_test_subject" validate:"required"`
	Title            string           `json:"promotion_test_title" validate:"required,min=3,max=180"`
	Questions        []m.TestQuestion `json:"promotion_test_questions" validate:"required,min=1,dive"`
	PassingScore     float64          `json:"promotion_test_passing_score" validate:"required,gt=0,lte=100"`
	ExcellenceScore  float64          `json:"promotion_test_excellence_score" validate:"required,gt=0,lte=100"`
	IsAutoGraded     *bool            `json:"promotion_test_is_auto_graded"`
}

func (r *CreatePromotionTestRequest) Normalize() {
	r.Subject = strings.ToUpper(strings.TrimSpace(r.Subject))
	r.Title = strings.TrimSpace(r.Title)
}

// TotalMarks sums the effective marks of every question.
func (r *CreatePromotionTestRequest) TotalMarks() float64 {
	var total float64
	for _, q := range r.Questions {
		total += q.EffectiveMarks()
	}
	return total
}

func (r *CreatePromotionTestRequest) ToModel(centreID uuid.UUID) (*m.PromotionTestModel, error) {
	questionsJSON, err := json.Marshal(r.Questions)
	if err != nil {
		return nil, err
	}
	autoGraded := true
	if r.IsAutoGraded != nil {
		autoGraded = *r.IsAutoGraded
	}
	return &m.PromotionTestModel{
		PromotionTestCentreID:         centreID,
		PromotionTestTargetAgeLevelID: r.TargetAgeLevelID,
		PromotionTestSubject:          levelmodel.AssessmentSubject(r.Subject),
		PromotionTestTitle:            r.Title,
		PromotionTestQuestions:        datatypes.JSON(questionsJSON),
		PromotionTestTotalMarks:       r.TotalMarks(),
		PromotionTestPassingScore:     r.PassingScore,
		PromotionTestExcellenceScore:  r.ExcellenceScore,
		PromotionTestIsActive:         true,
		PromotionTestIsAutoGraded:     autoGraded,
	}, nil
}

type PatchPromotionTestRequest struct {
	Title    *string `json:"promotion_test_title" validate:"omitempty,min=3,max=180"`
	IsActive *bool   `json:"promotion_test_is_active"`
}

/* =========================================================
   SUBMIT — ATTEMPT
========================================================= */

type SubmitAttemptRequest struct {
	PlacementID uuid.UUID         `json:"placement_id" validate:"required"`
	StudentID   uuid.UUID         `json:"student_id" validate:"required"`
	Answers     []m.AttemptAnswer `json:"answers" validate:"required,min=1,dive"`
}

type ManualGradeRequest struct {
	Score   float64 `json:"score" validate:"min=0"`
	Outcome string  `json:"outcome" validate:"required"`
}

func (r *ManualGradeRequest) Normalize() {
	r.Outcome = strings.ToUpper(strings.TrimSpace(r.Outcome))
}

/* =========================================================
   RESPONSES
========================================================= */

// PromotionTestResponse carries the test without its answer key; questions
// are re-encoded with correct_answer removed for learner-facing reads.
type PromotionTestResponse struct {
	PromotionTestID  uuid.UUID                    `json:"promotion_test_id"`
	TargetAgeLevelID uuid.UUID                    `json:"promotion_test_target_age_level_id"`
	Subject          levelmodel.AssessmentSubject `json:"promotion_test_subject"`
	Title            string                       `json:"promotion_test_title"`
	Questions        []m.TestQuestion             `json:"promotion_test_questions"`
	TotalMarks       float64                      `json:"promotion_test_total_marks"`
	PassingScore     float64                      `json:"promotion_test_passing_score"`
	ExcellenceScore  float64                      `json:"promotion_test_excellence_score"`
	IsActive         bool                         `json:"promotion_test_is_active"`
	IsAutoGraded     bool                         `json:"promotion_test_is_auto_graded"`
	CreatedAt        time.Time                    `json:"promotion_test_created_at"`
}

func ToPromotionTestResponse(t *m.PromotionTestModel, includeAnswerKey bool) (PromotionTestResponse, error) {
	questions, err := t.DecodeQuestions()
	if err != nil {
		return PromotionTestResponse{}, err
	}
	if !includeAnswerKey {
		for i := range questions {
			questions[i].CorrectAnswer = nil
		}
	}
	return PromotionTestResponse{
		PromotionTestID:  t.PromotionTestID,
		TargetAgeLevelID: t.PromotionTestTargetAgeLevelID,
		Subject:          t.PromotionTestSubject,
		Title:            t.PromotionTestTitle,
		Questions:        questions,
		TotalMarks:       t.PromotionTestTotalMarks,
		PassingScore:     t.PromotionTestPassingScore,
		ExcellenceScore:  t.PromotionTestExcellenceScore,
		IsActive:         t.PromotionTestIsActive,
		IsAutoGraded:     t.PromotionTestIsAutoGraded,
		CreatedAt:        t.PromotionTestCreatedAt,
	}, nil
}

// AttemptResponse mirrors the attempt row; graded answers are stripped of
// the answer key for learner callers.
type AttemptResponse struct {
	PromotionAttemptID   uuid.UUID        `json:"promotion_attempt_id"`
	StudentID            uuid.UUID        `json:"promotion_attempt_student_id"`
	PlacementID          uuid.UUID        `json:"promotion_attempt_placement_id"`
	TestID               uuid.UUID        `json:"promotion_attempt_test_id"`
	Outcome              m.AttemptOutcome `json:"promotion_attempt_outcome"`
	Score                *float64         `json:"promotion_attempt_score,omitempty"`
	PercentageScore      *float64         `json:"promotion_attempt_percentage_score,omitempty"`
	GradedAnswers        []m.GradedAnswer `json:"promotion_attempt_graded_answers,omitempty"`
	PromotedToAgeLevelID *uuid.UUID       `json:"promotion_attempt_promoted_to_age_level_id,omitempty"`
	SubmittedAt          *time.Time       `json:"promotion_attempt_submitted_at,omitempty"`
	GradedAt             *time.Time       `json:"promotion_attempt_graded_at,omitempty"`
}

func ToAttemptResponse(a *m.PromotionAttemptModel, includeAnswerKey bool) (AttemptResponse, error) {
	var graded []m.GradedAnswer
	if len(a.PromotionAttemptGradedAnswers) > 0 {
		if err := json.Unmarshal(a.PromotionAttemptGradedAnswers, &graded); err != nil {
			return AttemptResponse{}, err
		}
	}
	if !includeAnswerKey {
		for i := range graded {
			graded[i].CorrectAnswer = nil
		}
	}
	return AttemptResponse{
		PromotionAttemptID:   a.PromotionAttemptID,
		StudentID:            a.PromotionAttemptStudentID,
		PlacementID:          a.PromotionAttemptPlacementID,
		TestID:               a.PromotionAttemptTestID,
		Outcome:              a.PromotionAttemptOutcome,
		Score:                a.PromotionAttemptScore,
		PercentageScore:      a.PromotionAttemptPercentageScore,
		GradedAnswers:        graded,
		PromotedToAgeLevelID: a.PromotionAttemptPromotedToAgeLevelID,
		SubmittedAt:          a.PromotionAttemptSubmittedAt,
		GradedAt:             a.PromotionAttemptGradedAt,
	}, nil
}
