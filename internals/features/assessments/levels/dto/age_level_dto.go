package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "stepup_backend/internals/features/assessments/levels/model"
)

/* =========================================================
   CREATE / PATCH — AGE LEVEL
========================================================= */

type CreateAgeLevelRequest struct {
	AgeYear        int     `json:"age_level_year" validate:"min=0,max=18"`
	AgeMonth       int     `json:"age_level_month" validate:"required,min=1,max=12"`
	DisplayLabel   string  `json:"age_level_display_label" validate:"required,min=1,max=80"`
	AustralianYear *string `json:"age_level_australian_year" validate:"omitempty,max=20"`
	IsActive       *bool   `json:"age_level_is_active"`
}

func (r *CreateAgeLevelRequest) Normalize() {
	r.DisplayLabel = strings.TrimSpace(r.DisplayLabel)
	if r.AustralianYear != nil {
		v := strings.TrimSpace(*r.AustralianYear)
		if v == "" {
			r.AustralianYear = nil
		} else {
			r.AustralianYear = &v
		}
	}
}

func (r *CreateAgeLevelRequest) ToModel() *m.AgeLevelModel {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &m.AgeLevelModel{
		AgeLevelYear:           r.AgeYear,
		AgeLevelMonth:          r.AgeMonth,
		AgeLevelDisplayLabel:   r.DisplayLabel,
		AgeLevelAustralianYear: r.AustralianYear,
		AgeLevelIsActive:       active,
	}
}

type PatchAgeLevelRequest struct {
	DisplayLabel   *string `json:"age_level_display_label" validate:"omitempty,min=1,max=80"`
	AustralianYear *string `json:"age_level_australian_year" validate:"omitempty,max=20"`
	IsActive       *bool   `json:"age_level_is_active"`
}

/* =========================================================
   CREATE — LESSON
========================================================= */

type CreateLessonRequest struct {
	Subject          string `json:"lesson_subject" validate:"required"`
	LessonNumber     int    `json:"lesson_number" validate:"required,min=1,max=25"`
	Title            string `json:"lesson_title" validate:"required,min=1,max=180"`
	DifficultyScore  int    `json:"lesson_difficulty_score" validate:"min=1,max=10"`
	EstimatedMinutes *int   `json:"lesson_estimated_minutes" validate:"omitempty,min=1,max=600"`
}

func (r *CreateLessonRequest) Normalize() {
	r.Subject = strings.ToUpper(strings.TrimSpace(r.Subject))
	r.Title = strings.TrimSpace(r.Title)
	if r.DifficultyScore == 0 {
		r.DifficultyScore = 1
	}
}

/* =========================================================
   RESPONSES
========================================================= */

type AgeLevelResponse struct {
	AgeLevelID     uuid.UUID `json:"age_level_id"`
	AgeYear        int       `json:"age_level_year"`
	AgeMonth       int       `json:"age_level_month"`
	DisplayLabel   string    `json:"age_level_display_label"`
	AustralianYear *string   `json:"age_level_australian_year,omitempty"`
	IsActive       bool      `json:"age_level_is_active"`
	CreatedAt      time.Time `json:"age_level_created_at"`
}

func ToAgeLevelResponse(mo *m.AgeLevelModel) AgeLevelResponse {
	return AgeLevelResponse{
		AgeLevelID:     mo.AgeLevelID,
		AgeYear:        mo.AgeLevelYear,
		AgeMonth:       mo.AgeLevelMonth,
		DisplayLabel:   mo.AgeLevelDisplayLabel,
		AustralianYear: mo.AgeLevelAustralianYear,
		IsActive:       mo.AgeLevelIsActive,
		CreatedAt:      mo.AgeLevelCreatedAt,
	}
}
