package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   SUBJECT ENUM (shared by lessons, placements, promotions)
========================================================= */

type AssessmentSubject string

const (
	SubjectEnglish     AssessmentSubject = "ENGLISH"
	SubjectMathematics AssessmentSubject = "MATHEMATICS"
	SubjectScience     AssessmentSubject = "SCIENCE"
	SubjectSTEM        AssessmentSubject = "STEM"
	SubjectReading     AssessmentSubject = "READING"
	SubjectWriting     AssessmentSubject = "WRITING"
)

var AllSubjects = []AssessmentSubject{
	SubjectEnglish,
	SubjectMathematics,
	SubjectScience,
	SubjectSTEM,
	SubjectReading,
	SubjectWriting,
}

func (s AssessmentSubject) Valid() bool {
	switch s {
	case SubjectEnglish, SubjectMathematics, SubjectScience, SubjectSTEM, SubjectReading, SubjectWriting:
		return true
	}
	return false
}

/* =========================================================
   AGE LEVEL (ladder rung)
   Ordering key = age_year*12 + age_month
========================================================= */

type AgeLevelModel struct {
	AgeLevelID             uuid.UUID      `gorm:"column:age_level_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"age_level_id"`
	AgeLevelYear           int            `gorm:"column:age_level_year;not null" json:"age_level_year"`
	AgeLevelMonth          int            `gorm:"column:age_level_month;not null" json:"age_level_month"` // 1..12
	AgeLevelDisplayLabel   string         `gorm:"column:age_level_display_label;type:varchar(80);not null" json:"age_level_display_label"`
	AgeLevelAustralianYear *string        `gorm:"column:age_level_australian_year;type:varchar(20)" json:"age_level_australian_year,omitempty"`
	AgeLevelIsActive       bool           `gorm:"column:age_level_is_active;not null;default:true" json:"age_level_is_active"`
	AgeLevelCreatedAt      time.Time      `gorm:"column:age_level_created_at;not null;autoCreateTime" json:"age_level_created_at"`
	AgeLevelUpdatedAt      time.Time      `gorm:"column:age_level_updated_at;not null;autoUpdateTime" json:"age_level_updated_at"`
	AgeLevelDeletedAt      gorm.DeletedAt `gorm:"column:age_level_deleted_at;index" json:"age_level_deleted_at,omitempty"`
}

func (AgeLevelModel) TableName() string {
	return "assessment_age_levels"
}

// OrderKey is the ladder ordering key (months since age zero).
func (m *AgeLevelModel) OrderKey() int {
	return m.AgeLevelYear*12 + m.AgeLevelMonth
}

// CalibratedYears is the rung's position expressed in fractional years,
// used by the age-gap analytics.
func (m *AgeLevelModel) CalibratedYears() float64 {
	return float64(m.AgeLevelYear) + float64(m.AgeLevelMonth)/12.0
}
