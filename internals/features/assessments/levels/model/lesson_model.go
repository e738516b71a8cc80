package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonsPerLevel is the fixed ladder width: each (level, subject) owns
// lessons numbered 1..25, and 25 completions gate promotion readiness.
const LessonsPerLevel = 25

type LessonModel struct {
	LessonID               uuid.UUID         `gorm:"column:lesson_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"lesson_id"`
	LessonAgeLevelID       uuid.UUID         `gorm:"column:lesson_age_level_id;type:uuid;not null" json:"lesson_age_level_id"`
	LessonSubject          AssessmentSubject `gorm:"column:lesson_subject;type:varchar(20);not null" json:"lesson_subject"`
	LessonNumber           int               `gorm:"column:lesson_number;not null" json:"lesson_number"` // 1..25, unique within (level, subject)
	LessonTitle            string            `gorm:"column:lesson_title;type:varchar(180);not null" json:"lesson_title"`
	LessonDifficultyScore  int               `gorm:"column:lesson_difficulty_score;not null;default:1" json:"lesson_difficulty_score"`
	LessonEstimatedMinutes *int              `gorm:"column:lesson_estimated_minutes" json:"lesson_estimated_minutes,omitempty"`
	LessonCreatedAt        time.Time         `gorm:"column:lesson_created_at;not null;autoCreateTime" json:"lesson_created_at"`
	LessonUpdatedAt        time.Time         `gorm:"column:lesson_updated_at;not null;autoUpdateTime" json:"lesson_updated_at"`
	LessonDeletedAt        gorm.DeletedAt    `gorm:"column:lesson_deleted_at;index" json:"lesson_deleted_at,omitempty"`
}

func (LessonModel) TableName() string {
	return "assessment_lessons"
}
