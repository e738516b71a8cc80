package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentModel is the per-centre learner profile. Account/auth data lives in
// the identity service; this row carries only what the assessment engine and
// analytics need (DOB for age-gap, parent linkage for the parent read gate).
type StudentModel struct {
	StudentID           uuid.UUID      `gorm:"column:student_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	StudentUserID       uuid.UUID      `gorm:"column:student_user_id;type:uuid;not null" json:"student_user_id"`
	StudentCentreID     uuid.UUID      `gorm:"column:student_centre_id;type:uuid;not null" json:"student_centre_id"`
	StudentFullName     string         `gorm:"column:student_full_name;type:varchar(120);not null" json:"student_full_name"`
	StudentDateOfBirth  *time.Time     `gorm:"column:student_date_of_birth;type:date" json:"student_date_of_birth,omitempty"`
	StudentParentUserID *uuid.UUID     `gorm:"column:student_parent_user_id;type:uuid" json:"student_parent_user_id,omitempty"`
	StudentCreatedAt    time.Time      `gorm:"column:student_created_at;not null;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt    time.Time      `gorm:"column:student_updated_at;not null;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt    gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string {
	return "students"
}
