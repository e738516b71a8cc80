package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "stepup_backend/internals/features/users/students/model"
)

type CreateStudentRequest struct {
	UserID       uuid.UUID  `json:"student_user_id" validate:"required"`
	FullName     string     `json:"student_full_name" validate:"required,min=2,max=120"`
	DateOfBirth  *time.Time `json:"student_date_of_birth"`
	ParentUserID *uuid.UUID `json:"student_parent_user_id"`
}

func (r *CreateStudentRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
}

func (r *CreateStudentRequest) ToModel(centreID uuid.UUID) *m.StudentModel {
	return &m.StudentModel{
		StudentUserID:       r.UserID,
		StudentCentreID:     centreID,
		StudentFullName:     r.FullName,
		StudentDateOfBirth:  r.DateOfBirth,
		StudentParentUserID: r.ParentUserID,
	}
}

type PatchStudentRequest struct {
	FullName     *string    `json:"student_full_name" validate:"omitempty,min=2,max=120"`
	DateOfBirth  *time.Time `json:"student_date_of_birth"`
	ParentUserID *uuid.UUID `json:"student_parent_user_id"`
}
