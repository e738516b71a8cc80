package model

import (
	"time"

	"github.com/google/uuid"
)

/* =========================================================
   XP LEDGER
   Append-only log + running total per student. source_id is
   the idempotency key per source (e.g. promotion attempt id).
========================================================= */

type XPSource string

const (
	XPSourceQuizCompletion XPSource = "QUIZ_COMPLETION"
	XPSourceQuizPerfect    XPSource = "QUIZ_PERFECT"
	XPSourceLessonMarked   XPSource = "LESSON_MARKED"
)

// XP amounts for promotion outcomes.
const (
	XPPromoted     = 50
	XPLevelSkipped = 100
)

type XPLogModel struct {
	XPLogID          uuid.UUID `gorm:"column:xp_log_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"xp_log_id"`
	XPLogCentreID    uuid.UUID `gorm:"column:xp_log_centre_id;type:uuid;not null" json:"xp_log_centre_id"`
	XPLogStudentID   uuid.UUID `gorm:"column:xp_log_student_id;type:uuid;not null;index" json:"xp_log_student_id"`
	XPLogAmount      int       `gorm:"column:xp_log_amount;not null" json:"xp_log_amount"`
	XPLogSource      XPSource  `gorm:"column:xp_log_source;type:varchar(30);not null" json:"xp_log_source"`
	XPLogSourceID    uuid.UUID `gorm:"column:xp_log_source_id;type:uuid;not null;uniqueIndex:uq_xp_source" json:"xp_log_source_id"`
	XPLogSourceKind  string    `gorm:"column:xp_log_source_kind;type:varchar(30);not null;uniqueIndex:uq_xp_source" json:"xp_log_source_kind"`
	XPLogDescription string    `gorm:"column:xp_log_description;type:varchar(255)" json:"xp_log_description"`
	XPLogCreatedAt   time.Time `gorm:"column:xp_log_created_at;not null;autoCreateTime" json:"xp_log_created_at"`
}

func (XPLogModel) TableName() string {
	return "student_xp_logs"
}

type XPTotalModel struct {
	XPTotalStudentID uuid.UUID `gorm:"column:xp_total_student_id;type:uuid;primaryKey" json:"xp_total_student_id"`
	XPTotalPoints    int       `gorm:"column:xp_total_points;not null;default:0" json:"xp_total_points"`
	XPTotalUpdatedAt time.Time `gorm:"column:xp_total_updated_at;not null;autoUpdateTime" json:"xp_total_updated_at"`
}

func (XPTotalModel) TableName() string {
	return "student_xp_totals"
}
