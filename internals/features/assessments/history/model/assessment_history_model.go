package model

import (
	"time"

	"github.com/google/uuid"
)

/* =========================================================
   ASSESSMENT HISTORY (append-only audit)
========================================================= */

type HistoryChangeType string

const (
	ChangeInitialPlacement HistoryChangeType = "INITIAL_PLACEMENT"
	ChangePromoted         HistoryChangeType = "PROMOTED"
	ChangeLevelSkipped     HistoryChangeType = "LEVEL_SKIPPED"
	ChangeRegressed        HistoryChangeType = "REGRESSED"
	ChangeManualOverride   HistoryChangeType = "MANUAL_OVERRIDE"
)

func (t HistoryChangeType) Valid() bool {
	switch t {
	case ChangeInitialPlacement, ChangePromoted, ChangeLevelSkipped, ChangeRegressed, ChangeManualOverride:
		return true
	}
	return false
}

// AssessmentHistoryModel rows are written once and never updated or deleted;
// there is deliberately no updated_at / deleted_at.
type AssessmentHistoryModel struct {
	HistoryID             uuid.UUID         `gorm:"column:history_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"history_id"`
	HistoryCentreID       uuid.UUID         `gorm:"column:history_centre_id;type:uuid;not null" json:"history_centre_id"`
	HistoryStudentID      uuid.UUID         `gorm:"column:history_student_id;type:uuid;not null;index" json:"history_student_id"`
	HistoryPlacementID    uuid.UUID         `gorm:"column:history_placement_id;type:uuid;not null;index" json:"history_placement_id"`
	HistoryFromAgeLevelID *uuid.UUID        `gorm:"column:history_from_age_level_id;type:uuid" json:"history_from_age_level_id,omitempty"`
	HistoryToAgeLevelID   uuid.UUID         `gorm:"column:history_to_age_level_id;type:uuid;not null" json:"history_to_age_level_id"`
	HistoryChangeType     HistoryChangeType `gorm:"column:history_change_type;type:varchar(20);not null" json:"history_change_type"`
	HistoryReason         *string           `gorm:"column:history_reason;type:text" json:"history_reason,omitempty"`
	HistoryTestScore      *float64          `gorm:"column:history_test_score" json:"history_test_score,omitempty"`
	HistoryChangedByID    uuid.UUID         `gorm:"column:history_changed_by_id;type:uuid;not null" json:"history_changed_by_id"`
	HistoryCreatedAt      time.Time         `gorm:"column:history_created_at;not null;autoCreateTime" json:"history_created_at"`
}

func (AssessmentHistoryModel) TableName() string {
	return "assessment_histories"
}
