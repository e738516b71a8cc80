package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	levelmodel "stepup_backend/internals/features/assessments/levels/model"
)

/* =========================================================
   PLACEMENT STATUS ENUM
========================================================= */

type PlacementStatus string

const (
	PlacementActive           PlacementStatus = "ACTIVE"
	PlacementPromotionPending PlacementStatus = "PROMOTION_PENDING"
	PlacementArchived         PlacementStatus = "ARCHIVED"
)

func (s PlacementStatus) Valid() bool {
	switch s {
	case PlacementActive, PlacementPromotionPending, PlacementArchived:
		return true
	}
	return false
}

/* =========================================================
   PLACEMENT (StudentAgeAssessment)
   Invariant: one non-archived row per (student, subject),
   enforced by the placement service, not just an index.
========================================================= */

type PlacementModel struct {
	PlacementID                  uuid.UUID                    `gorm:"column:placement_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"placement_id"`
	PlacementCentreID            uuid.UUID                    `gorm:"column:placement_centre_id;type:uuid;not null" json:"placement_centre_id"`
	PlacementStudentID           uuid.UUID                    `gorm:"column:placement_student_id;type:uuid;not null" json:"placement_student_id"`
	PlacementSubject             levelmodel.AssessmentSubject `gorm:"column:placement_subject;type:varchar(20);not null" json:"placement_subject"`
	PlacementCurrentAgeLevelID   uuid.UUID                    `gorm:"column:placement_current_age_level_id;type:uuid;not null" json:"placement_current_age_level_id"`
	PlacementInitialAgeLevelID   uuid.UUID                    `gorm:"column:placement_initial_age_level_id;type:uuid;not null" json:"placement_initial_age_level_id"` // immutable after creation
	PlacementCurrentLessonNumber int                          `gorm:"column:placement_current_lesson_number;not null;default:1" json:"placement_current_lesson_number"`
	PlacementLessonsCompleted    int                          `gorm:"column:placement_lessons_completed;not null;default:0" json:"placement_lessons_completed"` // 0..25
	PlacementReadyForPromotion   bool                         `gorm:"column:placement_ready_for_promotion;not null;default:false" json:"placement_ready_for_promotion"`
	PlacementStatus              PlacementStatus              `gorm:"column:placement_status;type:varchar(20);not null;default:'ACTIVE'" json:"placement_status"`
	PlacementPlacedByID          uuid.UUID                    `gorm:"column:placement_placed_by_id;type:uuid;not null" json:"placement_placed_by_id"`
	PlacementPlacedAt            time.Time                    `gorm:"column:placement_placed_at;not null" json:"placement_placed_at"`
	PlacementCreatedAt           time.Time                    `gorm:"column:placement_created_at;not null;autoCreateTime" json:"placement_created_at"`
	PlacementUpdatedAt           time.Time                    `gorm:"column:placement_updated_at;not null;autoUpdateTime" json:"placement_updated_at"`
	PlacementDeletedAt           gorm.DeletedAt               `gorm:"column:placement_deleted_at;index" json:"placement_deleted_at,omitempty"`
}

func (PlacementModel) TableName() string {
	return "student_age_assessments"
}

/* =========================================================
   PROGRESS RECOMPUTE (pure)
========================================================= */

// Progress is the recomputed counter set after the counted-completion set
// of a placement changes. counted is the number of MARKED/COMPLETED rows
// for the placement's *current* age level, so it stays within
// 0..LessonsPerLevel even after a promotion reset.
type Progress struct {
	LessonsCompleted    int
	CurrentLessonNumber int
	BecameReady         bool
}

// RecomputeProgress maps the counted total onto the placement counters.
// The readiness flip fires exactly once: a placement that is already ready
// never re-emits BecameReady.
func RecomputeProgress(counted int, alreadyReady bool) Progress {
	p := Progress{LessonsCompleted: counted}
	if counted < levelmodel.LessonsPerLevel {
		p.CurrentLessonNumber = counted + 1
	} else {
		p.CurrentLessonNumber = levelmodel.LessonsPerLevel
	}
	p.BecameReady = counted >= levelmodel.LessonsPerLevel && !alreadyReady
	return p
}
