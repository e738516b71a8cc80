package service

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	xpmodel "stepup_backend/internals/features/progress/xp/model"
)

// Award appends an XP log row and bumps the student's running total. It is
// called inside the caller's transaction so the award commits or rolls back
// with the promotion itself. The (source_kind, source_id) unique index makes
// repeat awards for the same source a no-op.
func Award(db *gorm.DB, centreID, studentID uuid.UUID, amount int, source xpmodel.XPSource, sourceKind string, sourceID uuid.UUID, description string) error {
	log.Printf("[SERVICE] xp.Award student=%s amount=%d source=%s source_id=%s",
		studentID, amount, source, sourceID)

	entry := xpmodel.XPLogModel{
		XPLogCentreID:    centreID,
		XPLogStudentID:   studentID,
		XPLogAmount:      amount,
		XPLogSource:      source,
		XPLogSourceID:    sourceID,
		XPLogSourceKind:  sourceKind,
		XPLogDescription: description,
	}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "xp_log_source_id"}, {Name: "xp_log_source_kind"}},
		DoNothing: true,
	}).Create(&entry)
	if res.Error != nil {
		log.Println("[ERROR] insert student_xp_logs failed:", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		// duplicate source, total already counted
		return nil
	}

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "xp_total_student_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"xp_total_points":     gorm.Expr("student_xp_totals.xp_total_points + ?", amount),
			"xp_total_updated_at": time.Now(),
		}),
	}).Create(&xpmodel.XPTotalModel{
		XPTotalStudentID: studentID,
		XPTotalPoints:    amount,
	}).Error
}
