package database

import (
	"log"

	historymodel "stepup_backend/internals/features/assessments/history/model"
	levelmodel "stepup_backend/internals/features/assessments/levels/model"
	placementmodel "stepup_backend/internals/features/assessments/placements/model"
	promotionmodel "stepup_backend/internals/features/assessments/promotions/model"
	notificationmodel "stepup_backend/internals/features/home/notifications/model"
	xpmodel "stepup_backend/internals/features/progress/xp/model"
	studentmodel "stepup_backend/internals/features/users/students/model"
)

// Migrate runs the schema migration for every table the engine owns. Gated
// behind MIGRATE=true; production schemas are managed by SQL migrations.
func Migrate() {
	log.Println("📦 Running schema migration...")

	if err := DB.AutoMigrate(
		&levelmodel.AgeLevelModel{},
		&levelmodel.LessonModel{},
		&studentmodel.StudentModel{},
		&placementmodel.PlacementModel{},
		&placementmodel.LessonCompletionModel{},
		&promotionmodel.PromotionTestModel{},
		&promotionmodel.PromotionAttemptModel{},
		&historymodel.AssessmentHistoryModel{},
		&notificationmodel.NotificationModel{},
		&notificationmodel.NotificationUserModel{},
		&xpmodel.XPLogModel{},
		&xpmodel.XPTotalModel{},
	); err != nil {
		log.Fatalf("❌ Schema migration failed: %v", err)
	}

	log.Println("✅ Schema migration complete.")
}
