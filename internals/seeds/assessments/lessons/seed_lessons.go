package lessons

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"stepup_backend/internals/features/assessments/levels/model"
)

// SeedLessons fills every active age rung with its 25-lesson sequence per
// subject. Idempotent: rungs that already carry lessons for a subject are
// skipped wholesale.
func SeedLessons(db *gorm.DB, subjects []model.AssessmentSubject) {
	log.Println("📥 Seeding lessons for the age ladder...")

	var rungs []model.AgeLevelModel
	if err := db.Where("age_level_is_active = TRUE").Find(&rungs).Error; err != nil {
		log.Printf("❌ Failed to load age ladder: %v", err)
		return
	}

	created := 0
	for _, rung := range rungs {
		for _, subject := range subjects {
			var existing int64
			if err := db.Model(&model.LessonModel{}).
				Where("lesson_age_level_id = ? AND lesson_subject = ?", rung.AgeLevelID, subject).
				Count(&existing).Error; err != nil {
				log.Printf("❌ Failed to count lessons for %s %s: %v", rung.AgeLevelDisplayLabel, subject, err)
				continue
			}
			if existing > 0 {
				continue
			}

			batch := make([]model.LessonModel, 0, model.LessonsPerLevel)
			for n := 1; n <= model.LessonsPerLevel; n++ {
				batch = append(batch, model.LessonModel{
					LessonAgeLevelID:      rung.AgeLevelID,
					LessonSubject:         subject,
					LessonNumber:          n,
					LessonTitle:           fmt.Sprintf("%s %s Lesson %d", rung.AgeLevelDisplayLabel, subject, n),
					LessonDifficultyScore: 1 + (n-1)/5,
				})
			}
			if err := db.Create(&batch).Error; err != nil {
				log.Printf("❌ Failed to insert lessons for %s %s: %v", rung.AgeLevelDisplayLabel, subject, err)
				continue
			}
			created += len(batch)
		}
	}

	log.Printf("✅ Lessons seeded: %d created", created)
}
