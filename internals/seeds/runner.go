package seeds

import (
	"gorm.io/gorm"

	levelmodel "stepup_backend/internals/features/assessments/levels/model"
	lessonSeeds "stepup_backend/internals/seeds/assessments/lessons"
	levelSeeds "stepup_backend/internals/seeds/assessments/levels"
)

// RunAllSeeds is invoked at boot when SEED=true. Every seeder is
// idempotent, so re-running on deploy is safe.
func RunAllSeeds(db *gorm.DB) {
	levelSeeds.SeedAgeLevels(db)
	lessonSeeds.SeedLessons(db, levelmodel.AllSubjects)
}
