package levels

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"stepup_backend/internals/features/assessments/levels/model"
)

// Age ladder bounds: the catalog runs from 4y1m to 13y12m in 1-month rungs.
const (
	minLadderYear = 4
	maxLadderYear = 13
)

// australianYear maps a calibrated age to the usual NSW school year.
func australianYear(age int) *string {
	var label string
	switch {
	case age <= 4:
		label = "Preschool"
	case age == 5:
		label = "Kindergarten"
	default:
		label = fmt.Sprintf("Year %d", age-5)
	}
	return &label
}

// SeedAgeLevels generates the full month-granular age ladder. Existing rungs
// are left untouched so the seeder can run on every boot.
func SeedAgeLevels(db *gorm.DB) {
	log.Println("📥 Seeding assessment age ladder...")

	created, skipped := 0, 0
	for year := minLadderYear; year <= maxLadderYear; year++ {
		for month := 1; month <= 12; month++ {
			var existing model.AgeLevelModel
			err := db.Where("age_level_year = ? AND age_level_month = ?", year, month).
				First(&existing).Error
			if err == nil {
				skipped++
				continue
			}

			rung := model.AgeLevelModel{
				AgeLevelYear:           year,
				AgeLevelMonth:          month,
				AgeLevelDisplayLabel:   fmt.Sprintf("Age %dy %dm", year, month),
				AgeLevelAustralianYear: australianYear(year),
				AgeLevelIsActive:       true,
			}
			if err := db.Create(&rung).Error; err != nil {
				log.Printf("❌ Failed to insert age level %dy %dm: %v", year, month, err)
				continue
			}
			created++
		}
	}

	log.Printf("✅ Age ladder seeded: %d created, %d already present", created, skipped)
}
