// file: internals/features/assessments/analytics/service/analytics_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	historymodel "stepup_backend/internals/features/assessments/history/model"
	levelmodel "stepup_backend/internals/features/assessments/levels/model"
	placementmodel "stepup_backend/internals/features/assessments/placements/model"
	promomodel "stepup_backend/internals/features/assessments/promotions/model"
)

/* =========================================================
   ANALYTICS AGGREGATOR
   Computed synchronously on read; no background jobs.
========================================================= */

// PassRateWindow is the trailing window for the promotion pass rate.
const PassRateWindow = 30 * 24 * time.Hour

type SubjectStats struct {
	Subject                 levelmodel.AssessmentSubject `json:"subject"`
	TotalPlacements         int                          `json:"total_placements"`
	ReadyForPromotion       int                          `json:"ready_for_promotion"`
	BelowLevel              int                          `json:"below_level"`
	AverageLessonsCompleted float64                      `json:"average_lessons_completed"`
}

type Summary struct {
	TotalPlacements      int                                   `json:"total_placements"`
	ReadyForPromotion    int                                   `json:"ready_for_promotion"`
	BandCounts           map[AgeBand]int                       `json:"band_counts"`
	SubjectStats         []SubjectStats                        `json:"subject_stats"`
	PromotionAttempts    int                                   `json:"promotion_attempts"`
	SuccessfulPromotions int                                   `json:"successful_promotions"`
	LevelSkips           int                                   `json:"level_skips"`
	PromotionPassRate    float64                               `json:"promotion_pass_rate"`
	RecentHistory        []historymodel.AssessmentHistoryModel `json:"recent_history"`
}

type AnalyticsService struct {
	DB *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db}
}

// placementRow is the flattened read model for the summary queries.
type placementRow struct {
	PlacementID        uuid.UUID
	Subject            levelmodel.AssessmentSubject
	LessonsCompleted   int
	ReadyForPromotion  bool
	AgeLevelYear       int
	AgeLevelMonth      int
	StudentDateOfBirth *time.Time
}

// ComputeSummary derives the centre dashboard: band distribution, subject
// breakdowns, and the trailing promotion pass rate. centreID is already
// tenant-scoped by the caller (uuid.Nil = all centres, super-role only).
func (s *AnalyticsService) ComputeSummary(ctx context.Context, centreID uuid.UUID) (*Summary, error) {
	now := time.Now()

	rows, err := s.loadPlacementRows(ctx, centreID)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		BandCounts: make(map[AgeBand]int),
	}

	perSubject := make(map[levelmodel.AssessmentSubject]*SubjectStats)
	lessonsTotal := make(map[levelmodel.AssessmentSubject]int)

	for _, r := range rows {
		sum.TotalPlacements++
		if r.ReadyForPromotion {
			sum.ReadyForPromotion++
		}

		band := BandUnknown
		if r.StudentDateOfBirth != nil {
			calibrated := float64(r.AgeLevelYear) + float64(r.AgeLevelMonth)/12.0
			band = ClassifyGap(AgeGap(calibrated, *r.StudentDateOfBirth, now))
		}
		sum.BandCounts[band]++

		st, ok := perSubject[r.Subject]
		if !ok {
			st = &SubjectStats{Subject: r.Subject}
			perSubject[r.Subject] = st
		}
		st.TotalPlacements++
		if r.ReadyForPromotion {
			st.ReadyForPromotion++
		}
		if band.BelowLevel() {
			st.BelowLevel++
		}
		lessonsTotal[r.Subject] += r.LessonsCompleted
	}

	for _, subject := range levelmodel.AllSubjects {
		st, ok := perSubject[subject]
		if !ok {
			continue
		}
		st.AverageLessonsCompleted = Round1(float64(lessonsTotal[subject]) / float64(st.TotalPlacements))
		sum.SubjectStats = append(sum.SubjectStats, *st)
	}

	// Trailing-window pass rate. The denominator counts attempts *started*
	// in the window; LEVEL_SKIPPED is surfaced separately and deliberately
	// not folded into the rate.
	windowStart := now.Add(-PassRateWindow)
	attemptQ := func() *gorm.DB {
		q := s.DB.WithContext(ctx).Model(&promomodel.PromotionAttemptModel{}).
			Where("promotion_attempt_started_at >= ?", windowStart)
		if centreID != uuid.Nil {
			q = q.Where("promotion_attempt_centre_id = ?", centreID)
		}
		return q
	}

	var attempts, promoted, skipped int64
	if err := attemptQ().Count(&attempts).Error; err != nil {
		return nil, err
	}
	if err := attemptQ().
		Where("promotion_attempt_outcome = ?", promomodel.OutcomePromoted).
		Count(&promoted).Error; err != nil {
		return nil, err
	}
	if err := attemptQ().
		Where("promotion_attempt_outcome = ?", promomodel.OutcomeLevelSkipped).
		Count(&skipped).Error; err != nil {
		return nil, err
	}

	sum.PromotionAttempts = int(attempts)
	sum.SuccessfulPromotions = int(promoted)
	sum.LevelSkips = int(skipped)
	sum.PromotionPassRate = PassRate(int(promoted), int(attempts))

	histQ := s.DB.WithContext(ctx).Model(&historymodel.AssessmentHistoryModel{}).
		Order("history_created_at DESC").
		Limit(10)
	if centreID != uuid.Nil {
		histQ = histQ.Where("history_centre_id = ?", centreID)
	}
	if err := histQ.Find(&sum.RecentHistory).Error; err != nil {
		return nil, err
	}

	return sum, nil
}

func (s *AnalyticsService) loadPlacementRows(ctx context.Context, centreID uuid.UUID) ([]placementRow, error) {
	q := s.DB.WithContext(ctx).
		Table("student_age_assessments").
		Select(`student_age_assessments.placement_id,
			student_age_assessments.placement_subject AS subject,
			student_age_assessments.placement_lessons_completed AS lessons_completed,
			student_age_assessments.placement_ready_for_promotion AS ready_for_promotion,
			assessment_age_levels.age_level_year,
			assessment_age_levels.age_level_month,
			students.student_date_of_birth`).
		Joins("JOIN assessment_age_levels ON assessment_age_levels.age_level_id = student_age_assessments.placement_current_age_level_id").
		Joins("JOIN students ON students.student_id = student_age_assessments.placement_student_id").
		Where("student_age_assessments.placement_status <> ?", placementmodel.PlacementArchived).
		Where("student_age_assessments.placement_deleted_at IS NULL")
	if centreID != uuid.Nil {
		q = q.Where("student_age_assessments.placement_centre_id = ?", centreID)
	}

	var rows []placementRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// PassRate is successful/attempts rounded to 3 decimals; 0 when there were
// no attempts.
func PassRate(successful, attempts int) float64 {
	if attempts == 0 {
		return 0
	}
	rate := float64(successful) / float64(attempts)
	return float64(int(rate*1000+0.5)) / 1000
}
