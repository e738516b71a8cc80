// file: internals/features/assessments/promotions/service/classify.go
package service

import (
	"stepup_backend/internals/features/assessments/promotions/model"
)

/* =========================================================
   OUTCOME CLASSIFICATION + LADDER ARITHMETIC (pure)
========================================================= */

// Months advanced per outcome.
const (
	PromotedMonthDelta     = 1
	LevelSkippedMonthDelta = 2
)

// ClassifyOutcome maps a percentage score onto the promotion outcome.
// excellence wins over passing when both are met.
func ClassifyOutcome(percentage, passingScore, excellenceScore float64) model.AttemptOutcome {
	switch {
	case percentage >= excellenceScore:
		return model.OutcomeLevelSkipped
	case percentage >= passingScore:
		return model.OutcomePromoted
	default:
		return model.OutcomeFailed
	}
}

// MonthDelta returns how many calendar months the ladder advances for an
// outcome; 0 for anything that is not a promotion.
func MonthDelta(outcome model.AttemptOutcome) int {
	switch outcome {
	case model.OutcomePromoted:
		return PromotedMonthDelta
	case model.OutcomeLevelSkipped:
		return LevelSkippedMonthDelta
	default:
		return 0
	}
}

// AdvanceAgeMonths normalizes (year, month+delta) by rolling month over 12:
// month 13 becomes (year+1, month 1).
func AdvanceAgeMonths(year, month, delta int) (int, int) {
	total := year*12 + (month - 1) + delta
	return total / 12, total%12 + 1
}
