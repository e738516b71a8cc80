package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stepup_backend/internals/features/assessments/promotions/model"
)

func TestClassifyOutcome(t *testing.T) {
	const passing, excellence = 70.0, 95.0

	tests := []struct {
		name       string
		percentage float64
		want       model.AttemptOutcome
	}{
		{"below passing fails", 69.9, model.OutcomeFailed},
		{"passing boundary promotes", 70, model.OutcomePromoted},
		{"between thresholds promotes", 94.9, model.OutcomePromoted},
		{"excellence boundary skips", 95, model.OutcomeLevelSkipped},
		{"perfect skips", 100, model.OutcomeLevelSkipped},
		{"zero fails", 0, model.OutcomeFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyOutcome(tt.percentage, passing, excellence))
		})
	}
}

func TestMonthDelta(t *testing.T) {
	assert.Equal(t, 1, MonthDelta(model.OutcomePromoted))
	assert.Equal(t, 2, MonthDelta(model.OutcomeLevelSkipped))
	assert.Equal(t, 0, MonthDelta(model.OutcomeFailed))
	assert.Equal(t, 0, MonthDelta(model.OutcomeBorderline))
	assert.Equal(t, 0, MonthDelta(model.OutcomePending))
}

func TestAdvanceAgeMonths(t *testing.T) {
	tests := []struct {
		name                string
		year, month, delta  int
		wantYear, wantMonth int
	}{
		{"simple advance", 7, 3, 1, 7, 4},
		{"year rollover", 7, 12, 1, 8, 1},
		{"skip across year boundary", 7, 11, 2, 8, 1},
		{"skip rollover from december", 7, 12, 2, 8, 2},
		{"no delta", 9, 6, 0, 9, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m := AdvanceAgeMonths(tt.year, tt.month, tt.delta)
			assert.Equal(t, tt.wantYear, y)
			assert.Equal(t, tt.wantMonth, m)
		})
	}
}
