package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyGap(t *testing.T) {
	tests := []struct {
		name string
		gap  float64
		want AgeBand
	}{
		{"well above", 1.5, BandAbove},
		{"above boundary inclusive", 0.5, BandAbove},
		{"just under above", 0.4, BandOnLevel},
		{"zero gap", 0, BandOnLevel},
		{"on-level lower bound inclusive", -0.5, BandOnLevel},
		{"slightly below", -0.6, BandSlightlyBelow},
		{"slightly-below lower bound inclusive", -1.0, BandSlightlyBelow},
		{"below", -1.1, BandBelow},
		{"below lower bound inclusive", -2.0, BandBelow},
		{"significantly below", -2.1, BandSignificantlyBelow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyGap(tt.gap))
		})
	}
}

func TestAgeBandBelowLevel(t *testing.T) {
	assert.False(t, BandAbove.BelowLevel())
	assert.False(t, BandOnLevel.BelowLevel())
	assert.False(t, BandSlightlyBelow.BelowLevel())
	assert.True(t, BandBelow.BelowLevel())
	assert.True(t, BandSignificantlyBelow.BelowLevel())
	assert.False(t, BandUnknown.BelowLevel())
}

func TestChronologicalAge(t *testing.T) {
	dob := time.Date(2018, 3, 15, 0, 0, 0, 0, time.UTC)
	at := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	age := ChronologicalAge(dob, at)
	assert.InDelta(t, 8.0, age, 0.01)
}

func TestAgeGap(t *testing.T) {
	dob := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// Calibrated 9.5y against a ~8.0y old student.
	gap := AgeGap(9.5, dob, at)
	assert.Equal(t, 1.5, gap)

	// Working below level.
	gap = AgeGap(6.5, dob, at)
	assert.Equal(t, -1.5, gap)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 1.5, Round1(1.45))
	assert.Equal(t, -1.5, Round1(-1.45))
	assert.Equal(t, 0.0, Round1(0.04))
	assert.Equal(t, 2.0, Round1(1.96))
}

func TestPassRate(t *testing.T) {
	assert.Equal(t, 0.0, PassRate(0, 0))
	assert.Equal(t, 1.0, PassRate(4, 4))
	assert.Equal(t, 0.5, PassRate(2, 4))
	assert.Equal(t, 0.667, PassRate(2, 3))
	assert.Equal(t, 0.333, PassRate(1, 3))
}
