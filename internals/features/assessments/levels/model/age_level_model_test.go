package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderKey(t *testing.T) {
	a := AgeLevelModel{AgeLevelYear: 7, AgeLevelMonth: 12}
	b := AgeLevelModel{AgeLevelYear: 8, AgeLevelMonth: 1}
	assert.Less(t, a.OrderKey(), b.OrderKey(), "7y12m orders before 8y1m")

	c := AgeLevelModel{AgeLevelYear: 7, AgeLevelMonth: 3}
	assert.Equal(t, 87, c.OrderKey())
}

func TestCalibratedYears(t *testing.T) {
	m := AgeLevelModel{AgeLevelYear: 9, AgeLevelMonth: 6}
	assert.InDelta(t, 9.5, m.CalibratedYears(), 0.001)
}

func TestAssessmentSubjectValid(t *testing.T) {
	for _, s := range AllSubjects {
		assert.True(t, s.Valid())
	}
	assert.False(t, AssessmentSubject("HISTORY").Valid())
	assert.False(t, AssessmentSubject("english").Valid(), "subjects are uppercase only")
	assert.False(t, AssessmentSubject("").Valid())
}
