package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestEffectiveMarks(t *testing.T) {
	assert.Equal(t, 5.0, TestQuestion{Marks: 5, Points: 3}.EffectiveMarks(), "marks wins over points")
	assert.Equal(t, 3.0, TestQuestion{Points: 3}.EffectiveMarks())
	assert.Equal(t, 1.0, TestQuestion{}.EffectiveMarks(), "defaults to 1")
	assert.Equal(t, 1.0, TestQuestion{Marks: -2}.EffectiveMarks(), "non-positive marks fall through")
}

func TestDecodeQuestions(t *testing.T) {
	m := &PromotionTestModel{
		PromotionTestQuestions: datatypes.JSON(`[{"id":"q1","type":"short_answer","text":"2+2?","correct_answer":"4","marks":2}]`),
	}

	qs, err := m.DecodeQuestions()
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "q1", qs[0].ID)
	require.NotNil(t, qs[0].CorrectAnswer)
	assert.Equal(t, "4", *qs[0].CorrectAnswer)
	assert.Equal(t, 2.0, qs[0].Marks)

	empty := &PromotionTestModel{}
	qs, err = empty.DecodeQuestions()
	require.NoError(t, err)
	assert.Empty(t, qs)

	bad := &PromotionTestModel{PromotionTestQuestions: datatypes.JSON(`{not json`)}
	_, err = bad.DecodeQuestions()
	assert.Error(t, err)
}
