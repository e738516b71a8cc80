package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stepup_backend/internals/features/assessments/promotions/model"
)

func strPtr(s string) *string { return &s }

func TestGrade(t *testing.T) {
	questions := []model.TestQuestion{
		{ID: "q1", CorrectAnswer: strPtr("Paris"), Marks: 2},
		{ID: "q2", CorrectAnswer: strPtr("42"), Points: 3},
		{ID: "q3", CorrectAnswer: strPtr("blue")},
	}

	t.Run("full marks with case and whitespace noise", func(t *testing.T) {
		res := Grade(questions, []model.AttemptAnswer{
			{QuestionID: "q1", Answer: "  PARIS "},
			{QuestionID: "q2", Answer: "42"},
			{QuestionID: "q3", Answer: "Blue"},
		}, 6)

		assert.Equal(t, 6.0, res.Score)
		assert.Equal(t, 100.0, res.PercentageScore)
		require.Len(t, res.GradedAnswers, 3)
		for _, g := range res.GradedAnswers {
			assert.True(t, g.IsCorrect)
		}
	})

	t.Run("marks fallback chain marks then points then 1", func(t *testing.T) {
		res := Grade(questions, []model.AttemptAnswer{
			{QuestionID: "q1", Answer: "Paris"},
		}, 6)
		assert.Equal(t, 2.0, res.Score)

		res = Grade(questions, []model.AttemptAnswer{
			{QuestionID: "q2", Answer: "42"},
		}, 6)
		assert.Equal(t, 3.0, res.Score)

		res = Grade(questions, []model.AttemptAnswer{
			{QuestionID: "q3", Answer: "blue"},
		}, 6)
		assert.Equal(t, 1.0, res.Score)
	})

	t.Run("wrong and missing answers earn nothing", func(t *testing.T) {
		res := Grade(questions, []model.AttemptAnswer{
			{QuestionID: "q1", Answer: "London"},
		}, 6)

		assert.Equal(t, 0.0, res.Score)
		assert.Equal(t, 0.0, res.PercentageScore)
		require.Len(t, res.GradedAnswers, 3)
		assert.False(t, res.GradedAnswers[0].IsCorrect)
		assert.Equal(t, "London", res.GradedAnswers[0].Answer)
		assert.Equal(t, "", res.GradedAnswers[1].Answer)
	})

	t.Run("question without answer key never scores", func(t *testing.T) {
		res := Grade([]model.TestQuestion{{ID: "q1", Marks: 5}}, []model.AttemptAnswer{
			{QuestionID: "q1", Answer: ""},
		}, 5)
		assert.Equal(t, 0.0, res.Score)
		assert.False(t, res.GradedAnswers[0].IsCorrect)
	})
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name  string
		raw   float64
		total float64
		want  float64
	}{
		{"zero total guards division", 5, 0, 0},
		{"exact", 3, 4, 75},
		{"rounds to one decimal", 2, 3, 66.7},
		{"rounds down", 1, 3, 33.3},
		{"full", 7, 7, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percentage(tt.raw, tt.total))
		})
	}
}

func TestStripCorrectAnswers(t *testing.T) {
	graded := []model.GradedAnswer{
		{QuestionID: "q1", Answer: "a", IsCorrect: true, MarksAwarded: 1, CorrectAnswer: strPtr("a")},
		{QuestionID: "q2", Answer: "b", CorrectAnswer: strPtr("c")},
	}

	stripped := StripCorrectAnswers(graded)

	require.Len(t, stripped, 2)
	for _, g := range stripped {
		assert.Nil(t, g.CorrectAnswer)
	}
	// The original slice keeps its key.
	assert.NotNil(t, graded[0].CorrectAnswer)

	assert.True(t, stripped[0].IsCorrect)
	assert.Equal(t, 1.0, stripped[0].MarksAwarded)
}
