// file: internals/features/assessments/promotions/service/autograde.go
package service

import (
	"math"
	"strings"

	"stepup_backend/internals/features/assessments/promotions/model"
)

/* =========================================================
   AUTO-GRADING ENGINE (pure)
========================================================= */

type GradeResult struct {
	Score           float64
	PercentageScore float64
	GradedAnswers   []model.GradedAnswer
}

// Grade scores a submission against the test's answer key. Comparison is
// case-insensitive, whitespace-trimmed string equality; a match earns the
// question's full marks, no partial credit. percentage = 0 when totalMarks
// is 0.
func Grade(questions []model.TestQuestion, answers []model.AttemptAnswer, totalMarks float64) GradeResult {
	byQuestion := make(map[string]string, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a.Answer
	}

	res := GradeResult{
		GradedAnswers: make([]model.GradedAnswer, 0, len(questions)),
	}

	for _, q := range questions {
		marks := q.EffectiveMarks()
		given := byQuestion[q.ID]

		graded := model.GradedAnswer{
			QuestionID:    q.ID,
			Answer:        given,
			CorrectAnswer: q.CorrectAnswer,
		}
		if q.CorrectAnswer != nil && answersMatch(given, *q.CorrectAnswer) {
			graded.IsCorrect = true
			graded.MarksAwarded = marks
			res.Score += marks
		}
		res.GradedAnswers = append(res.GradedAnswers, graded)
	}

	res.PercentageScore = Percentage(res.Score, totalMarks)
	return res
}

func answersMatch(given, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(correct))
}

// Percentage rounds raw/total*100 to 1 decimal; 0 when total is 0.
func Percentage(raw, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(raw/total*1000) / 10
}

// StripCorrectAnswers removes the answer key from a graded payload before
// it is shown to a learner-role caller.
func StripCorrectAnswers(graded []model.GradedAnswer) []model.GradedAnswer {
	out := make([]model.GradedAnswer, len(graded))
	for i, g := range graded {
		g.CorrectAnswer = nil
		out[i] = g
	}
	return out
}
