package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeProgress(t *testing.T) {
	cases := []struct {
		name         string
		counted      int
		alreadyReady bool
		wantLessons  int
		wantCurrent  int
		wantReady    bool
	}{
		{name: "fresh placement", counted: 0, alreadyReady: false, wantLessons: 0, wantCurrent: 1, wantReady: false},
		{name: "mid level", counted: 12, alreadyReady: false, wantLessons: 12, wantCurrent: 13, wantReady: false},
		{name: "one short of threshold", counted: 24, alreadyReady: false, wantLessons: 24, wantCurrent: 25, wantReady: false},
		{name: "threshold reached", counted: 25, alreadyReady: false, wantLessons: 25, wantCurrent: 25, wantReady: true},
		{name: "already ready never re-flips", counted: 25, alreadyReady: true, wantLessons: 25, wantCurrent: 25, wantReady: false},
		{name: "first lesson after promotion reset", counted: 1, alreadyReady: false, wantLessons: 1, wantCurrent: 2, wantReady: false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			p := RecomputeProgress(tt.counted, tt.alreadyReady)
			assert.Equal(t, tt.wantLessons, p.LessonsCompleted)
			assert.Equal(t, tt.wantCurrent, p.CurrentLessonNumber)
			assert.Equal(t, tt.wantReady, p.BecameReady)
		})
	}
}
