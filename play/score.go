package play

import (
	"github.com/dare4net/ast4-lesson-builder/models"
	"github.com/dare4net/ast4-lesson-builder/registry"
)

// ScoreContext is the session-scoped score accumulator threaded into every
// scored machine. Score only ever grows; the exactly-once guard lives in the
// machines, not here.
type ScoreContext struct {
	Score         int `json:"score"`
	TotalPossible int `json:"totalPossible"`
}

// AddPoints adds earned points to the running score.
func (s *ScoreContext) AddPoints(points int) {
	if points > 0 {
		s.Score += points
	}
}

// TotalPossible sums the points every scored component in the given list can
// award. A quiz contributes points per question, since each question is
// independently scorable.
func TotalPossible(components []models.Component) int {
	total := 0
	for _, comp := range components {
		if !registry.IsScored(comp.Type) {
			continue
		}
		total += PossiblePoints(comp)
	}
	return total
}

// LessonTotalPossible computes totalPossible over the whole lesson, the
// canonical scoring scope.
func LessonTotalPossible(lesson models.Lesson) int {
	total := 0
	for _, slide := range lesson.Slides {
		total += TotalPossible(slide.Components)
	}
	return total
}

// SlideTotalPossible computes totalPossible for a single slide.
func SlideTotalPossible(slide models.Slide) int {
	return TotalPossible(slide.Components)
}

// ReplayScore re-derives the earned score from persisted component state, so
// a resumed session shows the correct score immediately without waiting for
// the user to re-trigger any check.
func ReplayScore(lesson models.Lesson, states map[string]models.ComponentState) int {
	score := 0
	for _, slide := range lesson.Slides {
		for _, comp := range slide.Components {
			state, ok := states[comp.ID]
			if !ok {
				continue
			}
			score += EarnedPoints(comp, state)
		}
	}
	return score
}
