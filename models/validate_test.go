package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLesson() Lesson {
	return Lesson{
		ID:    "lesson-1",
		Title: "Intro to Loops",
		Slides: []Slide{
			{
				ID:    "slide-1",
				Title: "What is a loop?",
				Components: []Component{
					{ID: "c1", Type: "paragraph", Props: map[string]any{"text": "hi"}},
				},
			},
			{
				ID:    "slide-2",
				Title: "Try it",
				Components: []Component{
					{ID: "c2", Type: "quiz", Props: map[string]any{"questions": []any{}}},
				},
			},
		},
	}
}

func TestValidateLesson(t *testing.T) {
	assert.NoError(t, ValidateLesson(validLesson()))
}

func TestValidateLessonMissingID(t *testing.T) {
	lesson := validLesson()
	lesson.ID = ""
	assert.Error(t, ValidateLesson(lesson))
}

func TestValidateLessonEmptySlides(t *testing.T) {
	lesson := validLesson()
	lesson.Slides = nil
	assert.Error(t, ValidateLesson(lesson))
}

func TestValidateLessonMissingComponentProps(t *testing.T) {
	lesson := validLesson()
	lesson.Slides[0].Components[0].Props = nil
	assert.Error(t, ValidateLesson(lesson))
}

func TestValidateLessonDuplicateComponentIDAcrossSlides(t *testing.T) {
	lesson := validLesson()
	lesson.Slides[1].Components[0].ID = "c1"
	err := ValidateLesson(lesson)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate component id")
}

func TestParseLessonRejectsMalformedJSON(t *testing.T) {
	_, err := ParseLesson([]byte("{not json"))
	assert.Error(t, err)
}

func TestParseLessonRejectsInvalidDocumentWhole(t *testing.T) {
	_, err := ParseLesson([]byte(`{"id":"x","slides":[]}`))
	assert.Error(t, err)
}

func TestFindComponent(t *testing.T) {
	lesson := validLesson()
	comp, ok := lesson.FindComponent("c2")
	require.True(t, ok)
	assert.Equal(t, "quiz", comp.Type)

	_, ok = lesson.FindComponent("missing")
	assert.False(t, ok)
}

func TestRemoveSlide(t *testing.T) {
	lesson := validLesson()
	require.NoError(t, lesson.RemoveSlide(0))
	assert.Len(t, lesson.Slides, 1)
	assert.Equal(t, "slide-2", lesson.Slides[0].ID)
}

func TestRemoveLastSlideFails(t *testing.T) {
	lesson := validLesson()
	require.NoError(t, lesson.RemoveSlide(1))
	assert.Error(t, lesson.RemoveSlide(0))
}
