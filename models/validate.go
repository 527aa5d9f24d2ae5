package models

import (
	"encoding/json"
	"fmt"
)

// ParseLesson decodes and validates an imported lesson document. A document
// that fails validation is rejected whole; the caller must leave whatever it
// currently holds untouched.
func ParseLesson(data []byte) (Lesson, error) {
	var lesson Lesson
	if err := json.Unmarshal(data, &lesson); err != nil {
		return Lesson{}, fmt.Errorf("invalid lesson file: %v", err)
	}
	if err := ValidateLesson(lesson); err != nil {
		return Lesson{}, err
	}
	return lesson, nil
}

// ValidateLesson checks the import contract: a lesson needs an id and a
// non-empty slides array, every slide needs id, title and a components array,
// every component needs id, type and props.
func ValidateLesson(lesson Lesson) error {
	if lesson.ID == "" {
		return fmt.Errorf("invalid lesson: missing required field: id")
	}
	if len(lesson.Slides) == 0 {
		return fmt.Errorf("invalid lesson %q: slides must be a non-empty array", lesson.ID)
	}

	seen := make(map[string]bool)
	for i, slide := range lesson.Slides {
		if slide.ID == "" {
			return fmt.Errorf("invalid slide at index %d: missing required field: id", i)
		}
		if slide.Title == "" {
			return fmt.Errorf("invalid slide %q: missing required field: title", slide.ID)
		}
		if slide.Components == nil {
			return fmt.Errorf("invalid slide %q: components must be an array", slide.ID)
		}
		for j, comp := range slide.Components {
			if comp.ID == "" {
				return fmt.Errorf("invalid component at slide %q index %d: missing required field: id", slide.ID, j)
			}
			if comp.Type == "" {
				return fmt.Errorf("invalid component %q: missing required field: type", comp.ID)
			}
			if comp.Props == nil {
				return fmt.Errorf("invalid component %q: missing required field: props", comp.ID)
			}
			// Interaction state is keyed by component id alone, so ids must
			// be unique across the whole lesson, not just within a slide.
			if seen[comp.ID] {
				return fmt.Errorf("invalid lesson %q: duplicate component id %q", lesson.ID, comp.ID)
			}
			seen[comp.ID] = true
		}
	}
	return nil
}

// FindComponent looks a component up by id across all slides.
func (l Lesson) FindComponent(componentID string) (Component, bool) {
	for _, slide := range l.Slides {
		for _, comp := range slide.Components {
			if comp.ID == componentID {
				return comp, true
			}
		}
	}
	return Component{}, false
}

// RemoveSlide deletes the slide at the given index. Removing the last
// remaining slide is an error: a lesson's slides are never empty.
func (l *Lesson) RemoveSlide(index int) error {
	if index < 0 || index >= len(l.Slides) {
		return fmt.Errorf("slide index %d out of range", index)
	}
	if len(l.Slides) <= 1 {
		return fmt.Errorf("cannot remove the last slide of lesson %q", l.ID)
	}
	l.Slides = append(l.Slides[:index], l.Slides[index+1:]...)
	return nil
}
