package play

import (
	"github.com/dare4net/ast4-lesson-builder/models"
	"github.com/dare4net/ast4-lesson-builder/registry"
)

// NewMachine resolves a component's type to its state machine. The second
// return is false for content-only and unknown types, which have no
// interaction state.
func NewMachine(comp models.Component) (Machine, bool) {
	switch comp.Type {
	case "quiz":
		return NewQuizMachine(comp), true
	case "dragDrop":
		return NewDragDropMachine(comp), true
	case "matchingPairs":
		return NewMatchingMachine(comp), true
	case "fillInTheBlank":
		return NewBlankMachine(comp), true
	case "codeEditor":
		return NewCodeMachine(comp), true
	case "flashcards":
		return NewFlashcardsMachine(comp), true
	case "hotspot":
		return NewHotspotMachine(comp), true
	}
	return nil, false
}

// Render builds the display model for a component during playback. Content
// types echo their props; the score board reads the score context; unknown
// types get a placeholder instead of an error.
func Render(comp models.Component, score *ScoreContext) map[string]any {
	def, known := registry.Lookup(comp.Type)
	if !known {
		return map[string]any{
			"type":        "unimplemented",
			"sourceType":  comp.Type,
			"componentId": comp.ID,
			"message":     "This component type is not available yet",
		}
	}

	view := map[string]any{
		"type":        comp.Type,
		"componentId": comp.ID,
		"category":    def.Category,
		"props":       comp.Props,
	}
	if comp.Type == "scoreBoard" && score != nil {
		view["score"] = score.Score
		view["totalPossible"] = score.TotalPossible
	}
	return view
}

// PossiblePoints returns the points a single component contributes to
// totalPossible.
func PossiblePoints(comp models.Component) int {
	if !registry.IsScored(comp.Type) {
		return 0
	}
	if comp.Type == "quiz" {
		return quizPossiblePoints(comp)
	}
	var props struct {
		Points int `json:"points"`
	}
	_ = decode(comp.Props, &props)
	return props.Points
}

// EarnedPoints derives the points a component's persisted state has already
// contributed, used to rebuild the score on resume.
func EarnedPoints(comp models.Component, state models.ComponentState) int {
	switch comp.Type {
	case "quiz":
		return quizEarnedPoints(comp, state)
	case "dragDrop":
		return dragDropEarnedPoints(comp, state)
	case "matchingPairs":
		return matchingEarnedPoints(comp, state)
	case "fillInTheBlank":
		return blankEarnedPoints(comp, state)
	case "codeEditor":
		return codeEarnedPoints(comp, state)
	}
	return 0
}

// IsComplete reports whether a scored component's persisted state counts as
// finished for the lesson's completed flag.
func IsComplete(comp models.Component, state models.ComponentState) bool {
	switch comp.Type {
	case "quiz":
		return quizIsComplete(state)
	case "dragDrop":
		return dragDropIsComplete(state)
	case "matchingPairs":
		return matchingIsComplete(state)
	case "fillInTheBlank":
		return blankIsComplete(state)
	case "codeEditor":
		return codeIsComplete(state)
	}
	return false
}
