package play

import (
	"fmt"
	"testing"

	"github.com/dare4net/ast4-lesson-builder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blankComponent() models.Component {
	return models.Component{
		ID:   "b1",
		Type: "fillInTheBlank",
		Props: map[string]any{
			"title":  "Fill in the blanks",
			"text":   "A baby dog is a {{blank}}, a baby cat is a {{blank}}, a baby fish is a {{blank}}.",
			"points": 10,
			"blanks": []any{
				map[string]any{"id": "x", "answer": "puppy"},
				map[string]any{"id": "y", "answer": "kitten", "alternatives": []any{"kitty"}},
				map[string]any{"id": "z", "answer": "fry"},
			},
		},
	}
}

func TestBlankAllCorrect(t *testing.T) {
	m := NewBlankMachine(blankComponent())
	score := &ScoreContext{}

	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "x", Value: "puppy"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "y", Value: "kitten"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "z", Value: "fry"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionCheck}, score, NoFeedback))

	assert.True(t, m.state.IsCorrect)
	assert.Equal(t, 10, score.Score)
}

func TestBlankPartialCreditRounds(t *testing.T) {
	m := NewBlankMachine(blankComponent())
	score := &ScoreContext{}

	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "x", Value: "puppy"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "y", Value: "kitty"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "z", Value: "shark"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionCheck}, score, NoFeedback))

	// 2 of 3 blanks at 10 points rounds to 7.
	assert.False(t, m.state.IsCorrect)
	assert.Equal(t, 2, m.state.CorrectCount)
	assert.Equal(t, 7, m.state.EarnedPoints)
	assert.Equal(t, 7, score.Score)
}

func TestBlankRetryAwardsOnlyImprovement(t *testing.T) {
	m := NewBlankMachine(blankComponent())
	score := &ScoreContext{}

	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "x", Value: "puppy"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "y", Value: "kitten"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionCheck}, score, NoFeedback))
	assert.Equal(t, 7, score.Score)

	require.NoError(t, m.Dispatch(Action{Name: ActionReset}, score, NoFeedback))

	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "x", Value: "puppy"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "y", Value: "kitten"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "z", Value: "fry"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionCheck}, score, NoFeedback))

	// Second attempt earns 10 but only the 3-point improvement is added.
	assert.Equal(t, 10, score.Score)
	assert.Equal(t, 10, m.state.BestAwarded)
}

func TestBlankWorseRetryAwardsNothing(t *testing.T) {
	m := NewBlankMachine(blankComponent())
	score := &ScoreContext{}

	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "x", Value: "puppy"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "y", Value: "kitten"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionCheck}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionReset}, score, NoFeedback))

	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "x", Value: "puppy"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionCheck}, score, NoFeedback))

	assert.Equal(t, 7, score.Score)
	assert.Equal(t, 7, m.state.BestAwarded)
}

func TestBlankEmptyAnswerIncorrect(t *testing.T) {
	comp := blankComponent()
	comp.Props["blanks"] = []any{
		map[string]any{"id": "x", "answer": ""},
	}
	m := NewBlankMachine(comp)
	score := &ScoreContext{}

	require.NoError(t, m.Dispatch(Action{Name: ActionCheck}, score, NoFeedback))

	assert.False(t, m.state.IsCorrect)
	assert.Zero(t, score.Score)
}

func TestBlankCaseInsensitiveByDefault(t *testing.T) {
	m := NewBlankMachine(blankComponent())
	score := &ScoreContext{}

	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "x", Value: "PUPPY"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "y", Value: "Kitten"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "z", Value: "fry"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionCheck}, score, NoFeedback))

	assert.True(t, m.state.IsCorrect)
}

func TestBlankCaseSensitiveWhenConfigured(t *testing.T) {
	comp := blankComponent()
	comp.Props["caseSensitive"] = true
	m := NewBlankMachine(comp)
	score := &ScoreContext{}

	require.NoError(t, m.Dispatch(Action{Name: ActionInput, BlankID: "x", Value: "PUPPY"}, score, NoFeedback))
	require.NoError(t, m.Dispatch(Action{Name: ActionCheck}, score, NoFeedback))

	assert.False(t, m.state.Results["x"])
}

func TestCountBlankTokens(t *testing.T) {
	assert.Equal(t, 3, CountBlankTokens("a {{blank}} b {{blank}} c {{blank}}"))
	assert.Zero(t, CountBlankTokens("no markers here"))
}

func TestSyncBlanksGrowsAndShrinks(t *testing.T) {
	next := 0
	newID := func() string {
		next++
		return fmt.Sprintf("new-%d", next)
	}

	blanks := []Blank{{ID: "x", Answer: "puppy"}}

	grown := SyncBlanks("{{blank}} and {{blank}} and {{blank}}", blanks, newID)
	require.Len(t, grown, 3)
	assert.Equal(t, "puppy", grown[0].Answer)
	assert.Equal(t, "new-1", grown[1].ID)

	shrunk := SyncBlanks("just {{blank}}", grown, newID)
	require.Len(t, shrunk, 1)
	assert.Equal(t, "x", shrunk[0].ID)
}
