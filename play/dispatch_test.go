package play

import (
	"testing"

	"github.com/dare4net/ast4-lesson-builder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMachineInteractiveTypes(t *testing.T) {
	interactive := []models.Component{
		quizComponent(),
		dragDropComponent(),
		matchingComponent(),
		blankComponent(),
		codeComponent(),
		{ID: "f1", Type: "flashcards", Props: map[string]any{"cards": []any{}}},
		{ID: "h1", Type: "hotspot", Props: map[string]any{"hotspots": []any{}}},
	}
	for _, comp := range interactive {
		m, ok := NewMachine(comp)
		require.True(t, ok, comp.Type)
		assert.Equal(t, comp.Type, m.Type())
	}
}

func TestNewMachineContentTypes(t *testing.T) {
	for _, typ := range []string{"paragraph", "heading", "image", "scoreBoard", "nope"} {
		_, ok := NewMachine(models.Component{ID: "x", Type: typ, Props: map[string]any{}})
		assert.False(t, ok, typ)
	}
}

func TestRenderUnknownTypeGetsPlaceholder(t *testing.T) {
	view := Render(models.Component{ID: "v1", Type: "videoPlayer", Props: map[string]any{}}, nil)
	assert.Equal(t, "unimplemented", view["type"])
	assert.Equal(t, "videoPlayer", view["sourceType"])
}

func TestRenderScoreBoardInjectsScore(t *testing.T) {
	score := &ScoreContext{Score: 12, TotalPossible: 40}
	view := Render(models.Component{ID: "sb", Type: "scoreBoard", Props: map[string]any{}}, score)
	assert.Equal(t, 12, view["score"])
	assert.Equal(t, 40, view["totalPossible"])
}

func TestFlashcardsCompleteOnLastFlip(t *testing.T) {
	comp := models.Component{
		ID:   "f1",
		Type: "flashcards",
		Props: map[string]any{
			"cards": []any{
				map[string]any{"id": "c1", "front": "Loop", "back": "Repeats steps"},
				map[string]any{"id": "c2", "front": "Bug", "back": "A mistake in code"},
			},
		},
	}
	m := NewFlashcardsMachine(comp)

	require.NoError(t, m.Dispatch(Action{Name: ActionFlip}, nil, NoFeedback))
	assert.False(t, m.state.IsComplete)

	require.NoError(t, m.Dispatch(Action{Name: ActionNext}, nil, NoFeedback))
	assert.False(t, m.state.IsFlipped)

	require.NoError(t, m.Dispatch(Action{Name: ActionFlip}, nil, NoFeedback))
	assert.True(t, m.state.IsComplete)

	require.NoError(t, m.Dispatch(Action{Name: ActionPrev}, nil, NoFeedback))
	assert.Zero(t, m.state.CurrentCard)
}

func TestHotspotCompleteWhenAllRevealed(t *testing.T) {
	comp := models.Component{
		ID:   "h1",
		Type: "hotspot",
		Props: map[string]any{
			"imageUrl": "https://example.com/map.png",
			"hotspots": []any{
				map[string]any{"id": "s1", "label": "Nose", "x": 0.2, "y": 0.3},
				map[string]any{"id": "s2", "label": "Tail", "x": 0.8, "y": 0.5},
			},
		},
	}
	m := NewHotspotMachine(comp)

	require.NoError(t, m.Dispatch(Action{Name: ActionReveal, SpotID: "s1"}, nil, NoFeedback))
	assert.False(t, m.state.IsComplete)

	// Unknown spots are ignored.
	require.NoError(t, m.Dispatch(Action{Name: ActionReveal, SpotID: "zzz"}, nil, NoFeedback))
	assert.Len(t, m.state.Revealed, 1)

	require.NoError(t, m.Dispatch(Action{Name: ActionReveal, SpotID: "s2"}, nil, NoFeedback))
	assert.True(t, m.state.IsComplete)
}

func TestMachineSnapshotRestoreRoundTrip(t *testing.T) {
	m := NewMatchingMachine(matchingComponent())
	score := &ScoreContext{}
	require.NoError(t, m.Dispatch(Action{Name: ActionPair, LeftID: "p1", RightID: "p1"}, score, NoFeedback))

	restored := NewMatchingMachine(matchingComponent())
	require.NoError(t, restored.Restore(m.Snapshot()))

	assert.Equal(t, m.state.Matches, restored.state.Matches)
	assert.Equal(t, m.state.RightOrder, restored.state.RightOrder)
}
