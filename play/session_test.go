package play

import (
	"context"
	"errors"
	"testing"

	"github.com/dare4net/ast4-lesson-builder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySaver struct {
	saves     int
	states    map[string]models.ComponentState
	completed bool
}

func (s *memorySaver) SaveInteraction(_ context.Context, _, _ string, states map[string]models.ComponentState, completed bool) error {
	s.saves++
	s.states = make(map[string]models.ComponentState, len(states))
	for id, st := range states {
		s.states[id] = st
	}
	s.completed = completed
	return nil
}

type failingSaver struct{}

func (failingSaver) SaveInteraction(context.Context, string, string, map[string]models.ComponentState, bool) error {
	return errors.New("connection refused")
}

func TestSessionDispatchPersistsState(t *testing.T) {
	saver := &memorySaver{}
	session := NewSession(scoredLesson(), "user-1", nil, saver, nil)

	state, err := session.Dispatch(context.Background(), "q1", Action{Name: ActionSelect, OptionID: "b"})
	require.NoError(t, err)
	assert.Equal(t, "b", state["selectedOption"])

	_, err = session.Dispatch(context.Background(), "q1", Action{Name: ActionCheck})
	require.NoError(t, err)

	assert.Equal(t, 10, session.Score().Score)
	assert.Equal(t, 45, session.Score().TotalPossible)
	require.NotNil(t, saver.states["q1"])
	assert.Equal(t, true, saver.states["q1"]["isAnswered"])
}

func TestSessionResumeKeepsPresentationOrder(t *testing.T) {
	comp := dragDropComponent()
	comp.Props["shuffled"] = true
	lesson := models.Lesson{
		ID:    "shuffle-lesson",
		Title: "Shuffle",
		Slides: []models.Slide{
			{ID: "s1", Title: "Only", Components: []models.Component{comp}},
		},
	}
	saver := &memorySaver{}

	first := NewSession(lesson, "user-1", nil, saver, nil)
	state, err := first.Mount(context.Background(), "d1")
	require.NoError(t, err)
	require.NotNil(t, state["order"])
	require.Equal(t, 1, saver.saves)

	// Every later mount restores the pinned order instead of reshuffling.
	for i := 0; i < 5; i++ {
		resumed := NewSession(lesson, "user-1", saver.states, saver, nil)
		state2, err := resumed.Mount(context.Background(), "d1")
		require.NoError(t, err)
		assert.Equal(t, state["order"], state2["order"])
	}
}

func TestSessionResumeReplaysScore(t *testing.T) {
	lesson := scoredLesson()
	saver := &memorySaver{}

	first := NewSession(lesson, "user-1", nil, saver, nil)
	_, err := first.Dispatch(context.Background(), "q1", Action{Name: ActionSelect, OptionID: "b"})
	require.NoError(t, err)
	_, err = first.Dispatch(context.Background(), "q1", Action{Name: ActionCheck})
	require.NoError(t, err)
	require.Equal(t, 10, first.Score().Score)

	resumed := NewSession(lesson, "user-1", saver.states, saver, nil)
	assert.Equal(t, 10, resumed.Score().Score)
}

func TestSessionResumedRecheckAwardsNothing(t *testing.T) {
	lesson := scoredLesson()
	saver := &memorySaver{}

	first := NewSession(lesson, "user-1", nil, saver, nil)
	_, err := first.Dispatch(context.Background(), "q1", Action{Name: ActionSelect, OptionID: "b"})
	require.NoError(t, err)
	_, err = first.Dispatch(context.Background(), "q1", Action{Name: ActionCheck})
	require.NoError(t, err)

	resumed := NewSession(lesson, "user-1", saver.states, saver, nil)
	_, err = resumed.Dispatch(context.Background(), "q1", Action{Name: ActionCheck})
	require.NoError(t, err)

	assert.Equal(t, 10, resumed.Score().Score)
}

func TestSessionSaveFailureKeepsState(t *testing.T) {
	session := NewSession(scoredLesson(), "user-1", nil, failingSaver{}, nil)

	state, err := session.Dispatch(context.Background(), "q1", Action{Name: ActionSelect, OptionID: "b"})
	require.NoError(t, err)

	assert.Error(t, session.SaveErr())
	assert.Equal(t, "b", state["selectedOption"])
	assert.Equal(t, "b", session.States()["q1"]["selectedOption"])
}

func TestSessionRejectsNonInteractiveComponent(t *testing.T) {
	session := NewSession(scoredLesson(), "user-1", nil, nil, nil)
	_, err := session.Dispatch(context.Background(), "p1", Action{Name: ActionCheck})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrComponentNotFound)
}

func TestSessionUnknownComponentIsNotFound(t *testing.T) {
	session := NewSession(scoredLesson(), "user-1", nil, nil, nil)
	_, err := session.Dispatch(context.Background(), "ghost", Action{Name: ActionCheck})
	assert.ErrorIs(t, err, ErrComponentNotFound)
}

func TestSessionBadPayloadIsNotNotFound(t *testing.T) {
	session := NewSession(scoredLesson(), "user-1", nil, nil, nil)

	// d1 exists; the order payload is malformed.
	_, err := session.Dispatch(context.Background(), "d1", Action{Name: ActionArrange, Order: []string{"a"}})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrComponentNotFound)

	_, err = session.Dispatch(context.Background(), "d1", Action{Name: "explode"})
	require.ErrorIs(t, err, ErrUnknownAction)
	assert.NotErrorIs(t, err, ErrComponentNotFound)
}

func TestSessionMountNonInteractiveReturnsNil(t *testing.T) {
	session := NewSession(scoredLesson(), "user-1", nil, nil, nil)
	state, err := session.Mount(context.Background(), "p1")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestSessionCompleted(t *testing.T) {
	lesson := models.Lesson{
		ID:    "short",
		Title: "Short",
		Slides: []models.Slide{
			{ID: "s1", Title: "Only", Components: []models.Component{dragDropComponent()}},
		},
	}
	session := NewSession(lesson, "user-1", nil, nil, nil)
	assert.False(t, session.Completed())

	_, err := session.Dispatch(context.Background(), "d1", Action{Name: ActionArrange, Order: []string{"a", "b", "c"}})
	require.NoError(t, err)
	_, err = session.Dispatch(context.Background(), "d1", Action{Name: ActionCheck})
	require.NoError(t, err)

	assert.True(t, session.Completed())
}

func TestSessionNoScoredComponentsNeverCompleted(t *testing.T) {
	lesson := models.Lesson{
		ID:    "content-only",
		Title: "Content",
		Slides: []models.Slide{
			{ID: "s1", Title: "Read", Components: []models.Component{
				{ID: "p1", Type: "paragraph", Props: map[string]any{"text": "hi"}},
			}},
		},
	}
	session := NewSession(lesson, "user-1", nil, nil, nil)
	assert.False(t, session.Completed())
}
