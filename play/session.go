package play

import (
	"context"
	"fmt"
	"log"

	"github.com/dare4net/ast4-lesson-builder/models"
	"github.com/dare4net/ast4-lesson-builder/registry"
)

// Saver persists the session's full componentsState map. Implementations
// live at the store boundary; the session only sees success or failure.
type Saver interface {
	SaveInteraction(ctx context.Context, userID, lessonID string, states map[string]models.ComponentState, completed bool) error
}

// Session owns one user's playback of one lesson: every component's state
// machine, the componentsState map mirrored into the interaction record, and
// the score context shared by all scored components.
type Session struct {
	UserID   string
	LessonID string

	lesson   models.Lesson
	score    ScoreContext
	states   map[string]models.ComponentState
	machines map[string]Machine
	saver    Saver
	notifier Notifier

	saveErr error
}

// NewSession builds a session, adopting any previously saved component
// states verbatim and replaying them into the score so a resumed lesson
// shows the right score immediately.
func NewSession(lesson models.Lesson, userID string, saved map[string]models.ComponentState, saver Saver, notifier Notifier) *Session {
	if notifier == nil {
		notifier = NoFeedback
	}
	states := make(map[string]models.ComponentState, len(saved))
	for id, st := range saved {
		states[id] = st
	}
	return &Session{
		UserID:   userID,
		LessonID: lesson.ID,
		lesson:   lesson,
		states:   states,
		machines: map[string]Machine{},
		saver:    saver,
		notifier: notifier,
		score: ScoreContext{
			Score:         ReplayScore(lesson, states),
			TotalPossible: LessonTotalPossible(lesson),
		},
	}
}

// Score returns the current score context.
func (s *Session) Score() ScoreContext { return s.score }

// States returns the live componentsState map.
func (s *Session) States() map[string]models.ComponentState { return s.states }

// SaveErr returns the error of the most recent persistence attempt, nil when
// it succeeded. A failed save never discards in-memory state.
func (s *Session) SaveErr() error { return s.saveErr }

// Completed reports whether every scored component in the lesson has been
// finished.
func (s *Session) Completed() bool {
	any := false
	for _, slide := range s.lesson.Slides {
		for _, comp := range slide.Components {
			if !registry.IsScored(comp.Type) {
				continue
			}
			any = true
			state, ok := s.states[comp.ID]
			if !ok || !IsComplete(comp, state) {
				return false
			}
		}
	}
	return any
}

// Mount returns a component's state for rendering, creating and immediately
// persisting a fresh snapshot when no saved slot exists. Persisting the
// first snapshot pins any randomized presentation order, so a second viewer
// or a reload sees the same arrangement.
func (s *Session) Mount(ctx context.Context, componentID string) (models.ComponentState, error) {
	machine, fresh, err := s.machineFor(componentID)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, nil
	}
	state := machine.Snapshot()
	if fresh {
		s.states[componentID] = state
		s.persist(ctx)
	}
	return state, nil
}

// Dispatch applies one user action to a component's machine, snapshots the
// resulting state into the componentsState map, and persists the map. The
// persisted write always reflects the post-transition state.
func (s *Session) Dispatch(ctx context.Context, componentID string, action Action) (models.ComponentState, error) {
	machine, _, err := s.machineFor(componentID)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, fmt.Errorf("component %q is not interactive", componentID)
	}

	if err := machine.Dispatch(action, &s.score, s.notifier); err != nil {
		return nil, err
	}

	state := machine.Snapshot()
	s.states[componentID] = state
	s.persist(ctx)
	return state, nil
}

// machineFor returns the live machine for a component, restoring it from the
// saved slot when one exists. The bool reports whether the machine was
// freshly initialized. A nil machine with nil error means the component is
// not interactive.
func (s *Session) machineFor(componentID string) (Machine, bool, error) {
	if m, ok := s.machines[componentID]; ok {
		return m, false, nil
	}
	comp, ok := s.lesson.FindComponent(componentID)
	if !ok {
		return nil, false, fmt.Errorf("component %q in lesson %q: %w", componentID, s.LessonID, ErrComponentNotFound)
	}
	machine, interactive := NewMachine(comp)
	if !interactive {
		return nil, false, nil
	}

	fresh := true
	if saved, ok := s.states[componentID]; ok {
		if err := machine.Restore(saved); err != nil {
			log.Println("Error restoring component state, reinitializing:", err)
		} else {
			fresh = false
		}
	}
	s.machines[componentID] = machine
	return machine, fresh, nil
}

func (s *Session) persist(ctx context.Context) {
	if s.saver == nil {
		return
	}
	s.saveErr = s.saver.SaveInteraction(ctx, s.UserID, s.LessonID, s.states, s.Completed())
	if s.saveErr != nil {
		// Keep the in-memory state; the caller surfaces a non-blocking
		// notice and the next transition retries the save.
		log.Println("Error saving interaction state:", s.saveErr)
	}
}
