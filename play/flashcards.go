package play

import (
	"github.com/dare4net/ast4-lesson-builder/models"
)

type Flashcard struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

type flashcardsProps struct {
	Title string      `json:"title"`
	Cards []Flashcard `json:"cards"`
}

type flashcardsState struct {
	CurrentCard int  `json:"currentCard"`
	IsFlipped   bool `json:"isFlipped"`
	IsComplete  bool `json:"isComplete"`
}

// FlashcardsMachine pages through flip cards. It awards no points; flipping
// the last card marks the component complete.
type FlashcardsMachine struct {
	props flashcardsProps
	state flashcardsState
}

func NewFlashcardsMachine(comp models.Component) *FlashcardsMachine {
	m := &FlashcardsMachine{}
	_ = decode(comp.Props, &m.props)
	return m
}

func (m *FlashcardsMachine) Type() string { return "flashcards" }

func (m *FlashcardsMachine) Snapshot() models.ComponentState { return snapshot(m.state) }

func (m *FlashcardsMachine) Restore(state models.ComponentState) error {
	return decode(state, &m.state)
}

func (m *FlashcardsMachine) Dispatch(action Action, _ *ScoreContext, notify Notifier) error {
	switch action.Name {
	case ActionFlip:
		if len(m.props.Cards) == 0 {
			return nil
		}
		m.state.IsFlipped = !m.state.IsFlipped
		if m.state.IsFlipped && m.state.CurrentCard == len(m.props.Cards)-1 && !m.state.IsComplete {
			m.state.IsComplete = true
			notify.Notify(NotifyComplete)
		} else {
			notify.Notify(NotifyClick)
		}
	case ActionNext:
		if m.state.CurrentCard < len(m.props.Cards)-1 {
			m.state.CurrentCard++
			m.state.IsFlipped = false
			notify.Notify(NotifyClick)
		}
	case ActionPrev:
		if m.state.CurrentCard > 0 {
			m.state.CurrentCard--
			m.state.IsFlipped = false
			notify.Notify(NotifyClick)
		}
	default:
		return ErrUnknownAction
	}
	return nil
}
