package play

import (
	"fmt"

	"github.com/dare4net/ast4-lesson-builder/models"
)

type DragItem struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	CorrectIndex int    `json:"correctIndex"`
}

type dragDropProps struct {
	Title    string     `json:"title"`
	Items    []DragItem `json:"items"`
	Shuffled *bool      `json:"shuffled"`
	Points   int        `json:"points"`
}

type dragDropState struct {
	Order         []string        `json:"order"`
	IsSubmitted   bool            `json:"isSubmitted"`
	IsCorrect     bool            `json:"isCorrect"`
	Results       map[string]bool `json:"results,omitempty"`
	PointsAwarded bool            `json:"pointsAwarded"`
}

// DragDropMachine evaluates a user-arranged ordering against each item's
// correctIndex. Correctness is per item, so the renderer can flag exactly
// which positions are wrong.
type DragDropMachine struct {
	props dragDropProps
	state dragDropState
}

func NewDragDropMachine(comp models.Component) *DragDropMachine {
	m := &DragDropMachine{}
	_ = decode(comp.Props, &m.props)
	m.state.Order = m.initialOrder()
	return m
}

func (m *DragDropMachine) shuffled() bool {
	return m.props.Shuffled == nil || *m.props.Shuffled
}

func (m *DragDropMachine) initialOrder() []string {
	ids := make([]string, 0, len(m.props.Items))
	for _, item := range m.props.Items {
		ids = append(ids, item.ID)
	}
	if m.shuffled() {
		return shuffleIDs(ids)
	}
	return ids
}

func (m *DragDropMachine) Type() string { return "dragDrop" }

func (m *DragDropMachine) Snapshot() models.ComponentState { return snapshot(m.state) }

func (m *DragDropMachine) Restore(state models.ComponentState) error {
	return decode(state, &m.state)
}

func (m *DragDropMachine) Dispatch(action Action, score *ScoreContext, notify Notifier) error {
	switch action.Name {
	case ActionArrange:
		if m.state.IsSubmitted {
			return nil
		}
		if err := m.validateOrder(action.Order); err != nil {
			return err
		}
		m.state.Order = action.Order
		notify.Notify(NotifyClick)
	case ActionCheck:
		m.check(score, notify)
	case ActionReset:
		m.reset(notify)
	default:
		return ErrUnknownAction
	}
	return nil
}

// validateOrder requires the proposed order to be a permutation of the
// configured item ids.
func (m *DragDropMachine) validateOrder(order []string) error {
	if len(order) != len(m.props.Items) {
		return fmt.Errorf("order has %d items, want %d", len(order), len(m.props.Items))
	}
	known := make(map[string]bool, len(m.props.Items))
	for _, item := range m.props.Items {
		known[item.ID] = true
	}
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if !known[id] || seen[id] {
			return fmt.Errorf("invalid item id %q in order", id)
		}
		seen[id] = true
	}
	return nil
}

func (m *DragDropMachine) check(score *ScoreContext, notify Notifier) {
	if m.state.IsSubmitted {
		return
	}

	correctAt := make(map[int]string, len(m.props.Items))
	for _, item := range m.props.Items {
		correctAt[item.CorrectIndex] = item.ID
	}

	results := make(map[string]bool, len(m.state.Order))
	allCorrect := len(m.state.Order) > 0
	for i, id := range m.state.Order {
		ok := correctAt[i] == id
		results[id] = ok
		if !ok {
			allCorrect = false
		}
	}

	m.state.IsSubmitted = true
	m.state.IsCorrect = allCorrect
	m.state.Results = results

	if allCorrect {
		if !m.state.PointsAwarded && score != nil {
			score.AddPoints(m.props.Points)
		}
		m.state.PointsAwarded = true
		notify.Notify(NotifyCorrect)
	} else {
		notify.Notify(NotifyIncorrect)
	}
}

func (m *DragDropMachine) reset(notify Notifier) {
	// Correct is terminal for the attempt.
	if !m.state.IsSubmitted || m.state.IsCorrect {
		return
	}
	m.state.Order = m.initialOrder()
	m.state.IsSubmitted = false
	m.state.IsCorrect = false
	m.state.Results = nil
	notify.Notify(NotifyClick)
}

func dragDropEarnedPoints(comp models.Component, state models.ComponentState) int {
	var props dragDropProps
	var st dragDropState
	_ = decode(comp.Props, &props)
	_ = decode(state, &st)
	if st.PointsAwarded {
		return props.Points
	}
	return 0
}

func dragDropIsComplete(state models.ComponentState) bool {
	var st dragDropState
	_ = decode(state, &st)
	return st.IsSubmitted && st.IsCorrect
}
