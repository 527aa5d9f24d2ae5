package play

import (
	"github.com/dare4net/ast4-lesson-builder/models"
)

type MatchingPair struct {
	ID    string `json:"id"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

type matchingProps struct {
	Title    string         `json:"title"`
	Pairs    []MatchingPair `json:"pairs"`
	Shuffled *bool          `json:"shuffled"`
	Points   int            `json:"points"`
}

type matchingState struct {
	RightOrder    []string          `json:"rightOrder"`
	Matches       map[string]string `json:"matches"`
	IsSubmitted   bool              `json:"isSubmitted"`
	IsCorrect     bool              `json:"isCorrect"`
	CorrectCount  int               `json:"correctCount"`
	NoneCorrect   bool              `json:"noneCorrect"`
	SomeCorrect   bool              `json:"someCorrect"`
	PointsAwarded bool              `json:"pointsAwarded"`
}

// MatchingMachine binds left items to right items one pair at a time. The
// left column stays in authored order; the right column's presentation order
// is shuffled once on first init and then persisted.
type MatchingMachine struct {
	props matchingProps
	state matchingState
}

func NewMatchingMachine(comp models.Component) *MatchingMachine {
	m := &MatchingMachine{}
	_ = decode(comp.Props, &m.props)
	m.state.RightOrder = m.initialRightOrder()
	m.state.Matches = map[string]string{}
	return m
}

func (m *MatchingMachine) shuffled() bool {
	return m.props.Shuffled == nil || *m.props.Shuffled
}

func (m *MatchingMachine) initialRightOrder() []string {
	ids := make([]string, 0, len(m.props.Pairs))
	for _, pair := range m.props.Pairs {
		ids = append(ids, pair.ID)
	}
	if m.shuffled() {
		return shuffleIDs(ids)
	}
	return ids
}

func (m *MatchingMachine) Type() string { return "matchingPairs" }

func (m *MatchingMachine) Snapshot() models.ComponentState { return snapshot(m.state) }

func (m *MatchingMachine) Restore(state models.ComponentState) error {
	if err := decode(state, &m.state); err != nil {
		return err
	}
	if m.state.Matches == nil {
		m.state.Matches = map[string]string{}
	}
	return nil
}

func (m *MatchingMachine) Dispatch(action Action, score *ScoreContext, notify Notifier) error {
	switch action.Name {
	case ActionPair:
		m.pair(action.LeftID, action.RightID, notify)
	case ActionCheck:
		m.check(score, notify)
	case ActionReset:
		m.reset(notify)
	default:
		return ErrUnknownAction
	}
	return nil
}

// pair binds a left item to a right item. Each side can be bound at most
// once: pairing an already-matched left or right item is a no-op, so a match
// can never be silently overwritten.
func (m *MatchingMachine) pair(leftID, rightID string, notify Notifier) {
	if m.state.IsSubmitted {
		return
	}
	if !m.knownPairID(leftID) || !m.knownPairID(rightID) {
		return
	}
	if _, bound := m.state.Matches[leftID]; bound {
		return
	}
	for _, r := range m.state.Matches {
		if r == rightID {
			return
		}
	}
	m.state.Matches[leftID] = rightID
	notify.Notify(NotifyClick)
}

func (m *MatchingMachine) knownPairID(id string) bool {
	for _, pair := range m.props.Pairs {
		if pair.ID == id {
			return true
		}
	}
	return false
}

func (m *MatchingMachine) check(score *ScoreContext, notify Notifier) {
	if m.state.IsSubmitted {
		return
	}

	// A match is correct when a left item is bound to its own right item.
	// Unmatched pairs count as incorrect, never as exceptions.
	correctCount := 0
	for leftID, rightID := range m.state.Matches {
		if leftID == rightID {
			correctCount++
		}
	}
	allCorrect := len(m.props.Pairs) > 0 &&
		correctCount == len(m.props.Pairs) &&
		len(m.state.Matches) == len(m.props.Pairs)

	m.state.IsSubmitted = true
	m.state.IsCorrect = allCorrect
	m.state.CorrectCount = correctCount
	m.state.NoneCorrect = correctCount == 0
	m.state.SomeCorrect = correctCount > 0 && !allCorrect

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

func (m *MatchingMachine) reset(notify Notifier) {
	if !m.state.IsSubmitted || m.state.IsCorrect {
		return
	}
	m.state.RightOrder = m.initialRightOrder()
	m.state.Matches = map[string]string{}
	m.state.IsSubmitted = false
	m.state.IsCorrect = false
	m.state.CorrectCount = 0
	m.state.NoneCorrect = false
	m.state.SomeCorrect = false
	notify.Notify(NotifyClick)
}

func matchingEarnedPoints(comp models.Component, state models.ComponentState) int {
	var props matchingProps
	var st matchingState
	_ = decode(comp.Props, &props)
	_ = decode(state, &st)
	if st.PointsAwarded {
		return props.Points
	}
	return 0
}

func matchingIsComplete(state models.ComponentState) bool {
	var st matchingState
	_ = decode(state, &st)
	return st.IsSubmitted && st.IsCorrect
}
