package play

import (
	"github.com/dare4net/ast4-lesson-builder/models"
)

type QuizOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuizQuestion struct {
	ID          string       `json:"id"`
	Question    string       `json:"question"`
	Options     []QuizOption `json:"options"`
	Explanation string       `json:"explanation,omitempty"`
}

type quizProps struct {
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
	Points    int            `json:"points"`
}

type quizState struct {
	CurrentQuestion int    `json:"currentQuestion"`
	SelectedOption  string `json:"selectedOption"`
	IsAnswered      bool   `json:"isAnswered"`
	IsCorrect       bool   `json:"isCorrect"`
	CorrectCount    int    `json:"correctCount"`
	IsComplete      bool   `json:"isComplete"`
}

// QuizMachine runs one multiple-choice question at a time. Each question is
// its own attempt: select, check, then advance. A checked question is
// terminal; there is no retry, the quiz moves on.
type QuizMachine struct {
	props quizProps
	state quizState
}

func NewQuizMachine(comp models.Component) *QuizMachine {
	m := &QuizMachine{}
	// Malformed props leave an empty question list, which renders as an
	// empty quiz and never awards points.
	_ = decode(comp.Props, &m.props)
	return m
}

func (m *QuizMachine) Type() string { return "quiz" }

func (m *QuizMachine) Snapshot() models.ComponentState { return snapshot(m.state) }

func (m *QuizMachine) Restore(state models.ComponentState) error {
	return decode(state, &m.state)
}

func (m *QuizMachine) Dispatch(action Action, score *ScoreContext, notify Notifier) error {
	switch action.Name {
	case ActionSelect:
		if m.state.IsAnswered || m.state.IsComplete {
			return nil
		}
		m.state.SelectedOption = action.OptionID
		notify.Notify(NotifyClick)
	case ActionCheck:
		m.check(score, notify)
	case ActionNext:
		m.advance(notify)
	default:
		return ErrUnknownAction
	}
	return nil
}

func (m *QuizMachine) check(score *ScoreContext, notify Notifier) {
	// Re-checking an answered question must be a no-op: this is the
	// exactly-once guard for the point award.
	if m.state.IsAnswered || m.state.IsComplete || m.state.SelectedOption == "" {
		return
	}
	question, ok := m.currentQuestion()
	if !ok {
		return
	}

	correct := false
	for _, opt := range question.Options {
		if opt.ID == m.state.SelectedOption {
			correct = opt.IsCorrect
			break
		}
	}

	m.state.IsAnswered = true
	m.state.IsCorrect = correct
	if correct {
		m.state.CorrectCount++
		if score != nil {
			score.AddPoints(m.props.Points)
		}
		notify.Notify(NotifyCorrect)
	} else {
		notify.Notify(NotifyIncorrect)
	}
}

func (m *QuizMachine) advance(notify Notifier) {
	if !m.state.IsAnswered || m.state.IsComplete {
		return
	}
	if m.state.CurrentQuestion >= len(m.props.Questions)-1 {
		m.state.IsComplete = true
		notify.Notify(NotifyComplete)
		return
	}
	m.state.CurrentQuestion++
	m.state.SelectedOption = ""
	m.state.IsAnswered = false
	m.state.IsCorrect = false
	notify.Notify(NotifyClick)
}

func (m *QuizMachine) currentQuestion() (QuizQuestion, bool) {
	if m.state.CurrentQuestion < 0 || m.state.CurrentQuestion >= len(m.props.Questions) {
		return QuizQuestion{}, false
	}
	return m.props.Questions[m.state.CurrentQuestion], true
}

func quizPossiblePoints(comp models.Component) int {
	var props quizProps
	_ = decode(comp.Props, &props)
	return props.Points * len(props.Questions)
}

func quizEarnedPoints(comp models.Component, state models.ComponentState) int {
	var props quizProps
	var st quizState
	_ = decode(comp.Props, &props)
	_ = decode(state, &st)
	return props.Points * st.CorrectCount
}

func quizIsComplete(state models.ComponentState) bool {
	var st quizState
	_ = decode(state, &st)
	return st.IsComplete
}
