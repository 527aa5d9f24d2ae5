package play

import (
	"fmt"
	"strings"

	"github.com/dare4net/ast4-lesson-builder/models"
)

type TestCase struct {
	ID             string `json:"id"`
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
}

type codeProps struct {
	Title       string     `json:"title"`
	InitialCode string     `json:"initialCode"`
	Language    string     `json:"language"`
	ReadOnly    bool       `json:"readOnly"`
	TestCases   []TestCase `json:"testCases"`
	Points      int        `json:"points"`
}

type codeState struct {
	Code          string          `json:"code"`
	Output        string          `json:"output"`
	TestResults   map[string]bool `json:"testResults,omitempty"`
	IsSubmitted   bool            `json:"isSubmitted"`
	IsCorrect     bool            `json:"isCorrect"`
	PointsAwarded bool            `json:"pointsAwarded"`
}

// CodeMachine grades a code exercise by comparing per-test-case outputs
// against each case's expected output. The code itself runs on the client;
// the machine only sees the outputs it produced, so the server never
// executes learner code.
type CodeMachine struct {
	props codeProps
	state codeState
}

func NewCodeMachine(comp models.Component) *CodeMachine {
	m := &CodeMachine{}
	_ = decode(comp.Props, &m.props)
	m.state.Code = m.props.InitialCode
	return m
}

func (m *CodeMachine) Type() string { return "codeEditor" }

func (m *CodeMachine) Snapshot() models.ComponentState { return snapshot(m.state) }

func (m *CodeMachine) Restore(state models.ComponentState) error {
	return decode(state, &m.state)
}

func (m *CodeMachine) Dispatch(action Action, score *ScoreContext, notify Notifier) error {
	switch action.Name {
	case ActionInput:
		if m.props.ReadOnly || m.state.IsSubmitted {
			return nil
		}
		m.state.Code = action.Value
	case ActionCheck:
		m.check(action.Outputs, score, notify)
	case ActionReset:
		m.reset(notify)
	default:
		return ErrUnknownAction
	}
	return nil
}

func (m *CodeMachine) check(outputs map[string]string, score *ScoreContext, notify Notifier) {
	if m.state.IsSubmitted {
		return
	}

	results := make(map[string]bool, len(m.props.TestCases))
	passed := 0
	for _, tc := range m.props.TestCases {
		// A test with no submitted output fails; it is never an error.
		ok := strings.TrimSpace(outputs[tc.ID]) == strings.TrimSpace(tc.ExpectedOutput) &&
			outputs[tc.ID] != ""
		results[tc.ID] = ok
		if ok {
			passed++
		}
	}
	allPassed := len(m.props.TestCases) > 0 && passed == len(m.props.TestCases)

	m.state.IsSubmitted = true
	m.state.IsCorrect = allPassed
	m.state.TestResults = results
	m.state.Output = fmt.Sprintf("%d of %d tests passed.", passed, len(m.props.TestCases))

	if allPassed {
		if !m.state.PointsAwarded && score != nil {
			score.AddPoints(m.props.Points)
		}
		m.state.PointsAwarded = true
		notify.Notify(NotifyCorrect)
	} else {
		notify.Notify(NotifyIncorrect)
	}
}

func (m *CodeMachine) reset(notify Notifier) {
	if !m.state.IsSubmitted {
		return
	}
	// Resetting after a pass is allowed so the learner can experiment, but
	// PointsAwarded stays set: a later resubmission never awards again.
	m.state.Code = m.props.InitialCode
	m.state.Output = ""
	m.state.TestResults = nil
	m.state.IsSubmitted = false
	m.state.IsCorrect = false
	notify.Notify(NotifyClick)
}

func codeEarnedPoints(comp models.Component, state models.ComponentState) int {
	var props codeProps
	var st codeState
	_ = decode(comp.Props, &props)
	_ = decode(state, &st)
	if st.PointsAwarded {
		return props.Points
	}
	return 0
}

func codeIsComplete(state models.ComponentState) bool {
	var st codeState
	_ = decode(state, &st)
	return st.PointsAwarded
}
