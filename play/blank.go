package play

import (
	"math"
	"strings"

	"github.com/dare4net/ast4-lesson-builder/models"
)

// BlankToken marks a blank position inside fill-in-the-blank text. The
// blanks list must stay in 1:1 correspondence with the token count.
const BlankToken = "{{blank}}"

type Blank struct {
	ID           string   `json:"id"`
	Answer       string   `json:"answer"`
	Alternatives []string `json:"alternatives,omitempty"`
}

type blankProps struct {
	Title         string  `json:"title"`
	Text          string  `json:"text"`
	Blanks        []Blank `json:"blanks"`
	CaseSensitive bool    `json:"caseSensitive"`
	Points        int     `json:"points"`
}

type blankState struct {
	Answers      map[string]string `json:"answers"`
	IsSubmitted  bool              `json:"isSubmitted"`
	IsCorrect    bool              `json:"isCorrect"`
	Results      map[string]bool   `json:"results,omitempty"`
	CorrectCount int               `json:"correctCount"`
	EarnedPoints int               `json:"earnedPoints"`
	BestAwarded  int               `json:"bestAwarded"`
}

// BlankMachine grades typed answers against each blank's answer and
// alternatives, with partial credit proportional to the fraction correct.
type BlankMachine struct {
	props blankProps
	state blankState
}

func NewBlankMachine(comp models.Component) *BlankMachine {
	m := &BlankMachine{}
	_ = decode(comp.Props, &m.props)
	m.state.Answers = map[string]string{}
	return m
}

func (m *BlankMachine) Type() string { return "fillInTheBlank" }

func (m *BlankMachine) Snapshot() models.ComponentState { return snapshot(m.state) }

func (m *BlankMachine) Restore(state models.ComponentState) error {
	if err := decode(state, &m.state); err != nil {
		return err
	}
	if m.state.Answers == nil {
		m.state.Answers = map[string]string{}
	}
	return nil
}

func (m *BlankMachine) Dispatch(action Action, score *ScoreContext, notify Notifier) error {
	switch action.Name {
	case ActionInput:
		if m.state.IsSubmitted {
			return nil
		}
		m.state.Answers[action.BlankID] = action.Value
	case ActionCheck:
		m.check(score, notify)
	case ActionReset:
		m.reset(notify)
	default:
		return ErrUnknownAction
	}
	return nil
}

func (m *BlankMachine) gradeBlank(blank Blank, userAnswer string) bool {
	// An empty answer is always incorrect, even for an empty expected
	// answer.
	if userAnswer == "" {
		return false
	}
	matches := func(expected string) bool {
		if m.props.CaseSensitive {
			return userAnswer == expected
		}
		return strings.EqualFold(userAnswer, expected)
	}
	if matches(blank.Answer) {
		return true
	}
	for _, alt := range blank.Alternatives {
		if matches(alt) {
			return true
		}
	}
	return false
}

func (m *BlankMachine) check(score *ScoreContext, notify Notifier) {
	if m.state.IsSubmitted || len(m.props.Blanks) == 0 {
		return
	}

	results := make(map[string]bool, len(m.props.Blanks))
	correctCount := 0
	for _, blank := range m.props.Blanks {
		ok := m.gradeBlank(blank, m.state.Answers[blank.ID])
		results[blank.ID] = ok
		if ok {
			correctCount++
		}
	}

	earned := int(math.Round(float64(correctCount) / float64(len(m.props.Blanks)) * float64(m.props.Points)))

	m.state.IsSubmitted = true
	m.state.IsCorrect = correctCount == len(m.props.Blanks)
	m.state.Results = results
	m.state.CorrectCount = correctCount
	m.state.EarnedPoints = earned

	// Partial credit across retries: only the improvement over the best
	// previous attempt is added, so the component can never contribute more
	// than its points prop in total.
	if earned > m.state.BestAwarded {
		if score != nil {
			score.AddPoints(earned - m.state.BestAwarded)
		}
		m.state.BestAwarded = earned
	}

	if m.state.IsCorrect {
		notify.Notify(NotifyCorrect)
	} else {
		notify.Notify(NotifyIncorrect)
	}
}

func (m *BlankMachine) reset(notify Notifier) {
	if !m.state.IsSubmitted || m.state.IsCorrect {
		return
	}
	m.state.Answers = map[string]string{}
	m.state.IsSubmitted = false
	m.state.IsCorrect = false
	m.state.Results = nil
	m.state.CorrectCount = 0
	m.state.EarnedPoints = 0
	notify.Notify(NotifyClick)
}

func blankEarnedPoints(_ models.Component, state models.ComponentState) int {
	var st blankState
	_ = decode(state, &st)
	return st.BestAwarded
}

func blankIsComplete(state models.ComponentState) bool {
	var st blankState
	_ = decode(state, &st)
	return st.IsSubmitted && st.IsCorrect
}

// CountBlankTokens returns the number of blank markers in a text.
func CountBlankTokens(text string) int {
	return strings.Count(text, BlankToken)
}

// SyncBlanks grows or shrinks a blanks list to match the token count of the
// text, preserving already-entered answers by position. The authoring editor
// calls this whenever the text changes.
func SyncBlanks(text string, blanks []Blank, newID func() string) []Blank {
	count := CountBlankTokens(text)
	if count == len(blanks) {
		return blanks
	}
	if count < len(blanks) {
		return blanks[:count]
	}
	out := make([]Blank, len(blanks), count)
	copy(out, blanks)
	for i := len(blanks); i < count; i++ {
		out = append(out, Blank{ID: newID()})
	}
	return out
}
