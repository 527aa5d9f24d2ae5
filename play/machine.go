// Package play implements the playback engine: one finite state machine per
// interactive component type, a lesson-scoped score context, and the session
// that snapshots every machine's state into the persisted interaction record.
package play

import (
	"encoding/json"
	"errors"
	"math/rand"

	"github.com/dare4net/ast4-lesson-builder/models"
)

// Attempt states shared by every interactive machine.
const (
	StateUnanswered = "unanswered"
	StateCorrect    = "correct"
	StateIncorrect  = "incorrect"
)

// Action is a single user input dispatched into a component machine. Name
// selects the transition; the other fields carry the payload the transition
// needs.
type Action struct {
	Name     string            `json:"name" binding:"required"`
	OptionID string            `json:"optionId,omitempty"`
	Order    []string          `json:"order,omitempty"`
	LeftID   string            `json:"leftId,omitempty"`
	RightID  string            `json:"rightId,omitempty"`
	BlankID  string            `json:"blankId,omitempty"`
	Value    string            `json:"value,omitempty"`
	Outputs  map[string]string `json:"outputs,omitempty"`
	SpotID   string            `json:"spotId,omitempty"`
}

// Action names.
const (
	ActionSelect  = "select"
	ActionArrange = "arrange"
	ActionPair    = "pair"
	ActionInput   = "input"
	ActionCheck   = "check"
	ActionReset   = "reset"
	ActionNext    = "next"
	ActionPrev    = "prev"
	ActionFlip    = "flip"
	ActionReveal  = "reveal"
)

// ErrUnknownAction is returned when an action name is not part of the
// machine's transition table.
var ErrUnknownAction = errors.New("unknown action")

// ErrComponentNotFound is returned when a dispatch targets a component id the
// lesson does not contain. Every other dispatch error is a bad payload.
var ErrComponentNotFound = errors.New("component not found")

// Machine is the per-component state machine contract. Dispatch runs one
// transition to completion; user input never produces an error beyond a
// malformed payload. Snapshot and Restore carry the machine's full state so
// that a restored machine reproduces the exact presentation, including any
// randomized order.
type Machine interface {
	Type() string
	Snapshot() models.ComponentState
	Restore(models.ComponentState) error
	Dispatch(action Action, score *ScoreContext, notify Notifier) error
}

// Notifier is the feedback capability handed to machines by the playback
// shell. Implementations play sounds or animations; the engine only fires
// and forgets.
type Notifier interface {
	Notify(kind string)
}

// Feedback kinds.
const (
	NotifyClick     = "click"
	NotifyCorrect   = "correct"
	NotifyIncorrect = "incorrect"
	NotifyComplete  = "complete"
)

type noopNotifier struct{}

func (noopNotifier) Notify(string) {}

// NoFeedback is a Notifier that does nothing.
var NoFeedback Notifier = noopNotifier{}

// decode converts a props bag or state snapshot into a typed struct via a
// JSON round trip. Missing or mistyped fields simply stay at their zero
// value, which is what lets malformed props degrade to an empty render.
func decode(in any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// snapshot converts a typed state struct into the generic map persisted in
// the interaction record.
func snapshot(in any) models.ComponentState {
	b, err := json.Marshal(in)
	if err != nil {
		return models.ComponentState{}
	}
	var out models.ComponentState
	if err := json.Unmarshal(b, &out); err != nil {
		return models.ComponentState{}
	}
	return out
}

// shuffleIDs returns ids in a fresh uniform random order. Only called when a
// machine initializes without saved state; a persisted order is adopted
// verbatim on restore.
func shuffleIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
