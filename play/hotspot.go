package play

import (
	"github.com/dare4net/ast4-lesson-builder/models"
)

type Hotspot struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type hotspotProps struct {
	Title    string    `json:"title"`
	ImageURL string    `json:"imageUrl"`
	Hotspots []Hotspot `json:"hotspots"`
}

type hotspotState struct {
	Revealed   map[string]bool `json:"revealed"`
	IsComplete bool            `json:"isComplete"`
}

// HotspotMachine tracks which areas of an image have been revealed. It
// awards no points; revealing every hotspot marks the component complete.
type HotspotMachine struct {
	props hotspotProps
	state hotspotState
}

func NewHotspotMachine(comp models.Component) *HotspotMachine {
	m := &HotspotMachine{}
	_ = decode(comp.Props, &m.props)
	m.state.Revealed = map[string]bool{}
	return m
}

func (m *HotspotMachine) Type() string { return "hotspot" }

func (m *HotspotMachine) Snapshot() models.ComponentState { return snapshot(m.state) }

func (m *HotspotMachine) Restore(state models.ComponentState) error {
	if err := decode(state, &m.state); err != nil {
		return err
	}
	if m.state.Revealed == nil {
		m.state.Revealed = map[string]bool{}
	}
	return nil
}

func (m *HotspotMachine) Dispatch(action Action, _ *ScoreContext, notify Notifier) error {
	if action.Name != ActionReveal {
		return ErrUnknownAction
	}
	known := false
	for _, spot := range m.props.Hotspots {
		if spot.ID == action.SpotID {
			known = true
			break
		}
	}
	if !known {
		return nil
	}
	m.state.Revealed[action.SpotID] = true

	if !m.state.IsComplete && len(m.state.Revealed) == len(m.props.Hotspots) {
		m.state.IsComplete = true
		notify.Notify(NotifyComplete)
	} else {
		notify.Notify(NotifyClick)
	}
	return nil
}
