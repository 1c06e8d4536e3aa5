package presenter

import (
	"time"

	"github.com/soocke/multicrop-go/domain/crop"
)

// GestureSource provides the engine state the presenter requires.
type GestureSource interface {
	State() crop.GestureState
}

// StateView sets the state label in the view.
type StateView interface{ SetStateLabel(string) }

// StatePresenter receives gesture transitions and reflects the most recent
// one on the next tick.
type StatePresenter struct {
	eng     GestureSource
	view    StateView
	latest  crop.GestureState // last reflected state
	pending []crop.GestureState
}

func NewStatePresenter(eng GestureSource, view StateView) *StatePresenter {
	return &StatePresenter{eng: eng, view: view}
}

// OnState queues a transitioned state from the engine listener.
//
// The latest queued state will be reflected on the next Tick.
func (p *StatePresenter) OnState(s crop.GestureState) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, s)
}

// Tick processes queued states and updates the view with the most recent
// state. It clears the pending queue after processing.
func (p *StatePresenter) Tick(now time.Time) {
	if p == nil || p.eng == nil || p.view == nil {
		return
	}
	if len(p.pending) > 0 {
		last := p.pending[len(p.pending)-1]
		p.pending = p.pending[:0]
		if last != p.latest {
			p.latest = last
			p.view.SetStateLabel("State: " + last.String())
		}
	}
}
