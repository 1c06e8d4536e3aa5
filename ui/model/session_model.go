package model

import (
	"time"
)

// SessionModel tracks how long the current image has been edited and the
// accumulated editing time across images. Decoupled from the UI; presenters
// poll Values() on tick. The zero value is ready to use.
type SessionModel struct {
	active       bool
	editStart    time.Time
	lastDuration time.Duration
	accumulated  time.Duration
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the model with whether an image is loaded and the current
// timestamp. Call periodically from a presenter tick.
func (m *SessionModel) OnTick(editing bool, now time.Time) {
	if m == nil {
		return
	}
	if editing {
		if !m.active { // transition off -> on
			m.active = true
			m.editStart = now
			m.lastDuration = 0
		}
		m.lastDuration = now.Sub(m.editStart)
	} else if m.active { // transition on -> off
		m.lastDuration = now.Sub(m.editStart)
		m.accumulated += m.lastDuration
		m.active = false
	}
}

// Values returns the current session duration and the total accumulated
// duration. The total includes the ongoing session when active.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	session = m.lastDuration
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}
