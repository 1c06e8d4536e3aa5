package presenter

import (
	"time"

	"github.com/soocke/multicrop-go/ui/model"
)

// EditingModel reports whether an image is loaded for editing.
type EditingModel interface{ Loaded() bool }

// SessionView displays formatted session and total durations.
type SessionView interface {
	SetSession(session, total time.Duration)
}

// SessionPresenter formats session and total durations from the model to the view.
type SessionPresenter struct {
	sess   *model.SessionModel
	editor EditingModel
	view   SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, editor EditingModel, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, editor: editor, view: view}
}

// Tick updates the presenter: advance the session model and push values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.editor == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.editor.Loaded(), now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
}
