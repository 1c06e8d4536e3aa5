package presenter

import (
	"testing"
	"time"

	"github.com/soocke/multicrop-go/domain/crop"
	"github.com/soocke/multicrop-go/domain/export"
	"github.com/soocke/multicrop-go/ui/model"
)

type stubGestureSource struct{ state crop.GestureState }

func (s *stubGestureSource) State() crop.GestureState { return s.state }

type labelRecorder struct{ labels []string }

func (l *labelRecorder) SetStateLabel(s string) { l.labels = append(l.labels, s) }

func TestStatePresenter_FlushesLatestPendingOnTick(t *testing.T) {
	view := &labelRecorder{}
	p := NewStatePresenter(&stubGestureSource{}, view)

	p.OnState(crop.StateDrawing)
	p.OnState(crop.StateIdle)
	p.OnState(crop.StateDragging)
	p.Tick(time.Now())

	if len(view.labels) != 1 {
		t.Fatalf("expected single label update, got %d", len(view.labels))
	}
	if view.labels[0] != "State: dragging" {
		t.Fatalf("unexpected label %q", view.labels[0])
	}

	// No pending changes: no further updates.
	p.Tick(time.Now())
	if len(view.labels) != 1 {
		t.Fatalf("tick without pending states must not update the view")
	}
}

func TestStatePresenter_SuppressesDuplicateState(t *testing.T) {
	view := &labelRecorder{}
	p := NewStatePresenter(&stubGestureSource{}, view)

	p.OnState(crop.StateDrawing)
	p.Tick(time.Now())
	p.OnState(crop.StateDrawing)
	p.Tick(time.Now())

	if len(view.labels) != 1 {
		t.Fatalf("expected 1 label update for repeated state, got %d", len(view.labels))
	}
}

type exportViewRecorder struct{ updates [][]export.Extracted }

func (v *exportViewRecorder) UpdateExports(list []export.Extracted) {
	v.updates = append(v.updates, list)
}

func TestExportPresenter_TickConsumesOnce(t *testing.T) {
	m := model.NewExportModel()
	view := &exportViewRecorder{}
	p := NewExportPresenter(m, view)

	p.Tick()
	if len(view.updates) != 0 {
		t.Fatalf("no publication yet, view must stay untouched")
	}

	m.Publish([]export.Extracted{{ID: "a"}})
	p.Tick()
	p.Tick()
	if len(view.updates) != 1 {
		t.Fatalf("expected exactly 1 view update, got %d", len(view.updates))
	}
	if view.updates[0][0].ID != "a" {
		t.Fatalf("unexpected export list %+v", view.updates[0])
	}
}
