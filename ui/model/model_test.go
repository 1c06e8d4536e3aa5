package model

import (
	"testing"
	"time"

	"github.com/soocke/multicrop-go/domain/export"
)

func TestEditorModel_LoadClear(t *testing.T) {
	m := &EditorModel{}
	if m.Loaded() {
		t.Fatalf("zero value must be unloaded")
	}
	m.SetLoaded("photo.png")
	if !m.Loaded() || m.Origin() != "photo.png" {
		t.Fatalf("load not recorded: %v %q", m.Loaded(), m.Origin())
	}
	m.Clear()
	if m.Loaded() || m.Origin() != "" {
		t.Fatalf("clear failed")
	}
}

func TestExportModel_TakeConsumesOnce(t *testing.T) {
	m := NewExportModel()
	if _, changed := m.Take(); changed {
		t.Fatalf("empty model must not report a change")
	}
	m.Publish([]export.Extracted{{ID: "a"}})
	list, changed := m.Take()
	if !changed || len(list) != 1 {
		t.Fatalf("first take must deliver the publication")
	}
	if _, changed := m.Take(); changed {
		t.Fatalf("second take must report no change")
	}
	if len(m.Latest()) != 1 {
		t.Fatalf("latest must remain readable")
	}
}

func TestSessionModel_AccumulatesAcrossSessions(t *testing.T) {
	m := NewSessionModel()
	t0 := time.Now()
	m.OnTick(true, t0)
	m.OnTick(true, t0.Add(3*time.Second))
	s, total := m.Values()
	if s != 3*time.Second || total != 3*time.Second {
		t.Fatalf("session=%v total=%v", s, total)
	}
	m.OnTick(false, t0.Add(4*time.Second))
	m.OnTick(true, t0.Add(10*time.Second))
	m.OnTick(true, t0.Add(12*time.Second))
	s, total = m.Values()
	if s != 2*time.Second || total != 6*time.Second {
		t.Fatalf("after second session: session=%v total=%v", s, total)
	}
}
