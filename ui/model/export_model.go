package model

import (
	"sync"

	"github.com/soocke/multicrop-go/domain/export"
)

// ExportModel buffers the latest exported image list between the export
// pipeline (which publishes from a timer goroutine) and the UI tick that
// renders it. Take consumes the pending value at most once per publication.
type ExportModel struct {
	mu      sync.Mutex
	latest  []export.Extracted
	pending bool
}

func NewExportModel() *ExportModel { return &ExportModel{} }

// Publish stores a freshly exported list. Safe from any goroutine.
func (m *ExportModel) Publish(list []export.Extracted) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.latest = list
	m.pending = true
	m.mu.Unlock()
}

// Take returns the most recent list and whether it changed since the last
// Take.
func (m *ExportModel) Take() ([]export.Extracted, bool) {
	if m == nil {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.pending {
		return m.latest, false
	}
	m.pending = false
	return m.latest, true
}

// Latest returns the current list without consuming the pending flag.
func (m *ExportModel) Latest() []export.Extracted {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest
}
