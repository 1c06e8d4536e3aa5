package model

import (
	"sync/atomic"
)

// EditorModel tracks whether an image is loaded and editable. The zero value
// is usable. Concurrency-safe via atomic Bool because image loads may finish
// off the UI thread.
type EditorModel struct {
	loaded atomic.Bool
	origin atomic.Value // string: file path, URL or "screen"
}

// Loaded reports whether an image source is ready for annotation.
func (m *EditorModel) Loaded() bool {
	if m == nil {
		return false
	}
	return m.loaded.Load()
}

// SetLoaded stores the loaded flag together with the source origin.
func (m *EditorModel) SetLoaded(origin string) {
	if m == nil {
		return
	}
	m.origin.Store(origin)
	m.loaded.Store(true)
}

// Clear resets the model to the no-image state.
func (m *EditorModel) Clear() {
	if m == nil {
		return
	}
	m.loaded.Store(false)
	m.origin.Store("")
}

// Origin returns a human-readable description of the loaded source.
func (m *EditorModel) Origin() string {
	if m == nil {
		return ""
	}
	if v, ok := m.origin.Load().(string); ok {
		return v
	}
	return ""
}
