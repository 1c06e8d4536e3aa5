package crop

import (
	"github.com/soocke/multicrop-go/domain/geometry"
	"github.com/soocke/multicrop-go/domain/viewport"
)

// SentinelID is the reserved id of the single in-progress draw rectangle.
// It never appears in a committed collection and is always last in z-order
// while a draw gesture is active.
const SentinelID = "__drawing__"

// DefaultMinSize is the minimum committed width and height in display pixels.
const DefaultMinSize = 10.0

// Rect is one crop region. Coordinates are display-space pixels relative to
// the interaction surface's content origin.
type Rect struct {
	ID string
	geometry.Rect
}

// GestureState enumerates the engine's per-gesture states.
type GestureState int

const (
	StateIdle GestureState = iota
	StateDrawing
	StateDragging
	StateResizing
)

func (s GestureState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Edge identifies which edges a resize handle moves. Corners combine two.
type Edge int

const (
	EdgeLeft Edge = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// TransitionListener is called on each gesture state change.
type TransitionListener func(prev, next GestureState)

// SelectionListener is called when the active rectangle changes. Empty id
// means no selection.
type SelectionListener func(prevID, nextID string)

// ExportSink receives geometry snapshots for raster extraction and id-keyed
// invalidation. Request is expected to debounce; Forget drops the exported
// entry for a deleted rectangle immediately; Cancel aborts pending work.
type ExportSink interface {
	Request(rects []Rect)
	Forget(id string)
	Cancel()
}

// GestureBinder lets the presentation layer attach and detach drag/resize
// capability as a rectangle's eligibility changes. Only the active rectangle
// and the in-progress sentinel are ever eligible.
type GestureBinder interface {
	BindRect(id string)
	UnbindRect(id string)
}

// ViewportSource narrows what the engine needs from the viewport tracker.
type ViewportSource interface {
	ScrollOffset() (x, y float64)
	Current() viewport.Viewport
}

// AutoScroller narrows the auto-scroll helper contract: Track is safe to call
// on every pointer move, Stop on every gesture end.
type AutoScroller interface {
	Track(x, y float64)
	Stop()
}

// CollectionSource exposes the authoritative rectangle list for read-only
// consumers (presenters, export assembly).
type CollectionSource interface {
	Rects() []Rect
}

// SelectionSource exposes the active rectangle id, if any.
type SelectionSource interface {
	ActiveID() string
}
