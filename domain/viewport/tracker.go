// Package viewport tracks the visible window of a scrollable interaction
// surface and provides edge auto-scrolling for drag gestures.
package viewport

import "sync"

// Viewport is the visible window in content-local pixel coordinates.
type Viewport struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// Tracker maintains scroll offsets, client size and content size of the
// interaction surface. Updated synchronously on scroll and layout events;
// mutex-guarded because the auto-scroll loop advances it from its own
// goroutine.
type Tracker struct {
	mu                 sync.Mutex
	scrollX, scrollY   float64
	clientW, clientH   float64
	contentW, contentH float64
}

func NewTracker() *Tracker { return &Tracker{} }

// SetScroll records the surface's scroll offsets. Call on every scroll event
// and on mount.
func (t *Tracker) SetScroll(x, y float64) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.scrollX, t.scrollY = x, y
	t.clamp()
	t.mu.Unlock()
}

// SetClientSize records the visible window size.
func (t *Tracker) SetClientSize(w, h float64) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.clientW, t.clientH = w, h
	t.clamp()
	t.mu.Unlock()
}

// SetContentSize records the full scrollable content size.
func (t *Tracker) SetContentSize(w, h float64) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.contentW, t.contentH = w, h
	t.clamp()
	t.mu.Unlock()
}

// ScrollOffset returns the current scroll position.
func (t *Tracker) ScrollOffset() (x, y float64) {
	if t == nil {
		return 0, 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scrollX, t.scrollY
}

// ClientSize returns the visible window size.
func (t *Tracker) ClientSize() (w, h float64) {
	if t == nil {
		return 0, 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.clientW, t.clientH
}

// Current returns the visible window in content-local coordinates.
func (t *Tracker) Current() Viewport {
	if t == nil {
		return Viewport{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return Viewport{
		Left:   t.scrollX,
		Top:    t.scrollY,
		Right:  t.scrollX + t.clientW,
		Bottom: t.scrollY + t.clientH,
	}
}

// ScrollBy advances the scroll position by (dx, dy), clamped to the
// remaining scroll room. It returns the movement actually applied.
func (t *Tracker) ScrollBy(dx, dy float64) (appliedX, appliedY float64) {
	if t == nil {
		return 0, 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	px, py := t.scrollX, t.scrollY
	t.scrollX += dx
	t.scrollY += dy
	t.clamp()
	return t.scrollX - px, t.scrollY - py
}

// clamp keeps offsets within [0, content-client]. Caller holds the lock.
func (t *Tracker) clamp() {
	maxX := t.contentW - t.clientW
	if maxX < 0 {
		maxX = 0
	}
	maxY := t.contentH - t.clientH
	if maxY < 0 {
		maxY = 0
	}
	if t.scrollX < 0 {
		t.scrollX = 0
	}
	if t.scrollX > maxX {
		t.scrollX = maxX
	}
	if t.scrollY < 0 {
		t.scrollY = 0
	}
	if t.scrollY > maxY {
		t.scrollY = maxY
	}
}
