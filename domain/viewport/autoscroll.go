package viewport

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const defaultScrollInterval = 16 * time.Millisecond // ~60 Hz

// AutoScroller advances the tracker's scroll position while a dragged
// pointer sits within Threshold pixels of a viewport edge and scroll room
// remains on that axis. Track is idempotent per pointer-move: it updates the
// tracked pointer and starts the advance loop at most once. Stop must be
// called when the gesture ends and on teardown; no advance runs afterwards.
type AutoScroller struct {
	tracker   *Tracker
	logger    *slog.Logger
	threshold float64
	speed     float64
	interval  time.Duration
	onScroll  func(dx, dy float64)

	running atomic.Bool
	mu      sync.Mutex
	done    chan struct{}
	px, py  float64
}

// NewAutoScroller constructs the helper. onScroll, when non-nil, is invoked
// after every applied advance with the movement delta; it runs on the scroll
// loop goroutine, so the presentation layer must marshal to its own thread.
// onScroll must not call back into the scroller.
func NewAutoScroller(tracker *Tracker, threshold, speed float64, onScroll func(dx, dy float64), logger *slog.Logger) *AutoScroller {
	if threshold <= 0 {
		threshold = 20
	}
	if speed <= 0 {
		speed = 10
	}
	return &AutoScroller{
		tracker:   tracker,
		logger:    logger,
		threshold: threshold,
		speed:     speed,
		interval:  defaultScrollInterval,
		onScroll:  onScroll,
	}
}

// Track records the pointer position in client coordinates. Near an edge it
// ensures the advance loop is running; away from all edges it stops it.
func (a *AutoScroller) Track(x, y float64) {
	if a == nil || a.tracker == nil {
		return
	}
	a.mu.Lock()
	a.px, a.py = x, y
	dx, dy := a.direction(x, y)
	a.mu.Unlock()
	if dx == 0 && dy == 0 {
		a.Stop()
		return
	}
	a.start()
}

// SetParams updates the edge threshold and per-tick speed, taking effect on
// the next advance. Non-positive values are ignored.
func (a *AutoScroller) SetParams(threshold, speed float64) {
	if a == nil {
		return
	}
	a.mu.Lock()
	if threshold > 0 {
		a.threshold = threshold
	}
	if speed > 0 {
		a.speed = speed
	}
	a.mu.Unlock()
}

// Stop halts the advance loop. Idempotent. The mutex serializes Stop against
// a tick already in advance, so once Stop returns no further scroll movement
// is applied.
func (a *AutoScroller) Stop() {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running.Load() {
		return
	}
	a.running.Store(false)
	if a.done != nil {
		close(a.done)
		a.done = nil
	}
}

// Running reports whether the advance loop is active.
func (a *AutoScroller) Running() bool { return a != nil && a.running.Load() }

func (a *AutoScroller) start() {
	a.mu.Lock()
	if a.running.Load() {
		a.mu.Unlock()
		return
	}
	a.running.Store(true)
	a.done = make(chan struct{})
	done := a.done
	a.mu.Unlock()
	go a.loop(done)
}

func (a *AutoScroller) loop(done chan struct{}) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if !a.advance() {
				a.Stop()
				return
			}
		case <-done:
			return
		}
	}
}

// advance applies one scroll step toward the edge the pointer is near.
// It holds the mutex across the running check and the step so a tick racing
// Stop cannot move the viewport after Stop returned. Reports false when
// stopped, there is no direction, or no room left.
func (a *AutoScroller) advance() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running.Load() {
		return false
	}
	dx, dy := a.direction(a.px, a.py)
	if dx == 0 && dy == 0 {
		return false
	}
	ax, ay := a.tracker.ScrollBy(dx, dy)
	if ax == 0 && ay == 0 {
		return false
	}
	if a.onScroll != nil {
		a.onScroll(ax, ay)
	}
	return true
}

// direction derives the per-axis scroll step from the pointer position and
// the client size. Zero on an axis means the pointer is clear of both edges.
// Callers hold a.mu.
func (a *AutoScroller) direction(px, py float64) (dx, dy float64) {
	w, h := a.tracker.ClientSize()
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	if px < a.threshold {
		dx = -a.speed
	} else if px > w-a.threshold {
		dx = a.speed
	}
	if py < a.threshold {
		dy = -a.speed
	} else if py > h-a.threshold {
		dy = a.speed
	}
	return dx, dy
}
