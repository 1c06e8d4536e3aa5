// Package export turns committed crop rectangles into encoded images at the
// source's natural resolution, decoupled from interaction frequency by a
// trailing debounce.
package export

import (
	"sync"
	"time"

	"github.com/soocke/multicrop-go/domain/crop"
)

// DefaultDebounce is the extraction delay applied after the last geometry
// mutation in a burst.
const DefaultDebounce = 400 * time.Millisecond

// Scheduler coalesces rapid geometry mutations into at most one extraction
// pass per burst. Only the most recent Request within the delay window runs;
// superseded requests are discarded, not queued. Cancel aborts any pending
// pass with no effect.
type Scheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	gen     uint64
	pending []crop.Rect
	run     func([]crop.Rect)
}

// NewScheduler constructs a scheduler invoking run with the full rectangle
// collection after delay of quiet time. run executes on a timer goroutine.
func NewScheduler(delay time.Duration, run func([]crop.Rect)) *Scheduler {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Scheduler{delay: delay, run: run}
}

// SetDelay changes the quiet window for subsequent requests. A pass already
// pending keeps the delay it was scheduled with. Non-positive values are
// ignored.
func (s *Scheduler) SetDelay(d time.Duration) {
	if s == nil || d <= 0 {
		return
	}
	s.mu.Lock()
	s.delay = d
	s.mu.Unlock()
}

// Request schedules an extraction pass for rects, replacing any pass still
// pending from an earlier call.
func (s *Scheduler) Request(rects []crop.Rect) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.gen++
	g := s.gen
	s.pending = rects
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() { s.fire(g) })
	s.mu.Unlock()
}

// Cancel aborts the pending pass, if any. Requests made afterwards schedule
// normally.
func (s *Scheduler) Cancel() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
	s.mu.Unlock()
}

func (s *Scheduler) fire(g uint64) {
	s.mu.Lock()
	if g != s.gen {
		// Superseded or cancelled while the timer was in flight.
		s.mu.Unlock()
		return
	}
	rects := s.pending
	s.pending = nil
	s.timer = nil
	run := s.run
	s.mu.Unlock()
	if run != nil {
		run(rects)
	}
}
