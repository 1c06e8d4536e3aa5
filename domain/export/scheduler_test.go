package export

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/soocke/multicrop-go/domain/crop"
	"github.com/soocke/multicrop-go/domain/geometry"
)

func region(id string, x, y, w, h float64) crop.Rect {
	return crop.Rect{ID: id, Rect: geometry.Rect{X: x, Y: y, Width: w, Height: h}}
}

func TestScheduler_CoalescesBurstIntoOnePass(t *testing.T) {
	var passes atomic.Int32
	var last atomic.Value
	s := NewScheduler(20*time.Millisecond, func(rects []crop.Rect) {
		passes.Add(1)
		last.Store(rects)
	})

	for i := 0; i < 50; i++ {
		s.Request([]crop.Rect{region("a", float64(i), 0, 50, 50)})
	}
	time.Sleep(100 * time.Millisecond)
	if got := passes.Load(); got != 1 {
		t.Fatalf("expected exactly 1 pass for a burst, got %d", got)
	}
	rects := last.Load().([]crop.Rect)
	if rects[0].X != 49 {
		t.Fatalf("pass must reflect only the final geometry, got x=%v", rects[0].X)
	}
}

func TestScheduler_CancelAbortsPendingPass(t *testing.T) {
	var passes atomic.Int32
	s := NewScheduler(20*time.Millisecond, func([]crop.Rect) { passes.Add(1) })

	s.Request([]crop.Rect{region("a", 0, 0, 50, 50)})
	s.Cancel()
	time.Sleep(80 * time.Millisecond)
	if got := passes.Load(); got != 0 {
		t.Fatalf("cancelled pass must not run, got %d", got)
	}

	// A request after Cancel schedules normally.
	s.Request([]crop.Rect{region("b", 0, 0, 50, 50)})
	time.Sleep(80 * time.Millisecond)
	if got := passes.Load(); got != 1 {
		t.Fatalf("post-cancel request must run, got %d", got)
	}
}

func TestScheduler_SeparateBurstsRunSeparately(t *testing.T) {
	var passes atomic.Int32
	s := NewScheduler(10*time.Millisecond, func([]crop.Rect) { passes.Add(1) })

	s.Request(nil)
	time.Sleep(50 * time.Millisecond)
	s.Request(nil)
	time.Sleep(50 * time.Millisecond)
	if got := passes.Load(); got != 2 {
		t.Fatalf("expected 2 passes, got %d", got)
	}
}
