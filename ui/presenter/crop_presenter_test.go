package presenter

import (
	"log/slog"
	"testing"

	"github.com/soocke/multicrop-go/domain/crop"
	"github.com/soocke/multicrop-go/domain/viewport"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

type sceneRecorder struct{ scenes []Scene }

func (s *sceneRecorder) Render(scene Scene) { s.scenes = append(s.scenes, scene) }

func (s *sceneRecorder) last(t *testing.T) Scene {
	t.Helper()
	if len(s.scenes) == 0 {
		t.Fatalf("no scene rendered")
	}
	return s.scenes[len(s.scenes)-1]
}

type exportStub struct{ forgotten []string }

func (e *exportStub) Request(rects []crop.Rect) {}
func (e *exportStub) Forget(id string)          { e.forgotten = append(e.forgotten, id) }
func (e *exportStub) Cancel()                   {}

// newTestPresenter wires a real engine over a 1000x500 displayed image to a
// recording view.
func newTestPresenter() (*CropPresenter, *crop.Engine, *sceneRecorder, *viewport.Tracker) {
	res := crop.NewResolver()
	res.SetNaturalSize(2000, 1000)
	res.SetDisplayedSize(1000, 500)
	tracker := viewport.NewTracker()
	tracker.SetContentSize(1000, 500)
	tracker.SetClientSize(600, 300)
	eng := crop.NewEngine(discardLogger, nil, nil, crop.Deps{
		Resolver: res,
		Viewport: tracker,
		Exports:  &exportStub{},
	})
	view := &sceneRecorder{}
	p := NewCropPresenter(eng, tracker, view)
	return p, eng, view, tracker
}

// drag performs a full presenter-level gesture from (x0,y0) to (x1,y1).
func drag(p *CropPresenter, x0, y0, x1, y1 float64) {
	p.PointerDown(x0, y0)
	p.PointerMove(x1, y1)
	p.PointerUp()
}

func TestCropPresenter_SurfacePressDrawsRect(t *testing.T) {
	p, eng, view, _ := newTestPresenter()
	drag(p, 20, 20, 120, 90)

	rects := eng.Rects()
	if len(rects) != 1 {
		t.Fatalf("expected 1 rect, got %d", len(rects))
	}
	scene := view.last(t)
	if len(scene.Rects) != 1 {
		t.Fatalf("expected 1 rect in scene, got %d", len(scene.Rects))
	}
	if got := scene.Numbers[rects[0].ID]; got != 1 {
		t.Fatalf("expected badge number 1, got %d", got)
	}
}

func TestCropPresenter_BodyPressSelectsTopmost(t *testing.T) {
	p, eng, view, _ := newTestPresenter()
	drag(p, 20, 20, 220, 170)  // rect 1
	drag(p, 250, 60, 100, 270) // rect 2, started clear of rect 1, overlaps it

	rects := eng.Rects()
	if len(rects) != 2 {
		t.Fatalf("expected 2 rects, got %d", len(rects))
	}

	// Point inside both; the later rect is on top and must win.
	p.PointerDown(150, 150)
	p.PointerUp()
	if got := eng.ActiveID(); got != rects[1].ID {
		t.Fatalf("expected topmost rect selected, got %q", got)
	}
	if view.last(t).ActiveID != rects[1].ID {
		t.Fatalf("scene does not reflect selection")
	}
}

func TestCropPresenter_HandlePressResizesActiveRect(t *testing.T) {
	p, eng, _, _ := newTestPresenter()
	drag(p, 100, 100, 300, 250)
	id := eng.Rects()[0].ID

	// Select, then grab the right edge and pull it outward.
	p.PointerDown(200, 175)
	p.PointerUp()
	if eng.ActiveID() != id {
		t.Fatalf("expected selection before resize")
	}
	p.PointerDown(300, 175)
	if eng.State() != crop.StateResizing {
		t.Fatalf("expected resizing state, got %v", eng.State())
	}
	p.PointerMove(350, 175)
	p.PointerUp()

	r := eng.Rects()[0]
	if r.Width != 250 {
		t.Fatalf("expected width 250 after resize, got %v", r.Width)
	}
}

func TestCropPresenter_CornerPressCombinesEdges(t *testing.T) {
	p, eng, _, _ := newTestPresenter()
	drag(p, 100, 100, 300, 250)

	p.PointerDown(200, 175)
	p.PointerUp()
	p.PointerDown(100, 100) // top-left corner
	if eng.State() != crop.StateResizing {
		t.Fatalf("expected resizing state, got %v", eng.State())
	}
	p.PointerMove(80, 90)
	p.PointerUp()

	r := eng.Rects()[0]
	if r.X != 80 || r.Y != 90 || r.Width != 220 || r.Height != 160 {
		t.Fatalf("unexpected geometry after corner resize: %+v", r.Rect)
	}
}

func TestCropPresenter_DeleteBoxRemovesRect(t *testing.T) {
	p, eng, view, _ := newTestPresenter()
	drag(p, 20, 20, 120, 90)
	drag(p, 200, 20, 300, 90)
	rects := eng.Rects()

	// Click inside the second rect's top-right delete box.
	p.PointerDown(295, 25)
	p.PointerUp()

	remaining := eng.Rects()
	if len(remaining) != 1 || remaining[0].ID != rects[0].ID {
		t.Fatalf("expected only first rect to remain, got %+v", remaining)
	}
	scene := view.last(t)
	if got := scene.Numbers[rects[0].ID]; got != 1 {
		t.Fatalf("expected remaining rect renumbered to 1, got %d", got)
	}
}

func TestCropPresenter_ScrollOffsetAppliedToHitTesting(t *testing.T) {
	p, eng, _, tracker := newTestPresenter()
	drag(p, 20, 20, 120, 90)
	id := eng.Rects()[0].ID

	tracker.SetScroll(300, 100)

	// Content point (350, 150) lies outside the rect; without offset the
	// client point (50, 50) would hit it.
	p.PointerDown(50, 50)
	p.PointerUp()
	if eng.ActiveID() == id {
		t.Fatalf("hit-test ignored scroll offset")
	}

	tracker.SetScroll(0, 0)
	p.PointerDown(50, 50)
	p.PointerUp()
	if eng.ActiveID() != id {
		t.Fatalf("expected rect selected at true content point")
	}
}

func TestCropPresenter_SentinelNeverHitTested(t *testing.T) {
	p, eng, _, _ := newTestPresenter()
	p.PointerDown(20, 20)
	p.PointerMove(200, 200)
	// A stray second press lands inside the sentinel; it must fall through
	// to the surface and be swallowed by the in-flight gesture.
	p.PointerDown(100, 100)
	if eng.State() != crop.StateDrawing {
		t.Fatalf("expected drawing state, got %v", eng.State())
	}
	if eng.ActiveID() != "" {
		t.Fatalf("sentinel must never become active")
	}
	p.PointerUp()
	if len(eng.Rects()) != 1 {
		t.Fatalf("expected single committed rect, got %d", len(eng.Rects()))
	}
}
