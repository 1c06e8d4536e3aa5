package presenter

import (
	"github.com/soocke/multicrop-go/domain/crop"
	"github.com/soocke/multicrop-go/domain/geometry"
)

// handleTolerance is the pick radius in display pixels around the active
// rectangle's edges and corners.
const handleTolerance = 6.0

// deleteBoxSize is the side length of the delete affordance drawn in the
// top-right corner of every rectangle.
const deleteBoxSize = 12.0

// CropEngine narrows the gesture engine surface the presenter drives.
type CropEngine interface {
	PointerDownSurface(x, y float64)
	PointerDownRect(id string, x, y float64)
	PointerDownHandle(id string, edges crop.Edge, x, y float64)
	PointerMove(x, y float64)
	PointerUp()
	Delete(id string)
	Rects() []crop.Rect
	RenderOrder() []crop.Rect
	VisibleRects() []crop.Rect
	ActiveID() string
	State() crop.GestureState
}

// ScrollSource provides the current scroll offset in content pixels.
type ScrollSource interface {
	ScrollOffset() (x, y float64)
}

// Scene is everything the canvas needs to repaint: rectangles in paint
// order, 1-based badge numbers keyed by id, and the active selection.
type Scene struct {
	Rects    []crop.Rect
	Numbers  map[string]int
	ActiveID string
}

// CanvasView repaints the annotated image from a scene.
type CanvasView interface {
	Render(scene Scene)
}

// CropPresenter translates raw pointer events from the canvas into engine
// calls. It owns hit-testing: resize handles on the active rectangle, the
// per-rectangle delete box, then body hits in front-to-back order.
type CropPresenter struct {
	eng    CropEngine
	scroll ScrollSource
	view   CanvasView
}

func NewCropPresenter(eng CropEngine, scroll ScrollSource, view CanvasView) *CropPresenter {
	return &CropPresenter{eng: eng, scroll: scroll, view: view}
}

// PointerDown routes a primary-button press. Coordinates are client pixels
// relative to the visible canvas.
func (p *CropPresenter) PointerDown(x, y float64) {
	if p == nil || p.eng == nil {
		return
	}
	pt := p.contentPoint(x, y)

	if active := p.eng.ActiveID(); active != "" {
		if r, ok := findRect(p.eng.Rects(), active); ok {
			if edges := handleAt(r.Rect, pt); edges != 0 {
				p.eng.PointerDownHandle(active, edges, x, y)
				p.Refresh()
				return
			}
		}
	}

	// Front-to-back: the topmost rectangle under the pointer wins.
	order := p.eng.RenderOrder()
	for i := len(order) - 1; i >= 0; i-- {
		r := order[i]
		if r.ID == crop.SentinelID {
			continue
		}
		if deleteBox(r.Rect).Contains(pt) {
			p.eng.Delete(r.ID)
			p.Refresh()
			return
		}
		if r.Contains(pt) {
			p.eng.PointerDownRect(r.ID, x, y)
			p.Refresh()
			return
		}
	}

	p.eng.PointerDownSurface(x, y)
	p.Refresh()
}

// PointerMove forwards motion while a gesture may be in flight.
func (p *CropPresenter) PointerMove(x, y float64) {
	if p == nil || p.eng == nil {
		return
	}
	p.eng.PointerMove(x, y)
	if p.eng.State() != crop.StateIdle {
		p.Refresh()
	}
}

// PointerUp ends the gesture and repaints with the committed collection.
func (p *CropPresenter) PointerUp() {
	if p == nil || p.eng == nil {
		return
	}
	p.eng.PointerUp()
	p.Refresh()
}

// Refresh rebuilds the scene from the engine and hands it to the view.
// Also called after scrolling so the canvas tracks the viewport. Rectangles
// outside the viewport are culled; the full collection still drives the
// badge numbering.
func (p *CropPresenter) Refresh() {
	if p == nil || p.eng == nil || p.view == nil {
		return
	}
	numbers := make(map[string]int)
	n := 0
	for _, r := range p.eng.Rects() {
		if r.ID == crop.SentinelID {
			continue
		}
		n++
		numbers[r.ID] = n
	}
	p.view.Render(Scene{
		Rects:    p.eng.VisibleRects(),
		Numbers:  numbers,
		ActiveID: p.eng.ActiveID(),
	})
}

func (p *CropPresenter) contentPoint(x, y float64) geometry.Point {
	if p.scroll == nil {
		return geometry.Point{X: x, Y: y}
	}
	ox, oy := p.scroll.ScrollOffset()
	return geometry.Point{X: x + ox, Y: y + oy}
}

// handleAt reports which resize handle of r the point hits, zero when none.
// Proximity to an edge line within the rectangle's span counts; corners
// combine two edges naturally.
func handleAt(r geometry.Rect, pt geometry.Point) crop.Edge {
	withinX := pt.X >= r.X-handleTolerance && pt.X <= r.X+r.Width+handleTolerance
	withinY := pt.Y >= r.Y-handleTolerance && pt.Y <= r.Y+r.Height+handleTolerance
	if !withinX || !withinY {
		return 0
	}
	var edges crop.Edge
	if near(pt.X, r.X) {
		edges |= crop.EdgeLeft
	}
	if near(pt.X, r.X+r.Width) {
		edges |= crop.EdgeRight
	}
	if near(pt.Y, r.Y) {
		edges |= crop.EdgeTop
	}
	if near(pt.Y, r.Y+r.Height) {
		edges |= crop.EdgeBottom
	}
	return edges
}

func near(v, target float64) bool {
	d := v - target
	return d >= -handleTolerance && d <= handleTolerance
}

// deleteBox is the click zone for removal, anchored inside the top-right
// corner.
func deleteBox(r geometry.Rect) geometry.Rect {
	return geometry.Rect{
		X:      r.X + r.Width - deleteBoxSize,
		Y:      r.Y,
		Width:  deleteBoxSize,
		Height: deleteBoxSize,
	}
}

func findRect(rects []crop.Rect, id string) (crop.Rect, bool) {
	for _, r := range rects {
		if r.ID == id {
			return r, true
		}
	}
	return crop.Rect{}, false
}
