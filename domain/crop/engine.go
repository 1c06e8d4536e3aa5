package crop

import (
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/soocke/multicrop-go/config"
	"github.com/soocke/multicrop-go/domain/geometry"
)

// Deps carries the engine's collaborators. Every field may be nil; the
// engine degrades to pure geometry bookkeeping without them.
type Deps struct {
	Resolver *Resolver
	Viewport ViewportSource
	Scroller AutoScroller
	Exports  ExportSink
	Binder   GestureBinder
}

// Engine owns the crop rectangle collection and translates pointer events
// into draw/select/drag/resize/delete mutations. Pointer coordinates arrive
// in client space (the visible scroll window); the engine adds the current
// scroll offset to obtain content-local display coordinates.
//
// All methods must be called from the UI event loop thread. The engine is
// the single writer of the collection even in controlled mode: it computes
// the next value and submits it through the store.
type Engine struct {
	logger *slog.Logger
	cfg    *config.Config
	store  Store
	deps   Deps

	state  GestureState
	active string

	// Drawing
	anchor geometry.Point

	// Dragging
	dragStart geometry.Point
	dragRect  geometry.Rect

	// Resizing
	resizeEdges Edge
	resizeRect  geometry.Rect
	resizeID    string

	transitionListeners []TransitionListener
	selectionListeners  []SelectionListener
	closed              bool
}

// NewEngine constructs an engine. A nil store gets a fresh OwnedStore; a nil
// cfg uses defaults.
func NewEngine(logger *slog.Logger, cfg *config.Config, store Store, deps Deps) *Engine {
	if store == nil {
		store = NewOwnedStore()
	}
	return &Engine{logger: logger, cfg: cfg, store: store, deps: deps}
}

// minSize reads the configured commit threshold per gesture, so config edits
// applied at runtime affect the next draw or resize.
func (e *Engine) minSize() float64 {
	if e.cfg != nil && e.cfg.MinRectSize > 0 {
		return e.cfg.MinRectSize
	}
	return DefaultMinSize
}

// AddTransitionListener registers a gesture state listener, invoked inline.
func (e *Engine) AddTransitionListener(l TransitionListener) {
	if e == nil || l == nil {
		return
	}
	e.transitionListeners = append(e.transitionListeners, l)
}

// AddSelectionListener registers an active-rectangle listener.
func (e *Engine) AddSelectionListener(l SelectionListener) {
	if e == nil || l == nil {
		return
	}
	e.selectionListeners = append(e.selectionListeners, l)
}

// State returns the current gesture state.
func (e *Engine) State() GestureState {
	if e == nil {
		return StateIdle
	}
	return e.state
}

// Rects returns the current collection in z-order ascending. The 1-based
// position of a rectangle is its displayed badge number.
func (e *Engine) Rects() []Rect {
	if e == nil || e.store == nil {
		return nil
	}
	return e.store.Rects()
}

// ActiveID returns the id of the active rectangle, or "" when none.
func (e *Engine) ActiveID() string {
	if e == nil {
		return ""
	}
	return e.active
}

// RenderOrder returns the collection with the active rectangle moved last,
// so the presentation layer paints it above all others. Collection order
// (and badge numbering) is unaffected.
func (e *Engine) RenderOrder() []Rect {
	if e == nil || e.active == "" {
		return e.Rects()
	}
	rects := e.Rects()
	out := make([]Rect, 0, len(rects))
	var promoted *Rect
	for i := range rects {
		if rects[i].ID == e.active {
			r := rects[i]
			promoted = &r
			continue
		}
		out = append(out, rects[i])
	}
	if promoted != nil {
		out = append(out, *promoted)
	}
	return out
}

// VisibleRects filters RenderOrder down to rectangles intersecting the
// current viewport. Without a viewport source everything is visible. The
// full collection remains authoritative regardless.
func (e *Engine) VisibleRects() []Rect {
	ordered := e.RenderOrder()
	if e == nil || e.deps.Viewport == nil {
		return ordered
	}
	vp := e.deps.Viewport.Current()
	out := ordered[:0:0]
	for _, r := range ordered {
		if r.X+r.Width < vp.Left || r.X > vp.Right || r.Y+r.Height < vp.Top || r.Y > vp.Bottom {
			continue
		}
		out = append(out, r)
	}
	return out
}

// PointerDownSurface starts a draw gesture at client coordinates (x, y):
// selection is cleared and the zero-size sentinel rectangle appended.
func (e *Engine) PointerDownSurface(x, y float64) {
	if e == nil || e.closed || e.state != StateIdle {
		return
	}
	e.setActive("")
	p := e.contentPoint(x, y)
	e.anchor = geometry.ClampPoint(p, e.bounds())
	e.propose(append(e.snapshot(), Rect{ID: SentinelID, Rect: geometry.Rect{X: e.anchor.X, Y: e.anchor.Y}}))
	e.transition(StateDrawing)
}

// PointerDownRect handles a press on a rectangle body. A press on the active
// rectangle begins a drag; any other rectangle is only selected (exclusive),
// and stays inert for this gesture.
func (e *Engine) PointerDownRect(id string, x, y float64) {
	if e == nil || e.closed || e.state != StateIdle || id == SentinelID {
		return
	}
	r, ok := e.find(id)
	if !ok {
		return
	}
	if id != e.active {
		e.setActive(id)
		return
	}
	e.dragStart = e.contentPoint(x, y)
	e.dragRect = r.Rect
	e.transition(StateDragging)
}

// PointerDownHandle begins a resize of the active rectangle from the given
// edge or corner. Handles on inert rectangles are ignored.
func (e *Engine) PointerDownHandle(id string, edges Edge, x, y float64) {
	if e == nil || e.closed || e.state != StateIdle || edges == 0 {
		return
	}
	if id == "" || id != e.active {
		return
	}
	r, ok := e.find(id)
	if !ok {
		return
	}
	e.resizeID = id
	e.resizeEdges = edges
	e.resizeRect = r.Rect
	e.transition(StateResizing)
}

// PointerMove advances the current gesture. Safe to call at pointer-move
// frequency; auto-scroll is engaged near viewport edges.
func (e *Engine) PointerMove(x, y float64) {
	if e == nil || e.closed {
		return
	}
	switch e.state {
	case StateDrawing:
		e.moveDrawing(x, y)
	case StateDragging:
		e.moveDragging(x, y)
	case StateResizing:
		e.moveResizing(x, y)
	default:
		return
	}
	if e.deps.Scroller != nil {
		e.deps.Scroller.Track(x, y)
	}
}

func (e *Engine) moveDrawing(x, y float64) {
	cur := geometry.ClampPoint(e.contentPoint(x, y), e.bounds())
	next := e.snapshot()
	for i := range next {
		if next[i].ID == SentinelID {
			next[i].Rect = geometry.Normalize(e.anchor, cur)
			e.propose(next)
			return
		}
	}
}

func (e *Engine) moveDragging(x, y float64) {
	p := e.contentPoint(x, y)
	moved := e.dragRect.Translate(p.X-e.dragStart.X, p.Y-e.dragStart.Y)
	moved = geometry.ClampToBounds(moved, e.bounds())
	e.replace(e.active, moved)
}

func (e *Engine) moveResizing(x, y float64) {
	p := geometry.ClampPoint(e.contentPoint(x, y), e.bounds())
	r := e.resizeRect
	left, top := r.X, r.Y
	right, bottom := r.X+r.Width, r.Y+r.Height
	if e.resizeEdges&EdgeLeft != 0 {
		left = p.X
	}
	if e.resizeEdges&EdgeRight != 0 {
		right = p.X
	}
	if e.resizeEdges&EdgeTop != 0 {
		top = p.Y
	}
	if e.resizeEdges&EdgeBottom != 0 {
		bottom = p.Y
	}
	// Reject resizes that would undercut the minimum; the rectangle keeps
	// its last accepted geometry for this move.
	if min := e.minSize(); right-left < min || bottom-top < min {
		return
	}
	e.replace(e.resizeID, geometry.Rect{X: left, Y: top, Width: right - left, Height: bottom - top})
}

// PointerUp ends the current gesture. A finished draw commits the sentinel
// when it meets the minimum size, assigning a fresh unique id and appending
// it at top z-order; an undersized draw is discarded. Every gesture end
// schedules an export pass with the resulting collection.
func (e *Engine) PointerUp() {
	if e == nil || e.closed || e.state == StateIdle {
		return
	}
	if e.state == StateDrawing {
		e.finishDrawing()
	}
	if e.deps.Scroller != nil {
		e.deps.Scroller.Stop()
	}
	e.requestExport()
	e.transition(StateIdle)
}

func (e *Engine) finishDrawing() {
	next := e.snapshot()
	for i := range next {
		if next[i].ID != SentinelID {
			continue
		}
		if geometry.MeetsMinimumSize(next[i].Rect, e.minSize()) {
			next[i].ID = uuid.NewString()
			if e.logger != nil {
				e.logger.Info("region committed", "id", next[i].ID,
					"x", next[i].X, "y", next[i].Y, "w", next[i].Width, "h", next[i].Height)
			}
		} else {
			next = append(next[:i], next[i+1:]...)
		}
		e.propose(next)
		return
	}
}

// Select makes id the active rectangle. Selection is exclusive.
func (e *Engine) Select(id string) {
	if e == nil || e.closed || id == SentinelID {
		return
	}
	if _, ok := e.find(id); !ok {
		return
	}
	e.setActive(id)
}

// ClearSelection deactivates the active rectangle, if any.
func (e *Engine) ClearSelection() {
	if e == nil || e.closed {
		return
	}
	e.setActive("")
}

// Delete removes a rectangle immediately and drops its exported image by id.
// Later rectangles shift down one badge number.
func (e *Engine) Delete(id string) {
	if e == nil || e.closed || id == "" {
		return
	}
	next := e.snapshot()
	for i := range next {
		if next[i].ID != id {
			continue
		}
		next = append(next[:i], next[i+1:]...)
		e.propose(next)
		if e.active == id {
			e.setActive("")
		}
		if e.deps.Exports != nil {
			e.deps.Exports.Forget(id)
		}
		if e.logger != nil {
			e.logger.Debug("region deleted", "id", id)
		}
		return
	}
}

// Reset discards every rectangle along with the selection. Used when a
// new source image replaces the current one.
func (e *Engine) Reset() {
	if e == nil || e.closed {
		return
	}
	e.propose(nil)
	e.setActive("")
	e.transition(StateIdle)
	e.requestExport()
}

// Close cancels pending export work and stops auto-scroll. The engine
// ignores all events afterwards.
func (e *Engine) Close() {
	if e == nil || e.closed {
		return
	}
	e.closed = true
	if e.deps.Scroller != nil {
		e.deps.Scroller.Stop()
	}
	if e.deps.Exports != nil {
		e.deps.Exports.Cancel()
	}
}

func (e *Engine) requestExport() {
	if e.deps.Exports == nil {
		return
	}
	e.deps.Exports.Request(e.snapshot())
}

// contentPoint converts client coordinates into content-local display space
// by adding the scroll offset.
func (e *Engine) contentPoint(x, y float64) geometry.Point {
	if e.deps.Viewport == nil {
		return geometry.Point{X: x, Y: y}
	}
	ox, oy := e.deps.Viewport.ScrollOffset()
	return geometry.Point{X: x + ox, Y: y + oy}
}

// bounds returns the displayed image size, or an unbounded size while the
// image has not been laid out.
func (e *Engine) bounds() geometry.Size {
	if e.deps.Resolver != nil {
		if s, ok := e.deps.Resolver.DisplayedSize(); ok {
			return s
		}
	}
	return geometry.Size{Width: math.Inf(1), Height: math.Inf(1)}
}

// snapshot copies the collection so mutations never touch a host-owned slice.
func (e *Engine) snapshot() []Rect {
	cur := e.store.Rects()
	out := make([]Rect, len(cur))
	copy(out, cur)
	return out
}

func (e *Engine) propose(next []Rect) {
	if e.store != nil {
		e.store.Propose(next)
	}
}

func (e *Engine) find(id string) (Rect, bool) {
	for _, r := range e.Rects() {
		if r.ID == id {
			return r, true
		}
	}
	return Rect{}, false
}

func (e *Engine) replace(id string, g geometry.Rect) {
	if id == "" {
		return
	}
	next := e.snapshot()
	for i := range next {
		if next[i].ID == id {
			next[i].Rect = g
			e.propose(next)
			return
		}
	}
}

func (e *Engine) setActive(id string) {
	prev := e.active
	if prev == id {
		return
	}
	e.active = id
	if e.deps.Binder != nil {
		if prev != "" {
			e.deps.Binder.UnbindRect(prev)
		}
		if id != "" {
			e.deps.Binder.BindRect(id)
		}
	}
	for _, l := range e.selectionListeners {
		l(prev, id)
	}
}

func (e *Engine) transition(next GestureState) {
	prev := e.state
	if prev == next {
		return
	}
	e.state = next
	if e.logger != nil {
		e.logger.Debug("crop state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range e.transitionListeners {
		l(prev, next)
	}
}
