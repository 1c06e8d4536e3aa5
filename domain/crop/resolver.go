package crop

import (
	"sync"

	"github.com/soocke/multicrop-go/domain/geometry"
)

// Resolver maps display-space geometry to the source image's natural pixel
// grid. Between an image-source change and load completion the mapping is
// stale; Factor reports the neutral identity until both sizes are known, and
// callers must not extract before Ready reports true.
//
// Updates arrive on image-load and layout callbacks while extraction passes
// read the mapping from a timer goroutine, so access is mutex-guarded.
type Resolver struct {
	mu                 sync.RWMutex
	naturalW, naturalH int
	displayW, displayH float64
}

func NewResolver() *Resolver { return &Resolver{} }

// SetNaturalSize records the source image's intrinsic pixel dimensions.
// Call on image load; Reset on source change.
func (r *Resolver) SetNaturalSize(w, h int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.naturalW, r.naturalH = w, h
	r.mu.Unlock()
}

// SetDisplayedSize records the rendered size of the image on screen. Call on
// load and on every layout/resize of the interaction surface.
func (r *Resolver) SetDisplayedSize(w, h float64) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.displayW, r.displayH = w, h
	r.mu.Unlock()
}

// Reset clears both sizes, returning the resolver to the stale state.
func (r *Resolver) Reset() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.naturalW, r.naturalH = 0, 0
	r.displayW, r.displayH = 0, 0
	r.mu.Unlock()
}

// Ready reports whether a real mapping is available.
func (r *Resolver) Ready() bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.naturalW > 0 && r.naturalH > 0 && r.displayW > 0 && r.displayH > 0
}

// Factor returns natural size / displayed size per axis, or the identity
// mapping while either size is unknown.
func (r *Resolver) Factor() geometry.Scale {
	if r == nil {
		return geometry.Identity
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.naturalW <= 0 || r.naturalH <= 0 || r.displayW <= 0 || r.displayH <= 0 {
		return geometry.Identity
	}
	return geometry.Scale{
		X: float64(r.naturalW) / r.displayW,
		Y: float64(r.naturalH) / r.displayH,
	}
}

// ToNatural maps a display-space rectangle into natural pixels, rounding to
// the nearest integer on each axis independently.
func (r *Resolver) ToNatural(rect geometry.Rect) geometry.Rect {
	return r.Factor().Apply(rect)
}

// DisplayedSize returns the rendered image size, with ok=false while layout
// has not happened yet.
func (r *Resolver) DisplayedSize() (geometry.Size, bool) {
	if r == nil {
		return geometry.Size{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.displayW <= 0 || r.displayH <= 0 {
		return geometry.Size{}, false
	}
	return geometry.Size{Width: r.displayW, Height: r.displayH}, true
}

// NaturalSize returns the intrinsic image size, with ok=false before load.
func (r *Resolver) NaturalSize() (w, h int, ok bool) {
	if r == nil {
		return 0, 0, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.naturalW <= 0 || r.naturalH <= 0 {
		return 0, 0, false
	}
	return r.naturalW, r.naturalH, true
}
