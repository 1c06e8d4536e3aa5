package geometry

import "math"

// Point is a location in display-space pixels (content origin, not the
// visible scroll window).
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair in display-space pixels.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle in display space. Width and Height are
// never negative for rectangles produced by this package.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Normalize builds a Rect from two arbitrary corner points: origin is the
// component-wise minimum, size the component-wise absolute difference.
// Normalize(a, b) == Normalize(b, a).
func Normalize(p0, p1 Point) Rect {
	return Rect{
		X:      math.Min(p0.X, p1.X),
		Y:      math.Min(p0.Y, p1.Y),
		Width:  math.Abs(p1.X - p0.X),
		Height: math.Abs(p1.Y - p0.Y),
	}
}

// ClampToBounds constrains r's origin so the rectangle stays inside
// [0,bounds.Width]x[0,bounds.Height] without changing its size. The caller
// guarantees the rectangle fits inside the bounds.
func ClampToBounds(r Rect, bounds Size) Rect {
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	if r.X+r.Width > bounds.Width {
		r.X = bounds.Width - r.Width
	}
	if r.Y+r.Height > bounds.Height {
		r.Y = bounds.Height - r.Height
	}
	return r
}

// ClampPoint restricts p to [0,bounds.Width]x[0,bounds.Height].
func ClampPoint(p Point, bounds Size) Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.X > bounds.Width {
		p.X = bounds.Width
	}
	if p.Y > bounds.Height {
		p.Y = bounds.Height
	}
	return p
}

// MeetsMinimumSize reports whether both dimensions reach min.
func MeetsMinimumSize(r Rect, min float64) bool {
	return r.Width >= min && r.Height >= min
}

// Contains reports whether p lies inside r (origin inclusive, far edge
// exclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Scale maps display-space coordinates to natural-image coordinates:
// natural size divided by displayed size, per axis.
type Scale struct {
	X float64
	Y float64
}

// Identity is the neutral mapping used while the displayed size is unknown.
var Identity = Scale{X: 1, Y: 1}

// Apply maps a display-space rectangle into natural space, rounding each
// component to the nearest integer pixel independently.
func (s Scale) Apply(r Rect) Rect {
	return Rect{
		X:      math.Round(r.X * s.X),
		Y:      math.Round(r.Y * s.Y),
		Width:  math.Round(r.Width * s.X),
		Height: math.Round(r.Height * s.Y),
	}
}
