// Package geometry contains the 2D primitives and spatial queries used by the canvas.
package geometry

import "math"

// Vec2 is a point or displacement in canvas or screen space.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the Euclidean distance between v and o.
func (v Vec2) Distance(o Vec2) float64 {
	return o.Sub(v).Length()
}

// IsNaN reports whether either component is not-a-number.
func (v Vec2) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y)
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Segment is a straight line between two anchors, described the way a
// rotated screen element needs it: centre, length and angle in degrees.
type Segment struct {
	Start, End Vec2
	Center     Vec2
	Length     float64
	Angle      float64
}

// IsZero reports whether the segment has collapsed to nothing.
func (s Segment) IsZero() bool {
	return s.Length == 0
}

// Line builds the segment from a to b. If either anchor has a NaN coordinate,
// or the anchors coincide, the zero Segment is returned.
func Line(a, b Vec2) Segment {
	if a.IsNaN() || b.IsNaN() || a == b {
		return Segment{}
	}
	d := b.Sub(a)
	return Segment{
		Start:  a,
		End:    b,
		Center: a.Add(d.Scale(0.5)),
		Length: d.Length(),
		Angle:  math.Atan2(d.Y, d.X) * 180 / math.Pi,
	}
}
