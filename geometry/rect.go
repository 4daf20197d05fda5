package geometry

import "math"

// Rect is an axis-aligned rectangle. Min is inclusive, Max exclusive.
type Rect struct {
	Min, Max Vec2
}

// RectAt builds a rectangle from its top-left corner and size.
func RectAt(pos, size Vec2) Rect {
	return Rect{Min: pos, Max: pos.Add(size)}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Size returns the width and height as a vector.
func (r Rect) Size() Vec2 {
	return r.Max.Sub(r.Min)
}

// Center returns the centre point of the rectangle.
func (r Rect) Center() Vec2 {
	return r.Min.Add(r.Size().Scale(0.5))
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Contains checks if a point is within the rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X &&
		p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Overlaps reports whether the two rectangles share any area.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X &&
		r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Expand grows the rectangle by pad on every side.
func (r Rect) Expand(pad float64) Rect {
	return Rect{
		Min: Vec2{X: r.Min.X - pad, Y: r.Min.Y - pad},
		Max: Vec2{X: r.Max.X + pad, Y: r.Max.Y + pad},
	}
}

// Translate moves the rectangle by d.
func (r Rect) Translate(d Vec2) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Canon returns the rectangle with Min and Max ordered per axis, so a
// rectangle spanned by two arbitrary corners is well formed.
func (r Rect) Canon() Rect {
	return Rect{
		Min: Vec2{X: math.Min(r.Min.X, r.Max.X), Y: math.Min(r.Min.Y, r.Max.Y)},
		Max: Vec2{X: math.Max(r.Min.X, r.Max.X), Y: math.Max(r.Min.Y, r.Max.Y)},
	}
}

// Union returns the smallest rectangle containing both a and b.
func Union(a, b Rect) Rect {
	return Rect{
		Min: Vec2{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y)},
		Max: Vec2{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y)},
	}
}

// UnionAll folds Union over rects. ok is false when rects is empty.
func UnionAll(rects []Rect) (r Rect, ok bool) {
	if len(rects) == 0 {
		return Rect{}, false
	}
	r = rects[0]
	for _, o := range rects[1:] {
		r = Union(r, o)
	}
	return r, true
}
