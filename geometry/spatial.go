package geometry

import "math"

// SnapPosition aligns target with the candidates on each axis independently.
//
// For every axis the first candidate (in slice order) whose coordinate lies
// within distance of the target's replaces it. This is first-match, not
// nearest-match: a later, closer candidate never wins over an earlier one.
// The scan stops as soon as both axes have snapped. ok reports whether any
// axis snapped.
func SnapPosition(target Vec2, candidates []Vec2, distance float64) (snapped Vec2, ok bool) {
	snapped = target
	var snapX, snapY bool
	for _, c := range candidates {
		if !snapX && math.Abs(c.X-target.X) <= distance {
			snapped.X = c.X
			snapX = true
		}
		if !snapY && math.Abs(c.Y-target.Y) <= distance {
			snapped.Y = c.Y
			snapY = true
		}
		if snapX && snapY {
			break
		}
	}
	return snapped, snapX || snapY
}

// FirstContaining returns the index of the first rectangle containing p, or
// -1 if none does. Overlapping rectangles resolve to the earliest one.
func FirstContaining(rects []Rect, p Vec2) int {
	for i, r := range rects {
		if r.Contains(p) {
			return i
		}
	}
	return -1
}

// DistanceToSegment returns the distance from p to the closest point of the
// segment a-b.
func DistanceToSegment(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := Clamp((p.Sub(a).X*ab.X+p.Sub(a).Y*ab.Y)/lenSq, 0, 1)
	return p.Distance(a.Add(ab.Scale(t)))
}
