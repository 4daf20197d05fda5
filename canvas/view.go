package canvas

import (
	"math"

	"nodegraph/geometry"
	"nodegraph/graph"
)

// View is the canvas-to-screen transform: screen = canvas*Scale + Offset.
type View struct {
	Offset geometry.Vec2
	Scale  float64
}

// ToScreen maps a canvas point to the screen.
func (v View) ToScreen(p geometry.Vec2) geometry.Vec2 {
	return p.Scale(v.Scale).Add(v.Offset)
}

// ToCanvas maps a screen point to the canvas.
func (v View) ToCanvas(p geometry.Vec2) geometry.Vec2 {
	return p.Sub(v.Offset).Scale(1 / v.Scale)
}

// RectToScreen maps a canvas rectangle to the screen.
func (v View) RectToScreen(r geometry.Rect) geometry.Rect {
	return geometry.Rect{Min: v.ToScreen(r.Min), Max: v.ToScreen(r.Max)}
}

// View returns the current transform.
func (c *Controller[N, C, G]) View() View {
	return View{Offset: c.offset, Scale: c.settings.Zoom}
}

// ScreenToCanvas maps a screen point into canvas space.
func (c *Controller[N, C, G]) ScreenToCanvas(p geometry.Vec2) geometry.Vec2 {
	return c.View().ToCanvas(p)
}

// CanvasToScreen maps a canvas point onto the screen.
func (c *Controller[N, C, G]) CanvasToScreen(p geometry.Vec2) geometry.Vec2 {
	return c.View().ToScreen(p)
}

// SetViewScale sets the zoom factor, clamped to the configured range, and
// stores it in the settings.
func (c *Controller[N, C, G]) SetViewScale(scale float64) {
	if scale <= 0 || math.IsNaN(scale) {
		return
	}
	c.settings.Zoom = geometry.Clamp(scale, c.cfg.MinScale, c.cfg.MaxScale)
}

// SetViewOffset places the canvas origin at a screen position.
func (c *Controller[N, C, G]) SetViewOffset(offset geometry.Vec2) {
	c.offset = offset
}

// Pan moves the view by a raw screen-space delta. The delta is not scaled by
// zoom, so panning speed is the same at every zoom level.
func (c *Controller[N, C, G]) Pan(delta geometry.Vec2) {
	c.offset = c.offset.Add(delta)
}

// ZoomAt multiplies the scale by factor, keeping the canvas point under the
// screen position at fixed.
func (c *Controller[N, C, G]) ZoomAt(at geometry.Vec2, factor float64) {
	if factor <= 0 {
		return
	}
	anchor := c.ScreenToCanvas(at)
	c.SetViewScale(c.settings.Zoom * factor)
	c.offset = at.Sub(anchor.Scale(c.settings.Zoom))
}

// wheelFactor turns wheel notches into a zoom factor. Scrolling towards the
// user zooms out.
func (c *Controller[N, C, G]) wheelFactor(notches float64) float64 {
	return math.Max(0.1, 1-notches*c.cfg.ZoomStep)
}

// FitToScreen frames every node inside viewport (screen space). It does
// nothing on an empty canvas.
func (c *Controller[N, C, G]) FitToScreen(viewport geometry.Rect) {
	nodes := c.model.Nodes()
	if len(nodes) == 0 || viewport.Empty() {
		return
	}
	rects := make([]geometry.Rect, len(nodes))
	for i, n := range nodes {
		rects[i] = n.Bounds()
	}
	bounds, _ := geometry.UnionAll(rects)
	bounds = bounds.Expand(c.cfg.GroupPadding)

	scale := math.Min(viewport.Width()/bounds.Width(), viewport.Height()/bounds.Height())
	c.SetViewScale(scale)
	c.offset = viewport.Center().Sub(bounds.Center().Scale(c.settings.Zoom))
}

// NodesIn returns the nodes whose bounds overlap rect (canvas space).
func (c *Controller[N, C, G]) NodesIn(rect geometry.Rect) []*graph.Node[N] {
	var out []*graph.Node[N]
	for _, n := range c.model.Nodes() {
		if n.Bounds().Overlaps(rect) {
			out = append(out, n)
		}
	}
	return out
}
