package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nodegraph/geometry"
	"nodegraph/gesture"
	"nodegraph/settings"
)

func TestViewRoundTrip(t *testing.T) {
	v := View{Offset: geometry.V(30, -10), Scale: 2}
	p := geometry.V(7, 9)
	assert.Equal(t, geometry.V(44, 8), v.ToScreen(p))
	assert.Equal(t, p, v.ToCanvas(v.ToScreen(p)))
}

func TestWheelZoomsAroundPointer(t *testing.T) {
	c, _ := newTestCanvas(t)
	at := geometry.V(100, 80)
	before := c.ScreenToCanvas(at)

	assert.True(t, c.HandlePointer(gesture.PointerEvent{Kind: gesture.Wheel, Position: at, Wheel: -1}))

	assert.InDelta(t, 1.1, c.View().Scale, 1e-9)
	after := c.ScreenToCanvas(at)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)

	c.HandlePointer(gesture.PointerEvent{Kind: gesture.Wheel, Position: at, Wheel: 3})
	assert.InDelta(t, 1.1*0.7, c.View().Scale, 1e-9)

	assert.False(t, c.HandlePointer(gesture.PointerEvent{Kind: gesture.Wheel, Position: at}))
}

func TestZoomIsClamped(t *testing.T) {
	c, _ := newTestCanvas(t)

	c.HandlePointer(gesture.PointerEvent{Kind: gesture.Wheel, Wheel: -100})
	assert.Equal(t, DefaultMaxScale, c.View().Scale)

	for range 50 {
		c.HandlePointer(gesture.PointerEvent{Kind: gesture.Wheel, Wheel: 5})
	}
	assert.Equal(t, DefaultMinScale, c.View().Scale)

	c.SetViewScale(-1)
	assert.Equal(t, DefaultMinScale, c.View().Scale, "invalid scales are ignored")
}

func TestZoomLivesInSettings(t *testing.T) {
	s := settings.Defaults()
	s.Zoom = 100
	c := New[*item, *link, *box](testConfig(), WithSettings(s))

	assert.Equal(t, DefaultMaxScale, s.Zoom, "clamped on construction")
	c.SetViewScale(2)
	assert.Equal(t, 2.0, s.Zoom)
	assert.Same(t, s, c.Settings())
}

func TestFitToScreen(t *testing.T) {
	c, _ := newTestCanvas(t)
	viewport := geometry.RectAt(geometry.Vec2{}, geometry.V(800, 600))

	c.FitToScreen(viewport)
	assert.Equal(t, View{Scale: 1}, c.View(), "empty canvas is left alone")

	addNode(c, "A", 0, 0)
	addNode(c, "B", 1000, 500)
	c.FitToScreen(viewport)

	v := c.View()
	assert.Less(t, v.Scale, 1.0)
	for _, n := range c.Nodes() {
		r := v.RectToScreen(n.Bounds())
		assert.True(t, viewport.Contains(r.Min), "%v inside viewport", r)
		assert.True(t, viewport.Contains(r.Max), "%v inside viewport", r)
	}
}

func TestNodesIn(t *testing.T) {
	c, _ := newTestCanvas(t)
	a := addNode(c, "A", 0, 0)
	addNode(c, "B", 500, 500)

	got := c.NodesIn(geometry.Rect{Min: geometry.V(-10, -10), Max: geometry.V(50, 50)})
	assert.Len(t, got, 1)
	assert.Same(t, a, got[0])
	assert.Empty(t, c.NodesIn(geometry.Rect{Min: geometry.V(200, 200), Max: geometry.V(300, 300)}))
}
