package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nodegraph/geometry"
)

func ev(kind EventKind, button Button, x, y float64) PointerEvent {
	return PointerEvent{Kind: kind, Button: button, Position: geometry.V(x, y)}
}

func TestTrackerClick(t *testing.T) {
	tr := NewTracker(ButtonLeft, 3)

	assert.True(t, tr.Press(ev(Press, ButtonLeft, 10, 10)))
	assert.Equal(t, Armed, tr.State())

	// Within the dead zone: still armed.
	started, ok := tr.Move(ev(Move, ButtonNone, 12, 10))
	assert.False(t, started)
	assert.False(t, ok)
	assert.Equal(t, Armed, tr.State())

	outcome, ok := tr.Release(ev(Release, ButtonLeft, 12, 10))
	assert.True(t, ok)
	assert.Equal(t, Clicked, outcome)
	assert.Equal(t, Idle, tr.State())
}

func TestTrackerDrag(t *testing.T) {
	tr := NewTracker(ButtonLeft, 3)
	tr.Press(ev(Press, ButtonLeft, 0, 0))

	started, ok := tr.Move(ev(Move, ButtonNone, 10, 0))
	assert.True(t, started)
	assert.True(t, ok)
	assert.Equal(t, Dragging, tr.State())

	started, ok = tr.Move(ev(Move, ButtonNone, 20, 5))
	assert.False(t, started)
	assert.True(t, ok)
	assert.Equal(t, geometry.V(20, 5), tr.Displacement())

	// Release far away still ends the drag.
	outcome, ok := tr.Release(ev(Release, ButtonLeft, 5000, -300))
	assert.True(t, ok)
	assert.Equal(t, Dragging, outcome)
	assert.False(t, tr.Active())
}

func TestTrackerIgnoresOtherButtons(t *testing.T) {
	tr := NewTracker(ButtonLeft, 0)

	assert.False(t, tr.Press(ev(Press, ButtonRight, 0, 0)))
	assert.Equal(t, Idle, tr.State())

	tr.Press(ev(Press, ButtonLeft, 0, 0))
	assert.False(t, tr.Press(ev(Press, ButtonMiddle, 0, 0)))
	assert.False(t, tr.Press(ev(Press, ButtonLeft, 50, 50)), "already armed")
	assert.Equal(t, geometry.V(0, 0), tr.Start())
}

func TestTrackerFollowsOnePointer(t *testing.T) {
	tr := NewTracker(ButtonLeft, 0)
	p := ev(Press, ButtonLeft, 0, 0)
	p.PointerID = 2
	tr.Press(p)

	other := ev(Move, ButtonNone, 40, 40)
	other.PointerID = 3
	_, ok := tr.Move(other)
	assert.False(t, ok)

	_, ok = tr.Release(PointerEvent{Kind: Release, PointerID: 3})
	assert.False(t, ok)
	assert.True(t, tr.Active())

	tr.Cancel()
	assert.Equal(t, Idle, tr.State())
}

func TestCaptureReleasesOnRelease(t *testing.T) {
	c := NewCapture()
	var got []EventKind
	c.Capture(0, HandlerFunc(func(e PointerEvent) bool {
		got = append(got, e.Kind)
		return true
	}))

	assert.True(t, c.Dispatch(ev(Move, ButtonNone, 1, 1)))
	assert.True(t, c.Dispatch(ev(Release, ButtonLeft, 1, 1)))
	assert.False(t, c.Dispatch(ev(Move, ButtonNone, 2, 2)))

	_, ok := c.Owner(0)
	assert.False(t, ok)
	assert.Equal(t, []EventKind{Move, Release}, got)
}

func TestTrackerIgnoresOtherButtonRelease(t *testing.T) {
	tr := NewTracker(ButtonLeft, 0)
	tr.Press(ev(Press, ButtonLeft, 0, 0))
	tr.Move(ev(Move, ButtonNone, 10, 0))

	_, ok := tr.Release(ev(Release, ButtonRight, 10, 0))
	assert.False(t, ok)
	assert.Equal(t, Dragging, tr.State())

	outcome, ok := tr.Release(ev(Release, ButtonLeft, 10, 0))
	assert.True(t, ok)
	assert.Equal(t, Dragging, outcome)
}

func TestCaptureKeptOnIgnoredRelease(t *testing.T) {
	c := NewCapture()
	tr := NewTracker(ButtonLeft, 0)
	tr.Press(ev(Press, ButtonLeft, 0, 0))
	c.Capture(0, HandlerFunc(func(e PointerEvent) bool {
		_, ok := tr.Release(e)
		return ok
	}))

	assert.True(t, c.Dispatch(ev(Release, ButtonRight, 1, 1)))
	_, ok := c.Owner(0)
	assert.True(t, ok, "right release does not end a left gesture")

	assert.True(t, c.Dispatch(ev(Release, ButtonLeft, 1, 1)))
	_, ok = c.Owner(0)
	assert.False(t, ok)
}

func TestModifiers(t *testing.T) {
	m := ModShift | ModAlt
	assert.True(t, m.Has(ModAlt))
	assert.True(t, m.Has(ModShift|ModAlt))
	assert.False(t, m.Has(ModCtrl))
	assert.Equal(t, "DRAGGING", Dragging.String())
	assert.Equal(t, "wheel", Wheel.String())
}
