// Package gesture turns raw pointer events into drag and click gestures.
package gesture

import "nodegraph/geometry"

// EventKind is what happened to the pointer.
type EventKind int

const (
	Press EventKind = iota
	Move
	Release
	Enter
	Exit
	Wheel
)

// String returns the event kind name for display
func (k EventKind) String() string {
	switch k {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	case Enter:
		return "enter"
	case Exit:
		return "exit"
	case Wheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// String returns the button name for display
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "none"
	}
}

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether every modifier in m2 is held.
func (m Modifiers) Has(m2 Modifiers) bool {
	return m&m2 == m2
}

// PointerEvent is one raw event from the toolkit. Position is in screen
// space; Delta is the screen-space movement since the previous event for the
// same pointer. Wheel is positive when scrolling towards the user.
type PointerEvent struct {
	Kind       EventKind
	Button     Button
	PointerID  int
	Position   geometry.Vec2
	Delta      geometry.Vec2
	Modifiers  Modifiers
	ClickCount int
	Wheel      float64
}

// Handler consumes pointer events. The return value reports whether the
// event was used.
type Handler interface {
	HandlePointer(ev PointerEvent) bool
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ev PointerEvent) bool

// HandlePointer calls f(ev).
func (f HandlerFunc) HandlePointer(ev PointerEvent) bool {
	return f(ev)
}
