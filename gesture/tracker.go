package gesture

import "nodegraph/geometry"

// State is where a tracker is in its gesture.
type State int

const (
	Idle     State = iota // Waiting for a press of its button
	Armed                 // Pressed, not yet moved past the dead zone
	Dragging              // Moving with the button held
	Clicked               // Released without dragging (reported, never stored)
)

// String returns the state name for display
func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Armed:
		return "ARMED"
	case Dragging:
		return "DRAGGING"
	case Clicked:
		return "CLICKED"
	default:
		return "UNKNOWN"
	}
}

// Tracker is the automaton shared by every interaction surface:
//
//	Idle --press(button)--> Armed --move--> Dragging
//	Armed/Dragging --release(button, any position)--> Idle
//
// While armed it follows a single pointer and ignores presses and releases
// of any other button. A release of its button always returns it to Idle;
// the outcome is Clicked if the pointer never left the dead zone and
// Dragging otherwise.
type Tracker struct {
	Button   Button
	DeadZone float64 // Screen-space distance before Armed becomes Dragging

	state   State
	pointer int
	start   geometry.Vec2
	last    geometry.Vec2
}

// NewTracker creates an idle tracker for button.
func NewTracker(button Button, deadZone float64) *Tracker {
	return &Tracker{Button: button, DeadZone: deadZone}
}

// State returns the current state.
func (t *Tracker) State() State {
	return t.state
}

// Active reports whether a gesture is in progress.
func (t *Tracker) Active() bool {
	return t.state == Armed || t.state == Dragging
}

// Pointer returns the pointer followed by the active gesture.
func (t *Tracker) Pointer() int {
	return t.pointer
}

// Start returns the screen position of the press.
func (t *Tracker) Start() geometry.Vec2 {
	return t.start
}

// Last returns the most recent screen position.
func (t *Tracker) Last() geometry.Vec2 {
	return t.last
}

// Displacement is the total screen-space movement since the press.
func (t *Tracker) Displacement() geometry.Vec2 {
	return t.last.Sub(t.start)
}

// Press arms the tracker if ev is a press of its button while idle.
func (t *Tracker) Press(ev PointerEvent) bool {
	if ev.Kind != Press || ev.Button != t.Button || t.state != Idle {
		return false
	}
	t.state = Armed
	t.pointer = ev.PointerID
	t.start = ev.Position
	t.last = ev.Position
	return true
}

// Move records movement of the followed pointer. started is true on the move
// that leaves the dead zone; ok is true for every move while dragging.
func (t *Tracker) Move(ev PointerEvent) (started, ok bool) {
	if !t.Active() || ev.PointerID != t.pointer {
		return false, false
	}
	t.last = ev.Position
	if t.state == Armed {
		if t.Displacement().Length() <= t.DeadZone {
			return false, false
		}
		t.state = Dragging
		started = true
	}
	return started, true
}

// Release ends the gesture wherever the pointer is and reports how it ended.
// ok is false if the tracker was idle or ev is for another pointer or
// button.
func (t *Tracker) Release(ev PointerEvent) (outcome State, ok bool) {
	if !t.Active() || ev.PointerID != t.pointer || ev.Button != t.Button {
		return Idle, false
	}
	t.last = ev.Position
	outcome = Clicked
	if t.state == Dragging {
		outcome = Dragging
	}
	t.state = Idle
	return outcome, true
}

// Cancel abandons the gesture without an outcome.
func (t *Tracker) Cancel() {
	t.state = Idle
}
