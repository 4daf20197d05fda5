// Package terminal runs the node-graph editor in a terminal with tcell. It
// turns terminal mouse reports into pointer events for the canvas and paints
// the canvas elements as box-drawing characters.
package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"nodegraph/geometry"
	"nodegraph/gesture"
)

// Size of one terminal cell in screen units. The canvas view transform maps
// canvas space to screen units; cells are a coarse grid over them.
const (
	CellWidth  = 10.0
	CellHeight = 16.0
)

// DoubleClickInterval is the longest gap between two presses on the same cell
// that still counts as a double click.
const DoubleClickInterval = 400 * time.Millisecond

var buttonMap = []struct {
	mask   tcell.ButtonMask
	button gesture.Button
}{
	{tcell.ButtonPrimary, gesture.ButtonLeft},
	{tcell.ButtonSecondary, gesture.ButtonRight},
	{tcell.ButtonMiddle, gesture.ButtonMiddle},
}

// Mouse converts tcell mouse reports into pointer events. tcell reports the
// set of buttons currently held, so presses and releases are found by
// comparing each report with the previous one.
type Mouse struct {
	now func() time.Time

	held      tcell.ButtonMask
	last      geometry.Vec2
	lastPress time.Time
	pressCell geometry.Vec2
	clicks    int
}

// NewMouse creates a translator with no buttons held.
func NewMouse() *Mouse {
	return &Mouse{now: time.Now}
}

// CellToScreen returns the screen position of the centre of a cell.
func CellToScreen(x, y int) geometry.Vec2 {
	return geometry.V((float64(x)+0.5)*CellWidth, (float64(y)+0.5)*CellHeight)
}

func modifiers(m tcell.ModMask) gesture.Modifiers {
	var out gesture.Modifiers
	if m&tcell.ModShift != 0 {
		out |= gesture.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= gesture.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= gesture.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= gesture.ModMeta
	}
	return out
}

// Translate returns the pointer events one mouse report stands for, in
// order: wheel, move, releases, presses.
func (m *Mouse) Translate(ev *tcell.EventMouse) []gesture.PointerEvent {
	x, y := ev.Position()
	pos := CellToScreen(x, y)
	mods := modifiers(ev.Modifiers())
	buttons := ev.Buttons()

	base := gesture.PointerEvent{Position: pos, Modifiers: mods}
	var out []gesture.PointerEvent

	switch {
	case buttons&tcell.WheelUp != 0:
		pe := base
		pe.Kind, pe.Wheel = gesture.Wheel, -1
		out = append(out, pe)
	case buttons&tcell.WheelDown != 0:
		pe := base
		pe.Kind, pe.Wheel = gesture.Wheel, 1
		out = append(out, pe)
	}

	if pos != m.last {
		pe := base
		pe.Kind = gesture.Move
		pe.Delta = pos.Sub(m.last)
		out = append(out, pe)
		m.last = pos
	}

	for _, b := range buttonMap {
		if m.held&b.mask != 0 && buttons&b.mask == 0 {
			pe := base
			pe.Kind, pe.Button = gesture.Release, b.button
			out = append(out, pe)
		}
	}
	for _, b := range buttonMap {
		if m.held&b.mask == 0 && buttons&b.mask != 0 {
			pe := base
			pe.Kind, pe.Button = gesture.Press, b.button
			pe.ClickCount = m.count(b.button, pos)
			out = append(out, pe)
		}
	}

	m.held = buttons & (tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle)
	return out
}

// count tracks consecutive left presses on one cell.
func (m *Mouse) count(b gesture.Button, pos geometry.Vec2) int {
	if b != gesture.ButtonLeft {
		return 1
	}
	now := m.now()
	if m.clicks > 0 && pos == m.pressCell && now.Sub(m.lastPress) <= DoubleClickInterval {
		m.clicks++
	} else {
		m.clicks = 1
	}
	m.lastPress = now
	m.pressCell = pos
	return m.clicks
}
