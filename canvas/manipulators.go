package canvas

import (
	"go.uber.org/zap"

	"nodegraph/geometry"
	"nodegraph/gesture"
	"nodegraph/graph"
)

// HandlePointer feeds one raw pointer event from the toolkit into the
// canvas. Events of a captured pointer go to the surface that captured it;
// presses go to the surface under the pointer. It reports whether the event
// was used.
func (c *Controller[N, C, G]) HandlePointer(ev gesture.PointerEvent) bool {
	if c.capture.Dispatch(ev) {
		return true
	}
	switch ev.Kind {
	case gesture.Wheel:
		if ev.Wheel == 0 {
			return false
		}
		c.ZoomAt(ev.Position, c.wheelFactor(ev.Wheel))
		return true
	case gesture.Press:
		c.DismissMenu()
		return c.press(ev)
	}
	return false
}

func (c *Controller[N, C, G]) press(ev gesture.PointerEvent) bool {
	el := c.Pick(ev.Position)
	if el == nil {
		return c.background.press(ev)
	}
	switch el.Kind {
	case graph.KindHandle:
		if n := c.model.FindNodeByElement(el); n != nil {
			return c.handles.press(n, ev)
		}
	case graph.KindNode:
		if n := c.model.FindNodeByElement(el); n != nil {
			return c.nodes.press(n, ev)
		}
	case graph.KindConnection:
		if conn := c.model.FindConnectionByElement(el); conn != nil {
			return c.lines.press(conn, ev)
		}
	case graph.KindGroup:
		if g := c.model.FindGroupByElement(el); g != nil {
			return c.groups.press(g, ev)
		}
	}
	c.logger.Warn("picked element has no owner", zap.Stringer("kind", el.Kind), zap.Stringer("id", el.ID))
	return false
}

// Background -----------------------------------------------------------------

// backgroundManipulator handles the empty canvas: click to deselect, left
// drag for a marquee (or a pan), middle drag to pan, right click for the
// add menu. A left or right press abandons a pending connection; a middle
// drag pans without disturbing it.
type backgroundManipulator[N, C, G comparable] struct {
	c       *Controller[N, C, G]
	left    *gesture.Tracker
	middle  *gesture.Tracker
	marquee bool
}

func newBackgroundManipulator[N, C, G comparable](c *Controller[N, C, G]) *backgroundManipulator[N, C, G] {
	return &backgroundManipulator[N, C, G]{
		c:      c,
		left:   gesture.NewTracker(gesture.ButtonLeft, c.cfg.DragDeadZone),
		middle: gesture.NewTracker(gesture.ButtonMiddle, c.cfg.DragDeadZone),
	}
}

func (m *backgroundManipulator[N, C, G]) press(ev gesture.PointerEvent) bool {
	c := m.c
	switch ev.Button {
	case gesture.ButtonRight:
		c.CancelConnection()
		c.openMenu(c.backgroundMenu(ev.Position))
		return true
	case gesture.ButtonLeft:
		if !m.left.Press(ev) {
			return false
		}
		c.CancelConnection()
		m.marquee = c.cb.Marquee != nil && !ev.Modifiers.Has(gesture.ModAlt)
	case gesture.ButtonMiddle:
		if !m.middle.Press(ev) {
			return false
		}
	default:
		return false
	}
	c.capture.Capture(ev.PointerID, m)
	return true
}

// marqueeRect is the dragged box in canvas space.
func (m *backgroundManipulator[N, C, G]) marqueeRect() geometry.Rect {
	return geometry.Rect{
		Min: m.c.ScreenToCanvas(m.left.Start()),
		Max: m.c.ScreenToCanvas(m.left.Last()),
	}.Canon()
}

func (m *backgroundManipulator[N, C, G]) HandlePointer(ev gesture.PointerEvent) bool {
	c := m.c
	switch ev.Kind {
	case gesture.Move:
		if _, ok := m.left.Move(ev); ok {
			if m.marquee {
				c.cb.Marquee(m.marqueeRect(), false)
			} else {
				c.Pan(ev.Delta)
			}
			return true
		}
		if _, ok := m.middle.Move(ev); ok {
			c.Pan(ev.Delta)
			return true
		}
	case gesture.Release:
		if outcome, ok := m.left.Release(ev); ok {
			switch {
			case outcome == gesture.Clicked:
				m.click(ev.Position)
			case m.marquee:
				c.cb.Marquee(m.marqueeRect(), true)
			}
			return true
		}
		if _, ok := m.middle.Release(ev); ok {
			return true
		}
	}
	return false
}

func (m *backgroundManipulator[N, C, G]) click(screen geometry.Vec2) {
	c := m.c
	c.ClearSelection()
	if c.cb.BackgroundClicked != nil {
		c.cb.BackgroundClicked(c.ScreenToCanvas(screen))
	}
}

// Nodes ----------------------------------------------------------------------

// nodeManipulator drags nodes, drops them into groups, completes pending
// connections and opens the node menu.
type nodeManipulator[N, C, G comparable] struct {
	c        *Controller[N, C, G]
	tracker  *gesture.Tracker
	node     *graph.Node[N]
	startPos geometry.Vec2 // Canvas position of node at the press
}

func newNodeManipulator[N, C, G comparable](c *Controller[N, C, G]) *nodeManipulator[N, C, G] {
	return &nodeManipulator[N, C, G]{
		c:       c,
		tracker: gesture.NewTracker(gesture.ButtonLeft, c.cfg.DragDeadZone),
	}
}

func (m *nodeManipulator[N, C, G]) press(n *graph.Node[N], ev gesture.PointerEvent) bool {
	c := m.c
	switch ev.Button {
	case gesture.ButtonRight:
		c.openMenu(c.nodeMenu(n, ev.Position))
		return true
	case gesture.ButtonLeft:
	default:
		return false
	}

	if c.completePending(n) {
		return true
	}
	if ev.ClickCount >= 2 && c.cb.NodeDoubleClicked != nil {
		c.cb.NodeDoubleClicked(n)
		return true
	}
	if !m.tracker.Press(ev) {
		return false
	}
	m.node = n
	m.startPos = n.Position
	n.Element.SetClass(graph.ClassPressed, true)
	c.capture.Capture(ev.PointerID, m)

	// The selection callback may delete n, which cancels the drag.
	c.SelectNode(n)
	return true
}

func (m *nodeManipulator[N, C, G]) HandlePointer(ev gesture.PointerEvent) bool {
	switch ev.Kind {
	case gesture.Move:
		if _, ok := m.tracker.Move(ev); ok && m.node != nil {
			m.drag(m.node)
			return true
		}
	case gesture.Release:
		if _, ok := m.tracker.Release(ev); ok {
			m.drop()
			return true
		}
	}
	return false
}

func (m *nodeManipulator[N, C, G]) drag(n *graph.Node[N]) {
	c := m.c
	pos := m.startPos.Add(m.tracker.Displacement().Scale(1 / c.settings.Zoom))
	if c.settings.SnapToGrid {
		if snapped, ok := c.TryGetNodeSnapPosition(n, pos); ok {
			pos = snapped
		}
	}
	n.Position = pos
	c.refreshNode(n)
	c.updateGroupHover(n)
}

func (m *nodeManipulator[N, C, G]) drop() {
	c := m.c
	n := m.node
	m.node = nil
	if n == nil {
		return
	}
	n.Element.SetClass(graph.ClassPressed, false)

	g := c.hoveredGroup
	if g == nil {
		return
	}
	c.setHoveredGroup(nil)
	if err := c.AddToGroup(n, g); err != nil {
		c.logger.Debug("drop into group failed", zap.Error(err))
	}
}

// forget abandons a drag of n, which is leaving the canvas.
func (m *nodeManipulator[N, C, G]) forget(n *graph.Node[N]) {
	if m.node != n {
		return
	}
	m.node = nil
	m.tracker.Cancel()
	m.c.capture.Release(m.tracker.Pointer())
	m.c.setHoveredGroup(nil)
}

// Groups ---------------------------------------------------------------------

// groupManipulator selects groups and drags their anchor.
type groupManipulator[N, C, G comparable] struct {
	c           *Controller[N, C, G]
	tracker     *gesture.Tracker
	group       *graph.Group[N, G]
	startAnchor geometry.Vec2
}

func newGroupManipulator[N, C, G comparable](c *Controller[N, C, G]) *groupManipulator[N, C, G] {
	return &groupManipulator[N, C, G]{
		c:       c,
		tracker: gesture.NewTracker(gesture.ButtonLeft, c.cfg.DragDeadZone),
	}
}

func (m *groupManipulator[N, C, G]) press(g *graph.Group[N, G], ev gesture.PointerEvent) bool {
	c := m.c
	switch ev.Button {
	case gesture.ButtonRight:
		c.openMenu(c.groupMenu(g, ev.Position))
		return true
	case gesture.ButtonLeft:
		if !m.tracker.Press(ev) {
			return false
		}
		m.group = g
		m.startAnchor = g.Anchor
		c.capture.Capture(ev.PointerID, m)
		c.SelectGroup(g)
		return true
	}
	return false
}

func (m *groupManipulator[N, C, G]) HandlePointer(ev gesture.PointerEvent) bool {
	c := m.c
	switch ev.Kind {
	case gesture.Move:
		if _, ok := m.tracker.Move(ev); ok && m.group != nil {
			// Only an empty group's rectangle follows its anchor.
			m.group.Anchor = m.startAnchor.Add(m.tracker.Displacement().Scale(1 / c.settings.Zoom))
			c.refreshGroup(m.group)
			return true
		}
	case gesture.Release:
		if _, ok := m.tracker.Release(ev); ok {
			m.group = nil
			return true
		}
	}
	return false
}

func (m *groupManipulator[N, C, G]) forget(g *graph.Group[N, G]) {
	if m.group != g {
		return
	}
	m.group = nil
	m.tracker.Cancel()
	m.c.capture.Release(m.tracker.Pointer())
}

// Connections ----------------------------------------------------------------

// connectionManipulator selects connection lines and opens their menu.
type connectionManipulator[N, C, G comparable] struct {
	c *Controller[N, C, G]
}

func (m *connectionManipulator[N, C, G]) press(conn *graph.Connection[N, C], ev gesture.PointerEvent) bool {
	switch ev.Button {
	case gesture.ButtonLeft:
		m.c.SelectConnection(conn)
		return true
	case gesture.ButtonRight:
		m.c.openMenu(m.c.connectionMenu(conn, ev.Position))
		return true
	}
	return false
}

// Handles --------------------------------------------------------------------

// handleManipulator creates connections by dragging from a node's handle
// and releasing over another node.
type handleManipulator[N, C, G comparable] struct {
	c       *Controller[N, C, G]
	tracker *gesture.Tracker
	from    *graph.Node[N]
}

func newHandleManipulator[N, C, G comparable](c *Controller[N, C, G]) *handleManipulator[N, C, G] {
	return &handleManipulator[N, C, G]{
		c:       c,
		tracker: gesture.NewTracker(gesture.ButtonLeft, 0),
	}
}

func (m *handleManipulator[N, C, G]) press(n *graph.Node[N], ev gesture.PointerEvent) bool {
	c := m.c
	if c.pending != nil || !m.tracker.Press(ev) {
		return false
	}
	m.from = n
	c.setPending(&PendingConnection[N]{From: n, ViaHandle: true})
	c.capture.Capture(ev.PointerID, m)
	return true
}

func (m *handleManipulator[N, C, G]) HandlePointer(ev gesture.PointerEvent) bool {
	switch ev.Kind {
	case gesture.Move:
		if _, ok := m.tracker.Move(ev); ok && m.from != nil {
			m.track(ev.Position)
			return true
		}
	case gesture.Release:
		if _, ok := m.tracker.Release(ev); ok {
			m.finish(ev.Position)
			return true
		}
	}
	return false
}

// track records the node under the pointer. The source node never counts.
func (m *handleManipulator[N, C, G]) track(screen geometry.Vec2) {
	target := m.c.nodeAt(screen)
	if target == m.from {
		target = nil
	}
	m.setHovered(target)
}

func (m *handleManipulator[N, C, G]) setHovered(n *graph.Node[N]) {
	c := m.c
	if c.hoveredNode == n {
		return
	}
	if c.hoveredNode != nil {
		c.hoveredNode.Element.SetClass(graph.ClassHovered, false)
	}
	c.hoveredNode = n
	if n != nil {
		n.Element.SetClass(graph.ClassHovered, true)
	}
}

func (m *handleManipulator[N, C, G]) finish(screen geometry.Vec2) {
	c := m.c
	from := m.from
	m.from = nil
	m.setHovered(nil)
	c.setPending(nil)
	if from == nil {
		return
	}

	to := c.nodeAt(screen)
	if to == nil || to == from || c.cfg.AutoConnectionType == nil {
		return
	}
	connType, ok := c.cfg.AutoConnectionType(from.Payload, to.Payload)
	if !ok {
		c.logger.Debug("no connection type for handle drag")
		return
	}
	if _, err := c.connect(from, to, connType); err != nil {
		c.logger.Debug("handle connection abandoned", zap.String("type", connType), zap.Error(err))
	}
}

// forget drops every reference to n, which is leaving the canvas.
func (m *handleManipulator[N, C, G]) forget(n *graph.Node[N]) {
	if m.c.hoveredNode == n {
		m.setHovered(nil)
	}
	if m.from != n {
		return
	}
	m.from = nil
	m.tracker.Cancel()
	m.c.capture.Release(m.tracker.Pointer())
}
