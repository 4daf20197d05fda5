package canvas

import (
	"go.uber.org/zap"

	"nodegraph/geometry"
	"nodegraph/graph"
)

// Nodes ----------------------------------------------------------------------

func (c *Controller[N, C, G]) addNode(payload N, nodeType string, pos geometry.Vec2) *graph.Node[N] {
	n := graph.NewNode(payload, nodeType, pos, c.cfg.NodeSize)
	c.model.AddNode(n)
	c.refreshNode(n)
	return n
}

// InitNode puts a node for an existing payload on the canvas. No
// notification is sent.
func (c *Controller[N, C, G]) InitNode(payload N, pos geometry.Vec2) *graph.Node[N] {
	return c.addNode(payload, graph.TypeOf(payload), pos)
}

// CreateNode adds a placeholder node of nodeType and notifies NodeCreated so
// the external layer can build its payload.
func (c *Controller[N, C, G]) CreateNode(nodeType string, pos geometry.Vec2) *graph.Node[N] {
	var zero N
	n := c.addNode(zero, nodeType, pos)
	c.logger.Debug("node created", zap.String("type", nodeType), zap.Stringer("id", n.Element.ID))
	if c.cb.NodeCreated != nil {
		c.cb.NodeCreated(n)
	}
	return n
}

// DuplicateNode adds a placeholder copy of n next to it and notifies
// NodeDuplicated with the original and the copy.
func (c *Controller[N, C, G]) DuplicateNode(n *graph.Node[N]) (*graph.Node[N], error) {
	if !c.model.HasNode(n) {
		return nil, c.invariant("DuplicateNode")
	}
	var zero N
	dup := c.addNode(zero, n.Type, n.Position.Add(c.cfg.DuplicateOffset))
	if c.cb.NodeDuplicated != nil {
		c.cb.NodeDuplicated(n, dup)
	}
	return dup, nil
}

// SetNodePayload assigns a payload, typically the one built in response to
// NodeCreated, and refreshes the node's display.
func (c *Controller[N, C, G]) SetNodePayload(n *graph.Node[N], payload N) {
	n.SetPayload(payload)
}

// DeleteNode removes n after deleting its connections and taking it out of
// its group, notifying each step. Deleting a node that is not on the canvas
// is an error in the caller and is logged.
func (c *Controller[N, C, G]) DeleteNode(n *graph.Node[N]) error {
	if !c.model.HasNode(n) {
		return c.invariant("DeleteNode")
	}
	c.removeNode(n, true)
	return nil
}

// RemoveNode removes the node carrying payload, with the same cascade as
// DeleteNode but without notifications. It reports whether a node was found.
func (c *Controller[N, C, G]) RemoveNode(payload N) bool {
	n := c.model.FindNode(payload)
	if n == nil {
		return false
	}
	c.removeNode(n, false)
	return true
}

func (c *Controller[N, C, G]) removeNode(n *graph.Node[N], notify bool) {
	if c.pending != nil && c.pending.From == n {
		c.CancelConnection()
	}
	c.nodes.forget(n)
	c.handles.forget(n)

	for _, conn := range c.model.ConnectionsOf(n) {
		c.removeConnection(conn, notify)
	}
	if g := c.model.RemoveFromGroup(n); g != nil && notify && c.cb.NodeRemovedFromGroup != nil {
		c.cb.NodeRemovedFromGroup(n, g)
	}
	c.deselect(n, nil, nil)

	// A callback above may already have removed it.
	if !c.model.RemoveNode(n) {
		return
	}
	if notify && c.cb.NodeDeleted != nil {
		c.cb.NodeDeleted(n)
	}
}

// Connections ----------------------------------------------------------------

// InitConnection connects the nodes carrying from and to. If either payload
// is not on the canvas nothing is created and nil is returned.
func (c *Controller[N, C, G]) InitConnection(from, to N, payload C) *graph.Connection[N, C] {
	fn, tn := c.model.FindNode(from), c.model.FindNode(to)
	if fn == nil || tn == nil {
		c.logger.Debug("InitConnection: endpoint not on canvas")
		return nil
	}
	conn := graph.NewConnection(payload, "", fn, tn)
	c.model.AddConnection(conn)
	c.refreshConnection(conn)
	return conn
}

// CreateConnection connects the nodes carrying from and to with a
// placeholder connection of connType, if the validator allows it, and
// notifies ConnectionCreated.
func (c *Controller[N, C, G]) CreateConnection(from, to N, connType string) (*graph.Connection[N, C], error) {
	fn, tn := c.model.FindNode(from), c.model.FindNode(to)
	if fn == nil || tn == nil {
		return nil, ErrNotFound
	}
	return c.connect(fn, tn, connType)
}

func (c *Controller[N, C, G]) connect(from, to *graph.Node[N], connType string) (*graph.Connection[N, C], error) {
	if from == to {
		return nil, ErrSameNode
	}
	if c.cfg.Validate != nil && !c.cfg.Validate(from.Payload, to.Payload, connType) {
		c.logger.Debug("connection rejected", zap.String("type", connType))
		return nil, ErrRejected
	}

	var zero C
	conn := graph.NewConnection(zero, connType, from, to)
	c.model.AddConnection(conn)
	c.refreshConnection(conn)
	if c.cb.ConnectionCreated != nil {
		c.cb.ConnectionCreated(conn)
	}
	return conn, nil
}

// SetConnectionPayload assigns a payload and refreshes the display.
func (c *Controller[N, C, G]) SetConnectionPayload(conn *graph.Connection[N, C], payload C) {
	conn.SetPayload(payload)
}

// DeleteConnection removes conn and notifies ConnectionDeleted.
func (c *Controller[N, C, G]) DeleteConnection(conn *graph.Connection[N, C]) error {
	if !c.model.HasConnection(conn) {
		return c.invariant("DeleteConnection")
	}
	c.removeConnection(conn, true)
	return nil
}

// RemoveConnection removes the connection carrying payload without
// notification. It reports whether one was found.
func (c *Controller[N, C, G]) RemoveConnection(payload C) bool {
	conn := c.model.FindConnection(payload)
	if conn == nil {
		return false
	}
	c.removeConnection(conn, false)
	return true
}

func (c *Controller[N, C, G]) removeConnection(conn *graph.Connection[N, C], notify bool) {
	c.deselect(nil, conn, nil)
	if !c.model.RemoveConnection(conn) {
		return
	}
	if notify && c.cb.ConnectionDeleted != nil {
		c.cb.ConnectionDeleted(conn)
	}
}

// Groups ---------------------------------------------------------------------

// InitGroup puts a group for an existing payload on the canvas with the
// nodes carrying members. Members that are not on the canvas are skipped.
// No notification is sent.
func (c *Controller[N, C, G]) InitGroup(payload G, pos geometry.Vec2, members ...N) *graph.Group[N, G] {
	g := graph.NewGroup[N](payload, "", pos)
	c.model.AddGroup(g)
	for _, p := range members {
		if n := c.model.FindNode(p); n != nil {
			c.model.AssignToGroup(n, g)
		}
	}
	c.refreshGroup(g)
	return g
}

// CreateGroup adds a placeholder group of groupType, notifies GroupCreated,
// then adds members one by one with the usual group notifications.
func (c *Controller[N, C, G]) CreateGroup(groupType string, pos geometry.Vec2, members ...*graph.Node[N]) *graph.Group[N, G] {
	var zero G
	g := graph.NewGroup[N](zero, groupType, pos)
	c.model.AddGroup(g)
	c.refreshGroup(g)
	if c.cb.GroupCreated != nil {
		c.cb.GroupCreated(g)
	}
	for _, n := range members {
		if err := c.AddToGroup(n, g); err != nil {
			c.logger.Warn("CreateGroup: skipping member", zap.Error(err))
		}
	}
	return g
}

// SetGroupPayload assigns a payload and refreshes the display.
func (c *Controller[N, C, G]) SetGroupPayload(g *graph.Group[N, G], payload G) {
	g.SetPayload(payload)
}

// AddToGroup moves n into g. If n was in another group it leaves that one
// first, and both moves are notified.
func (c *Controller[N, C, G]) AddToGroup(n *graph.Node[N], g *graph.Group[N, G]) error {
	if !c.model.HasNode(n) {
		return c.invariant("AddToGroup", zap.String("missing", "node"))
	}
	if !c.model.HasGroup(g) {
		return c.invariant("AddToGroup", zap.String("missing", "group"))
	}
	if g.Contains(n) {
		return nil
	}
	if prev := c.model.AssignToGroup(n, g); prev != nil && c.cb.NodeRemovedFromGroup != nil {
		c.cb.NodeRemovedFromGroup(n, prev)
	}
	if c.cb.NodeAddedToGroup != nil {
		c.cb.NodeAddedToGroup(n, g)
	}
	return nil
}

// RemoveFromGroup takes n out of its group, if it has one, and notifies.
func (c *Controller[N, C, G]) RemoveFromGroup(n *graph.Node[N]) error {
	if !c.model.HasNode(n) {
		return c.invariant("RemoveFromGroup")
	}
	if g := c.model.RemoveFromGroup(n); g != nil && c.cb.NodeRemovedFromGroup != nil {
		c.cb.NodeRemovedFromGroup(n, g)
	}
	return nil
}

// DeleteGroup evicts every member, notifying each eviction, then removes g
// and notifies GroupDeleted. The member nodes stay on the canvas.
func (c *Controller[N, C, G]) DeleteGroup(g *graph.Group[N, G]) error {
	if !c.model.HasGroup(g) {
		return c.invariant("DeleteGroup")
	}
	c.removeGroup(g, true)
	return nil
}

// RemoveGroup removes the group carrying payload without notification.
func (c *Controller[N, C, G]) RemoveGroup(payload G) bool {
	g := c.model.FindGroup(payload)
	if g == nil {
		return false
	}
	c.removeGroup(g, false)
	return true
}

func (c *Controller[N, C, G]) removeGroup(g *graph.Group[N, G], notify bool) {
	for _, n := range g.Members() {
		// Callbacks may have moved later members elsewhere.
		if !g.Contains(n) {
			continue
		}
		c.model.RemoveFromGroup(n)
		if notify && c.cb.NodeRemovedFromGroup != nil {
			c.cb.NodeRemovedFromGroup(n, g)
		}
	}
	if c.hoveredGroup == g {
		c.setHoveredGroup(nil)
	}
	c.groups.forget(g)
	c.deselect(nil, nil, g)

	if !c.model.RemoveGroup(g) {
		return
	}
	if notify && c.cb.GroupDeleted != nil {
		c.cb.GroupDeleted(g)
	}
}
