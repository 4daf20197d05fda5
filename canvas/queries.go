package canvas

import (
	"nodegraph/geometry"
	"nodegraph/graph"
)

// TryGetNodeSnapPosition aligns pos with the other nodes on each axis, using
// the first node (in insertion order) within the snap distance per axis.
// n itself is never a candidate. ok reports whether either axis snapped.
func (c *Controller[N, C, G]) TryGetNodeSnapPosition(n *graph.Node[N], pos geometry.Vec2) (geometry.Vec2, bool) {
	nodes := c.model.Nodes()
	candidates := make([]geometry.Vec2, 0, len(nodes))
	for _, other := range nodes {
		if other != n {
			candidates = append(candidates, other.Position)
		}
	}
	return geometry.SnapPosition(pos, candidates, c.cfg.SnapDistance)
}

// TryGetGroupAtPosition returns the first group (in insertion order) whose
// rectangle contains pos (canvas space).
func (c *Controller[N, C, G]) TryGetGroupAtPosition(pos geometry.Vec2) (*graph.Group[N, G], bool) {
	groups := c.model.Groups()
	rects := make([]geometry.Rect, len(groups))
	for i, g := range groups {
		rects[i] = g.Bounds(c.cfg.GroupPadding, c.cfg.EmptyGroupSize)
	}
	if i := geometry.FirstContaining(rects, pos); i >= 0 {
		return groups[i], true
	}
	return nil, false
}

// TryGetGroupContaining returns the group n belongs to.
func (c *Controller[N, C, G]) TryGetGroupContaining(n *graph.Node[N]) (*graph.Group[N, G], bool) {
	g := c.model.GroupOf(n)
	return g, g != nil
}

// ElementIsNode returns the node drawn by el (its body or its handle).
func (c *Controller[N, C, G]) ElementIsNode(el *graph.Element) (*graph.Node[N], bool) {
	n := c.model.FindNodeByElement(el)
	return n, n != nil
}

// FindNode returns the node carrying payload.
func (c *Controller[N, C, G]) FindNode(payload N) (*graph.Node[N], bool) {
	n := c.model.FindNode(payload)
	return n, n != nil
}

// FindConnection returns the connection carrying payload.
func (c *Controller[N, C, G]) FindConnection(payload C) (*graph.Connection[N, C], bool) {
	conn := c.model.FindConnection(payload)
	return conn, conn != nil
}

// FindGroup returns the group carrying payload.
func (c *Controller[N, C, G]) FindGroup(payload G) (*graph.Group[N, G], bool) {
	g := c.model.FindGroup(payload)
	return g, g != nil
}

// Pick returns the top-most element under a screen position, or nil for the
// background. Stacking from the top: handles, nodes, connection lines,
// groups; within a kind, later entities are on top. A node's handle sits
// just above its own body, so a later node covers an earlier node's handle.
func (c *Controller[N, C, G]) Pick(screen geometry.Vec2) *graph.Element {
	p := c.ScreenToCanvas(screen)

	nodes := c.model.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].Handle.Rect.Contains(p) {
			return nodes[i].Handle
		}
		if nodes[i].Element.Rect.Contains(p) {
			return nodes[i].Element
		}
	}

	tolerance := c.cfg.PickTolerance / c.settings.Zoom
	conns := c.model.Connections()
	for i := len(conns) - 1; i >= 0; i-- {
		line := conns[i].Line
		if !line.IsZero() && geometry.DistanceToSegment(p, line.Start, line.End) <= tolerance {
			return conns[i].Element
		}
	}

	groups := c.model.Groups()
	for i := len(groups) - 1; i >= 0; i-- {
		if groups[i].Element.Rect.Contains(p) {
			return groups[i].Element
		}
	}
	return nil
}

// nodeAt returns the node whose body or handle is top-most at a screen
// position.
func (c *Controller[N, C, G]) nodeAt(screen geometry.Vec2) *graph.Node[N] {
	el := c.Pick(screen)
	if el == nil || (el.Kind != graph.KindNode && el.Kind != graph.KindHandle) {
		return nil
	}
	return c.model.FindNodeByElement(el)
}
