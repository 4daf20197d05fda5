package canvas

import (
	"nodegraph/geometry"
	"nodegraph/graph"
)

// Tick refreshes every derived visual: node and handle rectangles from node
// positions (which an external simulator may have moved), connection lines
// from their endpoints, and group rectangles from their members.
func (c *Controller[N, C, G]) Tick() {
	for _, n := range c.model.Nodes() {
		c.refreshNode(n)
	}
	for _, conn := range c.model.Connections() {
		c.refreshConnection(conn)
	}
	for _, g := range c.model.Groups() {
		c.refreshGroup(g)
	}
}

func (c *Controller[N, C, G]) refreshNode(n *graph.Node[N]) {
	n.Element.Rect = n.Bounds()

	// The handle sits centred on the node's right edge.
	hs := c.cfg.HandleSize
	handlePos := n.Position.Add(geometry.V(n.Size.X-hs.X/2, n.Size.Y/2-hs.Y/2))
	n.Handle.Rect = geometry.RectAt(handlePos, hs)
}

// refreshConnection lays the line element along the segment between the two
// node anchors. NaN or coincident anchors collapse it to zero size.
func (c *Controller[N, C, G]) refreshConnection(conn *graph.Connection[N, C]) {
	seg := geometry.Line(conn.From.Anchor(), conn.To.Anchor())
	conn.Line = seg
	if seg.IsZero() {
		conn.Element.Rect = geometry.Rect{}
		conn.Element.Angle = 0
		return
	}
	size := geometry.V(seg.Length, c.cfg.LineWidth)
	conn.Element.Rect = geometry.RectAt(seg.Center.Sub(size.Scale(0.5)), size)
	conn.Element.Angle = seg.Angle
}

func (c *Controller[N, C, G]) refreshGroup(g *graph.Group[N, G]) {
	g.Element.Rect = g.Bounds(c.cfg.GroupPadding, c.cfg.EmptyGroupSize)
}
