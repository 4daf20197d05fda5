// Package graph holds the entity model of the canvas: nodes, connections and
// groups wrapping externally owned payloads.
package graph

import (
	"slices"

	"nodegraph/geometry"
)

// Node is a positioned graph vertex wrapping a payload of type N.
type Node[N comparable] struct {
	Payload  N
	Type     string        // Node-type token used to look up connection types
	Position geometry.Vec2 // Top-left corner in canvas space
	Size     geometry.Vec2
	Display  Display

	Element *Element // Body
	Handle  *Element // Auto-connect drag handle
}

// NewNode creates a node with fresh body and handle elements.
func NewNode[N comparable](payload N, nodeType string, pos, size geometry.Vec2) *Node[N] {
	n := &Node[N]{
		Type:     nodeType,
		Position: pos,
		Size:     size,
		Element:  NewElement(KindNode),
		Handle:   NewElement(KindHandle),
	}
	n.SetPayload(payload)
	return n
}

// SetPayload assigns the payload and re-derives the display.
func (n *Node[N]) SetPayload(payload N) {
	n.Payload = payload
	n.Display = DisplayOf(payload)
	if t := TypeOf(payload); t != "" {
		n.Type = t
	}
}

// Bounds returns the node rectangle in canvas space.
func (n *Node[N]) Bounds() geometry.Rect {
	return geometry.RectAt(n.Position, n.Size)
}

// Anchor is where connection lines attach: the node centre, a fixed offset
// from Position because node size does not change.
func (n *Node[N]) Anchor() geometry.Vec2 {
	return n.Position.Add(n.Size.Scale(0.5))
}

// Connection is a directed edge between two nodes. From and To are ordered.
type Connection[N, C comparable] struct {
	Payload C
	Type    string
	From    *Node[N]
	To      *Node[N]
	Display Display
	Line    geometry.Segment

	Element *Element
}

// NewConnection creates a connection with a fresh line element.
func NewConnection[N, C comparable](payload C, connType string, from, to *Node[N]) *Connection[N, C] {
	c := &Connection[N, C]{
		Type:    connType,
		From:    from,
		To:      to,
		Element: NewElement(KindConnection),
	}
	c.SetPayload(payload)
	return c
}

// SetPayload assigns the payload and re-derives the display.
func (c *Connection[N, C]) SetPayload(payload C) {
	c.Payload = payload
	c.Display = DisplayOf(payload)
}

// Touches reports whether n is either endpoint.
func (c *Connection[N, C]) Touches(n *Node[N]) bool {
	return c.From == n || c.To == n
}

// Group is a container whose bounds follow its members. Anchor only matters
// while the group is empty.
type Group[N, G comparable] struct {
	Payload G
	Type    string
	Anchor  geometry.Vec2
	Display Display

	Element *Element

	members []*Node[N]
}

// NewGroup creates an empty group with a fresh element.
func NewGroup[N, G comparable](payload G, groupType string, anchor geometry.Vec2) *Group[N, G] {
	g := &Group[N, G]{
		Type:    groupType,
		Anchor:  anchor,
		Element: NewElement(KindGroup),
	}
	g.SetPayload(payload)
	return g
}

// SetPayload assigns the payload and re-derives the display.
func (g *Group[N, G]) SetPayload(payload G) {
	g.Payload = payload
	g.Display = DisplayOf(payload)
}

// Members returns a copy of the member list in insertion order.
func (g *Group[N, G]) Members() []*Node[N] {
	return slices.Clone(g.members)
}

// Len returns the number of members.
func (g *Group[N, G]) Len() int {
	return len(g.members)
}

// Contains reports whether n is a member.
func (g *Group[N, G]) Contains(n *Node[N]) bool {
	return slices.Contains(g.members, n)
}

// Bounds is the padded union of member bounds, or (Anchor, emptySize) when
// the group has no members.
func (g *Group[N, G]) Bounds(padding float64, emptySize geometry.Vec2) geometry.Rect {
	if len(g.members) == 0 {
		return geometry.RectAt(g.Anchor, emptySize)
	}
	r := g.members[0].Bounds()
	for _, n := range g.members[1:] {
		r = geometry.Union(r, n.Bounds())
	}
	return r.Expand(padding)
}

func (g *Group[N, G]) add(n *Node[N]) {
	if !g.Contains(n) {
		g.members = append(g.members, n)
	}
}

func (g *Group[N, G]) remove(n *Node[N]) bool {
	i := slices.Index(g.members, n)
	if i < 0 {
		return false
	}
	g.members = slices.Delete(g.members, i, i+1)
	return true
}
