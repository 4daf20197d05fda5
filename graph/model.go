package graph

import "slices"

// Model holds the three entity collections in insertion order. It does no
// validation of its own; callers decide what a missing entity means.
//
// Lookups by payload are linear scans using ==, so payloads must be
// referentially unique (pointers, or values that never compare equal to
// another live payload). The zero payload is a placeholder and matches the
// first placeholder entity.
type Model[N, C, G comparable] struct {
	nodes       []*Node[N]
	connections []*Connection[N, C]
	groups      []*Group[N, G]
}

// NewModel creates an empty model.
func NewModel[N, C, G comparable]() *Model[N, C, G] {
	return &Model[N, C, G]{}
}

// Nodes returns a snapshot of the nodes.
func (m *Model[N, C, G]) Nodes() []*Node[N] {
	return slices.Clone(m.nodes)
}

// Connections returns a snapshot of the connections.
func (m *Model[N, C, G]) Connections() []*Connection[N, C] {
	return slices.Clone(m.connections)
}

// Groups returns a snapshot of the groups.
func (m *Model[N, C, G]) Groups() []*Group[N, G] {
	return slices.Clone(m.groups)
}

// AddNode appends n.
func (m *Model[N, C, G]) AddNode(n *Node[N]) {
	m.nodes = append(m.nodes, n)
}

// RemoveNode removes n, reporting whether it was present. Connections and
// group membership are left alone.
func (m *Model[N, C, G]) RemoveNode(n *Node[N]) bool {
	i := slices.Index(m.nodes, n)
	if i < 0 {
		return false
	}
	m.nodes = slices.Delete(m.nodes, i, i+1)
	return true
}

// HasNode reports whether n is in the model.
func (m *Model[N, C, G]) HasNode(n *Node[N]) bool {
	return slices.Contains(m.nodes, n)
}

// FindNode returns the first node whose payload equals p, or nil.
func (m *Model[N, C, G]) FindNode(p N) *Node[N] {
	for _, n := range m.nodes {
		if n.Payload == p {
			return n
		}
	}
	return nil
}

// FindNodeByElement returns the node owning el as body or handle, or nil.
func (m *Model[N, C, G]) FindNodeByElement(el *Element) *Node[N] {
	if el == nil {
		return nil
	}
	for _, n := range m.nodes {
		if n.Element == el || n.Handle == el {
			return n
		}
	}
	return nil
}

// AddConnection appends c.
func (m *Model[N, C, G]) AddConnection(c *Connection[N, C]) {
	m.connections = append(m.connections, c)
}

// RemoveConnection removes c, reporting whether it was present.
func (m *Model[N, C, G]) RemoveConnection(c *Connection[N, C]) bool {
	i := slices.Index(m.connections, c)
	if i < 0 {
		return false
	}
	m.connections = slices.Delete(m.connections, i, i+1)
	return true
}

// HasConnection reports whether c is in the model.
func (m *Model[N, C, G]) HasConnection(c *Connection[N, C]) bool {
	return slices.Contains(m.connections, c)
}

// FindConnection returns the first connection whose payload equals p, or nil.
func (m *Model[N, C, G]) FindConnection(p C) *Connection[N, C] {
	for _, c := range m.connections {
		if c.Payload == p {
			return c
		}
	}
	return nil
}

// FindConnectionByElement returns the connection drawn by el, or nil.
func (m *Model[N, C, G]) FindConnectionByElement(el *Element) *Connection[N, C] {
	for _, c := range m.connections {
		if c.Element == el {
			return c
		}
	}
	return nil
}

// ConnectionsOf materialises every connection incident to n.
func (m *Model[N, C, G]) ConnectionsOf(n *Node[N]) []*Connection[N, C] {
	var out []*Connection[N, C]
	for _, c := range m.connections {
		if c.Touches(n) {
			out = append(out, c)
		}
	}
	return out
}

// AddGroup appends g.
func (m *Model[N, C, G]) AddGroup(g *Group[N, G]) {
	m.groups = append(m.groups, g)
}

// RemoveGroup removes g, reporting whether it was present. Members are not
// touched.
func (m *Model[N, C, G]) RemoveGroup(g *Group[N, G]) bool {
	i := slices.Index(m.groups, g)
	if i < 0 {
		return false
	}
	m.groups = slices.Delete(m.groups, i, i+1)
	return true
}

// HasGroup reports whether g is in the model.
func (m *Model[N, C, G]) HasGroup(g *Group[N, G]) bool {
	return slices.Contains(m.groups, g)
}

// FindGroup returns the first group whose payload equals p, or nil.
func (m *Model[N, C, G]) FindGroup(p G) *Group[N, G] {
	for _, g := range m.groups {
		if g.Payload == p {
			return g
		}
	}
	return nil
}

// FindGroupByElement returns the group drawn by el, or nil.
func (m *Model[N, C, G]) FindGroupByElement(el *Element) *Group[N, G] {
	for _, g := range m.groups {
		if g.Element == el {
			return g
		}
	}
	return nil
}

// GroupOf returns the group n belongs to, or nil.
func (m *Model[N, C, G]) GroupOf(n *Node[N]) *Group[N, G] {
	for _, g := range m.groups {
		if g.Contains(n) {
			return g
		}
	}
	return nil
}

// AssignToGroup makes n a member of g, taking it out of whatever group held
// it before. The previous group is returned (nil if none, or if it was g).
func (m *Model[N, C, G]) AssignToGroup(n *Node[N], g *Group[N, G]) (prev *Group[N, G]) {
	if cur := m.GroupOf(n); cur != nil && cur != g {
		cur.remove(n)
		prev = cur
	}
	g.add(n)
	return prev
}

// RemoveFromGroup takes n out of its group and returns that group, or nil if
// n was ungrouped.
func (m *Model[N, C, G]) RemoveFromGroup(n *Node[N]) *Group[N, G] {
	g := m.GroupOf(n)
	if g != nil {
		g.remove(n)
	}
	return g
}
