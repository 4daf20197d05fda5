package graph

import "nodegraph/geometry"

// Snapshot is a payload-free copy of a model, keyed by element ID. It is what
// exporters consume.
type Snapshot struct {
	Nodes       []SnapshotNode       `json:"nodes"`
	Connections []SnapshotConnection `json:"connections"`
	Groups      []SnapshotGroup      `json:"groups,omitempty"`
}

// SnapshotNode is one node in a Snapshot.
type SnapshotNode struct {
	ID     string        `json:"id"`
	Type   string        `json:"type,omitempty"`
	Label  string        `json:"label"`
	Bounds geometry.Rect `json:"bounds"`
}

// SnapshotConnection is one connection in a Snapshot.
type SnapshotConnection struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Type     string `json:"type,omitempty"`
	Label    string `json:"label,omitempty"`
	Directed bool   `json:"directed"`
}

// SnapshotGroup is one group in a Snapshot.
type SnapshotGroup struct {
	ID      string   `json:"id"`
	Type    string   `json:"type,omitempty"`
	Label   string   `json:"label"`
	Members []string `json:"members"`
}

// Snapshot copies the model's current state.
func (m *Model[N, C, G]) Snapshot() Snapshot {
	s := Snapshot{
		Nodes:       make([]SnapshotNode, 0, len(m.nodes)),
		Connections: make([]SnapshotConnection, 0, len(m.connections)),
	}
	for _, n := range m.nodes {
		s.Nodes = append(s.Nodes, SnapshotNode{
			ID:     n.Element.ID.String(),
			Type:   n.Type,
			Label:  n.Display.Label,
			Bounds: n.Bounds(),
		})
	}
	for _, c := range m.connections {
		s.Connections = append(s.Connections, SnapshotConnection{
			From:     c.From.Element.ID.String(),
			To:       c.To.Element.ID.String(),
			Type:     c.Type,
			Label:    c.Display.Label,
			Directed: c.Display.Directed,
		})
	}
	for _, g := range m.groups {
		sg := SnapshotGroup{
			ID:    g.Element.ID.String(),
			Type:  g.Type,
			Label: g.Display.Label,
		}
		for _, n := range g.members {
			sg.Members = append(sg.Members, n.Element.ID.String())
		}
		s.Groups = append(s.Groups, sg)
	}
	return s
}

// Label returns the label of the node with the given ID.
func (s Snapshot) Label(id string) string {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n.Label
		}
	}
	return ""
}
