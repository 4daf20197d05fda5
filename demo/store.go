package demo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nodegraph/canvas"
	"nodegraph/catalog"
	"nodegraph/geometry"
	"nodegraph/graph"
)

// Connection-type tokens.
const (
	WireFlow = "flow"
	WireSync = "sync"
)

// Canvas is the controller specialised to the demo payloads.
type Canvas = canvas.Controller[*Operator, *Wire, *Frame]

// Store is the external data layer. It must be bound to exactly one canvas.
type Store struct {
	logger *zap.Logger
	canvas *Canvas

	operators map[uuid.UUID]*Operator
	wires     map[uuid.UUID]*Wire
	frames    map[uuid.UUID]*Frame
	members   map[*Operator]*Frame
	counts    map[string]int // Per-kind counter for default names
}

// NewStore creates an empty store. A nil logger disables logging.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		logger:    logger,
		operators: make(map[uuid.UUID]*Operator),
		wires:     make(map[uuid.UUID]*Wire),
		frames:    make(map[uuid.UUID]*Frame),
		members:   make(map[*Operator]*Frame),
		counts:    make(map[string]int),
	}
}

// Config builds the canvas configuration from the catalog: every "node"
// leaf is creatable, every "group" leaf is a group type, and every node can
// start flow and sync wires.
func (s *Store) Config(reg *catalog.Registry) canvas.Config[*Operator] {
	cfg := canvas.Config[*Operator]{
		NodeTypes:       reg.Catalog(KindNode).Leaves(),
		GroupTypes:      reg.Catalog(KindGroup).Leaves(),
		ConnectionTypes: make(map[string][]canvas.ConnectionType),
		Validate:        s.validate,
		AutoConnectionType: func(from, to *Operator) (string, bool) {
			return WireFlow, from != nil && to != nil
		},
	}
	for _, t := range cfg.NodeTypes {
		cfg.ConnectionTypes[t] = []canvas.ConnectionType{
			{Name: "Flow", Token: WireFlow},
			{Name: "Sync", Token: WireSync},
		}
	}
	return cfg
}

// validate refuses wires into inputs, wires out of outputs and duplicate
// wires.
func (s *Store) validate(from, to *Operator, kind string) bool {
	if from == nil || to == nil {
		return false
	}
	if to.Kind == "io/in" || from.Kind == "io/out" {
		return false
	}
	for _, w := range s.wires {
		if w.From == from && w.To == to && w.Kind == kind {
			return false
		}
	}
	return true
}

// Bind connects the store to c's notifications.
func (s *Store) Bind(c *Canvas) {
	s.canvas = c
	c.SetCallbacks(canvas.Callbacks[*Operator, *Wire, *Frame]{
		NodeCreated: func(n *graph.Node[*Operator]) {
			c.SetNodePayload(n, s.newOperator(n.Type, ""))
		},
		NodeDuplicated: func(orig, dup *graph.Node[*Operator]) {
			name := ""
			if orig.Payload != nil {
				name = orig.Payload.Name + " copy"
			}
			c.SetNodePayload(dup, s.newOperator(dup.Type, name))
		},
		ConnectionCreated: func(conn *graph.Connection[*Operator, *Wire]) {
			c.SetConnectionPayload(conn, s.newWire(conn.Type, conn.From.Payload, conn.To.Payload))
		},
		GroupCreated: func(g *graph.Group[*Operator, *Frame]) {
			c.SetGroupPayload(g, s.newFrame(g.Type, ""))
		},
		NodeDeleted: func(n *graph.Node[*Operator]) {
			if n.Payload != nil {
				delete(s.operators, n.Payload.ID)
				delete(s.members, n.Payload)
			}
		},
		ConnectionDeleted: func(conn *graph.Connection[*Operator, *Wire]) {
			if conn.Payload != nil {
				delete(s.wires, conn.Payload.ID)
			}
		},
		GroupDeleted: func(g *graph.Group[*Operator, *Frame]) {
			if g.Payload != nil {
				delete(s.frames, g.Payload.ID)
			}
		},
		NodeAddedToGroup: func(n *graph.Node[*Operator], g *graph.Group[*Operator, *Frame]) {
			if n.Payload != nil && g.Payload != nil {
				s.members[n.Payload] = g.Payload
			}
		},
		NodeRemovedFromGroup: func(n *graph.Node[*Operator], g *graph.Group[*Operator, *Frame]) {
			if n.Payload != nil && s.members[n.Payload] == g.Payload {
				delete(s.members, n.Payload)
			}
		},
		SelectionChanged: func(sel canvas.Selection[*Operator, *Wire, *Frame]) {
			if sel.Node != nil && sel.Node.Payload != nil {
				s.logger.Debug("selected", zap.String("operator", sel.Node.Payload.Name))
			}
		},
	})
}

func (s *Store) newOperator(kind, name string) *Operator {
	if name == "" {
		s.counts[kind]++
		name = fmt.Sprintf("%s %d", leaf(kind), s.counts[kind])
	}
	op := &Operator{ID: uuid.New(), Kind: kind, Name: name}
	s.operators[op.ID] = op
	return op
}

func (s *Store) newWire(kind string, from, to *Operator) *Wire {
	w := &Wire{ID: uuid.New(), Kind: kind, From: from, To: to}
	s.wires[w.ID] = w
	return w
}

func (s *Store) newFrame(kind, name string) *Frame {
	if name == "" {
		s.counts[kind]++
		name = fmt.Sprintf("%s %d", leaf(kind), s.counts[kind])
	}
	f := &Frame{ID: uuid.New(), Kind: kind, Name: name}
	s.frames[f.ID] = f
	return f
}

// Operators returns every operator sorted by name.
func (s *Store) Operators() []*Operator {
	out := make([]*Operator, 0, len(s.operators))
	for _, op := range s.operators {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Wires returns the number of wires.
func (s *Store) Wires() int {
	return len(s.wires)
}

// FrameOf returns the frame op belongs to.
func (s *Store) FrameOf(op *Operator) *Frame {
	return s.members[op]
}

// Seed fills the store and the bound canvas with a small example graph,
// going through the silent synchronisation calls the way a loader would.
func (s *Store) Seed() {
	c := s.canvas
	in := s.newOperator("io/in", "input")
	add := s.newOperator("math/add", "add")
	mul := s.newOperator("math/mul", "mul")
	out := s.newOperator("io/out", "output")

	c.InitNode(in, geometry.V(0, 100))
	c.InitNode(add, geometry.V(200, 40))
	c.InitNode(mul, geometry.V(200, 160))
	c.InitNode(out, geometry.V(420, 100))

	for _, pair := range [][2]*Operator{{in, add}, {in, mul}, {add, out}, {mul, out}} {
		c.InitConnection(pair[0], pair[1], s.newWire(WireFlow, pair[0], pair[1]))
	}

	frame := s.newFrame("frame", "arithmetic")
	c.InitGroup(frame, geometry.V(200, 40), add, mul)
	s.members[add] = frame
	s.members[mul] = frame
	c.Tick()
}

func leaf(kind string) string {
	return kind[strings.LastIndex(kind, "/")+1:]
}
