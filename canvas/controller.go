// Package canvas is the interaction engine of the node-graph editor. A
// Controller owns every node, connection and group on a canvas, turns
// pointer events into gestures, and tells the external data layer what the
// user did.
//
// All methods must be called from one goroutine: the toolkit's event loop.
package canvas

import (
	"go.uber.org/zap"

	"nodegraph/geometry"
	"nodegraph/gesture"
	"nodegraph/graph"
	"nodegraph/settings"
)

// Selection is the one selected entity; at most one field is set.
type Selection[N, C, G comparable] struct {
	Node       *graph.Node[N]
	Connection *graph.Connection[N, C]
	Group      *graph.Group[N, G]
}

// Empty reports whether nothing is selected.
func (s Selection[N, C, G]) Empty() bool {
	return s.Node == nil && s.Connection == nil && s.Group == nil
}

// PendingConnection is a connection that has a source but no target yet.
type PendingConnection[N comparable] struct {
	From      *graph.Node[N]
	Type      string // Empty for handle drags, resolved on release
	ViaHandle bool
}

// Controller owns the entities of one canvas.
type Controller[N, C, G comparable] struct {
	cfg      Config[N]
	cb       Callbacks[N, C, G]
	logger   *zap.Logger
	settings *settings.Settings
	model    *graph.Model[N, C, G]

	offset geometry.Vec2 // Screen position of the canvas origin

	// Each field below has exactly one writer: the method named next to it.
	selection    Selection[N, C, G]    // setSelection
	pending      *PendingConnection[N] // setPending
	hoveredGroup *graph.Group[N, G]    // setHoveredGroup
	hoveredNode  *graph.Node[N]        // handleManipulator.track
	menu         *Menu                 // openMenu

	capture    *gesture.Capture
	background *backgroundManipulator[N, C, G]
	nodes      *nodeManipulator[N, C, G]
	groups     *groupManipulator[N, C, G]
	lines      *connectionManipulator[N, C, G]
	handles    *handleManipulator[N, C, G]
}

// New creates an empty canvas.
func New[N, C, G comparable](cfg Config[N], opts ...Option) *Controller[N, C, G] {
	cfg.setDefaults()

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.settings == nil {
		o.settings = settings.Defaults()
	}

	c := &Controller[N, C, G]{
		cfg:      cfg,
		logger:   o.logger,
		settings: o.settings,
		model:    graph.NewModel[N, C, G](),
		capture:  gesture.NewCapture(),
	}
	c.settings.Zoom = geometry.Clamp(c.settings.Zoom, cfg.MinScale, cfg.MaxScale)

	c.background = newBackgroundManipulator(c)
	c.nodes = newNodeManipulator(c)
	c.groups = newGroupManipulator(c)
	c.lines = &connectionManipulator[N, C, G]{c: c}
	c.handles = newHandleManipulator(c)
	return c
}

// SetCallbacks replaces the external notifications.
func (c *Controller[N, C, G]) SetCallbacks(cb Callbacks[N, C, G]) {
	c.cb = cb
}

// Config returns the effective configuration, defaults filled in.
func (c *Controller[N, C, G]) Config() Config[N] {
	return c.cfg
}

// Settings returns the shared settings object.
func (c *Controller[N, C, G]) Settings() *settings.Settings {
	return c.settings
}

// Nodes returns a snapshot of the nodes in insertion order.
func (c *Controller[N, C, G]) Nodes() []*graph.Node[N] {
	return c.model.Nodes()
}

// Connections returns a snapshot of the connections in insertion order.
func (c *Controller[N, C, G]) Connections() []*graph.Connection[N, C] {
	return c.model.Connections()
}

// Groups returns a snapshot of the groups in insertion order.
func (c *Controller[N, C, G]) Groups() []*graph.Group[N, G] {
	return c.model.Groups()
}

// Snapshot copies the canvas for export.
func (c *Controller[N, C, G]) Snapshot() graph.Snapshot {
	return c.model.Snapshot()
}

// Validate checks the structural invariants of the canvas.
func (c *Controller[N, C, G]) Validate() []graph.ValidationError {
	return c.model.Validate()
}

// Selection returns the current selection.
func (c *Controller[N, C, G]) Selection() Selection[N, C, G] {
	return c.selection
}

// Pending returns the connection being created, or nil.
func (c *Controller[N, C, G]) Pending() *PendingConnection[N] {
	return c.pending
}

// HoveredGroup returns the group highlighted as a drop target, or nil.
func (c *Controller[N, C, G]) HoveredGroup() *graph.Group[N, G] {
	return c.hoveredGroup
}

// HoveredNode returns the node under the pointer during a handle drag, or nil.
func (c *Controller[N, C, G]) HoveredNode() *graph.Node[N] {
	return c.hoveredNode
}

// Menu returns the most recently opened context menu, or nil once it has
// been used or dismissed.
func (c *Controller[N, C, G]) Menu() *Menu {
	return c.menu
}

// DismissMenu forgets the open menu.
func (c *Controller[N, C, G]) DismissMenu() {
	c.menu = nil
}

// invariant logs a desynchronisation between the external layer and the
// canvas and returns ErrNotFound.
func (c *Controller[N, C, G]) invariant(op string, fields ...zap.Field) error {
	c.logger.Error(op+": entity is not on the canvas", fields...)
	return ErrNotFound
}

// Selection ------------------------------------------------------------------

func (c *Controller[N, C, G]) setSelection(sel Selection[N, C, G]) {
	if sel == c.selection {
		return
	}
	c.markSelection(c.selection, false)
	c.selection = sel
	c.markSelection(sel, true)
	if c.cb.SelectionChanged != nil {
		c.cb.SelectionChanged(sel)
	}
}

func (c *Controller[N, C, G]) markSelection(sel Selection[N, C, G], on bool) {
	switch {
	case sel.Node != nil:
		sel.Node.Element.SetClass(graph.ClassSelected, on)
	case sel.Connection != nil:
		sel.Connection.Element.SetClass(graph.ClassSelected, on)
	case sel.Group != nil:
		sel.Group.Element.SetClass(graph.ClassSelected, on)
	}
}

// ClearSelection deselects everything.
func (c *Controller[N, C, G]) ClearSelection() {
	c.setSelection(Selection[N, C, G]{})
}

// SelectNode makes n the only selected entity.
func (c *Controller[N, C, G]) SelectNode(n *graph.Node[N]) {
	c.setSelection(Selection[N, C, G]{Node: n})
}

// SelectConnection makes conn the only selected entity.
func (c *Controller[N, C, G]) SelectConnection(conn *graph.Connection[N, C]) {
	c.setSelection(Selection[N, C, G]{Connection: conn})
}

// SelectGroup makes g the only selected entity.
func (c *Controller[N, C, G]) SelectGroup(g *graph.Group[N, G]) {
	c.setSelection(Selection[N, C, G]{Group: g})
}

// TrySelect selects the entity carrying payload. The payload's type decides
// which collection is searched, nodes first. It reports whether anything
// was found.
func (c *Controller[N, C, G]) TrySelect(payload any) bool {
	if p, ok := payload.(N); ok {
		if n := c.model.FindNode(p); n != nil {
			c.SelectNode(n)
			return true
		}
	}
	if p, ok := payload.(C); ok {
		if conn := c.model.FindConnection(p); conn != nil {
			c.SelectConnection(conn)
			return true
		}
	}
	if p, ok := payload.(G); ok {
		if g := c.model.FindGroup(p); g != nil {
			c.SelectGroup(g)
			return true
		}
	}
	return false
}

// deselect clears the selection if it points at one of the given entities.
func (c *Controller[N, C, G]) deselect(n *graph.Node[N], conn *graph.Connection[N, C], g *graph.Group[N, G]) {
	s := c.selection
	if (n != nil && s.Node == n) || (conn != nil && s.Connection == conn) || (g != nil && s.Group == g) {
		c.ClearSelection()
	}
}

// Pending connection ---------------------------------------------------------

func (c *Controller[N, C, G]) setPending(p *PendingConnection[N]) {
	if c.pending != nil {
		c.pending.From.Element.SetClass(graph.ClassCreating, false)
	}
	c.pending = p
	if p != nil {
		p.From.Element.SetClass(graph.ClassCreating, true)
	}
}

// StartConnection arms a connection of connType from n; the next left click
// on another node completes it. Any connection already pending is dropped.
func (c *Controller[N, C, G]) StartConnection(n *graph.Node[N], connType string) error {
	if !c.model.HasNode(n) {
		return c.invariant("StartConnection")
	}
	c.setPending(&PendingConnection[N]{From: n, Type: connType})
	return nil
}

// CancelConnection drops the pending connection, if any.
func (c *Controller[N, C, G]) CancelConnection() {
	c.setPending(nil)
}

// completePending is the left-click hook of a node. It reports whether the
// click was used up by a pending connection.
func (c *Controller[N, C, G]) completePending(target *graph.Node[N]) bool {
	p := c.pending
	if p == nil || p.ViaHandle {
		return false
	}
	c.setPending(nil)
	if p.From == target {
		return true
	}
	if _, err := c.connect(p.From, target, p.Type); err != nil {
		c.logger.Debug("pending connection abandoned", zap.String("type", p.Type), zap.Error(err))
	}
	return true
}

// Hover ----------------------------------------------------------------------

func (c *Controller[N, C, G]) setHoveredGroup(g *graph.Group[N, G]) {
	if g == c.hoveredGroup {
		return
	}
	if c.hoveredGroup != nil {
		c.hoveredGroup.Element.SetClass(graph.ClassHovered, false)
	}
	c.hoveredGroup = g
	if g != nil {
		g.Element.SetClass(graph.ClassHovered, true)
	}
}

// updateGroupHover highlights the group a dragged node would drop into.
// Nodes that already belong to a group never highlight one.
func (c *Controller[N, C, G]) updateGroupHover(n *graph.Node[N]) {
	if c.model.GroupOf(n) != nil {
		c.setHoveredGroup(nil)
		return
	}
	g, _ := c.TryGetGroupAtPosition(n.Position)
	c.setHoveredGroup(g)
}
