package canvas

import (
	"go.uber.org/zap"

	"nodegraph/geometry"
	"nodegraph/graph"
)

// Menu labels.
const (
	MenuAddNode   = "Add Node"
	MenuAddGroup  = "Add Group"
	MenuConnect   = "Connect"
	MenuGroup     = "Group"
	MenuUngroup   = "Ungroup"
	MenuDuplicate = "Duplicate"
	MenuDelete    = "Delete"
	MenuDeleteGrp = "Delete Group"
	menuSeparator = "/"
)

// MenuItem is one entry of a context menu. Labels may contain "/" to nest
// entries in sub-menus.
type MenuItem struct {
	Label  string
	Action func()
}

// Menu is a context menu the toolkit should show at Position (screen space).
type Menu struct {
	Position geometry.Vec2
	Items    []MenuItem
}

func (m *Menu) add(label string, action func()) {
	m.Items = append(m.Items, MenuItem{Label: label, Action: action})
}

// Labels returns the item labels in order.
func (m *Menu) Labels() []string {
	out := make([]string, len(m.Items))
	for i, it := range m.Items {
		out[i] = it.Label
	}
	return out
}

// Invoke runs the item with the given label and reports whether it exists.
func (m *Menu) Invoke(label string) bool {
	for _, it := range m.Items {
		if it.Label == label {
			it.Action()
			return true
		}
	}
	return false
}

// openMenu records m and hands it to the toolkit. Every item's action
// dismisses the menu before running.
func (c *Controller[N, C, G]) openMenu(m *Menu) {
	for i := range m.Items {
		action := m.Items[i].Action
		m.Items[i].Action = func() {
			c.menu = nil
			action()
		}
	}
	c.menu = m
	if c.cb.ContextMenu != nil {
		c.cb.ContextMenu(m)
	}
}

// backgroundMenu offers every creatable node and group type at the click.
func (c *Controller[N, C, G]) backgroundMenu(screen geometry.Vec2) *Menu {
	pos := c.ScreenToCanvas(screen)
	m := &Menu{Position: screen}
	for _, t := range c.cfg.NodeTypes {
		m.add(MenuAddNode+menuSeparator+t, func() { c.CreateNode(t, pos) })
	}
	for _, t := range c.cfg.GroupTypes {
		m.add(MenuAddGroup+menuSeparator+t, func() { c.CreateGroup(t, pos) })
	}
	return m
}

// nodeMenu offers the connections startable from n, grouping, duplication
// and deletion.
func (c *Controller[N, C, G]) nodeMenu(n *graph.Node[N], screen geometry.Vec2) *Menu {
	m := &Menu{Position: screen}
	for _, ct := range c.cfg.ConnectionTypes[n.Type] {
		m.add(MenuConnect+menuSeparator+ct.Name, func() { c.logErr(c.StartConnection(n, ct.Token)) })
	}
	if _, grouped := c.TryGetGroupContaining(n); grouped {
		m.add(MenuUngroup, func() { c.logErr(c.RemoveFromGroup(n)) })
	} else {
		for _, t := range c.cfg.GroupTypes {
			m.add(MenuGroup+menuSeparator+t, func() { c.CreateGroup(t, n.Position, n) })
		}
	}
	m.add(MenuDuplicate, func() {
		_, err := c.DuplicateNode(n)
		c.logErr(err)
	})
	m.add(MenuDelete, func() { c.logErr(c.DeleteNode(n)) })
	return m
}

func (c *Controller[N, C, G]) groupMenu(g *graph.Group[N, G], screen geometry.Vec2) *Menu {
	m := &Menu{Position: screen}
	m.add(MenuDeleteGrp, func() { c.logErr(c.DeleteGroup(g)) })
	return m
}

func (c *Controller[N, C, G]) connectionMenu(conn *graph.Connection[N, C], screen geometry.Vec2) *Menu {
	m := &Menu{Position: screen}
	m.add(MenuDelete, func() { c.logErr(c.DeleteConnection(conn)) })
	return m
}

// logErr records failures of menu actions, which have nobody to return to.
// Invariant failures have already been logged by the operation.
func (c *Controller[N, C, G]) logErr(err error) {
	if err != nil && err != ErrNotFound {
		c.logger.Debug("menu action failed", zap.Error(err))
	}
}
