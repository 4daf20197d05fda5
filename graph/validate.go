package graph

import "fmt"

// ValidationError describes one structural inconsistency in a model.
type ValidationError struct {
	Element string // ID of the offending element
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Element, e.Message)
}

// Validate checks the structural invariants: connections reference two
// present nodes, group members are present nodes, and no node sits in two
// groups. The model is not modified.
func (m *Model[N, C, G]) Validate() []ValidationError {
	var errs []ValidationError

	present := make(map[*Node[N]]bool, len(m.nodes))
	for _, n := range m.nodes {
		present[n] = true
	}

	for _, c := range m.connections {
		id := c.Element.ID.String()
		if c.From == nil || !present[c.From] {
			errs = append(errs, ValidationError{Element: id, Message: "connection 'from' node is not on the canvas"})
		}
		if c.To == nil || !present[c.To] {
			errs = append(errs, ValidationError{Element: id, Message: "connection 'to' node is not on the canvas"})
		}
	}

	owner := make(map[*Node[N]]*Group[N, G])
	for _, g := range m.groups {
		id := g.Element.ID.String()
		for _, n := range g.members {
			if !present[n] {
				errs = append(errs, ValidationError{Element: id, Message: fmt.Sprintf("member %s is not on the canvas", n.Element.ID)})
			}
			if prev, ok := owner[n]; ok {
				errs = append(errs, ValidationError{
					Element: n.Element.ID.String(),
					Message: fmt.Sprintf("node is a member of both %s and %s", prev.Element.ID, id),
				})
				continue
			}
			owner[n] = g
		}
	}

	return errs
}
