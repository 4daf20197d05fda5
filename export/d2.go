package export

import (
	"fmt"
	"strings"

	"nodegraph/graph"
)

// D2Exporter exports snapshots to D2 syntax. Groups become containers, so
// grouped nodes are addressed as "group.node".
type D2Exporter struct{}

// NewD2Exporter creates a new D2 exporter
func NewD2Exporter() *D2Exporter {
	return &D2Exporter{}
}

// Export converts the snapshot to D2 syntax
func (e *D2Exporter) Export(s graph.Snapshot) (string, error) {
	if len(s.Nodes) == 0 {
		return "", ErrEmpty
	}

	l := newLayout(s, "node_")
	var sb strings.Builder

	for gi, g := range s.Groups {
		sb.WriteString(fmt.Sprintf("group_%d: %s {\n", gi, e.escapeLabel(groupLabel(g, gi))))
		for _, n := range l.members(s, gi) {
			id := l.ids[n.ID]
			sb.WriteString(fmt.Sprintf("  %s: %s\n", id, e.escapeLabel(nodeLabel(n, id))))
		}
		sb.WriteString("}\n")
	}
	for _, n := range l.ungrouped(s) {
		id := l.ids[n.ID]
		sb.WriteString(fmt.Sprintf("%s: %s\n", id, e.escapeLabel(nodeLabel(n, id))))
	}

	// Add blank line between nodes and connections
	if len(s.Connections) > 0 {
		sb.WriteString("\n")
	}

	for _, conn := range s.Connections {
		fromID, ok := e.path(l, conn.From)
		if !ok {
			continue
		}
		toID, ok := e.path(l, conn.To)
		if !ok {
			continue
		}

		arrow := "->"
		if !conn.Directed {
			arrow = "--"
		}

		if conn.Label != "" {
			sb.WriteString(fmt.Sprintf("%s %s %s: %s\n", fromID, arrow, toID, e.escapeLabel(conn.Label)))
		} else {
			sb.WriteString(fmt.Sprintf("%s %s %s\n", fromID, arrow, toID))
		}
	}

	return sb.String(), nil
}

// path returns the container-qualified identifier of a node
func (e *D2Exporter) path(l layout, elementID string) (string, bool) {
	id, ok := l.ids[elementID]
	if !ok {
		return "", false
	}
	if gi, grouped := l.grouped[elementID]; grouped {
		return fmt.Sprintf("group_%d.%s", gi, id), true
	}
	return id, true
}

// escapeLabel quotes labels that D2 would otherwise parse as syntax
func (e *D2Exporter) escapeLabel(label string) string {
	if strings.ContainsAny(label, ":;{}[]|#'\"\n") {
		label = strings.ReplaceAll(label, `"`, `\"`)
		return `"` + label + `"`
	}
	return label
}

// GetFileExtension returns the recommended file extension
func (e *D2Exporter) GetFileExtension() string {
	return ".d2"
}

// GetFormatName returns the format name
func (e *D2Exporter) GetFormatName() string {
	return "D2"
}
