package export

import (
	"fmt"
	"strings"

	"nodegraph/graph"
)

// GraphvizExporter exports snapshots to Graphviz DOT syntax. Groups become
// clusters.
type GraphvizExporter struct{}

// NewGraphvizExporter creates a new Graphviz exporter
func NewGraphvizExporter() *GraphvizExporter {
	return &GraphvizExporter{}
}

// Export converts the snapshot to Graphviz DOT syntax
func (e *GraphvizExporter) Export(s graph.Snapshot) (string, error) {
	if len(s.Nodes) == 0 {
		return "", ErrEmpty
	}

	l := newLayout(s, "N")
	var sb strings.Builder

	sb.WriteString("digraph G {\n")

	// Global attributes for better appearance
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box, style=rounded];\n\n")

	for gi, g := range s.Groups {
		// Cluster subgraph names must start with "cluster".
		sb.WriteString(fmt.Sprintf("  subgraph cluster_%d {\n", gi))
		sb.WriteString(fmt.Sprintf("    label=\"%s\";\n", e.escapeLabel(groupLabel(g, gi))))
		for _, n := range l.members(s, gi) {
			e.writeNode(&sb, "    ", l.ids[n.ID], n)
		}
		sb.WriteString("  }\n")
	}
	for _, n := range l.ungrouped(s) {
		e.writeNode(&sb, "  ", l.ids[n.ID], n)
	}

	// Add blank line between nodes and edges
	if len(s.Connections) > 0 {
		sb.WriteString("\n")
	}

	for _, conn := range s.Connections {
		fromID, ok := l.ids[conn.From]
		if !ok {
			continue
		}
		toID, ok := l.ids[conn.To]
		if !ok {
			continue
		}
		attributes := e.getEdgeAttributes(conn)

		if attributes != "" {
			sb.WriteString(fmt.Sprintf("  %s -> %s [%s];\n", fromID, toID, attributes))
		} else {
			sb.WriteString(fmt.Sprintf("  %s -> %s;\n", fromID, toID))
		}
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

func (e *GraphvizExporter) writeNode(sb *strings.Builder, indent, id string, n graph.SnapshotNode) {
	sb.WriteString(fmt.Sprintf("%s%s [label=\"%s\"];\n", indent, id, e.escapeLabel(nodeLabel(n, id))))
}

// getEdgeAttributes builds DOT attributes for a connection
func (e *GraphvizExporter) getEdgeAttributes(conn graph.SnapshotConnection) string {
	var attrs []string
	if conn.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=\"%s\"", e.escapeLabel(conn.Label)))
	}
	if !conn.Directed {
		attrs = append(attrs, "dir=none")
	}
	return strings.Join(attrs, ", ")
}

// escapeLabel escapes special characters in labels
func (e *GraphvizExporter) escapeLabel(label string) string {
	// Escape quotes and backslashes
	label = strings.ReplaceAll(label, `\`, `\\`)
	label = strings.ReplaceAll(label, `"`, `\"`)
	return label
}

// GetFileExtension returns the recommended file extension
func (e *GraphvizExporter) GetFileExtension() string {
	return ".dot"
}

// GetFormatName returns the format name
func (e *GraphvizExporter) GetFormatName() string {
	return "Graphviz DOT"
}
