package export

import (
	"fmt"
	"strings"

	"nodegraph/graph"
)

// MermaidExporter exports snapshots to a Mermaid flowchart. Groups become
// subgraphs.
type MermaidExporter struct{}

// NewMermaidExporter creates a new Mermaid exporter
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{}
}

// Export converts the snapshot to Mermaid syntax
func (e *MermaidExporter) Export(s graph.Snapshot) (string, error) {
	if len(s.Nodes) == 0 {
		return "", ErrEmpty
	}

	l := newLayout(s, "N")
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for gi, g := range s.Groups {
		sb.WriteString(fmt.Sprintf("    subgraph G%d [\"%s\"]\n", gi, e.escapeLabel(groupLabel(g, gi))))
		for _, n := range l.members(s, gi) {
			e.writeNode(&sb, "        ", l.ids[n.ID], n)
		}
		sb.WriteString("    end\n")
	}
	for _, n := range l.ungrouped(s) {
		e.writeNode(&sb, "    ", l.ids[n.ID], n)
	}

	// Add a blank line between nodes and connections
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

		connStyle := "-->"
		if !conn.Directed {
			connStyle = "---"
		}

		if conn.Label != "" {
			sb.WriteString(fmt.Sprintf("    %s %s|%s| %s\n", fromID, connStyle, e.escapeLabel(conn.Label), toID))
		} else {
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", fromID, connStyle, toID))
		}
	}

	return sb.String(), nil
}

func (e *MermaidExporter) writeNode(sb *strings.Builder, indent, id string, n graph.SnapshotNode) {
	sb.WriteString(fmt.Sprintf("%s%s[\"%s\"]\n", indent, id, e.escapeLabel(nodeLabel(n, id))))
}

// escapeLabel escapes special characters in labels
func (e *MermaidExporter) escapeLabel(label string) string {
	label = strings.ReplaceAll(label, `"`, "#quot;")
	label = strings.ReplaceAll(label, `|`, "#124;")
	return label
}

// GetFileExtension returns the recommended file extension
func (e *MermaidExporter) GetFileExtension() string {
	return ".mmd"
}

// GetFormatName returns the format name
func (e *MermaidExporter) GetFormatName() string {
	return "Mermaid"
}
