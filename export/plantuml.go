package export

import (
	"fmt"
	"strings"

	"nodegraph/graph"
)

// PlantUMLExporter exports snapshots to a PlantUML component diagram.
// Groups become rectangles around their members.
type PlantUMLExporter struct{}

// NewPlantUMLExporter creates a new PlantUML exporter
func NewPlantUMLExporter() *PlantUMLExporter {
	return &PlantUMLExporter{}
}

// Export converts the snapshot to PlantUML syntax
func (e *PlantUMLExporter) Export(s graph.Snapshot) (string, error) {
	if len(s.Nodes) == 0 {
		return "", ErrEmpty
	}

	l := newLayout(s, "N")
	var sb strings.Builder
	sb.WriteString("@startuml\n")

	// Add skinparam for better appearance
	sb.WriteString("skinparam backgroundColor white\n")
	sb.WriteString("skinparam shadowing false\n\n")

	for gi, g := range s.Groups {
		sb.WriteString(fmt.Sprintf("rectangle \"%s\" {\n", e.escapeLabel(groupLabel(g, gi))))
		for _, n := range l.members(s, gi) {
			e.writeNode(&sb, "  ", l.ids[n.ID], n)
		}
		sb.WriteString("}\n")
	}
	for _, n := range l.ungrouped(s) {
		e.writeNode(&sb, "", l.ids[n.ID], n)
	}

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

		arrow := "-->"
		if !conn.Directed {
			arrow = "--"
		}

		if conn.Label != "" {
			sb.WriteString(fmt.Sprintf("%s %s %s : %s\n", fromID, arrow, toID, e.escapeLabel(conn.Label)))
		} else {
			sb.WriteString(fmt.Sprintf("%s %s %s\n", fromID, arrow, toID))
		}
	}

	sb.WriteString("@enduml\n")
	return sb.String(), nil
}

func (e *PlantUMLExporter) writeNode(sb *strings.Builder, indent, id string, n graph.SnapshotNode) {
	sb.WriteString(fmt.Sprintf("%scomponent \"%s\" as %s\n", indent, e.escapeLabel(nodeLabel(n, id)), id))
}

// escapeLabel escapes special characters in labels
func (e *PlantUMLExporter) escapeLabel(label string) string {
	return strings.ReplaceAll(label, `"`, `'`)
}

// GetFileExtension returns the recommended file extension
func (e *PlantUMLExporter) GetFileExtension() string {
	return ".puml"
}

// GetFormatName returns the format name
func (e *PlantUMLExporter) GetFormatName() string {
	return "PlantUML"
}
