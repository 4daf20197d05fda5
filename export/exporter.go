// Package export writes canvas snapshots in text-based diagram formats
package export

import (
	"errors"
	"fmt"

	"nodegraph/graph"
)

// Format represents an export format
type Format string

const (
	// FormatMermaid exports to Mermaid flowchart syntax
	FormatMermaid Format = "mermaid"
	// FormatGraphviz exports to Graphviz DOT syntax
	FormatGraphviz Format = "dot"
	// FormatD2 exports to D2 syntax
	FormatD2 Format = "d2"
	// FormatPlantUML exports to PlantUML syntax
	FormatPlantUML Format = "plantuml"
	// FormatJSON exports the snapshot itself
	FormatJSON Format = "json"
)

// ErrEmpty is returned when there is nothing to export.
var ErrEmpty = errors.New("canvas has no nodes")

// Exporter interface for different export formats
type Exporter interface {
	// Export converts a snapshot to the target format
	Export(s graph.Snapshot) (string, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatMermaid:
		return NewMermaidExporter(), nil
	case FormatGraphviz:
		return NewGraphvizExporter(), nil
	case FormatD2:
		return NewD2Exporter(), nil
	case FormatPlantUML:
		return NewPlantUMLExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "mermaid", "mmd":
		return FormatMermaid, nil
	case "dot", "graphviz", "gv":
		return FormatGraphviz, nil
	case "d2":
		return FormatD2, nil
	case "plantuml", "puml":
		return FormatPlantUML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatMermaid,
		FormatGraphviz,
		FormatD2,
		FormatPlantUML,
		FormatJSON,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatMermaid:  "Mermaid flowchart (for Markdown)",
		FormatGraphviz: "Graphviz DOT, groups as clusters",
		FormatD2:       "D2 diagram, groups as containers",
		FormatPlantUML: "PlantUML component diagram",
		FormatJSON:     "Canvas snapshot as JSON",
	}
}

// layout assigns short, format-safe identifiers to snapshot nodes and
// records which group each node is drawn inside.
type layout struct {
	ids     map[string]string // Element ID -> short ID
	grouped map[string]int    // Element ID -> index into Snapshot.Groups
}

func newLayout(s graph.Snapshot, prefix string) layout {
	l := layout{
		ids:     make(map[string]string, len(s.Nodes)),
		grouped: make(map[string]int),
	}
	for i, n := range s.Nodes {
		l.ids[n.ID] = fmt.Sprintf("%s%d", prefix, i)
	}
	for gi, g := range s.Groups {
		for _, m := range g.Members {
			l.grouped[m] = gi
		}
	}
	return l
}

// members returns the nodes of group gi, in node order.
func (l layout) members(s graph.Snapshot, gi int) []graph.SnapshotNode {
	var out []graph.SnapshotNode
	for _, n := range s.Nodes {
		if g, ok := l.grouped[n.ID]; ok && g == gi {
			out = append(out, n)
		}
	}
	return out
}

// ungrouped returns the nodes that belong to no group.
func (l layout) ungrouped(s graph.Snapshot) []graph.SnapshotNode {
	var out []graph.SnapshotNode
	for _, n := range s.Nodes {
		if _, ok := l.grouped[n.ID]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// nodeLabel falls back to the node type, then the short ID, for placeholder
// nodes that have no label yet.
func nodeLabel(n graph.SnapshotNode, id string) string {
	switch {
	case n.Label != "":
		return n.Label
	case n.Type != "":
		return n.Type
	default:
		return id
	}
}

func groupLabel(g graph.SnapshotGroup, i int) string {
	switch {
	case g.Label != "":
		return g.Label
	case g.Type != "":
		return g.Type
	default:
		return fmt.Sprintf("Group %d", i)
	}
}
