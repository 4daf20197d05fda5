package export_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodegraph/export"
	"nodegraph/graph"
)

// sample is two grouped nodes feeding a third, plus a placeholder node that
// has no label yet.
func sample() graph.Snapshot {
	return graph.Snapshot{
		Nodes: []graph.SnapshotNode{
			{ID: "a", Type: "math/add", Label: "Add"},
			{ID: "b", Type: "math/mul", Label: `Mul "x"`},
			{ID: "c", Type: "io/out", Label: "Out"},
			{ID: "d", Type: "io/in"},
		},
		Connections: []graph.SnapshotConnection{
			{From: "a", To: "c", Label: "sum", Directed: true},
			{From: "b", To: "c", Directed: false},
			{From: "a", To: "gone", Directed: true},
		},
		Groups: []graph.SnapshotGroup{
			{ID: "g", Label: "Math", Members: []string{"a", "b"}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected export.Format
		wantErr  bool
	}{
		{"mermaid", export.FormatMermaid, false},
		{"mmd", export.FormatMermaid, false},
		{"dot", export.FormatGraphviz, false},
		{"graphviz", export.FormatGraphviz, false},
		{"d2", export.FormatD2, false},
		{"puml", export.FormatPlantUML, false},
		{"json", export.FormatJSON, false},
		{"ascii", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := export.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNewExporter(t *testing.T) {
	descriptions := export.GetFormatDescriptions()
	for _, format := range export.GetAvailableFormats() {
		t.Run(string(format), func(t *testing.T) {
			exporter, err := export.NewExporter(format)
			require.NoError(t, err)
			assert.NotEmpty(t, exporter.GetFileExtension())
			assert.NotEmpty(t, exporter.GetFormatName())
			assert.NotEmpty(t, descriptions[format])

			_, err = exporter.Export(graph.Snapshot{})
			if format != export.FormatJSON {
				assert.ErrorIs(t, err, export.ErrEmpty)
			}
		})
	}

	_, err := export.NewExporter("invalid")
	assert.Error(t, err)
}

func TestMermaidExporter(t *testing.T) {
	out, err := export.NewMermaidExporter().Export(sample())
	require.NoError(t, err)

	want := `graph LR
    subgraph G0 ["Math"]
        N0["Add"]
        N1["Mul #quot;x#quot;"]
    end
    N2["Out"]
    N3["io/in"]

    N0 -->|sum| N2
    N1 --- N2
`
	assert.Equal(t, want, out)
}

func TestGraphvizExporter(t *testing.T) {
	out, err := export.NewGraphvizExporter().Export(sample())
	require.NoError(t, err)

	assert.Contains(t, out, "digraph G {")
	assert.Contains(t, out, "subgraph cluster_0 {\n    label=\"Math\";\n    N0 [label=\"Add\"];\n    N1 [label=\"Mul \\\"x\\\"\"];\n  }")
	assert.Contains(t, out, "  N3 [label=\"io/in\"];")
	assert.Contains(t, out, "N0 -> N2 [label=\"sum\"];")
	assert.Contains(t, out, "N1 -> N2 [dir=none];")
	assert.NotContains(t, out, "gone")
}

func TestD2Exporter(t *testing.T) {
	out, err := export.NewD2Exporter().Export(sample())
	require.NoError(t, err)

	assert.Contains(t, out, "group_0: Math {\n  node_0: Add\n  node_1: \"Mul \\\"x\\\"\"\n}")
	assert.Contains(t, out, "group_0.node_0 -> node_2: sum")
	assert.Contains(t, out, "group_0.node_1 -- node_2")
}

func TestPlantUMLExporter(t *testing.T) {
	out, err := export.NewPlantUMLExporter().Export(sample())
	require.NoError(t, err)

	assert.Contains(t, out, "@startuml\n")
	assert.Contains(t, out, "rectangle \"Math\" {\n  component \"Add\" as N0\n  component \"Mul 'x'\" as N1\n}")
	assert.Contains(t, out, "N0 --> N2 : sum")
	assert.Contains(t, out, "N1 -- N2")
	assert.Contains(t, out, "@enduml\n")
}

func TestJSONExporter(t *testing.T) {
	s := sample()
	out, err := export.NewJSONExporter().Export(s)
	require.NoError(t, err)

	var back graph.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &back))
	assert.Equal(t, s, back)
}
