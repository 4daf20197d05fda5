// Package demo is a small reference data layer for the editor. It owns the
// payload objects, builds them when the canvas creates placeholder entities,
// and keeps its own view of connections and group membership.
package demo

import (
	"image/color"
	"strings"

	"github.com/google/uuid"
)

// Operator is a node payload.
type Operator struct {
	ID   uuid.UUID
	Kind string // Node-type token, e.g. "math/add"
	Name string
}

func (o *Operator) Title() string    { return o.Name }
func (o *Operator) NodeType() string { return o.Kind }
func (o *Operator) Icon() string     { return family(o.Kind) }

// Color tints operators by family.
func (o *Operator) Color() color.RGBA {
	switch family(o.Kind) {
	case "math":
		return color.RGBA{R: 0x4a, G: 0x90, B: 0xe2, A: 0xff}
	case "io":
		return color.RGBA{R: 0x7e, G: 0xd3, B: 0x21, A: 0xff}
	case "logic":
		return color.RGBA{R: 0xf5, G: 0xa6, B: 0x23, A: 0xff}
	default:
		return color.RGBA{R: 0x9b, G: 0x9b, B: 0x9b, A: 0xff}
	}
}

// Wire is a connection payload.
type Wire struct {
	ID   uuid.UUID
	Kind string // Connection-type token
	From *Operator
	To   *Operator
}

func (w *Wire) Label() string { return w.Kind }

// Directed is false for sync wires, which are drawn without an arrow.
func (w *Wire) Directed() bool { return w.Kind != WireSync }

// Frame is a group payload.
type Frame struct {
	ID   uuid.UUID
	Kind string
	Name string
}

func (f *Frame) Title() string { return f.Name }

// family is the first path segment of a type token.
func family(kind string) string {
	f, _, _ := strings.Cut(kind, "/")
	return f
}
