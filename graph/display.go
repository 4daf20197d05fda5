package graph

import (
	"fmt"
	"image/color"
)

// Optional display capabilities a payload may implement. Each one is probed
// on its own; a payload can implement any subset.
type (
	// Titled payloads supply their own label.
	Titled interface {
		Title() string
	}

	// Colored payloads override the element tint.
	Colored interface {
		Color() color.RGBA
	}

	// Scaled payloads draw larger or smaller than 1.
	Scaled interface {
		Scale() float64
	}

	// Iconic payloads carry an icon name.
	Iconic interface {
		Icon() string
	}

	// Directed connection payloads choose whether an arrow is drawn.
	Directed interface {
		Directed() bool
	}

	// Labeled connection payloads draw a label on the line.
	Labeled interface {
		Label() string
	}

	// Typed node payloads report their node-type token.
	Typed interface {
		NodeType() string
	}
)

// Display is the presentation derived from a payload.
type Display struct {
	Label    string
	Color    color.RGBA
	HasColor bool
	Scale    float64
	Icon     string
	Directed bool
}

// DisplayOf probes payload for each capability. The zero payload is the
// placeholder used while the external layer builds the real one, and gets an
// empty label.
func DisplayOf[P comparable](payload P) Display {
	d := Display{Scale: 1, Directed: true}

	var zero P
	if payload == zero {
		return d
	}

	p := any(payload)
	switch v := p.(type) {
	case Titled:
		d.Label = v.Title()
	case Labeled:
		d.Label = v.Label()
	case fmt.Stringer:
		d.Label = v.String()
	default:
		d.Label = fmt.Sprint(payload)
	}
	if v, ok := p.(Colored); ok {
		d.Color = v.Color()
		d.HasColor = true
	}
	if v, ok := p.(Scaled); ok {
		d.Scale = v.Scale()
	}
	if v, ok := p.(Iconic); ok {
		d.Icon = v.Icon()
	}
	if v, ok := p.(Directed); ok {
		d.Directed = v.Directed()
	}
	return d
}

// TypeOf returns the payload's node-type token, or "" if it doesn't declare one.
func TypeOf[P comparable](payload P) string {
	var zero P
	if payload == zero {
		return ""
	}
	if v, ok := any(payload).(Typed); ok {
		return v.NodeType()
	}
	return ""
}
