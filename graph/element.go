package graph

import (
	"sort"

	"github.com/google/uuid"

	"nodegraph/geometry"
)

// ElementKind identifies what an element draws.
type ElementKind int

const (
	KindNode       ElementKind = iota // Node body
	KindHandle                        // Auto-connect drag handle on a node
	KindConnection                    // Connection line
	KindGroup                         // Group box
)

// String returns the kind name for display.
func (k ElementKind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindHandle:
		return "handle"
	case KindConnection:
		return "connection"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Visual state classes toggled on elements.
const (
	ClassPressed  = "pressed"
	ClassCreating = "creating"
	ClassSelected = "selected"
	ClassHovered  = "hovered"
)

// Element is the screen-side handle of an entity. The canvas owns it; the
// rendering toolkit only reads it. Rect is in canvas space. Connection lines
// are described by Rect (centred on the segment midpoint, Length wide) and
// Angle in degrees.
type Element struct {
	ID      uuid.UUID
	Kind    ElementKind
	Rect    geometry.Rect
	Angle   float64
	Visible bool
	classes map[string]bool
}

// NewElement creates a visible element with a fresh ID.
func NewElement(kind ElementKind) *Element {
	return &Element{
		ID:      uuid.New(),
		Kind:    kind,
		Visible: true,
		classes: make(map[string]bool),
	}
}

// SetClass turns a visual class on or off.
func (e *Element) SetClass(name string, on bool) {
	if on {
		e.classes[name] = true
	} else {
		delete(e.classes, name)
	}
}

// HasClass reports whether the class is set.
func (e *Element) HasClass(name string) bool {
	return e.classes[name]
}

// Classes returns the set classes in sorted order.
func (e *Element) Classes() []string {
	out := make([]string, 0, len(e.classes))
	for c := range e.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
