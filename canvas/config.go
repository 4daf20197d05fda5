package canvas

import (
	"errors"

	"go.uber.org/zap"

	"nodegraph/geometry"
	"nodegraph/graph"
	"nodegraph/settings"
)

var (
	// ErrNotFound is returned when an entity is not on the canvas.
	ErrNotFound = errors.New("entity not on canvas")
	// ErrSameNode is returned when a connection would join a node to itself.
	ErrSameNode = errors.New("connection endpoints are the same node")
	// ErrRejected is returned when the connection validator declines.
	ErrRejected = errors.New("connection rejected by validator")
)

// ConnectionType is one entry of a node's "connect" menu.
type ConnectionType struct {
	Name  string // Menu label
	Token string // Connection-type token handed to the validator
}

// Config describes what can be created and how big things are. Zero sizes
// are replaced with defaults by New.
type Config[N comparable] struct {
	NodeTypes       []string                    // Creatable node-type tokens
	GroupTypes      []string                    // Creatable group-type tokens
	ConnectionTypes map[string][]ConnectionType // Node-type token -> connections startable from it

	// Validate decides whether a connection may be created. Nil allows all.
	Validate func(from, to N, connType string) bool
	// AutoConnectionType picks the connection type for a handle drag. Nil,
	// or ok == false, means the drag creates nothing.
	AutoConnectionType func(from, to N) (connType string, ok bool)

	NodeSize        geometry.Vec2
	HandleSize      geometry.Vec2
	LineWidth       float64
	GroupPadding    float64
	EmptyGroupSize  geometry.Vec2
	SnapDistance    float64
	DuplicateOffset geometry.Vec2
	MinScale        float64
	MaxScale        float64
	ZoomStep        float64 // Scale change per wheel notch
	DragDeadZone    float64 // Screen pixels before a press becomes a drag
	PickTolerance   float64 // Screen pixels around a connection line that still hit it
}

// Default sizes, in canvas units.
var (
	DefaultNodeSize        = geometry.V(120, 48)
	DefaultHandleSize      = geometry.V(12, 12)
	DefaultEmptyGroupSize  = geometry.V(200, 120)
	DefaultDuplicateOffset = geometry.V(24, 24)
)

const (
	DefaultLineWidth     = 2.0
	DefaultGroupPadding  = 16.0
	DefaultSnapDistance  = 6.0
	DefaultMinScale      = 0.25
	DefaultMaxScale      = 4.0
	DefaultZoomStep      = 0.1
	DefaultDragDeadZone  = 2.0
	DefaultPickTolerance = 4.0
)

func (c *Config[N]) setDefaults() {
	if c.NodeSize == (geometry.Vec2{}) {
		c.NodeSize = DefaultNodeSize
	}
	if c.HandleSize == (geometry.Vec2{}) {
		c.HandleSize = DefaultHandleSize
	}
	if c.LineWidth == 0 {
		c.LineWidth = DefaultLineWidth
	}
	if c.GroupPadding == 0 {
		c.GroupPadding = DefaultGroupPadding
	}
	if c.EmptyGroupSize == (geometry.Vec2{}) {
		c.EmptyGroupSize = DefaultEmptyGroupSize
	}
	if c.SnapDistance == 0 {
		c.SnapDistance = DefaultSnapDistance
	}
	if c.DuplicateOffset == (geometry.Vec2{}) {
		c.DuplicateOffset = DefaultDuplicateOffset
	}
	if c.MinScale == 0 {
		c.MinScale = DefaultMinScale
	}
	if c.MaxScale == 0 {
		c.MaxScale = DefaultMaxScale
	}
	if c.ZoomStep == 0 {
		c.ZoomStep = DefaultZoomStep
	}
	if c.DragDeadZone == 0 {
		c.DragDeadZone = DefaultDragDeadZone
	}
	if c.PickTolerance == 0 {
		c.PickTolerance = DefaultPickTolerance
	}
}

// Callbacks are the notifications sent to the external data layer. Every
// field is optional. Entities created by the canvas itself carry the zero
// payload; the receiver builds the real payload and assigns it back with
// SetNodePayload, SetConnectionPayload or SetGroupPayload. Callbacks run
// synchronously and may mutate the canvas.
type Callbacks[N, C, G comparable] struct {
	NodeCreated          func(n *graph.Node[N])
	ConnectionCreated    func(c *graph.Connection[N, C])
	GroupCreated         func(g *graph.Group[N, G])
	NodeDeleted          func(n *graph.Node[N])
	ConnectionDeleted    func(c *graph.Connection[N, C])
	GroupDeleted         func(g *graph.Group[N, G])
	NodeDuplicated       func(original, duplicate *graph.Node[N])
	NodeAddedToGroup     func(n *graph.Node[N], g *graph.Group[N, G])
	NodeRemovedFromGroup func(n *graph.Node[N], g *graph.Group[N, G])
	SelectionChanged     func(sel Selection[N, C, G])
	NodeDoubleClicked    func(n *graph.Node[N])
	BackgroundClicked    func(pos geometry.Vec2)

	// Marquee reports the box being dragged on the background, in canvas
	// space. done is true on the final report. When nil, a left drag on
	// the background pans instead.
	Marquee func(rect geometry.Rect, done bool)

	// ContextMenu asks the toolkit to show a menu. The toolkit calls the
	// chosen item's Action.
	ContextMenu func(m *Menu)
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	settings *settings.Settings
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSettings shares a settings object with the controller, which keeps
// the zoom factor in it and reads the snap flag from it. Without it the
// controller uses in-memory defaults.
func WithSettings(s *settings.Settings) Option {
	return func(o *options) {
		o.settings = s
	}
}
