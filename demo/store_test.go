package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"nodegraph/canvas"
	"nodegraph/catalog"
	"nodegraph/geometry"
)

func newBoundCanvas(t *testing.T) (*Canvas, *Store) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	reg := catalog.NewRegistry(logger)
	Register(reg, nil)

	store := NewStore(logger)
	c := canvas.New[*Operator, *Wire, *Frame](store.Config(reg), canvas.WithLogger(logger))
	store.Bind(c)
	return c, store
}

func TestConfigFromCatalog(t *testing.T) {
	reg := catalog.NewRegistry(nil)
	Register(reg, nil)
	cfg := NewStore(nil).Config(reg)

	assert.Equal(t, []string{"io/in", "io/out", "logic/and", "logic/not", "math/add", "math/mul", "math/clamp"}, cfg.NodeTypes)
	assert.Equal(t, []string{"frame"}, cfg.GroupTypes)
	assert.Len(t, cfg.ConnectionTypes["math/add"], 2)
}

func TestCreatedEntitiesGetPayloads(t *testing.T) {
	c, store := newBoundCanvas(t)

	a := c.CreateNode("math/add", geometry.V(0, 0))
	b := c.CreateNode("math/add", geometry.V(300, 0))
	require.NotNil(t, a.Payload)
	assert.Equal(t, "add 1", a.Display.Label)
	assert.Equal(t, "add 2", b.Payload.Name)
	assert.True(t, a.Display.HasColor)
	assert.Equal(t, "math", a.Display.Icon)

	conn, err := c.CreateConnection(a.Payload, b.Payload, WireSync)
	require.NoError(t, err)
	require.NotNil(t, conn.Payload)
	assert.Same(t, a.Payload, conn.Payload.From)
	assert.False(t, conn.Display.Directed)
	assert.Equal(t, 1, store.Wires())

	_, err = c.CreateConnection(a.Payload, b.Payload, WireSync)
	assert.ErrorIs(t, err, canvas.ErrRejected, "duplicate wire")

	g := c.CreateGroup("frame", geometry.V(0, 0), a)
	require.NotNil(t, g.Payload)
	assert.Same(t, g.Payload, store.FrameOf(a.Payload))

	dup, err := c.DuplicateNode(a)
	require.NoError(t, err)
	assert.Equal(t, "add 1 copy", dup.Payload.Name)
	assert.Len(t, store.Operators(), 3)
}

func TestDeletionsReachStore(t *testing.T) {
	c, store := newBoundCanvas(t)
	store.Seed()
	require.Len(t, c.Nodes(), 4)
	require.Equal(t, 4, store.Wires())

	add, ok := c.FindNode(store.Operators()[0])
	require.True(t, ok)
	assert.Equal(t, "add", add.Payload.Name)
	require.NotNil(t, store.FrameOf(add.Payload))

	require.NoError(t, c.DeleteNode(add))

	assert.Equal(t, 2, store.Wires())
	assert.Len(t, store.Operators(), 3)
	assert.Nil(t, store.FrameOf(add.Payload))
	assert.Empty(t, c.Validate())
}

func TestValidatorDirections(t *testing.T) {
	c, store := newBoundCanvas(t)
	store.Seed()
	ops := map[string]*Operator{}
	for _, op := range store.Operators() {
		ops[op.Name] = op
	}

	_, err := c.CreateConnection(ops["add"], ops["input"], WireFlow)
	assert.ErrorIs(t, err, canvas.ErrRejected, "inputs take no wires")
	_, err = c.CreateConnection(ops["output"], ops["add"], WireFlow)
	assert.ErrorIs(t, err, canvas.ErrRejected, "outputs feed nothing")
	_, err = c.CreateConnection(ops["add"], ops["mul"], WireFlow)
	assert.NoError(t, err)
}
