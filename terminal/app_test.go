package terminal

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"nodegraph/canvas"
	"nodegraph/catalog"
	"nodegraph/demo"
	"nodegraph/gesture"
	"nodegraph/graph"
)

type testApp = App[*demo.Operator, *demo.Wire, *demo.Frame]

func newTestApp(t *testing.T, seed bool) (*testApp, tcell.SimulationScreen) {
	t.Helper()
	logger := zaptest.NewLogger(t)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 30)

	reg := catalog.NewRegistry(logger)
	demo.Register(reg, nil)
	store := demo.NewStore(logger)
	c := canvas.New[*demo.Operator, *demo.Wire, *demo.Frame](store.Config(reg), canvas.WithLogger(logger))
	store.Bind(c)
	if seed {
		store.Seed()
	}

	app := New(screen, c, Options{Logger: logger, Catalog: reg, CatalogKind: demo.KindNode})
	return app, screen
}

func row(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(s tcell.Screen) string {
	_, h := s.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = row(s, y)
	}
	return strings.Join(rows, "\n")
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestTranslateClicks(t *testing.T) {
	m := NewMouse()
	now := time.Unix(0, 0)
	m.now = func() time.Time { return now }

	evs := m.Translate(tcell.NewEventMouse(3, 2, tcell.ButtonPrimary, tcell.ModShift))
	require.Len(t, evs, 2)
	assert.Equal(t, gesture.Move, evs[0].Kind)
	assert.Equal(t, CellToScreen(3, 2), evs[0].Delta)
	assert.Equal(t, gesture.Press, evs[1].Kind)
	assert.Equal(t, gesture.ButtonLeft, evs[1].Button)
	assert.Equal(t, 1, evs[1].ClickCount)
	assert.Equal(t, gesture.ModShift, evs[1].Modifiers)

	evs = m.Translate(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone))
	require.Len(t, evs, 1)
	assert.Equal(t, gesture.Release, evs[0].Kind)
	assert.Equal(t, gesture.ButtonLeft, evs[0].Button)

	now = now.Add(DoubleClickInterval / 2)
	evs = m.Translate(tcell.NewEventMouse(3, 2, tcell.ButtonPrimary, tcell.ModNone))
	require.Len(t, evs, 1)
	assert.Equal(t, 2, evs[0].ClickCount)
	m.Translate(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone))

	now = now.Add(2 * DoubleClickInterval)
	evs = m.Translate(tcell.NewEventMouse(3, 2, tcell.ButtonPrimary, tcell.ModNone))
	assert.Equal(t, 1, evs[0].ClickCount, "too slow for a double click")
}

func TestTranslateDragAndButtons(t *testing.T) {
	m := NewMouse()
	m.Translate(tcell.NewEventMouse(1, 1, tcell.ButtonSecondary, tcell.ModNone))

	evs := m.Translate(tcell.NewEventMouse(4, 1, tcell.ButtonSecondary, tcell.ModNone))
	require.Len(t, evs, 1, "held button only moves")
	assert.Equal(t, gesture.Move, evs[0].Kind)
	assert.Equal(t, 3*CellWidth, evs[0].Delta.X)
	assert.Zero(t, evs[0].Delta.Y)

	evs = m.Translate(tcell.NewEventMouse(4, 1, tcell.ButtonMiddle, tcell.ModNone))
	require.Len(t, evs, 2)
	assert.Equal(t, gesture.Release, evs[0].Kind)
	assert.Equal(t, gesture.ButtonRight, evs[0].Button)
	assert.Equal(t, gesture.Press, evs[1].Kind)
	assert.Equal(t, gesture.ButtonMiddle, evs[1].Button)
}

func TestTranslateWheel(t *testing.T) {
	m := NewMouse()
	m.Translate(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))

	evs := m.Translate(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone))
	require.Len(t, evs, 1)
	assert.Equal(t, gesture.Wheel, evs[0].Kind)
	assert.Equal(t, -1.0, evs[0].Wheel)

	evs = m.Translate(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone))
	require.Len(t, evs, 1)
	assert.Equal(t, 1.0, evs[0].Wheel)
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "short", FitText("short", 10))
	assert.Equal(t, "hell…", FitText("hello world", 5))
	assert.Equal(t, "h", FitText("hello", 1))
	assert.Empty(t, FitText("hello", 0))
	assert.Equal(t, 4, MeasureText("日本"))
	assert.Equal(t, "日…", FitText("日本語", 4))
}

func TestDrawSeededCanvas(t *testing.T) {
	app, screen := newTestApp(t, true)
	app.Draw()

	// input sits at canvas (0,100): cells (0,6) to (12,9).
	assert.Contains(t, row(screen, 7), "io: input")
	assert.Equal(t, "╭", string([]rune(row(screen, 6))[0]))
	assert.Contains(t, screenText(screen), string(HandleRune))
	assert.Contains(t, screenText(screen), "arithmetic")

	_, h := screen.Size()
	assert.Contains(t, row(screen, h-1), "zoom 1.00")
}

func TestDrawSelectionUsesHeavyBox(t *testing.T) {
	app, screen := newTestApp(t, true)
	nodes := app.canvas.Nodes()
	require.NotEmpty(t, nodes)
	app.canvas.SelectNode(nodes[0])

	app.Draw()
	assert.Contains(t, screenText(screen), string(SelectedBox.TopLeft))
}

func TestKeys(t *testing.T) {
	app, _ := newTestApp(t, false)
	s := app.canvas.Settings()
	snap := s.SnapToGrid

	assert.False(t, app.HandleEvent(key('s')))
	assert.Equal(t, !snap, s.SnapToGrid)
	assert.Equal(t, "snap "+onOff(!snap), app.Status())

	before := app.canvas.View().Scale
	app.HandleEvent(key('+'))
	assert.Greater(t, app.canvas.View().Scale, before)

	offset := app.canvas.View().Offset
	app.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	assert.Equal(t, offset.X+CellWidth, app.canvas.View().Offset.X)

	assert.True(t, app.HandleEvent(key('q')))
	assert.True(t, app.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)))
}

func TestDeleteKeyRemovesSelection(t *testing.T) {
	app, _ := newTestApp(t, true)
	nodes := app.canvas.Nodes()
	app.canvas.SelectNode(nodes[0])

	app.HandleEvent(tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone))
	assert.Len(t, app.canvas.Nodes(), len(nodes)-1)
	assert.True(t, app.canvas.Selection().Empty())
}

func TestPaletteAddsNode(t *testing.T) {
	app, _ := newTestApp(t, false)

	app.HandleEvent(key('/'))
	require.True(t, app.palette)
	assert.Len(t, app.matches, 7)

	for _, r := range "cla" {
		app.HandleEvent(key(r))
	}
	assert.Equal(t, []string{"math/clamp"}, app.matches)

	app.HandleEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	assert.Equal(t, "cl", app.filter)

	app.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.False(t, app.palette)
	nodes := app.canvas.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, "math/clamp", nodes[0].Type)
	assert.Equal(t, "added math/clamp", app.Status())
}

func TestPaletteBackspaceRemovesWholeRune(t *testing.T) {
	app, _ := newTestApp(t, false)
	app.HandleEvent(key('/'))
	require.True(t, app.palette)

	for _, r := range "a日é" {
		app.HandleEvent(key(r))
	}
	backspace := tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone)

	app.HandleEvent(backspace)
	assert.Equal(t, "a日", app.filter)
	app.HandleEvent(backspace)
	assert.Equal(t, "a", app.filter)
	assert.True(t, utf8.ValidString(app.filter))

	app.HandleEvent(backspace)
	app.HandleEvent(backspace)
	assert.Empty(t, app.filter)
	assert.Len(t, app.matches, 7)
}

func TestMenuClickInvokesItem(t *testing.T) {
	app, _ := newTestApp(t, false)

	app.HandleEvent(tcell.NewEventMouse(2, 2, tcell.ButtonSecondary, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(2, 2, tcell.ButtonNone, tcell.ModNone))
	m := app.canvas.Menu()
	require.NotNil(t, m)
	first := m.Items[0].Label
	assert.True(t, strings.HasPrefix(first, canvas.MenuAddNode+"/"))

	app.HandleEvent(tcell.NewEventMouse(4, 3, tcell.ButtonPrimary, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(4, 3, tcell.ButtonNone, tcell.ModNone))

	assert.Nil(t, app.canvas.Menu())
	require.Len(t, app.canvas.Nodes(), 1)
	assert.Equal(t, strings.TrimPrefix(first, canvas.MenuAddNode+"/"), app.canvas.Nodes()[0].Type)
	assert.Equal(t, first, app.Status())
}

func TestMenuKeys(t *testing.T) {
	app, _ := newTestApp(t, false)
	app.HandleEvent(tcell.NewEventMouse(2, 2, tcell.ButtonSecondary, tcell.ModNone))
	require.NotNil(t, app.canvas.Menu())

	app.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	assert.Nil(t, app.canvas.Menu())

	app.HandleEvent(tcell.NewEventMouse(2, 2, tcell.ButtonNone, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(2, 2, tcell.ButtonSecondary, tcell.ModNone))
	m := app.canvas.Menu()
	require.NotNil(t, m)
	app.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	second := m.Items[1].Label
	app.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	require.Len(t, app.canvas.Nodes(), 1)
	assert.Equal(t, strings.TrimPrefix(second, canvas.MenuAddNode+"/"), app.canvas.Nodes()[0].Type)
}

func TestExportKey(t *testing.T) {
	app, _ := newTestApp(t, true)
	app.HandleEvent(key('e'))
	assert.Equal(t, "export not configured", app.Status())

	var got graph.Snapshot
	app.opts.Export = func(s graph.Snapshot) (string, error) {
		got = s
		return "exported", nil
	}
	app.HandleEvent(key('e'))
	assert.Equal(t, "exported", app.Status())
	assert.Len(t, got.Nodes, 4)
}

func TestInterruptTicks(t *testing.T) {
	app, _ := newTestApp(t, true)
	n := app.canvas.Nodes()[0]
	n.Position = n.Position.Add(CellToScreen(1, 1))

	assert.False(t, app.HandleEvent(tcell.NewEventInterrupt(nil)))
	assert.Equal(t, n.Bounds(), n.Element.Rect)
}
