package terminal

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"nodegraph/canvas"
	"nodegraph/catalog"
	"nodegraph/geometry"
	"nodegraph/gesture"
	"nodegraph/graph"
)

// Tick intervals for the refresh loop.
const (
	TickInterval     = 100 * time.Millisecond
	FastTickInterval = 25 * time.Millisecond
)

// paletteRows is how many catalog matches the add-node palette lists.
const paletteRows = 8

// Options configures an App.
type Options struct {
	Logger *zap.Logger
	// Catalog feeds the add-node palette. Nil disables it.
	Catalog *catalog.Registry
	// CatalogKind selects the catalog tree the palette searches.
	CatalogKind string
	// Export is called with the canvas snapshot when the user asks for an
	// export. It returns a message for the status line.
	Export func(s graph.Snapshot) (string, error)
}

// App is the terminal editor. Every method runs on the goroutine that
// calls Run, which is the only goroutine touching the canvas.
type App[N, C, G comparable] struct {
	screen tcell.Screen
	canvas *canvas.Controller[N, C, G]
	opts   Options
	mouse  *Mouse

	status   string
	menuSel  int
	palette  bool
	filter   string
	matches  []string
	paletteI int
}

// New creates an app drawing c on screen. The screen must already be
// initialised.
func New[N, C, G comparable](screen tcell.Screen, c *canvas.Controller[N, C, G], opts Options) *App[N, C, G] {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &App[N, C, G]{
		screen: screen,
		canvas: c,
		opts:   opts,
		mouse:  NewMouse(),
	}
}

// viewport is the drawable area in screen units; the last row is the
// status line.
func (a *App[N, C, G]) viewport() geometry.Rect {
	w, h := a.screen.Size()
	return geometry.Rect{Max: geometry.V(float64(w)*CellWidth, float64(h-1)*CellHeight)}
}

// Run draws and handles events until the user quits or ctx is done. The
// canvas is refreshed on every tick.
func (a *App[N, C, G]) Run(ctx context.Context) error {
	a.screen.EnableMouse()
	a.screen.Clear()
	if a.canvas.Settings().FitToScreenOnOpen {
		a.canvas.FitToScreen(a.viewport())
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.tick(ctx)

	for {
		a.Draw()
		a.screen.Show()

		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if a.HandleEvent(ev) {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// tick posts an interrupt per refresh so the refresh itself happens on the
// event loop.
func (a *App[N, C, G]) tick(ctx context.Context) {
	interval := TickInterval
	if a.canvas.Settings().FastForward {
		interval = FastTickInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			a.screen.PostEvent(tcell.NewEventInterrupt(nil))
			return
		case <-t.C:
			a.screen.PostEvent(tcell.NewEventInterrupt(interval))
		}
	}
}

// HandleEvent processes one tcell event and reports whether the app should
// quit.
func (a *App[N, C, G]) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventInterrupt:
		a.canvas.Tick()
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return false
}

func (a *App[N, C, G]) handleMouse(ev *tcell.EventMouse) {
	for _, pe := range a.mouse.Translate(ev) {
		if pe.Kind == gesture.Press && a.menuClick(pe.Position) {
			continue
		}
		a.canvas.HandlePointer(pe)
	}
	if a.canvas.Menu() == nil {
		a.menuSel = 0
	}
}

// menuClick invokes the open menu's item under a screen position.
func (a *App[N, C, G]) menuClick(pos geometry.Vec2) bool {
	m := a.canvas.Menu()
	if m == nil {
		return false
	}
	x, y := int(pos.X/CellWidth), int(pos.Y/CellHeight)
	box := menuBox(m)
	if x < box.x || x >= box.x+box.w || y <= box.y || y >= box.y+box.h-1 {
		return false
	}
	item := m.Items[y-box.y-1]
	a.status = item.Label
	m.Invoke(item.Label)
	return true
}

func (a *App[N, C, G]) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if a.palette {
		a.handlePaletteKey(ev)
		return false
	}
	if m := a.canvas.Menu(); m != nil {
		a.handleMenuKey(m, ev)
		return false
	}

	s := a.canvas.Settings()
	switch ev.Key() {
	case tcell.KeyEscape:
		a.canvas.CancelConnection()
		a.canvas.ClearSelection()
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		a.deleteSelection()
	case tcell.KeyUp:
		a.canvas.Pan(geometry.V(0, CellHeight))
	case tcell.KeyDown:
		a.canvas.Pan(geometry.V(0, -CellHeight))
	case tcell.KeyLeft:
		a.canvas.Pan(geometry.V(CellWidth, 0))
	case tcell.KeyRight:
		a.canvas.Pan(geometry.V(-CellWidth, 0))
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 's':
			s.SnapToGrid = !s.SnapToGrid
			a.status = "snap " + onOff(s.SnapToGrid)
		case 'f':
			s.FastForward = !s.FastForward
			a.status = "fast-forward " + onOff(s.FastForward) + " (next start)"
		case 'F':
			a.canvas.FitToScreen(a.viewport())
		case '+', '=':
			a.canvas.ZoomAt(a.viewport().Center(), 1.25)
		case '-':
			a.canvas.ZoomAt(a.viewport().Center(), 0.8)
		case '/':
			a.openPalette()
		case 'e':
			a.export()
		}
	}
	return false
}

func (a *App[N, C, G]) handleMenuKey(m *canvas.Menu, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.canvas.DismissMenu()
		a.menuSel = 0
	case tcell.KeyUp:
		if a.menuSel > 0 {
			a.menuSel--
		}
	case tcell.KeyDown:
		if a.menuSel < len(m.Items)-1 {
			a.menuSel++
		}
	case tcell.KeyEnter:
		if a.menuSel < len(m.Items) {
			label := m.Items[a.menuSel].Label
			a.menuSel = 0
			a.status = label
			m.Invoke(label)
		}
	}
}

func (a *App[N, C, G]) deleteSelection() {
	sel := a.canvas.Selection()
	var err error
	switch {
	case sel.Node != nil:
		err = a.canvas.DeleteNode(sel.Node)
	case sel.Connection != nil:
		err = a.canvas.DeleteConnection(sel.Connection)
	case sel.Group != nil:
		err = a.canvas.DeleteGroup(sel.Group)
	default:
		return
	}
	if err != nil {
		a.status = err.Error()
	}
}

func (a *App[N, C, G]) export() {
	if a.opts.Export == nil {
		a.status = "export not configured"
		return
	}
	msg, err := a.opts.Export(a.canvas.Snapshot())
	if err != nil {
		a.opts.Logger.Warn("export failed", zap.Error(err))
		a.status = "export failed: " + err.Error()
		return
	}
	a.status = msg
}

// Palette ----------------------------------------------------------------------

func (a *App[N, C, G]) openPalette() {
	if a.opts.Catalog == nil {
		a.status = "no catalog loaded"
		return
	}
	a.palette = true
	a.filter = ""
	a.refreshPalette()
}

// refreshPalette re-runs the catalog query. Typing only ever narrows the
// filter, so the registry answers from its previous result.
func (a *App[N, C, G]) refreshPalette() {
	tree := a.opts.Catalog.Filtered(a.opts.CatalogKind, a.filter)
	a.matches = tree.Leaves()
	if a.paletteI >= len(a.matches) {
		a.paletteI = 0
	}
}

func (a *App[N, C, G]) handlePaletteKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.palette = false
	case tcell.KeyUp:
		if a.paletteI > 0 {
			a.paletteI--
		}
	case tcell.KeyDown:
		if a.paletteI < min(len(a.matches), paletteRows)-1 {
			a.paletteI++
		}
	case tcell.KeyEnter:
		a.palette = false
		if a.paletteI < len(a.matches) {
			t := a.matches[a.paletteI]
			pos := a.canvas.ScreenToCanvas(a.viewport().Center())
			a.canvas.CreateNode(t, pos)
			a.status = "added " + t
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if a.filter != "" {
			_, size := utf8.DecodeLastRuneInString(a.filter)
			a.filter = a.filter[:len(a.filter)-size]
			a.refreshPalette()
		}
	case tcell.KeyRune:
		a.filter += string(ev.Rune())
		a.refreshPalette()
	}
}

// Status returns the status-line message.
func (a *App[N, C, G]) Status() string {
	return a.status
}

func (a *App[N, C, G]) statusLine() string {
	s := a.canvas.Settings()
	parts := []string{
		fmt.Sprintf("zoom %.2f", s.Zoom),
		"snap " + onOff(s.SnapToGrid),
		"ff " + onOff(s.FastForward),
	}
	if a.canvas.Pending() != nil {
		parts = append(parts, "connecting…")
	}
	if a.status != "" {
		parts = append(parts, a.status)
	}
	return strings.Join(parts, "  ") + "  │ q quit  / add  e export  s snap  F fit"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
