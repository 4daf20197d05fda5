package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"nodegraph/canvas"
	"nodegraph/geometry"
	"nodegraph/graph"
)

// BoxStyle is the set of runes a box border is drawn with.
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

var (
	// NodeBox uses rounded corners.
	NodeBox = BoxStyle{'╭', '╮', '╰', '╯', '─', '│'}
	// SelectedBox is heavy so the selection stands out without colour.
	SelectedBox = BoxStyle{'┏', '┓', '┗', '┛', '━', '┃'}
	// GroupBox is dashed.
	GroupBox = BoxStyle{'┌', '┐', '└', '┘', '┄', '┆'}
	// MenuBox is double-lined.
	MenuBox = BoxStyle{'╔', '╗', '╚', '╝', '═', '║'}
)

// HandleRune marks a node's auto-connect handle.
const HandleRune = '●'

var (
	baseStyle   = tcell.StyleDefault
	groupStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	lineStyle   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	menuStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// cellRect is a rectangle in terminal cells.
type cellRect struct {
	x, y, w, h int
}

func toCell(p geometry.Vec2) (int, int) {
	return int(math.Floor(p.X / CellWidth)), int(math.Floor(p.Y / CellHeight))
}

func toCellRect(r geometry.Rect) cellRect {
	x0, y0 := toCell(r.Min)
	x1, y1 := toCell(r.Max)
	return cellRect{x: x0, y: y0, w: max(x1-x0, 2), h: max(y1-y0, 2)}
}

func menuBox(m *canvas.Menu) cellRect {
	x, y := toCell(m.Position)
	w := 0
	for _, it := range m.Items {
		w = max(w, MeasureText(it.Label))
	}
	return cellRect{x: x, y: y, w: w + 4, h: len(m.Items) + 2}
}

// Draw paints the whole canvas: groups at the back, then connections, nodes
// and handles, then the menu and palette overlays and the status line.
func (a *App[N, C, G]) Draw() {
	s := a.screen
	s.Clear()
	view := a.canvas.View()

	for _, g := range a.canvas.Groups() {
		if !g.Element.Visible {
			continue
		}
		a.drawGroup(g, view)
	}
	for _, conn := range a.canvas.Connections() {
		if !conn.Element.Visible || conn.Line.IsZero() {
			continue
		}
		a.drawConnection(conn, view)
	}
	for _, n := range a.canvas.Nodes() {
		if !n.Element.Visible {
			continue
		}
		a.drawNode(n, view)
	}
	if p := a.canvas.Pending(); p != nil && p.From != nil {
		a.drawPending(p, view)
	}
	if m := a.canvas.Menu(); m != nil {
		a.drawMenu(m)
	}
	if a.palette {
		a.drawPalette()
	}

	w, h := s.Size()
	line := FitText(a.statusLine(), w)
	for x := 0; x < w; x++ {
		s.SetContent(x, h-1, ' ', nil, statusStyle)
	}
	drawText(s, 0, h-1, line, statusStyle)
}

func (a *App[N, C, G]) drawGroup(g *graph.Group[N, G], view canvas.View) {
	r := toCellRect(view.RectToScreen(g.Element.Rect))
	style := groupStyle
	if g.Element.HasClass(graph.ClassSelected) {
		style = style.Foreground(tcell.ColorYellow)
	}
	if g.Element.HasClass(graph.ClassHovered) {
		style = style.Bold(true).Foreground(tcell.ColorAqua)
	}
	drawBox(a.screen, r, GroupBox, style)

	label := g.Display.Label
	if label == "" {
		label = g.Type
	}
	drawText(a.screen, r.x+2, r.y, FitText(label, r.w-4), style)
}

func (a *App[N, C, G]) drawConnection(conn *graph.Connection[N, C], view canvas.View) {
	style := lineStyle
	if conn.Display.HasColor {
		style = style.Foreground(rgb(conn.Display.Color))
	}
	if conn.Element.HasClass(graph.ClassSelected) {
		style = style.Bold(true).Foreground(tcell.ColorYellow)
	}

	x0, y0 := toCell(view.ToScreen(conn.Line.Start))
	x1, y1 := toCell(view.ToScreen(conn.Line.End))
	drawLine(a.screen, x0, y0, x1, y1, lineRune(conn.Line.Angle), style)

	mx, my := toCell(view.ToScreen(conn.Line.Center))
	if conn.Display.Directed {
		a.screen.SetContent(mx, my, arrowRune(conn.Line.Angle), nil, style)
	}
	if conn.Display.Label != "" {
		drawText(a.screen, mx+1, my, conn.Display.Label, style.Bold(false))
	}
}

func (a *App[N, C, G]) drawNode(n *graph.Node[N], view canvas.View) {
	r := toCellRect(view.RectToScreen(n.Element.Rect))
	el := n.Element

	style := baseStyle
	if n.Display.HasColor {
		c := n.Display.Color
		if el.HasClass(graph.ClassHovered) {
			c = lighten(c, 0.4)
		}
		style = style.Foreground(rgb(c))
	} else if el.HasClass(graph.ClassHovered) {
		style = style.Bold(true)
	}
	if el.HasClass(graph.ClassPressed) {
		style = style.Reverse(true)
	}
	if el.HasClass(graph.ClassCreating) {
		style = style.Dim(true)
	}

	box := NodeBox
	if el.HasClass(graph.ClassSelected) {
		box = SelectedBox
	}
	fillBox(a.screen, r, style)
	drawBox(a.screen, r, box, style)

	label := n.Display.Label
	if n.Display.Icon != "" && label != "" {
		label = n.Display.Icon + ": " + label
	}
	if label == "" {
		label = n.Type
	}
	label = FitText(label, r.w-2)
	drawText(a.screen, r.x+1+(r.w-2-MeasureText(label))/2, r.y+r.h/2, label, style)

	if n.Handle.Visible {
		hx, hy := toCell(view.ToScreen(n.Handle.Rect.Center()))
		a.screen.SetContent(hx, hy, HandleRune, nil, style.Reverse(false))
	}
}

// drawPending draws the rubber band of a connection being made.
func (a *App[N, C, G]) drawPending(p *canvas.PendingConnection[N], view canvas.View) {
	from := view.ToScreen(p.From.Anchor())
	x0, y0 := toCell(from)
	x1, y1 := a.mouseCell()
	angle := math.Atan2(float64(y1-y0)*CellHeight, float64(x1-x0)*CellWidth) * 180 / math.Pi
	drawLine(a.screen, x0, y0, x1, y1, lineRune(angle), lineStyle.Dim(true))
}

func (a *App[N, C, G]) mouseCell() (int, int) {
	return toCell(a.mouse.last)
}

func (a *App[N, C, G]) drawMenu(m *canvas.Menu) {
	r := menuBox(m)
	fillBox(a.screen, r, menuStyle)
	drawBox(a.screen, r, MenuBox, menuStyle)
	for i, it := range m.Items {
		style := menuStyle
		if i == a.menuSel {
			style = style.Reverse(true)
		}
		drawText(a.screen, r.x+2, r.y+1+i, it.Label, style)
	}
}

func (a *App[N, C, G]) drawPalette() {
	rows := min(len(a.matches), paletteRows)
	w := 30
	for _, m := range a.matches[:rows] {
		w = max(w, MeasureText(m)+4)
	}
	r := cellRect{x: 1, y: 1, w: w, h: rows + 3}
	fillBox(a.screen, r, menuStyle)
	drawBox(a.screen, r, MenuBox, menuStyle)
	drawText(a.screen, r.x+2, r.y+1, FitText("/"+a.filter, w-4), menuStyle.Bold(true))
	for i, m := range a.matches[:rows] {
		style := menuStyle
		if i == a.paletteI {
			style = style.Reverse(true)
		}
		drawText(a.screen, r.x+2, r.y+2+i, m, style)
	}
}

func drawBox(s tcell.Screen, r cellRect, b BoxStyle, style tcell.Style) {
	right, bottom := r.x+r.w-1, r.y+r.h-1
	for x := r.x + 1; x < right; x++ {
		s.SetContent(x, r.y, b.Horizontal, nil, style)
		s.SetContent(x, bottom, b.Horizontal, nil, style)
	}
	for y := r.y + 1; y < bottom; y++ {
		s.SetContent(r.x, y, b.Vertical, nil, style)
		s.SetContent(right, y, b.Vertical, nil, style)
	}
	s.SetContent(r.x, r.y, b.TopLeft, nil, style)
	s.SetContent(right, r.y, b.TopRight, nil, style)
	s.SetContent(r.x, bottom, b.BottomLeft, nil, style)
	s.SetContent(right, bottom, b.BottomRight, nil, style)
}

func fillBox(s tcell.Screen, r cellRect, style tcell.Style) {
	for y := r.y + 1; y < r.y+r.h-1; y++ {
		for x := r.x + 1; x < r.x+r.w-1; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawLine plots a line with Bresenham's algorithm, end cell excluded.
func drawLine(s tcell.Screen, x0, y0, x1, y1 int, ch rune, style tcell.Style) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	xInc, yInc := 1, 1
	if x0 > x1 {
		xInc = -1
	}
	if y0 > y1 {
		yInc = -1
	}

	x, y := x0, y0
	if dx > dy {
		err := dx / 2
		for x != x1 {
			s.SetContent(x, y, ch, nil, style)
			err -= dy
			if err < 0 {
				y += yInc
				err += dx
			}
			x += xInc
		}
		return
	}
	err := dy / 2
	for y != y1 {
		s.SetContent(x, y, ch, nil, style)
		err -= dx
		if err < 0 {
			x += xInc
			err += dy
		}
		y += yInc
	}
}

// lineRune picks the line glyph closest to an angle in degrees, measured
// with y growing downwards.
func lineRune(angle float64) rune {
	a := math.Mod(angle+360, 180)
	switch {
	case a < 22.5 || a >= 157.5:
		return '─'
	case a < 67.5:
		return '╲'
	case a < 112.5:
		return '│'
	default:
		return '╱'
	}
}

func arrowRune(angle float64) rune {
	a := math.Mod(angle+360, 360)
	switch {
	case a < 45 || a >= 315:
		return '▶'
	case a < 135:
		return '▼'
	case a < 225:
		return '◀'
	default:
		return '▲'
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// lighten blends c towards white in Lab space.
func lighten(c color.RGBA, t float64) color.RGBA {
	cf, _ := colorful.MakeColor(c)
	r, g, b := cf.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: c.A}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
