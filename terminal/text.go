package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated labels.
const Ellipsis = "…"

// MeasureText returns the display width of a string in terminal cells.
func MeasureText(text string) int {
	return runewidth.StringWidth(text)
}

// FitText truncates text to fit within maxWidth cells, ending it with the
// ellipsis when anything was cut.
func FitText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if MeasureText(text) <= maxWidth {
		return text
	}
	if maxWidth <= MeasureText(Ellipsis) {
		return runewidth.Truncate(text, maxWidth, "")
	}
	return runewidth.Truncate(text, maxWidth, Ellipsis)
}

// drawText writes text starting at (x, y) and returns the column after it.
// Wide runes take two cells.
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}
