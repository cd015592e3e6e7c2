package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"notepad/config"
)

// Component is a widget the editor lays out and routes events to.
type Component interface {
	Render(screen tcell.Screen, x, y, width, height int)
	HandleKey(ev *tcell.EventKey) bool
	HandleMouse(ev *tcell.EventMouse) bool
}

func themeOrDefault(theme *config.ColorScheme) *config.ColorScheme {
	if theme == nil {
		return config.Themes["dark"]
	}
	return theme
}

// drawText writes s starting at x and returns the column after the last
// cell written. Nothing is drawn at or past maxX.
func drawText(screen tcell.Screen, x, y, maxX int, s string, style tcell.Style) int {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		screen.SetContent(x, y, ch, nil, style)
		x += w
	}
	return x
}

func fill(screen tcell.Screen, x, y, width, height int, style tcell.Style) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			screen.SetContent(x+dx, y+dy, ' ', nil, style)
		}
	}
}

func drawBox(screen tcell.Screen, x, y, w, h int, style tcell.Style, title string, titleStyle tcell.Style) {
	fill(screen, x, y, w, h, style)
	for dx := 0; dx < w; dx++ {
		screen.SetContent(x+dx, y, '─', nil, style)
		screen.SetContent(x+dx, y+h-1, '─', nil, style)
	}
	for dy := 0; dy < h; dy++ {
		screen.SetContent(x, y+dy, '│', nil, style)
		screen.SetContent(x+w-1, y+dy, '│', nil, style)
	}
	screen.SetContent(x, y, '┌', nil, style)
	screen.SetContent(x+w-1, y, '┐', nil, style)
	screen.SetContent(x, y+h-1, '└', nil, style)
	screen.SetContent(x+w-1, y+h-1, '┘', nil, style)
	if title != "" {
		t := " " + title + " "
		tx := x + (w-runewidth.StringWidth(t))/2
		drawText(screen, max(tx, x+1), y, x+w-1, t, titleStyle)
	}
}

// truncate shortens s to at most width cells, marking the cut with "...".
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// truncateLeft keeps the end of s, which matters for paths.
func truncateLeft(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return ""
	}
	r := []rune(s)
	for i := range r {
		rest := string(r[i:])
		if runewidth.StringWidth(rest) <= width-3 {
			return "..." + rest
		}
	}
	return "..."
}

// editLine applies a line-editing key to text with a rune cursor. It
// reports whether the key was an editing key.
func editLine(ev *tcell.EventKey, text string, cursor int) (string, int, bool) {
	runes := []rune(text)
	if cursor > len(runes) {
		cursor = len(runes)
	}
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if cursor > 0 {
			runes = append(runes[:cursor-1], runes[cursor:]...)
			cursor--
		}
	case tcell.KeyDelete:
		if cursor < len(runes) {
			runes = append(runes[:cursor], runes[cursor+1:]...)
		}
	case tcell.KeyLeft:
		if cursor > 0 {
			cursor--
		}
	case tcell.KeyRight:
		if cursor < len(runes) {
			cursor++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		cursor = len(runes)
	case tcell.KeyCtrlU:
		runes = runes[cursor:]
		cursor = 0
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return text, cursor, false
		}
		ch := ev.Rune()
		runes = append(runes[:cursor], append([]rune{ch}, runes[cursor:]...)...)
		cursor++
	default:
		return text, cursor, false
	}
	return string(runes), cursor, true
}

// drawInput renders an editable field with a block cursor.
func drawInput(screen tcell.Screen, x, y, width int, text string, cursor int, style tcell.Style) {
	fill(screen, x, y, width, 1, style)
	runes := []rune(text)
	start := 0
	// Keep the cursor inside the field.
	for runewidth.StringWidth(string(runes[start:min(cursor, len(runes))])) >= width && start < len(runes) {
		start++
	}
	col := x
	for i := start; i < len(runes); i++ {
		w := runewidth.RuneWidth(runes[i])
		if col+w > x+width {
			break
		}
		st := style
		if i == cursor {
			st = style.Reverse(true)
		}
		screen.SetContent(col, y, runes[i], nil, st)
		col += max(w, 1)
	}
	if cursor >= len(runes) && col < x+width {
		screen.SetContent(col, y, ' ', nil, style.Reverse(true))
	}
}
