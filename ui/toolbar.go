package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"notepad/config"
)

// Button is one clickable toolbar entry.
type Button struct {
	Label  string
	Hint   string // key binding shown after the label
	Action func()
}

// Toolbar is a single row of buttons. It is used both for the main toolbar
// and the Markdown formatting bar.
type Toolbar struct {
	Buttons []Button
	Theme   *config.ColorScheme
	// Accent draws the bar with the tab bar colors instead of the toolbar
	// colors.
	Accent bool

	x, y, w int
	spans   [][2]int // [start, end) column of each button
	hover   int
}

func NewToolbar(buttons ...Button) *Toolbar {
	return &Toolbar{Buttons: buttons, hover: -1}
}

func (t *Toolbar) label(b Button) string {
	if b.Hint == "" {
		return " " + b.Label + " "
	}
	return " " + b.Label + " (" + b.Hint + ") "
}

func (t *Toolbar) Render(screen tcell.Screen, x, y, width, height int) {
	t.x, t.y, t.w = x, y, width
	theme := themeOrDefault(t.Theme)
	style := tcell.StyleDefault.Background(theme.ToolbarBg).Foreground(theme.ToolbarFg)
	if t.Accent {
		style = tcell.StyleDefault.Background(theme.TabBarBg).Foreground(theme.TabBarActiveFg)
	}
	fill(screen, x, y, width, 1, style)

	t.spans = t.spans[:0]
	col := x
	for i, b := range t.Buttons {
		lbl := t.label(b)
		if col+runewidth.StringWidth(lbl) > x+width {
			lbl = " " + b.Label + " "
		}
		st := style
		if i == t.hover {
			st = style.Reverse(true)
		}
		start := col
		col = drawText(screen, col, y, x+width, lbl, st)
		t.spans = append(t.spans, [2]int{start, col})
		col = drawText(screen, col, y, x+width, " ", style)
	}
}

func (t *Toolbar) HandleKey(ev *tcell.EventKey) bool { return false }

// HandleMouse runs the action of a clicked button.
func (t *Toolbar) HandleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	if my != t.y || mx < t.x || mx >= t.x+t.w {
		t.hover = -1
		return false
	}
	t.hover = t.buttonAt(mx)
	if ev.Buttons() == tcell.Button1 && t.hover >= 0 {
		if a := t.Buttons[t.hover].Action; a != nil {
			a()
		}
	}
	return true
}

func (t *Toolbar) buttonAt(mx int) int {
	for i, sp := range t.spans {
		if mx >= sp[0] && mx < sp[1] {
			return i
		}
	}
	return -1
}
