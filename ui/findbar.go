package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"notepad/config"
)

// FindBar is the search row above the status bar. Matching is done by the
// owner; the bar only edits the query and shows the count.
type FindBar struct {
	Query  string
	Cursor int
	// Matches and Current are filled in by the owner after OnChange.
	Matches int
	Current int // 1-based, 0 when unknown

	Theme *config.ColorScheme

	OnChange func(query string)
	OnNext   func()
	OnPrev   func()
	OnClose  func()
}

func NewFindBar(query string) *FindBar {
	return &FindBar{Query: query, Cursor: len([]rune(query))}
}

func (f *FindBar) Render(screen tcell.Screen, x, y, width, height int) {
	theme := themeOrDefault(f.Theme)
	style := tcell.StyleDefault.Background(theme.ToolbarBg).Foreground(theme.ToolbarFg)
	promptStyle := style.Bold(true)
	inputStyle := tcell.StyleDefault.Background(theme.DialogInputBg).Foreground(theme.Foreground)
	fill(screen, x, y, width, 1, style)

	col := drawText(screen, x+1, y, x+width, "Find: ", promptStyle)

	var info string
	switch {
	case f.Query == "":
	case f.Matches == 0:
		info = " No matches "
	case f.Current > 0:
		info = fmt.Sprintf(" %d/%d ", f.Current, f.Matches)
	default:
		info = fmt.Sprintf(" %d matches ", f.Matches)
	}
	hint := " Enter/Down=Next  Up=Prev  Esc=Close "
	tail := info + hint
	if runewidth.StringWidth(tail)+col+10 > x+width {
		tail = info
	}
	tailW := runewidth.StringWidth(tail)
	inputW := max(x+width-col-tailW-1, 1)
	drawInput(screen, col, y, inputW, f.Query, f.Cursor, inputStyle)
	drawText(screen, x+width-tailW, y, x+width, tail, style.Foreground(theme.LineNumber))
}

func (f *FindBar) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		if f.OnClose != nil {
			f.OnClose()
		}
		return true
	case tcell.KeyEnter, tcell.KeyDown:
		if f.OnNext != nil {
			f.OnNext()
		}
		return true
	case tcell.KeyUp:
		if f.OnPrev != nil {
			f.OnPrev()
		}
		return true
	}
	query, cursor, ok := editLine(ev, f.Query, f.Cursor)
	if !ok {
		return false
	}
	changed := query != f.Query
	f.Query, f.Cursor = query, cursor
	if changed && f.OnChange != nil {
		f.OnChange(query)
	}
	return true
}

func (f *FindBar) HandleMouse(ev *tcell.EventMouse) bool { return false }
