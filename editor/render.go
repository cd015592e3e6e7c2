package editor

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"notepad/config"
	"notepad/tabs"
	"notepad/ui"
)

// tabSize is the display width of a tab stop.
const tabSize = 4

// bufferColToDisplayCol converts a buffer column (rune index) to display column (with tabs expanded and wide chars)
func bufferColToDisplayCol(line string, bufCol int, tabSize int) int {
	displayCol := 0
	for i, r := range []rune(line) {
		if i >= bufCol {
			break
		}
		displayCol += runeDisplayWidth(r, displayCol, tabSize)
	}
	return displayCol
}

// displayColToBufferCol converts a display column (visual position) to buffer column (rune index)
func displayColToBufferCol(line string, targetDisplayCol int, tabSize int) int {
	if targetDisplayCol <= 0 {
		return 0
	}
	displayCol := 0
	for i, r := range []rune(line) {
		if displayCol >= targetDisplayCol {
			return i
		}
		displayCol += runeDisplayWidth(r, displayCol, tabSize)
		// The character spans the target position.
		if displayCol > targetDisplayCol {
			return i
		}
	}
	return len([]rune(line))
}

func runeDisplayWidth(r rune, col, tabSize int) int {
	if r == '\t' {
		return tabSize - col%tabSize
	}
	return max(runewidth.RuneWidth(r), 1)
}

// screenLayout is the row assignment for one frame. Rows that are not shown
// are -1.
type screenLayout struct {
	toolbarY   int
	tabBarY    int
	mdToolbarY int
	findY      int
	statusY    int
	settingsX  int
	edit       rect
}

func (e *Editor) layout() screenLayout {
	w, h := e.screen.Size()
	l := screenLayout{toolbarY: 0, tabBarY: -1, mdToolbarY: -1, findY: -1, statusY: h - 1, settingsX: w}
	top := 1
	if e.tabs.Len() > 0 {
		l.tabBarY = top
		top++
	}
	if e.isMarkdown() {
		l.mdToolbarY = top
		top++
	}
	bottom := h - 1
	if e.findBar != nil {
		bottom--
		l.findY = bottom
	}
	if e.settings != nil {
		l.settingsX = w - settingsWidth(w)
	}
	l.edit = rect{x: 0, y: top, w: w, h: max(bottom-top, 0)}
	return l
}

// settingsWidth matches the width the settings panel draws itself at.
func settingsWidth(w int) int {
	return min(max(w/3, 38), 56, w-1)
}

func (e *Editor) render() {
	theme := e.cfg.Theme()
	defaultStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	e.screen.SetStyle(defaultStyle)
	e.screen.Clear()
	e.screen.HideCursor()

	w, _ := e.screen.Size()
	l := e.layout()

	e.toolbar.Theme = theme
	e.mdToolbar.Theme = theme
	e.tabBar.Theme = theme
	e.statusBar.Theme = theme
	e.welcome.Theme = theme

	e.toolbar.Render(e.screen, 0, l.toolbarY, w, 1)
	if l.tabBarY >= 0 {
		e.tabBar.SetTabs(e.tabItems(), e.current().ID)
		e.tabBar.Render(e.screen, 0, l.tabBarY, w, 1)
	}
	if l.mdToolbarY >= 0 {
		e.mdToolbar.Render(e.screen, 0, l.mdToolbarY, w, 1)
	}

	if e.current() != nil {
		e.renderEditor(l.edit)
	} else {
		e.welcome.Recent = e.cfg.RecentFiles
		e.welcome.Render(e.screen, l.edit.x, l.edit.y, l.edit.w, l.edit.h)
	}

	if l.findY >= 0 {
		e.findBar.Theme = theme
		e.findBar.Render(e.screen, 0, l.findY, w, 1)
	}
	e.updateStatus()
	e.statusBar.Render(e.screen, 0, l.statusY, w, 1)

	if e.settings != nil {
		e.settings.panel.Theme = theme
		e.settings.panel.Render(e.screen, 0, 1, w, l.statusY-1)
	}
	e.renderOverlay(theme)
	e.screen.Show()
}

// overlay returns the topmost modal widget; it takes all input while open.
func (e *Editor) overlay() ui.Component {
	switch {
	case e.dialog != nil:
		return e.dialog
	case e.palette != nil:
		return e.palette
	case e.recent != nil:
		return e.recent
	}
	return nil
}

func (e *Editor) renderOverlay(theme *config.ColorScheme) {
	if e.dialog != nil {
		e.dialog.Theme = theme
	}
	if e.palette != nil {
		e.palette.Theme = theme
	}
	if e.recent != nil {
		e.recent.Theme = theme
	}
	if o := e.overlay(); o != nil {
		w, h := e.screen.Size()
		o.Render(e.screen, 0, 0, w, h)
	}
}

func (e *Editor) tabItems() []ui.TabItem {
	all := e.tabs.Tabs()
	items := make([]ui.TabItem, 0, len(all))
	for _, t := range all {
		items = append(items, ui.TabItem{ID: t.ID, Title: t.Title(), Externally: e.externally[t.ID]})
	}
	return items
}

func (e *Editor) renderEditor(area rect) {
	v := e.currentView()
	if v == nil || area.w <= 0 || area.h <= 0 {
		return
	}
	if v.Width != area.w || v.Height != area.h {
		v.Resize(area.w, area.h)
	}
	buf := v.Buffer
	gutter := v.Gutter()
	textW := area.w - gutter.Width
	if textW <= 0 {
		return
	}
	e.fitCursorColumn(v, textW)

	theme := e.cfg.Theme()
	lineStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	gutterStyle := lineStyle.Foreground(theme.LineNumber)
	activeGutterStyle := lineStyle.Foreground(theme.LineNumberActive)
	gridStyle := lineStyle.Foreground(theme.GridLine)
	emptyLineStyle := lineStyle.Foreground(theme.LineNumber)

	starts := buf.LineStarts()
	selStart, selEnd := -1, -1
	if sel := buf.Selection; sel != nil && !sel.Empty() {
		selStart, selEnd = buf.Offset(sel.Start), buf.Offset(sel.End)
	}
	current, hasCurrent := v.CurrentLine()
	tx := area.x + gutter.Width

	for row := 0; row < area.h; row++ {
		y := area.y + row
		line := v.ScrollY + row
		if line >= buf.LineCount() {
			e.screen.SetContent(area.x, y, '~', nil, emptyLineStyle)
			continue
		}

		rowStyle := lineStyle
		if hasCurrent && current.Contains(starts[line]) {
			rowStyle = rowStyle.Background(theme.CurrentLine)
		}
		if gutter.ShowGrid {
			rowStyle = rowStyle.Underline(true)
		}

		if gutter.Visible() {
			gs := gutterStyle
			if row < len(gutter.Rows) {
				gr := gutter.Rows[row]
				if gr.Active {
					gs = activeGutterStyle
				}
				drawCells(e.screen, area.x, y, gr.Label, gs)
			}
			if gutter.ShowGrid {
				e.screen.SetContent(area.x+gutter.Width-1, y, '│', nil, gridStyle)
			}
		}

		for col := tx; col < area.x+area.w; col++ {
			e.screen.SetContent(col, y, ' ', nil, rowStyle)
		}

		displayCol := 0
		for i, r := range []rune(buf.Lines[line]) {
			width := runeDisplayWidth(r, displayCol, tabSize)
			off := starts[line] + i
			st := v.TagAt(off).Style(rowStyle)
			if v.IsMatch(off) {
				st = st.Background(theme.SearchMatch)
			}
			if off >= selStart && off < selEnd {
				st = st.Background(theme.Selection)
			}
			sx := tx + displayCol - v.ScrollX
			displayCol += width
			if sx < tx {
				continue
			}
			if sx+width > area.x+area.w {
				break
			}
			if r == '\t' {
				for k := 0; k < width; k++ {
					e.screen.SetContent(sx+k, y, ' ', nil, st)
				}
				continue
			}
			e.screen.SetContent(sx, y, r, nil, st)
		}
		// A selected line break shows as one highlighted cell.
		if eol := starts[line] + buf.LineLen(line); eol >= selStart && eol < selEnd {
			if sx := tx + displayCol - v.ScrollX; sx >= tx && sx < area.x+area.w {
				e.screen.SetContent(sx, y, ' ', nil, rowStyle.Background(theme.Selection))
			}
		}
	}

	c := buf.Cursor
	if c.Line >= v.ScrollY && c.Line < v.ScrollY+area.h {
		cx := tx + bufferColToDisplayCol(buf.Lines[c.Line], c.Col, tabSize) - v.ScrollX
		if cx >= tx && cx < area.x+area.w {
			e.screen.ShowCursor(cx, area.y+c.Line-v.ScrollY)
		}
	}
}

// fitCursorColumn keeps the cursor's display column inside the text area
// when the cursor line is on screen.
func (e *Editor) fitCursorColumn(v *tabs.EditorView, textW int) {
	c := v.Buffer.Cursor
	if c.Line < v.ScrollY || c.Line >= v.ScrollY+v.Height {
		return
	}
	col := bufferColToDisplayCol(v.Buffer.Lines[c.Line], c.Col, tabSize)
	if col < v.ScrollX {
		v.ScrollX = col
	} else if col >= v.ScrollX+textW {
		v.ScrollX = col - textW + 1
	}
}

func drawCells(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
