package editor

import (
	"github.com/gdamore/tcell/v2"

	"notepad/buffer"
	"notepad/tabs"
	"notepad/ui"
)

const wheelLines = 3

func (e *Editor) handleKey(ev *tcell.EventKey) {
	alt := ev.Modifiers()&tcell.ModAlt != 0

	// Keys that work whatever has focus.
	switch {
	case ev.Key() == tcell.KeyCtrlQ:
		if e.dialog == nil {
			e.requestQuit()
		}
		return
	case ev.Key() == tcell.KeyF2, alt && ev.Key() == tcell.KeyRune && ev.Rune() == ',':
		if e.dialog == nil {
			e.toggleSettings()
		}
		return
	case ev.Key() == tcell.KeyF1, ev.Key() == tcell.KeyCtrlK:
		if e.dialog == nil && e.palette == nil {
			e.openPalette()
		}
		return
	}

	if o := e.overlay(); o != nil {
		o.HandleKey(ev)
		return
	}
	if e.settings != nil {
		e.settings.panel.HandleKey(ev)
		return
	}

	if e.handleGlobalKey(ev) {
		return
	}

	if e.findBar != nil && e.findBar.HandleKey(ev) {
		return
	}

	e.handleBufferKey(ev)
}

// handleGlobalKey runs shell commands bound to keys. It reports whether the
// key was one of them.
func (e *Editor) handleGlobalKey(ev *tcell.EventKey) bool {
	mod := ev.Modifiers()
	if mod&tcell.ModAlt != 0 && ev.Key() == tcell.KeyRune {
		switch r := ev.Rune(); {
		case r >= '1' && r <= '9':
			e.switchToIndex(int(r - '1'))
		case r == 's' || r == 'S':
			e.promptSaveAs()
		case r == 'h' || r == 'H':
			e.toggleSetting(&e.cfg.ShowCurrentLine, "Highlight Current Line")
		case r == 'b' || r == 'B':
			if e.isMarkdown() {
				e.insertMarkdown("**", "**")
			}
		case r == 'i' || r == 'I':
			if e.isMarkdown() {
				e.insertMarkdown("*", "*")
			}
		default:
			return false
		}
		return true
	}

	switch ev.Key() {
	case tcell.KeyCtrlN:
		e.newTab()
	case tcell.KeyCtrlO:
		e.promptOpen()
	case tcell.KeyCtrlS:
		e.saveCurrent()
	case tcell.KeyCtrlW:
		if t := e.current(); t != nil {
			e.closeTab(t.ID)
		}
	case tcell.KeyCtrlR:
		e.openRecent()
	case tcell.KeyCtrlF:
		e.toggleFind()
	case tcell.KeyCtrlP:
		e.openPreview()
	case tcell.KeyCtrlL:
		e.toggleSetting(&e.cfg.ShowLineNumbers, "Show Line Numbers")
	case tcell.KeyCtrlG:
		e.toggleSetting(&e.cfg.ShowGrid, "Show Grid")
	case tcell.KeyPgUp:
		if mod&tcell.ModCtrl == 0 {
			return false
		}
		e.tabs.Cycle(-1)
	case tcell.KeyPgDn:
		if mod&tcell.ModCtrl == 0 {
			return false
		}
		e.tabs.Cycle(1)
	default:
		return false
	}
	return true
}

func (e *Editor) switchToIndex(i int) {
	all := e.tabs.Tabs()
	if i >= 0 && i < len(all) {
		e.tabs.Switch(all[i].ID)
	}
}

// handleBufferKey edits the current document.
func (e *Editor) handleBufferKey(ev *tcell.EventKey) {
	v := e.currentView()
	if v == nil {
		return
	}
	buf := v.Buffer
	shift := ev.Modifiers()&tcell.ModShift != 0
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0
	kind := tabs.ClassifyKey(ev)

	switch ev.Key() {
	case tcell.KeyUp:
		buf.MoveCursor(buffer.MoveUp, shift)
	case tcell.KeyDown:
		buf.MoveCursor(buffer.MoveDown, shift)
	case tcell.KeyLeft:
		buf.MoveCursor(buffer.MoveLeft, shift)
	case tcell.KeyRight:
		buf.MoveCursor(buffer.MoveRight, shift)
	case tcell.KeyHome:
		if ctrl {
			buf.MoveCursor(buffer.MoveDocStart, shift)
		} else {
			buf.MoveCursor(buffer.MoveHome, shift)
		}
	case tcell.KeyEnd:
		if ctrl {
			buf.MoveCursor(buffer.MoveDocEnd, shift)
		} else {
			buf.MoveCursor(buffer.MoveEnd, shift)
		}
	case tcell.KeyPgUp:
		buf.MoveLines(-max(v.Height-1, 1), shift)
	case tcell.KeyPgDn:
		buf.MoveLines(max(v.Height-1, 1), shift)
	case tcell.KeyEnter:
		buf.InsertNewline()
	case tcell.KeyTab:
		buf.InsertChar('\t')
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		buf.Backspace()
	case tcell.KeyDelete:
		buf.Delete()
	case tcell.KeyCtrlZ:
		buf.ApplyUndo()
	case tcell.KeyCtrlY:
		buf.ApplyRedo()
	case tcell.KeyCtrlA:
		buf.SelectAll()
	case tcell.KeyCtrlC:
		e.copySelection()
	case tcell.KeyCtrlX:
		e.cutSelection()
	case tcell.KeyCtrlV:
		e.pasteClipboard()
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return
		}
		buf.InsertChar(ev.Rune())
	default:
		return
	}
	v.OnEdit(kind)
}

func (e *Editor) copySelection() {
	v := e.currentView()
	if v == nil {
		return
	}
	text := v.Buffer.SelectedText()
	if text == "" {
		return
	}
	e.opts.Clipboard.Write(text)
}

func (e *Editor) cutSelection() {
	v := e.currentView()
	if v == nil {
		return
	}
	text := v.Buffer.SelectedText()
	if text == "" {
		return
	}
	e.opts.Clipboard.Write(text)
	v.Buffer.DeleteSelection()
}

func (e *Editor) pasteClipboard() {
	v := e.currentView()
	if v == nil {
		return
	}
	if text := e.opts.Clipboard.Read(); text != "" {
		v.Buffer.InsertText(text)
	}
}

// insertMarkdown wraps the selection, or inserts the markers at the cursor.
func (e *Editor) insertMarkdown(prefix, suffix string) {
	v := e.currentView()
	if v == nil {
		return
	}
	v.Buffer.WrapSelection(prefix, suffix)
	v.OnEdit(tabs.EditChange)
}

func (e *Editor) toggleFind() {
	if e.findBar != nil {
		e.closeFind()
		return
	}
	query := ""
	if v := e.currentView(); v != nil {
		if sel := v.Buffer.SelectedText(); sel != "" && !containsNewline(sel) {
			query = sel
		}
	}
	fb := ui.NewFindBar(query)
	fb.OnChange = func(q string) {
		if v := e.currentView(); v != nil {
			v.SetSearch(q)
		}
		e.findBar.Current = 0
		e.refreshFindCount()
	}
	fb.OnNext = func() { e.findStep(true) }
	fb.OnPrev = func() { e.findStep(false) }
	fb.OnClose = e.closeFind
	e.findBar = fb
	fb.OnChange(query)
}

func (e *Editor) closeFind() {
	e.findBar = nil
	for _, t := range e.tabs.Tabs() {
		t.View.SetSearch("")
	}
}

// findStep selects the next or previous match and reports the outcome in
// the find bar.
func (e *Editor) findStep(forward bool) {
	v := e.currentView()
	fb := e.findBar
	if v == nil || fb == nil || fb.Query == "" {
		return
	}
	buf := v.Buffer
	var found bool
	if forward {
		found = buf.FindNext(fb.Query)
	} else {
		found = buf.FindPrev(fb.Query)
	}
	if !found {
		fb.Current = 0
		e.setTemporaryError("Not found: " + fb.Query)
		return
	}
	start := buf.Offset(buf.Cursor)
	end := buf.CursorAt(start + len([]rune(fb.Query)))
	buf.SelectRange(buf.Cursor, end)
	v.OnEdit(tabs.EditRefresh)
	e.refreshFindCount()
	for i, m := range v.SearchMatches() {
		if m.Start == start {
			fb.Current = i + 1
			break
		}
	}
}

func (e *Editor) refreshFindCount() {
	if e.findBar == nil {
		return
	}
	e.findBar.Matches = 0
	if v := e.currentView(); v != nil {
		e.findBar.Matches = len(v.SearchMatches())
	}
}

func containsNewline(s string) bool {
	for _, r := range s {
		if r == '\n' {
			return true
		}
	}
	return false
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	mx, my := ev.Position()
	btn := ev.Buttons()
	// A held button repeats Button1 on motion; only the first one is a press.
	wasDown := e.mouseDown
	e.mouseDown = btn&tcell.Button1 != 0
	press := e.mouseDown && !wasDown

	if o := e.overlay(); o != nil {
		o.HandleMouse(ev)
		return
	}

	l := e.layout()
	if wasDown && e.dragging {
		if e.mouseDown {
			e.handleEditorMouse(ev, l.edit, false)
		} else {
			e.dragging = false
		}
		return
	}
	if btn == tcell.Button1 && !press {
		return
	}

	switch {
	case my == l.toolbarY:
		e.toolbar.HandleMouse(ev)
	case e.settings != nil && mx >= l.settingsX:
		e.settings.panel.HandleMouse(ev)
	case l.tabBarY >= 0 && my == l.tabBarY:
		e.tabBar.HandleMouse(ev)
	case l.mdToolbarY >= 0 && my == l.mdToolbarY:
		e.mdToolbar.HandleMouse(ev)
	case !l.edit.contains(mx, my):
	case e.current() == nil:
		e.welcome.HandleMouse(ev)
	default:
		e.handleEditorMouse(ev, l.edit, press)
	}
}

func (e *Editor) handleEditorMouse(ev *tcell.EventMouse, area rect, press bool) {
	v := e.currentView()
	if v == nil {
		return
	}
	buf := v.Buffer
	mx, my := ev.Position()

	switch ev.Buttons() {
	case tcell.WheelUp:
		v.ScrollBy(-wheelLines)
	case tcell.WheelDown:
		v.ScrollBy(wheelLines)
	case tcell.Button1:
		c := e.cursorAtScreen(v, area, mx, my)
		if press {
			buf.SetCursor(c)
			e.dragAnchor = buf.Cursor
			e.dragging = true
		} else {
			sel := buffer.NewSelection(e.dragAnchor, c)
			buf.Selection = &sel
			buf.Cursor = c
		}
		v.OnEdit(tabs.EditRefresh)
	}
}

// cursorAtScreen maps a screen cell in the edit area to a buffer position.
func (e *Editor) cursorAtScreen(v *tabs.EditorView, area rect, mx, my int) buffer.Cursor {
	buf := v.Buffer
	line := v.ScrollY + my - area.y
	line = min(max(line, 0), buf.LineCount()-1)
	gutterW := v.Gutter().Width
	displayCol := max(mx-area.x-gutterW+v.ScrollX, 0)
	return buffer.Cursor{Line: line, Col: displayColToBufferCol(buf.Lines[line], displayCol, tabSize)}
}
