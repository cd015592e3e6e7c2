package tabs

import "github.com/gdamore/tcell/v2"

// ClassifyKey maps a key event to the kind OnEdit expects. Cursor keys,
// paging, Enter and Backspace count as navigation; keys that produce a
// character count as changes; everything else only refreshes.
func ClassifyKey(ev *tcell.EventKey) EditKind {
	switch ev.Key() {
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyLeft, tcell.KeyRight,
		tcell.KeyPgUp, tcell.KeyPgDn, tcell.KeyEnter,
		tcell.KeyBackspace, tcell.KeyBackspace2:
		return EditNavigate
	case tcell.KeyRune, tcell.KeyTab, tcell.KeyDelete,
		tcell.KeyCtrlV, tcell.KeyCtrlX, tcell.KeyCtrlZ, tcell.KeyCtrlY:
		return EditChange
	}
	return EditRefresh
}
