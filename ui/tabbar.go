package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"notepad/config"
)

// TabItem is the tab bar's view of one open tab.
type TabItem struct {
	ID    string
	Title string
	// Externally is set when the file changed on disk under unsaved edits.
	Externally bool
}

type TabBar struct {
	Tabs      []TabItem
	Active    int
	scrollOff int
	x, y, w   int // layout coords set on render

	mouseX, mouseY           int
	mousePressX, mousePressY int
	mousePressed             bool

	Theme *config.ColorScheme

	OnSwitch func(id string)
	OnClose  func(id string)
}

func NewTabBar() *TabBar {
	return &TabBar{mouseX: -1, mouseY: -1}
}

// SetTabs replaces the displayed tabs and marks activeID as active.
func (tb *TabBar) SetTabs(items []TabItem, activeID string) {
	tb.Tabs = items
	tb.Active = 0
	for i, it := range items {
		if it.ID == activeID {
			tb.Active = i
			break
		}
	}
	tb.ensureActiveVisible(tb.w)
}

func (tb *TabBar) tabTitle(tab TabItem) string {
	if tab.Externally {
		return "!" + tab.Title
	}
	return tab.Title
}

func (tb *TabBar) tabWidthAt(index int) int {
	if index < 0 || index >= len(tb.Tabs) {
		return 0
	}
	// space + title + space + x + space
	w := 1 + runewidth.StringWidth(tb.tabTitle(tb.Tabs[index])) + 3
	if index < len(tb.Tabs)-1 {
		w++ // separator
	}
	return w
}

func (tb *TabBar) clampScroll() {
	if len(tb.Tabs) == 0 {
		tb.scrollOff = 0
		return
	}
	tb.scrollOff = max(0, min(tb.scrollOff, len(tb.Tabs)-1))
}

func (tb *TabBar) visibleLast(width int) int {
	remaining := width
	last := tb.scrollOff - 1
	for i := tb.scrollOff; i < len(tb.Tabs); i++ {
		w := tb.tabWidthAt(i)
		if w > remaining {
			break
		}
		remaining -= w
		last = i
	}
	return last
}

func (tb *TabBar) ensureActiveVisible(width int) {
	tb.clampScroll()
	if len(tb.Tabs) == 0 || width <= 0 {
		return
	}
	tb.Active = max(0, min(tb.Active, len(tb.Tabs)-1))
	if tb.Active < tb.scrollOff {
		tb.scrollOff = tb.Active
	}
	for tb.Active > tb.visibleLast(width) && tb.scrollOff < tb.Active {
		tb.scrollOff++
	}
	tb.clampScroll()
}

func (tb *TabBar) scrollBy(delta int) {
	tb.scrollOff += delta
	tb.clampScroll()
}

func (tb *TabBar) Render(screen tcell.Screen, x, y, width, height int) {
	tb.x, tb.y, tb.w = x, y, width
	tb.ensureActiveVisible(width)

	theme := themeOrDefault(tb.Theme)
	barStyle := tcell.StyleDefault.Background(theme.TabBarBg).Foreground(theme.TabBarFg)
	activeStyle := tcell.StyleDefault.Background(theme.TabBarActiveBg).Foreground(theme.TabBarActiveFg).Bold(true)

	fill(screen, x, y, width, 1, barStyle)

	col := x
	end := x + width
	for i := tb.scrollOff; i < len(tb.Tabs) && col < end; i++ {
		tab := tb.Tabs[i]
		style := barStyle
		if i == tb.Active {
			style = activeStyle
		} else if tb.mouseY == y && tb.mouseX >= col && tb.mouseX < col+tb.tabWidthAt(i) {
			style = style.Foreground(theme.TabBarActiveFg)
		}

		col = drawText(screen, col, y, end, " ", style)
		col = drawText(screen, col, y, end, tb.tabTitle(tab), style)
		col = drawText(screen, col, y, end, " ", style)
		if col < end {
			closeStyle := style
			if tb.mouseY == y && tb.mouseX == col {
				_, bg, _ := style.Decompose()
				closeStyle = tcell.StyleDefault.Background(bg).Foreground(tcell.ColorRed).Bold(true)
			}
			screen.SetContent(col, y, 'x', nil, closeStyle)
			col++
		}
		col = drawText(screen, col, y, end, " ", style)
		if i < len(tb.Tabs)-1 {
			col = drawText(screen, col, y, end, "│", barStyle)
		}
	}
}

func (tb *TabBar) HandleKey(ev *tcell.EventKey) bool {
	return false
}

func (tb *TabBar) HandleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	btn := ev.Buttons()

	if my != tb.y || mx < tb.x || mx >= tb.x+tb.w {
		tb.mouseX, tb.mouseY = -1, -1
		tb.mousePressed = false
		return false
	}
	tb.mouseX, tb.mouseY = mx, my

	switch btn {
	case tcell.WheelUp, tcell.WheelLeft:
		tb.scrollBy(-1)
		return true
	case tcell.WheelDown, tcell.WheelRight:
		tb.scrollBy(1)
		return true
	}

	if btn == tcell.Button1 {
		if !tb.mousePressed {
			tb.mousePressX, tb.mousePressY = mx, my
			tb.mousePressed = true
		}
		return true
	}

	// A click is a press and release on the same cell.
	if btn == tcell.ButtonNone && tb.mousePressed {
		tb.mousePressed = false
		if mx == tb.mousePressX && my == tb.mousePressY {
			tb.click(mx)
		}
	}
	return true
}

func (tb *TabBar) click(mx int) {
	col := tb.x
	for i := tb.scrollOff; i < len(tb.Tabs) && col < tb.x+tb.w; i++ {
		w := tb.tabWidthAt(i)
		if mx >= col && mx < col+w {
			closeX := col + 1 + runewidth.StringWidth(tb.tabTitle(tb.Tabs[i])) + 1
			id := tb.Tabs[i].ID
			if mx == closeX {
				if tb.OnClose != nil {
					tb.OnClose(id)
				}
			} else if tb.OnSwitch != nil {
				tb.OnSwitch(id)
			}
			return
		}
		col += w
	}
}
