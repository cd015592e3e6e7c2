package ui

import (
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"notepad/config"
)

// Welcome is drawn in the editor area when no tab is open.
type Welcome struct {
	Title   string
	Version string
	Recent  []string
	Theme   *config.ColorScheme

	OnNew    func()
	OnOpen   func()
	OnRecent func(path string)

	rows map[int]func() // screen row -> action, rebuilt on render
}

func NewWelcome(version string) *Welcome {
	return &Welcome{Title: "Notepad", Version: version}
}

func (w *Welcome) Render(screen tcell.Screen, x, y, width, height int) {
	theme := themeOrDefault(w.Theme)
	bg := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	dim := bg.Foreground(theme.LineNumber)
	title := bg.Bold(true)
	link := bg.Foreground(theme.LineNumberActive).Underline(true)
	fill(screen, x, y, width, height, bg)

	type line struct {
		text   string
		style  tcell.Style
		action func()
	}
	lines := []line{
		{text: w.Title, style: title},
		{text: "v" + w.Version, style: dim},
		{},
		{text: "New file        Ctrl+N", style: link, action: w.OnNew},
		{text: "Open file       Ctrl+O", style: link, action: w.OnOpen},
	}
	if len(w.Recent) > 0 {
		lines = append(lines, line{}, line{text: "Recent files    Ctrl+R", style: dim})
		for i, p := range w.Recent {
			if i >= 5 {
				break
			}
			path := p
			lines = append(lines, line{
				text:  filepath.Base(p) + "  " + truncateLeft(filepath.Dir(p), max(width/2, 10)),
				style: link,
				action: func() {
					if w.OnRecent != nil {
						w.OnRecent(path)
					}
				},
			})
		}
	}

	w.rows = make(map[int]func())
	top := y + max((height-len(lines))/2, 0)
	for i, l := range lines {
		row := top + i
		if row >= y+height {
			break
		}
		tw := runewidth.StringWidth(l.text)
		drawText(screen, x+max((width-tw)/2, 0), row, x+width, l.text, l.style)
		if l.action != nil {
			w.rows[row] = l.action
		}
	}
}

func (w *Welcome) HandleKey(ev *tcell.EventKey) bool { return false }

func (w *Welcome) HandleMouse(ev *tcell.EventMouse) bool {
	if ev.Buttons() != tcell.Button1 {
		return false
	}
	_, my := ev.Position()
	if action, ok := w.rows[my]; ok && action != nil {
		action()
		return true
	}
	return false
}
