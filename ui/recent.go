package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/sahilm/fuzzy"

	"notepad/config"
)

type recentEntry struct {
	Path      string
	MatchIdxs []int // byte offsets of matched characters
}

// RecentPicker lists recently opened files, filtered by a fuzzy query.
type RecentPicker struct {
	Input     string
	CursorPos int
	Files     []string
	Filtered  []recentEntry
	Selected  int
	scrollOff int

	Theme *config.ColorScheme

	OnSelect func(path string)
	OnClose  func()
}

func NewRecentPicker(files []string, theme *config.ColorScheme) *RecentPicker {
	rp := &RecentPicker{Files: files, Theme: theme}
	rp.updateFilter()
	return rp
}

func (rp *RecentPicker) updateFilter() {
	rp.Selected = 0
	rp.scrollOff = 0
	rp.Filtered = rp.Filtered[:0]
	if rp.Input == "" {
		for _, f := range rp.Files {
			rp.Filtered = append(rp.Filtered, recentEntry{Path: f})
		}
		return
	}
	for _, m := range fuzzy.Find(rp.Input, rp.Files) {
		rp.Filtered = append(rp.Filtered, recentEntry{Path: m.Str, MatchIdxs: m.MatchedIndexes})
	}
}

func (rp *RecentPicker) Render(screen tcell.Screen, x, y, width, height int) {
	theme := themeOrDefault(rp.Theme)

	maxVisible := min(10, height-6)
	if maxVisible < 1 {
		maxVisible = 1
	}
	dialogW := min(max(width*60/100, 40), width-4)
	if dialogW < 10 {
		return
	}
	listCount := min(len(rp.Filtered), maxVisible)
	dialogH := max(listCount+4, 5)
	dialogX := x + (width-dialogW)/2
	dialogY := y + 2

	bgStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.DialogFg)
	titleStyle := bgStyle.Bold(true)
	inputStyle := tcell.StyleDefault.Background(theme.DialogInputBg).Foreground(theme.Foreground)
	selectedStyle := tcell.StyleDefault.Background(theme.Selection).Foreground(theme.Foreground)
	countStyle := bgStyle.Foreground(theme.LineNumber)

	drawBox(screen, dialogX, dialogY, dialogW, dialogH, bgStyle, "Recent Files", titleStyle)
	drawInput(screen, dialogX+2, dialogY+1, dialogW-4, rp.Input, rp.CursorPos, inputStyle)

	sepY := dialogY + 2
	for dx := 1; dx < dialogW-1; dx++ {
		screen.SetContent(dialogX+dx, sepY, '─', nil, bgStyle)
	}
	screen.SetContent(dialogX, sepY, '├', nil, bgStyle)
	screen.SetContent(dialogX+dialogW-1, sepY, '┤', nil, bgStyle)
	countStr := fmt.Sprintf(" %d files ", len(rp.Filtered))
	if countX := dialogX + dialogW - 1 - len(countStr); countX > dialogX+1 {
		drawText(screen, countX, sepY, dialogX+dialogW-1, countStr, countStyle)
	}

	if rp.Selected < rp.scrollOff {
		rp.scrollOff = rp.Selected
	}
	if rp.Selected >= rp.scrollOff+maxVisible {
		rp.scrollOff = rp.Selected - maxVisible + 1
	}

	if len(rp.Filtered) == 0 {
		drawText(screen, dialogX+2, sepY+1, dialogX+dialogW-2, "No recent files", countStyle)
		return
	}
	for i := 0; i < maxVisible && i+rp.scrollOff < len(rp.Filtered); i++ {
		idx := i + rp.scrollOff
		entry := rp.Filtered[idx]
		base := bgStyle
		if idx == rp.Selected {
			base = selectedStyle
		}
		match := base.Foreground(tcell.ColorYellow).Bold(true)

		rowY := sepY + 1 + i
		fill(screen, dialogX+1, rowY, dialogW-2, 1, base)

		matched := make(map[int]bool, len(entry.MatchIdxs))
		for _, mi := range entry.MatchIdxs {
			matched[mi] = true
		}
		col := dialogX + 2
		for bi, ch := range entry.Path {
			if col >= dialogX+dialogW-2 {
				break
			}
			st := base
			if matched[bi] {
				st = match
			}
			screen.SetContent(col, rowY, ch, nil, st)
			col++
		}
	}
}

func (rp *RecentPicker) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		if rp.OnClose != nil {
			rp.OnClose()
		}
		return true
	case tcell.KeyEnter:
		if rp.Selected >= 0 && rp.Selected < len(rp.Filtered) && rp.OnSelect != nil {
			rp.OnSelect(rp.Filtered[rp.Selected].Path)
		}
		return true
	case tcell.KeyUp:
		if rp.Selected > 0 {
			rp.Selected--
		}
		return true
	case tcell.KeyDown:
		if rp.Selected < len(rp.Filtered)-1 {
			rp.Selected++
		}
		return true
	}
	input, cursor, ok := editLine(ev, rp.Input, rp.CursorPos)
	if ok && input != rp.Input {
		rp.Input, rp.CursorPos = input, cursor
		rp.updateFilter()
	} else {
		rp.CursorPos = cursor
	}
	return true // absorb all keys while open
}

func (rp *RecentPicker) HandleMouse(ev *tcell.EventMouse) bool {
	return true
}

// Selection returns the highlighted path, or "".
func (rp *RecentPicker) Selection() string {
	if rp.Selected < 0 || rp.Selected >= len(rp.Filtered) {
		return ""
	}
	return rp.Filtered[rp.Selected].Path
}
