package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"notepad/config"
)

type Command struct {
	Name     string
	Shortcut string
	Action   func()
}

type scoredCommand struct {
	Command
	MatchIdxs []int
}

// commandSource lets fuzzy match against command names.
type commandSource []Command

func (s commandSource) String(i int) string { return s[i].Name }
func (s commandSource) Len() int            { return len(s) }

// CommandPalette runs any shell command by name.
type CommandPalette struct {
	Input     string
	CursorPos int
	Commands  []Command
	Filtered  []scoredCommand
	Selected  int
	OnClose   func()
	Theme     *config.ColorScheme
	scrollOff int
}

func NewCommandPalette(commands []Command, theme *config.ColorScheme) *CommandPalette {
	cp := &CommandPalette{Commands: commands, Theme: theme}
	cp.updateFilter()
	return cp
}

func (cp *CommandPalette) updateFilter() {
	cp.Selected = 0
	cp.scrollOff = 0
	cp.Filtered = cp.Filtered[:0]
	if cp.Input == "" {
		for _, c := range cp.Commands {
			cp.Filtered = append(cp.Filtered, scoredCommand{Command: c})
		}
		return
	}
	// Matches come back best first.
	for _, m := range fuzzy.FindFrom(cp.Input, commandSource(cp.Commands)) {
		cp.Filtered = append(cp.Filtered, scoredCommand{Command: cp.Commands[m.Index], MatchIdxs: m.MatchedIndexes})
	}
}

func (cp *CommandPalette) Render(screen tcell.Screen, x, y, width, height int) {
	theme := themeOrDefault(cp.Theme)

	maxVisible := max(min(15, height-6), 3)
	dialogW := min(max(width*60/100, 40), width-4)
	if dialogW < 10 {
		return
	}
	listCount := min(len(cp.Filtered), maxVisible)
	dialogH := max(listCount+4, 5)
	dialogX := x + (width-dialogW)/2
	dialogY := y + 2

	bgStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.DialogFg)
	titleStyle := bgStyle.Bold(true)
	inputStyle := tcell.StyleDefault.Background(theme.DialogInputBg).Foreground(theme.Foreground)
	selectedStyle := tcell.StyleDefault.Background(theme.Selection).Foreground(theme.Foreground)
	countStyle := bgStyle.Foreground(theme.LineNumber)

	drawBox(screen, dialogX, dialogY, dialogW, dialogH, bgStyle, "Command Palette", titleStyle)
	drawText(screen, dialogX+2, dialogY+1, dialogX+4, "> ", inputStyle)
	drawInput(screen, dialogX+4, dialogY+1, dialogW-6, cp.Input, cp.CursorPos, inputStyle)

	sepY := dialogY + 2
	for dx := 1; dx < dialogW-1; dx++ {
		screen.SetContent(dialogX+dx, sepY, '─', nil, bgStyle)
	}
	screen.SetContent(dialogX, sepY, '├', nil, bgStyle)
	screen.SetContent(dialogX+dialogW-1, sepY, '┤', nil, bgStyle)
	countStr := fmt.Sprintf(" %d commands ", len(cp.Filtered))
	if countX := dialogX + dialogW - 1 - len(countStr); countX > dialogX+1 {
		drawText(screen, countX, sepY, dialogX+dialogW-1, countStr, countStyle)
	}

	if cp.Selected < cp.scrollOff {
		cp.scrollOff = cp.Selected
	}
	if cp.Selected >= cp.scrollOff+maxVisible {
		cp.scrollOff = cp.Selected - maxVisible + 1
	}

	if len(cp.Filtered) == 0 {
		drawText(screen, dialogX+2, sepY+1, dialogX+dialogW-2, "No matching commands", countStyle)
		return
	}
	for i := 0; i < maxVisible && i+cp.scrollOff < len(cp.Filtered); i++ {
		idx := i + cp.scrollOff
		c := cp.Filtered[idx]
		base := bgStyle
		if idx == cp.Selected {
			base = selectedStyle
		}
		match := base.Foreground(tcell.ColorYellow).Bold(true)
		rowY := sepY + 1 + i
		fill(screen, dialogX+1, rowY, dialogW-2, 1, base)

		right := dialogX + dialogW - 2
		if c.Shortcut != "" {
			right -= runewidth.StringWidth(c.Shortcut) + 1
			drawText(screen, right+1, rowY, dialogX+dialogW-2, c.Shortcut, base.Foreground(theme.LineNumber))
		}
		matched := make(map[int]bool, len(c.MatchIdxs))
		for _, mi := range c.MatchIdxs {
			matched[mi] = true
		}
		col := dialogX + 2
		for bi, ch := range c.Name {
			if col >= right {
				break
			}
			st := base
			if matched[bi] {
				st = match
			}
			screen.SetContent(col, rowY, ch, nil, st)
			col += runewidth.RuneWidth(ch)
		}
	}
}

func (cp *CommandPalette) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		if cp.OnClose != nil {
			cp.OnClose()
		}
		return true
	case tcell.KeyEnter:
		if cp.Selected >= 0 && cp.Selected < len(cp.Filtered) {
			action := cp.Filtered[cp.Selected].Action
			if cp.OnClose != nil {
				cp.OnClose()
			}
			if action != nil {
				action()
			}
		}
		return true
	case tcell.KeyUp:
		if cp.Selected > 0 {
			cp.Selected--
		}
		return true
	case tcell.KeyDown:
		if cp.Selected < len(cp.Filtered)-1 {
			cp.Selected++
		}
		return true
	}
	input, cursor, ok := editLine(ev, cp.Input, cp.CursorPos)
	if ok && input != cp.Input {
		cp.Input, cp.CursorPos = input, cursor
		cp.updateFilter()
	} else {
		cp.CursorPos = cursor
	}
	return true // absorb all keys while open
}

func (cp *CommandPalette) HandleMouse(ev *tcell.EventMouse) bool {
	return true // absorb mouse events
}
