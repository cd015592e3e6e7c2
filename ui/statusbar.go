package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"notepad/config"
)

// StatusBar shows the current file on the left and the cursor summary on
// the right. A non-empty Message temporarily replaces the left side.
type StatusBar struct {
	Path     string
	Modified bool
	Line     int // 1-based
	Col      int // 0-based rune column
	Chars    int
	Mode     string
	Empty    bool // no tab open

	Message string
	IsError bool

	Theme *config.ColorScheme
}

func NewStatusBar() *StatusBar {
	return &StatusBar{Empty: true}
}

// Left is the file label: the path or "Untitled", with a modified suffix.
func (s *StatusBar) Left() string {
	if s.Empty {
		return "No file"
	}
	name := s.Path
	if name == "" {
		name = "Untitled"
	}
	if s.Modified {
		name += " (Modified)"
	}
	return name
}

// Right is the cursor summary, empty when no tab is open.
func (s *StatusBar) Right() string {
	if s.Empty {
		return ""
	}
	return fmt.Sprintf("Line %d, Col %d | Chars: %d | Mode: %s", s.Line, s.Col, s.Chars, s.Mode)
}

func (s *StatusBar) SetMessage(msg string, isError bool) {
	s.Message = msg
	s.IsError = isError
}

func (s *StatusBar) ClearMessage() {
	s.Message = ""
	s.IsError = false
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width, height int) {
	theme := themeOrDefault(s.Theme)
	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	fill(screen, x, y, width, 1, style)

	right := s.Right()
	rightW := runewidth.StringWidth(right)
	leftMax := x + width - rightW - 2
	if rightW == 0 {
		leftMax = x + width
	}

	left, leftStyle := s.Left(), style
	if s.Message != "" {
		left = s.Message
		if s.IsError {
			leftStyle = style.Foreground(theme.ErrorFg).Bold(true)
		}
	}
	drawText(screen, x+1, y, leftMax, truncateLeft(left, max(leftMax-x-1, 0)), leftStyle)

	if rightW > 0 && rightW+1 < width {
		drawText(screen, x+width-rightW-1, y, x+width, right, style)
	}
}

func (s *StatusBar) HandleKey(ev *tcell.EventKey) bool     { return false }
func (s *StatusBar) HandleMouse(ev *tcell.EventMouse) bool { return false }
