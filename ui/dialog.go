package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"notepad/config"
)

type DialogType int

const (
	DialogNone DialogType = iota
	DialogConfirm
	DialogInput
	DialogMessage
	DialogError
)

// Dialog is a modal box centered on the screen: a yes/no question, a text
// prompt, or a message to acknowledge.
type Dialog struct {
	Type    DialogType
	Title   string
	Message string
	Input   string
	Cursor  int

	Theme *config.ColorScheme

	OnAnswer func(yes bool)     // confirm
	OnSubmit func(value string) // input
	OnCancel func()             // input, message
}

func NewConfirmDialog(title, message string, onAnswer func(yes bool)) *Dialog {
	return &Dialog{Type: DialogConfirm, Title: title, Message: message, OnAnswer: onAnswer}
}

// NewInputDialog opens a prompt prefilled with value.
func NewInputDialog(title, prompt, value string, onSubmit func(string)) *Dialog {
	return &Dialog{
		Type:     DialogInput,
		Title:    title,
		Message:  prompt,
		Input:    value,
		Cursor:   len([]rune(value)),
		OnSubmit: onSubmit,
	}
}

func NewMessageDialog(title, message string) *Dialog {
	return &Dialog{Type: DialogMessage, Title: title, Message: message}
}

func NewErrorDialog(title, message string) *Dialog {
	return &Dialog{Type: DialogError, Title: title, Message: message}
}

func (d *Dialog) footer() string {
	switch d.Type {
	case DialogConfirm:
		return "[Y]es  [N]o"
	case DialogInput:
		return "Enter=OK  Esc=Cancel"
	default:
		return "Enter=OK"
	}
}

// wrap breaks text into lines no wider than width cells. Words longer
// than a line are split.
func wrap(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		line, lineW := "", 0
		for _, word := range strings.Fields(para) {
			for runewidth.StringWidth(word) > width {
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					break
				}
				if lineW > 0 {
					out = append(out, line)
					line, lineW = "", 0
				}
				out = append(out, head)
				word = word[len(head):]
			}
			ww := runewidth.StringWidth(word)
			switch {
			case ww == 0:
			case lineW == 0:
				line, lineW = word, ww
			case lineW+1+ww <= width:
				line += " " + word
				lineW += 1 + ww
			default:
				out = append(out, line)
				line, lineW = word, ww
			}
		}
		out = append(out, line)
	}
	return out
}

func (d *Dialog) Render(screen tcell.Screen, x, y, width, height int) {
	theme := themeOrDefault(d.Theme)
	bg := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.DialogFg)
	titleStyle := bg.Bold(true)
	msgStyle := bg
	if d.Type == DialogError {
		titleStyle = titleStyle.Foreground(theme.ErrorFg)
	}
	inputStyle := tcell.StyleDefault.Background(theme.DialogInputBg).Foreground(theme.Foreground)
	footerStyle := bg.Foreground(theme.LineNumber)

	dialogW := min(max(width/2, 40), width-2)
	if dialogW < 10 {
		return
	}
	inner := dialogW - 4
	lines := wrap(d.Message, inner)
	dialogH := len(lines) + 4
	if d.Type == DialogInput {
		dialogH += 2
	}
	dialogH = min(dialogH, height)
	dialogX := x + (width-dialogW)/2
	dialogY := y + max((height-dialogH)/2, 0)

	drawBox(screen, dialogX, dialogY, dialogW, dialogH, bg, d.Title, titleStyle)
	row := dialogY + 1
	for _, l := range lines {
		if row >= dialogY+dialogH-2 {
			break
		}
		drawText(screen, dialogX+2, row, dialogX+dialogW-2, l, msgStyle)
		row++
	}
	if d.Type == DialogInput {
		row++
		drawInput(screen, dialogX+2, row, inner, d.Input, d.Cursor, inputStyle)
	}
	f := d.footer()
	drawText(screen, dialogX+dialogW-2-runewidth.StringWidth(f), dialogY+dialogH-2, dialogX+dialogW-2, f, footerStyle)
}

func (d *Dialog) HandleKey(ev *tcell.EventKey) bool {
	switch d.Type {
	case DialogConfirm:
		return d.handleConfirmKey(ev)
	case DialogInput:
		return d.handleInputKey(ev)
	}
	switch ev.Key() {
	case tcell.KeyEnter, tcell.KeyEscape:
		if d.OnCancel != nil {
			d.OnCancel()
		}
	}
	return true
}

func (d *Dialog) handleConfirmKey(ev *tcell.EventKey) bool {
	answer := func(yes bool) {
		if d.OnAnswer != nil {
			d.OnAnswer(yes)
		}
	}
	switch {
	case ev.Key() == tcell.KeyEnter, ev.Rune() == 'y', ev.Rune() == 'Y':
		answer(true)
	case ev.Key() == tcell.KeyEscape, ev.Rune() == 'n', ev.Rune() == 'N':
		answer(false)
	}
	return true
}

func (d *Dialog) handleInputKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		if d.OnCancel != nil {
			d.OnCancel()
		}
		return true
	case tcell.KeyEnter:
		if d.OnSubmit != nil {
			d.OnSubmit(d.Input)
		}
		return true
	}
	d.Input, d.Cursor, _ = editLine(ev, d.Input, d.Cursor)
	return true
}

// HandleMouse swallows clicks while the dialog is up.
func (d *Dialog) HandleMouse(ev *tcell.EventMouse) bool { return true }
