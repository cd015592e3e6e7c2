package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"notepad/config"
)

type SettingKind int

const (
	SettingChoice SettingKind = iota // cycles through Options
	SettingNumber                    // stepped within [Min, Max]
	SettingText                      // edited through a prompt
	SettingAction                    // runs Action
)

type SettingItem struct {
	Label   string
	Kind    SettingKind
	Value   string
	Options []string
	Min     int
	Max     int
	Action  func()
}

// SettingsPanel is the right-hand settings sidebar. It edits item values
// only; the owner maps them onto a configuration draft through OnChange.
type SettingsPanel struct {
	Items  []SettingItem
	Index  int
	scroll int
	Theme  *config.ColorScheme

	OnChange func(index int, value string)
	// OnEdit asks the owner to prompt for a new value of a text item.
	OnEdit  func(index int)
	OnClose func()

	x, y, w, h int
}

func NewSettingsPanel(items []SettingItem) *SettingsPanel {
	return &SettingsPanel{Items: items}
}

// SetValue updates an item and notifies OnChange.
func (p *SettingsPanel) SetValue(index int, value string) {
	if index < 0 || index >= len(p.Items) {
		return
	}
	p.Items[index].Value = value
	if p.OnChange != nil {
		p.OnChange(index, value)
	}
}

// step changes the value of a choice or number item by delta.
func (p *SettingsPanel) step(delta int) {
	it := &p.Items[p.Index]
	switch it.Kind {
	case SettingChoice:
		if len(it.Options) == 0 {
			return
		}
		cur := 0
		for i, o := range it.Options {
			if o == it.Value {
				cur = i
				break
			}
		}
		n := len(it.Options)
		p.SetValue(p.Index, it.Options[((cur+delta)%n+n)%n])
	case SettingNumber:
		v, err := strconv.Atoi(it.Value)
		if err != nil {
			v = it.Min
		}
		v = min(max(v+delta, it.Min), it.Max)
		p.SetValue(p.Index, strconv.Itoa(v))
	}
}

func (p *SettingsPanel) activate() {
	it := p.Items[p.Index]
	switch it.Kind {
	case SettingChoice, SettingNumber:
		p.step(1)
	case SettingText:
		if p.OnEdit != nil {
			p.OnEdit(p.Index)
		}
	case SettingAction:
		if it.Action != nil {
			it.Action()
		}
	}
}

func (p *SettingsPanel) displayValue(it SettingItem) string {
	switch it.Kind {
	case SettingAction:
		return ""
	case SettingChoice, SettingNumber:
		return "< " + it.Value + " >"
	}
	return it.Value
}

func (p *SettingsPanel) Render(screen tcell.Screen, x, y, width, height int) {
	theme := themeOrDefault(p.Theme)
	bg := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.DialogFg)
	titleStyle := bg.Bold(true)
	selected := tcell.StyleDefault.Background(theme.Selection).Foreground(theme.Foreground).Bold(true)
	valueStyle := bg.Foreground(theme.LineNumberActive)
	footerStyle := bg.Foreground(theme.LineNumber)

	panelW := min(max(width/3, 38), 56, width-1)
	if panelW < 10 || height < 5 {
		return
	}
	panelX := x + width - panelW
	p.x, p.y, p.w, p.h = panelX, y, panelW, height
	drawBox(screen, panelX, y, panelW, height, bg, "Settings", titleStyle)

	visible := height - 4
	if p.Index < p.scroll {
		p.scroll = p.Index
	}
	if p.Index >= p.scroll+visible {
		p.scroll = p.Index - visible + 1
	}

	inner := panelW - 4
	for i := 0; i < visible && i+p.scroll < len(p.Items); i++ {
		idx := i + p.scroll
		it := p.Items[idx]
		row := y + 1 + i
		style, vstyle := bg, valueStyle
		if idx == p.Index {
			style, vstyle = selected, selected
			fill(screen, panelX+1, row, panelW-2, 1, selected)
		}
		label := it.Label
		if it.Kind == SettingAction {
			label = "[ " + label + " ]"
		}
		val := p.displayValue(it)
		labelW := runewidth.StringWidth(label)
		valW := inner - labelW - 1
		drawText(screen, panelX+2, row, panelX+2+inner, label, style)
		if val != "" && valW > 3 {
			val = truncateLeft(val, valW)
			drawText(screen, panelX+2+inner-runewidth.StringWidth(val), row, panelX+2+inner, val, vstyle)
		}
	}

	footer := "↑↓ move  ←→ change  Enter select  Esc back"
	drawText(screen, panelX+2, y+height-2, panelX+panelW-2, truncate(footer, inner), footerStyle)
}

func (p *SettingsPanel) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		if p.OnClose != nil {
			p.OnClose()
		}
	case tcell.KeyUp:
		if p.Index > 0 {
			p.Index--
		}
	case tcell.KeyDown:
		if p.Index < len(p.Items)-1 {
			p.Index++
		}
	case tcell.KeyRight:
		p.step(1)
	case tcell.KeyLeft:
		p.step(-1)
	case tcell.KeyEnter:
		p.activate()
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			p.activate()
		}
	}
	return true
}

// HandleMouse selects and activates a clicked row.
func (p *SettingsPanel) HandleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	if mx < p.x || mx >= p.x+p.w || my < p.y || my >= p.y+p.h {
		return true
	}
	idx := my - p.y - 1 + p.scroll
	if idx < p.scroll || idx >= len(p.Items) || my >= p.y+p.h-3 {
		return true
	}
	switch ev.Buttons() {
	case tcell.Button1:
		if p.Index == idx {
			p.activate()
		}
		p.Index = idx
	case tcell.WheelUp:
		p.Index = max(p.Index-1, 0)
	case tcell.WheelDown:
		p.Index = min(p.Index+1, len(p.Items)-1)
	}
	return true
}
