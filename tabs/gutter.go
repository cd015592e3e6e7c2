package tabs

import "fmt"

// GutterWidth is the fixed gutter width in cells: a five digit number
// field plus the separator column.
const GutterWidth = 6

// GutterRow is one visible row of the gutter.
type GutterRow struct {
	// Line is the 0-based source line shown on this row.
	Line   int
	Label  string
	Active bool
}

// Gutter is the rendered side area for the visible rows.
type Gutter struct {
	Width       int
	ShowNumbers bool
	// ShowGrid draws a rule under each line and a vertical separator.
	ShowGrid bool
	Rows     []GutterRow
}

func (g Gutter) Visible() bool { return g.Width > 0 }

func (v *EditorView) gutterWidth() int {
	if v.showNumbers || v.cfg.ShowGrid {
		return GutterWidth
	}
	return 0
}

// RenderLineNumbers rebuilds the gutter for the rows visible at the current
// scroll offset.
func (v *EditorView) RenderLineNumbers() {
	g := Gutter{
		Width:       v.gutterWidth(),
		ShowNumbers: v.showNumbers,
		ShowGrid:    v.cfg.ShowGrid,
	}
	if g.Width == 0 {
		v.gutter = g
		return
	}
	rows := v.Height
	if remaining := v.Buffer.LineCount() - v.ScrollY; rows > remaining {
		rows = remaining
	}
	for i := 0; i < rows; i++ {
		line := v.ScrollY + i
		row := GutterRow{Line: line, Active: line == v.Buffer.Cursor.Line}
		if g.ShowNumbers {
			row.Label = fmt.Sprintf("%*d", GutterWidth-1, line+1)
		}
		g.Rows = append(g.Rows, row)
	}
	v.gutter = g
}

// Gutter returns the gutter computed by the last RenderLineNumbers.
func (v *EditorView) Gutter() Gutter { return v.gutter }
