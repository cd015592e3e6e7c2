package buffer

type Cursor struct {
	Line, Col int
}

func (c Cursor) Before(other Cursor) bool {
	if c.Line != other.Line {
		return c.Line < other.Line
	}
	return c.Col < other.Col
}

func (c Cursor) Equal(other Cursor) bool {
	return c.Line == other.Line && c.Col == other.Col
}

type Selection struct {
	Start, End Cursor
}

func NewSelection(a, b Cursor) Selection {
	if a.Before(b) {
		return Selection{Start: a, End: b}
	}
	return Selection{Start: b, End: a}
}

func (s Selection) Contains(c Cursor) bool {
	if c.Before(s.Start) || s.End.Before(c) {
		return false
	}
	return true
}

func (s Selection) Empty() bool {
	return s.Start.Equal(s.End)
}

// Move describes a cursor motion.
type Move int

const (
	MoveLeft Move = iota
	MoveRight
	MoveUp
	MoveDown
	MoveHome
	MoveEnd
	MoveDocStart
	MoveDocEnd
)

// MoveCursor applies m. With extend set the selection grows from where it
// was started, otherwise any selection is dropped.
func (b *Buffer) MoveCursor(m Move, extend bool) {
	b.beginMove(extend)
	c := b.clamp(b.Cursor)
	switch m {
	case MoveLeft:
		if c.Col > 0 {
			c.Col--
		} else if c.Line > 0 {
			c.Line--
			c.Col = b.LineLen(c.Line)
		}
	case MoveRight:
		if c.Col < b.LineLen(c.Line) {
			c.Col++
		} else if c.Line < len(b.Lines)-1 {
			c.Line++
			c.Col = 0
		}
	case MoveUp:
		c.Line--
	case MoveDown:
		c.Line++
	case MoveHome:
		c.Col = 0
	case MoveEnd:
		c.Col = b.LineLen(c.Line)
	case MoveDocStart:
		c = Cursor{}
	case MoveDocEnd:
		c.Line = len(b.Lines) - 1
		c.Col = b.LineLen(c.Line)
	}
	b.Cursor = b.clamp(c)
	b.endMove(extend)
}

// MoveLines moves the cursor n lines down (negative for up), as paging does.
func (b *Buffer) MoveLines(n int, extend bool) {
	b.beginMove(extend)
	b.Cursor = b.clamp(Cursor{Line: b.Cursor.Line + n, Col: b.Cursor.Col})
	b.endMove(extend)
}

// SetCursor places the cursor, as a mouse click does.
func (b *Buffer) SetCursor(c Cursor) {
	b.ClearSelection()
	b.Cursor = b.clamp(c)
}

func (b *Buffer) beginMove(extend bool) {
	if !extend {
		b.ClearSelection()
		return
	}
	if b.anchor == nil {
		a := b.Cursor
		b.anchor = &a
	}
}

func (b *Buffer) endMove(extend bool) {
	if !extend || b.anchor == nil {
		return
	}
	sel := NewSelection(*b.anchor, b.Cursor)
	b.Selection = &sel
}

// SelectRange selects [start, end) and leaves the cursor at start, so a
// forward search continues after the selection.
func (b *Buffer) SelectRange(start, end Cursor) {
	start, end = b.clamp(start), b.clamp(end)
	sel := NewSelection(start, end)
	b.Selection = &sel
	b.anchor = &end
	b.Cursor = start
}
