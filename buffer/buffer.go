package buffer

import (
	"os"
	"strings"
	"unicode/utf8"
)

// Buffer stores the text of one document as lines. Columns are rune
// indexes into a line.
type Buffer struct {
	Lines     []string
	Cursor    Cursor
	Selection *Selection
	Undo      *UndoStack

	// anchor is where a keyboard selection started.
	anchor *Cursor
}

func NewBuffer(content string) *Buffer {
	b := &Buffer{Undo: NewUndoStack()}
	b.setLines(content)
	return b
}

// NewBufferFromFile reads path into a new buffer. CRLF line endings are
// normalized to LF.
func NewBufferFromFile(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewBuffer(string(data)), nil
}

func (b *Buffer) setLines(content string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	b.Lines = strings.Split(content, "\n")
}

// Text returns the full content joined with LF.
func (b *Buffer) Text() string {
	return strings.Join(b.Lines, "\n")
}

// SetText replaces the content, keeping the cursor where possible. Undo
// history is discarded.
func (b *Buffer) SetText(content string) {
	b.setLines(content)
	b.Selection = nil
	b.anchor = nil
	b.Undo = NewUndoStack()
	b.clampCursor()
}

func (b *Buffer) LineCount() int { return len(b.Lines) }

// LineLen returns the rune length of line i.
func (b *Buffer) LineLen(i int) int {
	if i < 0 || i >= len(b.Lines) {
		return 0
	}
	return utf8.RuneCountInString(b.Lines[i])
}

// CharCount returns the number of runes in the buffer, newlines included.
func (b *Buffer) CharCount() int {
	n := len(b.Lines) - 1
	for _, l := range b.Lines {
		n += utf8.RuneCountInString(l)
	}
	return n
}

// Offset converts a position into a rune offset from the start of the text.
func (b *Buffer) Offset(c Cursor) int {
	if c.Line >= len(b.Lines) {
		c.Line = len(b.Lines) - 1
		c.Col = b.LineLen(c.Line)
	}
	off := 0
	for i := 0; i < c.Line; i++ {
		off += utf8.RuneCountInString(b.Lines[i]) + 1
	}
	return off + min(c.Col, b.LineLen(c.Line))
}

// CursorAt converts a rune offset back into a position.
func (b *Buffer) CursorAt(offset int) Cursor {
	if offset < 0 {
		offset = 0
	}
	for i, l := range b.Lines {
		n := utf8.RuneCountInString(l)
		if offset <= n {
			return Cursor{Line: i, Col: offset}
		}
		offset -= n + 1
	}
	last := len(b.Lines) - 1
	return Cursor{Line: last, Col: b.LineLen(last)}
}

// LineStarts returns the rune offset at which each line begins.
func (b *Buffer) LineStarts() []int {
	starts := make([]int, len(b.Lines))
	off := 0
	for i, l := range b.Lines {
		starts[i] = off
		off += utf8.RuneCountInString(l) + 1
	}
	return starts
}

func (b *Buffer) clampCursor() {
	b.Cursor = b.clamp(b.Cursor)
}

func (b *Buffer) clamp(c Cursor) Cursor {
	if len(b.Lines) == 0 {
		b.Lines = []string{""}
	}
	if c.Line < 0 {
		c.Line = 0
	}
	if c.Line >= len(b.Lines) {
		c.Line = len(b.Lines) - 1
	}
	if c.Col < 0 {
		c.Col = 0
	}
	if n := b.LineLen(c.Line); c.Col > n {
		c.Col = n
	}
	return c
}

func (b *Buffer) InsertChar(ch rune) {
	b.InsertText(string(ch))
}

func (b *Buffer) InsertNewline() {
	b.InsertText("\n")
}

// InsertText inserts text at the cursor, replacing the selection if any.
func (b *Buffer) InsertText(text string) {
	b.deleteSelectionIfAny()
	b.clampCursor()
	if text == "" {
		return
	}
	before := b.Cursor
	b.insertTextAt(before, text)
	b.Cursor = posAfterInsert(before, text)
	b.Undo.Push(Operation{Type: OpInsert, Pos: before, Text: text, Before: before})
}

func (b *Buffer) Backspace() {
	if b.deleteSelectionIfAny() {
		return
	}
	b.clampCursor()
	before := b.Cursor
	var pos Cursor
	switch {
	case b.Cursor.Col > 0:
		pos = Cursor{Line: b.Cursor.Line, Col: b.Cursor.Col - 1}
	case b.Cursor.Line > 0:
		pos = Cursor{Line: b.Cursor.Line - 1, Col: b.LineLen(b.Cursor.Line - 1)}
	default:
		return
	}
	deleted := b.TextInRange(pos, before)
	b.removeText(pos, deleted)
	b.Cursor = pos
	b.Undo.Push(Operation{Type: OpDelete, Pos: pos, Text: deleted, Before: before})
}

func (b *Buffer) Delete() {
	if b.deleteSelectionIfAny() {
		return
	}
	b.clampCursor()
	var end Cursor
	switch {
	case b.Cursor.Col < b.LineLen(b.Cursor.Line):
		end = Cursor{Line: b.Cursor.Line, Col: b.Cursor.Col + 1}
	case b.Cursor.Line < len(b.Lines)-1:
		end = Cursor{Line: b.Cursor.Line + 1}
	default:
		return
	}
	deleted := b.TextInRange(b.Cursor, end)
	b.removeText(b.Cursor, deleted)
	b.Undo.Push(Operation{Type: OpDelete, Pos: b.Cursor, Text: deleted, Before: b.Cursor})
}

func (b *Buffer) deleteSelectionIfAny() bool {
	if b.Selection == nil || b.Selection.Empty() {
		b.ClearSelection()
		return false
	}
	b.DeleteSelection()
	return true
}

func (b *Buffer) DeleteSelection() {
	if b.Selection == nil {
		return
	}
	sel := NewSelection(b.clamp(b.Selection.Start), b.clamp(b.Selection.End))
	text := b.TextInRange(sel.Start, sel.End)
	before := b.Cursor
	b.removeText(sel.Start, text)
	b.Cursor = sel.Start
	b.ClearSelection()
	b.clampCursor()
	if text != "" {
		b.Undo.Push(Operation{Type: OpDelete, Pos: sel.Start, Text: text, Before: before})
	}
}

func (b *Buffer) SelectedText() string {
	if b.Selection == nil {
		return ""
	}
	return b.TextInRange(b.Selection.Start, b.Selection.End)
}

func (b *Buffer) SelectAll() {
	last := len(b.Lines) - 1
	sel := NewSelection(Cursor{}, Cursor{Line: last, Col: b.LineLen(last)})
	b.Selection = &sel
	start := sel.Start
	b.anchor = &start
	b.Cursor = sel.End
}

func (b *Buffer) ClearSelection() {
	b.Selection = nil
	b.anchor = nil
}

// WrapSelection surrounds the selection with prefix and suffix. Without a
// selection both are inserted and the cursor lands between them.
func (b *Buffer) WrapSelection(prefix, suffix string) {
	if b.Selection != nil && !b.Selection.Empty() {
		text := b.SelectedText()
		b.InsertText(prefix + text + suffix)
		return
	}
	b.InsertText(prefix + suffix)
	if suffix != "" {
		b.Cursor = b.CursorAt(b.Offset(b.Cursor) - utf8.RuneCountInString(suffix))
	}
}

// TextInRange returns the text between two positions, in either order.
func (b *Buffer) TextInRange(start, end Cursor) string {
	start, end = b.clamp(start), b.clamp(end)
	if end.Before(start) {
		start, end = end, start
	}
	if start.Line == end.Line {
		r := []rune(b.Lines[start.Line])
		return string(r[start.Col:end.Col])
	}
	var sb strings.Builder
	sb.WriteString(string([]rune(b.Lines[start.Line])[start.Col:]))
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(b.Lines[i])
	}
	sb.WriteByte('\n')
	sb.WriteString(string([]rune(b.Lines[end.Line])[:end.Col]))
	return sb.String()
}

func (b *Buffer) ApplyUndo() {
	op, ok := b.Undo.PopUndo()
	if !ok {
		return
	}
	// PopUndo moved the group onto the redo stack, most recent first.
	ops := []Operation{op}
	if op.Group != 0 {
		ops = trailingGroup(b.Undo.redos, op.Group)
	}
	for _, gop := range ops {
		b.applyInverse(gop)
	}
	b.Cursor = ops[len(ops)-1].Before
	b.ClearSelection()
}

func (b *Buffer) ApplyRedo() {
	op, ok := b.Undo.PopRedo()
	if !ok {
		return
	}
	// PopRedo moved the group back onto the undo stack in chronological order.
	ops := []Operation{op}
	if op.Group != 0 {
		ops = trailingGroup(b.Undo.undos, op.Group)
	}
	for _, gop := range ops {
		b.applyForward(gop)
	}
	last := ops[len(ops)-1]
	if last.Type == OpInsert {
		b.Cursor = posAfterInsert(last.Pos, last.Text)
	} else {
		b.Cursor = last.Pos
	}
	b.ClearSelection()
}

func trailingGroup(stack []Operation, group int) []Operation {
	i := len(stack)
	for i > 0 && stack[i-1].Group == group {
		i--
	}
	return stack[i:]
}

func (b *Buffer) applyInverse(op Operation) {
	switch op.Type {
	case OpInsert:
		b.removeText(op.Pos, op.Text)
	case OpDelete:
		b.insertTextAt(op.Pos, op.Text)
	}
}

func (b *Buffer) applyForward(op Operation) {
	switch op.Type {
	case OpInsert:
		b.insertTextAt(op.Pos, op.Text)
	case OpDelete:
		b.removeText(op.Pos, op.Text)
	}
}

func (b *Buffer) insertTextAt(pos Cursor, text string) {
	if text == "" {
		return
	}
	pos = b.clamp(pos)
	line := []rune(b.Lines[pos.Line])
	head, rest := string(line[:pos.Col]), string(line[pos.Col:])

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		b.Lines[pos.Line] = head + text + rest
		return
	}
	newLines := make([]string, 0, len(parts)-1)
	newLines = append(newLines, parts[1:]...)
	newLines[len(newLines)-1] += rest

	after := make([]string, len(b.Lines)-pos.Line-1)
	copy(after, b.Lines[pos.Line+1:])
	b.Lines[pos.Line] = head + parts[0]
	b.Lines = append(b.Lines[:pos.Line+1], newLines...)
	b.Lines = append(b.Lines, after...)
}

func (b *Buffer) removeText(pos Cursor, text string) {
	if text == "" {
		return
	}
	pos = b.clamp(pos)
	end := b.clamp(posAfterInsert(pos, text))
	first := []rune(b.Lines[pos.Line])
	last := []rune(b.Lines[end.Line])
	b.Lines[pos.Line] = string(first[:pos.Col]) + string(last[end.Col:])
	if end.Line > pos.Line {
		b.Lines = append(b.Lines[:pos.Line+1], b.Lines[end.Line+1:]...)
	}
}

func posAfterInsert(pos Cursor, text string) Cursor {
	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		return Cursor{Line: pos.Line, Col: pos.Col + utf8.RuneCountInString(text)}
	}
	return Cursor{
		Line: pos.Line + len(parts) - 1,
		Col:  utf8.RuneCountInString(parts[len(parts)-1]),
	}
}
