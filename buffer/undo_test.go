package buffer

import (
	"testing"
	"time"
)

func TestUndoGroupedInsertPasteLikeSequence(t *testing.T) {
	b := NewBuffer("")
	for _, ch := range "block" {
		b.InsertChar(ch)
	}

	// Force a group boundary before the next rapid insert burst.
	if len(b.Undo.undos) == 0 {
		t.Fatalf("expected undo ops after initial insert")
	}
	b.Undo.undos[len(b.Undo.undos)-1].Time = time.Now().Add(-undoGroupInterval - time.Millisecond)

	for _, ch := range "ock" {
		b.InsertChar(ch)
	}
	if got := b.Lines[0]; got != "blockock" {
		t.Fatalf("expected blockock before undo, got %q", got)
	}

	b.ApplyUndo()
	if got := b.Lines[0]; got != "block" {
		t.Fatalf("expected block after undo, got %q", got)
	}

	b.ApplyRedo()
	if got := b.Lines[0]; got != "blockock" {
		t.Fatalf("expected blockock after redo, got %q", got)
	}
}

func TestUndoRedoSingleGroupedWordInsert(t *testing.T) {
	b := NewBuffer("")
	for _, ch := range "block" {
		b.InsertChar(ch)
	}
	if got := b.Lines[0]; got != "block" {
		t.Fatalf("expected block before undo, got %q", got)
	}

	b.ApplyUndo()
	if got := b.Lines[0]; got != "" {
		t.Fatalf("expected empty line after undo, got %q", got)
	}

	b.ApplyRedo()
	if got := b.Lines[0]; got != "block" {
		t.Fatalf("expected block after redo, got %q", got)
	}
}

func TestUndoBackspaceBurstRestoresWord(t *testing.T) {
	b := NewBuffer("hello")
	b.MoveCursor(MoveEnd, false)
	for i := 0; i < 3; i++ {
		b.Backspace()
	}
	if got := b.Lines[0]; got != "he" {
		t.Fatalf("expected he after backspaces, got %q", got)
	}
	b.ApplyUndo()
	if got := b.Lines[0]; got != "hello" {
		t.Fatalf("expected hello after undo, got %q", got)
	}
	if b.Cursor.Col != 5 {
		t.Fatalf("expected cursor restored to col 5, got %d", b.Cursor.Col)
	}
}

func TestUndoMultilinePaste(t *testing.T) {
	b := NewBuffer("ab")
	b.SetCursor(Cursor{Line: 0, Col: 1})
	b.InsertText("x\ny\nz")
	if got := b.Text(); got != "ax\ny\nzb" {
		t.Fatalf("unexpected text after paste: %q", got)
	}
	b.ApplyUndo()
	if got := b.Text(); got != "ab" {
		t.Fatalf("expected ab after undo, got %q", got)
	}
	b.ApplyRedo()
	if got := b.Text(); got != "ax\ny\nzb" {
		t.Fatalf("expected paste restored by redo, got %q", got)
	}
	if b.Cursor != (Cursor{Line: 2, Col: 1}) {
		t.Fatalf("expected cursor after pasted text, got %+v", b.Cursor)
	}
}
