package buffer

import "testing"

func TestOffsetRoundTrip(t *testing.T) {
	b := NewBuffer("héllo\nwörld\n\nend")
	for off := 0; off <= b.CharCount(); off++ {
		c := b.CursorAt(off)
		if got := b.Offset(c); got != off {
			t.Fatalf("offset %d -> %+v -> %d", off, c, got)
		}
	}
	if got := b.CursorAt(6); got != (Cursor{Line: 1, Col: 0}) {
		t.Fatalf("expected start of line 2, got %+v", got)
	}
}

func TestCharCountCountsRunesAndNewlines(t *testing.T) {
	b := NewBuffer("日本\nab")
	if got := b.CharCount(); got != 5 {
		t.Fatalf("expected 5 chars, got %d", got)
	}
}

func TestNewlineAndBackspaceJoinLines(t *testing.T) {
	b := NewBuffer("abcd")
	b.SetCursor(Cursor{Line: 0, Col: 2})
	b.InsertNewline()
	if got := b.Text(); got != "ab\ncd" {
		t.Fatalf("expected split line, got %q", got)
	}
	b.Backspace()
	if got := b.Text(); got != "abcd" {
		t.Fatalf("expected joined line, got %q", got)
	}
	if b.Cursor != (Cursor{Line: 0, Col: 2}) {
		t.Fatalf("unexpected cursor %+v", b.Cursor)
	}
}

func TestDeleteAtLineEndJoinsNext(t *testing.T) {
	b := NewBuffer("ab\ncd")
	b.SetCursor(Cursor{Line: 0, Col: 2})
	b.Delete()
	if got := b.Text(); got != "abcd" {
		t.Fatalf("expected abcd, got %q", got)
	}
}

func TestShiftSelectionAndReplace(t *testing.T) {
	b := NewBuffer("hello world")
	b.MoveCursor(MoveRight, true)
	b.MoveCursor(MoveRight, true)
	b.MoveCursor(MoveRight, true)
	if got := b.SelectedText(); got != "hel" {
		t.Fatalf("expected hel selected, got %q", got)
	}
	b.InsertChar('J')
	if got := b.Text(); got != "Jlo world" {
		t.Fatalf("expected selection replaced, got %q", got)
	}
	if b.Selection != nil {
		t.Fatalf("expected selection cleared")
	}
}

func TestWrapSelection(t *testing.T) {
	b := NewBuffer("make bold")
	b.SetCursor(Cursor{Line: 0, Col: 5})
	b.MoveCursor(MoveEnd, true)
	b.WrapSelection("**", "**")
	if got := b.Text(); got != "make **bold**" {
		t.Fatalf("unexpected wrap result %q", got)
	}

	b = NewBuffer("")
	b.WrapSelection("*", "*")
	if got := b.Text(); got != "**" || b.Cursor.Col != 1 {
		t.Fatalf("expected cursor between markers, got %q col %d", got, b.Cursor.Col)
	}
}

func TestFindWrapsAround(t *testing.T) {
	b := NewBuffer("Foo bar\nfoo baz FOO")
	if hits := b.FindAll("foo"); len(hits) != 3 {
		t.Fatalf("expected 3 case-insensitive hits, got %v", hits)
	}
	b.SetCursor(Cursor{Line: 1, Col: 0})
	if !b.FindNext("foo") {
		t.Fatalf("expected a match")
	}
	if b.Cursor != (Cursor{Line: 1, Col: 8}) {
		t.Fatalf("expected third hit, got %+v", b.Cursor)
	}
	b.FindNext("foo")
	if b.Cursor != (Cursor{Line: 0, Col: 0}) {
		t.Fatalf("expected wraparound to first hit, got %+v", b.Cursor)
	}
	b.FindPrev("foo")
	if b.Cursor != (Cursor{Line: 1, Col: 8}) {
		t.Fatalf("expected backwards wraparound, got %+v", b.Cursor)
	}
	if b.FindNext("missing") {
		t.Fatalf("expected no match")
	}
}

func TestSelectRangeKeepsSearchMoving(t *testing.T) {
	b := NewBuffer("foo bar foo")
	b.SelectRange(Cursor{Col: 8}, Cursor{Col: 11})
	if got := b.SelectedText(); got != "foo" {
		t.Fatalf("expected foo selected, got %q", got)
	}
	if b.Cursor != (Cursor{Col: 8}) {
		t.Fatalf("cursor should sit at the match start, got %+v", b.Cursor)
	}
	if !b.FindNext("foo") || b.Cursor != (Cursor{Col: 0}) {
		t.Fatalf("expected wrap to first match, got %+v", b.Cursor)
	}
}
