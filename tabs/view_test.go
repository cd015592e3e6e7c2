package tabs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"notepad/buffer"
	"notepad/config"
	"notepad/highlight"
)

func newView(t *testing.T, path, content string) *EditorView {
	t.Helper()
	v := NewEditorView(config.Default(), path, content)
	v.Resize(80, 10)
	return v
}

func TestViewDetectsModeOnce(t *testing.T) {
	if v := newView(t, "report.md", ""); v.Mode != highlight.Markdown {
		t.Fatalf("expected Markdown, got %v", v.Mode)
	}
	if v := newView(t, "", "x"); v.Mode != highlight.PlainText {
		t.Fatalf("expected Plain Text for untitled view, got %v", v.Mode)
	}
}

func TestModifiedSetOnFirstChangeUntilSave(t *testing.T) {
	v := newView(t, "", "")
	changes := 0
	v.OnChange = func() { changes++ }

	for _, r := range "hello" {
		v.Buffer.InsertChar(r)
		v.OnEdit(EditChange)
		if !v.Modified() {
			t.Fatalf("expected modified after typing %q", r)
		}
	}
	v.Buffer.MoveCursor(buffer.MoveLeft, false)
	v.OnEdit(EditNavigate)
	if !v.Modified() || changes != 1 {
		t.Fatalf("expected one change callback and modified kept, got %d", changes)
	}

	path := filepath.Join(t.TempDir(), "out.py")
	if err := v.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if v.Modified() {
		t.Fatalf("expected modified cleared by save")
	}
	if v.Mode != highlight.Python {
		t.Fatalf("expected mode re-detected after save as, got %v", v.Mode)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "hello" {
		t.Fatalf("unexpected file content %q", data)
	}
}

func TestNavigationDoesNotMarkModified(t *testing.T) {
	v := newView(t, "", "line1\nline2")
	cursorCalls := 0
	v.OnCursor = func() { cursorCalls++ }
	v.Buffer.MoveCursor(buffer.MoveDown, false)
	v.OnEdit(EditNavigate)
	v.OnEdit(EditRefresh)
	if v.Modified() {
		t.Fatalf("navigation must not mark the view modified")
	}
	if cursorCalls != 2 {
		t.Fatalf("expected cursor callback per event, got %d", cursorCalls)
	}
}

func TestFailedSaveKeepsModified(t *testing.T) {
	v := newView(t, "", "x")
	v.Buffer.InsertChar('y')
	v.OnEdit(EditChange)
	err := v.Save(filepath.Join(t.TempDir(), "missing", "dir", "f.txt"))
	if err == nil {
		t.Fatalf("expected save error")
	}
	if !v.Modified() || v.Path != "" {
		t.Fatalf("failed save must not change state")
	}
}

func TestGutterFollowsScroll(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "x"
	}
	v := newView(t, "", strings.Join(lines, "\n"))
	g := v.Gutter()
	if !g.Visible() || len(g.Rows) != 10 {
		t.Fatalf("expected 10 gutter rows, got %+v", g)
	}
	if g.Rows[0].Label != "    1" || !g.Rows[0].Active {
		t.Fatalf("unexpected first row %+v", g.Rows[0])
	}

	v.ScrollBy(20)
	g = v.Gutter()
	if g.Rows[0].Line != 20 || g.Rows[0].Label != "   21" {
		t.Fatalf("gutter did not follow scroll: %+v", g.Rows[0])
	}

	v.ScrollTo(45)
	if n := len(v.Gutter().Rows); n != 5 {
		t.Fatalf("expected rows only for remaining lines, got %d", n)
	}

	v.Resize(80, 3)
	if n := len(v.Gutter().Rows); n != 3 {
		t.Fatalf("expected resize to shrink gutter, got %d rows", n)
	}
}

func TestGutterToggles(t *testing.T) {
	cfg := config.Default()
	v := NewEditorView(cfg, "", "a\nb")
	v.Resize(40, 5)

	v.ToggleLineNumbers(false)
	if v.Gutter().Visible() {
		t.Fatalf("gutter should hide with numbers and grid off")
	}

	cfg.ShowGrid = true
	v.UpdateAppearance()
	v.ToggleLineNumbers(false)
	g := v.Gutter()
	if !g.Visible() || !g.ShowGrid || g.ShowNumbers {
		t.Fatalf("expected grid-only gutter, got %+v", g)
	}
	if g.Rows[0].Label != "" {
		t.Fatalf("expected no number labels, got %q", g.Rows[0].Label)
	}
}

func TestCurrentLineRange(t *testing.T) {
	cfg := config.Default()
	v := NewEditorView(cfg, "", "ab\ncde\nf")
	v.Buffer.SetCursor(buffer.Cursor{Line: 1, Col: 2})
	v.OnEdit(EditNavigate)
	r, ok := v.CurrentLine()
	if !ok || r != (Range{Start: 3, End: 7}) {
		t.Fatalf("expected [3,7), got %+v ok=%v", r, ok)
	}

	cfg.ShowCurrentLine = false
	v.HighlightCurrentLine()
	if _, ok := v.CurrentLine(); ok {
		t.Fatalf("expected no current line when disabled")
	}
}

func TestHighlightTracksEdits(t *testing.T) {
	v := newView(t, "x.py", "")
	for _, r := range "def" {
		v.Buffer.InsertChar(r)
		v.OnEdit(EditChange)
	}
	if v.TagAt(0) != highlight.TagKeyword {
		t.Fatalf("expected keyword tag, got %v", v.TagAt(0))
	}
	v.Buffer.SetCursor(buffer.Cursor{})
	v.Buffer.InsertNewline()
	v.OnEdit(EditNavigate)
	if v.TagAt(0) != highlight.TagNone || v.TagAt(1) != highlight.TagKeyword {
		t.Fatalf("expected tags to shift with the text")
	}
}

func TestSearchMatches(t *testing.T) {
	v := newView(t, "", "Go go GO")
	v.SetSearch("go")
	if n := len(v.SearchMatches()); n != 3 {
		t.Fatalf("expected 3 matches, got %d", n)
	}
	if !v.IsMatch(3) || v.IsMatch(2) {
		t.Fatalf("unexpected match membership")
	}
	v.SetSearch("")
	if len(v.SearchMatches()) != 0 {
		t.Fatalf("expected matches cleared")
	}
}

func TestClassifyKey(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want EditKind
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), EditNavigate},
		{tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), EditNavigate},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), EditNavigate},
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), EditChange},
		{tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), EditChange},
		{tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone), EditRefresh},
	}
	for _, tc := range cases {
		if got := ClassifyKey(tc.ev); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.ev.Name(), got, tc.want)
		}
	}
}
