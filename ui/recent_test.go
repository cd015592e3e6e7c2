package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestRecentPickerFilters(t *testing.T) {
	files := []string{"/home/u/notes/todo.md", "/home/u/src/main.py", "/home/u/notes/ideas.txt"}
	rp := NewRecentPicker(files, nil)
	if len(rp.Filtered) != 3 {
		t.Fatalf("expected all files with empty query, got %d", len(rp.Filtered))
	}

	for _, r := range "mainpy" {
		rp.HandleKey(runeKey(r))
	}
	if len(rp.Filtered) != 1 || rp.Selection() != "/home/u/src/main.py" {
		t.Fatalf("unexpected filter result %+v", rp.Filtered)
	}

	rp.HandleKey(key(tcell.KeyBackspace2))
	rp.HandleKey(key(tcell.KeyBackspace2))
	rp.HandleKey(key(tcell.KeyBackspace2))
	rp.HandleKey(key(tcell.KeyBackspace2))
	rp.HandleKey(key(tcell.KeyBackspace2))
	rp.HandleKey(key(tcell.KeyBackspace2))
	if len(rp.Filtered) != 3 {
		t.Fatalf("clearing the query should list every file, got %d", len(rp.Filtered))
	}
}

func TestRecentPickerSelect(t *testing.T) {
	rp := NewRecentPicker([]string{"/a.txt", "/b.txt"}, nil)
	var got string
	rp.OnSelect = func(p string) { got = p }
	rp.HandleKey(key(tcell.KeyDown))
	rp.HandleKey(key(tcell.KeyEnter))
	if got != "/b.txt" {
		t.Fatalf("expected /b.txt, got %q", got)
	}

	screen := newScreen(t, 80, 24)
	rp.Render(screen, 0, 0, 80, 24)
}
