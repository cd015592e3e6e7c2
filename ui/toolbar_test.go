package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestToolbarClickRunsButton(t *testing.T) {
	var clicked []string
	tb := NewToolbar(
		Button{Label: "New", Hint: "Ctrl+N", Action: func() { clicked = append(clicked, "new") }},
		Button{Label: "Open", Action: func() { clicked = append(clicked, "open") }},
	)
	screen := newScreen(t, 60, 3)
	tb.Render(screen, 0, 1, 60, 1)

	if got := rowText(screen, 1, 60); !strings.HasPrefix(got, " New (Ctrl+N)   Open ") {
		t.Fatalf("unexpected toolbar row %q", got)
	}

	// " New (Ctrl+N) " spans columns 0-13, a gap at 14, " Open " from 15.
	tb.HandleMouse(tcell.NewEventMouse(16, 1, tcell.Button1, tcell.ModNone))
	tb.HandleMouse(tcell.NewEventMouse(2, 1, tcell.Button1, tcell.ModNone))
	tb.HandleMouse(tcell.NewEventMouse(14, 1, tcell.Button1, tcell.ModNone))
	tb.HandleMouse(tcell.NewEventMouse(2, 0, tcell.Button1, tcell.ModNone))

	if strings.Join(clicked, ",") != "open,new" {
		t.Fatalf("unexpected clicks %v", clicked)
	}
}

func TestWelcomeRowsAreClickable(t *testing.T) {
	var opened string
	w := NewWelcome("1.6.1")
	w.Recent = []string{"/home/u/notes.md"}
	w.OnRecent = func(p string) { opened = p }

	screen := newScreen(t, 80, 24)
	w.Render(screen, 0, 0, 80, 24)

	row := -1
	for y := 0; y < 24; y++ {
		if strings.Contains(rowText(screen, y, 80), "notes.md") {
			row = y
		}
	}
	if row < 0 {
		t.Fatal("recent file not listed")
	}
	w.HandleMouse(tcell.NewEventMouse(40, row, tcell.Button1, tcell.ModNone))
	if opened != "/home/u/notes.md" {
		t.Fatalf("expected recent file to open, got %q", opened)
	}
}
