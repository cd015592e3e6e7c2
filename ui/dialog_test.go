package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestConfirmDialogAnswers(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want bool
	}{
		{runeKey('y'), true},
		{runeKey('Y'), true},
		{key(tcell.KeyEnter), true},
		{runeKey('n'), false},
		{key(tcell.KeyEscape), false},
	}
	for _, tt := range tests {
		got, called := false, false
		d := NewConfirmDialog("Close", "Discard changes?", func(yes bool) {
			got, called = yes, true
		})
		d.HandleKey(tt.ev)
		if !called || got != tt.want {
			t.Fatalf("key %v: called=%v got=%v want=%v", tt.ev.Name(), called, got, tt.want)
		}
	}
}

func TestConfirmDialogIgnoresOtherKeys(t *testing.T) {
	called := false
	d := NewConfirmDialog("Close", "Discard changes?", func(bool) { called = true })
	d.HandleKey(runeKey('x'))
	if called {
		t.Fatalf("unexpected answer")
	}
}

func TestInputDialogEditsAndSubmits(t *testing.T) {
	var got string
	d := NewInputDialog("Open", "Path:", "/home/", func(v string) { got = v })
	for _, r := range "a.md" {
		d.HandleKey(runeKey(r))
	}
	d.HandleKey(key(tcell.KeyBackspace2))
	d.HandleKey(runeKey('x'))
	d.HandleKey(key(tcell.KeyEnter))
	if got != "/home/a.mx" {
		t.Fatalf("expected /home/a.mx, got %q", got)
	}
}

func TestInputDialogCancel(t *testing.T) {
	cancelled, submitted := false, false
	d := NewInputDialog("Open", "Path:", "", func(string) { submitted = true })
	d.OnCancel = func() { cancelled = true }
	d.HandleKey(key(tcell.KeyEscape))
	if !cancelled || submitted {
		t.Fatalf("cancelled=%v submitted=%v", cancelled, submitted)
	}
}

func TestDialogRenderShowsMessage(t *testing.T) {
	d := NewErrorDialog("Error", "File not found: /nope.txt")
	screen := newScreen(t, 80, 20)
	d.Render(screen, 0, 0, 80, 20)

	found := false
	for y := 0; y < 20; y++ {
		if strings.Contains(rowText(screen, y, 80), "File not found: /nope.txt") {
			found = true
		}
	}
	if !found {
		t.Fatalf("message not rendered")
	}
}

func TestWrap(t *testing.T) {
	lines := wrap("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q want %q", lines, want)
	}
	long := wrap("abcdefghij", 4)
	if strings.Join(long, "|") != "abcd|efgh|ij" {
		t.Fatalf("long word split wrong: %q", long)
	}
}

func TestFindBarCallbacks(t *testing.T) {
	f := NewFindBar("")
	var query string
	next, prev, closed := 0, 0, false
	f.OnChange = func(q string) { query = q }
	f.OnNext = func() { next++ }
	f.OnPrev = func() { prev++ }
	f.OnClose = func() { closed = true }

	f.HandleKey(runeKey('a'))
	f.HandleKey(runeKey('b'))
	if query != "ab" {
		t.Fatalf("expected query ab, got %q", query)
	}
	f.HandleKey(key(tcell.KeyEnter))
	f.HandleKey(key(tcell.KeyDown))
	f.HandleKey(key(tcell.KeyUp))
	f.HandleKey(key(tcell.KeyEscape))
	if next != 2 || prev != 1 || !closed {
		t.Fatalf("next=%d prev=%d closed=%v", next, prev, closed)
	}
}
