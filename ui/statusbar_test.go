package ui

import (
	"strings"
	"testing"
)

func TestStatusBarText(t *testing.T) {
	s := NewStatusBar()
	if s.Left() != "No file" || s.Right() != "" {
		t.Fatalf("empty state: left=%q right=%q", s.Left(), s.Right())
	}

	s.Empty = false
	s.Line, s.Col, s.Chars, s.Mode = 3, 5, 42, "Markdown"
	if got := s.Left(); got != "Untitled" {
		t.Fatalf("expected Untitled, got %q", got)
	}
	s.Path, s.Modified = "/tmp/a.md", true
	if got := s.Left(); got != "/tmp/a.md (Modified)" {
		t.Fatalf("unexpected left %q", got)
	}
	if got := s.Right(); got != "Line 3, Col 5 | Chars: 42 | Mode: Markdown" {
		t.Fatalf("unexpected right %q", got)
	}
}

func TestStatusBarRender(t *testing.T) {
	s := NewStatusBar()
	s.Empty = false
	s.Path = "notes.txt"
	s.Line, s.Col, s.Mode = 1, 1, "Plain Text"

	screen := newScreen(t, 80, 1)
	s.Render(screen, 0, 0, 80, 1)
	row := rowText(screen, 0, 80)
	if !strings.HasPrefix(row, " notes.txt") {
		t.Fatalf("left side missing: %q", row)
	}
	if !strings.HasSuffix(strings.TrimRight(row, " "), "Mode: Plain Text") {
		t.Fatalf("right side missing: %q", row)
	}

	s.SetMessage("Saved", false)
	s.Render(screen, 0, 0, 80, 1)
	if row := rowText(screen, 0, 80); !strings.HasPrefix(row, " Saved") {
		t.Fatalf("message not shown: %q", row)
	}
}
