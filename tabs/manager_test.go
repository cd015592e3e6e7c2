package tabs

import (
	"testing"

	"notepad/config"
)

func TestCreateAppendsAndSwitches(t *testing.T) {
	m := NewManager(config.Default())
	var switched []string
	m.OnSwitch = func(tab *Tab) {
		if tab != nil {
			switched = append(switched, tab.ID)
		}
	}
	a := m.Create("", "")
	b := m.Create("/tmp/notes.md", "# hi")
	if m.Current() != b || m.Len() != 2 {
		t.Fatalf("expected second tab current")
	}
	if a.Name != "Untitled 1" || b.Name != "notes.md" {
		t.Fatalf("unexpected names %q %q", a.Name, b.Name)
	}
	if a.View.Active || !b.View.Active {
		t.Fatalf("expected only the current view active")
	}
	m.Switch(a.ID)
	if m.Current() != a || len(switched) != 3 {
		t.Fatalf("expected switch to a, callbacks=%v", switched)
	}
	m.Switch("tab_99")
	if m.Current() != a {
		t.Fatalf("unknown id must be ignored")
	}
}

func TestCloseModifiedDeclined(t *testing.T) {
	m := NewManager(config.Default())
	a := m.Create("", "")
	b := m.Create("", "")
	b.View.Buffer.InsertChar('x')
	b.View.OnEdit(EditChange)

	asked := 0
	m.Close(b.ID, func(tab *Tab, done func(bool)) {
		asked++
		done(false)
	})
	if asked != 1 {
		t.Fatalf("expected one confirmation, got %d", asked)
	}
	if m.Len() != 2 || m.Current() != b || m.Tabs()[0] != a {
		t.Fatalf("declined close must leave tabs unchanged")
	}
}

func TestCloseConfirmedSwitchesToLastAdded(t *testing.T) {
	m := NewManager(config.Default())
	a := m.Create("", "")
	b := m.Create("", "")
	c := m.Create("", "")
	m.Switch(a.ID)
	a.View.Buffer.InsertChar('x')
	a.View.OnEdit(EditChange)

	m.Close(a.ID, func(tab *Tab, done func(bool)) { done(true) })
	if m.Len() != 2 || m.Current() != c {
		t.Fatalf("expected last tab current after closing current, got %v", m.Current())
	}

	m.Close(b.ID, nil)
	if m.Current() != c {
		t.Fatalf("closing a background tab must keep current")
	}
}

func TestCloseLastTabEmptiesState(t *testing.T) {
	m := NewManager(config.Default())
	emptied := false
	m.OnSwitch = func(tab *Tab) { emptied = tab == nil }
	a := m.Create("", "")
	m.Close(a.ID, func(*Tab, func(bool)) { t.Fatalf("unmodified tab should not ask") })
	if m.Current() != nil || m.Len() != 0 || !emptied {
		t.Fatalf("expected empty state")
	}
}

func TestMarkModifiedIsIdempotent(t *testing.T) {
	m := NewManager(config.Default())
	a := m.Create("/tmp/a.txt", "")
	for i := 0; i < 3; i++ {
		a.View.Buffer.InsertChar('x')
		a.View.OnEdit(EditChange)
		m.MarkModified(a.ID)
	}
	if a.Title() != "a.txt *" {
		t.Fatalf("expected single marker, got %q", a.Title())
	}
	m.Rename(a.ID, "/tmp/b.md")
	if a.Title() != "b.md" {
		t.Fatalf("expected renamed unmarked title, got %q", a.Title())
	}
}

func TestClearModifiedDropsMarker(t *testing.T) {
	m := NewManager(config.Default())
	a := m.Create("/tmp/a.txt", "")
	a.View.Buffer.InsertChar('x')
	a.View.OnEdit(EditChange)
	if !a.View.Modified() || a.Title() != "a.txt *" {
		t.Fatalf("expected modified tab, got %q", a.Title())
	}

	m.ClearModified(a.ID)
	if a.View.Modified() || a.Title() != "a.txt" {
		t.Fatalf("expected clean tab, got %q modified=%v", a.Title(), a.View.Modified())
	}

	a.View.Buffer.InsertChar('y')
	a.View.OnEdit(EditChange)
	if a.Title() != "a.txt *" {
		t.Fatalf("expected marker after the next edit, got %q", a.Title())
	}
}

func TestCycleAndFindByPath(t *testing.T) {
	m := NewManager(config.Default())
	a := m.Create("/tmp/a.txt", "")
	b := m.Create("/tmp/b.txt", "")
	m.Cycle(1)
	if m.Current() != a {
		t.Fatalf("expected wrap to first tab")
	}
	m.Cycle(-1)
	if m.Current() != b {
		t.Fatalf("expected wrap to last tab")
	}
	if m.FindByPath("/tmp/../tmp/b.txt") != b {
		t.Fatalf("expected lookup by cleaned path")
	}
	if m.FindByPath("/tmp/c.txt") != nil {
		t.Fatalf("expected no tab for unknown path")
	}
}
