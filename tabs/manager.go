package tabs

import (
	"fmt"
	"path/filepath"

	"notepad/config"
)

// ModifiedMarker is appended to the title of a tab with unsaved changes.
const ModifiedMarker = " *"

// Tab is one open document.
type Tab struct {
	ID   string
	Name string
	View *EditorView

	marked bool
}

// Title is the tab-bar label.
func (t *Tab) Title() string {
	if t.marked {
		return t.Name + ModifiedMarker
	}
	return t.Name
}

func (t *Tab) Marked() bool { return t.marked }

// Confirmer asks whether a modified tab may be closed and reports the answer
// through done, possibly later from a dialog callback.
type Confirmer func(t *Tab, done func(ok bool))

// Manager owns the open tabs, their order and the current tab.
type Manager struct {
	cfg     *config.Config
	tabs    map[string]*Tab
	order   []string
	current string
	counter int

	// OnSwitch fires after the current tab changes; nil when the last tab
	// closed.
	OnSwitch func(t *Tab)
	// OnCursor is installed on every view.
	OnCursor func()
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{cfg: cfg, tabs: make(map[string]*Tab)}
}

// Create opens a new tab for content and makes it current. An empty path
// gives an untitled tab.
func (m *Manager) Create(path, content string) *Tab {
	m.counter++
	t := &Tab{
		ID:   fmt.Sprintf("tab_%d", m.counter),
		View: NewEditorView(m.cfg, path, content),
	}
	if path != "" {
		t.Name = filepath.Base(path)
	} else {
		t.Name = fmt.Sprintf("Untitled %d", m.counter)
	}
	id := t.ID
	t.View.OnChange = func() { m.MarkModified(id) }
	t.View.OnCursor = func() {
		if m.OnCursor != nil {
			m.OnCursor()
		}
	}
	m.tabs[id] = t
	m.order = append(m.order, id)
	m.Switch(id)
	return t
}

// Switch makes id the current tab. Unknown ids are ignored.
func (m *Manager) Switch(id string) {
	t, ok := m.tabs[id]
	if !ok {
		return
	}
	if prev := m.Current(); prev != nil {
		prev.View.Active = false
	}
	m.current = id
	t.View.Active = true
	t.View.RenderLineNumbers()
	t.View.HighlightCurrentLine()
	if m.OnSwitch != nil {
		m.OnSwitch(t)
	}
}

// Close closes id. A modified tab is only closed if confirm agrees. If the
// closed tab was current, the last tab in order becomes current.
func (m *Manager) Close(id string, confirm Confirmer) {
	t, ok := m.tabs[id]
	if !ok {
		return
	}
	if !t.View.Modified() || confirm == nil {
		m.remove(id)
		return
	}
	confirm(t, func(ok bool) {
		if ok {
			m.remove(id)
		}
	})
}

func (m *Manager) remove(id string) {
	if _, ok := m.tabs[id]; !ok {
		return
	}
	delete(m.tabs, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.current != id {
		return
	}
	m.current = ""
	if len(m.order) > 0 {
		m.Switch(m.order[len(m.order)-1])
		return
	}
	if m.OnSwitch != nil {
		m.OnSwitch(nil)
	}
}

// MarkModified adds the modification marker to the tab title once.
func (m *Manager) MarkModified(id string) {
	if t, ok := m.tabs[id]; ok && !t.marked {
		t.marked = true
	}
}

// ClearModified marks the tab's content as matching its file again.
func (m *Manager) ClearModified(id string) {
	if t, ok := m.tabs[id]; ok {
		t.View.ResetModified()
		t.marked = false
	}
}

// Rename gives a saved tab the name of its file and clears the marker.
func (m *Manager) Rename(id, path string) {
	if t, ok := m.tabs[id]; ok {
		t.Name = filepath.Base(path)
		t.marked = false
	}
}

// Current returns the current tab, or nil when no tabs are open.
func (m *Manager) Current() *Tab {
	if m.current == "" {
		return nil
	}
	return m.tabs[m.current]
}

func (m *Manager) Get(id string) *Tab { return m.tabs[id] }

func (m *Manager) Len() int { return len(m.order) }

// Tabs returns the tabs in insertion order.
func (m *Manager) Tabs() []*Tab {
	out := make([]*Tab, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.tabs[id])
	}
	return out
}

// Index returns the position of id in tab order, or -1.
func (m *Manager) Index(id string) int {
	for i, oid := range m.order {
		if oid == id {
			return i
		}
	}
	return -1
}

// FindByPath returns the tab editing path, if any.
func (m *Manager) FindByPath(path string) *Tab {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for _, id := range m.order {
		t := m.tabs[id]
		if t.View.Path == "" {
			continue
		}
		if p, err := filepath.Abs(t.View.Path); err == nil && p == abs {
			return t
		}
	}
	return nil
}

// Cycle switches to the tab delta positions away from the current one,
// wrapping at the ends.
func (m *Manager) Cycle(delta int) {
	n := len(m.order)
	if n == 0 {
		return
	}
	i := m.Index(m.current)
	m.Switch(m.order[((i+delta)%n+n)%n])
}

// Modified returns the tabs with unsaved changes.
func (m *Manager) Modified() []*Tab {
	var out []*Tab
	for _, t := range m.Tabs() {
		if t.View.Modified() {
			out = append(out, t)
		}
	}
	return out
}
