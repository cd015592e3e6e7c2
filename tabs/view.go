package tabs

import (
	"errors"
	"os"

	"notepad/buffer"
	"notepad/config"
	"notepad/highlight"
)

// EditKind classifies an input event for OnEdit.
type EditKind int

const (
	// EditNavigate moves the cursor or pages without changing the text as far
	// as modification tracking is concerned.
	EditNavigate EditKind = iota
	// EditChange is a content-changing keystroke.
	EditChange
	// EditRefresh is any other event. It re-highlights but never marks the
	// view modified.
	EditRefresh
)

// EditorView is the per-tab editor state: the document, its mode and
// modification flag, scroll position, and the derived gutter, highlight and
// current-line data a renderer draws from.
type EditorView struct {
	Path   string
	Mode   highlight.Mode
	Buffer *buffer.Buffer

	ScrollY int
	ScrollX int
	Width   int
	Height  int
	Active  bool

	// OnChange fires once when the view first becomes modified.
	OnChange func()
	// OnCursor fires after every handled edit event.
	OnCursor func()

	cfg         *config.Config
	showNumbers bool
	modified    bool
	tags        []highlight.Tag
	tagged      string
	gutter      Gutter
	currentLine *Range
	search      string
	matches     []Range
}

// Range is a rune offset range [Start, End).
type Range struct {
	Start, End int
}

func (r Range) Contains(off int) bool {
	return off >= r.Start && off < r.End
}

func NewEditorView(cfg *config.Config, path, content string) *EditorView {
	v := &EditorView{
		Path:   path,
		Mode:   highlight.DetectMode(path),
		Buffer: buffer.NewBuffer(content),
		cfg:    cfg,

		showNumbers: cfg.ShowLineNumbers,
	}
	v.ApplyHighlight()
	v.HighlightCurrentLine()
	return v
}

func (v *EditorView) Text() string {
	return v.Buffer.Text()
}

// SetText replaces the whole content and refreshes the derived state. The
// modified flag is left alone.
func (v *EditorView) SetText(s string) {
	v.Buffer.SetText(s)
	v.refreshSearch()
	v.ApplyHighlight()
	v.EnsureCursorVisible()
	v.HighlightCurrentLine()
}

func (v *EditorView) Modified() bool { return v.modified }

func (v *EditorView) ResetModified() { v.modified = false }

// OnEdit updates the view after the buffer has handled an event of the given
// kind.
func (v *EditorView) OnEdit(kind EditKind) {
	if kind == EditNavigate {
		// Enter and Backspace navigate for modification tracking but still
		// shift the text under the highlight.
		if v.Text() != v.tagged {
			v.refreshSearch()
			v.ApplyHighlight()
		}
		v.EnsureCursorVisible()
		v.HighlightCurrentLine()
		v.cursorMoved()
		return
	}
	if kind == EditChange && !v.modified {
		v.modified = true
		if v.OnChange != nil {
			v.OnChange()
		}
	}
	v.refreshSearch()
	v.EnsureCursorVisible()
	v.ApplyHighlight()
	v.HighlightCurrentLine()
	v.cursorMoved()
}

func (v *EditorView) cursorMoved() {
	if v.OnCursor != nil {
		v.OnCursor()
	}
}

// ApplyHighlight re-runs the highlighter over the whole text.
func (v *EditorView) ApplyHighlight() {
	text := v.Text()
	v.tagged = text
	v.tags = highlight.Overlay(highlight.Apply(v.Mode, text), v.Buffer.CharCount())
}

// TagAt returns the resolved highlight tag at a rune offset.
func (v *EditorView) TagAt(off int) highlight.Tag {
	if off < 0 || off >= len(v.tags) {
		return highlight.TagNone
	}
	return v.tags[off]
}

// HighlightCurrentLine recomputes the current-line range: the caret's line
// from its start through one rune past its end.
func (v *EditorView) HighlightCurrentLine() {
	v.currentLine = nil
	if !v.cfg.ShowCurrentLine {
		return
	}
	line := v.Buffer.Cursor.Line
	start := v.Buffer.Offset(buffer.Cursor{Line: line})
	end := start + v.Buffer.LineLen(line) + 1
	v.currentLine = &Range{Start: start, End: end}
}

// CurrentLine returns the current-line range, if highlighting is on.
func (v *EditorView) CurrentLine() (Range, bool) {
	if v.currentLine == nil {
		return Range{}, false
	}
	return *v.currentLine, true
}

// ToggleLineNumbers shows or hides line numbers. The gutter stays visible
// while the grid is on.
func (v *EditorView) ToggleLineNumbers(show bool) {
	v.showNumbers = show
	v.RenderLineNumbers()
}

// UpdateAppearance re-reads display settings without touching the text.
func (v *EditorView) UpdateAppearance() {
	v.showNumbers = v.cfg.ShowLineNumbers
	v.RenderLineNumbers()
	v.HighlightCurrentLine()
}

// SetPath rebinds the view to a new file and re-detects the mode.
func (v *EditorView) SetPath(path string) {
	v.Path = path
	if mode := highlight.DetectMode(path); mode != v.Mode {
		v.Mode = mode
		v.ApplyHighlight()
	}
}

// Save writes the text to path. On success the view takes the new path and
// is no longer modified; on failure nothing changes.
func (v *EditorView) Save(path string) error {
	if path == "" {
		return errors.New("no file path")
	}
	if err := os.WriteFile(path, []byte(v.Text()), config.FilePerm); err != nil {
		return err
	}
	v.SetPath(path)
	v.ResetModified()
	return nil
}

// Resize sets the text area size and re-renders the gutter.
func (v *EditorView) Resize(width, height int) {
	v.Width, v.Height = width, height
	v.EnsureCursorVisible()
}

// ScrollTo sets the first visible line.
func (v *EditorView) ScrollTo(line int) {
	maxScroll := v.Buffer.LineCount() - 1
	if line > maxScroll {
		line = maxScroll
	}
	if line < 0 {
		line = 0
	}
	v.ScrollY = line
	v.RenderLineNumbers()
}

func (v *EditorView) ScrollBy(delta int) {
	v.ScrollTo(v.ScrollY + delta)
}

// EnsureCursorVisible scrolls so the cursor is on screen.
func (v *EditorView) EnsureCursorVisible() {
	c := v.Buffer.Cursor
	if v.Height > 0 {
		if c.Line < v.ScrollY {
			v.ScrollY = c.Line
		} else if c.Line >= v.ScrollY+v.Height {
			v.ScrollY = c.Line - v.Height + 1
		}
	}
	textW := v.Width - v.gutterWidth()
	if textW > 0 {
		if c.Col < v.ScrollX {
			v.ScrollX = c.Col
		} else if c.Col >= v.ScrollX+textW {
			v.ScrollX = c.Col - textW + 1
		}
	}
	v.RenderLineNumbers()
}

// SetSearch marks every case-insensitive occurrence of query. An empty query
// clears the marks.
func (v *EditorView) SetSearch(query string) {
	v.search = query
	v.refreshSearch()
}

func (v *EditorView) refreshSearch() {
	v.matches = v.matches[:0]
	n := len([]rune(v.search))
	for _, off := range v.Buffer.FindAll(v.search) {
		v.matches = append(v.matches, Range{Start: off, End: off + n})
	}
}

// SearchMatches returns the ranges marked by SetSearch.
func (v *EditorView) SearchMatches() []Range { return v.matches }

// IsMatch reports whether off lies in a search match.
func (v *EditorView) IsMatch(off int) bool {
	for _, m := range v.matches {
		if m.Contains(off) {
			return true
		}
		if m.Start > off {
			break
		}
	}
	return false
}
