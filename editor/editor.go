// Package editor is the application shell: it owns the screen, lays out the
// widgets, routes input and runs the background jobs (preview refresh,
// update check, file watching) through the tcell event queue.
package editor

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"

	"notepad/buffer"
	"notepad/clipboardx"
	"notepad/config"
	"notepad/highlight"
	"notepad/importer"
	"notepad/preview"
	"notepad/tabs"
	"notepad/ui"
	"notepad/update"
)

const (
	statusMessageTTL = 5 * time.Second
	updateDelay      = 2 * time.Second
)

// Options carries the collaborators the shell talks to. Zero fields get
// production defaults in New.
type Options struct {
	Version   string
	Store     config.Store
	Clipboard *clipboardx.Clipboard
	Converter importer.Converter
	Opener    preview.Opener
	// Checker is nil when update checks are disabled.
	Checker     *update.Checker
	UpdateDelay time.Duration
	// Watch enables reloading of files changed on disk.
	Watch bool
}

type Editor struct {
	screen tcell.Screen
	cfg    *config.Config
	opts   Options

	tabs      *tabs.Manager
	toolbar   *ui.Toolbar
	mdToolbar *ui.Toolbar
	tabBar    *ui.TabBar
	statusBar *ui.StatusBar
	welcome   *ui.Welcome
	findBar   *ui.FindBar
	dialog    *ui.Dialog
	recent    *ui.RecentPicker
	palette   *ui.CommandPalette
	settings  *settingsView

	preview     *preview.Generator
	previewTask *preview.Task
	watcher     *fileWatcher
	updateTimer *time.Timer

	// externally marks tabs whose file changed on disk under unsaved edits.
	externally map[string]bool

	quit              bool
	mouseDown         bool
	dragging          bool
	dragAnchor        buffer.Cursor
	statusMessageTime time.Time
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// previewTickEvent asks the UI loop to refresh the preview file.
type previewTickEvent struct {
	tcell.EventTime
}

// updateEvent carries a finished update check to the UI loop.
type updateEvent struct {
	tcell.EventTime
	result update.Result
}

func New(cfg *config.Config, opts Options) *Editor {
	if opts.Store == nil {
		opts.Store = config.NewFileStore(config.Dir())
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboardx.New()
	}
	if opts.Converter == nil {
		opts.Converter = importer.Pandoc{}
	}
	if opts.Opener == nil {
		opts.Opener = preview.OpenBrowser
	}
	if opts.UpdateDelay == 0 {
		opts.UpdateDelay = updateDelay
	}
	e := &Editor{
		cfg:        cfg,
		opts:       opts,
		tabs:       tabs.NewManager(cfg),
		tabBar:     ui.NewTabBar(),
		statusBar:  ui.NewStatusBar(),
		welcome:    ui.NewWelcome(opts.Version),
		preview:    preview.NewGenerator(cfg),
		externally: make(map[string]bool),
	}
	e.toolbar = ui.NewToolbar(
		ui.Button{Label: "New", Hint: "Ctrl+N", Action: e.newTab},
		ui.Button{Label: "Open", Hint: "Ctrl+O", Action: e.promptOpen},
		ui.Button{Label: "Save", Hint: "Ctrl+S", Action: e.saveCurrent},
		ui.Button{Label: "Save As", Hint: "Alt+S", Action: e.promptSaveAs},
		ui.Button{Label: "Import", Action: e.promptImport},
		ui.Button{Label: "Find", Hint: "Ctrl+F", Action: e.toggleFind},
		ui.Button{Label: "Preview", Hint: "Ctrl+P", Action: e.openPreview},
		ui.Button{Label: "Recent", Hint: "Ctrl+R", Action: e.openRecent},
		ui.Button{Label: "Settings", Hint: "F2", Action: e.toggleSettings},
	)
	e.mdToolbar = ui.NewToolbar(
		ui.Button{Label: "H1", Action: func() { e.insertMarkdown("# ", "") }},
		ui.Button{Label: "H2", Action: func() { e.insertMarkdown("## ", "") }},
		ui.Button{Label: "B", Hint: "Alt+B", Action: func() { e.insertMarkdown("**", "**") }},
		ui.Button{Label: "I", Hint: "Alt+I", Action: func() { e.insertMarkdown("*", "*") }},
		ui.Button{Label: "List", Action: func() { e.insertMarkdown("- ", "") }},
		ui.Button{Label: "Table", Action: func() { e.insertMarkdown(markdownTable, "") }},
	)
	e.mdToolbar.Accent = true

	e.tabs.OnSwitch = e.onSwitch
	e.tabs.OnCursor = e.updateStatus
	e.tabBar.OnSwitch = e.tabs.Switch
	e.tabBar.OnClose = e.closeTab
	e.welcome.OnNew = e.newTab
	e.welcome.OnOpen = e.promptOpen
	e.welcome.OnRecent = e.openPath
	return e
}

// openPalette lists every shell command.
func (e *Editor) openPalette() {
	cmds := []ui.Command{
		{Name: "New File", Shortcut: "Ctrl+N", Action: e.newTab},
		{Name: "Open File", Shortcut: "Ctrl+O", Action: e.promptOpen},
		{Name: "Save", Shortcut: "Ctrl+S", Action: e.saveCurrent},
		{Name: "Save As", Shortcut: "Alt+S", Action: e.promptSaveAs},
		{Name: "Close Tab", Shortcut: "Ctrl+W", Action: func() {
			if t := e.current(); t != nil {
				e.closeTab(t.ID)
			}
		}},
		{Name: "Import Document as Markdown Bundle", Action: e.promptImport},
		{Name: "Recent Files", Shortcut: "Ctrl+R", Action: e.openRecent},
		{Name: "Find", Shortcut: "Ctrl+F", Action: e.toggleFind},
		{Name: "Preview in Browser", Shortcut: "Ctrl+P", Action: e.openPreview},
		{Name: "Settings", Shortcut: "F2", Action: e.toggleSettings},
		{Name: "Toggle Line Numbers", Shortcut: "Ctrl+L", Action: func() {
			e.toggleSetting(&e.cfg.ShowLineNumbers, "Show Line Numbers")
		}},
		{Name: "Toggle Grid", Shortcut: "Ctrl+G", Action: func() {
			e.toggleSetting(&e.cfg.ShowGrid, "Show Grid")
		}},
		{Name: "Toggle Current Line Highlight", Shortcut: "Alt+H", Action: func() {
			e.toggleSetting(&e.cfg.ShowCurrentLine, "Highlight Current Line")
		}},
		{Name: "Next Tab", Shortcut: "Ctrl+PgDn", Action: func() { e.tabs.Cycle(1) }},
		{Name: "Previous Tab", Shortcut: "Ctrl+PgUp", Action: func() { e.tabs.Cycle(-1) }},
		{Name: "Quit", Shortcut: "Ctrl+Q", Action: e.requestQuit},
	}
	if e.isMarkdown() {
		for _, b := range e.mdToolbar.Buttons {
			cmds = append(cmds, ui.Command{Name: "Markdown: " + b.Label, Shortcut: b.Hint, Action: b.Action})
		}
	}
	e.palette = ui.NewCommandPalette(cmds, e.cfg.Theme())
	e.palette.OnClose = func() { e.palette = nil }
}

const markdownTable = "\n| col | col |\n|---|---|\n| val | val |\n"

// Init attaches the editor to an initialized screen, opens files and starts
// the background jobs.
func (e *Editor) Init(screen tcell.Screen, files []string) {
	e.screen = screen
	if err := e.cfg.EnsureDefaultDir(); err != nil {
		slog.Warn("create default directory failed", slog.String("dir", e.cfg.DefaultDir), slog.Any("err", err))
	}
	if e.opts.Watch {
		w, err := newFileWatcher(screen)
		if err != nil {
			slog.Warn("file watching disabled", slog.Any("err", err))
		} else {
			e.watcher = w
		}
	}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = f
		}
		e.openPath(abs)
	}
	e.schedulePreview()
	e.scheduleUpdateCheck()
	e.updateStatus()
}

// Run takes over the terminal until the user quits.
func (e *Editor) Run(files []string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	e.Init(screen, files)
	for !e.quit {
		e.clearExpiredMessages()
		e.render()
		e.HandleEvent(screen.PollEvent())
	}
	e.Close()

	screen.Clear()
	screen.Fini()
	return nil
}

// Close stops background work and persists the settings.
func (e *Editor) Close() {
	if e.updateTimer != nil {
		e.updateTimer.Stop()
	}
	e.previewTask.Stop()
	if e.watcher != nil {
		e.watcher.Close()
	}
	e.cfg.Save(e.opts.Store)
}

// HandleEvent dispatches one event from the screen queue.
func (e *Editor) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventKey:
		e.handleKey(ev)
	case *tcell.EventMouse:
		e.handleMouse(ev)
	case *previewTickEvent:
		e.writePreview()
	case *updateEvent:
		e.offerUpdate(ev.result)
	case *FileWatchEvent:
		e.handleFileWatchEvent(ev)
	}
}

// Quit reports whether the event loop should stop.
func (e *Editor) Quit() bool { return e.quit }

func (e *Editor) current() *tabs.Tab {
	return e.tabs.Current()
}

func (e *Editor) currentView() *tabs.EditorView {
	if t := e.current(); t != nil {
		return t.View
	}
	return nil
}

func (e *Editor) newTab() {
	e.tabs.Create("", "")
}

func (e *Editor) onSwitch(t *tabs.Tab) {
	if t != nil && e.findBar != nil {
		t.View.SetSearch(e.findBar.Query)
		e.refreshFindCount()
	}
	e.updateStatus()
}

func (e *Editor) closeTab(id string) {
	t := e.tabs.Get(id)
	if t == nil {
		return
	}
	path := t.View.Path
	e.tabs.Close(id, func(t *tabs.Tab, done func(bool)) {
		e.dialog = ui.NewConfirmDialog("Unsaved Changes",
			t.Name+" has unsaved changes. Close it anyway?",
			func(yes bool) {
				e.dialog = nil
				done(yes)
				if yes {
					e.forgetTab(id, path)
				}
			})
	})
	if e.tabs.Get(id) == nil {
		e.forgetTab(id, path)
	}
}

// forgetTab drops per-tab shell state after a close.
func (e *Editor) forgetTab(id, path string) {
	delete(e.externally, id)
	if e.watcher != nil && path != "" {
		e.watcher.Remove(path)
	}
	e.updateStatus()
}

// updateStatus refreshes the status bar from the current tab.
func (e *Editor) updateStatus() {
	sb := e.statusBar
	t := e.current()
	sb.Empty = t == nil
	if t == nil {
		return
	}
	v := t.View
	sb.Path = v.Path
	sb.Modified = v.Modified()
	sb.Line = v.Buffer.Cursor.Line + 1
	sb.Col = v.Buffer.Cursor.Col
	sb.Chars = v.Buffer.CharCount()
	sb.Mode = v.Mode.String()
}

func (e *Editor) setTemporaryMessage(msg string) {
	e.statusBar.SetMessage(msg, false)
	e.statusMessageTime = time.Now()
}

func (e *Editor) setTemporaryError(msg string) {
	e.statusBar.SetMessage(msg, true)
	e.statusMessageTime = time.Now()
}

func (e *Editor) clearExpiredMessages() {
	if !e.statusMessageTime.IsZero() && time.Since(e.statusMessageTime) > statusMessageTTL {
		e.statusBar.ClearMessage()
		e.statusMessageTime = time.Time{}
	}
}

func (e *Editor) showError(title, msg string) {
	slog.Warn(title, slog.String("detail", msg))
	d := ui.NewErrorDialog(title, msg)
	d.OnCancel = func() { e.dialog = nil }
	e.dialog = d
}

func (e *Editor) showMessage(title, msg string) {
	d := ui.NewMessageDialog(title, msg)
	d.OnCancel = func() { e.dialog = nil }
	e.dialog = d
}

// requestQuit exits, asking first when tabs hold unsaved changes.
func (e *Editor) requestQuit() {
	modified := e.tabs.Modified()
	if len(modified) == 0 {
		e.quit = true
		return
	}
	msg := "1 tab has unsaved changes. Quit anyway?"
	if len(modified) > 1 {
		msg = strconv.Itoa(len(modified)) + " tabs have unsaved changes. Quit anyway?"
	}
	e.dialog = ui.NewConfirmDialog("Quit", msg, func(yes bool) {
		e.dialog = nil
		e.quit = yes
	})
}

func (e *Editor) isMarkdown() bool {
	v := e.currentView()
	return v != nil && v.Mode == highlight.Markdown
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
