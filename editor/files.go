package editor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"notepad/buffer"
	"notepad/importer"
	"notepad/ui"
)

const importTimeout = 2 * time.Minute

// defaultExt is appended to save-as names without an extension.
const defaultExt = ".txt"

// promptOpen asks for a path, starting in the default directory.
func (e *Editor) promptOpen() {
	e.dialog = ui.NewInputDialog("Open File", "Path:", dirPrefix(e.cfg.DefaultDir), func(path string) {
		e.dialog = nil
		if path = expandPath(path); path != "" {
			e.openPath(path)
		}
	})
	e.dialog.OnCancel = func() { e.dialog = nil }
}

// openPath opens a file from the prompt, the recent list or the command
// line.
func (e *Editor) openPath(path string) {
	if !fileExists(path) {
		if e.cfg.RemoveRecent(path) {
			slog.Info("removed missing recent file", slog.String("path", path))
		}
		e.showError("File Not Found", "File not found:\n"+path)
		return
	}
	if t := e.tabs.FindByPath(path); t != nil {
		e.tabs.Switch(t.ID)
		e.cfg.AddRecent(path)
		return
	}

	switch importer.Format(path) {
	case "docx":
		e.importFile(path)
		e.cfg.AddRecent(path)
		return
	case "html":
		e.dialog = ui.NewConfirmDialog("Open Options",
			"Convert "+filepath.Base(path)+" to a Markdown bundle?\n\nYes: convert\nNo: open as source",
			func(convert bool) {
				e.dialog = nil
				if convert {
					e.importFile(path)
					return
				}
				e.openText(path)
			})
		return
	}
	e.openText(path)
}

// openText reads path into a new tab.
func (e *Editor) openText(path string) {
	b, err := buffer.NewBufferFromFile(path)
	if err != nil {
		e.showError("Error", "Failed to read: "+err.Error())
		return
	}
	e.tabs.Create(path, b.Text())
	e.cfg.AddRecent(path)
	e.watchPath("", path)
	slog.Debug("opened file", slog.String("path", path))
}

// promptImport asks for a document to convert into a Markdown bundle.
func (e *Editor) promptImport() {
	e.dialog = ui.NewInputDialog("Import as Markdown Bundle", "Path (.docx, .html):", dirPrefix(e.cfg.DefaultDir), func(path string) {
		e.dialog = nil
		path = expandPath(path)
		if path == "" {
			return
		}
		if !importer.Importable(path) {
			e.showError("Import", "Only .docx and .html files can be imported")
			return
		}
		e.importFile(path)
	})
	e.dialog.OnCancel = func() { e.dialog = nil }
}

// importFile converts path into a bundle and opens its index.md.
func (e *Editor) importFile(path string) {
	ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
	defer cancel()

	bundle, err := importer.Import(ctx, e.opts.Converter, path)
	if err != nil {
		e.showError("Import Failed", err.Error())
		return
	}
	e.setTemporaryMessage("Imported " + filepath.Base(path) + " into " + filepath.Base(bundle.Dir))

	t := e.tabs.FindByPath(bundle.IndexPath)
	switch {
	case t == nil:
		e.tabs.Create(bundle.IndexPath, bundle.Markdown)
		e.watchPath("", bundle.IndexPath)
	case t.View.Modified():
		id := t.ID
		e.tabs.Switch(id)
		e.dialog = ui.NewConfirmDialog("Unsaved Changes",
			t.Name+" has unsaved changes. Replace them with the new import?",
			func(yes bool) {
				e.dialog = nil
				if yes {
					e.reloadTab(id, bundle.Markdown)
				}
			})
	default:
		e.reloadTab(t.ID, bundle.Markdown)
	}
}

// reloadTab replaces a tab's content with text that is already on disk.
func (e *Editor) reloadTab(id, text string) {
	t := e.tabs.Get(id)
	if t == nil {
		return
	}
	t.View.SetText(text)
	e.tabs.ClearModified(id)
	delete(e.externally, id)
	e.tabs.Switch(id)
}

// saveCurrent writes the current tab, asking for a path if it has none.
func (e *Editor) saveCurrent() {
	t := e.current()
	if t == nil {
		return
	}
	if t.View.Path == "" {
		e.promptSave(dirPrefix(e.cfg.SaveDir()))
		return
	}
	e.saveTo(t.ID, t.View.Path)
}

// promptSaveAs asks for a new path for the current tab.
func (e *Editor) promptSaveAs() {
	t := e.current()
	if t == nil {
		return
	}
	initial := filepath.Join(e.cfg.SaveDir(), "untitled"+defaultExt)
	if t.View.Path != "" {
		initial = t.View.Path
	}
	e.promptSave(initial)
}

func (e *Editor) promptSave(initial string) {
	id := e.current().ID
	e.dialog = ui.NewInputDialog("Save As", "Path:", initial, func(path string) {
		e.dialog = nil
		path = expandPath(path)
		if path == "" || strings.HasSuffix(path, string(os.PathSeparator)) {
			return
		}
		if filepath.Ext(path) == "" {
			path += defaultExt
		}
		e.saveTo(id, path)
	})
	e.dialog.OnCancel = func() { e.dialog = nil }
}

// saveTo writes tab id to path and updates everything bound to the file.
func (e *Editor) saveTo(id, path string) {
	t := e.tabs.Get(id)
	if t == nil {
		return
	}
	old := t.View.Path
	if err := t.View.Save(path); err != nil {
		e.showError("Error", fmt.Sprintf("Failed to save %s: %v", filepath.Base(path), err))
		return
	}
	e.tabs.Rename(id, path)
	e.cfg.LastSaveDir = filepath.Dir(path)
	e.cfg.AddRecent(path)
	delete(e.externally, id)
	e.watchPath(old, path)
	e.updateStatus()
	e.setTemporaryMessage("Saved " + filepath.Base(path))
	slog.Info("saved file", slog.String("path", path))
}

// openRecent shows the recent files picker.
func (e *Editor) openRecent() {
	if n := e.cfg.PruneRecent(fileExists); n > 0 {
		slog.Info("pruned missing recent files", slog.Int("count", n))
	}
	if len(e.cfg.RecentFiles) == 0 {
		e.setTemporaryMessage("No recent files")
		return
	}
	e.recent = ui.NewRecentPicker(e.cfg.RecentFiles, e.cfg.Theme())
	e.recent.OnSelect = func(path string) {
		e.recent = nil
		e.openPath(path)
	}
	e.recent.OnClose = func() { e.recent = nil }
}

// dirPrefix turns a directory into a prompt value ready for a file name.
func dirPrefix(dir string) string {
	if dir == "" {
		return ""
	}
	return strings.TrimSuffix(dir, string(os.PathSeparator)) + string(os.PathSeparator)
}

// expandPath trims the prompt value, expands a leading ~ and makes it
// absolute.
func expandPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	trailing := strings.HasSuffix(path, string(os.PathSeparator))
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if trailing {
		path += string(os.PathSeparator)
	}
	return path
}
