package editor

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"

	"notepad/tabs"
)

const watchDebounce = 100 * time.Millisecond

// FileWatchEvent reports a change to a file open in a tab.
type FileWatchEvent struct {
	tcell.EventTime
	Path string
	Op   fsnotify.Op
}

// fileWatcher watches the parent directories of open files. Editors replace
// files by rename, so watching the file itself would lose track of it.
type fileWatcher struct {
	w *fsnotify.Watcher

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]int
}

func newFileWatcher(screen tcell.Screen) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &fileWatcher{w: w, files: make(map[string]bool), dirs: make(map[string]int)}
	go fw.loop(screen)
	return fw, nil
}

func (fw *fileWatcher) loop(screen tcell.Screen) {
	debounceTimer := time.NewTimer(watchDebounce)
	debounceTimer.Stop()
	pending := make(map[string]fsnotify.Op)

	for {
		select {
		case event, ok := <-fw.w.Events:
			if !ok {
				return
			}
			path := filepath.Clean(event.Name)
			if !fw.watching(path) {
				continue
			}
			pending[path] |= event.Op
			debounceTimer.Reset(watchDebounce)

		case <-debounceTimer.C:
			for path, op := range pending {
				ev := &FileWatchEvent{Path: path, Op: op}
				ev.SetEventNow()
				if err := screen.PostEvent(ev); err != nil {
					slog.Debug("file watch event dropped", slog.String("path", path), slog.Any("err", err))
				}
			}
			clear(pending)

		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			slog.Warn("file watcher error", slog.Any("err", err))
		}
	}
}

func (fw *fileWatcher) watching(path string) bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.files[path]
}

// Add starts watching path.
func (fw *fileWatcher) Add(path string) {
	path = filepath.Clean(path)
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.files[path] {
		return
	}
	dir := filepath.Dir(path)
	if fw.dirs[dir] == 0 {
		if err := fw.w.Add(dir); err != nil {
			slog.Warn("watch directory failed", slog.String("dir", dir), slog.Any("err", err))
			return
		}
	}
	fw.dirs[dir]++
	fw.files[path] = true
}

// Remove stops watching path.
func (fw *fileWatcher) Remove(path string) {
	path = filepath.Clean(path)
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if !fw.files[path] {
		return
	}
	delete(fw.files, path)
	dir := filepath.Dir(path)
	fw.dirs[dir]--
	if fw.dirs[dir] <= 0 {
		delete(fw.dirs, dir)
		fw.w.Remove(dir)
	}
}

func (fw *fileWatcher) Close() error {
	return fw.w.Close()
}

// watchPath moves a tab's watch from old to path.
func (e *Editor) watchPath(old, path string) {
	if e.watcher == nil || old == path {
		return
	}
	if old != "" && e.tabs.FindByPath(old) == nil {
		e.watcher.Remove(old)
	}
	if path != "" {
		e.watcher.Add(path)
	}
}

func (e *Editor) handleFileWatchEvent(ev *FileWatchEvent) {
	t := e.tabs.FindByPath(ev.Path)
	if t == nil {
		return
	}
	name := filepath.Base(ev.Path)
	switch {
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && !fileExists(ev.Path):
		e.setTemporaryError(name + " was deleted externally")

	case ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
		data, err := os.ReadFile(ev.Path)
		if err != nil {
			return
		}
		text := strings.ReplaceAll(string(data), "\r\n", "\n")
		v := t.View
		if text == v.Text() {
			// Our own save.
			delete(e.externally, t.ID)
			return
		}
		if v.Modified() {
			e.externally[t.ID] = true
			e.setTemporaryError(name + " was modified externally (unsaved changes)")
			return
		}
		cursor := v.Buffer.Cursor
		v.SetText(text)
		v.Buffer.SetCursor(cursor)
		v.OnEdit(tabs.EditRefresh)
		delete(e.externally, t.ID)
		e.setTemporaryMessage(name + " reloaded")
	}
}
