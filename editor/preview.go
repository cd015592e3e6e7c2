package editor

import (
	"log/slog"
	"time"

	"notepad/config"
	"notepad/preview"
)

// schedulePreview (re)starts the periodic preview refresh at the configured
// interval. The tick only posts an event; rendering happens on the UI loop.
func (e *Editor) schedulePreview() {
	e.previewTask.Stop()
	interval := max(e.cfg.PreviewInterval, config.MinPreviewSec)
	screen := e.screen
	e.previewTask = preview.Every(time.Duration(interval)*time.Second, func() {
		ev := &previewTickEvent{}
		ev.SetEventNow()
		screen.PostEvent(ev)
	})
}

// writePreview refreshes the preview file from the current tab.
func (e *Editor) writePreview() {
	v := e.currentView()
	if v == nil {
		return
	}
	e.preview.Write(v.Text(), v.Path)
}

// openPreview writes the preview and opens it in the browser.
func (e *Editor) openPreview() {
	v := e.currentView()
	if v == nil {
		return
	}
	path, ok := e.preview.Write(v.Text(), v.Path)
	if !ok {
		e.showError("Preview", "Failed to write the preview file")
		return
	}
	if err := e.opts.Opener(path); err != nil {
		slog.Warn("open preview failed", slog.String("path", path), slog.Any("err", err))
		e.showError("Preview", "Failed to open the browser: "+err.Error())
		return
	}
	e.setTemporaryMessage("Preview opened")
}
