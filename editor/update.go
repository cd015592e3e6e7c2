package editor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"notepad/ui"
	"notepad/update"
)

const updateTimeout = 20 * time.Second

// scheduleUpdateCheck runs one release check in the background shortly
// after start. Only a newer release reaches the UI loop.
func (e *Editor) scheduleUpdateCheck() {
	checker := e.opts.Checker
	if checker == nil {
		return
	}
	screen := e.screen
	e.updateTimer = time.AfterFunc(e.opts.UpdateDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), updateTimeout)
		defer cancel()
		res, err := checker.Check(ctx)
		if err != nil {
			slog.Info("update check failed", slog.Any("err", err))
			return
		}
		if !res.Available {
			slog.Debug("no update available", slog.String("latest", res.Latest))
			return
		}
		ev := &updateEvent{result: res}
		ev.SetEventNow()
		screen.PostEvent(ev)
	})
}

// offerUpdate asks whether to open the release page.
func (e *Editor) offerUpdate(res update.Result) {
	if e.dialog != nil {
		// Don't interrupt a pending prompt.
		e.setTemporaryMessage("Version " + res.Latest + " is available")
		return
	}
	msg := fmt.Sprintf("A new version %s is available (current %s).\nOpen the download page?", res.Latest, e.opts.Version)
	e.dialog = ui.NewConfirmDialog("Update Available", msg, func(yes bool) {
		e.dialog = nil
		if !yes {
			return
		}
		if err := e.opts.Opener(res.URL); err != nil {
			e.showError("Update", "Failed to open the browser: "+err.Error())
		}
	})
}
