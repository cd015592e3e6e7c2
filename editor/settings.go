package editor

import (
	"log/slog"
	"strconv"

	"notepad/config"
	"notepad/ui"
)

// Settings panel rows. The panel edits a draft; nothing reaches the shared
// config before Apply.
const (
	setAppearance = iota
	setFontSize
	setFontFamily
	setLineNumbers
	setGrid
	setCurrentLine
	setPreviewInterval
	setDefaultDir
	setLang
	setExport
	setImport
	setApply
	setBack
)

type settingsView struct {
	panel *ui.SettingsPanel
	draft *config.Config
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (e *Editor) settingItems(d *config.Config) []ui.SettingItem {
	toggle := []string{"on", "off"}
	return []ui.SettingItem{
		setAppearance:      {Label: "Appearance", Kind: ui.SettingChoice, Value: d.Appearance, Options: []string{"dark", "light"}},
		setFontSize:        {Label: "Font Size", Kind: ui.SettingNumber, Value: strconv.Itoa(d.FontSize), Min: config.MinFontSize, Max: config.MaxFontSize},
		setFontFamily:      {Label: "Font Family", Kind: ui.SettingText, Value: d.FontFamily},
		setLineNumbers:     {Label: "Show Line Numbers", Kind: ui.SettingChoice, Value: onOff(d.ShowLineNumbers), Options: toggle},
		setGrid:            {Label: "Show Grid", Kind: ui.SettingChoice, Value: onOff(d.ShowGrid), Options: toggle},
		setCurrentLine:     {Label: "Highlight Current Line", Kind: ui.SettingChoice, Value: onOff(d.ShowCurrentLine), Options: toggle},
		setPreviewInterval: {Label: "Preview Interval (s)", Kind: ui.SettingNumber, Value: strconv.Itoa(d.PreviewInterval), Min: config.MinPreviewSec, Max: config.MaxPreviewSec},
		setDefaultDir:      {Label: "Default Directory", Kind: ui.SettingText, Value: d.DefaultDir},
		setLang:            {Label: "Language", Kind: ui.SettingChoice, Value: d.Lang, Options: []string{"ja", "en"}},
		setExport:          {Label: "Export Settings...", Kind: ui.SettingAction, Action: e.promptExportSettings},
		setImport:          {Label: "Import Settings...", Kind: ui.SettingAction, Action: e.promptImportSettings},
		setApply:           {Label: "Apply", Kind: ui.SettingAction, Action: e.applySettings},
		setBack:            {Label: "Back", Kind: ui.SettingAction, Action: e.closeSettings},
	}
}

func (e *Editor) toggleSettings() {
	if e.settings != nil {
		e.closeSettings()
		return
	}
	e.openSettings()
}

func (e *Editor) openSettings() {
	draft := e.cfg.Clone()
	sv := &settingsView{draft: draft}
	sv.panel = ui.NewSettingsPanel(e.settingItems(draft))
	sv.panel.OnChange = func(i int, v string) { setDraft(draft, i, v) }
	sv.panel.OnEdit = e.promptSettingText
	sv.panel.OnClose = e.closeSettings
	if e.settings != nil {
		sv.panel.Index = e.settings.panel.Index
	}
	e.settings = sv
}

// closeSettings discards the draft.
func (e *Editor) closeSettings() {
	e.settings = nil
}

// setDraft stores a panel value into the draft.
func setDraft(d *config.Config, index int, value string) {
	switch index {
	case setAppearance:
		d.Appearance = value
	case setFontSize:
		if n, err := strconv.Atoi(value); err == nil {
			d.FontSize = n
		}
	case setFontFamily:
		d.FontFamily = value
	case setLineNumbers:
		d.ShowLineNumbers = value == "on"
	case setGrid:
		d.ShowGrid = value == "on"
	case setCurrentLine:
		d.ShowCurrentLine = value == "on"
	case setPreviewInterval:
		if n, err := strconv.Atoi(value); err == nil {
			d.PreviewInterval = n
		}
	case setDefaultDir:
		d.DefaultDir = value
	case setLang:
		d.Lang = value
	}
}

func (e *Editor) promptSettingText(index int) {
	sv := e.settings
	if sv == nil {
		return
	}
	it := sv.panel.Items[index]
	e.dialog = ui.NewInputDialog(it.Label, it.Label+":", it.Value, func(v string) {
		e.dialog = nil
		if index == setDefaultDir {
			v = expandPath(v)
		}
		if v != "" {
			sv.panel.SetValue(index, v)
		}
	})
	e.dialog.OnCancel = func() { e.dialog = nil }
}

// applySettings copies the draft into the shared config, persists it and
// refreshes every view.
func (e *Editor) applySettings() {
	sv := e.settings
	if sv == nil {
		return
	}
	recent := e.cfg.RecentFiles
	lastSave := e.cfg.LastSaveDir
	*e.cfg = *sv.draft.Clone()
	e.cfg.RecentFiles = recent
	e.cfg.LastSaveDir = lastSave

	if err := e.cfg.EnsureDefaultDir(); err != nil {
		slog.Warn("create default directory failed", slog.String("dir", e.cfg.DefaultDir), slog.Any("err", err))
	}
	e.cfg.Save(e.opts.Store)
	e.refreshViews()
	e.schedulePreview()
	e.showMessage("Settings", "Settings applied")
}

// refreshViews pushes display settings into every open view.
func (e *Editor) refreshViews() {
	for _, t := range e.tabs.Tabs() {
		t.View.ToggleLineNumbers(e.cfg.ShowLineNumbers)
		t.View.UpdateAppearance()
		t.View.HighlightCurrentLine()
	}
}

func (e *Editor) promptExportSettings() {
	initial := dirPrefix(e.cfg.DefaultDir) + "notepad-settings.json"
	e.dialog = ui.NewInputDialog("Export Settings", "Path (.json, .yaml):", initial, func(path string) {
		e.dialog = nil
		if path = expandPath(path); path == "" {
			return
		}
		if !e.cfg.Export(path) {
			e.showError("Export Settings", "Failed to export settings to "+path)
			return
		}
		e.showMessage("Export Settings", "Settings exported to "+path)
	})
	e.dialog.OnCancel = func() { e.dialog = nil }
}

func (e *Editor) promptImportSettings() {
	e.dialog = ui.NewInputDialog("Import Settings", "Path (.json, .yaml):", dirPrefix(e.cfg.DefaultDir), func(path string) {
		e.dialog = nil
		if path = expandPath(path); path == "" {
			return
		}
		if !e.cfg.Import(path) {
			e.showError("Import Settings", "Failed to import settings from "+path)
			return
		}
		e.cfg.Save(e.opts.Store)
		e.refreshViews()
		e.schedulePreview()
		if e.settings != nil {
			e.openSettings()
		}
		e.showMessage("Import Settings", "Settings imported from "+path)
	})
	e.dialog.OnCancel = func() { e.dialog = nil }
}

// toggleSetting flips one boolean display setting from the keyboard and
// saves it immediately.
func (e *Editor) toggleSetting(field *bool, name string) {
	*field = !*field
	e.cfg.Save(e.opts.Store)
	e.refreshViews()
	e.setTemporaryMessage(name + ": " + onOff(*field))
}
