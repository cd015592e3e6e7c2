package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, ok := Load(&MemoryStore{})
	if ok {
		t.Fatalf("expected ok=false without a stored document")
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	store := &MemoryStore{Data: []byte(`{
		// comments are tolerated
		"appearance": "light",
		"show_grid": true,
		"last_save_dir": null,
		"unknown_key": 42
	}`)}
	cfg, ok := Load(store)
	if !ok {
		t.Fatalf("expected settings to load")
	}
	if cfg.Appearance != "light" || !cfg.ShowGrid {
		t.Fatalf("loaded keys not applied: %+v", cfg)
	}
	if cfg.FontSize != 14 || cfg.PreviewInterval != 5 || !cfg.ShowLineNumbers {
		t.Fatalf("missing keys should keep defaults: %+v", cfg)
	}
	if cfg.RecentFiles == nil {
		t.Fatalf("recent files should never be nil")
	}
}

func TestLoadFallsBackToBackup(t *testing.T) {
	store := &MemoryStore{
		Data:   []byte(`{"appearance": `),
		Backup: []byte(`{"appearance": "light"}`),
	}
	cfg, ok := Load(store)
	if !ok || cfg.Appearance != "light" {
		t.Fatalf("expected backup to be used, got ok=%v %+v", ok, cfg)
	}

	store.Backup = []byte("garbage")
	cfg, ok = Load(store)
	if ok || cfg.Appearance != "dark" {
		t.Fatalf("expected defaults when both generations are broken, got ok=%v %+v", ok, cfg)
	}
}

func TestSaveFailureReportsFalse(t *testing.T) {
	store := &MemoryStore{Err: errors.New("disk full")}
	if Default().Save(store) {
		t.Fatalf("expected save to fail")
	}
}

func TestFileStoreRotatesBackup(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	first := Default()
	first.FontSize = 20
	if !first.Save(store) {
		t.Fatalf("first save failed")
	}
	if _, err := os.Stat(store.BackupPath()); !os.IsNotExist(err) {
		t.Fatalf("expected no backup after first save")
	}

	second := Default()
	second.FontSize = 22
	if !second.Save(store) {
		t.Fatalf("second save failed")
	}
	third := Default()
	third.FontSize = 24
	if !third.Save(store) {
		t.Fatalf("third save failed")
	}

	bak, err := os.ReadFile(store.BackupPath())
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !strings.Contains(string(bak), `"font_size": 22`) {
		t.Fatalf("expected backup to hold the previous generation, got %s", bak)
	}
	cfg, ok := Load(store)
	if !ok || cfg.FontSize != 24 {
		t.Fatalf("expected latest generation, got ok=%v size=%d", ok, cfg.FontSize)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	for _, name := range []string{"settings.json", "settings.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			orig := Default()
			orig.RecentFiles = []string{"/tmp/a.md", "/tmp/b.txt"}
			if !orig.Export(path) {
				t.Fatalf("export failed")
			}
			got := Default()
			got.Appearance = "light"
			if !got.Import(path) {
				t.Fatalf("import failed")
			}
			if !reflect.DeepEqual(got, orig) {
				t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, orig)
			}
		})
	}
}

func TestExportImportUnmodifiedDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	orig := Default()
	if !orig.Export(path) {
		t.Fatalf("export failed")
	}
	got := &Config{}
	if !got.Import(path) {
		t.Fatalf("import failed")
	}
	if !reflect.DeepEqual(got, orig) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, orig)
	}
}

func TestImportMissingFileLeavesConfig(t *testing.T) {
	cfg := Default()
	cfg.Appearance = "light"
	if cfg.Import(filepath.Join(t.TempDir(), "nope.json")) {
		t.Fatalf("expected import to fail")
	}
	if cfg.Appearance != "light" {
		t.Fatalf("failed import must not touch the config")
	}
}

func TestThemeFallsBackToDark(t *testing.T) {
	cfg := Default()
	cfg.Appearance = "sepia"
	if cfg.Theme() != Themes["dark"] {
		t.Fatalf("expected dark fallback")
	}
}
