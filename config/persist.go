package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Load reads settings from store, falling back to the backup generation and
// then to defaults. ok reports whether a stored document was used.
func Load(store Store) (cfg *Config, ok bool) {
	sources := []struct {
		name string
		read func() ([]byte, error)
	}{
		{"settings", store.Read},
		{"backup", store.ReadBackup},
	}
	for _, src := range sources {
		data, err := src.read()
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				slog.Warn("read settings failed", slog.String("source", src.name), slog.Any("err", err))
			}
			continue
		}
		cfg, err := decode(data, false)
		if err != nil {
			slog.Warn("parse settings failed", slog.String("source", src.name), slog.Any("err", err))
			continue
		}
		return cfg, true
	}
	return Default(), false
}

// Save writes the settings through store. Failures are logged and reported
// as false.
func (c *Config) Save(store Store) bool {
	data, err := encode(c, false)
	if err == nil {
		err = store.Write(data)
	}
	if err != nil {
		slog.Error("save settings failed", slog.Any("err", err))
		return false
	}
	return true
}

// Export writes the settings to path. A .yaml or .yml extension selects
// YAML, anything else JSON.
func (c *Config) Export(path string) bool {
	data, err := encode(c, isYAML(path))
	if err == nil {
		if dir := filepath.Dir(path); dir != "" {
			err = os.MkdirAll(dir, DirPerm)
		}
	}
	if err == nil {
		err = os.WriteFile(path, data, FilePerm)
	}
	if err != nil {
		slog.Error("export settings failed", slog.String("path", path), slog.Any("err", err))
		return false
	}
	return true
}

// Import merges the document at path over the defaults and replaces the
// receiver's contents with the result.
func (c *Config) Import(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("import settings failed", slog.String("path", path), slog.Any("err", err))
		return false
	}
	cfg, err := decode(data, isYAML(path))
	if err != nil {
		slog.Error("import settings failed", slog.String("path", path), slog.Any("err", err))
		return false
	}
	*c = *cfg
	return true
}

func decode(data []byte, asYAML bool) (*Config, error) {
	cfg := Default()
	var err error
	if asYAML {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(jsonc.ToJSON(data), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func encode(c *Config, asYAML bool) ([]byte, error) {
	if asYAML {
		return yaml.Marshal(c)
	}
	return json.MarshalIndent(c, "", "    ")
}

func (c *Config) normalize() {
	c.RecentFiles = uniqueRecent(c.RecentFiles)
	if c.PreviewInterval < MinPreviewSec {
		c.PreviewInterval = Default().PreviewInterval
	}
	if c.FontSize < MinFontSize || c.FontSize > MaxFontSize {
		c.FontSize = Default().FontSize
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
