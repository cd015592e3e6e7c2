package config

import (
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
)

const (
	FileName      = "settings.json"
	BackupSuffix  = ".bak"
	LogFileName   = "notepad.log"
	FilePerm      = 0644
	DirPerm       = 0755
	MinFontSize   = 8
	MaxFontSize   = 40
	MinPreviewSec = 1
	MaxPreviewSec = 60
)

// Config holds every user setting. One instance is created at startup and
// shared by pointer with the components that read it.
type Config struct {
	Appearance      string   `json:"appearance" yaml:"appearance"`
	FontSize        int      `json:"font_size" yaml:"font_size"`
	FontFamily      string   `json:"font_family" yaml:"font_family"`
	ShowLineNumbers bool     `json:"show_line_numbers" yaml:"show_line_numbers"`
	ShowGrid        bool     `json:"show_grid" yaml:"show_grid"`
	ShowCurrentLine bool     `json:"show_current_line" yaml:"show_current_line"`
	DefaultDir      string   `json:"default_dir" yaml:"default_dir"`
	LastSaveDir     string   `json:"last_save_dir" yaml:"last_save_dir"`
	PreviewInterval int      `json:"preview_interval" yaml:"preview_interval"`
	Lang            string   `json:"lang" yaml:"lang"`
	RecentFiles     []string `json:"recent_files" yaml:"recent_files"`
}

func Default() *Config {
	return &Config{
		Appearance:      "dark",
		FontSize:        14,
		FontFamily:      "Consolas",
		ShowLineNumbers: true,
		ShowGrid:        false,
		ShowCurrentLine: true,
		DefaultDir:      DocumentsDir(),
		PreviewInterval: 5,
		Lang:            "ja",
		RecentFiles:     []string{},
	}
}

// Clone returns a deep copy, used as the settings panel draft.
func (c *Config) Clone() *Config {
	cp := *c
	cp.RecentFiles = append([]string{}, c.RecentFiles...)
	return &cp
}

// Dir returns the per-user directory holding settings and the log file.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "notepad")
}

// DocumentsDir is the default location offered by open and save prompts.
func DocumentsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Notepad")
}

// EnsureDefaultDir creates the default document directory if missing.
func (c *Config) EnsureDefaultDir() error {
	if c.DefaultDir == "" {
		return nil
	}
	return os.MkdirAll(c.DefaultDir, DirPerm)
}

// SaveDir is where a save prompt starts: the last save location, or the
// default directory.
func (c *Config) SaveDir() string {
	if c.LastSaveDir != "" {
		return c.LastSaveDir
	}
	return c.DefaultDir
}

type ColorScheme struct {
	Name             string
	Background       tcell.Color
	Foreground       tcell.Color
	Selection        tcell.Color
	CurrentLine      tcell.Color
	SearchMatch      tcell.Color
	LineNumber       tcell.Color
	LineNumberActive tcell.Color
	GridLine         tcell.Color
	ToolbarBg        tcell.Color
	ToolbarFg        tcell.Color
	TabBarBg         tcell.Color
	TabBarFg         tcell.Color
	TabBarActiveBg   tcell.Color
	TabBarActiveFg   tcell.Color
	StatusBarBg      tcell.Color
	StatusBarFg      tcell.Color
	DialogBg         tcell.Color
	DialogFg         tcell.Color
	DialogInputBg    tcell.Color
	ErrorFg          tcell.Color

	// Preview document colors, as CSS values.
	PreviewBg   string
	PreviewText string
	// CodeStyle names the chroma style for fenced code in previews.
	CodeStyle string
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:             "Dark",
		Background:       tcell.NewHexColor(0x1e1e1e),
		Foreground:       tcell.NewHexColor(0xd4d4d4),
		Selection:        tcell.NewHexColor(0x264f78),
		CurrentLine:      tcell.NewHexColor(0x2a2d2e),
		SearchMatch:      tcell.NewHexColor(0x613214),
		LineNumber:       tcell.NewHexColor(0x858585),
		LineNumberActive: tcell.NewHexColor(0xc6c6c6),
		GridLine:         tcell.NewHexColor(0x3c3c3c),
		ToolbarBg:        tcell.NewHexColor(0x2b2b2b),
		ToolbarFg:        tcell.NewHexColor(0xe0e0e0),
		TabBarBg:         tcell.NewHexColor(0x252526),
		TabBarFg:         tcell.NewHexColor(0x969696),
		TabBarActiveBg:   tcell.NewHexColor(0x1e1e1e),
		TabBarActiveFg:   tcell.NewHexColor(0xffffff),
		StatusBarBg:      tcell.NewHexColor(0x007acc),
		StatusBarFg:      tcell.NewHexColor(0xffffff),
		DialogBg:         tcell.NewHexColor(0x2b2b2b),
		DialogFg:         tcell.NewHexColor(0xe0e0e0),
		DialogInputBg:    tcell.NewHexColor(0x3c3c3c),
		ErrorFg:          tcell.NewHexColor(0xf48771),
		PreviewBg:        "#1a1a1a",
		PreviewText:      "#e0e0e0",
		CodeStyle:        "monokai",
	},
	"light": {
		Name:             "Light",
		Background:       tcell.ColorWhite,
		Foreground:       tcell.ColorBlack,
		Selection:        tcell.NewHexColor(0xadd6ff),
		CurrentLine:      tcell.NewHexColor(0xf0f0f0),
		SearchMatch:      tcell.NewHexColor(0xffe08a),
		LineNumber:       tcell.NewHexColor(0x999999),
		LineNumberActive: tcell.ColorBlack,
		GridLine:         tcell.NewHexColor(0xd0d0d0),
		ToolbarBg:        tcell.NewHexColor(0xe8e8e8),
		ToolbarFg:        tcell.ColorBlack,
		TabBarBg:         tcell.NewHexColor(0xf3f3f3),
		TabBarFg:         tcell.NewHexColor(0x6f6f6f),
		TabBarActiveBg:   tcell.ColorWhite,
		TabBarActiveFg:   tcell.ColorBlack,
		StatusBarBg:      tcell.NewHexColor(0xdddddd),
		StatusBarFg:      tcell.ColorBlack,
		DialogBg:         tcell.NewHexColor(0xf3f3f3),
		DialogFg:         tcell.ColorBlack,
		DialogInputBg:    tcell.ColorWhite,
		ErrorFg:          tcell.NewHexColor(0xc72e0f),
		PreviewBg:        "white",
		PreviewText:      "black",
		CodeStyle:        "github",
	},
}

// Theme returns the color scheme for the configured appearance.
func (c *Config) Theme() *ColorScheme {
	theme, ok := Themes[c.Appearance]
	if !ok {
		return Themes["dark"]
	}
	return theme
}
