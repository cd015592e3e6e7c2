package preview

import (
	"fmt"
	"html/template"
	"log/slog"
	"os"

	"notepad/config"
)

// Generator turns the current document into a self-reloading HTML preview
// file. The file is created on first use and overwritten afterwards.
type Generator struct {
	cfg      *config.Config
	renderer Renderer

	// TempDir is where the preview file is created; empty means the system
	// default.
	TempDir string
	path    string
}

func NewGenerator(cfg *config.Config) *Generator {
	g := &Generator{cfg: cfg}
	g.renderer = NewMarkdown(func() string { return cfg.Theme().CodeStyle })
	return g
}

// WithRenderer swaps the Markdown renderer.
func (g *Generator) WithRenderer(r Renderer) *Generator {
	g.renderer = r
	return g
}

// Render builds the full preview document for text. sourcePath, when set,
// becomes the document base so relative links resolve next to the file.
func (g *Generator) Render(text, sourcePath string) (string, error) {
	protected, blocks := ProtectMath(text)
	body, err := g.renderer.Render(protected, blocks)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	body = RestoreMath(body, blocks)

	theme := g.cfg.Theme()
	interval := g.cfg.PreviewInterval
	if interval < config.MinPreviewSec {
		interval = config.MinPreviewSec
	}
	return document{
		BaseHref:     template.URL(baseHref(sourcePath)),
		ReloadMillis: interval * 1000,
		MathJaxURL:   MathJaxURL,
		Background:   template.CSS(theme.PreviewBg),
		Foreground:   template.CSS(theme.PreviewText),
		FontFamily:   g.cfg.FontFamily,
		FontSize:     g.cfg.FontSize,
		Body:         template.HTML(body),
	}.render()
}

// Write renders text into the preview file and returns its path. Failures
// are logged and reported as ok=false.
func (g *Generator) Write(text, sourcePath string) (path string, ok bool) {
	doc, err := g.Render(text, sourcePath)
	if err != nil {
		slog.Warn("preview render failed", slog.Any("err", err))
		return "", false
	}
	if g.path == "" {
		f, err := os.CreateTemp(g.TempDir, "notepad-preview-*.html")
		if err != nil {
			slog.Warn("preview file create failed", slog.Any("err", err))
			return "", false
		}
		g.path = f.Name()
		f.Close()
	}
	if err := os.WriteFile(g.path, []byte(doc), config.FilePerm); err != nil {
		slog.Warn("preview write failed", slog.String("path", g.path), slog.Any("err", err))
		return "", false
	}
	return g.path, true
}

// Path returns the preview file path, empty until the first Write.
func (g *Generator) Path() string { return g.path }

// Remove deletes the preview file.
func (g *Generator) Remove() error {
	if g.path == "" {
		return nil
	}
	err := os.Remove(g.path)
	g.path = ""
	return err
}
