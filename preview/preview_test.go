package preview

import (
	"errors"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"notepad/config"
)

func TestProtectAndRestoreMath(t *testing.T) {
	text := "a $x_1$ b $$\\sum_i^n$$ c \\ce{H2O} d \\begin{align}x\\\\y\\end{align}"
	protected, blocks := ProtectMath(text)
	if len(blocks) != 4 {
		t.Fatalf("expected 4 protected regions, got %v", blocks)
	}
	if strings.Contains(protected, "$") || strings.Contains(protected, "\\ce") {
		t.Fatalf("math left in protected text: %q", protected)
	}
	if got := RestoreMath(protected, blocks); got != text {
		t.Fatalf("restore mismatch: %q", got)
	}
}

func TestProtectMathSpansLines(t *testing.T) {
	_, blocks := ProtectMath("$$\na*b*c\n$$")
	if len(blocks) != 1 || blocks[0] != "$$\na*b*c\n$$" {
		t.Fatalf("expected multi-line display math, got %v", blocks)
	}
}

func TestRenderKeepsInlineMathVerbatim(t *testing.T) {
	g := NewGenerator(config.Default())
	out, err := g.Render("Energy is *important*: $x^2$ and $a_b * c_d$ here.", "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"$x^2$", "$a_b * c_d$", "<em>important</em>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "@@MATH") {
		t.Fatalf("placeholder leaked into output")
	}
}

func TestRenderDocumentShape(t *testing.T) {
	cfg := config.Default()
	cfg.PreviewInterval = 7
	g := NewGenerator(cfg)
	src := filepath.Join(t.TempDir(), "doc.md")
	out, err := g.Render("| a | b |\n|---|---|\n| 1 | 2 |\n\n- [x] done", src)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	checks := []string{
		"<base href=\"file://",
		"7000",
		MathJaxURL,
		"<table>",
		"checkbox",
		"#1a1a1a",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in document:\n%s", want, out)
		}
	}

	cfg.Appearance = "light"
	out, _ = g.Render("x", "")
	if strings.Contains(out, "<base") {
		t.Fatalf("untitled documents must not carry a base tag")
	}
	if !strings.Contains(out, "white") {
		t.Fatalf("expected light background")
	}
}

func TestRenderHighlightsFencedCode(t *testing.T) {
	g := NewGenerator(config.Default())
	out, err := g.Render("```go\nfunc main() {}\n```", "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<pre") || !strings.Contains(out, "style=") || !strings.Contains(out, "main") {
		t.Fatalf("expected chroma styled code block:\n%s", out)
	}
}

func TestRenderKeepsDollarsInFencedCode(t *testing.T) {
	tags := regexp.MustCompile(`<[^>]*>`)
	tests := []struct {
		name string
		lang string
		code string
	}{
		{"shell", "sh", `echo "$HOME and $PATH"`},
		{"python", "python", "cost = $x + y$"},
		{"php", "php", "<?php $a = 1; $b = 2; ?>"},
		{"javascript", "js", "const a = $('#id'); const b = $('.c');"},
	}
	g := NewGenerator(config.Default())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := g.Render("```"+tt.lang+"\n"+tt.code+"\n```\n\nand $x^2$ after", "")
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if strings.Contains(out, "@@") {
				t.Fatalf("placeholder leaked:\n%s", out)
			}
			text := html.UnescapeString(tags.ReplaceAllString(out, ""))
			if !strings.Contains(text, tt.code) {
				t.Fatalf("expected %q in rendered text:\n%s", tt.code, text)
			}
			if !strings.Contains(out, "$x^2$") {
				t.Fatalf("math outside the code block not restored")
			}
		})
	}
}

func TestWriteReusesOneFile(t *testing.T) {
	g := NewGenerator(config.Default())
	g.TempDir = t.TempDir()
	first, ok := g.Write("# one", "")
	if !ok {
		t.Fatalf("first write failed")
	}
	second, ok := g.Write("# two", "")
	if !ok || second != first {
		t.Fatalf("expected same path, got %q and %q", first, second)
	}
	data, _ := os.ReadFile(second)
	if !strings.Contains(string(data), "two") || strings.Contains(string(data), "one") {
		t.Fatalf("expected file overwritten with latest content")
	}
	if err := g.Remove(); err != nil {
		t.Fatalf("remove: %v", err)
	}
}

type failingRenderer struct{}

func (failingRenderer) Render(string, []string) (string, error) { return "", errors.New("boom") }

func TestWriteFailureReturnsNoPath(t *testing.T) {
	g := NewGenerator(config.Default()).WithRenderer(failingRenderer{})
	g.TempDir = t.TempDir()
	if path, ok := g.Write("x", ""); ok || path != "" {
		t.Fatalf("expected failure, got %q", path)
	}

	g = NewGenerator(config.Default())
	g.TempDir = filepath.Join(t.TempDir(), "missing")
	if path, ok := g.Write("x", ""); ok || path != "" {
		t.Fatalf("expected failure for unusable temp dir, got %q", path)
	}
}

func TestTaskStops(t *testing.T) {
	var n atomic.Int32
	task := Every(5*time.Millisecond, func() { n.Add(1) })
	deadline := time.Now().Add(2 * time.Second)
	for n.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	task.Stop()
	task.Stop()
	after := n.Load()
	time.Sleep(30 * time.Millisecond)
	if n.Load() != after {
		t.Fatalf("task kept running after stop")
	}
	if after < 2 {
		t.Fatalf("expected task to tick, got %d", after)
	}
}
