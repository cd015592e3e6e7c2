package preview

import (
	"bytes"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Renderer converts Markdown to an HTML fragment. math holds the regions
// ProtectMath replaced; a renderer that transforms code text must put them
// back first so placeholders survive only in plain text.
type Renderer interface {
	Render(markdown string, math []string) (string, error)
}

// Markdown renders GitHub flavored Markdown with goldmark. Fenced code blocks
// are colored by chroma using the style named by Style.
type Markdown struct {
	mu   sync.Mutex
	md   goldmark.Markdown
	code *codeBlockRenderer
}

// NewMarkdown builds the renderer. style is consulted on every code block so
// appearance changes apply without rebuilding.
func NewMarkdown(style func() string) *Markdown {
	code := &codeBlockRenderer{
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(4)),
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(code, 200)),
		),
	)
	return &Markdown{md: md, code: code}
}

func (m *Markdown) Render(markdown string, math []string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.code.math = math
	defer func() { m.code.math = nil }()

	var buf bytes.Buffer
	if err := m.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type codeBlockRenderer struct {
	style     func() string
	formatter *chromahtml.Formatter
	// math is set for the duration of one conversion.
	math []string
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}
	// Lexers split placeholders into several tokens.
	src := RestoreMath(code.String(), r.math)

	var lexer chroma.Lexer
	if lang := n.Language(source); lang != nil {
		lexer = lexers.Get(string(lang))
	}
	if lexer == nil {
		lexer = lexers.Analyse(src)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, src)
	if err != nil {
		return ast.WalkSkipChildren, writePlainCode(w, []byte(src))
	}
	if err := r.formatter.Format(w, styles.Get(r.style()), it); err != nil {
		return ast.WalkSkipChildren, err
	}
	return ast.WalkSkipChildren, nil
}

func writePlainCode(w util.BufWriter, code []byte) error {
	if _, err := w.WriteString("<pre><code>"); err != nil {
		return err
	}
	if _, err := w.Write(util.EscapeHTML(code)); err != nil {
		return err
	}
	_, err := w.WriteString("</code></pre>\n")
	return err
}
