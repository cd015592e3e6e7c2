package preview

import (
	"bytes"
	"html/template"
	"net/url"
	"path/filepath"
	"strings"
)

// MathJaxURL is the client-side math renderer the document loads.
const MathJaxURL = "https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js"

var documentTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
{{if .BaseHref}}<base href="{{.BaseHref}}">
{{end}}<script>
setInterval(() => { location.reload(); }, {{.ReloadMillis}});
window.onbeforeunload = function() { localStorage.setItem('scrollPos', window.scrollY); };
window.onload = function() {
  if (localStorage.getItem('scrollPos'))
    window.scrollTo(0, parseInt(localStorage.getItem('scrollPos')));
};
window.MathJax = {
  tex: {
    inlineMath: [['$', '$'], ['\\(', '\\)']],
    displayMath: [['$$', '$$'], ['\\[', '\\]']],
    processEscapes: true,
    packages: {'[+]': ['mhchem']}
  },
  loader: { load: ['[tex]/mhchem'] }
};
</script>
<script id="MathJax-script" async src="{{.MathJaxURL}}"></script>
<style>
body { background-color: {{.Background}}; color: {{.Foreground}}; font-family: '{{.FontFamily}}', sans-serif; font-size: {{.FontSize}}px; line-height: 1.7; max-width: 850px; margin: 0 auto; padding: 40px; }
h1 { border-bottom: 2px solid #569CD6; padding-bottom: 10px; }
pre { padding: 15px; border-radius: 8px; overflow-x: auto; }
table { border-collapse: collapse; }
th, td { border: 1px solid #808080; padding: 4px 10px; }
.MathJax { font-size: 1.1em !important; }
</style>
</head>
<body>{{.Body}}</body>
</html>
`))

type document struct {
	BaseHref     template.URL
	ReloadMillis int
	MathJaxURL   string
	Background   template.CSS
	Foreground   template.CSS
	FontFamily   string
	FontSize     int
	Body         template.HTML
}

func (d document) render() (string, error) {
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// baseHref returns a file URL for the directory holding sourcePath, with a
// trailing slash so relative links resolve inside it.
func baseHref(sourcePath string) string {
	if sourcePath == "" {
		return ""
	}
	dir, err := filepath.Abs(filepath.Dir(sourcePath))
	if err != nil {
		return ""
	}
	p := filepath.ToSlash(dir)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
