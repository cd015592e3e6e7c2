package highlight

import (
	"reflect"
	"testing"
)

func TestDetectMode(t *testing.T) {
	cases := []struct {
		path string
		want Mode
	}{
		{"report.md", Markdown},
		{"script.py", Python},
		{"notes.txt", PlainText},
		{"", PlainText},
		{"INDEX.HTML", HTML},
		{"page.htm", PlainText},
		{"style.css", CSS},
		{"/src/app.js", JavaScript},
		{"Makefile", PlainText},
	}
	for _, tc := range cases {
		if got := DetectMode(tc.path); got != tc.want {
			t.Errorf("DetectMode(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestPlainTextHasNoSpans(t *testing.T) {
	if spans := Apply(PlainText, "def x = 'y' # 1"); spans != nil {
		t.Fatalf("expected no spans, got %v", spans)
	}
}

func TestApplyPython(t *testing.T) {
	text := "def f():\n    return 42 # done"
	spans := Apply(Python, text)
	want := []Span{
		{TagKeyword, 0, 3},
		{TagKeyword, 13, 19},
		{TagComment, 23, 29},
		{TagNumber, 20, 22},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("got %v, want %v", spans, want)
	}
}

func TestApplyJavaScript(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []Span
	}{
		{
			// a single-quoted string runs to the next backtick
			name: "quote closed by backtick",
			text: "let s = 'it' + `x`;",
			want: []Span{{TagKeyword, 0, 3}, {TagString, 8, 16}},
		},
		{
			name: "block comment spans lines",
			text: "/* a\nb */ return 1",
			want: []Span{{TagKeyword, 10, 16}, {TagComment, 0, 9}, {TagNumber, 17, 18}},
		},
		{
			name: "line comment after string",
			text: `var t = "a" // c`,
			want: []Span{{TagKeyword, 0, 3}, {TagString, 8, 11}, {TagComment, 12, 16}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Apply(JavaScript, tc.text); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHTMLCommentSpansLines(t *testing.T) {
	text := "<!-- a\nb -->"
	want := []Span{{TagTag, 0, 12}, {TagComment, 0, 12}}
	if got := Apply(HTML, text); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestApplyIsDeterministic(t *testing.T) {
	text := "<a href=\"x\">link</a> <!-- note -->"
	first := Apply(HTML, text)
	for i := 0; i < 5; i++ {
		if got := Apply(HTML, text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}

func TestHTMLAttributeLookahead(t *testing.T) {
	spans := Apply(HTML, `<img src="a.png">`)
	var attrs []Span
	for _, s := range spans {
		if s.Tag == TagAttr {
			attrs = append(attrs, s)
		}
	}
	if len(attrs) != 1 || attrs[0] != (Span{TagAttr, 5, 8}) {
		t.Fatalf("expected src attribute span, got %v", attrs)
	}
}

func TestCSSPropertyBeforeColon(t *testing.T) {
	spans := Apply(CSS, "a:hover { font-size: 1em; }")
	found := map[Span]bool{}
	for _, s := range spans {
		found[s] = true
	}
	if !found[Span{TagKeyword, 2, 7}] {
		t.Fatalf("expected hover keyword, got %v", spans)
	}
	if !found[Span{TagAttr, 10, 19}] {
		t.Fatalf("expected font-size property, got %v", spans)
	}
}

func TestMarkdownHeadingOnlyMatchesSingleLineText(t *testing.T) {
	if spans := Apply(Markdown, "# Title"); len(spans) != 1 || spans[0] != (Span{TagKeyword, 0, 7}) {
		t.Fatalf("expected heading span, got %v", spans)
	}
	for _, s := range Apply(Markdown, "# Title\nbody") {
		if s.Tag == TagKeyword {
			t.Fatalf("heading rule should not match multi-line text, got %v", s)
		}
	}
}

func TestMarkdownInlineRules(t *testing.T) {
	spans := Apply(Markdown, "**b** [l](u) `c`")
	want := []Span{
		{TagString, 0, 5},
		{TagComment, 6, 12},
		{TagTag, 13, 16},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("got %v, want %v", spans, want)
	}
}

func TestSpansUseRuneOffsets(t *testing.T) {
	spans := Apply(Python, "名前 = 'é'")
	if len(spans) != 1 || spans[0] != (Span{TagString, 5, 8}) {
		t.Fatalf("expected rune-based string span, got %v", spans)
	}
}

func TestOverlayLaterTagWins(t *testing.T) {
	// a comment inside a string: the comment tag stacks above the string
	text := `x = "a # b"`
	tags := Overlay(Apply(Python, text), len([]rune(text)))
	if tags[4] != TagString {
		t.Fatalf("expected string at opening quote, got %v", tags[4])
	}
	if tags[7] != TagComment {
		t.Fatalf("expected comment to override string, got %v", tags[7])
	}
	if tags[0] != TagNone {
		t.Fatalf("expected untagged identifier, got %v", tags[0])
	}
}

func TestEveryModeHasRulesExceptPlainText(t *testing.T) {
	for _, m := range Modes {
		if (m == PlainText) != (len(m.Rules()) == 0) {
			t.Errorf("mode %v has %d rules", m, len(m.Rules()))
		}
	}
}
