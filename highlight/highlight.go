package highlight

import (
	"log/slog"

	"github.com/dlclark/regexp2"
	"github.com/gdamore/tcell/v2"
)

// Tag classifies a highlighted span. Later tags take precedence where spans
// overlap.
type Tag int

const (
	TagNone Tag = iota
	TagKeyword
	TagString
	TagComment
	TagNumber
	TagTag
	TagAttr
)

func (t Tag) String() string {
	switch t {
	case TagKeyword:
		return "keyword"
	case TagString:
		return "string"
	case TagComment:
		return "comment"
	case TagNumber:
		return "number"
	case TagTag:
		return "tag"
	case TagAttr:
		return "attr"
	}
	return "none"
}

var tagColors = map[Tag]tcell.Color{
	TagKeyword: tcell.NewHexColor(0x569cd6),
	TagString:  tcell.NewHexColor(0xce9178),
	TagComment: tcell.NewHexColor(0x6a9955),
	TagNumber:  tcell.NewHexColor(0xb5cea8),
	TagTag:     tcell.NewHexColor(0x569cd6),
	TagAttr:    tcell.NewHexColor(0x9cdcfe),
}

// Style applies the tag's foreground color to base.
func (t Tag) Style(base tcell.Style) tcell.Style {
	if c, ok := tagColors[t]; ok {
		return base.Foreground(c)
	}
	return base
}

// Span is a tagged rune range [Start, End) of the text.
type Span struct {
	Tag        Tag
	Start, End int
}

type Rule struct {
	Tag     Tag
	Pattern *regexp2.Regexp
}

func rule(tag Tag, expr string) Rule {
	return Rule{Tag: tag, Pattern: regexp2.MustCompile(expr, regexp2.None)}
}

var (
	pythonRules = []Rule{
		rule(TagKeyword, `\b(def|class|if|else|elif|for|while|return|import|from|as|try|except|with|None|True|False|self|in|is|not|pass|lambda)\b`),
		rule(TagString, `(\".*?\"|'.*?')`),
		rule(TagComment, `#.*`),
		rule(TagNumber, `\b\d+\b`),
	}
	javaScriptRules = []Rule{
		rule(TagKeyword, `\b(function|var|let|const|if|else|for|while|return|import|export|class|async|await|new|this|true|false|null)\b`),
		rule(TagString, "(\\\".*?\\\"|'.*?`|`.*?`)"),
		rule(TagComment, `//.*|/\*[\s\S]*?\*/`),
		rule(TagNumber, `\b\d+\b`),
	}
	htmlRules = []Rule{
		rule(TagTag, `<[^>]+>`),
		rule(TagAttr, `\b[a-zA-Z0-9-]+(?==)`),
		rule(TagString, `\".*?\"|'.*?'`),
		rule(TagComment, `<!--[\s\S]*?-->`),
	}
	cssRules = []Rule{
		rule(TagKeyword, `\b(active|hover|focus|visited|link|root|media|import|font-face)\b`),
		rule(TagAttr, `\b[a-zA-Z-]+(?=:)`),
		rule(TagString, `\".*?\"|'.*?'`),
		rule(TagComment, `/\*[\s\S]*?\*/`),
	}
	// The heading rule is anchored to the whole text, so it only matches a
	// buffer that is a single heading line.
	markdownRules = []Rule{
		rule(TagKeyword, `^(#+.*)$`),
		rule(TagString, `(\*\*.*?\*\*|__.*?__)`),
		rule(TagComment, `(\[.*?\]\(.*?\))`),
		rule(TagTag, "(`.*?`)"),
	}
)

// Rules returns the ordered rule list for m. PlainText has none.
func (m Mode) Rules() []Rule {
	switch m {
	case Python:
		return pythonRules
	case JavaScript:
		return javaScriptRules
	case HTML:
		return htmlRules
	case CSS:
		return cssRules
	case Markdown:
		return markdownRules
	case PlainText:
		return nil
	}
	return nil
}

// Apply scans the whole text once per rule and returns every match as a
// span, rule by rule in declared order. Offsets are rune indexes.
func Apply(mode Mode, text string) []Span {
	rules := mode.Rules()
	if len(rules) == 0 {
		return nil
	}
	var spans []Span
	for _, r := range rules {
		m, err := r.Pattern.FindStringMatch(text)
		for m != nil && err == nil {
			spans = append(spans, Span{Tag: r.Tag, Start: m.Index, End: m.Index + m.Length})
			m, err = r.Pattern.FindNextMatch(m)
		}
		if err != nil {
			slog.Debug("highlight rule aborted", slog.String("mode", mode.String()), slog.String("tag", r.Tag.String()), slog.Any("err", err))
		}
	}
	return spans
}

// Overlay resolves spans into one tag per rune for a text of n runes. Where
// spans overlap the higher tag wins, whatever order the spans came in.
func Overlay(spans []Span, n int) []Tag {
	tags := make([]Tag, n)
	for _, s := range spans {
		end := min(s.End, n)
		for i := max(s.Start, 0); i < end; i++ {
			if s.Tag > tags[i] {
				tags[i] = s.Tag
			}
		}
	}
	return tags
}
