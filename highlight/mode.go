package highlight

import (
	"path/filepath"
	"strings"
)

// Mode is the content language of a buffer. It selects the highlighting
// rules.
type Mode int

const (
	PlainText Mode = iota
	Python
	JavaScript
	HTML
	CSS
	Markdown
)

// Modes lists every mode in declaration order.
var Modes = []Mode{PlainText, Python, JavaScript, HTML, CSS, Markdown}

func (m Mode) String() string {
	switch m {
	case Python:
		return "Python"
	case JavaScript:
		return "JavaScript"
	case HTML:
		return "HTML"
	case CSS:
		return "CSS"
	case Markdown:
		return "Markdown"
	default:
		return "Plain Text"
	}
}

var extModes = map[string]Mode{
	".py":   Python,
	".html": HTML,
	".css":  CSS,
	".js":   JavaScript,
	".md":   Markdown,
}

// DetectMode picks a mode from the file extension. Paths without a mapped
// extension, including the empty path, are PlainText.
func DetectMode(path string) Mode {
	if path == "" {
		return PlainText
	}
	if m, ok := extModes[strings.ToLower(filepath.Ext(path))]; ok {
		return m
	}
	return PlainText
}
