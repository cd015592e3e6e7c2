package preview

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// mathPattern matches display math, inline math, LaTeX environments and
// mhchem formulas, shortest first within each alternative.
var mathPattern = regexp2.MustCompile(
	`(\$\$.*?\$\$|\\begin\{.*?\}.*?\\end\{.*?\}|\\ce\{.*?\}|\$.*?\$)`,
	regexp2.Singleline,
)

func placeholder(i int) string {
	return fmt.Sprintf("@@MATH%d@@", i)
}

// ProtectMath swaps every math region for an opaque placeholder so Markdown
// conversion leaves it alone. The regions are returned in placeholder order.
func ProtectMath(text string) (string, []string) {
	var blocks []string
	out, err := mathPattern.ReplaceFunc(text, func(m regexp2.Match) string {
		blocks = append(blocks, m.String())
		return placeholder(len(blocks) - 1)
	}, -1, -1)
	if err != nil {
		return text, nil
	}
	return out, blocks
}

// RestoreMath puts the protected regions back verbatim.
func RestoreMath(html string, blocks []string) string {
	for i, b := range blocks {
		html = strings.ReplaceAll(html, placeholder(i), b)
	}
	return html
}
