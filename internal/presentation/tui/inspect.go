package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/stencil/pkg/schema"
)

// InspectMarkdown describes the schema elements as a markdown table.
func InspectMarkdown(elements []*schema.Element) string {
	var sb strings.Builder
	sb.WriteString("# Schema\n\n")
	sb.WriteString("| Element | Kind | Match | Accepts | Contains |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, el := range elements {
		name := "`" + el.Name + "`"
		if el.IsRoot() {
			name = fmt.Sprintf("**%s** `%s`", el.Label(), el.Name)
		}
		accepts := ""
		if len(el.Conversions) > 1 {
			accepts = code(el.Conversions[1:])
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			name, el.Kind, match(el.Match), accepts, code(el.Contains)))
	}
	return sb.String()
}

func match(m schema.Matcher) string {
	if m.Tag == "" && len(m.Classes) == 0 {
		return ""
	}
	s := m.Tag
	for _, c := range m.Classes {
		s += "." + c
	}
	return "`" + s + "`"
}

func code(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = "`" + n + "`"
	}
	return strings.Join(out, ", ")
}
