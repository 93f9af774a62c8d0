package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/schema"
)

// GraphOverlay contains document data to visualize on the schema graph.
type GraphOverlay struct {
	// Used lists the canonical names instantiated by a document.
	Used []string
}

// GenerateMermaid produces a Mermaid flowchart of the schema tree.
// It applies semantic styling:
// - Dynamic (container, gallery, tabs): [[Subroutine]]
// - Text: [/Parallelogram/]
// - Placeholder: ((Circle))
// - Default: [Rectangle]
// Slots and placeholders hang from their owner with solid arrows, conversions
// are dotted and contained item types are thick.
func GenerateMermaid(elements []*schema.Element, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, el := range elements {
		id := sanitizeMermaidID(el.Name)

		opener, closer := "[", "]"
		switch {
		case el.Kind.IsDynamic():
			opener, closer = "[[", "]]"
		case el.Kind == domain.KindText || el.Kind == domain.KindTextConstraint:
			opener, closer = "[/", "/]"
		case el.Kind.IsGenerated():
			opener, closer = "{{", "}}"
		case el.Kind == domain.KindPlaceholder:
			opener, closer = "((", "))"
		}

		label := el.Short
		if el.IsRoot() {
			label = el.Label()
		}
		label = strings.ReplaceAll(label, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, label, closer))

		for _, c := range el.Children {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", id, sanitizeMermaidID(c.Name)))
		}
		if el.Placeholder != nil {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", id, sanitizeMermaidID(el.Placeholder.Name)))
		}
		for _, item := range el.Contains {
			sb.WriteString(fmt.Sprintf("    %s ==> %s\n", id, sanitizeMermaidID(item)))
		}
		// Placeholders convert to exactly what their owner contains.
		if el.Kind == domain.KindPlaceholder {
			continue
		}
		for _, conv := range el.Conversions {
			if conv == el.Name {
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", id, sanitizeMermaidID(conv)))
		}
	}

	if overlay != nil && len(overlay.Used) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef used fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range overlay.Used {
			id := sanitizeMermaidID(name)
			if !seen[id] && id != "" {
				seen[id] = true
				sb.WriteString(fmt.Sprintf("    class %s used;\n", id))
			}
		}
	}

	return sb.String()
}

// UsedElements collects the canonical names instantiated in doc, in document order.
func UsedElements(reg *schema.Registry, doc *domain.Document) []string {
	var used []string
	doc.Root.Walk(func(n *domain.Node) bool {
		if _, ok := reg.Resolve(n); ok {
			used = append(used, n.Type)
		}
		return true
	})
	return used
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
