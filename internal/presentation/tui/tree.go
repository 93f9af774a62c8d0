package tui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/schema"
	"github.com/muesli/termenv"
)

// TreeRenderer prints live documents as an indented tree, colored by how
// each node resolves against the schema.
type TreeRenderer struct {
	reg     *schema.Registry
	profile termenv.Profile
}

// NewTreeRenderer creates a renderer. Use termenv.Ascii for plain output.
func NewTreeRenderer(reg *schema.Registry, profile termenv.Profile) *TreeRenderer {
	return &TreeRenderer{reg: reg, profile: profile}
}

// Render writes doc to w.
func (r *TreeRenderer) Render(w io.Writer, doc *domain.Document) {
	fmt.Fprintln(w, r.label(doc.Root))
	r.children(w, doc.Root, "")
}

func (r *TreeRenderer) children(w io.Writer, n *domain.Node, prefix string) {
	kids := n.Children()
	for i, c := range kids {
		branch, next := "├── ", "│   "
		if i == len(kids)-1 {
			branch, next = "└── ", "    "
		}
		fmt.Fprintln(w, prefix+branch+r.label(c))
		r.children(w, c, prefix+next)
	}
}

func (r *TreeRenderer) label(n *domain.Node) string {
	p := r.profile
	var s string
	el, ok := r.reg.Resolve(n)
	switch {
	case n.Type == domain.RootType:
		s = p.String(n.Type).Bold().String()
	case !ok:
		s = p.String(n.Type).Foreground(p.Color("#94a3b8")).String()
	case el.Kind == domain.KindPlaceholder:
		s = p.String(n.Type).Faint().String()
	case el.IsRoot():
		s = p.String(n.Type).Foreground(p.Color("#818cf8")).Bold().String() + " " +
			p.String("("+el.Kind.String()+")").Faint().String()
	default:
		s = p.String(n.Type).Foreground(p.Color("#c084fc")).String()
	}

	if attrs := attributes(n.Attributes); attrs != "" {
		s += " " + p.String(attrs).Foreground(p.Color("#fbbf24")).String()
	}
	if n.Text != "" {
		s += " " + p.String(fmt.Sprintf("%q", n.Text)).Foreground(p.Color("#34d399")).String()
	}
	return s
}

func attributes(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + attrs[k]
	}
	return "[" + strings.Join(parts, " ") + "]"
}
