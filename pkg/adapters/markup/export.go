package markup

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/schema"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Export downcasts a live document into data markup.
//
// Template instances render with their element tag, matcher classes and
// declared data attributes. Placeholders render nothing. Host nodes render as
// elements named after their type with all of their attributes.
func Export(reg *schema.Registry, doc *domain.Document) (string, error) {
	var sb strings.Builder
	for _, n := range doc.Root.Children() {
		h := downcast(reg, n)
		if h == nil {
			continue
		}
		if err := html.Render(&sb, h); err != nil {
			return "", fmt.Errorf("failed to render %s: %w", n.Type, err)
		}
	}
	return sb.String(), nil
}

func downcast(reg *schema.Registry, n *domain.Node) *html.Node {
	el, ok := reg.Resolve(n)
	if ok && el.Kind == domain.KindPlaceholder {
		return nil
	}

	var h *html.Node
	if ok {
		h = element(el.Match.Tag)
		if len(el.Match.Classes) > 0 {
			h.Attr = append(h.Attr, html.Attribute{Key: "class", Val: strings.Join(el.Match.Classes, " ")})
		}
		for _, key := range el.AttributeNames() {
			if v, set := n.Attr(key); set {
				h.Attr = append(h.Attr, html.Attribute{Key: key, Val: v})
			}
		}
	} else {
		h = element(n.Type)
		keys := make([]string, 0, len(n.Attributes))
		for k := range n.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			h.Attr = append(h.Attr, html.Attribute{Key: k, Val: n.Attributes[k]})
		}
	}

	if n.Text != "" {
		h.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
	}
	for _, c := range n.Children() {
		if ch := downcast(reg, c); ch != nil {
			h.AppendChild(ch)
		}
	}
	return h
}

func element(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}
