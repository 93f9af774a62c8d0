package markup

import (
	"strings"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/schema"
	"golang.org/x/net/html"
)

// Import upcasts external markup into a live document.
//
// Elements are recognized with the registry matchers: inside a template
// instance the slots of its element are tried first, then top-level templates.
// Only declared data attributes are kept. Text elements collect their text
// content. Unrecognized elements at document level become host nodes typed by
// their tag; inside a template instance they are unwrapped and their children
// imported in their place. Constrained text elements keep their direct text
// and import their slots. Conflict wrappers and their options are recognized
// by their host tags when the registry has merge support.
//
// The result is not reconciled.
func Import(reg *schema.Registry, markup string) (*domain.Document, error) {
	nodes, err := parseFragment(markup)
	if err != nil {
		return nil, err
	}
	doc := domain.NewDocument()
	for _, n := range nodes {
		importNode(reg, doc.Root, nil, n)
	}
	return doc, nil
}

// importNode imports h below parent. scope is the element of the closest
// template instance, nil at document level.
func importNode(reg *schema.Registry, parent *domain.Node, scope *schema.Element, h *html.Node) {
	switch h.Type {
	case html.ElementNode:
	case html.TextNode:
		if scope == nil && strings.TrimSpace(h.Data) != "" {
			parent.Text += collapse(h.Data)
		}
		return
	default:
		return
	}

	el, ok := match(reg, scope, h)
	if !ok {
		if scope != nil {
			for c := h.FirstChild; c != nil; c = c.NextSibling {
				importNode(reg, parent, scope, c)
			}
			return
		}
		n := domain.NewNode(h.Data, nil)
		for _, a := range h.Attr {
			n.SetAttr(a.Key, a.Val)
		}
		parent.Append(n)
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			importNode(reg, n, nil, c)
		}
		return
	}

	n := domain.NewNode(el.Name, nil)
	for _, a := range h.Attr {
		if _, declared := el.Attributes[a.Key]; declared {
			n.SetAttr(a.Key, a.Val)
		}
	}
	parent.Append(n)

	switch el.Kind {
	case domain.KindText:
		n.Text = collapse(textContent(h))
		return
	case domain.KindTextConstraint:
		n.Text = collapse(ownText(h))
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		importNode(reg, n, el, c)
	}
}

func match(reg *schema.Registry, scope *schema.Element, h *html.Node) (*schema.Element, bool) {
	// Slots are matched on the element alone: wrappers may sit between
	// the instance and its slot content.
	if scope != nil {
		if scope.Kind.IsGenerated() {
			return contained(reg, scope, h)
		}
		var slot *schema.Element
		for _, el := range scope.Children {
			if el.Kind != domain.KindPlaceholder && el.Match.Match(host{n: h}) {
				slot = el
			}
			if el.Conflict != nil && el.Conflict.Match.Match(host{n: h}) {
				slot = el.Conflict
			}
		}
		if slot != nil {
			return slot, true
		}
	}
	return reg.MatchHost(host{n: h}, func(el *schema.Element) bool {
		return el.IsRoot() && el.Kind != domain.KindPlaceholder
	})
}

// contained matches h against the items of a conflict wrapper or option.
func contained(reg *schema.Registry, scope *schema.Element, h *html.Node) (*schema.Element, bool) {
	for _, name := range scope.Contains {
		if el, ok := reg.ByName(name); ok && el.Match.Match(host{n: h}) {
			return el, true
		}
	}
	return nil, false
}

// ownText returns the text nodes directly below h.
func ownText(h *html.Node) string {
	var sb strings.Builder
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func textContent(h *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(h)
	return sb.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
