package markup

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/stencil/pkg/schema"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrSnippetRoot is returned when a template snippet does not have exactly one root element.
var ErrSnippetRoot = errors.New("template markup must have exactly one root element")

// ParseSnippet parses a template snippet into a SourceNode tree.
//
// Snippets are read as XML, so a self-closing element never swallows its
// following siblings and no HTML content model reshapes the tree. The decoder
// runs in lenient mode: HTML void elements close themselves and HTML entities
// resolve. Text, comments and whitespace are ignored; attribute order is
// preserved.
func ParseSnippet(markup string) (*schema.SourceNode, error) {
	dec := xml.NewDecoder(strings.NewReader(markup))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity

	var root *schema.SourceNode
	var stack []*schema.SourceNode
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse markup: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			src := &schema.SourceNode{Tag: qualified(t.Name)}
			for _, a := range t.Attr {
				src.Attrs = append(src.Attrs, schema.Attr{Key: qualified(a.Name), Value: a.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, src)
			} else if root != nil {
				return nil, ErrSnippetRoot
			} else {
				root = src
			}
			stack = append(stack, src)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) == 0 && strings.TrimSpace(string(t)) != "" {
				return nil, fmt.Errorf("%w: stray text %q", ErrSnippetRoot, strings.TrimSpace(string(t)))
			}
		}
	}
	if root == nil {
		return nil, ErrSnippetRoot
	}
	return root, nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// RenderSnippet renders a SourceNode tree back into template markup.
func RenderSnippet(src *schema.SourceNode) (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, fromSource(src)); err != nil {
		return "", fmt.Errorf("failed to render snippet: %w", err)
	}
	return sb.String(), nil
}

func fromSource(src *schema.SourceNode) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: src.Tag, DataAtom: atom.Lookup([]byte(src.Tag))}
	for _, a := range src.Attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Value})
	}
	for _, c := range src.Children {
		n.AppendChild(fromSource(c))
	}
	return n
}

// parseFragment parses markup in a body context.
func parseFragment(markup string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}
	return nodes, nil
}

// host adapts a parsed HTML element to schema.HostElement.
type host struct {
	n *html.Node
}

func (h host) Tag() string { return h.n.Data }

func (h host) HasClass(class string) bool {
	for _, a := range h.n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func (h host) HostParent() (schema.HostElement, bool) {
	p := h.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil, false
	}
	return host{n: p}, true
}
