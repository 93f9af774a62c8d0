package commands

import (
	"fmt"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/schema"
)

// Remove deletes the selected template instance. The selection moves to the
// previous sibling, else the next one, else the parent.
type Remove struct {
	Registry *schema.Registry
}

func (c *Remove) Name() string { return "remove" }

func (c *Remove) target(sel Selection) *domain.Node {
	n, _ := FindAncestor(c.Registry, sel.Anchor, func(el *schema.Element, n *domain.Node) bool {
		return el.IsRoot() && n.Parent() != nil
	})
	return n
}

func (c *Remove) Enabled(sel Selection) bool { return c.target(sel) != nil }

func (c *Remove) Execute(sel Selection, _ Args) (Result, error) {
	n := c.target(sel)
	if n == nil {
		return Result{}, notApplicable(c)
	}
	parent := n.Parent()
	next := n.PreviousSibling()
	if next == nil {
		next = n.NextSibling()
	}
	if next == nil {
		next = parent
	}
	n.Remove()
	return Result{Selection: Selection{Anchor: next}, Changed: []*domain.Node{parent}}, nil
}

// Replace retypes the selected placeholder or template instance into one of
// its conversions, given by Args.Template. The replacement is a default
// instance; the replaced subtree is discarded.
type Replace struct {
	Registry *schema.Registry
}

func (c *Replace) Name() string { return "replace" }

func (c *Replace) target(sel Selection) (*domain.Node, *schema.Element) {
	return FindAncestor(c.Registry, sel.Anchor, func(el *schema.Element, n *domain.Node) bool {
		return (el.IsRoot() || el.Kind == domain.KindPlaceholder) && n.Parent() != nil && len(el.Conversions) > 1
	})
}

func (c *Replace) Enabled(sel Selection) bool {
	n, _ := c.target(sel)
	return n != nil
}

// Options returns the names the selection can be replaced with.
func (c *Replace) Options(sel Selection) []string {
	n, el := c.target(sel)
	if n == nil {
		return nil
	}
	var out []string
	for _, name := range el.Conversions {
		if name != n.Type {
			out = append(out, name)
		}
	}
	return out
}

func (c *Replace) Execute(sel Selection, args Args) (Result, error) {
	n, el := c.target(sel)
	if n == nil {
		return Result{}, notApplicable(c)
	}
	name, ok := lookup(args.Template, el.Conversions)
	if !ok {
		return Result{}, fmt.Errorf("%s: %q is not a conversion of %s: %w", c.Name(), args.Template, el.Name, domain.ErrNotApplicable)
	}
	inst, err := c.Registry.Instantiate(name)
	if err != nil {
		return Result{}, err
	}
	parent := n.Parent()
	parent.InsertBefore(n, inst)
	n.Remove()
	return Result{Selection: Selection{Anchor: inst}, Changed: []*domain.Node{inst, parent}}, nil
}
