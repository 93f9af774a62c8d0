package commands

import (
	"fmt"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/schema"
)

// Insert places a new instance of Args.Template at the selection: in place of
// a selected placeholder, after the selected item of a container, gallery or
// tab set, or at the end of the selected collection.
type Insert struct {
	Registry *schema.Registry
}

func (c *Insert) Name() string { return "insert" }

func (c *Insert) target(sel Selection) (*domain.Node, *schema.Element) {
	return FindAncestor(c.Registry, sel.Anchor, func(el *schema.Element, n *domain.Node) bool {
		return (el.Kind == domain.KindPlaceholder && n.Parent() != nil) || el.Kind.IsDynamic()
	})
}

func (c *Insert) Enabled(sel Selection) bool {
	n, el := c.target(sel)
	return n != nil && len(insertable(el)) > 0
}

// Options returns the names that can be inserted at the selection.
func (c *Insert) Options(sel Selection) []string {
	n, el := c.target(sel)
	if n == nil {
		return nil
	}
	return insertable(el)
}

func (c *Insert) Execute(sel Selection, args Args) (Result, error) {
	n, el := c.target(sel)
	if n == nil {
		return Result{}, notApplicable(c)
	}
	name, ok := lookup(args.Template, insertable(el))
	if !ok {
		return Result{}, fmt.Errorf("%s: %q cannot be inserted into %s: %w", c.Name(), args.Template, el.Name, domain.ErrNotApplicable)
	}
	inst, err := c.Registry.Instantiate(name)
	if err != nil {
		return Result{}, err
	}

	parent := n
	switch {
	case el.Kind == domain.KindPlaceholder:
		parent = n.Parent()
		parent.InsertBefore(n, inst)
		n.Remove()
	case childOf(n, sel.Anchor) != nil:
		n.InsertAfter(childOf(n, sel.Anchor), inst)
	default:
		n.Append(inst)
	}
	return Result{Selection: Selection{Anchor: inst}, Changed: []*domain.Node{inst, parent}}, nil
}

// insertable lists what may fill a placeholder or join a collection.
func insertable(el *schema.Element) []string {
	if el.Kind == domain.KindPlaceholder {
		var out []string
		for _, name := range el.Conversions {
			if name != el.Name {
				out = append(out, name)
			}
		}
		return out
	}
	return el.Contains
}
