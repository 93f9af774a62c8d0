package commands

import (
	"fmt"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/reconcile"
	"github.com/aretw0/stencil/pkg/schema"
)

func collection(reg *schema.Registry, anchor *domain.Node) (*domain.Node, *schema.Element) {
	return FindAncestor(reg, anchor, func(el *schema.Element, _ *domain.Node) bool {
		return el.Kind == domain.KindGallery || el.Kind == domain.KindTabs
	})
}

// AddItem appends an item to the selected gallery or tab set and selects it.
// Args.Template picks a contained type; by default galleries add their only
// contained type or a placeholder, tab sets their first contained type.
type AddItem struct {
	Registry *schema.Registry
}

func (c *AddItem) Name() string { return "addItem" }

func (c *AddItem) Enabled(sel Selection) bool {
	n, _ := collection(c.Registry, sel.Anchor)
	return n != nil
}

func (c *AddItem) Execute(sel Selection, args Args) (Result, error) {
	n, el := collection(c.Registry, sel.Anchor)
	if n == nil {
		return Result{}, notApplicable(c)
	}

	var name string
	switch {
	case args.Template != "":
		var ok bool
		if name, ok = lookup(args.Template, el.Contains); !ok {
			return Result{}, fmt.Errorf("%s: %q is not contained by %s: %w", c.Name(), args.Template, el.Name, domain.ErrNotApplicable)
		}
	case el.Kind == domain.KindTabs && len(el.Contains) > 0:
		name = el.Contains[0]
	default:
		var err error
		if name, err = reconcile.GalleryItem(el); err != nil {
			return Result{}, err
		}
	}

	inst, err := c.Registry.Instantiate(name)
	if err != nil {
		return Result{}, err
	}
	n.Append(inst)
	return Result{Selection: Selection{Anchor: inst}, Changed: []*domain.Node{inst}}, nil
}

// SetCurrentItem selects the item at Args.Index of the selected gallery or tab set.
type SetCurrentItem struct {
	Registry *schema.Registry
}

func (c *SetCurrentItem) Name() string { return "setCurrentItem" }

func (c *SetCurrentItem) Enabled(sel Selection) bool {
	n, _ := collection(c.Registry, sel.Anchor)
	return n != nil && n.Len() > 0
}

func (c *SetCurrentItem) Execute(sel Selection, args Args) (Result, error) {
	n, _ := collection(c.Registry, sel.Anchor)
	if n == nil {
		return Result{}, notApplicable(c)
	}
	item := n.Child(args.Index)
	if item == nil {
		return Result{}, fmt.Errorf("%s: index %d out of range [0, %d): %w", c.Name(), args.Index, n.Len(), domain.ErrNotApplicable)
	}
	return Result{Selection: Selection{Anchor: item}}, nil
}
