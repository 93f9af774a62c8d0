package commands

import (
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/schema"
)

// ResolveConflict settles a merge conflict on the version held by the
// selected option. The whole conflict is replaced by that version.
type ResolveConflict struct {
	Registry *schema.Registry
}

func (c *ResolveConflict) Name() string { return "resolveConflict" }

func (c *ResolveConflict) target(sel Selection) (*domain.Node, *schema.Element) {
	return FindAncestor(c.Registry, sel.Anchor, func(el *schema.Element, n *domain.Node) bool {
		return el.Kind == domain.KindConflictOption &&
			parentKind(c.Registry, n, domain.KindConflict) &&
			n.Parent().Parent() != nil
	})
}

func (c *ResolveConflict) Enabled(sel Selection) bool {
	n, _ := c.target(sel)
	return n != nil
}

func (c *ResolveConflict) Execute(sel Selection, _ Args) (Result, error) {
	option, el := c.target(sel)
	if option == nil {
		return Result{}, notApplicable(c)
	}
	version := option.Child(0)
	if version == nil {
		if len(el.Contains) == 0 {
			return Result{}, notApplicable(c)
		}
		inst, err := c.Registry.Instantiate(el.Contains[0])
		if err != nil {
			return Result{}, err
		}
		version = inst
	}

	wrapper := option.Parent()
	parent := wrapper.Parent()
	parent.InsertBefore(wrapper, version)
	wrapper.Remove()
	return Result{Selection: Selection{Anchor: version}, Changed: []*domain.Node{version, parent}}, nil
}
