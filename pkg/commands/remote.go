package commands

import (
	"errors"
	"fmt"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/schema"
)

// Remote operations.
const (
	OpInsert     = "insert"
	OpMove       = "move"
	OpReplace    = "replace"
	OpRemove     = "remove"
	OpAttributes = "attributes"
)

// Positions of remote inserts and moves.
const (
	PositionBefore = "before"
	PositionAfter  = "after"
	PositionEnd    = "end"
)

// ErrUnknownOperation is returned for a remote operation outside the Op constants.
var ErrUnknownOperation = errors.New("unknown remote operation")

// Remote applies raw structural operations for an external editing surface.
// Insert and move address children of the selected node by index; replace,
// remove and attributes address the selected node itself. Nothing is repaired
// here: the reconciliation that follows restores the schema.
type Remote struct {
	Registry *schema.Registry
}

func (c *Remote) Name() string { return "remoteControl" }

func (c *Remote) Enabled(sel Selection) bool { return sel.Anchor != nil }

func (c *Remote) Execute(sel Selection, args Args) (Result, error) {
	if sel.Anchor == nil {
		return Result{}, notApplicable(c)
	}
	switch args.Operation {
	case OpInsert:
		return c.insert(sel.Anchor, args)
	case OpMove:
		return c.move(sel.Anchor, args)
	case OpReplace:
		return c.replace(sel.Anchor, args)
	case OpRemove:
		return c.remove(sel.Anchor)
	case OpAttributes:
		for k, v := range args.Attributes {
			sel.Anchor.SetAttr(k, v)
		}
		return Result{Selection: sel, Changed: []*domain.Node{sel.Anchor}}, nil
	default:
		return Result{}, fmt.Errorf("%s: %w: %q", c.Name(), ErrUnknownOperation, args.Operation)
	}
}

func (c *Remote) insert(parent *domain.Node, args Args) (Result, error) {
	name, ok := c.resolve(args.Template)
	if !ok {
		return Result{}, fmt.Errorf("%s: %w: %q", c.Name(), domain.ErrUnresolved, args.Template)
	}
	inst, err := c.Registry.Instantiate(name)
	if err != nil {
		return Result{}, err
	}
	if err := c.place(parent, inst, args); err != nil {
		return Result{}, err
	}
	return Result{Selection: Selection{Anchor: inst}, Changed: []*domain.Node{inst, parent}}, nil
}

func (c *Remote) move(parent *domain.Node, args Args) (Result, error) {
	target := parent.Child(args.Target)
	if target == nil {
		return Result{}, c.outOfRange(parent, args.Target)
	}
	if err := c.place(parent, target, args); err != nil {
		return Result{}, err
	}
	return Result{Selection: Selection{Anchor: target}, Changed: []*domain.Node{parent}}, nil
}

// replace retypes the node in place, keeping its children and attributes.
func (c *Remote) replace(target *domain.Node, args Args) (Result, error) {
	name, ok := c.resolve(args.Template)
	if !ok {
		return Result{}, fmt.Errorf("%s: %w: %q", c.Name(), domain.ErrUnresolved, args.Template)
	}
	target.Type = name
	changed := []*domain.Node{target}
	if p := target.Parent(); p != nil {
		changed = append(changed, p)
	}
	return Result{Selection: Selection{Anchor: target}, Changed: changed}, nil
}

func (c *Remote) remove(target *domain.Node) (Result, error) {
	parent := target.Parent()
	if parent == nil {
		return Result{}, notApplicable(c)
	}
	target.Remove()
	return Result{Selection: Selection{Anchor: parent}, Changed: []*domain.Node{parent}}, nil
}

// place puts n below parent at args.Position relative to the child at
// args.Reference. An empty position appends.
func (c *Remote) place(parent, n *domain.Node, args Args) error {
	switch args.Position {
	case "", PositionEnd:
		parent.Append(n)
		return nil
	case PositionBefore, PositionAfter:
	default:
		return fmt.Errorf("%s: unknown position %q: %w", c.Name(), args.Position, domain.ErrNotApplicable)
	}
	ref := parent.Child(args.Reference)
	if ref == nil {
		return c.outOfRange(parent, args.Reference)
	}
	if ref == n {
		return nil
	}
	if args.Position == PositionBefore {
		parent.InsertBefore(ref, n)
	} else {
		parent.InsertAfter(ref, n)
	}
	return nil
}

func (c *Remote) resolve(name string) (string, bool) {
	for _, candidate := range []string{name, schema.RootPrefix + name} {
		if _, ok := c.Registry.ByName(candidate); ok {
			return candidate, true
		}
	}
	return "", false
}

func (c *Remote) outOfRange(parent *domain.Node, i int) error {
	return fmt.Errorf("%s: index %d out of range [0, %d): %w", c.Name(), i, parent.Len(), domain.ErrNotApplicable)
}
