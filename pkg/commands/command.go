package commands

import (
	"fmt"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/schema"
)

// Selection is the caret position of the editing surface.
type Selection struct {
	Anchor *domain.Node
}

// Args carries the optional arguments of a command.
type Args struct {
	// Template names the target type of Replace, AddItem, Insert and remote
	// insert or replace, either canonical or as a top-level template name.
	Template string
	// Index selects a gallery item for SetCurrentItem.
	Index int

	// Operation selects the remote operation, one of the Op constants.
	Operation string
	// Position places remote inserts and moves relative to Reference.
	Position string
	// Reference is the child index remote inserts and moves are placed at.
	Reference int
	// Target is the child index a remote move picks up.
	Target int
	// Attributes are set on the selected node by the remote attributes operation.
	Attributes map[string]string
}

// Result reports the outcome of a command.
type Result struct {
	// Selection is where the caret should move.
	Selection Selection
	// Changed lists the structurally touched nodes to reconcile.
	Changed []*domain.Node
}

// Command is one editing operation bound to a registry.
type Command interface {
	Name() string
	// Enabled reports whether the command applies to the selection.
	Enabled(sel Selection) bool
	// Execute runs the command. It fails with domain.ErrNotApplicable when
	// the command is not enabled.
	Execute(sel Selection, args Args) (Result, error)
}

// Predicate tests a resolved ancestor.
type Predicate func(el *schema.Element, n *domain.Node) bool

// FindAncestor walks from anchor upward, anchor included, and returns the
// first node whose element satisfies predicate. Unresolved nodes are skipped.
func FindAncestor(reg *schema.Registry, anchor *domain.Node, predicate Predicate) (*domain.Node, *schema.Element) {
	for cur := anchor; cur != nil; cur = cur.Parent() {
		el, ok := reg.Resolve(cur)
		if ok && predicate(el, cur) {
			return cur, el
		}
	}
	return nil, nil
}

// All returns every built-in command bound to reg.
func All(reg *schema.Registry) []Command {
	return []Command{
		&MoveUp{Registry: reg},
		&MoveDown{Registry: reg},
		&MoveLeft{Registry: reg},
		&MoveRight{Registry: reg},
		&Remove{Registry: reg},
		&Replace{Registry: reg},
		&AddItem{Registry: reg},
		&SetCurrentItem{Registry: reg},
		&Insert{Registry: reg},
		&ResolveConflict{Registry: reg},
		&Remote{Registry: reg},
	}
}

func notApplicable(c Command) error {
	return fmt.Errorf("%s: %w", c.Name(), domain.ErrNotApplicable)
}

// parentKind reports whether the parent of n resolves to an element of kind k.
func parentKind(reg *schema.Registry, n *domain.Node, k domain.Kind) bool {
	el, ok := reg.Resolve(n.Parent())
	return ok && el.Kind == k
}

func isPlaceholder(reg *schema.Registry, n *domain.Node) bool {
	el, ok := reg.Resolve(n)
	return ok && el.Kind == domain.KindPlaceholder
}

// childOf returns the child of ancestor on the path up from anchor, or nil
// when anchor is ancestor or not below it.
func childOf(ancestor, anchor *domain.Node) *domain.Node {
	for cur := anchor; cur != nil; cur = cur.Parent() {
		if cur.Parent() == ancestor {
			return cur
		}
	}
	return nil
}

// lookup resolves a command argument against the names an element accepts.
func lookup(name string, accepted []string) (string, bool) {
	for _, candidate := range []string{name, schema.RootPrefix + name} {
		for _, a := range accepted {
			if a == candidate {
				return a, true
			}
		}
	}
	return "", false
}
