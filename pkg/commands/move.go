package commands

import (
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/schema"
)

// MoveUp moves the selected container item above the previous item. The
// item's trailing placeholder travels with it.
type MoveUp struct {
	Registry *schema.Registry
}

func (c *MoveUp) Name() string { return "moveUp" }

func (c *MoveUp) Enabled(sel Selection) bool {
	item := containerItem(c.Registry, sel.Anchor)
	return item != nil && previousItem(c.Registry, item) != nil
}

func (c *MoveUp) Execute(sel Selection, _ Args) (Result, error) {
	item := containerItem(c.Registry, sel.Anchor)
	if item == nil {
		return Result{}, notApplicable(c)
	}
	prev := previousItem(c.Registry, item)
	if prev == nil {
		return Result{}, notApplicable(c)
	}
	jump(c.Registry, item, prev)
	return Result{Selection: sel, Changed: []*domain.Node{item.Parent()}}, nil
}

// MoveDown moves the selected container item below the next item.
type MoveDown struct {
	Registry *schema.Registry
}

func (c *MoveDown) Name() string { return "moveDown" }

func (c *MoveDown) Enabled(sel Selection) bool {
	item := containerItem(c.Registry, sel.Anchor)
	return item != nil && nextItem(c.Registry, item) != nil
}

func (c *MoveDown) Execute(sel Selection, _ Args) (Result, error) {
	item := containerItem(c.Registry, sel.Anchor)
	if item == nil {
		return Result{}, notApplicable(c)
	}
	next := nextItem(c.Registry, item)
	if next == nil {
		return Result{}, notApplicable(c)
	}
	jump(c.Registry, next, item)
	return Result{Selection: sel, Changed: []*domain.Node{item.Parent()}}, nil
}

// MoveLeft swaps the selected gallery item with the previous one.
type MoveLeft struct {
	Registry *schema.Registry
}

func (c *MoveLeft) Name() string { return "moveLeft" }

func (c *MoveLeft) Enabled(sel Selection) bool {
	item := galleryItem(c.Registry, sel.Anchor)
	return item != nil && item.PreviousSibling() != nil
}

func (c *MoveLeft) Execute(sel Selection, _ Args) (Result, error) {
	if !c.Enabled(sel) {
		return Result{}, notApplicable(c)
	}
	item := galleryItem(c.Registry, sel.Anchor)
	parent := item.Parent()
	parent.InsertBefore(item.PreviousSibling(), item)
	return Result{Selection: sel, Changed: []*domain.Node{parent}}, nil
}

// MoveRight swaps the selected gallery item with the next one.
type MoveRight struct {
	Registry *schema.Registry
}

func (c *MoveRight) Name() string { return "moveRight" }

func (c *MoveRight) Enabled(sel Selection) bool {
	item := galleryItem(c.Registry, sel.Anchor)
	return item != nil && item.NextSibling() != nil
}

func (c *MoveRight) Execute(sel Selection, _ Args) (Result, error) {
	if !c.Enabled(sel) {
		return Result{}, notApplicable(c)
	}
	item := galleryItem(c.Registry, sel.Anchor)
	parent := item.Parent()
	parent.InsertAfter(item.NextSibling(), item)
	return Result{Selection: sel, Changed: []*domain.Node{parent}}, nil
}

// containerItem returns the closest non-placeholder ancestor held by a container.
func containerItem(reg *schema.Registry, anchor *domain.Node) *domain.Node {
	n, _ := FindAncestor(reg, anchor, func(el *schema.Element, n *domain.Node) bool {
		return el.Kind != domain.KindPlaceholder && parentKind(reg, n, domain.KindContainer)
	})
	return n
}

// galleryItem returns the closest ancestor held by a gallery.
func galleryItem(reg *schema.Registry, anchor *domain.Node) *domain.Node {
	n, _ := FindAncestor(reg, anchor, func(_ *schema.Element, n *domain.Node) bool {
		return parentKind(reg, n, domain.KindGallery)
	})
	return n
}

func previousItem(reg *schema.Registry, n *domain.Node) *domain.Node {
	for cur := n.PreviousSibling(); cur != nil; cur = cur.PreviousSibling() {
		if !isPlaceholder(reg, cur) {
			return cur
		}
	}
	return nil
}

func nextItem(reg *schema.Registry, n *domain.Node) *domain.Node {
	for cur := n.NextSibling(); cur != nil; cur = cur.NextSibling() {
		if !isPlaceholder(reg, cur) {
			return cur
		}
	}
	return nil
}

// jump moves item, with its trailing placeholder, directly before target.
func jump(reg *schema.Registry, item, target *domain.Node) {
	parent := item.Parent()
	trailing := item.NextSibling()
	if trailing != nil && !isPlaceholder(reg, trailing) {
		trailing = nil
	}
	parent.InsertBefore(target, item)
	if trailing != nil {
		parent.InsertAfter(item, trailing)
	}
}
