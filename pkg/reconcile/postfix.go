package reconcile

import (
	"errors"
	"fmt"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/schema"
)

// ErrNoPlaceholder is returned when a dynamic element has no implicit placeholder.
var ErrNoPlaceholder = errors.New("dynamic element has no placeholder")

// RegisterDefaults registers the built-in postfixers on a registry in load phase.
func RegisterDefaults(reg *schema.Registry) error {
	defaults := []struct {
		kinds []domain.Kind
		fn    schema.Postfixer
	}{
		{[]domain.Kind{domain.KindElement, domain.KindText, domain.KindTextConstraint}, Element},
		{[]domain.Kind{domain.KindContainer}, Container},
		{[]domain.Kind{domain.KindGallery}, Gallery},
		{[]domain.Kind{domain.KindTabs}, Tabs},
		{[]domain.Kind{domain.KindConflict}, Conflict},
		{[]domain.Kind{domain.KindConflictOption}, ConflictOption},
	}
	for _, d := range defaults {
		if err := reg.RegisterPostfixer(d.kinds, d.fn); err != nil {
			return err
		}
	}
	return nil
}

// Element is the fixed-slot passthrough postfixer.
func Element(reg *schema.Registry, el *schema.Element, n *domain.Node) (bool, error) {
	return FixSlots(reg, el, n)
}

// Container keeps the children of a container interleaved with placeholders:
// a placeholder, then zero or more (item, placeholder) pairs.
func Container(reg *schema.Registry, el *schema.Element, n *domain.Node) (bool, error) {
	if el.Placeholder == nil {
		return false, fmt.Errorf("%s: %w", el.Name, ErrNoPlaceholder)
	}
	changed := false
	for {
		step, err := interleave(reg, el.Placeholder, n)
		if err != nil {
			return changed, err
		}
		if !step {
			return changed, nil
		}
		changed = true
	}
}

func interleave(reg *schema.Registry, ph *schema.Element, n *domain.Node) (bool, error) {
	changed := false
	isPlaceholder := func(c *domain.Node) bool {
		return c != nil && c.Type == ph.Name
	}
	insert := func(i int) error {
		p, err := reg.Instantiate(ph.Name)
		if err != nil {
			return err
		}
		n.InsertAt(i, p)
		changed = true
		return nil
	}

	// Placeholders of other elements carry their owner's conversions.
	for i := n.Len() - 1; i >= 0; i-- {
		c := n.Child(i)
		if el, ok := reg.Resolve(c); ok && el.Kind == domain.KindPlaceholder && c.Type != ph.Name {
			n.RemoveAt(i)
			changed = true
		}
	}

	// Collapse runs of placeholders, keeping the last of each run.
	for i := n.Len() - 2; i >= 0; i-- {
		if isPlaceholder(n.Child(i)) && isPlaceholder(n.Child(i+1)) {
			n.RemoveAt(i)
			changed = true
		}
	}

	for i := 0; i < n.Len(); i++ {
		if isPlaceholder(n.Child(i)) || isPlaceholder(n.Child(i+1)) {
			continue
		}
		if err := insert(i + 1); err != nil {
			return changed, err
		}
		i++
	}

	if n.Len() > 0 && !isPlaceholder(n.Child(0)) {
		if err := insert(0); err != nil {
			return changed, err
		}
	}
	if n.Len() == 0 {
		if err := insert(0); err != nil {
			return changed, err
		}
	}
	return changed, nil
}

// Gallery keeps galleries non-empty. An empty gallery accepting a single item
// type receives one instance of it, any other empty gallery a placeholder.
// Items are not interleaved with placeholders.
func Gallery(reg *schema.Registry, el *schema.Element, n *domain.Node) (bool, error) {
	if n.Len() > 0 {
		return false, nil
	}
	name, err := GalleryItem(el)
	if err != nil {
		return false, err
	}
	return fill(reg, n, name)
}

// Tabs keeps tab sets non-empty by inserting one instance of the first
// contained type.
func Tabs(reg *schema.Registry, el *schema.Element, n *domain.Node) (bool, error) {
	if n.Len() > 0 {
		return false, nil
	}
	if len(el.Contains) == 0 {
		if el.Placeholder == nil {
			return false, fmt.Errorf("%s: %w", el.Name, ErrNoPlaceholder)
		}
		return fill(reg, n, el.Placeholder.Name)
	}
	return fill(reg, n, el.Contains[0])
}

// GalleryItem returns the type a new item of the gallery el starts as: its
// only contained type, or its placeholder.
func GalleryItem(el *schema.Element) (string, error) {
	if len(el.Contains) == 1 {
		return el.Contains[0], nil
	}
	if el.Placeholder == nil {
		return "", fmt.Errorf("%s: %w", el.Name, ErrNoPlaceholder)
	}
	return el.Placeholder.Name, nil
}

// Conflict keeps only the options of a conflict wrapper. A wrapper left
// without options receives an empty one.
func Conflict(reg *schema.Registry, el *schema.Element, n *domain.Node) (bool, error) {
	return keepOnly(reg, el, n, false)
}

// ConflictOption keeps exactly one version of the text element in an option.
func ConflictOption(reg *schema.Registry, el *schema.Element, n *domain.Node) (bool, error) {
	return keepOnly(reg, el, n, true)
}

// keepOnly drops the children of n not of the type el contains, optionally
// beyond the first kept one, and fills n when nothing is left.
func keepOnly(reg *schema.Registry, el *schema.Element, n *domain.Node, single bool) (bool, error) {
	if len(el.Contains) == 0 {
		return false, fmt.Errorf("%s: %w", el.Name, ErrNoPlaceholder)
	}
	want := el.Contains[0]
	changed := false
	kept := 0
	for i := 0; i < n.Len(); {
		if n.Child(i).Type != want || (single && kept > 0) {
			n.RemoveAt(i)
			changed = true
			continue
		}
		kept++
		i++
	}
	if kept > 0 {
		return changed, nil
	}
	return fill(reg, n, want)
}

func fill(reg *schema.Registry, n *domain.Node, name string) (bool, error) {
	inst, err := reg.Instantiate(name)
	if err != nil {
		return false, err
	}
	n.Append(inst)
	return true, nil
}
