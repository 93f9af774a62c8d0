package reconcile

import (
	"fmt"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/schema"
)

// FixSlots seats the children of n into the fixed slots of el.
//
// Seating runs in two passes over the children in document order. The direct
// pass seats a child whose type is the slot name or the name of its conflict
// wrapper; the indirect pass seats a child whose type is in the slot's
// conversions. A slot keeps the first child seated in it and a child occupies
// at most one slot, so a direct match is never displaced. Unseated slots
// receive a default instance and unseated children are dropped. The child
// list is rebuilt in declared slot order.
//
// Elements without slots are left untouched.
func FixSlots(reg *schema.Registry, el *schema.Element, n *domain.Node) (bool, error) {
	if !el.HasSlots() {
		return false, nil
	}
	current := n.Children()
	slots := el.Children
	seats := make([]*domain.Node, len(slots))
	seated := make(map[*domain.Node]bool, len(current))

	seat := func(match func(slot *schema.Element, c *domain.Node) bool) {
		for _, c := range current {
			if seated[c] {
				continue
			}
			for i, slot := range slots {
				if seats[i] == nil && match(slot, c) {
					seats[i] = c
					seated[c] = true
					break
				}
			}
		}
	}
	seat(func(slot *schema.Element, c *domain.Node) bool {
		return c.Type == slot.Name || (slot.Conflict != nil && c.Type == slot.Conflict.Name)
	})
	seat(func(slot *schema.Element, c *domain.Node) bool { return slot.Accepts(c.Type) })

	changed := false
	fresh := make(map[int]bool)
	for i, slot := range slots {
		if seats[i] != nil {
			continue
		}
		inst, err := reg.Instantiate(slot.Name)
		if err != nil {
			return false, fmt.Errorf("slot %d of %s: %w", i, el.Name, err)
		}
		seats[i] = inst
		fresh[i] = true
		changed = true
	}
	if !sameChildren(current, seats) {
		changed = true
	}
	n.SetChildren(seats)

	for i := range slots {
		if !fresh[i] {
			continue
		}
		if _, err := FixSlots(reg, slots[i], seats[i]); err != nil {
			return changed, err
		}
	}
	return changed, nil
}

func sameChildren(a, b []*domain.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
