package domain

// ChangeOp classifies a single tree change.
type ChangeOp string

const (
	OpInsert     ChangeOp = "insert"
	OpRemove     ChangeOp = "remove"
	OpRetype     ChangeOp = "retype"
	OpAttributes ChangeOp = "attributes"
	OpText       ChangeOp = "text"
)

// Change is one positional difference between two trees.
// It is designed to be serialized to JSON for reporting.
type Change struct {
	Op   ChangeOp `json:"op"`
	Path []int    `json:"path"`
	// Before and After carry the node types for insert, remove and retype.
	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
	// Attributes contains only changed, added or deleted keys.
	// For deletions, the key is present with a nil value.
	Attributes map[string]*string `json:"attributes,omitempty"`
}

// Diff compares two trees position by position and returns the changes that
// turn old into new. A nil old tree yields a single insert of new.
func Diff(old, new *Node) []Change {
	var changes []Change
	diffNode(old, new, nil, &changes)
	return changes
}

func diffNode(old, new *Node, path []int, out *[]Change) {
	switch {
	case old == nil && new == nil:
		return
	case old == nil:
		*out = append(*out, Change{Op: OpInsert, Path: clonePath(path), After: new.Type})
		return
	case new == nil:
		*out = append(*out, Change{Op: OpRemove, Path: clonePath(path), Before: old.Type})
		return
	}

	if old.Type != new.Type {
		*out = append(*out, Change{Op: OpRetype, Path: clonePath(path), Before: old.Type, After: new.Type})
	}
	if delta := diffAttributes(old.Attributes, new.Attributes); delta != nil {
		*out = append(*out, Change{Op: OpAttributes, Path: clonePath(path), Attributes: delta})
	}
	if old.Text != new.Text {
		*out = append(*out, Change{Op: OpText, Path: clonePath(path)})
	}

	n := max(old.Len(), new.Len())
	for i := 0; i < n; i++ {
		diffNode(old.Child(i), new.Child(i), append(path, i), out)
	}
}

func diffAttributes(old, new map[string]string) map[string]*string {
	delta := make(map[string]*string)

	// Check for Added or Modified
	for k, newVal := range new {
		if oldVal, exists := old[k]; !exists || oldVal != newVal {
			v := newVal
			delta[k] = &v
		}
	}

	// Check for Deletions
	for k := range old {
		if _, exists := new[k]; !exists {
			delta[k] = nil
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

func clonePath(p []int) []int {
	out := make([]int, len(p))
	copy(out, p)
	return out
}

// Affected maps structural changes onto the nodes of the new tree that a
// reconciliation must visit: inserted and retyped nodes themselves, and the
// surviving parent of a removal. Attribute and text changes are not structural.
func Affected(root *Node, changes []Change) []*Node {
	seen := make(map[*Node]bool)
	var nodes []*Node
	add := func(n *Node) {
		if n != nil && !seen[n] {
			seen[n] = true
			nodes = append(nodes, n)
		}
	}
	for _, c := range changes {
		switch c.Op {
		case OpInsert, OpRetype:
			add(root.At(c.Path))
		case OpRemove:
			if len(c.Path) > 0 {
				add(root.At(c.Path[:len(c.Path)-1]))
			}
		}
	}
	return nodes
}
