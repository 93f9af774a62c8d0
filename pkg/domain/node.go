package domain

// RootType is the type of the host root node. It never resolves to a template element.
const RootType = "$root"

// Node is one mutable node of the live document.
//
// Type references a registered template element by canonical name. Nodes whose
// Type does not resolve are host content and are treated as opaque.
// The child list and the parent link are kept consistent by the mutation
// methods; a node has at most one parent.
type Node struct {
	Type       string
	Attributes map[string]string
	// Text holds inline host content (e.g. the text of an editable element).
	Text string

	parent   *Node
	children []*Node
}

// NewNode creates a detached node with a copy of attrs and the given children.
func NewNode(typ string, attrs map[string]string, children ...*Node) *Node {
	n := &Node{Type: typ}
	if len(attrs) > 0 {
		n.Attributes = make(map[string]string, len(attrs))
		for k, v := range attrs {
			n.Attributes[k] = v
		}
	}
	n.Append(children...)
	return n
}

// Parent returns the parent node or nil for detached and root nodes.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a snapshot of the child list.
// Mutating the returned slice does not affect the node.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Len returns the number of children.
func (n *Node) Len() int { return len(n.children) }

// Child returns the child at index i, or nil when i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Index returns the position of n within its parent, or -1 if detached.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// PreviousSibling returns the sibling before n, or nil.
func (n *Node) PreviousSibling() *Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.Child(n.Index() - 1)
}

// NextSibling returns the sibling after n, or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.Child(n.Index() + 1)
}

// Append moves children to the end of the child list.
func (n *Node) Append(children ...*Node) {
	n.InsertAt(len(n.children), children...)
}

// InsertAt moves children to position i. Children attached elsewhere are
// detached first; i is clamped to the valid range.
func (n *Node) InsertAt(i int, children ...*Node) {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.parent != nil {
			from := c.parent
			idx := c.Index()
			from.removeAt(idx)
			if from == n && idx < i {
				i--
			}
		}
		if i < 0 {
			i = 0
		}
		if i > len(n.children) {
			i = len(n.children)
		}
		n.children = append(n.children, nil)
		copy(n.children[i+1:], n.children[i:])
		n.children[i] = c
		c.parent = n
		i++
	}
}

// InsertBefore moves child directly before ref. ref must be a child of n.
func (n *Node) InsertBefore(ref, child *Node) {
	n.InsertAt(ref.Index(), child)
}

// InsertAfter moves child directly after ref. ref must be a child of n.
func (n *Node) InsertAfter(ref, child *Node) {
	n.InsertAt(ref.Index()+1, child)
}

// RemoveAt detaches and returns the child at index i, or nil when out of range.
func (n *Node) RemoveAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.removeAt(i)
}

func (n *Node) removeAt(i int) *Node {
	c := n.children[i]
	n.children = append(n.children[:i], n.children[i+1:]...)
	c.parent = nil
	return c
}

// Remove detaches n from its parent. It is a no-op for detached nodes.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.removeAt(n.Index())
	}
}

// SetChildren replaces the child list. Previous children not present in the
// new list are detached; new children are moved from their old parents.
func (n *Node) SetChildren(children []*Node) {
	keep := make(map[*Node]bool, len(children))
	for _, c := range children {
		keep[c] = true
	}
	for _, old := range n.children {
		if !keep[old] {
			old.parent = nil
		}
	}
	next := make([]*Node, 0, len(children))
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.parent != nil && c.parent != n {
			c.parent.removeAt(c.Index())
		}
		c.parent = n
		next = append(next, c)
	}
	n.children = next
}

// Attr returns the attribute value and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.Attributes[key]
	return v, ok
}

// SetAttr sets an attribute, allocating the map on first use.
func (n *Node) SetAttr(key, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[key] = value
}

// Clone returns a detached deep copy of n.
func (n *Node) Clone() *Node {
	c := NewNode(n.Type, n.Attributes)
	c.Text = n.Text
	for _, child := range n.children {
		c.Append(child.Clone())
	}
	return c
}

// Equal reports whether two subtrees are structurally identical.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Type != o.Type || n.Text != o.Text || len(n.children) != len(o.children) {
		return false
	}
	if len(n.Attributes) != len(o.Attributes) {
		return false
	}
	for k, v := range n.Attributes {
		if ov, ok := o.Attributes[k]; !ok || ov != v {
			return false
		}
	}
	for i := range n.children {
		if !n.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the subtree of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// Path returns the child indexes leading from the tree root to n.
func (n *Node) Path() []int {
	var path []int
	for cur := n; cur.parent != nil; cur = cur.parent {
		path = append([]int{cur.Index()}, path...)
	}
	return path
}

// At resolves a path produced by Path relative to n.
func (n *Node) At(path []int) *Node {
	cur := n
	for _, i := range path {
		if cur = cur.Child(i); cur == nil {
			return nil
		}
	}
	return cur
}

// Document is the live tree edited by the host.
type Document struct {
	Root *Node
}

// NewDocument creates a document whose root holds the given top-level nodes.
func NewDocument(children ...*Node) *Document {
	return &Document{Root: NewNode(RootType, nil, children...)}
}
