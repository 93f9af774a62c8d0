package dsl

import "github.com/aretw0/stencil/pkg/domain"

// N creates a live node of the given type with children.
func N(typ string, children ...*domain.Node) *domain.Node {
	return domain.NewNode(typ, nil, children...)
}

// A creates a live node with attributes given as key, value pairs.
// A trailing odd key is ignored.
func A(typ string, kv []string, children ...*domain.Node) *domain.Node {
	n := domain.NewNode(typ, nil, children...)
	for i := 0; i+1 < len(kv); i += 2 {
		n.SetAttr(kv[i], kv[i+1])
	}
	return n
}

// T creates a live node holding text.
func T(typ, text string) *domain.Node {
	n := domain.NewNode(typ, nil)
	n.Text = text
	return n
}

// Types returns the types of nodes, in order.
func Types(nodes []*domain.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Type
	}
	return out
}
