package schema

// Attr is one declared attribute of a source node. Order is preserved.
type Attr struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// SourceNode is one node of a declarative template definition.
// Any serializable nested-attribute format can be converted into SourceNodes;
// the markup adapter produces them from HTML snippets.
type SourceNode struct {
	Tag      string        `json:"tag" yaml:"tag"`
	Attrs    []Attr        `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Children []*SourceNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Attr returns the value of the first attribute named key.
func (s *SourceNode) Attr(key string) (string, bool) {
	for _, a := range s.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr replaces the value of key or appends it.
func (s *SourceNode) SetAttr(key, value string) {
	for i, a := range s.Attrs {
		if a.Key == key {
			s.Attrs[i].Value = value
			return
		}
	}
	s.Attrs = append(s.Attrs, Attr{Key: key, Value: value})
}
