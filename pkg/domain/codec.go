package domain

import "encoding/json"

// NodeData is the serializable form of a Node.
type NodeData struct {
	Type       string            `json:"type" yaml:"type"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Text       string            `json:"text,omitempty" yaml:"text,omitempty"`
	Children   []NodeData        `json:"children,omitempty" yaml:"children,omitempty"`
}

// Data converts the subtree rooted at n into its serializable form.
func (n *Node) Data() NodeData {
	d := NodeData{Type: n.Type, Text: n.Text}
	if len(n.Attributes) > 0 {
		d.Attributes = make(map[string]string, len(n.Attributes))
		for k, v := range n.Attributes {
			d.Attributes[k] = v
		}
	}
	for _, c := range n.children {
		d.Children = append(d.Children, c.Data())
	}
	return d
}

// Node builds a detached live subtree from d.
func (d NodeData) Node() *Node {
	n := NewNode(d.Type, d.Attributes)
	n.Text = d.Text
	for _, c := range d.Children {
		n.Append(c.Node())
	}
	return n
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Data())
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(b []byte) error {
	var d NodeData
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	built := d.Node()
	n.Type = built.Type
	n.Attributes = built.Attributes
	n.Text = built.Text
	n.SetChildren(built.Children())
	return nil
}
