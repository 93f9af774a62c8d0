package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		old  *Node
		new  *Node
		want []Change
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new:  NewNode("ck__a", nil),
			want: []Change{{Op: OpInsert, Path: []int{}, After: "ck__a"}},
		},
		{
			name: "No Changes",
			old:  NewNode("ck__a", map[string]string{"x": "1"}, NewNode("ck__b", nil)),
			new:  NewNode("ck__a", map[string]string{"x": "1"}, NewNode("ck__b", nil)),
			want: nil,
		},
		{
			name: "Attribute Added, Modified & Deleted",
			old:  NewNode("ck__a", map[string]string{"keep": "1", "mod": "a", "gone": "x"}),
			new:  NewNode("ck__a", map[string]string{"keep": "1", "mod": "b", "new": "y"}),
			want: []Change{{
				Op:   OpAttributes,
				Path: []int{},
				Attributes: map[string]*string{
					"mod":  strPtr("b"),
					"new":  strPtr("y"),
					"gone": nil,
				},
			}},
		},
		{
			name: "Child Retyped And Appended",
			old:  NewNode("ck__a", nil, NewNode("ck__b", nil)),
			new:  NewNode("ck__a", nil, NewNode("ck__c", nil), NewNode("ck__d", nil)),
			want: []Change{
				{Op: OpRetype, Path: []int{0}, Before: "ck__b", After: "ck__c"},
				{Op: OpInsert, Path: []int{1}, After: "ck__d"},
			},
		},
		{
			name: "Child Removed",
			old:  NewNode("ck__a", nil, NewNode("ck__b", nil), NewNode("ck__c", nil)),
			new:  NewNode("ck__a", nil, NewNode("ck__b", nil)),
			want: []Change{{Op: OpRemove, Path: []int{1}, Before: "ck__c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Diff(tt.old, tt.new))
		})
	}
}

func TestDiff_JSONShape(t *testing.T) {
	changes := Diff(
		NewNode("ck__a", map[string]string{"gone": "x"}),
		NewNode("ck__a", nil),
	)
	b, err := json.Marshal(changes)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"op":"attributes","path":[],"attributes":{"gone":null}}]`, string(b))
}

func TestAffected(t *testing.T) {
	old := NewNode(RootType, nil,
		NewNode("ck__a", nil, NewNode("ck__x", nil), NewNode("ck__y", nil)),
		NewNode("ck__b", nil),
	)
	inserted := NewNode("ck__c", nil)
	parent := NewNode("ck__a", nil, NewNode("ck__x", nil))
	updated := NewNode(RootType, nil, parent, NewNode("ck__b", map[string]string{"k": "v"}), inserted)

	got := Affected(updated, Diff(old, updated))
	assert.Equal(t, []*Node{parent, inserted}, got)
}
