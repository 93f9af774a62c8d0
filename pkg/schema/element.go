package schema

import (
	"slices"
	"sort"
	"strings"

	"github.com/aretw0/stencil/pkg/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Element is one registered template element definition.
// It is immutable once the owning Registry is frozen.
type Element struct {
	// Name is the canonical name, unique across the registry.
	Name string
	// Short is the declared or positional name the canonical name was built from.
	Short string
	Kind  domain.Kind
	Match Matcher
	// Attributes maps data attribute names to their default values.
	Attributes map[string]string
	// Config holds schema-only configuration with the "ck-" prefix stripped.
	Config map[string]string
	// Children are the fixed slots, in declared order.
	Children []*Element
	// Conversions is the substitute set: names accepted in this element's slot.
	// It always contains Name once the registry is frozen.
	Conversions []string
	// Contains lists the names dynamic elements accept as items.
	Contains []string
	// Placeholder is the implicit placeholder element of dynamic kinds.
	Placeholder *Element
	// Conflict is the generated conflict wrapper of a text element in a
	// registry with merge support.
	Conflict *Element
	Parent   *Element

	rawConversions []string
	rawContains    []string
}

// IsRoot reports whether the element is a top-level template.
func (el *Element) IsRoot() bool { return el.Parent == nil }

// Root returns the top-level template the element belongs to.
func (el *Element) Root() *Element {
	cur := el
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// HasSlots reports whether the element declares fixed children.
func (el *Element) HasSlots() bool { return len(el.Children) > 0 }

// Label returns the configured label or a title-cased form of the short name.
func (el *Element) Label() string {
	if l := el.Config["label"]; l != "" {
		return l
	}
	return cases.Title(language.English).String(strings.ReplaceAll(el.Short, "_", " "))
}

// Icon returns the configured icon name.
func (el *Element) Icon() string { return el.Config["icon"] }

// Accepts reports whether a node of the given type may fill this element's slot.
func (el *Element) Accepts(typeName string) bool {
	return slices.Contains(el.Conversions, typeName)
}

// Allows reports whether a dynamic element accepts the given type as an item.
func (el *Element) Allows(typeName string) bool {
	return slices.Contains(el.Contains, typeName)
}

// Defaults returns the non-empty data attribute defaults.
func (el *Element) Defaults() map[string]string {
	out := make(map[string]string, len(el.Attributes))
	for k, v := range el.Attributes {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// AttributeNames returns the declared data attribute names, sorted.
func (el *Element) AttributeNames() []string {
	names := make([]string, 0, len(el.Attributes))
	for k := range el.Attributes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Slot returns the fixed child with the given canonical name.
func (el *Element) Slot(name string) (*Element, bool) {
	for _, c := range el.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
