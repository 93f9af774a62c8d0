package schema

import "strings"

// HostElement is an element of externally-authored markup being imported.
type HostElement interface {
	Tag() string
	HasClass(class string) bool
	// HostParent returns the enclosing element, or false at the fragment root.
	HostParent() (HostElement, bool)
}

// Matcher recognizes host markup as an instance of an element.
// A host element matches when its tag is equal and it carries every class.
type Matcher struct {
	Tag     string
	Classes []string
}

// Match reports whether h itself matches, ignoring its ancestors.
func (m Matcher) Match(h HostElement) bool {
	if m.Tag == "" || !strings.EqualFold(m.Tag, h.Tag()) {
		return false
	}
	for _, cls := range m.Classes {
		if !h.HasClass(cls) {
			return false
		}
	}
	return true
}

// Matches reports whether h is an instance of el. Non-root elements also
// require the host parent to match the element's schema parent.
func (el *Element) Matches(h HostElement) bool {
	if !el.Match.Match(h) {
		return false
	}
	if el.Parent == nil {
		return true
	}
	hp, ok := h.HostParent()
	return ok && el.Parent.Matches(hp)
}
