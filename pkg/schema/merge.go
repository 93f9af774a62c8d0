package schema

import "github.com/aretw0/stencil/pkg/domain"

const (
	// ConflictSuffix names the conflict wrapper of a text element.
	ConflictSuffix = Separator + "conflict"
	// OptionSuffix names the option element of a conflict wrapper.
	OptionSuffix = Separator + "option"

	// ConflictTag is the host tag of conflict wrappers.
	ConflictTag = "ck-conflict-text"
	// OptionTag is the host tag of conflict options.
	OptionTag = "ck-conflict-option"

	// AttrAdded marks a template instance added by a merge.
	AttrAdded = "added"
	// AttrRemoved marks a template instance removed by a merge.
	AttrRemoved = "removed"
	// AttrFrom names the source a conflict option came from.
	AttrFrom = "from"
)

// EnableMerge turns on merge support for the next Freeze: every text element
// gets a conflict wrapper allowed wherever the text element is, and every
// top-level template accepts the added and removed markers.
func (r *Registry) EnableMerge() error {
	if r.frozen {
		return domain.ErrFrozen
	}
	r.merge = true
	return nil
}

// Merge reports whether merge support is enabled.
func (r *Registry) Merge() bool { return r.merge }

// synthesizeConflicts registers the conflict elements. It runs at the start
// of Freeze, so every declared text element is known.
func (r *Registry) synthesizeConflicts() []error {
	var issues []error
	for _, el := range r.order {
		if el.IsRoot() && !el.Kind.IsGenerated() && el.Kind != domain.KindPlaceholder {
			for _, key := range []string{AttrAdded, AttrRemoved} {
				if _, ok := el.Attributes[key]; !ok {
					el.Attributes[key] = ""
				}
			}
		}
	}

	for _, el := range r.ByKind(domain.KindText) {
		if el.Conflict != nil {
			continue
		}
		wrapper := &Element{
			Name:       el.Name + ConflictSuffix,
			Short:      el.Short + ConflictSuffix,
			Kind:       domain.KindConflict,
			Match:      Matcher{Tag: ConflictTag, Classes: el.Match.Classes},
			Attributes: make(map[string]string, len(el.Attributes)),
			Config:     map[string]string{"type": domain.KindConflict.String(), "label": el.Label()},
			Parent:     el.Parent,
		}
		for k, v := range el.Attributes {
			wrapper.Attributes[k] = v
		}
		option := &Element{
			Name:       wrapper.Name + OptionSuffix,
			Short:      "option",
			Kind:       domain.KindConflictOption,
			Match:      Matcher{Tag: OptionTag},
			Attributes: map[string]string{AttrFrom: ""},
			Config:     map[string]string{"type": domain.KindConflictOption.String()},
			Parent:     wrapper,
			Contains:   []string{el.Name},
		}
		clash := false
		for _, e := range []*Element{wrapper, option} {
			if _, taken := r.elements[e.Name]; taken {
				issues = append(issues, &Issue{Element: e.Name, Err: ErrDuplicateName})
				clash = true
			}
		}
		if clash {
			continue
		}
		wrapper.Contains = []string{option.Name}
		wrapper.rawContains = wrapper.Contains
		option.rawContains = option.Contains
		el.Conflict = wrapper

		for _, e := range []*Element{wrapper, option} {
			r.elements[e.Name] = e
			r.order = append(r.order, e)
		}
	}
	return issues
}
