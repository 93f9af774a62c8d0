package domain

import "fmt"

// Kind selects which repair routines apply to a template element.
// The set is closed: new behaviour is attached through postfixers, not new kinds.
type Kind int

const (
	// KindElement is a plain element with a fixed list of child slots.
	KindElement Kind = iota
	// KindText is an editable element holding host content.
	KindText
	// KindPlaceholder marks an empty, fillable position.
	KindPlaceholder
	// KindContainer holds an ordered list of items separated by placeholders.
	KindContainer
	// KindGallery holds a non-empty list of items navigated by index.
	KindGallery
	// KindTabs holds a non-empty list of tab items.
	KindTabs
	// KindTextConstraint is a fixed-slot element whose text is bounded by
	// min, max and pattern configuration.
	KindTextConstraint
	// KindConflict wraps the competing versions of a text element in a
	// merged document. It is generated, never declared.
	KindConflict
	// KindConflictOption holds one version inside a conflict, tagged with
	// the source it came from. It is generated, never declared.
	KindConflictOption
)

var kindNames = [...]string{
	KindElement:     "element",
	KindText:        "text",
	KindPlaceholder: "placeholder",
	KindContainer:   "container",
	KindGallery:     "gallery",
	KindTabs:        "tabs",

	KindTextConstraint: "text-constraint",
	KindConflict:       "conflict",
	KindConflictOption: "conflict-option",
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindElement, KindText, KindPlaceholder, KindContainer, KindGallery, KindTabs,
		KindTextConstraint, KindConflict, KindConflictOption,
	}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsDynamic reports whether elements of this kind hold a free list of
// contained items instead of fixed slots.
func (k Kind) IsDynamic() bool {
	return k == KindContainer || k == KindGallery || k == KindTabs
}

// IsGenerated reports whether elements of this kind are synthesized by the
// registry and may not be declared in template markup.
func (k Kind) IsGenerated() bool {
	return k == KindConflict || k == KindConflictOption
}

// ParseKind converts a source type marker into a Kind.
// An empty marker defaults to KindElement.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindElement, nil
	}
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
