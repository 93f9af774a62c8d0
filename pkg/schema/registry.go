package schema

import (
	"fmt"
	"strings"

	"github.com/aretw0/stencil/pkg/domain"
)

const (
	// RootPrefix is prepended to the names of top-level templates.
	RootPrefix = "ck__"
	// Separator joins parent and child names.
	Separator = "__"
	// ConfigPrefix marks schema-only configuration attributes.
	ConfigPrefix = "ck-"
	// PlaceholderSuffix names the implicit placeholder of dynamic elements.
	PlaceholderSuffix = Separator + "placeholder"
	// DefaultIcon is assigned to templates registered without an icon.
	DefaultIcon = "configurator"
)

// Postfixer repairs a live node against its element definition.
// It reports whether it changed anything. A postfixer must not fail for a
// well-formed schema; a returned error aborts the reconciliation pass.
type Postfixer func(r *Registry, el *Element, n *domain.Node) (bool, error)

// SnippetParser converts template markup into a SourceNode tree.
type SnippetParser func(markup string) (*SourceNode, error)

// Registry holds every registered Element and the per-kind postfixer table.
// It is mutable during the load phase and immutable after Freeze.
type Registry struct {
	elements   map[string]*Element
	order      []*Element
	postfixers map[domain.Kind][]Postfixer
	schema     ConfigSchema
	merge      bool
	frozen     bool
}

// NewRegistry creates an empty registry in load phase.
func NewRegistry() *Registry {
	return &Registry{
		elements:   make(map[string]*Element),
		postfixers: make(map[domain.Kind][]Postfixer),
		schema:     DefaultConfigSchema,
	}
}

// WithConfigSchema replaces the schema used to type configuration attributes.
func (r *Registry) WithConfigSchema(cs ConfigSchema) *Registry {
	r.schema = cs
	return r
}

// Frozen reports whether the registry left the load phase.
func (r *Registry) Frozen() bool { return r.frozen }

// Register builds one Element per source node, in document order, below parent
// (nil for a top-level template). Either the whole subtree is registered or,
// on error, nothing of it.
func (r *Registry) Register(src *SourceNode, parent *Element) (*Element, error) {
	if r.frozen {
		return nil, domain.ErrFrozen
	}
	index := 0
	if parent != nil {
		if parent.Kind.IsDynamic() {
			return nil, &ConfigurationError{Issues: []error{&Issue{
				Element: parent.Name,
				Err:     fmt.Errorf("%w: %s element cannot take fixed children", ErrInvalidStructure, parent.Kind),
			}}}
		}
		index = len(parent.Children)
	}

	st := &staging{reg: r, names: make(map[string]bool)}
	el := st.build(src, parent, index)
	if len(st.issues) > 0 {
		return nil, &ConfigurationError{Issues: st.issues}
	}

	if parent != nil {
		parent.Children = append(parent.Children, el)
	}
	for _, e := range st.built {
		r.elements[e.Name] = e
		r.order = append(r.order, e)
	}
	return el, nil
}

// RegisterTemplate parses a library entry and registers it as a top-level template.
func (r *Registry) RegisterTemplate(t domain.Template, parse SnippetParser) (*Element, error) {
	if r.frozen {
		return nil, domain.ErrFrozen
	}
	src, err := parse(t.Markup)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", t.Name, err)
	}
	src.SetAttr(ConfigPrefix+"name", t.Name)
	if t.Label != "" {
		src.SetAttr(ConfigPrefix+"label", t.Label)
	}
	icon := t.Icon
	if icon == "" {
		icon = DefaultIcon
	}
	src.SetAttr(ConfigPrefix+"icon", icon)
	if t.Validation != "" {
		src.SetAttr(ConfigPrefix+"validation", t.Validation)
	}
	return r.Register(src, nil)
}

// RegisterPostfixer appends fn to the ordered postfixer list of every kind.
func (r *Registry) RegisterPostfixer(kinds []domain.Kind, fn Postfixer) error {
	if r.frozen {
		return domain.ErrFrozen
	}
	for _, k := range kinds {
		r.postfixers[k] = append(r.postfixers[k], fn)
	}
	return nil
}

// Postfixers returns the postfixers registered for kind, in registration order.
func (r *Registry) Postfixers(k domain.Kind) []Postfixer {
	return r.postfixers[k]
}

// Freeze resolves every conversion and contains reference, validates typed
// configuration and ends the load phase. On error the registry stays in load
// phase and must be discarded.
func (r *Registry) Freeze() error {
	if r.frozen {
		return nil
	}

	var issues []error
	if r.merge {
		issues = append(issues, r.synthesizeConflicts()...)
	}
	for _, el := range r.order {
		issues = append(issues, ValidateConfig(r.schema, el.Name, el.Config)...)

		conversions, errs := r.resolveAll(el, "conversions", el.rawConversions)
		issues = append(issues, errs...)
		el.Conversions = append([]string{el.Name}, conversions...)

		contains, errs := r.resolveAll(el, "contains", el.rawContains)
		issues = append(issues, errs...)
		el.Contains = contains
	}
	if len(issues) > 0 {
		return &ConfigurationError{Issues: issues}
	}

	r.frozen = true
	return nil
}

func (r *Registry) resolveAll(el *Element, key string, refs []string) ([]string, []error) {
	var out []string
	var errs []error
	for _, ref := range refs {
		name, ok := r.resolve(ref)
		if !ok {
			errs = append(errs, &Issue{
				Element: el.Name,
				Key:     key,
				Err:     fmt.Errorf("%w: %q", ErrDanglingReference, ref),
			})
			continue
		}
		if name != el.Name {
			out = append(out, name)
		}
	}
	return out, errs
}

// resolve accepts canonical names as is and treats anything else as a
// top-level template name.
func (r *Registry) resolve(ref string) (string, bool) {
	if _, ok := r.elements[ref]; ok {
		return ref, true
	}
	if _, ok := r.elements[RootPrefix+ref]; ok {
		return RootPrefix + ref, true
	}
	return "", false
}

// ByName returns the element with the given canonical name.
func (r *Registry) ByName(name string) (*Element, bool) {
	el, ok := r.elements[name]
	return el, ok
}

// Resolve returns the element a live node is an instance of.
func (r *Registry) Resolve(n *domain.Node) (*Element, bool) {
	if n == nil {
		return nil, false
	}
	return r.ByName(n.Type)
}

// ByKind returns every element of the given kind, in registration order.
func (r *Registry) ByKind(k domain.Kind) []*Element {
	return r.Find(func(el *Element) bool { return el.Kind == k })
}

// Find returns every element matching predicate, in registration order.
// A nil predicate matches everything.
func (r *Registry) Find(predicate func(*Element) bool) []*Element {
	var out []*Element
	for _, el := range r.order {
		if predicate == nil || predicate(el) {
			out = append(out, el)
		}
	}
	return out
}

// All returns every element in registration order.
func (r *Registry) All() []*Element { return r.Find(nil) }

// Roots returns the top-level templates in registration order.
func (r *Registry) Roots() []*Element {
	return r.Find(func(el *Element) bool {
		return el.IsRoot() && el.Kind != domain.KindPlaceholder && !el.Kind.IsGenerated()
	})
}

// MatchHost returns the last registered element accepting host markup h,
// restricted by filter when given.
func (r *Registry) MatchHost(h HostElement, filter func(*Element) bool) (*Element, bool) {
	var match *Element
	for _, el := range r.order {
		if filter != nil && !filter(el) {
			continue
		}
		if el.Matches(h) {
			match = el
		}
	}
	return match, match != nil
}

// Instantiate creates a detached live node of the named element carrying its
// non-empty default attributes.
func (r *Registry) Instantiate(name string) (*domain.Node, error) {
	el, ok := r.ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnresolved, name)
	}
	return domain.NewNode(el.Name, el.Defaults()), nil
}

// staging collects the elements of one Register call until it succeeds.
type staging struct {
	reg    *Registry
	names  map[string]bool
	built  []*Element
	issues []error
}

func (s *staging) claim(name string) bool {
	if _, exists := s.reg.elements[name]; exists || s.names[name] {
		s.issues = append(s.issues, &Issue{
			Element: name,
			Err:     ErrDuplicateName,
		})
		return false
	}
	s.names[name] = true
	return true
}

func (s *staging) build(src *SourceNode, parent *Element, index int) *Element {
	el := &Element{
		Attributes: make(map[string]string),
		Config:     make(map[string]string),
		Parent:     parent,
		Match:      Matcher{Tag: strings.ToLower(src.Tag)},
	}

	for _, a := range src.Attrs {
		switch {
		case a.Key == "class":
			el.Match.Classes = strings.Fields(a.Value)
		case strings.HasPrefix(a.Key, ConfigPrefix):
			el.Config[strings.TrimPrefix(a.Key, ConfigPrefix)] = a.Value
		default:
			el.Attributes[a.Key] = a.Value
		}
	}

	el.Short = el.Config["name"]
	if el.Short == "" {
		el.Short = fmt.Sprintf("child%d", index)
	}
	if parent != nil {
		el.Name = parent.Name + Separator + el.Short
	} else {
		el.Name = RootPrefix + el.Short
	}

	kind, err := domain.ParseKind(el.Config["type"])
	if err != nil {
		s.issues = append(s.issues, &Issue{Element: el.Name, Key: "type", Err: err})
	}
	if kind.IsGenerated() {
		s.issues = append(s.issues, &Issue{
			Element: el.Name,
			Key:     "type",
			Err:     fmt.Errorf("%w: %s elements are generated by merge support", ErrInvalidStructure, kind),
		})
	}
	el.Kind = kind
	el.rawConversions = strings.Fields(el.Config["conversions"])
	el.rawContains = strings.Fields(el.Config["contains"])

	if !s.claim(el.Name) {
		return el
	}
	s.built = append(s.built, el)

	if kind.IsDynamic() {
		if len(src.Children) > 0 {
			s.issues = append(s.issues, &Issue{
				Element: el.Name,
				Err:     fmt.Errorf("%w: %s element declares fixed children", ErrInvalidStructure, kind),
			})
		}
		s.placeholder(el)
		return el
	}
	if len(el.rawContains) > 0 {
		s.issues = append(s.issues, &Issue{
			Element: el.Name,
			Key:     "contains",
			Err:     fmt.Errorf("%w: only dynamic elements declare contained items", ErrInvalidStructure),
		})
	}

	for i, child := range src.Children {
		el.Children = append(el.Children, s.build(child, el, i))
	}
	return el
}

// placeholder registers the implicit placeholder of a dynamic element.
// It accepts exactly the items its owner contains.
func (s *staging) placeholder(owner *Element) {
	ph := &Element{
		Name:           owner.Name + PlaceholderSuffix,
		Short:          "placeholder",
		Kind:           domain.KindPlaceholder,
		Attributes:     make(map[string]string),
		Config:         map[string]string{"type": domain.KindPlaceholder.String()},
		Parent:         owner,
		rawConversions: owner.rawContains,
	}
	if !s.claim(ph.Name) {
		return
	}
	owner.Placeholder = ph
	s.built = append(s.built, ph)
}
