package validation

import (
	"fmt"
	"regexp"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/schema"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Finding is the result of one rule on one node.
type Finding struct {
	Element   string `json:"element"`
	Path      []int  `json:"path"`
	Rule      Rule   `json:"rule"`
	Message   string `json:"message"`
	Violation bool   `json:"violation"`
}

// Validator checks documents against a frozen registry.
type Validator struct {
	reg         *schema.Registry
	patterns    map[string]*regexp.Regexp
	constraints map[string]*regexp.Regexp
	printer     *message.Printer
}

// Option configures the Validator.
type Option func(*Validator)

// WithLanguage selects the language messages are printed in.
func WithLanguage(tag language.Tag) Option {
	return func(v *Validator) {
		v.printer = message.NewPrinter(tag)
	}
}

// New compiles the validation patterns configured on reg.
func New(reg *schema.Registry, opts ...Option) (*Validator, error) {
	v := &Validator{
		reg:         reg,
		patterns:    make(map[string]*regexp.Regexp),
		constraints: make(map[string]*regexp.Regexp),
		printer:     message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(v)
	}
	for _, el := range reg.All() {
		if raw := el.Config["validation"]; raw != "" {
			re, err := regexp.Compile(raw)
			if err != nil {
				return nil, fmt.Errorf("validation pattern of %s: %w", el.Name, err)
			}
			v.patterns[el.Name] = re
		}
		if raw := el.Config["pattern"]; raw != "" && el.Kind == domain.KindTextConstraint {
			re, err := regexp.Compile(`^(?:` + raw + `)$`)
			if err != nil {
				return nil, fmt.Errorf("constraint pattern of %s: %w", el.Name, err)
			}
			v.constraints[el.Name] = re
		}
	}
	return v, nil
}

// Pattern returns the validation pattern that applies to el: its own, else
// the one of its template.
func (v *Validator) Pattern(el *schema.Element) *regexp.Regexp {
	if re, ok := v.patterns[el.Name]; ok {
		return re
	}
	return v.patterns[el.Root().Name]
}

// Check runs every applicable rule on a single node.
func (v *Validator) Check(n *domain.Node) []Finding {
	el, ok := v.reg.Resolve(n)
	if !ok {
		return nil
	}
	var out []Finding
	if res, ok := CheckLimit(el, n); ok {
		out = append(out, Finding{
			Element:   el.Name,
			Path:      n.Path(),
			Rule:      RuleLimit,
			Message:   res.Message(v.printer),
			Violation: res.Exceeded(),
		})
	}
	if res, ok := CheckRequired(el, n, v.Pattern(el)); ok && !res.Valid() {
		out = append(out, Finding{
			Element:   el.Name,
			Path:      n.Path(),
			Rule:      RuleRequired,
			Message:   res.Message(v.printer),
			Violation: true,
		})
	}
	if res, ok := CheckConstraint(el, n, v.constraints[el.Name]); ok && !res.Valid() {
		out = append(out, Finding{
			Element:   el.Name,
			Path:      n.Path(),
			Rule:      RuleConstraint,
			Message:   res.Message(v.printer),
			Violation: true,
		})
	}
	return out
}

// Validate checks every node of the document, in document order.
func (v *Validator) Validate(doc *domain.Document) []Finding {
	var out []Finding
	doc.Root.Walk(func(n *domain.Node) bool {
		out = append(out, v.Check(n)...)
		return true
	})
	return out
}

// Violations filters findings down to violations.
func Violations(findings []Finding) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Violation {
			out = append(out, f)
		}
	}
	return out
}
