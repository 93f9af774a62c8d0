package library

import (
	"fmt"
	"sort"

	"github.com/aretw0/stencil/pkg/domain"
)

// Loader implements ports.LibraryLoader over an in-memory set of templates.
type Loader struct {
	templates map[string]domain.Template
	names     []string
	types     map[string]string
}

// NewLoader creates a Loader from template markup keyed by name.
// Templates are listed in name order.
func NewLoader(data map[string]string) *Loader {
	l := &Loader{templates: make(map[string]domain.Template, len(data))}
	for name, markup := range data {
		l.templates[name] = domain.Template{Name: name, Markup: markup}
		l.names = append(l.names, name)
	}
	sort.Strings(l.names) // Deterministic order
	return l
}

// NewFromTemplates creates a Loader from domain objects, keeping their order.
func NewFromTemplates(templates ...domain.Template) (*Loader, error) {
	l := &Loader{templates: make(map[string]domain.Template, len(templates))}
	for _, t := range templates {
		if t.Name == "" {
			return nil, fmt.Errorf("template missing name")
		}
		if _, exists := l.templates[t.Name]; exists {
			return nil, fmt.Errorf("duplicate template: %s", t.Name)
		}
		l.add(t)
	}
	return l, nil
}

// add stores t, shadowing an earlier template with the same name in place.
func (l *Loader) add(t domain.Template) {
	if _, exists := l.templates[t.Name]; !exists {
		l.names = append(l.names, t.Name)
	}
	l.templates[t.Name] = t
}

// GetTemplate retrieves a template by name.
func (l *Loader) GetTemplate(name string) (domain.Template, error) {
	t, ok := l.templates[name]
	if !ok {
		return domain.Template{}, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, name)
	}
	return t, nil
}

// ListTemplates returns every template name in registration order.
func (l *Loader) ListTemplates() ([]string, error) {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out, nil
}

// Templates returns every template in registration order.
func (l *Loader) Templates() []domain.Template {
	out := make([]domain.Template, 0, len(l.names))
	for _, name := range l.names {
		out = append(out, l.templates[name])
	}
	return out
}

// ConfigTypes returns the declared types of configuration attributes, keyed
// by attribute name without the "ck-" prefix.
func (l *Loader) ConfigTypes() map[string]string {
	out := make(map[string]string, len(l.types))
	for k, v := range l.types {
		out[k] = v
	}
	return out
}

// addTypes records types not declared yet. Files are read importer first.
func (l *Loader) addTypes(types map[string]string) {
	if len(types) == 0 {
		return
	}
	if l.types == nil {
		l.types = make(map[string]string, len(types))
	}
	for k, v := range types {
		if _, ok := l.types[k]; !ok {
			l.types[k] = v
		}
	}
}
