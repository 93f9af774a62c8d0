package dsl

import (
	"fmt"

	"github.com/aretw0/stencil/pkg/adapters/library"
	"github.com/aretw0/stencil/pkg/adapters/markup"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/schema"
)

// Builder manages the library construction.
type Builder struct {
	templates map[string]*ElementBuilder
	order     []string
}

// New creates a new library builder.
func New() *Builder {
	return &Builder{
		templates: make(map[string]*ElementBuilder),
	}
}

// Template adds a top-level template rendered as a div.
// If the template already exists, it returns the existing builder.
func (b *Builder) Template(name string) *ElementBuilder {
	if eb, ok := b.templates[name]; ok {
		return eb
	}
	eb := &ElementBuilder{
		src:     &schema.SourceNode{Tag: "div"},
		builder: b,
	}
	eb.src.SetAttr(schema.ConfigPrefix+"name", name)
	b.templates[name] = eb
	b.order = append(b.order, name)
	return eb
}

// Sources returns the source trees of every template, in declaration order.
func (b *Builder) Sources() []*schema.SourceNode {
	out := make([]*schema.SourceNode, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.templates[name].src)
	}
	return out
}

// Register registers every template on reg, in declaration order.
func (b *Builder) Register(reg *schema.Registry) error {
	for _, src := range b.Sources() {
		if _, err := reg.Register(src, nil); err != nil {
			return err
		}
	}
	return nil
}

// Build renders the templates to markup and returns them as a Loader.
func (b *Builder) Build() (*library.Loader, error) {
	templates := make([]domain.Template, 0, len(b.order))
	for _, name := range b.order {
		eb := b.templates[name]
		html, err := markup.RenderSnippet(eb.src)
		if err != nil {
			return nil, fmt.Errorf("failed to render template %s: %w", name, err)
		}
		label, _ := eb.src.Attr(schema.ConfigPrefix + "label")
		icon, _ := eb.src.Attr(schema.ConfigPrefix + "icon")
		validation, _ := eb.src.Attr(schema.ConfigPrefix + "validation")
		templates = append(templates, domain.Template{
			Name:       name,
			Label:      label,
			Icon:       icon,
			Validation: validation,
			Markup:     html,
		})
	}

	loader, err := library.NewFromTemplates(templates...)
	if err != nil {
		return nil, fmt.Errorf("failed to build library loader: %w", err)
	}
	return loader, nil
}
