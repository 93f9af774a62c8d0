package dsl

import (
	"strconv"
	"strings"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/schema"
)

// ElementBuilder provides a fluent API for configuring a template element.
type ElementBuilder struct {
	src     *schema.SourceNode
	parent  *ElementBuilder
	builder *Builder
}

// Tag sets the host tag of the element.
func (e *ElementBuilder) Tag(tag string) *ElementBuilder {
	e.src.Tag = tag
	return e
}

// Class adds matcher classes.
func (e *ElementBuilder) Class(classes ...string) *ElementBuilder {
	cur, _ := e.src.Attr("class")
	e.src.SetAttr("class", strings.TrimSpace(cur+" "+strings.Join(classes, " ")))
	return e
}

// Attr declares a data attribute with its default value.
func (e *ElementBuilder) Attr(key, value string) *ElementBuilder {
	e.src.SetAttr(key, value)
	return e
}

// Config sets a schema-only configuration attribute.
func (e *ElementBuilder) Config(key, value string) *ElementBuilder {
	e.src.SetAttr(schema.ConfigPrefix+key, value)
	return e
}

// Kind sets the element kind.
func (e *ElementBuilder) Kind(k domain.Kind) *ElementBuilder {
	return e.Config("type", k.String())
}

// Text marks the element as editable text.
func (e *ElementBuilder) Text() *ElementBuilder {
	return e.Kind(domain.KindText)
}

// TextConstraint marks the element as constrained text. Bounds are set with
// Min, Max and Pattern.
func (e *ElementBuilder) TextConstraint() *ElementBuilder {
	return e.Kind(domain.KindTextConstraint)
}

// Placeholder marks the element as a placeholder accepting the given conversions.
func (e *ElementBuilder) Placeholder(conversions ...string) *ElementBuilder {
	return e.Kind(domain.KindPlaceholder).Conversions(conversions...)
}

// Container marks the element as a container of the given item types.
func (e *ElementBuilder) Container(contains ...string) *ElementBuilder {
	return e.Kind(domain.KindContainer).Contains(contains...)
}

// Gallery marks the element as a gallery of the given item types.
func (e *ElementBuilder) Gallery(contains ...string) *ElementBuilder {
	return e.Kind(domain.KindGallery).Contains(contains...)
}

// Tabs marks the element as a tab set of the given item types.
func (e *ElementBuilder) Tabs(contains ...string) *ElementBuilder {
	return e.Kind(domain.KindTabs).Contains(contains...)
}

// Conversions sets the names accepted in this element's slot.
func (e *ElementBuilder) Conversions(names ...string) *ElementBuilder {
	return e.Config("conversions", strings.Join(names, " "))
}

// Contains sets the item types of a dynamic element.
func (e *ElementBuilder) Contains(names ...string) *ElementBuilder {
	return e.Config("contains", strings.Join(names, " "))
}

// Label sets the display label.
func (e *ElementBuilder) Label(label string) *ElementBuilder {
	return e.Config("label", label)
}

// Icon sets the display icon.
func (e *ElementBuilder) Icon(icon string) *ElementBuilder {
	return e.Config("icon", icon)
}

// Limit sets the maximum text length of a text element.
func (e *ElementBuilder) Limit(n int) *ElementBuilder {
	return e.Config("limit", strconv.Itoa(n))
}

// Min sets the minimum number of required characters.
func (e *ElementBuilder) Min(n int) *ElementBuilder {
	return e.Config("min", strconv.Itoa(n))
}

// Max sets the maximum text length of a constrained text element.
func (e *ElementBuilder) Max(n int) *ElementBuilder {
	return e.Config("max", strconv.Itoa(n))
}

// Pattern sets the expression the whole text of a constrained text element must match.
func (e *ElementBuilder) Pattern(pattern string) *ElementBuilder {
	return e.Config("pattern", pattern)
}

// Helper sets the message shown when a constrained text element fails its pattern.
func (e *ElementBuilder) Helper(msg string) *ElementBuilder {
	return e.Config("message-helper", msg)
}

// Validation sets the pattern counted by required-field checks.
// Only meaningful on templates.
func (e *ElementBuilder) Validation(pattern string) *ElementBuilder {
	return e.Config("validation", pattern)
}

// Slot adds a fixed child rendered as a div and returns its builder.
// An empty name gives the child a positional name.
func (e *ElementBuilder) Slot(name string) *ElementBuilder {
	child := &ElementBuilder{
		src:     &schema.SourceNode{Tag: "div"},
		parent:  e,
		builder: e.builder,
	}
	if name != "" {
		child.src.SetAttr(schema.ConfigPrefix+"name", name)
	}
	e.src.Children = append(e.src.Children, child.src)
	return child
}

// End returns the builder of the enclosing element.
// On a template it returns the template itself.
func (e *ElementBuilder) End() *ElementBuilder {
	if e.parent == nil {
		return e
	}
	return e.parent
}

// Source returns the source node being built.
func (e *ElementBuilder) Source() *schema.SourceNode {
	return e.src
}
