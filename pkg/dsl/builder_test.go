package dsl_test

import (
	"testing"

	"github.com/aretw0/stencil/pkg/adapters/markup"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/dsl"
	"github.com/aretw0/stencil/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Register(t *testing.T) {
	b := dsl.New()

	b.Template("figure").
		Tag("figure").Class("figure", "wide").
		Slot("image").Tag("img").Attr("src", "default.png").End().
		Slot("").Tag("figcaption").Text().Limit(80)

	b.Template("page").Container("figure")

	reg := schema.NewRegistry()
	require.NoError(t, b.Register(reg))
	require.NoError(t, reg.Freeze())

	figure, ok := reg.ByName("ck__figure")
	require.True(t, ok)
	assert.Equal(t, schema.Matcher{Tag: "figure", Classes: []string{"figure", "wide"}}, figure.Match)
	assert.Equal(t, []string{"ck__figure__image", "ck__figure__child1"}, []string{figure.Children[0].Name, figure.Children[1].Name})
	assert.Equal(t, map[string]string{"src": "default.png"}, figure.Children[0].Attributes)
	assert.Equal(t, domain.KindText, figure.Children[1].Kind)
	assert.Equal(t, "80", figure.Children[1].Config["limit"])

	page, _ := reg.ByName("ck__page")
	assert.Equal(t, domain.KindContainer, page.Kind)
	assert.Equal(t, []string{"ck__figure"}, page.Contains)
}

func TestBuilder_TemplateIsIdempotent(t *testing.T) {
	b := dsl.New()
	first := b.Template("a")
	assert.Same(t, first, b.Template("a"))
	assert.Len(t, b.Sources(), 1)
}

func TestBuilder_Build(t *testing.T) {
	b := dsl.New()
	b.Template("quote").
		Tag("blockquote").Class("quote").
		Label("Quote").Icon("quote").Validation(`\S`).
		Slot("body").Tag("p").Text().Min(1)

	loader, err := b.Build()
	require.NoError(t, err)

	names, err := loader.ListTemplates()
	require.NoError(t, err)
	assert.Equal(t, []string{"quote"}, names)

	tmpl, err := loader.GetTemplate("quote")
	require.NoError(t, err)
	assert.Equal(t, "Quote", tmpl.Label)
	assert.Equal(t, "quote", tmpl.Icon)
	assert.Equal(t, `\S`, tmpl.Validation)

	// The rendered markup registers to the same schema as the builder.
	reg := schema.NewRegistry()
	el, err := reg.RegisterTemplate(tmpl, markup.ParseSnippet)
	require.NoError(t, err)
	require.NoError(t, reg.Freeze())
	assert.Equal(t, "ck__quote", el.Name)
	assert.Equal(t, "blockquote", el.Match.Tag)
	require.Len(t, el.Children, 1)
	assert.Equal(t, "ck__quote__body", el.Children[0].Name)
	assert.Equal(t, "1", el.Children[0].Config["min"])
}

func TestTreeHelpers(t *testing.T) {
	n := dsl.A("ck__a", []string{"data-x", "1", "dangling"},
		dsl.N("ck__b"),
		dsl.T("ck__c", "hello"),
	)
	assert.Equal(t, map[string]string{"data-x": "1"}, n.Attributes)
	assert.Equal(t, []string{"ck__b", "ck__c"}, dsl.Types(n.Children()))
	assert.Equal(t, "hello", n.Child(1).Text)
	assert.Same(t, n, n.Child(0).Parent())
}
