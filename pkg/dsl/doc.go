/*
Package dsl provides a Go DSL for programmatically constructing stencil
template libraries and live documents.

It allows developers to define templates using a type-safe, fluent builder
instead of HTML snippets in YAML or JSON files. This is particularly useful
for generated libraries, unit testing, and IDE autocompletion.

Example usage:

	b := dsl.New()

	b.Template("figure").
		Tag("figure").Class("figure").
		Slot("image").Tag("img").Attr("src", "").End().
		Slot("caption").Tag("figcaption").Text().Limit(80)

	b.Template("page").
		Container("figure")

	loader, err := b.Build()
	// ... pass loader to stencil.New(stencil.WithLoader(loader))

Live documents are built with N:

	doc := domain.NewDocument(
		dsl.N("ck__page", dsl.N("ck__figure")),
	)
*/
package dsl
